package service

import (
	"strings"
	"testing"

	"github.com/panaderia-next/internal/config"
)

func TestBuildOrderStatusContentReady(t *testing.T) {
	input := OrderStatusEmailInput{
		OrderNo:      "ORD-20260301-001",
		Status:       "ready",
		CustomerName: "Maria",
		OrderType:    "pickup",
		DateNeeded:   "2026-03-05",
		TimeNeeded:   "14:00",
		Total:        money("43.00"),
		Currency:     "USD",
	}
	subject, body := buildOrderStatusContent(input, "en-US")
	if subject != "Order ORD-20260301-001 is now Ready" {
		t.Fatalf("subject = %q", subject)
	}
	if !strings.Contains(body, "Maria") || !strings.Contains(body, "ORD-20260301-001") {
		t.Fatalf("body missing customer or order number: %q", body)
	}
	if !strings.Contains(body, "2026-03-05") || !strings.Contains(body, "14:00") {
		t.Fatalf("ready body should carry pickup date and time: %q", body)
	}
}

func TestBuildOrderStatusContentCancelled(t *testing.T) {
	input := OrderStatusEmailInput{
		OrderNo:      "ORD-20260301-002",
		Status:       "cancelled",
		CustomerName: "Maria",
		Total:        money("38.00"),
		Currency:     "USD",
		RefundAmount: money("19.00"),
	}
	_, body := buildOrderStatusContent(input, "en-US")
	if !strings.Contains(body, "cancelled") {
		t.Fatalf("body = %q", body)
	}
	if !strings.Contains(body, "19.00 USD") {
		t.Fatalf("cancelled body should name the refund: %q", body)
	}
}

func TestBuildOrderStatusContentPendingUsesConfirmation(t *testing.T) {
	input := OrderStatusEmailInput{
		OrderNo:      "ORD-20260301-003",
		Status:       "pending",
		CustomerName: "Maria",
		DateNeeded:   "2026-03-05",
		Total:        money("12.50"),
		Currency:     "USD",
	}
	subject, body := buildOrderStatusContent(input, "en-US")
	if subject != "Order ORD-20260301-003 received" {
		t.Fatalf("subject = %q", subject)
	}
	if !strings.Contains(body, "12.50 USD") || !strings.Contains(body, "2026-03-05") {
		t.Fatalf("confirmation body = %q", body)
	}
}

func TestBuildOrderStatusContentDefault(t *testing.T) {
	input := OrderStatusEmailInput{
		OrderNo:      "ORD-20260301-004",
		Status:       "in_progress",
		CustomerName: "Maria",
		Total:        money("20.00"),
		Currency:     "USD",
	}
	subject, body := buildOrderStatusContent(input, "en-US")
	if !strings.Contains(subject, "In Progress") {
		t.Fatalf("subject should use the localized status label: %q", subject)
	}
	if !strings.Contains(body, "In Progress") || !strings.Contains(body, "20.00 USD") {
		t.Fatalf("body = %q", body)
	}
}

func TestBuildOrderStatusContentSpanish(t *testing.T) {
	input := OrderStatusEmailInput{
		OrderNo:      "ORD-20260301-005",
		Status:       "ready",
		CustomerName: "Maria",
		DateNeeded:   "2026-03-05",
		TimeNeeded:   "14:00",
		Total:        money("43.00"),
		Currency:     "USD",
	}
	subject, body := buildOrderStatusContent(input, "es-ES")
	if !strings.Contains(subject, "Listo") {
		t.Fatalf("subject = %q", subject)
	}
	if !strings.Contains(body, "listo para recoger") {
		t.Fatalf("body should be in Spanish: %q", body)
	}
}

func TestBuildOrderStatusContentUnknownStatusFallsBack(t *testing.T) {
	input := OrderStatusEmailInput{
		OrderNo:      "ORD-20260301-006",
		Status:       "archived",
		CustomerName: "Maria",
		Total:        money("5.00"),
		Currency:     "USD",
	}
	subject, _ := buildOrderStatusContent(input, "en-US")
	if !strings.Contains(subject, "archived") {
		t.Fatalf("unknown status should appear verbatim: %q", subject)
	}
}

func TestBuildFromAddress(t *testing.T) {
	if got := buildFromAddress("orders@panaderia.test", ""); got != "orders@panaderia.test" {
		t.Fatalf("bare from = %q", got)
	}
	got := buildFromAddress("orders@panaderia.test", "La Panaderia")
	if !strings.Contains(got, "orders@panaderia.test") {
		t.Fatalf("named from should keep the address: %q", got)
	}
	if !strings.Contains(got, "La Panaderia") {
		t.Fatalf("named from should keep the display name: %q", got)
	}
}

func TestBuildEmailMessage(t *testing.T) {
	msg := buildEmailMessage("orders@panaderia.test", "maria@example.com", "Order update", "Hello Maria")
	lines := strings.Split(msg, "\r\n")
	if lines[0] != "From: orders@panaderia.test" {
		t.Fatalf("from header = %q", lines[0])
	}
	if lines[1] != "To: maria@example.com" {
		t.Fatalf("to header = %q", lines[1])
	}
	if !strings.Contains(msg, "Subject: Order update\r\n") {
		t.Fatalf("missing subject header: %q", msg)
	}
	if !strings.Contains(msg, "Content-Type: text/plain; charset=UTF-8\r\n") {
		t.Fatalf("missing content type: %q", msg)
	}
	if !strings.HasSuffix(msg, "\r\n\r\nHello Maria") {
		t.Fatalf("body should follow a blank line: %q", msg)
	}
}

func TestSendTextEmailGuards(t *testing.T) {
	svc := NewEmailService(&config.EmailConfig{Enabled: false})
	if err := svc.sendTextEmail("maria@example.com", "s", "b"); err != ErrEmailServiceDisabled {
		t.Fatalf("disabled err = %v", err)
	}

	svc.SetConfig(&config.EmailConfig{Enabled: true})
	if err := svc.sendTextEmail("maria@example.com", "s", "b"); err != ErrEmailServiceNotConfigured {
		t.Fatalf("unconfigured err = %v", err)
	}

	svc.SetConfig(&config.EmailConfig{
		Enabled: true, Host: "localhost", Port: 2525, From: "orders@panaderia.test",
	})
	if err := svc.sendTextEmail("not-an-address", "s", "b"); err != ErrInvalidEmail {
		t.Fatalf("invalid recipient err = %v", err)
	}
}

func TestBuildDailyDigestContent(t *testing.T) {
	subject, body := buildDailyDigestContent(DailyDigestInput{
		Date:       "2026-03-01",
		OrderCount: 12,
		Revenue:    money("482.50"),
		Currency:   "USD",
		Cancelled:  2,
	}, "en")

	if subject != "Daily summary for 2026-03-01" {
		t.Fatalf("subject = %q", subject)
	}
	if !strings.Contains(body, "Orders placed: 12") {
		t.Fatalf("body missing order count: %q", body)
	}
	if !strings.Contains(body, "Revenue: 482.50 USD") {
		t.Fatalf("body missing revenue: %q", body)
	}
	if !strings.Contains(body, "Cancellations: 2") {
		t.Fatalf("body missing cancellations: %q", body)
	}
}
