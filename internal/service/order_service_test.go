package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/panaderia-next/internal/config"
	"github.com/panaderia-next/internal/constants"
	"github.com/panaderia-next/internal/models"
	"github.com/panaderia-next/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newOrderTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.Order{}, &models.OrderItem{}, &models.OrderNote{}, &models.MenuItem{}, &models.Staff{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestOrderService(db *gorm.DB) *OrderService {
	return NewOrderService(
		repository.NewOrderRepository(db),
		repository.NewOrderNoteRepository(db),
		repository.NewMenuRepository(db),
		repository.NewStaffRepository(db),
		nil,
		nil,
		config.BakeryConfig{
			Currency:            "USD",
			Timezone:            "UTC",
			DeliveryFee:         "5.00",
			FreeDeliveryMinimum: "50.00",
		},
	)
}

func seedMenuItem(t *testing.T, db *gorm.DB, name, price string, available bool) models.MenuItem {
	t.Helper()
	item := models.MenuItem{
		Name:      name,
		Category:  constants.MenuCategoryCake,
		Price:     models.NewMoneyFromDecimal(decimal.RequireFromString(price)),
		Available: available,
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("seed menu item: %v", err)
	}
	return item
}

func TestCreateOrderPickup(t *testing.T) {
	db := newOrderTestDB(t, "order_create_pickup")
	svc := newTestOrderService(db)
	cake := seedMenuItem(t, db, "Tres Leches Cake", "38.00", true)
	cookie := seedMenuItem(t, db, "Chocolate Chip Cookie", "1.75", true)

	order, err := svc.CreateOrder(CreateOrderInput{
		CustomerName:  "Maria Lopez",
		CustomerPhone: "305-555-0101",
		OrderType:     constants.OrderTypePickup,
		DateNeeded:    time.Now().UTC().Add(96 * time.Hour).Format("2006-01-02"),
		Items: []CreateOrderItem{
			{MenuItemID: cake.ID, Quantity: 1},
			{MenuItemID: cookie.ID, Quantity: 4},
		},
	})
	if err != nil {
		t.Fatalf("CreateOrder error: %v", err)
	}
	if order.Status != constants.OrderStatusPending {
		t.Fatalf("new order status = %s", order.Status)
	}
	if !strings.HasPrefix(order.OrderNo, "ORD-") || !strings.HasSuffix(order.OrderNo, "-001") {
		t.Fatalf("unexpected order number: %s", order.OrderNo)
	}
	if !order.Subtotal.Equal(decimal.RequireFromString("45.00")) {
		t.Fatalf("subtotal = %s, want 45.00", order.Subtotal)
	}
	if !order.DeliveryFee.IsZero() {
		t.Fatalf("pickup order has delivery fee %s", order.DeliveryFee)
	}
	if !order.TotalAmount.Equal(decimal.RequireFromString("45.00")) {
		t.Fatalf("total = %s, want 45.00", order.TotalAmount)
	}
	if order.TimeNeeded != constants.TimeNeededUnspecified {
		t.Fatalf("unset time_needed should default to sentinel, got %s", order.TimeNeeded)
	}
	if len(order.Items) != 2 {
		t.Fatalf("expected 2 line items, got %d", len(order.Items))
	}
	if order.Items[0].Name != cake.Name || !order.Items[0].UnitPrice.Equal(cake.Price.Decimal) {
		t.Fatalf("line item did not snapshot the menu item: %+v", order.Items[0])
	}

	second, err := svc.CreateOrder(CreateOrderInput{
		CustomerName:  "Ana Ruiz",
		CustomerPhone: "305-555-0102",
		OrderType:     constants.OrderTypePickup,
		DateNeeded:    time.Now().UTC().Add(96 * time.Hour).Format("2006-01-02"),
		Items:         []CreateOrderItem{{MenuItemID: cookie.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateOrder error: %v", err)
	}
	if !strings.HasSuffix(second.OrderNo, "-002") {
		t.Fatalf("per-day sequence did not advance: %s", second.OrderNo)
	}
}

func TestCreateOrderDeliveryFee(t *testing.T) {
	db := newOrderTestDB(t, "order_create_delivery_fee")
	svc := newTestOrderService(db)
	cookie := seedMenuItem(t, db, "Chocolate Chip Cookie", "1.75", true)
	cake := seedMenuItem(t, db, "Tres Leches Cake", "38.00", true)

	small, err := svc.CreateOrder(CreateOrderInput{
		CustomerName:  "Maria Lopez",
		CustomerPhone: "305-555-0101",
		OrderType:     constants.OrderTypeDelivery,
		DateNeeded:    time.Now().UTC().Add(96 * time.Hour).Format("2006-01-02"),
		AddressText:   "123 Calle Ocho, Miami, FL 33135",
		Items:         []CreateOrderItem{{MenuItemID: cookie.ID, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("CreateOrder error: %v", err)
	}
	if !small.DeliveryFee.Equal(decimal.RequireFromString("5.00")) {
		t.Fatalf("delivery fee = %s, want 5.00", small.DeliveryFee)
	}
	if small.DeliveryStatus != constants.DeliveryStatusPending {
		t.Fatalf("delivery order should start with pending delivery status, got %q", small.DeliveryStatus)
	}
	if !small.AddressVerified {
		t.Fatalf("parsable address should be verified")
	}

	big, err := svc.CreateOrder(CreateOrderInput{
		CustomerName:  "Maria Lopez",
		CustomerPhone: "305-555-0101",
		OrderType:     constants.OrderTypeDelivery,
		DateNeeded:    time.Now().UTC().Add(96 * time.Hour).Format("2006-01-02"),
		AddressText:   "123 Calle Ocho, Miami, FL 33135",
		Items:         []CreateOrderItem{{MenuItemID: cake.ID, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("CreateOrder error: %v", err)
	}
	if !big.DeliveryFee.IsZero() {
		t.Fatalf("order above the free delivery minimum still charged %s", big.DeliveryFee)
	}
}

func TestCreateOrderValidation(t *testing.T) {
	db := newOrderTestDB(t, "order_create_validation")
	svc := newTestOrderService(db)
	cake := seedMenuItem(t, db, "Tres Leches Cake", "38.00", true)
	retired := seedMenuItem(t, db, "Seasonal Panettone", "24.00", false)
	date := time.Now().UTC().Add(96 * time.Hour).Format("2006-01-02")
	items := []CreateOrderItem{{MenuItemID: cake.ID, Quantity: 1}}

	cases := []struct {
		name  string
		input CreateOrderInput
		want  error
	}{
		{"missing name", CreateOrderInput{CustomerPhone: "1", OrderType: constants.OrderTypePickup, DateNeeded: date, Items: items}, ErrValidationFailed},
		{"missing phone", CreateOrderInput{CustomerName: "A", OrderType: constants.OrderTypePickup, DateNeeded: date, Items: items}, ErrValidationFailed},
		{"no items", CreateOrderInput{CustomerName: "A", CustomerPhone: "1", OrderType: constants.OrderTypePickup, DateNeeded: date}, ErrValidationFailed},
		{"bad order type", CreateOrderInput{CustomerName: "A", CustomerPhone: "1", OrderType: "shipping", DateNeeded: date, Items: items}, ErrValidationFailed},
		{"bad date", CreateOrderInput{CustomerName: "A", CustomerPhone: "1", OrderType: constants.OrderTypePickup, DateNeeded: "tomorrow", Items: items}, ErrValidationFailed},
		{"bad time", CreateOrderInput{CustomerName: "A", CustomerPhone: "1", OrderType: constants.OrderTypePickup, DateNeeded: date, TimeNeeded: "2pm", Items: items}, ErrValidationFailed},
		{"zero quantity", CreateOrderInput{CustomerName: "A", CustomerPhone: "1", OrderType: constants.OrderTypePickup, DateNeeded: date, Items: []CreateOrderItem{{MenuItemID: cake.ID, Quantity: 0}}}, ErrValidationFailed},
		{"unknown item", CreateOrderInput{CustomerName: "A", CustomerPhone: "1", OrderType: constants.OrderTypePickup, DateNeeded: date, Items: []CreateOrderItem{{MenuItemID: 9999, Quantity: 1}}}, ErrMenuItemNotFound},
		{"unavailable item", CreateOrderInput{CustomerName: "A", CustomerPhone: "1", OrderType: constants.OrderTypePickup, DateNeeded: date, Items: []CreateOrderItem{{MenuItemID: retired.ID, Quantity: 1}}}, ErrMenuItemUnavailable},
		{"delivery without address", CreateOrderInput{CustomerName: "A", CustomerPhone: "1", OrderType: constants.OrderTypeDelivery, DateNeeded: date, Items: items}, ErrValidationFailed},
	}
	for _, c := range cases {
		if _, err := svc.CreateOrder(c.input); !errors.Is(err, c.want) {
			t.Fatalf("%s: expected %v, got %v", c.name, c.want, err)
		}
	}
}

func TestUpdateStatusPickupFlow(t *testing.T) {
	db := newOrderTestDB(t, "order_status_pickup_flow")
	svc := newTestOrderService(db)
	cake := seedMenuItem(t, db, "Tres Leches Cake", "38.00", true)
	owner := Actor{StaffID: 1, Role: constants.RoleOwner}

	order, err := svc.CreateOrder(CreateOrderInput{
		CustomerName:  "Maria Lopez",
		CustomerPhone: "305-555-0101",
		OrderType:     constants.OrderTypePickup,
		DateNeeded:    time.Now().UTC().Add(96 * time.Hour).Format("2006-01-02"),
		Items:         []CreateOrderItem{{MenuItemID: cake.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateOrder error: %v", err)
	}

	for _, target := range []string{
		constants.OrderStatusConfirmed,
		constants.OrderStatusInProgress,
		constants.OrderStatusReady,
		constants.OrderStatusCompleted,
	} {
		result, err := svc.UpdateStatus(owner, order.ID, target)
		if err != nil {
			t.Fatalf("UpdateStatus to %s: %v", target, err)
		}
		if !result.Changed || result.Order.Status != target {
			t.Fatalf("UpdateStatus to %s: changed=%v status=%s", target, result.Changed, result.Order.Status)
		}
	}

	reloaded, err := svc.GetOrder(order.ID)
	if err != nil {
		t.Fatalf("GetOrder: %v", err)
	}
	if reloaded.Status != constants.OrderStatusCompleted {
		t.Fatalf("persisted status = %s", reloaded.Status)
	}
	if reloaded.ConfirmedAt == nil || reloaded.ReadyAt == nil || reloaded.CompletedAt == nil {
		t.Fatalf("milestone timestamps missing: %+v", reloaded)
	}
}

func TestUpdateStatusSameStatusNoOp(t *testing.T) {
	db := newOrderTestDB(t, "order_status_noop")
	svc := newTestOrderService(db)
	cake := seedMenuItem(t, db, "Tres Leches Cake", "38.00", true)

	order, err := svc.CreateOrder(CreateOrderInput{
		CustomerName:  "Maria Lopez",
		CustomerPhone: "305-555-0101",
		OrderType:     constants.OrderTypePickup,
		DateNeeded:    time.Now().UTC().Add(96 * time.Hour).Format("2006-01-02"),
		Items:         []CreateOrderItem{{MenuItemID: cake.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateOrder error: %v", err)
	}
	result, err := svc.UpdateStatus(Actor{StaffID: 1, Role: constants.RoleBaker}, order.ID, constants.OrderStatusPending)
	if err != nil {
		t.Fatalf("reapplying current status should succeed: %v", err)
	}
	if result.Changed {
		t.Fatalf("reapplying current status must be a no-op")
	}
}

func TestUpdateStatusRejections(t *testing.T) {
	db := newOrderTestDB(t, "order_status_rejections")
	svc := newTestOrderService(db)
	cake := seedMenuItem(t, db, "Tres Leches Cake", "38.00", true)

	order, err := svc.CreateOrder(CreateOrderInput{
		CustomerName:  "Maria Lopez",
		CustomerPhone: "305-555-0101",
		OrderType:     constants.OrderTypePickup,
		DateNeeded:    time.Now().UTC().Add(96 * time.Hour).Format("2006-01-02"),
		Items:         []CreateOrderItem{{MenuItemID: cake.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateOrder error: %v", err)
	}
	owner := Actor{StaffID: 1, Role: constants.RoleOwner}

	// Skipping ahead in the machine fails.
	if _, err := svc.UpdateStatus(owner, order.ID, constants.OrderStatusCompleted); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("pending -> completed: expected ErrOrderStatusInvalid, got %v", err)
	}
	// Cancellation has its own path so the refund policy always applies.
	if _, err := svc.UpdateStatus(owner, order.ID, constants.OrderStatusCancelled); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("cancel via UpdateStatus: expected ErrOrderStatusInvalid, got %v", err)
	}
	// A pickup order never goes out for delivery.
	if _, err := svc.UpdateStatus(owner, order.ID, constants.OrderStatusReady); err != nil {
		t.Fatalf("pending -> ready: %v", err)
	}
	if _, err := svc.UpdateStatus(owner, order.ID, constants.OrderStatusOutForDelivery); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("pickup out for delivery: expected ErrOrderStatusInvalid, got %v", err)
	}
	// Drivers cannot confirm.
	if _, err := svc.UpdateStatus(Actor{StaffID: 2, Role: constants.RoleDriver}, order.ID, constants.OrderStatusCompleted); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("driver completing a pickup: expected ErrPermissionDenied, got %v", err)
	}
	if _, err := svc.UpdateStatus(owner, 9999, constants.OrderStatusReady); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("missing order: expected ErrOrderNotFound, got %v", err)
	}
}

func TestCancelOrderRefundPolicy(t *testing.T) {
	db := newOrderTestDB(t, "order_cancel_refund")
	svc := newTestOrderService(db)
	cake := seedMenuItem(t, db, "Tres Leches Cake", "38.00", true)
	owner := Actor{StaffID: 1, Role: constants.RoleOwner}

	farOut, err := svc.CreateOrder(CreateOrderInput{
		CustomerName:  "Maria Lopez",
		CustomerPhone: "305-555-0101",
		OrderType:     constants.OrderTypePickup,
		DateNeeded:    time.Now().UTC().Add(96 * time.Hour).Format("2006-01-02"),
		Items:         []CreateOrderItem{{MenuItemID: cake.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateOrder error: %v", err)
	}
	result, err := svc.CancelOrder(owner, farOut.ID, CancelOrderInput{Reason: "customer changed plans"})
	if err != nil {
		t.Fatalf("CancelOrder: %v", err)
	}
	cancelled := result.Order
	if cancelled.Status != constants.OrderStatusCancelled || cancelled.CancelledAt == nil {
		t.Fatalf("order not cancelled: %+v", cancelled)
	}
	if cancelled.RefundPercent != 100 {
		t.Fatalf("refund percent = %d, want 100 outside the 48h window", cancelled.RefundPercent)
	}
	if !cancelled.RefundAmount.Equal(decimal.RequireFromString("38.00")) {
		t.Fatalf("refund amount = %s, want 38.00", cancelled.RefundAmount)
	}
	if cancelled.RefundStatus != constants.RefundStatusPending {
		t.Fatalf("refund status = %s", cancelled.RefundStatus)
	}
	if cancelled.CancelReason != "customer changed plans" {
		t.Fatalf("cancel reason = %q", cancelled.CancelReason)
	}

	// Cancelling again fails: the order is terminal.
	if _, err := svc.CancelOrder(owner, farOut.ID, CancelOrderInput{}); !errors.Is(err, ErrOrderCancelNotAllowed) {
		t.Fatalf("double cancel: expected ErrOrderCancelNotAllowed, got %v", err)
	}

	soonAt := time.Now().UTC().Add(2 * time.Hour)
	soon, err := svc.CreateOrder(CreateOrderInput{
		CustomerName:  "Ana Ruiz",
		CustomerPhone: "305-555-0102",
		OrderType:     constants.OrderTypePickup,
		DateNeeded:    soonAt.Format("2006-01-02"),
		TimeNeeded:    soonAt.Format("15:04"),
		Items:         []CreateOrderItem{{MenuItemID: cake.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateOrder error: %v", err)
	}
	result, err = svc.CancelOrder(owner, soon.ID, CancelOrderInput{Reason: "too late"})
	if err != nil {
		t.Fatalf("CancelOrder: %v", err)
	}
	if result.Order.RefundPercent != 0 || !result.Order.RefundAmount.IsZero() {
		t.Fatalf("inside 24h: percent=%d amount=%s, want 0", result.Order.RefundPercent, result.Order.RefundAmount)
	}
}

func TestCancelOrderOverride(t *testing.T) {
	db := newOrderTestDB(t, "order_cancel_override")
	svc := newTestOrderService(db)
	cake := seedMenuItem(t, db, "Tres Leches Cake", "38.00", true)

	newSoonOrder := func() *models.Order {
		soonAt := time.Now().UTC().Add(2 * time.Hour)
		order, err := svc.CreateOrder(CreateOrderInput{
			CustomerName:  "Maria Lopez",
			CustomerPhone: "305-555-0101",
			OrderType:     constants.OrderTypePickup,
			DateNeeded:    soonAt.Format("2006-01-02"),
			TimeNeeded:    soonAt.Format("15:04"),
			Items:         []CreateOrderItem{{MenuItemID: cake.ID, Quantity: 1}},
		})
		if err != nil {
			t.Fatalf("CreateOrder error: %v", err)
		}
		return order
	}

	// Only the owner may override the formula.
	order := newSoonOrder()
	amount := decimal.RequireFromString("10.00")
	if _, err := svc.CancelOrder(Actor{StaffID: 2, Role: constants.RoleBaker}, order.ID, CancelOrderInput{Override: true, OverrideAmount: &amount}); !errors.Is(err, ErrRefundRequiresOverride) {
		t.Fatalf("baker override: expected ErrRefundRequiresOverride, got %v", err)
	}

	owner := Actor{StaffID: 1, Role: constants.RoleOwner}
	result, err := svc.CancelOrder(owner, order.ID, CancelOrderInput{Override: true, OverrideAmount: &amount})
	if err != nil {
		t.Fatalf("owner override: %v", err)
	}
	if !result.Order.RefundAmount.Equal(amount) {
		t.Fatalf("override refund = %s, want 10.00", result.Order.RefundAmount)
	}

	// Override amounts are clamped to [0, total].
	order = newSoonOrder()
	tooMuch := decimal.RequireFromString("500.00")
	result, err = svc.CancelOrder(owner, order.ID, CancelOrderInput{Override: true, OverrideAmount: &tooMuch})
	if err != nil {
		t.Fatalf("owner override: %v", err)
	}
	if !result.Order.RefundAmount.Equal(order.TotalAmount.Decimal) {
		t.Fatalf("over-total refund = %s, want clamp to %s", result.Order.RefundAmount, order.TotalAmount)
	}

	order = newSoonOrder()
	negative := decimal.RequireFromString("-3.00")
	result, err = svc.CancelOrder(owner, order.ID, CancelOrderInput{Override: true, OverrideAmount: &negative})
	if err != nil {
		t.Fatalf("owner override: %v", err)
	}
	if !result.Order.RefundAmount.IsZero() {
		t.Fatalf("negative refund = %s, want clamp to 0", result.Order.RefundAmount)
	}
}

func TestAddAndListNotes(t *testing.T) {
	db := newOrderTestDB(t, "order_notes")
	svc := newTestOrderService(db)
	cake := seedMenuItem(t, db, "Tres Leches Cake", "38.00", true)

	staff := models.Staff{Username: "baker1", PasswordHash: "x", DisplayName: "Rosa", Role: constants.RoleBaker, Active: true}
	if err := db.Create(&staff).Error; err != nil {
		t.Fatalf("seed staff: %v", err)
	}

	order, err := svc.CreateOrder(CreateOrderInput{
		CustomerName:  "Maria Lopez",
		CustomerPhone: "305-555-0101",
		OrderType:     constants.OrderTypePickup,
		DateNeeded:    time.Now().UTC().Add(96 * time.Hour).Format("2006-01-02"),
		Items:         []CreateOrderItem{{MenuItemID: cake.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateOrder error: %v", err)
	}

	if _, err := svc.AddNote(Actor{CustomerID: 4}, order.ID, "hi"); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("customer note: expected ErrPermissionDenied, got %v", err)
	}
	if _, err := svc.AddNote(Actor{StaffID: staff.ID, Role: constants.RoleBaker}, order.ID, "  "); !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("blank note: expected ErrValidationFailed, got %v", err)
	}

	note, err := svc.AddNote(Actor{StaffID: staff.ID, Role: constants.RoleBaker}, order.ID, "needs extra boxing")
	if err != nil {
		t.Fatalf("AddNote: %v", err)
	}
	if note.AuthorName != "Rosa" {
		t.Fatalf("author name = %q", note.AuthorName)
	}

	notes, err := svc.ListNotes(order.ID)
	if err != nil {
		t.Fatalf("ListNotes: %v", err)
	}
	if len(notes) != 1 || notes[0].Body != "needs extra boxing" {
		t.Fatalf("unexpected notes: %+v", notes)
	}
}

func TestMarkPaid(t *testing.T) {
	db := newOrderTestDB(t, "order_mark_paid")
	svc := newTestOrderService(db)
	cake := seedMenuItem(t, db, "Tres Leches Cake", "38.00", true)

	order, err := svc.CreateOrder(CreateOrderInput{
		CustomerName:  "Maria Lopez",
		CustomerPhone: "305-555-0101",
		OrderType:     constants.OrderTypePickup,
		DateNeeded:    time.Now().UTC().Add(96 * time.Hour).Format("2006-01-02"),
		Items:         []CreateOrderItem{{MenuItemID: cake.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateOrder error: %v", err)
	}
	paid, err := svc.MarkPaid(order.ID, constants.PaymentMethodCash)
	if err != nil {
		t.Fatalf("MarkPaid: %v", err)
	}
	if paid.PaymentStatus != constants.PaymentStatusPaid || paid.PaymentMethod != constants.PaymentMethodCash {
		t.Fatalf("payment not recorded: status=%s method=%s", paid.PaymentStatus, paid.PaymentMethod)
	}
	// Marking an already paid order again is a no-op.
	again, err := svc.MarkPaid(order.ID, constants.PaymentMethodCard)
	if err != nil {
		t.Fatalf("MarkPaid twice: %v", err)
	}
	if again.PaymentMethod != constants.PaymentMethodCash {
		t.Fatalf("second MarkPaid overwrote the method: %s", again.PaymentMethod)
	}
}

func TestTrackOrder(t *testing.T) {
	db := newOrderTestDB(t, "order_track")
	svc := newTestOrderService(db)
	cake := seedMenuItem(t, db, "Tres Leches Cake", "38.00", true)

	order, err := svc.CreateOrder(CreateOrderInput{
		CustomerName:  "Maria Lopez",
		CustomerPhone: "305-555-0101",
		OrderType:     constants.OrderTypePickup,
		DateNeeded:    time.Now().UTC().Add(96 * time.Hour).Format("2006-01-02"),
		Items:         []CreateOrderItem{{MenuItemID: cake.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateOrder error: %v", err)
	}

	found, err := svc.TrackOrder(order.OrderNo, "305-555-0101")
	if err != nil {
		t.Fatalf("TrackOrder: %v", err)
	}
	if found.ID != order.ID {
		t.Fatalf("tracked wrong order: %d", found.ID)
	}
	if _, err := svc.TrackOrder(order.OrderNo, "999-999-9999"); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("wrong phone: expected ErrOrderNotFound, got %v", err)
	}
}

func TestCreateOrderSalesTax(t *testing.T) {
	db := newOrderTestDB(t, "order_create_tax")
	svc := NewOrderService(
		repository.NewOrderRepository(db),
		repository.NewOrderNoteRepository(db),
		repository.NewMenuRepository(db),
		repository.NewStaffRepository(db),
		nil,
		nil,
		config.BakeryConfig{
			Currency:    "USD",
			Timezone:    "UTC",
			DeliveryFee: "5.00",
			TaxRate:     "0.07",
		},
	)
	cake := seedMenuItem(t, db, "Tres Leches Cake", "40.00", true)

	order, err := svc.CreateOrder(CreateOrderInput{
		CustomerName:      "Maria Lopez",
		CustomerPhone:     "305-555-0101",
		OrderType:         constants.OrderTypeDelivery,
		DateNeeded:        time.Now().UTC().Add(96 * time.Hour).Format("2006-01-02"),
		AddressText:       "123 Calle Ocho, Miami, FL 33135",
		ReferenceImageURL: " https://cdn.panaderia.test/refs/quince.jpg ",
		Items:             []CreateOrderItem{{MenuItemID: cake.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateOrder error: %v", err)
	}
	// Tax applies to goods plus the delivery fee: (40 + 5) * 0.07.
	if !order.TaxAmount.Equal(decimal.RequireFromString("3.15")) {
		t.Fatalf("tax = %s, want 3.15", order.TaxAmount)
	}
	if !order.TotalAmount.Equal(decimal.RequireFromString("48.15")) {
		t.Fatalf("total = %s, want 48.15", order.TotalAmount)
	}
	if order.ReferenceImageURL != "https://cdn.panaderia.test/refs/quince.jpg" {
		t.Fatalf("reference image = %q", order.ReferenceImageURL)
	}
	if order.DeliveryZone != "33135" {
		t.Fatalf("delivery zone = %q", order.DeliveryZone)
	}
}

func TestApplyDiscount(t *testing.T) {
	db := newOrderTestDB(t, "order_discount")
	svc := newTestOrderService(db)
	cake := seedMenuItem(t, db, "Tres Leches Cake", "40.00", true)

	order, err := svc.CreateOrder(CreateOrderInput{
		CustomerName:  "Maria Lopez",
		CustomerPhone: "305-555-0101",
		OrderType:     constants.OrderTypePickup,
		DateNeeded:    time.Now().UTC().Add(96 * time.Hour).Format("2006-01-02"),
		Items:         []CreateOrderItem{{MenuItemID: cake.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateOrder error: %v", err)
	}

	baker := Actor{StaffID: 2, Role: constants.RoleBaker}
	discounted, err := svc.ApplyDiscount(baker, order.ID, "5.00")
	if err != nil {
		t.Fatalf("ApplyDiscount: %v", err)
	}
	if !discounted.DiscountAmount.Equal(decimal.RequireFromString("5.00")) {
		t.Fatalf("discount = %s", discounted.DiscountAmount)
	}
	if !discounted.TotalAmount.Equal(decimal.RequireFromString("35.00")) {
		t.Fatalf("total = %s, want 35.00", discounted.TotalAmount)
	}

	// A second discount replaces the first instead of stacking.
	replaced, err := svc.ApplyDiscount(baker, order.ID, "2.00")
	if err != nil {
		t.Fatalf("second ApplyDiscount: %v", err)
	}
	if !replaced.TotalAmount.Equal(decimal.RequireFromString("38.00")) {
		t.Fatalf("total after replacement = %s, want 38.00", replaced.TotalAmount)
	}
}

func TestApplyDiscountRejections(t *testing.T) {
	db := newOrderTestDB(t, "order_discount_reject")
	svc := newTestOrderService(db)
	cake := seedMenuItem(t, db, "Tres Leches Cake", "40.00", true)

	order, err := svc.CreateOrder(CreateOrderInput{
		CustomerName:  "Maria Lopez",
		CustomerPhone: "305-555-0101",
		OrderType:     constants.OrderTypePickup,
		DateNeeded:    time.Now().UTC().Add(96 * time.Hour).Format("2006-01-02"),
		Items:         []CreateOrderItem{{MenuItemID: cake.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateOrder error: %v", err)
	}

	owner := Actor{StaffID: 1, Role: constants.RoleOwner}
	if _, err := svc.ApplyDiscount(Actor{StaffID: 3, Role: constants.RoleDriver}, order.ID, "5.00"); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("driver discount: expected ErrPermissionDenied, got %v", err)
	}
	if _, err := svc.ApplyDiscount(owner, order.ID, "-1.00"); !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("negative discount: expected ErrValidationFailed, got %v", err)
	}
	if _, err := svc.ApplyDiscount(owner, order.ID, "100.00"); !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("discount above the total: expected ErrValidationFailed, got %v", err)
	}
	if _, err := svc.ApplyDiscount(owner, 9999, "1.00"); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("missing order: expected ErrOrderNotFound, got %v", err)
	}

	if _, err := svc.MarkPaid(order.ID, constants.PaymentMethodCash); err != nil {
		t.Fatalf("MarkPaid: %v", err)
	}
	if _, err := svc.ApplyDiscount(owner, order.ID, "1.00"); !errors.Is(err, ErrOrderAlreadyPaid) {
		t.Fatalf("paid order: expected ErrOrderAlreadyPaid, got %v", err)
	}
}

func TestExpireUnpaid(t *testing.T) {
	db := newOrderTestDB(t, "order_expire_unpaid")
	svc := newTestOrderService(db)
	cake := seedMenuItem(t, db, "Tres Leches Cake", "40.00", true)

	order, err := svc.CreateOrder(CreateOrderInput{
		CustomerName:  "Maria Lopez",
		CustomerPhone: "305-555-0101",
		OrderType:     constants.OrderTypePickup,
		DateNeeded:    time.Now().UTC().Add(96 * time.Hour).Format("2006-01-02"),
		Items:         []CreateOrderItem{{MenuItemID: cake.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateOrder error: %v", err)
	}

	expired, err := svc.ExpireUnpaid(order.ID)
	if err != nil {
		t.Fatalf("ExpireUnpaid: %v", err)
	}
	if expired.Status != constants.OrderStatusCancelled {
		t.Fatalf("status = %s, want cancelled", expired.Status)
	}
	if expired.CancelReason != "payment window expired" {
		t.Fatalf("cancel reason = %q", expired.CancelReason)
	}
	// Nothing was captured, so no refund is opened.
	if expired.RefundStatus != "" || !expired.RefundAmount.IsZero() {
		t.Fatalf("expiry opened a refund: %q %s", expired.RefundStatus, expired.RefundAmount)
	}

	// A missing order is not an error for the expiry sweep.
	missing, err := svc.ExpireUnpaid(9999)
	if err != nil || missing != nil {
		t.Fatalf("missing order: got %v, %v", missing, err)
	}
}

func TestExpireUnpaidLeavesActiveOrdersAlone(t *testing.T) {
	db := newOrderTestDB(t, "order_expire_unpaid_noop")
	svc := newTestOrderService(db)
	cake := seedMenuItem(t, db, "Tres Leches Cake", "40.00", true)
	owner := Actor{StaffID: 1, Role: constants.RoleOwner}

	paid, err := svc.CreateOrder(CreateOrderInput{
		CustomerName:  "Maria Lopez",
		CustomerPhone: "305-555-0101",
		OrderType:     constants.OrderTypePickup,
		DateNeeded:    time.Now().UTC().Add(96 * time.Hour).Format("2006-01-02"),
		Items:         []CreateOrderItem{{MenuItemID: cake.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateOrder error: %v", err)
	}
	if _, err := svc.MarkPaid(paid.ID, constants.PaymentMethodCash); err != nil {
		t.Fatalf("MarkPaid: %v", err)
	}
	untouched, err := svc.ExpireUnpaid(paid.ID)
	if err != nil {
		t.Fatalf("ExpireUnpaid paid order: %v", err)
	}
	if untouched.Status != constants.OrderStatusPending {
		t.Fatalf("paid order status changed: %s", untouched.Status)
	}

	confirmed, err := svc.CreateOrder(CreateOrderInput{
		CustomerName:  "Ana Ruiz",
		CustomerPhone: "305-555-0102",
		OrderType:     constants.OrderTypePickup,
		DateNeeded:    time.Now().UTC().Add(96 * time.Hour).Format("2006-01-02"),
		Items:         []CreateOrderItem{{MenuItemID: cake.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateOrder error: %v", err)
	}
	if _, err := svc.UpdateStatus(owner, confirmed.ID, constants.OrderStatusConfirmed); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	stillConfirmed, err := svc.ExpireUnpaid(confirmed.ID)
	if err != nil {
		t.Fatalf("ExpireUnpaid confirmed order: %v", err)
	}
	if stillConfirmed.Status != constants.OrderStatusConfirmed {
		t.Fatalf("confirmed order status changed: %s", stillConfirmed.Status)
	}
}
