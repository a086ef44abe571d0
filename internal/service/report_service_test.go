package service

import (
	"testing"
	"time"

	"github.com/panaderia-next/internal/constants"
	"github.com/panaderia-next/internal/models"

	"github.com/shopspring/decimal"
)

func money(raw string) models.Money {
	return models.NewMoneyFromDecimal(decimal.RequireFromString(raw))
}

func TestComputeRevenue(t *testing.T) {
	orders := []models.Order{
		{Status: constants.OrderStatusCompleted, TotalAmount: money("40.00"), DateNeeded: "2026-03-01", CakeSize: "8-inch"},
		{Status: constants.OrderStatusPending, TotalAmount: money("10.00"), DateNeeded: "2026-03-01"},
		{Status: constants.OrderStatusCompleted, TotalAmount: money("25.00"), DateNeeded: "2026-03-02", CakeSize: "8-inch"},
		{Status: constants.OrderStatusCancelled, TotalAmount: money("99.00"), DateNeeded: "2026-03-02", CakeSize: "10-inch"},
	}
	summary := ComputeRevenue(orders)

	if !summary.TotalRevenue.Equal(decimal.RequireFromString("75.00")) {
		t.Fatalf("total revenue = %s, want 75.00 with the cancelled order excluded", summary.TotalRevenue)
	}
	if summary.OrderCount != 3 {
		t.Fatalf("order count = %d, want 3", summary.OrderCount)
	}

	if len(summary.ByDay) != 2 {
		t.Fatalf("expected 2 day buckets, got %d", len(summary.ByDay))
	}
	if summary.ByDay[0].Date != "2026-03-01" || !summary.ByDay[0].Revenue.Equal(decimal.RequireFromString("50.00")) {
		t.Fatalf("first day bucket: %+v", summary.ByDay[0])
	}
	// Day and size buckets sum back to the total.
	daySum := decimal.Zero
	for _, d := range summary.ByDay {
		daySum = daySum.Add(d.Revenue.Decimal)
	}
	if !daySum.Equal(summary.TotalRevenue.Decimal) {
		t.Fatalf("day buckets sum to %s, total is %s", daySum, summary.TotalRevenue)
	}

	if len(summary.ByCakeSize) != 2 {
		t.Fatalf("expected 2 size buckets, got %d", len(summary.ByCakeSize))
	}
	if summary.ByCakeSize[0].CakeSize != "8-inch" {
		t.Fatalf("highest revenue size first, got %s", summary.ByCakeSize[0].CakeSize)
	}
	foundUnspecified := false
	for _, c := range summary.ByCakeSize {
		if c.CakeSize == constants.ReportBucketUnspecified {
			foundUnspecified = true
			if c.OrderCount != 1 {
				t.Fatalf("unspecified bucket count = %d", c.OrderCount)
			}
		}
	}
	if !foundUnspecified {
		t.Fatalf("orders without a cake size should land in the unspecified bucket")
	}
}

func TestComputeRevenueEmpty(t *testing.T) {
	summary := ComputeRevenue(nil)
	if !summary.TotalRevenue.IsZero() || summary.OrderCount != 0 || len(summary.ByDay) != 0 || len(summary.ByCakeSize) != 0 {
		t.Fatalf("empty window should yield zeros: %+v", summary)
	}
}

func TestComputeVolume(t *testing.T) {
	monday := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	tuesday := monday.Add(24 * time.Hour)
	orders := []models.Order{
		{Status: constants.OrderStatusPending, OrderType: constants.OrderTypePickup, CreatedAt: monday},
		{Status: constants.OrderStatusPending, OrderType: constants.OrderTypePickup, CreatedAt: monday},
		{Status: constants.OrderStatusCompleted, OrderType: constants.OrderTypeDelivery, CreatedAt: tuesday},
		{Status: "mystery", OrderType: "courier", CreatedAt: tuesday},
	}
	summary := ComputeVolume(orders, time.UTC)

	if summary.Total != 4 {
		t.Fatalf("total = %d", summary.Total)
	}
	byStatus := make(map[string]int)
	for _, sc := range summary.ByStatus {
		byStatus[sc.Status] = sc.Count
	}
	if byStatus[constants.OrderStatusPending] != 2 || byStatus[constants.OrderStatusCompleted] != 1 {
		t.Fatalf("status breakdown: %+v", summary.ByStatus)
	}
	if byStatus[constants.ReportStatusUnknown] != 1 {
		t.Fatalf("unrecognized statuses should count in the unknown bucket: %+v", summary.ByStatus)
	}
	statusSum := 0
	for _, sc := range summary.ByStatus {
		statusSum += sc.Count
	}
	if statusSum != summary.Total {
		t.Fatalf("status breakdown sums to %d, total is %d", statusSum, summary.Total)
	}

	byType := make(map[string]int)
	for _, tc := range summary.ByOrderType {
		byType[tc.Status] = tc.Count
	}
	if byType[constants.OrderTypePickup] != 2 || byType[constants.OrderTypeDelivery] != 1 || byType[constants.ReportStatusUnknown] != 1 {
		t.Fatalf("type breakdown: %+v", summary.ByOrderType)
	}

	if len(summary.ByWeekday) != 7 {
		t.Fatalf("weekday breakdown must always have 7 rows, got %d", len(summary.ByWeekday))
	}
	if summary.PeakWeekday != time.Monday.String() && summary.PeakWeekday != time.Tuesday.String() {
		t.Fatalf("peak weekday = %s", summary.PeakWeekday)
	}
	// Monday has 2 orders, Tuesday 2; the first peak wins.
	if summary.PeakWeekday != time.Monday.String() {
		t.Fatalf("peak weekday = %s, want Monday on tie order", summary.PeakWeekday)
	}
}

func TestComputeVolumeEmpty(t *testing.T) {
	summary := ComputeVolume(nil, time.UTC)
	if summary.Total != 0 || summary.PeakWeekday != "" {
		t.Fatalf("empty window: %+v", summary)
	}
	if len(summary.ByWeekday) != 7 {
		t.Fatalf("weekday rows = %d", len(summary.ByWeekday))
	}
}

func TestComputeCustomers(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	orders := []models.Order{
		{CustomerName: "Maria", CustomerEmail: "maria@example.com", Status: constants.OrderStatusCompleted, TotalAmount: money("40.00"), CreatedAt: base},
		{CustomerName: "Maria L.", CustomerEmail: "MARIA@example.com", Status: constants.OrderStatusPending, TotalAmount: money("10.00"), CreatedAt: base.Add(48 * time.Hour)},
		{CustomerName: "Maria", CustomerEmail: "maria@example.com", Status: constants.OrderStatusCancelled, TotalAmount: money("99.00"), CreatedAt: base.Add(72 * time.Hour)},
		{CustomerName: "Ana", Status: constants.OrderStatusCompleted, TotalAmount: money("20.00"), CreatedAt: base},
		{Status: constants.OrderStatusCompleted, TotalAmount: money("5.00"), CreatedAt: base},
	}
	rows := ComputeCustomers(orders)

	if len(rows) != 3 {
		t.Fatalf("expected 3 customers, got %d: %+v", len(rows), rows)
	}
	maria := rows[0]
	if maria.Key != "maria@example.com" {
		t.Fatalf("highest spender first; email key is lowercased: %+v", maria)
	}
	if maria.OrderCount != 3 {
		t.Fatalf("maria order count = %d, want 3 including the cancelled one", maria.OrderCount)
	}
	if !maria.TotalSpent.Equal(decimal.RequireFromString("50.00")) {
		t.Fatalf("maria spent = %s, want 50.00 with the cancelled order excluded", maria.TotalSpent)
	}
	if !maria.Repeat {
		t.Fatalf("three orders should flag a repeat customer")
	}
	if !maria.LastOrderAt.Equal(base.Add(72 * time.Hour)) {
		t.Fatalf("last order at = %s", maria.LastOrderAt)
	}

	var ana, unknown *CustomerSummary
	for i := range rows {
		switch rows[i].Key {
		case "Ana":
			ana = &rows[i]
		case constants.ReportCustomerUnknown:
			unknown = &rows[i]
		}
	}
	if ana == nil || ana.Repeat {
		t.Fatalf("single-order customer must not be a repeat: %+v", ana)
	}
	if unknown == nil || unknown.Name != constants.ReportCustomerUnknown {
		t.Fatalf("orders without email or name should share the unknown bucket: %+v", rows)
	}
}
