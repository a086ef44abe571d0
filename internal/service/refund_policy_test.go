package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestRefundPercentWindows(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		name     string
		neededAt time.Time
		want     int
	}{
		{"more than 48h out", now.Add(49 * time.Hour), 100},
		{"exactly 48h out", now.Add(48 * time.Hour), 50},
		{"between 24h and 48h", now.Add(30 * time.Hour), 50},
		{"exactly 24h out", now.Add(24 * time.Hour), 0},
		{"inside 24h", now.Add(3 * time.Hour), 0},
		{"already past", now.Add(-2 * time.Hour), 0},
		{"no needed time", time.Time{}, 100},
	}
	for _, c := range cases {
		if got := RefundPercent(now, c.neededAt); got != c.want {
			t.Fatalf("%s: RefundPercent = %d, want %d", c.name, got, c.want)
		}
	}
}

func TestRefundAmount(t *testing.T) {
	total := decimal.RequireFromString("38.00")
	if got := RefundAmount(total, 100); !got.Equal(decimal.RequireFromString("38.00")) {
		t.Fatalf("full refund = %s, want 38.00", got)
	}
	if got := RefundAmount(total, 50); !got.Equal(decimal.RequireFromString("19.00")) {
		t.Fatalf("half refund = %s, want 19.00", got)
	}
	if got := RefundAmount(total, 0); !got.IsZero() {
		t.Fatalf("zero percent refund = %s, want 0", got)
	}
	// Half of an odd cent amount rounds half-up to two places.
	odd := decimal.RequireFromString("10.01")
	if got := RefundAmount(odd, 50); !got.Equal(decimal.RequireFromString("5.01")) {
		t.Fatalf("rounded refund = %s, want 5.01", got)
	}
}
