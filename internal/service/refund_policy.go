package service

import (
	"time"

	"github.com/shopspring/decimal"
)

// Refund policy windows, in hours before the order's needed time.
const (
	fullRefundWindowHours = 48
	halfRefundWindowHours = 24
)

// RefundPercent returns the refund percentage for cancelling at now
// against the order's needed time: 100 when more than 48 hours out,
// 50 between 24 and 48 hours, 0 inside 24 hours. A zero neededAt is
// treated as far in the future, so the full refund applies.
func RefundPercent(now, neededAt time.Time) int {
	if neededAt.IsZero() {
		return 100
	}
	remaining := neededAt.Sub(now)
	switch {
	case remaining > fullRefundWindowHours*time.Hour:
		return 100
	case remaining > halfRefundWindowHours*time.Hour:
		return 50
	default:
		return 0
	}
}

// RefundAmount computes total * percent, rounded half-up to 2 places.
func RefundAmount(total decimal.Decimal, percent int) decimal.Decimal {
	if percent <= 0 {
		return decimal.Zero.Round(2)
	}
	return total.
		Mul(decimal.NewFromInt(int64(percent))).
		Div(decimal.NewFromInt(100)).
		Round(2)
}
