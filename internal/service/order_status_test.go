package service

import (
	"testing"

	"github.com/panaderia-next/internal/constants"
	"github.com/panaderia-next/internal/models"
)

func TestIsTransitionAllowed(t *testing.T) {
	cases := []struct {
		current string
		target  string
		want    bool
	}{
		{constants.OrderStatusPending, constants.OrderStatusConfirmed, true},
		{constants.OrderStatusPending, constants.OrderStatusReady, true},
		{constants.OrderStatusPending, constants.OrderStatusCancelled, true},
		{constants.OrderStatusPending, constants.OrderStatusCompleted, false},
		{constants.OrderStatusPending, constants.OrderStatusDelivered, false},
		{constants.OrderStatusConfirmed, constants.OrderStatusInProgress, true},
		{constants.OrderStatusConfirmed, constants.OrderStatusReady, true},
		{constants.OrderStatusConfirmed, constants.OrderStatusPending, false},
		{constants.OrderStatusInProgress, constants.OrderStatusReady, true},
		{constants.OrderStatusInProgress, constants.OrderStatusConfirmed, false},
		{constants.OrderStatusReady, constants.OrderStatusOutForDelivery, true},
		{constants.OrderStatusReady, constants.OrderStatusCompleted, true},
		{constants.OrderStatusReady, constants.OrderStatusInProgress, false},
		{constants.OrderStatusOutForDelivery, constants.OrderStatusDelivered, true},
		{constants.OrderStatusOutForDelivery, constants.OrderStatusReady, false},
		{constants.OrderStatusDelivered, constants.OrderStatusCompleted, true},
		{constants.OrderStatusDelivered, constants.OrderStatusCancelled, false},
		{constants.OrderStatusCompleted, constants.OrderStatusPending, false},
		{constants.OrderStatusCompleted, constants.OrderStatusCancelled, false},
		{constants.OrderStatusCancelled, constants.OrderStatusPending, false},
	}
	for _, c := range cases {
		if got := isTransitionAllowed(c.current, c.target); got != c.want {
			t.Fatalf("isTransitionAllowed(%s, %s) = %v, want %v", c.current, c.target, got, c.want)
		}
	}
}

func TestIsTransitionAllowedSameStatus(t *testing.T) {
	for _, status := range constants.OrderStatuses {
		if !isTransitionAllowed(status, status) {
			t.Fatalf("reapplying status %s should be allowed", status)
		}
	}
}

func TestIsTransitionAllowedUnknownStatus(t *testing.T) {
	if isTransitionAllowed("baking", constants.OrderStatusReady) {
		t.Fatalf("unknown current status must not transition")
	}
	if isTransitionAllowed(constants.OrderStatusPending, "baking") {
		t.Fatalf("unknown target status must not be reachable")
	}
}

func TestIsDeliveryTransitionAllowed(t *testing.T) {
	cases := []struct {
		current string
		target  string
		want    bool
	}{
		{constants.DeliveryStatusPending, constants.DeliveryStatusAssigned, true},
		{constants.DeliveryStatusPending, constants.DeliveryStatusInTransit, false},
		{constants.DeliveryStatusAssigned, constants.DeliveryStatusInTransit, true},
		{constants.DeliveryStatusAssigned, constants.DeliveryStatusDelivered, false},
		{constants.DeliveryStatusInTransit, constants.DeliveryStatusDelivered, true},
		{constants.DeliveryStatusInTransit, constants.DeliveryStatusFailed, true},
		{constants.DeliveryStatusFailed, constants.DeliveryStatusPending, true},
		{constants.DeliveryStatusFailed, constants.DeliveryStatusAssigned, false},
		{constants.DeliveryStatusDelivered, constants.DeliveryStatusPending, false},
	}
	for _, c := range cases {
		if got := isDeliveryTransitionAllowed(c.current, c.target); got != c.want {
			t.Fatalf("isDeliveryTransitionAllowed(%s, %s) = %v, want %v", c.current, c.target, got, c.want)
		}
	}
}

func TestIsTerminalStatus(t *testing.T) {
	terminal := map[string]bool{
		constants.OrderStatusCompleted: true,
		constants.OrderStatusCancelled: true,
		constants.OrderStatusDelivered: true,
	}
	for _, status := range constants.OrderStatuses {
		if got := isTerminalStatus(status); got != terminal[status] {
			t.Fatalf("isTerminalStatus(%s) = %v, want %v", status, got, terminal[status])
		}
	}
}

func TestValidateTargetForOrderType(t *testing.T) {
	pickup := &models.Order{OrderType: constants.OrderTypePickup, Status: constants.OrderStatusReady}
	delivery := &models.Order{OrderType: constants.OrderTypeDelivery, Status: constants.OrderStatusReady}

	if validateTargetForOrderType(pickup, constants.OrderStatusOutForDelivery) {
		t.Fatalf("pickup order must not go out for delivery")
	}
	if !validateTargetForOrderType(delivery, constants.OrderStatusOutForDelivery) {
		t.Fatalf("delivery order should go out for delivery from ready")
	}
	if validateTargetForOrderType(delivery, constants.OrderStatusCompleted) {
		t.Fatalf("delivery order must not complete straight from ready")
	}
	if !validateTargetForOrderType(pickup, constants.OrderStatusCompleted) {
		t.Fatalf("pickup order should complete from ready")
	}

	deliveredDelivery := &models.Order{OrderType: constants.OrderTypeDelivery, Status: constants.OrderStatusDelivered}
	if !validateTargetForOrderType(deliveredDelivery, constants.OrderStatusCompleted) {
		t.Fatalf("delivered delivery order should complete")
	}
}
