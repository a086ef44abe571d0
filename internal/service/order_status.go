package service

import (
	"github.com/panaderia-next/internal/constants"
	"github.com/panaderia-next/internal/models"
)

// allowedTransitions is the order status machine. Reapplying the
// current status is treated as a no-op success, handled separately.
var allowedTransitions = map[string]map[string]bool{
	constants.OrderStatusPending: {
		constants.OrderStatusConfirmed: true,
		constants.OrderStatusReady:     true,
		constants.OrderStatusCancelled: true,
	},
	constants.OrderStatusConfirmed: {
		constants.OrderStatusInProgress: true,
		constants.OrderStatusReady:      true,
		constants.OrderStatusCancelled:  true,
	},
	constants.OrderStatusInProgress: {
		constants.OrderStatusReady:     true,
		constants.OrderStatusCancelled: true,
	},
	constants.OrderStatusReady: {
		constants.OrderStatusOutForDelivery: true,
		constants.OrderStatusCompleted:      true,
		constants.OrderStatusCancelled:      true,
	},
	constants.OrderStatusOutForDelivery: {
		constants.OrderStatusDelivered: true,
		constants.OrderStatusCancelled: true,
	},
	constants.OrderStatusDelivered: {
		constants.OrderStatusCompleted: true,
	},
}

// allowedDeliveryTransitions is the delivery sub-state machine,
// independent of the main order status.
var allowedDeliveryTransitions = map[string]map[string]bool{
	constants.DeliveryStatusPending: {
		constants.DeliveryStatusAssigned: true,
	},
	constants.DeliveryStatusAssigned: {
		constants.DeliveryStatusInTransit: true,
	},
	constants.DeliveryStatusInTransit: {
		constants.DeliveryStatusDelivered: true,
		constants.DeliveryStatusFailed:    true,
	},
	constants.DeliveryStatusFailed: {
		constants.DeliveryStatusPending: true, // retry
	},
}

func isTransitionAllowed(current, target string) bool {
	if current == target {
		return true
	}
	nexts, ok := allowedTransitions[current]
	if !ok {
		return false
	}
	return nexts[target]
}

func isDeliveryTransitionAllowed(current, target string) bool {
	if current == target {
		return true
	}
	nexts, ok := allowedDeliveryTransitions[current]
	if !ok {
		return false
	}
	return nexts[target]
}

// isTerminalStatus reports whether cancellation and issue reporting
// are shut off for the status.
func isTerminalStatus(status string) bool {
	switch status {
	case constants.OrderStatusCompleted, constants.OrderStatusCancelled, constants.OrderStatusDelivered:
		return true
	}
	return false
}

// validateTargetForOrderType rejects branches that do not match the
// order's fulfillment option.
func validateTargetForOrderType(order *models.Order, target string) bool {
	switch target {
	case constants.OrderStatusOutForDelivery:
		return order.IsDelivery()
	case constants.OrderStatusCompleted:
		if order.Status == constants.OrderStatusReady {
			return !order.IsDelivery()
		}
		return true
	}
	return true
}
