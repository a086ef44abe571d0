package realtime

import (
	"github.com/panaderia-next/internal/constants"
	"github.com/panaderia-next/internal/models"
)

// OrderChange is the canonical diff between two versions of an order.
// Every view consumes this one diff instead of comparing rows itself,
// so edits to fields like driver_notes never masquerade as a status
// change.
type OrderChange struct {
	OrderID               uint   `json:"order_id"`
	OrderNo               string `json:"order_no"`
	StatusChanged         bool   `json:"status_changed"`
	OldStatus             string `json:"old_status,omitempty"`
	NewStatus             string `json:"new_status,omitempty"`
	BecameReady           bool   `json:"became_ready"`
	DeliveryStatusChanged bool   `json:"delivery_status_changed"`
	OldDeliveryStatus     string `json:"old_delivery_status,omitempty"`
	NewDeliveryStatus     string `json:"new_delivery_status,omitempty"`
}

// DiffOrder computes the canonical change between old and new rows.
// old may be nil (insert, or previous state unknown); in that case no
// status-change notification fires, only the new state is recorded.
func DiffOrder(old, updated *models.Order) OrderChange {
	change := OrderChange{}
	if updated == nil {
		if old != nil {
			change.OrderID = old.ID
			change.OrderNo = old.OrderNo
		}
		return change
	}

	change.OrderID = updated.ID
	change.OrderNo = updated.OrderNo
	change.NewStatus = updated.Status
	change.NewDeliveryStatus = updated.DeliveryStatus

	if old == nil {
		return change
	}

	change.OldStatus = old.Status
	change.OldDeliveryStatus = old.DeliveryStatus
	change.StatusChanged = old.Status != updated.Status
	change.DeliveryStatusChanged = old.DeliveryStatus != updated.DeliveryStatus
	change.BecameReady = change.StatusChanged &&
		updated.Status == constants.OrderStatusReady &&
		old.Status != constants.OrderStatusReady

	return change
}
