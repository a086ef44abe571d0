package realtime

import (
	"testing"

	"github.com/panaderia-next/internal/constants"
	"github.com/panaderia-next/internal/models"
)

func TestDiffOrderStatusChange(t *testing.T) {
	old := &models.Order{ID: 1, OrderNo: "ORD-20260301-001", Status: constants.OrderStatusInProgress, DeliveryStatus: constants.DeliveryStatusPending}
	updated := &models.Order{ID: 1, OrderNo: "ORD-20260301-001", Status: constants.OrderStatusReady, DeliveryStatus: constants.DeliveryStatusPending}

	change := DiffOrder(old, updated)
	if !change.StatusChanged || change.OldStatus != constants.OrderStatusInProgress || change.NewStatus != constants.OrderStatusReady {
		t.Fatalf("unexpected change: %+v", change)
	}
	if !change.BecameReady {
		t.Fatalf("transition into ready should set BecameReady")
	}
	if change.DeliveryStatusChanged {
		t.Fatalf("delivery status did not move")
	}
}

func TestDiffOrderQuietFieldEdit(t *testing.T) {
	old := &models.Order{ID: 1, OrderNo: "ORD-20260301-001", Status: constants.OrderStatusReady, DriverNotes: ""}
	updated := &models.Order{ID: 1, OrderNo: "ORD-20260301-001", Status: constants.OrderStatusReady, DriverNotes: "gate code 4417"}

	change := DiffOrder(old, updated)
	if change.StatusChanged || change.DeliveryStatusChanged || change.BecameReady {
		t.Fatalf("driver notes edit must not look like a status change: %+v", change)
	}
}

func TestDiffOrderDeliveryStatusChange(t *testing.T) {
	old := &models.Order{ID: 1, Status: constants.OrderStatusConfirmed, DeliveryStatus: constants.DeliveryStatusAssigned}
	updated := &models.Order{ID: 1, Status: constants.OrderStatusConfirmed, DeliveryStatus: constants.DeliveryStatusInTransit}

	change := DiffOrder(old, updated)
	if change.StatusChanged {
		t.Fatalf("main status did not move")
	}
	if !change.DeliveryStatusChanged || change.NewDeliveryStatus != constants.DeliveryStatusInTransit {
		t.Fatalf("unexpected change: %+v", change)
	}
}

func TestDiffOrderInsert(t *testing.T) {
	updated := &models.Order{ID: 2, OrderNo: "ORD-20260301-002", Status: constants.OrderStatusReady}

	change := DiffOrder(nil, updated)
	if change.StatusChanged || change.BecameReady {
		t.Fatalf("insert without a previous row must not announce a status change: %+v", change)
	}
	if change.OrderID != 2 || change.NewStatus != constants.OrderStatusReady {
		t.Fatalf("unexpected change: %+v", change)
	}
}

func TestDiffOrderAlreadyReady(t *testing.T) {
	old := &models.Order{ID: 1, Status: constants.OrderStatusReady}
	updated := &models.Order{ID: 1, Status: constants.OrderStatusReady}

	if change := DiffOrder(old, updated); change.BecameReady {
		t.Fatalf("staying in ready must not re-announce readiness")
	}
}
