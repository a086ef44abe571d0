package service

import (
	"testing"

	"github.com/panaderia-next/internal/constants"
	"github.com/panaderia-next/internal/models"
)

func TestCanTransitionStatusByRole(t *testing.T) {
	delivery := &models.Order{OrderType: constants.OrderTypeDelivery}
	pickup := &models.Order{OrderType: constants.OrderTypePickup}

	owner := Actor{StaffID: 1, Role: constants.RoleOwner}
	baker := Actor{StaffID: 2, Role: constants.RoleBaker}
	driver := Actor{StaffID: 3, Role: constants.RoleDriver}

	if !CanTransitionStatus(owner, pickup, constants.OrderStatusConfirmed) {
		t.Fatalf("owner should transition any status")
	}
	if !CanTransitionStatus(baker, pickup, constants.OrderStatusReady) {
		t.Fatalf("baker should transition any status")
	}
	if !CanTransitionStatus(driver, delivery, constants.OrderStatusOutForDelivery) {
		t.Fatalf("driver should take a delivery order out")
	}
	if !CanTransitionStatus(driver, delivery, constants.OrderStatusDelivered) {
		t.Fatalf("driver should mark a delivery order delivered")
	}
	if CanTransitionStatus(driver, delivery, constants.OrderStatusConfirmed) {
		t.Fatalf("driver must not confirm orders")
	}
	if CanTransitionStatus(driver, pickup, constants.OrderStatusOutForDelivery) {
		t.Fatalf("driver must not move a pickup order out for delivery")
	}
	if CanTransitionStatus(Actor{CustomerID: 9}, pickup, constants.OrderStatusConfirmed) {
		t.Fatalf("customers must not transition statuses")
	}
	if CanTransitionStatus(Actor{}, pickup, constants.OrderStatusConfirmed) {
		t.Fatalf("anonymous actor must not transition statuses")
	}
}

func TestCanCancelOrder(t *testing.T) {
	customerID := uint(7)
	owned := &models.Order{CustomerID: &customerID}
	guest := &models.Order{}

	if !CanCancelOrder(Actor{StaffID: 1, Role: constants.RoleOwner}, guest) {
		t.Fatalf("owner should cancel")
	}
	if !CanCancelOrder(Actor{StaffID: 2, Role: constants.RoleBaker}, guest) {
		t.Fatalf("baker should cancel")
	}
	if CanCancelOrder(Actor{StaffID: 3, Role: constants.RoleDriver}, guest) {
		t.Fatalf("driver must not cancel")
	}
	if !CanCancelOrder(Actor{CustomerID: 7}, owned) {
		t.Fatalf("owning customer should cancel their order")
	}
	if CanCancelOrder(Actor{CustomerID: 8}, owned) {
		t.Fatalf("another customer must not cancel")
	}
	if CanCancelOrder(Actor{CustomerID: 7}, guest) {
		t.Fatalf("customer must not cancel a guest order")
	}
}

func TestDeliveryCapabilities(t *testing.T) {
	if !CanOverrideRefund(Actor{StaffID: 1, Role: constants.RoleOwner}) {
		t.Fatalf("owner should override refunds")
	}
	if CanOverrideRefund(Actor{StaffID: 2, Role: constants.RoleBaker}) {
		t.Fatalf("baker must not override refunds")
	}

	for _, role := range []string{constants.RoleOwner, constants.RoleBaker, constants.RoleDriver} {
		if !CanManageDelivery(Actor{StaffID: 1, Role: role}) {
			t.Fatalf("role %s should manage deliveries", role)
		}
	}
	if CanManageDelivery(Actor{CustomerID: 5}) {
		t.Fatalf("customers must not manage deliveries")
	}

	if !CanAssignDriver(Actor{StaffID: 1, Role: constants.RoleOwner}) {
		t.Fatalf("owner should assign drivers")
	}
	if !CanAssignDriver(Actor{StaffID: 2, Role: constants.RoleBaker}) {
		t.Fatalf("baker should assign drivers")
	}
	if CanAssignDriver(Actor{StaffID: 3, Role: constants.RoleDriver}) {
		t.Fatalf("driver must not assign drivers")
	}
}
