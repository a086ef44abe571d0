package service

import (
	"github.com/panaderia-next/internal/constants"
	"github.com/panaderia-next/internal/models"
)

// Actor identifies who is performing an operation: a staff member with
// a role, or a customer (possibly guest) identified by customer ID.
type Actor struct {
	StaffID    uint
	Role       string
	CustomerID uint
}

// IsStaff reports whether the actor is an authenticated staff member.
func (a Actor) IsStaff() bool {
	return a.StaffID != 0 && a.Role != ""
}

// IsOwner reports whether the actor holds the owner role.
func (a Actor) IsOwner() bool {
	return a.Role == constants.RoleOwner
}

// CanTransitionStatus checks whether the actor may move an order to
// the target status. All status changes are staff actions except that
// drivers may only advance delivery-related statuses.
func CanTransitionStatus(actor Actor, order *models.Order, target string) bool {
	if !actor.IsStaff() {
		return false
	}
	switch actor.Role {
	case constants.RoleOwner, constants.RoleBaker:
		return true
	case constants.RoleDriver:
		switch target {
		case constants.OrderStatusOutForDelivery, constants.OrderStatusDelivered:
			return order.IsDelivery()
		}
		return false
	}
	return false
}

// CanCancelOrder checks whether the actor may cancel the order: the
// owning customer, or staff with role owner or baker.
func CanCancelOrder(actor Actor, order *models.Order) bool {
	if actor.IsStaff() {
		return actor.Role == constants.RoleOwner || actor.Role == constants.RoleBaker
	}
	if actor.CustomerID != 0 && order.CustomerID != nil {
		return *order.CustomerID == actor.CustomerID
	}
	return false
}

// CanOverrideRefund checks whether the actor may force a refund amount
// outside the policy formula.
func CanOverrideRefund(actor Actor) bool {
	return actor.IsOwner()
}

// CanManageDelivery checks whether the actor may drive the delivery
// sub-state machine.
func CanManageDelivery(actor Actor) bool {
	if !actor.IsStaff() {
		return false
	}
	switch actor.Role {
	case constants.RoleOwner, constants.RoleBaker, constants.RoleDriver:
		return true
	}
	return false
}

// CanAssignDriver checks whether the actor may assign drivers.
func CanAssignDriver(actor Actor) bool {
	return actor.Role == constants.RoleOwner || actor.Role == constants.RoleBaker
}

// CanAdjustPricing checks whether the actor may discount an order.
func CanAdjustPricing(actor Actor) bool {
	return actor.Role == constants.RoleOwner || actor.Role == constants.RoleBaker
}
