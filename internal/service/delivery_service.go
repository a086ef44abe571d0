package service

import (
	"sort"
	"strings"
	"time"

	"github.com/panaderia-next/internal/constants"
	"github.com/panaderia-next/internal/models"
	"github.com/panaderia-next/internal/realtime"
	"github.com/panaderia-next/internal/repository"
)

// DeliveryService manages the delivery sub-state of delivery orders.
// Delivery transitions never touch the main order status: a driver can
// be assigned while the kitchen is still baking, and marking the drop
// delivered does not complete the order by itself.
type DeliveryService struct {
	orderRepo repository.OrderRepository
	staffRepo repository.StaffRepository
	feed      *realtime.Feed
	location  *time.Location
}

// NewDeliveryService creates the delivery service.
func NewDeliveryService(orderRepo repository.OrderRepository, staffRepo repository.StaffRepository, feed *realtime.Feed, location *time.Location) *DeliveryService {
	if location == nil {
		location = time.Local
	}
	return &DeliveryService{
		orderRepo: orderRepo,
		staffRepo: staffRepo,
		feed:      feed,
		location:  location,
	}
}

// AssignDriver moves a delivery order from pending to assigned and
// records the driver. The dispatcher's estimated drop-off window, when
// given, is kept on the order for the tracking page.
func (s *DeliveryService) AssignDriver(actor Actor, orderID, driverID uint, eta string) (*models.Order, error) {
	if !CanAssignDriver(actor) {
		return nil, ErrPermissionDenied
	}
	driver, err := s.staffRepo.GetByID(driverID)
	if err != nil {
		return nil, err
	}
	if driver == nil || !driver.Active {
		return nil, ErrDriverNotFound
	}
	eta = strings.TrimSpace(eta)
	return s.transitionDelivery(actor, orderID, constants.DeliveryStatusAssigned, func(updates map[string]interface{}, order *models.Order) {
		updates["driver_id"] = driverID
		order.DriverID = &driverID
		order.Driver = driver
		if eta != "" {
			updates["estimated_delivery_time"] = eta
			order.EstimatedDeliveryTime = eta
		}
	})
}

// StartDelivery moves an assigned delivery to in_transit.
func (s *DeliveryService) StartDelivery(actor Actor, orderID uint) (*models.Order, error) {
	return s.transitionDelivery(actor, orderID, constants.DeliveryStatusInTransit, nil)
}

// MarkDelivered records a successful drop-off.
func (s *DeliveryService) MarkDelivered(actor Actor, orderID uint) (*models.Order, error) {
	return s.transitionDelivery(actor, orderID, constants.DeliveryStatusDelivered, nil)
}

// MarkFailed records a failed delivery attempt.
func (s *DeliveryService) MarkFailed(actor Actor, orderID uint) (*models.Order, error) {
	return s.transitionDelivery(actor, orderID, constants.DeliveryStatusFailed, nil)
}

// RetryDelivery resets a failed delivery to pending so it can be
// reassigned. The previous driver and estimate are cleared.
func (s *DeliveryService) RetryDelivery(actor Actor, orderID uint) (*models.Order, error) {
	if !CanAssignDriver(actor) {
		return nil, ErrPermissionDenied
	}
	return s.transitionDelivery(actor, orderID, constants.DeliveryStatusPending, func(updates map[string]interface{}, order *models.Order) {
		updates["driver_id"] = nil
		updates["estimated_delivery_time"] = ""
		order.DriverID = nil
		order.Driver = nil
		order.EstimatedDeliveryTime = ""
	})
}

// UpdateDriverNotes replaces the driver's free-form notes on an order.
// Notes changes are intentionally quiet: no status fields move, so
// listeners diffing the order see nothing to announce.
func (s *DeliveryService) UpdateDriverNotes(actor Actor, orderID uint, notes string) (*models.Order, error) {
	if !CanManageDelivery(actor) {
		return nil, ErrPermissionDenied
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if !order.IsDelivery() {
		return nil, ErrOrderNotDelivery
	}

	before := *order
	now := time.Now()
	rows, err := s.orderRepo.UpdateGuarded(order.ID, order.UpdatedAt, map[string]interface{}{
		"driver_notes": strings.TrimSpace(notes),
		"updated_at":   now,
	})
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrOrderConflict
	}
	order.DriverNotes = strings.TrimSpace(notes)
	order.UpdatedAt = now
	s.publish(&before, order)
	return order, nil
}

// ListDrivers lists active staff members who can take deliveries.
func (s *DeliveryService) ListDrivers() ([]models.Staff, error) {
	return s.staffRepo.ListByRole(constants.RoleDriver)
}

// TodaysDeliveries returns today's delivery orders ordered for the
// dispatch board: active work first by delivery status, completed
// drops last, ties broken by the requested time with unscheduled
// orders sorting to the end of their group.
func (s *DeliveryService) TodaysDeliveries(now time.Time) ([]models.Order, error) {
	date := now.In(s.location).Format("2006-01-02")
	orders, err := s.orderRepo.ListDeliveriesForDate(date)
	if err != nil {
		return nil, err
	}
	SortDeliveries(orders)
	return orders, nil
}

// SortDeliveries orders delivery rows by dispatch priority, then by
// requested time ascending. Orders without a requested time use the
// end-of-day sentinel and so land after timed orders.
func SortDeliveries(orders []models.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		pi := deliveryPriority(orders[i].DeliveryStatus)
		pj := deliveryPriority(orders[j].DeliveryStatus)
		if pi != pj {
			return pi < pj
		}
		return deliveryTimeKey(orders[i].TimeNeeded) < deliveryTimeKey(orders[j].TimeNeeded)
	})
}

func deliveryPriority(status string) int {
	if p, ok := constants.DeliveryStatusPriority[status]; ok {
		return p
	}
	return len(constants.DeliveryStatusPriority)
}

func deliveryTimeKey(timeNeeded string) string {
	timeNeeded = strings.TrimSpace(timeNeeded)
	if timeNeeded == "" {
		return constants.TimeNeededUnspecified
	}
	return timeNeeded
}

func (s *DeliveryService) transitionDelivery(actor Actor, orderID uint, target string, mutate func(map[string]interface{}, *models.Order)) (*models.Order, error) {
	if !CanManageDelivery(actor) {
		return nil, ErrPermissionDenied
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if !order.IsDelivery() {
		return nil, ErrOrderNotDelivery
	}
	if order.DeliveryStatus == target && mutate == nil {
		return order, nil
	}
	if !isDeliveryTransitionAllowed(order.DeliveryStatus, target) {
		return nil, ErrDeliveryStatusInvalid
	}

	before := *order
	now := time.Now()
	updates := map[string]interface{}{
		"delivery_status": target,
		"updated_at":      now,
	}
	if mutate != nil {
		mutate(updates, order)
	}
	rows, err := s.orderRepo.UpdateGuarded(order.ID, order.UpdatedAt, updates)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrOrderConflict
	}
	order.DeliveryStatus = target
	order.UpdatedAt = now
	s.publish(&before, order)
	return order, nil
}

func (s *DeliveryService) publish(old, updated *models.Order) {
	if s.feed == nil {
		return
	}
	oldCopy := *old
	newCopy := *updated
	s.feed.Publish(realtime.Event{
		Entity: realtime.EntityOrder,
		Type:   realtime.EventUpdate,
		Old:    &oldCopy,
		New:    &newCopy,
	})
}
