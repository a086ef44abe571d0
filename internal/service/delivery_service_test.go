package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/panaderia-next/internal/constants"
	"github.com/panaderia-next/internal/models"
	"github.com/panaderia-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func newDeliveryTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.Order{}, &models.OrderItem{}, &models.OrderNote{}, &models.Staff{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedDeliveryOrder(t *testing.T, db *gorm.DB, orderNo, deliveryStatus string) *models.Order {
	t.Helper()
	order := &models.Order{
		OrderNo:        orderNo,
		CustomerName:   "Maria Lopez",
		CustomerPhone:  "305-555-0101",
		OrderType:      constants.OrderTypeDelivery,
		Status:         constants.OrderStatusConfirmed,
		DeliveryStatus: deliveryStatus,
		DateNeeded:     time.Now().UTC().Format("2006-01-02"),
		TimeNeeded:     "14:00",
		Currency:       "USD",
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("seed order: %v", err)
	}
	return order
}

func seedDriver(t *testing.T, db *gorm.DB, username string, active bool) *models.Staff {
	t.Helper()
	driver := &models.Staff{Username: username, PasswordHash: "x", Role: constants.RoleDriver, Active: active}
	if err := db.Create(driver).Error; err != nil {
		t.Fatalf("seed driver: %v", err)
	}
	return driver
}

func TestDeliveryLifecycle(t *testing.T) {
	db := newDeliveryTestDB(t, "delivery_lifecycle")
	svc := NewDeliveryService(repository.NewOrderRepository(db), repository.NewStaffRepository(db), nil, time.UTC)
	order := seedDeliveryOrder(t, db, "ORD-20260301-001", constants.DeliveryStatusPending)
	driver := seedDriver(t, db, "driver1", true)
	owner := Actor{StaffID: 1, Role: constants.RoleOwner}

	assigned, err := svc.AssignDriver(owner, order.ID, driver.ID, "14:30")
	if err != nil {
		t.Fatalf("AssignDriver: %v", err)
	}
	if assigned.DeliveryStatus != constants.DeliveryStatusAssigned || assigned.DriverID == nil || *assigned.DriverID != driver.ID {
		t.Fatalf("assignment not recorded: %+v", assigned)
	}
	if assigned.EstimatedDeliveryTime != "14:30" {
		t.Fatalf("estimated delivery time = %q", assigned.EstimatedDeliveryTime)
	}
	// Main order status is untouched by delivery moves.
	if assigned.Status != constants.OrderStatusConfirmed {
		t.Fatalf("order status changed by delivery transition: %s", assigned.Status)
	}

	inTransit, err := svc.StartDelivery(owner, order.ID)
	if err != nil {
		t.Fatalf("StartDelivery: %v", err)
	}
	if inTransit.DeliveryStatus != constants.DeliveryStatusInTransit {
		t.Fatalf("delivery status = %s", inTransit.DeliveryStatus)
	}

	delivered, err := svc.MarkDelivered(owner, order.ID)
	if err != nil {
		t.Fatalf("MarkDelivered: %v", err)
	}
	if delivered.DeliveryStatus != constants.DeliveryStatusDelivered {
		t.Fatalf("delivery status = %s", delivered.DeliveryStatus)
	}
	if delivered.Status != constants.OrderStatusConfirmed {
		t.Fatalf("marking the drop delivered must not complete the order: %s", delivered.Status)
	}
}

func TestDeliveryRetryClearsDriver(t *testing.T) {
	db := newDeliveryTestDB(t, "delivery_retry")
	svc := NewDeliveryService(repository.NewOrderRepository(db), repository.NewStaffRepository(db), nil, time.UTC)
	order := seedDeliveryOrder(t, db, "ORD-20260301-002", constants.DeliveryStatusPending)
	driver := seedDriver(t, db, "driver1", true)
	owner := Actor{StaffID: 1, Role: constants.RoleOwner}

	if _, err := svc.AssignDriver(owner, order.ID, driver.ID, "15:00"); err != nil {
		t.Fatalf("AssignDriver: %v", err)
	}
	if _, err := svc.StartDelivery(owner, order.ID); err != nil {
		t.Fatalf("StartDelivery: %v", err)
	}
	failed, err := svc.MarkFailed(owner, order.ID)
	if err != nil {
		t.Fatalf("MarkFailed: %v", err)
	}
	if failed.DeliveryStatus != constants.DeliveryStatusFailed {
		t.Fatalf("delivery status = %s", failed.DeliveryStatus)
	}

	retried, err := svc.RetryDelivery(owner, order.ID)
	if err != nil {
		t.Fatalf("RetryDelivery: %v", err)
	}
	if retried.DeliveryStatus != constants.DeliveryStatusPending {
		t.Fatalf("retry should reset to pending, got %s", retried.DeliveryStatus)
	}
	if retried.DriverID != nil {
		t.Fatalf("retry should clear the driver, got %v", *retried.DriverID)
	}
	if retried.EstimatedDeliveryTime != "" {
		t.Fatalf("retry should clear the estimate, got %q", retried.EstimatedDeliveryTime)
	}
}

func TestDeliveryTransitionRejections(t *testing.T) {
	db := newDeliveryTestDB(t, "delivery_rejections")
	svc := NewDeliveryService(repository.NewOrderRepository(db), repository.NewStaffRepository(db), nil, time.UTC)
	owner := Actor{StaffID: 1, Role: constants.RoleOwner}

	pendingOrder := seedDeliveryOrder(t, db, "ORD-20260301-003", constants.DeliveryStatusPending)
	driver := seedDriver(t, db, "driver1", true)
	inactive := seedDriver(t, db, "driver2", false)

	// Out-of-order moves fail.
	if _, err := svc.StartDelivery(owner, pendingOrder.ID); !errors.Is(err, ErrDeliveryStatusInvalid) {
		t.Fatalf("pending -> in_transit: expected ErrDeliveryStatusInvalid, got %v", err)
	}
	if _, err := svc.MarkDelivered(owner, pendingOrder.ID); !errors.Is(err, ErrDeliveryStatusInvalid) {
		t.Fatalf("pending -> delivered: expected ErrDeliveryStatusInvalid, got %v", err)
	}
	// Inactive drivers cannot take deliveries.
	if _, err := svc.AssignDriver(owner, pendingOrder.ID, inactive.ID, ""); !errors.Is(err, ErrDriverNotFound) {
		t.Fatalf("inactive driver: expected ErrDriverNotFound, got %v", err)
	}
	// Pickup orders have no delivery sub-state.
	pickup := &models.Order{
		OrderNo:       "ORD-20260301-004",
		CustomerName:  "Ana Ruiz",
		CustomerPhone: "305-555-0102",
		OrderType:     constants.OrderTypePickup,
		Status:        constants.OrderStatusConfirmed,
		DateNeeded:    time.Now().UTC().Format("2006-01-02"),
		Currency:      "USD",
	}
	if err := db.Create(pickup).Error; err != nil {
		t.Fatalf("seed pickup: %v", err)
	}
	if _, err := svc.AssignDriver(owner, pickup.ID, driver.ID, ""); !errors.Is(err, ErrOrderNotDelivery) {
		t.Fatalf("pickup assignment: expected ErrOrderNotDelivery, got %v", err)
	}
	// Customers cannot drive the sub-state machine.
	if _, err := svc.StartDelivery(Actor{CustomerID: 7}, pendingOrder.ID); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("customer delivery move: expected ErrPermissionDenied, got %v", err)
	}
}

func TestUpdateDriverNotes(t *testing.T) {
	db := newDeliveryTestDB(t, "delivery_driver_notes")
	svc := NewDeliveryService(repository.NewOrderRepository(db), repository.NewStaffRepository(db), nil, time.UTC)
	order := seedDeliveryOrder(t, db, "ORD-20260301-005", constants.DeliveryStatusAssigned)

	updated, err := svc.UpdateDriverNotes(Actor{StaffID: 3, Role: constants.RoleDriver}, order.ID, "  gate code 4417 ")
	if err != nil {
		t.Fatalf("UpdateDriverNotes: %v", err)
	}
	if updated.DriverNotes != "gate code 4417" {
		t.Fatalf("driver notes = %q", updated.DriverNotes)
	}
	if updated.DeliveryStatus != constants.DeliveryStatusAssigned {
		t.Fatalf("notes update moved the delivery status: %s", updated.DeliveryStatus)
	}
}

func TestDriverCannotAssignOrRetry(t *testing.T) {
	db := newDeliveryTestDB(t, "delivery_driver_assign")
	svc := NewDeliveryService(repository.NewOrderRepository(db), repository.NewStaffRepository(db), nil, time.UTC)
	order := seedDeliveryOrder(t, db, "ORD-20260301-006", constants.DeliveryStatusPending)
	driver := seedDriver(t, db, "driver1", true)

	// Drivers run the sub-state machine but do not dispatch work to
	// themselves or each other.
	self := Actor{StaffID: driver.ID, Role: constants.RoleDriver}
	if _, err := svc.AssignDriver(self, order.ID, driver.ID, ""); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("driver self-assign: expected ErrPermissionDenied, got %v", err)
	}

	owner := Actor{StaffID: 1, Role: constants.RoleOwner}
	if _, err := svc.AssignDriver(owner, order.ID, driver.ID, ""); err != nil {
		t.Fatalf("owner AssignDriver: %v", err)
	}
	if _, err := svc.StartDelivery(self, order.ID); err != nil {
		t.Fatalf("driver StartDelivery: %v", err)
	}
	if _, err := svc.MarkFailed(self, order.ID); err != nil {
		t.Fatalf("driver MarkFailed: %v", err)
	}
	if _, err := svc.RetryDelivery(self, order.ID); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("driver retry: expected ErrPermissionDenied, got %v", err)
	}
	if _, err := svc.RetryDelivery(Actor{StaffID: 2, Role: constants.RoleBaker}, order.ID); err != nil {
		t.Fatalf("baker RetryDelivery: %v", err)
	}
}

func TestTodaysDeliveriesFiltersDateAndType(t *testing.T) {
	db := newDeliveryTestDB(t, "delivery_board_filter")
	svc := NewDeliveryService(repository.NewOrderRepository(db), repository.NewStaffRepository(db), nil, time.UTC)

	now := time.Now().UTC()
	today := now.Format("2006-01-02")
	yesterday := now.AddDate(0, 0, -1).Format("2006-01-02")

	included := seedDeliveryOrder(t, db, "ORD-20260301-007", constants.DeliveryStatusPending)

	stale := seedDeliveryOrder(t, db, "ORD-20260301-008", constants.DeliveryStatusPending)
	if err := db.Model(stale).Update("date_needed", yesterday).Error; err != nil {
		t.Fatalf("backdate order: %v", err)
	}
	pickup := &models.Order{
		OrderNo:       "ORD-20260301-009",
		CustomerName:  "Ana Ruiz",
		CustomerPhone: "305-555-0102",
		OrderType:     constants.OrderTypePickup,
		Status:        constants.OrderStatusConfirmed,
		DateNeeded:    today,
		Currency:      "USD",
	}
	if err := db.Create(pickup).Error; err != nil {
		t.Fatalf("seed pickup: %v", err)
	}

	board, err := svc.TodaysDeliveries(now)
	if err != nil {
		t.Fatalf("TodaysDeliveries: %v", err)
	}
	if len(board) != 1 {
		t.Fatalf("board size = %d, want 1: %+v", len(board), board)
	}
	if board[0].OrderNo != included.OrderNo {
		t.Fatalf("board order = %s, want %s", board[0].OrderNo, included.OrderNo)
	}
}

func TestSortDeliveries(t *testing.T) {
	orders := []models.Order{
		{OrderNo: "d", DeliveryStatus: constants.DeliveryStatusDelivered, TimeNeeded: "09:00"},
		{OrderNo: "b", DeliveryStatus: constants.DeliveryStatusPending, TimeNeeded: ""},
		{OrderNo: "a", DeliveryStatus: constants.DeliveryStatusPending, TimeNeeded: "10:00"},
		{OrderNo: "c", DeliveryStatus: constants.DeliveryStatusInTransit, TimeNeeded: "08:00"},
	}
	SortDeliveries(orders)

	got := make([]string, 0, len(orders))
	for _, o := range orders {
		got = append(got, o.OrderNo)
	}
	// Active work first by priority; within pending, the timed order
	// beats the one using the end-of-day sentinel; delivered sorts last.
	want := []string{"a", "b", "c", "d"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sort order = %v, want %v", got, want)
		}
	}
}
