package queue

import (
	"encoding/json"

	"github.com/panaderia-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderStatusEmail is the order status notification email task.
	TaskOrderStatusEmail = constants.TaskOrderStatusEmail
	// TaskInventoryLowStock is the low stock alert task.
	TaskInventoryLowStock = constants.TaskInventoryLowStock
	// TaskOrderExpireUnpaid cancels orders whose payment window lapsed.
	TaskOrderExpireUnpaid = constants.TaskOrderExpireUnpaid
	// TaskReportDailyDigest mails the previous day's summary to owners.
	TaskReportDailyDigest = constants.TaskReportDailyDigest
)

// OrderStatusEmailPayload carries the order status email task data.
type OrderStatusEmailPayload struct {
	OrderID uint   `json:"order_id"`
	Status  string `json:"status"`
}

// InventoryLowStockPayload carries the low stock alert task data.
type InventoryLowStockPayload struct {
	InventoryItemID uint `json:"inventory_item_id"`
}

// NewOrderStatusEmailTask creates the order status email task.
func NewOrderStatusEmailTask(payload OrderStatusEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderStatusEmail, body), nil
}

// OrderExpireUnpaidPayload carries the unpaid expiry task data.
type OrderExpireUnpaidPayload struct {
	OrderID uint `json:"order_id"`
}

// NewInventoryLowStockTask creates the low stock alert task.
func NewInventoryLowStockTask(payload InventoryLowStockPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskInventoryLowStock, body), nil
}

// NewOrderExpireUnpaidTask creates the unpaid expiry task.
func NewOrderExpireUnpaidTask(payload OrderExpireUnpaidPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderExpireUnpaid, body), nil
}

// NewReportDailyDigestTask creates the daily digest task. The digest
// always covers the day before it runs, so there is no payload.
func NewReportDailyDigestTask() *asynq.Task {
	return asynq.NewTask(TaskReportDailyDigest, nil)
}
