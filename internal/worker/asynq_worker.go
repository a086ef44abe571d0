package worker

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/panaderia-next/internal/constants"
	"github.com/panaderia-next/internal/logger"
	"github.com/panaderia-next/internal/provider"
	"github.com/panaderia-next/internal/queue"
	"github.com/panaderia-next/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer processes queued tasks with the full service container.
type Consumer struct {
	*provider.Container
}

// NewConsumer creates the task consumer.
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register binds task handlers to the mux.
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderStatusEmail, c.handleOrderStatusEmail)
	mux.HandleFunc(queue.TaskInventoryLowStock, c.handleInventoryLowStock)
	mux.HandleFunc(queue.TaskOrderExpireUnpaid, c.handleOrderExpireUnpaid)
	mux.HandleFunc(queue.TaskReportDailyDigest, c.handleReportDailyDigest)
}

func (c *Consumer) handleOrderExpireUnpaid(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_expire_unpaid_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderExpireUnpaidPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_expire_unpaid_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_expire_unpaid_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	if c.OrderService == nil {
		logger.Warnw("worker_expire_unpaid_skip_order_service_nil", "order_id", payload.OrderID)
		return nil
	}
	order, err := c.OrderService.ExpireUnpaid(payload.OrderID)
	if err != nil {
		logger.Warnw("worker_expire_unpaid_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	if order == nil {
		logger.Debugw("worker_expire_unpaid_skip_order_not_found", "order_id", payload.OrderID)
	}
	return nil
}

func (c *Consumer) handleReportDailyDigest(_ context.Context, _ *asynq.Task) error {
	if c == nil {
		return nil
	}
	if c.ReportService == nil || c.OrderService == nil || c.EmailService == nil {
		logger.Warnw("worker_daily_digest_skip_services_nil")
		return nil
	}

	loc := c.OrderService.Location()
	now := time.Now().In(loc)
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	start := end.AddDate(0, 0, -1)

	orders, err := c.ReportService.ReportWindow(start, end)
	if err != nil {
		logger.Warnw("worker_daily_digest_report_failed", "date", start.Format("2006-01-02"), "error", err)
		return err
	}
	summary := c.ReportService.Revenue(orders)
	cancelled := 0
	for i := range orders {
		if orders[i].Status == constants.OrderStatusCancelled {
			cancelled++
		}
	}
	currency := constants.SiteCurrencyDefault
	if c.Config != nil && strings.TrimSpace(c.Config.Bakery.Currency) != "" {
		currency = strings.TrimSpace(c.Config.Bakery.Currency)
	}
	input := service.DailyDigestInput{
		Date:       start.Format("2006-01-02"),
		OrderCount: len(orders),
		Revenue:    summary.TotalRevenue,
		Currency:   currency,
		Cancelled:  cancelled,
	}

	staff, err := c.StaffRepo.ListByRole(constants.RoleOwner)
	if err != nil {
		logger.Warnw("worker_daily_digest_list_owners_failed", "error", err)
		return err
	}
	sent := 0
	for i := range staff {
		email := strings.TrimSpace(staff[i].Email)
		if email == "" {
			continue
		}
		if err := c.EmailService.SendDailyDigest(email, input, ""); err != nil {
			logger.Warnw("worker_daily_digest_send_failed", "receiver_email", email, "error", err)
			continue
		}
		sent++
	}
	if sent == 0 {
		logger.Debugw("worker_daily_digest_no_receivers", "date", input.Date)
	}
	return nil
}

func (c *Consumer) handleOrderStatusEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_status_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderStatusEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_status_email_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_status_email_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	order, err := c.OrderRepo.GetByID(payload.OrderID)
	if err != nil {
		logger.Warnw("worker_order_status_email_fetch_order_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	if order == nil {
		logger.Debugw("worker_order_status_email_skip_order_not_found", "order_id", payload.OrderID)
		return nil
	}

	receiverEmail := strings.TrimSpace(order.CustomerEmail)
	locale := strings.TrimSpace(order.Locale)
	if order.CustomerID != nil {
		customer, err := c.CustomerRepo.GetByID(*order.CustomerID)
		if err != nil {
			logger.Warnw("worker_order_status_email_fetch_customer_failed", "order_id", order.ID, "customer_id", *order.CustomerID, "error", err)
			return err
		}
		if customer != nil {
			if receiverEmail == "" {
				receiverEmail = strings.TrimSpace(customer.Email)
			}
			if locale == "" {
				locale = strings.TrimSpace(customer.Locale)
			}
		}
	}
	if receiverEmail == "" {
		logger.Debugw("worker_order_status_email_skip_empty_receiver", "order_id", order.ID, "order_no", order.OrderNo)
		return nil
	}
	if c.EmailService == nil {
		logger.Warnw("worker_order_status_email_skip_email_service_nil", "order_id", order.ID, "order_no", order.OrderNo)
		return nil
	}

	status := strings.TrimSpace(payload.Status)
	if status == "" {
		status = order.Status
	}
	input := service.OrderStatusEmailInput{
		OrderNo:      order.OrderNo,
		Status:       status,
		CustomerName: order.CustomerName,
		OrderType:    order.OrderType,
		DateNeeded:   order.DateNeeded,
		TimeNeeded:   order.TimeNeeded,
		Total:        order.TotalAmount,
		Currency:     order.Currency,
		RefundAmount: order.RefundAmount,
	}
	if err := c.EmailService.SendOrderStatusEmail(receiverEmail, input, locale); err != nil {
		logger.Warnw("worker_order_status_email_send_failed",
			"order_id", order.ID,
			"order_no", order.OrderNo,
			"receiver_email", receiverEmail,
			"status", status,
			"error", err,
		)
		return err
	}
	return nil
}

func (c *Consumer) handleInventoryLowStock(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_low_stock_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.InventoryLowStockPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_low_stock_unmarshal_failed", "error", err)
		return err
	}
	if payload.InventoryItemID == 0 {
		logger.Debugw("worker_low_stock_skip_invalid_payload", "item_id", payload.InventoryItemID)
		return nil
	}
	item, err := c.InventoryRepo.GetByID(payload.InventoryItemID)
	if err != nil {
		logger.Warnw("worker_low_stock_fetch_item_failed", "item_id", payload.InventoryItemID, "error", err)
		return err
	}
	if item == nil {
		logger.Debugw("worker_low_stock_skip_item_not_found", "item_id", payload.InventoryItemID)
		return nil
	}
	if !item.IsLowStock() {
		// Restocked between enqueue and processing.
		logger.Debugw("worker_low_stock_skip_restocked", "item_id", item.ID, "sku", item.SKU)
		return nil
	}
	if c.EmailService == nil {
		logger.Warnw("worker_low_stock_skip_email_service_nil", "item_id", item.ID)
		return nil
	}

	staff, err := c.StaffRepo.ListByRole(constants.RoleOwner)
	if err != nil {
		logger.Warnw("worker_low_stock_list_owners_failed", "item_id", item.ID, "error", err)
		return err
	}
	sent := 0
	for i := range staff {
		email := strings.TrimSpace(staff[i].Email)
		if email == "" {
			continue
		}
		if err := c.EmailService.SendLowStockAlert(email, item, ""); err != nil {
			logger.Warnw("worker_low_stock_send_failed",
				"item_id", item.ID,
				"sku", item.SKU,
				"receiver_email", email,
				"error", err,
			)
			continue
		}
		sent++
	}
	if sent == 0 {
		logger.Debugw("worker_low_stock_no_receivers", "item_id", item.ID, "sku", item.SKU)
	}
	return nil
}
