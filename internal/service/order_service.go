package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/panaderia-next/internal/config"
	"github.com/panaderia-next/internal/constants"
	"github.com/panaderia-next/internal/logger"
	"github.com/panaderia-next/internal/models"
	"github.com/panaderia-next/internal/queue"
	"github.com/panaderia-next/internal/realtime"
	"github.com/panaderia-next/internal/repository"

	"github.com/hibiken/asynq"
	"github.com/shopspring/decimal"
)

// OrderService owns the order lifecycle: creation, status transitions,
// cancellation and refunds.
type OrderService struct {
	orderRepo   repository.OrderRepository
	noteRepo    repository.OrderNoteRepository
	menuRepo    repository.MenuRepository
	staffRepo   repository.StaffRepository
	queueClient *queue.Client
	feed        *realtime.Feed
	bakery      config.BakeryConfig
	location    *time.Location
}

// NewOrderService creates the order service.
func NewOrderService(orderRepo repository.OrderRepository, noteRepo repository.OrderNoteRepository, menuRepo repository.MenuRepository, staffRepo repository.StaffRepository, queueClient *queue.Client, feed *realtime.Feed, bakery config.BakeryConfig) *OrderService {
	loc, err := time.LoadLocation(bakery.Timezone)
	if err != nil || loc == nil {
		loc = time.Local
	}
	return &OrderService{
		orderRepo:   orderRepo,
		noteRepo:    noteRepo,
		menuRepo:    menuRepo,
		staffRepo:   staffRepo,
		queueClient: queueClient,
		feed:        feed,
		bakery:      bakery,
		location:    loc,
	}
}

// Location returns the bakery's local time zone.
func (s *OrderService) Location() *time.Location {
	return s.location
}

// CreateOrderInput is the checkout payload.
type CreateOrderInput struct {
	CustomerID        uint
	CustomerName      string
	CustomerPhone     string
	CustomerEmail     string
	Locale            string
	OrderType         string
	DateNeeded        string
	TimeNeeded        string
	AddressText       string
	CakeSize          string
	CakeFilling       string
	CakeTheme         string
	Dedication        string
	ReferenceImageURL string
	PaymentMethod     string
	Items             []CreateOrderItem
}

// CreateOrderItem is one checkout line item.
type CreateOrderItem struct {
	MenuItemID          uint
	Quantity            int
	SpecialInstructions string
}

// CreateOrder builds and persists a new pending order.
func (s *OrderService) CreateOrder(input CreateOrderInput) (*models.Order, error) {
	if strings.TrimSpace(input.CustomerName) == "" || strings.TrimSpace(input.CustomerPhone) == "" {
		return nil, ErrValidationFailed
	}
	if len(input.Items) == 0 {
		return nil, ErrValidationFailed
	}
	orderType := strings.TrimSpace(input.OrderType)
	if orderType != constants.OrderTypePickup && orderType != constants.OrderTypeDelivery {
		return nil, ErrValidationFailed
	}
	if _, err := time.Parse("2006-01-02", input.DateNeeded); err != nil {
		return nil, ErrValidationFailed
	}
	timeNeeded := strings.TrimSpace(input.TimeNeeded)
	if timeNeeded == "" {
		timeNeeded = constants.TimeNeededUnspecified
	} else if _, err := time.Parse("15:04", timeNeeded); err != nil {
		return nil, ErrValidationFailed
	}

	ids := make([]uint, 0, len(input.Items))
	for _, item := range input.Items {
		if item.MenuItemID == 0 || item.Quantity <= 0 {
			return nil, ErrValidationFailed
		}
		ids = append(ids, item.MenuItemID)
	}
	menuItems, err := s.menuRepo.GetByIDs(ids)
	if err != nil {
		return nil, err
	}
	menuByID := make(map[uint]models.MenuItem, len(menuItems))
	for _, m := range menuItems {
		menuByID[m.ID] = m
	}

	subtotal := decimal.Zero
	orderItems := make([]models.OrderItem, 0, len(input.Items))
	for _, item := range input.Items {
		menuItem, ok := menuByID[item.MenuItemID]
		if !ok {
			return nil, ErrMenuItemNotFound
		}
		if !menuItem.Available {
			return nil, ErrMenuItemUnavailable
		}
		lineTotal := menuItem.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(lineTotal)
		orderItems = append(orderItems, models.OrderItem{
			MenuItemID:          menuItem.ID,
			Name:                menuItem.Name,
			UnitPrice:           menuItem.Price,
			Quantity:            item.Quantity,
			TotalPrice:          models.NewMoneyFromDecimal(lineTotal),
			SpecialInstructions: strings.TrimSpace(item.SpecialInstructions),
		})
	}

	deliveryFee := decimal.Zero
	if orderType == constants.OrderTypeDelivery {
		deliveryFee = s.deliveryFee(subtotal)
	}
	tax := s.taxAmount(subtotal.Add(deliveryFee))
	total := subtotal.Add(deliveryFee).Add(tax)

	orderNo, err := s.generateOrderNo()
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		OrderNo:           orderNo,
		CustomerName:      strings.TrimSpace(input.CustomerName),
		CustomerPhone:     strings.TrimSpace(input.CustomerPhone),
		CustomerEmail:     strings.TrimSpace(input.CustomerEmail),
		Locale:            strings.TrimSpace(input.Locale),
		OrderType:         orderType,
		Status:            constants.OrderStatusPending,
		DateNeeded:        input.DateNeeded,
		TimeNeeded:        timeNeeded,
		CakeSize:          strings.TrimSpace(input.CakeSize),
		CakeFilling:       strings.TrimSpace(input.CakeFilling),
		CakeTheme:         strings.TrimSpace(input.CakeTheme),
		Dedication:        strings.TrimSpace(input.Dedication),
		ReferenceImageURL: strings.TrimSpace(input.ReferenceImageURL),
		Currency:          s.currency(),
		Subtotal:          models.NewMoneyFromDecimal(subtotal),
		DeliveryFee:       models.NewMoneyFromDecimal(deliveryFee),
		TaxAmount:         models.NewMoneyFromDecimal(tax),
		TotalAmount:       models.NewMoneyFromDecimal(total),
		PaymentStatus:     constants.PaymentStatusPending,
		PaymentMethod:     strings.TrimSpace(input.PaymentMethod),
	}
	if input.CustomerID != 0 {
		customerID := input.CustomerID
		order.CustomerID = &customerID
	}
	if orderType == constants.OrderTypeDelivery {
		order.DeliveryStatus = constants.DeliveryStatusPending
		applyNormalizedAddress(order, input.AddressText)
		if strings.TrimSpace(order.AddressStreet) == "" {
			return nil, ErrValidationFailed
		}
	}

	if err := s.orderRepo.Create(order, orderItems); err != nil {
		return nil, err
	}
	order.Items = orderItems

	s.publish(realtime.EventInsert, nil, order)
	s.enqueueStatusEmail(order.ID, constants.OrderStatusPending)
	s.enqueueUnpaidExpiry(order.ID)
	return order, nil
}

// ExpireUnpaid cancels an order that is still awaiting confirmation
// and payment once its payment window lapses. Orders that moved on or
// paid in the meantime are left alone. Nothing was captured, so no
// refund is opened.
func (s *OrderService) ExpireUnpaid(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, nil
	}
	if order.Status != constants.OrderStatusPending || order.PaymentStatus != constants.PaymentStatusPending {
		return order, nil
	}

	before := *order
	now := time.Now()
	rows, err := s.orderRepo.UpdateGuarded(order.ID, order.UpdatedAt, map[string]interface{}{
		"status":        constants.OrderStatusCancelled,
		"cancelled_at":  now,
		"cancel_reason": "payment window expired",
		"updated_at":    now,
	})
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrOrderConflict
	}
	order.Status = constants.OrderStatusCancelled
	order.CancelledAt = &now
	order.CancelReason = "payment window expired"
	order.UpdatedAt = now

	s.publish(realtime.EventUpdate, &before, order)
	s.enqueueStatusEmail(order.ID, constants.OrderStatusCancelled)
	return order, nil
}

// GetOrder loads a single order.
func (s *OrderService) GetOrder(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// TrackOrder loads an order for the public tracking page. The phone
// number must match the one on the order.
func (s *OrderService) TrackOrder(orderNo, phone string) (*models.Order, error) {
	order, err := s.orderRepo.GetByOrderNoAndContact(strings.TrimSpace(orderNo), strings.TrimSpace(phone))
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListOrders lists orders for the back office.
func (s *OrderService) ListOrders(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.ListAdmin(filter)
}

// ListCustomerOrders lists a registered customer's own orders.
func (s *OrderService) ListCustomerOrders(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	if filter.CustomerID == 0 {
		return nil, 0, ErrPermissionDenied
	}
	return s.orderRepo.ListByCustomer(filter)
}

// StatusUpdateResult reports a transition plus whether the follow-up
// email could be queued. EmailFailed lets handlers warn "status
// updated, but email failed" without failing the request.
type StatusUpdateResult struct {
	Order       *models.Order
	Changed     bool
	EmailQueued bool
	EmailFailed bool
}

// UpdateStatus moves an order to the target status. Reapplying the
// current status is a no-op success. The write is guarded on
// updated_at so concurrent staff edits surface as ErrOrderConflict
// instead of silently overwriting each other.
func (s *OrderService) UpdateStatus(actor Actor, orderID uint, targetStatus string) (*StatusUpdateResult, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	target := strings.TrimSpace(targetStatus)
	if target == "" {
		return nil, ErrOrderStatusInvalid
	}
	if order.Status == target {
		return &StatusUpdateResult{Order: order, Changed: false}, nil
	}
	if !CanTransitionStatus(actor, order, target) {
		return nil, ErrPermissionDenied
	}
	if target == constants.OrderStatusCancelled {
		// Cancellation goes through CancelOrder so refund policy applies.
		return nil, ErrOrderStatusInvalid
	}
	if !isTransitionAllowed(order.Status, target) {
		return nil, ErrOrderStatusInvalid
	}
	if !validateTargetForOrderType(order, target) {
		return nil, ErrOrderStatusInvalid
	}

	before := *order
	now := time.Now()
	updates := map[string]interface{}{
		"status":     target,
		"updated_at": now,
	}
	switch target {
	case constants.OrderStatusConfirmed:
		updates["confirmed_at"] = now
	case constants.OrderStatusReady:
		updates["ready_at"] = now
	case constants.OrderStatusDelivered:
		updates["delivered_at"] = now
	case constants.OrderStatusCompleted:
		updates["completed_at"] = now
	}

	rows, err := s.orderRepo.UpdateGuarded(order.ID, order.UpdatedAt, updates)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrOrderConflict
	}

	order.Status = target
	order.UpdatedAt = now
	switch target {
	case constants.OrderStatusConfirmed:
		order.ConfirmedAt = &now
	case constants.OrderStatusReady:
		order.ReadyAt = &now
	case constants.OrderStatusDelivered:
		order.DeliveredAt = &now
	case constants.OrderStatusCompleted:
		order.CompletedAt = &now
	}

	s.publish(realtime.EventUpdate, &before, order)

	result := &StatusUpdateResult{Order: order, Changed: true}
	result.EmailQueued, result.EmailFailed = s.enqueueStatusEmail(order.ID, target)
	return result, nil
}

// CancelOrderInput carries a cancellation request.
type CancelOrderInput struct {
	Reason         string
	Override       bool
	OverrideAmount *decimal.Decimal
}

// CancelOrder cancels a non-terminal order and records the intended
// refund per policy. Inside the 24 hour window the refund is zero
// unless the owner overrides it with an explicit amount.
func (s *OrderService) CancelOrder(actor Actor, orderID uint, input CancelOrderInput) (*StatusUpdateResult, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if isTerminalStatus(order.Status) {
		return nil, ErrOrderCancelNotAllowed
	}
	if !CanCancelOrder(actor, order) {
		return nil, ErrPermissionDenied
	}

	now := time.Now()
	percent := RefundPercent(now, order.NeededAt(s.location))
	refund := RefundAmount(order.TotalAmount.Decimal, percent)

	if input.Override {
		if !CanOverrideRefund(actor) {
			return nil, ErrRefundRequiresOverride
		}
		if input.OverrideAmount != nil {
			refund = input.OverrideAmount.Round(2)
			if refund.IsNegative() {
				refund = decimal.Zero
			}
			if refund.GreaterThan(order.TotalAmount.Decimal) {
				refund = order.TotalAmount.Decimal
			}
		}
	}

	before := *order
	updates := map[string]interface{}{
		"status":         constants.OrderStatusCancelled,
		"cancelled_at":   now,
		"cancel_reason":  strings.TrimSpace(input.Reason),
		"refund_amount":  models.NewMoneyFromDecimal(refund),
		"refund_percent": percent,
		"refund_status":  constants.RefundStatusPending,
		"updated_at":     now,
	}
	rows, err := s.orderRepo.UpdateGuarded(order.ID, order.UpdatedAt, updates)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrOrderConflict
	}

	order.Status = constants.OrderStatusCancelled
	order.CancelledAt = &now
	order.CancelReason = strings.TrimSpace(input.Reason)
	order.RefundAmount = models.NewMoneyFromDecimal(refund)
	order.RefundPercent = percent
	order.RefundStatus = constants.RefundStatusPending
	order.UpdatedAt = now

	s.publish(realtime.EventUpdate, &before, order)

	result := &StatusUpdateResult{Order: order, Changed: true}
	result.EmailQueued, result.EmailFailed = s.enqueueStatusEmail(order.ID, constants.OrderStatusCancelled)
	return result, nil
}

// AddNote attaches an internal staff note to an order.
func (s *OrderService) AddNote(actor Actor, orderID uint, body string) (*models.OrderNote, error) {
	if !actor.IsStaff() {
		return nil, ErrPermissionDenied
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, ErrValidationFailed
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	staffID := actor.StaffID
	authorName := ""
	if staff, err := s.staffRepo.GetByID(actor.StaffID); err == nil && staff != nil {
		authorName = staff.DisplayName
		if authorName == "" {
			authorName = staff.Username
		}
	}
	note := &models.OrderNote{
		OrderID:    order.ID,
		StaffID:    &staffID,
		AuthorName: authorName,
		Body:       body,
	}
	if err := s.noteRepo.Create(note); err != nil {
		return nil, err
	}
	return note, nil
}

// ListNotes lists an order's internal notes.
func (s *OrderService) ListNotes(orderID uint) ([]models.OrderNote, error) {
	return s.noteRepo.ListByOrder(orderID)
}

// MarkPaid records a verified payment outcome from the gateway.
func (s *OrderService) MarkPaid(orderID uint, method string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.PaymentStatus == constants.PaymentStatusPaid {
		return order, nil
	}
	now := time.Now()
	updates := map[string]interface{}{
		"payment_status": constants.PaymentStatusPaid,
		"updated_at":     now,
	}
	if strings.TrimSpace(method) != "" {
		updates["payment_method"] = strings.TrimSpace(method)
	}
	rows, err := s.orderRepo.UpdateGuarded(order.ID, order.UpdatedAt, updates)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrOrderConflict
	}
	before := *order
	order.PaymentStatus = constants.PaymentStatusPaid
	if m, ok := updates["payment_method"].(string); ok {
		order.PaymentMethod = m
	}
	order.UpdatedAt = now
	s.publish(realtime.EventUpdate, &before, order)
	return order, nil
}

// ApplyDiscount sets a staff discount on an unpaid order and
// recomputes the total. The discount replaces any earlier one rather
// than stacking.
func (s *OrderService) ApplyDiscount(actor Actor, orderID uint, amount string) (*models.Order, error) {
	if !CanAdjustPricing(actor) {
		return nil, ErrPermissionDenied
	}
	discount, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil || discount.IsNegative() {
		return nil, ErrValidationFailed
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if isTerminalStatus(order.Status) {
		return nil, ErrOrderStatusInvalid
	}
	if order.PaymentStatus == constants.PaymentStatusPaid {
		return nil, ErrOrderAlreadyPaid
	}

	gross := order.Subtotal.Add(order.DeliveryFee.Decimal).Add(order.TaxAmount.Decimal)
	if discount.GreaterThan(gross) {
		return nil, ErrValidationFailed
	}
	total := gross.Sub(discount)

	before := *order
	now := time.Now()
	rows, err := s.orderRepo.UpdateGuarded(order.ID, order.UpdatedAt, map[string]interface{}{
		"discount_amount": models.NewMoneyFromDecimal(discount),
		"total_amount":    models.NewMoneyFromDecimal(total),
		"updated_at":      now,
	})
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrOrderConflict
	}
	order.DiscountAmount = models.NewMoneyFromDecimal(discount)
	order.TotalAmount = models.NewMoneyFromDecimal(total)
	order.UpdatedAt = now
	s.publish(realtime.EventUpdate, &before, order)
	return order, nil
}

func (s *OrderService) currency() string {
	if strings.TrimSpace(s.bakery.Currency) != "" {
		return strings.TrimSpace(s.bakery.Currency)
	}
	return constants.SiteCurrencyDefault
}

func (s *OrderService) deliveryFee(subtotal decimal.Decimal) decimal.Decimal {
	fee, err := decimal.NewFromString(strings.TrimSpace(s.bakery.DeliveryFee))
	if err != nil {
		fee = decimal.Zero
	}
	if freeMin, err := decimal.NewFromString(strings.TrimSpace(s.bakery.FreeDeliveryMinimum)); err == nil && freeMin.IsPositive() {
		if subtotal.GreaterThanOrEqual(freeMin) {
			return decimal.Zero
		}
	}
	return fee
}

// taxAmount applies the configured sales tax rate to the taxable
// amount. A zero, unset or malformed rate yields no tax.
func (s *OrderService) taxAmount(taxable decimal.Decimal) decimal.Decimal {
	rate, err := decimal.NewFromString(strings.TrimSpace(s.bakery.TaxRate))
	if err != nil || !rate.IsPositive() {
		return decimal.Zero
	}
	return taxable.Mul(rate).Round(2)
}

// generateOrderNo builds ORD-<yyyymmdd>-<seq> with a per-day sequence.
func (s *OrderService) generateOrderNo() (string, error) {
	day := time.Now().In(s.location).Format("20060102")
	prefix := fmt.Sprintf("ORD-%s-", day)
	count, err := s.orderRepo.CountCreatedToday(prefix)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%03d", prefix, count+1), nil
}

func (s *OrderService) publish(eventType realtime.EventType, old, updated *models.Order) {
	if s.feed == nil {
		return
	}
	event := realtime.Event{
		Entity: realtime.EntityOrder,
		Type:   eventType,
	}
	if old != nil {
		oldCopy := *old
		event.Old = &oldCopy
	}
	if updated != nil {
		newCopy := *updated
		event.New = &newCopy
	}
	s.feed.Publish(event)
}

// enqueueStatusEmail queues the notification email for a status
// change. Returns (queued, failed): both false when there is no
// receiver to notify.
func (s *OrderService) enqueueStatusEmail(orderID uint, status string) (queued bool, failed bool) {
	if s.queueClient == nil || !s.queueClient.Enabled() {
		return false, false
	}
	receiver, err := s.orderRepo.ResolveReceiverEmailByOrderID(orderID)
	if err == nil && strings.TrimSpace(receiver) == "" {
		return false, false
	}
	if err := s.queueClient.EnqueueOrderStatusEmail(queue.OrderStatusEmailPayload{
		OrderID: orderID,
		Status:  status,
	}); err != nil {
		logger.Warnw("order_enqueue_status_email_failed",
			"order_id", orderID,
			"status", status,
			"error", err,
		)
		return false, true
	}
	return true, false
}

// enqueueUnpaidExpiry schedules the payment-window check for a new
// order when expiry is configured.
func (s *OrderService) enqueueUnpaidExpiry(orderID uint) {
	if s.queueClient == nil || !s.queueClient.Enabled() || s.bakery.UnpaidExpireHours <= 0 {
		return
	}
	delay := time.Duration(s.bakery.UnpaidExpireHours) * time.Hour
	if err := s.queueClient.EnqueueOrderExpireUnpaid(queue.OrderExpireUnpaidPayload{
		OrderID: orderID,
	}, asynq.ProcessIn(delay)); err != nil {
		logger.Warnw("order_enqueue_unpaid_expiry_failed",
			"order_id", orderID,
			"error", err,
		)
	}
}
