package admin

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/panaderia-next/internal/http/response"
	"github.com/panaderia-next/internal/i18n"
	"github.com/panaderia-next/internal/repository"
	"github.com/panaderia-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// AdminListOrders lists orders with staff-side filters.
func (h *Handler) AdminListOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	createdFrom, err := parseTimeNullable(strings.TrimSpace(c.Query("created_from")))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	createdTo, err := parseTimeNullable(strings.TrimSpace(c.Query("created_to")))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	orders, total, err := h.OrderService.ListOrders(repository.OrderListFilter{
		Page:           page,
		PageSize:       pageSize,
		Status:         strings.TrimSpace(c.Query("status")),
		OrderType:      strings.TrimSpace(c.Query("order_type")),
		DeliveryStatus: strings.TrimSpace(c.Query("delivery_status")),
		OrderNo:        strings.TrimSpace(c.Query("order_no")),
		Phone:          strings.TrimSpace(c.Query("phone")),
		Search:         strings.TrimSpace(c.Query("search")),
		DateNeeded:     strings.TrimSpace(c.Query("date_needed")),
		CreatedFrom:    createdFrom,
		CreatedTo:      createdTo,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	response.SuccessWithPage(c, orders, response.NewPagination(page, pageSize, total))
}

// AdminGetOrder returns one order with its items and notes.
func (h *Handler) AdminGetOrder(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "error.id_invalid", nil)
		return
	}

	order, err := h.OrderService.GetOrder(uint(orderID))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			respondError(c, response.CodeNotFound, "error.order_not_found", nil)
		default:
			respondError(c, response.CodeInternal, "error.internal", err)
		}
		return
	}

	response.Success(c, order)
}

// AdminUpdateOrderStatusRequest is the status change payload.
type AdminUpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AdminUpdateOrderStatus moves an order through its lifecycle.
func (h *Handler) AdminUpdateOrderStatus(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "error.id_invalid", nil)
		return
	}

	var req AdminUpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	result, err := h.OrderService.UpdateStatus(staffActor(c), uint(orderID), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			respondError(c, response.CodeNotFound, "error.order_not_found", nil)
		case errors.Is(err, service.ErrOrderStatusInvalid):
			respondError(c, response.CodeBadRequest, "error.invalid_transition", nil)
		case errors.Is(err, service.ErrOrderConflict):
			respondError(c, response.CodeConflict, "error.order_conflict", nil)
		case errors.Is(err, service.ErrPermissionDenied):
			respondError(c, response.CodeForbidden, "error.forbidden", nil)
		default:
			respondError(c, response.CodeInternal, "error.internal", err)
		}
		return
	}

	if result.EmailFailed {
		msg := i18n.T(i18n.ResolveLocale(c), "warn.status_updated_email_failed")
		response.SuccessWithMsg(c, msg, result.Order)
		return
	}
	response.Success(c, result.Order)
}

// AdminCancelOrderRequest is the cancellation payload. OverrideAmount
// is only honored together with Override.
type AdminCancelOrderRequest struct {
	Reason         string  `json:"reason"`
	Override       bool    `json:"override"`
	OverrideAmount *string `json:"override_amount"`
}

// AdminCancelOrder cancels an order and records the refund per policy.
func (h *Handler) AdminCancelOrder(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "error.id_invalid", nil)
		return
	}

	var req AdminCancelOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	input := service.CancelOrderInput{
		Reason:   strings.TrimSpace(req.Reason),
		Override: req.Override,
	}
	if req.OverrideAmount != nil {
		amount, err := decimal.NewFromString(strings.TrimSpace(*req.OverrideAmount))
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", err)
			return
		}
		input.OverrideAmount = &amount
	}

	result, err := h.OrderService.CancelOrder(staffActor(c), uint(orderID), input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			respondError(c, response.CodeNotFound, "error.order_not_found", nil)
		case errors.Is(err, service.ErrOrderCancelNotAllowed):
			respondError(c, response.CodeBadRequest, "error.cancel_not_allowed", nil)
		case errors.Is(err, service.ErrRefundRequiresOverride):
			respondError(c, response.CodeForbidden, "error.refund_requires_owner", nil)
		case errors.Is(err, service.ErrOrderConflict):
			respondError(c, response.CodeConflict, "error.order_conflict", nil)
		case errors.Is(err, service.ErrPermissionDenied):
			respondError(c, response.CodeForbidden, "error.forbidden", nil)
		default:
			respondError(c, response.CodeInternal, "error.internal", err)
		}
		return
	}

	if result.EmailFailed {
		msg := i18n.T(i18n.ResolveLocale(c), "warn.status_updated_email_failed")
		response.SuccessWithMsg(c, msg, result.Order)
		return
	}
	response.Success(c, result.Order)
}

// AdminAddOrderNoteRequest is the note payload.
type AdminAddOrderNoteRequest struct {
	Body string `json:"body" binding:"required"`
}

// AdminAddOrderNote appends a staff note to an order.
func (h *Handler) AdminAddOrderNote(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "error.id_invalid", nil)
		return
	}

	var req AdminAddOrderNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	note, err := h.OrderService.AddNote(staffActor(c), uint(orderID), req.Body)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			respondError(c, response.CodeNotFound, "error.order_not_found", nil)
		case errors.Is(err, service.ErrPermissionDenied):
			respondError(c, response.CodeForbidden, "error.forbidden", nil)
		case errors.Is(err, service.ErrValidationFailed):
			respondError(c, response.CodeBadRequest, "error.validation_failed", nil)
		default:
			respondError(c, response.CodeInternal, "error.internal", err)
		}
		return
	}

	response.Success(c, note)
}

// AdminListOrderNotes lists an order's notes, newest first.
func (h *Handler) AdminListOrderNotes(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "error.id_invalid", nil)
		return
	}

	notes, err := h.OrderService.ListNotes(uint(orderID))
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, notes)
}

// AdminMarkOrderPaidRequest is the mark-paid payload.
type AdminMarkOrderPaidRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required"`
}

// AdminMarkOrderPaid records payment received for an order.
func (h *Handler) AdminMarkOrderPaid(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "error.id_invalid", nil)
		return
	}

	var req AdminMarkOrderPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	order, err := h.OrderService.MarkPaid(uint(orderID), req.PaymentMethod)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			respondError(c, response.CodeNotFound, "error.order_not_found", nil)
		case errors.Is(err, service.ErrValidationFailed):
			respondError(c, response.CodeBadRequest, "error.validation_failed", nil)
		case errors.Is(err, service.ErrOrderConflict):
			respondError(c, response.CodeConflict, "error.order_conflict", nil)
		default:
			respondError(c, response.CodeInternal, "error.internal", err)
		}
		return
	}

	response.Success(c, order)
}

// AdminApplyDiscountRequest is the staff discount payload.
type AdminApplyDiscountRequest struct {
	Amount string `json:"amount" binding:"required"`
}

// AdminApplyDiscount sets a discount on an unpaid order and recomputes
// the total.
func (h *Handler) AdminApplyDiscount(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "error.id_invalid", nil)
		return
	}
	var req AdminApplyDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	order, err := h.OrderService.ApplyDiscount(staffActor(c), uint(orderID), req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPermissionDenied):
			respondError(c, response.CodeForbidden, "error.forbidden", nil)
		case errors.Is(err, service.ErrOrderNotFound):
			respondError(c, response.CodeNotFound, "error.order_not_found", nil)
		case errors.Is(err, service.ErrValidationFailed):
			respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		case errors.Is(err, service.ErrOrderStatusInvalid):
			respondError(c, response.CodeBadRequest, "error.invalid_transition", nil)
		case errors.Is(err, service.ErrOrderAlreadyPaid):
			respondError(c, response.CodeBadRequest, "error.order_already_paid", nil)
		case errors.Is(err, service.ErrOrderConflict):
			respondError(c, response.CodeConflict, "error.order_conflict", nil)
		default:
			respondError(c, response.CodeInternal, "error.internal", err)
		}
		return
	}
	response.Success(c, order)
}

// AdminSettleRefund pushes a cancelled order's pending refund to the
// payment gateway. Owner only.
func (h *Handler) AdminSettleRefund(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "error.id_invalid", nil)
		return
	}

	if err := h.PaymentService.SettleRefund(c.Request.Context(), staffActor(c), uint(orderID)); err != nil {
		switch {
		case errors.Is(err, service.ErrPermissionDenied):
			respondError(c, response.CodeForbidden, "error.forbidden", nil)
		case errors.Is(err, service.ErrOrderNotFound):
			respondError(c, response.CodeNotFound, "error.order_not_found", nil)
		case errors.Is(err, service.ErrRefundNotPending):
			respondError(c, response.CodeBadRequest, "error.refund_not_pending", nil)
		case errors.Is(err, service.ErrPaymentDisabled):
			respondError(c, response.CodeBadRequest, "error.payment_disabled", nil)
		case errors.Is(err, service.ErrOrderConflict):
			respondError(c, response.CodeConflict, "error.order_conflict", nil)
		default:
			respondError(c, response.CodeInternal, "error.internal", err)
		}
		return
	}
	response.Success(c, nil)
}

func parseTimeNullable(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
