package admin

import (
	"errors"
	"strconv"
	"time"

	"github.com/panaderia-next/internal/http/response"
	"github.com/panaderia-next/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminListDeliveries lists delivery orders for a date, sorted for the
// dispatch board. The date defaults to today in bakery time.
func (h *Handler) AdminListDeliveries(c *gin.Context) {
	now := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, h.OrderService.Location())
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.date_range_invalid", err)
			return
		}
		now = parsed
	}

	orders, err := h.DeliveryService.TodaysDeliveries(now)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, orders)
}

// AdminListDrivers lists active driver accounts.
func (h *Handler) AdminListDrivers(c *gin.Context) {
	drivers, err := h.DeliveryService.ListDrivers()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, drivers)
}

// AdminAssignDriverRequest is the driver assignment payload.
type AdminAssignDriverRequest struct {
	DriverID              uint   `json:"driver_id" binding:"required"`
	EstimatedDeliveryTime string `json:"estimated_delivery_time"`
}

// AdminAssignDriver assigns a driver to a delivery order.
func (h *Handler) AdminAssignDriver(c *gin.Context) {
	orderID, ok := parseOrderIDParam(c)
	if !ok {
		return
	}

	var req AdminAssignDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	order, err := h.DeliveryService.AssignDriver(staffActor(c), orderID, req.DriverID, req.EstimatedDeliveryTime)
	if err != nil {
		respondDeliveryError(c, err)
		return
	}
	response.Success(c, order)
}

// AdminStartDelivery marks a delivery as picked up by its driver.
func (h *Handler) AdminStartDelivery(c *gin.Context) {
	orderID, ok := parseOrderIDParam(c)
	if !ok {
		return
	}
	order, err := h.DeliveryService.StartDelivery(staffActor(c), orderID)
	if err != nil {
		respondDeliveryError(c, err)
		return
	}
	response.Success(c, order)
}

// AdminMarkDelivered marks a delivery as handed to the customer.
func (h *Handler) AdminMarkDelivered(c *gin.Context) {
	orderID, ok := parseOrderIDParam(c)
	if !ok {
		return
	}
	order, err := h.DeliveryService.MarkDelivered(staffActor(c), orderID)
	if err != nil {
		respondDeliveryError(c, err)
		return
	}
	response.Success(c, order)
}

// AdminMarkDeliveryFailed records a failed delivery attempt.
func (h *Handler) AdminMarkDeliveryFailed(c *gin.Context) {
	orderID, ok := parseOrderIDParam(c)
	if !ok {
		return
	}
	order, err := h.DeliveryService.MarkFailed(staffActor(c), orderID)
	if err != nil {
		respondDeliveryError(c, err)
		return
	}
	response.Success(c, order)
}

// AdminRetryDelivery puts a failed delivery back in the queue and
// clears its driver.
func (h *Handler) AdminRetryDelivery(c *gin.Context) {
	orderID, ok := parseOrderIDParam(c)
	if !ok {
		return
	}
	order, err := h.DeliveryService.RetryDelivery(staffActor(c), orderID)
	if err != nil {
		respondDeliveryError(c, err)
		return
	}
	response.Success(c, order)
}

// AdminUpdateDriverNotesRequest is the driver notes payload.
type AdminUpdateDriverNotesRequest struct {
	Notes string `json:"notes"`
}

// AdminUpdateDriverNotes updates the driver's free-text notes on a
// delivery order.
func (h *Handler) AdminUpdateDriverNotes(c *gin.Context) {
	orderID, ok := parseOrderIDParam(c)
	if !ok {
		return
	}

	var req AdminUpdateDriverNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	order, err := h.DeliveryService.UpdateDriverNotes(staffActor(c), orderID, req.Notes)
	if err != nil {
		respondDeliveryError(c, err)
		return
	}
	response.Success(c, order)
}

func parseOrderIDParam(c *gin.Context) (uint, bool) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "error.id_invalid", nil)
		return 0, false
	}
	return uint(orderID), true
}

func respondDeliveryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		respondError(c, response.CodeNotFound, "error.order_not_found", nil)
	case errors.Is(err, service.ErrOrderNotDelivery):
		respondError(c, response.CodeBadRequest, "error.not_delivery_order", nil)
	case errors.Is(err, service.ErrDeliveryStatusInvalid):
		respondError(c, response.CodeBadRequest, "error.delivery_invalid_transition", nil)
	case errors.Is(err, service.ErrDriverNotFound):
		respondError(c, response.CodeBadRequest, "error.driver_not_found", nil)
	case errors.Is(err, service.ErrOrderConflict):
		respondError(c, response.CodeConflict, "error.order_conflict", nil)
	case errors.Is(err, service.ErrPermissionDenied):
		respondError(c, response.CodeForbidden, "error.forbidden", nil)
	default:
		respondError(c, response.CodeInternal, "error.internal", err)
	}
}
