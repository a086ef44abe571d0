package public

import (
	"errors"
	"strconv"
	"strings"

	handlershared "github.com/panaderia-next/internal/http/handlers/shared"
	"github.com/panaderia-next/internal/http/response"
	"github.com/panaderia-next/internal/i18n"
	"github.com/panaderia-next/internal/repository"
	"github.com/panaderia-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateOrderItemRequest is one checkout line.
type CreateOrderItemRequest struct {
	MenuItemID          uint   `json:"menu_item_id" binding:"required"`
	Quantity            int    `json:"quantity" binding:"required"`
	SpecialInstructions string `json:"special_instructions"`
}

// CreateOrderRequest is the checkout payload.
type CreateOrderRequest struct {
	CustomerName      string                   `json:"customer_name" binding:"required"`
	CustomerPhone     string                   `json:"customer_phone" binding:"required"`
	CustomerEmail     string                   `json:"customer_email"`
	OrderType         string                   `json:"order_type" binding:"required"`
	DateNeeded        string                   `json:"date_needed" binding:"required"`
	TimeNeeded        string                   `json:"time_needed"`
	AddressText       string                   `json:"address"`
	CakeSize          string                   `json:"cake_size"`
	CakeFilling       string                   `json:"cake_filling"`
	CakeTheme         string                   `json:"cake_theme"`
	Dedication        string                   `json:"dedication"`
	ReferenceImageURL string                   `json:"reference_image_url"`
	PaymentMethod     string                   `json:"payment_method"`
	Items             []CreateOrderItemRequest `json:"items" binding:"required"`

	handlershared.CaptchaPayloadRequest
}

func (r CreateOrderRequest) toInput(customerID uint, locale string) service.CreateOrderInput {
	items := make([]service.CreateOrderItem, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, service.CreateOrderItem{
			MenuItemID:          item.MenuItemID,
			Quantity:            item.Quantity,
			SpecialInstructions: strings.TrimSpace(item.SpecialInstructions),
		})
	}
	return service.CreateOrderInput{
		CustomerID:        customerID,
		CustomerName:      strings.TrimSpace(r.CustomerName),
		CustomerPhone:     strings.TrimSpace(r.CustomerPhone),
		CustomerEmail:     strings.TrimSpace(r.CustomerEmail),
		Locale:            locale,
		OrderType:         strings.TrimSpace(r.OrderType),
		DateNeeded:        strings.TrimSpace(r.DateNeeded),
		TimeNeeded:        strings.TrimSpace(r.TimeNeeded),
		AddressText:       strings.TrimSpace(r.AddressText),
		CakeSize:          strings.TrimSpace(r.CakeSize),
		CakeFilling:       strings.TrimSpace(r.CakeFilling),
		CakeTheme:         strings.TrimSpace(r.CakeTheme),
		Dedication:        strings.TrimSpace(r.Dedication),
		ReferenceImageURL: strings.TrimSpace(r.ReferenceImageURL),
		PaymentMethod:     strings.TrimSpace(r.PaymentMethod),
		Items:             items,
	}
}

// CreateGuestOrder places an order without an account. The captcha is
// checked when the guest_create_order scene is enabled.
func (h *Handler) CreateGuestOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.CaptchaService.Verify(service.CaptchaSceneGuestCreateOrder, req.ToServicePayload()); err != nil {
		respondWithMappedError(c, err, createOrderErrorRules, response.CodeInternal, "error.internal")
		return
	}

	order, err := h.OrderService.CreateOrder(req.toInput(0, i18n.ResolveLocale(c)))
	if err != nil {
		respondWithMappedError(c, err, createOrderErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, order)
}

// CreateCustomerOrder places an order for the authenticated customer.
func (h *Handler) CreateCustomerOrder(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	order, err := h.OrderService.CreateOrder(req.toInput(customerID, i18n.ResolveLocale(c)))
	if err != nil {
		respondWithMappedError(c, err, createOrderErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, order)
}

// TrackOrder looks up an order by its number and the phone it was
// placed with, so guests can check progress without an account.
func (h *Handler) TrackOrder(c *gin.Context) {
	orderNo := strings.TrimSpace(c.Query("order_no"))
	phone := strings.TrimSpace(c.Query("phone"))
	if orderNo == "" || phone == "" {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	order, err := h.OrderService.TrackOrder(orderNo, phone)
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

// ListMyOrders lists the authenticated customer's orders.
func (h *Handler) ListMyOrders(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	orders, total, err := h.OrderService.ListCustomerOrders(repository.OrderListFilter{
		Page:       page,
		PageSize:   pageSize,
		CustomerID: customerID,
		Status:     strings.TrimSpace(c.Query("status")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.SuccessWithPage(c, orders, response.NewPagination(page, pageSize, total))
}

// GetMyOrder returns one of the customer's own orders.
func (h *Handler) GetMyOrder(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
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
	if order.CustomerID == nil || *order.CustomerID != customerID {
		respondError(c, response.CodeNotFound, "error.order_not_found", nil)
		return
	}
	response.Success(c, order)
}

// CancelMyOrderRequest is the customer cancellation payload.
type CancelMyOrderRequest struct {
	Reason string `json:"reason"`
}

// CancelMyOrder cancels one of the customer's own orders. The refund
// follows the time-based policy with no override.
func (h *Handler) CancelMyOrder(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "error.id_invalid", nil)
		return
	}

	var req CancelMyOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	result, err := h.OrderService.CancelOrder(customerActor(customerID), uint(orderID), service.CancelOrderInput{
		Reason: strings.TrimSpace(req.Reason),
	})
	if err != nil {
		respondWithMappedError(c, err, cancelOrderErrorRules, response.CodeInternal, "error.internal")
		return
	}

	if result.EmailFailed {
		msg := i18n.T(i18n.ResolveLocale(c), "warn.status_updated_email_failed")
		response.SuccessWithMsg(c, msg, result.Order)
		return
	}
	response.Success(c, result.Order)
}
