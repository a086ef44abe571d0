package public

import (
	"errors"
	"net/http"
	"strings"

	"github.com/panaderia-next/internal/http/response"
	"github.com/panaderia-next/internal/logger"
	"github.com/panaderia-next/internal/payment/gateway"
	"github.com/panaderia-next/internal/service"

	"github.com/gin-gonic/gin"
)

// StartPaymentRequest asks the gateway for a payment URL. The phone
// must match the order, same as tracking.
type StartPaymentRequest struct {
	OrderNo string `json:"order_no" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
}

// StartPayment creates a gateway charge for an unpaid order and
// returns the URL the customer pays at.
func (h *Handler) StartPayment(c *gin.Context) {
	var req StartPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	order, err := h.OrderService.TrackOrder(strings.TrimSpace(req.OrderNo), strings.TrimSpace(req.Phone))
	if err != nil {
		respondWithMappedError(c, err, paymentErrorRules, response.CodeInternal, "error.internal")
		return
	}

	result, err := h.PaymentService.StartCharge(c.Request.Context(), order.OrderNo, c.ClientIP())
	if err != nil {
		respondWithMappedError(c, err, paymentErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, gin.H{
		"order_no":  order.OrderNo,
		"charge_no": result.ChargeNo,
		"pay_url":   result.PayURL,
	})
}

// PaymentNotify receives the gateway's async capture callback. The
// body is the gateway's signed form, acknowledged with a plain
// "success" so the gateway stops retrying.
func (h *Handler) PaymentNotify(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		c.String(http.StatusBadRequest, "fail")
		return
	}

	orderNo, err := h.PaymentService.HandleNotify(c.Request.PostForm)
	if err != nil {
		logger.Warnw("payment_notify_rejected",
			"order_no", orderNo,
			"error", err,
		)
		if errors.Is(err, gateway.ErrSignatureInvalid) || errors.Is(err, gateway.ErrResponseInvalid) {
			c.String(http.StatusBadRequest, "fail")
			return
		}
		c.String(http.StatusInternalServerError, "fail")
		return
	}
	c.String(http.StatusOK, "success")
}

var paymentErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, key: "error.order_not_found"},
	{target: service.ErrOrderAlreadyPaid, code: response.CodeBadRequest, key: "error.order_already_paid"},
	{target: service.ErrOrderCancelNotAllowed, code: response.CodeBadRequest, key: "error.cancel_not_allowed"},
	{target: service.ErrPaymentDisabled, code: response.CodeBadRequest, key: "error.payment_disabled"},
}
