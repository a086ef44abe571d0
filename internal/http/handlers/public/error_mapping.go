package public

import (
	"errors"

	"github.com/panaderia-next/internal/http/response"
	"github.com/panaderia-next/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError maps a service sentinel onto an API error.
type mappedHandlerError struct {
	target error
	code   int
	key    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackKey, err)
}

var createOrderErrorRules = []mappedHandlerError{
	{target: service.ErrValidationFailed, code: response.CodeBadRequest, key: "error.validation_failed"},
	{target: service.ErrMenuItemNotFound, code: response.CodeBadRequest, key: "error.menu_item_not_found"},
	{target: service.ErrMenuItemUnavailable, code: response.CodeBadRequest, key: "error.menu_item_unavailable"},
	{target: service.ErrCaptchaInvalid, code: response.CodeBadRequest, key: "error.captcha_invalid"},
	{target: service.ErrCaptchaRequired, code: response.CodeBadRequest, key: "error.captcha_invalid"},
}

var cancelOrderErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, key: "error.order_not_found"},
	{target: service.ErrOrderCancelNotAllowed, code: response.CodeBadRequest, key: "error.cancel_not_allowed"},
	{target: service.ErrRefundRequiresOverride, code: response.CodeForbidden, key: "error.refund_requires_owner"},
	{target: service.ErrOrderConflict, code: response.CodeConflict, key: "error.order_conflict"},
	{target: service.ErrPermissionDenied, code: response.CodeForbidden, key: "error.forbidden"},
}

var issueErrorRules = []mappedHandlerError{
	{target: service.ErrValidationFailed, code: response.CodeBadRequest, key: "error.validation_failed"},
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, key: "error.order_not_found"},
	{target: service.ErrIssueClosedOrder, code: response.CodeBadRequest, key: "error.issue_closed_order"},
	{target: service.ErrCaptchaInvalid, code: response.CodeBadRequest, key: "error.captcha_invalid"},
	{target: service.ErrCaptchaRequired, code: response.CodeBadRequest, key: "error.captcha_invalid"},
}

var customerAuthErrorRules = []mappedHandlerError{
	{target: service.ErrValidationFailed, code: response.CodeBadRequest, key: "error.validation_failed"},
	{target: service.ErrCustomerExists, code: response.CodeConflict, key: "error.customer_exists"},
	{target: service.ErrPasswordTooWeak, code: response.CodeBadRequest, key: "error.password_too_weak"},
	{target: service.ErrInvalidCredentials, code: response.CodeUnauthorized, key: "error.invalid_credentials"},
	{target: service.ErrCaptchaInvalid, code: response.CodeBadRequest, key: "error.captcha_invalid"},
	{target: service.ErrCaptchaRequired, code: response.CodeBadRequest, key: "error.captcha_invalid"},
}
