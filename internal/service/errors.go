package service

import "errors"

// Sentinel errors shared across services. Handlers map these onto
// HTTP status codes and localized messages.
var (
	ErrOrderNotFound          = errors.New("order not found")
	ErrOrderStatusInvalid     = errors.New("order status transition not allowed")
	ErrOrderConflict          = errors.New("order modified concurrently")
	ErrOrderCancelNotAllowed  = errors.New("order can no longer be cancelled")
	ErrOrderNotDelivery       = errors.New("order is not a delivery order")
	ErrDeliveryStatusInvalid  = errors.New("delivery status transition not allowed")
	ErrRefundRequiresOverride = errors.New("refund inside 24 hours requires owner override")
	ErrPermissionDenied       = errors.New("permission denied")
	ErrDriverNotFound         = errors.New("driver not found")
	ErrMenuItemNotFound       = errors.New("menu item not found")
	ErrMenuItemUnavailable    = errors.New("menu item unavailable")
	ErrInventoryNotFound      = errors.New("inventory item not found")
	ErrInventorySKUTaken      = errors.New("inventory sku already in use")
	ErrIssueNotFound          = errors.New("issue not found")
	ErrIssueClosedOrder       = errors.New("issues cannot be reported on terminal orders")
	ErrStaffNotFound          = errors.New("staff member not found")
	ErrStaffExists            = errors.New("staff member already exists")
	ErrStaffDisabled          = errors.New("staff account disabled")
	ErrCustomerExists         = errors.New("customer already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrCaptchaInvalid         = errors.New("captcha verification failed")
	ErrValidationFailed       = errors.New("validation failed")
	ErrPaymentDisabled        = errors.New("payment gateway disabled")
	ErrOrderAlreadyPaid       = errors.New("order already paid")
	ErrRefundNotPending       = errors.New("no pending refund on order")

	ErrEmailServiceDisabled      = errors.New("email service disabled")
	ErrEmailServiceNotConfigured = errors.New("email service not configured")
	ErrInvalidEmail              = errors.New("invalid email address")
	ErrSettingNotFound           = errors.New("setting not found")
)
