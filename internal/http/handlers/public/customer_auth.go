package public

import (
	"errors"
	"strings"
	"time"

	handlershared "github.com/panaderia-next/internal/http/handlers/shared"
	"github.com/panaderia-next/internal/http/response"
	"github.com/panaderia-next/internal/i18n"
	"github.com/panaderia-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CustomerRegisterRequest is the signup payload.
type CustomerRegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone"`
}

// CustomerRegister creates a customer account.
func (h *Handler) CustomerRegister(c *gin.Context) {
	var req CustomerRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	customer, err := h.CustomerAuthService.Register(service.RegisterInput{
		Email:    strings.TrimSpace(req.Email),
		Password: req.Password,
		Name:     strings.TrimSpace(req.Name),
		Phone:    strings.TrimSpace(req.Phone),
		Locale:   i18n.ResolveLocale(c),
	})
	if err != nil {
		respondWithMappedError(c, err, customerAuthErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, customer)
}

// CustomerLoginRequest is the login payload.
type CustomerLoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`

	handlershared.CaptchaPayloadRequest
}

// CustomerLoginResponse carries the issued token.
type CustomerLoginResponse struct {
	Token      string    `json:"token"`
	ExpiresAt  time.Time `json:"expires_at"`
	CustomerID uint      `json:"customer_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
}

// CustomerLogin authenticates a customer and issues a JWT. The captcha
// is checked when the login scene is enabled.
func (h *Handler) CustomerLogin(c *gin.Context) {
	var req CustomerLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.CaptchaService.Verify(service.CaptchaSceneLogin, req.ToServicePayload()); err != nil {
		respondWithMappedError(c, err, customerAuthErrorRules, response.CodeInternal, "error.internal")
		return
	}

	customer, token, expiresAt, err := h.CustomerAuthService.Login(req.Email, req.Password)
	if err != nil {
		respondWithMappedError(c, err, customerAuthErrorRules, response.CodeInternal, "error.internal")
		return
	}

	response.Success(c, CustomerLoginResponse{
		Token:      token,
		ExpiresAt:  expiresAt,
		CustomerID: customer.ID,
		Name:       customer.Name,
		Email:      customer.Email,
	})
}

// GetMyProfile returns the authenticated customer's profile.
func (h *Handler) GetMyProfile(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	customer, err := h.CustomerRepo.GetByID(customerID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	if customer == nil {
		respondError(c, response.CodeNotFound, "error.not_found", nil)
		return
	}
	response.Success(c, customer)
}

// UpdateMyProfileRequest is the profile update payload.
type UpdateMyProfileRequest struct {
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	DefaultAddress string `json:"default_address"`
	Locale         string `json:"locale"`
}

// UpdateMyProfile edits the authenticated customer's profile.
func (h *Handler) UpdateMyProfile(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}

	var req UpdateMyProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	customer, err := h.CustomerAuthService.UpdateProfile(
		customerID,
		strings.TrimSpace(req.Name),
		strings.TrimSpace(req.Phone),
		strings.TrimSpace(req.DefaultAddress),
		strings.TrimSpace(req.Locale),
	)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidationFailed):
			respondError(c, response.CodeBadRequest, "error.validation_failed", nil)
		default:
			respondError(c, response.CodeInternal, "error.internal", err)
		}
		return
	}
	response.Success(c, customer)
}
