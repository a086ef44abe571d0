package admin

import (
	"errors"
	"time"

	"github.com/panaderia-next/internal/http/response"
	"github.com/panaderia-next/internal/service"

	"github.com/gin-gonic/gin"
)

// StaffLoginRequest is the staff login payload.
type StaffLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// StaffLoginResponse carries the issued token.
type StaffLoginResponse struct {
	Token       string    `json:"token"`
	ExpiresAt   time.Time `json:"expires_at"`
	StaffID     uint      `json:"staff_id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	Role        string    `json:"role"`
}

// StaffLogin authenticates a staff member and issues a JWT.
func (h *Handler) StaffLogin(c *gin.Context) {
	var req StaffLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	staff, token, expiresAt, err := h.AuthService.Login(req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			respondError(c, response.CodeUnauthorized, "error.invalid_credentials", nil)
		case errors.Is(err, service.ErrStaffDisabled):
			respondError(c, response.CodeUnauthorized, "error.staff_disabled", nil)
		default:
			respondError(c, response.CodeInternal, "error.internal", err)
		}
		return
	}

	response.Success(c, StaffLoginResponse{
		Token:       token,
		ExpiresAt:   expiresAt,
		StaffID:     staff.ID,
		Username:    staff.Username,
		DisplayName: staff.DisplayName,
		Role:        staff.Role,
	})
}

// StaffLogout revokes the caller's outstanding tokens.
func (h *Handler) StaffLogout(c *gin.Context) {
	staffID, ok := getStaffID(c)
	if !ok {
		return
	}
	if err := h.AuthService.Logout(staffID); err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, gin.H{"logged_out": true})
}

// ChangeStaffPasswordRequest is the change-password payload.
type ChangeStaffPasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// ChangeStaffPassword rotates the caller's password and revokes old
// tokens.
func (h *Handler) ChangeStaffPassword(c *gin.Context) {
	staffID, ok := getStaffID(c)
	if !ok {
		return
	}

	var req ChangeStaffPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.AuthService.ChangePassword(staffID, req.OldPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			respondError(c, response.CodeUnauthorized, "error.invalid_credentials", nil)
		case errors.Is(err, service.ErrPasswordTooWeak):
			respondError(c, response.CodeBadRequest, "error.password_too_weak", nil)
		case errors.Is(err, service.ErrStaffNotFound):
			respondError(c, response.CodeNotFound, "error.staff_not_found", nil)
		default:
			respondError(c, response.CodeInternal, "error.internal", err)
		}
		return
	}

	response.Success(c, gin.H{"changed": true})
}

// GetCurrentStaff returns the authenticated staff profile.
func (h *Handler) GetCurrentStaff(c *gin.Context) {
	staffID, ok := getStaffID(c)
	if !ok {
		return
	}
	staff, err := h.StaffService.Get(staffID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStaffNotFound):
			respondError(c, response.CodeNotFound, "error.staff_not_found", nil)
		default:
			respondError(c, response.CodeInternal, "error.internal", err)
		}
		return
	}
	response.Success(c, staff)
}
