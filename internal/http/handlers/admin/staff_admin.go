package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/panaderia-next/internal/http/response"
	"github.com/panaderia-next/internal/repository"
	"github.com/panaderia-next/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminListStaff lists staff accounts.
func (h *Handler) AdminListStaff(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	staff, total, err := h.StaffService.List(repository.StaffListFilter{
		Page:       page,
		PageSize:   pageSize,
		Role:       strings.TrimSpace(c.Query("role")),
		OnlyActive: c.Query("active") == "true",
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.SuccessWithPage(c, staff, response.NewPagination(page, pageSize, total))
}

// AdminGetStaff returns one staff account.
func (h *Handler) AdminGetStaff(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	staff, err := h.StaffService.Get(id)
	if err != nil {
		respondStaffError(c, err)
		return
	}
	response.Success(c, staff)
}

// AdminCreateStaffRequest is the staff creation payload.
type AdminCreateStaffRequest struct {
	Username    string `json:"username" binding:"required"`
	Password    string `json:"password" binding:"required"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Role        string `json:"role" binding:"required"`
}

// AdminCreateStaff creates a staff account.
func (h *Handler) AdminCreateStaff(c *gin.Context) {
	var req AdminCreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	staff, err := h.StaffService.Create(service.CreateStaffInput{
		Username:    strings.TrimSpace(req.Username),
		Password:    req.Password,
		DisplayName: strings.TrimSpace(req.DisplayName),
		Email:       strings.TrimSpace(req.Email),
		Phone:       strings.TrimSpace(req.Phone),
		Role:        strings.TrimSpace(req.Role),
	})
	if err != nil {
		respondStaffError(c, err)
		return
	}
	response.Success(c, staff)
}

// AdminUpdateStaffRequest is the staff update payload.
type AdminUpdateStaffRequest struct {
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Role        string `json:"role"`
}

// AdminUpdateStaff edits a staff account's profile and role.
func (h *Handler) AdminUpdateStaff(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req AdminUpdateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	staff, err := h.StaffService.Update(id, service.UpdateStaffInput{
		DisplayName: strings.TrimSpace(req.DisplayName),
		Email:       strings.TrimSpace(req.Email),
		Phone:       strings.TrimSpace(req.Phone),
		Role:        strings.TrimSpace(req.Role),
	})
	if err != nil {
		respondStaffError(c, err)
		return
	}
	response.Success(c, staff)
}

// AdminSetStaffActiveRequest toggles an account on or off.
type AdminSetStaffActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// AdminSetStaffActive enables or disables a staff account. Disabling
// revokes the account's outstanding tokens.
func (h *Handler) AdminSetStaffActive(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req AdminSetStaffActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Active == nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	staff, err := h.StaffService.SetActive(id, *req.Active)
	if err != nil {
		respondStaffError(c, err)
		return
	}
	response.Success(c, staff)
}

// AdminResetStaffPasswordRequest is the password reset payload.
type AdminResetStaffPasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required"`
}

// AdminResetStaffPassword sets a new password for a staff account and
// revokes its outstanding tokens.
func (h *Handler) AdminResetStaffPassword(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req AdminResetStaffPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.StaffService.ResetPassword(id, req.NewPassword); err != nil {
		respondStaffError(c, err)
		return
	}
	response.Success(c, gin.H{"reset": true})
}

func respondStaffError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrStaffNotFound):
		respondError(c, response.CodeNotFound, "error.staff_not_found", nil)
	case errors.Is(err, service.ErrStaffExists):
		respondError(c, response.CodeConflict, "error.staff_exists", nil)
	case errors.Is(err, service.ErrPasswordTooWeak):
		respondError(c, response.CodeBadRequest, "error.password_too_weak", nil)
	case errors.Is(err, service.ErrValidationFailed):
		respondError(c, response.CodeBadRequest, "error.validation_failed", nil)
	default:
		respondError(c, response.CodeInternal, "error.internal", err)
	}
}
