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

// AdminMenuItemRequest is the create/update payload for menu items.
type AdminMenuItemRequest struct {
	Name          string `json:"name" binding:"required"`
	Description   string `json:"description"`
	Category      string `json:"category" binding:"required"`
	Price         string `json:"price" binding:"required"`
	Available     *bool  `json:"available"`
	ImageURL      string `json:"image_url"`
	SortOrder     int    `json:"sort_order"`
	LeadTimeHours int    `json:"lead_time_hours"`
}

func (r AdminMenuItemRequest) toInput() service.MenuItemInput {
	return service.MenuItemInput{
		Name:          strings.TrimSpace(r.Name),
		Description:   strings.TrimSpace(r.Description),
		Category:      strings.TrimSpace(r.Category),
		Price:         strings.TrimSpace(r.Price),
		Available:     r.Available,
		ImageURL:      strings.TrimSpace(r.ImageURL),
		SortOrder:     r.SortOrder,
		LeadTimeHours: r.LeadTimeHours,
	}
}

// AdminListMenuItems lists all menu items, including unavailable ones.
func (h *Handler) AdminListMenuItems(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	items, total, err := h.MenuService.ListAdmin(repository.MenuListFilter{
		Page:     page,
		PageSize: pageSize,
		Category: strings.TrimSpace(c.Query("category")),
		Search:   strings.TrimSpace(c.Query("search")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.SuccessWithPage(c, items, response.NewPagination(page, pageSize, total))
}

// AdminGetMenuItem returns one menu item.
func (h *Handler) AdminGetMenuItem(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	item, err := h.MenuService.GetItem(id)
	if err != nil {
		respondMenuError(c, err)
		return
	}
	response.Success(c, item)
}

// AdminCreateMenuItem adds a menu item.
func (h *Handler) AdminCreateMenuItem(c *gin.Context) {
	var req AdminMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	item, err := h.MenuService.CreateItem(req.toInput())
	if err != nil {
		respondMenuError(c, err)
		return
	}
	response.Success(c, item)
}

// AdminUpdateMenuItem edits a menu item.
func (h *Handler) AdminUpdateMenuItem(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req AdminMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	item, err := h.MenuService.UpdateItem(id, req.toInput())
	if err != nil {
		respondMenuError(c, err)
		return
	}
	response.Success(c, item)
}

// AdminSetMenuItemAvailabilityRequest toggles storefront visibility.
type AdminSetMenuItemAvailabilityRequest struct {
	Available *bool `json:"available" binding:"required"`
}

// AdminSetMenuItemAvailability toggles a menu item on or off the
// storefront without touching the rest of the record.
func (h *Handler) AdminSetMenuItemAvailability(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req AdminSetMenuItemAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Available == nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	item, err := h.MenuService.SetAvailability(id, *req.Available)
	if err != nil {
		respondMenuError(c, err)
		return
	}
	response.Success(c, item)
}

// AdminDeleteMenuItem removes a menu item.
func (h *Handler) AdminDeleteMenuItem(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.MenuService.DeleteItem(id); err != nil {
		respondMenuError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.id_invalid", nil)
		return 0, false
	}
	return uint(id), true
}

func respondMenuError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrMenuItemNotFound):
		respondError(c, response.CodeNotFound, "error.menu_item_not_found", nil)
	case errors.Is(err, service.ErrValidationFailed):
		respondError(c, response.CodeBadRequest, "error.validation_failed", nil)
	default:
		respondError(c, response.CodeInternal, "error.internal", err)
	}
}
