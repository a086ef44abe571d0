package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/panaderia-next/internal/http/response"
	"github.com/panaderia-next/internal/repository"
	"github.com/panaderia-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// AdminInventoryItemRequest is the create/update payload for inventory
// items. Quantity is only honored on create; afterwards it moves
// through adjust and restock.
type AdminInventoryItemRequest struct {
	Name             string `json:"name" binding:"required"`
	SKU              string `json:"sku" binding:"required"`
	Unit             string `json:"unit" binding:"required"`
	Quantity         string `json:"quantity"`
	ReorderThreshold string `json:"reorder_threshold"`
	CostPerUnit      string `json:"cost_per_unit"`
	Supplier         string `json:"supplier"`
}

func (r AdminInventoryItemRequest) toInput() service.InventoryItemInput {
	return service.InventoryItemInput{
		Name:             strings.TrimSpace(r.Name),
		SKU:              strings.TrimSpace(r.SKU),
		Unit:             strings.TrimSpace(r.Unit),
		Quantity:         strings.TrimSpace(r.Quantity),
		ReorderThreshold: strings.TrimSpace(r.ReorderThreshold),
		CostPerUnit:      strings.TrimSpace(r.CostPerUnit),
		Supplier:         strings.TrimSpace(r.Supplier),
	}
}

// AdminListInventory lists inventory items.
func (h *Handler) AdminListInventory(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	items, total, err := h.InventoryService.List(repository.InventoryListFilter{
		Page:         page,
		PageSize:     pageSize,
		Search:       strings.TrimSpace(c.Query("search")),
		OnlyLowStock: c.Query("low_stock") == "true",
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.SuccessWithPage(c, items, response.NewPagination(page, pageSize, total))
}

// AdminListLowStock lists items at or below their reorder threshold.
func (h *Handler) AdminListLowStock(c *gin.Context) {
	items, err := h.InventoryService.ListLowStock()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, items)
}

// AdminGetInventoryItem returns one inventory item.
func (h *Handler) AdminGetInventoryItem(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	item, err := h.InventoryService.GetItem(id)
	if err != nil {
		respondInventoryError(c, err)
		return
	}
	response.Success(c, item)
}

// AdminCreateInventoryItem adds an inventory item.
func (h *Handler) AdminCreateInventoryItem(c *gin.Context) {
	var req AdminInventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	item, err := h.InventoryService.CreateItem(req.toInput())
	if err != nil {
		respondInventoryError(c, err)
		return
	}
	response.Success(c, item)
}

// AdminUpdateInventoryItem edits an inventory item's metadata.
func (h *Handler) AdminUpdateInventoryItem(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req AdminInventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	item, err := h.InventoryService.UpdateItem(id, req.toInput())
	if err != nil {
		respondInventoryError(c, err)
		return
	}
	response.Success(c, item)
}

// AdminAdjustInventoryRequest is a signed quantity delta.
type AdminAdjustInventoryRequest struct {
	Delta string `json:"delta" binding:"required"`
}

// AdminAdjustInventory applies a signed quantity change, for usage or
// spoilage. Crossing the reorder threshold downward queues an alert.
func (h *Handler) AdminAdjustInventory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req AdminAdjustInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	delta, err := decimal.NewFromString(strings.TrimSpace(req.Delta))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	item, err := h.InventoryService.AdjustQuantity(id, delta)
	if err != nil {
		respondInventoryError(c, err)
		return
	}
	response.Success(c, item)
}

// AdminRestockInventoryRequest is a positive restock amount.
type AdminRestockInventoryRequest struct {
	Amount string `json:"amount" binding:"required"`
}

// AdminRestockInventory adds stock and stamps the restock time.
func (h *Handler) AdminRestockInventory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req AdminRestockInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(req.Amount))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	item, err := h.InventoryService.Restock(id, amount)
	if err != nil {
		respondInventoryError(c, err)
		return
	}
	response.Success(c, item)
}

// AdminDeleteInventoryItem removes an inventory item.
func (h *Handler) AdminDeleteInventoryItem(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.InventoryService.DeleteItem(id); err != nil {
		respondInventoryError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

func respondInventoryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInventoryNotFound):
		respondError(c, response.CodeNotFound, "error.inventory_not_found", nil)
	case errors.Is(err, service.ErrInventorySKUTaken):
		respondError(c, response.CodeConflict, "error.inventory_sku_taken", nil)
	case errors.Is(err, service.ErrValidationFailed):
		respondError(c, response.CodeBadRequest, "error.validation_failed", nil)
	default:
		respondError(c, response.CodeInternal, "error.internal", err)
	}
}
