package public

import (
	"strconv"
	"strings"

	"github.com/panaderia-next/internal/http/response"
	"github.com/panaderia-next/internal/repository"

	"github.com/gin-gonic/gin"
)

// GetMenu lists menu items available for ordering.
func (h *Handler) GetMenu(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "50"))
	page, pageSize = normalizePagination(page, pageSize)

	items, total, err := h.MenuService.ListPublic(repository.MenuListFilter{
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
