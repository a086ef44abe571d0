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

// AdminListIssues lists reported order issues.
func (h *Handler) AdminListIssues(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	var orderID uint
	if raw := strings.TrimSpace(c.Query("order_id")); raw != "" {
		if parsed, err := strconv.ParseUint(raw, 10, 64); err == nil {
			orderID = uint(parsed)
		}
	}

	issues, total, err := h.IssueService.List(repository.IssueListFilter{
		Page:     page,
		PageSize: pageSize,
		OrderID:  orderID,
		Category: strings.TrimSpace(c.Query("category")),
		Status:   strings.TrimSpace(c.Query("status")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.SuccessWithPage(c, issues, response.NewPagination(page, pageSize, total))
}

// AdminGetIssue returns one issue.
func (h *Handler) AdminGetIssue(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	issue, err := h.IssueService.Get(id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrIssueNotFound):
			respondError(c, response.CodeNotFound, "error.issue_not_found", nil)
		default:
			respondError(c, response.CodeInternal, "error.internal", err)
		}
		return
	}
	response.Success(c, issue)
}

// AdminResolveIssueRequest is the resolution payload.
type AdminResolveIssueRequest struct {
	Resolution string `json:"resolution" binding:"required"`
}

// AdminResolveIssue closes an issue with a resolution note.
func (h *Handler) AdminResolveIssue(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req AdminResolveIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	issue, err := h.IssueService.Resolve(staffActor(c), id, req.Resolution)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrIssueNotFound):
			respondError(c, response.CodeNotFound, "error.issue_not_found", nil)
		case errors.Is(err, service.ErrPermissionDenied):
			respondError(c, response.CodeForbidden, "error.forbidden", nil)
		case errors.Is(err, service.ErrValidationFailed):
			respondError(c, response.CodeBadRequest, "error.validation_failed", nil)
		default:
			respondError(c, response.CodeInternal, "error.internal", err)
		}
		return
	}
	response.Success(c, issue)
}
