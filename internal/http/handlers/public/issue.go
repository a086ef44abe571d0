package public

import (
	"strings"

	handlershared "github.com/panaderia-next/internal/http/handlers/shared"
	"github.com/panaderia-next/internal/http/response"
	"github.com/panaderia-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ReportIssueRequest files a problem with an order.
type ReportIssueRequest struct {
	OrderID     uint     `json:"order_id" binding:"required"`
	Category    string   `json:"category" binding:"required"`
	Priority    string   `json:"priority"`
	Description string   `json:"description" binding:"required"`
	ReportedBy  string   `json:"reported_by"`
	PhotoURLs   []string `json:"photo_urls"`

	handlershared.CaptchaPayloadRequest
}

// ReportIssue records a customer-reported issue against an order. The
// captcha is checked when the submit_issue scene is enabled.
func (h *Handler) ReportIssue(c *gin.Context) {
	var req ReportIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.CaptchaService.Verify(service.CaptchaSceneSubmitIssue, req.ToServicePayload()); err != nil {
		respondWithMappedError(c, err, issueErrorRules, response.CodeInternal, "error.internal")
		return
	}

	issue, err := h.IssueService.Report(service.ReportIssueInput{
		OrderID:     req.OrderID,
		Category:    strings.TrimSpace(req.Category),
		Priority:    strings.TrimSpace(req.Priority),
		Description: strings.TrimSpace(req.Description),
		ReportedBy:  strings.TrimSpace(req.ReportedBy),
		PhotoURLs:   req.PhotoURLs,
	})
	if err != nil {
		respondWithMappedError(c, err, issueErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, issue)
}
