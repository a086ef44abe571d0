package admin

import (
	"errors"

	"github.com/panaderia-next/internal/http/response"
	"github.com/panaderia-next/internal/models"
	"github.com/panaderia-next/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminGetSetting reads one setting blob by key.
func (h *Handler) AdminGetSetting(c *gin.Context) {
	value, err := h.SettingService.Get(c.Param("key"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSettingNotFound):
			respondError(c, response.CodeNotFound, "error.setting_not_found", nil)
		default:
			respondError(c, response.CodeInternal, "error.internal", err)
		}
		return
	}
	response.Success(c, value)
}

// AdminPutSetting replaces one setting blob. SMTP changes apply to the
// mailer immediately.
func (h *Handler) AdminPutSetting(c *gin.Context) {
	var value models.JSON
	if err := c.ShouldBindJSON(&value); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	saved, err := h.SettingService.Put(c.Param("key"), value)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSettingNotFound):
			respondError(c, response.CodeNotFound, "error.setting_not_found", nil)
		default:
			respondError(c, response.CodeInternal, "error.internal", err)
		}
		return
	}
	response.Success(c, saved)
}

// AdminTestSMTPRequest is the address to send a test email to.
type AdminTestSMTPRequest struct {
	ToEmail string `json:"to_email" binding:"required"`
}

// AdminTestSMTP sends a test email with the current mailer config.
func (h *Handler) AdminTestSMTP(c *gin.Context) {
	var req AdminTestSMTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.EmailService.SendCustomEmail(req.ToEmail, "SMTP test", "The mail settings are working."); err != nil {
		requestLog(c).Warnw("admin_smtp_test_failed", "error", err)
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	response.Success(c, gin.H{"sent": true})
}
