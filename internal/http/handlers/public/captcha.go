package public

import (
	"github.com/panaderia-next/internal/http/response"
	"github.com/panaderia-next/internal/service"

	"github.com/gin-gonic/gin"
)

// GetImageCaptcha issues a new image captcha challenge.
func (h *Handler) GetImageCaptcha(c *gin.Context) {
	challenge, err := h.CaptchaService.GenerateImageChallenge()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, challenge)
}

// CaptchaScenes reports which scenes currently require a captcha, so
// the frontend knows when to show the widget.
func (h *Handler) CaptchaScenes(c *gin.Context) {
	response.Success(c, gin.H{
		"login":              h.CaptchaService.Enabled(service.CaptchaSceneLogin),
		"guest_create_order": h.CaptchaService.Enabled(service.CaptchaSceneGuestCreateOrder),
		"submit_issue":       h.CaptchaService.Enabled(service.CaptchaSceneSubmitIssue),
	})
}
