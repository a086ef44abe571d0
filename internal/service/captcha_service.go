package service

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/panaderia-next/internal/config"
	"github.com/panaderia-next/internal/constants"

	"github.com/mojocn/base64Captcha"
)

// Captcha scene names.
const (
	CaptchaSceneLogin            = "login"
	CaptchaSceneGuestCreateOrder = "guest_create_order"
	CaptchaSceneSubmitIssue      = "submit_issue"
)

// ErrCaptchaRequired flags a request missing its captcha answer.
var ErrCaptchaRequired = errors.New("captcha required")

// CaptchaVerifyPayload carries the captcha answer from the client.
type CaptchaVerifyPayload struct {
	CaptchaID   string `json:"captcha_id"`
	CaptchaCode string `json:"captcha_code"`
}

// CaptchaImageChallenge is a generated image challenge.
type CaptchaImageChallenge struct {
	CaptchaID   string `json:"captcha_id"`
	ImageBase64 string `json:"image_base64"`
}

// CaptchaService generates and verifies image captchas for public
// endpoints that accept anonymous traffic.
type CaptchaService struct {
	cfg config.CaptchaConfig

	mu         sync.Mutex
	imageStore base64Captcha.Store
}

// NewCaptchaService creates the captcha service.
func NewCaptchaService(cfg config.CaptchaConfig) *CaptchaService {
	return &CaptchaService{cfg: cfg}
}

// Enabled reports whether the given scene requires a captcha.
func (s *CaptchaService) Enabled(scene string) bool {
	if s == nil || s.cfg.Provider != constants.CaptchaProviderImage {
		return false
	}
	switch scene {
	case CaptchaSceneLogin:
		return s.cfg.Scenes.Login
	case CaptchaSceneGuestCreateOrder:
		return s.cfg.Scenes.GuestCreateOrder
	case CaptchaSceneSubmitIssue:
		return s.cfg.Scenes.SubmitIssue
	default:
		return false
	}
}

// GenerateImageChallenge generates a new image challenge.
func (s *CaptchaService) GenerateImageChallenge() (*CaptchaImageChallenge, error) {
	if s.cfg.Provider != constants.CaptchaProviderImage {
		return nil, ErrCaptchaInvalid
	}
	image := s.normalizedImageConfig()
	driver := base64Captcha.NewDriverString(
		image.Height,
		image.Width,
		image.NoiseCount,
		image.ShowLine,
		image.Length,
		"0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ",
		nil,
		base64Captcha.DefaultEmbeddedFonts,
		nil,
	)
	captcha := base64Captcha.NewCaptcha(driver, s.ensureImageStore(image))
	id, b64s, _, err := captcha.Generate()
	if err != nil {
		return nil, err
	}
	return &CaptchaImageChallenge{
		CaptchaID:   strings.TrimSpace(id),
		ImageBase64: strings.TrimSpace(b64s),
	}, nil
}

// Verify checks the captcha answer for a scene. Scenes with the
// captcha disabled always pass.
func (s *CaptchaService) Verify(scene string, payload CaptchaVerifyPayload) error {
	if !s.Enabled(scene) {
		return nil
	}
	captchaID := strings.TrimSpace(payload.CaptchaID)
	captchaCode := strings.TrimSpace(payload.CaptchaCode)
	if captchaID == "" || captchaCode == "" {
		return ErrCaptchaRequired
	}
	store := s.ensureImageStore(s.normalizedImageConfig())
	if !store.Verify(captchaID, captchaCode, true) {
		return ErrCaptchaInvalid
	}
	return nil
}

func (s *CaptchaService) normalizedImageConfig() config.CaptchaImageConfig {
	image := s.cfg.Image
	if image.Length <= 0 {
		image.Length = 4
	}
	if image.Width <= 0 {
		image.Width = 240
	}
	if image.Height <= 0 {
		image.Height = 80
	}
	if image.ExpireSeconds <= 0 {
		image.ExpireSeconds = 300
	}
	if image.MaxStore <= 0 {
		image.MaxStore = 10240
	}
	return image
}

func (s *CaptchaService) ensureImageStore(image config.CaptchaImageConfig) base64Captcha.Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.imageStore == nil {
		s.imageStore = base64Captcha.NewMemoryStore(image.MaxStore, time.Duration(image.ExpireSeconds)*time.Second)
	}
	return s.imageStore
}
