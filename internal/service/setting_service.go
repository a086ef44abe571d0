package service

import (
	"strings"

	"github.com/panaderia-next/internal/config"
	"github.com/panaderia-next/internal/constants"
	"github.com/panaderia-next/internal/models"
	"github.com/panaderia-next/internal/repository"
)

// SettingService stores runtime-editable settings as JSON blobs keyed
// by name. File config provides the defaults; saved settings override
// them without a restart.
type SettingService struct {
	settingRepo  repository.SettingRepository
	emailService *EmailService
	fileEmailCfg config.EmailConfig
}

// NewSettingService creates the settings service.
func NewSettingService(settingRepo repository.SettingRepository, emailService *EmailService, fileEmailCfg config.EmailConfig) *SettingService {
	return &SettingService{
		settingRepo:  settingRepo,
		emailService: emailService,
		fileEmailCfg: fileEmailCfg,
	}
}

var settingKeys = map[string]bool{
	constants.SettingKeyBakeryConfig:  true,
	constants.SettingKeySMTPConfig:    true,
	constants.SettingKeyCaptchaConfig: true,
	constants.SettingKeyRefundConfig:  true,
}

// Get reads one setting blob.
func (s *SettingService) Get(key string) (models.JSON, error) {
	key = strings.TrimSpace(key)
	if !settingKeys[key] {
		return nil, ErrSettingNotFound
	}
	setting, err := s.settingRepo.GetByKey(key)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return models.JSON{}, nil
	}
	return setting.ValueJSON, nil
}

// Put replaces one setting blob and applies runtime side effects.
func (s *SettingService) Put(key string, value models.JSON) (models.JSON, error) {
	key = strings.TrimSpace(key)
	if !settingKeys[key] {
		return nil, ErrSettingNotFound
	}
	setting, err := s.settingRepo.Upsert(key, value)
	if err != nil {
		return nil, err
	}
	if key == constants.SettingKeySMTPConfig {
		s.applySMTPSetting(setting.ValueJSON)
	}
	return setting.ValueJSON, nil
}

// ApplyStartupOverrides loads saved settings and applies them on boot.
func (s *SettingService) ApplyStartupOverrides() error {
	setting, err := s.settingRepo.GetByKey(constants.SettingKeySMTPConfig)
	if err != nil {
		return err
	}
	if setting != nil {
		s.applySMTPSetting(setting.ValueJSON)
	}
	return nil
}

func (s *SettingService) applySMTPSetting(value models.JSON) {
	if s.emailService == nil || value == nil {
		return
	}
	cfg := s.fileEmailCfg
	if v, ok := value["enabled"].(bool); ok {
		cfg.Enabled = v
	}
	if v, ok := value["host"].(string); ok && strings.TrimSpace(v) != "" {
		cfg.Host = strings.TrimSpace(v)
	}
	if v, ok := value["port"].(float64); ok && v > 0 {
		cfg.Port = int(v)
	}
	if v, ok := value["username"].(string); ok {
		cfg.Username = v
	}
	if v, ok := value["password"].(string); ok && v != "" {
		cfg.Password = v
	}
	if v, ok := value["from"].(string); ok && strings.TrimSpace(v) != "" {
		cfg.From = strings.TrimSpace(v)
	}
	if v, ok := value["from_name"].(string); ok {
		cfg.FromName = v
	}
	if v, ok := value["use_tls"].(bool); ok {
		cfg.UseTLS = v
	}
	if v, ok := value["use_ssl"].(bool); ok {
		cfg.UseSSL = v
	}
	s.emailService.SetConfig(&cfg)
}
