package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/panaderia-next/internal/config"
	"github.com/panaderia-next/internal/constants"
	"github.com/panaderia-next/internal/models"
	"github.com/panaderia-next/internal/repository"
)

func newSettingTestService(t *testing.T) (*SettingService, *EmailService) {
	t.Helper()
	dsn := fmt.Sprintf("file:setting_svc_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Setting{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	fileCfg := config.EmailConfig{
		Enabled: false,
		Host:    "smtp.file.test",
		Port:    587,
		From:    "file@panaderia.test",
	}
	emailSvc := NewEmailService(&fileCfg)
	svc := NewSettingService(repository.NewSettingRepository(db), emailSvc, fileCfg)
	return svc, emailSvc
}

func TestSettingGetUnknownKey(t *testing.T) {
	svc, _ := newSettingTestService(t)
	if _, err := svc.Get("not_a_setting"); err != ErrSettingNotFound {
		t.Fatalf("unknown key err = %v", err)
	}
	if _, err := svc.Put("not_a_setting", models.JSON{}); err != ErrSettingNotFound {
		t.Fatalf("unknown key put err = %v", err)
	}
}

func TestSettingGetMissingReturnsEmpty(t *testing.T) {
	svc, _ := newSettingTestService(t)
	value, err := svc.Get(constants.SettingKeyBakeryConfig)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if value == nil || len(value) != 0 {
		t.Fatalf("unsaved setting should read as empty blob, got %v", value)
	}
}

func TestSettingPutRoundTrip(t *testing.T) {
	svc, _ := newSettingTestService(t)

	saved, err := svc.Put(constants.SettingKeyBakeryConfig, models.JSON{
		"name":     "La Panaderia",
		"currency": "USD",
	})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if saved["name"] != "La Panaderia" {
		t.Fatalf("saved blob = %v", saved)
	}

	loaded, err := svc.Get(constants.SettingKeyBakeryConfig)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if loaded["currency"] != "USD" {
		t.Fatalf("loaded blob = %v", loaded)
	}

	// Second put replaces the blob wholesale.
	if _, err := svc.Put(constants.SettingKeyBakeryConfig, models.JSON{"name": "Otra"}); err != nil {
		t.Fatalf("second put: %v", err)
	}
	loaded, err = svc.Get(constants.SettingKeyBakeryConfig)
	if err != nil {
		t.Fatalf("get after replace: %v", err)
	}
	if _, ok := loaded["currency"]; ok {
		t.Fatalf("replaced blob should drop old keys: %v", loaded)
	}
}

func TestSettingSMTPOverrideAppliesToEmailService(t *testing.T) {
	svc, emailSvc := newSettingTestService(t)

	_, err := svc.Put(constants.SettingKeySMTPConfig, models.JSON{
		"enabled": true,
		"host":    "smtp.override.test",
		"port":    float64(2525),
		"from":    "orders@panaderia.test",
	})
	if err != nil {
		t.Fatalf("put smtp: %v", err)
	}

	// A bad recipient gets past the enabled/configured guards only if
	// the override took effect.
	if err := emailSvc.sendTextEmail("not-an-address", "s", "b"); err != ErrInvalidEmail {
		t.Fatalf("override not applied, err = %v", err)
	}
}

func TestSettingApplyStartupOverrides(t *testing.T) {
	svc, emailSvc := newSettingTestService(t)

	if _, err := svc.Put(constants.SettingKeySMTPConfig, models.JSON{"enabled": true}); err != nil {
		t.Fatalf("put: %v", err)
	}
	// Reset to the file config, then replay the saved override.
	emailSvc.SetConfig(&config.EmailConfig{Enabled: false})
	if err := svc.ApplyStartupOverrides(); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if err := emailSvc.sendTextEmail("not-an-address", "s", "b"); err != ErrInvalidEmail {
		t.Fatalf("startup override not applied, err = %v", err)
	}
}
