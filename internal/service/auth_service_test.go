package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/panaderia-next/internal/config"
	"github.com/panaderia-next/internal/constants"
	"github.com/panaderia-next/internal/models"
	"github.com/panaderia-next/internal/repository"

	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newAuthTestService(t *testing.T, name string) (*AuthService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.Staff{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	cfg := &config.Config{}
	cfg.JWT.SecretKey = "unit-test-secret-key-unit-test-secret"
	cfg.JWT.ExpireHours = 24
	cfg.Security.PasswordPolicy = config.PasswordPolicyConfig{
		MinLength:     8,
		RequireUpper:  true,
		RequireLower:  true,
		RequireNumber: true,
	}
	return NewAuthService(cfg, repository.NewStaffRepository(db)), db
}

func seedAuthStaff(t *testing.T, db *gorm.DB, username, password string, active bool) *models.Staff {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	staff := &models.Staff{
		Username:     username,
		PasswordHash: string(hash),
		DisplayName:  "Test Staff",
		Role:         constants.RoleBaker,
		Active:       active,
	}
	if err := db.Create(staff).Error; err != nil {
		t.Fatalf("seed staff: %v", err)
	}
	return staff
}

func TestStaffLogin(t *testing.T) {
	svc, db := newAuthTestService(t, "auth_login")
	seedAuthStaff(t, db, "baker1", "Secreto42", true)

	staff, token, expiresAt, err := svc.Login("baker1", "Secreto42")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" || !expiresAt.After(time.Now()) {
		t.Fatalf("token not issued: %q expires %s", token, expiresAt)
	}
	if staff.LastLoginAt == nil {
		t.Fatalf("login should stamp last_login_at")
	}

	claims, err := svc.ParseJWT(token)
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if claims.StaffID != staff.ID || claims.Username != "baker1" || claims.Role != constants.RoleBaker {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.TokenVersion != staff.TokenVersion {
		t.Fatalf("token version %d != staff version %d", claims.TokenVersion, staff.TokenVersion)
	}
}

func TestStaffLoginRejections(t *testing.T) {
	svc, db := newAuthTestService(t, "auth_login_reject")
	seedAuthStaff(t, db, "baker1", "Secreto42", true)
	seedAuthStaff(t, db, "retired", "Secreto42", false)

	if _, _, _, err := svc.Login("baker1", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, _, err := svc.Login("nobody", "Secreto42"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user: expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, _, err := svc.Login("retired", "Secreto42"); !errors.Is(err, ErrStaffDisabled) {
		t.Fatalf("disabled account: expected ErrStaffDisabled, got %v", err)
	}
}

func TestStaffLogoutInvalidatesTokens(t *testing.T) {
	svc, db := newAuthTestService(t, "auth_logout")
	staff := seedAuthStaff(t, db, "baker1", "Secreto42", true)
	before := staff.TokenVersion

	if err := svc.Logout(staff.ID); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	var reloaded models.Staff
	if err := db.First(&reloaded, staff.ID).Error; err != nil {
		t.Fatalf("reload staff: %v", err)
	}
	if reloaded.TokenVersion != before+1 {
		t.Fatalf("token version = %d, want %d", reloaded.TokenVersion, before+1)
	}
	if reloaded.TokenInvalidBefore == nil {
		t.Fatalf("logout should stamp token_invalid_before")
	}
}

func TestChangePassword(t *testing.T) {
	svc, db := newAuthTestService(t, "auth_change_password")
	staff := seedAuthStaff(t, db, "baker1", "Secreto42", true)

	if err := svc.ChangePassword(staff.ID, "wrong", "NuevoSecreto9"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong old password: expected ErrInvalidCredentials, got %v", err)
	}
	if err := svc.ChangePassword(staff.ID, "Secreto42", "weak"); !errors.Is(err, ErrPasswordTooWeak) {
		t.Fatalf("weak new password: expected ErrPasswordTooWeak, got %v", err)
	}
	if err := svc.ChangePassword(staff.ID, "Secreto42", "NuevoSecreto9"); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}
	if _, _, _, err := svc.Login("baker1", "NuevoSecreto9"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
	if _, _, _, err := svc.Login("baker1", "Secreto42"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("old password should stop working, got %v", err)
	}
}
