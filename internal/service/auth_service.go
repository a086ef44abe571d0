package service

import (
	"context"
	"errors"
	"time"

	"github.com/panaderia-next/internal/cache"
	"github.com/panaderia-next/internal/config"
	"github.com/panaderia-next/internal/models"
	"github.com/panaderia-next/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthService authenticates staff accounts and issues their tokens.
type AuthService struct {
	cfg       *config.Config
	staffRepo repository.StaffRepository
}

// NewAuthService creates the staff auth service.
func NewAuthService(cfg *config.Config, staffRepo repository.StaffRepository) *AuthService {
	return &AuthService{
		cfg:       cfg,
		staffRepo: staffRepo,
	}
}

// HashPassword hashes a password with bcrypt.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword checks a password against its bcrypt hash.
func (s *AuthService) VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// ValidatePassword checks a password against the configured policy.
func (s *AuthService) ValidatePassword(password string) error {
	if s == nil || s.cfg == nil {
		return nil
	}
	return validatePassword(s.cfg.Security.PasswordPolicy, password)
}

// StaffClaims are the JWT claims for staff tokens.
type StaffClaims struct {
	StaffID      uint   `json:"staff_id"`
	Username     string `json:"username"`
	Role         string `json:"role"`
	TokenVersion uint64 `json:"token_version"`
	jwt.RegisteredClaims
}

// GenerateJWT signs a staff token.
func (s *AuthService) GenerateJWT(staff *models.Staff) (string, time.Time, error) {
	expiresAt := time.Now().Add(time.Duration(s.cfg.JWT.ExpireHours) * time.Hour)

	claims := StaffClaims{
		StaffID:      staff.ID,
		Username:     staff.Username,
		Role:         staff.Role,
		TokenVersion: staff.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.JWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

// ParseJWT parses and validates a staff token.
func (s *AuthService) ParseJWT(tokenString string) (*StaffClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, &StaffClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWT.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*StaffClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

// Login authenticates a staff member and returns a fresh token.
func (s *AuthService) Login(username, password string) (*models.Staff, string, time.Time, error) {
	staff, err := s.staffRepo.GetByUsername(username)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if staff == nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if !staff.Active {
		return nil, "", time.Time{}, ErrStaffDisabled
	}

	if err := s.VerifyPassword(staff.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	token, expiresAt, err := s.GenerateJWT(staff)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	now := time.Now()
	staff.LastLoginAt = &now
	if err := s.staffRepo.Update(staff); err != nil {
		return nil, "", time.Time{}, err
	}
	_ = cache.SetStaffAuthState(context.Background(), cache.BuildStaffAuthState(staff))

	return staff, token, expiresAt, nil
}

// ChangePassword rotates a staff member's password and invalidates
// previously issued tokens.
func (s *AuthService) ChangePassword(staffID uint, oldPassword, newPassword string) error {
	staff, err := s.staffRepo.GetByID(staffID)
	if err != nil {
		return err
	}
	if staff == nil {
		return ErrStaffNotFound
	}

	if err := s.VerifyPassword(staff.PasswordHash, oldPassword); err != nil {
		return ErrInvalidCredentials
	}
	if err := s.ValidatePassword(newPassword); err != nil {
		return err
	}

	hashedPassword, err := s.HashPassword(newPassword)
	if err != nil {
		return err
	}

	staff.PasswordHash = hashedPassword
	now := time.Now()
	staff.TokenVersion++
	staff.TokenInvalidBefore = &now
	if err := s.staffRepo.Update(staff); err != nil {
		return err
	}
	_ = cache.SetStaffAuthState(context.Background(), cache.BuildStaffAuthState(staff))
	return nil
}

// Logout invalidates all of a staff member's outstanding tokens.
func (s *AuthService) Logout(staffID uint) error {
	staff, err := s.staffRepo.GetByID(staffID)
	if err != nil {
		return err
	}
	if staff == nil {
		return ErrStaffNotFound
	}
	now := time.Now()
	staff.TokenVersion++
	staff.TokenInvalidBefore = &now
	if err := s.staffRepo.Update(staff); err != nil {
		return err
	}
	_ = cache.SetStaffAuthState(context.Background(), cache.BuildStaffAuthState(staff))
	return nil
}
