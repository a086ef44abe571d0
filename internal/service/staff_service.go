package service

import (
	"context"
	"strings"
	"time"

	"github.com/panaderia-next/internal/cache"
	"github.com/panaderia-next/internal/constants"
	"github.com/panaderia-next/internal/models"
	"github.com/panaderia-next/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// StaffService manages staff accounts. Only the owner can create or
// disable accounts; role checks happen in the handlers via RBAC.
type StaffService struct {
	staffRepo repository.StaffRepository
}

// NewStaffService creates the staff service.
func NewStaffService(staffRepo repository.StaffRepository) *StaffService {
	return &StaffService{staffRepo: staffRepo}
}

var staffRoles = map[string]bool{
	constants.RoleOwner:  true,
	constants.RoleBaker:  true,
	constants.RoleDriver: true,
}

// CreateStaffInput is the account creation payload.
type CreateStaffInput struct {
	Username    string
	Password    string
	DisplayName string
	Email       string
	Phone       string
	Role        string
}

// Create adds a staff account.
func (s *StaffService) Create(input CreateStaffInput) (*models.Staff, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || !staffRoles[input.Role] {
		return nil, ErrValidationFailed
	}
	existing, err := s.staffRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrStaffExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	staff := &models.Staff{
		Username:     username,
		PasswordHash: string(hash),
		DisplayName:  strings.TrimSpace(input.DisplayName),
		Email:        strings.TrimSpace(input.Email),
		Phone:        strings.TrimSpace(input.Phone),
		Role:         input.Role,
		Active:       true,
	}
	if err := s.staffRepo.Create(staff); err != nil {
		return nil, err
	}
	return staff, nil
}

// List lists staff accounts.
func (s *StaffService) List(filter repository.StaffListFilter) ([]models.Staff, int64, error) {
	return s.staffRepo.List(filter)
}

// Get loads one staff account.
func (s *StaffService) Get(id uint) (*models.Staff, error) {
	staff, err := s.staffRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		return nil, ErrStaffNotFound
	}
	return staff, nil
}

// UpdateStaffInput is the account update payload.
type UpdateStaffInput struct {
	DisplayName string
	Email       string
	Phone       string
	Role        string
}

// Update edits a staff account's profile and role.
func (s *StaffService) Update(id uint, input UpdateStaffInput) (*models.Staff, error) {
	staff, err := s.staffRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		return nil, ErrStaffNotFound
	}
	if input.Role != "" {
		if !staffRoles[input.Role] {
			return nil, ErrValidationFailed
		}
		staff.Role = input.Role
	}
	staff.DisplayName = strings.TrimSpace(input.DisplayName)
	staff.Email = strings.TrimSpace(input.Email)
	staff.Phone = strings.TrimSpace(input.Phone)
	if err := s.staffRepo.Update(staff); err != nil {
		return nil, err
	}
	_ = cache.SetStaffAuthState(context.Background(), cache.BuildStaffAuthState(staff))
	return staff, nil
}

// SetActive enables or disables an account. Disabling also
// invalidates outstanding tokens.
func (s *StaffService) SetActive(id uint, active bool) (*models.Staff, error) {
	staff, err := s.staffRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		return nil, ErrStaffNotFound
	}
	staff.Active = active
	if !active {
		now := time.Now()
		staff.TokenVersion++
		staff.TokenInvalidBefore = &now
	}
	if err := s.staffRepo.Update(staff); err != nil {
		return nil, err
	}
	_ = cache.SetStaffAuthState(context.Background(), cache.BuildStaffAuthState(staff))
	return staff, nil
}

// ResetPassword sets a new password and invalidates existing tokens.
func (s *StaffService) ResetPassword(id uint, newPassword string) error {
	staff, err := s.staffRepo.GetByID(id)
	if err != nil {
		return err
	}
	if staff == nil {
		return ErrStaffNotFound
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	now := time.Now()
	staff.PasswordHash = string(hash)
	staff.TokenVersion++
	staff.TokenInvalidBefore = &now
	if err := s.staffRepo.Update(staff); err != nil {
		return err
	}
	_ = cache.SetStaffAuthState(context.Background(), cache.BuildStaffAuthState(staff))
	return nil
}
