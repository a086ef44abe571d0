package repository

import (
	"errors"

	"github.com/panaderia-next/internal/models"

	"gorm.io/gorm"
)

// StaffRepository is the staff data access interface.
type StaffRepository interface {
	GetByUsername(username string) (*models.Staff, error)
	GetByID(id uint) (*models.Staff, error)
	List(filter StaffListFilter) ([]models.Staff, int64, error)
	ListByRole(role string) ([]models.Staff, error)
	Count() (int64, error)
	Create(staff *models.Staff) error
	Update(staff *models.Staff) error
	Delete(id uint) error
}

// GormStaffRepository is the GORM implementation.
type GormStaffRepository struct {
	db *gorm.DB
}

// NewStaffRepository creates the staff repository.
func NewStaffRepository(db *gorm.DB) *GormStaffRepository {
	return &GormStaffRepository{db: db}
}

// GetByUsername loads a staff member by username.
func (r *GormStaffRepository) GetByUsername(username string) (*models.Staff, error) {
	var staff models.Staff
	if err := r.db.Where("username = ?", username).First(&staff).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &staff, nil
}

// GetByID loads a staff member by ID.
func (r *GormStaffRepository) GetByID(id uint) (*models.Staff, error) {
	var staff models.Staff
	if err := r.db.First(&staff, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &staff, nil
}

// List lists staff members.
func (r *GormStaffRepository) List(filter StaffListFilter) ([]models.Staff, int64, error) {
	var staff []models.Staff
	query := r.db.Model(&models.Staff{})

	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}
	if filter.OnlyActive {
		query = query.Where("active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("id asc").Find(&staff).Error; err != nil {
		return nil, 0, err
	}
	return staff, total, nil
}

// ListByRole lists active staff members holding the given role.
func (r *GormStaffRepository) ListByRole(role string) ([]models.Staff, error) {
	staff := make([]models.Staff, 0)
	if err := r.db.Where("role = ? AND active = ?", role, true).Order("id asc").Find(&staff).Error; err != nil {
		return nil, err
	}
	return staff, nil
}

// Count counts staff members.
func (r *GormStaffRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Staff{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Create inserts a staff member.
func (r *GormStaffRepository) Create(staff *models.Staff) error {
	return r.db.Create(staff).Error
}

// Update saves the full staff row.
func (r *GormStaffRepository) Update(staff *models.Staff) error {
	return r.db.Save(staff).Error
}

// Delete soft-deletes a staff member.
func (r *GormStaffRepository) Delete(id uint) error {
	return r.db.Delete(&models.Staff{}, id).Error
}
