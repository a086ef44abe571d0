package repository

import (
	"errors"

	"github.com/panaderia-next/internal/models"

	"gorm.io/gorm"
)

// MenuRepository is the menu item data access interface.
type MenuRepository interface {
	Create(item *models.MenuItem) error
	GetByID(id uint) (*models.MenuItem, error)
	GetByIDs(ids []uint) ([]models.MenuItem, error)
	List(filter MenuListFilter) ([]models.MenuItem, int64, error)
	Update(item *models.MenuItem) error
	Delete(id uint) error
}

// GormMenuRepository is the GORM implementation.
type GormMenuRepository struct {
	db *gorm.DB
}

// NewMenuRepository creates the menu repository.
func NewMenuRepository(db *gorm.DB) *GormMenuRepository {
	return &GormMenuRepository{db: db}
}

// Create inserts a menu item.
func (r *GormMenuRepository) Create(item *models.MenuItem) error {
	return r.db.Create(item).Error
}

// GetByID loads a menu item by ID.
func (r *GormMenuRepository) GetByID(id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := r.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// GetByIDs loads menu items by ID set.
func (r *GormMenuRepository) GetByIDs(ids []uint) ([]models.MenuItem, error) {
	items := make([]models.MenuItem, 0)
	if len(ids) == 0 {
		return items, nil
	}
	if err := r.db.Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// List lists menu items.
func (r *GormMenuRepository) List(filter MenuListFilter) ([]models.MenuItem, int64, error) {
	var items []models.MenuItem
	query := r.db.Model(&models.MenuItem{})

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.OnlyAvailable {
		query = query.Where("available = ?", true)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR description LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("sort_order asc, id asc").Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Update saves the full menu item row.
func (r *GormMenuRepository) Update(item *models.MenuItem) error {
	return r.db.Save(item).Error
}

// Delete soft-deletes a menu item.
func (r *GormMenuRepository) Delete(id uint) error {
	return r.db.Delete(&models.MenuItem{}, id).Error
}
