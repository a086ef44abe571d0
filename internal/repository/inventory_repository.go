package repository

import (
	"errors"
	"time"

	"github.com/panaderia-next/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InventoryRepository is the inventory data access interface.
type InventoryRepository interface {
	Create(item *models.InventoryItem) error
	GetByID(id uint) (*models.InventoryItem, error)
	GetBySKU(sku string) (*models.InventoryItem, error)
	List(filter InventoryListFilter) ([]models.InventoryItem, int64, error)
	ListLowStock() ([]models.InventoryItem, error)
	AdjustQuantity(id uint, delta decimal.Decimal) (*models.InventoryItem, error)
	TouchRestockedAt(id uint) error
	Update(item *models.InventoryItem) error
	Delete(id uint) error
	WithTx(tx *gorm.DB) *GormInventoryRepository
}

// GormInventoryRepository is the GORM implementation.
type GormInventoryRepository struct {
	db *gorm.DB
}

// NewInventoryRepository creates the inventory repository.
func NewInventoryRepository(db *gorm.DB) *GormInventoryRepository {
	return &GormInventoryRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormInventoryRepository) WithTx(tx *gorm.DB) *GormInventoryRepository {
	if tx == nil {
		return r
	}
	return &GormInventoryRepository{db: tx}
}

// Create inserts an inventory item.
func (r *GormInventoryRepository) Create(item *models.InventoryItem) error {
	return r.db.Create(item).Error
}

// GetByID loads an inventory item by ID.
func (r *GormInventoryRepository) GetByID(id uint) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := r.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// GetBySKU loads an inventory item by SKU.
func (r *GormInventoryRepository) GetBySKU(sku string) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := r.db.Where("sku = ?", sku).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// List lists inventory items.
func (r *GormInventoryRepository) List(filter InventoryListFilter) ([]models.InventoryItem, int64, error) {
	var items []models.InventoryItem
	query := r.db.Model(&models.InventoryItem{})

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR sku LIKE ? OR supplier LIKE ?", like, like, like)
	}
	if filter.OnlyLowStock {
		query = query.Where("quantity <= reorder_threshold")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("name asc").Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// ListLowStock lists items at or below their reorder threshold.
func (r *GormInventoryRepository) ListLowStock() ([]models.InventoryItem, error) {
	items := make([]models.InventoryItem, 0)
	if err := r.db.Where("quantity <= reorder_threshold").Order("name asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// AdjustQuantity applies a signed delta inside a transaction and
// returns the updated item.
func (r *GormInventoryRepository) AdjustQuantity(id uint, delta decimal.Decimal) (*models.InventoryItem, error) {
	var updated *models.InventoryItem
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var item models.InventoryItem
		if err := tx.First(&item, id).Error; err != nil {
			return err
		}
		next := item.Quantity.Add(delta)
		if next.IsNegative() {
			next = decimal.Zero
		}
		item.Quantity = models.NewMoneyFromDecimal(next)
		if err := tx.Save(&item).Error; err != nil {
			return err
		}
		updated = &item
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return updated, nil
}

// TouchRestockedAt stamps the last restock time.
func (r *GormInventoryRepository) TouchRestockedAt(id uint) error {
	return r.db.Model(&models.InventoryItem{}).
		Where("id = ?", id).
		Update("last_restocked_at", time.Now()).Error
}

// Update saves the full inventory row.
func (r *GormInventoryRepository) Update(item *models.InventoryItem) error {
	return r.db.Save(item).Error
}

// Delete soft-deletes an inventory item.
func (r *GormInventoryRepository) Delete(id uint) error {
	return r.db.Delete(&models.InventoryItem{}, id).Error
}
