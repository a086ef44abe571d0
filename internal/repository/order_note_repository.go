package repository

import (
	"github.com/panaderia-next/internal/models"

	"gorm.io/gorm"
)

// OrderNoteRepository is the order note data access interface.
type OrderNoteRepository interface {
	Create(note *models.OrderNote) error
	ListByOrder(orderID uint) ([]models.OrderNote, error)
}

// GormOrderNoteRepository is the GORM implementation.
type GormOrderNoteRepository struct {
	db *gorm.DB
}

// NewOrderNoteRepository creates the order note repository.
func NewOrderNoteRepository(db *gorm.DB) *GormOrderNoteRepository {
	return &GormOrderNoteRepository{db: db}
}

// Create inserts a note.
func (r *GormOrderNoteRepository) Create(note *models.OrderNote) error {
	return r.db.Create(note).Error
}

// ListByOrder lists an order's notes, oldest first.
func (r *GormOrderNoteRepository) ListByOrder(orderID uint) ([]models.OrderNote, error) {
	notes := make([]models.OrderNote, 0)
	if err := r.db.Where("order_id = ?", orderID).Order("id asc").Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}
