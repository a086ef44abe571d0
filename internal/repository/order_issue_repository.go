package repository

import (
	"errors"

	"github.com/panaderia-next/internal/models"

	"gorm.io/gorm"
)

// OrderIssueRepository is the order issue data access interface.
type OrderIssueRepository interface {
	Create(issue *models.OrderIssue) error
	GetByID(id uint) (*models.OrderIssue, error)
	List(filter IssueListFilter) ([]models.OrderIssue, int64, error)
	Update(issue *models.OrderIssue) error
}

// GormOrderIssueRepository is the GORM implementation.
type GormOrderIssueRepository struct {
	db *gorm.DB
}

// NewOrderIssueRepository creates the order issue repository.
func NewOrderIssueRepository(db *gorm.DB) *GormOrderIssueRepository {
	return &GormOrderIssueRepository{db: db}
}

// Create inserts an issue.
func (r *GormOrderIssueRepository) Create(issue *models.OrderIssue) error {
	return r.db.Create(issue).Error
}

// GetByID loads an issue by ID.
func (r *GormOrderIssueRepository) GetByID(id uint) (*models.OrderIssue, error) {
	var issue models.OrderIssue
	if err := r.db.Preload("Order").First(&issue, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &issue, nil
}

// List lists issues for the back office.
func (r *GormOrderIssueRepository) List(filter IssueListFilter) ([]models.OrderIssue, int64, error) {
	var issues []models.OrderIssue
	query := r.db.Model(&models.OrderIssue{})

	if filter.OrderID != 0 {
		query = query.Where("order_id = ?", filter.OrderID)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Preload("Order").Order("id desc").Find(&issues).Error; err != nil {
		return nil, 0, err
	}
	return issues, total, nil
}

// Update saves the full issue row.
func (r *GormOrderIssueRepository) Update(issue *models.OrderIssue) error {
	return r.db.Save(issue).Error
}
