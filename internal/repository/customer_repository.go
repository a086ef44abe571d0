package repository

import (
	"errors"

	"github.com/panaderia-next/internal/models"

	"gorm.io/gorm"
)

// CustomerRepository is the customer data access interface.
type CustomerRepository interface {
	GetByEmail(email string) (*models.Customer, error)
	GetByID(id uint) (*models.Customer, error)
	Create(customer *models.Customer) error
	Update(customer *models.Customer) error
}

// GormCustomerRepository is the GORM implementation.
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates the customer repository.
func NewCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// GetByEmail loads a customer by email.
func (r *GormCustomerRepository) GetByEmail(email string) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.Where("email = ?", email).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

// GetByID loads a customer by ID.
func (r *GormCustomerRepository) GetByID(id uint) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

// Create inserts a customer.
func (r *GormCustomerRepository) Create(customer *models.Customer) error {
	return r.db.Create(customer).Error
}

// Update saves the full customer row.
func (r *GormCustomerRepository) Update(customer *models.Customer) error {
	return r.db.Save(customer).Error
}
