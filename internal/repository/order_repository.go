package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/panaderia-next/internal/models"

	"gorm.io/gorm"
)

// OrderRepository is the order data access interface.
type OrderRepository interface {
	Create(order *models.Order, items []models.OrderItem) error
	GetByID(id uint) (*models.Order, error)
	GetByOrderNo(orderNo string) (*models.Order, error)
	GetByOrderNoAndContact(orderNo, phone string) (*models.Order, error)
	ResolveReceiverEmailByOrderID(orderID uint) (string, error)
	ListAdmin(filter OrderListFilter) ([]models.Order, int64, error)
	ListByCustomer(filter OrderListFilter) ([]models.Order, int64, error)
	ListDeliveriesForDate(date string) ([]models.Order, error)
	ListCreatedBetween(from, to time.Time) ([]models.Order, error)
	CountCreatedToday(prefix string) (int64, error)
	UpdateGuarded(id uint, expectedUpdatedAt time.Time, updates map[string]interface{}) (int64, error)
	Update(order *models.Order) error
	WithTx(tx *gorm.DB) *GormOrderRepository
}

// GormOrderRepository is the GORM implementation.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates the order repository.
func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormOrderRepository) WithTx(tx *gorm.DB) *GormOrderRepository {
	if tx == nil {
		return r
	}
	return &GormOrderRepository{db: tx}
}

func (r *GormOrderRepository) withDetails(query *gorm.DB) *gorm.DB {
	return query.Preload("Items").Preload("Notes").Preload("Driver")
}

// Create inserts an order with its items.
func (r *GormOrderRepository) Create(order *models.Order, items []models.OrderItem) error {
	if err := r.db.Create(order).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].OrderID = order.ID
	}
	if len(items) > 0 {
		if err := r.db.Create(&items).Error; err != nil {
			return err
		}
	}
	return nil
}

// GetByID loads an order by ID.
func (r *GormOrderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	if err := r.withDetails(r.db).First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// GetByOrderNo loads an order by its order number.
func (r *GormOrderRepository) GetByOrderNo(orderNo string) (*models.Order, error) {
	var order models.Order
	if err := r.withDetails(r.db).Where("order_no = ?", orderNo).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// GetByOrderNoAndContact loads an order for public tracking. The phone
// number on the order must match.
func (r *GormOrderRepository) GetByOrderNoAndContact(orderNo, phone string) (*models.Order, error) {
	var order models.Order
	if err := r.withDetails(r.db).
		Where("order_no = ? AND customer_phone = ?", orderNo, phone).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// ResolveReceiverEmailByOrderID resolves the notification email for an order.
func (r *GormOrderRepository) ResolveReceiverEmailByOrderID(orderID uint) (string, error) {
	if orderID == 0 {
		return "", nil
	}

	var orderRow struct {
		CustomerID    *uint
		CustomerEmail string
	}
	if err := r.db.Model(&models.Order{}).
		Select("customer_id", "customer_email").
		Where("id = ?", orderID).
		Take(&orderRow).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	if orderRow.CustomerID == nil || *orderRow.CustomerID == 0 {
		return strings.TrimSpace(orderRow.CustomerEmail), nil
	}

	var customerRow struct {
		Email string
	}
	if err := r.db.Model(&models.Customer{}).
		Select("email").
		Where("id = ?", *orderRow.CustomerID).
		Take(&customerRow).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return strings.TrimSpace(orderRow.CustomerEmail), nil
		}
		return "", err
	}
	return strings.TrimSpace(customerRow.Email), nil
}

func (r *GormOrderRepository) applyFilter(query *gorm.DB, filter OrderListFilter) *gorm.DB {
	if filter.CustomerID != 0 {
		query = query.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if len(filter.Statuses) > 0 {
		query = query.Where("status IN ?", filter.Statuses)
	}
	if filter.OrderType != "" {
		query = query.Where("order_type = ?", filter.OrderType)
	}
	if filter.DeliveryStatus != "" {
		query = query.Where("delivery_status = ?", filter.DeliveryStatus)
	}
	if filter.DriverID != 0 {
		query = query.Where("driver_id = ?", filter.DriverID)
	}
	if filter.OrderNo != "" {
		query = query.Where("order_no = ?", filter.OrderNo)
	}
	if filter.Phone != "" {
		query = query.Where("customer_phone = ?", filter.Phone)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("order_no LIKE ? OR customer_name LIKE ? OR customer_phone LIKE ?", like, like, like)
	}
	if filter.DateNeeded != "" {
		query = query.Where("date_needed = ?", filter.DateNeeded)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}
	return query
}

// ListAdmin lists orders for the back office.
func (r *GormOrderRepository) ListAdmin(filter OrderListFilter) ([]models.Order, int64, error) {
	var orders []models.Order
	query := r.applyFilter(r.db.Model(&models.Order{}), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := r.withDetails(query).Order("id desc").Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// ListByCustomer lists a registered customer's orders.
func (r *GormOrderRepository) ListByCustomer(filter OrderListFilter) ([]models.Order, int64, error) {
	var orders []models.Order
	query := r.db.Model(&models.Order{}).Where("customer_id = ?", filter.CustomerID)

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.OrderNo != "" {
		query = query.Where("order_no LIKE ?", "%"+filter.OrderNo+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Preload("Items").Order("id desc").Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// ListDeliveriesForDate lists delivery orders needed on the given date,
// excluding cancelled ones. Ordering is applied by the service layer.
func (r *GormOrderRepository) ListDeliveriesForDate(date string) ([]models.Order, error) {
	var orders []models.Order
	if err := r.withDetails(r.db).
		Where("order_type = ? AND date_needed = ? AND status <> ?", "delivery", date, "cancelled").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// ListCreatedBetween lists orders created in [from, to), items preloaded.
func (r *GormOrderRepository) ListCreatedBetween(from, to time.Time) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Preload("Items").
		Where("created_at >= ? AND created_at < ?", from, to).
		Order("id asc").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// CountCreatedToday counts orders whose order_no carries the given day prefix.
func (r *GormOrderRepository) CountCreatedToday(prefix string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Order{}).
		Unscoped().
		Where("order_no LIKE ?", prefix+"%").
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// UpdateGuarded applies updates only when updated_at still matches the
// value the caller read, returning the number of rows touched.
func (r *GormOrderRepository) UpdateGuarded(id uint, expectedUpdatedAt time.Time, updates map[string]interface{}) (int64, error) {
	if updates == nil {
		updates = map[string]interface{}{}
	}
	result := r.db.Model(&models.Order{}).
		Where("id = ? AND updated_at = ?", id, expectedUpdatedAt).
		Updates(updates)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// Update saves the full order row.
func (r *GormOrderRepository) Update(order *models.Order) error {
	return r.db.Save(order).Error
}
