package service

import (
	"strings"

	"github.com/panaderia-next/internal/logger"
	"github.com/panaderia-next/internal/models"
	"github.com/panaderia-next/internal/queue"
	"github.com/panaderia-next/internal/realtime"
	"github.com/panaderia-next/internal/repository"

	"github.com/shopspring/decimal"
)

// InventoryService tracks ingredient stock levels and raises low
// stock alerts when a deduction crosses the reorder threshold.
type InventoryService struct {
	inventoryRepo repository.InventoryRepository
	queueClient   *queue.Client
	feed          *realtime.Feed
}

// NewInventoryService creates the inventory service.
func NewInventoryService(inventoryRepo repository.InventoryRepository, queueClient *queue.Client, feed *realtime.Feed) *InventoryService {
	return &InventoryService{
		inventoryRepo: inventoryRepo,
		queueClient:   queueClient,
		feed:          feed,
	}
}

// InventoryItemInput is the create/update payload.
type InventoryItemInput struct {
	Name             string
	SKU              string
	Unit             string
	Quantity         string
	ReorderThreshold string
	CostPerUnit      string
	Supplier         string
}

// List lists inventory items.
func (s *InventoryService) List(filter repository.InventoryListFilter) ([]models.InventoryItem, int64, error) {
	return s.inventoryRepo.List(filter)
}

// ListLowStock lists items at or below their reorder threshold.
func (s *InventoryService) ListLowStock() ([]models.InventoryItem, error) {
	return s.inventoryRepo.ListLowStock()
}

// GetItem loads one inventory item.
func (s *InventoryService) GetItem(id uint) (*models.InventoryItem, error) {
	item, err := s.inventoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrInventoryNotFound
	}
	return item, nil
}

// CreateItem adds an inventory item.
func (s *InventoryService) CreateItem(input InventoryItemInput) (*models.InventoryItem, error) {
	name := strings.TrimSpace(input.Name)
	sku := strings.TrimSpace(input.SKU)
	if name == "" || sku == "" {
		return nil, ErrValidationFailed
	}
	existing, err := s.inventoryRepo.GetBySKU(sku)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrInventorySKUTaken
	}

	quantity, err := models.NewMoneyFromString(input.Quantity)
	if err != nil || quantity.IsNegative() {
		return nil, ErrValidationFailed
	}
	threshold, err := models.NewMoneyFromString(input.ReorderThreshold)
	if err != nil || threshold.IsNegative() {
		return nil, ErrValidationFailed
	}
	cost, err := models.NewMoneyFromString(input.CostPerUnit)
	if err != nil || cost.IsNegative() {
		return nil, ErrValidationFailed
	}

	item := &models.InventoryItem{
		Name:             name,
		SKU:              sku,
		Unit:             strings.TrimSpace(input.Unit),
		Quantity:         quantity,
		ReorderThreshold: threshold,
		CostPerUnit:      cost,
		Supplier:         strings.TrimSpace(input.Supplier),
	}
	if err := s.inventoryRepo.Create(item); err != nil {
		return nil, err
	}
	s.publish(realtime.EventInsert, nil, item)
	return item, nil
}

// UpdateItem replaces an item's editable fields. Quantity moves only
// through AdjustQuantity and Restock so stock history stays coherent.
func (s *InventoryService) UpdateItem(id uint, input InventoryItemInput) (*models.InventoryItem, error) {
	item, err := s.inventoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrInventoryNotFound
	}
	before := *item

	if name := strings.TrimSpace(input.Name); name != "" {
		item.Name = name
	}
	if unit := strings.TrimSpace(input.Unit); unit != "" {
		item.Unit = unit
	}
	if strings.TrimSpace(input.ReorderThreshold) != "" {
		threshold, err := models.NewMoneyFromString(input.ReorderThreshold)
		if err != nil || threshold.IsNegative() {
			return nil, ErrValidationFailed
		}
		item.ReorderThreshold = threshold
	}
	if strings.TrimSpace(input.CostPerUnit) != "" {
		cost, err := models.NewMoneyFromString(input.CostPerUnit)
		if err != nil || cost.IsNegative() {
			return nil, ErrValidationFailed
		}
		item.CostPerUnit = cost
	}
	item.Supplier = strings.TrimSpace(input.Supplier)

	if err := s.inventoryRepo.Update(item); err != nil {
		return nil, err
	}
	s.publish(realtime.EventUpdate, &before, item)
	return item, nil
}

// AdjustQuantity applies a signed stock delta. Negative deltas that
// would take the quantity below zero clamp at zero. Crossing the
// reorder threshold downward queues a low stock alert.
func (s *InventoryService) AdjustQuantity(id uint, delta decimal.Decimal) (*models.InventoryItem, error) {
	before, err := s.inventoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if before == nil {
		return nil, ErrInventoryNotFound
	}
	wasLow := before.IsLowStock()

	item, err := s.inventoryRepo.AdjustQuantity(id, delta)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrInventoryNotFound
	}
	if item.IsLowStock() && !wasLow {
		s.enqueueLowStockAlert(item)
	}
	s.publish(realtime.EventUpdate, before, item)
	return item, nil
}

// Restock adds stock and stamps the restock time.
func (s *InventoryService) Restock(id uint, amount decimal.Decimal) (*models.InventoryItem, error) {
	if !amount.IsPositive() {
		return nil, ErrValidationFailed
	}
	item, err := s.AdjustQuantity(id, amount)
	if err != nil {
		return nil, err
	}
	if err := s.inventoryRepo.TouchRestockedAt(id); err != nil {
		logger.Warnw("inventory_touch_restocked_failed", "item_id", id, "error", err)
	}
	return item, nil
}

// DeleteItem removes an inventory item.
func (s *InventoryService) DeleteItem(id uint) error {
	item, err := s.inventoryRepo.GetByID(id)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrInventoryNotFound
	}
	if err := s.inventoryRepo.Delete(id); err != nil {
		return err
	}
	s.publish(realtime.EventDelete, item, nil)
	return nil
}

func (s *InventoryService) enqueueLowStockAlert(item *models.InventoryItem) {
	if s.queueClient == nil || !s.queueClient.Enabled() {
		return
	}
	if err := s.queueClient.EnqueueInventoryLowStock(queue.InventoryLowStockPayload{
		InventoryItemID: item.ID,
	}); err != nil {
		logger.Warnw("inventory_enqueue_low_stock_failed",
			"item_id", item.ID,
			"sku", item.SKU,
			"error", err,
		)
	}
}

func (s *InventoryService) publish(eventType realtime.EventType, old, updated *models.InventoryItem) {
	if s.feed == nil {
		return
	}
	event := realtime.Event{
		Entity: realtime.EntityInventory,
		Type:   eventType,
	}
	if old != nil {
		oldCopy := *old
		event.Old = &oldCopy
	}
	if updated != nil {
		newCopy := *updated
		event.New = &newCopy
	}
	s.feed.Publish(event)
}
