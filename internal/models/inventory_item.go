package models

import (
	"time"

	"gorm.io/gorm"
)

// InventoryItem is a raw ingredient or supply tracked by the bakery.
type InventoryItem struct {
	ID               uint           `gorm:"primarykey" json:"id"`
	Name             string         `gorm:"type:varchar(200);not null" json:"name"`
	SKU              string         `gorm:"uniqueIndex;not null" json:"sku"`
	Unit             string         `gorm:"type:varchar(20);not null" json:"unit"` // kg / g / l / pc / dozen
	Quantity         Money          `gorm:"type:decimal(20,2);not null;default:0" json:"quantity"`
	ReorderThreshold Money          `gorm:"type:decimal(20,2);not null;default:0" json:"reorder_threshold"`
	CostPerUnit      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"cost_per_unit"`
	Supplier         string         `gorm:"type:varchar(200)" json:"supplier,omitempty"`
	LastRestockedAt  *time.Time     `json:"last_restocked_at,omitempty"`
	CreatedAt        time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (InventoryItem) TableName() string {
	return "inventory_items"
}

// IsLowStock reports whether quantity has fallen to or below the
// reorder threshold.
func (i *InventoryItem) IsLowStock() bool {
	return i.Quantity.LessThanOrEqual(i.ReorderThreshold.Decimal)
}
