package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderIssue is a customer-reported problem with an order.
type OrderIssue struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	OrderID      uint           `gorm:"index;not null" json:"order_id"`
	Category     string         `gorm:"index;not null" json:"category"` // quality / late / wrong_items / damaged / other
	Priority     string         `gorm:"index;not null;default:'normal'" json:"priority"`
	Status       string         `gorm:"index;not null;default:'open'" json:"status"`
	Description  string         `gorm:"type:text;not null" json:"description"`
	PhotoURLs    StringArray    `gorm:"type:json" json:"photo_urls,omitempty"`
	Resolution   string         `gorm:"type:text" json:"resolution,omitempty"`
	ReportedBy   string         `gorm:"type:varchar(200)" json:"reported_by,omitempty"`
	ResolvedByID *uint          `gorm:"index" json:"resolved_by_id,omitempty"`
	ResolvedAt   *time.Time     `gorm:"index" json:"resolved_at,omitempty"`
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Order *Order `gorm:"foreignKey:OrderID" json:"order,omitempty"`
}

// TableName sets the table name.
func (OrderIssue) TableName() string {
	return "order_issues"
}
