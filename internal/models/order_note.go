package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderNote is an internal staff note attached to an order.
type OrderNote struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	OrderID    uint           `gorm:"index;not null" json:"order_id"`
	StaffID    *uint          `gorm:"index" json:"staff_id,omitempty"`
	AuthorName string         `gorm:"type:varchar(200)" json:"author_name"`
	Body       string         `gorm:"type:text;not null" json:"body"`
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (OrderNote) TableName() string {
	return "order_notes"
}
