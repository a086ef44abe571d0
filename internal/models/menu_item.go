package models

import (
	"time"

	"gorm.io/gorm"
)

// MenuItem is a sellable product on the bakery menu.
type MenuItem struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	Name          string         `gorm:"type:varchar(200);not null" json:"name"`
	Description   string         `gorm:"type:text" json:"description,omitempty"`
	Category      string         `gorm:"index;not null" json:"category"` // bread / pastry / cake / cookie / drink / other
	Price         Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`
	Available     bool           `gorm:"not null;default:true;index" json:"available"`
	ImageURL      string         `gorm:"type:varchar(500)" json:"image_url,omitempty"`
	SortOrder     int            `gorm:"default:0;index" json:"sort_order"`
	LeadTimeHours int            `gorm:"not null;default:0" json:"lead_time_hours"` // advance notice needed, e.g. custom cakes
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (MenuItem) TableName() string {
	return "menu_items"
}
