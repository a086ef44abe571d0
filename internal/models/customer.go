package models

import (
	"time"

	"gorm.io/gorm"
)

// Customer is a registered storefront account. Guest orders carry their
// contact details on the order itself and have no customer row.
type Customer struct {
	ID                 uint           `gorm:"primarykey" json:"id"`
	Email              string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash       string         `gorm:"not null" json:"-"`
	Name               string         `gorm:"type:varchar(200)" json:"name"`
	Phone              string         `gorm:"type:varchar(40)" json:"phone,omitempty"`
	DefaultAddress     string         `gorm:"type:varchar(500)" json:"default_address,omitempty"`
	Locale             string         `gorm:"type:varchar(20);default:'en-US'" json:"locale"`
	TokenVersion       uint64         `gorm:"not null;default:0" json:"-"`
	TokenInvalidBefore *time.Time     `gorm:"index" json:"-"`
	LastLoginAt        *time.Time     `json:"last_login_at,omitempty"`
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (Customer) TableName() string {
	return "customers"
}
