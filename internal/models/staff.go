package models

import (
	"time"

	"gorm.io/gorm"
)

// Staff is a bakery employee account.
type Staff struct {
	ID                 uint           `gorm:"primarykey" json:"id"`
	Username           string         `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash       string         `gorm:"not null" json:"-"`
	DisplayName        string         `gorm:"type:varchar(200)" json:"display_name"`
	Email              string         `gorm:"type:varchar(200)" json:"email,omitempty"`
	Phone              string         `gorm:"type:varchar(40)" json:"phone,omitempty"`
	Role               string         `gorm:"index;not null" json:"role"` // owner / baker / driver
	Active             bool           `gorm:"not null;default:true;index" json:"active"`
	TokenVersion       uint64         `gorm:"not null;default:0" json:"-"`
	TokenInvalidBefore *time.Time     `gorm:"index" json:"-"`
	LastLoginAt        *time.Time     `json:"last_login_at,omitempty"`
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (Staff) TableName() string {
	return "staff"
}
