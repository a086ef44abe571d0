package models

import (
	"github.com/panaderia-next/internal/constants"
	"github.com/panaderia-next/internal/logger"

	"golang.org/x/crypto/bcrypt"
)

// InitDefaultOwner creates the default owner account when no staff exist.
func InitDefaultOwner(username, password string) error {
	var count int64
	DB.Model(&Staff{}).Count(&count)

	// If staff already exist, make sure the default owner keeps its role.
	if count > 0 {
		if err := DB.Model(&Staff{}).Where("username = ?", "owner").
			Update("role", constants.RoleOwner).Error; err != nil {
			logger.Warnw("ensure_default_owner_role_failed", "error", err)
		}
		return nil
	}

	if username == "" {
		username = "owner"
	}
	if password == "" {
		password = "owner123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	owner := Staff{
		Username:     username,
		PasswordHash: string(hash),
		DisplayName:  "Owner",
		Role:         constants.RoleOwner,
		Active:       true,
	}

	if err := DB.Create(&owner).Error; err != nil {
		return err
	}

	if password == "owner123" {
		logger.Warnw("default_owner_created_with_default_password", "username", username)
		logger.Warnw("default_owner_password_change_required", "username", username)
	} else {
		logger.Warnw("default_owner_created", "username", username, "password_hidden", true)
	}

	return nil
}
