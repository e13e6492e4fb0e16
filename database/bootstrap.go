package database

import (
	"fmt"
	"os"
	"strings"

	"intake-backend/models"

	"gorm.io/gorm"
)

// EnsureAdminUser creates (or leaves alone) the single admin account used by
// the protected read endpoints. Credentials come from ADMIN_EMAIL and
// ADMIN_PASSWORD; when either is unset the admin surface is simply unusable.
func EnsureAdminUser() error {
	email := strings.TrimSpace(os.Getenv("ADMIN_EMAIL"))
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return nil
	}

	var existing models.User
	err := DB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return fmt.Errorf("admin lookup failed: %w", err)
	}

	name := strings.TrimSpace(os.Getenv("ADMIN_NAME"))
	if name == "" {
		name = "Admin"
	}
	user := models.User{Name: name, Email: email}
	user.SetPassword(password)
	if err := DB.Create(&user).Error; err != nil {
		return fmt.Errorf("admin create failed: %w", err)
	}
	return nil
}
