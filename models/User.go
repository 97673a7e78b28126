package models

import "gorm.io/gorm"

// AdminUser is a dashboard account that can authenticate against the admin
// surface. App end users are Profile rows.
type AdminUser struct {
	gorm.Model
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Name         string
}

func (AdminUser) TableName() string { return "admin_users" }
