package models

import (
	"gorm.io/gorm"
)

// Profile is an application end user as shown on the app users screens.
type Profile struct {
	gorm.Model
	Username    string `gorm:"not null" json:"username"`
	Email       string `gorm:"uniqueIndex" json:"email"`
	FirstName   string `gorm:"column:first_name" json:"first_name"`
	LastName    string `gorm:"column:last_name" json:"last_name"`
	Birthday    string `gorm:"column:birthday" json:"birthday"`
	PicturePath string `gorm:"column:picture_path" json:"picture_path"`
}

func (Profile) TableName() string { return "profiles" }

type Role struct {
	gorm.Model
	RoleName string `gorm:"column:role_name;not null" json:"role_name"`
}

func (Role) TableName() string { return "roles" }

// UserRole is the denormalized secondary role table updated alongside a
// profile edit.
type UserRole struct {
	gorm.Model
	UserID uint `gorm:"column:user_id;not null" json:"user_id"`
	RoleID uint `gorm:"column:role_id;not null" json:"role_id"`
}

func (UserRole) TableName() string { return "user_roles" }
