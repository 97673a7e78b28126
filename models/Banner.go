package models

import (
	"gorm.io/gorm"
)

// Banner is a promotional image slot on the client home screen.
type Banner struct {
	gorm.Model
	Title     string `gorm:"not null" json:"title"`
	ImagePath string `gorm:"column:image_path" json:"image_path"`
	Status    string `gorm:"column:status;default:enabled" json:"status"`
	SortOrder int    `gorm:"column:sort_order" json:"sort_order"`
}

func (Banner) TableName() string { return "banners" }
