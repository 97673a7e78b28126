package models

import (
	"gorm.io/gorm"
)

// DrinkDollar is a per-user coin balance.
type DrinkDollar struct {
	gorm.Model
	UserID uint `gorm:"column:user_id;not null;uniqueIndex" json:"user_id"`
	Coins  int  `gorm:"not null;default:0" json:"coins"`
}

func (DrinkDollar) TableName() string { return "drink_dollars" }

// DrinkDollarTransaction is one entry of the read-only coin history shown on
// the drink dollar detail screen.
type DrinkDollarTransaction struct {
	gorm.Model
	UserID           uint   `gorm:"column:user_id;not null" json:"user_id"`
	TransTitle       string `gorm:"column:trans_title" json:"trans_title"`
	TransDescription string `gorm:"column:trans_description;type:text" json:"trans_description"`
	Coins            int    `gorm:"column:coins" json:"coins"`
}

func (DrinkDollarTransaction) TableName() string { return "trans_drink_dollar" }
