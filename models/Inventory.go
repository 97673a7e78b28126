package models

import (
	"gorm.io/gorm"
)

// Inventory is one stored batch of an ingredient owned by an app user.
// DaysLeft is frozen at the moment the expiry data was loaded; it is never
// recomputed on read.
type Inventory struct {
	gorm.Model
	UserID       uint    `gorm:"column:user_id;not null" json:"user_id"`
	IngredientID uint    `gorm:"column:ingredient_id;not null" json:"ingredient_id"`
	Quantity     float64 `gorm:"not null" json:"quantity"`
	InitQuantity float64 `gorm:"column:init_quantity" json:"init_quantity"`
	ConditionID  uint    `gorm:"column:condition_id" json:"condition_id"`
	ExpiryDateID uint    `gorm:"column:expiry_date_id" json:"expiry_date_id"`
	DaysLeft     int     `gorm:"column:days_left" json:"days_left"`
	FreshnessID  uint    `gorm:"column:freshness_id" json:"freshness_id"`
}

func (Inventory) TableName() string { return "inventory" }

type Condition struct {
	gorm.Model
	Condition string `gorm:"column:condition;not null" json:"condition"`
}

func (Condition) TableName() string { return "condition" }

// ExpiryDate stores dates as plain YYYY-MM-DD strings, matching the source
// rows the dashboard round-trips without transformation.
type ExpiryDate struct {
	gorm.Model
	Date string `gorm:"column:date;not null" json:"date"`
}

func (ExpiryDate) TableName() string { return "expiry_date" }

type FreshnessStatus struct {
	gorm.Model
	StatusColor       string `gorm:"column:status_color" json:"status_color"`
	StatusDescription string `gorm:"column:status_description" json:"status_description"`
}

func (FreshnessStatus) TableName() string { return "freshness_status" }

// NotificationDay is the per-user reminder offset consumed by the app users
// screen.
type NotificationDay struct {
	gorm.Model
	UserID uint `gorm:"column:user_id;not null" json:"user_id"`
	Day    int  `gorm:"column:day" json:"day"`
}

func (NotificationDay) TableName() string { return "notification_day" }
