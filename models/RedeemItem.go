package models

import (
	"gorm.io/gorm"
)

// RedeemItem is a venue-scoped reward redeemable with drink dollars.
type RedeemItem struct {
	gorm.Model
	VenueID         uint    `gorm:"column:venue_id;not null" json:"venue_id"`
	ItemName        string  `gorm:"column:item_name;not null" json:"item_name"`
	ItemDescription string  `gorm:"column:item_description;type:text" json:"item_description"`
	Amount          float64 `gorm:"column:amount" json:"amount"`
	PicPath         string  `gorm:"column:pic_path" json:"pic_path"`
}

func (RedeemItem) TableName() string { return "redeem_items" }
