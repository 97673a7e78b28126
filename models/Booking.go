package models

import (
	"gorm.io/gorm"
)

// Booking is a venue reservation placed on behalf of an app user. The unique
// code is generated server-side at creation: 8 characters from [A-Z0-9].
type Booking struct {
	gorm.Model
	VenueID           uint   `gorm:"column:venue_id;not null" json:"venue_id"`
	UserID            uint   `gorm:"column:user_id;not null" json:"user_id"`
	PreferredDate     string `gorm:"column:preferred_date" json:"preferred_date"`
	Pax               string `gorm:"column:pax" json:"pax"`
	RoomNo            string `gorm:"column:room_no" json:"room_no"`
	Manager           string `gorm:"column:manager" json:"manager"`
	Notes             string `gorm:"column:notes;type:text" json:"notes"`
	BookingUniqueCode string `gorm:"column:booking_unique_code;uniqueIndex" json:"booking_unique_code"`
	Status            string `gorm:"column:status" json:"status"`
}

func (Booking) TableName() string { return "booking" }

// Redemption is a redeemed item attached to a booking.
type Redemption struct {
	gorm.Model
	BookingID uint    `gorm:"column:booking_id;not null" json:"booking_id"`
	ItemName  string  `gorm:"column:item_name" json:"item_name"`
	Quantity  int     `gorm:"column:quantity" json:"quantity"`
	Amount    float64 `gorm:"column:amount" json:"amount"`
}

func (Redemption) TableName() string { return "redemption" }
