package models

import (
	"gorm.io/gorm"
)

// IDList is an array-valued foreign key column (languages, recommended tags)
// persisted as JSON so it survives both postgres and the sqlite test driver.
type IDList []uint

// StringList mirrors the array-valued image path column on images_path rows.
type StringList []string

type Venue struct {
	gorm.Model
	VenueName       string  `gorm:"column:venue_name;not null" json:"venue_name"`
	Address         string  `gorm:"column:address" json:"address"`
	OpeningHours    string  `gorm:"column:opening_hours" json:"opening_hours"`
	HappyHours      string  `gorm:"column:happy_hours" json:"happy_hours"`
	NightHours      string  `gorm:"column:night_hours" json:"night_hours"`
	MorningHours    string  `gorm:"column:morning_hours" json:"morning_hours"`
	Price           string  `gorm:"column:price" json:"price"`
	DrinkMinSpend   string  `gorm:"column:drink_min_spend" json:"drink_min_spend"`
	Recommended     IDList  `gorm:"column:recommended;serializer:json" json:"recommended"`
	Language        IDList  `gorm:"column:language;serializer:json" json:"language"`
	Playability     string  `gorm:"column:playability" json:"playability"`
	MinimumTips     string  `gorm:"column:minimum_tips" json:"minimum_tips"`
	VenueCategoryID uint    `gorm:"column:venue_category_id" json:"venue_category_id"`
	PicPath         string  `gorm:"column:pic_path" json:"pic_path"`
}

func (Venue) TableName() string { return "venues" }

type VenueCategory struct {
	gorm.Model
	CategoryName string `gorm:"column:category_name;not null" json:"category_name"`
	Description  string `gorm:"column:description;type:text" json:"description"`
}

func (VenueCategory) TableName() string { return "venue_category" }

// VenueDamage is one pricing tier ("damage") attached to a venue.
type VenueDamage struct {
	gorm.Model
	VenueID      uint   `gorm:"column:venue_id;not null" json:"venue_id"`
	Title        string `gorm:"column:title" json:"title"`
	Pax          string `gorm:"column:pax" json:"pax"`
	MinSpend     string `gorm:"column:min_spend" json:"min_spend"`
	Amenities    string `gorm:"column:amenities" json:"amenities"`
	HappyHours   string `gorm:"column:happy_hours" json:"happy_hours"`
	NightHours   string `gorm:"column:night_hours" json:"night_hours"`
	MorningHours string `gorm:"column:morning_hours" json:"morning_hours"`
}

func (VenueDamage) TableName() string { return "venue_damage" }

type VenueMenu struct {
	gorm.Model
	VenueID         uint   `gorm:"column:venue_id;not null" json:"venue_id"`
	ItemName        string `gorm:"column:item_name;not null" json:"item_name"`
	ItemDescription string `gorm:"column:item_description;type:text" json:"item_description"`
	OriginalPrice   string `gorm:"column:original_price" json:"original_price"`
}

func (VenueMenu) TableName() string { return "venue_menu" }

// ImagesPath holds a venue's gallery images as one array-valued row with a
// type discriminator, matching the generic table the original dashboard uses.
type ImagesPath struct {
	gorm.Model
	VenueID   uint       `gorm:"column:venue_id;not null" json:"venue_id"`
	Type      string     `gorm:"column:type;not null" json:"type"`
	ImagePath StringList `gorm:"column:image_path;serializer:json" json:"image_path"`
}

func (ImagesPath) TableName() string { return "images_path" }

type Language struct {
	gorm.Model
	LanguageName string `gorm:"column:language_name;not null" json:"language_name"`
	Status       string `gorm:"column:status;default:enabled" json:"status"`
}

func (Language) TableName() string { return "languages" }

type RecommendedTag struct {
	gorm.Model
	TagName string `gorm:"column:tag_name;not null" json:"tag_name"`
	Status  string `gorm:"column:status;default:enabled" json:"status"`
}

func (RecommendedTag) TableName() string { return "recommended_tags" }
