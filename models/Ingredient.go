package models

import (
	"gorm.io/gorm"
)

// NutritionalInfo is the unstructured key/value blob stored alongside an
// ingredient (fat, protein, calories, carbohydrate, ...).
type NutritionalInfo map[string]string

type Ingredient struct {
	gorm.Model
	Name                  string          `gorm:"not null" json:"name"`
	IconPath              string          `gorm:"column:icon_path" json:"icon_path"`
	NutritionalInfo       NutritionalInfo `gorm:"column:nutritional_info;serializer:json" json:"nutritional_info"`
	PredShelfLife         string          `gorm:"column:pred_shelf_life" json:"pred_shelf_life"`
	StorageTips           string          `gorm:"column:storage_tips;type:text" json:"storage_tips"`
	IngredientsCategoryID uint            `gorm:"column:ingredients_category_id" json:"ingredients_category_id"`
	QuantityUnitID        uint            `gorm:"column:quantity_unit_id" json:"quantity_unit_id"`
	QuantityUnitInvID     uint            `gorm:"column:quantity_unitInv_id" json:"quantity_unitInv_id"`
}

func (Ingredient) TableName() string { return "ingredients" }

type IngredientCategory struct {
	gorm.Model
	CategoryName        string `gorm:"column:category_name;not null" json:"category_name"`
	CategoryDescription string `gorm:"column:category_description;type:text" json:"category_description"`
}

func (IngredientCategory) TableName() string { return "ingredients_category" }

// Unit is the measurement unit offered by the quantity-unit dropdown.
type Unit struct {
	gorm.Model
	UnitDescription string `gorm:"column:unit_description;not null" json:"unit_description"`
}

func (Unit) TableName() string { return "unit" }

// UnitInv is the inventory-side unit tag (the original keeps the camelCase
// table name, so the model does too).
type UnitInv struct {
	gorm.Model
	UnitInvTag string `gorm:"column:unitInv_tag;not null" json:"unitInv_tag"`
}

func (UnitInv) TableName() string { return "unitInv" }

// IngredientExpiry links an ingredient to its predicted expiry date row.
type IngredientExpiry struct {
	gorm.Model
	IngredientsID uint `gorm:"column:ingredients_id;not null" json:"ingredients_id"`
	DateID        uint `gorm:"column:date_id;not null" json:"date_id"`
}

func (IngredientExpiry) TableName() string { return "ingredients_expiry" }
