package models

import (
	"gorm.io/gorm"
)

// Recipe's TotalTime is derived: prep + cook, recomputed on every create and
// edit of either input.
type Recipe struct {
	gorm.Model
	Name        string `gorm:"not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	PrepTime    int    `gorm:"column:prep_time" json:"prep_time"`
	CookTime    int    `gorm:"column:cook_time" json:"cook_time"`
	TotalTime   int    `gorm:"column:total_time" json:"total_time"`
	ImagePath   string `gorm:"column:image_path" json:"image_path"`
}

func (Recipe) TableName() string { return "recipes" }

// RecipeCategory maps the original's bare "category" table.
type RecipeCategory struct {
	gorm.Model
	Name        string `gorm:"not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}

func (RecipeCategory) TableName() string { return "category" }

type Tag struct {
	gorm.Model
	Name string `gorm:"not null" json:"name"`
}

func (Tag) TableName() string { return "tags" }

type Equipment struct {
	gorm.Model
	Name string `gorm:"not null" json:"name"`
}

func (Equipment) TableName() string { return "equipment" }

type MealType struct {
	gorm.Model
	Name string `gorm:"not null" json:"name"`
}

func (MealType) TableName() string { return "meal_type" }

type RecipeTag struct {
	gorm.Model
	RecipeID uint `gorm:"column:recipe_id;not null" json:"recipe_id"`
	TagID    uint `gorm:"column:tag_id;not null" json:"tag_id"`
}

func (RecipeTag) TableName() string { return "recipe_tags" }

type RecipeEquipment struct {
	gorm.Model
	RecipeID    uint `gorm:"column:recipe_id;not null" json:"recipe_id"`
	EquipmentID uint `gorm:"column:equipment_id;not null" json:"equipment_id"`
	Quantity    int  `gorm:"column:quantity;default:1" json:"quantity"`
}

func (RecipeEquipment) TableName() string { return "recipe_equipment" }

type RecipeCategoryLink struct {
	gorm.Model
	RecipeID   uint `gorm:"column:recipe_id;not null" json:"recipe_id"`
	CategoryID uint `gorm:"column:category_id;not null" json:"category_id"`
}

func (RecipeCategoryLink) TableName() string { return "recipe_category" }

type RecipeIngredient struct {
	gorm.Model
	RecipeID     uint    `gorm:"column:recipe_id;not null" json:"recipe_id"`
	IngredientID uint    `gorm:"column:ingredient_id;not null" json:"ingredient_id"`
	Quantity     float64 `gorm:"column:quantity" json:"quantity"`
}

func (RecipeIngredient) TableName() string { return "recipe_ingredients" }

// Step is one ordered instruction of a recipe.
type Step struct {
	gorm.Model
	RecipeID    uint   `gorm:"column:recipe_id;not null" json:"recipe_id"`
	StepNumber  int    `gorm:"column:step_number;not null" json:"step_number"`
	Description string `gorm:"type:text" json:"description"`
}

func (Step) TableName() string { return "steps" }
