package handlers

import (
	"net/http"
	"strings"

	"barboard/internal/listing"
	"barboard/models"
)

var ingredientCategories = &lookupResource[models.IngredientCategory]{
	prefix:      "/admin/api/ingredientcategories",
	table:       "ingredients_category",
	idOf:        func(c models.IngredientCategory) uint { return c.ID },
	labelOf:     func(c models.IngredientCategory) string { return c.CategoryName },
	labelKey:    "category_name",
	defaultSort: listing.Sort{Key: "id"},
	validate: func(c *models.IngredientCategory) bool {
		c.CategoryName = strings.TrimSpace(c.CategoryName)
		c.CategoryDescription = strings.TrimSpace(c.CategoryDescription)
		return c.CategoryName != ""
	},
	patch: func(c models.IngredientCategory) map[string]any {
		return map[string]any{
			"category_name":        c.CategoryName,
			"category_description": c.CategoryDescription,
		}
	},
}

// IngredientCategoryResource handles REST interactions for ingredient categories.
func IngredientCategoryResource(w http.ResponseWriter, r *http.Request) {
	ingredientCategories.handle(w, r)
}

var units = &lookupResource[models.Unit]{
	prefix:      "/admin/api/units",
	table:       "unit",
	idOf:        func(u models.Unit) uint { return u.ID },
	labelOf:     func(u models.Unit) string { return u.UnitDescription },
	labelKey:    "unit_description",
	defaultSort: listing.Sort{Key: "id"},
	validate: func(u *models.Unit) bool {
		u.UnitDescription = strings.TrimSpace(u.UnitDescription)
		return u.UnitDescription != ""
	},
	patch: func(u models.Unit) map[string]any {
		return map[string]any{"unit_description": u.UnitDescription}
	},
}

// UnitResource handles REST interactions for measurement units.
func UnitResource(w http.ResponseWriter, r *http.Request) {
	units.handle(w, r)
}

var inventoryUnits = &lookupResource[models.UnitInv]{
	prefix:      "/admin/api/unitinv",
	table:       "unitInv",
	idOf:        func(u models.UnitInv) uint { return u.ID },
	labelOf:     func(u models.UnitInv) string { return u.UnitInvTag },
	labelKey:    "unitInv_tag",
	defaultSort: listing.Sort{Key: "id"},
	validate: func(u *models.UnitInv) bool {
		u.UnitInvTag = strings.TrimSpace(u.UnitInvTag)
		return u.UnitInvTag != ""
	},
	patch: func(u models.UnitInv) map[string]any {
		return map[string]any{"unitInv_tag": u.UnitInvTag}
	},
}

// UnitInvResource handles REST interactions for inventory unit tags.
func UnitInvResource(w http.ResponseWriter, r *http.Request) {
	inventoryUnits.handle(w, r)
}
