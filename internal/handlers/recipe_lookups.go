package handlers

import (
	"net/http"
	"strings"

	"barboard/internal/listing"
	"barboard/models"
)

var recipeCategories = &lookupResource[models.RecipeCategory]{
	prefix:      "/admin/api/recipecategories",
	table:       "category",
	idOf:        func(c models.RecipeCategory) uint { return c.ID },
	labelOf:     func(c models.RecipeCategory) string { return c.Name },
	labelKey:    "name",
	defaultSort: listing.Sort{Key: "id"},
	validate: func(c *models.RecipeCategory) bool {
		c.Name = strings.TrimSpace(c.Name)
		c.Description = strings.TrimSpace(c.Description)
		return c.Name != ""
	},
	patch: func(c models.RecipeCategory) map[string]any {
		return map[string]any{"name": c.Name, "description": c.Description}
	},
}

// RecipeCategoryResource handles REST interactions for recipe categories.
func RecipeCategoryResource(w http.ResponseWriter, r *http.Request) {
	recipeCategories.handle(w, r)
}

var tags = &lookupResource[models.Tag]{
	prefix:      "/admin/api/tags",
	table:       "tags",
	idOf:        func(t models.Tag) uint { return t.ID },
	labelOf:     func(t models.Tag) string { return t.Name },
	labelKey:    "name",
	defaultSort: listing.Sort{Key: "id"},
	validate: func(t *models.Tag) bool {
		t.Name = strings.TrimSpace(t.Name)
		return t.Name != ""
	},
	patch: func(t models.Tag) map[string]any {
		return map[string]any{"name": t.Name}
	},
}

// TagResource handles REST interactions for recipe tags.
func TagResource(w http.ResponseWriter, r *http.Request) {
	tags.handle(w, r)
}

var equipmentItems = &lookupResource[models.Equipment]{
	prefix:      "/admin/api/equipment",
	table:       "equipment",
	idOf:        func(e models.Equipment) uint { return e.ID },
	labelOf:     func(e models.Equipment) string { return e.Name },
	labelKey:    "name",
	defaultSort: listing.Sort{Key: "id"},
	validate: func(e *models.Equipment) bool {
		e.Name = strings.TrimSpace(e.Name)
		return e.Name != ""
	},
	patch: func(e models.Equipment) map[string]any {
		return map[string]any{"name": e.Name}
	},
}

// EquipmentResource handles REST interactions for kitchen equipment.
func EquipmentResource(w http.ResponseWriter, r *http.Request) {
	equipmentItems.handle(w, r)
}

var mealTypes = &lookupResource[models.MealType]{
	prefix:      "/admin/api/mealtypes",
	table:       "meal_type",
	idOf:        func(m models.MealType) uint { return m.ID },
	labelOf:     func(m models.MealType) string { return m.Name },
	labelKey:    "name",
	defaultSort: listing.Sort{Key: "id"},
	validate: func(m *models.MealType) bool {
		m.Name = strings.TrimSpace(m.Name)
		return m.Name != ""
	},
	patch: func(m models.MealType) map[string]any {
		return map[string]any{"name": m.Name}
	},
}

// MealTypeResource handles REST interactions for meal types.
func MealTypeResource(w http.ResponseWriter, r *http.Request) {
	mealTypes.handle(w, r)
}
