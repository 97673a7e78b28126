package handlers

import (
	"net/http"
	"strings"

	"barboard/internal/listing"
	"barboard/models"
)

var venueCategories = &lookupResource[models.VenueCategory]{
	prefix:      "/admin/api/venuecategories",
	table:       "venue_category",
	idOf:        func(c models.VenueCategory) uint { return c.ID },
	labelOf:     func(c models.VenueCategory) string { return c.CategoryName },
	labelKey:    "category_name",
	defaultSort: listing.Sort{Key: "id"},
	validate: func(c *models.VenueCategory) bool {
		c.CategoryName = strings.TrimSpace(c.CategoryName)
		c.Description = strings.TrimSpace(c.Description)
		return c.CategoryName != ""
	},
	patch: func(c models.VenueCategory) map[string]any {
		return map[string]any{
			"category_name": c.CategoryName,
			"description":   c.Description,
		}
	},
}

// VenueCategoryResource handles REST interactions for venue categories.
func VenueCategoryResource(w http.ResponseWriter, r *http.Request) {
	venueCategories.handle(w, r)
}

var languages = &lookupResource[models.Language]{
	prefix:      "/admin/api/languages",
	table:       "languages",
	idOf:        func(l models.Language) uint { return l.ID },
	labelOf:     func(l models.Language) string { return l.LanguageName },
	labelKey:    "language_name",
	defaultSort: listing.Sort{Key: "id"},
	validate: func(l *models.Language) bool {
		l.LanguageName = strings.TrimSpace(l.LanguageName)
		if l.Status == "" {
			l.Status = "enabled"
		}
		return l.LanguageName != ""
	},
	patch: func(l models.Language) map[string]any {
		return map[string]any{
			"language_name": l.LanguageName,
			"status":        l.Status,
		}
	},
}

// LanguageResource handles REST interactions for venue languages.
func LanguageResource(w http.ResponseWriter, r *http.Request) {
	languages.handle(w, r)
}

var recommendedTags = &lookupResource[models.RecommendedTag]{
	prefix:      "/admin/api/recommendedtags",
	table:       "recommended_tags",
	idOf:        func(t models.RecommendedTag) uint { return t.ID },
	labelOf:     func(t models.RecommendedTag) string { return t.TagName },
	labelKey:    "tag_name",
	defaultSort: listing.Sort{Key: "id"},
	validate: func(t *models.RecommendedTag) bool {
		t.TagName = strings.TrimSpace(t.TagName)
		if t.Status == "" {
			t.Status = "enabled"
		}
		return t.TagName != ""
	},
	patch: func(t models.RecommendedTag) map[string]any {
		return map[string]any{
			"tag_name": t.TagName,
			"status":   t.Status,
		}
	},
}

// RecommendedTagResource handles REST interactions for recommended venue tags.
func RecommendedTagResource(w http.ResponseWriter, r *http.Request) {
	recommendedTags.handle(w, r)
}
