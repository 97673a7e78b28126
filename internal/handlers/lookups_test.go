package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"barboard/models"
)

func TestLookupListSlicesPagesFromFullFetch(t *testing.T) {
	db, cleanup := withTestBackend(t)
	t.Cleanup(cleanup)

	for i := 1; i <= 12; i++ {
		if err := db.Create(&models.Tag{Name: fmt.Sprintf("Tag %02d", i)}).Error; err != nil {
			t.Fatalf("failed to seed tag: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/api/tags", nil)
	w := httptest.NewRecorder()
	TagResource(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var response struct {
		Rows       []models.Tag `json:"rows"`
		Page       int          `json:"page"`
		TotalPages int          `json:"total_pages"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(response.Rows) != 10 {
		t.Fatalf("expected a 10-row page, got %d", len(response.Rows))
	}
	if response.TotalPages != 2 {
		t.Fatalf("expected total_pages derived from the full fetch, got %d", response.TotalPages)
	}

	req = httptest.NewRequest(http.MethodGet, "/admin/api/tags?p=2", nil)
	w = httptest.NewRecorder()
	TagResource(w, req)
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(response.Rows) != 2 {
		t.Fatalf("expected the 2-row tail page, got %d", len(response.Rows))
	}
}

func TestLookupSearchFiltersPageOnly(t *testing.T) {
	db, cleanup := withTestBackend(t)
	t.Cleanup(cleanup)

	for i := 1; i <= 12; i++ {
		if err := db.Create(&models.Tag{Name: fmt.Sprintf("Tag %02d", i)}).Error; err != nil {
			t.Fatalf("failed to seed tag: %v", err)
		}
	}

	// "Tag 11" sits on page 2; searching for it on page 1 finds nothing,
	// and total_pages is untouched either way.
	req := httptest.NewRequest(http.MethodGet, "/admin/api/tags?q=tag+11", nil)
	w := httptest.NewRecorder()
	TagResource(w, req)

	var response struct {
		Rows       []models.Tag `json:"rows"`
		TotalPages int          `json:"total_pages"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(response.Rows) != 0 {
		t.Fatalf("expected search to apply to the loaded page only, got %d rows", len(response.Rows))
	}
	if response.TotalPages != 2 {
		t.Fatalf("expected total_pages unchanged by search, got %d", response.TotalPages)
	}
}

func TestLookupSortByLabelDescending(t *testing.T) {
	db, cleanup := withTestBackend(t)
	t.Cleanup(cleanup)

	for _, name := range []string{"Saucepan", "Blender", "Whisk"} {
		if err := db.Create(&models.Equipment{Name: name}).Error; err != nil {
			t.Fatalf("failed to seed equipment: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/api/equipment?sort=name&dir=desc", nil)
	w := httptest.NewRecorder()
	EquipmentResource(w, req)

	var response struct {
		Rows []models.Equipment `json:"rows"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(response.Rows) != 3 || response.Rows[0].Name != "Whisk" {
		t.Fatalf("expected descending label sort, got %+v", response.Rows)
	}
}

func TestLookupCreateValidation(t *testing.T) {
	db, cleanup := withTestBackend(t)
	t.Cleanup(cleanup)

	body, _ := json.Marshal(map[string]any{"unit_description": "  "})
	req := httptest.NewRequest(http.MethodPost, "/admin/api/units", bytes.NewReader(body))
	w := httptest.NewRecorder()
	UnitResource(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}

	var count int64
	if err := db.Model(&models.Unit{}).Count(&count).Error; err != nil {
		t.Fatalf("failed to count units: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no rows written, got %d", count)
	}
}

func TestLookupUpdateRoundTrip(t *testing.T) {
	db, cleanup := withTestBackend(t)
	t.Cleanup(cleanup)

	seed := models.UnitInv{UnitInvTag: "bottle"}
	if err := db.Create(&seed).Error; err != nil {
		t.Fatalf("failed to seed inventory unit: %v", err)
	}

	body, _ := json.Marshal(map[string]any{"unitInv_tag": "magnum"})
	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/admin/api/unitinv/%d", seed.ID), bytes.NewReader(body))
	w := httptest.NewRecorder()
	UnitInvResource(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var updated models.UnitInv
	if err := json.Unmarshal(w.Body.Bytes(), &updated); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if updated.UnitInvTag != "magnum" {
		t.Fatalf("expected updated tag, got %q", updated.UnitInvTag)
	}
}

func TestLookupDelete(t *testing.T) {
	db, cleanup := withTestBackend(t)
	t.Cleanup(cleanup)

	seed := models.MealType{Name: "Brunch"}
	if err := db.Create(&seed).Error; err != nil {
		t.Fatalf("failed to seed meal type: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/admin/api/mealtypes/%d", seed.ID), nil)
	w := httptest.NewRecorder()
	MealTypeResource(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", w.Code)
	}

	var count int64
	if err := db.Model(&models.MealType{}).Count(&count).Error; err != nil {
		t.Fatalf("failed to count meal types: %v", err)
	}
	if count != 0 {
		t.Fatal("expected the row to be deleted")
	}
}
