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

func TestBannerListOrdersBySortOrder(t *testing.T) {
	db, cleanup := withTestBackend(t)
	t.Cleanup(cleanup)

	seeds := []models.Banner{
		{Title: "Weekend special", SortOrder: 3},
		{Title: "Happy hour", SortOrder: 1},
		{Title: "Live jazz", SortOrder: 2},
	}
	for i := range seeds {
		if err := db.Create(&seeds[i]).Error; err != nil {
			t.Fatalf("failed to seed banner: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/api/banners", nil)
	w := httptest.NewRecorder()
	BannerResource(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var response struct {
		Rows []bannerRow `json:"rows"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(response.Rows) != 3 {
		t.Fatalf("expected 3 banners, got %d", len(response.Rows))
	}
	if response.Rows[0].Title != "Happy hour" || response.Rows[2].Title != "Weekend special" {
		t.Fatalf("expected sort_order ordering, got %+v", response.Rows)
	}
}

func TestCreateBannerStoresImage(t *testing.T) {
	_, cleanup := withTestBackend(t)
	t.Cleanup(cleanup)
	_, storageCleanup := withTestStorage(t)
	t.Cleanup(storageCleanup)

	body, _ := json.Marshal(map[string]any{
		"title": "Happy hour",
		"image": map[string]string{"name": "happy.png", "content": "aGFwcHk="},
	})
	req := httptest.NewRequest(http.MethodPost, "/admin/api/banners", bytes.NewReader(body))
	w := httptest.NewRecorder()
	BannerResource(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var created models.Banner
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if created.ImagePath == "" {
		t.Fatal("expected the stored image path on the row")
	}
	if created.Status != "enabled" {
		t.Fatalf("expected the default status, got %q", created.Status)
	}
}

func TestDeleteBannerImageFailureKeepsRow(t *testing.T) {
	db, cleanup := withTestBackend(t)
	t.Cleanup(cleanup)
	t.Cleanup(withFailingStorage(t))

	banner := models.Banner{Title: "Happy hour", ImagePath: "happy.png"}
	if err := db.Create(&banner).Error; err != nil {
		t.Fatalf("failed to seed banner: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/admin/api/banners/%d", banner.ID), nil)
	w := httptest.NewRecorder()
	BannerResource(w, req)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", w.Code)
	}

	var count int64
	if err := db.Model(&models.Banner{}).Count(&count).Error; err != nil {
		t.Fatalf("failed to count banners: %v", err)
	}
	if count != 1 {
		t.Fatal("expected the banner to survive the failed removal")
	}
}
