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

func TestRedeemItemListResolvesVenueName(t *testing.T) {
	db, cleanup := withTestBackend(t)
	t.Cleanup(cleanup)

	venue := models.Venue{VenueName: "Skyline Social"}
	if err := db.Create(&venue).Error; err != nil {
		t.Fatalf("failed to seed venue: %v", err)
	}
	item := models.RedeemItem{VenueID: venue.ID, ItemName: "House negroni", Amount: 50}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("failed to seed redeem item: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/api/redeemitems", nil)
	w := httptest.NewRecorder()
	RedeemItemResource(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var response struct {
		Rows []struct {
			ItemName  string `json:"item_name"`
			VenueName string `json:"venue_name"`
		} `json:"rows"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(response.Rows) != 1 || response.Rows[0].VenueName != "Skyline Social" {
		t.Fatalf("expected the venue label resolved, got %+v", response.Rows)
	}
}

func TestRedeemItemEditRoundTrip(t *testing.T) {
	db, cleanup := withTestBackend(t)
	t.Cleanup(cleanup)

	item := models.RedeemItem{VenueID: 1, ItemName: "House negroni", Amount: 50}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("failed to seed redeem item: %v", err)
	}

	body, _ := json.Marshal(map[string]any{
		"venue_id":  1,
		"item_name": "House negroni",
		"amount":    65,
	})
	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/admin/api/redeemitems/%d", item.ID), bytes.NewReader(body))
	w := httptest.NewRecorder()
	RedeemItemResource(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var updated models.RedeemItem
	if err := db.First(&updated, item.ID).Error; err != nil {
		t.Fatalf("failed to reload item: %v", err)
	}
	if updated.Amount != 65 {
		t.Fatalf("expected the new amount, got %v", updated.Amount)
	}
}

func TestCreateRedeemItemRequiresNameAndVenue(t *testing.T) {
	db, cleanup := withTestBackend(t)
	t.Cleanup(cleanup)

	body, _ := json.Marshal(map[string]any{"item_name": "  "})
	req := httptest.NewRequest(http.MethodPost, "/admin/api/redeemitems", bytes.NewReader(body))
	w := httptest.NewRecorder()
	RedeemItemResource(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}

	var count int64
	if err := db.Model(&models.RedeemItem{}).Count(&count).Error; err != nil {
		t.Fatalf("failed to count redeem items: %v", err)
	}
	if count != 0 {
		t.Fatal("expected no row written")
	}
}
