package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gorm.io/gorm"

	"barboard/models"
)

func seedExpiryChain(t *testing.T, db *gorm.DB, ingredientID uint, daysAhead int) {
	t.Helper()
	date := models.ExpiryDate{Date: time.Now().UTC().AddDate(0, 0, daysAhead).Format("2006-01-02")}
	if err := db.Create(&date).Error; err != nil {
		t.Fatalf("failed to seed expiry date: %v", err)
	}
	link := models.IngredientExpiry{IngredientsID: ingredientID, DateID: date.ID}
	if err := db.Create(&link).Error; err != nil {
		t.Fatalf("failed to seed expiry link: %v", err)
	}
}

func TestCreateInventoryResolvesExpiry(t *testing.T) {
	db, cleanup := withTestBackend(t)
	t.Cleanup(cleanup)

	lemon := models.Ingredient{Name: "Lemon", IngredientsCategoryID: 1, QuantityUnitID: 1, QuantityUnitInvID: 1}
	if err := db.Create(&lemon).Error; err != nil {
		t.Fatalf("failed to seed ingredient: %v", err)
	}
	seedExpiryChain(t, db, lemon.ID, 7)

	payload := map[string]any{"user_id": 1, "ingredient_id": lemon.ID, "quantity": 3}
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/admin/api/inventory", bytes.NewReader(body))
	w := httptest.NewRecorder()
	InventoryResource(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var created models.Inventory
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if created.ExpiryDateID == 0 {
		t.Fatal("expected the expiry chain to be resolved")
	}
	if created.DaysLeft < 6 || created.DaysLeft > 8 {
		t.Fatalf("unexpected days_left %d", created.DaysLeft)
	}
	if created.InitQuantity != 3 {
		t.Fatalf("expected init_quantity to default to quantity, got %v", created.InitQuantity)
	}
}

func TestQuantityOnlyEditLeavesDaysLeftFrozen(t *testing.T) {
	db, cleanup := withTestBackend(t)
	t.Cleanup(cleanup)

	seed := models.Inventory{
		UserID:       1,
		IngredientID: 5,
		Quantity:     4,
		InitQuantity: 4,
		ExpiryDateID: 9,
		DaysLeft:     99,
	}
	if err := db.Create(&seed).Error; err != nil {
		t.Fatalf("failed to seed inventory: %v", err)
	}

	payload := map[string]any{"user_id": 1, "ingredient_id": 5, "quantity": 2, "init_quantity": 4}
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/admin/api/inventory/%d", seed.ID), bytes.NewReader(body))
	w := httptest.NewRecorder()
	InventoryResource(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var updated models.Inventory
	if err := json.Unmarshal(w.Body.Bytes(), &updated); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if updated.DaysLeft != 99 || updated.ExpiryDateID != 9 {
		t.Fatalf("expected days_left to stay frozen: %+v", updated)
	}
	if updated.Quantity != 2 {
		t.Fatalf("expected quantity edit to apply, got %v", updated.Quantity)
	}
}

func TestIngredientChangeReloadsExpiry(t *testing.T) {
	db, cleanup := withTestBackend(t)
	t.Cleanup(cleanup)

	butter := models.Ingredient{Name: "Butter", IngredientsCategoryID: 1, QuantityUnitID: 1, QuantityUnitInvID: 1}
	if err := db.Create(&butter).Error; err != nil {
		t.Fatalf("failed to seed ingredient: %v", err)
	}
	seedExpiryChain(t, db, butter.ID, 30)

	seed := models.Inventory{UserID: 1, IngredientID: 999, Quantity: 1, DaysLeft: 2, ExpiryDateID: 1}
	if err := db.Create(&seed).Error; err != nil {
		t.Fatalf("failed to seed inventory: %v", err)
	}

	payload := map[string]any{"user_id": 1, "ingredient_id": butter.ID, "quantity": 1}
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/admin/api/inventory/%d", seed.ID), bytes.NewReader(body))
	w := httptest.NewRecorder()
	InventoryResource(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var updated models.Inventory
	if err := json.Unmarshal(w.Body.Bytes(), &updated); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if updated.DaysLeft < 29 || updated.DaysLeft > 31 {
		t.Fatalf("expected days_left reloaded from the new expiry, got %d", updated.DaysLeft)
	}
}

func TestDaysUntil(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		date string
		want int
	}{
		{"2026-08-27", 7},
		{"2026-08-20", 0},
		{"2026-08-19", -1},
		{"not-a-date", 0},
	}
	for _, tc := range cases {
		if got := daysUntil(tc.date, now); got != tc.want {
			t.Errorf("daysUntil(%q) = %d, want %d", tc.date, got, tc.want)
		}
	}
}
