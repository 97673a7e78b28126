package handlers

import (
	"context"
	"math"
	"net/http"
	"time"

	"barboard/internal/backend"
	applog "barboard/internal/log"
	"barboard/internal/listing"
	"barboard/models"
)

type inventoryPayload struct {
	UserID       uint    `json:"user_id"`
	IngredientID uint    `json:"ingredient_id"`
	Quantity     float64 `json:"quantity"`
	InitQuantity float64 `json:"init_quantity"`
	ConditionID  uint    `json:"condition_id"`
	FreshnessID  uint    `json:"freshness_id"`
}

func (p *inventoryPayload) valid() bool {
	return p.UserID != 0 && p.IngredientID != 0 && p.Quantity >= 0
}

// inventoryRow is a stored batch with its reference labels resolved.
type inventoryRow struct {
	models.Inventory
	IngredientName string `json:"ingredient_name"`
	Condition      string `json:"condition"`
	ExpiryDate     string `json:"expiry_date"`
	Username       string `json:"username"`
}

// InventoryResource handles REST-style interactions for stored ingredient batches.
func InventoryResource(w http.ResponseWriter, r *http.Request) {
	if client == nil {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	id, rest, ok := resourceID(r, "/admin/api/inventory")
	if !ok {
		switch r.Method {
		case http.MethodGet:
			listInventory(w, r)
		case http.MethodPost:
			createInventory(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}
	if len(rest) > 0 {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		showInventory(w, r, id)
	case http.MethodPut:
		updateInventory(w, r, id)
	case http.MethodDelete:
		deleteInventory(w, r, id)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func inventoryLookups(ctx context.Context) (listing.Lookups, error) {
	ingredients, err := fetchAll[models.Ingredient](ctx, "ingredients", nil)
	if err != nil {
		return nil, err
	}
	conditions, err := fetchAll[models.Condition](ctx, "condition", nil)
	if err != nil {
		return nil, err
	}
	dates, err := fetchAll[models.ExpiryDate](ctx, "expiry_date", nil)
	if err != nil {
		return nil, err
	}
	profiles, err := fetchAll[models.Profile](ctx, "profiles", nil)
	if err != nil {
		return nil, err
	}

	return listing.Lookups{
		"ingredients": listing.BuildLookup(ingredients,
			func(i models.Ingredient) uint { return i.ID },
			func(i models.Ingredient) string { return i.Name }),
		"condition": listing.BuildLookup(conditions,
			func(c models.Condition) uint { return c.ID },
			func(c models.Condition) string { return c.Condition }),
		"expiry_date": listing.BuildLookup(dates,
			func(d models.ExpiryDate) uint { return d.ID },
			func(d models.ExpiryDate) string { return d.Date }),
		"profiles": listing.BuildLookup(profiles,
			func(p models.Profile) uint { return p.ID },
			func(p models.Profile) string { return p.Username }),
	}, nil
}

func projectInventory(row models.Inventory, lookups listing.Lookups) inventoryRow {
	return inventoryRow{
		Inventory:      row,
		IngredientName: lookups.Resolve("ingredients", row.IngredientID),
		Condition:      lookups.Resolve("condition", row.ConditionID),
		ExpiryDate:     lookups.Resolve("expiry_date", row.ExpiryDateID),
		Username:       lookups.Resolve("profiles", row.UserID),
	}
}

// resolveExpiry walks ingredient → latest ingredients_expiry → expiry_date
// and computes the remaining days at this moment. The result is stored on
// the batch and never recomputed afterwards.
func resolveExpiry(ctx context.Context, ingredientID uint) (uint, int, error) {
	var links []models.IngredientExpiry
	_, err := client.Select(ctx, backend.Query{
		Table:   "ingredients_expiry",
		Filters: []backend.Filter{backend.Eq("ingredients_id", ingredientID)},
		Order:   &backend.Order{Column: "id", Descending: true},
		Range:   &backend.Range{Offset: 0, Limit: 1},
	}, &links)
	if err != nil {
		return 0, 0, err
	}
	if len(links) == 0 {
		return 0, 0, nil
	}

	date, err := fetchOne[models.ExpiryDate](ctx, "expiry_date", links[0].DateID)
	if err != nil {
		return 0, 0, err
	}
	if date == nil {
		return 0, 0, nil
	}

	return date.ID, daysUntil(date.Date, time.Now().UTC()), nil
}

func daysUntil(date string, now time.Time) int {
	expiry, err := time.Parse("2006-01-02", date)
	if err != nil {
		return 0
	}
	return int(math.Ceil(expiry.Sub(now).Hours() / 24))
}

var inventorySortColumns = map[string]string{
	"id":        "id",
	"days_left": "days_left",
	"quantity":  "quantity",
}

func listInventory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	params := parseListParams(r)
	order := sortColumn(params, inventorySortColumns, backend.Order{Column: "id", Descending: true})
	offset, limit := listing.PageRange(params.Page, listing.DefaultPageSize)

	var rows []models.Inventory
	count, err := client.Select(ctx, backend.Query{
		Table: "inventory",
		Order: &order,
		Range: &backend.Range{Offset: offset, Limit: limit},
		Count: true,
	}, &rows)
	if err != nil {
		applog.Error(ctx, "failed to list inventory", "error", err)
		writeJSONError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}

	lookups, err := inventoryLookups(ctx)
	if err != nil {
		applog.Error(ctx, "failed to load inventory lookups", "error", err)
		writeJSONError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}

	projected := make([]inventoryRow, 0, len(rows))
	for _, row := range rows {
		projected = append(projected, projectInventory(row, lookups))
	}
	projected = searchPage(projected, params, func(row inventoryRow) string { return row.IngredientName })

	writeJSON(w, http.StatusOK, listResponse{
		Rows:       projected,
		Page:       params.Page,
		TotalPages: listing.TotalPages(count, listing.DefaultPageSize),
	})
}

func createInventory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var payload inventoryPayload
	if err := decodeJSON(r, &payload); err != nil {
		applog.Debug(ctx, "invalid inventory payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if !payload.valid() {
		writeJSONError(w, http.StatusBadRequest, msgRequiredFields)
		return
	}

	expiryDateID, daysLeft, err := resolveExpiry(ctx, payload.IngredientID)
	if err != nil {
		applog.Error(ctx, "failed to resolve ingredient expiry", "ingredient", payload.IngredientID, "error", err)
		writeJSONError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}

	initQuantity := payload.InitQuantity
	if initQuantity == 0 {
		initQuantity = payload.Quantity
	}

	row := models.Inventory{
		UserID:       payload.UserID,
		IngredientID: payload.IngredientID,
		Quantity:     payload.Quantity,
		InitQuantity: initQuantity,
		ConditionID:  payload.ConditionID,
		ExpiryDateID: expiryDateID,
		DaysLeft:     daysLeft,
		FreshnessID:  payload.FreshnessID,
	}
	if err := client.Insert(ctx, "inventory", &row); err != nil {
		applog.Error(ctx, "failed to create inventory row", "error", err)
		writeJSONError(w, http.StatusBadRequest, msgSaveFailed)
		return
	}

	writeJSON(w, http.StatusCreated, row)
}

func showInventory(w http.ResponseWriter, r *http.Request, id uint) {
	ctx := r.Context()
	row, err := fetchOne[models.Inventory](ctx, "inventory", id)
	if err != nil {
		applog.Error(ctx, "failed to load inventory row", "id", id, "error", err)
		writeJSONError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}
	if row == nil {
		http.NotFound(w, r)
		return
	}

	lookups, err := inventoryLookups(ctx)
	if err != nil {
		applog.Error(ctx, "failed to load inventory lookups", "id", id, "error", err)
		writeJSONError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}

	writeJSON(w, http.StatusOK, projectInventory(*row, lookups))
}

func updateInventory(w http.ResponseWriter, r *http.Request, id uint) {
	ctx := r.Context()
	existing, err := fetchOne[models.Inventory](ctx, "inventory", id)
	if err != nil {
		applog.Error(ctx, "failed to load inventory row for update", "id", id, "error", err)
		writeJSONError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}
	if existing == nil {
		http.NotFound(w, r)
		return
	}

	var payload inventoryPayload
	if err := decodeJSON(r, &payload); err != nil {
		applog.Debug(ctx, "invalid inventory update payload", "id", id, "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if !payload.valid() {
		writeJSONError(w, http.StatusBadRequest, msgRequiredFields)
		return
	}

	// days_left stays frozen unless the batch switches ingredient, in
	// which case the expiry chain is resolved again.
	expiryDateID := existing.ExpiryDateID
	daysLeft := existing.DaysLeft
	if payload.IngredientID != existing.IngredientID {
		expiryDateID, daysLeft, err = resolveExpiry(ctx, payload.IngredientID)
		if err != nil {
			applog.Error(ctx, "failed to resolve ingredient expiry", "ingredient", payload.IngredientID, "error", err)
			writeJSONError(w, http.StatusInternalServerError, msgFetchFailed)
			return
		}
	}

	patch := map[string]any{
		"user_id":        payload.UserID,
		"ingredient_id":  payload.IngredientID,
		"quantity":       payload.Quantity,
		"init_quantity":  payload.InitQuantity,
		"condition_id":   payload.ConditionID,
		"expiry_date_id": expiryDateID,
		"days_left":      daysLeft,
		"freshness_id":   payload.FreshnessID,
	}
	if err := client.Update(ctx, "inventory", patch, backend.Eq("id", id)); err != nil {
		applog.Error(ctx, "failed to update inventory row", "id", id, "error", err)
		writeJSONError(w, http.StatusBadRequest, msgSaveFailed)
		return
	}

	updated, err := fetchOne[models.Inventory](ctx, "inventory", id)
	if err != nil || updated == nil {
		applog.Error(ctx, "failed to reload inventory row after update", "id", id, "error", err)
		writeJSONError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func deleteInventory(w http.ResponseWriter, r *http.Request, id uint) {
	ctx := r.Context()
	existing, err := fetchOne[models.Inventory](ctx, "inventory", id)
	if err != nil {
		applog.Error(ctx, "failed to load inventory row for delete", "id", id, "error", err)
		writeJSONError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}
	if existing == nil {
		http.NotFound(w, r)
		return
	}

	if err := client.Delete(ctx, "inventory", backend.Eq("id", id)); err != nil {
		applog.Error(ctx, "failed to delete inventory row", "id", id, "error", err)
		writeJSONError(w, http.StatusInternalServerError, msgDeleteFailed)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
