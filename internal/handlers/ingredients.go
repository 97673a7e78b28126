package handlers

import (
	"context"
	"net/http"
	"strings"

	"barboard/internal/backend"
	applog "barboard/internal/log"
	"barboard/internal/listing"
	"barboard/models"
)

const ingredientIconBucket = "ingredient-icons"

type ingredientPayload struct {
	Name                  string                 `json:"name"`
	NutritionalInfo       models.NutritionalInfo `json:"nutritional_info"`
	PredShelfLife         string                 `json:"pred_shelf_life"`
	StorageTips           string                 `json:"storage_tips"`
	IngredientsCategoryID uint                   `json:"ingredients_category_id"`
	QuantityUnitID        uint                   `json:"quantity_unit_id"`
	QuantityUnitInvID     uint                   `json:"quantity_unitInv_id"`
	Icon                  *upload                `json:"icon"`
}

func (p *ingredientPayload) valid() bool {
	p.Name = strings.TrimSpace(p.Name)
	p.PredShelfLife = strings.TrimSpace(p.PredShelfLife)
	p.StorageTips = strings.TrimSpace(p.StorageTips)
	return p.Name != "" && p.IngredientsCategoryID != 0 && p.QuantityUnitID != 0 && p.QuantityUnitInvID != 0
}

// ingredientRow is a catalogue row with its reference labels resolved.
type ingredientRow struct {
	models.Ingredient
	CategoryName    string `json:"category_name"`
	UnitDescription string `json:"unit_description"`
	UnitInvTag      string `json:"unitInv_tag"`
	IconURL         string `json:"icon_url"`
}

// IngredientResource handles REST-style interactions for the ingredient catalogue.
func IngredientResource(w http.ResponseWriter, r *http.Request) {
	if client == nil {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	id, rest, ok := resourceID(r, "/admin/api/ingredients")
	if !ok {
		switch r.Method {
		case http.MethodGet:
			listIngredients(w, r)
		case http.MethodPost:
			createIngredient(w, r)
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
		showIngredient(w, r, id)
	case http.MethodPut:
		updateIngredient(w, r, id)
	case http.MethodDelete:
		deleteIngredient(w, r, id)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// ingredientLookups fetches the three reference tables the screen joins
// against. A failure in any of them fails the whole assembly.
func ingredientLookups(ctx context.Context) (listing.Lookups, error) {
	categories, err := fetchAll[models.IngredientCategory](ctx, "ingredients_category", nil)
	if err != nil {
		return nil, err
	}
	unitRows, err := fetchAll[models.Unit](ctx, "unit", nil)
	if err != nil {
		return nil, err
	}
	unitInvRows, err := fetchAll[models.UnitInv](ctx, "unitInv", nil)
	if err != nil {
		return nil, err
	}

	return listing.Lookups{
		"ingredients_category": listing.BuildLookup(categories,
			func(c models.IngredientCategory) uint { return c.ID },
			func(c models.IngredientCategory) string { return c.CategoryName }),
		"unit": listing.BuildLookup(unitRows,
			func(u models.Unit) uint { return u.ID },
			func(u models.Unit) string { return u.UnitDescription }),
		"unitInv": listing.BuildLookup(unitInvRows,
			func(u models.UnitInv) uint { return u.ID },
			func(u models.UnitInv) string { return u.UnitInvTag }),
	}, nil
}

func projectIngredient(row models.Ingredient, lookups listing.Lookups) ingredientRow {
	return ingredientRow{
		Ingredient:      row,
		CategoryName:    lookups.Resolve("ingredients_category", row.IngredientsCategoryID),
		UnitDescription: lookups.Resolve("unit", row.QuantityUnitID),
		UnitInvTag:      lookups.Resolve("unitInv", row.QuantityUnitInvID),
		IconURL:         publicURL(ingredientIconBucket, row.IconPath),
	}
}

var ingredientSortColumns = map[string]string{
	"id":   "id",
	"name": "name",
}

func listIngredients(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	params := parseListParams(r)
	order := sortColumn(params, ingredientSortColumns, backend.Order{Column: "id", Descending: true})
	offset, limit := listing.PageRange(params.Page, listing.DefaultPageSize)

	var rows []models.Ingredient
	count, err := client.Select(ctx, backend.Query{
		Table: "ingredients",
		Order: &order,
		Range: &backend.Range{Offset: offset, Limit: limit},
		Count: true,
	}, &rows)
	if err != nil {
		applog.Error(ctx, "failed to list ingredients", "error", err)
		writeJSONError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}

	lookups, err := ingredientLookups(ctx)
	if err != nil {
		applog.Error(ctx, "failed to load ingredient lookups", "error", err)
		writeJSONError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}

	projected := make([]ingredientRow, 0, len(rows))
	for _, row := range rows {
		projected = append(projected, projectIngredient(row, lookups))
	}
	projected = searchPage(projected, params, func(row ingredientRow) string { return row.Name })

	writeJSON(w, http.StatusOK, listResponse{
		Rows:       projected,
		Page:       params.Page,
		TotalPages: listing.TotalPages(count, listing.DefaultPageSize),
	})
}

func createIngredient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var payload ingredientPayload
	if err := decodeJSON(r, &payload); err != nil {
		applog.Debug(ctx, "invalid ingredient payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if !payload.valid() {
		writeJSONError(w, http.StatusBadRequest, msgRequiredFields)
		return
	}

	iconPath := ""
	if payload.Icon.present() {
		stored, err := storeUpload(ctx, ingredientIconBucket, payload.Icon)
		if err != nil {
			applog.Error(ctx, "failed to upload ingredient icon", "error", err)
			writeJSONError(w, http.StatusInternalServerError, msgUploadFailed)
			return
		}
		iconPath = stored
	}

	row := models.Ingredient{
		Name:                  payload.Name,
		IconPath:              iconPath,
		NutritionalInfo:       payload.NutritionalInfo,
		PredShelfLife:         payload.PredShelfLife,
		StorageTips:           payload.StorageTips,
		IngredientsCategoryID: payload.IngredientsCategoryID,
		QuantityUnitID:        payload.QuantityUnitID,
		QuantityUnitInvID:     payload.QuantityUnitInvID,
	}
	if err := client.Insert(ctx, "ingredients", &row); err != nil {
		applog.Error(ctx, "failed to create ingredient", "error", err)
		writeJSONError(w, http.StatusBadRequest, msgSaveFailed)
		return
	}

	writeJSON(w, http.StatusCreated, row)
}

func showIngredient(w http.ResponseWriter, r *http.Request, id uint) {
	ctx := r.Context()
	row, err := fetchOne[models.Ingredient](ctx, "ingredients", id)
	if err != nil {
		applog.Error(ctx, "failed to load ingredient", "id", id, "error", err)
		writeJSONError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}
	if row == nil {
		http.NotFound(w, r)
		return
	}

	lookups, err := ingredientLookups(ctx)
	if err != nil {
		applog.Error(ctx, "failed to load ingredient lookups", "id", id, "error", err)
		writeJSONError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}

	writeJSON(w, http.StatusOK, projectIngredient(*row, lookups))
}

func updateIngredient(w http.ResponseWriter, r *http.Request, id uint) {
	ctx := r.Context()
	existing, err := fetchOne[models.Ingredient](ctx, "ingredients", id)
	if err != nil {
		applog.Error(ctx, "failed to load ingredient for update", "id", id, "error", err)
		writeJSONError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}
	if existing == nil {
		http.NotFound(w, r)
		return
	}

	var payload ingredientPayload
	if err := decodeJSON(r, &payload); err != nil {
		applog.Debug(ctx, "invalid ingredient update payload", "id", id, "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if !payload.valid() {
		writeJSONError(w, http.StatusBadRequest, msgRequiredFields)
		return
	}

	iconPath := existing.IconPath
	if payload.Icon.present() {
		stored, err := storeUpload(ctx, ingredientIconBucket, payload.Icon)
		if err != nil {
			applog.Error(ctx, "failed to upload replacement icon", "id", id, "error", err)
			writeJSONError(w, http.StatusInternalServerError, msgUploadFailed)
			return
		}
		iconPath = stored
	}

	patch := map[string]any{
		"name":                    payload.Name,
		"icon_path":               iconPath,
		"nutritional_info":        jsonColumn(payload.NutritionalInfo),
		"pred_shelf_life":         payload.PredShelfLife,
		"storage_tips":            payload.StorageTips,
		"ingredients_category_id": payload.IngredientsCategoryID,
		"quantity_unit_id":        payload.QuantityUnitID,
		"quantity_unitInv_id":     payload.QuantityUnitInvID,
	}
	if err := client.Update(ctx, "ingredients", patch, backend.Eq("id", id)); err != nil {
		applog.Error(ctx, "failed to update ingredient", "id", id, "error", err)
		writeJSONError(w, http.StatusBadRequest, msgSaveFailed)
		return
	}

	updated, err := fetchOne[models.Ingredient](ctx, "ingredients", id)
	if err != nil || updated == nil {
		applog.Error(ctx, "failed to reload ingredient after update", "id", id, "error", err)
		writeJSONError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func deleteIngredient(w http.ResponseWriter, r *http.Request, id uint) {
	ctx := r.Context()
	existing, err := fetchOne[models.Ingredient](ctx, "ingredients", id)
	if err != nil {
		applog.Error(ctx, "failed to load ingredient for delete", "id", id, "error", err)
		writeJSONError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}
	if existing == nil {
		http.NotFound(w, r)
		return
	}

	// The stored icon is removed before the row; a storage failure keeps
	// the record intact.
	if existing.IconPath != "" && fileStore != nil {
		if err := fileStore.Remove(ctx, ingredientIconBucket, existing.IconPath); err != nil {
			applog.Error(ctx, "failed to remove ingredient icon", "id", id, "error", err)
			writeJSONError(w, http.StatusInternalServerError, msgRemoveFailed)
			return
		}
	}

	if err := client.Delete(ctx, "ingredients", backend.Eq("id", id)); err != nil {
		applog.Error(ctx, "failed to delete ingredient", "id", id, "error", err)
		writeJSONError(w, http.StatusInternalServerError, msgDeleteFailed)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
