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

const redemptionBucket = "redemption"

type redeemItemPayload struct {
	VenueID         uint    `json:"venue_id"`
	ItemName        string  `json:"item_name"`
	ItemDescription string  `json:"item_description"`
	Amount          float64 `json:"amount"`
	Picture         *upload `json:"picture"`
}

func (p *redeemItemPayload) valid() bool {
	p.ItemName = strings.TrimSpace(p.ItemName)
	p.ItemDescription = strings.TrimSpace(p.ItemDescription)
	return p.VenueID != 0 && p.ItemName != "" && p.Amount >= 0
}

// redeemItemRow is a reward with its venue label resolved.
type redeemItemRow struct {
	models.RedeemItem
	VenueName  string `json:"venue_name"`
	PictureURL string `json:"picture_url"`
}

// RedeemItemResource handles REST-style interactions for venue rewards.
func RedeemItemResource(w http.ResponseWriter, r *http.Request) {
	if client == nil {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	id, rest, ok := resourceID(r, "/admin/api/redeemitems")
	if !ok {
		switch r.Method {
		case http.MethodGet:
			listRedeemItems(w, r)
		case http.MethodPost:
			createRedeemItem(w, r)
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
		showRedeemItem(w, r, id)
	case http.MethodPut:
		updateRedeemItem(w, r, id)
	case http.MethodDelete:
		deleteRedeemItem(w, r, id)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func redeemItemLookups(ctx context.Context) (listing.Lookups, error) {
	venues, err := fetchAll[models.Venue](ctx, "venues", nil)
	if err != nil {
		return nil, err
	}
	return listing.Lookups{
		"venues": listing.BuildLookup(venues,
			func(v models.Venue) uint { return v.ID },
			func(v models.Venue) string { return v.VenueName }),
	}, nil
}

func projectRedeemItem(row models.RedeemItem, lookups listing.Lookups) redeemItemRow {
	return redeemItemRow{
		RedeemItem: row,
		VenueName:  lookups.Resolve("venues", row.VenueID),
		PictureURL: publicURL(redemptionBucket, row.PicPath),
	}
}

var redeemItemSortColumns = map[string]string{
	"id":        "id",
	"item_name": "item_name",
	"amount":    "amount",
}

func listRedeemItems(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	params := parseListParams(r)
	order := sortColumn(params, redeemItemSortColumns, backend.Order{Column: "id", Descending: true})
	offset, limit := listing.PageRange(params.Page, listing.DefaultPageSize)

	var rows []models.RedeemItem
	count, err := client.Select(ctx, backend.Query{
		Table: "redeem_items",
		Order: &order,
		Range: &backend.Range{Offset: offset, Limit: limit},
		Count: true,
	}, &rows)
	if err != nil {
		applog.Error(ctx, "failed to list redeem items", "error", err)
		writeJSONError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}

	lookups, err := redeemItemLookups(ctx)
	if err != nil {
		applog.Error(ctx, "failed to load redeem item lookups", "error", err)
		writeJSONError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}

	projected := make([]redeemItemRow, 0, len(rows))
	for _, row := range rows {
		projected = append(projected, projectRedeemItem(row, lookups))
	}
	projected = searchPage(projected, params, func(row redeemItemRow) string { return row.ItemName })

	writeJSON(w, http.StatusOK, listResponse{
		Rows:       projected,
		Page:       params.Page,
		TotalPages: listing.TotalPages(count, listing.DefaultPageSize),
	})
}

func createRedeemItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var payload redeemItemPayload
	if err := decodeJSON(r, &payload); err != nil {
		applog.Debug(ctx, "invalid redeem item payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if !payload.valid() {
		writeJSONError(w, http.StatusBadRequest, msgRequiredFields)
		return
	}

	picPath := ""
	if payload.Picture.present() {
		stored, err := storeUpload(ctx, redemptionBucket, payload.Picture)
		if err != nil {
			applog.Error(ctx, "failed to upload reward picture", "error", err)
			writeJSONError(w, http.StatusInternalServerError, msgUploadFailed)
			return
		}
		picPath = stored
	}

	row := models.RedeemItem{
		VenueID:         payload.VenueID,
		ItemName:        payload.ItemName,
		ItemDescription: payload.ItemDescription,
		Amount:          payload.Amount,
		PicPath:         picPath,
	}
	if err := client.Insert(ctx, "redeem_items", &row); err != nil {
		applog.Error(ctx, "failed to create redeem item", "error", err)
		writeJSONError(w, http.StatusBadRequest, msgSaveFailed)
		return
	}

	writeJSON(w, http.StatusCreated, row)
}

func showRedeemItem(w http.ResponseWriter, r *http.Request, id uint) {
	ctx := r.Context()
	row, err := fetchOne[models.RedeemItem](ctx, "redeem_items", id)
	if err != nil {
		applog.Error(ctx, "failed to load redeem item", "id", id, "error", err)
		writeJSONError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}
	if row == nil {
		http.NotFound(w, r)
		return
	}

	lookups, err := redeemItemLookups(ctx)
	if err != nil {
		applog.Error(ctx, "failed to load redeem item lookups", "id", id, "error", err)
		writeJSONError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}

	writeJSON(w, http.StatusOK, projectRedeemItem(*row, lookups))
}

func updateRedeemItem(w http.ResponseWriter, r *http.Request, id uint) {
	ctx := r.Context()
	existing, err := fetchOne[models.RedeemItem](ctx, "redeem_items", id)
	if err != nil {
		applog.Error(ctx, "failed to load redeem item for update", "id", id, "error", err)
		writeJSONError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}
	if existing == nil {
		http.NotFound(w, r)
		return
	}

	var payload redeemItemPayload
	if err := decodeJSON(r, &payload); err != nil {
		applog.Debug(ctx, "invalid redeem item update payload", "id", id, "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if !payload.valid() {
		writeJSONError(w, http.StatusBadRequest, msgRequiredFields)
		return
	}

	picPath := existing.PicPath
	if payload.Picture.present() {
		stored, err := storeUpload(ctx, redemptionBucket, payload.Picture)
		if err != nil {
			applog.Error(ctx, "failed to upload replacement reward picture", "id", id, "error", err)
			writeJSONError(w, http.StatusInternalServerError, msgUploadFailed)
			return
		}
		picPath = stored
	}

	patch := map[string]any{
		"venue_id":         payload.VenueID,
		"item_name":        payload.ItemName,
		"item_description": payload.ItemDescription,
		"amount":           payload.Amount,
		"pic_path":         picPath,
	}
	if err := client.Update(ctx, "redeem_items", patch, backend.Eq("id", id)); err != nil {
		applog.Error(ctx, "failed to update redeem item", "id", id, "error", err)
		writeJSONError(w, http.StatusBadRequest, msgSaveFailed)
		return
	}

	updated, err := fetchOne[models.RedeemItem](ctx, "redeem_items", id)
	if err != nil || updated == nil {
		applog.Error(ctx, "failed to reload redeem item after update", "id", id, "error", err)
		writeJSONError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func deleteRedeemItem(w http.ResponseWriter, r *http.Request, id uint) {
	ctx := r.Context()
	existing, err := fetchOne[models.RedeemItem](ctx, "redeem_items", id)
	if err != nil {
		applog.Error(ctx, "failed to load redeem item for delete", "id", id, "error", err)
		writeJSONError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}
	if existing == nil {
		http.NotFound(w, r)
		return
	}

	if existing.PicPath != "" && fileStore != nil {
		if err := fileStore.Remove(ctx, redemptionBucket, existing.PicPath); err != nil {
			applog.Error(ctx, "failed to remove reward picture", "id", id, "error", err)
			writeJSONError(w, http.StatusInternalServerError, msgRemoveFailed)
			return
		}
	}

	if err := client.Delete(ctx, "redeem_items", backend.Eq("id", id)); err != nil {
		applog.Error(ctx, "failed to delete redeem item", "id", id, "error", err)
		writeJSONError(w, http.StatusInternalServerError, msgDeleteFailed)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
