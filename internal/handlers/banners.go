package handlers

import (
	"net/http"
	"sort"
	"strings"

	"barboard/internal/backend"
	applog "barboard/internal/log"
	"barboard/internal/listing"
	"barboard/models"
)

const bannerBucket = "banners"

type bannerPayload struct {
	Title     string  `json:"title"`
	Status    string  `json:"status"`
	SortOrder int     `json:"sort_order"`
	Image     *upload `json:"image"`
}

func (p *bannerPayload) valid() bool {
	p.Title = strings.TrimSpace(p.Title)
	if p.Status == "" {
		p.Status = "enabled"
	}
	return p.Title != ""
}

type bannerRow struct {
	models.Banner
	ImageURL string `json:"image_url"`
}

// BannerResource handles REST-style interactions for home screen banners.
// Banners are a small table, so the listing fetches everything and slices
// pages in memory like the other lookup screens.
func BannerResource(w http.ResponseWriter, r *http.Request) {
	if client == nil {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	id, rest, ok := resourceID(r, "/admin/api/banners")
	if !ok {
		switch r.Method {
		case http.MethodGet:
			listBanners(w, r)
		case http.MethodPost:
			createBanner(w, r)
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
		showBanner(w, r, id)
	case http.MethodPut:
		updateBanner(w, r, id)
	case http.MethodDelete:
		deleteBanner(w, r, id)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func projectBanner(row models.Banner) bannerRow {
	return bannerRow{
		Banner:   row,
		ImageURL: publicURL(bannerBucket, row.ImagePath),
	}
}

func listBanners(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	params := parseListParams(r)

	rows, err := fetchAll[models.Banner](ctx, "banners", nil)
	if err != nil {
		applog.Error(ctx, "failed to list banners", "error", err)
		writeJSONError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].SortOrder != rows[j].SortOrder {
			return rows[i].SortOrder < rows[j].SortOrder
		}
		return rows[i].ID < rows[j].ID
	})

	totalPages := listing.TotalPages(int64(len(rows)), listing.DefaultPageSize)
	offset, limit := listing.PageRange(params.Page, listing.DefaultPageSize)
	if offset > len(rows) {
		offset = len(rows)
	}
	end := offset + limit
	if end > len(rows) {
		end = len(rows)
	}

	projected := make([]bannerRow, 0, end-offset)
	for _, row := range rows[offset:end] {
		projected = append(projected, projectBanner(row))
	}
	projected = searchPage(projected, params, func(row bannerRow) string { return row.Title })

	writeJSON(w, http.StatusOK, listResponse{Rows: projected, Page: params.Page, TotalPages: totalPages})
}

func createBanner(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var payload bannerPayload
	if err := decodeJSON(r, &payload); err != nil {
		applog.Debug(ctx, "invalid banner payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if !payload.valid() {
		writeJSONError(w, http.StatusBadRequest, msgRequiredFields)
		return
	}

	imagePath := ""
	if payload.Image.present() {
		stored, err := storeUpload(ctx, bannerBucket, payload.Image)
		if err != nil {
			applog.Error(ctx, "failed to upload banner image", "error", err)
			writeJSONError(w, http.StatusInternalServerError, msgUploadFailed)
			return
		}
		imagePath = stored
	}

	row := models.Banner{
		Title:     payload.Title,
		ImagePath: imagePath,
		Status:    payload.Status,
		SortOrder: payload.SortOrder,
	}
	if err := client.Insert(ctx, "banners", &row); err != nil {
		applog.Error(ctx, "failed to create banner", "error", err)
		writeJSONError(w, http.StatusBadRequest, msgSaveFailed)
		return
	}

	writeJSON(w, http.StatusCreated, row)
}

func showBanner(w http.ResponseWriter, r *http.Request, id uint) {
	ctx := r.Context()
	row, err := fetchOne[models.Banner](ctx, "banners", id)
	if err != nil {
		applog.Error(ctx, "failed to load banner", "id", id, "error", err)
		writeJSONError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}
	if row == nil {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, projectBanner(*row))
}

func updateBanner(w http.ResponseWriter, r *http.Request, id uint) {
	ctx := r.Context()
	existing, err := fetchOne[models.Banner](ctx, "banners", id)
	if err != nil {
		applog.Error(ctx, "failed to load banner for update", "id", id, "error", err)
		writeJSONError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}
	if existing == nil {
		http.NotFound(w, r)
		return
	}

	var payload bannerPayload
	if err := decodeJSON(r, &payload); err != nil {
		applog.Debug(ctx, "invalid banner update payload", "id", id, "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if !payload.valid() {
		writeJSONError(w, http.StatusBadRequest, msgRequiredFields)
		return
	}

	imagePath := existing.ImagePath
	if payload.Image.present() {
		stored, err := storeUpload(ctx, bannerBucket, payload.Image)
		if err != nil {
			applog.Error(ctx, "failed to upload replacement banner image", "id", id, "error", err)
			writeJSONError(w, http.StatusInternalServerError, msgUploadFailed)
			return
		}
		imagePath = stored
	}

	patch := map[string]any{
		"title":      payload.Title,
		"image_path": imagePath,
		"status":     payload.Status,
		"sort_order": payload.SortOrder,
	}
	if err := client.Update(ctx, "banners", patch, backend.Eq("id", id)); err != nil {
		applog.Error(ctx, "failed to update banner", "id", id, "error", err)
		writeJSONError(w, http.StatusBadRequest, msgSaveFailed)
		return
	}

	updated, err := fetchOne[models.Banner](ctx, "banners", id)
	if err != nil || updated == nil {
		applog.Error(ctx, "failed to reload banner after update", "id", id, "error", err)
		writeJSONError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func deleteBanner(w http.ResponseWriter, r *http.Request, id uint) {
	ctx := r.Context()
	existing, err := fetchOne[models.Banner](ctx, "banners", id)
	if err != nil {
		applog.Error(ctx, "failed to load banner for delete", "id", id, "error", err)
		writeJSONError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}
	if existing == nil {
		http.NotFound(w, r)
		return
	}

	if existing.ImagePath != "" && fileStore != nil {
		if err := fileStore.Remove(ctx, bannerBucket, existing.ImagePath); err != nil {
			applog.Error(ctx, "failed to remove banner image", "id", id, "error", err)
			writeJSONError(w, http.StatusInternalServerError, msgRemoveFailed)
			return
		}
	}

	if err := client.Delete(ctx, "banners", backend.Eq("id", id)); err != nil {
		applog.Error(ctx, "failed to delete banner", "id", id, "error", err)
		writeJSONError(w, http.StatusInternalServerError, msgDeleteFailed)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
