package handlers

import (
	"context"
	"net/http"
	"strings"

	"barboard/internal/backend"
	applog "barboard/internal/log"
	"barboard/internal/listing"
	"barboard/internal/saga"
	"barboard/models"
)

const galleryBucket = "galleries"

type venueDamagePayload struct {
	Title        string `json:"title"`
	Pax          string `json:"pax"`
	MinSpend     string `json:"min_spend"`
	Amenities    string `json:"amenities"`
	HappyHours   string `json:"happy_hours"`
	NightHours   string `json:"night_hours"`
	MorningHours string `json:"morning_hours"`
}

type venueMenuPayload struct {
	ItemName        string `json:"item_name"`
	ItemDescription string `json:"item_description"`
	OriginalPrice   string `json:"original_price"`
}

type venuePayload struct {
	VenueName       string               `json:"venue_name"`
	Address         string               `json:"address"`
	OpeningHours    string               `json:"opening_hours"`
	HappyHours      string               `json:"happy_hours"`
	NightHours      string               `json:"night_hours"`
	MorningHours    string               `json:"morning_hours"`
	Price           string               `json:"price"`
	DrinkMinSpend   string               `json:"drink_min_spend"`
	Recommended     models.IDList        `json:"recommended"`
	Language        models.IDList        `json:"language"`
	Playability     string               `json:"playability"`
	MinimumTips     string               `json:"minimum_tips"`
	VenueCategoryID uint                 `json:"venue_category_id"`
	Picture         *upload              `json:"picture"`
	Damages         []venueDamagePayload `json:"damages"`
	Menus           []venueMenuPayload   `json:"menus"`
	Gallery         []upload             `json:"gallery"`
}

func (p *venuePayload) valid() bool {
	p.VenueName = strings.TrimSpace(p.VenueName)
	p.Address = strings.TrimSpace(p.Address)
	return p.VenueName != "" && p.VenueCategoryID != 0
}

// venueRow is a venue with its category and tag labels resolved.
type venueRow struct {
	models.Venue
	CategoryName    string   `json:"category_name"`
	Languages       []string `json:"languages"`
	RecommendedTags []string `json:"recommended_tags"`
	PicURL          string   `json:"pic_url"`
}

type venueDetail struct {
	venueRow
	Damages []models.VenueDamage `json:"damages"`
	Menus   []models.VenueMenu   `json:"menus"`
	Gallery []models.ImagesPath  `json:"gallery"`
}

// VenueResource handles REST-style interactions for venues.
func VenueResource(w http.ResponseWriter, r *http.Request) {
	if client == nil {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	id, rest, ok := resourceID(r, "/admin/api/venues")
	if !ok {
		switch r.Method {
		case http.MethodGet:
			listVenues(w, r)
		case http.MethodPost:
			createVenue(w, r)
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
		showVenue(w, r, id)
	case http.MethodPut:
		updateVenue(w, r, id)
	case http.MethodDelete:
		deleteVenue(w, r, id)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func venueLookups(ctx context.Context) (listing.Lookups, error) {
	categories, err := fetchAll[models.VenueCategory](ctx, "venue_category", nil)
	if err != nil {
		return nil, err
	}
	languageRows, err := fetchAll[models.Language](ctx, "languages", nil)
	if err != nil {
		return nil, err
	}
	recommended, err := fetchAll[models.RecommendedTag](ctx, "recommended_tags", nil)
	if err != nil {
		return nil, err
	}

	return listing.Lookups{
		"venue_category": listing.BuildLookup(categories,
			func(c models.VenueCategory) uint { return c.ID },
			func(c models.VenueCategory) string { return c.CategoryName }),
		"languages": listing.BuildLookup(languageRows,
			func(l models.Language) uint { return l.ID },
			func(l models.Language) string { return l.LanguageName }),
		"recommended_tags": listing.BuildLookup(recommended,
			func(t models.RecommendedTag) uint { return t.ID },
			func(t models.RecommendedTag) string { return t.TagName }),
	}, nil
}

func resolveLabels(lookups listing.Lookups, table string, ids models.IDList) []string {
	labels := make([]string, 0, len(ids))
	for _, id := range ids {
		if label := lookups.Resolve(table, id); label != "" {
			labels = append(labels, label)
		}
	}
	return labels
}

func projectVenue(row models.Venue, lookups listing.Lookups) venueRow {
	return venueRow{
		Venue:           row,
		CategoryName:    lookups.Resolve("venue_category", row.VenueCategoryID),
		Languages:       resolveLabels(lookups, "languages", row.Language),
		RecommendedTags: resolveLabels(lookups, "recommended_tags", row.Recommended),
		PicURL:          publicURL(galleryBucket, row.PicPath),
	}
}

var venueSortColumns = map[string]string{
	"id":         "id",
	"venue_name": "venue_name",
}

func listVenues(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	params := parseListParams(r)
	order := sortColumn(params, venueSortColumns, backend.Order{Column: "id", Descending: true})
	offset, limit := listing.PageRange(params.Page, listing.DefaultPageSize)

	var rows []models.Venue
	count, err := client.Select(ctx, backend.Query{
		Table: "venues",
		Order: &order,
		Range: &backend.Range{Offset: offset, Limit: limit},
		Count: true,
	}, &rows)
	if err != nil {
		applog.Error(ctx, "failed to list venues", "error", err)
		writeJSONError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}

	lookups, err := venueLookups(ctx)
	if err != nil {
		applog.Error(ctx, "failed to load venue lookups", "error", err)
		writeJSONError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}

	projected := make([]venueRow, 0, len(rows))
	for _, row := range rows {
		projected = append(projected, projectVenue(row, lookups))
	}
	projected = searchPage(projected, params, func(row venueRow) string { return row.VenueName })

	writeJSON(w, http.StatusOK, listResponse{
		Rows:       projected,
		Page:       params.Page,
		TotalPages: listing.TotalPages(count, listing.DefaultPageSize),
	})
}

func createVenue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var payload venuePayload
	if err := decodeJSON(r, &payload); err != nil {
		applog.Debug(ctx, "invalid venue payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if !payload.valid() {
		writeJSONError(w, http.StatusBadRequest, msgRequiredFields)
		return
	}

	picPath := ""
	if payload.Picture.present() {
		stored, err := storeUpload(ctx, galleryBucket, payload.Picture)
		if err != nil {
			applog.Error(ctx, "failed to upload venue picture", "error", err)
			writeJSONError(w, http.StatusInternalServerError, msgUploadFailed)
			return
		}
		picPath = stored
	}

	row := models.Venue{
		VenueName:       payload.VenueName,
		Address:         payload.Address,
		OpeningHours:    payload.OpeningHours,
		HappyHours:      payload.HappyHours,
		NightHours:      payload.NightHours,
		MorningHours:    payload.MorningHours,
		Price:           payload.Price,
		DrinkMinSpend:   payload.DrinkMinSpend,
		Recommended:     payload.Recommended,
		Language:        payload.Language,
		Playability:     payload.Playability,
		MinimumTips:     payload.MinimumTips,
		VenueCategoryID: payload.VenueCategoryID,
		PicPath:         picPath,
	}
	if err := client.Insert(ctx, "venues", &row); err != nil {
		applog.Error(ctx, "failed to create venue", "error", err)
		writeJSONError(w, http.StatusBadRequest, msgSaveFailed)
		return
	}

	saga.Run(ctx, row.ID, []saga.Step{
		{Description: "damage tiers", Execute: func(ctx context.Context, venueID uint) error {
			return insertVenueDamages(ctx, venueID, payload.Damages)
		}},
		{Description: "menu items", Execute: func(ctx context.Context, venueID uint) error {
			return insertVenueMenus(ctx, venueID, payload.Menus)
		}},
		{Description: "gallery images", Execute: func(ctx context.Context, venueID uint) error {
			return insertVenueGallery(ctx, venueID, payload.Gallery)
		}},
	})

	writeJSON(w, http.StatusCreated, row)
}

func insertVenueDamages(ctx context.Context, venueID uint, damages []venueDamagePayload) error {
	for _, damage := range damages {
		if strings.TrimSpace(damage.Title) == "" {
			continue
		}
		tier := models.VenueDamage{
			VenueID:      venueID,
			Title:        strings.TrimSpace(damage.Title),
			Pax:          damage.Pax,
			MinSpend:     damage.MinSpend,
			Amenities:    damage.Amenities,
			HappyHours:   damage.HappyHours,
			NightHours:   damage.NightHours,
			MorningHours: damage.MorningHours,
		}
		if err := client.Insert(ctx, "venue_damage", &tier); err != nil {
			return err
		}
	}
	return nil
}

func insertVenueMenus(ctx context.Context, venueID uint, menus []venueMenuPayload) error {
	for _, menu := range menus {
		if strings.TrimSpace(menu.ItemName) == "" {
			continue
		}
		item := models.VenueMenu{
			VenueID:         venueID,
			ItemName:        strings.TrimSpace(menu.ItemName),
			ItemDescription: menu.ItemDescription,
			OriginalPrice:   menu.OriginalPrice,
		}
		if err := client.Insert(ctx, "venue_menu", &item); err != nil {
			return err
		}
	}
	return nil
}

// insertVenueGallery uploads every gallery image and records the stored
// paths as one images_path row with the Gallery discriminator.
func insertVenueGallery(ctx context.Context, venueID uint, gallery []upload) error {
	paths := make(models.StringList, 0, len(gallery))
	for i := range gallery {
		image := &gallery[i]
		if !image.present() {
			continue
		}
		stored, err := storeUpload(ctx, galleryBucket, image)
		if err != nil {
			return err
		}
		paths = append(paths, stored)
	}
	if len(paths) == 0 {
		return nil
	}

	row := models.ImagesPath{VenueID: venueID, Type: "Gallery", ImagePath: paths}
	return client.Insert(ctx, "images_path", &row)
}

func showVenue(w http.ResponseWriter, r *http.Request, id uint) {
	ctx := r.Context()
	row, err := fetchOne[models.Venue](ctx, "venues", id)
	if err != nil {
		applog.Error(ctx, "failed to load venue", "id", id, "error", err)
		writeJSONError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}
	if row == nil {
		http.NotFound(w, r)
		return
	}

	lookups, err := venueLookups(ctx)
	if err != nil {
		applog.Error(ctx, "failed to load venue lookups", "id", id, "error", err)
		writeJSONError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}

	damages, err := fetchAll[models.VenueDamage](ctx, "venue_damage", nil, backend.Eq("venue_id", id))
	if err != nil {
		applog.Error(ctx, "failed to load damage tiers", "id", id, "error", err)
		writeJSONError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}
	menus, err := fetchAll[models.VenueMenu](ctx, "venue_menu", nil, backend.Eq("venue_id", id))
	if err != nil {
		applog.Error(ctx, "failed to load menu items", "id", id, "error", err)
		writeJSONError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}
	gallery, err := fetchAll[models.ImagesPath](ctx, "images_path", nil, backend.Eq("venue_id", id))
	if err != nil {
		applog.Error(ctx, "failed to load gallery", "id", id, "error", err)
		writeJSONError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}

	writeJSON(w, http.StatusOK, venueDetail{
		venueRow: projectVenue(*row, lookups),
		Damages:  damages,
		Menus:    menus,
		Gallery:  gallery,
	})
}

func updateVenue(w http.ResponseWriter, r *http.Request, id uint) {
	ctx := r.Context()
	existing, err := fetchOne[models.Venue](ctx, "venues", id)
	if err != nil {
		applog.Error(ctx, "failed to load venue for update", "id", id, "error", err)
		writeJSONError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}
	if existing == nil {
		http.NotFound(w, r)
		return
	}

	var payload venuePayload
	if err := decodeJSON(r, &payload); err != nil {
		applog.Debug(ctx, "invalid venue update payload", "id", id, "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if !payload.valid() {
		writeJSONError(w, http.StatusBadRequest, msgRequiredFields)
		return
	}

	picPath := existing.PicPath
	if payload.Picture.present() {
		stored, err := storeUpload(ctx, galleryBucket, payload.Picture)
		if err != nil {
			applog.Error(ctx, "failed to upload replacement picture", "id", id, "error", err)
			writeJSONError(w, http.StatusInternalServerError, msgUploadFailed)
			return
		}
		picPath = stored
	}

	patch := map[string]any{
		"venue_name":        payload.VenueName,
		"address":           payload.Address,
		"opening_hours":     payload.OpeningHours,
		"happy_hours":       payload.HappyHours,
		"night_hours":       payload.NightHours,
		"morning_hours":     payload.MorningHours,
		"price":             payload.Price,
		"drink_min_spend":   payload.DrinkMinSpend,
		"recommended":       jsonColumn(payload.Recommended),
		"language":          jsonColumn(payload.Language),
		"playability":       payload.Playability,
		"minimum_tips":      payload.MinimumTips,
		"venue_category_id": payload.VenueCategoryID,
		"pic_path":          picPath,
	}
	if err := client.Update(ctx, "venues", patch, backend.Eq("id", id)); err != nil {
		applog.Error(ctx, "failed to update venue", "id", id, "error", err)
		writeJSONError(w, http.StatusBadRequest, msgSaveFailed)
		return
	}

	updated, err := fetchOne[models.Venue](ctx, "venues", id)
	if err != nil || updated == nil {
		applog.Error(ctx, "failed to reload venue after update", "id", id, "error", err)
		writeJSONError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func deleteVenue(w http.ResponseWriter, r *http.Request, id uint) {
	ctx := r.Context()
	existing, err := fetchOne[models.Venue](ctx, "venues", id)
	if err != nil {
		applog.Error(ctx, "failed to load venue for delete", "id", id, "error", err)
		writeJSONError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}
	if existing == nil {
		http.NotFound(w, r)
		return
	}

	if existing.PicPath != "" && fileStore != nil {
		if err := fileStore.Remove(ctx, galleryBucket, existing.PicPath); err != nil {
			applog.Error(ctx, "failed to remove venue picture", "id", id, "error", err)
			writeJSONError(w, http.StatusInternalServerError, msgRemoveFailed)
			return
		}
	}

	if err := client.Delete(ctx, "venues", backend.Eq("id", id)); err != nil {
		applog.Error(ctx, "failed to delete venue", "id", id, "error", err)
		writeJSONError(w, http.StatusInternalServerError, msgDeleteFailed)
		return
	}

	// Related collections are cleared best-effort after the parent.
	for _, table := range []string{"venue_damage", "venue_menu", "images_path"} {
		if err := client.Delete(ctx, table, backend.Eq("venue_id", id)); err != nil {
			applog.Error(ctx, "failed to clear venue children", "table", table, "venue", id, "error", err)
		}
	}

	w.WriteHeader(http.StatusNoContent)
}
