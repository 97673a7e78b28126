package handlers

import (
	"context"
	"math/rand/v2"
	"net/http"
	"strings"

	"barboard/internal/backend"
	applog "barboard/internal/log"
	"barboard/internal/listing"
	"barboard/models"
)

const bookingCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// newBookingCode generates the 8-character reference handed to the venue.
func newBookingCode() string {
	var code [8]byte
	for i := range code {
		code[i] = bookingCodeAlphabet[rand.IntN(len(bookingCodeAlphabet))]
	}
	return string(code[:])
}

type redemptionPayload struct {
	ItemName string  `json:"item_name"`
	Quantity int     `json:"quantity"`
	Amount   float64 `json:"amount"`
}

type bookingPayload struct {
	VenueID       uint                `json:"venue_id"`
	UserID        uint                `json:"user_id"`
	PreferredDate string              `json:"preferred_date"`
	Pax           string              `json:"pax"`
	RoomNo        string              `json:"room_no"`
	Manager       string              `json:"manager"`
	Notes         string              `json:"notes"`
	Status        string              `json:"status"`
	Redemptions   []redemptionPayload `json:"redemptions"`
}

func (p *bookingPayload) valid() bool {
	p.PreferredDate = strings.TrimSpace(p.PreferredDate)
	return p.VenueID != 0 && p.UserID != 0 && p.PreferredDate != ""
}

// bookingRow is a reservation with its venue and user labels resolved.
type bookingRow struct {
	models.Booking
	VenueName string `json:"venue_name"`
	Username  string `json:"username"`
}

type bookingDetail struct {
	bookingRow
	Redemptions []models.Redemption `json:"redemptions"`
}

// BookingResource handles REST-style interactions for venue reservations.
func BookingResource(w http.ResponseWriter, r *http.Request) {
	if client == nil {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	id, rest, ok := resourceID(r, "/admin/api/bookings")
	if !ok {
		switch r.Method {
		case http.MethodGet:
			listBookings(w, r)
		case http.MethodPost:
			createBooking(w, r)
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
		showBooking(w, r, id)
	case http.MethodPut:
		updateBooking(w, r, id)
	case http.MethodDelete:
		deleteBooking(w, r, id)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func bookingLookups(ctx context.Context) (listing.Lookups, error) {
	venues, err := fetchAll[models.Venue](ctx, "venues", nil)
	if err != nil {
		return nil, err
	}
	profiles, err := fetchAll[models.Profile](ctx, "profiles", nil)
	if err != nil {
		return nil, err
	}

	return listing.Lookups{
		"venues": listing.BuildLookup(venues,
			func(v models.Venue) uint { return v.ID },
			func(v models.Venue) string { return v.VenueName }),
		"profiles": listing.BuildLookup(profiles,
			func(p models.Profile) uint { return p.ID },
			func(p models.Profile) string { return p.Username }),
	}, nil
}

func projectBooking(row models.Booking, lookups listing.Lookups) bookingRow {
	return bookingRow{
		Booking:   row,
		VenueName: lookups.Resolve("venues", row.VenueID),
		Username:  lookups.Resolve("profiles", row.UserID),
	}
}

var bookingSortColumns = map[string]string{
	"id":             "id",
	"preferred_date": "preferred_date",
	"status":         "status",
}

func listBookings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	params := parseListParams(r)
	order := sortColumn(params, bookingSortColumns, backend.Order{Column: "id", Descending: true})
	offset, limit := listing.PageRange(params.Page, listing.DefaultPageSize)

	var rows []models.Booking
	count, err := client.Select(ctx, backend.Query{
		Table: "booking",
		Order: &order,
		Range: &backend.Range{Offset: offset, Limit: limit},
		Count: true,
	}, &rows)
	if err != nil {
		applog.Error(ctx, "failed to list bookings", "error", err)
		writeJSONError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}

	lookups, err := bookingLookups(ctx)
	if err != nil {
		applog.Error(ctx, "failed to load booking lookups", "error", err)
		writeJSONError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}

	projected := make([]bookingRow, 0, len(rows))
	for _, row := range rows {
		projected = append(projected, projectBooking(row, lookups))
	}
	projected = searchPage(projected, params, func(row bookingRow) string { return row.BookingUniqueCode })

	writeJSON(w, http.StatusOK, listResponse{
		Rows:       projected,
		Page:       params.Page,
		TotalPages: listing.TotalPages(count, listing.DefaultPageSize),
	})
}

func createBooking(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var payload bookingPayload
	if err := decodeJSON(r, &payload); err != nil {
		applog.Debug(ctx, "invalid booking payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if !payload.valid() {
		writeJSONError(w, http.StatusBadRequest, msgRequiredFields)
		return
	}

	status := payload.Status
	if status == "" {
		status = "pending"
	}

	row := models.Booking{
		VenueID:           payload.VenueID,
		UserID:            payload.UserID,
		PreferredDate:     payload.PreferredDate,
		Pax:               payload.Pax,
		RoomNo:            payload.RoomNo,
		Manager:           payload.Manager,
		Notes:             payload.Notes,
		BookingUniqueCode: newBookingCode(),
		Status:            status,
	}
	if err := client.Insert(ctx, "booking", &row); err != nil {
		applog.Error(ctx, "failed to create booking", "error", err)
		writeJSONError(w, http.StatusBadRequest, msgSaveFailed)
		return
	}

	// Redemption children follow the parent insert; each failure is
	// logged and swallowed on its own.
	for _, redemption := range payload.Redemptions {
		child := models.Redemption{
			BookingID: row.ID,
			ItemName:  strings.TrimSpace(redemption.ItemName),
			Quantity:  redemption.Quantity,
			Amount:    redemption.Amount,
		}
		if child.ItemName == "" {
			continue
		}
		if err := client.Insert(ctx, "redemption", &child); err != nil {
			applog.Error(ctx, "failed to insert redemption", "booking", row.ID, "item", child.ItemName, "error", err)
		}
	}

	writeJSON(w, http.StatusCreated, row)
}

func showBooking(w http.ResponseWriter, r *http.Request, id uint) {
	ctx := r.Context()
	row, err := fetchOne[models.Booking](ctx, "booking", id)
	if err != nil {
		applog.Error(ctx, "failed to load booking", "id", id, "error", err)
		writeJSONError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}
	if row == nil {
		http.NotFound(w, r)
		return
	}

	lookups, err := bookingLookups(ctx)
	if err != nil {
		applog.Error(ctx, "failed to load booking lookups", "id", id, "error", err)
		writeJSONError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}

	redemptions, err := fetchAll[models.Redemption](ctx, "redemption", nil, backend.Eq("booking_id", id))
	if err != nil {
		applog.Error(ctx, "failed to load redemptions", "id", id, "error", err)
		writeJSONError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}

	writeJSON(w, http.StatusOK, bookingDetail{
		bookingRow:  projectBooking(*row, lookups),
		Redemptions: redemptions,
	})
}

// updateBooking edits the reservation fields; the unique code is generated
// once at creation and never rewritten.
func updateBooking(w http.ResponseWriter, r *http.Request, id uint) {
	ctx := r.Context()
	existing, err := fetchOne[models.Booking](ctx, "booking", id)
	if err != nil {
		applog.Error(ctx, "failed to load booking for update", "id", id, "error", err)
		writeJSONError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}
	if existing == nil {
		http.NotFound(w, r)
		return
	}

	var payload bookingPayload
	if err := decodeJSON(r, &payload); err != nil {
		applog.Debug(ctx, "invalid booking update payload", "id", id, "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if !payload.valid() {
		writeJSONError(w, http.StatusBadRequest, msgRequiredFields)
		return
	}

	status := payload.Status
	if status == "" {
		status = existing.Status
	}

	patch := map[string]any{
		"venue_id":       payload.VenueID,
		"user_id":        payload.UserID,
		"preferred_date": payload.PreferredDate,
		"pax":            payload.Pax,
		"room_no":        payload.RoomNo,
		"manager":        payload.Manager,
		"notes":          payload.Notes,
		"status":         status,
	}
	if err := client.Update(ctx, "booking", patch, backend.Eq("id", id)); err != nil {
		applog.Error(ctx, "failed to update booking", "id", id, "error", err)
		writeJSONError(w, http.StatusBadRequest, msgSaveFailed)
		return
	}

	updated, err := fetchOne[models.Booking](ctx, "booking", id)
	if err != nil || updated == nil {
		applog.Error(ctx, "failed to reload booking after update", "id", id, "error", err)
		writeJSONError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func deleteBooking(w http.ResponseWriter, r *http.Request, id uint) {
	ctx := r.Context()
	existing, err := fetchOne[models.Booking](ctx, "booking", id)
	if err != nil {
		applog.Error(ctx, "failed to load booking for delete", "id", id, "error", err)
		writeJSONError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}
	if existing == nil {
		http.NotFound(w, r)
		return
	}

	if err := client.Delete(ctx, "booking", backend.Eq("id", id)); err != nil {
		applog.Error(ctx, "failed to delete booking", "id", id, "error", err)
		writeJSONError(w, http.StatusInternalServerError, msgDeleteFailed)
		return
	}

	// Child redemptions are cleared best-effort after the parent.
	if err := client.Delete(ctx, "redemption", backend.Eq("booking_id", id)); err != nil {
		applog.Error(ctx, "failed to clear redemptions", "booking", id, "error", err)
	}

	w.WriteHeader(http.StatusNoContent)
}
