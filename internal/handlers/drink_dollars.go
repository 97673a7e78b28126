package handlers

import (
	"context"
	"net/http"

	"barboard/internal/backend"
	applog "barboard/internal/log"
	"barboard/internal/listing"
	"barboard/models"
)

type drinkDollarPayload struct {
	UserID uint `json:"user_id"`
	Coins  int  `json:"coins"`
}

// drinkDollarRow merges a profile with its coin balance.
type drinkDollarRow struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Coins    int    `json:"coins"`
}

// drinkDollarDetail appends the read-only transaction history to a balance.
type drinkDollarDetail struct {
	drinkDollarRow
	Transactions []models.DrinkDollarTransaction `json:"transactions"`
}

// DrinkDollarResource handles REST-style interactions for user coin balances.
// Balances are addressed by the owning user's id.
func DrinkDollarResource(w http.ResponseWriter, r *http.Request) {
	if client == nil {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	userID, rest, ok := resourceID(r, "/admin/api/drinkdollars")
	if !ok {
		switch r.Method {
		case http.MethodGet:
			listDrinkDollars(w, r)
		case http.MethodPost:
			createDrinkDollar(w, r)
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
		showDrinkDollar(w, r, userID)
	case http.MethodPut:
		updateDrinkDollar(w, r, userID)
	case http.MethodDelete:
		deleteDrinkDollar(w, r, userID)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// coinsByUser indexes every balance row by its owner.
func coinsByUser(ctx context.Context) (map[uint]int, error) {
	balances, err := fetchAll[models.DrinkDollar](ctx, "drink_dollars", nil)
	if err != nil {
		return nil, err
	}
	coins := make(map[uint]int, len(balances))
	for _, balance := range balances {
		coins[balance.UserID] = balance.Coins
	}
	return coins, nil
}

var drinkDollarSortColumns = map[string]string{
	"id":       "id",
	"username": "username",
}

func listDrinkDollars(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	params := parseListParams(r)
	order := sortColumn(params, drinkDollarSortColumns, backend.Order{Column: "id", Descending: true})
	offset, limit := listing.PageRange(params.Page, listing.DefaultPageSize)

	var profiles []models.Profile
	count, err := client.Select(ctx, backend.Query{
		Table: "profiles",
		Order: &order,
		Range: &backend.Range{Offset: offset, Limit: limit},
		Count: true,
	}, &profiles)
	if err != nil {
		applog.Error(ctx, "failed to list profiles for balances", "error", err)
		writeJSONError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}

	coins, err := coinsByUser(ctx)
	if err != nil {
		applog.Error(ctx, "failed to load coin balances", "error", err)
		writeJSONError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}

	rows := make([]drinkDollarRow, 0, len(profiles))
	for _, profile := range profiles {
		rows = append(rows, drinkDollarRow{
			UserID:   profile.ID,
			Username: profile.Username,
			Email:    profile.Email,
			Coins:    coins[profile.ID],
		})
	}
	rows = searchPage(rows, params, func(row drinkDollarRow) string { return row.Username })

	writeJSON(w, http.StatusOK, listResponse{
		Rows:       rows,
		Page:       params.Page,
		TotalPages: listing.TotalPages(count, listing.DefaultPageSize),
	})
}

func createDrinkDollar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var payload drinkDollarPayload
	if err := decodeJSON(r, &payload); err != nil {
		applog.Debug(ctx, "invalid balance payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if payload.UserID == 0 {
		writeJSONError(w, http.StatusBadRequest, msgRequiredFields)
		return
	}

	balance := models.DrinkDollar{UserID: payload.UserID, Coins: payload.Coins}
	if err := client.Insert(ctx, "drink_dollars", &balance); err != nil {
		applog.Error(ctx, "failed to create balance", "user", payload.UserID, "error", err)
		writeJSONError(w, http.StatusBadRequest, msgSaveFailed)
		return
	}

	writeJSON(w, http.StatusCreated, balance)
}

func showDrinkDollar(w http.ResponseWriter, r *http.Request, userID uint) {
	ctx := r.Context()
	profile, err := fetchOne[models.Profile](ctx, "profiles", userID)
	if err != nil {
		applog.Error(ctx, "failed to load profile for balance", "user", userID, "error", err)
		writeJSONError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}
	if profile == nil {
		http.NotFound(w, r)
		return
	}

	var balances []models.DrinkDollar
	_, err = client.Select(ctx, backend.Query{
		Table:   "drink_dollars",
		Filters: []backend.Filter{backend.Eq("user_id", userID)},
		Range:   &backend.Range{Offset: 0, Limit: 1},
	}, &balances)
	if err != nil {
		applog.Error(ctx, "failed to load balance", "user", userID, "error", err)
		writeJSONError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}
	coins := 0
	if len(balances) > 0 {
		coins = balances[0].Coins
	}

	transactions, err := fetchAll[models.DrinkDollarTransaction](ctx, "trans_drink_dollar",
		&backend.Order{Column: "id", Descending: true},
		backend.Eq("user_id", userID))
	if err != nil {
		applog.Error(ctx, "failed to load transaction history", "user", userID, "error", err)
		writeJSONError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}

	writeJSON(w, http.StatusOK, drinkDollarDetail{
		drinkDollarRow: drinkDollarRow{
			UserID:   profile.ID,
			Username: profile.Username,
			Email:    profile.Email,
			Coins:    coins,
		},
		Transactions: transactions,
	})
}

// updateDrinkDollar adjusts the coin balance and nothing else; history rows
// are never written from the dashboard.
func updateDrinkDollar(w http.ResponseWriter, r *http.Request, userID uint) {
	ctx := r.Context()
	var payload drinkDollarPayload
	if err := decodeJSON(r, &payload); err != nil {
		applog.Debug(ctx, "invalid balance update payload", "user", userID, "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	var balances []models.DrinkDollar
	_, err := client.Select(ctx, backend.Query{
		Table:   "drink_dollars",
		Filters: []backend.Filter{backend.Eq("user_id", userID)},
		Range:   &backend.Range{Offset: 0, Limit: 1},
	}, &balances)
	if err != nil {
		applog.Error(ctx, "failed to load balance for update", "user", userID, "error", err)
		writeJSONError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}

	if len(balances) == 0 {
		balance := models.DrinkDollar{UserID: userID, Coins: payload.Coins}
		if err := client.Insert(ctx, "drink_dollars", &balance); err != nil {
			applog.Error(ctx, "failed to create balance during update", "user", userID, "error", err)
			writeJSONError(w, http.StatusBadRequest, msgSaveFailed)
			return
		}
		writeJSON(w, http.StatusOK, balance)
		return
	}

	if err := client.Update(ctx, "drink_dollars", map[string]any{"coins": payload.Coins}, backend.Eq("user_id", userID)); err != nil {
		applog.Error(ctx, "failed to update balance", "user", userID, "error", err)
		writeJSONError(w, http.StatusBadRequest, msgSaveFailed)
		return
	}

	updated := balances[0]
	updated.Coins = payload.Coins
	writeJSON(w, http.StatusOK, updated)
}

func deleteDrinkDollar(w http.ResponseWriter, r *http.Request, userID uint) {
	ctx := r.Context()
	var balances []models.DrinkDollar
	_, err := client.Select(ctx, backend.Query{
		Table:   "drink_dollars",
		Filters: []backend.Filter{backend.Eq("user_id", userID)},
		Range:   &backend.Range{Offset: 0, Limit: 1},
	}, &balances)
	if err != nil {
		applog.Error(ctx, "failed to load balance for delete", "user", userID, "error", err)
		writeJSONError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}
	if len(balances) == 0 {
		http.NotFound(w, r)
		return
	}

	if err := client.Delete(ctx, "drink_dollars", backend.Eq("user_id", userID)); err != nil {
		applog.Error(ctx, "failed to delete balance", "user", userID, "error", err)
		writeJSONError(w, http.StatusInternalServerError, msgDeleteFailed)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
