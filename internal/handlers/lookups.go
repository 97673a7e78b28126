package handlers

import (
	"net/http"
	"sort"
	"strings"

	"barboard/internal/backend"
	applog "barboard/internal/log"
	"barboard/internal/listing"
)

// lookupResource wires the behavior every small reference table shares. The
// whole table is fetched in one call, sorted in memory, and the page count is
// derived from the fetched length rather than a count query — the page is
// then sliced locally. Search applies to the sliced page only.
type lookupResource[T any] struct {
	prefix      string
	table       string
	idOf        func(T) uint
	labelOf     func(T) string
	labelKey    string
	defaultSort listing.Sort
	validate    func(*T) bool
	patch       func(T) map[string]any
}

func (res *lookupResource[T]) handle(w http.ResponseWriter, r *http.Request) {
	if client == nil {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	id, rest, ok := resourceID(r, res.prefix)
	if !ok {
		switch r.Method {
		case http.MethodGet:
			res.list(w, r)
		case http.MethodPost:
			res.create(w, r)
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
		res.view(w, r, id)
	case http.MethodPut:
		res.update(w, r, id)
	case http.MethodDelete:
		res.remove(w, r, id)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (res *lookupResource[T]) list(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	params := parseListParams(r)

	rows, err := fetchAll[T](ctx, res.table, nil)
	if err != nil {
		applog.Error(ctx, "failed to list records", "table", res.table, "error", err)
		writeJSONError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}

	res.sortRows(rows, params)

	totalPages := listing.TotalPages(int64(len(rows)), listing.DefaultPageSize)
	offset, limit := listing.PageRange(params.Page, listing.DefaultPageSize)
	if offset > len(rows) {
		offset = len(rows)
	}
	end := offset + limit
	if end > len(rows) {
		end = len(rows)
	}
	page := rows[offset:end]

	page = searchPage(page, params, res.labelOf)

	writeJSON(w, http.StatusOK, listResponse{Rows: page, Page: params.Page, TotalPages: totalPages})
}

func (res *lookupResource[T]) sortRows(rows []T, params listParams) {
	current := res.defaultSort
	if params.Sort == res.labelKey || params.Sort == "id" {
		current = listing.Sort{Key: params.Sort, Descending: params.Desc}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		var less bool
		if current.Key == res.labelKey {
			less = strings.ToLower(res.labelOf(rows[i])) < strings.ToLower(res.labelOf(rows[j]))
		} else {
			less = res.idOf(rows[i]) < res.idOf(rows[j])
		}
		if current.Descending {
			return !less
		}
		return less
	})
}

func (res *lookupResource[T]) create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var row T
	if err := decodeJSON(r, &row); err != nil {
		applog.Debug(ctx, "invalid create payload", "table", res.table, "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if !res.validate(&row) {
		writeJSONError(w, http.StatusBadRequest, msgRequiredFields)
		return
	}

	if err := client.Insert(ctx, res.table, &row); err != nil {
		applog.Error(ctx, "failed to create record", "table", res.table, "error", err)
		writeJSONError(w, http.StatusBadRequest, msgSaveFailed)
		return
	}

	writeJSON(w, http.StatusCreated, row)
}

func (res *lookupResource[T]) view(w http.ResponseWriter, r *http.Request, id uint) {
	ctx := r.Context()
	row, err := fetchOne[T](ctx, res.table, id)
	if err != nil {
		applog.Error(ctx, "failed to load record", "table", res.table, "id", id, "error", err)
		writeJSONError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}
	if row == nil {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, row)
}

func (res *lookupResource[T]) update(w http.ResponseWriter, r *http.Request, id uint) {
	ctx := r.Context()
	existing, err := fetchOne[T](ctx, res.table, id)
	if err != nil {
		applog.Error(ctx, "failed to load record for update", "table", res.table, "id", id, "error", err)
		writeJSONError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}
	if existing == nil {
		http.NotFound(w, r)
		return
	}

	var payload T
	if err := decodeJSON(r, &payload); err != nil {
		applog.Debug(ctx, "invalid update payload", "table", res.table, "id", id, "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if !res.validate(&payload) {
		writeJSONError(w, http.StatusBadRequest, msgRequiredFields)
		return
	}

	if err := client.Update(ctx, res.table, res.patch(payload), backend.Eq("id", id)); err != nil {
		applog.Error(ctx, "failed to update record", "table", res.table, "id", id, "error", err)
		writeJSONError(w, http.StatusBadRequest, msgSaveFailed)
		return
	}

	updated, err := fetchOne[T](ctx, res.table, id)
	if err != nil || updated == nil {
		applog.Error(ctx, "failed to reload record after update", "table", res.table, "id", id, "error", err)
		writeJSONError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (res *lookupResource[T]) remove(w http.ResponseWriter, r *http.Request, id uint) {
	ctx := r.Context()
	existing, err := fetchOne[T](ctx, res.table, id)
	if err != nil {
		applog.Error(ctx, "failed to load record for delete", "table", res.table, "id", id, "error", err)
		writeJSONError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}
	if existing == nil {
		http.NotFound(w, r)
		return
	}

	if err := client.Delete(ctx, res.table, backend.Eq("id", id)); err != nil {
		applog.Error(ctx, "failed to delete record", "table", res.table, "id", id, "error", err)
		writeJSONError(w, http.StatusInternalServerError, msgDeleteFailed)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
