package handlers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/alexedwards/scs/v2"

	"barboard/internal/backend"
	applog "barboard/internal/log"
	"barboard/internal/listing"
)

// Feedback messages mirror the dashboard's alert texts.
const (
	msgRequiredFields = "Please fill all required fields."
	msgFetchFailed    = "Failed to fetch details."
	msgSaveFailed     = "Failed to save changes."
	msgDeleteFailed   = "Failed to delete record."
	msgUploadFailed   = "Failed to upload file."
	msgRemoveFailed   = "Failed to remove stored file."
)

var (
	sessionManager *scs.SessionManager
	client         backend.Client
	fileStore      backend.Storage
)

// Configure installs the shared dependencies used by the HTTP handlers.
func Configure(sm *scs.SessionManager, c backend.Client, storage backend.Storage) {
	sessionManager = sm
	client = c
	fileStore = storage
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		applog.Error(context.Background(), "failed to encode json response", "error", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// listResponse is the envelope every listing returns.
type listResponse struct {
	Rows       any `json:"rows"`
	Page       int `json:"page"`
	TotalPages int `json:"total_pages"`
}

// listParams carries the query-string knobs shared by every listing.
type listParams struct {
	Page   int
	Sort   string
	Desc   bool
	Search string
}

func parseListParams(r *http.Request) listParams {
	params := listParams{Page: 1}
	if raw := r.URL.Query().Get("p"); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil && page > 0 {
			params.Page = page
		}
	}
	params.Sort = strings.TrimSpace(r.URL.Query().Get("sort"))
	params.Desc = strings.EqualFold(r.URL.Query().Get("dir"), "desc")
	params.Search = r.URL.Query().Get("q")
	return params
}

// sortColumn maps the requested sort key through the module's whitelist,
// falling back to the module default.
func sortColumn(params listParams, allowed map[string]string, fallback backend.Order) backend.Order {
	if column, ok := allowed[params.Sort]; ok {
		return backend.Order{Column: column, Descending: params.Desc}
	}
	return fallback
}

// resourceID splits the path below the resource prefix into an identifier
// and any trailing segments. ok is false when the path is empty.
func resourceID(r *http.Request, prefix string) (id uint, rest []string, ok bool) {
	path := strings.TrimPrefix(r.URL.Path, prefix)
	path = strings.Trim(path, "/")
	if path == "" {
		return 0, nil, false
	}
	segments := strings.Split(path, "/")
	value, err := strconv.ParseUint(segments[0], 10, 64)
	if err != nil {
		return 0, nil, false
	}
	return uint(value), segments[1:], true
}

func decodeJSON(r *http.Request, dest any) error {
	return json.NewDecoder(r.Body).Decode(dest)
}

// jsonColumn renders a JSON-serialized column value for a schema-less patch,
// where the model serializer does not run.
func jsonColumn(v any) string {
	raw, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(raw)
}

// upload is a file attached to a create or edit payload: the original file
// name plus base64-encoded content.
type upload struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

func (u *upload) present() bool {
	return u != nil && strings.TrimSpace(u.Name) != "" && u.Content != ""
}

func (u *upload) reader() (io.Reader, error) {
	raw, err := base64.StdEncoding.DecodeString(u.Content)
	if err != nil {
		return nil, err
	}
	return strings.NewReader(string(raw)), nil
}

// storeUpload pushes an attached file into the bucket and returns the stored
// path. Collisions get a generated suffix rather than overwriting.
func storeUpload(ctx context.Context, bucket string, u *upload) (string, error) {
	content, err := u.reader()
	if err != nil {
		return "", err
	}
	return fileStore.Upload(ctx, bucket, strings.TrimSpace(u.Name), content, false)
}

func publicURL(bucket, path string) string {
	if path == "" || fileStore == nil {
		return ""
	}
	return fileStore.PublicURL(bucket, path)
}

// fetchOne loads the single row with the given id, returning nil when the
// row does not exist.
func fetchOne[T any](ctx context.Context, table string, id uint) (*T, error) {
	var rows []T
	_, err := client.Select(ctx, backend.Query{
		Table:   table,
		Filters: []backend.Filter{backend.Eq("id", id)},
		Range:   &backend.Range{Offset: 0, Limit: 1},
	}, &rows)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// fetchAll loads an entire table, optionally ordered, for the lookup-style
// screens that never paginate.
func fetchAll[T any](ctx context.Context, table string, order *backend.Order, filters ...backend.Filter) ([]T, error) {
	var rows []T
	_, err := client.Select(ctx, backend.Query{
		Table:   table,
		Filters: filters,
		Order:   order,
	}, &rows)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// searchPage applies the page-local q filter. Counts and page numbers are
// computed before this runs, so searching never changes total_pages.
func searchPage[T any](rows []T, params listParams, value func(T) string) []T {
	return listing.FilterPage(rows, params.Search, value)
}
