// Package listing holds the screen-level logic every admin table view
// repeats: pagination math, sort-toggle state, page-local search, in-memory
// foreign-key resolution, and the optimistic removal applied after a delete.
package listing

import (
	"strings"
)

// DefaultPageSize is the fixed page size of every paginated admin listing.
const DefaultPageSize = 10

// TotalPages reports ceil(count / pageSize).
func TotalPages(count int64, pageSize int) int {
	if pageSize <= 0 || count <= 0 {
		return 0
	}
	return int((count + int64(pageSize) - 1) / int64(pageSize))
}

// PageRange converts a 1-indexed page into a zero-based offset and limit.
// Pages below 1 clamp to the first page.
func PageRange(page, pageSize int) (offset, limit int) {
	if page < 1 {
		page = 1
	}
	return (page - 1) * pageSize, pageSize
}

// Sort is the column/direction pair driving a server-side ordered fetch.
type Sort struct {
	Key        string
	Descending bool
}

// Toggle returns the sort state after a click on a column header: the same
// column flips direction, a new column starts ascending.
func (s Sort) Toggle(key string) Sort {
	if s.Key == key {
		return Sort{Key: key, Descending: !s.Descending}
	}
	return Sort{Key: key}
}

// FilterPage applies the case-insensitive substring search over the rows of
// the currently loaded page only. It never touches the backend and an empty
// term returns the page untouched.
func FilterPage[T any](rows []T, term string, value func(T) string) []T {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return rows
	}
	filtered := make([]T, 0, len(rows))
	for _, row := range rows {
		if strings.Contains(strings.ToLower(value(row)), needle) {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

// ApplyLocalDelete removes the row with the given identifier from the local
// page without reconciling against a fresh fetch.
func ApplyLocalDelete[T any](rows []T, id uint, idOf func(T) uint) []T {
	kept := make([]T, 0, len(rows))
	for _, row := range rows {
		if idOf(row) == id {
			continue
		}
		kept = append(kept, row)
	}
	return kept
}

// Lookup maps a referenced table's primary keys to display labels.
type Lookup map[uint]string

// Label resolves an id, returning the empty string for unknown keys, which
// the screens render as a blank cell rather than a raw id.
func (l Lookup) Label(id uint) string {
	return l[id]
}

// BuildLookup indexes a fetched lookup table by primary key.
func BuildLookup[T any](rows []T, idOf func(T) uint, labelOf func(T) string) Lookup {
	lookup := make(Lookup, len(rows))
	for _, row := range rows {
		lookup[idOf(row)] = labelOf(row)
	}
	return lookup
}

// Lookups collects the lookup tables a screen joins against, keyed by table
// name.
type Lookups map[string]Lookup

// Resolve returns the label for id in the named table, or "" when either the
// table or the id is unknown.
func (ls Lookups) Resolve(table string, id uint) string {
	return ls[table].Label(id)
}
