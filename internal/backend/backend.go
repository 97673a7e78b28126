// Package backend abstracts the hosted data service every admin screen talks
// to: row-level table access plus bucket file storage. Table and column names
// are free-form strings matching the external schema; nothing here validates
// them locally.
package backend

import (
	"context"
	"io"
)

// Filter constrains a query to rows whose column equals the given value.
type Filter struct {
	Column string
	Value  any
}

// Eq is shorthand for an equality filter.
func Eq(column string, value any) Filter {
	return Filter{Column: column, Value: value}
}

// Order names the server-side sort applied to a selection.
type Order struct {
	Column     string
	Descending bool
}

// Range is a zero-based row window. A nil range selects everything.
type Range struct {
	Offset int
	Limit  int
}

// Query describes one select call. When Count is set the implementation also
// reports the exact number of rows matching the filters, ignoring the range.
type Query struct {
	Table   string
	Columns []string
	Filters []Filter
	Order   *Order
	Range   *Range
	Count   bool
}

// Client is the row-level capability the screens consume.
type Client interface {
	// Select loads matching rows into dest (a pointer to a slice) and
	// returns the exact count when the query asks for one.
	Select(ctx context.Context, q Query, dest any) (int64, error)
	// Insert writes one or more rows; generated identifiers are written
	// back into the provided structs.
	Insert(ctx context.Context, table string, rows any) error
	// Update applies the patch to every row matching the filters.
	Update(ctx context.Context, table string, patch map[string]any, filters ...Filter) error
	// Delete removes every row matching the filters.
	Delete(ctx context.Context, table string, filters ...Filter) error
}

// Storage is the object-storage capability used for icons, pictures, and
// gallery images.
type Storage interface {
	// Upload stores the content under bucket/path and returns the stored
	// path, which may differ from the requested one when upsert is false
	// and the name is already taken.
	Upload(ctx context.Context, bucket, path string, content io.Reader, upsert bool) (string, error)
	// Remove deletes a stored object. Removing a missing object is an error.
	Remove(ctx context.Context, bucket, path string) error
	// PublicURL builds the externally reachable URL for a stored object.
	PublicURL(bucket, path string) string
}
