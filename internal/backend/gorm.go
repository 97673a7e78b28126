package backend

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// DB implements Client on top of a GORM connection.
type DB struct {
	db *gorm.DB
}

// NewDB wraps an open GORM handle.
func NewDB(db *gorm.DB) *DB {
	return &DB{db: db}
}

func (d *DB) Select(ctx context.Context, q Query, dest any) (int64, error) {
	if strings.TrimSpace(q.Table) == "" {
		return 0, fmt.Errorf("select: table must not be empty")
	}

	var count int64
	if q.Count {
		tx := d.apply(ctx, q.Table, q.Filters)
		if err := tx.Count(&count).Error; err != nil {
			return 0, fmt.Errorf("count %s: %w", q.Table, err)
		}
	}

	tx := d.apply(ctx, q.Table, q.Filters)
	if len(q.Columns) > 0 {
		tx = tx.Select(strings.Join(q.Columns, ", "))
	}
	if q.Order != nil {
		direction := "asc"
		if q.Order.Descending {
			direction = "desc"
		}
		tx = tx.Order(fmt.Sprintf("%s %s", quoteColumn(q.Order.Column), direction))
	}
	if q.Range != nil {
		tx = tx.Offset(q.Range.Offset).Limit(q.Range.Limit)
	}
	if err := tx.Find(dest).Error; err != nil {
		return 0, fmt.Errorf("select %s: %w", q.Table, err)
	}
	return count, nil
}

func (d *DB) Insert(ctx context.Context, table string, rows any) error {
	if err := d.db.WithContext(ctx).Table(table).Create(rows).Error; err != nil {
		return fmt.Errorf("insert %s: %w", table, err)
	}
	return nil
}

func (d *DB) Update(ctx context.Context, table string, patch map[string]any, filters ...Filter) error {
	if len(filters) == 0 {
		return fmt.Errorf("update %s: refusing to update without filters", table)
	}
	tx := d.apply(ctx, table, filters)
	if err := tx.Updates(patch).Error; err != nil {
		return fmt.Errorf("update %s: %w", table, err)
	}
	return nil
}

func (d *DB) Delete(ctx context.Context, table string, filters ...Filter) error {
	if len(filters) == 0 {
		return fmt.Errorf("delete %s: refusing to delete without filters", table)
	}
	tx := d.apply(ctx, table, filters)
	if err := tx.Delete(nil).Error; err != nil {
		return fmt.Errorf("delete %s: %w", table, err)
	}
	return nil
}

func (d *DB) apply(ctx context.Context, table string, filters []Filter) *gorm.DB {
	tx := d.db.WithContext(ctx).Table(table)
	for _, f := range filters {
		tx = tx.Where(fmt.Sprintf("%s = ?", quoteColumn(f.Column)), f.Value)
	}
	return tx
}

// quoteColumn protects camelCase columns such as unitInv_tag from dialect
// case folding. Anything that is not a plain identifier collapses to id;
// handlers whitelist sort keys before they get here.
func quoteColumn(column string) string {
	trimmed := strings.TrimSpace(column)
	if !identifierPattern.MatchString(trimmed) {
		trimmed = "id"
	}
	return fmt.Sprintf("%q", trimmed)
}
