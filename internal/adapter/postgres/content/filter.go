package content

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	postgres "github.com/arina-fedorova/PolyLadder-sub002/internal/adapter/postgres"
	"github.com/arina-fedorova/PolyLadder-sub002/internal/domain"
)

// Filter defines optional dimensions for listing content within one stage.
// nil fields mean no filter.
type Filter struct {
	DataType *domain.ContentType
	Language *domain.Language
	Level    *domain.Level

	// Limit is the maximum number of items to return. Default: 50, max: 500.
	Limit int

	// Offset is the number of items to skip.
	Offset int
}

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

// normalize applies defaults and clamps values.
func (f *Filter) normalize() {
	if f.Limit <= 0 {
		f.Limit = defaultListLimit
	}
	if f.Limit > maxListLimit {
		f.Limit = maxListLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
}

// List returns items from one stage partition matching the filter, oldest
// first. Used by operator tooling to inspect what is stuck where.
func (r *Repo) List(ctx context.Context, stage domain.Stage, f Filter) ([]domain.ContentItem, error) {
	table, err := tableFor(stage)
	if err != nil {
		return nil, err
	}
	f.normalize()

	builder := squirrel.
		Select("id", "data_type", "language", "level", "payload", "source_name", "created_at", "updated_at").
		From(table).
		OrderBy("created_at", "id").
		Limit(uint64(f.Limit)).
		Offset(uint64(f.Offset)).
		PlaceholderFormat(squirrel.Dollar)

	if f.DataType != nil {
		builder = builder.Where(squirrel.Eq{"data_type": string(*f.DataType)})
	}
	if f.Language != nil {
		builder = builder.Where(squirrel.Eq{"language": string(*f.Language)})
	}
	if f.Level != nil {
		builder = builder.Where(squirrel.Eq{"level": string(*f.Level)})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("list %s: build query: %w", stage, err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", stage, err)
	}
	defer rows.Close()

	items := make([]domain.ContentItem, 0, f.Limit)
	for rows.Next() {
		item, err := scanItem(rows, stage)
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", stage, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list %s: %w", stage, err)
	}
	return items, nil
}
