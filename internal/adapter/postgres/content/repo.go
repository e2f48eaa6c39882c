// Package content implements the stage-partitioned content store. Each
// lifecycle stage has its own table; a stage transition is a transactional
// delete from the current partition plus an insert into the next one, so a
// crash mid-move can never duplicate or lose an item.
package content

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/arina-fedorova/PolyLadder-sub002/internal/adapter/postgres"
	"github.com/arina-fedorova/PolyLadder-sub002/internal/domain"
)

// stageTables maps each lifecycle stage to its partition. Table names come
// from this fixed map only, never from caller input.
var stageTables = map[domain.Stage]string{
	domain.StageDraft:     "content_drafts",
	domain.StageCandidate: "content_candidates",
	domain.StageValidated: "content_validated",
	domain.StageApproved:  "content_approved",
}

func tableFor(stage domain.Stage) (string, error) {
	table, ok := stageTables[stage]
	if !ok {
		return "", fmt.Errorf("content: unknown stage %q: %w", stage, domain.ErrStageMismatch)
	}
	return table, nil
}

const itemColumns = "id, data_type, language, level, payload, source_name, created_at, updated_at"

// Repo provides content persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
	txm  *postgres.TxManager
}

// New creates a content repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool, txm: postgres.NewTxManager(pool)}
}

// InsertDraft stores freshly generated content in the draft partition.
// A zero item ID is assigned here.
func (r *Repo) InsertDraft(ctx context.Context, item domain.ContentItem) (uuid.UUID, error) {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	_, err := q.Exec(ctx, `
INSERT INTO content_drafts (id, data_type, language, level, payload, source_name, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, now(), now())`,
		item.ID, string(item.DataType), string(item.Language), levelArg(item.Level), item.Payload, item.SourceName,
	)
	if err != nil {
		return uuid.Nil, postgres.MapError(err, "content_item", item.ID.String())
	}
	return item.ID, nil
}

// FetchBatch returns up to limit items from one stage partition, oldest
// first. Returns an empty slice (not nil) when the partition is drained.
func (r *Repo) FetchBatch(ctx context.Context, stage domain.Stage, limit int) ([]domain.ContentItem, error) {
	table, err := tableFor(stage)
	if err != nil {
		return nil, err
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := q.Query(ctx, fmt.Sprintf(
		`SELECT %s FROM %s ORDER BY created_at, id LIMIT $1`, itemColumns, table), limit)
	if err != nil {
		return nil, fmt.Errorf("fetch %s batch: %w", stage, err)
	}
	defer rows.Close()

	items := make([]domain.ContentItem, 0, limit)
	for rows.Next() {
		item, err := scanItem(rows, stage)
		if err != nil {
			return nil, fmt.Errorf("fetch %s batch: %w", stage, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fetch %s batch: %w", stage, err)
	}
	return items, nil
}

// Get returns one item from the given stage partition.
func (r *Repo) Get(ctx context.Context, id uuid.UUID, stage domain.Stage) (*domain.ContentItem, error) {
	table, err := tableFor(stage)
	if err != nil {
		return nil, err
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	row := q.QueryRow(ctx, fmt.Sprintf(
		`SELECT %s FROM %s WHERE id = $1`, itemColumns, table), id)

	item, err := scanItem(row, stage)
	if err != nil {
		return nil, postgres.MapError(err, "content_item", id.String())
	}
	return &item, nil
}

// Move advances an item from one stage partition to the next as a single
// transaction. When the item is no longer in the from partition it returns
// domain.ErrStageMismatch, which makes concurrent re-processing a no-op
// instead of a duplicate insert.
func (r *Repo) Move(ctx context.Context, id uuid.UUID, from, to domain.Stage) error {
	fromTable, err := tableFor(from)
	if err != nil {
		return err
	}
	toTable, err := tableFor(to)
	if err != nil {
		return err
	}

	return r.txm.RunInTx(ctx, func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, r.pool)

		row := q.QueryRow(ctx, fmt.Sprintf(
			`DELETE FROM %s WHERE id = $1 RETURNING %s`, fromTable, itemColumns), id)

		item, err := scanItem(row, from)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("content item %s not in %s: %w", id, from, domain.ErrStageMismatch)
			}
			return postgres.MapError(err, "content_item", id.String())
		}

		_, err = q.Exec(ctx, fmt.Sprintf(`
INSERT INTO %s (id, data_type, language, level, payload, source_name, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, now())`, toTable),
			item.ID, string(item.DataType), string(item.Language), levelArg(item.Level), item.Payload, item.SourceName, item.CreatedAt,
		)
		if err != nil {
			return postgres.MapError(err, "content_item", id.String())
		}
		return nil
	})
}

// Delete removes an item from the given stage partition.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID, stage domain.Stage) error {
	table, err := tableFor(stage)
	if err != nil {
		return err
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	tag, err := q.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, table), id)
	if err != nil {
		return postgres.MapError(err, "content_item", id.String())
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("content item %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func levelArg(level *domain.Level) *string {
	if level == nil {
		return nil
	}
	s := string(*level)
	return &s
}

// scanItem reads one row in itemColumns order.
func scanItem(row pgx.Row, stage domain.Stage) (domain.ContentItem, error) {
	var (
		item     domain.ContentItem
		dataType string
		language string
		level    *string
	)
	err := row.Scan(&item.ID, &dataType, &language, &level, &item.Payload, &item.SourceName, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return domain.ContentItem{}, err
	}

	item.DataType = domain.ContentType(dataType)
	item.Language = domain.Language(language)
	item.Stage = stage
	if level != nil {
		l := domain.Level(*level)
		item.Level = &l
	}
	return item, nil
}
