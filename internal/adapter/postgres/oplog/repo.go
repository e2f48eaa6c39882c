// Package oplog implements pipeline bookkeeping: terminal failure records
// and per-(stage, dataType) attempt counters. Counters accumulate in place;
// average durations are derived at read time.
package oplog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/arina-fedorova/PolyLadder-sub002/internal/adapter/postgres"
	"github.com/arina-fedorova/PolyLadder-sub002/internal/domain"
)

// Repo provides pipeline oplog persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates an oplog repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// RecordFailure writes one terminal failure record.
func (r *Repo) RecordFailure(ctx context.Context, rec domain.FailureRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	_, err := q.Exec(ctx, `
INSERT INTO pipeline_failures (id, item_id, data_type, stage, error_message, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`,
		rec.ID, rec.ItemID, string(rec.DataType), string(rec.Stage), rec.ErrorMessage, rec.CreatedAt,
	)
	if err != nil {
		return postgres.MapError(err, "pipeline_failure", rec.ItemID.String())
	}
	return nil
}

const recordAttemptSQL = `
INSERT INTO pipeline_metrics (stage, data_type, processed, failed, total_duration_ms)
VALUES ($1, $2, 1, $3, $4)
ON CONFLICT (stage, data_type) DO UPDATE
SET processed         = pipeline_metrics.processed + 1,
    failed            = pipeline_metrics.failed + $3,
    total_duration_ms = pipeline_metrics.total_duration_ms + $4`

// RecordAttempt accumulates one attempt outcome into the (stage, dataType)
// counter row.
func (r *Repo) RecordAttempt(ctx context.Context, stage domain.Stage, dataType domain.ContentType, success bool, duration time.Duration) error {
	failed := 0
	if !success {
		failed = 1
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	_, err := q.Exec(ctx, recordAttemptSQL, string(stage), string(dataType), failed, duration.Milliseconds())
	if err != nil {
		return fmt.Errorf("record attempt %s/%s: %w", stage, dataType, err)
	}
	return nil
}

// Metrics returns all attempt counters with derived average durations.
func (r *Repo) Metrics(ctx context.Context) ([]domain.StageMetrics, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, `
SELECT stage, data_type, processed, failed, total_duration_ms
FROM pipeline_metrics
ORDER BY stage, data_type`)
	if err != nil {
		return nil, fmt.Errorf("read pipeline metrics: %w", err)
	}
	defer rows.Close()

	var metrics []domain.StageMetrics
	for rows.Next() {
		var (
			m               domain.StageMetrics
			stage, dataType string
			totalMs         int64
		)
		if err := rows.Scan(&stage, &dataType, &m.Processed, &m.Failed, &totalMs); err != nil {
			return nil, fmt.Errorf("read pipeline metrics: %w", err)
		}
		m.Stage = domain.Stage(stage)
		m.DataType = domain.ContentType(dataType)
		if m.Processed > 0 {
			m.AvgDuration = time.Duration(totalMs/int64(m.Processed)) * time.Millisecond
		}
		metrics = append(metrics, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read pipeline metrics: %w", err)
	}
	return metrics, nil
}

// FailuresForItem returns an item's failure history, newest first.
func (r *Repo) FailuresForItem(ctx context.Context, itemID uuid.UUID) ([]domain.FailureRecord, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, `
SELECT id, item_id, data_type, stage, error_message, created_at
FROM pipeline_failures
WHERE item_id = $1
ORDER BY created_at DESC`, itemID)
	if err != nil {
		return nil, fmt.Errorf("failures for item %s: %w", itemID, err)
	}
	defer rows.Close()

	var recs []domain.FailureRecord
	for rows.Next() {
		var (
			rec             domain.FailureRecord
			dataType, stage string
		)
		if err := rows.Scan(&rec.ID, &rec.ItemID, &dataType, &stage, &rec.ErrorMessage, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failures for item %s: %w", itemID, err)
		}
		rec.DataType = domain.ContentType(dataType)
		rec.Stage = domain.Stage(stage)
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failures for item %s: %w", itemID, err)
	}
	return recs, nil
}
