// Package checkpoint persists worker liveness records. One row per worker
// name; Save after every batch, Load is what an external health monitor
// reads.
package checkpoint

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/arina-fedorova/PolyLadder-sub002/internal/adapter/postgres"
	"github.com/arina-fedorova/PolyLadder-sub002/internal/domain"
)

// Repo provides checkpoint persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a checkpoint repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Save upserts the checkpoint for a worker name with a fresh timestamp.
func (r *Repo) Save(ctx context.Context, name string, cp domain.Checkpoint) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := q.Exec(ctx, `
INSERT INTO worker_checkpoints (name, last_processed_id, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (name) DO UPDATE
SET last_processed_id = $2, updated_at = now()`,
		name, cp.LastProcessedID,
	)
	if err != nil {
		return postgres.MapError(err, "checkpoint", name)
	}
	return nil
}

// Load returns the checkpoint for a worker name, or domain.ErrNotFound
// when the worker has never checkpointed.
func (r *Repo) Load(ctx context.Context, name string) (*domain.Checkpoint, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var cp domain.Checkpoint
	err := q.QueryRow(ctx,
		`SELECT last_processed_id, updated_at FROM worker_checkpoints WHERE name = $1`, name,
	).Scan(&cp.LastProcessedID, &cp.UpdatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "checkpoint", name)
	}
	return &cp, nil
}
