// Package lease implements the planner's distributed work lease on
// PostgreSQL. The acquire is a single atomic upsert, so concurrent planner
// instances racing for the same work id resolve at the database without
// any advisory locking.
package lease

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/arina-fedorova/PolyLadder-sub002/internal/adapter/postgres"
	"github.com/arina-fedorova/PolyLadder-sub002/internal/domain"
)

// Repo provides work-lease persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a lease repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const acquireSQL = `
INSERT INTO work_leases (id, acquired_at)
VALUES ($1, now())
ON CONFLICT (id) DO UPDATE
SET acquired_at = now()
WHERE work_leases.acquired_at <= now() - make_interval(secs => $2)`

// Acquire atomically claims the work id. A held lease older than the TTL
// counts as abandoned and is reclaimed in the same statement. Returns false
// when a live lease is already held by someone else.
func (r *Repo) Acquire(ctx context.Context, id string, ttl time.Duration) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, acquireSQL, id, ttl.Seconds())
	if err != nil {
		return false, postgres.MapError(err, "work_lease", id)
	}
	return tag.RowsAffected() == 1, nil
}

// Release frees the lease. Releasing an already-released lease is a no-op.
func (r *Repo) Release(ctx context.Context, id string) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := q.Exec(ctx, `DELETE FROM work_leases WHERE id = $1`, id); err != nil {
		return postgres.MapError(err, "work_lease", id)
	}
	return nil
}

// ReleaseExpired sweeps every lease older than the TTL and returns how many
// were reclaimed. Run periodically so abandoned work ids free up even when
// nobody asks for that exact gap again.
func (r *Repo) ReleaseExpired(ctx context.Context, ttl time.Duration) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx,
		`DELETE FROM work_leases WHERE acquired_at <= now() - make_interval(secs => $1)`,
		ttl.Seconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("release expired leases: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Get returns the lease for a work id, or domain.ErrNotFound.
func (r *Repo) Get(ctx context.Context, id string) (*domain.WorkLease, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var lease domain.WorkLease
	err := q.QueryRow(ctx,
		`SELECT id, acquired_at FROM work_leases WHERE id = $1`, id,
	).Scan(&lease.ID, &lease.AcquiredAt)
	if err != nil {
		return nil, postgres.MapError(err, "work_lease", id)
	}
	return &lease, nil
}
