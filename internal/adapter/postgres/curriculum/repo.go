// Package curriculum implements graph and progress persistence for the
// prerequisite graph service. Graph replacement is transactional so readers
// never observe a half-installed curriculum.
package curriculum

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/arina-fedorova/PolyLadder-sub002/internal/adapter/postgres"
	"github.com/arina-fedorova/PolyLadder-sub002/internal/domain"
)

// Repo provides curriculum persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
	txm  *postgres.TxManager
}

// New creates a curriculum repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool, txm: postgres.NewTxManager(pool)}
}

// NodesForLanguage returns all curriculum nodes of one language.
func (r *Repo) NodesForLanguage(ctx context.Context, lang domain.Language) ([]domain.CurriculumNode, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, `
SELECT concept_id, language, level, concept_type, prerequisites_and, prerequisites_or, priority_order
FROM curriculum_nodes
WHERE language = $1
ORDER BY priority_order, concept_id`, string(lang))
	if err != nil {
		return nil, fmt.Errorf("nodes for %s: %w", lang, err)
	}
	defer rows.Close()

	var nodes []domain.CurriculumNode
	for rows.Next() {
		var (
			n                         domain.CurriculumNode
			language, level, nodeType string
		)
		err := rows.Scan(&n.ConceptID, &language, &level, &nodeType, &n.PrerequisitesAnd, &n.PrerequisitesOr, &n.PriorityOrder)
		if err != nil {
			return nil, fmt.Errorf("nodes for %s: %w", lang, err)
		}
		n.Language = domain.Language(language)
		n.Level = domain.Level(level)
		n.ConceptType = domain.ConceptType(nodeType)
		nodes = append(nodes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("nodes for %s: %w", lang, err)
	}
	return nodes, nil
}

// ReplaceNodes atomically replaces the language's node set.
func (r *Repo) ReplaceNodes(ctx context.Context, lang domain.Language, nodes []domain.CurriculumNode) error {
	return r.txm.RunInTx(ctx, func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, r.pool)

		if _, err := q.Exec(ctx, `DELETE FROM curriculum_nodes WHERE language = $1`, string(lang)); err != nil {
			return fmt.Errorf("clear nodes for %s: %w", lang, err)
		}

		batch := &pgx.Batch{}
		for _, n := range nodes {
			batch.Queue(`
INSERT INTO curriculum_nodes (language, concept_id, level, concept_type, prerequisites_and, prerequisites_or, priority_order)
VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				string(lang), n.ConceptID, string(n.Level), string(n.ConceptType),
				n.PrerequisitesAnd, n.PrerequisitesOr, n.PriorityOrder,
			)
		}

		results := q.SendBatch(ctx, batch)
		defer results.Close()
		for range nodes {
			if _, err := results.Exec(); err != nil {
				return postgres.MapError(err, "curriculum_node", string(lang))
			}
		}
		return nil
	})
}

// CompletedConcepts returns the set of concept ids the user completed in
// one language.
func (r *Repo) CompletedConcepts(ctx context.Context, userID uuid.UUID, lang domain.Language) (map[string]bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, `
SELECT concept_id
FROM user_concept_progress
WHERE user_id = $1 AND language = $2 AND status = 'completed'`,
		userID, string(lang))
	if err != nil {
		return nil, fmt.Errorf("completed concepts for %s: %w", userID, err)
	}
	defer rows.Close()

	completed := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("completed concepts for %s: %w", userID, err)
		}
		completed[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("completed concepts for %s: %w", userID, err)
	}
	return completed, nil
}

// LockedConcepts returns the concept ids currently locked for the user.
func (r *Repo) LockedConcepts(ctx context.Context, userID uuid.UUID, lang domain.Language) ([]string, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, `
SELECT concept_id
FROM user_concept_progress
WHERE user_id = $1 AND language = $2 AND status = 'locked'
ORDER BY concept_id`,
		userID, string(lang))
	if err != nil {
		return nil, fmt.Errorf("locked concepts for %s: %w", userID, err)
	}
	defer rows.Close()

	var locked []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("locked concepts for %s: %w", userID, err)
		}
		locked = append(locked, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("locked concepts for %s: %w", userID, err)
	}
	return locked, nil
}

// ProgressByUser returns all progress rows for a (user, language), keyed
// by concept id.
func (r *Repo) ProgressByUser(ctx context.Context, userID uuid.UUID, lang domain.Language) (map[string]domain.UserConceptProgress, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, `
SELECT user_id, concept_id, language, status, progress_percentage
FROM user_concept_progress
WHERE user_id = $1 AND language = $2`,
		userID, string(lang))
	if err != nil {
		return nil, fmt.Errorf("progress for %s: %w", userID, err)
	}
	defer rows.Close()

	progress := make(map[string]domain.UserConceptProgress)
	for rows.Next() {
		var (
			p                domain.UserConceptProgress
			language, status string
		)
		if err := rows.Scan(&p.UserID, &p.ConceptID, &language, &status, &p.ProgressPercentage); err != nil {
			return nil, fmt.Errorf("progress for %s: %w", userID, err)
		}
		p.Language = domain.Language(language)
		p.Status = domain.ProgressStatus(status)
		progress[p.ConceptID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("progress for %s: %w", userID, err)
	}
	return progress, nil
}

// InitProgress upserts one locked row per concept id. Pre-existing rows are
// left untouched, which makes re-initialization idempotent.
func (r *Repo) InitProgress(ctx context.Context, userID uuid.UUID, lang domain.Language, conceptIDs []string) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := q.Exec(ctx, `
INSERT INTO user_concept_progress (user_id, language, concept_id, status, progress_percentage)
SELECT $1, $2, concept_id, 'locked', 0
FROM unnest($3::text[]) AS concept_id
ON CONFLICT (user_id, language, concept_id) DO NOTHING`,
		userID, string(lang), conceptIDs)
	if err != nil {
		return fmt.Errorf("init progress for %s: %w", userID, err)
	}
	return nil
}

// MarkUnlocked flips the given concepts from locked to unlocked. Concepts
// in any other status are left alone.
func (r *Repo) MarkUnlocked(ctx context.Context, userID uuid.UUID, lang domain.Language, conceptIDs []string) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := q.Exec(ctx, `
UPDATE user_concept_progress
SET status = 'unlocked'
WHERE user_id = $1 AND language = $2 AND status = 'locked' AND concept_id = ANY($3::text[])`,
		userID, string(lang), conceptIDs)
	if err != nil {
		return fmt.Errorf("mark unlocked for %s: %w", userID, err)
	}
	return nil
}
