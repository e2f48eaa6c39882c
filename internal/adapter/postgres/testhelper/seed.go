package testhelper

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arina-fedorova/PolyLadder-sub002/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// stageTables mirrors the content repository's partition layout.
var stageTables = map[domain.Stage]string{
	domain.StageDraft:     "content_drafts",
	domain.StageCandidate: "content_candidates",
	domain.StageValidated: "content_validated",
	domain.StageApproved:  "content_approved",
}

// SeedContentItem inserts one content item directly into the given stage
// partition. A nil payload gets a minimal valid meaning payload.
func SeedContentItem(t *testing.T, pool *pgxpool.Pool, stage domain.Stage, dataType domain.ContentType, lang domain.Language, level *domain.Level, payload json.RawMessage) domain.ContentItem {
	t.Helper()
	ctx := context.Background()

	table, ok := stageTables[stage]
	if !ok {
		t.Fatalf("testhelper: SeedContentItem unknown stage %q", stage)
	}

	suffix := uniqueSuffix()
	if payload == nil {
		payload = json.RawMessage(fmt.Sprintf(
			`{"word":"word-%s","definition":"a seeded test definition","translation":"palabra-%s","part_of_speech":"noun"}`,
			suffix, suffix))
	}

	now := time.Now().UTC().Truncate(time.Microsecond)
	item := domain.ContentItem{
		ID:         uuid.New(),
		DataType:   dataType,
		Stage:      stage,
		Language:   lang,
		Level:      level,
		Payload:    payload,
		SourceName: "test-source",
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	var levelStr *string
	if level != nil {
		s := string(*level)
		levelStr = &s
	}

	_, err := pool.Exec(ctx, fmt.Sprintf(
		`INSERT INTO %s (id, data_type, language, level, payload, source_name, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`, table),
		item.ID, string(item.DataType), string(item.Language), levelStr, item.Payload, item.SourceName, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedContentItem insert into %s: %v", table, err)
	}

	return item
}

// SeedApprovedMeaning inserts an approved meaning and returns its item.
// The word is unique per call.
func SeedApprovedMeaning(t *testing.T, pool *pgxpool.Pool, lang domain.Language, level domain.Level) domain.ContentItem {
	t.Helper()

	suffix := uniqueSuffix()
	payload := json.RawMessage(fmt.Sprintf(
		`{"word":"word-%s","definition":"a seeded approved meaning","translation":"palabra-%s","part_of_speech":"noun"}`,
		suffix, suffix))
	return SeedContentItem(t, pool, domain.StageApproved, domain.ContentTypeMeaning, lang, &level, payload)
}

// SeedApprovedUtterance inserts an approved utterance referencing a meaning id.
func SeedApprovedUtterance(t *testing.T, pool *pgxpool.Pool, meaningID uuid.UUID, lang domain.Language, level domain.Level) domain.ContentItem {
	t.Helper()

	payload := json.RawMessage(fmt.Sprintf(
		`{"meaning_id":"%s","text":"A seeded example sentence.","translation":"Una frase de ejemplo."}`,
		meaningID))
	return SeedContentItem(t, pool, domain.StageApproved, domain.ContentTypeUtterance, lang, &level, payload)
}

// SeedCurriculumNode inserts one curriculum node row.
func SeedCurriculumNode(t *testing.T, pool *pgxpool.Pool, node domain.CurriculumNode) {
	t.Helper()
	ctx := context.Background()

	_, err := pool.Exec(ctx,
		`INSERT INTO curriculum_nodes (language, concept_id, level, concept_type, prerequisites_and, prerequisites_or, priority_order)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		string(node.Language), node.ConceptID, string(node.Level), string(node.ConceptType),
		node.PrerequisitesAnd, node.PrerequisitesOr, node.PriorityOrder,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedCurriculumNode insert %s: %v", node.ConceptID, err)
	}
}

// MarkConceptCompleted flips one progress row to completed, creating it if
// needed.
func MarkConceptCompleted(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, lang domain.Language, conceptID string) {
	t.Helper()
	ctx := context.Background()

	_, err := pool.Exec(ctx,
		`INSERT INTO user_concept_progress (user_id, language, concept_id, status, progress_percentage)
		 VALUES ($1, $2, $3, 'completed', 100)
		 ON CONFLICT (user_id, language, concept_id) DO UPDATE
		 SET status = 'completed', progress_percentage = 100`,
		userID, string(lang), conceptID,
	)
	if err != nil {
		t.Fatalf("testhelper: MarkConceptCompleted %s: %v", conceptID, err)
	}
}

// TruncateContent clears all stage partitions, leases and the oplog so
// aggregate-sensitive tests start from a clean slate.
func TruncateContent(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
TRUNCATE content_drafts, content_candidates, content_validated, content_approved,
         work_leases, pipeline_failures, pipeline_metrics`)
	if err != nil {
		t.Fatalf("testhelper: TruncateContent: %v", err)
	}
}
