package testhelper

import (
	"context"
	"testing"

	"github.com/arina-fedorova/PolyLadder-sub002/internal/domain"
)

func TestSetupTestDB_Smoke(t *testing.T) {
	pool := SetupTestDB(t)

	level := domain.LevelA1
	item := SeedContentItem(t, pool, domain.StageDraft, domain.ContentTypeMeaning, domain.LanguageEN, &level, nil)

	// Verify the row exists in DB via SELECT.
	var dataType string
	err := pool.QueryRow(
		context.Background(),
		`SELECT data_type FROM content_drafts WHERE id = $1`,
		item.ID,
	).Scan(&dataType)
	if err != nil {
		t.Fatalf("expected content item in DB, got error: %v", err)
	}

	if dataType != string(domain.ContentTypeMeaning) {
		t.Fatalf("expected data_type %q, got %q", domain.ContentTypeMeaning, dataType)
	}
}
