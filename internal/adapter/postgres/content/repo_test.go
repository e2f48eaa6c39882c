package content_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/arina-fedorova/PolyLadder-sub002/internal/adapter/postgres/content"
	"github.com/arina-fedorova/PolyLadder-sub002/internal/adapter/postgres/testhelper"
	"github.com/arina-fedorova/PolyLadder-sub002/internal/domain"
)

func TestRepo_InsertDraftAndGet(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := content.New(pool)
	ctx := context.Background()

	level := domain.LevelA1
	id, err := repo.InsertDraft(ctx, domain.ContentItem{
		DataType:   domain.ContentTypeMeaning,
		Language:   domain.LanguageEN,
		Level:      &level,
		Payload:    []byte(`{"word":"dog","definition":"a domestic animal","translation":"perro","part_of_speech":"noun"}`),
		SourceName: "llm:test",
	})
	if err != nil {
		t.Fatalf("InsertDraft: %v", err)
	}
	if id == uuid.Nil {
		t.Fatal("InsertDraft assigned no id")
	}

	got, err := repo.Get(ctx, id, domain.StageDraft)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Stage != domain.StageDraft {
		t.Errorf("Stage = %s, want DRAFT", got.Stage)
	}
	if got.DataType != domain.ContentTypeMeaning || got.Language != domain.LanguageEN {
		t.Errorf("got %+v", got)
	}
	if got.Level == nil || *got.Level != domain.LevelA1 {
		t.Errorf("Level = %v, want A1", got.Level)
	}
	if got.SourceName != "llm:test" {
		t.Errorf("SourceName = %q", got.SourceName)
	}
}

func TestRepo_Get_NotFound(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := content.New(pool)

	_, err := repo.Get(context.Background(), uuid.New(), domain.StageDraft)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestRepo_FetchBatch_OldestFirstWithLimit(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	testhelper.TruncateContent(t, pool)
	repo := content.New(pool)

	level := domain.LevelA2
	var seeded []domain.ContentItem
	for range 3 {
		seeded = append(seeded, testhelper.SeedContentItem(t, pool,
			domain.StageCandidate, domain.ContentTypeMeaning, domain.LanguageDE, &level, nil))
	}

	got, err := repo.FetchBatch(context.Background(), domain.StageCandidate, 2)
	if err != nil {
		t.Fatalf("FetchBatch: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d items, want 2", len(got))
	}
	if got[0].ID != seeded[0].ID || got[1].ID != seeded[1].ID {
		t.Errorf("batch not oldest first: got %s, %s", got[0].ID, got[1].ID)
	}
	for _, item := range got {
		if item.Stage != domain.StageCandidate {
			t.Errorf("item %s has stage %s", item.ID, item.Stage)
		}
	}
}

func TestRepo_Move_AdvancesExactlyOnce(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := content.New(pool)
	ctx := context.Background()

	level := domain.LevelB1
	item := testhelper.SeedContentItem(t, pool,
		domain.StageDraft, domain.ContentTypeGrammarRule, domain.LanguageFR, &level,
		[]byte(`{"title":"Passé composé","explanation":"Compound past tense for completed actions.","examples":["J'ai mangé."]}`))

	if err := repo.Move(ctx, item.ID, domain.StageDraft, domain.StageCandidate); err != nil {
		t.Fatalf("Move: %v", err)
	}

	// Gone from the draft partition.
	if _, err := repo.Get(ctx, item.ID, domain.StageDraft); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("item still in DRAFT after move: %v", err)
	}

	// Present in the candidate partition with original creation time.
	moved, err := repo.Get(ctx, item.ID, domain.StageCandidate)
	if err != nil {
		t.Fatalf("Get after move: %v", err)
	}
	if !moved.CreatedAt.Equal(item.CreatedAt) {
		t.Errorf("CreatedAt changed across move: %s → %s", item.CreatedAt, moved.CreatedAt)
	}

	// A second identical move must refuse, not duplicate.
	err = repo.Move(ctx, item.ID, domain.StageDraft, domain.StageCandidate)
	if !errors.Is(err, domain.ErrStageMismatch) {
		t.Errorf("second move err = %v, want ErrStageMismatch", err)
	}
}

func TestRepo_Delete(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := content.New(pool)
	ctx := context.Background()

	level := domain.LevelA1
	item := testhelper.SeedContentItem(t, pool,
		domain.StageValidated, domain.ContentTypeExercise, domain.LanguageIT, &level,
		[]byte(`{"exercise_type":"translation","prompt":"Translate: dog","answer":"cane"}`))

	if err := repo.Delete(ctx, item.ID, domain.StageValidated); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Delete(ctx, item.ID, domain.StageValidated); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
}

func TestRepo_List_Filtered(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	testhelper.TruncateContent(t, pool)
	repo := content.New(pool)

	a1, b2 := domain.LevelA1, domain.LevelB2
	testhelper.SeedApprovedMeaning(t, pool, domain.LanguageEN, a1)
	testhelper.SeedApprovedMeaning(t, pool, domain.LanguageEN, b2)
	testhelper.SeedApprovedMeaning(t, pool, domain.LanguageES, a1)

	lang := domain.LanguageEN
	got, err := repo.List(context.Background(), domain.StageApproved, content.Filter{
		Language: &lang,
		Level:    &a1,
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d items, want 1", len(got))
	}
	if got[0].Language != domain.LanguageEN || *got[0].Level != domain.LevelA1 {
		t.Errorf("got %+v", got[0])
	}
}
