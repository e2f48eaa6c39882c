package curriculum_test

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/arina-fedorova/PolyLadder-sub002/internal/adapter/postgres/curriculum"
	"github.com/arina-fedorova/PolyLadder-sub002/internal/adapter/postgres/testhelper"
	"github.com/arina-fedorova/PolyLadder-sub002/internal/domain"
)

func testNodes(lang domain.Language) []domain.CurriculumNode {
	return []domain.CurriculumNode{
		{
			ConceptID:   "alphabet",
			Language:    lang,
			Level:       domain.LevelA0,
			ConceptType: domain.ConceptTypeOrthography,
		},
		{
			ConceptID:        "greetings",
			Language:         lang,
			Level:            domain.LevelA1,
			ConceptType:      domain.ConceptTypeVocabulary,
			PrerequisitesAnd: []string{"alphabet"},
			PriorityOrder:    1,
		},
		{
			ConceptID:        "present-tense",
			Language:         lang,
			Level:            domain.LevelA1,
			ConceptType:      domain.ConceptTypeGrammar,
			PrerequisitesAnd: []string{"alphabet"},
			PrerequisitesOr:  []string{"greetings", "numbers"},
			PriorityOrder:    2,
		},
	}
}

func TestRepo_ReplaceAndReadNodes(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := curriculum.New(pool)
	ctx := context.Background()

	if err := repo.ReplaceNodes(ctx, domain.LanguageFR, testNodes(domain.LanguageFR)); err != nil {
		t.Fatalf("ReplaceNodes: %v", err)
	}

	got, err := repo.NodesForLanguage(ctx, domain.LanguageFR)
	if err != nil {
		t.Fatalf("NodesForLanguage: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d nodes, want 3", len(got))
	}

	byID := make(map[string]domain.CurriculumNode, len(got))
	for _, n := range got {
		byID[n.ConceptID] = n
	}

	pt := byID["present-tense"]
	if pt.ConceptType != domain.ConceptTypeGrammar || pt.Level != domain.LevelA1 {
		t.Errorf("present-tense = %+v", pt)
	}
	if len(pt.PrerequisitesAnd) != 1 || pt.PrerequisitesAnd[0] != "alphabet" {
		t.Errorf("PrerequisitesAnd = %v", pt.PrerequisitesAnd)
	}
	if len(pt.PrerequisitesOr) != 2 {
		t.Errorf("PrerequisitesOr = %v", pt.PrerequisitesOr)
	}

	// Replacing again swaps the set atomically.
	if err := repo.ReplaceNodes(ctx, domain.LanguageFR, testNodes(domain.LanguageFR)[:1]); err != nil {
		t.Fatalf("second ReplaceNodes: %v", err)
	}
	got, err = repo.NodesForLanguage(ctx, domain.LanguageFR)
	if err != nil {
		t.Fatalf("NodesForLanguage after replace: %v", err)
	}
	if len(got) != 1 || got[0].ConceptID != "alphabet" {
		t.Errorf("after replace got %+v, want only alphabet", got)
	}
}

func TestRepo_InitProgress_Idempotent(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := curriculum.New(pool)
	ctx := context.Background()

	userID := uuid.New()
	ids := []string{"alphabet", "greetings"}

	if err := repo.InitProgress(ctx, userID, domain.LanguageIT, ids); err != nil {
		t.Fatalf("InitProgress: %v", err)
	}

	// Complete one concept, then re-init: the completed row must survive.
	testhelper.MarkConceptCompleted(t, pool, userID, domain.LanguageIT, "alphabet")

	if err := repo.InitProgress(ctx, userID, domain.LanguageIT, ids); err != nil {
		t.Fatalf("second InitProgress: %v", err)
	}

	progress, err := repo.ProgressByUser(ctx, userID, domain.LanguageIT)
	if err != nil {
		t.Fatalf("ProgressByUser: %v", err)
	}
	if len(progress) != 2 {
		t.Fatalf("got %d rows, want 2", len(progress))
	}
	if progress["alphabet"].Status != domain.ProgressCompleted {
		t.Errorf("alphabet status = %s, re-init clobbered existing row", progress["alphabet"].Status)
	}
	if progress["greetings"].Status != domain.ProgressLocked {
		t.Errorf("greetings status = %s, want locked", progress["greetings"].Status)
	}
}

func TestRepo_MarkUnlocked_OnlyFlipsLocked(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := curriculum.New(pool)
	ctx := context.Background()

	userID := uuid.New()
	if err := repo.InitProgress(ctx, userID, domain.LanguageDE, []string{"a", "b", "c"}); err != nil {
		t.Fatalf("InitProgress: %v", err)
	}
	testhelper.MarkConceptCompleted(t, pool, userID, domain.LanguageDE, "a")

	// "a" is completed and must stay completed even if named in the flip.
	if err := repo.MarkUnlocked(ctx, userID, domain.LanguageDE, []string{"a", "b"}); err != nil {
		t.Fatalf("MarkUnlocked: %v", err)
	}

	progress, err := repo.ProgressByUser(ctx, userID, domain.LanguageDE)
	if err != nil {
		t.Fatalf("ProgressByUser: %v", err)
	}
	if progress["a"].Status != domain.ProgressCompleted {
		t.Errorf("a = %s, want completed untouched", progress["a"].Status)
	}
	if progress["b"].Status != domain.ProgressUnlocked {
		t.Errorf("b = %s, want unlocked", progress["b"].Status)
	}
	if progress["c"].Status != domain.ProgressLocked {
		t.Errorf("c = %s, want still locked", progress["c"].Status)
	}

	completed, err := repo.CompletedConcepts(ctx, userID, domain.LanguageDE)
	if err != nil {
		t.Fatalf("CompletedConcepts: %v", err)
	}
	if !completed["a"] || len(completed) != 1 {
		t.Errorf("completed = %v, want {a}", completed)
	}

	locked, err := repo.LockedConcepts(ctx, userID, domain.LanguageDE)
	if err != nil {
		t.Fatalf("LockedConcepts: %v", err)
	}
	if len(locked) != 1 || locked[0] != "c" {
		t.Errorf("locked = %v, want [c]", locked)
	}
}
