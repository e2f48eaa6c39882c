package domain

import (
	"testing"
	"time"
)

func TestCheckpoint_Healthy(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	fresh := Checkpoint{UpdatedAt: now.Add(-2 * time.Minute)}
	if !fresh.Healthy(now, 5*time.Minute) {
		t.Error("checkpoint 2m old should be healthy with 5m threshold")
	}

	stale := Checkpoint{UpdatedAt: now.Add(-6 * time.Minute)}
	if stale.Healthy(now, 5*time.Minute) {
		t.Error("checkpoint 6m old should be unhealthy with 5m threshold")
	}
}

func TestWorkLease_IsStale(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	live := WorkLease{ID: "meaning_EN_A1", AcquiredAt: now.Add(-30 * time.Minute)}
	if live.IsStale(now, time.Hour) {
		t.Error("30m old lease should not be stale with 1h window")
	}

	stale := WorkLease{ID: "meaning_EN_A1", AcquiredAt: now.Add(-61 * time.Minute)}
	if !stale.IsStale(now, time.Hour) {
		t.Error("61m old lease should be stale with 1h window")
	}
}

func TestWorkIDs_Deterministic(t *testing.T) {
	if got := MeaningWorkID(LanguageEN, LevelA1); got != "meaning_EN_A1" {
		t.Errorf("MeaningWorkID = %q", got)
	}
	if got := OrthographyWorkID(LanguageDE); got != "orthography_DE" {
		t.Errorf("OrthographyWorkID = %q", got)
	}
	if got := UtteranceWorkID("m-123"); got != "utterance_m-123" {
		t.Errorf("UtteranceWorkID = %q", got)
	}
	if got := GrammarWorkID(LanguageFR, LevelB1); got != "grammar_FR_B1" {
		t.Errorf("GrammarWorkID = %q", got)
	}
	if got := ExerciseWorkID(LanguageIT, LevelC1); got != "exercise_IT_C1" {
		t.Errorf("ExerciseWorkID = %q", got)
	}
}
