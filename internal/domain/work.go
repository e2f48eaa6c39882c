package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// WorkItem is a single unit of generation work produced by the planner.
// It is consumed exactly once by the adapter registry and never persisted
// beyond its in-flight lease.
type WorkItem struct {
	// ID is deterministic, derived from the gap's dimensions
	// (e.g. "meaning_EN_A1"), and doubles as the lease key.
	ID          string
	ContentType ContentType
	Language    Language
	Level       Level
	Priority    Priority
	Metadata    map[string]string
}

// MeaningWorkID derives the lease key for a meaning gap.
func MeaningWorkID(lang Language, level Level) string {
	return fmt.Sprintf("meaning_%s_%s", lang, level)
}

// OrthographyWorkID derives the lease key for an orthography gap.
func OrthographyWorkID(lang Language) string {
	return fmt.Sprintf("orthography_%s", lang)
}

// UtteranceWorkID derives the lease key for an utterance gap on one meaning.
func UtteranceWorkID(meaningID string) string {
	return fmt.Sprintf("utterance_%s", meaningID)
}

// GrammarWorkID derives the lease key for a grammar-rule gap.
func GrammarWorkID(lang Language, level Level) string {
	return fmt.Sprintf("grammar_%s_%s", lang, level)
}

// ExerciseWorkID derives the lease key for an exercise gap.
func ExerciseWorkID(lang Language, level Level) string {
	return fmt.Sprintf("exercise_%s_%s", lang, level)
}

// SourceMetadata describes which backend produced a piece of content and
// at what cost.
type SourceMetadata struct {
	SourceName  string
	GeneratedAt time.Time
	Tokens      *int
	Cost        *float64
	Confidence  *float64
}

// GeneratedContent is the raw output of exactly one adapter for one WorkItem.
// The payload is opaque to the registry; the pipeline validates it against
// the content type's schema during normalization.
type GeneratedContent struct {
	ContentType ContentType
	Language    Language
	Level       *Level
	Data        json.RawMessage
	Source      SourceMetadata
}

// WorkLease is a time-bounded claim on a unit of work. At most one live
// lease exists per work id; leases older than the staleness window are
// reclaimable by any planner instance.
type WorkLease struct {
	ID         string
	AcquiredAt time.Time
}

// IsStale reports whether the lease has outlived the staleness window
// and may be reclaimed.
func (l WorkLease) IsStale(now time.Time, ttl time.Duration) bool {
	return now.Sub(l.AcquiredAt) >= ttl
}
