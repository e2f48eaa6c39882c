package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ContentItem is the unit flowing through the lifecycle. An item occupies
// exactly one stage at a time; advancing is only ever forward.
type ContentItem struct {
	ID         uuid.UUID
	DataType   ContentType
	Stage      Stage
	Language   Language
	Level      *Level
	Payload    json.RawMessage
	SourceName string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// PipelineResult is the immutable outcome of one orchestrator step.
// Retries happen inside ProcessItem; callers never retry a result.
type PipelineResult struct {
	Success  bool
	NewStage Stage
	Errors   []string
	Duration time.Duration
}

// FailureRecord is written when a pipeline step exhausts its retries.
// The item is left in its current stage for manual remediation.
type FailureRecord struct {
	ID           uuid.UUID
	ItemID       uuid.UUID
	DataType     ContentType
	Stage        Stage
	ErrorMessage string
	CreatedAt    time.Time
}

// StageMetrics aggregates attempt outcomes per (stage, dataType).
type StageMetrics struct {
	Stage       Stage
	DataType    ContentType
	Processed   int
	Failed      int
	AvgDuration time.Duration
}

// Checkpoint is the liveness record the worker persists after each batch.
// An external monitor judges the worker healthy iff the checkpoint is
// fresher than its threshold.
type Checkpoint struct {
	LastProcessedID uuid.UUID
	UpdatedAt       time.Time
}

// Healthy reports whether the checkpoint is fresh enough at the given time.
func (c Checkpoint) Healthy(now time.Time, threshold time.Duration) bool {
	return now.Sub(c.UpdatedAt) < threshold
}
