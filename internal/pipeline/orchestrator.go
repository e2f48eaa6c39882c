// Package pipeline implements the content lifecycle orchestrator: the
// state machine that moves items DRAFT → CANDIDATE → VALIDATED → APPROVED.
// Each transition runs one step (normalization, quality gate, approval)
// under a retry envelope, records every attempt, and moves the item
// atomically between stage partitions.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/arina-fedorova/PolyLadder-sub002/internal/config"
	"github.com/arina-fedorova/PolyLadder-sub002/internal/domain"
)

// contentRepo provides the stage-partitioned content store.
type contentRepo interface {
	// FetchBatch returns up to limit items sitting in the given stage,
	// oldest first.
	FetchBatch(ctx context.Context, stage domain.Stage, limit int) ([]domain.ContentItem, error)

	// Move advances an item from one stage partition to the next in a
	// single transaction. It returns domain.ErrStageMismatch when the item
	// is no longer in the from stage, which makes re-processing safe.
	Move(ctx context.Context, id uuid.UUID, from, to domain.Stage) error
}

// opLog records pipeline bookkeeping: per-attempt metrics and terminal
// failure records.
type opLog interface {
	RecordAttempt(ctx context.Context, stage domain.Stage, dataType domain.ContentType, success bool, duration time.Duration) error
	RecordFailure(ctx context.Context, rec domain.FailureRecord) error
}

// QualityChecker is the collaborator behind the CANDIDATE → VALIDATED gate.
// Implementations may call external services and fail transiently;
// deterministic rejections should unwrap to domain.ErrValidation so the
// orchestrator skips pointless retries.
type QualityChecker interface {
	Check(ctx context.Context, item domain.ContentItem) error
}

// Orchestrator drives items through the lifecycle.
type Orchestrator struct {
	log         *slog.Logger
	content     contentRepo
	oplog       opLog
	quality     QualityChecker
	policy      RetryPolicy
	cfg         config.PipelineConfig
	concurrency int
}

// New creates an orchestrator. Concurrency bounds how many items one
// ProcessBatch call works on at a time; backoff sleeps block only the
// goroutine processing that item.
func New(log *slog.Logger, content contentRepo, oplog opLog, quality QualityChecker, policy RetryPolicy, cfg config.PipelineConfig, concurrency int) *Orchestrator {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Orchestrator{
		log:         log.With("service", "pipeline"),
		content:     content,
		oplog:       oplog,
		quality:     quality,
		policy:      policy,
		cfg:         cfg,
		concurrency: concurrency,
	}
}

// ProcessItem attempts exactly one stage transition for the item. The step
// for the item's current stage runs under the retry policy; on success the
// item moves to the next stage, on exhaustion a failure record is written
// and the item stays where it is. Deterministic validation failures are
// not retried.
//
// Calling ProcessItem on an item another worker already advanced is safe:
// the stage-scoped move reports domain.ErrStageMismatch instead of
// duplicating the item.
func (o *Orchestrator) ProcessItem(ctx context.Context, item domain.ContentItem) (*domain.PipelineResult, error) {
	started := time.Now()

	next, ok := item.Stage.Next()
	if !ok {
		return nil, fmt.Errorf("pipeline: item %s is in terminal stage %s: %w", item.ID, item.Stage, domain.ErrStageMismatch)
	}

	step, err := o.stepFor(item.Stage)
	if err != nil {
		return nil, err
	}

	var stepErrs []string
	var lastErr error
	for attempt := 1; attempt <= o.policy.MaxAttempts; attempt++ {
		attemptStart := time.Now()
		lastErr = step(ctx, item)
		o.recordAttempt(ctx, item, lastErr == nil, time.Since(attemptStart))

		if lastErr == nil {
			break
		}
		stepErrs = append(stepErrs, lastErr.Error())

		if domain.IsDeterministic(lastErr) {
			// Re-running a pure validation on the same input fails
			// identically; leave the item for manual remediation.
			break
		}
		if attempt < o.policy.MaxAttempts {
			if serr := o.policy.Sleep(ctx, o.policy.Backoff(attempt)); serr != nil {
				return nil, serr
			}
		}
	}

	if lastErr != nil {
		rec := domain.FailureRecord{
			ID:           uuid.New(),
			ItemID:       item.ID,
			DataType:     item.DataType,
			Stage:        item.Stage,
			ErrorMessage: lastErr.Error(),
			CreatedAt:    time.Now().UTC(),
		}
		if err := o.oplog.RecordFailure(ctx, rec); err != nil {
			return nil, fmt.Errorf("pipeline: record failure for %s: %w", item.ID, err)
		}

		o.log.WarnContext(ctx, "stage step failed",
			slog.String("item_id", item.ID.String()),
			slog.String("stage", string(item.Stage)),
			slog.String("data_type", string(item.DataType)),
			slog.String("error", lastErr.Error()),
		)
		return &domain.PipelineResult{
			Success:  false,
			NewStage: item.Stage,
			Errors:   stepErrs,
			Duration: time.Since(started),
		}, nil
	}

	if err := o.content.Move(ctx, item.ID, item.Stage, next); err != nil {
		return nil, fmt.Errorf("pipeline: move %s from %s to %s: %w", item.ID, item.Stage, next, err)
	}

	o.log.InfoContext(ctx, "item advanced",
		slog.String("item_id", item.ID.String()),
		slog.String("data_type", string(item.DataType)),
		slog.String("from", string(item.Stage)),
		slog.String("to", string(next)),
	)
	return &domain.PipelineResult{
		Success:  true,
		NewStage: next,
		Errors:   stepErrs,
		Duration: time.Since(started),
	}, nil
}

// BatchReport summarizes one ProcessBatch call.
type BatchReport struct {
	Processed int
	Advanced  int
	Failed    int
}

// ProcessBatch drains up to the configured batch size from each source
// stage in order: DRAFT first, then CANDIDATE, then VALIDATED only when
// auto-approval is enabled. Items within a stage are processed
// concurrently so one item's backoff never stalls the rest.
func (o *Orchestrator) ProcessBatch(ctx context.Context) (BatchReport, error) {
	stages := []domain.Stage{domain.StageDraft, domain.StageCandidate}
	if o.cfg.AutoApprove {
		stages = append(stages, domain.StageValidated)
	}

	var report BatchReport
	var mu sync.Mutex

	for _, stage := range stages {
		items, err := o.content.FetchBatch(ctx, stage, o.cfg.BatchSize)
		if err != nil {
			return report, fmt.Errorf("pipeline: fetch %s batch: %w", stage, err)
		}

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(o.concurrency)
		for i := range items {
			item := items[i]
			g.Go(func() error {
				res, err := o.ProcessItem(gctx, item)
				if err != nil {
					if errors.Is(err, domain.ErrStageMismatch) {
						// Another worker got there first.
						return nil
					}
					return err
				}

				mu.Lock()
				report.Processed++
				if res.Success {
					report.Advanced++
				} else {
					report.Failed++
				}
				mu.Unlock()
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return report, err
		}
	}

	o.log.InfoContext(ctx, "batch processed",
		slog.Int("processed", report.Processed),
		slog.Int("advanced", report.Advanced),
		slog.Int("failed", report.Failed),
	)
	return report, nil
}

// stepFn runs the transition work for one stage. A nil return advances
// the item; deterministic failures unwrap to domain.ErrValidation.
type stepFn func(ctx context.Context, item domain.ContentItem) error

func (o *Orchestrator) stepFor(stage domain.Stage) (stepFn, error) {
	switch stage {
	case domain.StageDraft:
		return o.normalize, nil
	case domain.StageCandidate:
		return o.quality.Check, nil
	case domain.StageValidated:
		return o.approve, nil
	}
	return nil, fmt.Errorf("pipeline: no step for stage %s: %w", stage, domain.ErrStageMismatch)
}

func (o *Orchestrator) recordAttempt(ctx context.Context, item domain.ContentItem, success bool, d time.Duration) {
	if err := o.oplog.RecordAttempt(ctx, item.Stage, item.DataType, success, d); err != nil {
		// Metrics are best effort; losing one sample must not fail the item.
		o.log.WarnContext(ctx, "record attempt metrics",
			slog.String("item_id", item.ID.String()),
			slog.String("error", err.Error()),
		)
	}
}
