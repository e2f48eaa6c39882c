package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/arina-fedorova/PolyLadder-sub002/internal/adapter/postgres"
	checkpointrepo "github.com/arina-fedorova/PolyLadder-sub002/internal/adapter/postgres/checkpoint"
	contentrepo "github.com/arina-fedorova/PolyLadder-sub002/internal/adapter/postgres/content"
	curriculumrepo "github.com/arina-fedorova/PolyLadder-sub002/internal/adapter/postgres/curriculum"
	leaserepo "github.com/arina-fedorova/PolyLadder-sub002/internal/adapter/postgres/lease"
	oplogrepo "github.com/arina-fedorova/PolyLadder-sub002/internal/adapter/postgres/oplog"
	"github.com/arina-fedorova/PolyLadder-sub002/internal/config"
	"github.com/arina-fedorova/PolyLadder-sub002/internal/curriculum"
	"github.com/arina-fedorova/PolyLadder-sub002/internal/domain"
	"github.com/arina-fedorova/PolyLadder-sub002/internal/llm"
	"github.com/arina-fedorova/PolyLadder-sub002/internal/pipeline"
	"github.com/arina-fedorova/PolyLadder-sub002/internal/planner"
	"github.com/arina-fedorova/PolyLadder-sub002/internal/source"
	"github.com/arina-fedorova/PolyLadder-sub002/internal/source/llmgen"
	"github.com/arina-fedorova/PolyLadder-sub002/internal/source/rulegen"
)

// Run is the curation worker entry point. It loads configuration, wires
// the planner, adapter registry, and lifecycle orchestrator against
// PostgreSQL, and drives the work loop until the context is canceled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting curator",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("llm_provider", cfg.LLM.Provider),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	contentRepo := contentrepo.New(pool)
	leases := leaserepo.New(pool)
	oplog := oplogrepo.New(pool)
	checkpoints := checkpointrepo.New(pool)

	registry := source.NewRegistry(logger)
	registry.Register(rulegen.New(logger))

	provider, err := newLLMProvider(cfg.LLM)
	if err != nil {
		return err
	}
	if provider != nil {
		registry.Register(llmgen.New(logger, provider, cfg.LLM.MaxTokens, cfg.LLM.Temperature))
	}

	currRepo := curriculumrepo.New(pool)
	curricula := curriculum.New(logger, currRepo, currRepo)
	if err := checkCurricula(ctx, logger, curricula); err != nil {
		return err
	}

	w := &worker{
		log:      logger.With("service", "worker"),
		cfg:      cfg,
		planner:  planner.New(logger, contentRepo, leases, cfg.Planner),
		registry: registry,
		orchestrator: pipeline.New(logger, contentRepo, oplog, pipeline.NewContentQuality(),
			pipeline.DefaultRetryPolicy(cfg.Pipeline.RetryAttempts), cfg.Pipeline, cfg.Worker.Concurrency),
		content:     contentRepo,
		leases:      leases,
		checkpoints: checkpoints,
	}

	return w.run(ctx)
}

// newLLMProvider builds the configured generation backend. An empty
// provider name disables LLM generation entirely.
func newLLMProvider(cfg config.LLMConfig) (llm.Provider, error) {
	switch strings.ToLower(cfg.Provider) {
	case "":
		return nil, nil
	case "anthropic":
		return llm.NewAnthropicProvider(cfg.APIKey, cfg.Model)
	case "openai":
		return llm.NewOpenAIProvider(cfg.APIKey, cfg.Model, "")
	}
	return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
}

// worker owns the periodic curation loop: sweep stale leases, generate one
// draft for the highest-priority gap, advance batches through the pipeline,
// and persist a liveness checkpoint.
type worker struct {
	log          *slog.Logger
	cfg          *config.Config
	planner      *planner.Planner
	registry     *source.Registry
	orchestrator *pipeline.Orchestrator
	content      *contentrepo.Repo
	leases       *leaserepo.Repo
	checkpoints  *checkpointrepo.Repo

	lastDraftID uuid.UUID
}

func (w *worker) run(ctx context.Context) error {
	if err := w.restoreCheckpoint(ctx); err != nil {
		return err
	}

	w.log.InfoContext(ctx, "worker started",
		slog.Duration("interval", w.cfg.Worker.Interval),
		slog.Int("concurrency", w.cfg.Worker.Concurrency),
	)

	ticker := time.NewTicker(w.cfg.Worker.Interval)
	defer ticker.Stop()

	for {
		w.tick(ctx)

		select {
		case <-ctx.Done():
			w.log.Info("worker stopped")
			return nil
		case <-ticker.C:
		}
	}
}

// restoreCheckpoint seeds the loop from the last persisted checkpoint.
// A missing checkpoint means a fresh deployment; a stale one means the
// previous worker died mid-run, which is worth a warning but not a failure.
func (w *worker) restoreCheckpoint(ctx context.Context) error {
	cp, err := w.checkpoints.Load(ctx, w.cfg.Worker.CheckpointName)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load checkpoint %s: %w", w.cfg.Worker.CheckpointName, err)
	}

	w.lastDraftID = cp.LastProcessedID
	if !cp.Healthy(time.Now().UTC(), w.cfg.Worker.CheckpointThreshold) {
		w.log.WarnContext(ctx, "previous checkpoint is stale",
			slog.String("checkpoint", w.cfg.Worker.CheckpointName),
			slog.Time("updated_at", cp.UpdatedAt),
		)
	}
	return nil
}

// tick runs one full pass of the loop. Every step is independent; a failed
// step is logged and the rest of the pass still runs, so a transient
// database or backend error never kills the worker.
func (w *worker) tick(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	swept, err := w.leases.ReleaseExpired(ctx, w.cfg.Planner.LeaseTTL)
	if err != nil {
		w.log.WarnContext(ctx, "sweep expired leases", slog.String("error", err.Error()))
	} else if swept > 0 {
		w.log.InfoContext(ctx, "reclaimed stale leases", slog.Int64("count", swept))
	}

	if err := w.generateOne(ctx); err != nil {
		w.log.WarnContext(ctx, "generate draft", slog.String("error", err.Error()))
	}

	if _, err := w.orchestrator.ProcessBatch(ctx); err != nil {
		w.log.WarnContext(ctx, "process batch", slog.String("error", err.Error()))
	}

	cp := domain.Checkpoint{LastProcessedID: w.lastDraftID}
	if err := w.checkpoints.Save(ctx, w.cfg.Worker.CheckpointName, cp); err != nil {
		w.log.WarnContext(ctx, "save checkpoint", slog.String("error", err.Error()))
	}
}

// generateOne asks the planner for the highest-priority gap, generates
// content for it, and inserts the result as a DRAFT. The work lease is
// released only after the draft lands; when generation fails the lease is
// left to expire so retries of a failing work id are spaced by the TTL.
func (w *worker) generateOne(ctx context.Context) error {
	item, err := w.planner.GetNextWork(ctx)
	if err != nil {
		return err
	}
	if item == nil {
		w.log.DebugContext(ctx, "no content gaps")
		return nil
	}

	adapter, err := w.registry.Select(ctx, *item)
	if err != nil {
		// No healthy backend right now; free the lease so the next pass
		// can try again as soon as a backend recovers.
		if relErr := w.planner.MarkWorkComplete(ctx, item.ID); relErr != nil {
			return errors.Join(err, relErr)
		}
		return err
	}

	generated, err := adapter.Generate(ctx, *item)
	if err != nil {
		return fmt.Errorf("generate %s via %s: %w", item.ID, adapter.Name(), err)
	}

	id, err := w.content.InsertDraft(ctx, draftFrom(generated))
	if err != nil {
		return fmt.Errorf("insert draft for %s: %w", item.ID, err)
	}
	w.lastDraftID = id

	if err := w.planner.MarkWorkComplete(ctx, item.ID); err != nil {
		return err
	}

	w.log.InfoContext(ctx, "draft generated",
		slog.String("work_id", item.ID),
		slog.String("item_id", id.String()),
		slog.String("adapter", adapter.Name()),
	)
	return nil
}

// draftFrom wraps one adapter output as a DRAFT-stage content item.
func draftFrom(gen *domain.GeneratedContent) domain.ContentItem {
	return domain.ContentItem{
		DataType:   gen.ContentType,
		Stage:      domain.StageDraft,
		Language:   gen.Language,
		Level:      gen.Level,
		Payload:    gen.Data,
		SourceName: gen.Source.SourceName,
	}
}

// checkCurricula fails startup when any language's prerequisite graph does
// not topologically sort, since a cyclic graph deadlocks learner progression.
func checkCurricula(ctx context.Context, logger *slog.Logger, svc *curriculum.Service) error {
	for _, lang := range domain.SupportedLanguages() {
		order, err := svc.TopologicalOrder(ctx, lang)
		if err != nil {
			return fmt.Errorf("curriculum graph %s: %w", lang, err)
		}
		logger.Info("curriculum graph loaded",
			slog.String("language", string(lang)),
			slog.Int("concepts", len(order)),
		)
	}
	return nil
}
