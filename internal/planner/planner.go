// Package planner decides what content to generate next. It inspects
// aggregate counts against configured targets and emits the single
// highest-priority unit of work, guarded by a distributed lease so
// concurrent planner instances never hand out the same work twice.
package planner

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/arina-fedorova/PolyLadder-sub002/internal/config"
	"github.com/arina-fedorova/PolyLadder-sub002/internal/domain"
)

// statsRepo provides the aggregate reads behind each gap check.
// Each method is a single aggregate query.
type statsRepo interface {
	// LanguagesMissingOrthography returns supported languages with zero
	// orthography content in any stage.
	LanguagesMissingOrthography(ctx context.Context) ([]domain.Language, error)

	// ApprovedCounts returns per-(language, level) counts of approved
	// content of the given type. Pairs with zero content are included.
	ApprovedCounts(ctx context.Context, t domain.ContentType) ([]domain.LevelCount, error)

	// UnderTargetMeanings returns approved meanings with fewer than
	// target utterances, least-populated first.
	UnderTargetMeanings(ctx context.Context, target int) ([]domain.MeaningCoverage, error)
}

// leaseRepo is the planner's concurrency control: at most one live lease
// exists per work id, and leases older than the TTL are reclaimable.
type leaseRepo interface {
	// Acquire atomically claims the work id. It returns false when a
	// live lease is already held by someone else.
	Acquire(ctx context.Context, id string, ttl time.Duration) (bool, error)

	// Release frees the lease.
	Release(ctx context.Context, id string) error
}

// Planner runs the ordered waterfall of gap checks.
type Planner struct {
	log    *slog.Logger
	stats  statsRepo
	leases leaseRepo
	cfg    config.PlannerConfig
}

// New creates a planner.
func New(log *slog.Logger, stats statsRepo, leases leaseRepo, cfg config.PlannerConfig) *Planner {
	return &Planner{
		log:    log.With("service", "planner"),
		stats:  stats,
		leases: leases,
		cfg:    cfg,
	}
}

// GetNextWork returns the single highest-priority unit of work, or nil when
// no gap exists. Gap checks run in fixed priority order; only the first
// check that yields candidates is used, and at most one WorkItem is emitted
// per call. Each candidate is returned only after its lease is acquired;
// candidates whose lease is held by another planner are skipped.
func (p *Planner) GetNextWork(ctx context.Context) (*domain.WorkItem, error) {
	checks := []func(context.Context) ([]domain.WorkItem, error){
		p.orthographyGaps,
		p.meaningGaps,
		p.utteranceGaps,
		p.grammarGaps,
		p.exerciseGaps,
	}

	for _, check := range checks {
		candidates, err := check(ctx)
		if err != nil {
			return nil, err
		}
		if len(candidates) == 0 {
			continue
		}

		for i := range candidates {
			item := candidates[i]
			ok, err := p.leases.Acquire(ctx, item.ID, p.cfg.LeaseTTL)
			if err != nil {
				return nil, fmt.Errorf("planner: acquire lease %s: %w", item.ID, err)
			}
			if !ok {
				continue // another planner instance holds this work
			}

			p.log.InfoContext(ctx, "work planned",
				slog.String("work_id", item.ID),
				slog.String("content_type", string(item.ContentType)),
				slog.String("priority", string(item.Priority)),
			)
			return &item, nil
		}

		// Every candidate of the winning gap is already in flight;
		// lower-priority gaps wait for the next call rather than being
		// generated out of order.
		return nil, nil
	}

	return nil, nil
}

// MarkWorkComplete releases the lease for a finished (or abandoned) item.
func (p *Planner) MarkWorkComplete(ctx context.Context, workID string) error {
	if err := p.leases.Release(ctx, workID); err != nil {
		return fmt.Errorf("planner: release lease %s: %w", workID, err)
	}
	return nil
}

// orthographyGaps: any supported language with zero orthography content.
func (p *Planner) orthographyGaps(ctx context.Context) ([]domain.WorkItem, error) {
	langs, err := p.stats.LanguagesMissingOrthography(ctx)
	if err != nil {
		return nil, fmt.Errorf("planner: orthography gap check: %w", err)
	}

	items := make([]domain.WorkItem, 0, len(langs))
	for _, lang := range langs {
		items = append(items, domain.WorkItem{
			ID:          domain.OrthographyWorkID(lang),
			ContentType: domain.ContentTypeOrthography,
			Language:    lang,
			Level:       domain.LevelA0,
			Priority:    domain.PriorityCritical,
		})
	}
	return items, nil
}

// meaningGaps: (language, level) pairs below the meanings-per-level target,
// ascending CEFR order first, least populated first within a level.
func (p *Planner) meaningGaps(ctx context.Context) ([]domain.WorkItem, error) {
	return p.levelGaps(ctx, domain.ContentTypeMeaning, p.cfg.MeaningsPerLevel, domain.PriorityHigh)
}

// utteranceGaps: approved meanings with fewer than the target number of
// example utterances, least populated first.
func (p *Planner) utteranceGaps(ctx context.Context) ([]domain.WorkItem, error) {
	meanings, err := p.stats.UnderTargetMeanings(ctx, p.cfg.UtterancesPerMeaning)
	if err != nil {
		return nil, fmt.Errorf("planner: utterance gap check: %w", err)
	}

	items := make([]domain.WorkItem, 0, len(meanings))
	for _, m := range meanings {
		items = append(items, domain.WorkItem{
			ID:          domain.UtteranceWorkID(m.MeaningID),
			ContentType: domain.ContentTypeUtterance,
			Language:    m.Language,
			Level:       m.Level,
			Priority:    domain.PriorityMedium,
			Metadata: map[string]string{
				"meaning_id":   m.MeaningID,
				"meaning_word": m.Word,
			},
		})
	}
	return items, nil
}

// grammarGaps: same shape as the meaning gap, applied to grammar rules.
func (p *Planner) grammarGaps(ctx context.Context) ([]domain.WorkItem, error) {
	return p.levelGaps(ctx, domain.ContentTypeGrammarRule, p.cfg.GrammarPerLevel, domain.PriorityMedium)
}

// exerciseGaps: same shape, applied to exercises.
func (p *Planner) exerciseGaps(ctx context.Context) ([]domain.WorkItem, error) {
	return p.levelGaps(ctx, domain.ContentTypeExercise, p.cfg.ExercisesPerLevel, domain.PriorityLow)
}

func (p *Planner) levelGaps(ctx context.Context, t domain.ContentType, target int, prio domain.Priority) ([]domain.WorkItem, error) {
	counts, err := p.stats.ApprovedCounts(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("planner: %s gap check: %w", t, err)
	}

	var below []domain.LevelCount
	for _, c := range counts {
		if c.Count < target {
			below = append(below, c)
		}
	}

	// Ascending CEFR order first; within a level, least populated first.
	sort.SliceStable(below, func(i, j int) bool {
		oi, oj := below[i].Level.Order(), below[j].Level.Order()
		if oi != oj {
			return oi < oj
		}
		return below[i].Count < below[j].Count
	})

	items := make([]domain.WorkItem, 0, len(below))
	for _, c := range below {
		items = append(items, domain.WorkItem{
			ID:          workIDFor(t, c.Language, c.Level),
			ContentType: t,
			Language:    c.Language,
			Level:       c.Level,
			Priority:    prio,
		})
	}
	return items, nil
}

func workIDFor(t domain.ContentType, lang domain.Language, level domain.Level) string {
	switch t {
	case domain.ContentTypeMeaning:
		return domain.MeaningWorkID(lang, level)
	case domain.ContentTypeGrammarRule:
		return domain.GrammarWorkID(lang, level)
	case domain.ContentTypeExercise:
		return domain.ExerciseWorkID(lang, level)
	}
	return fmt.Sprintf("%s_%s_%s", t, lang, level)
}
