package app

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	contentrepo "github.com/arina-fedorova/PolyLadder-sub002/internal/adapter/postgres/content"
	leaserepo "github.com/arina-fedorova/PolyLadder-sub002/internal/adapter/postgres/lease"
	oplogrepo "github.com/arina-fedorova/PolyLadder-sub002/internal/adapter/postgres/oplog"
	"github.com/arina-fedorova/PolyLadder-sub002/internal/adapter/postgres/testhelper"
	"github.com/arina-fedorova/PolyLadder-sub002/internal/config"
	"github.com/arina-fedorova/PolyLadder-sub002/internal/domain"
	"github.com/arina-fedorova/PolyLadder-sub002/internal/pipeline"
	"github.com/arina-fedorova/PolyLadder-sub002/internal/planner"
	"github.com/arina-fedorova/PolyLadder-sub002/internal/source"
	"github.com/arina-fedorova/PolyLadder-sub002/internal/source/rulegen"
)

// TestCurationFlow_OrthographyToApproved drives one unit of work through the
// whole system against a real database: plan the gap, generate via the rule
// adapter, insert the draft, and advance it through every pipeline stage.
func TestCurationFlow_OrthographyToApproved(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	testhelper.TruncateContent(t, pool)
	ctx := context.Background()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	contents := contentrepo.New(pool)
	leases := leaserepo.New(pool)
	oplog := oplogrepo.New(pool)

	registry := source.NewRegistry(logger)
	registry.Register(rulegen.New(logger))

	plannerCfg := config.PlannerConfig{
		MeaningsPerLevel:     100,
		UtterancesPerMeaning: 3,
		GrammarPerLevel:      30,
		ExercisesPerLevel:    50,
		LeaseTTL:             time.Hour,
	}
	plnr := planner.New(logger, contents, leases, plannerCfg)

	pipelineCfg := config.PipelineConfig{RetryAttempts: 3, BatchSize: 20, AutoApprove: true}
	orch := pipeline.New(logger, contents, oplog, pipeline.NewContentQuality(),
		pipeline.DefaultRetryPolicy(pipelineCfg.RetryAttempts), pipelineCfg, 2)

	// With an empty database every language is missing orthography, so the
	// planner's first answer must be a CRITICAL A0 orthography item.
	item, err := plnr.GetNextWork(ctx)
	require.NoError(t, err)
	require.NotNil(t, item)
	require.Equal(t, domain.ContentTypeOrthography, item.ContentType)
	require.Equal(t, domain.LevelA0, item.Level)
	require.Equal(t, domain.PriorityCritical, item.Priority)

	adapter, err := registry.Select(ctx, *item)
	require.NoError(t, err)
	require.Equal(t, "rules:orthography", adapter.Name())

	generated, err := adapter.Generate(ctx, *item)
	require.NoError(t, err)

	id, err := contents.InsertDraft(ctx, draftFrom(generated))
	require.NoError(t, err)
	require.NoError(t, plnr.MarkWorkComplete(ctx, item.ID))

	// One batch pass drains stages in order, so a clean item travels
	// DRAFT → CANDIDATE → VALIDATED → APPROVED within a single call.
	report, err := orch.ProcessBatch(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, report.Advanced)
	require.Zero(t, report.Failed)

	approved, err := contents.Get(ctx, id, domain.StageApproved)
	require.NoError(t, err)
	require.Equal(t, domain.ContentTypeOrthography, approved.DataType)
	require.Equal(t, item.Language, approved.Language)
	require.Equal(t, "rules:orthography", approved.SourceName)

	// The drafted language now counts as covered, so the next plan must
	// target a different language.
	next, err := plnr.GetNextWork(ctx)
	require.NoError(t, err)
	require.NotNil(t, next)
	require.NotEqual(t, item.ID, next.ID)
	require.NoError(t, plnr.MarkWorkComplete(ctx, next.ID))
}
