// Package rulegen implements a rule-based generation adapter for
// orthography lessons, backed by embedded per-language alphabet data.
// It needs no network and is registered ahead of the LLM adapter so
// orthography work never spends tokens.
package rulegen

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/arina-fedorova/PolyLadder-sub002/internal/domain"
)

// Adapter generates orthography lessons from embedded language data.
type Adapter struct {
	log *slog.Logger
}

// New creates a rule-based orthography adapter.
func New(log *slog.Logger) *Adapter {
	return &Adapter{log: log.With("adapter", "rulegen")}
}

// Name identifies the adapter in source metadata.
func (a *Adapter) Name() string { return "rules:orthography" }

// CanHandle accepts orthography work only, and only for languages the
// embedded dataset covers.
func (a *Adapter) CanHandle(item domain.WorkItem) bool {
	if item.ContentType != domain.ContentTypeOrthography {
		return false
	}
	_, ok := orthographies[string(item.Language)]
	return ok
}

// Generate builds the orthography lesson payload deterministically.
func (a *Adapter) Generate(ctx context.Context, item domain.WorkItem) (*domain.GeneratedContent, error) {
	data, ok := orthographies[string(item.Language)]
	if !ok {
		return nil, fmt.Errorf("rulegen: no language data for %s", item.Language)
	}

	payload, err := json.Marshal(struct {
		Alphabet []string `json:"alphabet"`
		Digraphs []string `json:"digraphs"`
		Notes    string   `json:"notes"`
	}{
		Alphabet: data.Alphabet,
		Digraphs: data.Digraphs,
		Notes:    data.Notes,
	})
	if err != nil {
		return nil, fmt.Errorf("rulegen: marshal payload: %w", err)
	}

	a.log.InfoContext(ctx, "orthography lesson generated",
		slog.String("work_id", item.ID),
		slog.String("language", string(item.Language)),
	)

	confidence := 1.0
	level := domain.LevelA0

	return &domain.GeneratedContent{
		ContentType: domain.ContentTypeOrthography,
		Language:    item.Language,
		Level:       &level,
		Data:        payload,
		Source: domain.SourceMetadata{
			SourceName:  a.Name(),
			GeneratedAt: time.Now().UTC(),
			Confidence:  &confidence,
		},
	}, nil
}

// HealthCheck always succeeds: the dataset is embedded.
func (a *Adapter) HealthCheck(_ context.Context) error { return nil }
