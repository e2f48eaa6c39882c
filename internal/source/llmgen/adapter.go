// Package llmgen implements an LLM-backed generation adapter. It builds a
// per-content-type prompt, requests structured output against the payload
// schema, and maps the provider response into domain.GeneratedContent.
package llmgen

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/arina-fedorova/PolyLadder-sub002/internal/domain"
	"github.com/arina-fedorova/PolyLadder-sub002/internal/llm"
)

const (
	healthProbeTimeout = 10 * time.Second
	healthCacheWindow  = 5 * time.Minute
)

// Adapter generates content through an llm.Provider.
type Adapter struct {
	log         *slog.Logger
	provider    llm.Provider
	maxTokens   int
	temperature float64

	mu          sync.Mutex
	lastHealthy time.Time
}

// New creates an LLM generation adapter.
func New(log *slog.Logger, provider llm.Provider, maxTokens int, temperature float64) *Adapter {
	return &Adapter{
		log:         log.With("adapter", "llm"),
		provider:    provider,
		maxTokens:   maxTokens,
		temperature: temperature,
	}
}

// Name identifies the adapter in source metadata.
func (a *Adapter) Name() string {
	return "llm:" + a.provider.ModelID()
}

// CanHandle accepts every known content type; the LLM backend has no
// language-data constraint.
func (a *Adapter) CanHandle(item domain.WorkItem) bool {
	return SchemaFor(item.ContentType) != nil
}

// Generate produces one piece of content for the work item.
func (a *Adapter) Generate(ctx context.Context, item domain.WorkItem) (*domain.GeneratedContent, error) {
	schema := SchemaFor(item.ContentType)
	if schema == nil {
		return nil, fmt.Errorf("llmgen: unsupported content type %s", item.ContentType)
	}

	resp, err := a.provider.Generate(ctx, llm.Request{
		System:      systemPrompt(item),
		Prompt:      userPrompt(item),
		Schema:      schema,
		MaxTokens:   a.maxTokens,
		Temperature: a.temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("llmgen: generate %s: %w", item.ID, err)
	}

	data := resp.Content
	if item.ContentType == domain.ContentTypeUtterance {
		// The planner's meaning id is authoritative; the model only echoes
		// it and the utterance-to-meaning join must not depend on the echo.
		data, err = stampMeaningID(data, item.Metadata["meaning_id"])
		if err != nil {
			return nil, fmt.Errorf("llmgen: stamp meaning id for %s: %w", item.ID, err)
		}
	}

	a.log.InfoContext(ctx, "content generated",
		slog.String("work_id", item.ID),
		slog.String("model", resp.Model),
		slog.Int("tokens", resp.Usage.TotalTokens),
	)

	tokens := resp.Usage.TotalTokens
	level := item.Level

	return &domain.GeneratedContent{
		ContentType: item.ContentType,
		Language:    item.Language,
		Level:       &level,
		Data:        data,
		Source: domain.SourceMetadata{
			SourceName:  a.Name(),
			GeneratedAt: time.Now().UTC(),
			Tokens:      &tokens,
		},
	}, nil
}

// HealthCheck probes the provider with a minimal request. A successful
// probe is cached briefly so batch processing does not ping the API for
// every work item.
func (a *Adapter) HealthCheck(ctx context.Context) error {
	a.mu.Lock()
	if time.Since(a.lastHealthy) < healthCacheWindow {
		a.mu.Unlock()
		return nil
	}
	a.mu.Unlock()

	probeCtx, cancel := context.WithTimeout(ctx, healthProbeTimeout)
	defer cancel()

	_, err := a.provider.Generate(probeCtx, llm.Request{
		Prompt:    "ping",
		MaxTokens: 1,
	})
	if err != nil {
		return fmt.Errorf("llmgen: health probe: %w", err)
	}

	a.mu.Lock()
	a.lastHealthy = time.Now()
	a.mu.Unlock()
	return nil
}

// stampMeaningID overwrites the payload's meaning_id with the given value.
// An empty value leaves the payload untouched.
func stampMeaningID(payload json.RawMessage, meaningID string) (json.RawMessage, error) {
	if meaningID == "" {
		return payload, nil
	}

	var m map[string]any
	if err := json.Unmarshal(payload, &m); err != nil {
		return nil, err
	}
	m["meaning_id"] = meaningID
	return json.Marshal(m)
}

// systemPrompt sets the model's role for the item's language and level.
func systemPrompt(item domain.WorkItem) string {
	return fmt.Sprintf(
		"You are a curriculum author for %s language learners at CEFR level %s. "+
			"Respond with a single JSON object conforming exactly to the provided schema. "+
			"Content must be level-appropriate, natural and free of offensive material.",
		item.Language, item.Level,
	)
}

// userPrompt describes the unit of work to the model.
func userPrompt(item domain.WorkItem) string {
	var b strings.Builder

	switch item.ContentType {
	case domain.ContentTypeMeaning:
		fmt.Fprintf(&b, "Produce one new vocabulary meaning for %s at level %s.", item.Language, item.Level)
	case domain.ContentTypeUtterance:
		fmt.Fprintf(&b, "Produce one example sentence in %s for the meaning %q",
			item.Language, item.Metadata["meaning_word"])
		fmt.Fprintf(&b, " (meaning_id %q).", item.Metadata["meaning_id"])
	case domain.ContentTypeGrammarRule:
		fmt.Fprintf(&b, "Produce one grammar rule for %s at level %s.", item.Language, item.Level)
	case domain.ContentTypeExercise:
		fmt.Fprintf(&b, "Produce one practice exercise for %s at level %s.", item.Language, item.Level)
	case domain.ContentTypeOrthography:
		fmt.Fprintf(&b, "Produce an orthography lesson for %s: full alphabet, common digraphs, spelling notes.", item.Language)
	}

	if avoid := item.Metadata["avoid_words"]; avoid != "" {
		fmt.Fprintf(&b, " Do not reuse these words: %s.", avoid)
	}

	return b.String()
}
