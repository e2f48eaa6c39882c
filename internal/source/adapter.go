// Package source holds the generation-backend registry. Backends (LLM or
// rule-based) implement Adapter; the registry matches one adapter to each
// work item, health-checking candidates before use.
package source

import (
	"context"

	"github.com/arina-fedorova/PolyLadder-sub002/internal/domain"
)

// Adapter is a pluggable content generation backend.
type Adapter interface {
	// Name identifies the adapter in source metadata and logs.
	Name() string

	// CanHandle reports whether the adapter can generate content for the
	// given work item (content type match; rule-based adapters also
	// require language data).
	CanHandle(item domain.WorkItem) bool

	// Generate produces raw content for exactly one work item.
	Generate(ctx context.Context, item domain.WorkItem) (*domain.GeneratedContent, error)

	// HealthCheck is a cheap probe run before an adapter is selected.
	// For LLM-backed adapters this may be a live network call.
	HealthCheck(ctx context.Context) error
}
