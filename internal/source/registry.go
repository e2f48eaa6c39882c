package source

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/arina-fedorova/PolyLadder-sub002/internal/domain"
)

// Registry holds registered adapters and selects one per work item.
// Selection filters by CanHandle, then probes candidates in registration
// order until a health check succeeds.
type Registry struct {
	log      *slog.Logger
	adapters []Adapter
}

// NewRegistry creates an empty adapter registry.
func NewRegistry(log *slog.Logger) *Registry {
	return &Registry{log: log.With("service", "source_registry")}
}

// Register appends an adapter. Registration order is selection order.
func (r *Registry) Register(a Adapter) {
	r.adapters = append(r.adapters, a)
	r.log.Info("adapter registered", slog.String("adapter", a.Name()))
}

// Select returns the first registered adapter that can handle the item and
// passes its health check. Returns domain.ErrNoAdapter if no candidate
// matches or every matching candidate's health check fails; the caller
// treats that as a hard failure for the item, not retried here.
func (r *Registry) Select(ctx context.Context, item domain.WorkItem) (Adapter, error) {
	matched := false
	for _, a := range r.adapters {
		if !a.CanHandle(item) {
			continue
		}
		matched = true

		if err := a.HealthCheck(ctx); err != nil {
			r.log.WarnContext(ctx, "adapter health check failed",
				slog.String("adapter", a.Name()),
				slog.String("work_id", item.ID),
				slog.String("error", err.Error()),
			)
			continue
		}

		return a, nil
	}

	if matched {
		return nil, fmt.Errorf("work %s: all candidates unhealthy: %w", item.ID, domain.ErrNoAdapter)
	}
	return nil, fmt.Errorf("work %s: %w", item.ID, domain.ErrNoAdapter)
}
