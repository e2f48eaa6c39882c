package source

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/arina-fedorova/PolyLadder-sub002/internal/domain"
)

type fakeAdapter struct {
	name      string
	canHandle bool
	healthErr error
	probes    int
}

func (f *fakeAdapter) Name() string                        { return f.name }
func (f *fakeAdapter) CanHandle(_ domain.WorkItem) bool    { return f.canHandle }
func (f *fakeAdapter) Generate(_ context.Context, _ domain.WorkItem) (*domain.GeneratedContent, error) {
	return &domain.GeneratedContent{}, nil
}
func (f *fakeAdapter) HealthCheck(_ context.Context) error {
	f.probes++
	return f.healthErr
}

func item() domain.WorkItem {
	return domain.WorkItem{
		ID:          "meaning_EN_A1",
		ContentType: domain.ContentTypeMeaning,
		Language:    domain.LanguageEN,
		Level:       domain.LevelA1,
		Priority:    domain.PriorityHigh,
	}
}

func TestRegistry_Select_RegistrationOrder(t *testing.T) {
	first := &fakeAdapter{name: "first", canHandle: true}
	second := &fakeAdapter{name: "second", canHandle: true}

	reg := NewRegistry(slog.Default())
	reg.Register(first)
	reg.Register(second)

	got, err := reg.Select(context.Background(), item())
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if got.Name() != "first" {
		t.Errorf("selected %q, want first", got.Name())
	}
	if second.probes != 0 {
		t.Errorf("second adapter probed %d times, want 0", second.probes)
	}
}

func TestRegistry_Select_UnhealthyFallsThrough(t *testing.T) {
	down := &fakeAdapter{name: "down", canHandle: true, healthErr: errors.New("connection refused")}
	up := &fakeAdapter{name: "up", canHandle: true}

	reg := NewRegistry(slog.Default())
	reg.Register(down)
	reg.Register(up)

	got, err := reg.Select(context.Background(), item())
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if got.Name() != "up" {
		t.Errorf("selected %q, want up", got.Name())
	}
	if down.probes != 1 {
		t.Errorf("down adapter probed %d times, want 1", down.probes)
	}
}

func TestRegistry_Select_NoMatch(t *testing.T) {
	reg := NewRegistry(slog.Default())
	reg.Register(&fakeAdapter{name: "picky", canHandle: false})

	_, err := reg.Select(context.Background(), item())
	if !errors.Is(err, domain.ErrNoAdapter) {
		t.Fatalf("want ErrNoAdapter, got %v", err)
	}
}

func TestRegistry_Select_AllUnhealthy(t *testing.T) {
	reg := NewRegistry(slog.Default())
	reg.Register(&fakeAdapter{name: "a", canHandle: true, healthErr: errors.New("down")})
	reg.Register(&fakeAdapter{name: "b", canHandle: true, healthErr: errors.New("down")})

	_, err := reg.Select(context.Background(), item())
	if !errors.Is(err, domain.ErrNoAdapter) {
		t.Fatalf("want ErrNoAdapter, got %v", err)
	}
}

func TestRegistry_Select_Empty(t *testing.T) {
	reg := NewRegistry(slog.Default())

	_, err := reg.Select(context.Background(), item())
	if !errors.Is(err, domain.ErrNoAdapter) {
		t.Fatalf("want ErrNoAdapter, got %v", err)
	}
}
