// Package curriculum implements the prerequisite graph: which concepts a
// learner may study next. Graph reads go through a per-process cache that
// curriculum edits must invalidate; graph writes are cycle-checked with
// Kahn's algorithm before anything touches storage.
package curriculum

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/arina-fedorova/PolyLadder-sub002/internal/domain"
)

// nodeRepo stores the curriculum graph.
type nodeRepo interface {
	// NodesForLanguage returns all nodes of one language.
	NodesForLanguage(ctx context.Context, lang domain.Language) ([]domain.CurriculumNode, error)

	// ReplaceNodes atomically replaces the language's node set.
	ReplaceNodes(ctx context.Context, lang domain.Language, nodes []domain.CurriculumNode) error
}

// progressRepo stores per-user concept progress.
type progressRepo interface {
	// CompletedConcepts returns the set of concept ids the user completed
	// in one language.
	CompletedConcepts(ctx context.Context, userID uuid.UUID, lang domain.Language) (map[string]bool, error)

	// LockedConcepts returns the concept ids currently locked for the user.
	LockedConcepts(ctx context.Context, userID uuid.UUID, lang domain.Language) ([]string, error)

	// ProgressByUser returns all of the user's progress rows for a language,
	// keyed by concept id.
	ProgressByUser(ctx context.Context, userID uuid.UUID, lang domain.Language) (map[string]domain.UserConceptProgress, error)

	// InitProgress upserts one locked row per concept, leaving existing
	// rows untouched.
	InitProgress(ctx context.Context, userID uuid.UUID, lang domain.Language, conceptIDs []string) error

	// MarkUnlocked flips the given concepts from locked to unlocked.
	MarkUnlocked(ctx context.Context, userID uuid.UUID, lang domain.Language, conceptIDs []string) error
}

// Service answers unlock and ordering questions over the graph.
type Service struct {
	log      *slog.Logger
	nodes    nodeRepo
	progress progressRepo

	mu    sync.RWMutex
	cache map[domain.Language][]domain.CurriculumNode
}

// New creates a curriculum service with an empty cache.
func New(log *slog.Logger, nodes nodeRepo, progress progressRepo) *Service {
	return &Service{
		log:      log.With("service", "curriculum"),
		nodes:    nodes,
		progress: progress,
		cache:    make(map[domain.Language][]domain.CurriculumNode),
	}
}

// GraphForLanguage returns all nodes of a language, served from the
// per-process cache after the first read. The cache has no TTL; curriculum
// edits must call ClearCache.
func (s *Service) GraphForLanguage(ctx context.Context, lang domain.Language) ([]domain.CurriculumNode, error) {
	s.mu.RLock()
	cached, ok := s.cache[lang]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}

	nodes, err := s.nodes.NodesForLanguage(ctx, lang)
	if err != nil {
		return nil, fmt.Errorf("curriculum: load graph for %s: %w", lang, err)
	}

	s.mu.Lock()
	s.cache[lang] = nodes
	s.mu.Unlock()
	return nodes, nil
}

// ClearCache invalidates the cached graph for one language, or for all
// languages when lang is nil.
func (s *Service) ClearCache(lang *domain.Language) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if lang == nil {
		s.cache = make(map[domain.Language][]domain.CurriculumNode)
		return
	}
	delete(s.cache, *lang)
}

// IsConceptUnlocked reports whether the node's prerequisites are satisfied
// by the completed set.
func (s *Service) IsConceptUnlocked(node domain.CurriculumNode, completed map[string]bool) bool {
	return node.Unlocked(completed)
}

// AvailableConcepts returns the user's not-yet-completed, currently
// unlockable concepts, sorted ascending by priority order.
func (s *Service) AvailableConcepts(ctx context.Context, userID uuid.UUID, lang domain.Language) ([]domain.CurriculumNode, error) {
	nodes, err := s.GraphForLanguage(ctx, lang)
	if err != nil {
		return nil, err
	}

	completed, err := s.progress.CompletedConcepts(ctx, userID, lang)
	if err != nil {
		return nil, fmt.Errorf("curriculum: completed set for %s: %w", userID, err)
	}

	var available []domain.CurriculumNode
	for _, n := range nodes {
		if completed[n.ConceptID] {
			continue
		}
		if n.Unlocked(completed) {
			available = append(available, n)
		}
	}

	sort.SliceStable(available, func(i, j int) bool {
		return available[i].PriorityOrder < available[j].PriorityOrder
	})
	return available, nil
}

// NextConcept returns the first available concept, or nil when the user
// has nothing left to unlock.
func (s *Service) NextConcept(ctx context.Context, userID uuid.UUID, lang domain.Language) (*domain.CurriculumNode, error) {
	available, err := s.AvailableConcepts(ctx, userID, lang)
	if err != nil {
		return nil, err
	}
	if len(available) == 0 {
		return nil, nil
	}
	return &available[0], nil
}

// TopologicalOrder returns the language's concepts in dependency order via
// Kahn's algorithm. AND and OR prerequisites are treated uniformly as
// depends-on edges: OR weakens the unlock predicate, never the ordering.
// Returns domain.ErrCycle when the graph contains a cycle.
func (s *Service) TopologicalOrder(ctx context.Context, lang domain.Language) ([]string, error) {
	nodes, err := s.GraphForLanguage(ctx, lang)
	if err != nil {
		return nil, err
	}
	return topologicalOrder(nodes)
}

// InitializeUserProgress creates one locked progress row per node for the
// user (idempotently), then immediately unlocks everything whose
// prerequisites are already satisfied.
func (s *Service) InitializeUserProgress(ctx context.Context, userID uuid.UUID, lang domain.Language) error {
	nodes, err := s.GraphForLanguage(ctx, lang)
	if err != nil {
		return err
	}

	ids := make([]string, 0, len(nodes))
	for _, n := range nodes {
		ids = append(ids, n.ConceptID)
	}
	if err := s.progress.InitProgress(ctx, userID, lang, ids); err != nil {
		return fmt.Errorf("curriculum: init progress for %s: %w", userID, err)
	}

	if _, err := s.UnlockAvailableConcepts(ctx, userID, lang); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "user progress initialized",
		slog.String("user_id", userID.String()),
		slog.String("language", string(lang)),
		slog.Int("concepts", len(ids)),
	)
	return nil
}

// UnlockAvailableConcepts flips every locked concept whose prerequisites
// the user now satisfies to unlocked, returning the flipped ids. Callers
// invoke it whenever a concept completes elsewhere in the system.
func (s *Service) UnlockAvailableConcepts(ctx context.Context, userID uuid.UUID, lang domain.Language) ([]string, error) {
	nodes, err := s.GraphForLanguage(ctx, lang)
	if err != nil {
		return nil, err
	}

	completed, err := s.progress.CompletedConcepts(ctx, userID, lang)
	if err != nil {
		return nil, fmt.Errorf("curriculum: completed set for %s: %w", userID, err)
	}
	locked, err := s.progress.LockedConcepts(ctx, userID, lang)
	if err != nil {
		return nil, fmt.Errorf("curriculum: locked set for %s: %w", userID, err)
	}

	lockedSet := make(map[string]bool, len(locked))
	for _, id := range locked {
		lockedSet[id] = true
	}

	var unlock []string
	for _, n := range nodes {
		if lockedSet[n.ConceptID] && n.Unlocked(completed) {
			unlock = append(unlock, n.ConceptID)
		}
	}
	if len(unlock) == 0 {
		return nil, nil
	}

	if err := s.progress.MarkUnlocked(ctx, userID, lang, unlock); err != nil {
		return nil, fmt.Errorf("curriculum: mark unlocked for %s: %w", userID, err)
	}

	s.log.InfoContext(ctx, "concepts unlocked",
		slog.String("user_id", userID.String()),
		slog.String("language", string(lang)),
		slog.Int("count", len(unlock)),
	)
	return unlock, nil
}

// ReplaceGraph installs a new node set for a language. The write is
// rejected with domain.ErrCycle when the new edges form a cycle; on
// success the language's cache entry is invalidated.
func (s *Service) ReplaceGraph(ctx context.Context, lang domain.Language, nodes []domain.CurriculumNode) error {
	if _, err := topologicalOrder(nodes); err != nil {
		return err
	}

	if err := s.nodes.ReplaceNodes(ctx, lang, nodes); err != nil {
		return fmt.Errorf("curriculum: replace graph for %s: %w", lang, err)
	}

	s.ClearCache(&lang)
	s.log.InfoContext(ctx, "curriculum graph replaced",
		slog.String("language", string(lang)),
		slog.Int("nodes", len(nodes)),
	)
	return nil
}
