package curriculum

import (
	"fmt"
	"sort"

	"github.com/arina-fedorova/PolyLadder-sub002/internal/domain"
)

// topologicalOrder runs Kahn's algorithm over the union of AND and OR
// prerequisite edges. Edges pointing at concepts outside the node set are
// ignored for ordering (they cannot form a cycle within it). When the
// produced order is shorter than the node count the remaining nodes sit on
// a cycle and domain.ErrCycle is returned.
func topologicalOrder(nodes []domain.CurriculumNode) ([]string, error) {
	inSet := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		inSet[n.ConceptID] = true
	}

	// dependents[p] lists concepts that require p; inDegree counts each
	// node's unmet prerequisites.
	dependents := make(map[string][]string, len(nodes))
	inDegree := make(map[string]int, len(nodes))
	for _, n := range nodes {
		inDegree[n.ConceptID] += 0
		for _, p := range append(append([]string{}, n.PrerequisitesAnd...), n.PrerequisitesOr...) {
			if !inSet[p] {
				continue
			}
			dependents[p] = append(dependents[p], n.ConceptID)
			inDegree[n.ConceptID]++
		}
	}

	var queue []string
	for id, d := range inDegree {
		if d == 0 {
			queue = append(queue, id)
		}
	}
	// Deterministic output for equal-depth nodes.
	sort.Strings(queue)

	order := make([]string, 0, len(nodes))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		order = append(order, id)

		var freed []string
		for _, dep := range dependents[id] {
			inDegree[dep]--
			if inDegree[dep] == 0 {
				freed = append(freed, dep)
			}
		}
		sort.Strings(freed)
		queue = append(queue, freed...)
	}

	if len(order) < len(nodes) {
		return nil, fmt.Errorf("curriculum: %d of %d concepts unsortable: %w",
			len(nodes)-len(order), len(nodes), domain.ErrCycle)
	}
	return order, nil
}
