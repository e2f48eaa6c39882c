package domain

import (
	"github.com/google/uuid"
)

// CurriculumNode is one learning concept in a language's prerequisite graph.
// The directed graph formed by AND/OR edges over all nodes of a language
// must be acyclic; illegal edits are rejected at write time.
type CurriculumNode struct {
	ConceptID   string
	Language    Language
	Level       Level
	ConceptType ConceptType

	// PrerequisitesAnd must ALL be completed before the node unlocks.
	PrerequisitesAnd []string
	// PrerequisitesOr unlocks with AT LEAST ONE completed (vacuously
	// satisfied when empty).
	PrerequisitesOr []string

	// PriorityOrder sorts available concepts for presentation.
	PriorityOrder int
}

// Unlocked reports whether the node's prerequisites are satisfied by the
// given completed set. Both sub-conditions are vacuously true when their
// list is empty.
func (n CurriculumNode) Unlocked(completed map[string]bool) bool {
	for _, id := range n.PrerequisitesAnd {
		if !completed[id] {
			return false
		}
	}
	if len(n.PrerequisitesOr) == 0 {
		return true
	}
	for _, id := range n.PrerequisitesOr {
		if completed[id] {
			return true
		}
	}
	return false
}

// UserConceptProgress tracks one user's state on one curriculum concept.
// Rows are created locked when the user starts a language; locked→unlocked
// is driven by the curriculum service, the rest by learner activity.
type UserConceptProgress struct {
	UserID             uuid.UUID
	ConceptID          string
	Language           Language
	Status             ProgressStatus
	ProgressPercentage int
}
