package domain

import (
	"time"

	"github.com/google/uuid"
)

// PredicateKind is one clause of a candidate filter.
type PredicateKind string

const (
	PredicateNew        PredicateKind = "new"        // no progress row, or status NEW
	PredicateDue        PredicateKind = "due"        // progress row with due_time <= At
	PredicateHard       PredicateKind = "hard"       // status HARD
	PredicateNotNew     PredicateKind = "not_new"    // progress row with status != NEW
	PredicateCapable    PredicateKind = "capability" // item or container declares Capability
	PredicateUnfiltered PredicateKind = "any"
)

// Predicate is a single filter clause over items joined with their progress.
type Predicate struct {
	Kind       PredicateKind
	At         time.Time
	Capability Capability
}

// SortOrder defines the order candidates are returned in.
type SortOrder string

const (
	SortDueAsc   SortOrder = "due_asc"  // due_time ASC, item_id ASC
	SortPosition SortOrder = "position" // container position ASC, item_id ASC
	SortRandom   SortOrder = "random"
)

// QueryDescriptor is a composable candidate filter a content store
// turns into a count or an ordered list of item ids.
//
// Items match when they belong to one of ContainerIDs and satisfy at least
// one predicate of AnyOf. Items in archived containers and ignored items
// are always excluded.
type QueryDescriptor struct {
	UserID       uuid.UUID
	LearningMode LearningMode
	ContainerIDs []uuid.UUID
	AnyOf        []Predicate
	Order        SortOrder
	Limit        *int
}

// Countable reports whether the descriptor was built without a limit.
func (q QueryDescriptor) Countable() bool { return q.Limit == nil }

// Matches evaluates the predicates against an item's progress. p is nil when
// the user has never seen the item. Container and archive filters are not
// evaluated here.
func (q QueryDescriptor) Matches(p *ProgressState, caps CapabilitySet) bool {
	for _, pr := range q.AnyOf {
		if pr.matches(p, caps) {
			return true
		}
	}
	return false
}

func (pr Predicate) matches(p *ProgressState, caps CapabilitySet) bool {
	switch pr.Kind {
	case PredicateNew:
		return p == nil || p.Status == ProgressStatusNew
	case PredicateDue:
		return p != nil && p.IsDue(pr.At)
	case PredicateHard:
		return p != nil && p.Status == ProgressStatusHard
	case PredicateNotNew:
		return p != nil && p.Status != ProgressStatusNew
	case PredicateCapable:
		return caps.Has(pr.Capability)
	case PredicateUnfiltered:
		return true
	}
	return false
}
