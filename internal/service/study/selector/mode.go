package selector

import (
	"fmt"
	"time"

	"github.com/heartmarshall/myenglish-study/internal/domain"
)

// Mode is a selection strategy. The set of variants is closed; obtain one
// with ParseMode.
type Mode interface {
	ID() domain.ModeID
	predicates(now time.Time) []domain.Predicate
	order() domain.SortOrder
}

type newMode struct{}

func (newMode) ID() domain.ModeID { return domain.ModeNew }
func (newMode) predicates(time.Time) []domain.Predicate {
	return []domain.Predicate{{Kind: domain.PredicateNew}}
}
func (newMode) order() domain.SortOrder { return domain.SortPosition }

type dueMode struct{}

func (dueMode) ID() domain.ModeID { return domain.ModeDue }
func (dueMode) predicates(now time.Time) []domain.Predicate {
	return []domain.Predicate{{Kind: domain.PredicateDue, At: now}}
}
func (dueMode) order() domain.SortOrder { return domain.SortDueAsc }

type hardMode struct{}

func (hardMode) ID() domain.ModeID { return domain.ModeHard }
func (hardMode) predicates(time.Time) []domain.Predicate {
	return []domain.Predicate{{Kind: domain.PredicateHard}}
}
func (hardMode) order() domain.SortOrder { return domain.SortDueAsc }

type allReviewMode struct{}

func (allReviewMode) ID() domain.ModeID { return domain.ModeAllReview }
func (allReviewMode) predicates(time.Time) []domain.Predicate {
	return []domain.Predicate{{Kind: domain.PredicateNotNew}}
}
func (allReviewMode) order() domain.SortOrder { return domain.SortRandom }

// mixedMode is the union of due and new. Its descriptor is only used for
// counting; batches are filled from its components.
type mixedMode struct{}

func (mixedMode) ID() domain.ModeID { return domain.ModeMixed }
func (mixedMode) predicates(now time.Time) []domain.Predicate {
	return append(dueMode{}.predicates(now), newMode{}.predicates(now)...)
}
func (mixedMode) order() domain.SortOrder { return domain.SortDueAsc }

type capabilityMode struct {
	id  domain.ModeID
	cap domain.Capability
}

func (m capabilityMode) ID() domain.ModeID { return m.id }
func (m capabilityMode) predicates(time.Time) []domain.Predicate {
	return []domain.Predicate{{Kind: domain.PredicateCapable, Capability: m.cap}}
}
func (capabilityMode) order() domain.SortOrder { return domain.SortRandom }

type autoplayMode struct {
	learnedOnly bool
}

func (m autoplayMode) ID() domain.ModeID {
	if m.learnedOnly {
		return domain.ModeAutoplayLearned
	}
	return domain.ModeAutoplayAll
}
func (m autoplayMode) predicates(time.Time) []domain.Predicate {
	if m.learnedOnly {
		return []domain.Predicate{{Kind: domain.PredicateNotNew}}
	}
	return []domain.Predicate{{Kind: domain.PredicateUnfiltered}}
}
func (autoplayMode) order() domain.SortOrder { return domain.SortPosition }

// ParseMode resolves a mode id to its strategy.
func ParseMode(id domain.ModeID) (Mode, error) {
	switch id {
	case domain.ModeNew:
		return newMode{}, nil
	case domain.ModeDue:
		return dueMode{}, nil
	case domain.ModeHard:
		return hardMode{}, nil
	case domain.ModeAllReview:
		return allReviewMode{}, nil
	case domain.ModeMixed:
		return mixedMode{}, nil
	case domain.ModeAutoplayAll:
		return autoplayMode{}, nil
	case domain.ModeAutoplayLearned:
		return autoplayMode{learnedOnly: true}, nil
	}
	if c, ok := domain.CapabilityForMode(id); ok {
		return capabilityMode{id: id, cap: c}, nil
	}
	return nil, domain.NewValidationError("mode", fmt.Sprintf("unknown mode %q", id))
}

// Components returns the modes a batch of m is filled from, in priority
// order. Only mixed has more than one.
func Components(m Mode) []Mode {
	if _, ok := m.(mixedMode); ok {
		return []Mode{dueMode{}, newMode{}}
	}
	return []Mode{m}
}
