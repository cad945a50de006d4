package domain

import (
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ScopeKind selects how a scope picks containers.
type ScopeKind string

const (
	ScopeAll    ScopeKind = "all"
	ScopeSingle ScopeKind = "single"
	ScopeList   ScopeKind = "list"
)

// ScopeDescriptor picks the containers a session studies. It is always
// intersected with the user's accessible set before use.
type ScopeDescriptor struct {
	Kind         ScopeKind   `json:"kind"`
	ContainerIDs []uuid.UUID `json:"container_ids,omitempty"`
}

// AllScope returns a scope over every accessible container.
func AllScope() ScopeDescriptor { return ScopeDescriptor{Kind: ScopeAll} }

// SingleScope returns a scope over one container.
func SingleScope(id uuid.UUID) ScopeDescriptor {
	return ScopeDescriptor{Kind: ScopeSingle, ContainerIDs: []uuid.UUID{id}}
}

// ListScope returns a scope over an explicit list of containers.
func ListScope(ids ...uuid.UUID) ScopeDescriptor {
	return ScopeDescriptor{Kind: ScopeList, ContainerIDs: ids}
}

// Validate checks the shape of the scope, not access to it.
func (s ScopeDescriptor) Validate() error {
	switch s.Kind {
	case ScopeAll:
		if len(s.ContainerIDs) > 0 {
			return &InvalidScopeError{Reason: "scope 'all' must not list containers"}
		}
	case ScopeSingle:
		if len(s.ContainerIDs) != 1 {
			return &InvalidScopeError{Reason: "scope 'single' requires exactly one container"}
		}
	case ScopeList:
		if len(s.ContainerIDs) == 0 {
			return &InvalidScopeError{Reason: "scope 'list' requires at least one container"}
		}
	default:
		return &InvalidScopeError{Reason: "unknown scope kind"}
	}
	for _, id := range s.ContainerIDs {
		if id == uuid.Nil {
			return &InvalidScopeError{Reason: "container id must not be empty"}
		}
	}
	return nil
}

// Key is a stable identity for the scope, independent of container order.
func (s ScopeDescriptor) Key() string {
	if s.Kind == ScopeAll || len(s.ContainerIDs) == 0 {
		return string(ScopeAll)
	}
	ids := make([]string, 0, len(s.ContainerIDs))
	for _, id := range s.ContainerIDs {
		ids = append(ids, id.String())
	}
	sort.Strings(ids)
	ids = slices.Compact(ids)
	return strings.Join(ids, ",")
}

// SessionRecord is the persisted state of one learning session.
type SessionRecord struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	LearningMode     LearningMode
	ModeConfigID     ModeID
	Scope            ScopeDescriptor
	TotalItems       int
	ProcessedItemIDs []uuid.UUID
	CorrectCount     int
	IncorrectCount   int
	AmbiguousCount   int
	PointsEarned     int
	Status           SessionStatus
	StartedAt        time.Time
	CompletedAt      *time.Time
}

// ProcessedCount is the number of distinct items answered in this session.
func (s *SessionRecord) ProcessedCount() int { return len(s.ProcessedItemIDs) }

// IsActive reports whether the session still accepts batches and answers.
func (s *SessionRecord) IsActive() bool { return s.Status == SessionStatusActive }

// HasProcessed reports whether itemID was already answered in this session.
func (s *SessionRecord) HasProcessed(itemID uuid.UUID) bool {
	return slices.Contains(s.ProcessedItemIDs, itemID)
}

// SessionCounters is the atomic delta applied to a session after one answer.
type SessionCounters struct {
	ItemID    uuid.UUID
	Correct   int
	Incorrect int
	Ambiguous int
	Points    int
}

// CountersFor returns the counter delta for one classified answer.
func CountersFor(itemID uuid.UUID, outcome Outcome, points int) SessionCounters {
	c := SessionCounters{ItemID: itemID, Points: points}
	switch outcome {
	case OutcomeCorrect:
		c.Correct = 1
	case OutcomeIncorrect:
		c.Incorrect = 1
	default:
		c.Ambiguous = 1
	}
	return c
}
