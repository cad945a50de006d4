package domain

import (
	"time"

	"github.com/google/uuid"
)

// ProgressState is the memory state of one item for one user in one learning mode.
type ProgressState struct {
	UserID       uuid.UUID
	ItemID       uuid.UUID
	LearningMode LearningMode

	Status      ProgressStatus
	CustomState string

	Mastery         float64
	Repetitions     int
	Interval        int
	PreciseInterval float64 // days; sub-day values encode minute-level steps
	EasinessFactor  float64

	CorrectStreak   int
	IncorrectStreak int
	HardStreak      int
	LearningReps    int

	DueTime        *time.Time
	FirstSeenAt    *time.Time
	LastReviewedAt *time.Time

	UpdatedAt time.Time
}

// NewProgressState returns the state of an item the user has never seen.
func NewProgressState(userID, itemID uuid.UUID, mode LearningMode, ease float64) ProgressState {
	return ProgressState{
		UserID:         userID,
		ItemID:         itemID,
		LearningMode:   mode,
		Status:         ProgressStatusNew,
		EasinessFactor: ease,
	}
}

// IsDue reports whether the item is eligible for the due selection at now.
func (p ProgressState) IsDue(now time.Time) bool {
	return p.DueTime != nil && !p.DueTime.After(now)
}

// MemoryPower is mastery as a 0..100 percentage.
func (p ProgressState) MemoryPower() int {
	return MasteryPercent(p.Mastery)
}

// MasteryPercent converts a [0,1] mastery value to a rounded percentage.
func MasteryPercent(m float64) int {
	if m <= 0 {
		return 0
	}
	if m >= 1 {
		return 100
	}
	return int(m*100 + 0.5)
}

// Clone returns a deep copy. Timestamp pointers are not shared.
func (p ProgressState) Clone() ProgressState {
	c := p
	c.DueTime = cloneTime(p.DueTime)
	c.FirstSeenAt = cloneTime(p.FirstSeenAt)
	c.LastReviewedAt = cloneTime(p.LastReviewedAt)
	return c
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

// ReviewOutcome describes what one transition did.
type ReviewOutcome struct {
	Outcome          Outcome
	Quality          QualityRating
	PrevInterval     int
	NewInterval      int
	PrevMastery      float64
	NewMastery       float64
	PrevStatus       ProgressStatus
	NewStatus        ProgressStatus
	FirstExposure    bool
	IntervalDuration time.Duration
}

// ReviewLogEntry is an append-only record of one answer.
type ReviewLogEntry struct {
	ID                uuid.UUID
	UserID            uuid.UUID
	ItemID            uuid.UUID
	SessionID         *uuid.UUID
	LearningMode      LearningMode
	Quality           QualityRating
	Outcome           Outcome
	DurationMs        *int
	ResultingInterval int
	ResultingMastery  float64
	ReviewedAt        time.Time
}

// ItemStats summarises an item's review history.
type ItemStats struct {
	TotalReviews   int
	CorrectReviews int
	SuccessRate    float64 // 0..100
	MemoryPower    int
	LastReviewedAt *time.Time
}

// NewItemStats derives the success rate from raw counters.
func NewItemStats(total, correct int, p *ProgressState) ItemStats {
	s := ItemStats{TotalReviews: total, CorrectReviews: correct}
	if total > 0 {
		s.SuccessRate = float64(correct) * 100 / float64(total)
	}
	if p != nil {
		s.MemoryPower = p.MemoryPower()
		s.LastReviewedAt = p.LastReviewedAt
	}
	return s
}

// ItemSummary is the content-store view of one item.
type ItemSummary struct {
	ID           uuid.UUID
	ContainerID  uuid.UUID
	Position     int
	Prompt       string
	Answer       string
	Capabilities CapabilitySet
}
