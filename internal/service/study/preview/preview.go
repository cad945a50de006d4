package preview

import (
	"time"

	"github.com/heartmarshall/myenglish-study/internal/domain"
	"github.com/heartmarshall/myenglish-study/internal/service/study/memory"
	"github.com/heartmarshall/myenglish-study/internal/service/study/scoring"
)

// SimulatedOutcome is what one rating would do to an item.
type SimulatedOutcome struct {
	Outcome         domain.Outcome
	Interval        int
	IntervalMinutes int
	MasteryPercent  float64
	MemoryPower     int
	Points          int
	Status          domain.ProgressStatus
	DueTime         time.Time
}

// Engine runs the memory model for every rating without persisting anything.
type Engine struct {
	model  *memory.Model
	scorer *scoring.Scorer
}

// NewEngine creates a preview Engine.
func NewEngine(model *memory.Model, scorer *scoring.Scorer) *Engine {
	return &Engine{model: model, scorer: scorer}
}

// Simulate returns the outcome of each rating 0..7 applied to state at now.
// state is never modified.
func (e *Engine) Simulate(state domain.ProgressState, now time.Time) map[domain.QualityRating]SimulatedOutcome {
	out := make(map[domain.QualityRating]SimulatedOutcome, len(domain.AllQualities))

	for _, q := range domain.AllQualities {
		next, res := e.model.Transition(state.Clone(), q, now)

		var due time.Time
		if next.DueTime != nil {
			due = *next.DueTime
		}

		out[q] = SimulatedOutcome{
			Outcome:         res.Outcome,
			Interval:        next.Interval,
			IntervalMinutes: int(res.IntervalDuration / time.Minute),
			MasteryPercent:  next.Mastery * 100,
			MemoryPower:     next.MemoryPower(),
			Points: e.scorer.Points(q, scoring.StreakContext{
				CorrectStreak: next.CorrectStreak,
				FirstExposure: res.FirstExposure,
			}),
			Status:  next.Status,
			DueTime: due,
		}
	}

	return out
}
