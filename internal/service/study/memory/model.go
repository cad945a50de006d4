package memory

import (
	"math"
	"time"

	"github.com/heartmarshall/myenglish-study/internal/domain"
)

// Parameters holds the memory model configuration.
type Parameters struct {
	DefaultEase       float64
	MinEase           float64
	MaxEase           float64
	MaxIntervalDays   int
	FirstIntervalDays int
	LapseIntervalDays int
	RelearnDelay      time.Duration

	GraduationReps      int
	HardStreakThreshold int
	RecoveryStreak      int

	CorrectThreshold       domain.QualityRating
	VagueLow               domain.QualityRating
	VagueHigh              domain.QualityRating
	EasyThreshold          domain.QualityRating
	LegacyCorrectThreshold int
}

// DefaultParameters returns the defaults used when no config overrides them.
func DefaultParameters() Parameters {
	return Parameters{
		DefaultEase:            2.5,
		MinEase:                1.3,
		MaxEase:                3.5,
		MaxIntervalDays:        365,
		FirstIntervalDays:      1,
		LapseIntervalDays:      1,
		RelearnDelay:           10 * time.Minute,
		GraduationReps:         2,
		HardStreakThreshold:    3,
		RecoveryStreak:         2,
		CorrectThreshold:       4,
		VagueLow:               2,
		VagueHigh:              3,
		EasyThreshold:          7,
		LegacyCorrectThreshold: 3,
	}
}

// Ease adjustments per outcome.
const (
	easeStreakBonus  = 0.10
	easeEasyBonus    = 0.15
	easeVaguePenalty = 0.05
	easeLapsePenalty = 0.20
)

// Mastery curve tuning.
const (
	masteryBaseGain     = 0.20
	masteryMinGain      = 0.05
	masteryMaxGain      = 0.50
	masteryStreakWeight = 0.10
	masteryStreakCap    = 5
	masteryVagueDecay   = 0.85
	masteryLapseDecay   = 0.60
)

// Model is the memory model. It is a pure value; Transition never does I/O
// and never fails.
type Model struct {
	params Parameters
}

// New creates a Model.
func New(params Parameters) *Model {
	return &Model{params: params}
}

// Params returns the model configuration.
func (m *Model) Params() Parameters { return m.params }

// Classify buckets a rating on the internal 0..7 scale.
func (m *Model) Classify(q domain.QualityRating) domain.Outcome {
	q = q.Clamp()
	switch {
	case q >= m.params.CorrectThreshold:
		return domain.OutcomeCorrect
	case q >= m.params.VagueLow && q <= m.params.VagueHigh:
		return domain.OutcomeVague
	default:
		return domain.OutcomeIncorrect
	}
}

// ClassifyLegacy buckets a rating on the legacy 0..5 scale: at or above the
// legacy threshold is correct, the rating just below it is vague.
func (m *Model) ClassifyLegacy(q int) domain.Outcome {
	switch {
	case q >= m.params.LegacyCorrectThreshold:
		return domain.OutcomeCorrect
	case q == m.params.LegacyCorrectThreshold-1:
		return domain.OutcomeVague
	default:
		return domain.OutcomeIncorrect
	}
}

// Transition applies one answer of quality q at now to state. The input is
// not modified; the returned state shares no pointers with it.
func (m *Model) Transition(state domain.ProgressState, q domain.QualityRating, now time.Time) (domain.ProgressState, domain.ReviewOutcome) {
	p := m.params
	q = q.Clamp()
	outcome := m.Classify(q)

	next := state.Clone()
	if next.Status == "" {
		next.Status = domain.ProgressStatusNew
	}
	if next.EasinessFactor < p.MinEase {
		next.EasinessFactor = p.DefaultEase
	}
	next.Interval = max(next.Interval, 0)
	next.Mastery = clamp01(next.Mastery)

	prevStatus := next.Status
	prevInterval := next.Interval
	prevMastery := next.Mastery
	prevCorrectStreak := next.CorrectStreak

	precise := 0.0

	switch outcome {
	case domain.OutcomeCorrect:
		next.Repetitions++
		next.CorrectStreak++
		next.IncorrectStreak = 0

		recovering := prevStatus == domain.ProgressStatusHard && next.CorrectStreak >= p.RecoveryStreak
		switch {
		case prevStatus == domain.ProgressStatusHard && !recovering:
			next.Interval = p.LapseIntervalDays
		case next.Repetitions == 1:
			next.Interval = max(p.FirstIntervalDays, next.Interval)
		default:
			next.Interval = max(1, int(math.Round(float64(next.Interval)*next.EasinessFactor)))
		}
		next.Interval = min(next.Interval, p.MaxIntervalDays)

		bump := 0.0
		if prevCorrectStreak > 0 {
			bump = easeStreakBonus
		}
		if q >= p.EasyThreshold {
			bump = easeEasyBonus
		}
		next.EasinessFactor = math.Min(p.MaxEase, next.EasinessFactor+bump)

		switch {
		case prevStatus == domain.ProgressStatusHard && !recovering:
		case next.Repetitions > p.GraduationReps:
			next.Status = domain.ProgressStatusReview
		default:
			next.Status = domain.ProgressStatusLearning
		}
		precise = float64(next.Interval)

	case domain.OutcomeVague:
		next.CorrectStreak = 0
		next.Interval = max(1, next.Interval/2)
		next.EasinessFactor = math.Max(p.MinEase, next.EasinessFactor-easeVaguePenalty)
		if prevStatus == domain.ProgressStatusNew {
			next.Status = domain.ProgressStatusLearning
		}
		precise = float64(next.Interval)

	default:
		next.IncorrectStreak++
		next.CorrectStreak = 0
		next.Repetitions = 0
		next.Interval = p.LapseIntervalDays
		next.EasinessFactor = math.Max(p.MinEase, next.EasinessFactor-easeLapsePenalty)
		switch {
		case next.IncorrectStreak >= p.HardStreakThreshold:
			next.Status = domain.ProgressStatusHard
		case prevStatus != domain.ProgressStatusHard:
			next.Status = domain.ProgressStatusLearning
		}
		precise = float64(next.Interval)
		if p.RelearnDelay > 0 {
			precise = p.RelearnDelay.Hours() / 24
		}
	}

	switch {
	case prevStatus == domain.ProgressStatusNew || prevStatus == domain.ProgressStatusLearning:
		next.LearningReps++
	case next.Status == domain.ProgressStatusLearning:
		next.LearningReps = 0
	}
	if next.Status == domain.ProgressStatusHard {
		next.HardStreak++
	} else {
		next.HardStreak = 0
	}

	next.Mastery = m.nextMastery(next, outcome, prevMastery)
	next.PreciseInterval = precise

	wait := daysToDuration(precise)
	due := now.Add(wait)
	reviewed := now
	next.DueTime = &due
	next.LastReviewedAt = &reviewed
	firstExposure := state.FirstSeenAt == nil
	if firstExposure {
		seen := now
		next.FirstSeenAt = &seen
	}

	return next, domain.ReviewOutcome{
		Outcome:          outcome,
		Quality:          q,
		PrevInterval:     prevInterval,
		NewInterval:      next.Interval,
		PrevMastery:      prevMastery,
		NewMastery:       next.Mastery,
		PrevStatus:       prevStatus,
		NewStatus:        next.Status,
		FirstExposure:    firstExposure,
		IntervalDuration: wait,
	}
}

// nextMastery moves mastery toward 1 on success and decays it otherwise.
// Each step is a fraction of the remaining distance, so the curve is
// continuous and bounded.
func (m *Model) nextMastery(s domain.ProgressState, outcome domain.Outcome, prev float64) float64 {
	switch outcome {
	case domain.OutcomeCorrect:
		streak := min(max(s.CorrectStreak-1, 0), masteryStreakCap)
		gain := masteryBaseGain * (s.EasinessFactor / m.params.DefaultEase) * (1 + masteryStreakWeight*float64(streak))
		gain = math.Min(masteryMaxGain, math.Max(masteryMinGain, gain))
		return clamp01(prev + gain*(1-prev))
	case domain.OutcomeVague:
		return clamp01(prev * masteryVagueDecay)
	default:
		return clamp01(prev * masteryLapseDecay)
	}
}

func daysToDuration(days float64) time.Duration {
	return time.Duration(days * float64(24*time.Hour))
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
