package app

import (
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/myenglish-study/internal/adapter/postgres"
	"github.com/heartmarshall/myenglish-study/internal/adapter/postgres/access"
	"github.com/heartmarshall/myenglish-study/internal/adapter/postgres/content"
	"github.com/heartmarshall/myenglish-study/internal/adapter/postgres/points"
	"github.com/heartmarshall/myenglish-study/internal/adapter/postgres/progress"
	"github.com/heartmarshall/myenglish-study/internal/adapter/postgres/reviewlog"
	"github.com/heartmarshall/myenglish-study/internal/adapter/postgres/session"
	"github.com/heartmarshall/myenglish-study/internal/config"
	"github.com/heartmarshall/myenglish-study/internal/domain"
	"github.com/heartmarshall/myenglish-study/internal/service/study"
	"github.com/heartmarshall/myenglish-study/internal/service/study/memory"
	"github.com/heartmarshall/myenglish-study/internal/service/study/scoring"
	"github.com/heartmarshall/myenglish-study/internal/service/study/selector"
)

// NewStudyService wires the session engine onto PostgreSQL.
func NewStudyService(logger *slog.Logger, cfg *config.Config, pool *pgxpool.Pool) (*study.Service, error) {
	now := func() time.Time { return time.Now().UTC() }

	return study.NewService(logger, study.Deps{
		Progress: progress.New(pool),
		Reviews:  reviewlog.New(pool),
		Sessions: session.New(pool),
		Content:  content.New(pool),
		Points:   points.New(pool),
		Selector: selector.New(logger, access.New(pool), now),
		Tx:       postgres.NewTxManager(pool),
		Model:    memory.New(memoryParameters(cfg.SRS)),
		Scorer:   scoring.NewScorer(cfg.SRS.PointsTable),
	}, study.Config{
		DefaultBatchSize: cfg.Study.DefaultBatchSize,
		MaxBatchSize:     cfg.Study.MaxBatchSize,
	})
}

func memoryParameters(c config.SRSConfig) memory.Parameters {
	return memory.Parameters{
		DefaultEase:            c.DefaultEaseFactor,
		MinEase:                c.MinEaseFactor,
		MaxEase:                c.MaxEaseFactor,
		MaxIntervalDays:        c.MaxIntervalDays,
		FirstIntervalDays:      c.FirstIntervalDays,
		LapseIntervalDays:      c.LapseIntervalDays,
		RelearnDelay:           c.RelearnDelay,
		GraduationReps:         c.GraduationReps,
		HardStreakThreshold:    c.HardStreakThreshold,
		RecoveryStreak:         c.RecoveryStreak,
		CorrectThreshold:       domain.QualityRating(c.CorrectThreshold),
		VagueLow:               domain.QualityRating(c.VagueLow),
		VagueHigh:              domain.QualityRating(c.VagueHigh),
		EasyThreshold:          domain.QualityRating(c.EasyThreshold),
		LegacyCorrectThreshold: c.LegacyCorrectThreshold,
	}
}
