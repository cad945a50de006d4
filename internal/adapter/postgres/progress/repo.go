// Package progress implements per-item memory state persistence using
// PostgreSQL. Rows are keyed by (user, learning mode, item).
package progress

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/myenglish-study/internal/adapter/postgres"
	"github.com/heartmarshall/myenglish-study/internal/domain"
)

// Repo provides progress persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new progress repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// SQL constants
// ---------------------------------------------------------------------------

const progressColumns = `user_id, item_id, learning_mode, status, custom_state, mastery,
       repetitions, interval_days, precise_interval, easiness_factor,
       correct_streak, incorrect_streak, hard_streak, learning_reps,
       due_time, first_seen_at, last_reviewed_at, updated_at`

const getForUpdateSQL = `
SELECT ` + progressColumns + `
FROM progress
WHERE user_id = $1 AND item_id = $2 AND learning_mode = $3
FOR UPDATE`

const getByItemIDsSQL = `
SELECT ` + progressColumns + `
FROM progress
WHERE user_id = $1 AND learning_mode = $2 AND item_id = ANY($3::uuid[])`

const upsertSQL = `
INSERT INTO progress (` + progressColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
ON CONFLICT (user_id, learning_mode, item_id) DO UPDATE SET
    status           = EXCLUDED.status,
    custom_state     = EXCLUDED.custom_state,
    mastery          = EXCLUDED.mastery,
    repetitions      = EXCLUDED.repetitions,
    interval_days    = EXCLUDED.interval_days,
    precise_interval = EXCLUDED.precise_interval,
    easiness_factor  = EXCLUDED.easiness_factor,
    correct_streak   = EXCLUDED.correct_streak,
    incorrect_streak = EXCLUDED.incorrect_streak,
    hard_streak      = EXCLUDED.hard_streak,
    learning_reps    = EXCLUDED.learning_reps,
    due_time         = EXCLUDED.due_time,
    first_seen_at    = COALESCE(progress.first_seen_at, EXCLUDED.first_seen_at),
    last_reviewed_at = EXCLUDED.last_reviewed_at,
    updated_at       = EXCLUDED.updated_at`

// ---------------------------------------------------------------------------
// Operations
// ---------------------------------------------------------------------------

// GetForUpdate loads one progress row and locks it until the surrounding
// transaction ends. Returns domain.ErrNotFound if the item was never seen.
func (r *Repo) GetForUpdate(ctx context.Context, userID, itemID uuid.UUID, mode domain.LearningMode) (*domain.ProgressState, error) {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	var row progressRow
	if err := pgxscan.Get(ctx, querier, &row, getForUpdateSQL, userID, itemID, string(mode)); err != nil {
		if pgxscan.NotFound(err) {
			return nil, fmt.Errorf("progress %s: %w", itemID, domain.ErrNotFound)
		}
		return nil, postgres.MapError(err, "progress", itemID)
	}

	p := row.toDomain()
	return &p, nil
}

// GetByItemIDs returns the stored rows among itemIDs. Unseen items are
// simply absent from the result.
func (r *Repo) GetByItemIDs(ctx context.Context, userID uuid.UUID, mode domain.LearningMode, itemIDs []uuid.UUID) ([]domain.ProgressState, error) {
	if len(itemIDs) == 0 {
		return []domain.ProgressState{}, nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.db)

	var rows []progressRow
	if err := pgxscan.Select(ctx, querier, &rows, getByItemIDsSQL, userID, string(mode), itemIDs); err != nil {
		return nil, postgres.MapError(err, "progress", userID)
	}

	out := make([]domain.ProgressState, len(rows))
	for i, row := range rows {
		out[i] = row.toDomain()
	}
	return out, nil
}

// Upsert writes the full state of one item. first_seen_at is never
// overwritten once set. An unknown item yields domain.ErrNotFound.
func (r *Repo) Upsert(ctx context.Context, p *domain.ProgressState) error {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	updatedAt := p.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	_, err := querier.Exec(ctx, upsertSQL,
		p.UserID,
		p.ItemID,
		string(p.LearningMode),
		string(p.Status),
		p.CustomState,
		p.Mastery,
		p.Repetitions,
		p.Interval,
		p.PreciseInterval,
		p.EasinessFactor,
		p.CorrectStreak,
		p.IncorrectStreak,
		p.HardStreak,
		p.LearningReps,
		utcPtr(p.DueTime),
		utcPtr(p.FirstSeenAt),
		utcPtr(p.LastReviewedAt),
		updatedAt.UTC().Truncate(time.Microsecond),
	)
	if err != nil {
		return postgres.MapError(err, "progress", p.ItemID)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Row mapping
// ---------------------------------------------------------------------------

type progressRow struct {
	UserID          uuid.UUID  `db:"user_id"`
	ItemID          uuid.UUID  `db:"item_id"`
	LearningMode    string     `db:"learning_mode"`
	Status          string     `db:"status"`
	CustomState     string     `db:"custom_state"`
	Mastery         float64    `db:"mastery"`
	Repetitions     int        `db:"repetitions"`
	IntervalDays    int        `db:"interval_days"`
	PreciseInterval float64    `db:"precise_interval"`
	EasinessFactor  float64    `db:"easiness_factor"`
	CorrectStreak   int        `db:"correct_streak"`
	IncorrectStreak int        `db:"incorrect_streak"`
	HardStreak      int        `db:"hard_streak"`
	LearningReps    int        `db:"learning_reps"`
	DueTime         *time.Time `db:"due_time"`
	FirstSeenAt     *time.Time `db:"first_seen_at"`
	LastReviewedAt  *time.Time `db:"last_reviewed_at"`
	UpdatedAt       time.Time  `db:"updated_at"`
}

func (r progressRow) toDomain() domain.ProgressState {
	return domain.ProgressState{
		UserID:          r.UserID,
		ItemID:          r.ItemID,
		LearningMode:    domain.LearningMode(r.LearningMode),
		Status:          domain.ProgressStatus(r.Status),
		CustomState:     r.CustomState,
		Mastery:         r.Mastery,
		Repetitions:     r.Repetitions,
		Interval:        r.IntervalDays,
		PreciseInterval: r.PreciseInterval,
		EasinessFactor:  r.EasinessFactor,
		CorrectStreak:   r.CorrectStreak,
		IncorrectStreak: r.IncorrectStreak,
		HardStreak:      r.HardStreak,
		LearningReps:    r.LearningReps,
		DueTime:         r.DueTime,
		FirstSeenAt:     r.FirstSeenAt,
		LastReviewedAt:  r.LastReviewedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC().Truncate(time.Microsecond)
	return &u
}
