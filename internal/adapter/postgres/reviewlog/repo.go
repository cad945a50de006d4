// Package reviewlog implements the append-only review log using PostgreSQL.
package reviewlog

import (
	"context"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/myenglish-study/internal/adapter/postgres"
	"github.com/heartmarshall/myenglish-study/internal/domain"
)

// Repo provides review log persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new review log repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// SQL constants
// ---------------------------------------------------------------------------

const createSQL = `
INSERT INTO review_log (id, user_id, item_id, session_id, learning_mode, quality, outcome,
                        duration_ms, resulting_interval, resulting_mastery, reviewed_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

const statsByItemIDsSQL = `
SELECT item_id,
       count(*)                                 AS total,
       count(*) FILTER (WHERE outcome = 'CORRECT') AS correct
FROM review_log
WHERE user_id = $1 AND learning_mode = $2 AND item_id = ANY($3::uuid[])
GROUP BY item_id`

// ---------------------------------------------------------------------------
// Operations
// ---------------------------------------------------------------------------

// Create appends one entry. Entries are never updated.
func (r *Repo) Create(ctx context.Context, e *domain.ReviewLogEntry) error {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	_, err := querier.Exec(ctx, createSQL,
		e.ID,
		e.UserID,
		e.ItemID,
		e.SessionID,
		string(e.LearningMode),
		int16(e.Quality),
		string(e.Outcome),
		e.DurationMs,
		e.ResultingInterval,
		e.ResultingMastery,
		e.ReviewedAt.UTC().Truncate(time.Microsecond),
	)
	if err != nil {
		return postgres.MapError(err, "review_log", e.ID)
	}
	return nil
}

type statsRow struct {
	ItemID  uuid.UUID `db:"item_id"`
	Total   int       `db:"total"`
	Correct int       `db:"correct"`
}

// StatsByItemIDs returns review counters per item. Items without reviews are
// absent from the map. Memory power is filled in by the caller, which holds
// the current progress.
func (r *Repo) StatsByItemIDs(ctx context.Context, userID uuid.UUID, mode domain.LearningMode, itemIDs []uuid.UUID) (map[uuid.UUID]domain.ItemStats, error) {
	out := make(map[uuid.UUID]domain.ItemStats, len(itemIDs))
	if len(itemIDs) == 0 {
		return out, nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.db)

	var rows []statsRow
	if err := pgxscan.Select(ctx, querier, &rows, statsByItemIDsSQL, userID, string(mode), itemIDs); err != nil {
		return nil, postgres.MapError(err, "review_log", userID)
	}

	for _, row := range rows {
		out[row.ItemID] = domain.NewItemStats(row.Total, row.Correct, nil)
	}
	return out, nil
}
