// Package points implements the gamification ledger: an append-only list of
// awards plus a running total per user.
package points

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/myenglish-study/internal/adapter/postgres"
)

// Repo provides points persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new points repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

const insertLedgerSQL = `
INSERT INTO points_ledger (id, user_id, amount, reason, item_id)
VALUES ($1, $2, $3, $4, $5)`

const addToTotalSQL = `
INSERT INTO user_points (user_id, total, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (user_id) DO UPDATE SET
    total      = user_points.total + EXCLUDED.total,
    updated_at = now()
RETURNING total`

// AwardPoints appends a ledger entry and adds amount to the user's total in
// one round trip. Returns the new total.
func (r *Repo) AwardPoints(ctx context.Context, userID uuid.UUID, amount int, reason string, itemID uuid.UUID) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	var item *uuid.UUID
	if itemID != uuid.Nil {
		item = &itemID
	}

	batch := &pgx.Batch{}
	batch.Queue(insertLedgerSQL, uuid.New(), userID, amount, reason, item)
	batch.Queue(addToTotalSQL, userID, amount)

	br := querier.SendBatch(ctx, batch)
	defer br.Close()

	if _, err := br.Exec(); err != nil {
		return 0, postgres.MapError(err, "points ledger", userID)
	}

	var total int
	if err := br.QueryRow().Scan(&total); err != nil {
		return 0, postgres.MapError(err, "user points", userID)
	}
	return total, nil
}
