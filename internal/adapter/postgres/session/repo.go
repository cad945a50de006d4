// Package session implements the learning session repository using PostgreSQL.
// Counters and the processed set are only ever changed by single UPDATE
// statements, so concurrent answers never lose increments.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/myenglish-study/internal/adapter/postgres"
	"github.com/heartmarshall/myenglish-study/internal/domain"
)

// Repo provides study session persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new session repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// SQL constants
// ---------------------------------------------------------------------------

const sessionColumns = `id, user_id, learning_mode, mode_config_id, scope_kind, scope_container_ids,
       total_items, processed_item_ids, correct_count, incorrect_count, ambiguous_count,
       points_earned, status, started_at, completed_at`

const createSQL = `
INSERT INTO study_sessions (id, user_id, learning_mode, mode_config_id, scope_kind,
                            scope_container_ids, scope_key, total_items, status, started_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 'ACTIVE', $9)`

const getByIDSQL = `
SELECT ` + sessionColumns + `
FROM study_sessions
WHERE id = $1 AND user_id = $2`

const getActiveSQL = `
SELECT ` + sessionColumns + `
FROM study_sessions
WHERE user_id = $1 AND learning_mode = $2 AND status = 'ACTIVE'
ORDER BY started_at DESC
LIMIT 1`

const completeActiveForScopeSQL = `
UPDATE study_sessions
SET status = 'COMPLETED', completed_at = $4
WHERE user_id = $1 AND learning_mode = $2 AND scope_key = $3 AND status = 'ACTIVE'`

const recordAnswerSQL = `
UPDATE study_sessions
SET correct_count      = correct_count + $4,
    incorrect_count    = incorrect_count + $5,
    ambiguous_count    = ambiguous_count + $6,
    points_earned      = points_earned + $7,
    processed_item_ids = CASE
        WHEN $3::uuid = ANY(processed_item_ids) THEN processed_item_ids
        ELSE array_append(processed_item_ids, $3::uuid)
    END
WHERE id = $1 AND user_id = $2 AND status = 'ACTIVE'
RETURNING ` + sessionColumns

const completeSQL = `
UPDATE study_sessions
SET status = 'COMPLETED', completed_at = COALESCE(completed_at, $3)
WHERE id = $1 AND user_id = $2
RETURNING ` + sessionColumns

const completeStaleSQL = `
UPDATE study_sessions
SET status = 'COMPLETED', completed_at = $2
WHERE status = 'ACTIVE' AND started_at < $1`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a session by primary key filtered by user_id.
// Returns domain.ErrNotFound if the session does not exist or belongs to another user.
func (r *Repo) GetByID(ctx context.Context, userID, sessionID uuid.UUID) (*domain.SessionRecord, error) {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	session, err := scanSession(querier.QueryRow(ctx, getByIDSQL, sessionID, userID))
	if err != nil {
		return nil, postgres.MapError(err, "session", sessionID)
	}
	return session, nil
}

// GetActive returns the most recently started ACTIVE session of the user in
// the learning mode. Returns domain.ErrNotFound if there is none.
func (r *Repo) GetActive(ctx context.Context, userID uuid.UUID, mode domain.LearningMode) (*domain.SessionRecord, error) {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	session, err := scanSession(querier.QueryRow(ctx, getActiveSQL, userID, string(mode)))
	if err != nil {
		return nil, postgres.MapError(err, "active session", userID)
	}
	return session, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new ACTIVE session. A second active session for the same
// user, learning mode and scope results in domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, s *domain.SessionRecord) error {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	containerIDs := s.Scope.ContainerIDs
	if containerIDs == nil {
		containerIDs = []uuid.UUID{}
	}

	_, err := querier.Exec(ctx, createSQL,
		s.ID,
		s.UserID,
		string(s.LearningMode),
		string(s.ModeConfigID),
		string(s.Scope.Kind),
		containerIDs,
		s.Scope.Key(),
		s.TotalItems,
		s.StartedAt.UTC().Truncate(time.Microsecond),
	)
	if err != nil {
		return postgres.MapError(err, "session", s.ID)
	}
	return nil
}

// CompleteActiveForScope completes every ACTIVE session of the user with the
// same learning mode and scope key. Returns the number of sessions completed.
func (r *Repo) CompleteActiveForScope(ctx context.Context, userID uuid.UUID, mode domain.LearningMode, scopeKey string, now time.Time) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	ct, err := querier.Exec(ctx, completeActiveForScopeSQL, userID, string(mode), scopeKey, now.UTC())
	if err != nil {
		return 0, postgres.MapError(err, "session scope", scopeKey)
	}
	return int(ct.RowsAffected()), nil
}

// RecordAnswer applies the counter delta and adds the item to the processed
// set in one statement. Returns domain.ErrNotFound if the session does not
// exist or is no longer ACTIVE.
func (r *Repo) RecordAnswer(ctx context.Context, userID, sessionID uuid.UUID, d domain.SessionCounters) (*domain.SessionRecord, error) {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	row := querier.QueryRow(ctx, recordAnswerSQL,
		sessionID, userID, d.ItemID,
		d.Correct, d.Incorrect, d.Ambiguous, d.Points,
	)

	session, err := scanSession(row)
	if err != nil {
		return nil, postgres.MapError(err, "session", sessionID)
	}
	return session, nil
}

// Complete marks the session COMPLETED. Completing an already completed
// session keeps its original completion time.
func (r *Repo) Complete(ctx context.Context, userID, sessionID uuid.UUID, now time.Time) (*domain.SessionRecord, error) {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	session, err := scanSession(querier.QueryRow(ctx, completeSQL, sessionID, userID, now.UTC()))
	if err != nil {
		return nil, postgres.MapError(err, "session", sessionID)
	}
	return session, nil
}

// CompleteStale completes ACTIVE sessions started before startedBefore.
func (r *Repo) CompleteStale(ctx context.Context, startedBefore, now time.Time) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	ct, err := querier.Exec(ctx, completeStaleSQL, startedBefore.UTC(), now.UTC())
	if err != nil {
		return 0, fmt.Errorf("complete stale sessions: %w", err)
	}
	return int(ct.RowsAffected()), nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

// scanSession scans a single session row from pgx.Row.
func scanSession(row pgx.Row) (*domain.SessionRecord, error) {
	var (
		s            domain.SessionRecord
		learningMode string
		modeConfigID string
		scopeKind    string
		containerIDs []uuid.UUID
		status       string
	)

	if err := row.Scan(
		&s.ID, &s.UserID, &learningMode, &modeConfigID, &scopeKind, &containerIDs,
		&s.TotalItems, &s.ProcessedItemIDs, &s.CorrectCount, &s.IncorrectCount, &s.AmbiguousCount,
		&s.PointsEarned, &status, &s.StartedAt, &s.CompletedAt,
	); err != nil {
		return nil, err
	}

	s.LearningMode = domain.LearningMode(learningMode)
	s.ModeConfigID = domain.ModeID(modeConfigID)
	s.Scope = domain.ScopeDescriptor{Kind: domain.ScopeKind(scopeKind)}
	if len(containerIDs) > 0 {
		s.Scope.ContainerIDs = containerIDs
	}
	s.Status = domain.SessionStatus(status)
	s.StartedAt = s.StartedAt.UTC()
	if s.CompletedAt != nil {
		t := s.CompletedAt.UTC()
		s.CompletedAt = &t
	}

	return &s, nil
}
