package study

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/myenglish-study/internal/domain"
	"github.com/heartmarshall/myenglish-study/internal/service/study/selector"
	"github.com/heartmarshall/myenglish-study/pkg/ctxutil"
)

// StartSession counts the candidates for mode over scope and opens a new
// session. An ACTIVE session for the same learning mode and scope is
// completed first; sessions over other scopes stay resumable.
//
// An empty selection is returned as *domain.NoCandidatesError.
func (s *Service) StartSession(ctx context.Context, input StartSessionInput) (*domain.SessionRecord, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	mode, err := selector.ParseMode(input.Mode)
	if err != nil {
		return nil, err
	}

	query, err := s.selector.Select(ctx, userID, input.LearningMode, input.Scope, mode, nil)
	if err != nil {
		return nil, fmt.Errorf("select candidates: %w", err)
	}

	total, err := s.content.CountCandidates(ctx, query)
	if err != nil {
		return nil, domain.NewPersistenceError("count candidates", err)
	}
	if total == 0 {
		s.log.InfoContext(ctx, "no candidates for session",
			slog.String("user_id", userID.String()),
			slog.String("mode", string(mode.ID())),
		)
		return nil, &domain.NoCandidatesError{Mode: mode.ID()}
	}

	now := s.clock.Now()
	session := &domain.SessionRecord{
		ID:               uuid.New(),
		UserID:           userID,
		LearningMode:     input.LearningMode,
		ModeConfigID:     mode.ID(),
		Scope:            input.Scope,
		TotalItems:       total,
		ProcessedItemIDs: []uuid.UUID{},
		Status:           domain.SessionStatusActive,
		StartedAt:        now,
	}

	var replaced int
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		n, err := s.sessions.CompleteActiveForScope(txCtx, userID, input.LearningMode, input.Scope.Key(), now)
		if err != nil {
			return fmt.Errorf("complete previous session: %w", err)
		}
		replaced = n
		if err := s.sessions.Create(txCtx, session); err != nil {
			return fmt.Errorf("create session: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, domain.NewPersistenceError("start session", err)
	}

	s.log.InfoContext(ctx, "session started",
		slog.String("user_id", userID.String()),
		slog.String("session_id", session.ID.String()),
		slog.String("learning_mode", string(session.LearningMode)),
		slog.String("mode", string(session.ModeConfigID)),
		slog.Int("total_items", total),
		slog.Int("replaced", replaced),
	)

	return session, nil
}

// GetActiveSession returns the most recently started ACTIVE session for the
// learning mode, or nil if none.
func (s *Service) GetActiveSession(ctx context.Context, input GetActiveSessionInput) (*domain.SessionRecord, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	session, err := s.sessions.GetActive(ctx, userID, input.LearningMode)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, domain.NewPersistenceError("get active session", err)
	}
	return session, nil
}

// EndSession marks the session COMPLETED. Ending a completed session is a no-op.
func (s *Service) EndSession(ctx context.Context, input EndSessionInput) (*domain.SessionRecord, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	session, err := s.loadSession(ctx, userID, input.SessionID)
	if err != nil {
		return nil, err
	}
	if !session.IsActive() {
		return session, nil
	}

	completed, err := s.complete(ctx, userID, session.ID)
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "session ended",
		slog.String("user_id", userID.String()),
		slog.String("session_id", session.ID.String()),
		slog.Int("processed", completed.ProcessedCount()),
		slog.Int("points", completed.PointsEarned),
	)

	return completed, nil
}

// CompleteStaleSessions completes ACTIVE sessions started more than
// olderThan ago. It runs outside any user context.
func (s *Service) CompleteStaleSessions(ctx context.Context, olderThan time.Duration) (int, error) {
	if olderThan <= 0 {
		return 0, domain.NewValidationError("older_than", "must be positive")
	}

	now := s.clock.Now()
	n, err := s.sessions.CompleteStale(ctx, now.Add(-olderThan), now)
	if err != nil {
		return 0, domain.NewPersistenceError("complete stale sessions", err)
	}

	s.log.InfoContext(ctx, "stale sessions completed",
		slog.Int("count", n),
		slog.Duration("older_than", olderThan),
	)
	return n, nil
}

// complete is idempotent at the repository level: a session completed by a
// concurrent request is returned as is.
func (s *Service) complete(ctx context.Context, userID, sessionID uuid.UUID) (*domain.SessionRecord, error) {
	completed, err := s.sessions.Complete(ctx, userID, sessionID, s.clock.Now())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, domain.NewPersistenceError("complete session", err)
	}
	return completed, nil
}
