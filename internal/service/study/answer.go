package study

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/myenglish-study/internal/domain"
	"github.com/heartmarshall/myenglish-study/internal/service/study/scoring"
	"github.com/heartmarshall/myenglish-study/internal/service/study/selector"
	"github.com/heartmarshall/myenglish-study/pkg/ctxutil"
)

// SubmitAnswer applies one answer: it transitions the item's progress,
// appends a review log entry, awards points and updates the session
// counters in a single transaction.
func (s *Service) SubmitAnswer(ctx context.Context, input SubmitAnswerInput) (*AnswerResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	session, err := s.loadActiveSession(ctx, userID, input.SessionID)
	if err != nil {
		return nil, err
	}

	res, err := s.processAnswer(ctx, session, input.AnswerInput)
	if err != nil {
		return nil, err
	}

	s.attachStats(ctx, session, res)

	return res, nil
}

// SubmitAnswers applies a group of answers in order, each in its own
// transaction. On failure the results of the answers already persisted are
// returned together with the error.
func (s *Service) SubmitAnswers(ctx context.Context, input SubmitAnswersInput) ([]*AnswerResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(s.cfg.MaxBatchSize); err != nil {
		return nil, err
	}

	session, err := s.loadActiveSession(ctx, userID, input.SessionID)
	if err != nil {
		return nil, err
	}

	results := make([]*AnswerResult, 0, len(input.Answers))
	for _, a := range input.Answers {
		res, err := s.processAnswer(ctx, session, a)
		if err != nil {
			return results, fmt.Errorf("answer for item %s: %w", a.ItemID, err)
		}
		results = append(results, res)
	}

	s.attachStats(ctx, session, results...)

	return results, nil
}

func (s *Service) processAnswer(ctx context.Context, session *domain.SessionRecord, a AnswerInput) (*AnswerResult, error) {
	q := a.Quality.Clamp()
	now := s.clock.Now()
	var res AnswerResult

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.checkInScope(txCtx, session, a.ItemID); err != nil {
			return err
		}

		current, err := s.progress.GetForUpdate(txCtx, session.UserID, a.ItemID, session.LearningMode)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			fresh := domain.NewProgressState(session.UserID, a.ItemID, session.LearningMode, s.model.Params().DefaultEase)
			current = &fresh
		case err != nil:
			return fmt.Errorf("load progress: %w", err)
		}

		next, review := s.model.Transition(*current, q, now)
		next.UpdatedAt = now
		if err := s.progress.Upsert(txCtx, &next); err != nil {
			return fmt.Errorf("save progress: %w", err)
		}

		sessionID := session.ID
		entry := &domain.ReviewLogEntry{
			ID:                uuid.New(),
			UserID:            session.UserID,
			ItemID:            a.ItemID,
			SessionID:         &sessionID,
			LearningMode:      session.LearningMode,
			Quality:           q,
			Outcome:           review.Outcome,
			DurationMs:        a.DurationMs,
			ResultingInterval: next.Interval,
			ResultingMastery:  next.Mastery,
			ReviewedAt:        now,
		}
		if err := s.reviews.Create(txCtx, entry); err != nil {
			return fmt.Errorf("append review log: %w", err)
		}

		points := s.scorer.Points(q, scoring.StreakContext{
			CorrectStreak: next.CorrectStreak,
			SessionID:     session.ID.String(),
			FirstExposure: review.FirstExposure,
		})
		total, err := s.points.AwardPoints(txCtx, session.UserID, points, pointsReason(review.Outcome), a.ItemID)
		if err != nil {
			return fmt.Errorf("award points: %w", err)
		}

		updated, err := s.sessions.RecordAnswer(txCtx, session.UserID, session.ID, domain.CountersFor(a.ItemID, review.Outcome, points))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrSessionNotActive
			}
			return fmt.Errorf("record answer: %w", err)
		}

		res = AnswerResult{
			Session:     updated,
			ItemID:      a.ItemID,
			Review:      review,
			Progress:    next,
			Points:      points,
			TotalPoints: total,
		}
		return nil
	})
	if err != nil {
		return nil, domain.NewPersistenceError("submit answer", err)
	}

	s.log.InfoContext(ctx, "answer recorded",
		slog.String("user_id", session.UserID.String()),
		slog.String("session_id", session.ID.String()),
		slog.String("item_id", a.ItemID.String()),
		slog.Int("quality", int(q)),
		slog.String("outcome", string(res.Review.Outcome)),
		slog.Int("points", res.Points),
	)

	return &res, nil
}

// checkInScope rejects items outside the session's candidate pool: its scope
// resolved against the accessible containers, minus archived containers and
// ignored items.
func (s *Service) checkInScope(ctx context.Context, session *domain.SessionRecord, itemID uuid.UUID) error {
	mode, err := selector.ParseMode(session.ModeConfigID)
	if err != nil {
		return fmt.Errorf("session %s: stored mode: %w", session.ID, err)
	}

	query, err := s.selector.Select(ctx, session.UserID, session.LearningMode, session.Scope, mode, nil)
	if err != nil {
		return fmt.Errorf("resolve scope: %w", err)
	}

	ok, err := s.content.InScope(ctx, query, itemID)
	if err != nil {
		return fmt.Errorf("check item scope: %w", err)
	}
	if !ok {
		return domain.NewValidationError("item_id", "item is not part of the session")
	}
	return nil
}

// attachStats fills per-item statistics after the answers are committed.
// A failure here only degrades the feedback; the answers stay recorded.
func (s *Service) attachStats(ctx context.Context, session *domain.SessionRecord, results ...*AnswerResult) {
	ids := make([]uuid.UUID, len(results))
	for i, r := range results {
		ids[i] = r.ItemID
	}

	stats, err := s.reviews.StatsByItemIDs(ctx, session.UserID, session.LearningMode, ids)
	if err != nil {
		s.log.WarnContext(ctx, "item stats unavailable",
			slog.String("session_id", session.ID.String()),
			slog.String("error", err.Error()),
		)
	}

	for _, r := range results {
		st := stats[r.ItemID]
		r.Stats = domain.NewItemStats(st.TotalReviews, st.CorrectReviews, &r.Progress)
	}
}

func pointsReason(o domain.Outcome) string {
	return "study_answer_" + strings.ToLower(string(o))
}
