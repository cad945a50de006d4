package study

import (
	"context"

	"github.com/google/uuid"

	"github.com/heartmarshall/myenglish-study/internal/domain"
	"github.com/heartmarshall/myenglish-study/internal/service/study/preview"
	"github.com/heartmarshall/myenglish-study/pkg/ctxutil"
)

// Simulate previews every rating against the caller's stored progress of
// one item. Nothing is written.
func (s *Service) Simulate(ctx context.Context, input SimulateInput) (map[domain.QualityRating]preview.SimulatedOutcome, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	rows, err := s.progress.GetByItemIDs(ctx, userID, input.LearningMode, []uuid.UUID{input.ItemID})
	if err != nil {
		return nil, domain.NewPersistenceError("load progress", err)
	}

	state := domain.NewProgressState(userID, input.ItemID, input.LearningMode, s.model.Params().DefaultEase)
	if len(rows) > 0 {
		state = rows[0]
	}

	return s.preview.Simulate(state, s.clock.Now()), nil
}
