package study

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/graph-gophers/dataloader/v7"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/myenglish-study/internal/domain"
	"github.com/heartmarshall/myenglish-study/internal/service/study/selector"
	"github.com/heartmarshall/myenglish-study/pkg/ctxutil"
)

// Progress loader batch parameters.
const (
	loaderWait     = 2 * time.Millisecond
	loaderMaxBatch = 100
)

// GetNextBatch returns up to BatchSize unseen candidates of the session.
// Items are not marked processed here; only an answer does that, so a
// reload before answering shows the same items again.
//
// When no candidates remain the session is completed and Done is true.
func (s *Service) GetNextBatch(ctx context.Context, input GetNextBatchInput) (*BatchResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(s.cfg.MaxBatchSize); err != nil {
		return nil, err
	}
	size := input.BatchSize
	if size == 0 {
		size = s.cfg.DefaultBatchSize
	}

	session, err := s.loadActiveSession(ctx, userID, input.SessionID)
	if err != nil {
		return nil, err
	}

	mode, err := selector.ParseMode(session.ModeConfigID)
	if err != nil {
		return nil, fmt.Errorf("session %s: stored mode: %w", session.ID, err)
	}

	ids, err := s.nextCandidates(ctx, session, mode, size)
	if err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		completed, err := s.complete(ctx, userID, session.ID)
		if err != nil {
			return nil, err
		}
		s.log.InfoContext(ctx, "session exhausted",
			slog.String("user_id", userID.String()),
			slog.String("session_id", session.ID.String()),
			slog.Int("processed", completed.ProcessedCount()),
			slog.Int("points", completed.PointsEarned),
		)
		return &BatchResult{Session: completed, Done: true}, nil
	}

	views, err := s.buildViews(ctx, session, ids)
	if err != nil {
		return nil, err
	}

	return &BatchResult{Session: session, Items: views}, nil
}

// nextCandidates fetches size unprocessed ids. Modes with several
// components (mixed) are interleaved, first component first.
func (s *Service) nextCandidates(ctx context.Context, session *domain.SessionRecord, mode selector.Mode, size int) ([]uuid.UUID, error) {
	components := selector.Components(mode)
	lists := make([][]uuid.UUID, 0, len(components))

	for _, m := range components {
		limit := size
		query, err := s.selector.Select(ctx, session.UserID, session.LearningMode, session.Scope, m, &limit)
		if err != nil {
			return nil, fmt.Errorf("select candidates: %w", err)
		}

		ids, err := s.content.FetchCandidates(ctx, query, session.ProcessedItemIDs, size)
		if err != nil {
			return nil, domain.NewPersistenceError("fetch candidates", err)
		}
		lists = append(lists, ids)
	}

	return interleave(size, lists...), nil
}

// interleave takes one id from each list in turn, skipping duplicates, until
// size ids are collected or the lists run out.
func interleave(size int, lists ...[]uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, size)
	out := make([]uuid.UUID, 0, size)

	for i := 0; len(out) < size; i++ {
		progressed := false
		for _, l := range lists {
			if i >= len(l) {
				continue
			}
			progressed = true
			if _, dup := seen[l[i]]; dup {
				continue
			}
			seen[l[i]] = struct{}{}
			out = append(out, l[i])
			if len(out) == size {
				return out
			}
		}
		if !progressed {
			break
		}
	}

	return out
}

// buildViews loads content, progress and statistics for ids and attaches a
// preview per item. Items the content store no longer returns are dropped.
func (s *Service) buildViews(ctx context.Context, session *domain.SessionRecord, ids []uuid.UUID) ([]ItemView, error) {
	summaries, err := s.content.FetchItems(ctx, ids)
	if err != nil {
		return nil, domain.NewPersistenceError("fetch items", err)
	}
	byID := make(map[uuid.UUID]domain.ItemSummary, len(summaries))
	for _, it := range summaries {
		byID[it.ID] = it
	}

	stats, err := s.reviews.StatsByItemIDs(ctx, session.UserID, session.LearningMode, ids)
	if err != nil {
		return nil, domain.NewPersistenceError("item stats", err)
	}

	loader := newProgressLoader(s.progress, session.UserID, session.LearningMode)
	now := s.clock.Now()
	views := make([]*ItemView, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		item, ok := byID[id]
		if !ok {
			continue
		}
		g.Go(func() error {
			p, err := loader.Load(gctx, id)()
			if err != nil {
				return err
			}

			state := domain.NewProgressState(session.UserID, id, session.LearningMode, s.model.Params().DefaultEase)
			if p != nil {
				state = *p
			}
			st := stats[id]

			views[i] = &ItemView{
				Item:     item,
				Progress: p,
				Stats:    domain.NewItemStats(st.TotalReviews, st.CorrectReviews, p),
				Preview:  s.preview.Simulate(state, now),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, domain.NewPersistenceError("load progress", err)
	}

	out := make([]ItemView, 0, len(views))
	for _, v := range views {
		if v != nil {
			out = append(out, *v)
		}
	}
	return out, nil
}

// newProgressLoader batches the per-item progress lookups of one request
// into a single repository call.
func newProgressLoader(repo progressRepo, userID uuid.UUID, mode domain.LearningMode) *dataloader.Loader[uuid.UUID, *domain.ProgressState] {
	batchFn := func(ctx context.Context, keys []uuid.UUID) []*dataloader.Result[*domain.ProgressState] {
		results := make([]*dataloader.Result[*domain.ProgressState], len(keys))

		rows, err := repo.GetByItemIDs(ctx, userID, mode, keys)
		if err != nil {
			for i := range results {
				results[i] = &dataloader.Result[*domain.ProgressState]{Error: err}
			}
			return results
		}

		byItem := make(map[uuid.UUID]*domain.ProgressState, len(rows))
		for i := range rows {
			byItem[rows[i].ItemID] = &rows[i]
		}
		for i, key := range keys {
			results[i] = &dataloader.Result[*domain.ProgressState]{Data: byItem[key]}
		}
		return results
	}

	return dataloader.NewBatchedLoader(
		batchFn,
		dataloader.WithWait[uuid.UUID, *domain.ProgressState](loaderWait),
		dataloader.WithBatchCapacity[uuid.UUID, *domain.ProgressState](loaderMaxBatch),
	)
}
