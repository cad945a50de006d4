package selector

import (
	"bytes"
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/myenglish-study/internal/domain"
)

type accessControl interface {
	AccessibleContainerIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

// Selector turns a user, scope and mode into a candidate query descriptor.
type Selector struct {
	access accessControl
	now    func() time.Time
	log    *slog.Logger
}

// New creates a Selector. now defaults to time.Now.
func New(log *slog.Logger, access accessControl, now func() time.Time) *Selector {
	if now == nil {
		now = time.Now
	}
	return &Selector{
		access: access,
		now:    now,
		log:    log.With("component", "selector"),
	}
}

// Select builds the descriptor for mode over scope. A nil limit yields a
// countable descriptor; a positive limit yields a bounded, ordered one.
func (s *Selector) Select(
	ctx context.Context,
	userID uuid.UUID,
	learningMode domain.LearningMode,
	scope domain.ScopeDescriptor,
	mode Mode,
	limit *int,
) (domain.QueryDescriptor, error) {
	if limit != nil && *limit <= 0 {
		return domain.QueryDescriptor{}, domain.NewValidationError("limit", "must be positive")
	}

	containers, err := s.ResolveScope(ctx, userID, scope)
	if err != nil {
		return domain.QueryDescriptor{}, err
	}

	q := domain.QueryDescriptor{
		UserID:       userID,
		LearningMode: learningMode,
		ContainerIDs: containers,
		AnyOf:        mode.predicates(s.now()),
		Order:        mode.order(),
	}
	if limit != nil {
		n := *limit
		q.Limit = &n
	}

	return q, nil
}

// ResolveScope intersects scope with the user's accessible containers. A
// scope naming any inaccessible container is rejected as a whole.
func (s *Selector) ResolveScope(ctx context.Context, userID uuid.UUID, scope domain.ScopeDescriptor) ([]uuid.UUID, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}

	accessible, err := s.access.AccessibleContainerIDs(ctx, userID)
	if err != nil {
		return nil, domain.NewPersistenceError("accessible containers", err)
	}

	if scope.Kind == domain.ScopeAll {
		out := slices.Clone(accessible)
		slices.SortFunc(out, compareUUID)
		return slices.Compact(out), nil
	}

	allowed := make(map[uuid.UUID]struct{}, len(accessible))
	for _, id := range accessible {
		allowed[id] = struct{}{}
	}

	var denied []uuid.UUID
	out := make([]uuid.UUID, 0, len(scope.ContainerIDs))
	for _, id := range scope.ContainerIDs {
		if _, ok := allowed[id]; !ok {
			denied = append(denied, id)
			continue
		}
		out = append(out, id)
	}
	if len(denied) > 0 {
		s.log.WarnContext(ctx, "scope references inaccessible containers",
			slog.String("user_id", userID.String()),
			slog.Int("denied", len(denied)),
		)
		return nil, &domain.InvalidScopeError{Reason: "containers not accessible", ContainerIDs: denied}
	}

	slices.SortFunc(out, compareUUID)
	return slices.Compact(out), nil
}

func compareUUID(a, b uuid.UUID) int {
	return bytes.Compare(a[:], b[:])
}
