package study

import (
	"cmp"
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/myenglish-study/internal/domain"
)

// memStore is an in-memory backend for scenario tests. It implements every
// persistence port of the service through thin views sharing one lock.
type memStore struct {
	mu sync.Mutex

	items      map[uuid.UUID]domain.ItemSummary
	archived   map[uuid.UUID]bool
	containers []uuid.UUID
	progress   map[progressKey]domain.ProgressState
	reviews    []domain.ReviewLogEntry
	sessions   map[uuid.UUID]*domain.SessionRecord
	points     map[uuid.UUID]int
}

type progressKey struct {
	user uuid.UUID
	item uuid.UUID
	mode domain.LearningMode
}

func newMemStore() *memStore {
	return &memStore{
		items:    make(map[uuid.UUID]domain.ItemSummary),
		archived: make(map[uuid.UUID]bool),
		progress: make(map[progressKey]domain.ProgressState),
		sessions: make(map[uuid.UUID]*domain.SessionRecord),
		points:   make(map[uuid.UUID]int),
	}
}

func (m *memStore) addContainer(n int, caps ...domain.Capability) (uuid.UUID, []uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cid := uuid.New()
	m.containers = append(m.containers, cid)
	ids := make([]uuid.UUID, n)
	for i := range n {
		ids[i] = uuid.New()
		m.items[ids[i]] = domain.ItemSummary{
			ID:           ids[i],
			ContainerID:  cid,
			Position:     i,
			Prompt:       "prompt",
			Answer:       "answer",
			Capabilities: domain.NewCapabilitySet(caps...),
		}
	}
	return cid, ids
}

// cloneContent returns a store with the same containers and items and no
// learner state.
func (m *memStore) cloneContent() *memStore {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := newMemStore()
	c.containers = slices.Clone(m.containers)
	maps.Copy(c.items, m.items)
	maps.Copy(c.archived, m.archived)
	return c
}

func (m *memStore) setProgress(p domain.ProgressState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.progress[progressKey{p.UserID, p.ItemID, p.LearningMode}] = p.Clone()
}

func (m *memStore) AccessibleContainerIDs(_ context.Context, _ uuid.UUID) ([]uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.containers), nil
}

func (m *memStore) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (m *memStore) AwardPoints(_ context.Context, userID uuid.UUID, amount int, _ string, _ uuid.UUID) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.points[userID] += amount
	return m.points[userID], nil
}

// ---------------------------------------------------------------------------
// progress
// ---------------------------------------------------------------------------

type memProgress struct{ *memStore }

func (m memProgress) GetForUpdate(_ context.Context, userID, itemID uuid.UUID, mode domain.LearningMode) (*domain.ProgressState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.progress[progressKey{userID, itemID, mode}]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := p.Clone()
	return &c, nil
}

func (m memProgress) GetByItemIDs(_ context.Context, userID uuid.UUID, mode domain.LearningMode, itemIDs []uuid.UUID) ([]domain.ProgressState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.ProgressState
	for _, id := range itemIDs {
		if p, ok := m.progress[progressKey{userID, id, mode}]; ok {
			out = append(out, p.Clone())
		}
	}
	return out, nil
}

func (m memProgress) Upsert(_ context.Context, p *domain.ProgressState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[p.ItemID]; !ok {
		return domain.ErrNotFound
	}
	m.progress[progressKey{p.UserID, p.ItemID, p.LearningMode}] = p.Clone()
	return nil
}

// ---------------------------------------------------------------------------
// review log
// ---------------------------------------------------------------------------

type memReviews struct{ *memStore }

func (m memReviews) Create(_ context.Context, entry *domain.ReviewLogEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reviews = append(m.reviews, *entry)
	return nil
}

func (m memReviews) StatsByItemIDs(_ context.Context, userID uuid.UUID, mode domain.LearningMode, itemIDs []uuid.UUID) (map[uuid.UUID]domain.ItemStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[uuid.UUID]domain.ItemStats)
	for _, r := range m.reviews {
		if r.UserID != userID || r.LearningMode != mode || !slices.Contains(itemIDs, r.ItemID) {
			continue
		}
		st := out[r.ItemID]
		st.TotalReviews++
		if r.Outcome == domain.OutcomeCorrect {
			st.CorrectReviews++
		}
		out[r.ItemID] = st
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// sessions
// ---------------------------------------------------------------------------

type memSessions struct{ *memStore }

func copySession(s *domain.SessionRecord) *domain.SessionRecord {
	c := *s
	c.ProcessedItemIDs = slices.Clone(s.ProcessedItemIDs)
	return &c
}

func (m memSessions) Create(_ context.Context, s *domain.SessionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = copySession(s)
	return nil
}

func (m memSessions) GetByID(_ context.Context, userID, sessionID uuid.UUID) (*domain.SessionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionID]
	if !ok || s.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return copySession(s), nil
}

func (m memSessions) GetActive(_ context.Context, userID uuid.UUID, mode domain.LearningMode) (*domain.SessionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var latest *domain.SessionRecord
	for _, s := range m.sessions {
		if s.UserID != userID || s.LearningMode != mode || !s.IsActive() {
			continue
		}
		if latest == nil || s.StartedAt.After(latest.StartedAt) {
			latest = s
		}
	}
	if latest == nil {
		return nil, domain.ErrNotFound
	}
	return copySession(latest), nil
}

func (m memSessions) CompleteActiveForScope(_ context.Context, userID uuid.UUID, mode domain.LearningMode, scopeKey string, now time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, s := range m.sessions {
		if s.UserID == userID && s.LearningMode == mode && s.IsActive() && s.Scope.Key() == scopeKey {
			s.Status = domain.SessionStatusCompleted
			s.CompletedAt = &now
			n++
		}
	}
	return n, nil
}

func (m memSessions) RecordAnswer(_ context.Context, userID, sessionID uuid.UUID, delta domain.SessionCounters) (*domain.SessionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionID]
	if !ok || s.UserID != userID || !s.IsActive() {
		return nil, domain.ErrNotFound
	}
	s.CorrectCount += delta.Correct
	s.IncorrectCount += delta.Incorrect
	s.AmbiguousCount += delta.Ambiguous
	s.PointsEarned += delta.Points
	if !s.HasProcessed(delta.ItemID) {
		s.ProcessedItemIDs = append(s.ProcessedItemIDs, delta.ItemID)
	}
	return copySession(s), nil
}

func (m memSessions) Complete(_ context.Context, userID, sessionID uuid.UUID, now time.Time) (*domain.SessionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionID]
	if !ok || s.UserID != userID {
		return nil, domain.ErrNotFound
	}
	if s.IsActive() {
		s.Status = domain.SessionStatusCompleted
		s.CompletedAt = &now
	}
	return copySession(s), nil
}

func (m memSessions) CompleteStale(_ context.Context, startedBefore, now time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, s := range m.sessions {
		if s.IsActive() && s.StartedAt.Before(startedBefore) {
			s.Status = domain.SessionStatusCompleted
			s.CompletedAt = &now
			n++
		}
	}
	return n, nil
}

// ---------------------------------------------------------------------------
// content
// ---------------------------------------------------------------------------

type memContent struct{ *memStore }

func (m memContent) FetchItems(_ context.Context, ids []uuid.UUID) ([]domain.ItemSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.ItemSummary
	for _, id := range ids {
		if it, ok := m.items[id]; ok {
			out = append(out, it)
		}
	}
	return out, nil
}

func (m memContent) CountCandidates(_ context.Context, q domain.QueryDescriptor) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.match(q, nil)), nil
}

func (m memContent) FetchCandidates(_ context.Context, q domain.QueryDescriptor, excludeIDs []uuid.UUID, limit int) ([]uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := m.match(q, excludeIDs)
	if len(items) > limit {
		items = items[:limit]
	}
	ids := make([]uuid.UUID, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return ids, nil
}

func (m memContent) InScope(_ context.Context, q domain.QueryDescriptor, itemID uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.items[itemID]
	return ok && slices.Contains(q.ContainerIDs, it.ContainerID) && !m.archived[it.ContainerID], nil
}

// match applies the descriptor with a deterministic order; random order is
// served as position order.
func (m memContent) match(q domain.QueryDescriptor, exclude []uuid.UUID) []domain.ItemSummary {
	var out []domain.ItemSummary
	for _, it := range m.items {
		if !slices.Contains(q.ContainerIDs, it.ContainerID) || m.archived[it.ContainerID] || slices.Contains(exclude, it.ID) {
			continue
		}
		var p *domain.ProgressState
		if st, ok := m.progress[progressKey{q.UserID, it.ID, q.LearningMode}]; ok {
			p = &st
		}
		if q.Matches(p, it.Capabilities) {
			out = append(out, it)
		}
	}

	dueOf := func(it domain.ItemSummary) time.Time {
		if st, ok := m.progress[progressKey{q.UserID, it.ID, q.LearningMode}]; ok && st.DueTime != nil {
			return *st.DueTime
		}
		return time.Time{}
	}
	slices.SortFunc(out, func(a, b domain.ItemSummary) int {
		if q.Order == domain.SortDueAsc {
			if c := dueOf(a).Compare(dueOf(b)); c != 0 {
				return c
			}
		}
		if c := cmp.Compare(a.Position, b.Position); c != 0 {
			return c
		}
		return slices.Compare(a.ID[:], b.ID[:])
	})
	return out
}
