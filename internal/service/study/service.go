package study

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/myenglish-study/internal/domain"
	"github.com/heartmarshall/myenglish-study/internal/service/study/memory"
	"github.com/heartmarshall/myenglish-study/internal/service/study/preview"
	"github.com/heartmarshall/myenglish-study/internal/service/study/scoring"
	"github.com/heartmarshall/myenglish-study/internal/service/study/selector"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type progressRepo interface {
	GetForUpdate(ctx context.Context, userID, itemID uuid.UUID, mode domain.LearningMode) (*domain.ProgressState, error)
	GetByItemIDs(ctx context.Context, userID uuid.UUID, mode domain.LearningMode, itemIDs []uuid.UUID) ([]domain.ProgressState, error)
	Upsert(ctx context.Context, p *domain.ProgressState) error
}

type reviewLogRepo interface {
	Create(ctx context.Context, entry *domain.ReviewLogEntry) error
	StatsByItemIDs(ctx context.Context, userID uuid.UUID, mode domain.LearningMode, itemIDs []uuid.UUID) (map[uuid.UUID]domain.ItemStats, error)
}

type sessionRepo interface {
	Create(ctx context.Context, s *domain.SessionRecord) error
	GetByID(ctx context.Context, userID, sessionID uuid.UUID) (*domain.SessionRecord, error)
	GetActive(ctx context.Context, userID uuid.UUID, mode domain.LearningMode) (*domain.SessionRecord, error)
	CompleteActiveForScope(ctx context.Context, userID uuid.UUID, mode domain.LearningMode, scopeKey string, now time.Time) (int, error)
	RecordAnswer(ctx context.Context, userID, sessionID uuid.UUID, delta domain.SessionCounters) (*domain.SessionRecord, error)
	Complete(ctx context.Context, userID, sessionID uuid.UUID, now time.Time) (*domain.SessionRecord, error)
	CompleteStale(ctx context.Context, startedBefore, now time.Time) (int, error)
}

type contentStore interface {
	FetchItems(ctx context.Context, ids []uuid.UUID) ([]domain.ItemSummary, error)
	CountCandidates(ctx context.Context, q domain.QueryDescriptor) (int, error)
	FetchCandidates(ctx context.Context, q domain.QueryDescriptor, excludeIDs []uuid.UUID, limit int) ([]uuid.UUID, error)
	InScope(ctx context.Context, q domain.QueryDescriptor, itemID uuid.UUID) (bool, error)
}

type pointsLedger interface {
	AwardPoints(ctx context.Context, userID uuid.UUID, amount int, reason string, itemID uuid.UUID) (int, error)
}

type candidateSelector interface {
	Select(ctx context.Context, userID uuid.UUID, learningMode domain.LearningMode, scope domain.ScopeDescriptor, mode selector.Mode, limit *int) (domain.QueryDescriptor, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Config holds Session Engine settings.
type Config struct {
	DefaultBatchSize int
	MaxBatchSize     int
}

// Deps groups the collaborators of the Session Engine.
type Deps struct {
	Progress progressRepo
	Reviews  reviewLogRepo
	Sessions sessionRepo
	Content  contentStore
	Points   pointsLedger
	Selector candidateSelector
	Tx       txManager
	Model    *memory.Model
	Scorer   *scoring.Scorer
	Clock    Clock
}

// Service is the Session Engine. It keeps no state between calls; every
// operation reloads the session record it works on.
type Service struct {
	progress progressRepo
	reviews  reviewLogRepo
	sessions sessionRepo
	content  contentStore
	points   pointsLedger
	selector candidateSelector
	tx       txManager
	model    *memory.Model
	scorer   *scoring.Scorer
	preview  *preview.Engine
	clock    Clock
	log      *slog.Logger
	cfg      Config
}

// NewService creates a new Study service.
func NewService(log *slog.Logger, deps Deps, cfg Config) (*Service, error) {
	if cfg.DefaultBatchSize <= 0 || cfg.MaxBatchSize < cfg.DefaultBatchSize {
		return nil, fmt.Errorf("invalid batch config: default %d, max %d", cfg.DefaultBatchSize, cfg.MaxBatchSize)
	}
	if deps.Model == nil || deps.Scorer == nil {
		return nil, errors.New("memory model and scorer are required")
	}

	clock := deps.Clock
	if clock == nil {
		clock = systemClock{}
	}

	return &Service{
		progress: deps.Progress,
		reviews:  deps.Reviews,
		sessions: deps.Sessions,
		content:  deps.Content,
		points:   deps.Points,
		selector: deps.Selector,
		tx:       deps.Tx,
		model:    deps.Model,
		scorer:   deps.Scorer,
		preview:  preview.NewEngine(deps.Model, deps.Scorer),
		clock:    clock,
		log:      log.With("service", "study"),
		cfg:      cfg,
	}, nil
}

// loadSession fetches a session owned by userID and maps a missing row to
// ErrSessionNotFound.
func (s *Service) loadSession(ctx context.Context, userID, sessionID uuid.UUID) (*domain.SessionRecord, error) {
	session, err := s.sessions.GetByID(ctx, userID, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, domain.NewPersistenceError("get session", err)
	}
	return session, nil
}

// loadActiveSession is loadSession plus the ACTIVE check.
func (s *Service) loadActiveSession(ctx context.Context, userID, sessionID uuid.UUID) (*domain.SessionRecord, error) {
	session, err := s.loadSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.IsActive() {
		return nil, domain.ErrSessionNotActive
	}
	return session, nil
}
