package study

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/myenglish-study/internal/domain"
)

var _ progressRepo = &progressRepoMock{}

type progressRepoMock struct {
	GetForUpdateFunc func(ctx context.Context, userID uuid.UUID, itemID uuid.UUID, mode domain.LearningMode) (*domain.ProgressState, error)
	GetByItemIDsFunc func(ctx context.Context, userID uuid.UUID, mode domain.LearningMode, itemIDs []uuid.UUID) ([]domain.ProgressState, error)
	UpsertFunc       func(ctx context.Context, p *domain.ProgressState) error

	calls struct {
		GetForUpdate []struct {
			Ctx    context.Context
			UserID uuid.UUID
			ItemID uuid.UUID
			Mode   domain.LearningMode
		}
		GetByItemIDs []struct {
			Ctx     context.Context
			UserID  uuid.UUID
			Mode    domain.LearningMode
			ItemIDs []uuid.UUID
		}
		Upsert []struct {
			Ctx context.Context
			P   *domain.ProgressState
		}
	}
	lockGetForUpdate sync.RWMutex
	lockGetByItemIDs sync.RWMutex
	lockUpsert       sync.RWMutex
}

func (mock *progressRepoMock) GetForUpdate(ctx context.Context, userID uuid.UUID, itemID uuid.UUID, mode domain.LearningMode) (*domain.ProgressState, error) {
	if mock.GetForUpdateFunc == nil {
		panic("progressRepoMock.GetForUpdateFunc: method is nil but progressRepo.GetForUpdate was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		ItemID uuid.UUID
		Mode   domain.LearningMode
	}{Ctx: ctx, UserID: userID, ItemID: itemID, Mode: mode}
	mock.lockGetForUpdate.Lock()
	mock.calls.GetForUpdate = append(mock.calls.GetForUpdate, callInfo)
	mock.lockGetForUpdate.Unlock()
	return mock.GetForUpdateFunc(ctx, userID, itemID, mode)
}

func (mock *progressRepoMock) GetForUpdateCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	ItemID uuid.UUID
	Mode   domain.LearningMode
} {
	mock.lockGetForUpdate.RLock()
	calls := mock.calls.GetForUpdate
	mock.lockGetForUpdate.RUnlock()
	return calls
}

func (mock *progressRepoMock) GetByItemIDs(ctx context.Context, userID uuid.UUID, mode domain.LearningMode, itemIDs []uuid.UUID) ([]domain.ProgressState, error) {
	if mock.GetByItemIDsFunc == nil {
		panic("progressRepoMock.GetByItemIDsFunc: method is nil but progressRepo.GetByItemIDs was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		UserID  uuid.UUID
		Mode    domain.LearningMode
		ItemIDs []uuid.UUID
	}{Ctx: ctx, UserID: userID, Mode: mode, ItemIDs: itemIDs}
	mock.lockGetByItemIDs.Lock()
	mock.calls.GetByItemIDs = append(mock.calls.GetByItemIDs, callInfo)
	mock.lockGetByItemIDs.Unlock()
	return mock.GetByItemIDsFunc(ctx, userID, mode, itemIDs)
}

func (mock *progressRepoMock) GetByItemIDsCalls() []struct {
	Ctx     context.Context
	UserID  uuid.UUID
	Mode    domain.LearningMode
	ItemIDs []uuid.UUID
} {
	mock.lockGetByItemIDs.RLock()
	calls := mock.calls.GetByItemIDs
	mock.lockGetByItemIDs.RUnlock()
	return calls
}

func (mock *progressRepoMock) Upsert(ctx context.Context, p *domain.ProgressState) error {
	if mock.UpsertFunc == nil {
		panic("progressRepoMock.UpsertFunc: method is nil but progressRepo.Upsert was just called")
	}
	callInfo := struct {
		Ctx context.Context
		P   *domain.ProgressState
	}{Ctx: ctx, P: p}
	mock.lockUpsert.Lock()
	mock.calls.Upsert = append(mock.calls.Upsert, callInfo)
	mock.lockUpsert.Unlock()
	return mock.UpsertFunc(ctx, p)
}

func (mock *progressRepoMock) UpsertCalls() []struct {
	Ctx context.Context
	P   *domain.ProgressState
} {
	mock.lockUpsert.RLock()
	calls := mock.calls.Upsert
	mock.lockUpsert.RUnlock()
	return calls
}

var _ reviewLogRepo = &reviewLogRepoMock{}

type reviewLogRepoMock struct {
	CreateFunc         func(ctx context.Context, entry *domain.ReviewLogEntry) error
	StatsByItemIDsFunc func(ctx context.Context, userID uuid.UUID, mode domain.LearningMode, itemIDs []uuid.UUID) (map[uuid.UUID]domain.ItemStats, error)

	calls struct {
		Create []struct {
			Ctx   context.Context
			Entry *domain.ReviewLogEntry
		}
		StatsByItemIDs []struct {
			Ctx     context.Context
			UserID  uuid.UUID
			Mode    domain.LearningMode
			ItemIDs []uuid.UUID
		}
	}
	lockCreate         sync.RWMutex
	lockStatsByItemIDs sync.RWMutex
}

func (mock *reviewLogRepoMock) Create(ctx context.Context, entry *domain.ReviewLogEntry) error {
	if mock.CreateFunc == nil {
		panic("reviewLogRepoMock.CreateFunc: method is nil but reviewLogRepo.Create was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Entry *domain.ReviewLogEntry
	}{Ctx: ctx, Entry: entry}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, entry)
}

func (mock *reviewLogRepoMock) CreateCalls() []struct {
	Ctx   context.Context
	Entry *domain.ReviewLogEntry
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *reviewLogRepoMock) StatsByItemIDs(ctx context.Context, userID uuid.UUID, mode domain.LearningMode, itemIDs []uuid.UUID) (map[uuid.UUID]domain.ItemStats, error) {
	if mock.StatsByItemIDsFunc == nil {
		panic("reviewLogRepoMock.StatsByItemIDsFunc: method is nil but reviewLogRepo.StatsByItemIDs was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		UserID  uuid.UUID
		Mode    domain.LearningMode
		ItemIDs []uuid.UUID
	}{Ctx: ctx, UserID: userID, Mode: mode, ItemIDs: itemIDs}
	mock.lockStatsByItemIDs.Lock()
	mock.calls.StatsByItemIDs = append(mock.calls.StatsByItemIDs, callInfo)
	mock.lockStatsByItemIDs.Unlock()
	return mock.StatsByItemIDsFunc(ctx, userID, mode, itemIDs)
}

func (mock *reviewLogRepoMock) StatsByItemIDsCalls() []struct {
	Ctx     context.Context
	UserID  uuid.UUID
	Mode    domain.LearningMode
	ItemIDs []uuid.UUID
} {
	mock.lockStatsByItemIDs.RLock()
	calls := mock.calls.StatsByItemIDs
	mock.lockStatsByItemIDs.RUnlock()
	return calls
}

var _ sessionRepo = &sessionRepoMock{}

type sessionRepoMock struct {
	CreateFunc                 func(ctx context.Context, s *domain.SessionRecord) error
	GetByIDFunc                func(ctx context.Context, userID uuid.UUID, sessionID uuid.UUID) (*domain.SessionRecord, error)
	GetActiveFunc              func(ctx context.Context, userID uuid.UUID, mode domain.LearningMode) (*domain.SessionRecord, error)
	CompleteActiveForScopeFunc func(ctx context.Context, userID uuid.UUID, mode domain.LearningMode, scopeKey string, now time.Time) (int, error)
	RecordAnswerFunc           func(ctx context.Context, userID uuid.UUID, sessionID uuid.UUID, delta domain.SessionCounters) (*domain.SessionRecord, error)
	CompleteFunc               func(ctx context.Context, userID uuid.UUID, sessionID uuid.UUID, now time.Time) (*domain.SessionRecord, error)
	CompleteStaleFunc          func(ctx context.Context, startedBefore time.Time, now time.Time) (int, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			S   *domain.SessionRecord
		}
		GetByID []struct {
			Ctx       context.Context
			UserID    uuid.UUID
			SessionID uuid.UUID
		}
		GetActive []struct {
			Ctx    context.Context
			UserID uuid.UUID
			Mode   domain.LearningMode
		}
		CompleteActiveForScope []struct {
			Ctx      context.Context
			UserID   uuid.UUID
			Mode     domain.LearningMode
			ScopeKey string
			Now      time.Time
		}
		RecordAnswer []struct {
			Ctx       context.Context
			UserID    uuid.UUID
			SessionID uuid.UUID
			Delta     domain.SessionCounters
		}
		Complete []struct {
			Ctx       context.Context
			UserID    uuid.UUID
			SessionID uuid.UUID
			Now       time.Time
		}
		CompleteStale []struct {
			Ctx           context.Context
			StartedBefore time.Time
			Now           time.Time
		}
	}
	lockCreate                 sync.RWMutex
	lockGetByID                sync.RWMutex
	lockGetActive              sync.RWMutex
	lockCompleteActiveForScope sync.RWMutex
	lockRecordAnswer           sync.RWMutex
	lockComplete               sync.RWMutex
	lockCompleteStale          sync.RWMutex
}

func (mock *sessionRepoMock) Create(ctx context.Context, s *domain.SessionRecord) error {
	if mock.CreateFunc == nil {
		panic("sessionRepoMock.CreateFunc: method is nil but sessionRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		S   *domain.SessionRecord
	}{Ctx: ctx, S: s}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, s)
}

func (mock *sessionRepoMock) CreateCalls() []struct {
	Ctx context.Context
	S   *domain.SessionRecord
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *sessionRepoMock) GetByID(ctx context.Context, userID uuid.UUID, sessionID uuid.UUID) (*domain.SessionRecord, error) {
	if mock.GetByIDFunc == nil {
		panic("sessionRepoMock.GetByIDFunc: method is nil but sessionRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		UserID    uuid.UUID
		SessionID uuid.UUID
	}{Ctx: ctx, UserID: userID, SessionID: sessionID}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, userID, sessionID)
}

func (mock *sessionRepoMock) GetByIDCalls() []struct {
	Ctx       context.Context
	UserID    uuid.UUID
	SessionID uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *sessionRepoMock) GetActive(ctx context.Context, userID uuid.UUID, mode domain.LearningMode) (*domain.SessionRecord, error) {
	if mock.GetActiveFunc == nil {
		panic("sessionRepoMock.GetActiveFunc: method is nil but sessionRepo.GetActive was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		Mode   domain.LearningMode
	}{Ctx: ctx, UserID: userID, Mode: mode}
	mock.lockGetActive.Lock()
	mock.calls.GetActive = append(mock.calls.GetActive, callInfo)
	mock.lockGetActive.Unlock()
	return mock.GetActiveFunc(ctx, userID, mode)
}

func (mock *sessionRepoMock) GetActiveCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	Mode   domain.LearningMode
} {
	mock.lockGetActive.RLock()
	calls := mock.calls.GetActive
	mock.lockGetActive.RUnlock()
	return calls
}

func (mock *sessionRepoMock) CompleteActiveForScope(ctx context.Context, userID uuid.UUID, mode domain.LearningMode, scopeKey string, now time.Time) (int, error) {
	if mock.CompleteActiveForScopeFunc == nil {
		panic("sessionRepoMock.CompleteActiveForScopeFunc: method is nil but sessionRepo.CompleteActiveForScope was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		UserID   uuid.UUID
		Mode     domain.LearningMode
		ScopeKey string
		Now      time.Time
	}{Ctx: ctx, UserID: userID, Mode: mode, ScopeKey: scopeKey, Now: now}
	mock.lockCompleteActiveForScope.Lock()
	mock.calls.CompleteActiveForScope = append(mock.calls.CompleteActiveForScope, callInfo)
	mock.lockCompleteActiveForScope.Unlock()
	return mock.CompleteActiveForScopeFunc(ctx, userID, mode, scopeKey, now)
}

func (mock *sessionRepoMock) CompleteActiveForScopeCalls() []struct {
	Ctx      context.Context
	UserID   uuid.UUID
	Mode     domain.LearningMode
	ScopeKey string
	Now      time.Time
} {
	mock.lockCompleteActiveForScope.RLock()
	calls := mock.calls.CompleteActiveForScope
	mock.lockCompleteActiveForScope.RUnlock()
	return calls
}

func (mock *sessionRepoMock) RecordAnswer(ctx context.Context, userID uuid.UUID, sessionID uuid.UUID, delta domain.SessionCounters) (*domain.SessionRecord, error) {
	if mock.RecordAnswerFunc == nil {
		panic("sessionRepoMock.RecordAnswerFunc: method is nil but sessionRepo.RecordAnswer was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		UserID    uuid.UUID
		SessionID uuid.UUID
		Delta     domain.SessionCounters
	}{Ctx: ctx, UserID: userID, SessionID: sessionID, Delta: delta}
	mock.lockRecordAnswer.Lock()
	mock.calls.RecordAnswer = append(mock.calls.RecordAnswer, callInfo)
	mock.lockRecordAnswer.Unlock()
	return mock.RecordAnswerFunc(ctx, userID, sessionID, delta)
}

func (mock *sessionRepoMock) RecordAnswerCalls() []struct {
	Ctx       context.Context
	UserID    uuid.UUID
	SessionID uuid.UUID
	Delta     domain.SessionCounters
} {
	mock.lockRecordAnswer.RLock()
	calls := mock.calls.RecordAnswer
	mock.lockRecordAnswer.RUnlock()
	return calls
}

func (mock *sessionRepoMock) Complete(ctx context.Context, userID uuid.UUID, sessionID uuid.UUID, now time.Time) (*domain.SessionRecord, error) {
	if mock.CompleteFunc == nil {
		panic("sessionRepoMock.CompleteFunc: method is nil but sessionRepo.Complete was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		UserID    uuid.UUID
		SessionID uuid.UUID
		Now       time.Time
	}{Ctx: ctx, UserID: userID, SessionID: sessionID, Now: now}
	mock.lockComplete.Lock()
	mock.calls.Complete = append(mock.calls.Complete, callInfo)
	mock.lockComplete.Unlock()
	return mock.CompleteFunc(ctx, userID, sessionID, now)
}

func (mock *sessionRepoMock) CompleteCalls() []struct {
	Ctx       context.Context
	UserID    uuid.UUID
	SessionID uuid.UUID
	Now       time.Time
} {
	mock.lockComplete.RLock()
	calls := mock.calls.Complete
	mock.lockComplete.RUnlock()
	return calls
}

func (mock *sessionRepoMock) CompleteStale(ctx context.Context, startedBefore time.Time, now time.Time) (int, error) {
	if mock.CompleteStaleFunc == nil {
		panic("sessionRepoMock.CompleteStaleFunc: method is nil but sessionRepo.CompleteStale was just called")
	}
	callInfo := struct {
		Ctx           context.Context
		StartedBefore time.Time
		Now           time.Time
	}{Ctx: ctx, StartedBefore: startedBefore, Now: now}
	mock.lockCompleteStale.Lock()
	mock.calls.CompleteStale = append(mock.calls.CompleteStale, callInfo)
	mock.lockCompleteStale.Unlock()
	return mock.CompleteStaleFunc(ctx, startedBefore, now)
}

func (mock *sessionRepoMock) CompleteStaleCalls() []struct {
	Ctx           context.Context
	StartedBefore time.Time
	Now           time.Time
} {
	mock.lockCompleteStale.RLock()
	calls := mock.calls.CompleteStale
	mock.lockCompleteStale.RUnlock()
	return calls
}

var _ contentStore = &contentStoreMock{}

type contentStoreMock struct {
	FetchItemsFunc      func(ctx context.Context, ids []uuid.UUID) ([]domain.ItemSummary, error)
	CountCandidatesFunc func(ctx context.Context, q domain.QueryDescriptor) (int, error)
	FetchCandidatesFunc func(ctx context.Context, q domain.QueryDescriptor, excludeIDs []uuid.UUID, limit int) ([]uuid.UUID, error)
	InScopeFunc         func(ctx context.Context, q domain.QueryDescriptor, itemID uuid.UUID) (bool, error)

	calls struct {
		FetchItems []struct {
			Ctx context.Context
			Ids []uuid.UUID
		}
		CountCandidates []struct {
			Ctx context.Context
			Q   domain.QueryDescriptor
		}
		FetchCandidates []struct {
			Ctx        context.Context
			Q          domain.QueryDescriptor
			ExcludeIDs []uuid.UUID
			Limit      int
		}
		InScope []struct {
			Ctx    context.Context
			Q      domain.QueryDescriptor
			ItemID uuid.UUID
		}
	}
	lockFetchItems      sync.RWMutex
	lockCountCandidates sync.RWMutex
	lockFetchCandidates sync.RWMutex
	lockInScope         sync.RWMutex
}

func (mock *contentStoreMock) FetchItems(ctx context.Context, ids []uuid.UUID) ([]domain.ItemSummary, error) {
	if mock.FetchItemsFunc == nil {
		panic("contentStoreMock.FetchItemsFunc: method is nil but contentStore.FetchItems was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Ids []uuid.UUID
	}{Ctx: ctx, Ids: ids}
	mock.lockFetchItems.Lock()
	mock.calls.FetchItems = append(mock.calls.FetchItems, callInfo)
	mock.lockFetchItems.Unlock()
	return mock.FetchItemsFunc(ctx, ids)
}

func (mock *contentStoreMock) FetchItemsCalls() []struct {
	Ctx context.Context
	Ids []uuid.UUID
} {
	mock.lockFetchItems.RLock()
	calls := mock.calls.FetchItems
	mock.lockFetchItems.RUnlock()
	return calls
}

func (mock *contentStoreMock) CountCandidates(ctx context.Context, q domain.QueryDescriptor) (int, error) {
	if mock.CountCandidatesFunc == nil {
		panic("contentStoreMock.CountCandidatesFunc: method is nil but contentStore.CountCandidates was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Q   domain.QueryDescriptor
	}{Ctx: ctx, Q: q}
	mock.lockCountCandidates.Lock()
	mock.calls.CountCandidates = append(mock.calls.CountCandidates, callInfo)
	mock.lockCountCandidates.Unlock()
	return mock.CountCandidatesFunc(ctx, q)
}

func (mock *contentStoreMock) CountCandidatesCalls() []struct {
	Ctx context.Context
	Q   domain.QueryDescriptor
} {
	mock.lockCountCandidates.RLock()
	calls := mock.calls.CountCandidates
	mock.lockCountCandidates.RUnlock()
	return calls
}

func (mock *contentStoreMock) FetchCandidates(ctx context.Context, q domain.QueryDescriptor, excludeIDs []uuid.UUID, limit int) ([]uuid.UUID, error) {
	if mock.FetchCandidatesFunc == nil {
		panic("contentStoreMock.FetchCandidatesFunc: method is nil but contentStore.FetchCandidates was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		Q          domain.QueryDescriptor
		ExcludeIDs []uuid.UUID
		Limit      int
	}{Ctx: ctx, Q: q, ExcludeIDs: excludeIDs, Limit: limit}
	mock.lockFetchCandidates.Lock()
	mock.calls.FetchCandidates = append(mock.calls.FetchCandidates, callInfo)
	mock.lockFetchCandidates.Unlock()
	return mock.FetchCandidatesFunc(ctx, q, excludeIDs, limit)
}

func (mock *contentStoreMock) FetchCandidatesCalls() []struct {
	Ctx        context.Context
	Q          domain.QueryDescriptor
	ExcludeIDs []uuid.UUID
	Limit      int
} {
	mock.lockFetchCandidates.RLock()
	calls := mock.calls.FetchCandidates
	mock.lockFetchCandidates.RUnlock()
	return calls
}

func (mock *contentStoreMock) InScope(ctx context.Context, q domain.QueryDescriptor, itemID uuid.UUID) (bool, error) {
	if mock.InScopeFunc == nil {
		panic("contentStoreMock.InScopeFunc: method is nil but contentStore.InScope was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Q      domain.QueryDescriptor
		ItemID uuid.UUID
	}{Ctx: ctx, Q: q, ItemID: itemID}
	mock.lockInScope.Lock()
	mock.calls.InScope = append(mock.calls.InScope, callInfo)
	mock.lockInScope.Unlock()
	return mock.InScopeFunc(ctx, q, itemID)
}

func (mock *contentStoreMock) InScopeCalls() []struct {
	Ctx    context.Context
	Q      domain.QueryDescriptor
	ItemID uuid.UUID
} {
	mock.lockInScope.RLock()
	calls := mock.calls.InScope
	mock.lockInScope.RUnlock()
	return calls
}

var _ pointsLedger = &pointsLedgerMock{}

type pointsLedgerMock struct {
	AwardPointsFunc func(ctx context.Context, userID uuid.UUID, amount int, reason string, itemID uuid.UUID) (int, error)

	calls struct {
		AwardPoints []struct {
			Ctx    context.Context
			UserID uuid.UUID
			Amount int
			Reason string
			ItemID uuid.UUID
		}
	}
	lockAwardPoints sync.RWMutex
}

func (mock *pointsLedgerMock) AwardPoints(ctx context.Context, userID uuid.UUID, amount int, reason string, itemID uuid.UUID) (int, error) {
	if mock.AwardPointsFunc == nil {
		panic("pointsLedgerMock.AwardPointsFunc: method is nil but pointsLedger.AwardPoints was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		Amount int
		Reason string
		ItemID uuid.UUID
	}{Ctx: ctx, UserID: userID, Amount: amount, Reason: reason, ItemID: itemID}
	mock.lockAwardPoints.Lock()
	mock.calls.AwardPoints = append(mock.calls.AwardPoints, callInfo)
	mock.lockAwardPoints.Unlock()
	return mock.AwardPointsFunc(ctx, userID, amount, reason, itemID)
}

func (mock *pointsLedgerMock) AwardPointsCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	Amount int
	Reason string
	ItemID uuid.UUID
} {
	mock.lockAwardPoints.RLock()
	calls := mock.calls.AwardPoints
	mock.lockAwardPoints.RUnlock()
	return calls
}

var _ txManager = &txManagerMock{}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error

	calls struct {
		RunInTx []struct {
			Ctx context.Context
			Fn  func(ctx context.Context) error
		}
	}
	lockRunInTx sync.RWMutex
}

func (mock *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if mock.RunInTxFunc == nil {
		panic("txManagerMock.RunInTxFunc: method is nil but txManager.RunInTx was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Fn  func(ctx context.Context) error
	}{Ctx: ctx, Fn: fn}
	mock.lockRunInTx.Lock()
	mock.calls.RunInTx = append(mock.calls.RunInTx, callInfo)
	mock.lockRunInTx.Unlock()
	return mock.RunInTxFunc(ctx, fn)
}

func (mock *txManagerMock) RunInTxCalls() []struct {
	Ctx context.Context
	Fn  func(ctx context.Context) error
} {
	mock.lockRunInTx.RLock()
	calls := mock.calls.RunInTx
	mock.lockRunInTx.RUnlock()
	return calls
}
