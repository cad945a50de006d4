package study

import (
	"github.com/google/uuid"

	"github.com/heartmarshall/myenglish-study/internal/domain"
	"github.com/heartmarshall/myenglish-study/internal/service/study/preview"
)

// ItemView is one item of a batch with everything the UI needs to render it.
type ItemView struct {
	Item     domain.ItemSummary
	Progress *domain.ProgressState // nil for items the user has never seen
	Stats    domain.ItemStats
	Preview  map[domain.QualityRating]preview.SimulatedOutcome
}

// BatchResult is the outcome of GetNextBatch. Done is true once the
// candidate pool is exhausted; the session is then COMPLETED.
type BatchResult struct {
	Session *domain.SessionRecord
	Items   []ItemView
	Done    bool
}

// AnswerResult is the outcome of one submitted answer.
type AnswerResult struct {
	Session     *domain.SessionRecord
	ItemID      uuid.UUID
	Review      domain.ReviewOutcome
	Progress    domain.ProgressState
	Points      int
	TotalPoints int
	Stats       domain.ItemStats
}
