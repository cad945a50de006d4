package rest

import (
	"math"
	"slices"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/myenglish-study/internal/domain"
	"github.com/heartmarshall/myenglish-study/internal/service/study"
	"github.com/heartmarshall/myenglish-study/internal/service/study/preview"
)

// ---------------------------------------------------------------------------
// Requests
// ---------------------------------------------------------------------------

type scopeRequest struct {
	Kind         string   `json:"kind"`
	ContainerIDs []string `json:"container_ids"`
}

type startSessionRequest struct {
	LearningMode string        `json:"learning_mode"`
	Mode         string        `json:"mode"`
	Scope        *scopeRequest `json:"scope"`
}

// answerRequest carries the rating in exactly one of three forms: the 0..7
// quality, a three- or four-button label, or a legacy 0..5 quality.
type answerRequest struct {
	ItemID        string `json:"item_id"`
	Quality       *int   `json:"quality"`
	Button        string `json:"button"`
	LegacyQuality *int   `json:"legacy_quality"`
	DurationMs    *int   `json:"duration_ms"`
}

// submitRequest is either a single answer or a group under "answers".
type submitRequest struct {
	answerRequest
	Answers []answerRequest `json:"answers"`
}

type simulateRequest struct {
	ItemID       string `json:"item_id"`
	LearningMode string `json:"learning_mode"`
}

// ---------------------------------------------------------------------------
// Responses
// ---------------------------------------------------------------------------

type scopeResponse struct {
	Kind         string   `json:"kind"`
	ContainerIDs []string `json:"container_ids,omitempty"`
}

type sessionResponse struct {
	ID               string        `json:"id"`
	LearningMode     string        `json:"learning_mode"`
	Mode             string        `json:"mode"`
	Scope            scopeResponse `json:"scope"`
	Status           string        `json:"status"`
	TotalItems       int           `json:"total_items"`
	ProcessedCount   int           `json:"processed_count"`
	ProcessedItemIDs []string      `json:"processed_item_ids"`
	CorrectCount     int           `json:"correct_count"`
	IncorrectCount   int           `json:"incorrect_count"`
	AmbiguousCount   int           `json:"ambiguous_count"`
	PointsEarned     int           `json:"points_earned"`
	StartedAt        time.Time     `json:"started_at"`
	CompletedAt      *time.Time    `json:"completed_at,omitempty"`
}

type activeSessionResponse struct {
	Session *sessionResponse `json:"session"`
}

// intervalFields renders an interval in minutes while it is under a day and
// in days afterwards.
type intervalFields struct {
	IntervalMinutesOrDays int    `json:"interval_minutes_or_days"`
	IntervalUnit          string `json:"interval_unit"`
}

type progressResponse struct {
	Status      string     `json:"status"`
	MemoryPower int        `json:"memory_power"`
	Repetitions int        `json:"repetitions"`
	NextReview  *time.Time `json:"next_review,omitempty"`
	intervalFields
}

type statsResponse struct {
	TotalReviews   int        `json:"total_reviews"`
	CorrectReviews int        `json:"correct_reviews"`
	SuccessRate    float64    `json:"success_rate"`
	MemoryPower    int        `json:"memory_power"`
	LastReviewedAt *time.Time `json:"last_reviewed_at,omitempty"`
}

type previewResponse struct {
	Outcome     string    `json:"outcome"`
	Status      string    `json:"status"`
	MemoryPower int       `json:"memory_power"`
	Points      int       `json:"points"`
	NextReview  time.Time `json:"next_review"`
	intervalFields
}

type itemResponse struct {
	ItemID       string                     `json:"item_id"`
	ContainerID  string                     `json:"container_id"`
	Prompt       string                     `json:"prompt"`
	Answer       string                     `json:"answer"`
	Capabilities []string                   `json:"capabilities"`
	Progress     *progressResponse          `json:"progress"`
	Stats        statsResponse              `json:"stats"`
	Preview      map[string]previewResponse `json:"preview"`
}

type batchResponse struct {
	Session sessionResponse `json:"session"`
	Items   []itemResponse  `json:"items"`
	Done    bool            `json:"done"`
}

type answerResponse struct {
	ItemID      string           `json:"item_id"`
	Quality     int              `json:"quality"`
	Outcome     string           `json:"outcome"`
	Points      int              `json:"points"`
	TotalPoints int              `json:"total_points"`
	Progress    progressResponse `json:"progress"`
	Stats       statsResponse    `json:"stats"`
	Session     sessionResponse  `json:"session"`
}

type answersResponse struct {
	Results []answerResponse `json:"results"`
}

// partialAnswersResponse reports the answers applied before one failed.
type partialAnswersResponse struct {
	errorResponse
	Results []answerResponse `json:"results"`
}

type simulateResponse struct {
	ItemID  string                     `json:"item_id"`
	Preview map[string]previewResponse `json:"preview"`
}

// ---------------------------------------------------------------------------
// Mapping
// ---------------------------------------------------------------------------

func (r *startSessionRequest) toInput() (study.StartSessionInput, error) {
	in := study.StartSessionInput{
		LearningMode: domain.LearningMode(r.LearningMode),
		Mode:         domain.ModeID(r.Mode),
		Scope:        domain.AllScope(),
	}
	if r.Scope == nil {
		return in, nil
	}

	ids, err := parseUUIDs("scope.container_ids", r.Scope.ContainerIDs)
	if err != nil {
		return in, err
	}
	in.Scope = domain.ScopeDescriptor{Kind: domain.ScopeKind(r.Scope.Kind), ContainerIDs: ids}
	return in, nil
}

func (r *answerRequest) toInput(prefix string) (study.AnswerInput, error) {
	itemID, err := parseUUID(prefix+"item_id", r.ItemID)
	if err != nil {
		return study.AnswerInput{}, err
	}
	q, err := r.quality(prefix)
	if err != nil {
		return study.AnswerInput{}, err
	}
	return study.AnswerInput{ItemID: itemID, Quality: q, DurationMs: r.DurationMs}, nil
}

func (r *answerRequest) quality(prefix string) (domain.QualityRating, error) {
	forms := 0
	if r.Quality != nil {
		forms++
	}
	if r.Button != "" {
		forms++
	}
	if r.LegacyQuality != nil {
		forms++
	}
	if forms != 1 {
		return 0, domain.NewValidationError(prefix+"quality", "exactly one of quality, button or legacy_quality required")
	}

	switch {
	case r.Quality != nil:
		return domain.QualityRating(*r.Quality), nil
	case r.LegacyQuality != nil:
		return domain.FromLegacy(*r.LegacyQuality), nil
	}
	if q, ok := domain.FromThreeButton(domain.ThreeButton(r.Button)); ok {
		return q, nil
	}
	if q, ok := domain.FromFourButton(domain.FourButton(r.Button)); ok {
		return q, nil
	}
	return 0, domain.NewValidationError(prefix+"button", "unknown button")
}

func parseUUID(field, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(field, "must be a UUID")
	}
	return id, nil
}

func parseUUIDs(field string, raw []string) ([]uuid.UUID, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	ids := make([]uuid.UUID, 0, len(raw))
	for i, s := range raw {
		id, err := parseUUID(field+"["+strconv.Itoa(i)+"]", s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

func toSessionResponse(s *domain.SessionRecord) sessionResponse {
	return sessionResponse{
		ID:           s.ID.String(),
		LearningMode: s.LearningMode.String(),
		Mode:         s.ModeConfigID.String(),
		Scope: scopeResponse{
			Kind:         string(s.Scope.Kind),
			ContainerIDs: uuidStrings(s.Scope.ContainerIDs),
		},
		Status:           s.Status.String(),
		TotalItems:       s.TotalItems,
		ProcessedCount:   s.ProcessedCount(),
		ProcessedItemIDs: uuidStrings(s.ProcessedItemIDs),
		CorrectCount:     s.CorrectCount,
		IncorrectCount:   s.IncorrectCount,
		AmbiguousCount:   s.AmbiguousCount,
		PointsEarned:     s.PointsEarned,
		StartedAt:        s.StartedAt,
		CompletedAt:      s.CompletedAt,
	}
}

func interval(minutes, days int) intervalFields {
	if days >= 1 {
		return intervalFields{IntervalMinutesOrDays: days, IntervalUnit: "days"}
	}
	return intervalFields{IntervalMinutesOrDays: minutes, IntervalUnit: "minutes"}
}

func toProgressResponse(p domain.ProgressState) progressResponse {
	return progressResponse{
		Status:         p.Status.String(),
		MemoryPower:    p.MemoryPower(),
		Repetitions:    p.Repetitions,
		NextReview:     p.DueTime,
		intervalFields: interval(int(math.Round(p.PreciseInterval*24*60)), p.Interval),
	}
}

func toStatsResponse(s domain.ItemStats) statsResponse {
	return statsResponse{
		TotalReviews:   s.TotalReviews,
		CorrectReviews: s.CorrectReviews,
		SuccessRate:    math.Round(s.SuccessRate*100) / 100,
		MemoryPower:    s.MemoryPower,
		LastReviewedAt: s.LastReviewedAt,
	}
}

func toPreviewResponse(m map[domain.QualityRating]preview.SimulatedOutcome) map[string]previewResponse {
	out := make(map[string]previewResponse, len(m))
	for q, o := range m {
		out[strconv.Itoa(int(q))] = previewResponse{
			Outcome:        o.Outcome.String(),
			Status:         o.Status.String(),
			MemoryPower:    o.MemoryPower,
			Points:         o.Points,
			NextReview:     o.DueTime,
			intervalFields: interval(o.IntervalMinutes, o.Interval),
		}
	}
	return out
}

func toItemResponse(v study.ItemView) itemResponse {
	caps := make([]string, 0, len(v.Item.Capabilities))
	for c := range v.Item.Capabilities {
		caps = append(caps, c.String())
	}
	slices.Sort(caps)

	resp := itemResponse{
		ItemID:       v.Item.ID.String(),
		ContainerID:  v.Item.ContainerID.String(),
		Prompt:       v.Item.Prompt,
		Answer:       v.Item.Answer,
		Capabilities: caps,
		Stats:        toStatsResponse(v.Stats),
		Preview:      toPreviewResponse(v.Preview),
	}
	if v.Progress != nil {
		p := toProgressResponse(*v.Progress)
		resp.Progress = &p
	}
	return resp
}

func toBatchResponse(b *study.BatchResult) batchResponse {
	items := make([]itemResponse, 0, len(b.Items))
	for _, v := range b.Items {
		items = append(items, toItemResponse(v))
	}
	return batchResponse{Session: toSessionResponse(b.Session), Items: items, Done: b.Done}
}

func toAnswerResponse(a *study.AnswerResult) answerResponse {
	return answerResponse{
		ItemID:      a.ItemID.String(),
		Quality:     int(a.Review.Quality),
		Outcome:     a.Review.Outcome.String(),
		Points:      a.Points,
		TotalPoints: a.TotalPoints,
		Progress:    toProgressResponse(a.Progress),
		Stats:       toStatsResponse(a.Stats),
		Session:     toSessionResponse(a.Session),
	}
}

func toAnswerResponses(results []*study.AnswerResult) []answerResponse {
	out := make([]answerResponse, 0, len(results))
	for _, r := range results {
		out = append(out, toAnswerResponse(r))
	}
	return out
}
