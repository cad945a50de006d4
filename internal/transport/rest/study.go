package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/heartmarshall/myenglish-study/internal/domain"
	"github.com/heartmarshall/myenglish-study/internal/service/study"
	"github.com/heartmarshall/myenglish-study/internal/service/study/preview"
)

type studyService interface {
	StartSession(ctx context.Context, input study.StartSessionInput) (*domain.SessionRecord, error)
	GetActiveSession(ctx context.Context, input study.GetActiveSessionInput) (*domain.SessionRecord, error)
	GetNextBatch(ctx context.Context, input study.GetNextBatchInput) (*study.BatchResult, error)
	SubmitAnswer(ctx context.Context, input study.SubmitAnswerInput) (*study.AnswerResult, error)
	SubmitAnswers(ctx context.Context, input study.SubmitAnswersInput) ([]*study.AnswerResult, error)
	EndSession(ctx context.Context, input study.EndSessionInput) (*domain.SessionRecord, error)
	Simulate(ctx context.Context, input study.SimulateInput) (map[domain.QualityRating]preview.SimulatedOutcome, error)
}

// StudyHandler binds the session API to JSON over HTTP.
type StudyHandler struct {
	svc studyService
	log *slog.Logger
}

// NewStudyHandler creates a StudyHandler.
func NewStudyHandler(svc studyService, logger *slog.Logger) *StudyHandler {
	return &StudyHandler{svc: svc, log: logger.With("handler", "study")}
}

// Register mounts the study endpoints on mux.
func (h *StudyHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /study/sessions", h.StartSession)
	mux.HandleFunc("GET /study/sessions/active", h.GetActiveSession)
	mux.HandleFunc("GET /study/sessions/{id}/next", h.GetNextBatch)
	mux.HandleFunc("POST /study/sessions/{id}/answers", h.SubmitAnswers)
	mux.HandleFunc("POST /study/sessions/{id}/end", h.EndSession)
	mux.HandleFunc("POST /study/simulate", h.Simulate)
}

// StartSession handles POST /study/sessions.
func (h *StudyHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	var req startSessionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	input, err := req.toInput()
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	session, err := h.svc.StartSession(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toSessionResponse(session))
}

// GetActiveSession handles GET /study/sessions/active?learning_mode=.
// The session is null when there is nothing to resume.
func (h *StudyHandler) GetActiveSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.svc.GetActiveSession(r.Context(), study.GetActiveSessionInput{
		LearningMode: domain.LearningMode(r.URL.Query().Get("learning_mode")),
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	var resp activeSessionResponse
	if session != nil {
		s := toSessionResponse(session)
		resp.Session = &s
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetNextBatch handles GET /study/sessions/{id}/next?batch_size=.
func (h *StudyHandler) GetNextBatch(w http.ResponseWriter, r *http.Request) {
	sessionID, err := parseUUID("session_id", r.PathValue("id"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	var size int
	if raw := r.URL.Query().Get("batch_size"); raw != "" {
		size, err = strconv.Atoi(raw)
		if err != nil || size <= 0 {
			handleError(h.log, w, r, domain.NewValidationError("batch_size", "must be a positive integer"))
			return
		}
	}

	batch, err := h.svc.GetNextBatch(r.Context(), study.GetNextBatchInput{SessionID: sessionID, BatchSize: size})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toBatchResponse(batch))
}

// SubmitAnswers handles POST /study/sessions/{id}/answers. The body is a
// single answer object, or {"answers": [...]} for a group.
func (h *StudyHandler) SubmitAnswers(w http.ResponseWriter, r *http.Request) {
	sessionID, err := parseUUID("session_id", r.PathValue("id"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	var req submitRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.Answers == nil {
		h.submitOne(w, r, sessionID, req.answerRequest)
		return
	}

	answers := make([]study.AnswerInput, 0, len(req.Answers))
	for i := range req.Answers {
		a, err := req.Answers[i].toInput("answers[" + strconv.Itoa(i) + "].")
		if err != nil {
			handleError(h.log, w, r, err)
			return
		}
		answers = append(answers, a)
	}

	results, err := h.svc.SubmitAnswers(r.Context(), study.SubmitAnswersInput{SessionID: sessionID, Answers: answers})
	if err != nil {
		if len(results) == 0 {
			handleError(h.log, w, r, err)
			return
		}
		status, body := errorStatus(err)
		if status >= http.StatusInternalServerError {
			h.log.ErrorContext(r.Context(), "answer group partially applied",
				slog.String("error", err.Error()),
				slog.Int("applied", len(results)),
			)
		}
		writeJSON(w, status, partialAnswersResponse{errorResponse: body, Results: toAnswerResponses(results)})
		return
	}

	writeJSON(w, http.StatusOK, answersResponse{Results: toAnswerResponses(results)})
}

func (h *StudyHandler) submitOne(w http.ResponseWriter, r *http.Request, sessionID uuid.UUID, req answerRequest) {
	answer, err := req.toInput("")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	res, err := h.svc.SubmitAnswer(r.Context(), study.SubmitAnswerInput{SessionID: sessionID, AnswerInput: answer})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toAnswerResponse(res))
}

// EndSession handles POST /study/sessions/{id}/end.
func (h *StudyHandler) EndSession(w http.ResponseWriter, r *http.Request) {
	sessionID, err := parseUUID("session_id", r.PathValue("id"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	session, err := h.svc.EndSession(r.Context(), study.EndSessionInput{SessionID: sessionID})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toSessionResponse(session))
}

// Simulate handles POST /study/simulate.
func (h *StudyHandler) Simulate(w http.ResponseWriter, r *http.Request) {
	var req simulateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	itemID, err := parseUUID("item_id", req.ItemID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	outcomes, err := h.svc.Simulate(r.Context(), study.SimulateInput{
		ItemID:       itemID,
		LearningMode: domain.LearningMode(req.LearningMode),
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, simulateResponse{ItemID: itemID.String(), Preview: toPreviewResponse(outcomes)})
}
