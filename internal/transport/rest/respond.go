package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/myenglish-study/internal/domain"
	"github.com/heartmarshall/myenglish-study/pkg/ctxutil"
)

// maxBodyBytes bounds every JSON request body.
const maxBodyBytes = 1 << 20

// errorResponse is the body of every non-2xx response.
type errorResponse struct {
	Error  string          `json:"error"`
	Code   string          `json:"code,omitempty"`
	Mode   string          `json:"mode,omitempty"`
	Fields []fieldResponse `json:"fields,omitempty"`
}

type fieldResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// decodeJSON reads a single JSON object into dst, rejecting unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// errorStatus maps a service error to its HTTP status and response body.
// Internal details never reach the client.
func errorStatus(err error) (int, errorResponse) {
	var (
		noCandidates *domain.NoCandidatesError
		validation   *domain.ValidationError
	)

	switch {
	case errors.As(err, &noCandidates):
		return http.StatusUnprocessableEntity, errorResponse{
			Error: noCandidates.Message(),
			Code:  "no_candidates",
			Mode:  noCandidates.Mode.String(),
		}
	case errors.As(err, &validation):
		fields := make([]fieldResponse, 0, len(validation.Errors))
		for _, fe := range validation.Errors {
			fields = append(fields, fieldResponse{Field: fe.Field, Message: fe.Message})
		}
		return http.StatusBadRequest, errorResponse{Error: "validation failed", Code: "validation", Fields: fields}
	case errors.Is(err, domain.ErrInvalidScope):
		return http.StatusBadRequest, errorResponse{Error: err.Error(), Code: "invalid_scope"}
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, errorResponse{Error: "validation failed", Code: "validation"}
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, errorResponse{Error: "unauthorized", Code: "unauthorized"}
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, errorResponse{Error: "forbidden", Code: "forbidden"}
	case errors.Is(err, domain.ErrSessionNotFound), errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, errorResponse{Error: "not found", Code: "not_found"}
	case errors.Is(err, domain.ErrSessionNotActive):
		return http.StatusConflict, errorResponse{Error: "session is not active", Code: "session_not_active"}
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrAlreadyExists):
		return http.StatusConflict, errorResponse{Error: "conflict", Code: "conflict"}
	default:
		return http.StatusInternalServerError, errorResponse{Error: "temporary failure, please retry", Code: "internal"}
	}
}

// handleError writes the mapped error response. Server errors are logged
// once here with the full cause.
func handleError(log *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	status, body := errorStatus(err)
	if status >= http.StatusInternalServerError {
		args := append([]any{slog.String("error", err.Error())}, ctxutil.LogAttrs(r.Context())...)
		log.ErrorContext(r.Context(), "request failed", args...)
	}
	writeJSON(w, status, body)
}
