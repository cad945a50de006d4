package study

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/myenglish-study/internal/domain"
)

// maxDurationMs caps the reported answer time at 10 minutes.
const maxDurationMs = 600_000

// StartSessionInput holds the parameters for starting a session.
type StartSessionInput struct {
	LearningMode domain.LearningMode
	Mode         domain.ModeID
	Scope        domain.ScopeDescriptor
}

// Validate checks all fields and collects all errors. Scope shape errors are
// reported as InvalidScopeError by the selector.
func (i *StartSessionInput) Validate() error {
	var errs []domain.FieldError

	if !i.LearningMode.IsValid() {
		errs = append(errs, domain.FieldError{Field: "learning_mode", Message: "unknown learning mode"})
	}
	if i.Mode == "" {
		errs = append(errs, domain.FieldError{Field: "mode", Message: "required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// GetActiveSessionInput holds the parameters for resuming a session.
type GetActiveSessionInput struct {
	LearningMode domain.LearningMode
}

// Validate checks all fields and collects all errors.
func (i *GetActiveSessionInput) Validate() error {
	if !i.LearningMode.IsValid() {
		return domain.NewValidationError("learning_mode", "unknown learning mode")
	}
	return nil
}

// GetNextBatchInput holds the parameters for fetching the next items.
// A zero BatchSize means the configured default.
type GetNextBatchInput struct {
	SessionID uuid.UUID
	BatchSize int
}

// Validate checks all fields and collects all errors.
func (i *GetNextBatchInput) Validate(maxBatch int) error {
	var errs []domain.FieldError

	if i.SessionID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "session_id", Message: "required"})
	}
	if i.BatchSize < 0 || i.BatchSize > maxBatch {
		errs = append(errs, domain.FieldError{Field: "batch_size", Message: "out of range"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// AnswerInput is one answer. Quality is on the 0..7 scale and is clamped,
// never rejected.
type AnswerInput struct {
	ItemID     uuid.UUID
	Quality    domain.QualityRating
	DurationMs *int
}

func (a *AnswerInput) validate(prefix string) []domain.FieldError {
	var errs []domain.FieldError

	if a.ItemID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: prefix + "item_id", Message: "required"})
	}
	if a.DurationMs != nil && (*a.DurationMs < 0 || *a.DurationMs > maxDurationMs) {
		errs = append(errs, domain.FieldError{Field: prefix + "duration_ms", Message: "must be between 0 and 600000"})
	}
	return errs
}

// SubmitAnswerInput holds the parameters for answering one item.
type SubmitAnswerInput struct {
	SessionID uuid.UUID
	AnswerInput
}

// Validate checks all fields and collects all errors.
func (i *SubmitAnswerInput) Validate() error {
	var errs []domain.FieldError

	if i.SessionID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "session_id", Message: "required"})
	}
	errs = append(errs, i.AnswerInput.validate("")...)

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// SubmitAnswersInput holds a group of answers submitted in one round-trip.
type SubmitAnswersInput struct {
	SessionID uuid.UUID
	Answers   []AnswerInput
}

// Validate checks all fields and collects all errors.
func (i *SubmitAnswersInput) Validate(maxBatch int) error {
	var errs []domain.FieldError

	if i.SessionID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "session_id", Message: "required"})
	}
	if len(i.Answers) == 0 {
		errs = append(errs, domain.FieldError{Field: "answers", Message: "at least one required"})
	}
	if len(i.Answers) > maxBatch {
		errs = append(errs, domain.FieldError{Field: "answers", Message: "too many answers"})
	}
	for idx := range i.Answers {
		errs = append(errs, i.Answers[idx].validate(answerPrefix(idx))...)
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// EndSessionInput holds the parameters for ending a session.
type EndSessionInput struct {
	SessionID uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i *EndSessionInput) Validate() error {
	if i.SessionID == uuid.Nil {
		return domain.NewValidationError("session_id", "required")
	}
	return nil
}

// SimulateInput holds the parameters for previewing an item.
type SimulateInput struct {
	ItemID       uuid.UUID
	LearningMode domain.LearningMode
}

// Validate checks all fields and collects all errors.
func (i *SimulateInput) Validate() error {
	var errs []domain.FieldError

	if i.ItemID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "item_id", Message: "required"})
	}
	if !i.LearningMode.IsValid() {
		errs = append(errs, domain.FieldError{Field: "learning_mode", Message: "unknown learning mode"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func answerPrefix(idx int) string {
	return fmt.Sprintf("answers[%d].", idx)
}
