package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrConflict      = errors.New("conflict")

	ErrNoCandidates     = errors.New("no candidate items")
	ErrInvalidScope     = errors.New("invalid scope")
	ErrSessionNotFound  = errors.New("session not found")
	ErrSessionNotActive = errors.New("session not active")
	ErrPersistence      = errors.New("persistence failure")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// NoCandidatesError is returned by StartSession when the selection for the
// requested mode and scope is empty. It is an expected outcome (an empty due
// queue is common), so callers branch on it with errors.As.
type NoCandidatesError struct {
	Mode ModeID
}

func (e *NoCandidatesError) Error() string {
	return fmt.Sprintf("no candidate items for mode %q", e.Mode)
}

func (e *NoCandidatesError) Unwrap() error { return ErrNoCandidates }

// Message returns the learner-facing text for the empty selection.
func (e *NoCandidatesError) Message() string {
	switch e.Mode {
	case ModeDue:
		return "Nothing is due for review right now. Come back later or learn something new."
	case ModeHard:
		return "You have no difficult items at the moment. Nice work!"
	case ModeNew:
		return "There are no new items left to learn in this selection."
	case ModeAllReview, ModeAutoplayLearned:
		return "You have not learned any items in this selection yet."
	case ModeMixed:
		return "Nothing is due and there are no new items in this selection."
	default:
		if _, ok := CapabilityForMode(e.Mode); ok {
			return "No items in this selection support this practice mode."
		}
		return "There is nothing to study in this selection."
	}
}

// InvalidScopeError rejects a scope that references containers outside the
// user's accessible set or is malformed.
type InvalidScopeError struct {
	Reason       string
	ContainerIDs []uuid.UUID
}

func (e *InvalidScopeError) Error() string {
	if len(e.ContainerIDs) == 0 {
		return "invalid scope: " + e.Reason
	}
	ids := make([]string, len(e.ContainerIDs))
	for i, id := range e.ContainerIDs {
		ids[i] = id.String()
	}
	return fmt.Sprintf("invalid scope: %s (%s)", e.Reason, strings.Join(ids, ", "))
}

func (e *InvalidScopeError) Unwrap() error { return ErrInvalidScope }

// PersistenceError marks a storage failure while reading or writing study state.
// It unwraps to both ErrPersistence and the underlying cause.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() []error { return []error{ErrPersistence, e.Err} }

// NewPersistenceError wraps err unless it already carries a meaning callers
// branch on: domain sentinels and context cancellation pass through wrapped
// with op only.
func NewPersistenceError(op string, err error) error {
	if err == nil {
		return nil
	}
	for _, passthrough := range []error{
		ErrNotFound, ErrAlreadyExists, ErrValidation, ErrPersistence,
		ErrSessionNotFound, ErrSessionNotActive, ErrInvalidScope,
		context.Canceled, context.DeadlineExceeded,
	} {
		if errors.Is(err, passthrough) {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	return &PersistenceError{Op: op, Err: err}
}
