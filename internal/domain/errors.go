package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrConflict      = errors.New("conflict")

	// ErrNoAdapter is returned when no registered generation adapter can
	// serve a work item. It is a hard failure for that item; the planner
	// picks a different gap on its next call.
	ErrNoAdapter = errors.New("no adapter available")

	// ErrCycle is returned when a curriculum edit would introduce a
	// dependency cycle. The write must be rejected.
	ErrCycle = errors.New("curriculum graph contains a cycle")

	// ErrStageMismatch is returned when an item is not in the stage the
	// caller expected, e.g. a second ProcessItem call after the first one
	// already advanced it.
	ErrStageMismatch = errors.New("item not in expected stage")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
// Validation failures are deterministic: retrying the same input fails
// identically, so the pipeline does not retry them.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s — %s", e.Errors[0].Field, e.Errors[0].Message)
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

// IsDeterministic reports whether err is a pure validation failure that
// cannot succeed on retry with the same input.
func IsDeterministic(err error) bool {
	return errors.Is(err, ErrValidation)
}
