package domain

import "errors"

// Error kinds. Use errors.Is against these to classify a failure; anything
// that matches none of them is an internal error.
var (
	ErrValidation        = errors.New("validation error")
	ErrNotFound          = errors.New("project not found")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Error is a classified, human-readable failure raised by the project core.
type Error struct {
	Kind    error
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// NewValidationError reports malformed, missing or out-of-range input.
func NewValidationError(field, message string) *Error {
	return &Error{Kind: ErrValidation, Field: field, Message: message}
}

// NewNotFoundError reports an id that does not resolve to a live project.
func NewNotFoundError() *Error {
	return &Error{Kind: ErrNotFound, Field: "id", Message: "Project not found"}
}

// NewTransitionError reports a status change the guard refused.
func NewTransitionError(message string) *Error {
	return &Error{Kind: ErrInvalidTransition, Field: "status", Message: message}
}
