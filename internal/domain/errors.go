package domain

import "fmt"

// ErrorKind is the machine-readable failure classification every mutating
// operation reports alongside its human-readable message.
type ErrorKind string

const (
	ErrKindValidation        ErrorKind = "validation"
	ErrKindInvalidTransition ErrorKind = "invalid_transition"
	ErrKindNotFound          ErrorKind = "not_found"
	ErrKindConflict          ErrorKind = "conflict"
	ErrKindUnavailable       ErrorKind = "unavailable"
	ErrKindInternal          ErrorKind = "internal"
)

// Error carries a kind for the caller to dispatch on and a message for the
// user. Field is set for validation failures so the UI can highlight the
// offending input.
type Error struct {
	Kind    ErrorKind
	Field   string
	Message string
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func NewValidationError(field, message string) *Error {
	return &Error{Kind: ErrKindValidation, Field: field, Message: message}
}

func NewInvalidTransitionError(format string, args ...any) *Error {
	return &Error{Kind: ErrKindInvalidTransition, Message: fmt.Sprintf(format, args...)}
}

func NewNotFoundError(entity, id string) *Error {
	return &Error{Kind: ErrKindNotFound, Message: fmt.Sprintf("%s %s not found", entity, id)}
}

func NewConflictError(format string, args ...any) *Error {
	return &Error{Kind: ErrKindConflict, Message: fmt.Sprintf(format, args...)}
}

func NewInternalError(message string) *Error {
	return &Error{Kind: ErrKindInternal, Message: message}
}

// KindOf extracts the kind from an error, defaulting to internal for
// anything that is not a domain error.
func KindOf(err error) ErrorKind {
	if de, ok := err.(*Error); ok {
		return de.Kind
	}
	return ErrKindInternal
}
