package domain

import (
	"errors"
	"fmt"
)

// Common domain errors. Every business error in the system unwraps to one of
// these kinds so the boundary can map it without knowing the concrete error.
var (
	// ErrNotFound is returned when a requested resource is not found
	ErrNotFound = errors.New("resource not found")
	// ErrAlreadyExists is returned when trying to create a resource that already exists
	ErrAlreadyExists = errors.New("resource already exists")
	// ErrValidation is returned when input validation fails
	ErrValidation = errors.New("validation error")
	// ErrUnauthorized is returned when a user is not authorized to perform an action
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden is returned when a user is not allowed to perform an action
	ErrForbidden = errors.New("forbidden")
	// ErrConflict is returned when an operation clashes with the current state of a resource
	ErrConflict = errors.New("conflict")
)

// Error is a business error with its own message that belongs to one of the
// kinds above.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the kind to errors.Is.
func (e *Error) Unwrap() error {
	return e.Kind
}

// NewError creates an Error of the given kind.
func NewError(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Errorf creates an Error of the given kind with a formatted message.
func Errorf(kind error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// IsBusiness reports whether err is one of the expected business errors, as
// opposed to an infrastructure failure.
func IsBusiness(err error) bool {
	for _, kind := range []error{
		ErrNotFound,
		ErrAlreadyExists,
		ErrValidation,
		ErrUnauthorized,
		ErrForbidden,
		ErrConflict,
	} {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}
