// Package apperror defines the domain error kinds shared by the service and
// repository layers. HTTP handlers map these kinds to status codes; nothing
// below the handler layer knows about HTTP.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation error")
	ErrConflict     = errors.New("conflict")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
	// ErrPrecondition marks a request that is well-formed but arrives before
	// a required earlier step (for example onboarding step 2 before step 1).
	ErrPrecondition = errors.New("precondition failed")
)

type AppError struct {
	Err     error  // sentinel kind
	Message string // human-readable message, safe to return to clients
	Field   string // optional: request field the error refers to
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound reports a missing resource. Callers that scope lookups by owner
// also use it for rows that exist but belong to someone else.
func NotFound(resource string, id any) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %v", resource, id),
	}
}

// NotFoundMessage is NotFound with a caller-supplied message.
func NotFoundMessage(message string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: message,
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// Conflict reports a uniqueness violation on field.
func Conflict(field, message string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: message,
		Field:   field,
	}
}

// Forbidden returns an AppError indicating the caller lacks permission.
func Forbidden(message string) *AppError {
	return &AppError{
		Err:     ErrForbidden,
		Message: message,
	}
}

// Unauthorized is used for every authentication failure. The message must
// never reveal which part of the credential was wrong.
func Unauthorized(message string) *AppError {
	return &AppError{
		Err:     ErrUnauthorized,
		Message: message,
	}
}

// PreconditionFailed names the missing precursor step in its message.
func PreconditionFailed(message string) *AppError {
	return &AppError{
		Err:     ErrPrecondition,
		Message: message,
	}
}
