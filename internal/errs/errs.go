// Package errs contains sentinel errors shared by the repository, service
// and handler layers so that failures map to stable HTTP statuses.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthenticated indicates a missing, malformed or rejected bearer token.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrValidation indicates missing or malformed request fields.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound indicates the record does not exist or is not owned by the caller.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a unique constraint violation.
	ErrConflict = errors.New("conflict")
)

// ValidationError carries the human readable reason of a validation failure.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// Is lets errors.Is(err, ErrValidation) match any ValidationError.
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Validation builds a ValidationError with a formatted reason.
func Validation(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}
