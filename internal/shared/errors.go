package shared

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNotAuthorized indicates the caller's role lacks the grant for an operation.
	ErrNotAuthorized = errors.New("permission denied")
	// ErrValidation indicates input or constraint failure.
	ErrValidation = errors.New("validation failed")
	// ErrStorageUnavailable indicates the database cannot be reached or is not initialised.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrSessionExpired indicates the persisted CLI session is gone.
	ErrSessionExpired = errors.New("session expired")
)

// ValidationError names the offending field of a rejected input.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError builds a ValidationError for field.
func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Unwrap lets errors.Is match ErrValidation.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// UserSafeMessage maps an error to a message suitable for terminal output.
func UserSafeMessage(err error) string {
	var verr *ValidationError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotAuthorized):
		return "Permission denied."
	case errors.As(err, &verr):
		return "Invalid input: " + verr.Error()
	case errors.Is(err, ErrNotFound):
		return "Not found."
	case errors.Is(err, ErrInvalidCredentials):
		return "Invalid username or password."
	case errors.Is(err, ErrSessionExpired):
		return "Session expired, please log in again."
	case errors.Is(err, ErrStorageUnavailable):
		return "Database unavailable or not initialised. Run `epiccrm init` first."
	default:
		return "Unexpected error, see the log file for details."
	}
}
