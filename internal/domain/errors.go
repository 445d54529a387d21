package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation error")
	ErrNotLoggedIn  = errors.New("Not logged in")
	ErrForcedLogout = errors.New("logout")
)

// Backend messages and codes that require the client to drop its session.
const (
	MessageSessionExpired     = "session expired"
	MessagePleaseAuthenticate = "Please authenticate"

	CodeSessionExpired  = "SESSION_EXPIRED"
	CodeUnauthenticated = "UNAUTHENTICATED"
)

// APIError is a business error reported by the backend with status "error".
type APIError struct {
	Message    string
	Code       string
	HTTPStatus int
}

func (e *APIError) Error() string { return e.Message }

// ForcesLogout reports whether the backend asked the client to re-authenticate,
// either by one of the logout messages or by a logout code. Unrelated codes
// such as an HTTP status echoed in "code" do not mask the message.
func (e *APIError) ForcesLogout() bool {
	switch e.Code {
	case CodeSessionExpired, CodeUnauthenticated:
		return true
	}
	return e.Message == MessageSessionExpired || e.Message == MessagePleaseAuthenticate
}

// ForcedLogoutError wraps the APIError that triggered a forced logout.
// errors.Is(err, ErrForcedLogout) and errors.As(err, **APIError) both hold.
type ForcedLogoutError struct {
	Cause *APIError
}

func (e *ForcedLogoutError) Error() string { return ErrForcedLogout.Error() }

func (e *ForcedLogoutError) Unwrap() []error { return []error{ErrForcedLogout, e.Cause} }

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
