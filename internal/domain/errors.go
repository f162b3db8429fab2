package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	// ErrNotFound is returned when no user matches the given identifier.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials is returned when password verification fails
	// for an existing account.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAlreadyExists is returned on duplicate registration attempts.
	ErrAlreadyExists = errors.New("already exists")
	// ErrIdentityUnavailable is returned when the identity provider never
	// yields a usable email address for the account.
	ErrIdentityUnavailable = errors.New("identity unavailable")
	// ErrExternalLogin is the uniform failure for external-identity login:
	// every provider-level error is converted to it at the service
	// boundary so callers never handle provider specifics.
	ErrExternalLogin = errors.New("external login failed")
	// ErrValidation marks input validation failures.
	ErrValidation = errors.New("validation error")
	// ErrUnauthorized is returned for missing or invalid access tokens.
	ErrUnauthorized = errors.New("unauthorized")
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
