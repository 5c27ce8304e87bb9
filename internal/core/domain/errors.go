package domain

import (
	"errors"
	"strings"
)

var (
	ErrUserExists         = errors.New("user already exists with this email")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")

	ErrProfileNotFound = errors.New("no form data found for this user")
	ErrProfileConflict = errors.New("concurrent profile creation conflict")

	// ErrUpstream covers transport failures, timeouts and empty answers from
	// the generative model.
	ErrUpstream = errors.New("advice service unavailable")
	// ErrSchemaViolation means the model answered but not in the declared shape.
	ErrSchemaViolation = errors.New("advice response violates schema")
	ErrQuotaExceeded   = errors.New("advice quota exceeded")

	ErrStoreUnavailable = errors.New("store unavailable")
)

// FieldError is a single failed validation rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates every failed rule of a payload.
type ValidationError struct {
	Fields []FieldError
}

func NewValidationError(fields ...FieldError) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}
