package handler

import (
	"errors"

	"github.com/finadvisor/assessment-api/internal/core/domain"
)

// outcomeOf turns an error into a low-cardinality metric label.
func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrUserExists):
		return "conflict"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrQuotaExceeded):
		return "quota_exceeded"
	case errors.Is(err, domain.ErrUpstream):
		return "upstream_error"
	case errors.Is(err, domain.ErrSchemaViolation):
		return "schema_violation"
	case errors.Is(err, domain.ErrProfileNotFound):
		return "no_profile"
	default:
		var vErr *domain.ValidationError
		if errors.As(err, &vErr) {
			return "invalid"
		}
		return "error"
	}
}
