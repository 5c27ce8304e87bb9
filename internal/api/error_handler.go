package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/finadvisor/assessment-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Status string              `json:"status"`
	Code   string              `json:"code"`
	Error  string              `json:"error"`
	Errors []domain.FieldError `json:"errors,omitempty"`
	Detail string              `json:"detail,omitempty"`
}

type resolvedError struct {
	status  int
	code    string
	message string
	fields  []domain.FieldError
	logged  bool
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status codes.
//   - Logs unexpected and upstream errors without leaking them to the client.
//   - Renders {"status":"error","code":...,"error":...}.
//
// With exposeDetail set (development only) the underlying cause of 5xx
// errors is echoed in "detail".
func NewHTTPErrorHandler(log zerolog.Logger, exposeDetail bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		r := resolveError(err)
		if r.logged {
			log.Error().
				Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
				Int("status", r.status).
				Msg("request failed")
		}

		resp := errorResponse{
			Status: "error",
			Code:   r.code,
			Error:  r.message,
			Errors: r.fields,
		}
		if exposeDetail && r.status >= http.StatusInternalServerError {
			resp.Detail = err.Error()
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(r.status)
			return
		}
		_ = c.JSON(r.status, resp)
	}
}

func resolveError(err error) resolvedError {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		return resolvedError{
			status:  http.StatusBadRequest,
			code:    "validation_error",
			message: "validation failed",
			fields:  vErr.Fields,
		}
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrUserExists):
		return resolvedError{status: http.StatusBadRequest, code: "conflict", message: "User already exists with this email"}
	case errors.Is(err, domain.ErrProfileConflict):
		return resolvedError{status: http.StatusConflict, code: "conflict", message: "profile was modified concurrently, retry"}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return resolvedError{status: http.StatusBadRequest, code: "invalid_credentials", message: "Invalid credentials"}
	case errors.Is(err, domain.ErrUnauthorized):
		return resolvedError{status: http.StatusUnauthorized, code: "unauthorized", message: "unauthorized"}
	case errors.Is(err, domain.ErrProfileNotFound):
		return resolvedError{status: http.StatusNotFound, code: "not_found", message: "No form data found for this user"}
	case errors.Is(err, domain.ErrUserNotFound):
		return resolvedError{status: http.StatusNotFound, code: "not_found", message: "User not found"}
	case errors.Is(err, domain.ErrQuotaExceeded):
		return resolvedError{status: http.StatusTooManyRequests, code: "quota_exceeded", message: "advice quota exceeded, try again later"}
	case errors.Is(err, domain.ErrUpstream), errors.Is(err, domain.ErrSchemaViolation):
		return resolvedError{status: http.StatusInternalServerError, code: "advice_failed", message: "failed to generate advice", logged: true}
	case errors.Is(err, domain.ErrStoreUnavailable):
		return resolvedError{status: http.StatusServiceUnavailable, code: "store_unavailable", message: "service temporarily unavailable", logged: true}
	}

	// Echo's own errors (bind failures, 404 from router, auth middleware, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		r := resolvedError{status: he.Code, code: codeForStatus(he.Code), message: fmt.Sprintf("%v", he.Message)}
		if he.Code >= http.StatusInternalServerError {
			r.logged = true
		}
		return r
	}

	// Unexpected error: log the real cause, return a generic message.
	return resolvedError{status: http.StatusInternalServerError, code: "internal_error", message: "internal server error", logged: true}
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "bad_request"
	case http.StatusUnauthorized:
		return "unauthorized"
	case http.StatusForbidden:
		return "forbidden"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusMethodNotAllowed:
		return "method_not_allowed"
	case http.StatusRequestEntityTooLarge:
		return "payload_too_large"
	case http.StatusTooManyRequests:
		return "rate_limited"
	case http.StatusServiceUnavailable:
		return "unavailable"
	default:
		if status >= http.StatusInternalServerError {
			return "internal_error"
		}
		return "error"
	}
}
