package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/finadvisor/assessment-api/internal/core/domain"
)

// AvailabilityReporter is satisfied by the Mongo supervisor.
type AvailabilityReporter interface {
	Available() bool
}

// StoreGate fails store-backed routes with domain.ErrStoreUnavailable while
// the store is unreachable.
func StoreGate(store AvailabilityReporter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if store != nil && !store.Available() {
				return domain.ErrStoreUnavailable
			}
			return next(c)
		}
	}
}
