package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/finadvisor/assessment-api/internal/api/middleware"
	"github.com/finadvisor/assessment-api/internal/core/domain"
)

// ctxUserID returns the identity injected by the Auth middleware. An empty
// value means the middleware did not run, which is treated as unauthenticated.
func ctxUserID(c echo.Context) (string, error) {
	userID, _ := c.Get(middleware.ContextUserID).(string)
	if userID == "" {
		return "", domain.ErrUnauthorized
	}
	return userID, nil
}
