package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/finadvisor/assessment-api/internal/core/domain"
)

type fixedAvailability bool

func (f fixedAvailability) Available() bool { return bool(f) }

func TestStoreGate(t *testing.T) {
	e := echo.New()

	t.Run("available", func(t *testing.T) {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		called := false
		err := StoreGate(fixedAvailability(true))(func(echo.Context) error {
			called = true
			return nil
		})(c)
		if err != nil || !called {
			t.Fatalf("expected pass-through, got err=%v called=%v", err, called)
		}
	})

	t.Run("unavailable", func(t *testing.T) {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		err := StoreGate(fixedAvailability(false))(func(echo.Context) error {
			t.Fatalf("should not reach next")
			return nil
		})(c)
		if !errors.Is(err, domain.ErrStoreUnavailable) {
			t.Fatalf("expected ErrStoreUnavailable, got %v", err)
		}
	})
}
