package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	_ "github.com/finadvisor/assessment-api/docs"
	"github.com/finadvisor/assessment-api/internal/api/handler"
	"github.com/finadvisor/assessment-api/internal/api/middleware"
	"github.com/finadvisor/assessment-api/internal/core/ports"
)

const (
	bodyLimit      = "1M"
	authRateBurst  = 10
	limiterExpires = 3 * time.Minute
)

// Dependencies is everything the HTTP layer needs. Services are interfaces so
// tests can wire in-memory fakes.
type Dependencies struct {
	Log zerolog.Logger

	AuthService    ports.AuthService
	ProfileService ports.ProfileService
	AdviceService  ports.AdviceService

	// Store gates store-backed routes; nil means always available.
	Store           middleware.AvailabilityReporter
	ReadinessChecks map[string]handler.DependencyCheck

	AllowedOrigins []string
	// AuthRateLimit is the per-IP request rate for signup and login, in
	// requests per second. Zero disables limiting.
	AuthRateLimit float64
	// ExposeErrorDetail echoes internal causes of 5xx errors. Development only.
	ExposeErrorDetail bool

	// Registerer and Gatherer default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log, deps.ExposeErrorDetail)

	registerer, gatherer := deps.Registerer, deps.Gatherer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(deps.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: deps.AllowedOrigins,
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	e.Use(echomiddleware.BodyLimit(bodyLimit))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "http",
		Namespace:  "assessment",
		Registerer: registerer,
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.AuthService)
	profileHandler := handler.NewProfileHandler(deps.ProfileService)
	adviceHandler := handler.NewAdviceHandler(deps.AdviceService)
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.ReadinessChecks)

	auth := middleware.Auth(deps.AuthService)
	gate := middleware.StoreGate(deps.Store)

	// --- Auth routes ---
	publicMW := []echo.MiddlewareFunc{gate}
	if deps.AuthRateLimit > 0 {
		publicMW = append([]echo.MiddlewareFunc{authRateLimiter(deps.AuthRateLimit)}, publicMW...)
	}
	e.POST("/signup", authHandler.Signup, publicMW...)
	e.POST("/login", authHandler.Login, publicMW...)

	// --- Authenticated, store-backed routes ---
	e.GET("/user-profile", authHandler.UserProfile, auth, gate)
	e.POST("/submit-form", profileHandler.SubmitForm, auth, gate)
	e.GET("/user-form-data", profileHandler.GetFormData, auth, gate)
	e.GET("/user-financial-summary", profileHandler.Summary, auth, gate)

	advice := e.Group("/api", auth, gate)
	advice.POST("/investment-advice", adviceHandler.InvestmentAdvice)
	advice.POST("/goal-analysis", adviceHandler.GoalAnalysis)

	// --- Operational endpoints (no auth required) ---
	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func authRateLimiter(perSecond float64) echo.MiddlewareFunc {
	store := echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(perSecond),
		Burst:     authRateBurst,
		ExpiresIn: limiterExpires,
	})
	return echomiddleware.RateLimiter(store)
}

// requestLogger writes one structured access log line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= 500 {
				ev = log.Error()
			} else if v.Status >= 400 {
				ev = log.Warn()
			}
			ev.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}
