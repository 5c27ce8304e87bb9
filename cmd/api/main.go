// @title           Financial Assessment API
// @version         1.0
// @description     Questionnaire storage and AI-generated investment guidance.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/finadvisor/assessment-api/internal/api"
	"github.com/finadvisor/assessment-api/internal/api/handler"
	"github.com/finadvisor/assessment-api/internal/api/metrics"
	"github.com/finadvisor/assessment-api/internal/core/ports"
	"github.com/finadvisor/assessment-api/internal/core/service"
	"github.com/finadvisor/assessment-api/internal/infrastructure/db/mongo"
	"github.com/finadvisor/assessment-api/internal/infrastructure/db/redis"
	"github.com/finadvisor/assessment-api/internal/infrastructure/llm/gemini"
	"github.com/finadvisor/assessment-api/internal/pkg/config"
	"github.com/finadvisor/assessment-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// A missing .env is fine; real deployments use the process environment.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad(ctx)

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "assessment-api",
		Caller:  cfg.IsDevelopment(),
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server exited with error")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// --- MongoDB ---
	mongoClient, db, err := mongo.ConnectWithRetry(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		Timeout:  cfg.Mongo.ConnectTimeout,
		Retries:  cfg.Mongo.ConnectRetries,
	}, logger.Named("mongo"))
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(disconnectCtx); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect failed")
		}
	}()
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongo")

	userRepo := mongo.NewUserRepository(db)
	profileRepo := mongo.NewProfileRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := profileRepo.EnsureIndexes(ctx); err != nil {
		return err
	}

	supervisor := mongo.NewSupervisor(mongoClient, cfg.Mongo.HealthInterval, logger.Named("mongo"))
	supervisor.OnChange(metrics.SetStoreAvailable)
	metrics.SetStoreAvailable(true)
	go supervisor.Run(ctx)

	// --- Redis (advice quota) ---
	readiness := map[string]handler.DependencyCheck{
		"mongodb": func(ctx context.Context) error {
			if !supervisor.Available() {
				return errors.New("store unavailable")
			}
			return supervisor.Check(ctx)
		},
	}

	var quota ports.AdviceQuota
	redisClient, err := redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, advice quota disabled")
	} else {
		defer redisClient.Close()
		quota = redis.NewAdviceQuota(redisClient, cfg.Gemini.DailyLimit, 24*time.Hour)
		readiness["redis"] = func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}
		log.Info().Str("addr", cfg.Redis.Addr).Int("daily_limit", cfg.Gemini.DailyLimit).Msg("advice quota enabled")
	}

	// --- Gemini ---
	if cfg.Gemini.APIKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is empty, advice requests will fail")
	}
	gateway := gemini.NewClient(gemini.Config{
		APIKey:  cfg.Gemini.APIKey,
		Model:   cfg.Gemini.Model,
		BaseURL: cfg.Gemini.BaseURL,
		Timeout: cfg.Gemini.Timeout,
	}, log)

	// --- Services ---
	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL, cfg.BcryptCost)
	profileSvc := service.NewProfileService(profileRepo, logger.Named("profile"))
	adviceSvc := service.NewAdviceService(profileRepo, gateway, quota, logger.Named("advice"))

	e := api.NewRouter(api.Dependencies{
		Log:               log,
		AuthService:       authSvc,
		ProfileService:    profileSvc,
		AdviceService:     adviceSvc,
		Store:             supervisor,
		ReadinessChecks:   readiness,
		AllowedOrigins:    cfg.AllowedOrigins,
		AuthRateLimit:     cfg.AuthRateLimit,
		ExposeErrorDetail: cfg.IsDevelopment(),
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info().Msg("server stopped")
	return nil
}
