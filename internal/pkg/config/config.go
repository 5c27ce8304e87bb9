package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`
	JWTSecret string `env:"JWT_SECRET"`

	TokenTTL       time.Duration `env:"TOKEN_TTL,       default=1h"`
	BcryptCost     int           `env:"BCRYPT_COST,     default=10"`
	AllowedOrigins []string      `env:"ALLOWED_ORIGINS, default=http://localhost:3000"`
	AuthRateLimit  float64       `env:"AUTH_RATE_LIMIT, default=5"`

	Mongo  MongoConfig
	Redis  RedisConfig
	Gemini GeminiConfig
}

type MongoConfig struct {
	URI            string        `env:"MONGO_URI,             default=mongodb://localhost:27017"`
	Database       string        `env:"MONGO_DB,              default=financial_assessment"`
	ConnectTimeout time.Duration `env:"MONGO_CONNECT_TIMEOUT, default=10s"`
	ConnectRetries int           `env:"MONGO_CONNECT_RETRIES, default=5"`
	HealthInterval time.Duration `env:"MONGO_HEALTH_INTERVAL, default=15s"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type GeminiConfig struct {
	APIKey     string        `env:"GEMINI_API_KEY"`
	Model      string        `env:"GEMINI_MODEL,       default=gemini-2.0-flash"`
	BaseURL    string        `env:"GEMINI_BASE_URL,    default=https://generativelanguage.googleapis.com"`
	Timeout    time.Duration `env:"GEMINI_TIMEOUT,     default=30s"`
	DailyLimit int           `env:"ADVICE_DAILY_LIMIT, default=20"`
}

// IsDevelopment reports whether the service runs with developer conveniences
// (pretty logs, error details in responses).
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Validate rejects configurations the service cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, errors.New("TOKEN_TTL must be positive"))
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost))
	}
	if c.Mongo.ConnectRetries < 0 {
		errs = append(errs, errors.New("MONGO_CONNECT_RETRIES must not be negative"))
	}
	if c.AuthRateLimit < 0 {
		errs = append(errs, errors.New("AUTH_RATE_LIMIT must not be negative"))
	}
	return errors.Join(errs...)
}

// Load reads configuration from environment variables using go-envconfig
// and validates it.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

// MustLoad is Load for process start-up: it panics on error.
func MustLoad(ctx context.Context) *Config {
	cfg, err := Load(ctx)
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
