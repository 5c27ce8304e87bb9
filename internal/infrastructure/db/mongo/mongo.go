package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultTimeout = 10 * time.Second

// Config captures the settings required to establish a MongoDB connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
	// Retries is the number of extra connection attempts made by
	// ConnectWithRetry after the first one fails.
	Retries int
}

// Connect establishes a MongoDB client, verifies connectivity with a ping, and
// returns both the client and the selected database. A default timeout is
// applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(cfg.Database)
	return client, db, nil
}

// ConnectWithRetry calls Connect until it succeeds, cfg.Retries is exhausted
// or ctx is cancelled, sleeping Backoff(attempt) between attempts.
func ConnectWithRetry(ctx context.Context, cfg Config, log zerolog.Logger) (*mongo.Client, *mongo.Database, error) {
	var lastErr error
	for attempt := 0; attempt <= cfg.Retries; attempt++ {
		client, db, err := Connect(ctx, cfg)
		if err == nil {
			return client, db, nil
		}
		lastErr = err

		if attempt == cfg.Retries {
			break
		}
		wait := Backoff(attempt)
		log.Warn().Err(err).Int("attempt", attempt+1).Dur("retry_in", wait).Msg("mongo unavailable, retrying")

		select {
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		case <-time.After(wait):
		}
	}
	return nil, nil, fmt.Errorf("mongo: giving up after %d attempts: %w", cfg.Retries+1, lastErr)
}
