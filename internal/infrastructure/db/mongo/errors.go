package mongo

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/x/mongo/driver/topology"

	"github.com/finadvisor/assessment-api/internal/core/domain"
)

// wrapStoreError annotates a driver error with op. Failures that mean the
// server cannot be reached also wrap domain.ErrStoreUnavailable, so requests
// fail with a retryable 503 before the supervisor's next probe notices.
func wrapStoreError(op string, err error) error {
	if isUnavailable(err) {
		return fmt.Errorf("%s: %w: %w", op, domain.ErrStoreUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isUnavailable(err error) bool {
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) {
		return true
	}
	var sel topology.ServerSelectionError
	if errors.As(err, &sel) {
		return true
	}
	return errors.Is(err, mongo.ErrClientDisconnected)
}
