package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultQuotaWindow = 24 * time.Hour

// AdviceQuota limits advice generations per user with a fixed window counter.
// Key format: quota:advice:<user_id>:<window_start_unix>
type AdviceQuota struct {
	client *redis.Client
	limit  int64
	window time.Duration
	now    func() time.Time
}

// NewAdviceQuota allows limit requests per user per window. A non-positive
// limit disables the quota.
func NewAdviceQuota(client *redis.Client, limit int, window time.Duration) *AdviceQuota {
	if window <= 0 {
		window = defaultQuotaWindow
	}
	return &AdviceQuota{client: client, limit: int64(limit), window: window, now: time.Now}
}

// Allow consumes one unit for userID and reports whether it was within the limit.
func (q *AdviceQuota) Allow(ctx context.Context, userID string) (bool, error) {
	if q.limit <= 0 {
		return true, nil
	}

	key := q.key(userID, q.now())
	pipe := q.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, q.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("advice quota: %w", err)
	}
	return incr.Val() <= q.limit, nil
}

func (q *AdviceQuota) key(userID string, now time.Time) string {
	start := now.UTC().Truncate(q.window)
	return fmt.Sprintf("quota:advice:%s:%d", userID, start.Unix())
}
