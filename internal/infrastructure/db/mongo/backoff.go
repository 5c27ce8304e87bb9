package mongo

import "time"

const (
	backoffBase = 500 * time.Millisecond
	backoffMax  = 30 * time.Second
)

// Backoff returns the delay before retry number attempt (zero based):
// 500ms doubling per attempt, capped at 30s.
func Backoff(attempt int) time.Duration {
	d := backoffBase
	for i := 0; i < attempt; i++ {
		d *= 2
		if d >= backoffMax {
			return backoffMax
		}
	}
	return d
}
