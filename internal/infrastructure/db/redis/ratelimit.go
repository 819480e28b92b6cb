package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultLoginMax    = 10
	defaultLoginWindow = time.Minute
)

// LoginLimiter throttles login attempts with a fixed-window counter.
// Key format: login:<username>:<window_start_unix>
type LoginLimiter struct {
	client *redis.Client
	max    int64
	window time.Duration
}

// NewLoginLimiter creates a LoginLimiter wrapping the given Redis client.
func NewLoginLimiter(client *redis.Client, max int, window time.Duration) *LoginLimiter {
	if max <= 0 {
		max = defaultLoginMax
	}
	if window <= 0 {
		window = defaultLoginWindow
	}
	return &LoginLimiter{client: client, max: int64(max), window: window}
}

// Allow records a login attempt for the username and reports whether it is
// within the window budget.
func (l *LoginLimiter) Allow(ctx context.Context, username string) (bool, error) {
	key := l.key(username, time.Now().UTC())

	hits, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("login limit: %w", err)
	}
	if hits == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			return false, fmt.Errorf("login limit expire: %w", err)
		}
	}

	return hits <= l.max, nil
}

func (l *LoginLimiter) key(username string, now time.Time) string {
	return fmt.Sprintf("login:%s:%d", username, now.Truncate(l.window).Unix())
}
