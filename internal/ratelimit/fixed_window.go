// Package ratelimit throttles the unauthenticated auth endpoints per client.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/valmaiimtiyaz/artzybackend/pkg/utilities"
)

var fixedWindowScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return count
`)

// FixedWindowLimiter counts requests per key in Redis within fixed windows.
type FixedWindowLimiter struct {
	limit  int
	window time.Duration
	prefix string
	client *redis.Client
	logger *zap.SugaredLogger
	now    func() time.Time
}

// NewFixedWindowLimiter connects a limiter to the Redis server at addr.
func NewFixedWindowLimiter(addr, password, prefix string, limit int, window time.Duration, logger *zap.SugaredLogger) (*FixedWindowLimiter, error) {
	if limit <= 0 {
		return nil, errors.New("rate limiter requires a positive limit")
	}
	if window < time.Millisecond {
		return nil, errors.New("rate limiter window must be at least 1ms")
	}
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, errors.New("rate limiter redis addr is required")
	}
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "artzy:ratelimit"
	}
	return &FixedWindowLimiter{
		limit:  limit,
		window: window,
		prefix: prefix,
		client: redis.NewClient(&redis.Options{Addr: addr, Password: password}),
		logger: logger,
		now:    time.Now,
	}, nil
}

// Allow reports whether key is within quota. Redis failures are logged and
// let the request through so an unavailable cache never locks users out.
func (l *FixedWindowLimiter) Allow(ctx context.Context, key string) bool {
	if l == nil {
		return true
	}
	key = strings.TrimSpace(key)
	if key == "" {
		key = "unknown"
	}
	windowMs := l.window.Milliseconds()
	slot := l.now().UTC().UnixMilli() / windowMs
	redisKey := fmt.Sprintf("%s:%s:%d", l.prefix, key, slot)

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	n, err := fixedWindowScript.Run(ctx, l.client, []string{redisKey}, windowMs).Int64()
	if err != nil {
		l.logger.Warnw("rate limiter unavailable, allowing request", "key", key, "err", err)
		return true
	}
	return n <= int64(l.limit)
}

// Close releases the Redis connection pool.
func (l *FixedWindowLimiter) Close() error {
	if l == nil {
		return nil
	}
	return l.client.Close()
}

// Middleware rejects requests over quota with 429. A nil limiter disables it.
// Clients are keyed by ClientIP, so forwarded headers only count when the
// peer is in trusted.
func Middleware(l *FixedWindowLimiter, trusted *TrustedProxies) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if l == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.Allow(r.Context(), r.URL.Path+"|"+ClientIP(r, trusted)) {
				w.Header().Set("Retry-After", fmt.Sprintf("%d", int(l.window.Seconds())))
				utilities.WriteError(w, http.StatusTooManyRequests, "Too many requests, try again later")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
