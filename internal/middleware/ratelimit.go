package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/petgroom/petgroom-api/internal/pkg/logger"
	"github.com/petgroom/petgroom-api/internal/pkg/response"
)

// RateLimiter counts hits per key inside a fixed window
type RateLimiter interface {
	Allow(ctx context.Context, key string) bool
}

// RedisRateLimiter shares counters between API instances
type RedisRateLimiter struct {
	redis  *redis.Client
	limit  int
	window time.Duration
}

// NewRedisRateLimiter creates a Redis-backed limiter
func NewRedisRateLimiter(redisClient *redis.Client, limit int, window time.Duration) *RedisRateLimiter {
	return &RedisRateLimiter{redis: redisClient, limit: limit, window: window}
}

// Allow checks if key is still under the limit
func (rl *RedisRateLimiter) Allow(ctx context.Context, key string) bool {
	redisKey := "ratelimit:" + key

	count, err := rl.redis.Incr(ctx, redisKey).Result()
	if err != nil {
		logger.FromContext(ctx).Warn().Err(err).Msg("Rate limiter unavailable, allowing request")
		return true // Fail open
	}

	if count == 1 {
		rl.redis.Expire(ctx, redisKey, rl.window)
	}

	return count <= int64(rl.limit)
}

// LocalRateLimiter keeps counters in process memory
type LocalRateLimiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	now     func() time.Time
	windows map[string]*localWindow
}

type localWindow struct {
	count int
	reset time.Time
}

// NewLocalRateLimiter creates an in-process limiter
func NewLocalRateLimiter(limit int, window time.Duration) *LocalRateLimiter {
	return &LocalRateLimiter{
		limit:   limit,
		window:  window,
		now:     time.Now,
		windows: make(map[string]*localWindow),
	}
}

// Allow checks if key is still under the limit
func (rl *LocalRateLimiter) Allow(_ context.Context, key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	w, ok := rl.windows[key]
	if !ok || !now.Before(w.reset) {
		// drop expired windows while we hold the lock
		for k, old := range rl.windows {
			if !now.Before(old.reset) {
				delete(rl.windows, k)
			}
		}
		w = &localWindow{reset: now.Add(rl.window)}
		rl.windows[key] = w
	}

	w.count++
	return w.count <= rl.limit
}

// RateLimit limits requests per client IP under the given scope
func RateLimit(limiter RateLimiter, scope string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := fmt.Sprintf("%s:%s", scope, clientHost(r))
			if !limiter.Allow(r.Context(), key) {
				logger.FromContext(r.Context()).Warn().
					Str("scope", scope).
					Str("ip", clientHost(r)).
					Msg("Rate limit exceeded")
				response.TooManyRequests(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientHost keys on RemoteAddr; forwarding headers are only trusted through chi's RealIP
func clientHost(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
