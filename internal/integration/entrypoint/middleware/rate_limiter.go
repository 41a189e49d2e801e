// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	domainerror "github.com/gestao-consultoria/backend/internal/domain/error"
	"github.com/gestao-consultoria/backend/internal/integration/entrypoint/dto"
)

const (
	// defaultMaxAttempts is the default number of allowed attempts per window.
	defaultMaxAttempts = 10
	// defaultWindowDuration is the default time window for rate limiting.
	defaultWindowDuration = 1 * time.Minute

	redisKeyPrefix = "ratelimit:"
)

// LimiterStore decides whether one more request is allowed for key.
type LimiterStore interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimiter provides IP-based rate limiting functionality.
type RateLimiter struct {
	store LimiterStore
	scope string
}

// NewRateLimiter creates a rate limiter for scope backed by store.
func NewRateLimiter(scope string, store LimiterStore) *RateLimiter {
	return &RateLimiter{
		store: store,
		scope: scope,
	}
}

// Middleware returns a Gin middleware handler that enforces rate limiting.
// Store failures let the request through.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		if clientIP == "" {
			clientIP = c.Request.RemoteAddr
		}

		allowed, err := rl.store.Allow(c.Request.Context(), rl.scope+":"+clientIP)
		if err != nil {
			slog.Warn("rate limiter unavailable, allowing request", "scope", rl.scope, "error", err)
			c.Next()
			return
		}

		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: "Too many requests. Please try again later.",
				Code:  string(domainerror.ErrCodeAdminRateLimited),
			})
			return
		}

		c.Next()
	}
}

// RedisLimiterStore is a fixed-window counter shared by every instance through Redis.
type RedisLimiterStore struct {
	client      redis.UniversalClient
	maxAttempts int
	window      time.Duration
}

// NewRedisLimiterStore creates a Redis-backed limiter store.
func NewRedisLimiterStore(client redis.UniversalClient, maxAttempts int, window time.Duration) *RedisLimiterStore {
	maxAttempts, window = normalizeLimits(maxAttempts, window)
	return &RedisLimiterStore{
		client:      client,
		maxAttempts: maxAttempts,
		window:      window,
	}
}

// fixedWindowScript increments the counter and sets its expiry in one step.
// A key left without a TTL is given one, so a counter always resets.
var fixedWindowScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if redis.call("PTTL", KEYS[1]) < 0 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return count
`)

// Allow increments the counter of the current window and checks it against the limit.
func (s *RedisLimiterStore) Allow(ctx context.Context, key string) (bool, error) {
	count, err := fixedWindowScript.Run(ctx, s.client, []string{redisKeyPrefix + key}, s.window.Milliseconds()).Int64()
	if err != nil {
		return false, fmt.Errorf("redis rate limit: %w", err)
	}

	return count <= int64(s.maxAttempts), nil
}

type memoryBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// MemoryLimiterStore keeps one token bucket per key in process memory.
// Buckets idle for a full window are refilled anyway, so they are evicted.
type MemoryLimiterStore struct {
	mu        sync.Mutex
	buckets   map[string]*memoryBucket
	limit     rate.Limit
	burst     int
	window    time.Duration
	lastSweep time.Time
	now       func() time.Time
}

// NewMemoryLimiterStore creates an in-process limiter allowing maxAttempts per window.
func NewMemoryLimiterStore(maxAttempts int, window time.Duration) *MemoryLimiterStore {
	maxAttempts, window = normalizeLimits(maxAttempts, window)
	return &MemoryLimiterStore{
		buckets: make(map[string]*memoryBucket),
		limit:   rate.Every(window / time.Duration(maxAttempts)),
		burst:   maxAttempts,
		window:  window,
		now:     time.Now,
	}
}

// Allow consumes one token from the key's bucket.
func (s *MemoryLimiterStore) Allow(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.evictIdle(now)

	bucket, ok := s.buckets[key]
	if !ok {
		bucket = &memoryBucket{limiter: rate.NewLimiter(s.limit, s.burst)}
		s.buckets[key] = bucket
	}
	bucket.lastSeen = now

	return bucket.limiter.AllowN(now, 1), nil
}

// evictIdle drops buckets unused for a window. It sweeps at most once per window.
func (s *MemoryLimiterStore) evictIdle(now time.Time) {
	if now.Sub(s.lastSweep) < s.window {
		return
	}
	s.lastSweep = now

	for key, bucket := range s.buckets {
		if now.Sub(bucket.lastSeen) >= s.window {
			delete(s.buckets, key)
		}
	}
}

// Len returns the number of tracked keys.
func (s *MemoryLimiterStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.buckets)
}

// Reset clears the limiter state (useful for testing).
func (s *MemoryLimiterStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buckets = make(map[string]*memoryBucket)
}

func normalizeLimits(maxAttempts int, window time.Duration) (int, time.Duration) {
	if maxAttempts < 1 {
		maxAttempts = defaultMaxAttempts
	}
	if window <= 0 {
		window = defaultWindowDuration
	}
	return maxAttempts, window
}
