package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"candidatehub-backend/internal/delivery/http/response"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	// Requests per window
	Limit int
	// Time window duration
	Window time.Duration
	// Custom key extractor (default: client IP)
	KeyFunc func(*gin.Context) string
	// Key prefix for Redis (default: "rl:ip:")
	KeyPrefix string
}

// Lua script for atomic increment with TTL on first set
// KEYS[1] = counter key
// ARGV[1] = TTL in seconds
// Returns: [current_count, ttl_remaining]
const rateLimitLuaScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('TTL', KEYS[1])
return {count, ttl}
`

var rateLimitScript = goredis.NewScript(rateLimitLuaScript)

// rateLimitEntry tracks request count for a key (in-memory fallback)
type rateLimitEntry struct {
	count   int
	resetAt time.Time
}

// RateLimiter counts requests per key in fixed windows. Counters live in
// Redis when a client is given and in process memory otherwise; a Redis
// failure falls back to memory for that request.
type RateLimiter struct {
	cfg    RateLimitConfig
	client *goredis.Client
	log    *zap.Logger
	now    func() time.Time

	mu      sync.Mutex
	entries map[string]*rateLimitEntry
}

// DefaultRateLimitConfig returns sensible defaults for API rate limiting
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Limit:     100,             // 100 requests
		Window:    1 * time.Minute, // per minute
		KeyPrefix: "rl:ip:",
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	}
}

func NewRateLimiter(cfg RateLimitConfig, client *goredis.Client, log *zap.Logger) *RateLimiter {
	def := DefaultRateLimitConfig()
	if cfg.Limit <= 0 {
		cfg.Limit = def.Limit
	}
	if cfg.Window <= 0 {
		cfg.Window = def.Window
	}
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = def.KeyFunc
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = def.KeyPrefix
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &RateLimiter{
		cfg:     cfg,
		client:  client,
		log:     log,
		now:     time.Now,
		entries: make(map[string]*rateLimitEntry),
	}
}

// Middleware rejects requests over the limit with 429.
func (l *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := l.cfg.KeyPrefix + l.cfg.KeyFunc(c)

		count, resetAt := l.hit(c.Request.Context(), key)

		c.Header("X-RateLimit-Limit", strconv.Itoa(l.cfg.Limit))
		c.Header("X-RateLimit-Reset", resetAt.Format(time.RFC3339))

		if count > l.cfg.Limit {
			retryAfter := int(resetAt.Sub(l.now()).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			l.log.Warn("rate limit triggered",
				zap.String("request_id", c.GetString("RequestID")),
				zap.String("ip", c.ClientIP()),
				zap.String("path", c.FullPath()),
			)
			response.Error(c, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.", nil)
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(l.cfg.Limit-count))
		c.Next()
	}
}

func (l *RateLimiter) hit(ctx context.Context, key string) (int, time.Time) {
	if l.client != nil {
		count, resetAt, err := l.hitRedis(ctx, key)
		if err == nil {
			return count, resetAt
		}
		l.log.Warn("rate limit: redis unavailable, using memory", zap.Error(err))
	}
	return l.hitMemory(key)
}

// hitRedis checks rate limit using Redis with atomic Lua script
func (l *RateLimiter) hitRedis(ctx context.Context, key string) (int, time.Time, error) {
	ttlSeconds := int(l.cfg.Window.Seconds())
	if ttlSeconds < 1 {
		ttlSeconds = 1
	}

	result, err := rateLimitScript.Run(ctx, l.client, []string{key}, ttlSeconds).Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("redis rate limit eval failed: %w", err)
	}

	// Parse result [count, ttl]
	arr, ok := result.([]interface{})
	if !ok || len(arr) < 2 {
		return 0, time.Time{}, fmt.Errorf("unexpected redis result format")
	}

	count, _ := arr[0].(int64)
	ttl, _ := arr[1].(int64)

	return int(count), l.now().Add(time.Duration(ttl) * time.Second), nil
}

func (l *RateLimiter) hitMemory(key string) (int, time.Time) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.entries[key]
	if !ok || !now.Before(entry.resetAt) {
		// sweep stale windows once the map grows large
		if len(l.entries) > 10000 {
			for k, e := range l.entries {
				if !now.Before(e.resetAt) {
					delete(l.entries, k)
				}
			}
		}
		entry = &rateLimitEntry{resetAt: now.Add(l.cfg.Window)}
		l.entries[key] = entry
	}

	entry.count++
	return entry.count, entry.resetAt
}
