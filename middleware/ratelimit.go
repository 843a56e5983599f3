package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/ariebrainware/patient-data-api/config"
	"github.com/ariebrainware/patient-data-api/util"
	"github.com/gin-gonic/gin"
	cache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

const (
	// Rate limiting defaults
	defaultRateLimit  = 60          // 60 requests
	defaultRateWindow = time.Minute // per minute
)

// localCounters backs rate limiting when Redis is not configured. Entries
// expire with the window, which makes each counter a fixed window.
var localCounters = cache.New(defaultRateWindow, 5*time.Minute)

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	Limit  int
	Window time.Duration
}

// RateLimiter creates a rate limiting middleware. Counting happens in Redis
// when a client is available and falls back to an in-process cache otherwise,
// so a single-instance deployment is still limited without Redis.
func RateLimiter(cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.Limit == 0 {
		cfg.Limit = defaultRateLimit
	}
	if cfg.Window == 0 {
		cfg.Window = defaultRateWindow
	}

	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		endpoint := c.Request.URL.Path

		key := fmt.Sprintf("ratelimit:%s:%s", endpoint, clientIP)

		allowed, err := checkRateLimit(key, cfg.Limit, cfg.Window)
		if err != nil {
			// If rate limiting fails, log the error but allow the request
			// to prevent denial of service due to Redis unavailability
			util.LogAuditEvent(util.AuditEvent{
				EventType: util.EventSuspiciousActivity,
				IP:        clientIP,
				Message:   fmt.Sprintf("Rate limit check failed: %v", err),
			})
			c.Next()
			return
		}

		if !allowed {
			util.LogRateLimitExceeded(clientIP, endpoint)

			c.JSON(http.StatusTooManyRequests, util.APIError{Detail: "Too many requests. Please try again later."})
			c.Abort()
			return
		}

		c.Next()
	}
}

// checkRateLimit checks if a request is within rate limits
// Returns true if allowed, false if rate limit exceeded
func checkRateLimit(key string, limit int, window time.Duration) (bool, error) {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return checkLocalRateLimit(key, limit, window), nil
	}

	ctx := context.Background()

	// Use Redis pipeline for atomic operations
	pipe := rdb.Pipeline()
	incrCmd := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, window)

	_, err := pipe.Exec(ctx)
	if err != nil && err != redis.Nil {
		return false, fmt.Errorf("failed to check rate limit: %w", err)
	}

	return incrCmd.Val() <= int64(limit), nil
}

// checkLocalRateLimit is the in-process fallback counter.
func checkLocalRateLimit(key string, limit int, window time.Duration) bool {
	count, err := localCounters.IncrementInt64(key, 1)
	if err != nil {
		// First request for this key within the window.
		localCounters.Set(key, int64(1), window)
		return limit >= 1
	}
	return count <= int64(limit)
}

// ResetRateLimit resets the rate limit for a given key (useful for testing or admin operations)
func ResetRateLimit(clientIP, endpoint string) error {
	key := fmt.Sprintf("ratelimit:%s:%s", endpoint, clientIP)
	localCounters.Delete(key)

	rdb := config.GetRedisClient()
	if rdb == nil {
		return nil
	}
	return rdb.Del(context.Background(), key).Err()
}
