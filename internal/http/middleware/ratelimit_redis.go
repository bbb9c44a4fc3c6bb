package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"wordle_duel/internal/logger"

	"github.com/gin-gonic/gin"
	redis "github.com/redis/go-redis/v9"
)

var (
	redisClient *redis.Client
	fallback    = newMemoryLimiter()
)

// SetRedisClient shares the process Redis client with the limiters. A nil client
// switches them to the in-memory counter.
func SetRedisClient(rdb *redis.Client) {
	redisClient = rdb
}

// count increments key in Redis, falling back to the local counter on error.
func count(ctx context.Context, key string, window time.Duration) int64 {
	if redisClient != nil {
		val, err := redisClient.Incr(ctx, key).Result()
		if err == nil {
			if val == 1 {
				redisClient.Expire(ctx, key, window)
			}
			return val
		}
		logger.WithContext(ctx).Warn("rate limiter redis error", "error", err)
	}
	return int64(fallback.hit(key, window, time.Now()))
}

// RedisRateLimit is a fixed-window limiter keyed by client IP.
// key format: rl:<scope>:<window_seconds>:<ip>
func RedisRateLimit(scope string, maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "rl:" + scope + ":" + strconv.FormatInt(int64(window.Seconds()), 10) + ":" + c.ClientIP()
		val := count(c.Request.Context(), key, window)

		if val > int64(maxRequests) {
			RLBlocked.WithLabelValues(c.FullPath()).Inc()
			c.Header("Retry-After", strconv.Itoa(int(window.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded", "code": "rate_limited"})
			return
		}

		RLRequests.WithLabelValues(c.FullPath()).Inc()
		c.Next()
	}
}
