package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sightline-ai/people-search-backend/internal/pkg/logger"
	"github.com/sightline-ai/people-search-backend/internal/pkg/redis"
	"go.uber.org/zap"
)

// RateLimiterConfig configures the sliding-window limiter
type RateLimiterConfig struct {
	MaxRequests   int
	WindowSeconds int
	Strategy      string // user, endpoint, ip (default)
}

// RateLimiter is a redis-backed sliding-window rate limiter. It fails
// open when redis is unavailable.
func RateLimiter(redisClient *redis.Client, cfg RateLimiterConfig, log *logger.Logger) gin.HandlerFunc {
	if cfg.MaxRequests <= 0 {
		cfg.MaxRequests = 100
	}
	if cfg.WindowSeconds <= 0 {
		cfg.WindowSeconds = 60
	}
	if cfg.Strategy == "" {
		cfg.Strategy = "ip"
	}

	return func(c *gin.Context) {
		key := buildRateLimitKey(c, cfg.Strategy)

		ctx := c.Request.Context()
		allowed, remaining, resetTime, err := checkRateLimit(ctx, redisClient, key, cfg)
		if err != nil {
			log.Error("rate limiter error", zap.Error(err), zap.String("key", key))
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", cfg.MaxRequests))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))
		c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", resetTime))

		if !allowed {
			c.Header("Retry-After", fmt.Sprintf("%d", cfg.WindowSeconds))
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":   "rate limit exceeded",
				"message": fmt.Sprintf("too many requests, please try again in %d seconds", cfg.WindowSeconds),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func buildRateLimitKey(c *gin.Context, strategy string) string {
	prefix := "rate_limit"

	switch strategy {
	case "user":
		if userID, exists := c.Get("user_id"); exists {
			return fmt.Sprintf("%s:user:%v", prefix, userID)
		}
		return fmt.Sprintf("%s:ip:%s", prefix, c.ClientIP())

	case "endpoint":
		return fmt.Sprintf("%s:endpoint:%s:%s", prefix, c.Request.URL.Path, c.ClientIP())

	default:
		return fmt.Sprintf("%s:ip:%s", prefix, c.ClientIP())
	}
}

func checkRateLimit(ctx context.Context, redisClient *redis.Client, key string, cfg RateLimiterConfig) (allowed bool, remaining int, resetTime int64, err error) {
	now := time.Now().Unix()

	// atomic sliding window over a sorted set
	script := `
		local key = KEYS[1]
		local now = tonumber(ARGV[1])
		local window = tonumber(ARGV[2])
		local limit = tonumber(ARGV[3])
		local window_start = now - window

		redis.call('ZREMRANGEBYSCORE', key, 0, window_start)

		local current = redis.call('ZCARD', key)

		if current < limit then
			redis.call('ZADD', key, now, now)
			redis.call('EXPIRE', key, window)
			return {1, limit - current - 1, now + window}
		else
			local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')[2]
			local reset_time = tonumber(oldest) + window
			return {0, 0, reset_time}
		end
	`

	result, err := redisClient.Eval(ctx, script, []string{key}, now, cfg.WindowSeconds, cfg.MaxRequests)
	if err != nil {
		return false, 0, 0, err
	}

	resultSlice, ok := result.([]interface{})
	if !ok || len(resultSlice) != 3 {
		return false, 0, 0, fmt.Errorf("invalid rate limit result")
	}

	allowedInt, _ := resultSlice[0].(int64)
	remainingInt, _ := resultSlice[1].(int64)
	resetTimeInt, _ := resultSlice[2].(int64)

	return allowedInt == 1, int(remainingInt), resetTimeInt, nil
}

// LoginRateLimiter throttles the OAuth login endpoints.
// 10 requests / 5 minutes per IP.
func LoginRateLimiter(redisClient *redis.Client, log *logger.Logger) gin.HandlerFunc {
	return RateLimiter(redisClient, RateLimiterConfig{
		MaxRequests:   10,
		WindowSeconds: 300,
		Strategy:      "ip",
	}, log)
}

// APIRateLimiter throttles authenticated API traffic.
// 100 requests / minute per user.
func APIRateLimiter(redisClient *redis.Client, log *logger.Logger) gin.HandlerFunc {
	return RateLimiter(redisClient, RateLimiterConfig{
		MaxRequests:   100,
		WindowSeconds: 60,
		Strategy:      "user",
	}, log)
}
