package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"schoolsite-backend/internal/infrastructure/logger"
)

const rateLimitScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
if current > tonumber(ARGV[2]) then
  return 0
end
return 1
`

const rateLimitTimeout = 250 * time.Millisecond

// RedisLimiter is a fixed-window counter shared by every instance.
type RedisLimiter struct {
	client *redis.Client
	script *redis.Script
	log    *logger.Logger
}

func NewRedisLimiter(client *redis.Client, log *logger.Logger) *RedisLimiter {
	return &RedisLimiter{client: client, script: redis.NewScript(rateLimitScript), log: log}
}

// Allow fails open when redis is slow or down.
func (l *RedisLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) bool {
	if l == nil || l.client == nil || key == "" || limit <= 0 || window <= 0 {
		return true
	}
	ttl := window.Milliseconds()
	if ttl <= 0 {
		ttl = 1
	}
	ctx, cancel := context.WithTimeout(ctx, rateLimitTimeout)
	defer cancel()
	allowed, err := l.script.Run(ctx, l.client, []string{key}, ttl, limit).Int64()
	if err != nil {
		l.log.Warn("rate limiter unavailable, allowing request", "error", err)
		return true
	}
	return allowed == 1
}

// RateLimit allows limit requests per client IP per window on the routes it wraps.
// The IP is c.RealIP(), so the echo instance's IPExtractor decides which headers count.
func RateLimit(l *RedisLimiter, name string, limit int, window time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := "ratelimit:" + name + ":" + c.RealIP()
			if !l.Allow(c.Request().Context(), key, limit, window) {
				c.Response().Header().Set("Retry-After", strconv.Itoa(int(window.Seconds())))
				return c.JSON(http.StatusTooManyRequests, map[string]string{"error": "too many requests"})
			}
			return next(c)
		}
	}
}
