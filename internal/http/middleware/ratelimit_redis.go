package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"projectmanager/internal/http/apierr"
	"projectmanager/internal/logger"

	"github.com/gin-gonic/gin"
	redis "github.com/redis/go-redis/v9"
)

// ConnectRedis returns nil when addr is empty or the server does not answer,
// so the limiter falls back to in-process counting.
func ConnectRedis(addr, password string, db int) *redis.Client {
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unavailable, using in-process rate limiting", "addr", addr, "error", err)
		_ = client.Close()
		return nil
	}
	logger.Info("redis connected", "addr", addr)
	return client
}

// RateLimiter is a fixed-window limiter keyed by scope and client IP.
type RateLimiter struct {
	redis *redis.Client
	local *localWindow
}

func NewRateLimiter(client *redis.Client) *RateLimiter {
	return &RateLimiter{redis: client, local: newLocalWindow()}
}

// Ping reports Redis health; nil when Redis is not in use.
func (l *RateLimiter) Ping(ctx context.Context) error {
	if l.redis == nil {
		return nil
	}
	return l.redis.Ping(ctx).Err()
}

// Limit allows max requests per window for each client IP.
// key format: rl:<scope>:<window_seconds>:<ip>
func (l *RateLimiter) Limit(scope string, max int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "rl:" + scope + ":" + strconv.FormatInt(int64(window.Seconds()), 10) + ":" + c.ClientIP()

		count, err := l.hit(c.Request.Context(), key, window)
		if err != nil {
			// on Redis error, fail-open (allow) but set header
			c.Header("X-RateLimit-Error", "redis-error")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(max))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(max64(0, int64(max)-count), 10))

		if count > int64(max) {
			RLBlocked.WithLabelValues(scope).Inc()
			c.Header("Retry-After", strconv.Itoa(int(window.Seconds())))
			apierr.Abort(c, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		RLRequests.WithLabelValues(scope).Inc()
		c.Next()
	}
}

func (l *RateLimiter) hit(ctx context.Context, key string, window time.Duration) (int64, error) {
	if l.redis == nil {
		return int64(l.local.hit(key, window)), nil
	}

	return incrWindow.Run(ctx, l.redis, []string{key}, window.Milliseconds()).Int64()
}

// incrWindow counts a hit and arms the window TTL atomically. A counter found
// without a TTL gets one again.
var incrWindow = redis.NewScript(`
local n = redis.call("INCR", KEYS[1])
if n == 1 or redis.call("PTTL", KEYS[1]) < 0 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return n
`)

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
