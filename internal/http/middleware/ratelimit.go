// README: Fixed-window rate limiting in Redis with an in-process fallback.
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type window struct {
	start time.Time
	count int
}

// RateLimiter counts requests per key in fixed windows. Counters live in
// Redis when it is reachable; otherwise each process counts on its own.
type RateLimiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
	local  *xsync.MapOf[string, window]
	logger *zap.Logger
	now    func() time.Time
}

func NewRateLimiter(rdb *redis.Client, limit int, win time.Duration, logger *zap.Logger) *RateLimiter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RateLimiter{
		rdb:    rdb,
		limit:  limit,
		window: win,
		local:  xsync.NewMapOf[string, window](),
		logger: logger,
		now:    time.Now,
	}
}

// Allow records one hit for key and reports whether it is within the limit,
// along with the hits left in the current window.
func (l *RateLimiter) Allow(ctx context.Context, key string) (bool, int) {
	count, err := l.remote(ctx, key)
	if err != nil {
		if l.rdb != nil {
			l.logger.Warn("rate limit store unavailable, counting locally", zap.Error(err))
		}
		count = l.localHit(key)
	}
	remaining := l.limit - count
	if remaining < 0 {
		remaining = 0
	}
	return count <= l.limit, remaining
}

func (l *RateLimiter) remote(ctx context.Context, key string) (int, error) {
	if l.rdb == nil {
		return 0, redis.ErrClosed
	}
	now := l.now()
	bucket := now.Truncate(l.window).Unix()
	redisKey := fmt.Sprintf("ratelimit:%s:%d", key, bucket)

	var incr *redis.IntCmd
	_, err := l.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, redisKey)
		pipe.Expire(ctx, redisKey, l.window)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return int(incr.Val()), nil
}

func (l *RateLimiter) localHit(key string) int {
	now := l.now()
	w, _ := l.local.Compute(key, func(old window, loaded bool) (window, bool) {
		if !loaded || now.Sub(old.start) >= l.window {
			return window{start: now, count: 1}, false
		}
		old.count++
		return old, false
	})
	return w.count
}

// RateLimit applies l per caller, keyed by the authenticated uid when
// present and the client IP otherwise.
func RateLimit(l *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := CallerUID(c)
		if key == "" {
			key = "ip:" + c.ClientIP()
		}
		ok, remaining := l.Allow(c.Request.Context(), key)
		c.Header("X-RateLimit-Limit", strconv.Itoa(l.limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		if !ok {
			abort(c, http.StatusTooManyRequests, "Too many requests, please try again later.", "RateLimited")
			return
		}
		c.Next()
	}
}
