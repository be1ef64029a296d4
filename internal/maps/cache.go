package maps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// CachedDirections memoizes successful provider answers in Redis.
// Cache failures are logged and never fail the request.
type CachedDirections struct {
	next   DirectionsProvider
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewCachedDirections(next DirectionsProvider, rdb *redis.Client, ttl time.Duration, logger *zap.Logger) *CachedDirections {
	return &CachedDirections{next: next, rdb: rdb, ttl: ttl, logger: logger}
}

func (c *CachedDirections) Directions(ctx context.Context, req DirectionsRequest) (*DirectionsResponse, error) {
	key := directionsCacheKey(req)

	raw, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var cached DirectionsResponse
		if jerr := json.Unmarshal(raw, &cached); jerr == nil {
			return &cached, nil
		}
		c.logger.Warn("directions cache entry unreadable", zap.String("key", key))
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("directions cache get failed", zap.String("key", key), zap.Error(err))
	}

	resp, err := c.next.Directions(ctx, req)
	if err != nil {
		return nil, err
	}

	if payload, jerr := json.Marshal(resp); jerr == nil {
		if serr := c.rdb.Set(ctx, key, payload, c.ttl).Err(); serr != nil {
			c.logger.Warn("directions cache set failed", zap.String("key", key), zap.Error(serr))
		}
	}
	return resp, nil
}

// Coordinates are rounded to ~1m so repeated requests for the same point share an entry.
func directionsCacheKey(req DirectionsRequest) string {
	return fmt.Sprintf("directions:%s:%t:%.5f,%.5f;%.5f,%.5f",
		req.Profile, req.Alternatives,
		req.Origin.Lng, req.Origin.Lat, req.Destination.Lng, req.Destination.Lat)
}
