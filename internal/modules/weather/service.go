package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Source interface {
	Current(ctx context.Context, lat, lon float64) (*Report, error)
}

// Service fronts a Source with an optional Redis cache. A nil client
// disables caching; cache errors are logged and ignored.
type Service struct {
	src    Source
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewService(src Source, rdb *redis.Client, ttl time.Duration, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{src: src, rdb: rdb, ttl: ttl, logger: logger}
}

func (s *Service) Current(ctx context.Context, lat, lon float64) (*Report, error) {
	if math.IsNaN(lat) || math.IsNaN(lon) || lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return nil, fmt.Errorf("%w: coordinates out of range", ErrBadRequest)
	}

	key := cacheKey(lat, lon)
	if s.rdb != nil {
		raw, err := s.rdb.Get(ctx, key).Bytes()
		switch {
		case err == nil:
			var cached Report
			if jerr := json.Unmarshal(raw, &cached); jerr == nil {
				return &cached, nil
			}
		case !errors.Is(err, redis.Nil):
			s.logger.Warn("weather cache get failed", zap.String("key", key), zap.Error(err))
		}
	}

	r, err := s.src.Current(ctx, lat, lon)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if payload, jerr := json.Marshal(r); jerr == nil {
			if serr := s.rdb.Set(ctx, key, payload, s.ttl).Err(); serr != nil {
				s.logger.Warn("weather cache set failed", zap.String("key", key), zap.Error(serr))
			}
		}
	}
	return r, nil
}

// Two decimals is roughly 1km, close enough for current conditions.
func cacheKey(lat, lon float64) string {
	return fmt.Sprintf("weather:%.2f,%.2f", lat, lon)
}
