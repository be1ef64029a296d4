// README: API gateway; registers HTTP routes and delegates to module services.
package http

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"ecoroute/internal/config"
	"ecoroute/internal/infra"
	"ecoroute/internal/maps"
	"ecoroute/internal/modules/coach"
	"ecoroute/internal/modules/planner"
	"ecoroute/internal/modules/preference"
	"ecoroute/internal/modules/trip"
	"ecoroute/internal/modules/weather"
)

// ServerDeps wires module services into the HTTP layer. Weather, Geocoder
// and Coach are optional; their routes answer 503 when nil.
type ServerDeps struct {
	Planner     *planner.Service
	Trips       *trip.Service
	Preferences *preference.Service
	Weather     *weather.Service
	Geocoder    *maps.Geocoder
	Coach       *coach.Service
	Verifier    infra.TokenVerifier
	Redis       *redis.Client
	Health      HealthCheck
	Config      config.Config
	Logger      *zap.Logger
}

// HealthCheck reports whether a backing store is reachable.
type HealthCheck func(ctx context.Context) error

type Server struct {
	deps ServerDeps
}

func NewServer(deps ServerDeps) *Server {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &Server{deps: deps}
}
