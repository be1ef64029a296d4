package planner

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"ecoroute/internal/maps"
)

// stubProvider answers per profile and counts calls.
type stubProvider struct {
	mu        sync.Mutex
	responses map[string]*maps.DirectionsResponse
	errs      map[string]error
	delays    map[string]time.Duration
	calls     atomic.Int32
	seen      []maps.DirectionsRequest
}

func newStubProvider() *stubProvider {
	return &stubProvider{
		responses: map[string]*maps.DirectionsResponse{},
		errs:      map[string]error{},
		delays:    map[string]time.Duration{},
	}
}

func (s *stubProvider) Directions(ctx context.Context, req maps.DirectionsRequest) (*maps.DirectionsResponse, error) {
	s.calls.Add(1)
	s.mu.Lock()
	s.seen = append(s.seen, req)
	resp, err, delay := s.responses[req.Profile], s.errs[req.Profile], s.delays[req.Profile]
	s.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, errors.New("no stubbed response")
	}
	return resp, nil
}

func rawRoute(meters, seconds float64) maps.Route {
	return maps.Route{
		Distance: meters,
		Duration: seconds,
		Geometry: maps.Geometry{Type: "LineString", Coordinates: [][2]float64{{77.0, 28.0}, {77.1, 28.0}}},
		Legs: []maps.Leg{{Steps: []maps.Step{
			{Maneuver: maps.Maneuver{Instruction: "Head east", Type: "depart"}, Distance: meters, Duration: seconds},
		}}},
	}
}

func response(routes ...maps.Route) *maps.DirectionsResponse {
	return &maps.DirectionsResponse{Code: "Ok", Routes: routes}
}

type stubPrefs struct {
	prefs Preferences
	err   error
}

func (s stubPrefs) TravelPreferences(context.Context, string) (Preferences, error) {
	return s.prefs, s.err
}

func km(v float64) *float64 { return &v }

func endpoint(lon, lat float64) *Endpoint {
	return &Endpoint{Coordinates: []float64{lon, lat}}
}
