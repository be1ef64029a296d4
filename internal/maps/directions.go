// Package maps talks to external directions and geocoding providers and
// normalizes their answers into one raw route model.
package maps

import (
	"context"
	"errors"

	"ecoroute/internal/types"
)

// Routing profiles understood by the providers.
const (
	ProfileWalking        = "walking"
	ProfileCycling        = "cycling"
	ProfileDriving        = "driving"
	ProfileDrivingTraffic = "driving-traffic"
)

// ErrNoRoute is returned when the provider answered but found no path.
var ErrNoRoute = errors.New("provider found no route")

// DirectionsProvider fetches raw directions for a single profile.
type DirectionsProvider interface {
	Directions(ctx context.Context, req DirectionsRequest) (*DirectionsResponse, error)
}

type DirectionsRequest struct {
	Profile      string
	Origin       types.Coordinate
	Destination  types.Coordinate
	Alternatives bool
}

type Geometry struct {
	Type        string       `json:"type"`
	Coordinates [][2]float64 `json:"coordinates"`
}

type Maneuver struct {
	Instruction string `json:"instruction"`
	Type        string `json:"type"`
}

type Step struct {
	Maneuver Maneuver `json:"maneuver"`
	Distance float64  `json:"distance"`
	Duration float64  `json:"duration"`
}

type Leg struct {
	Steps []Step `json:"steps"`
}

// Route is one provider alternative. Distance is in meters, Duration in seconds.
type Route struct {
	Distance float64  `json:"distance"`
	Duration float64  `json:"duration"`
	Geometry Geometry `json:"geometry"`
	Legs     []Leg    `json:"legs"`
}

type DirectionsResponse struct {
	Code    string  `json:"code,omitempty"`
	Message string  `json:"message,omitempty"`
	Routes  []Route `json:"routes"`
}
