// README: Planning request, preferences, and candidate route model.
package planner

import (
	"ecoroute/internal/maps"
	"ecoroute/internal/types"
)

// Priority selects how candidates are ordered.
type Priority string

const (
	PriorityEcoFirst   Priority = "Eco First"
	PriorityBalanced   Priority = "Balanced"
	PrioritySpeedFirst Priority = "Speed First"
)

// Difficulty is a coarse effort tier derived from mode and distance.
type Difficulty string

const (
	DifficultyEasy        Difficulty = "Easy"
	DifficultyModerate    Difficulty = "Moderate"
	DifficultyChallenging Difficulty = "Challenging"
)

const (
	WeatherDependent   = "weather_dependent"
	WeatherIndependent = "weather_independent"
)

// Preferences is the slice of a user's travel settings the planner reads.
// A nil or non-positive cap means no cap.
type Preferences struct {
	Priority     Priority
	MaxWalkingKm *float64
	MaxCyclingKm *float64
}

// Endpoint is the inbound shape of origin and destination: [lon, lat] plus a label.
type Endpoint struct {
	Coordinates []float64 `json:"coordinates"`
	Name        string    `json:"name"`
}

func (e Endpoint) Coordinate() types.Coordinate {
	return types.Coordinate{Lng: e.Coordinates[0], Lat: e.Coordinates[1]}
}

type PlanRequest struct {
	Origin         *Endpoint `json:"origin"`
	Destination    *Endpoint `json:"destination"`
	TransportModes []string  `json:"transportModes"`
}

type Step struct {
	Instruction string  `json:"instruction"`
	Distance    float64 `json:"distance"`
	Duration    float64 `json:"duration"`
	Type        string  `json:"type"`
}

// Candidate is one scored route option. Distance is km rounded to one decimal,
// CO2Saved is kg rounded to two decimals, Duration is whole minutes.
type Candidate struct {
	ID                 string        `json:"id"`
	Name               string        `json:"name"`
	Mode               Mode          `json:"mode"`
	Distance           float64       `json:"distance"`
	Duration           int           `json:"duration"`
	CO2Saved           float64       `json:"co2Saved"`
	Geometry           maps.Geometry `json:"geometry"`
	Steps              []Step        `json:"steps"`
	Calories           int           `json:"calories"`
	Difficulty         Difficulty    `json:"difficulty"`
	Cost               float64       `json:"cost"`
	EstimatedArrival   string        `json:"estimatedArrival"`
	WeatherSuitability string        `json:"weather_suitability"`

	exactKm float64
}

// DistanceKm is the unrounded route length. Candidates not produced by the
// builder fall back to the display distance.
func (c Candidate) DistanceKm() float64 {
	if c.exactKm > 0 {
		return c.exactKm
	}
	return c.Distance
}

// ModeFailure records why a mode contributed no candidates.
type ModeFailure struct {
	Mode  Mode   `json:"mode"`
	Error string `json:"error"`
}

type Plan struct {
	Routes   []Candidate   `json:"routes"`
	Failures []ModeFailure `json:"failures,omitempty"`
	Stages   []Stage       `json:"-"`
}
