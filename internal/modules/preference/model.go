// README: Travel preference document and its defaults.
package preference

import (
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("preferences not found")
	ErrInvalid  = errors.New("invalid preferences")
)

const (
	DefaultMaxWalkingKm = 5.0
	DefaultMaxCyclingKm = 20.0
	DefaultMonthlyGoal  = 60.0
	DefaultPriority     = "Balanced"
)

// Preferences is stored per user. Nil fields were never set.
type Preferences struct {
	TransportModes         []string  `json:"transportModes,omitempty" bson:"transportModes,omitempty"`
	MaxWalkingDistance     *float64  `json:"maxWalkingDistance,omitempty" bson:"maxWalkingDistance,omitempty"`
	MaxCyclingDistance     *float64  `json:"maxCyclingDistance,omitempty" bson:"maxCyclingDistance,omitempty"`
	SustainabilityPriority string    `json:"sustainabilityPriority,omitempty" bson:"sustainabilityPriority,omitempty"`
	MonthlyGoal            *float64  `json:"monthlyGoal,omitempty" bson:"monthlyGoal,omitempty"`
	UpdatedAt              time.Time `json:"updatedAt,omitempty" bson:"updatedAt"`
}

// Defaults is what a user sees before saving anything.
func Defaults() Preferences {
	walk, cycle, goal := DefaultMaxWalkingKm, DefaultMaxCyclingKm, DefaultMonthlyGoal
	return Preferences{
		TransportModes:         []string{"walking", "cycling", "driving"},
		MaxWalkingDistance:     &walk,
		MaxCyclingDistance:     &cycle,
		SustainabilityPriority: DefaultPriority,
		MonthlyGoal:            &goal,
	}
}

// MergeOver fills every unset field of p from base.
func (p Preferences) MergeOver(base Preferences) Preferences {
	out := base
	if len(p.TransportModes) > 0 {
		out.TransportModes = p.TransportModes
	}
	if p.MaxWalkingDistance != nil {
		out.MaxWalkingDistance = p.MaxWalkingDistance
	}
	if p.MaxCyclingDistance != nil {
		out.MaxCyclingDistance = p.MaxCyclingDistance
	}
	if p.SustainabilityPriority != "" {
		out.SustainabilityPriority = p.SustainabilityPriority
	}
	if p.MonthlyGoal != nil {
		out.MonthlyGoal = p.MonthlyGoal
	}
	if !p.UpdatedAt.IsZero() {
		out.UpdatedAt = p.UpdatedAt
	}
	return out
}
