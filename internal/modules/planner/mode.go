// README: Transport modes, their provider profiles, and the emission policy table.
package planner

import (
	"strings"

	"github.com/samber/lo"

	"ecoroute/internal/maps"
)

type Mode string

const (
	ModeWalking Mode = "walking"
	ModeCycling Mode = "cycling"
	ModeDriving Mode = "driving"
	ModeTransit Mode = "transit"
)

// Modes lists every supported mode in display order.
var Modes = []Mode{ModeWalking, ModeCycling, ModeDriving, ModeTransit}

// ParseMode matches s case-insensitively against the supported modes.
func ParseMode(s string) (Mode, bool) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	return m, lo.Contains(Modes, m)
}

// Name is the human label used in route names.
func (m Mode) Name() string {
	switch m {
	case ModeWalking:
		return "Walking"
	case ModeCycling:
		return "Cycling"
	case ModeDriving:
		return "Driving"
	case ModeTransit:
		return "Public Transit"
	default:
		return "Mixed"
	}
}

// WeatherDependent reports whether the traveller is exposed to the weather.
func (m Mode) WeatherDependent() bool {
	return m == ModeWalking || m == ModeCycling
}

// Sustainable reports whether the mode counts as a low-carbon choice.
func (m Mode) Sustainable() bool {
	return m == ModeWalking || m == ModeCycling || m == ModeTransit
}

// ModeProfile pairs a provider routing profile with the internal mode tag.
type ModeProfile struct {
	Profile string
	Mode    Mode
}

// Transit has no native provider profile; it is routed over the driving network.
var defaultProfiles = map[Mode]string{
	ModeWalking: maps.ProfileWalking,
	ModeCycling: maps.ProfileCycling,
	ModeDriving: maps.ProfileDrivingTraffic,
	ModeTransit: maps.ProfileDriving,
}

// Resolver maps requested mode identifiers to provider profiles.
type Resolver struct {
	profiles map[Mode]string
}

func NewResolver(profiles map[Mode]string) *Resolver {
	if profiles == nil {
		profiles = defaultProfiles
	}
	return &Resolver{profiles: cloneMap(profiles)}
}

// Resolve drops unrecognized and duplicate identifiers, keeping request order.
// It returns ErrNoValidModes when nothing is left.
func (r *Resolver) Resolve(requested []string) ([]ModeProfile, error) {
	out := lo.UniqBy(lo.FilterMap(requested, func(s string, _ int) (ModeProfile, bool) {
		m, ok := ParseMode(s)
		if !ok {
			return ModeProfile{}, false
		}
		profile, ok := r.profiles[m]
		return ModeProfile{Profile: profile, Mode: m}, ok
	}), func(mp ModeProfile) Mode { return mp.Mode })

	if len(out) == 0 {
		return nil, ErrNoValidModes
	}
	return out, nil
}

// Policy holds the constants that drive candidate derivation and ranking.
type Policy struct {
	// EmissionFactors are kg CO2 per km. The driving factor is the baseline.
	EmissionFactors map[Mode]float64
	MinDistanceKm   float64
	MaxAlternatives int
	MaxResults      int
}

func DefaultPolicy() Policy {
	return Policy{
		EmissionFactors: map[Mode]float64{
			ModeDriving: 0.21,
			ModeWalking: 0,
			ModeCycling: 0,
			ModeTransit: 0.04,
		},
		MinDistanceKm:   0.2,
		MaxAlternatives: 2,
		MaxResults:      8,
	}
}

func (p Policy) clone() Policy {
	p.EmissionFactors = cloneMap(p.EmissionFactors)
	return p
}

// CO2SavedKg is distance times the gap between the driving baseline and the mode, floored at zero.
func (p Policy) CO2SavedKg(m Mode, distanceKm float64) float64 {
	baseline := p.EmissionFactors[ModeDriving]
	saved := distanceKm * (baseline - p.EmissionFactors[m])
	if saved < 0 {
		return 0
	}
	return saved
}

func cloneMap[K comparable, V any](in map[K]V) map[K]V {
	out := make(map[K]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
