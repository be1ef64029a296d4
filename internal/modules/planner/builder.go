package planner

import (
	"fmt"
	"math"
	"time"

	"ecoroute/internal/maps"
	"ecoroute/internal/types"
)

const fallbackInstruction = "Continue"

// CostEstimator prices a trip of the given length in the given mode.
type CostEstimator interface {
	Estimate(mode string, distanceKm float64) types.Money
}

// BuildIssue records a raw route that did not become a candidate.
type BuildIssue struct {
	Mode  Mode
	Index int
	Err   error
}

// Builder derives candidates from raw provider routes.
type Builder struct {
	policy Policy
	cost   CostEstimator
	now    func() time.Time
}

func NewBuilder(policy Policy, cost CostEstimator) *Builder {
	return &Builder{policy: policy.clone(), cost: cost, now: time.Now}
}

// Build converts every successful mode result. Each raw route yields either a
// candidate or an issue; issues never stop the batch.
func (b *Builder) Build(results []ModeResult) ([]Candidate, []BuildIssue) {
	now := b.now()
	var (
		candidates []Candidate
		issues     []BuildIssue
	)
	for _, res := range results {
		if res.Err != nil || res.Response == nil {
			continue
		}
		routes := res.Response.Routes
		if len(routes) > b.policy.MaxAlternatives {
			routes = routes[:b.policy.MaxAlternatives]
		}
		for idx, raw := range routes {
			c, err := b.buildOne(res.Mode, idx, raw, now)
			if err != nil {
				issues = append(issues, BuildIssue{Mode: res.Mode, Index: idx, Err: err})
				continue
			}
			candidates = append(candidates, c)
		}
	}
	return candidates, issues
}

func (b *Builder) buildOne(mode Mode, idx int, raw maps.Route, now time.Time) (c Candidate, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrInternalComputation, r)
		}
	}()

	if len(raw.Legs) == 0 {
		return Candidate{}, fmt.Errorf("%w: route has no leg data", ErrInternalComputation)
	}
	if !finiteNonNegative(raw.Distance) || !finiteNonNegative(raw.Duration) {
		return Candidate{}, fmt.Errorf("%w: distance %v duration %v", ErrInternalComputation, raw.Distance, raw.Duration)
	}

	distanceKm := raw.Distance / 1000
	if distanceKm < b.policy.MinDistanceKm {
		return Candidate{}, fmt.Errorf("%w: %.3fkm", ErrDegenerateRoute, distanceKm)
	}
	durationMin := int(math.Round(raw.Duration / 60))

	var cost float64
	if b.cost != nil {
		cost = types.Round(b.cost.Estimate(string(mode), distanceKm).Amount, 2)
	}

	weather := WeatherIndependent
	if mode.WeatherDependent() {
		weather = WeatherDependent
	}

	return Candidate{
		ID:                 fmt.Sprintf("%s-%d-%d", mode, idx, now.UnixMilli()),
		Name:               routeName(mode, idx),
		Mode:               mode,
		Distance:           types.Round(distanceKm, 1),
		exactKm:            distanceKm,
		Duration:           durationMin,
		CO2Saved:           types.Round(b.policy.CO2SavedKg(mode, distanceKm), 2),
		Geometry:           raw.Geometry,
		Steps:              buildSteps(raw.Legs[0].Steps),
		Calories:           Calories(mode, distanceKm),
		Difficulty:         DifficultyFor(mode, distanceKm),
		Cost:               cost,
		EstimatedArrival:   now.Add(time.Duration(durationMin) * time.Minute).Format("03:04 PM"),
		WeatherSuitability: weather,
	}, nil
}

func routeName(mode Mode, idx int) string {
	if idx == 0 {
		return mode.Name() + " Route"
	}
	return mode.Name() + " Alternative"
}

func buildSteps(raw []maps.Step) []Step {
	steps := make([]Step, 0, len(raw))
	for _, s := range raw {
		instruction := s.Maneuver.Instruction
		if instruction == "" {
			instruction = fallbackInstruction
		}
		kind := s.Maneuver.Type
		if kind == "" {
			kind = "continue"
		}
		steps = append(steps, Step{
			Instruction: instruction,
			Distance:    s.Distance,
			Duration:    s.Duration,
			Type:        kind,
		})
	}
	return steps
}

// Calories is a coarse linear estimate: 60 kcal/km walking, 45 kcal/km cycling.
func Calories(mode Mode, distanceKm float64) int {
	switch mode {
	case ModeWalking:
		return int(math.Round(distanceKm * 60))
	case ModeCycling:
		return int(math.Round(distanceKm * 45))
	default:
		return 0
	}
}

func DifficultyFor(mode Mode, distanceKm float64) Difficulty {
	switch mode {
	case ModeWalking:
		return tier(distanceKm, 1, 3)
	case ModeCycling:
		return tier(distanceKm, 3, 8)
	default:
		return DifficultyEasy
	}
}

func tier(distanceKm, easyBelow, moderateBelow float64) Difficulty {
	switch {
	case distanceKm < easyBelow:
		return DifficultyEasy
	case distanceKm < moderateBelow:
		return DifficultyModerate
	default:
		return DifficultyChallenging
	}
}

func finiteNonNegative(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}
