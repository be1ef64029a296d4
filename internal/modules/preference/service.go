// README: Preference service reads and replaces a user's travel preferences.
package preference

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/samber/lo"

	"ecoroute/internal/modules/planner"
)

type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// Get returns stored preferences merged over Defaults.
func (s *Service) Get(ctx context.Context, uid string) (Preferences, error) {
	stored, err := s.stored(ctx, uid)
	if err != nil {
		return Preferences{}, err
	}
	return stored.MergeOver(Defaults()), nil
}

// Update validates and replaces the stored document, returning the merged view.
func (s *Service) Update(ctx context.Context, uid string, p Preferences) (Preferences, error) {
	normalized, err := normalize(p)
	if err != nil {
		return Preferences{}, err
	}
	normalized.UpdatedAt = s.now().UTC()
	if err := s.store.Put(ctx, uid, normalized); err != nil {
		return Preferences{}, err
	}
	return normalized.MergeOver(Defaults()), nil
}

// TravelPreferences exposes what the route planner reads. Distance caps come
// only from stored values; an absent document means no caps.
func (s *Service) TravelPreferences(ctx context.Context, uid string) (planner.Preferences, error) {
	stored, err := s.stored(ctx, uid)
	if err != nil {
		return planner.Preferences{}, err
	}
	priority := planner.Priority(stored.SustainabilityPriority)
	if priority == "" {
		priority = planner.PriorityBalanced
	}
	return planner.Preferences{
		Priority:     priority,
		MaxWalkingKm: stored.MaxWalkingDistance,
		MaxCyclingKm: stored.MaxCyclingDistance,
	}, nil
}

// MonthlyGoal returns the user's monthly CO2 target in kg.
func (s *Service) MonthlyGoal(ctx context.Context, uid string) (float64, error) {
	p, err := s.Get(ctx, uid)
	if err != nil {
		return 0, err
	}
	return *p.MonthlyGoal, nil
}

func (s *Service) stored(ctx context.Context, uid string) (Preferences, error) {
	p, err := s.store.Get(ctx, uid)
	if errors.Is(err, ErrNotFound) {
		return Preferences{}, nil
	}
	return p, err
}

var priorities = []string{
	string(planner.PriorityEcoFirst),
	string(planner.PriorityBalanced),
	string(planner.PrioritySpeedFirst),
}

func normalize(p Preferences) (Preferences, error) {
	var problems []string

	checkPositive := func(name string, v *float64) {
		if v != nil && (math.IsNaN(*v) || math.IsInf(*v, 0) || *v <= 0) {
			problems = append(problems, name+" must be a positive number")
		}
	}
	checkPositive("maxWalkingDistance", p.MaxWalkingDistance)
	checkPositive("maxCyclingDistance", p.MaxCyclingDistance)
	checkPositive("monthlyGoal", p.MonthlyGoal)

	if p.SustainabilityPriority != "" && !lo.Contains(priorities, p.SustainabilityPriority) {
		problems = append(problems, fmt.Sprintf("sustainabilityPriority must be one of %s", strings.Join(priorities, ", ")))
	}

	var modes []string
	for _, raw := range p.TransportModes {
		m, ok := planner.ParseMode(raw)
		if !ok {
			problems = append(problems, fmt.Sprintf("unknown transport mode %q", raw))
			continue
		}
		modes = append(modes, string(m))
	}
	p.TransportModes = lo.Uniq(modes)

	if len(problems) > 0 {
		return Preferences{}, fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return p, nil
}
