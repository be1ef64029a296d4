package trip

import (
	"math"
	"time"

	"github.com/samber/lo"

	"ecoroute/internal/modules/planner"
)

type Totals struct {
	CO2Saved float64 `json:"co2Saved"`
	Trips    int     `json:"trips"`
	Distance float64 `json:"distance"`
	Calories int     `json:"calories"`
}

func (t *Totals) add(tr Trip) {
	t.CO2Saved += tr.CO2Saved
	t.Trips++
	t.Distance += tr.Distance
	t.Calories += tr.Calories
}

type Stats struct {
	Today   Totals `json:"today"`
	Week    Totals `json:"week"`
	Month   Totals `json:"month"`
	AllTime Totals `json:"allTime"`
	// MonthlyGoal is the target in kg and GoalProgress the share of it reached, 0-100.
	MonthlyGoal  float64 `json:"monthlyGoal"`
	GoalProgress float64 `json:"goalProgress"`
}

// ComputeStats buckets trips by calendar periods of now's location. Weeks
// start on Sunday.
func ComputeStats(trips []Trip, now time.Time, monthlyGoal float64) Stats {
	loc := now.Location()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	weekStart := today.AddDate(0, 0, -int(today.Weekday()))
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)

	var s Stats
	for _, tr := range trips {
		s.AllTime.add(tr)
		if !tr.Date.Before(today) {
			s.Today.add(tr)
		}
		if !tr.Date.Before(weekStart) {
			s.Week.add(tr)
		}
		if !tr.Date.Before(monthStart) {
			s.Month.add(tr)
		}
	}

	s.MonthlyGoal = monthlyGoal
	if monthlyGoal > 0 {
		s.GoalProgress = math.Min(100, s.Month.CO2Saved/monthlyGoal*100)
	}
	return s
}

// Weights is the speed/sustainability balance derived from a user's habits.
type Weights struct {
	Speed          float64 `json:"speed"`
	Sustainability float64 `json:"sustainability"`
}

const minTripsForWeights = 5

// PersonalizedWeights returns an even split until the user has enough
// history; after that, sustainability is the share of trips taken on a
// sustainable mode.
func PersonalizedWeights(trips []Trip) Weights {
	if len(trips) < minTripsForWeights {
		return Weights{Speed: 0.5, Sustainability: 0.5}
	}
	sustainable := lo.CountBy(trips, func(t Trip) bool {
		m, ok := planner.ParseMode(t.Mode)
		return ok && m.Sustainable()
	})
	share := float64(sustainable) / float64(len(trips))
	return Weights{Speed: 1 - share, Sustainability: share}
}
