package planner

import "github.com/samber/lo"

// FilterByPreferences drops walking and cycling candidates whose unrounded
// length exceeds the user's caps. Other modes are never capped.
func FilterByPreferences(candidates []Candidate, prefs Preferences) []Candidate {
	return lo.Filter(candidates, func(c Candidate, _ int) bool {
		switch c.Mode {
		case ModeWalking:
			return withinCap(c.DistanceKm(), prefs.MaxWalkingKm)
		case ModeCycling:
			return withinCap(c.DistanceKm(), prefs.MaxCyclingKm)
		default:
			return true
		}
	})
}

func withinCap(distanceKm float64, limit *float64) bool {
	if limit == nil || *limit <= 0 {
		return true
	}
	return distanceKm <= *limit
}
