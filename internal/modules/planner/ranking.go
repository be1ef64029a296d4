package planner

import "sort"

// BalancedScore blends kg CO2 saved and minutes with fixed weights. The units
// are not normalized; see DESIGN.md.
func BalancedScore(c Candidate) float64 {
	return 0.5*c.CO2Saved - 0.01*float64(c.Duration)
}

// Rank orders candidates for the priority and truncates to limit. The input
// slice is not modified. Ties keep build order.
func Rank(candidates []Candidate, priority Priority, limit int) []Candidate {
	out := make([]Candidate, len(candidates))
	copy(out, candidates)

	var less func(a, b Candidate) bool
	switch priority {
	case PriorityEcoFirst:
		less = func(a, b Candidate) bool { return a.CO2Saved > b.CO2Saved }
	case PrioritySpeedFirst:
		less = func(a, b Candidate) bool { return a.Duration < b.Duration }
	default:
		less = func(a, b Candidate) bool { return BalancedScore(a) > BalancedScore(b) }
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
