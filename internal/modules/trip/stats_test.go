package trip

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeStats_Periods(t *testing.T) {
	// Wednesday 18 March 2026; the week started Sunday 15 March.
	now := time.Date(2026, 3, 18, 15, 0, 0, 0, time.UTC)
	trips := []Trip{
		{CO2Saved: 1, Distance: 2, Calories: 10, Date: time.Date(2026, 3, 18, 8, 0, 0, 0, time.UTC)},
		{CO2Saved: 2, Distance: 3, Calories: 20, Date: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)},
		{CO2Saved: 4, Distance: 5, Calories: 30, Date: time.Date(2026, 3, 14, 23, 59, 0, 0, time.UTC)},
		{CO2Saved: 8, Distance: 7, Calories: 40, Date: time.Date(2026, 2, 28, 12, 0, 0, 0, time.UTC)},
	}

	s := ComputeStats(trips, now, 60)
	assert.Equal(t, Totals{CO2Saved: 1, Trips: 1, Distance: 2, Calories: 10}, s.Today)
	assert.Equal(t, Totals{CO2Saved: 3, Trips: 2, Distance: 5, Calories: 30}, s.Week)
	assert.Equal(t, Totals{CO2Saved: 7, Trips: 3, Distance: 10, Calories: 60}, s.Month)
	assert.Equal(t, Totals{CO2Saved: 15, Trips: 4, Distance: 17, Calories: 100}, s.AllTime)
	assert.InDelta(t, 7.0/60*100, s.GoalProgress, 1e-9)
}

func TestComputeStats_GoalProgressCapped(t *testing.T) {
	now := time.Date(2026, 3, 18, 15, 0, 0, 0, time.UTC)
	s := ComputeStats([]Trip{{CO2Saved: 90, Date: now}}, now, 60)
	assert.Equal(t, 100.0, s.GoalProgress)

	s = ComputeStats(nil, now, 0)
	assert.Equal(t, 0.0, s.GoalProgress)
}

func TestPersonalizedWeights(t *testing.T) {
	tests := []struct {
		name  string
		modes []string
		want  Weights
	}{
		{"no history", nil, Weights{Speed: 0.5, Sustainability: 0.5}},
		{"four trips", []string{"walking", "walking", "walking", "walking"}, Weights{Speed: 0.5, Sustainability: 0.5}},
		{"all sustainable", []string{"walking", "cycling", "transit", "walking", "cycling"}, Weights{Speed: 0, Sustainability: 1}},
		{"mixed", []string{"walking", "driving", "driving", "driving", "cycling"}, Weights{Speed: 0.6, Sustainability: 0.4}},
		{"unknown modes count as unsustainable", []string{"walking", "jetpack", "driving", "driving", "driving"}, Weights{Speed: 0.8, Sustainability: 0.2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trips := make([]Trip, len(tt.modes))
			for i, m := range tt.modes {
				trips[i] = Trip{Mode: m}
			}
			got := PersonalizedWeights(trips)
			assert.InDelta(t, tt.want.Speed, got.Speed, 1e-9)
			assert.InDelta(t, tt.want.Sustainability, got.Sustainability, 1e-9)
		})
	}
}
