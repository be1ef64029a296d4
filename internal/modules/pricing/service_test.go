package pricing

import (
	"math"
	"testing"
)

func TestService_Estimate(t *testing.T) {
	tests := []struct {
		name       string
		mode       string
		distanceKm float64
		want       float64
	}{
		{name: "Walking is free", mode: "walking", distanceKm: 4, want: 0},
		{name: "Cycling is free", mode: "cycling", distanceKm: 12.5, want: 0},
		{name: "Driving 6km -> 48", mode: "driving", distanceKm: 6, want: 48},
		{name: "Driving rounds (3.33km -> 26.64 -> 27)", mode: "driving", distanceKm: 3.33, want: 27},
		{name: "Transit floor (2km -> 6 -> 10)", mode: "transit", distanceKm: 2, want: 10},
		{name: "Transit linear (5km -> 15)", mode: "transit", distanceKm: 5, want: 15},
		{name: "Transit not rounded (4.5km -> 13.5)", mode: "transit", distanceKm: 4.5, want: 13.5},
		{name: "Transit ceiling (30km -> 90 -> 50)", mode: "transit", distanceKm: 30, want: 50},
		{name: "Unknown mode is free", mode: "ferry", distanceKm: 10, want: 0},
	}

	s := NewService()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Estimate(tt.mode, tt.distanceKm)
			if math.Abs(got.Amount-tt.want) > 1e-9 {
				t.Errorf("Estimate() = %v, want %v", got.Amount, tt.want)
			}
			if got.Currency == "" {
				t.Errorf("Estimate() currency is empty")
			}
		})
	}
}

func TestNewServiceWithRates_Copies(t *testing.T) {
	rates := map[string]Rate{"driving": {Mode: "driving", PerKm: 1}}
	s := NewServiceWithRates(rates)
	rates["driving"] = Rate{Mode: "driving", PerKm: 100}
	if got := s.Estimate("driving", 2).Amount; got != 2 {
		t.Errorf("Estimate() = %v, want 2", got)
	}
}
