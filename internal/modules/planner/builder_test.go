package planner

import (
	"errors"
	"math"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecoroute/internal/maps"
	"ecoroute/internal/modules/pricing"
)

func newTestBuilder() *Builder {
	b := NewBuilder(DefaultPolicy(), pricing.NewService())
	b.now = func() time.Time { return time.Date(2026, 3, 2, 14, 5, 0, 0, time.UTC) }
	return b
}

func TestBuilder_Metrics(t *testing.T) {
	tests := []struct {
		name       string
		mode       Mode
		meters     float64
		seconds    float64
		distance   float64
		duration   int
		co2        float64
		calories   int
		cost       float64
		difficulty Difficulty
		weather    string
	}{
		{"walking 4km", ModeWalking, 4000, 3000, 4.0, 50, 0.84, 240, 0, DifficultyChallenging, WeatherDependent},
		{"walking 0.8km", ModeWalking, 800, 600, 0.8, 10, 0.17, 48, 0, DifficultyEasy, WeatherDependent},
		{"walking 2km", ModeWalking, 2000, 1800, 2.0, 30, 0.42, 120, 0, DifficultyModerate, WeatherDependent},
		{"cycling 5km", ModeCycling, 5000, 1200, 5.0, 20, 1.05, 225, 0, DifficultyModerate, WeatherDependent},
		{"cycling 9km", ModeCycling, 9000, 2100, 9.0, 35, 1.89, 405, 0, DifficultyChallenging, WeatherDependent},
		{"driving 6km", ModeDriving, 6000, 720, 6.0, 12, 0, 0, 48, DifficultyEasy, WeatherIndependent},
		{"transit 5km", ModeTransit, 5000, 900, 5.0, 15, 0.85, 0, 15, DifficultyEasy, WeatherIndependent},
		{"transit 1km floor", ModeTransit, 1000, 300, 1.0, 5, 0.17, 0, 10, DifficultyEasy, WeatherIndependent},
		{"duration rounds", ModeDriving, 1000, 89, 1.0, 1, 0, 0, 8, DifficultyEasy, WeatherIndependent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, issues := newTestBuilder().Build([]ModeResult{{Mode: tt.mode, Response: response(rawRoute(tt.meters, tt.seconds))}})
			require.Empty(t, issues)
			require.Len(t, got, 1)
			c := got[0]
			assert.Equal(t, tt.mode, c.Mode)
			assert.Equal(t, tt.distance, c.Distance)
			assert.Equal(t, tt.duration, c.Duration)
			assert.InDelta(t, tt.co2, c.CO2Saved, 1e-9)
			assert.Equal(t, tt.calories, c.Calories)
			assert.InDelta(t, tt.cost, c.Cost, 1e-9)
			assert.Equal(t, tt.difficulty, c.Difficulty)
			assert.Equal(t, tt.weather, c.WeatherSuitability)
			assert.Equal(t, tt.mode.Name()+" Route", c.Name)
		})
	}
}

func TestBuilder_ArrivalAndID(t *testing.T) {
	got, _ := newTestBuilder().Build([]ModeResult{{Mode: ModeWalking, Response: response(rawRoute(4000, 3000))}})
	require.Len(t, got, 1)
	assert.Equal(t, "02:55 PM", got[0].EstimatedArrival)
	start := time.Date(2026, 3, 2, 14, 5, 0, 0, time.UTC)
	assert.Equal(t, "walking-0-"+strconv.FormatInt(start.UnixMilli(), 10), got[0].ID)
}

func TestBuilder_DegenerateRoutesRejected(t *testing.T) {
	for _, mode := range Modes {
		got, issues := newTestBuilder().Build([]ModeResult{{
			Mode:     mode,
			Response: response(rawRoute(199, 60), rawRoute(0, 0)),
		}})
		assert.Empty(t, got, "mode %s", mode)
		require.Len(t, issues, 2)
		for _, is := range issues {
			assert.ErrorIs(t, is.Err, ErrDegenerateRoute)
		}
	}

	got, _ := newTestBuilder().Build([]ModeResult{{Mode: ModeWalking, Response: response(rawRoute(200, 60))}})
	assert.Len(t, got, 1, "exactly 0.2km is kept")
}

func TestBuilder_AtMostTwoAlternatives(t *testing.T) {
	got, issues := newTestBuilder().Build([]ModeResult{{
		Mode:     ModeCycling,
		Response: response(rawRoute(3000, 600), rawRoute(3500, 700), rawRoute(4000, 800)),
	}})
	require.Empty(t, issues)
	require.Len(t, got, 2)
	assert.Equal(t, "Cycling Route", got[0].Name)
	assert.Equal(t, "Cycling Alternative", got[1].Name)
	assert.Equal(t, 3.0, got[0].Distance)
	assert.Equal(t, 3.5, got[1].Distance)
}

func TestBuilder_MissingLegsSkippedNotFatal(t *testing.T) {
	broken := rawRoute(5000, 600)
	broken.Legs = nil
	got, issues := newTestBuilder().Build([]ModeResult{{
		Mode:     ModeDriving,
		Response: response(broken, rawRoute(5200, 650)),
	}})
	require.Len(t, got, 1)
	assert.Equal(t, "Driving Alternative", got[0].Name)
	require.Len(t, issues, 1)
	assert.Equal(t, 0, issues[0].Index)
	assert.ErrorIs(t, issues[0].Err, ErrInternalComputation)
}

func TestBuilder_NonFiniteMetricsSkipped(t *testing.T) {
	_, issues := newTestBuilder().Build([]ModeResult{{Mode: ModeWalking, Response: response(rawRoute(math.NaN(), 60))}})
	require.Len(t, issues, 1)
	assert.ErrorIs(t, issues[0].Err, ErrInternalComputation)
}

func TestBuilder_StepFallbacks(t *testing.T) {
	raw := rawRoute(1000, 600)
	raw.Legs[0].Steps = []maps.Step{
		{Maneuver: maps.Maneuver{Instruction: "Turn left onto Main St", Type: "turn"}, Distance: 400, Duration: 200},
		{Distance: 600, Duration: 400},
	}
	got, _ := newTestBuilder().Build([]ModeResult{{Mode: ModeWalking, Response: response(raw)}})
	require.Len(t, got, 1)
	assert.Equal(t, []Step{
		{Instruction: "Turn left onto Main St", Distance: 400, Duration: 200, Type: "turn"},
		{Instruction: "Continue", Distance: 600, Duration: 400, Type: "continue"},
	}, got[0].Steps)
}

func TestBuilder_SkipsFailedModes(t *testing.T) {
	got, issues := newTestBuilder().Build([]ModeResult{
		{Mode: ModeWalking, Err: errors.New("boom")},
		{Mode: ModeDriving, Response: response(rawRoute(6000, 720))},
	})
	assert.Empty(t, issues)
	require.Len(t, got, 1)
	assert.Equal(t, ModeDriving, got[0].Mode)
}

func TestBuilder_GeometryPassedThrough(t *testing.T) {
	raw := rawRoute(1000, 600)
	got, _ := newTestBuilder().Build([]ModeResult{{Mode: ModeWalking, Response: response(raw)}})
	require.Len(t, got, 1)
	assert.Equal(t, raw.Geometry, got[0].Geometry)
}
