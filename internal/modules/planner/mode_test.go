package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolver_FixedTable(t *testing.T) {
	got, err := NewResolver(nil).Resolve([]string{"walking", "cycling", "driving", "transit"})
	require.NoError(t, err)
	assert.Equal(t, []ModeProfile{
		{Profile: "walking", Mode: ModeWalking},
		{Profile: "cycling", Mode: ModeCycling},
		{Profile: "driving-traffic", Mode: ModeDriving},
		{Profile: "driving", Mode: ModeTransit},
	}, got)
}

func TestResolver_CaseInsensitiveDropsUnknownAndDuplicates(t *testing.T) {
	got, err := NewResolver(nil).Resolve([]string{"Walking", "teleport", " DRIVING ", "walking"})
	require.NoError(t, err)
	assert.Equal(t, []ModeProfile{
		{Profile: "walking", Mode: ModeWalking},
		{Profile: "driving-traffic", Mode: ModeDriving},
	}, got)
}

func TestResolver_NoValidModes(t *testing.T) {
	_, err := NewResolver(nil).Resolve([]string{"hoverboard", ""})
	assert.ErrorIs(t, err, ErrNoValidModes)
}

func TestModeNames(t *testing.T) {
	assert.Equal(t, "Walking", ModeWalking.Name())
	assert.Equal(t, "Cycling", ModeCycling.Name())
	assert.Equal(t, "Driving", ModeDriving.Name())
	assert.Equal(t, "Public Transit", ModeTransit.Name())
}

func TestPolicy_CO2Saved(t *testing.T) {
	p := DefaultPolicy()
	for _, d := range []float64{0.2, 1, 4, 17.3} {
		assert.Equal(t, 0.0, p.CO2SavedKg(ModeDriving, d), "driving %v", d)
		assert.InDelta(t, 0.21*d, p.CO2SavedKg(ModeWalking, d), 1e-9, "walking %v", d)
		assert.InDelta(t, 0.21*d, p.CO2SavedKg(ModeCycling, d), 1e-9, "cycling %v", d)
		assert.InDelta(t, 0.17*d, p.CO2SavedKg(ModeTransit, d), 1e-9, "transit %v", d)
	}
}

func TestPolicy_CO2SavedFlooredAtZero(t *testing.T) {
	p := DefaultPolicy()
	p.EmissionFactors[ModeTransit] = 0.5
	assert.Equal(t, 0.0, p.CO2SavedKg(ModeTransit, 10))
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(StageValidating, StageResolvingModes))
	assert.True(t, CanTransition(StageRanking, StageDone))
	assert.True(t, CanTransition(StageFetchingDirections, StageFailed))
	assert.False(t, CanTransition(StageValidating, StageFetchingDirections))
	assert.False(t, CanTransition(StageDone, StageFailed))
	assert.False(t, CanTransition(StageFailed, StageValidating))
}
