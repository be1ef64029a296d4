package ai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanJSONString(t *testing.T) {
	cases := map[string]string{
		"```json\n{\"tip\":\"x\"}\n```": `{"tip":"x"}`,
		"```{\"tip\":\"x\"}```":         `{"tip":"x"}`,
		"  {\"tip\":\"x\"}  ":           `{"tip":"x"}`,
	}
	for in, want := range cases {
		assert.Equal(t, want, cleanJSONString(in))
	}
}

func TestParseTip(t *testing.T) {
	got, err := parseTip("```json\n{\"tip\": \" Cycle to work twice a week. \", \"focusMode\": \"Cycling\"}\n```")
	require.NoError(t, err)
	assert.Equal(t, "Cycle to work twice a week.", got.Tip)
	assert.Equal(t, "cycling", got.FocusMode)

	_, err = parseTip(`{"tip": "", "focusMode": "walking"}`)
	assert.Error(t, err)

	_, err = parseTip("not json")
	assert.Error(t, err)
}

func TestBuildCoachPrompt(t *testing.T) {
	p := buildCoachPrompt(CoachContext{
		MonthCO2Kg:    12.5,
		MonthTrips:    7,
		MonthDistance: 31.2,
		MonthlyGoalKg: 60,
		GoalProgress:  20.8,
		ModeCounts:    map[string]int{"walking": 3, "driving": 4},
	})
	assert.Contains(t, p, "CO2 saved: 12.50 kg of a 60 kg goal (21% reached)")
	assert.Contains(t, p, "Route priority: Balanced")
	assert.Less(t, strings.Index(p, "- driving: 4 trips"), strings.Index(p, "- walking: 3 trips"))

	empty := buildCoachPrompt(CoachContext{})
	assert.Contains(t, empty, "no saved trips yet")
}
