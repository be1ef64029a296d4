package ai

// CoachContext is the user summary sent to the model.
type CoachContext struct {
	// Month totals.
	MonthCO2Kg    float64
	MonthTrips    int
	MonthDistance float64

	// MonthlyGoalKg is the user's CO2 target; GoalProgress is 0-100.
	MonthlyGoalKg float64
	GoalProgress  float64

	// ModeCounts is trips per transport mode over the whole history.
	ModeCounts map[string]int

	Priority string
}

// TipResult captures the structured output from the model.
type TipResult struct {
	// Tip is one or two sentences addressed to the user.
	Tip string `json:"tip"`

	// FocusMode is the transport mode the tip nudges toward.
	// Valid values: "walking", "cycling", "transit", "driving".
	FocusMode string `json:"focusMode"`
}
