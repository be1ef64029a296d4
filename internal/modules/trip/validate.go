package trip

import (
	"math"
	"strings"
	"time"

	"ecoroute/internal/types"
)

// normalize checks cmd and returns the trip it describes, without ID.
func normalize(cmd SaveCommand, now time.Time) (Trip, error) {
	var details []string
	required := func(v, msg string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			details = append(details, msg)
		}
		return v
	}
	number := func(v *float64, msg string) float64 {
		if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
			details = append(details, msg)
			return 0
		}
		return math.Max(*v, 0)
	}
	coords := func(c *types.Coordinate, name string) types.Coordinate {
		switch {
		case c == nil:
			details = append(details, name+" coordinates are required")
			return types.Coordinate{}
		case math.IsNaN(c.Lat) || math.IsNaN(c.Lng):
			details = append(details, "Valid "+strings.ToLower(name)+" coordinates are required")
		case !c.Valid():
			details = append(details, name+" coordinates out of valid range")
		}
		return *c
	}

	t := Trip{
		OriginName:        required(cmd.OriginName, "Origin name is required"),
		DestinationName:   required(cmd.DestinationName, "Destination name is required"),
		Mode:              strings.ToLower(required(cmd.Mode, "Transport mode is required")),
		Distance:          number(cmd.Distance, "Valid distance is required"),
		Duration:          int(number(cmd.Duration, "Valid duration is required")),
		CO2Saved:          number(cmd.CO2Saved, "Valid CO2 saved value is required"),
		OriginCoords:      coords(cmd.OriginCoords, "Origin"),
		DestinationCoords: coords(cmd.DestinationCoords, "Destination"),
		Date:              now,
	}
	if cmd.Calories != nil && !math.IsNaN(*cmd.Calories) && !math.IsInf(*cmd.Calories, 0) {
		t.Calories = int(math.Max(*cmd.Calories, 0))
	}

	if len(details) > 0 {
		return Trip{}, &ValidationError{Details: details}
	}
	return t, nil
}
