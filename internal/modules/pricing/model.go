// README: Per-mode rate definition for the trip cost heuristic.
package pricing

// Rate prices a mode per kilometre. A zero Max means no ceiling.
type Rate struct {
	Mode  string
	PerKm float64
	Min   float64
	Max   float64
	// Whole rounds the amount to the nearest unit.
	Whole bool
}

var defaultRates = map[string]Rate{
	"walking": {Mode: "walking"},
	"cycling": {Mode: "cycling"},
	"driving": {Mode: "driving", PerKm: 8, Whole: true},
	"transit": {Mode: "transit", PerKm: 3, Min: 10, Max: 50},
}
