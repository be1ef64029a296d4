// README: Common money value object used across modules.
package types

import "math"

// DefaultCurrency is a placeholder unit; cost heuristics are not tied to a real currency.
const DefaultCurrency = "UNIT"

type Money struct {
	Amount   float64
	Currency string
}

func (m Money) IsZero() bool {
	return m.Amount == 0
}

// Round returns the amount rounded to the given number of decimals.
func Round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
