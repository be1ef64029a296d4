// README: Pricing service computes per-mode trip cost estimates.
package pricing

import (
	"math"

	"ecoroute/internal/types"
)

type Service struct {
	rates map[string]Rate
}

// NewService returns a Service using the built-in rate table.
func NewService() *Service {
	return NewServiceWithRates(defaultRates)
}

func NewServiceWithRates(rates map[string]Rate) *Service {
	copied := make(map[string]Rate, len(rates))
	for k, v := range rates {
		copied[k] = v
	}
	return &Service{rates: copied}
}

// Estimate prices distanceKm in mode. Unknown modes are free.
func (s *Service) Estimate(mode string, distanceKm float64) types.Money {
	rate, ok := s.rates[mode]
	if !ok || rate.PerKm == 0 {
		return types.Money{Currency: types.DefaultCurrency}
	}
	amount := distanceKm * rate.PerKm
	if rate.Whole {
		amount = math.Round(amount)
	}
	if amount < rate.Min {
		amount = rate.Min
	}
	if rate.Max > 0 && amount > rate.Max {
		amount = rate.Max
	}
	return types.Money{Amount: amount, Currency: types.DefaultCurrency}
}
