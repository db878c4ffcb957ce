package pricing

import "github.com/shopspring/decimal"

// Rules are the storefront business thresholds.
type Rules struct {
	MinVisiblePrice  decimal.Decimal
	MinVisibleGB     float64
	ExcludedSizes    []float64
	MinPayout        decimal.Decimal
	MinUnlimitedDays int
	MaxUnlimitedDays int
}

// DefaultRules returns the thresholds the storefront ships with.
func DefaultRules() Rules {
	return Rules{
		MinVisiblePrice:  decimal.NewFromInt(3),
		MinVisibleGB:     1.5,
		ExcludedSizes:    []float64{0.5, 1.5, 2.0},
		MinPayout:        decimal.NewFromInt(20),
		MinUnlimitedDays: 1,
		MaxUnlimitedDays: 365,
	}
}

func (r Rules) excludedSize(gb float64) bool {
	key := round1(gb)
	for _, s := range r.ExcludedSizes {
		if round1(s) == key {
			return true
		}
	}
	return false
}
