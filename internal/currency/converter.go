package currency

import (
	"strings"

	"github.com/shopspring/decimal"
)

// USD is the pivot currency all rates are expressed against.
const USD = "USD"

// Converter converts amounts into the selected display currency using a rate snapshot.
// A missing or zero rate converts as identity; conversion never fails.
type Converter struct {
	selected string
	rates    map[string]float64
}

// NewConverter builds a converter. A nil rate map means rates are not loaded yet.
func NewConverter(selected string, rates map[string]float64) Converter {
	selected = Normalize(selected)
	if selected == "" {
		selected = USD
	}
	return Converter{selected: selected, rates: rates}
}

// Normalize upper-cases and trims a currency code.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Selected returns the display currency.
func (c Converter) Selected() string { return c.selected }

func (c Converter) rate(code string) (decimal.Decimal, bool) {
	if code == USD {
		return decimal.NewFromInt(1), true
	}
	r, ok := c.rates[code]
	if !ok || r <= 0 {
		return decimal.Zero, false
	}
	return decimal.NewFromFloat(r), true
}

// Convert converts a USD amount to the selected currency.
func (c Converter) Convert(amountUSD decimal.Decimal) decimal.Decimal {
	if c.selected == USD {
		return amountUSD
	}
	r, ok := c.rate(c.selected)
	if !ok {
		return amountUSD
	}
	return amountUSD.Mul(r)
}

// ConvertFromCurrency converts an amount in from to the selected currency, pivoting through USD.
func (c Converter) ConvertFromCurrency(amount decimal.Decimal, from string) decimal.Decimal {
	from = Normalize(from)
	if from == "" || from == c.selected {
		return amount
	}
	return c.Convert(c.ToUSD(amount, from))
}

// ToUSD converts an amount in from to USD, as identity when the rate is unknown.
func (c Converter) ToUSD(amount decimal.Decimal, from string) decimal.Decimal {
	from = Normalize(from)
	if from == "" || from == USD {
		return amount
	}
	r, ok := c.rate(from)
	if !ok {
		return amount
	}
	return amount.DivRound(r, 8)
}

// Rate reports the multiplier for the selected currency and whether it is known.
func (c Converter) Rate() (float64, bool) {
	r, ok := c.rate(c.selected)
	return r.InexactFloat64(), ok
}

// Known reports whether amounts in code can actually be converted.
func (c Converter) Known(code string) bool {
	_, ok := c.rate(Normalize(code))
	return ok
}
