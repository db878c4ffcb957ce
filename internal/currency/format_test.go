package currency

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatZeroDecimal(t *testing.T) {
	f := NewFormatter(DefaultZeroDecimal)

	out := f.Format(decimal.NewFromFloat(1234.5), "JPY")
	assert.Contains(t, out, "1,235")
	assert.NotContains(t, out, ".")
	assert.Equal(t, 0, f.FractionDigits("jpy"))
}

func TestFormatTwoDecimals(t *testing.T) {
	f := NewFormatter(DefaultZeroDecimal)

	out := f.Format(decimal.NewFromFloat(1234.5), "USD")
	assert.Contains(t, out, "1,234.50")
	assert.Contains(t, out, "$")
	assert.Equal(t, 2, f.FractionDigits("EUR"))
}

func TestFormatFallback(t *testing.T) {
	f := NewFormatter(nil)
	assert.Equal(t, "ABC 12.30", f.Format(decimal.NewFromFloat(12.3), "ABC"))
}

func TestZeroDecimalSorted(t *testing.T) {
	f := NewFormatter([]string{"vnd", "JPY"})
	assert.Equal(t, []string{"JPY", "VND"}, f.ZeroDecimal())
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("eur"))
	assert.False(t, Valid("ABC"))
	assert.False(t, Valid(""))
}
