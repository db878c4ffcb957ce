package currency

import (
	"sort"

	"github.com/shopspring/decimal"
	xcurrency "golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultZeroDecimal are the currencies shown without fraction digits.
var DefaultZeroDecimal = []string{"JPY", "KRW", "IDR", "VND", "HUF", "CLP", "COP"}

// fallbackSymbols is used when x/text does not know a code.
var fallbackSymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"KRW": "₩",
	"CNY": "¥",
	"HKD": "HK$",
	"SGD": "S$",
	"AUD": "A$",
	"CAD": "CA$",
	"THB": "฿",
	"VND": "₫",
	"IDR": "Rp",
	"INR": "₹",
	"PHP": "₱",
	"TRY": "₺",
}

// Formatter renders money for display.
type Formatter struct {
	tag         language.Tag
	zeroDecimal map[string]bool
}

// NewFormatter builds a formatter; codes in zeroDecimal render with no fraction digits.
func NewFormatter(zeroDecimal []string) *Formatter {
	z := make(map[string]bool, len(zeroDecimal))
	for _, c := range zeroDecimal {
		z[Normalize(c)] = true
	}
	return &Formatter{tag: language.English, zeroDecimal: z}
}

// FractionDigits returns 0 for zero-decimal currencies, 2 otherwise.
func (f *Formatter) FractionDigits(code string) int {
	if f.zeroDecimal[Normalize(code)] {
		return 0
	}
	return 2
}

// ZeroDecimal lists the configured zero-decimal currencies.
func (f *Formatter) ZeroDecimal() []string {
	out := make([]string, 0, len(f.zeroDecimal))
	for c := range f.zeroDecimal {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Format renders an amount in code, e.g. "$1,234.50" or "¥1,235".
func (f *Formatter) Format(amount decimal.Decimal, code string) string {
	code = Normalize(code)
	unit, err := xcurrency.ParseISO(code)
	if err != nil {
		return fallback(amount, code)
	}
	digits := f.FractionDigits(code)
	rounded := amount.Round(int32(digits))

	p := message.NewPrinter(f.tag)
	sym := p.Sprint(xcurrency.NarrowSymbol(unit))
	return sym + p.Sprint(number.Decimal(rounded.InexactFloat64(), number.Scale(digits)))
}

func fallback(amount decimal.Decimal, code string) string {
	sym, ok := fallbackSymbols[code]
	if !ok {
		sym = code + " "
	}
	return sym + amount.StringFixed(2)
}

// Valid reports whether code is an ISO 4217 currency.
func Valid(code string) bool {
	_, err := xcurrency.ParseISO(Normalize(code))
	return err == nil
}
