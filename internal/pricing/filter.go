package pricing

import "strings"

// FilterByCountry drops regional plans when the target is an exact two-letter country code.
// GL- bundles and region codes are passed through untouched.
func FilterByCountry(listings []Listing, code string) []Listing {
	code = strings.TrimSpace(code)
	if len(code) != 2 || strings.HasPrefix(strings.ToUpper(code), "GL-") {
		return listings
	}
	out := make([]Listing, 0, len(listings))
	for _, l := range listings {
		if strings.Contains(l.Location, ",") {
			continue
		}
		out = append(out, l)
	}
	return out
}

// IsVisible applies the display rules to a single plan.
func IsVisible(l Listing, r Resolver, rules Rules) bool {
	if l.Protected {
		return true
	}
	if !l.Unlimited {
		if l.GB <= rules.MinVisibleGB {
			return false
		}
		if rules.excludedSize(l.GB) {
			return false
		}
		if l.Duration == 1 && normalizeUnit(l.DurationUnit) == "day" {
			return false
		}
	}
	// unlimited plans are checked on their per-day price
	return !DiscountedPrice(l, r).LessThan(rules.MinVisiblePrice)
}

// FilterVisible keeps the plans that pass IsVisible, in input order.
func FilterVisible(listings []Listing, r Resolver, rules Rules) []Listing {
	out := make([]Listing, 0, len(listings))
	for _, l := range listings {
		if IsVisible(l, r, rules) {
			out = append(out, l)
		}
	}
	return out
}
