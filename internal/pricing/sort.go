package pricing

import (
	"sort"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey selects the ordering of the plan list.
type SortKey string

const (
	SortPrice    SortKey = "price"
	SortDuration SortKey = "duration"
	SortDataSize SortKey = "dataSize"
	SortName     SortKey = "name"
)

// ParseSortKey maps a query value to a SortKey, defaulting to price.
func ParseSortKey(s string) (SortKey, bool) {
	switch SortKey(s) {
	case SortPrice, SortDuration, SortDataSize, SortName:
		return SortKey(s), true
	case "":
		return SortPrice, true
	}
	return SortPrice, false
}

// SortPlans returns a sorted copy; equal keys keep their input order.
func SortPlans(listings []Listing, key SortKey, r Resolver) []Listing {
	out := make([]Listing, len(listings))
	copy(out, listings)

	switch key {
	case SortDuration:
		sort.SliceStable(out, func(i, j int) bool {
			return DurationDays(out[i].Duration, out[i].DurationUnit) < DurationDays(out[j].Duration, out[j].DurationUnit)
		})
	case SortDataSize:
		sort.SliceStable(out, func(i, j int) bool { return out[i].GB < out[j].GB })
	case SortName:
		col := collate.New(language.English)
		sort.SliceStable(out, func(i, j int) bool {
			return col.CompareString(out[i].Name, out[j].Name) < 0
		})
	default:
		type priced struct {
			listing Listing
			price   decimal.Decimal
		}
		tmp := make([]priced, len(out))
		for i, l := range out {
			tmp[i] = priced{listing: l, price: DiscountedPrice(l, r)}
		}
		sort.SliceStable(tmp, func(i, j int) bool { return tmp[i].price.LessThan(tmp[j].price) })
		for i := range tmp {
			out[i] = tmp[i].listing
		}
	}
	return out
}
