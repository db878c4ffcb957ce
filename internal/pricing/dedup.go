package pricing

import "strings"

type dedupKey struct {
	location string
	duration int
	unit     string
	volume   int64
}

func normalizeLocation(location string) string {
	first, _, _ := strings.Cut(location, ",")
	return strings.ToUpper(strings.TrimSpace(first))
}

// Deduplicate collapses SKUs for the same country, duration and volume into one.
// Groups are emitted in order of their first member.
func Deduplicate(listings []Listing) []Listing {
	groups := make(map[dedupKey][]Listing)
	var order []dedupKey
	for _, l := range listings {
		k := dedupKey{
			location: normalizeLocation(l.Location),
			duration: l.Duration,
			unit:     normalizeUnit(l.DurationUnit),
			volume:   l.Volume,
		}
		if _, seen := groups[k]; !seen {
			order = append(order, k)
		}
		groups[k] = append(groups[k], l)
	}

	out := make([]Listing, 0, len(order))
	for _, k := range order {
		out = append(out, pickPreferred(k.location, groups[k]))
	}
	return out
}

func pickPreferred(location string, group []Listing) Listing {
	if len(group) == 1 {
		return group[0]
	}

	var protected []Listing
	for _, l := range group {
		if l.Protected {
			protected = append(protected, l)
		}
	}
	if len(protected) > 0 {
		for _, l := range protected {
			if !l.Flags.NonHKIP && l.Flags.FairUse == nil {
				return l
			}
		}
		return protected[0]
	}

	if location == "JP" || location == "JAPAN" {
		return firstOr(group, func(l Listing) bool { return l.Flags.IIJ })
	}
	return firstOr(group, func(l Listing) bool { return l.Flags.NonHKIP })
}

func firstOr(group []Listing, match func(Listing) bool) Listing {
	for _, l := range group {
		if match(l) {
			return l
		}
	}
	return group[0]
}
