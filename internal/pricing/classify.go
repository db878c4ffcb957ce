package pricing

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/esimly/backend/internal/domain"
)

// Either "fup<digits>mbps" anywhere in the name, or "fup<digits>" standing alone as a word.
// "_" counts as a separator.
var fupPattern = regexp.MustCompile(`(?i)fup(\d*)mbps|(?:^|[^a-z])fup(\d*)(?:$|[^a-z0-9])`)

const volumeUnlimitedSentinel = -1

// ParseFlags extracts the markers carried in a carrier plan name.
func ParseFlags(name string) domain.PlanFlags {
	var flags domain.PlanFlags
	if m := fupPattern.FindStringSubmatch(name); m != nil {
		mbps := 1
		if digits := m[1] + m[2]; digits != "" {
			if n, err := strconv.Atoi(digits); err == nil {
				mbps = n
			}
		}
		flags.FairUse = &domain.FairUsePolicy{MbpsLimit: mbps}
	}
	flags.NonHKIP = strings.Contains(strings.ToLower(name), "nonhk")
	flags.IIJ = strings.Contains(name, "IIJ")
	return flags
}

// Listing is a plan with everything derived from the plan itself computed once.
// Discount-dependent values are never stored here.
type Listing struct {
	domain.Plan
	Flags     domain.PlanFlags
	GB        float64
	Unlimited bool
	Protected bool
}

// Selectable reports whether the plan can be put in an order.
func (l Listing) Selectable() bool {
	return strings.TrimSpace(l.PackageCode) != ""
}

// Ingest classifies a raw plan.
func Ingest(p domain.Plan) Listing {
	l := Listing{
		Plan:  p,
		Flags: ParseFlags(p.Name),
		GB:    CalculateGB(p.Volume),
	}
	l.Unlimited = isDailyUnlimited(p.Volume, l.GB, l.Flags)
	l.Protected = is1GB7Days(l.GB, p.Duration, p.DurationUnit, l.Flags)
	return l
}

// IngestAll classifies plans preserving input order.
func IngestAll(plans []domain.Plan) []Listing {
	out := make([]Listing, 0, len(plans))
	for _, p := range plans {
		out = append(out, Ingest(p))
	}
	return out
}

// IsDailyUnlimitedPlan reports whether a plan is the ~2 GB high-speed plus 1 Mbps fair-use product.
func IsDailyUnlimitedPlan(p domain.Plan) bool {
	return isDailyUnlimited(p.Volume, CalculateGB(p.Volume), ParseFlags(p.Name))
}

// Is1GB7DaysPlan reports whether a plan is the always-visible 1 GB / 7 day SKU.
func Is1GB7DaysPlan(p domain.Plan) bool {
	return is1GB7Days(CalculateGB(p.Volume), p.Duration, p.DurationUnit, ParseFlags(p.Name))
}

func isDailyUnlimited(volume int64, gb float64, flags domain.PlanFlags) bool {
	if volume == 0 || volume == volumeUnlimitedSentinel {
		return false
	}
	if gb < 1.95 || gb > 2.05 {
		return false
	}
	return flags.FairUse != nil && flags.FairUse.MbpsLimit == 1
}

func is1GB7Days(gb float64, duration int, unit string, flags domain.PlanFlags) bool {
	if gb < 0.9 || gb > 1.1 {
		return false
	}
	if duration != 7 || normalizeUnit(unit) != "day" {
		return false
	}
	return flags.FairUse == nil && !flags.NonHKIP
}
