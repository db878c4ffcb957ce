package pricing

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Volumes above this are bytes, anything at or below is megabytes.
const bytesThreshold = 1_000_000

// CalculateGB converts a raw plan volume into gigabytes.
// Upstream fills the field in bytes or megabytes depending on plan type; magnitude is the only signal.
func CalculateGB(volume int64) float64 {
	if volume <= 0 {
		return 0
	}
	if volume > bytesThreshold {
		return float64(volume) / (1024 * 1024 * 1024)
	}
	return float64(volume) / 1024
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// GBKey is the global discount map key for a size: one decimal, trailing ".0" dropped.
func GBKey(gb float64) string {
	return strconv.FormatFloat(round1(gb), 'f', -1, 64)
}

// FormatDataSize renders a size as "5 GB", "2.5 GB" or "512 MB".
func FormatDataSize(gb float64) string {
	if gb <= 0 {
		return "-"
	}
	if gb >= 1 {
		r := round1(gb)
		if r == math.Trunc(r) {
			return fmt.Sprintf("%d GB", int64(r))
		}
		return fmt.Sprintf("%.1f GB", r)
	}
	return fmt.Sprintf("%d MB", int64(math.Round(gb*1024)))
}

// FormatValidity renders "1 Day", "7 Days", "1 Month" and so on.
func FormatValidity(duration int, unit string) string {
	if duration <= 0 {
		return "-"
	}
	label := "Day"
	if normalizeUnit(unit) == "month" {
		label = "Month"
	}
	if duration != 1 {
		label += "s"
	}
	return fmt.Sprintf("%d %s", duration, label)
}

// DurationDays normalizes a duration to days, counting a month as 30.
func DurationDays(duration int, unit string) int {
	if normalizeUnit(unit) == "month" {
		return duration * 30
	}
	return duration
}

func normalizeUnit(unit string) string {
	return strings.ToLower(strings.TrimSpace(unit))
}
