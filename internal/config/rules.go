package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/esimly/backend/internal/currency"
	"github.com/esimly/backend/internal/pricing"
)

// Rules is the pricing-rules overlay read from PRICING_RULES_FILE.
type Rules struct {
	MinVisiblePrice  float64   `yaml:"min_visible_price"`
	MinVisibleGB     float64   `yaml:"min_visible_gb"`
	ExcludedSizes    []float64 `yaml:"excluded_sizes"`
	MinPayout        float64   `yaml:"min_payout"`
	ZeroDecimal      []string  `yaml:"zero_decimal_currencies"`
	MinUnlimitedDays int       `yaml:"min_unlimited_days"`
	MaxUnlimitedDays int       `yaml:"max_unlimited_days"`
}

// DefaultRules mirrors pricing.DefaultRules plus the display defaults.
func DefaultRules() Rules {
	d := pricing.DefaultRules()
	return Rules{
		MinVisiblePrice:  d.MinVisiblePrice.InexactFloat64(),
		MinVisibleGB:     d.MinVisibleGB,
		ExcludedSizes:    d.ExcludedSizes,
		MinPayout:        d.MinPayout.InexactFloat64(),
		ZeroDecimal:      append([]string(nil), currency.DefaultZeroDecimal...),
		MinUnlimitedDays: d.MinUnlimitedDays,
		MaxUnlimitedDays: d.MaxUnlimitedDays,
	}
}

// LoadRules overlays a YAML file on the defaults. Keys missing from the file keep their default.
func LoadRules(path string) (Rules, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("read pricing rules: %w", err)
	}
	return ParseRules(raw)
}

// ParseRules overlays YAML content on the defaults and validates the result.
func ParseRules(raw []byte) (Rules, error) {
	rules := DefaultRules()
	if err := yaml.Unmarshal(raw, &rules); err != nil {
		return Rules{}, fmt.Errorf("parse pricing rules: %w", err)
	}
	if err := rules.Validate(); err != nil {
		return Rules{}, err
	}
	return rules, nil
}

// Validate reports every invalid field at once.
func (r Rules) Validate() error {
	var errs []string
	if r.MinVisiblePrice < 0 {
		errs = append(errs, "min_visible_price must not be negative")
	}
	if r.MinVisibleGB < 0 {
		errs = append(errs, "min_visible_gb must not be negative")
	}
	for _, s := range r.ExcludedSizes {
		if s <= 0 {
			errs = append(errs, fmt.Sprintf("excluded_sizes entry %v must be positive", s))
		}
	}
	if r.MinPayout <= 0 {
		errs = append(errs, "min_payout must be positive")
	}
	for _, c := range r.ZeroDecimal {
		if len(strings.TrimSpace(c)) != 3 {
			errs = append(errs, fmt.Sprintf("zero_decimal_currencies entry %q is not a 3-letter code", c))
		}
	}
	if r.MinUnlimitedDays < 1 {
		errs = append(errs, "min_unlimited_days must be at least 1")
	}
	if r.MaxUnlimitedDays < r.MinUnlimitedDays {
		errs = append(errs, "max_unlimited_days must not be below min_unlimited_days")
	}
	if len(errs) > 0 {
		return errors.New("invalid pricing rules: " + strings.Join(errs, "; "))
	}
	return nil
}

// Pricing converts the overlay into the thresholds used by the pricing package.
func (r Rules) Pricing() pricing.Rules {
	return pricing.Rules{
		MinVisiblePrice:  decimal.NewFromFloat(r.MinVisiblePrice),
		MinVisibleGB:     r.MinVisibleGB,
		ExcludedSizes:    r.ExcludedSizes,
		MinPayout:        decimal.NewFromFloat(r.MinPayout),
		MinUnlimitedDays: r.MinUnlimitedDays,
		MaxUnlimitedDays: r.MaxUnlimitedDays,
	}
}
