package pricing

import "github.com/esimly/backend/internal/domain"

// Resolver resolves the effective discount percent for a plan.
// The zero value, and a Resolver over a nil table, resolve everything to 0.
type Resolver struct {
	table *domain.DiscountTable
}

// NewResolver wraps a discount table snapshot. A nil table means not loaded yet.
func NewResolver(table *domain.DiscountTable) Resolver {
	return Resolver{table: table}
}

// Discount returns the percent for a package code, then for its size. An explicit
// individual 0 suppresses the global entry. gb <= 0 means no size is known.
func (r Resolver) Discount(packageCode string, gb float64) float64 {
	if r.table == nil {
		return 0
	}
	if pct, ok := r.table.Individual[packageCode]; ok {
		return pct
	}
	if gb <= 0 {
		return 0
	}
	return r.table.Global[GBKey(gb)]
}

// For resolves the discount of a classified plan.
func (r Resolver) For(l Listing) float64 {
	return r.Discount(l.PackageCode, l.GB)
}
