package domain

import "github.com/shopspring/decimal"

// Duration units used by carrier plans.
const (
	UnitDay   = "day"
	UnitMonth = "month"
)

// Plan is a sellable carrier data package as returned by the storefront backend.
// Plans are never mutated after they are fetched.
type Plan struct {
	PackageCode  string          `json:"packageCode"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`  // per-day price for unlimited plans
	Volume       int64           `json:"volume"` // bytes or MB, see pricing.CalculateGB
	Duration     int             `json:"duration"`
	DurationUnit string          `json:"durationUnit"`
	Location     string          `json:"location"`
}

// RegionVariant is the routing variant encoded in a carrier plan name.
type RegionVariant int

const (
	VariantStandard RegionVariant = iota
	VariantNonHKIP
	VariantIIJ
)

func (v RegionVariant) String() string {
	switch v {
	case VariantNonHKIP:
		return "nonhkip"
	case VariantIIJ:
		return "iij"
	default:
		return "standard"
	}
}

// FairUsePolicy is the throttle applied after the high-speed allotment.
type FairUsePolicy struct {
	MbpsLimit int `json:"mbpsLimit"`
}

// PlanFlags holds the markers parsed out of a plan name once, at ingestion.
type PlanFlags struct {
	FairUse *FairUsePolicy `json:"fairUse,omitempty"`
	NonHKIP bool           `json:"nonHkip"`
	IIJ     bool           `json:"iij"`
}

// Variant collapses the region markers. NonHKIP wins when a name carries both.
func (f PlanFlags) Variant() RegionVariant {
	switch {
	case f.NonHKIP:
		return VariantNonHKIP
	case f.IIJ:
		return VariantIIJ
	default:
		return VariantStandard
	}
}

// PlanView is a display-ready plan returned by the catalog endpoint.
type PlanView struct {
	PackageCode     string          `json:"packageCode"`
	Name            string          `json:"name"`
	Location        string          `json:"location"`
	GB              float64         `json:"gb"`
	DataSize        string          `json:"dataSize"`
	Validity        string          `json:"validity"`
	Duration        int             `json:"duration"`
	DurationUnit    string          `json:"durationUnit"`
	Unlimited       bool            `json:"unlimited"`
	Flags           PlanFlags       `json:"flags"`
	Variant         string          `json:"variant"`
	DiscountPercent float64         `json:"discountPercent"`
	Price           decimal.Decimal `json:"price"`
	DiscountedPrice decimal.Decimal `json:"discountedPrice"`
	DisplayCurrency string          `json:"displayCurrency"`
	DisplayPrice    string          `json:"displayPrice"`
	DisplayOriginal string          `json:"displayOriginalPrice,omitempty"`
	Selectable      bool            `json:"selectable"`
}

// PlanDetail is the plan-detail price. The plan discount and the referral discount never stack.
type PlanDetail struct {
	PlanView
	PriceSource DiscountSource `json:"priceSource"`
}

// CatalogResponse is the body of GET /api/countries/{code}/plans.
type CatalogResponse struct {
	CountryCode string     `json:"countryCode"`
	SortBy      string     `json:"sortBy"`
	Currency    string     `json:"currency"`
	Plans       []PlanView `json:"plans"`
}
