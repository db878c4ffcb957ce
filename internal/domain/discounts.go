package domain

// DiscountTable is the pair of discount maps configured in the backend.
// Percentages are in the range 0-100.
type DiscountTable struct {
	// Individual overrides keyed by package code. An explicit 0 suppresses the global discount.
	Individual map[string]float64 `json:"individual"`
	// Global discounts keyed by GB size rounded to one decimal ("1", "2.5", "10").
	Global map[string]float64 `json:"global"`
}

// ExchangeRates maps currency codes to a multiplier relative to USD.
type ExchangeRates struct {
	Rates map[string]float64 `json:"rates"`
}
