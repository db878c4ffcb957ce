package pricing

import "github.com/esimly/backend/internal/domain"

// BuildCatalog runs the display pipeline: classify, scope to the country, apply the
// visibility rules, collapse duplicate SKUs and sort.
func BuildCatalog(plans []domain.Plan, countryCode string, key SortKey, r Resolver, rules Rules) []Listing {
	listings := IngestAll(plans)
	listings = FilterByCountry(listings, countryCode)
	listings = FilterVisible(listings, r, rules)
	listings = Deduplicate(listings)
	return SortPlans(listings, key, r)
}
