package service

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/esimly/backend/internal/currency"
	"github.com/esimly/backend/internal/domain"
	"github.com/esimly/backend/internal/pricing"
)

// CatalogService builds the visible plan list for a country.
type CatalogService struct {
	backend Backend
	state   *PricingState
	prefs   *PreferenceService
	log     *logrus.Entry
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(b Backend, state *PricingState, prefs *PreferenceService, logger *logrus.Logger) *CatalogService {
	return &CatalogService{backend: b, state: state, prefs: prefs, log: logger.WithField("service", "catalog")}
}

// Plans returns the visible, deduplicated and sorted plans with display prices in displayCurrency.
func (s *CatalogService) Plans(ctx context.Context, countryCode, sortBy, displayCurrency string) (*domain.CatalogResponse, error) {
	countryCode = strings.ToUpper(strings.TrimSpace(countryCode))
	if countryCode == "" {
		return nil, domain.ErrBadRequest("country code is required")
	}
	key, ok := pricing.ParseSortKey(sortBy)
	if !ok {
		return nil, domain.ErrBadRequest("sort must be one of price, duration, dataSize, name")
	}

	plans, err := s.backend.FetchPlansForCountry(ctx, countryCode)
	if err != nil {
		return nil, upstreamError("failed to fetch plans", err)
	}

	resolver := s.state.Resolver()
	conv := s.state.Converter(displayCurrency)
	listings := pricing.BuildCatalog(plans, countryCode, key, resolver, s.state.Rules())

	views := make([]domain.PlanView, 0, len(listings))
	for _, l := range listings {
		pct := resolver.For(l)
		views = append(views, s.view(l, pct, pricing.ApplyDiscount(l.Price, pct), conv))
	}

	s.log.WithFields(logrus.Fields{
		"country": countryCode,
		"raw":     len(plans),
		"visible": len(views),
	}).Debug("catalog built")

	return &domain.CatalogResponse{
		CountryCode: countryCode,
		SortBy:      string(key),
		Currency:    conv.Selected(),
		Plans:       views,
	}, nil
}

// Plan prices a single plan for its detail screen. A signed-in user who arrived through a
// referral link sees the referral discount when the plan itself carries none.
func (s *CatalogService) Plan(ctx context.Context, userID, countryCode, packageCode, displayCurrency string) (*domain.PlanDetail, error) {
	countryCode = strings.ToUpper(strings.TrimSpace(countryCode))
	if countryCode == "" || strings.TrimSpace(packageCode) == "" {
		return nil, domain.ErrBadRequest("country code and package code are required")
	}

	plans, err := s.backend.FetchPlansForCountry(ctx, countryCode)
	if err != nil {
		return nil, upstreamError("failed to fetch plans", err)
	}
	l, ok := findListing(plans, packageCode)
	if !ok {
		return nil, domain.ErrNotFound("plan not found")
	}

	planPct := s.state.Resolver().For(l)
	var referral float64
	if planPct <= 0 {
		referral = referralPercent(ctx, s.backend, s.prefs, s.log, userID)
	}
	price, source := pricing.PlanPrice(l.Price, planPct, referral)

	pct := planPct
	if source == domain.SourceReferral {
		pct = referral
	}
	return &domain.PlanDetail{
		PlanView:    s.view(l, pct, price, s.state.Converter(displayCurrency)),
		PriceSource: source,
	}, nil
}

func (s *CatalogService) view(l pricing.Listing, pct float64, price decimal.Decimal, conv currency.Converter) domain.PlanView {
	v := domain.PlanView{
		PackageCode:     l.PackageCode,
		Name:            l.Name,
		Location:        l.Location,
		GB:              l.GB,
		DataSize:        pricing.FormatDataSize(l.GB),
		Validity:        pricing.FormatValidity(l.Duration, l.DurationUnit),
		Duration:        l.Duration,
		DurationUnit:    l.DurationUnit,
		Unlimited:       l.Unlimited,
		Flags:           l.Flags,
		Variant:         l.Flags.Variant().String(),
		DiscountPercent: pct,
		Price:           l.Price,
		DiscountedPrice: price,
		DisplayCurrency: conv.Selected(),
		DisplayPrice:    s.state.money(conv, price),
		Selectable:      l.Selectable(),
	}
	if pct > 0 {
		v.DisplayOriginal = s.state.money(conv, l.Price)
	}
	return v
}

// CurrencyInfo reports the display currency and the rate table.
func (s *CatalogService) CurrencyInfo(selected string) domain.CurrencyInfo {
	rates, loaded := s.state.Rates()
	if rates == nil {
		rates = map[string]float64{}
	}
	return domain.CurrencyInfo{
		Selected:     s.state.Converter(selected).Selected(),
		Rates:        rates,
		ZeroDecimals: s.state.Formatter().ZeroDecimal(),
		RatesLoaded:  loaded,
	}
}
