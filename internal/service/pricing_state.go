package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/esimly/backend/internal/cache"
	"github.com/esimly/backend/internal/currency"
	"github.com/esimly/backend/internal/domain"
	"github.com/esimly/backend/internal/pricing"
)

// PricingState owns the discount and exchange-rate caches the pricing pipeline reads.
// Readers never block on a refresh: a missing table resolves to zero discount and identity rates.
type PricingState struct {
	discounts *cache.Refresher[domain.DiscountTable]
	rates     *cache.Refresher[domain.ExchangeRates]
	rules     pricing.Rules
	formatter *currency.Formatter
}

// NewPricingState wires both caches to the backend.
func NewPricingState(b Backend, discountTTL, ratesTTL time.Duration, rules pricing.Rules, formatter *currency.Formatter, logger *logrus.Logger) *PricingState {
	return NewPricingStateWithCaches(b,
		cache.New[domain.DiscountTable](discountTTL),
		cache.New[domain.ExchangeRates](ratesTTL),
		rules, formatter, logger)
}

// NewPricingStateWithCaches uses caches prepared by the caller, e.g. cache.NewLoaded in tests.
func NewPricingStateWithCaches(
	b Backend,
	discounts *cache.Cache[domain.DiscountTable],
	rates *cache.Cache[domain.ExchangeRates],
	rules pricing.Rules,
	formatter *currency.Formatter,
	logger *logrus.Logger,
) *PricingState {
	return &PricingState{
		discounts: cache.NewRefresher("discounts", discounts, b.FetchDiscounts, logger),
		rates:     cache.NewRefresher("exchange_rates", rates, b.FetchExchangeRates, logger),
		rules:     rules,
		formatter: formatter,
	}
}

// Rules returns the business thresholds.
func (s *PricingState) Rules() pricing.Rules { return s.rules }

// Formatter returns the display formatter.
func (s *PricingState) Formatter() *currency.Formatter { return s.formatter }

// Resolver returns a resolver over the current discount snapshot, scheduling a refresh if it is stale.
func (s *PricingState) Resolver() pricing.Resolver {
	s.discounts.EnsureFresh()
	t, ok := s.discounts.Cache().Get()
	if !ok {
		return pricing.NewResolver(nil)
	}
	return pricing.NewResolver(&t)
}

// Converter returns a converter to selected over the current rate snapshot.
func (s *PricingState) Converter(selected string) currency.Converter {
	s.rates.EnsureFresh()
	r, ok := s.rates.Cache().Get()
	if !ok {
		return currency.NewConverter(selected, nil)
	}
	return currency.NewConverter(selected, r.Rates)
}

// Rates returns the current rate table and whether it has been loaded.
func (s *PricingState) Rates() (map[string]float64, bool) {
	r, ok := s.rates.Cache().Get()
	return r.Rates, ok
}

// Loaded reports which caches hold data, for health checks.
func (s *PricingState) Loaded() (discounts, rates bool) {
	_, discounts = s.discounts.Cache().Get()
	_, rates = s.rates.Cache().Get()
	return discounts, rates
}

// FetchedAt reports when each cache was last filled; zero when it never was.
func (s *PricingState) FetchedAt() (discounts, rates time.Time) {
	return s.discounts.Cache().FetchedAt(), s.rates.Cache().FetchedAt()
}

// OnDiscountsUpdated registers fn to run after each new discount table.
func (s *PricingState) OnDiscountsUpdated(fn func()) {
	s.discounts.OnCommit(func(domain.DiscountTable) { fn() })
}

// OnRatesUpdated registers fn to run after each new rate table.
func (s *PricingState) OnRatesUpdated(fn func()) {
	s.rates.OnCommit(func(domain.ExchangeRates) { fn() })
}

// WarmUp loads both caches once.
func (s *PricingState) WarmUp(ctx context.Context) error {
	return cache.WarmUp(ctx, s.discounts, s.rates)
}

// Start refreshes both caches on their ttl until ctx is cancelled.
func (s *PricingState) Start(ctx context.Context) {
	s.discounts.Start(ctx)
	s.rates.Start(ctx)
}

// money formats a USD amount in the display currency.
func (s *PricingState) money(conv currency.Converter, usd decimal.Decimal) string {
	return s.formatter.Format(conv.Convert(usd), conv.Selected())
}
