package service

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/esimly/backend/internal/cache"
	"github.com/esimly/backend/internal/currency"
	"github.com/esimly/backend/internal/domain"
	"github.com/esimly/backend/internal/pricing"
	"github.com/esimly/backend/internal/repository"
)

type fakeBackend struct {
	mu          sync.Mutex
	plans       map[string][]domain.Plan
	plansErr    error
	promo       domain.PromoResult
	promoErr    error
	removeErr   error
	removed     []domain.OriginalAmounts
	eligibility domain.ReferralEligibility
	eligCalls   int
	orders      map[string]domain.Order
	balance     decimal.Decimal
	balanceErr  error
}

func (f *fakeBackend) FetchDiscounts(context.Context) (domain.DiscountTable, error) {
	return domain.DiscountTable{}, nil
}

func (f *fakeBackend) FetchExchangeRates(context.Context) (domain.ExchangeRates, error) {
	return domain.ExchangeRates{}, nil
}

func (f *fakeBackend) FetchPlansForCountry(_ context.Context, code string) ([]domain.Plan, error) {
	if f.plansErr != nil {
		return nil, f.plansErr
	}
	return f.plans[code], nil
}

// FetchOrder returns the stored order, or a bare order with no promo.
func (f *fakeBackend) FetchOrder(_ context.Context, orderID string) (domain.Order, error) {
	if o, ok := f.orders[orderID]; ok {
		return o, nil
	}
	return domain.Order{ID: orderID}, nil
}

func (f *fakeBackend) FetchWalletBalance(context.Context, string) (domain.WalletBalance, error) {
	return domain.WalletBalance{Balance: f.balance}, f.balanceErr
}

func (f *fakeBackend) ValidatePromoCode(context.Context, string, string) (domain.PromoResult, error) {
	return f.promo, f.promoErr
}

func (f *fakeBackend) RemovePromoCode(_ context.Context, _ string, original domain.OriginalAmounts) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed = append(f.removed, original)
	return f.removeErr
}

func (f *fakeBackend) CheckReferralEligibility(context.Context, string, string) (domain.ReferralEligibility, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.eligCalls++
	return f.eligibility, nil
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// newState returns a PricingState over loaded caches so no refresh is ever triggered.
func newState(b Backend, discounts domain.DiscountTable, rates map[string]float64) *PricingState {
	return NewPricingStateWithCaches(b,
		cache.NewLoaded(discounts, time.Hour),
		cache.NewLoaded(domain.ExchangeRates{Rates: rates}, time.Hour),
		pricing.DefaultRules(),
		currency.NewFormatter(currency.DefaultZeroDecimal),
		quietLogger())
}

func newPrefs() *PreferenceService {
	return NewPreferenceService(repository.NewMemoryPreferences(), NewValidator(), quietLogger())
}

func thPlan(code, name string, mb int64, days int, price string) domain.Plan {
	return domain.Plan{
		PackageCode:  code,
		Name:         name,
		Volume:       mb,
		Duration:     days,
		DurationUnit: domain.UnitDay,
		Location:     "TH",
		Price:        decimal.RequireFromString(price),
	}
}
