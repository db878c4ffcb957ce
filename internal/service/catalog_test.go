package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esimly/backend/internal/domain"
	"github.com/esimly/backend/pkg/backend"
)

func TestCatalogPlans(t *testing.T) {
	b := &fakeBackend{plans: map[string][]domain.Plan{"TH": {
		thPlan("STD", "TH_5GB_30D", 5120, 30, "10.00"),
		thPlan("STD-HK", "TH_5GB_30D_nonhkip", 5120, 30, "10.00"),
		thPlan("SMALL", "TH_1GB_30D", 1024, 30, "4.00"),
		thPlan("BIG", "TH_10GB_30D", 10240, 30, "18.00"),
	}}}
	state := newState(b, domain.DiscountTable{Global: map[string]float64{"5": 20}}, map[string]float64{"EUR": 0.5})
	svc := NewCatalogService(b, state, newPrefs(), quietLogger())

	res, err := svc.Plans(context.Background(), "th", "price", "EUR")
	require.NoError(t, err)
	assert.Equal(t, "TH", res.CountryCode)
	assert.Equal(t, "EUR", res.Currency)
	require.Len(t, res.Plans, 2)

	first := res.Plans[0]
	assert.Equal(t, "STD-HK", first.PackageCode)
	assert.Equal(t, 20.0, first.DiscountPercent)
	assert.Equal(t, "8.00", first.DiscountedPrice.StringFixed(2))
	assert.Equal(t, "5 GB", first.DataSize)
	assert.Equal(t, "30 Days", first.Validity)
	assert.Contains(t, first.DisplayPrice, "4.00")
	assert.Contains(t, first.DisplayOriginal, "5.00")
	assert.True(t, first.Selectable)
	assert.Equal(t, "nonhkip", first.Variant)

	assert.Equal(t, "BIG", res.Plans[1].PackageCode)
	assert.Empty(t, res.Plans[1].DisplayOriginal)
}

func TestCatalogPlansErrors(t *testing.T) {
	b := &fakeBackend{}
	svc := NewCatalogService(b, newState(b, domain.DiscountTable{}, nil), newPrefs(), quietLogger())

	_, err := svc.Plans(context.Background(), "TH", "popularity", "")
	appErr, ok := domain.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.Code)

	_, err = svc.Plans(context.Background(), " ", "", "")
	require.Error(t, err)

	b.plansErr = &backend.StatusError{Status: 404, Message: "unknown country"}
	_, err = svc.Plans(context.Background(), "ZZ", "", "")
	appErr, ok = domain.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.Code)

	b.plansErr = errors.New("connection refused")
	_, err = svc.Plans(context.Background(), "TH", "", "")
	appErr, ok = domain.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 502, appErr.Code)
}

func TestCurrencyInfo(t *testing.T) {
	b := &fakeBackend{}
	svc := NewCatalogService(b, newState(b, domain.DiscountTable{}, map[string]float64{"JPY": 150}), newPrefs(), quietLogger())

	info := svc.CurrencyInfo("jpy")
	assert.Equal(t, "JPY", info.Selected)
	assert.True(t, info.RatesLoaded)
	assert.Equal(t, 150.0, info.Rates["JPY"])
	assert.Contains(t, info.ZeroDecimals, "JPY")
}

func TestCatalogPlanDetail(t *testing.T) {
	b := &fakeBackend{
		plans: map[string][]domain.Plan{"TH": {
			thPlan("STD", "TH_5GB_30D", 5120, 30, "10.00"),
			thPlan("PROMO", "TH_3GB_30D", 3072, 30, "6.00"),
		}},
		eligibility: domain.ReferralEligibility{Eligible: true, DiscountPercent: 15},
	}
	prefs := newPrefs()
	require.NoError(t, prefs.SetReferralCode(context.Background(), "u1", domain.ReferralCapture{Code: "FRIEND15"}))
	state := newState(b, domain.DiscountTable{Individual: map[string]float64{"STD": 10}}, nil)
	svc := NewCatalogService(b, state, prefs, quietLogger())

	cases := []struct {
		name    string
		user    string
		code    string
		source  domain.DiscountSource
		percent float64
		price   string
	}{
		{"plan discount wins", "u1", "STD", domain.SourcePlan, 10, "9.00"},
		{"referral when plan has none", "u1", "PROMO", domain.SourceReferral, 15, "5.10"},
		{"anonymous pays list price", "", "PROMO", domain.SourceNone, 0, "6.00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := svc.Plan(context.Background(), tc.user, "th", tc.code, "")
			require.NoError(t, err)
			assert.Equal(t, tc.source, res.PriceSource)
			assert.Equal(t, tc.percent, res.DiscountPercent)
			assert.Equal(t, tc.price, res.DiscountedPrice.StringFixed(2))
		})
	}
	assert.Equal(t, 1, b.eligCalls)

	_, err := svc.Plan(context.Background(), "u1", "TH", "NOPE", "")
	appErr, ok := domain.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.Code)
}
