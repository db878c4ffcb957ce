package service

import (
	"context"
	"errors"

	"github.com/esimly/backend/internal/currency"
	"github.com/esimly/backend/internal/domain"
	"github.com/esimly/backend/internal/pricing"
)

// WalletService validates Spare Change payout requests before they reach the backend.
type WalletService struct {
	backend   Backend
	state     *PricingState
	prefs     *PreferenceService
	validator *Validator
}

// NewWalletService creates a new WalletService.
func NewWalletService(b Backend, state *PricingState, prefs *PreferenceService, v *Validator) *WalletService {
	return &WalletService{backend: b, state: state, prefs: prefs, validator: v}
}

// ValidatePayout parses the entered amount, converts it to USD and checks it against the
// minimum payout and the USD balance held by the backend.
func (s *WalletService) ValidatePayout(ctx context.Context, userID string, req domain.PayoutRequest) (*domain.PayoutValidation, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}
	amount, err := pricing.ParseAmount(req.Amount)
	if err != nil {
		return nil, domain.ErrValidation("amount: " + err.Error())
	}
	code := s.prefs.ResolveCurrency(ctx, userID, req.Currency)
	conv := s.state.Converter(code)
	if !conv.Known(code) {
		return nil, domain.ErrValidation("exchange rate for " + code + " is not available yet, try again shortly")
	}

	wallet, err := s.backend.FetchWalletBalance(ctx, userID)
	if err != nil {
		return nil, upstreamError("failed to fetch wallet balance", err)
	}

	usd := s.state.Converter(currency.USD).ConvertFromCurrency(amount, code)
	if err := pricing.ValidatePayout(usd, wallet.Balance, s.state.Rules()); err != nil {
		if errors.Is(err, pricing.ErrBelowMinimum) || errors.Is(err, pricing.ErrAboveBalance) {
			return nil, domain.ErrValidation(err.Error())
		}
		return nil, domain.ErrInternal("failed to validate payout", err)
	}

	return &domain.PayoutValidation{
		Amount:    amount.StringFixed(int32(s.state.Formatter().FractionDigits(code))),
		Currency:  code,
		AmountUSD: usd.StringFixed(2),
		Display:   s.state.Formatter().Format(amount, code),
	}, nil
}
