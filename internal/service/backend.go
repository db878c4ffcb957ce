package service

import (
	"context"
	"errors"

	"github.com/esimly/backend/internal/domain"
	"github.com/esimly/backend/pkg/backend"
)

// Backend is the storefront backend as seen by the services.
type Backend interface {
	FetchDiscounts(ctx context.Context) (domain.DiscountTable, error)
	FetchExchangeRates(ctx context.Context) (domain.ExchangeRates, error)
	FetchPlansForCountry(ctx context.Context, code string) ([]domain.Plan, error)
	FetchOrder(ctx context.Context, orderID string) (domain.Order, error)
	FetchWalletBalance(ctx context.Context, userID string) (domain.WalletBalance, error)
	ValidatePromoCode(ctx context.Context, orderID, code string) (domain.PromoResult, error)
	RemovePromoCode(ctx context.Context, orderID string, original domain.OriginalAmounts) error
	CheckReferralEligibility(ctx context.Context, userID, referralCode string) (domain.ReferralEligibility, error)
}

// upstreamError maps a backend failure to an AppError.
// A 404 becomes not found, other 4xx answers carry the backend's own message.
func upstreamError(msg string, err error) error {
	var se *backend.StatusError
	if errors.As(err, &se) {
		switch {
		case se.Status == 404:
			return domain.ErrNotFound(se.Message)
		case se.Status >= 400 && se.Status < 500:
			return domain.ErrValidation(se.Message)
		}
	}
	return domain.ErrUpstream(msg, err)
}
