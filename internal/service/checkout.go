package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/esimly/backend/internal/domain"
	"github.com/esimly/backend/internal/pricing"
	"github.com/esimly/backend/pkg/payment"
)

// CheckoutService computes the canonical quote and hands off to the hosted payment page.
type CheckoutService struct {
	backend   Backend
	state     *PricingState
	prefs     *PreferenceService
	gateway   payment.PaymentGateway
	validator *Validator
	log       *logrus.Entry
}

// NewCheckoutService creates a new CheckoutService.
func NewCheckoutService(
	b Backend,
	state *PricingState,
	prefs *PreferenceService,
	gateway payment.PaymentGateway,
	v *Validator,
	logger *logrus.Logger,
) *CheckoutService {
	return &CheckoutService{
		backend:   b,
		state:     state,
		prefs:     prefs,
		gateway:   gateway,
		validator: v,
		log:       logger.WithField("service", "checkout"),
	}
}

// Quote prices one plan for userID: plan/global discount, else promo, else referral, then Spare Change.
func (s *CheckoutService) Quote(ctx context.Context, userID string, req domain.QuoteRequest) (*domain.QuoteResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}
	spare := decimal.Zero
	if strings.TrimSpace(req.SpareChange) != "" {
		amount, err := pricing.ParseAmount(req.SpareChange)
		if err != nil {
			return nil, domain.ErrValidation("spareChange: " + err.Error())
		}
		spare = amount
	}

	plans, err := s.backend.FetchPlansForCountry(ctx, strings.ToUpper(req.CountryCode))
	if err != nil {
		return nil, upstreamError("failed to fetch plans", err)
	}
	listing, ok := findListing(plans, req.PackageCode)
	if !ok {
		return nil, domain.ErrNotFound("plan not found")
	}

	subtotal, days := listing.Price, listing.Duration
	if listing.Unlimited {
		subtotal, days = pricing.UnlimitedBasePrice(listing.Price, req.Days, s.state.Rules())
	}

	in := pricing.QuoteInput{
		Subtotal:    subtotal,
		PlanPercent: s.state.Resolver().For(listing),
	}
	if spare.IsPositive() {
		balance, err := s.spareBalance(ctx, userID)
		if err != nil {
			return nil, err
		}
		in.SpareChange = decimal.Min(spare, balance)
	}
	if req.Order != nil {
		promo, err := s.confirmedPromo(ctx, req.Order)
		if err != nil {
			return nil, err
		}
		in.Promo = promo
	}
	if in.PlanPercent <= 0 && in.Promo == nil {
		in.ReferralPercent = referralPercent(ctx, s.backend, s.prefs, s.log, userID)
	}

	b, err := pricing.Quote(in)
	if err != nil {
		if errors.Is(err, pricing.ErrInvalidAmount) {
			return nil, domain.ErrValidation(err.Error())
		}
		return nil, domain.ErrInternal("failed to price order", err)
	}

	conv := s.state.Converter(s.prefs.ResolveCurrency(ctx, userID, req.Currency))
	b.DisplayCurrency = conv.Selected()
	b.DisplaySubtotal = s.state.money(conv, b.Subtotal)
	b.DisplayTotal = s.state.money(conv, b.Total)

	return &domain.QuoteResponse{
		PackageCode:     listing.PackageCode,
		Unlimited:       listing.Unlimited,
		Days:            days,
		ReferralApplied: b.Discount.Source == domain.SourceReferral,
		Breakdown:       b,
	}, nil
}

// Checkout re-quotes the order and returns the hosted payment page for its total.
func (s *CheckoutService) Checkout(ctx context.Context, userID, orderID string, req domain.CheckoutRequest) (*domain.CheckoutResponse, error) {
	switch {
	case req.Quote.Order == nil:
		req.Quote.Order = &domain.Order{ID: orderID}
	case req.Quote.Order.ID == "":
		req.Quote.Order.ID = orderID
	case req.Quote.Order.ID != orderID:
		return nil, domain.ErrBadRequest("order id does not match")
	}

	quote, err := s.Quote(ctx, userID, req.Quote)
	if err != nil {
		return nil, err
	}

	key := uuid.NewString()
	link, err := s.gateway.CreatePaymentLink(ctx, payment.LinkRequest{
		UserID:         userID,
		OrderID:        orderID,
		Amount:         quote.Breakdown.Total,
		Currency:       "USD",
		IdempotencyKey: key,
	})
	if err != nil {
		return nil, domain.ErrUpstream("failed to create payment link", err)
	}

	s.log.WithFields(logrus.Fields{
		"order_id": orderID,
		"user_id":  userID,
		"total":    quote.Breakdown.Total.StringFixed(2),
		"discount": quote.Breakdown.Discount.Source,
	}).Info("checkout created")

	return &domain.CheckoutResponse{
		OrderID:        orderID,
		PaymentURL:     link,
		IdempotencyKey: key,
		Breakdown:      quote.Breakdown,
	}, nil
}

// spareBalance is the Spare Change the backend holds for userID. Anonymous callers have none.
func (s *CheckoutService) spareBalance(ctx context.Context, userID string) (decimal.Decimal, error) {
	if userID == "" {
		return decimal.Zero, nil
	}
	w, err := s.backend.FetchWalletBalance(ctx, userID)
	if err != nil {
		return decimal.Zero, upstreamError("failed to fetch wallet balance", err)
	}
	if w.Balance.IsNegative() {
		return decimal.Zero, nil
	}
	return w.Balance, nil
}

// confirmedPromo returns the promo the backend has recorded on the order. The amounts in the
// client's snapshot are ignored.
func (s *CheckoutService) confirmedPromo(ctx context.Context, snapshot *domain.Order) (*domain.AppliedPromo, error) {
	order, err := s.backend.FetchOrder(ctx, snapshot.ID)
	if err != nil {
		return nil, upstreamError("failed to fetch order", err)
	}
	if snapshot.Promo != nil && (order.Promo == nil || order.Promo.Code != snapshot.Promo.Code) {
		s.log.WithField("order_id", snapshot.ID).Warn("order promo differs from the backend, using the backend's")
	}
	return order.Promo, nil
}

func findListing(plans []domain.Plan, packageCode string) (pricing.Listing, bool) {
	for _, p := range plans {
		if p.PackageCode == packageCode {
			return pricing.Ingest(p), true
		}
	}
	return pricing.Listing{}, false
}
