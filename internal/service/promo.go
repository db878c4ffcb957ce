package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/esimly/backend/internal/domain"
)

// Where the original amounts came from after a promo removal.
const (
	RestoredServer = "server"
	RestoredLocal  = "local"
)

// PromoService applies and removes backend-validated promo codes on an order.
type PromoService struct {
	backend   Backend
	validator *Validator
	log       *logrus.Entry
}

// NewPromoService creates a new PromoService.
func NewPromoService(b Backend, v *Validator, logger *logrus.Logger) *PromoService {
	return &PromoService{backend: b, validator: v, log: logger.WithField("service", "promo")}
}

// Apply validates code against the backend and mirrors the server-confirmed amounts onto the order.
func (s *PromoService) Apply(ctx context.Context, orderID string, req domain.ApplyPromoRequest) (*domain.PromoResponse, error) {
	req.Order.ID = orderID
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}
	if req.Order.Promo != nil {
		return nil, domain.ErrConflict("a promo code is already applied, remove it first")
	}

	res, err := s.backend.ValidatePromoCode(ctx, orderID, req.Code)
	if err != nil {
		return nil, upstreamError("failed to validate promo code", err)
	}
	if !res.Valid {
		msg := res.Message
		if msg == "" {
			msg = "promo code is not valid for this order"
		}
		return nil, domain.ErrValidation(msg)
	}

	order := req.Order
	order.Promo = &domain.AppliedPromo{
		Code:                       req.Code,
		DiscountPercent:            res.DiscountPercent,
		OriginalAmountCents:        res.OriginalAmountCents,
		DiscountedAmountCents:      res.DiscountedAmountCents,
		OriginalDisplayAmountCents: order.DisplayAmountCents,
	}
	order.AmountCents = res.DiscountedAmountCents
	order.DisplayAmountCents = res.DisplayAmountCents
	if res.DisplayCurrency != "" {
		order.DisplayCurrency = res.DisplayCurrency
	}

	return &domain.PromoResponse{Order: order}, nil
}

// Remove restores the order's original amounts. The backend round trip is preferred; when it
// fails the amounts are restored locally. The applied state is cleared either way.
func (s *PromoService) Remove(ctx context.Context, orderID string, req domain.RemovePromoRequest) (*domain.PromoResponse, error) {
	req.Order.ID = orderID
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}
	order := req.Order
	promo := order.Promo
	if promo == nil {
		return nil, domain.ErrBadRequest("no promo code is applied")
	}

	original := domain.OriginalAmounts{
		AmountCents:        promo.OriginalAmountCents,
		DisplayAmountCents: promo.OriginalDisplayAmountCents,
		DisplayCurrency:    order.DisplayCurrency,
	}

	restored := RestoredServer
	if err := s.backend.RemovePromoCode(ctx, orderID, original); err != nil {
		restored = RestoredLocal
		s.log.WithError(err).WithField("order_id", orderID).Warn("promo removal failed, restoring locally")
	}

	order.AmountCents = original.AmountCents
	order.DisplayAmountCents = original.DisplayAmountCents
	order.Promo = nil

	return &domain.PromoResponse{Order: order, Restored: restored}, nil
}
