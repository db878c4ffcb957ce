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

func baseOrder() domain.Order {
	return domain.Order{AmountCents: 1000, DisplayAmountCents: 150000, DisplayCurrency: "JPY", Status: "pending"}
}

func TestApplyPromo(t *testing.T) {
	b := &fakeBackend{promo: domain.PromoResult{
		Valid: true, DiscountPercent: 20, OriginalAmountCents: 1000, DiscountedAmountCents: 800,
		DisplayAmountCents: 120000, DisplayCurrency: "JPY",
	}}
	svc := NewPromoService(b, NewValidator(), quietLogger())

	res, err := svc.Apply(context.Background(), "o1", domain.ApplyPromoRequest{Code: "SAVE20", Order: baseOrder()})
	require.NoError(t, err)
	assert.Equal(t, "o1", res.Order.ID)
	assert.Equal(t, int64(800), res.Order.AmountCents)
	assert.Equal(t, int64(120000), res.Order.DisplayAmountCents)
	require.NotNil(t, res.Order.Promo)
	assert.Equal(t, int64(150000), res.Order.Promo.OriginalDisplayAmountCents)
	assert.Equal(t, int64(1000), res.Order.Promo.OriginalAmountCents)
}

func TestApplyPromoRejected(t *testing.T) {
	b := &fakeBackend{promo: domain.PromoResult{Valid: false, Message: "code expired"}}
	svc := NewPromoService(b, NewValidator(), quietLogger())

	_, err := svc.Apply(context.Background(), "o1", domain.ApplyPromoRequest{Code: "OLD", Order: baseOrder()})
	appErr, ok := domain.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 422, appErr.Code)
	assert.Equal(t, "code expired", appErr.Message)

	b.promoErr = &backend.StatusError{Status: 400, Message: "unknown code"}
	_, err = svc.Apply(context.Background(), "o1", domain.ApplyPromoRequest{Code: "NOPE", Order: baseOrder()})
	appErr, ok = domain.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "unknown code", appErr.Message)

	_, err = svc.Apply(context.Background(), "o1", domain.ApplyPromoRequest{Code: "x", Order: baseOrder()})
	appErr, ok = domain.AsAppError(err)
	require.True(t, ok)
	assert.Contains(t, appErr.Message, "code")
}

func TestApplyPromoTwice(t *testing.T) {
	svc := NewPromoService(&fakeBackend{}, NewValidator(), quietLogger())
	order := baseOrder()
	order.Promo = &domain.AppliedPromo{Code: "A"}

	_, err := svc.Apply(context.Background(), "o1", domain.ApplyPromoRequest{Code: "SAVE20", Order: order})
	assert.ErrorIs(t, err, &domain.AppError{Code: 409})
}

func appliedOrder() domain.Order {
	o := baseOrder()
	o.AmountCents = 800
	o.DisplayAmountCents = 120000
	o.Promo = &domain.AppliedPromo{Code: "SAVE20", OriginalAmountCents: 1000, DiscountedAmountCents: 800, OriginalDisplayAmountCents: 150000}
	return o
}

func TestRemovePromoServer(t *testing.T) {
	b := &fakeBackend{}
	svc := NewPromoService(b, NewValidator(), quietLogger())

	res, err := svc.Remove(context.Background(), "o1", domain.RemovePromoRequest{Order: appliedOrder()})
	require.NoError(t, err)
	assert.Equal(t, RestoredServer, res.Restored)
	assert.Nil(t, res.Order.Promo)
	assert.Equal(t, int64(1000), res.Order.AmountCents)
	assert.Equal(t, int64(150000), res.Order.DisplayAmountCents)
	require.Len(t, b.removed, 1)
	assert.Equal(t, "JPY", b.removed[0].DisplayCurrency)
}

func TestRemovePromoFallsBackToLocal(t *testing.T) {
	b := &fakeBackend{removeErr: errors.New("timeout")}
	svc := NewPromoService(b, NewValidator(), quietLogger())

	res, err := svc.Remove(context.Background(), "o1", domain.RemovePromoRequest{Order: appliedOrder()})
	require.NoError(t, err)
	assert.Equal(t, RestoredLocal, res.Restored)
	assert.Nil(t, res.Order.Promo)
	assert.Equal(t, int64(1000), res.Order.AmountCents)
}

func TestRemovePromoWithoutPromo(t *testing.T) {
	svc := NewPromoService(&fakeBackend{}, NewValidator(), quietLogger())
	_, err := svc.Remove(context.Background(), "o1", domain.RemovePromoRequest{Order: baseOrder()})
	assert.Error(t, err)
}
