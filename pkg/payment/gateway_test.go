package payment

import (
	"context"
	"net/url"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHostedPageGateway(t *testing.T) {
	g, err := NewHostedPageGateway("https://pay.example.com/checkout?merchant=esim")
	require.NoError(t, err)

	link, err := g.CreatePaymentLink(context.Background(), LinkRequest{
		UserID:         "u1",
		OrderID:        "o-42",
		Amount:         decimal.RequireFromString("9"),
		Currency:       "USD",
		IdempotencyKey: "k1",
	})
	require.NoError(t, err)

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "pay.example.com", u.Host)
	q := u.Query()
	assert.Equal(t, "esim", q.Get("merchant"))
	assert.Equal(t, "o-42", q.Get("order_id"))
	assert.Equal(t, "9.00", q.Get("amount"))
	assert.Equal(t, "k1", q.Get("idempotency_key"))
}

func TestHostedPageGatewayRejects(t *testing.T) {
	_, err := NewHostedPageGateway("/relative")
	assert.Error(t, err)

	g, err := NewHostedPageGateway("https://pay.example.com")
	require.NoError(t, err)
	_, err = g.CreatePaymentLink(context.Background(), LinkRequest{Amount: decimal.NewFromInt(1)})
	assert.Error(t, err)
}
