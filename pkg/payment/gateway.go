package payment

import (
	"context"
	"fmt"
	"net/url"

	"github.com/shopspring/decimal"
)

// PaymentGateway defines the interface for payment providers.
type PaymentGateway interface {
	// CreatePaymentLink returns the hosted payment page for an order total.
	CreatePaymentLink(ctx context.Context, req LinkRequest) (string, error)
}

// LinkRequest describes the amount the customer is about to pay.
type LinkRequest struct {
	UserID         string
	OrderID        string
	Amount         decimal.Decimal
	Currency       string
	IdempotencyKey string
}

// HostedPageGateway redirects to a hosted checkout page; capture happens on the provider side.
type HostedPageGateway struct {
	base *url.URL
}

// NewHostedPageGateway parses the checkout base URL.
func NewHostedPageGateway(baseURL string) (*HostedPageGateway, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid checkout base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid checkout base URL %q: scheme and host are required", baseURL)
	}
	return &HostedPageGateway{base: u}, nil
}

func (g *HostedPageGateway) CreatePaymentLink(_ context.Context, req LinkRequest) (string, error) {
	if req.OrderID == "" {
		return "", fmt.Errorf("order id is required")
	}
	if req.Amount.IsNegative() {
		return "", fmt.Errorf("amount must not be negative")
	}

	u := *g.base
	q := u.Query()
	q.Set("order_id", req.OrderID)
	q.Set("amount", req.Amount.StringFixed(2))
	q.Set("currency", req.Currency)
	q.Set("idempotency_key", req.IdempotencyKey)
	if req.UserID != "" {
		q.Set("customer", req.UserID)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// MockGateway is a dummy implementation for testing.
type MockGateway struct {
	Requests []LinkRequest
}

func NewMockGateway() *MockGateway {
	return &MockGateway{}
}

func (g *MockGateway) CreatePaymentLink(_ context.Context, req LinkRequest) (string, error) {
	g.Requests = append(g.Requests, req)
	return "https://example.com/pay?order_id=" + url.QueryEscape(req.OrderID), nil
}
