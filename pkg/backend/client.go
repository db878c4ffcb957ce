// Package backend is the HTTP client for the storefront backend that owns plans, discounts,
// exchange rates, orders, promo codes and referrals.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"

	"github.com/esimly/backend/internal/domain"
)

// StatusError is a non-2xx answer from the backend.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
}

// IsClientError reports whether err is a 4xx answer, i.e. the backend rejected the request itself.
func IsClientError(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Status >= 400 && se.Status < 500
}

type tokenKey struct{}

// WithToken attaches the caller's bearer token so it is forwarded upstream.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// Client talks JSON to the storefront backend.
type Client struct {
	baseURL    string
	http       *http.Client
	log        *logrus.Entry
	newBackOff func() backoff.BackOff
}

// New creates a client. GET requests are retried with exponential backoff on 5xx and transport errors.
func New(baseURL string, timeout time.Duration, logger *logrus.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     logger.WithField("component", "backend"),
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 200 * time.Millisecond
			b.MaxElapsedTime = 5 * time.Second
			return backoff.WithMaxRetries(b, 3)
		},
	}
}

// FetchDiscounts returns the individual and global discount maps.
func (c *Client) FetchDiscounts(ctx context.Context) (domain.DiscountTable, error) {
	var t domain.DiscountTable
	err := c.get(ctx, "/discounts", &t)
	return t, err
}

// FetchExchangeRates returns multipliers relative to USD.
func (c *Client) FetchExchangeRates(ctx context.Context) (domain.ExchangeRates, error) {
	var r domain.ExchangeRates
	err := c.get(ctx, "/exchange-rates", &r)
	return r, err
}

// FetchPlansForCountry returns the raw plans for a country, GL- bundle or region code.
func (c *Client) FetchPlansForCountry(ctx context.Context, code string) ([]domain.Plan, error) {
	var body struct {
		Plans []domain.Plan `json:"plans"`
	}
	if err := c.get(ctx, "/countries/"+url.PathEscape(code)+"/plans", &body); err != nil {
		return nil, err
	}
	return body.Plans, nil
}

// FetchOrder returns the backend's copy of an order, including the promo it has confirmed.
func (c *Client) FetchOrder(ctx context.Context, orderID string) (domain.Order, error) {
	var o domain.Order
	err := c.get(ctx, "/orders/"+url.PathEscape(orderID), &o)
	return o, err
}

// FetchWalletBalance returns the user's Spare Change balance in USD.
func (c *Client) FetchWalletBalance(ctx context.Context, userID string) (domain.WalletBalance, error) {
	q := url.Values{}
	q.Set("userId", userID)

	var w domain.WalletBalance
	err := c.get(ctx, "/wallet/balance?"+q.Encode(), &w)
	return w, err
}

// ValidatePromoCode asks the backend to apply a promo code to an order.
func (c *Client) ValidatePromoCode(ctx context.Context, orderID, code string) (domain.PromoResult, error) {
	var res domain.PromoResult
	err := c.send(ctx, http.MethodPost, "/orders/"+url.PathEscape(orderID)+"/promo", map[string]string{"code": code}, &res)
	return res, err
}

// RemovePromoCode asks the backend to restore an order's original amounts.
func (c *Client) RemovePromoCode(ctx context.Context, orderID string, original domain.OriginalAmounts) error {
	return c.send(ctx, http.MethodDelete, "/orders/"+url.PathEscape(orderID)+"/promo", original, nil)
}

// CheckReferralEligibility asks whether userID may use referralCode on a first purchase.
func (c *Client) CheckReferralEligibility(ctx context.Context, userID, referralCode string) (domain.ReferralEligibility, error) {
	q := url.Values{}
	q.Set("userId", userID)
	q.Set("code", referralCode)

	var res domain.ReferralEligibility
	err := c.get(ctx, "/referrals/eligibility?"+q.Encode(), &res)
	return res, err
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	attempt := 0
	op := func() error {
		attempt++
		err := c.do(ctx, http.MethodGet, path, nil, out)
		if err == nil {
			return nil
		}
		if IsClientError(err) || ctx.Err() != nil {
			return backoff.Permanent(err)
		}
		c.log.WithError(err).WithFields(logrus.Fields{"path": path, "attempt": attempt}).Warn("backend GET failed")
		return err
	}
	return backoff.Retry(op, backoff.WithContext(c.newBackOff(), ctx))
}

func (c *Client) send(ctx context.Context, method, path string, body, out interface{}) error {
	return c.do(ctx, method, path, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token, ok := ctx.Value(tokenKey{}).(string); ok && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Status: resp.StatusCode, Message: errorMessage(raw, resp.Status)}
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func errorMessage(raw []byte, fallback string) string {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &body) == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	return fallback
}
