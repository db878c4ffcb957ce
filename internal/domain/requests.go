package domain

// QuoteRequest is the input for POST /api/checkout/quote.
type QuoteRequest struct {
	CountryCode string `json:"countryCode" validate:"required,min=2,max=32"`
	PackageCode string `json:"packageCode" validate:"required,max=128"`
	// Days selected for an unlimited plan; clamped to [1, 365].
	Days     int    `json:"days" validate:"gte=0"`
	Currency string `json:"currency" validate:"omitempty,len=3,alpha"`
	// SpareChange is the amount of wallet balance to redeem, in USD, as entered by the user.
	// The redeemed amount never exceeds the balance the backend reports.
	SpareChange string `json:"spareChange" validate:"max=32"`
	Order       *Order `json:"order,omitempty"`
}

// QuoteResponse pairs the plan-level price with the canonical breakdown.
type QuoteResponse struct {
	PackageCode     string    `json:"packageCode"`
	Unlimited       bool      `json:"unlimited"`
	Days            int       `json:"days"`
	ReferralApplied bool      `json:"referralApplied"`
	Breakdown       Breakdown `json:"breakdown"`
}

// ApplyPromoRequest is the input for POST /api/orders/{orderId}/promo.
type ApplyPromoRequest struct {
	Code  string `json:"code" validate:"required,min=2,max=64"`
	Order Order  `json:"order"`
}

// RemovePromoRequest is the input for DELETE /api/orders/{orderId}/promo.
type RemovePromoRequest struct {
	Order Order `json:"order"`
}

// PromoResponse returns the order as mirrored after a promo change.
type PromoResponse struct {
	Order    Order  `json:"order"`
	Restored string `json:"restored,omitempty"` // "server" or "local" after a removal
}

// CheckoutRequest is the input for POST /api/orders/{orderId}/checkout.
type CheckoutRequest struct {
	Quote QuoteRequest `json:"quote"`
}

// CheckoutResponse returns the hosted payment page to redirect to.
type CheckoutResponse struct {
	OrderID        string    `json:"orderId"`
	PaymentURL     string    `json:"paymentUrl"`
	IdempotencyKey string    `json:"idempotencyKey"`
	Breakdown      Breakdown `json:"breakdown"`
}

// CurrencyPreference is the body of GET/PUT /api/me/currency.
type CurrencyPreference struct {
	Currency string `json:"currency" validate:"required,len=3,alpha"`
}

// ReferralCapture is the body of PUT /api/me/referral.
type ReferralCapture struct {
	Code string `json:"code" validate:"required,min=3,max=64,alphanum"`
}

// PayoutRequest is the body of POST /api/me/wallet/payouts/validate.
type PayoutRequest struct {
	Amount   string `json:"amount" validate:"required,max=32"`
	Currency string `json:"currency" validate:"omitempty,len=3,alpha"`
}

// PayoutValidation is the accepted payout in entered and USD terms.
type PayoutValidation struct {
	Amount    string `json:"amount"`
	Currency  string `json:"currency"`
	AmountUSD string `json:"amountUsd"`
	Display   string `json:"display"`
}

// CurrencyInfo is the body of GET /api/currency.
type CurrencyInfo struct {
	Selected     string             `json:"selected"`
	Rates        map[string]float64 `json:"rates"`
	ZeroDecimals []string           `json:"zeroDecimals"`
	RatesLoaded  bool               `json:"ratesLoaded"`
}

// JWTClaims holds the claims extracted from an identity provider token.
type JWTClaims struct {
	Sub   string `json:"sub"`
	Email string `json:"email"`
	Role  string `json:"role"`
}
