package domain

import "github.com/shopspring/decimal"

// Order mirrors the backend order; this service never mutates it except through backend calls.
type Order struct {
	ID                 string        `json:"id" validate:"required,max=128"`
	AmountCents        int64         `json:"amountCents" validate:"gte=0"`
	DisplayAmountCents int64         `json:"displayAmountCents" validate:"gte=0"`
	DisplayCurrency    string        `json:"displayCurrency" validate:"omitempty,len=3,alpha"`
	Status             string        `json:"status"`
	Promo              *AppliedPromo `json:"promo,omitempty"`
}

// AppliedPromo records the server-confirmed amounts of an applied promo code.
type AppliedPromo struct {
	Code                       string  `json:"code"`
	DiscountPercent            float64 `json:"discountPercent"`
	OriginalAmountCents        int64   `json:"originalAmountCents"`
	DiscountedAmountCents      int64   `json:"discountedAmountCents"`
	OriginalDisplayAmountCents int64   `json:"originalDisplayAmountCents"`
}

// PromoResult is the backend verdict on a promo code.
type PromoResult struct {
	Valid                 bool    `json:"valid"`
	Message               string  `json:"message,omitempty"`
	DiscountPercent       float64 `json:"discountPercent"`
	OriginalAmountCents   int64   `json:"originalAmount"`
	DiscountedAmountCents int64   `json:"discountedAmount"`
	DisplayAmountCents    int64   `json:"displayAmount"`
	DisplayCurrency       string  `json:"displayCurrency"`
}

// OriginalAmounts are sent back to the backend when a promo code is removed.
type OriginalAmounts struct {
	AmountCents        int64  `json:"amountCents"`
	DisplayAmountCents int64  `json:"displayAmountCents"`
	DisplayCurrency    string `json:"displayCurrency"`
}

// WalletBalance is a user's Spare Change balance as held by the backend, in USD.
type WalletBalance struct {
	Balance decimal.Decimal `json:"balance"`
}

// ReferralEligibility is the backend verdict on a first-purchase referral discount.
type ReferralEligibility struct {
	Eligible        bool    `json:"eligible"`
	DiscountPercent float64 `json:"discountPercent"`
	Reason          string  `json:"reason,omitempty"`
}

// DiscountSource names where the single applied discount came from.
type DiscountSource string

const (
	SourceNone     DiscountSource = "none"
	SourcePlan     DiscountSource = "plan"
	SourcePromo    DiscountSource = "promo"
	SourceReferral DiscountSource = "referral"
)

// DiscountLine is the applied discount in a quote breakdown.
type DiscountLine struct {
	Source  DiscountSource  `json:"source"`
	Code    string          `json:"code,omitempty"`
	Percent float64         `json:"percent"`
	Amount  decimal.Decimal `json:"amount"`
}

// Breakdown is the checkout summary in USD plus its display rendering.
type Breakdown struct {
	Subtotal        decimal.Decimal `json:"subtotal"`
	Discount        DiscountLine    `json:"discount"`
	Suppressed      []DiscountLine  `json:"suppressed,omitempty"`
	SpareChange     decimal.Decimal `json:"spareChange"`
	Total           decimal.Decimal `json:"total"`
	DisplayCurrency string          `json:"displayCurrency"`
	DisplaySubtotal string          `json:"displaySubtotal"`
	DisplayTotal    string          `json:"displayTotal"`
}
