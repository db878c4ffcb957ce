package pricing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/esimly/backend/internal/domain"
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrBelowMinimum  = errors.New("amount below minimum")
	ErrAboveBalance  = errors.New("amount exceeds balance")
	ErrNegativePrice = errors.New("negative base price")
)

var hundred = decimal.NewFromInt(100)

// ParseAmount parses a user-entered money amount. Blank, non-numeric and negative input is rejected.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: amount is required", ErrInvalidAmount)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a number", ErrInvalidAmount, s)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: amount must not be negative", ErrInvalidAmount)
	}
	return d, nil
}

// ApplyDiscount returns price × (1 − percent/100), floored at 0.
func ApplyDiscount(price decimal.Decimal, percent float64) decimal.Decimal {
	if percent <= 0 {
		return price
	}
	pct := decimal.NewFromFloat(percent)
	out := price.Mul(hundred.Sub(pct)).Div(hundred)
	if out.IsNegative() {
		return decimal.Zero
	}
	return out
}

// DiscountedPrice is the plan's own price after its plan or global discount.
func DiscountedPrice(l Listing, r Resolver) decimal.Decimal {
	return ApplyDiscount(l.Price, r.For(l))
}

// UnlimitedBasePrice multiplies the daily price by the selected days, clamped to the rule bounds.
func UnlimitedBasePrice(daily decimal.Decimal, days int, rules Rules) (decimal.Decimal, int) {
	days = ClampDays(days, rules)
	return daily.Mul(decimal.NewFromInt(int64(days))), days
}

// ClampDays bounds an unlimited-plan day selection.
func ClampDays(days int, rules Rules) int {
	if days < rules.MinUnlimitedDays {
		return rules.MinUnlimitedDays
	}
	if days > rules.MaxUnlimitedDays {
		return rules.MaxUnlimitedDays
	}
	return days
}

// PlanPrice is the plan-detail price: the plan discount, or the referral discount when
// the plan discount is exactly zero. The two never stack.
func PlanPrice(base decimal.Decimal, planPercent, referralPercent float64) (decimal.Decimal, domain.DiscountSource) {
	switch {
	case planPercent > 0:
		return ApplyDiscount(base, planPercent), domain.SourcePlan
	case referralPercent > 0:
		return ApplyDiscount(base, referralPercent), domain.SourceReferral
	default:
		return base, domain.SourceNone
	}
}

// QuoteInput is everything the checkout total depends on, in USD.
type QuoteInput struct {
	Subtotal        decimal.Decimal
	PlanPercent     float64
	Promo           *domain.AppliedPromo
	ReferralPercent float64
	SpareChange     decimal.Decimal
}

// Quote computes the checkout breakdown. Exactly one discount source applies, chosen by
// plan/global > promo > referral; the others are reported as suppressed. Spare Change is
// taken last and never exceeds the remaining total.
func Quote(in QuoteInput) (domain.Breakdown, error) {
	if in.Subtotal.IsNegative() {
		return domain.Breakdown{}, ErrNegativePrice
	}
	if in.SpareChange.IsNegative() {
		return domain.Breakdown{}, fmt.Errorf("%w: spare change must not be negative", ErrInvalidAmount)
	}

	subtotal := in.Subtotal.Round(2)
	candidates := make([]domain.DiscountLine, 0, 3)
	if in.PlanPercent > 0 {
		candidates = append(candidates, percentLine(domain.SourcePlan, "", in.PlanPercent, subtotal))
	}
	if in.Promo != nil {
		candidates = append(candidates, promoLine(in.Promo, subtotal))
	}
	if in.ReferralPercent > 0 {
		candidates = append(candidates, percentLine(domain.SourceReferral, "", in.ReferralPercent, subtotal))
	}

	b := domain.Breakdown{
		Subtotal: subtotal,
		Discount: domain.DiscountLine{Source: domain.SourceNone, Amount: decimal.Zero},
	}
	if len(candidates) > 0 {
		b.Discount = candidates[0]
		b.Suppressed = candidates[1:]
	}

	remaining := subtotal.Sub(b.Discount.Amount)
	b.SpareChange = decimal.Min(in.SpareChange, remaining).Round(2)
	b.Total = remaining.Sub(b.SpareChange)
	if b.Total.IsNegative() {
		b.Total = decimal.Zero
	}
	return b, nil
}

func percentLine(source domain.DiscountSource, code string, percent float64, subtotal decimal.Decimal) domain.DiscountLine {
	after := ApplyDiscount(subtotal, percent).Round(2)
	return domain.DiscountLine{
		Source:  source,
		Code:    code,
		Percent: percent,
		Amount:  subtotal.Sub(after),
	}
}

// promoLine mirrors the server-confirmed promo amounts instead of recomputing the percent.
func promoLine(p *domain.AppliedPromo, subtotal decimal.Decimal) domain.DiscountLine {
	amount := decimal.New(p.OriginalAmountCents-p.DiscountedAmountCents, -2)
	if amount.IsNegative() {
		amount = decimal.Zero
	}
	if amount.GreaterThan(subtotal) {
		amount = subtotal
	}
	return domain.DiscountLine{
		Source:  domain.SourcePromo,
		Code:    p.Code,
		Percent: p.DiscountPercent,
		Amount:  amount,
	}
}

// ValidatePayout checks a payout request already converted to USD against the minimum and the balance.
func ValidatePayout(amountUSD, balanceUSD decimal.Decimal, rules Rules) error {
	if amountUSD.LessThan(rules.MinPayout) {
		return fmt.Errorf("%w: minimum payout is $%s", ErrBelowMinimum, rules.MinPayout.StringFixed(2))
	}
	if amountUSD.GreaterThan(balanceUSD) {
		return fmt.Errorf("%w: available balance is $%s", ErrAboveBalance, balanceUSD.StringFixed(2))
	}
	return nil
}
