package service

import (
	"context"

	"github.com/sirupsen/logrus"
)

// referralPercent returns the first-purchase discount for the referral code userID arrived with,
// 0 when there is none. A failed eligibility check counts as not eligible.
func referralPercent(ctx context.Context, b Backend, prefs *PreferenceService, log *logrus.Entry, userID string) float64 {
	if userID == "" {
		return 0
	}
	code, ok, err := prefs.ReferralCode(ctx, userID)
	if err != nil || !ok {
		return 0
	}
	res, err := b.CheckReferralEligibility(ctx, userID, code)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Warn("referral eligibility check failed")
		return 0
	}
	if !res.Eligible {
		return 0
	}
	return res.DiscountPercent
}
