package service

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/esimly/backend/internal/currency"
	"github.com/esimly/backend/internal/domain"
	"github.com/esimly/backend/internal/repository"
)

// PreferenceStore is a per-user key/value store.
type PreferenceStore interface {
	Get(ctx context.Context, userID, key string) (string, bool, error)
	Set(ctx context.Context, userID, key, value string) error
	Ping(ctx context.Context) error
}

// PreferenceService manages the selected currency and the captured referral code.
type PreferenceService struct {
	store     PreferenceStore
	validator *Validator
	log       *logrus.Entry
}

// NewPreferenceService creates a new PreferenceService.
func NewPreferenceService(store PreferenceStore, v *Validator, logger *logrus.Logger) *PreferenceService {
	return &PreferenceService{store: store, validator: v, log: logger.WithField("service", "preferences")}
}

// Currency returns the stored display currency, USD when none is stored.
func (s *PreferenceService) Currency(ctx context.Context, userID string) (string, error) {
	v, ok, err := s.store.Get(ctx, userID, repository.PrefCurrency)
	if err != nil {
		return "", domain.ErrInternal("failed to load currency preference", err)
	}
	if !ok {
		return currency.USD, nil
	}
	return v, nil
}

// SetCurrency stores the display currency.
func (s *PreferenceService) SetCurrency(ctx context.Context, userID string, req domain.CurrencyPreference) (string, error) {
	req.Currency = strings.TrimSpace(req.Currency)
	if err := s.validator.Struct(req); err != nil {
		return "", err
	}
	code := currency.Normalize(req.Currency)
	if !currency.Valid(code) {
		return "", domain.ErrValidation("currency: " + code + " is not a supported currency")
	}
	if err := s.store.Set(ctx, userID, repository.PrefCurrency, code); err != nil {
		return "", domain.ErrInternal("failed to save currency preference", err)
	}
	return code, nil
}

// ResolveCurrency picks the explicit code, then the stored preference, then USD.
// Store failures are logged and fall through to USD.
func (s *PreferenceService) ResolveCurrency(ctx context.Context, userID, explicit string) string {
	if code := currency.Normalize(explicit); code != "" && currency.Valid(code) {
		return code
	}
	if userID == "" {
		return currency.USD
	}
	code, err := s.Currency(ctx, userID)
	if err != nil {
		s.log.WithError(err).WithField("user_id", userID).Warn("falling back to USD")
		return currency.USD
	}
	return code
}

// ReferralCode returns the code captured from a referral link, if any.
func (s *PreferenceService) ReferralCode(ctx context.Context, userID string) (string, bool, error) {
	v, ok, err := s.store.Get(ctx, userID, repository.PrefReferralCode)
	if err != nil {
		return "", false, domain.ErrInternal("failed to load referral code", err)
	}
	return v, ok && v != "", nil
}

// SetReferralCode stores a referral code. Eligibility is only checked at checkout.
func (s *PreferenceService) SetReferralCode(ctx context.Context, userID string, req domain.ReferralCapture) error {
	req.Code = strings.TrimSpace(req.Code)
	if err := s.validator.Struct(req); err != nil {
		return err
	}
	code := strings.ToUpper(req.Code)
	if err := s.store.Set(ctx, userID, repository.PrefReferralCode, code); err != nil {
		return domain.ErrInternal("failed to save referral code", err)
	}
	return nil
}

// Ping checks the underlying store.
func (s *PreferenceService) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}
