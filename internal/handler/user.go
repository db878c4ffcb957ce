package handler

import (
	"net/http"

	"github.com/esimly/backend/internal/domain"
	"github.com/esimly/backend/internal/service"
)

// UserHandler serves the signed-in user's preferences and wallet checks.
type UserHandler struct {
	prefs  *service.PreferenceService
	wallet *service.WalletService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(prefs *service.PreferenceService, wallet *service.WalletService) *UserHandler {
	return &UserHandler{prefs: prefs, wallet: wallet}
}

// GetCurrency handles GET /api/me/currency.
func (h *UserHandler) GetCurrency(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}
	code, err := h.prefs.Currency(r.Context(), uid)
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, domain.CurrencyPreference{Currency: code})
}

// SetCurrency handles PUT /api/me/currency.
func (h *UserHandler) SetCurrency(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req domain.CurrencyPreference
	if err := DecodeJSON(r, &req); err != nil {
		Error(w, err)
		return
	}
	code, err := h.prefs.SetCurrency(r.Context(), uid, req)
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, domain.CurrencyPreference{Currency: code})
}

// SetReferral handles PUT /api/me/referral.
func (h *UserHandler) SetReferral(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req domain.ReferralCapture
	if err := DecodeJSON(r, &req); err != nil {
		Error(w, err)
		return
	}
	if err := h.prefs.SetReferralCode(r.Context(), uid, req); err != nil {
		Error(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ValidatePayout handles POST /api/me/wallet/payouts/validate.
func (h *UserHandler) ValidatePayout(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req domain.PayoutRequest
	if err := DecodeJSON(r, &req); err != nil {
		Error(w, err)
		return
	}
	resp, err := h.wallet.ValidatePayout(r.Context(), uid, req)
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, resp)
}
