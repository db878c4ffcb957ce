package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/esimly/backend/internal/domain"
	"github.com/esimly/backend/internal/service"
)

// PaymentHandler serves checkout quotes and the hosted payment redirect.
type PaymentHandler struct {
	svc *service.CheckoutService
}

func NewPaymentHandler(svc *service.CheckoutService) *PaymentHandler {
	return &PaymentHandler{svc: svc}
}

// Quote handles POST /api/checkout/quote.
func (h *PaymentHandler) Quote(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req domain.QuoteRequest
	if err := DecodeJSON(r, &req); err != nil {
		Error(w, err)
		return
	}

	resp, err := h.svc.Quote(r.Context(), uid, req)
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, resp)
}

// Checkout handles POST /api/orders/{orderId}/checkout.
func (h *PaymentHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req domain.CheckoutRequest
	if err := DecodeJSON(r, &req); err != nil {
		Error(w, err)
		return
	}

	resp, err := h.svc.Checkout(r.Context(), uid, chi.URLParam(r, "orderId"), req)
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusCreated, resp)
}
