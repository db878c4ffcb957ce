package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/esimly/backend/internal/domain"
	"github.com/esimly/backend/internal/service"
)

// PromoHandler applies and removes promo codes on an order.
type PromoHandler struct {
	svc *service.PromoService
}

func NewPromoHandler(svc *service.PromoService) *PromoHandler {
	return &PromoHandler{svc: svc}
}

// Apply handles POST /api/orders/{orderId}/promo.
func (h *PromoHandler) Apply(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}
	var req domain.ApplyPromoRequest
	if err := DecodeJSON(r, &req); err != nil {
		Error(w, err)
		return
	}
	resp, err := h.svc.Apply(r.Context(), chi.URLParam(r, "orderId"), req)
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, resp)
}

// Remove handles DELETE /api/orders/{orderId}/promo.
func (h *PromoHandler) Remove(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}
	var req domain.RemovePromoRequest
	if err := DecodeJSON(r, &req); err != nil {
		Error(w, err)
		return
	}
	resp, err := h.svc.Remove(r.Context(), chi.URLParam(r, "orderId"), req)
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, resp)
}
