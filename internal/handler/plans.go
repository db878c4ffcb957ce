package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/esimly/backend/internal/service"
)

// PlansHandler serves the plan catalog and currency table.
type PlansHandler struct {
	catalog *service.CatalogService
	prefs   *service.PreferenceService
}

// NewPlansHandler creates a new PlansHandler.
func NewPlansHandler(catalog *service.CatalogService, prefs *service.PreferenceService) *PlansHandler {
	return &PlansHandler{catalog: catalog, prefs: prefs}
}

// List handles GET /api/countries/{code}/plans?sort=&currency=.
func (h *PlansHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	cur := h.prefs.ResolveCurrency(r.Context(), userID(r), q.Get("currency"))

	resp, err := h.catalog.Plans(r.Context(), chi.URLParam(r, "code"), q.Get("sort"), cur)
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, resp)
}

// Detail handles GET /api/countries/{code}/plans/{packageCode}?currency=.
func (h *PlansHandler) Detail(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	cur := h.prefs.ResolveCurrency(r.Context(), uid, r.URL.Query().Get("currency"))

	resp, err := h.catalog.Plan(r.Context(), uid, chi.URLParam(r, "code"), chi.URLParam(r, "packageCode"), cur)
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, resp)
}

// Currency handles GET /api/currency.
func (h *PlansHandler) Currency(w http.ResponseWriter, r *http.Request) {
	cur := h.prefs.ResolveCurrency(r.Context(), userID(r), r.URL.Query().Get("currency"))
	JSON(w, http.StatusOK, h.catalog.CurrencyInfo(cur))
}
