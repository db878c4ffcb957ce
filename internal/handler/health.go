package handler

import (
	"context"
	"net/http"
	"time"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type cacheState interface {
	Loaded() (discounts, rates bool)
	FetchedAt() (discounts, rates time.Time)
}

// HealthHandler handles the health check endpoint.
type HealthHandler struct {
	store  pinger
	caches cacheState
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(store pinger, caches cacheState) *HealthHandler {
	return &HealthHandler{store: store, caches: caches}
}

// Check handles GET /health.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	status := map[string]interface{}{
		"status": "ok",
	}

	// Check preference store
	if err := h.store.Ping(ctx); err != nil {
		status["database"] = "error"
		status["status"] = "degraded"
	} else {
		status["database"] = "ok"
	}

	// Empty caches price at zero discount and identity rates, so they only inform
	discounts, rates := h.caches.Loaded()
	status["discounts"] = loadedLabel(discounts)
	status["exchangeRates"] = loadedLabel(rates)
	discountsAt, ratesAt := h.caches.FetchedAt()
	if discounts {
		status["discountsFetchedAt"] = discountsAt.UTC().Format(time.RFC3339)
	}
	if rates {
		status["exchangeRatesFetchedAt"] = ratesAt.UTC().Format(time.RFC3339)
	}

	code := http.StatusOK
	if status["status"] == "degraded" {
		code = http.StatusServiceUnavailable
	}

	JSON(w, code, status)
}

func loadedLabel(ok bool) string {
	if ok {
		return "loaded"
	}
	return "empty"
}
