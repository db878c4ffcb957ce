package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/esimly/backend/internal/config"
	"github.com/esimly/backend/internal/currency"
	"github.com/esimly/backend/internal/handler"
	appMiddleware "github.com/esimly/backend/internal/middleware"
	"github.com/esimly/backend/internal/repository"
	"github.com/esimly/backend/internal/service"
	"github.com/esimly/backend/internal/ws"
	"github.com/esimly/backend/pkg/backend"
	"github.com/esimly/backend/pkg/payment"
)

func main() {
	// Load .env file if present (for local development)
	_ = godotenv.Load()

	logger := logrus.New()

	// Load config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("❌ Config error: %v", err)
	}
	if cfg.IsProduction() {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		logger.SetLevel(logrus.DebugLevel)
	}
	logrus.SetFormatter(logger.Formatter)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Preference store: PostgreSQL when configured, memory otherwise
	var store service.PreferenceStore
	if cfg.DatabaseURL != "" {
		db, err := repository.NewDB(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatalf("❌ Database error: %v", err)
		}
		defer db.Close()

		if err := repository.RunMigrations(ctx, db); err != nil {
			logger.Fatalf("❌ Migration error: %v", err)
		}
		store = repository.NewPreferenceRepository(db)
		logger.Info("✅ Database connected & migrated")
	} else {
		store = repository.NewMemoryPreferences()
		logger.Warn("⚠️  DATABASE_URL not set, preferences are kept in memory")
	}

	gateway, err := payment.NewHostedPageGateway(cfg.CheckoutBaseURL)
	if err != nil {
		logger.Fatalf("❌ Payment gateway error: %v", err)
	}

	// Initialize services
	client := backend.New(cfg.BackendURL, cfg.BackendTimeout, logger)
	validator := service.NewValidator()
	formatter := currency.NewFormatter(cfg.Rules.ZeroDecimal)
	state := service.NewPricingState(client, cfg.DiscountTTL, cfg.RatesTTL, cfg.Rules.Pricing(), formatter, logger)

	hub := ws.NewPricingHub(logger)
	state.OnDiscountsUpdated(func() { hub.Broadcast(ws.EventDiscountsUpdated) })
	state.OnRatesUpdated(func() { hub.Broadcast(ws.EventRatesUpdated) })

	warmCtx, cancelWarm := context.WithTimeout(ctx, 15*time.Second)
	if err := state.WarmUp(warmCtx); err != nil {
		logger.WithError(err).Warn("⚠️  Pricing caches not warmed, serving zero discounts and USD until the next refresh")
	} else {
		logger.Info("✅ Discounts and exchange rates loaded")
	}
	cancelWarm()
	state.Start(ctx)

	prefs := service.NewPreferenceService(store, validator, logger)
	catalogSvc := service.NewCatalogService(client, state, prefs, logger)
	checkoutSvc := service.NewCheckoutService(client, state, prefs, gateway, validator, logger)
	promoSvc := service.NewPromoService(client, validator, logger)
	walletSvc := service.NewWalletService(client, state, prefs, validator)
	verifier := service.NewTokenVerifier(cfg.JWTSecret)

	// Initialize handlers
	healthHandler := handler.NewHealthHandler(store, state)
	plansHandler := handler.NewPlansHandler(catalogSvc, prefs)
	paymentHandler := handler.NewPaymentHandler(checkoutSvc)
	promoHandler := handler.NewPromoHandler(promoSvc)
	userHandler := handler.NewUserHandler(prefs, walletSvc)

	// Build router
	r := chi.NewRouter()

	// Global middleware
	r.Use(appMiddleware.RequestID)
	r.Use(appMiddleware.Recovery(logger))
	r.Use(appMiddleware.Logger(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Global rate limiter (20 req/sec per IP, burst of 40)
	globalRL := appMiddleware.NewRateLimiter(20, 40)
	defer globalRL.Stop()
	r.Use(globalRL.Middleware())

	// Promo codes are guessable, so attempts are limited per user (1 req/sec, burst of 5)
	promoRL := appMiddleware.NewRateLimiter(1, 5).WithKey(appMiddleware.ByUser)
	defer promoRL.Stop()

	// Health check and public routes; a valid token personalises the currency
	r.Get("/health", healthHandler.Check)
	r.Group(func(r chi.Router) {
		r.Use(appMiddleware.OptionalAuth(verifier))
		r.Get("/api/countries/{code}/plans", plansHandler.List)
		r.Get("/api/countries/{code}/plans/{packageCode}", plansHandler.Detail)
		r.Get("/api/currency", plansHandler.Currency)
	})

	// Protected API routes
	r.Group(func(r chi.Router) {
		r.Use(appMiddleware.Auth(verifier))

		r.Post("/api/checkout/quote", paymentHandler.Quote)
		r.Post("/api/orders/{orderId}/checkout", paymentHandler.Checkout)

		r.Get("/api/me/currency", userHandler.GetCurrency)
		r.Put("/api/me/currency", userHandler.SetCurrency)
		r.Put("/api/me/referral", userHandler.SetReferral)
		r.Post("/api/me/wallet/payouts/validate", userHandler.ValidatePayout)

		// Promo routes
		r.Group(func(r chi.Router) {
			r.Use(promoRL.Middleware())
			r.Post("/api/orders/{orderId}/promo", promoHandler.Apply)
			r.Delete("/api/orders/{orderId}/promo", promoHandler.Remove)
		})
	})

	// Pricing change notifications
	r.HandleFunc("/ws/pricing", hub.Handle)

	// Start server
	addr := fmt.Sprintf("0.0.0.0:%d", cfg.Port)
	server := &http.Server{
		Addr:        addr,
		Handler:     r,
		ReadTimeout: 30 * time.Second,
		// WriteTimeout must be 0 for WebSocket connections (they are long-lived)
		IdleTimeout: 120 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		logger.Info("🛑 Shutting down...")
		stop()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	logger.Infof("🚀 eSIM pricing API listening at http://%s", addr)
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		logger.Fatalf("❌ Server error: %v", err)
	}
}
