package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Port            int
	Env             string
	JWTSecret       string
	DatabaseURL     string
	BackendURL      string
	BackendTimeout  time.Duration
	CORSOrigins     []string
	CheckoutBaseURL string
	DiscountTTL     time.Duration
	RatesTTL        time.Duration
	Rules           Rules
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	port, err := strconv.Atoi(getEnv("PORT", "4001"))
	if err != nil {
		return nil, fmt.Errorf("PORT must be a number: %w", err)
	}

	jwtSecret := getEnv("JWT_SECRET", "")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	backendURL := strings.TrimRight(getEnv("BACKEND_URL", ""), "/")
	if backendURL == "" {
		return nil, fmt.Errorf("BACKEND_URL is required")
	}

	backendTimeout, err := getDuration("BACKEND_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	discountTTL, err := getDuration("DISCOUNT_TTL", 60*time.Second)
	if err != nil {
		return nil, err
	}
	ratesTTL, err := getDuration("RATES_TTL", time.Hour)
	if err != nil {
		return nil, err
	}

	rules := DefaultRules()
	if path := getEnv("PRICING_RULES_FILE", ""); path != "" {
		if rules, err = LoadRules(path); err != nil {
			return nil, err
		}
	}

	origins := strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:8081"), ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}

	return &Config{
		Port:            port,
		Env:             getEnv("APP_ENV", "development"),
		JWTSecret:       jwtSecret,
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		BackendURL:      backendURL,
		BackendTimeout:  backendTimeout,
		CORSOrigins:     origins,
		CheckoutBaseURL: getEnv("CHECKOUT_BASE_URL", "https://pay.esimly.app/checkout"),
		DiscountTTL:     discountTTL,
		RatesTTL:        ratesTTL,
		Rules:           rules,
	}, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := getEnv(key, "")
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration like 60s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive", key)
	}
	return d, nil
}
