// Package config provides application configuration management.
// Configuration is loaded from environment variables following
// 12-factor principles.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"

	"github.com/payrail/payrail/internal/payments"
)

// Config holds all application configuration.
// All fields are populated from environment variables.
type Config struct {
	// Application settings
	AppEnv  string `env:"APP_ENV" envDefault:"development"`
	AppPort int    `env:"APP_PORT" envDefault:"8080"`

	// Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// Cache (Redis)
	RedisURL string `env:"REDIS_URL,required"`

	// Demo mode substitutes synthetic KYC data and permits the
	// skip-onboarding bypass. Fixed for the life of the process.
	DemoMode bool `env:"DEMO_MODE" envDefault:"false"`

	// Session cookie signing key (≥32 bytes)
	SessionKey string `env:"SESSION_KEY,required"`

	// Payments provider
	PaymentsAPIURL       string `env:"PAYMENTS_API_URL" envDefault:"https://api.payments.example.com"`
	PaymentsSecretKeyUS  string `env:"PAYMENTS_SECRET_KEY_US,required"`
	PaymentsSecretKeyGB  string `env:"PAYMENTS_SECRET_KEY_GB,required"`
	PaymentsEventSecret  string `env:"PAYMENTS_EVENT_SECRET" envDefault:""`

	// Base URL for onboarding refresh/return redirects
	// (e.g. https://app.payrail.dev). The hosted-onboarding path
	// fails with a configuration error when this is empty.
	BaseRedirectURL string `env:"BASE_REDIRECT_URL" envDefault:""`

	// Financial product recorded in new sessions.
	FinancialProduct string `env:"FINANCIAL_PRODUCT" envDefault:"Embedded Finance"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Server timeouts
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// Rate limiting for unauthenticated endpoints
	RateLimitAuthEnabled bool `env:"RATE_LIMIT_AUTH_ENABLED" envDefault:"true"`
	RateLimitAuthRPS     int  `env:"RATE_LIMIT_AUTH_RPS" envDefault:"5"`
	RateLimitAuthBurst   int  `env:"RATE_LIMIT_AUTH_BURST" envDefault:"10"`

	// CORS configuration
	// Comma-separated list of allowed origins for the React front end.
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:""`
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// PlatformSecretKeys maps each platform to its provider API key.
func (c *Config) PlatformSecretKeys() map[payments.Platform]string {
	return map[payments.Platform]string{
		payments.PlatformUS: c.PaymentsSecretKeyUS,
		payments.PlatformGB: c.PaymentsSecretKeyGB,
	}
}

// Load parses environment variables and returns a Config.
// Returns an error if required variables are missing.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
