// Package main is the entrypoint for the Payrail onboarding API server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/payrail/payrail/internal/auth"
	"github.com/payrail/payrail/internal/cache"
	"github.com/payrail/payrail/internal/config"
	"github.com/payrail/payrail/internal/demo"
	"github.com/payrail/payrail/internal/handler"
	"github.com/payrail/payrail/internal/metrics"
	"github.com/payrail/payrail/internal/middleware"
	"github.com/payrail/payrail/internal/payments"
	"github.com/payrail/payrail/internal/repository"
	"github.com/payrail/payrail/internal/server"
	"github.com/payrail/payrail/internal/service"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	repo, err := repository.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	defer repo.Close()
	logger.Info("connected to database")

	cacheClient, err := cache.New(ctx, cfg.RedisURL)
	if err != nil {
		logger.Error(
			"failed to connect to Redis",
			slog.String("error", sanitizeError(err, cfg.RedisURL)),
			slog.String("redis_url", redactURL(cfg.RedisURL)),
		)
		os.Exit(1)
	}
	defer cacheClient.Close()
	logger.Info("connected to Redis")

	sessionManager, err := auth.NewSessionManager(cfg.SessionKey, cfg.IsProduction())
	if err != nil {
		logger.Error("failed to initialize sessions", "error", err)
		os.Exit(1)
	}

	gateway := payments.NewClient(cfg.PaymentsAPIURL, cfg.PlatformSecretKeys())
	policy := demo.Policy{Enabled: cfg.DemoMode}
	if policy.Enabled {
		logger.Warn("demo mode enabled: synthetic KYC data will be submitted to the provider")
	}

	recorder := metrics.NewInMemory()
	registrationService := service.NewRegistrationService(repo, gateway, policy, recorder, logger)
	onboardingService := service.NewOnboardingService(gateway, policy, cacheClient, cfg.BaseRedirectURL, recorder, logger)

	h := handler.New()
	healthHandler := handler.NewHealthHandler(repo, cacheClient)
	metricsHandler := handler.NewMetricsHandler(recorder)
	registerHandler := handler.NewRegisterHandler(registrationService, logger)
	sessionHandler := handler.NewSessionHandler(registrationService, sessionManager, cfg.FinancialProduct, logger)
	onboardHandler := handler.NewOnboardHandler(onboardingService, logger)

	var eventHandler *handler.EventHandler
	if cfg.PaymentsEventSecret != "" {
		eventHandler = handler.NewEventHandler(onboardingService, cfg.PaymentsEventSecret, logger)
	} else {
		logger.Warn("PAYMENTS_EVENT_SECRET not set; provider event endpoint disabled")
	}

	r := setupRouter(routerDeps{
		base:     h,
		health:   healthHandler,
		metrics:  metricsHandler,
		register: registerHandler,
		session:  sessionHandler,
		onboard:  onboardHandler,
		events:   eventHandler,
		sessions: sessionManager,
		cache:    cacheClient,
		cfg:      cfg,
		logger:   logger,
	})

	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
		"demo_mode", cfg.DemoMode,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	var h slog.Handler
	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type routerDeps struct {
	base     *handler.Handler
	health   *handler.HealthHandler
	metrics  *handler.MetricsHandler
	register *handler.RegisterHandler
	session  *handler.SessionHandler
	onboard  *handler.OnboardHandler
	events   *handler.EventHandler
	sessions *auth.SessionManager
	cache    *cache.Cache
	cfg      *config.Config
	logger   *slog.Logger
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(deps routerDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(deps.logger))
	r.Use(middleware.Recoverer(deps.logger))

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = deps.cfg.CORSAllowedOrigins
	r.Use(middleware.CORS(corsCfg))

	r.Get("/healthz", deps.health.Healthz)
	r.Get("/readyz", deps.health.Readyz)
	r.Get("/metrics", deps.metrics.Metrics)

	r.Get("/", deps.base.Hello)

	rateLimitCfg := middleware.RateLimitConfig{
		Logger:  deps.logger,
		Cache:   deps.cache,
		Enabled: deps.cfg.RateLimitAuthEnabled,
		RPS:     deps.cfg.RateLimitAuthRPS,
		Burst:   deps.cfg.RateLimitAuthBurst,
	}

	r.Route("/api", func(r chi.Router) {
		// Unauthenticated endpoints, rate limited per IP.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimitIP(rateLimitCfg))
			r.Post("/register", deps.register.Register)
			r.Post("/login", deps.session.Login)
		})

		r.Post("/logout", deps.session.Logout)

		// Endpoints bound to the session's connected account.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSession(deps.sessions))
			r.Post("/onboard", deps.onboard.Onboard)
			r.Get("/onboard/status", deps.onboard.Status)
		})

		if deps.events != nil {
			r.Post("/events", deps.events.Receive)
		}
	})

	r.NotFound(deps.base.NotFound)
	r.MethodNotAllowed(deps.base.MethodNotAllowed)

	return r
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
