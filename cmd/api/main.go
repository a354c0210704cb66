// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/beanvoyage/storefront/internal/admin"
	"github.com/beanvoyage/storefront/internal/auth"
	"github.com/beanvoyage/storefront/internal/catalog"
	"github.com/beanvoyage/storefront/internal/config"
	"github.com/beanvoyage/storefront/internal/core"
	"github.com/beanvoyage/storefront/internal/dashboard"
	"github.com/beanvoyage/storefront/internal/health"
	"github.com/beanvoyage/storefront/internal/match"
	"github.com/beanvoyage/storefront/internal/metrics"
	"github.com/beanvoyage/storefront/internal/middleware"
	"github.com/beanvoyage/storefront/internal/order"
	"github.com/beanvoyage/storefront/internal/server"
	"github.com/beanvoyage/storefront/internal/taste"
	"github.com/beanvoyage/storefront/internal/user"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := core.NewLogger(cfg.Log, os.Stdout)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	verifier, err := auth.NewVerifier(cfg.Auth, redis.Client)
	if err != nil {
		return err
	}
	logger.Info("token verifier initialized",
		"algorithm", "ES256",
		"issuer", cfg.Auth.Issuer,
	)

	appMetrics := metrics.New()

	userSvc := user.NewService(user.NewRepository(db.DB))
	catalogSvc := catalog.NewService(catalog.NewRepository(db.DB))
	tasteSvc := taste.NewService(taste.NewRepository(db.DB), logger)

	recommender := match.NewRecommender(
		tasteSvc,
		catalogSvc,
		match.Options{ClampNegative: cfg.Match.ClampNegativeScore},
		appMetrics,
	)

	orderSvc := order.NewService(order.ServiceConfig{
		Subscriptions: order.NewSubscriptionRepository(db.DB),
		Shipments:     order.NewShipmentRepository(db.DB),
		Reviews:       order.NewReviewRepository(db.DB),
		Store: order.NewStore(db.DB, func(tx core.DBTX) order.AddressSaver {
			return user.NewRepository(tx)
		}),
		Products:    catalogSvc,
		Idempotency: core.NewIdempotencyGuard(redis.Client, cfg.Idempotency.TTL),
		Billing:     cfg.Billing,
		Metrics:     appMetrics,
		Logger:      logger,
	})

	dashboardSvc := dashboard.NewService(userSvc, orderSvc, recommender)

	healthHandler := health.NewHandler(cfg.App.Version,
		health.Dependency{Name: "database", Checker: db},
		health.Dependency{Name: "redis", Checker: redis},
	)

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		Overview:   orderSvc,
		DBStats:    db.Stats,
		DBPing:     db.Ping,
		RedisStats: redis.PoolStats,
		RedisPing:  redis.Ping,
	})

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Global(redis.Client, cfg.RateLimit).Handler)
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)
	router.Handle("/metrics", appMetrics.Handler())

	authenticator := middleware.Authenticator(verifier)
	optionalAuth := middleware.OptionalAuth(verifier)
	adminOnly := middleware.RequireAdmin
	checkoutLimit := middleware.Checkout(redis.Client, cfg.RateLimit).Handler

	router.Route("/v1", func(r chi.Router) {
		r.Use(middleware.StoreDeadline(cfg.Server.StoreTimeout))

		catalog.NewHandler(catalogSvc).RegisterRoutes(r)
		taste.NewHandler(tasteSvc).RegisterRoutes(r, authenticator)
		match.NewHandler(recommender).RegisterRoutes(r, authenticator, optionalAuth)
		dashboard.NewHandler(dashboardSvc).RegisterRoutes(r, authenticator)

		userHandler := user.NewHandler(userSvc)
		userHandler.RegisterRoutes(r, authenticator)
		userHandler.RegisterAdminRoutes(r, authenticator, adminOnly)

		orderHandler := order.NewHandler(orderSvc)
		orderHandler.RegisterRoutes(r, authenticator, checkoutLimit)
		orderHandler.RegisterAdminRoutes(r, authenticator, adminOnly)

		adminHandler.RegisterRoutes(r, authenticator, adminOnly)
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}
