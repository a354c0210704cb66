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

	"github.com/beanvoyage/storefront/internal/catalog"
	"github.com/beanvoyage/storefront/internal/config"
	"github.com/beanvoyage/storefront/internal/core"
	"github.com/beanvoyage/storefront/internal/match"
	"github.com/beanvoyage/storefront/internal/metrics"
	"github.com/beanvoyage/storefront/internal/order"
	"github.com/beanvoyage/storefront/internal/renewal"
	"github.com/beanvoyage/storefront/internal/taste"
	"github.com/beanvoyage/storefront/internal/user"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	once := flag.Bool("once", false, "run one renewal batch and exit")
	flag.Parse()

	if err := run(*configPath, *once); err != nil {
		slog.Error("renewer error", "error", err)
		os.Exit(1)
	}
}

func run(configPath string, once bool) error {
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

	if cfg.Otel.Enabled {
		telemetry, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
			defer func() {
				if err := telemetry.Shutdown(context.Background()); err != nil {
					logger.Error("telemetry shutdown error", "error", err)
				}
			}()
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("database close error", "error", err)
		}
	}()
	logger.Info("database connection established")

	appMetrics := metrics.New()
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
		Products: catalogSvc,
		Billing:  cfg.Billing,
		Metrics:  appMetrics,
		Logger:   logger,
	})

	jobs := renewal.NewJobs(
		orderSvc,
		recommender,
		catalogSvc,
		cfg.Renewal.BatchSize,
		cfg.Renewal.Timeout,
		logger,
	)

	if once {
		jobs.RenewDue()
		return nil
	}

	scheduler := renewal.NewScheduler(jobs, cfg.Renewal.Schedule, logger)
	if err := scheduler.Start(); err != nil {
		return err
	}
	logger.Info("scheduler started")

	<-ctx.Done()

	logger.Info("shutdown signal received, stopping scheduler")
	<-scheduler.Stop().Done()
	logger.Info("scheduler stopped gracefully")
	return nil
}
