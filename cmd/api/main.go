package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/angelmondragon/pos-analytics/api/routes"
	"github.com/angelmondragon/pos-analytics/internal/analytics"
	"github.com/angelmondragon/pos-analytics/internal/analytics/query"
	"github.com/angelmondragon/pos-analytics/internal/catalog"
	"github.com/angelmondragon/pos-analytics/pkg/config"
	"github.com/angelmondragon/pos-analytics/pkg/db"
	"github.com/angelmondragon/pos-analytics/pkg/logger"
	"github.com/angelmondragon/pos-analytics/pkg/metrics"
	"github.com/angelmondragon/pos-analytics/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Env:         cfg.App.Env,
		Version:     cfg.App.Version,
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logg); err != nil {
		logg.Error(context.Background(), "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logg *logger.Logger) (err error) {
	dbClient, err := db.New(ctx, cfg.DB, cfg.FeatureFlags, logg)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, dbClient.Close()) }()

	deps := routes.Deps{
		Config: cfg,
		Logger: logg,
		DB:     dbClient,
	}

	var redisClient *redis.Client
	if cfg.Cache.Enabled {
		redisClient, err = redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return err
		}
		defer func() { err = multierr.Append(err, redisClient.Close()) }()
		deps.Redis = redisClient
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	analyticsMetrics := metrics.NewAnalyticsMetrics(reg)
	deps.Metrics = metrics.NewHTTPMetrics(reg)
	deps.Gatherer = reg

	store, err := query.NewService(dbClient.DB(), query.WithMaxRows(cfg.Query.MaxResults))
	if err != nil {
		return err
	}
	deps.Analytics, err = analytics.NewService(analytics.Deps{
		Store:   store,
		Cache:   analytics.NewCache(redisClient, cfg.Cache, analyticsMetrics, logg),
		Metrics: analyticsMetrics,
		Logger:  logg,
		Timeout: cfg.Query.Timeout,
	})
	if err != nil {
		return err
	}
	deps.Catalog, err = catalog.NewService(catalog.NewRepository(dbClient.DB()), logg, cfg.Query.Timeout, cfg.Query.MaxResults)
	if err != nil {
		return err
	}

	addr := ":" + cfg.App.Port
	server := &http.Server{
		Addr:        addr,
		Handler:     routes.NewRouter(deps),
		ReadTimeout: cfg.HTTP.ReadTimeout,
		// chi's Timeout middleware cancels the request context first.
		WriteTimeout: cfg.HTTP.WriteTimeout + cfg.HTTP.ShutdownTimeout,
	}

	logCtx := logg.WithFields(ctx, map[string]any{
		"env":     cfg.App.Env,
		"addr":    addr,
		"dialect": dbClient.Dialect(),
		"cache":   cfg.Cache.Enabled,
	})
	logg.Info(logCtx, "starting api server")

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logg.Info(logCtx, "shutting down api server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
