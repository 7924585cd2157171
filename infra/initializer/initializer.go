package initializer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/bankapi/infra"
	"github.com/amirasaad/bankapi/infra/cache"
	"github.com/amirasaad/bankapi/pkg/app"
	"github.com/amirasaad/bankapi/pkg/config"
	"github.com/amirasaad/bankapi/pkg/metrics"
	metricsprom "github.com/amirasaad/bankapi/pkg/metrics/prometheus"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// InitializeDependencies initializes all the application dependencies. The
// returned cleanup releases the database and cache connections.
func InitializeDependencies(cfg *config.App) (
	deps *app.Deps,
	cleanup func(),
	err error,
) {
	logger := SetupLogger(cfg.Log)
	deps = &app.Deps{Logger: logger}
	var closers []func() error
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				logger.Warn("Cleanup failed", "error", err)
			}
		}
	}
	defer func() {
		if err != nil {
			closeAll()
		}
	}()

	// Initialize database
	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		return nil, nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, err
	}
	closers = append(closers, sqlDB.Close)

	// Initialize unit of work
	deps.Uow = infra.NewUoW(db)

	deps.Metrics, deps.Gatherer, err = initMetrics(cfg.Metrics)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	storage, err := initRateLimitStorage(cfg.Redis, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize rate limit storage: %w", err)
	}
	closers = append(closers, storage.Close)
	deps.RateLimitStorage = storage

	logger.Info("Dependencies initialized",
		"env", cfg.Env,
		"metrics", deps.Gatherer != nil,
		"redis_configured", cfg.Redis != nil && cfg.Redis.URL != "",
	)
	return deps, closeAll, nil
}

func initMetrics(cfg *config.Metrics) (metrics.Collector, prometheus.Gatherer, error) {
	if cfg == nil || !cfg.Enabled {
		return metrics.NoOpCollector{}, nil, nil
	}
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metricsprom.NewCollector(cfg.Namespace)
	if err := collector.Register(registry); err != nil {
		return nil, nil, err
	}
	return collector, registry, nil
}

// initRateLimitStorage shares limiter state through Redis when it is
// configured and keeps it in process otherwise.
func initRateLimitStorage(cfg *config.Redis, logger *slog.Logger) (fiber.Storage, error) {
	if cfg == nil || cfg.URL == "" {
		return cache.NewMemoryStorage(time.Minute), nil
	}
	storage, err := cache.NewRedisStorage(cfg.URL, cfg.KeyPrefix+"ratelimit:", logger)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := storage.Ping(ctx); err != nil {
		logger.Warn("Redis unreachable, using in-memory rate limit storage", "error", err)
		_ = storage.Close()
		return cache.NewMemoryStorage(time.Minute), nil
	}
	return storage, nil
}
