package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"buildinghealth_backend/internal/building/repository"
	"buildinghealth_backend/internal/building/service"
	"buildinghealth_backend/internal/opendata"
	"buildinghealth_backend/internal/scheduler"
	"buildinghealth_backend/platform/cache"
	"buildinghealth_backend/platform/config"
	"buildinghealth_backend/platform/db"
	"buildinghealth_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting scheduler", "env", cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := cache.New(cfg)
	if err != nil {
		log.Error("failed to initialize response cache", "error", err)
		panic("failed to initialize response cache: " + err.Error())
	}
	defer func() { _ = store.Close() }()
	if !cfg.IsRedisEnabled() {
		log.Warn("REDIS_URL not configured; warm-ups only fill an in-process cache")
	}

	catalog, err := opendata.LoadCatalog(cfg.GetOpenDataDatasetsFile())
	if err != nil {
		log.Error("failed to load dataset catalog", "error", err)
		panic("failed to load dataset catalog: " + err.Error())
	}
	client := opendata.New(cfg, catalog, log, opendata.WithCache(store, cfg.GetOpenDataCacheTTL()))

	// Warm-ups publish no events, so they never fan out further.
	reporter := service.New(client, cfg, log)

	if cfg.IsDatabaseEnabled() {
		var pool *pgxpool.Pool
		if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
			p, err := db.NewPool(ctx, cfg)
			if err != nil {
				return err
			}
			pool = p
			return nil
		}); err != nil {
			log.Error("failed to connect to database", "error", err)
			panic("failed to connect to database: " + err.Error())
		}
		defer pool.Close()

		cleanupInterval := getDurationEnv("LOOKUP_HISTORY_CLEANUP_INTERVAL", time.Hour)
		retention := time.Duration(getPositiveIntEnv("LOOKUP_HISTORY_RETENTION_DAYS", 90)) * 24 * time.Hour
		historyCleanup := scheduler.NewHistoryCleanup(repository.New(pool), log, cleanupInterval, retention)
		go historyCleanup.Run(ctx)
	}

	worker, err := scheduler.NewWorker(cfg, reporter, log)
	if err != nil {
		log.Error("failed to initialize scheduler worker", "error", err)
		panic("failed to initialize scheduler worker: " + err.Error())
	}

	worker.Run(ctx)
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return errors.New(name + ": invalid retry attempts")
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}

func getPositiveIntEnv(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		return fallback
	}

	return parsed
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	parsed, err := time.ParseDuration(raw)
	if err != nil || parsed <= 0 {
		return fallback
	}

	return parsed
}
