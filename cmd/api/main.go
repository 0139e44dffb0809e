package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"buildinghealth_backend/internal/building"
	"buildinghealth_backend/internal/events"
	apphttp "buildinghealth_backend/internal/http"
	"buildinghealth_backend/internal/http/router"
	"buildinghealth_backend/internal/opendata"
	"buildinghealth_backend/internal/scheduler"
	"buildinghealth_backend/migrations"
	"buildinghealth_backend/platform/cache"
	"buildinghealth_backend/platform/config"
	"buildinghealth_backend/platform/db"
	"buildinghealth_backend/platform/logger"
	"buildinghealth_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// portfolioWarmLimit bounds the warm-ups enqueued per generated report.
const portfolioWarmLimit = 5

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	store, err := cache.New(cfg)
	if err != nil {
		log.Error("failed to initialize response cache", "error", err)
		panic("failed to initialize response cache: " + err.Error())
	}
	defer func() { _ = store.Close() }()
	log.Info("response cache initialized", "redis", cfg.IsRedisEnabled(), "ttl", cfg.GetOpenDataCacheTTL().String())

	catalog, err := opendata.LoadCatalog(cfg.GetOpenDataDatasetsFile())
	if err != nil {
		log.Error("failed to load dataset catalog", "error", err)
		panic("failed to load dataset catalog: " + err.Error())
	}
	client := opendata.New(cfg, catalog, log, opendata.WithCache(store, cfg.GetOpenDataCacheTTL()))

	var pool *pgxpool.Pool
	if cfg.IsDatabaseEnabled() {
		pool = connectDatabase(ctx, cfg, log)
		defer pool.Close()
	} else {
		log.Warn("DATABASE_URL not configured; lookup history disabled")
	}

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	warmClient, closeWarmClient := initWarmClient(cfg, log)
	if closeWarmClient != nil {
		defer closeWarmClient()
	}
	if warmClient != nil {
		scheduler.NewPortfolioWarmer(warmClient, portfolioWarmLimit, log).RegisterHandlers(eventBus)
	}

	// Shared validator instance for dependency injection
	val := validator.New()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	buildingModule, err := building.NewModule(client, pool, eventBus, val, cfg, log)
	if err != nil {
		log.Error("failed to initialize building module", "error", err)
		panic("failed to initialize building module: " + err.Error())
	}
	buildingModule.RegisterHandlers(eventBus)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		EventBus: eventBus,
		Modules: []apphttp.Module{
			buildingModule,
		},
	}
	if pool != nil {
		app.Health = pool
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router.New(app),
		ReadHeaderTimeout: 10 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("server shutdown failed", "error", err)
		}
		eventBus.Wait()
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func connectDatabase(ctx context.Context, cfg *config.Config, log *logger.Logger) *pgxpool.Pool {
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
	log.Info("database connection established")

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, pool, migrations.FS, log)
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")
	return pool
}

func initWarmClient(cfg config.SchedulerConfig, log *logger.Logger) (scheduler.ReportWarmer, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; portfolio warm-ups disabled")
		return nil, nil
	}

	warmClient, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize warm-up client", "error", err)
		return nil, nil
	}

	return warmClient, func() {
		_ = warmClient.Close()
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
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
