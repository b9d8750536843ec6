package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"usermanagement/internal/app/user"
	"usermanagement/internal/cache"
	"usermanagement/internal/config"
	"usermanagement/internal/db"
	"usermanagement/internal/db/repository"
	"usermanagement/internal/http/errorhandler"
	"usermanagement/internal/http/handlers/health"
	userhandler "usermanagement/internal/http/handlers/user"
	"usermanagement/internal/http/router"
	"usermanagement/internal/kafka"
	"usermanagement/internal/logging"
	"usermanagement/internal/telemetry"
)

func main() {
	// Top-level context with graceful shutdown on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1) Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// 2) Initialize logger
	logger := logging.New(
		cfg.Observability.ServiceName,
		cfg.Environment,
		cfg.LogLevel,
	)

	logger.Info("starting service",
		"env", cfg.Environment,
	)

	if err := run(ctx, stop, cfg, logger); err != nil {
		logger.Error("service failed", "error", err)
		os.Exit(1)
	}

	logger.Info("service stopped")
}

func run(ctx context.Context, stop context.CancelFunc, cfg *config.Config, logger logging.Logger) error {
	// 3) Initialize telemetry (OpenTelemetry)
	otelShutdown, err := telemetry.Setup(ctx, cfg.Observability, logger)
	if err != nil {
		return fmt.Errorf("setup telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := otelShutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown telemetry", "error", err)
		}
	}()

	// 4) Database (ent driver over pgx or sqlite)
	dbClient, err := db.NewClient(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	if cfg.Database.AutoMigrate {
		if err := dbClient.Migrate(ctx); err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}
	}

	// 5) Redis (optional)
	var (
		userCache   cache.UserCache = cache.NoopUserCache{}
		redisPinger health.Pinger
	)
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis, logger)
		if err != nil {
			return fmt.Errorf("init redis: %w", err)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Error("failed to close redis", "error", err)
			}
		}()
		userCache = cache.NewUserCache(redisClient, cfg.Redis.TTL)
		redisPinger = redisClient
	}

	// 6) Kafka bus (Watermill)
	bus, closeBus, err := kafka.NewBus(cfg.Kafka, logger)
	if err != nil {
		return fmt.Errorf("init kafka bus: %w", err)
	}
	defer func() {
		if err := closeBus(context.Background()); err != nil {
			logger.Error("failed to close kafka bus", "error", err)
		}
	}()

	// 7) Kafka router (cache invalidation consumer)
	kafkaRouter, err := kafka.NewRouter(cfg.Kafka, userCache, logger)
	if err != nil {
		return fmt.Errorf("init kafka router: %w", err)
	}

	// 8) Repositories & services
	userRepo := repository.NewUserRepository(dbClient, logger)
	userEvents := kafka.NewUserEvents(bus, cfg.Kafka, logger)
	userService := user.NewService(userRepo, userCache, userEvents, logger)

	// 9) HTTP handlers & router
	httpRouter := router.NewRouter(
		logger,
		cfg.HTTP,
		errorhandler.New(logger),
		health.NewHandler(dbClient, redisPinger, logger),
		userhandler.NewHandler(userService, logger),
	)

	srv := &http.Server{
		Addr: fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: otelhttp.NewHandler(
			httpRouter,
			cfg.Observability.ServiceName,
		),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 10) Start concurrent processes (HTTP server, Kafka router)
	errCh := make(chan error, 2)

	go func() {
		logger.Info("http server starting",
			"host", cfg.HTTP.Host,
			"port", cfg.HTTP.Port,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	go func() {
		if !cfg.Kafka.Enabled {
			return
		}
		logger.Info("kafka router starting")
		if err := kafkaRouter.Run(ctx); err != nil {
			errCh <- err
		}
	}()

	// 11) Wait for shutdown signal or an error
	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("received shutdown signal")
	case runErr = <-errCh:
		logger.Error("fatal error from subsystem", "error", runErr)
		stop()
	}

	// 12) Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown http server", "error", err)
	}
	if err := kafkaRouter.Close(shutdownCtx); err != nil {
		logger.Error("failed to close kafka router", "error", err)
	}

	return runErr
}
