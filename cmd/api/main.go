// Copyright (c) 2026 Workbay. All rights reserved.

// Command api is the entry point for the Workbay HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Connect to object storage (S3-compatible).
//  6. Run database migrations (idempotent).
//  7. Wire HTTP handlers.
//  8. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/workbay/workbay/internal/api"
	"github.com/workbay/workbay/internal/core/marketplace"
	"github.com/workbay/workbay/internal/core/payment"
	"github.com/workbay/workbay/internal/core/project"
	"github.com/workbay/workbay/internal/core/rating"
	"github.com/workbay/workbay/internal/core/request"
	"github.com/workbay/workbay/internal/core/video"
	"github.com/workbay/workbay/internal/platform/config"
	"github.com/workbay/workbay/internal/platform/constants"
	"github.com/workbay/workbay/internal/platform/migration"
	"github.com/workbay/workbay/internal/platform/objectstore"
	pgstore "github.com/workbay/workbay/internal/platform/postgres"
	redisstore "github.com/workbay/workbay/internal/platform/redis"
	"github.com/workbay/workbay/internal/platform/sec"
	"github.com/workbay/workbay/internal/users/account"
	"github.com/workbay/workbay/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("[Workbay] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Object Storage ─────────────────────────────────────────────────
	blobStore, err := objectstore.New(startupCtx, objectstore.Config{
		Bucket:    cfg.SpacesBucket,
		Region:    cfg.SpacesRegion,
		Endpoint:  cfg.SpacesEndpoint,
		AccessKey: cfg.SpacesAccessKey,
		SecretKey: cfg.SpacesSecretKey,
	})
	must(log, err, "connect to object storage")

	// ── 6. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 7. Token Codec ────────────────────────────────────────────────────
	tokenCodec, err := sec.NewTokenCodec(cfg.JWTSecret, constants.AuthIssuer, cfg.AccessTokenTTL())
	must(log, err, "initialize token codec")

	// ── 8. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 9. Domain Wiring ──────────────────────────────────────────────────
	userRepository := auth.NewUserRepository(pool)
	authService := auth.NewService(userRepository, tokenCodec)
	authHandler := auth.NewHandler(authService)
	subjectResolver := auth.NewResolver(userRepository)

	accountService := account.NewService(userRepository, log)
	accountHandler := account.NewHandler(accountService)

	projectService := project.NewService(project.NewPostgresRepository(pool), log)
	projectHandler := project.NewHandler(projectService)

	requestService := request.NewService(request.NewPostgresRepository(pool), log)
	requestHandler := request.NewHandler(requestService)

	ratingService := rating.NewService(
		rating.NewPostgresRepository(pool),
		rating.NewRedisStatsCache(rdb),
		log,
	)
	ratingHandler := rating.NewHandler(ratingService)

	// Charges run against the stub provider until a processor account is
	// provisioned. Swapping providers is a one-line change here.
	chargeProvider := payment.NewStubProvider()

	paymentService := payment.NewService(payment.NewPostgresDonationRepository(pool), chargeProvider, log)
	paymentHandler := payment.NewHandler(paymentService)

	marketplaceService := marketplace.NewService(
		marketplace.NewPostgresProductRepository(pool),
		marketplace.NewPostgresOrderRepository(pool),
		chargeProvider,
		log,
	)
	marketplaceHandler := marketplace.NewHandler(marketplaceService)

	videoService := video.NewService(
		video.NewPostgresRepository(pool),
		video.NewPostgresVoteRepository(pool),
		video.NewRedisViewCounter(rdb),
		blobStore,
		log,
	)
	videoHandler := video.NewHandler(videoService)

	// ── 10. HTTP Server ───────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:    liveness,
		Readiness:   readiness,
		Auth:        authHandler,
		Account:     accountHandler,
		Project:     projectHandler,
		Request:     requestHandler,
		Rating:      ratingHandler,
		Marketplace: marketplaceHandler,
		Video:       videoHandler,
		Payment:     paymentHandler,
	}

	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, tokenCodec, subjectResolver, handlers)

	// ── 11. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
