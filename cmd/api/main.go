// Copyright (c) 2026 Funtush. All rights reserved.

// Command api is the entry point for the Funtush HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables and .env.
//  3. Open the selected store (PostgreSQL with migrations, MongoDB or memory).
//  4. Connect to Redis for the distributed entity lock, when configured.
//  5. Wire services, handlers and the bootstrap admin.
//  6. Start HTTP server with graceful shutdown.
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

	"github.com/parthibdhar/Funtush-Server/internal/api"
	"github.com/parthibdhar/Funtush-Server/internal/catalog/category"
	"github.com/parthibdhar/Funtush-Server/internal/catalog/movie"
	"github.com/parthibdhar/Funtush-Server/internal/platform/blob"
	"github.com/parthibdhar/Funtush-Server/internal/platform/config"
	"github.com/parthibdhar/Funtush-Server/internal/platform/constants"
	"github.com/parthibdhar/Funtush-Server/internal/platform/lock"
	"github.com/parthibdhar/Funtush-Server/internal/platform/metrics"
	redisstore "github.com/parthibdhar/Funtush-Server/internal/platform/redis"
	"github.com/parthibdhar/Funtush-Server/internal/platform/sec"
	"github.com/parthibdhar/Funtush-Server/internal/upload"
	"github.com/parthibdhar/Funtush-Server/internal/users/account"
	"github.com/parthibdhar/Funtush-Server/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("store_driver", cfg.StoreDriver),
	)

	// Root context for background workers, cancelled on shutdown.
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	// Startup deadline so misconfiguration fails fast instead of hanging.
	startupCtx, startupCancel := context.WithTimeout(rootCtx, 30*time.Second)
	defer startupCancel()

	// ── 3. Store ──────────────────────────────────────────────────────────
	store, err := openStores(startupCtx, cfg, log)
	must(log, err, "open store")
	defer store.close(context.Background())

	checks := make([]api.HealthCheck, 0, 2)
	if store.check != nil {
		checks = append(checks, *store.check)
	}

	// ── 4. Entity Lock ────────────────────────────────────────────────────
	var locker lock.Locker
	if cfg.RedisURL != "" {
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing_redis_client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis_close_failed", slog.Any("error", cerr))
			}
		}()

		locker = lock.NewRedisLocker(rdb)
		checks = append(checks, api.HealthCheck{Name: "redis", Probe: func(ctx context.Context) error {
			return redisstore.Ping(ctx, rdb)
		}})
	} else {
		log.Warn("redis_not_configured", slog.String("hint", "entity locks are local to this process"))
		locker = lock.NewMemoryLocker(rootCtx)
	}

	// ── 5. Security ───────────────────────────────────────────────────────
	tokens, err := sec.NewTokenService(cfg.JWTSecret, constants.AuthIssuer, cfg.JWTTTL)
	must(log, err, "initialize token service")

	// ── 6. Blob Storage ───────────────────────────────────────────────────
	var uploader blob.Uploader = blob.Disabled{}
	if cfg.UploadsEnabled() {
		s3Uploader, err := blob.NewS3Uploader(startupCtx, blob.S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			PublicBaseURL:   cfg.S3PublicBaseURL,
		})
		must(log, err, "initialize blob storage")
		uploader = s3Uploader
	} else {
		log.Warn("uploads_disabled", slog.String("hint", "set S3_BUCKET to enable /api/v1/upload"))
	}

	// ── 7. Domain Wiring ──────────────────────────────────────────────────
	registry := metrics.New()

	movieService := movie.NewService(store.movies, locker, registry, movie.RatingBounds{
		Min: cfg.ReviewMinRating,
		Max: cfg.ReviewMaxRating,
	}, log)
	categoryService := category.NewService(store.categories, registry, log)
	authService := auth.NewService(store.users, tokens, registry, log)
	accountService := account.NewService(store.users, movieService, authService, locker, registry, log)
	uploadService := upload.NewService(uploader, registry, log)

	// ── 8. Bootstrap Admin ────────────────────────────────────────────────
	if cfg.AdminEmail != "" {
		must(log, authService.EnsureAdmin(startupCtx, cfg.AdminEmail, cfg.AdminPassword), "ensure admin account")
	}

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	liveness, readiness := api.NewHealthHandlers(checks, log)

	server := api.NewServer(rootCtx, cfg, log, registry,
		api.Security{Verifier: tokens, Loader: authService},
		api.Handlers{
			Liveness:  liveness,
			Readiness: readiness,
			Movie:     movie.NewHandler(movieService),
			Category:  category.NewHandler(categoryService),
			Auth:      auth.NewHandler(authService),
			Account:   account.NewHandler(accountService),
			Upload:    upload.NewHandler(uploadService),
		})

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
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
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	log.Info("shutting_down_server", slog.Duration("timeout", constants.ShutdownTimeout))
	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown_error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped_cleanly")
}

func newLogger(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("app", constants.AppName))
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned
// and handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
