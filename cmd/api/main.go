// Copyright (c) 2026 MineVale. All rights reserved.
// Author: contato@minevale.com.br

// Command api is the entry point for the MineVale HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Initialize the token service and optional AMQP publisher.
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

	"github.com/prometheus/client_golang/prometheus"

	"github.com/minevale/api/internal/api"
	"github.com/minevale/api/internal/forum"
	"github.com/minevale/api/internal/news"
	"github.com/minevale/api/internal/platform/config"
	"github.com/minevale/api/internal/platform/constants"
	"github.com/minevale/api/internal/platform/metrics"
	"github.com/minevale/api/internal/platform/migration"
	pgstore "github.com/minevale/api/internal/platform/postgres"
	"github.com/minevale/api/internal/platform/queue"
	redisstore "github.com/minevale/api/internal/platform/redis"
	"github.com/minevale/api/internal/platform/sec"
	"github.com/minevale/api/internal/platform/viewcache"
	"github.com/minevale/api/internal/store/catalog"
	"github.com/minevale/api/internal/store/orders"
	"github.com/minevale/api/internal/support"
	"github.com/minevale/api/internal/users/auth"
	"github.com/minevale/api/internal/users/profile"
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

	log.Info("[MineVale] service_initializing")

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

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Token Service & Broker ─────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	// The broker is optional: without it, fulfillment falls back to manual
	// delivery and everything else keeps working.
	var publisher *queue.Publisher
	if cfg.AMQPURL != "" {
		publisher, err = queue.NewPublisher(cfg.AMQPURL, log)
		must(log, err, "connect to amqp broker")
		defer func() {
			log.Info("closing amqp publisher")
			publisher.Close()
		}()
	} else {
		log.Warn("amqp_disabled_no_url_configured")
	}

	// ── 7. Observability ──────────────────────────────────────────────────
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	views := viewcache.New(rdb, viewcache.DefaultTTL, log, collector)

	userRepository := auth.NewUserRepository(pool)
	sessionRepository := auth.NewSessionRepository(rdb)
	authService := auth.NewService(userRepository, sessionRepository, jwtSvc)
	sessionResolver := auth.NewResolver(jwtSvc, jwtSvc, cfg.IsProduction())
	authHandler := auth.NewHandler(authService, sessionResolver)

	profileRepository := profile.NewPostgresRepository(pool)
	profileService := profile.NewService(profileRepository, views)
	profileHandler := profile.NewHandler(profileService)

	catalogRepository := catalog.NewPostgresRepository(pool)
	catalogService := catalog.NewService(catalogRepository, profileService, views, catalog.DefaultPolicies())
	catalogHandler := catalog.NewHandler(catalogService, views)

	orderRepository := orders.NewPostgresRepository(pool)
	var orderEvents orders.EventPublisher
	if publisher != nil {
		orderEvents = publisher
	}
	orderService := orders.NewService(orderRepository, catalogService, profileService, views, orderEvents, orders.DefaultPolicies())
	orderHandler := orders.NewHandler(orderService)

	forumRepository := forum.NewPostgresRepository(pool)
	forumService := forum.NewService(forumRepository, profileService, views)
	forumHandler := forum.NewHandler(forumService, views)

	newsRepository := news.NewPostgresRepository(pool)
	newsService := news.NewService(newsRepository, profileService, views)
	newsHandler := news.NewHandler(newsService, views)

	supportRepository := support.NewPostgresRepository(pool)
	supportService := support.NewService(supportRepository, profileService)
	supportHandler := support.NewHandler(supportService)

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Metrics:   metrics.Handler(registry),
		Auth:      authHandler,
		Profile:   profileHandler,
		Catalog:   catalogHandler,
		Orders:    orderHandler,
		Forum:     forumHandler,
		News:      newsHandler,
		Support:   supportHandler,
	}

	gateDeps := api.GateDeps{
		Sessions:  sessionResolver,
		Refresher: sessionResolver,
		Redirects: collector,
	}

	shutdownCtx, shutdownCancel := context.WithCancel(context.Background())
	defer shutdownCancel()

	server := api.NewServer(shutdownCtx, cfg, log, jwtSvc, collector, gateDeps, handlers)

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
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	shutdownCancel()

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
