// Copyright (c) 2026 MineVale. All rights reserved.
// Author: contato@minevale.com.br

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/minevale/api/internal/forum"
	"github.com/minevale/api/internal/news"
	"github.com/minevale/api/internal/platform/config"
	"github.com/minevale/api/internal/platform/constants"
	"github.com/minevale/api/internal/platform/gate"
	"github.com/minevale/api/internal/platform/middleware"
	"github.com/minevale/api/internal/store/catalog"
	"github.com/minevale/api/internal/store/orders"
	"github.com/minevale/api/internal/support"
	"github.com/minevale/api/internal/users/auth"
	"github.com/minevale/api/internal/users/profile"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Metrics is the Prometheus /metrics handler.
	Metrics http.Handler

	// Auth handles authentication routes (register, login, refresh, logout).
	Auth *auth.Handler

	// Profile handles the user table and role management.
	Profile *profile.Handler

	// Catalog handles storefront products.
	Catalog *catalog.Handler

	// Orders handles purchases and fulfillment.
	Orders *orders.Handler

	// Forum handles community threads and reports.
	Forum *forum.Handler

	// News handles server announcements.
	News *news.Handler

	// Support handles player tickets.
	Support *support.Handler
}

// GateDeps are the collaborators of the edge access gate.
type GateDeps struct {
	Sessions  gate.SessionResolver
	Refresher gate.SessionRefresher
	Redirects gate.RedirectRecorder
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, httpMetrics middleware.HTTPRecorder, gateDeps GateDeps, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(middleware.Metrics(httpMetrics))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// The edge gate runs after authentication so cookie-borne sessions are
	// refreshed on every pass, including plain page loads.
	r.Use(gate.Middleware(gateDeps.Sessions, gateDeps.Refresher, gateDeps.Redirects))

	// # Infrastructure Endpoints
	// Unauthenticated probes for container orchestration and scraping.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)
	r.Method(http.MethodGet, "/metrics", h.Metrics)

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes())
		api.Mount("/users", h.Profile.Routes())
		api.Mount("/store/products", h.Catalog.Routes())
		api.Mount("/store/orders", h.Orders.Routes())
		api.Mount("/forum/threads", h.Forum.Routes())
		api.Mount("/news", h.News.Routes())
		api.Mount("/support/tickets", h.Support.Routes())
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
