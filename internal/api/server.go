// Copyright (c) 2026 Funtush. All rights reserved.

/*
Package api wires the HTTP router, the middleware chain and every domain
handler into a runnable [http.Server].

Architecture:

  - This package is the topmost presentation boundary.
  - It is the composition root of the chi router.
  - Only this package and cmd/api start net/http servers.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/parthibdhar/Funtush-Server/internal/catalog/category"
	"github.com/parthibdhar/Funtush-Server/internal/catalog/movie"
	"github.com/parthibdhar/Funtush-Server/internal/platform/config"
	"github.com/parthibdhar/Funtush-Server/internal/platform/constants"
	"github.com/parthibdhar/Funtush-Server/internal/platform/metrics"
	"github.com/parthibdhar/Funtush-Server/internal/platform/middleware"
	"github.com/parthibdhar/Funtush-Server/internal/upload"
	"github.com/parthibdhar/Funtush-Server/internal/users/account"
	"github.com/parthibdhar/Funtush-Server/internal/users/auth"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups the HTTP handler sets of every domain.
type Handlers struct {
	// Liveness is the /health handler; 200 while the process runs.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler; 200 when every store answers.
	Readiness http.HandlerFunc

	Movie    *movie.Handler
	Category *category.Handler
	Auth     *auth.Handler
	Account  *account.Handler
	Upload   *upload.Handler
}

// Security holds the token verifier and the stored identity loader.
type Security struct {
	Verifier middleware.TokenVerifier
	Loader   middleware.IdentityLoader
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(ctx context.Context, cfg *config.Config, log *slog.Logger, registry *metrics.Registry, security Security, h Handlers) *Server {
	r := NewRouter(ctx, cfg, log, registry, security, h)

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

// NewRouter builds the routing tree on its own so tests can drive it with httptest.
func NewRouter(ctx context.Context, cfg *config.Config, log *slog.Logger, registry *metrics.Registry, security Security, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(middleware.Metrics(registry))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.NewRateLimiter(ctx, constants.DefaultRateLimitRPS, constants.DefaultRateLimitBurst).Handler)
	r.Use(middleware.PanicRecovery())
	r.Use(middleware.CORS(cfg))
	r.Use(middleware.Authenticate(security.Verifier, security.Loader))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated probes for container orchestration and scraping.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)
	r.Handle("/metrics", registry.Handler())

	// # Application API
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/movies", h.Movie.Routes())
		api.Mount("/categories", h.Category.Routes())
		api.Mount("/upload", h.Upload.Routes())

		// Registration, login and account endpoints share one prefix.
		api.Route("/users", func(users chi.Router) {
			h.Auth.Mount(users)
			h.Account.Mount(users)
		})
	})

	return r
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
