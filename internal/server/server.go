// Package server wires the chi router, middleware chain and HTTP handlers
// that expose the admin API under /api/v1.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/bedolaga/remnawave-admin-bff/pkg/auth"
	"github.com/bedolaga/remnawave-admin-bff/pkg/logging"
	"github.com/bedolaga/remnawave-admin-bff/pkg/metrics"
	"github.com/bedolaga/remnawave-admin-bff/pkg/services"
)

const shutdownTimeout = 10 * time.Second

// Deps carries everything the server needs. All fields are required except
// AllowedOrigins.
type Deps struct {
	Auth           *auth.Manager
	Users          *services.UsersService
	Subscriptions  *services.SubscriptionsService
	Tokens         *services.TokensService
	Stats          *services.StatsService
	Health         *services.HealthService
	AllowedOrigins []string
}

// Server is the admin API HTTP server.
type Server struct {
	router chi.Router
	deps   Deps
	logger zerolog.Logger
}

// New builds the router and middleware chain.
func New(deps Deps) *Server {
	s := &Server{
		deps:   deps,
		logger: logging.NewLogger("server"),
	}

	r := chi.NewRouter()
	r.Use(RequestIDMiddleware)
	r.Use(AuditMiddleware(s.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(CORSMiddleware(deps.AllowedOrigins))

	r.Handle("/metrics", metrics.Handler())

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(AuthMiddleware(deps.Auth))

		api.Get("/health", s.handleHealth)
		api.Get("/stats/overview", s.handleStatsOverview)

		api.Route("/users", func(r chi.Router) {
			r.Get("/", s.handleUsersList)
			r.Get("/{id}", s.handleUsersGet)
			r.Patch("/{id}", s.handleUsersUpdate)
		})

		api.Route("/subscriptions", func(r chi.Router) {
			r.Get("/", s.handleSubscriptionsList)
			r.Get("/{id}", s.handleSubscriptionsGet)
			r.Patch("/{id}", s.handleSubscriptionsUpdate)
		})

		api.Route("/tokens", func(r chi.Router) {
			r.Get("/", s.handleTokensList)
			r.Post("/", s.handleTokensCreate)
			r.Post("/{id}/revoke", s.handleTokensRevoke)
		})
	})

	s.router = r
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: s.router,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
