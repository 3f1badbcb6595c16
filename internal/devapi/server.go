// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package devapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"github.com/taibuivan/shopfront/internal/platform/constants"
	"github.com/taibuivan/shopfront/internal/platform/middleware"
	"github.com/taibuivan/shopfront/internal/platform/sec"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	service    *Service
	log        *slog.Logger
}

// # Server Initialization

/*
New builds the in-memory backend: store, token service, use cases, router.

The demo account is seeded when [Options.Seed] is set. Background sweepers
stop when ctx is cancelled.

Parameters:
  - addr: Listen address, e.g. ":8000"
  - secret: HS256 signing secret
*/
func New(ctx context.Context, addr, secret string, options Options, log *slog.Logger) (*Server, error) {
	tokens, err := sec.NewTokenService(secret, constants.AuthIssuer)
	if err != nil {
		return nil, fmt.Errorf("devapi: %w", err)
	}

	store := NewStore()
	service := NewService(ctx, store, tokens, options, log)

	if options.Seed {
		if err := service.Seed(ctx, DemoName, DemoPhone, DemoPassword); err != nil {
			return nil, fmt.Errorf("devapi: seed demo account: %w", err)
		}
		log.Info("demo_account_seeded", slog.String("phone", DemoPhone))
	}

	liveness, readiness := NewHealthHandlers([]Check{
		{Name: "store", Probe: store.ping},
	}, log)

	router := chi.NewRouter()

	// # Middleware Chain
	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogger(log))
	router.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	router.Use(middleware.RateLimit(middleware.NewLimiter(ctx, rate.Limit(constants.DefaultRateLimitRPS), constants.DefaultRateLimitBurst)))
	router.Use(middleware.PanicRecovery())
	router.Use(middleware.Authenticate(service))
	router.Use(middleware.CORS(func(string) bool { return true }))
	router.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	router.Get("/health", liveness)
	router.Get("/ready", readiness)

	// # Application API
	router.Route("/api/v1", func(api chi.Router) {
		api.Mount("/store", NewHandler(service, options.FlatEnvelope).Routes())
	})

	return &Server{
		router:  router,
		service: service,
		log:     log,
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}, nil
}

// Handler exposes the router, e.g. for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
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
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
