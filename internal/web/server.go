// Package web provides the HTTP service surface of the ingestion
// application: a health check, an endpoint to trigger an ingestion run,
// and the result of the most recent run.
package web

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mbtahub/gtfs-ingest/internal/config"
)

// Server is the HTTP server for the ingestion service.
type Server struct {
	service Service
	cfg     config.ServerConfig
	router  *chi.Mux
	server  *http.Server
}

// Service is the ingestion surface the handlers call into.
type Service interface {
	// StartRun begins an ingestion run in the background. It fails when
	// a run is already in flight.
	StartRun(ctx context.Context) (string, error)
	// LatestRun reports the most recent run, or false when none has
	// run yet.
	LatestRun() (RunStatus, bool)
}

// NewServer creates a new Server instance.
func NewServer(service Service, cfg config.ServerConfig) *Server {
	s := &Server{
		service: service,
		cfg:     cfg,
		router:  chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/ingest", s.handleIngest)
		r.Get("/runs/latest", s.handleLatestRun)
	})
}

// Start begins listening for HTTP requests. It blocks until the server
// stops.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.cfg.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  s.cfg.IdleTimeout,
	}
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}
