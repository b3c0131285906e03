// Package server implements the planforge HTTP API.
//
// The API exposes the same pipeline as the CLI:
//
//	GET  /healthz
//	GET  /api/v1/standards            country list
//	GET  /api/v1/standards/{country}  minimum room sizes (DEFAULT fallback)
//	GET  /api/v1/buildings            building type catalogue
//	POST /api/v1/blueprints           generate + lay out {buildingType, country}
//	POST /api/v1/layout               lay out a spec
//	POST /api/v1/validate             validate a spec as placed
//	POST /api/v1/render               render a spec (?format=&scale=&x=&y=)
//	GET  /metrics                     prometheus
//
// Generation requests carrying the same X-Session-ID header share a
// coordinator: a newer request cancels the pending one, which answers 409.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/planforge/pkg/pipeline"
)

const (
	// maxBodyBytes bounds request bodies.
	maxBodyBytes = 4 << 20

	// shutdownTimeout bounds graceful shutdown.
	shutdownTimeout = 10 * time.Second
)

// Server serves the HTTP API.
type Server struct {
	runner   *pipeline.Runner
	logger   *log.Logger
	metrics  *Metrics
	sessions *sessions
	router   chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithMetrics exposes m at /metrics. Without it a private registry is used.
func WithMetrics(m *Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// WithMaxSessions bounds the number of idle session coordinators kept.
func WithMaxSessions(n int) Option {
	return func(s *Server) { s.sessions.max = n }
}

// New returns a server running requests through runner.
func New(runner *pipeline.Runner, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner:   runner,
		logger:   logger,
		sessions: newSessions(runner.Generator, defaultMaxSessions),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = NewMetrics()
	}
	s.router = s.routes()
	return s
}

// Metrics returns the server's metrics, for registration as hooks.
func (s *Server) Metrics() *Metrics { return s.metrics }

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Handle("/metrics", s.metrics.Handler())

	// Route-level middleware runs after matching, so the pattern is known.
	r.Group(func(r chi.Router) {
		r.Use(s.instrument)
		r.Get("/healthz", s.handleHealth)
		r.Get("/api/v1/standards", s.handleCountries)
		r.Get("/api/v1/standards/{country}", s.handleStandard)
		r.Get("/api/v1/buildings", s.handleBuildings)
		r.Post("/api/v1/blueprints", s.handleGenerate)
		r.Post("/api/v1/layout", s.handleLayout)
		r.Post("/api/v1/validate", s.handleValidate)
		r.Post("/api/v1/render", s.handleRender)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, errNotFound(r.URL.Path))
	})
	return r
}

// ListenAndServe serves on addr until ctx ends, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
