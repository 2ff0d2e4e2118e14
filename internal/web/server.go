// Package web provides the read-only review server for the suite.
//
// The server exposes run history and CSV previews as a JSON API. It never
// runs the pipeline and never writes anything; it exists so flagged exports
// and past runs can be inspected without shell access to the machine that
// ran the validation.
package web

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/AnnikaStein/WAC-Survey-Suite/internal/audit"
	"github.com/AnnikaStein/WAC-Survey-Suite/internal/config"
)

// Server is the HTTP review server.
type Server struct {
	cfg    config.ServerConfig
	audit  *audit.Service // nil when no database is configured
	router *chi.Mux
	server *http.Server
}

// NewServer creates a new Server instance. auditSvc may be nil; history
// endpoints then answer 503.
func NewServer(cfg config.ServerConfig, auditSvc *audit.Service) *Server {
	s := &Server{
		cfg:    cfg,
		audit:  auditSvc,
		router: chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(middleware.Timeout(s.cfg.RequestTimeout))
	s.router.Use(securityHeaders)
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/runs", s.handleListRuns)
		r.Get("/runs/{runID}", s.handleGetRun)
		r.Get("/preview", s.handlePreview)
	})
}

// securityHeaders sets conservative response headers on every route.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "no-referrer")
		next.ServeHTTP(w, r)
	})
}

// Start begins listening on the configured address. Blocks until the server
// stops; http.ErrServerClosed is returned after a graceful Shutdown.
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

// Handler exposes the router, primarily for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}
