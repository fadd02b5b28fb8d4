// Package server implements the schedcore HTTP API: a chi router exposing
// schedule computation and run retrieval over the scheduling core and the
// store, in the teacher codebase's envelope idiom.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/kjorgen/schedcore/internal/config"
	"github.com/kjorgen/schedcore/internal/store"
)

// Server is the schedcore REST API server.
type Server struct {
	router    chi.Router
	logger    *slog.Logger
	config    config.Config
	startTime time.Time
	store     store.Store
}

// New creates a new Server with all routes registered.
func New(cfg config.Config, st store.Store, logger *slog.Logger) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		logger:    logger.With("component", "server"),
		config:    cfg,
		startTime: time.Now(),
		store:     st,
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Handler returns the http.Handler for this server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() {
	r := s.router

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(s.logger))

	r.Get("/healthz", s.handleHealth)

	r.Route("/schedules", func(r chi.Router) {
		r.Post("/", s.handleCreateSchedule)
		r.Get("/", s.handleListSchedules)
		r.Get("/{id}", s.handleGetSchedule)
	})
}
