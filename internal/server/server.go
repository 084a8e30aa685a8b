// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server provides the HTTP presentation layer: a small JSON API
// that runs searches and serves the rendered reports as downloads. Date
// validation lives here; the search pipeline itself assumes a valid
// window.
package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/pdiddy/pkd-search/internal/search"
	"github.com/pdiddy/pkd-search/pkg/types"
)

// Searcher runs one literature search. It is the seam the handlers use so
// tests can substitute a canned pipeline.
type Searcher func(req search.Request) search.Output

// Server is the HTTP presentation layer.
type Server struct {
	router     chi.Router
	httpServer *http.Server
	searcher   Searcher
	logger     zerolog.Logger

	// mu guards the cached result of the most recent search, mirroring
	// the one-session model of the interactive UI. The core itself holds
	// no state between runs.
	mu   sync.Mutex
	last *lastRun
}

type lastRun struct {
	req search.Request
	out search.Output
}

// New creates a server that runs searches through searcher.
func New(cfg types.ServerConfig, searcher Searcher, logger zerolog.Logger) *Server {
	s := &Server{
		searcher: searcher,
		logger:   logger.With().Str("component", "http-server").Logger(),
	}
	s.router = s.buildRouter()
	s.httpServer = &http.Server{
		Addr:         cfg.Address,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealth)
	r.Post("/api/search", s.handleSearch)
	r.Get("/api/results", s.handleResults)
	r.Get("/api/report.xlsx", s.handleExcelReport)
	r.Get("/api/report.pdf", s.handlePDFReport)

	return r
}

// requestLogger logs one line per request with method, path, and duration.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

// ListenAndServe blocks serving HTTP until the listener fails.
func (s *Server) ListenAndServe() error {
	s.logger.Info().Str("address", s.httpServer.Addr).Msg("listening")
	return s.httpServer.ListenAndServe()
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler { return s.router }
