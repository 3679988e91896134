package api

import (
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/dgallion1/docsite/internal/config"
	"github.com/dgallion1/docsite/internal/doctree"
	"github.com/dgallion1/docsite/internal/pipeline"
	"github.com/dgallion1/docsite/internal/search"
	"github.com/dgallion1/docsite/internal/watch"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server serves the built site and the JSON APIs around it.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	engine       *search.Engine
	log          *slog.Logger
	cfg          config.Config

	// Set by the dev command. A nil events broker disables live reload.
	watcher *watch.Watcher
	events  *Broker

	headings atomic.Pointer[[]doctree.Heading]
}

// Option configures optional Server features.
type Option func(*Server)

// WithWatcher reports the watcher's counters under /api/stats/builds.
func WithWatcher(w *watch.Watcher) Option {
	return func(s *Server) { s.watcher = w }
}

// WithLiveReload enables /api/events and injects the reload snippet into
// served pages.
func WithLiveReload(b *Broker) Option {
	return func(s *Server) { s.events = b }
}

// NewServer creates and configures the HTTP server.
func NewServer(orch *pipeline.Orchestrator, engine *search.Engine, log *slog.Logger, cfg config.Config, opts ...Option) *Server {
	s := &Server{
		orchestrator: orch,
		engine:       engine,
		log:          log,
		cfg:          cfg,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// SetHeadings replaces the heading list served by /api/headings.
func (s *Server) SetHeadings(h []doctree.Heading) {
	h = append([]doctree.Heading{}, h...)
	s.headings.Store(&h)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/search", s.handleSearch)
		r.Get("/headings", s.handleHeadings)
		r.Get("/stats/builds", s.handleBuildStats)
		r.Post("/builds", s.handleSubmitBuild)
		r.Get("/builds/{jobID}", s.handleBuildStatus)
		r.Get("/events", s.handleEvents)
	})

	r.Get("/*", s.handleStatic)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
