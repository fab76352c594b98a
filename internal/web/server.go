// Package web serves the dashboard over HTTP: an HTML table plus a JSON API,
// both backed by the same fetch-or-fallback resolver.
package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/jcabot/uml-tools-dashboard/internal/config"
	"github.com/jcabot/uml-tools-dashboard/internal/usecase"
)

//go:embed templates
var templateFiles embed.FS

// Source resolves one dashboard load. *usecase.Resolver satisfies it.
type Source interface {
	Resolve(ctx context.Context, query string) (*usecase.Result, error)
}

// Server is the HTTP server for the dashboard.
type Server struct {
	source    Source
	cfg       config.Config
	router    *chi.Mux
	templates *template.Template
	now       func() time.Time
}

// NewServer creates a new Server instance.
func NewServer(source Source, cfg config.Config) (*Server, error) {
	templates, err := template.ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		return nil, err
	}
	s := &Server{
		source:    source,
		cfg:       cfg,
		router:    chi.NewRouter(),
		templates: templates,
		now:       time.Now,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(60 * time.Second))
}

func (s *Server) setupRoutes() {
	s.router.Get("/", s.handleDashboard)
	s.router.Get("/healthz", s.handleHealth)
	s.router.Route("/api", func(r chi.Router) {
		r.Get("/repos", s.handleRepos)
		r.Get("/analysis", s.handleAnalysis)
		r.Get("/stats", s.handleStats)
	})
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.router }

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:         s.cfg.Server.Addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("dashboard listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		slog.Info("shutting down dashboard")
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// searchQuery builds the live query for this request's point in time.
func (s *Server) searchQuery() string {
	return usecase.SearchQuery(
		s.cfg.Search.Query,
		s.cfg.Search.MinStars,
		s.cfg.Search.ActivityWindow.Std(),
		s.now(),
	)
}
