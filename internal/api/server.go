// Package api exposes cutlist generation and the update commands over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/piwi3910/slabcut/internal/logging"
	"github.com/piwi3910/slabcut/internal/metrics"
	"github.com/piwi3910/slabcut/internal/model"
)

// maxBodyBytes bounds the size of a scene document in a request.
const maxBodyBytes = 32 << 20

// Server is the HTTP API server. Every request carries its own scene
// document; the server keeps no scene between requests.
type Server struct {
	router   chi.Router
	settings model.Settings
	library  model.MaterialLibrary
	presets  []model.Preset
	log      *zap.Logger
	metrics  *metrics.Recorder

	// mu serializes generations and commands.
	mu sync.Mutex
}

// Options configures a Server.
type Options struct {
	Settings *model.Settings       // defaults for requests without settings, nil for DefaultSettings
	Library  model.MaterialLibrary // applied to every scene before generation
	Presets  []model.Preset
	Logger   *zap.Logger
	Metrics  *metrics.Recorder
}

// NewServer creates and configures the HTTP server.
func NewServer(opts Options) *Server {
	settings := model.DefaultSettings()
	if opts.Settings != nil {
		settings = *opts.Settings
		if settings.PartOrderStrategy == "" {
			settings.PartOrderStrategy = model.DefaultPartOrderStrategy
		}
	}
	if opts.Presets == nil {
		opts.Presets = model.BuiltInPresets()
	}
	if opts.Library.Materials == nil {
		opts.Library = model.NewMaterialLibrary()
	}
	s := &Server{
		settings: settings,
		library:  opts.Library,
		presets:  opts.Presets,
		log:      logging.OrNop(opts.Logger),
		metrics:  opts.Metrics,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log, s.metrics))

	r.Get("/health", s.handleHealth)
	if s.metrics != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.metrics.Registry(), promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/cutlist", s.handleCutlist)
		r.Post("/parts/update", s.handlePartUpdate)
		r.Post("/groups/update", s.handleGroupUpdate)
		r.Get("/presets", s.handlePresets)
		r.Get("/materials", s.handleMaterials)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("starting slabcut server", zap.String("addr", addr))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
