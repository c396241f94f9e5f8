// Package server exposes the template pipeline over HTTP.
//
// Routes:
//
//	GET    /healthz
//	GET    /api/presets
//	POST   /api/fit
//	POST   /api/layout
//	POST   /api/render/{format}
//	GET    /api/templates
//	POST   /api/templates
//	GET    /api/templates/{id}
//	PUT    /api/templates/{id}
//	DELETE /api/templates/{id}
//	GET    /api/templates/{id}/render/{format}
//	POST   /api/templates/{id}/import
//	POST   /api/templates/{id}/generate
//	PUT    /api/templates/{id}/cells/{row}/{col}
//
// Request bodies that carry a template are JSON documents decoded over the
// defaults, so a client only sends the settings it changes. Errors are
// returned as {"code": ..., "message": ...} with a status derived from the
// error code.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/jappaper/pkg/pipeline"
	"github.com/matzehuels/jappaper/pkg/store"
)

// MaxBodyBytes caps request bodies.
const MaxBodyBytes = 4 << 20

// Server serves the HTTP API.
type Server struct {
	runner *pipeline.Runner
	store  store.Store
	logger *log.Logger
	router chi.Router
}

// New creates a server. runner and st are required.
func New(runner *pipeline.Runner, st store.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{runner: runner, store: st, logger: logger}
	s.router = s.routes()
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/presets", s.handlePresets)
		r.Post("/fit", s.handleFit)
		r.Post("/layout", s.handleLayout)
		r.Post("/render/{format}", s.handleRender)

		r.Route("/templates", func(r chi.Router) {
			r.Get("/", s.handleListTemplates)
			r.Post("/", s.handleCreateTemplate)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetTemplate)
				r.Put("/", s.handlePutTemplate)
				r.Delete("/", s.handleDeleteTemplate)
				r.Get("/render/{format}", s.handleRenderTemplate)
				r.Post("/import", s.handleImport)
				r.Post("/generate", s.handleGenerate)
				r.Put("/cells/{row}/{col}", s.handlePutCell)
			})
		})
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
