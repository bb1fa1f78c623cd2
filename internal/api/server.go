// Package api implements the HTTP validation API.
//
// The API is a thin JSON surface over the core library: callers POST
// declared relations and get back either a validation summary or the
// offending cycle. Rendering is limited to the textual formats (text, dot);
// SVG generation stays a CLI concern.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server wraps the HTTP server and its dependencies.
type Server struct {
	logger *log.Logger
	srv    *http.Server
}

// New creates a server listening on addr.
func New(addr string, logger *log.Logger) *Server {
	s := &Server{logger: logger}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/validate", s.handleValidate)
		r.Post("/render", s.handleRender)
	})

	s.srv = &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}
	return s
}

// Handler returns the server's HTTP handler, used directly in tests.
func (s *Server) Handler() http.Handler { return s.srv.Handler }

// Run starts the server and blocks until ctx is cancelled or the listener
// fails. Shutdown waits up to 10 seconds for in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.srv.Addr)
		errCh <- s.srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return s.srv.Shutdown(shutdownCtx)
	}
}
