// Package httpapi exposes the retrieval engine over a JSON HTTP API.
//
// Routes are versioned under /api/v1; a plain /healthz endpoint serves
// liveness probes.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/custodia-labs/ansa-cli/internal/core/ports/driving"
)

// Default configuration values.
const (
	DefaultAddr            = ":8080"
	DefaultRequestTimeout  = 120 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
)

// Config holds configuration for the HTTP server.
type Config struct {
	// Addr is the listen address (default: ":8080").
	Addr string

	// Retrieval answers questions over the corpus. Required.
	Retrieval driving.RetrievalService

	// Session records feedback. Optional; without it the feedback
	// endpoint returns 503.
	Session driving.SessionService

	// RequestTimeout bounds request handling (default: 120s). Answer
	// generation dominates it.
	RequestTimeout time.Duration

	// Logger is used for request logging. Optional.
	Logger *zap.Logger
}

// Server serves the JSON HTTP API.
type Server struct {
	addr   string
	router chi.Router
	log    *zap.Logger
}

// NewServer creates an HTTP API server from config.
func NewServer(cfg Config) (*Server, error) {
	if cfg.Retrieval == nil {
		return nil, fmt.Errorf("retrieval service is required")
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	s := &Server{
		addr: cfg.Addr,
		log:  cfg.Logger,
	}

	h := &handler{
		retrieval: cfg.Retrieval,
		session:   cfg.Session,
		log:       cfg.Logger,
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(requestLogger(cfg.Logger))
	r.Use(chimiddleware.Timeout(cfg.RequestTimeout))

	r.Get("/healthz", h.healthz)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/ask", h.ask)
		r.Post("/retrieve", h.retrieve)
		r.Post("/rebuild", h.rebuild)
		r.Post("/feedback", h.feedback)
		r.Get("/status", h.status)
	})

	s.router = r
	return s, nil
}

// Handler returns the HTTP handler, for mounting or testing.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.log.Info("http api listening", zap.String("addr", s.addr))

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	}
}

// requestLogger logs one line per completed request.
func requestLogger(log *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			log.Info("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int64("duration_ms", time.Since(start).Milliseconds()),
				zap.String("request_id", chimiddleware.GetReqID(r.Context())),
			)
		})
	}
}
