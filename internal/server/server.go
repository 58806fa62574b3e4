// Package server assembles the chi router, middleware, and the HTTP server
// lifecycle for the intake API.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"intake-api/internal/common/config"
	"intake-api/internal/common/logger"
	"intake-api/internal/common/observability"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers are the two intake endpoints mounted on the router.
type Handlers struct {
	Submit http.HandlerFunc
	Status http.HandlerFunc
}

type Server struct {
	httpServer *http.Server
	logger     logger.Logger
	shutdown   time.Duration
}

func New(cfg config.ServerConfig, handlers Handlers, obs *observability.Observability, log logger.Logger) *Server {
	r := chi.NewRouter()

	mw := newMiddleware(obs, log)
	r.Use(mw.RequestID)
	r.Use(mw.Logging)
	r.Use(mw.Metrics)
	r.Use(mw.Recover)

	r.Post("/api/submit", handlers.Submit)
	r.Get("/api/status", handlers.Status)
	r.Post("/api/status", handlers.Status)

	// Wrong-method requests still reach the handlers so callers get the
	// endpoint's own 405 body rather than chi's default
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		switch req.URL.Path {
		case "/api/submit":
			handlers.Submit(w, req)
		case "/api/status":
			handlers.Status(w, req)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})

	r.Get("/health", healthHandler("healthy"))
	r.Get("/ready", healthHandler("ready"))
	r.Handle("/metrics", promhttp.Handler())

	return &Server{
		httpServer: &http.Server{
			Addr:         cfg.Addr(),
			Handler:      r,
			ReadTimeout:  config.GetDuration(cfg.ReadTimeout),
			WriteTimeout: config.GetDuration(cfg.WriteTimeout),
		},
		logger:   log,
		shutdown: config.GetDuration(cfg.ShutdownTimeout),
	}
}

func healthHandler(status string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"status": status,
			"time":   time.Now().Format(time.RFC3339),
		})
	}
}

// Run serves until the listener fails or Stop is called.
func (s *Server) Run() error {
	s.logger.Info("HTTP server listening", map[string]interface{}{
		"addr": s.httpServer.Addr,
	})
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop drains in-flight requests within the configured shutdown timeout.
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.shutdown)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}

// Router exposes the assembled handler for tests.
func (s *Server) Router() http.Handler {
	return s.httpServer.Handler
}
