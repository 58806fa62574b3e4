package server

import (
	"net/http"
	"strconv"
	"time"

	"intake-api/internal/common/logger"
	"intake-api/internal/common/metrics"
	"intake-api/internal/common/observability"

	"github.com/google/uuid"
)

type middleware struct {
	obs    *observability.Observability
	logger logger.Logger
}

func newMiddleware(obs *observability.Observability, log logger.Logger) *middleware {
	return &middleware{obs: obs, logger: log}
}

// statusRecorder captures the status code written by the handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(status int) {
	sr.status = status
	sr.ResponseWriter.WriteHeader(status)
}

// RequestID stamps every request with a correlation id.
func (m *middleware) RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-Id")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		w.Header().Set("X-Request-Id", requestID)
		next.ServeHTTP(w, r)
	})
}

// Logging writes one structured line per request.
func (m *middleware) Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		m.logger.Info("request handled", map[string]interface{}{
			"method":    r.Method,
			"path":      r.URL.Path,
			"status":    rec.status,
			"duration":  time.Since(start).String(),
			"requestId": w.Header().Get("X-Request-Id"),
		})
	})
}

// Metrics records request counts and durations for both pipelines.
func (m *middleware) Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		elapsed := time.Since(start)
		statusLabel := strconv.Itoa(rec.status)

		metrics.IntakeRequestsTotal.WithLabelValues(r.URL.Path, statusLabel).Inc()
		metrics.IntakeRequestDuration.WithLabelValues(r.URL.Path).Observe(elapsed.Seconds())
		if m.obs != nil {
			m.obs.RecordRequest(r.Context(), r.URL.Path, statusLabel)
			m.obs.RecordRequestDuration(r.Context(), r.URL.Path, elapsed)
		}
	})
}

// Recover turns handler panics into a 500 instead of tearing down the server.
func (m *middleware) Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				m.logger.Error("handler panic", map[string]interface{}{
					"path":  r.URL.Path,
					"panic": rec,
				})
				w.WriteHeader(http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
