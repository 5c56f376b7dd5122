package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	tverrors "github.com/tablevet/tablevet/pkg/errors"
)

type contextKey string

const contextKeyRequestID contextKey = "request_id"

// withMiddleware wraps an API handler with the standard chain: request ID,
// request logging, rate limiting, API version negotiation.
func (s *Server) withMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return s.withRequestID(s.withLogging(s.withRateLimit(s.withAPIVersion(next))))
}

func (s *Server) withRequestID(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		w.Header().Set("X-Request-ID", requestID)

		ctx := context.WithValue(r.Context(), contextKeyRequestID, requestID)
		next(w, r.WithContext(ctx))
	}
}

// statusRecorder captures the status code a handler writes.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

func (s *Server) withLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next(rec, r)

		requestID, _ := r.Context().Value(contextKeyRequestID).(string)
		slog.Info("request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", requestID,
			"remote_addr", r.RemoteAddr,
		)
	}
}

func (s *Server) withRateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			WriteError(w, r, http.StatusTooManyRequests, tverrors.ErrCodeRateLimitExceeded,
				"rate limit exceeded, retry later", true, nil)
			return
		}
		next(w, r)
	}
}

func (s *Server) withAPIVersion(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-API-Version", negotiateAPIVersion(r))
		next(w, r)
	}
}
