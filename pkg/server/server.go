// Package server exposes the validation engine over HTTP: suite management,
// report retrieval, data-file validation uploads, and the operational
// endpoints (health, readiness, metrics).
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"sync"
	"syscall"

	"golang.org/x/time/rate"

	"github.com/tablevet/tablevet/pkg/engine"
	tverrors "github.com/tablevet/tablevet/pkg/errors"
)

var (
	name    = "tablevet-api-server"
	version = "dev"
)

// Option configures a Server.
type Option func(*Server)

// WithName sets the service name reported on the default route.
func WithName(n string) Option {
	return func(s *Server) {
		name = n
	}
}

// WithVersion sets the service version reported on the default route.
func WithVersion(v string) Option {
	return func(s *Server) {
		version = v
	}
}

// WithConfig replaces the default configuration.
func WithConfig(cfg *Config) Option {
	return func(s *Server) {
		if cfg != nil {
			s.cfg = cfg
		}
	}
}

// WithEngine sets the validation engine backing the API.
func WithEngine(e *engine.Engine) Option {
	return func(s *Server) {
		s.engine = e
	}
}

// WithHandler registers extra routes on top of the built-in ones.
func WithHandler(routes map[string]http.HandlerFunc) Option {
	return func(s *Server) {
		for path, h := range routes {
			s.extraRoutes[path] = h
		}
	}
}

// Server serves the v1 validation API.
type Server struct {
	cfg         *Config
	engine      *engine.Engine
	limiter     *rate.Limiter
	extraRoutes map[string]http.HandlerFunc

	httpSrv *http.Server

	mu    sync.RWMutex
	ready bool
}

// New builds a server from options. The engine defaults lazily in Run so
// that a bare New never touches the filesystem.
func New(opts ...Option) *Server {
	s := &Server{
		cfg:         DefaultConfig(),
		extraRoutes: make(map[string]http.HandlerFunc),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.limiter = rate.NewLimiter(s.cfg.RateLimit, s.cfg.RateLimitBurst)
	return s
}

func (s *Server) setReady(ready bool) {
	s.mu.Lock()
	s.ready = ready
	s.mu.Unlock()
}

// Run starts the HTTP server and blocks until ctx is cancelled, a
// SIGINT/SIGTERM arrives, or the listener fails. Shutdown is graceful
// within Config.ShutdownTimeout.
func (s *Server) Run(ctx context.Context) error {
	if s.engine == nil {
		eng, err := engine.New()
		if err != nil {
			return err
		}
		s.engine = eng
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	addr := fmt.Sprintf("%s:%d", s.cfg.Address, s.cfg.Port)
	s.httpSrv = &http.Server{
		Addr:         addr,
		Handler:      s.setupRoutes(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  s.cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "address", addr)
		err := s.httpSrv.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		errCh <- err
	}()
	s.setReady(true)

	select {
	case err := <-errCh:
		s.setReady(false)
		if err != nil {
			return tverrors.Wrap(tverrors.ErrCodeUnavailable, "server failed", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down", "timeout", s.cfg.ShutdownTimeout)
	s.setReady(false)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := s.httpSrv.Shutdown(shutdownCtx); err != nil {
		return tverrors.Wrap(tverrors.ErrCodeTimeout, "graceful shutdown failed", err)
	}
	<-errCh

	slog.Info("server stopped")
	return nil
}
