package api

import (
	"context"
	"log/slog"

	"github.com/tablevet/tablevet/pkg/engine"
	"github.com/tablevet/tablevet/pkg/logging"
	"github.com/tablevet/tablevet/pkg/server"
)

const (
	name           = "tablevet-api-server"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/tablevet/tablevet/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Serve starts the API server and blocks until shutdown.
// It configures logging, wires the validation engine, and handles graceful
// shutdown. Returns an error if the server fails to start or encounters a
// fatal error.
func Serve() error {
	ctx := context.Background()

	logging.SetDefaultStructuredLogger(name, version)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	eng, err := engine.New()
	if err != nil {
		slog.Error("engine initialization failed", "error", err)
		return err
	}

	s := server.New(
		server.WithName(name),
		server.WithVersion(version),
		server.WithEngine(eng),
	)

	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}
