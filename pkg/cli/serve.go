/*
Copyright © 2026 The Tablevet Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/tablevet/tablevet/pkg/api"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:                  "serve",
		EnableShellCompletion: true,
		Usage:                 "Run the tablevet HTTP API server",
		Description: `Runs the HTTP API server exposing the validation workflow over REST:

  GET/POST   /v1/suites           List suites, create a suite
  GET/PUT/DELETE /v1/suites/{name}
  POST       /v1/validations      Validate an uploaded CSV against a suite
  GET        /v1/reports          List reports (?suite= filters)
  GET        /v1/reports/{runId}
  GET        /health, /ready      Probes
  GET        /metrics             Prometheus metrics

The server uses the same store as the CLI, so suites created here are
visible to 'tablevet validate' and vice versa. It stops gracefully on
SIGINT/SIGTERM.

# Examples

  tablevet serve
  PORT=9090 tablevet serve
  LOG_LEVEL=debug tablevet serve`,
		Action: func(_ context.Context, _ *cli.Command) error {
			return api.Serve()
		},
	}
}
