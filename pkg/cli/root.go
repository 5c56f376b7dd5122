/*
Copyright © 2026 The Tablevet Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/tablevet/tablevet/pkg/logging"
	"github.com/tablevet/tablevet/pkg/store"
)

const appName = "tablevet"

// Build-time version metadata, overridden via ldflags,
// e.g., -X "github.com/tablevet/tablevet/pkg/cli.version=1.0.0".
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func rootCmd() *cli.Command {
	return &cli.Command{
		Name:                  appName,
		Usage:                 "Validate CSV data files against named rule suites",
		Version:               fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "root",
				Usage: "Tablevet root directory holding suites, reports and data docs (default: $TABLEVET_ROOT or ~/.tablevet)",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
			&cli.BoolFlag{
				Name:  "log-json",
				Usage: "Output logs in JSON format",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if root := cmd.String("root"); root != "" {
				os.Setenv(store.EnvRoot, root)
			}
			if cmd.Bool("debug") {
				os.Setenv(logging.EnvLogLevel, "debug")
			}
			if cmd.Bool("log-json") {
				logging.SetDefaultStructuredLogger(appName, version)
			} else {
				logging.SetDefaultTextLogger(os.Getenv(logging.EnvLogLevel))
			}
			return ctx, nil
		},
		Commands: []*cli.Command{
			suiteCmd(),
			validateCmd(),
			reportCmd(),
			docsCmd(),
			demoCmd(),
			serveCmd(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			commandLister(ctx, cmd)
			return nil
		},
	}
}

// commandLister prints the visible commands. It is the root action when no
// subcommand is given.
func commandLister(_ context.Context, cmd *cli.Command) {
	if cmd == nil {
		return
	}
	fmt.Printf("%s - %s\n\nCommands:\n", cmd.Name, cmd.Usage)
	for _, sub := range cmd.Commands {
		if sub.Hidden {
			continue
		}
		fmt.Printf("  %-10s %s\n", sub.Name, sub.Usage)
	}
	fmt.Printf("\nRun '%s <command> --help' for details on a command.\n", cmd.Name)
}

// Execute runs the tablevet CLI and exits the process. A completed
// validation run exits zero even when rules fail; only infrastructure and
// usage errors produce a non-zero exit.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().Run(ctx, os.Args); err != nil {
		slog.Error("command failed", "error", err)
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
