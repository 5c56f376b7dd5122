/*
Copyright © 2026 The Tablevet Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package cli implements the command-line interface for the tablevet tool.
//
// # Overview
//
// The tablevet CLI provides commands for the data validation workflow:
// defining rule suites, running them against CSV files, inspecting the
// resulting reports, and building and publishing the data docs site. It is
// designed for data engineers guarding tabular data hand-offs.
//
// # Commands
//
// suite - Manage validation suites (Step 1):
//
//	tablevet suite create --name player_stats --rules rules.yaml
//	tablevet suite create --preset nba_player_stats --set points:max=120
//	tablevet suite list
//	tablevet suite get --name player_stats
//	tablevet suite delete --name player_stats
//	tablevet suite presets
//
// A suite is a named, ordered list of declarative rules (column presence,
// type, null checks, numeric ranges, regex patterns). Suites are stored
// under the tablevet root and replaced atomically on re-create.
//
// validate - Run a suite against CSV data (Step 2):
//
//	tablevet validate --suite player_stats --data games.csv
//	tablevet validate -s player_stats -d jan.csv -d feb.csv --docs
//	tablevet validate -s player_stats -d - < games.csv
//	tablevet validate -s player_stats -d https://example.com/games.csv -o report.yaml
//
// Evaluates every rule in the suite against the referenced CSV files in a
// single pass per file and prints a per-run console summary. Multiple
// --data references run in parallel. The full report is persisted for
// later inspection and can additionally be serialized with --output.
//
// report - Inspect stored validation reports (Step 3):
//
//	tablevet report list
//	tablevet report list --suite player_stats
//	tablevet report get --run-id 1d71f1c2-8c2b-4f6e-9c9d-2f6f1a4b5c6d
//
// docs - Build and publish the data docs site (Step 4):
//
//	tablevet docs build
//	tablevet docs publish --output ./public
//	tablevet docs publish --output oci://ghcr.io/acme/data-docs:v1.0.0
//
// Renders a static HTML site (index plus one page per run) from the stored
// reports. The site can be exported to a directory or packaged as an OCI
// artifact and pushed to a registry.
//
// demo - End-to-end walkthrough on bundled sample data:
//
//	tablevet demo
//	tablevet demo --dir /tmp/tablevet-demo
//
// serve - Run the HTTP API server:
//
//	tablevet serve
//
// # Global Flags
//
//	--output, -o   Output file path (default: stdout)
//	--format, -t   Output format: yaml, json, table (default: yaml)
//	--root         Tablevet root directory (default: $TABLEVET_ROOT or ~/.tablevet)
//	--debug        Enable debug logging
//	--log-json     Output logs in JSON format
//	--help, -h     Show command help
//	--version, -v  Show version information
//
// # Output Formats
//
// YAML (default):
//   - Human-readable, preserves structure
//   - Suitable for version control
//
// JSON:
//   - Machine-parseable, compact
//   - Suitable for programmatic consumption
//
// Table:
//   - Hierarchical text representation
//   - Suitable for terminal viewing
//
// # Usage Examples
//
// Complete workflow:
//
//	tablevet suite create --preset nba_player_stats
//	tablevet validate --suite nba_player_stats --data games.csv
//	tablevet report list --suite nba_player_stats
//	tablevet docs build
//
// Tighten a preset rule before creating the suite:
//
//	tablevet suite create --preset nba_player_stats --set minutes_played:max=53
//
// Validate several files and publish the refreshed site:
//
//	tablevet validate -s nba_player_stats -d jan.csv -d feb.csv -d mar.csv
//	tablevet docs publish --output oci://localhost:5000/acme/data-docs:latest --plain-http
//
// # Environment Variables
//
//	TABLEVET_ROOT   Root directory for suites, reports and the data docs
//	                site (default: ~/.tablevet)
//	LOG_LEVEL       Set logging verbosity (debug, info, warn, error)
//	PORT            Listen port for tablevet serve (default: 8080)
//
// # Exit Codes
//
//	0  Success, including completed validation runs whose rules failed
//	1  General error (invalid arguments, execution failure)
//	2  Context canceled or timeout
//
// A failed validation is a successful program run: the report is the
// product. Pipelines that want to gate on the verdict inspect the report's
// success field rather than the exit code.
//
// # Architecture
//
// The CLI uses the urfave/cli/v3 framework and delegates to specialized
// packages:
//   - pkg/suite - Suite assembly, presets and rule overrides
//   - pkg/engine - Validation orchestration, persistence and data docs
//   - pkg/evaluator - Single-pass rule evaluation over row sources
//   - pkg/renderer - Console summaries and the static HTML site
//   - pkg/oci - OCI packaging and registry push
//   - pkg/serializer - Output formatting
//   - pkg/logging - Structured logging
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/tablevet/tablevet/pkg/cli.version=1.0.0'"
package cli
