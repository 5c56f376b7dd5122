/*
Copyright © 2026 The Tablevet Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tablevet/tablevet/pkg/renderer"
	"github.com/tablevet/tablevet/pkg/report"
	"github.com/tablevet/tablevet/pkg/serializer"
)

func validateCmd() *cli.Command {
	return &cli.Command{
		Name:                  "validate",
		EnableShellCompletion: true,
		Usage:                 "Run a validation suite against one or more CSV files",
		Description: `Runs a stored validation suite against CSV data and prints a console
summary per file. Every rule in the suite is evaluated against every file
in a single pass; the full report is persisted under the tablevet root for
'tablevet report' and the data docs site.

A completed run exits zero even when rules fail: the report is the product.
Only infrastructure errors (unknown suite, unreadable file) are fatal.

# Data References

The --data flag accepts a file path, '-' for stdin, or an HTTP(S) URL, and
can be repeated. Multiple references are validated in parallel.

# Examples

Validate a local file:
  tablevet validate --suite player_stats --data games.csv

Validate several files and rebuild the data docs site:
  tablevet validate -s player_stats -d jan.csv -d feb.csv --docs

Validate stdin and keep the structured report:
  cat games.csv | tablevet validate -s player_stats -d - -o report.yaml

Validate a remote file:
  tablevet validate -s player_stats -d https://example.com/games.csv`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "suite",
				Aliases:  []string{"s"},
				Required: true,
				Usage:    "Name of the stored suite to run",
			},
			&cli.StringSliceFlag{
				Name:     "data",
				Aliases:  []string{"d"},
				Required: true,
				Usage:    "CSV data reference: file path, '-' for stdin or HTTP(S) URL (can be repeated)",
			},
			&cli.BoolFlag{
				Name:  "docs",
				Usage: "Rebuild the data docs site after the runs",
			},
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			suiteName := cmd.String("suite")
			dataRefs := cmd.StringSlice("data")

			eng, err := newEngine()
			if err != nil {
				return err
			}

			slog.Info("starting validation", "suite", suiteName, "refs", len(dataRefs))

			results := eng.ValidateAll(ctx, suiteName, dataRefs)

			console := renderer.NewConsoleRenderer()
			reports := make([]*report.Report, 0, len(results))
			var failedRefs []string
			for _, res := range results {
				if res.Err != nil {
					slog.Error("validation run failed", "data", res.DataRef, "error", res.Err)
					failedRefs = append(failedRefs, res.DataRef)
					continue
				}
				reports = append(reports, res.Report)

				doc, err := console.Render(ctx, res.Report)
				if err != nil {
					return err
				}
				fmt.Println(doc.Text)
			}

			if cmd.String("output") != "" && len(reports) > 0 {
				ser, err := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
				if err != nil {
					return err
				}
				defer closeWriter(ser)

				// A single run serializes as one report document so the
				// output round-trips through 'tablevet report get'.
				if len(reports) == 1 {
					err = ser.Serialize(ctx, reports[0])
				} else {
					err = ser.Serialize(ctx, reports)
				}
				if err != nil {
					return err
				}
			}

			if cmd.Bool("docs") {
				if _, err := eng.BuildDataDocs(ctx); err != nil {
					return err
				}
				fmt.Printf("Data docs: %s\n", filepath.Join(eng.DocsDir(), "index.html"))
			}

			if len(failedRefs) > 0 {
				return fmt.Errorf("%d of %d validation runs did not complete: %s",
					len(failedRefs), len(results), strings.Join(failedRefs, ", "))
			}
			return nil
		},
	}
}
