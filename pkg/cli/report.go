/*
Copyright © 2026 The Tablevet Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/tablevet/tablevet/pkg/report"
	"github.com/tablevet/tablevet/pkg/serializer"
)

func reportCmd() *cli.Command {
	return &cli.Command{
		Name:                  "report",
		EnableShellCompletion: true,
		Usage:                 "Inspect stored validation reports",
		Description: `Inspect the validation reports persisted by 'tablevet validate'. Reports
are immutable once written and are keyed by run ID.

# Examples

List every stored report:
  tablevet report list

List the reports of one suite as JSON:
  tablevet report list --suite player_stats --format json

Fetch a single report:
  tablevet report get --run-id 1d71f1c2-8c2b-4f6e-9c9d-2f6f1a4b5c6d`,
		Commands: []*cli.Command{
			reportListCmd(),
			reportGetCmd(),
		},
	}
}

func reportListCmd() *cli.Command {
	return &cli.Command{
		Name:                  "list",
		EnableShellCompletion: true,
		Usage:                 "List stored validation reports",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "suite",
				Aliases: []string{"s"},
				Usage:   "Only list reports produced by this suite",
			},
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			eng, err := newEngine()
			if err != nil {
				return err
			}

			reports, err := eng.Store().ListReports(ctx)
			if err != nil {
				return err
			}

			if suiteName := cmd.String("suite"); suiteName != "" {
				filtered := make([]*report.Report, 0, len(reports))
				for _, rep := range reports {
					if rep.SuiteName == suiteName {
						filtered = append(filtered, rep)
					}
				}
				reports = filtered
			}

			ser, err := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			if err != nil {
				return err
			}
			defer closeWriter(ser)

			return ser.Serialize(ctx, reports)
		},
	}
}

func reportGetCmd() *cli.Command {
	return &cli.Command{
		Name:                  "get",
		EnableShellCompletion: true,
		Usage:                 "Print a stored validation report",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "run-id",
				Aliases:  []string{"i"},
				Required: true,
				Usage:    "Run ID of the report to fetch",
			},
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			eng, err := newEngine()
			if err != nil {
				return err
			}

			rep, err := eng.Store().GetReport(ctx, cmd.String("run-id"))
			if err != nil {
				return err
			}

			ser, err := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			if err != nil {
				return err
			}
			defer closeWriter(ser)

			return ser.Serialize(ctx, rep)
		},
	}
}
