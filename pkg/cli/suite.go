/*
Copyright © 2026 The Tablevet Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/tablevet/tablevet/pkg/serializer"
	"github.com/tablevet/tablevet/pkg/suite"
)

func suiteCmd() *cli.Command {
	return &cli.Command{
		Name:                  "suite",
		EnableShellCompletion: true,
		Usage:                 "Manage validation suites",
		Description: `Manage named validation suites. A suite is an ordered list of declarative
rules evaluated against a CSV file: column presence, column type, null
checks, numeric ranges and regex patterns.

Suites are stored under the tablevet root ($TABLEVET_ROOT, default
~/.tablevet) and replaced atomically when re-created under the same name.`,
		Commands: []*cli.Command{
			suiteCreateCmd(),
			suiteListCmd(),
			suiteGetCmd(),
			suiteDeleteCmd(),
			suitePresetsCmd(),
		},
	}
}

func suiteCreateCmd() *cli.Command {
	return &cli.Command{
		Name:                  "create",
		EnableShellCompletion: true,
		Usage:                 "Create or replace a validation suite",
		Description: `Creates a validation suite from a rules document or an embedded preset and
stores it under the tablevet root. Re-creating an existing name replaces the
suite in full.

# Rules Document

The --rules value is a path or HTTP(S) URL to a YAML or JSON suite document:

  kind: ValidationSuite
  apiVersion: validationsuite.tablevet.io/v1
  name: player_stats
  rules:
    - kind: not_null
      column: player_name
    - kind: values_between
      column: points
      min: 0
      max: 100

Only the rules (and, when --name is omitted, the name) are read from the
document; the header is restamped on save.

# Examples

Create from a rules file:
  tablevet suite create --name player_stats --rules rules.yaml

Create from an embedded preset:
  tablevet suite create --preset nba_player_stats

Copy a preset under a new name with a loosened range:
  tablevet suite create --name wnba_player_stats \
    --preset nba_player_stats --set minutes_played:max=40`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "name",
				Aliases: []string{"n"},
				Usage:   "Suite name (defaults to the name carried by --rules or --preset)",
			},
			&cli.StringFlag{
				Name:    "rules",
				Aliases: []string{"r"},
				Usage:   "Path or HTTP(S) URL of a suite document to take the rules from",
			},
			&cli.StringFlag{
				Name:    "preset",
				Aliases: []string{"p"},
				Usage:   "Embedded preset to start from (see 'tablevet suite presets')",
			},
			&cli.StringSliceFlag{
				Name:  "set",
				Usage: "Override rule parameters (format: column:param=value, e.g., --set points:max=120)",
			},
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			overrides, err := suite.ParseRuleOverrides(cmd.StringSlice("set"))
			if err != nil {
				return fmt.Errorf("invalid --set flag: %w", err)
			}

			name := cmd.String("name")
			rulesPath := cmd.String("rules")
			presetName := cmd.String("preset")

			b := suite.NewBuilder(suite.WithVersion(version))

			var s *suite.Suite
			switch {
			case rulesPath != "" && presetName != "":
				return fmt.Errorf("--rules and --preset are mutually exclusive")
			case rulesPath != "":
				doc, err := serializer.FromFile[suite.Suite](rulesPath)
				if err != nil {
					slog.Error("failed to load rules document", "error", err, "path", rulesPath)
					return err
				}
				if name == "" {
					name = doc.Name
				}
				s, err = b.Build(ctx, name, doc.Rules)
				if err != nil {
					return err
				}
				if len(overrides) > 0 {
					if err := suite.ApplyOverrides(s, overrides); err != nil {
						return err
					}
					if err := s.Validate(); err != nil {
						return err
					}
				}
			case presetName != "":
				var err error
				s, err = b.BuildPreset(ctx, presetName, overrides)
				if err != nil {
					return err
				}
				// Renaming a preset copy rebuilds under the new name.
				if name != "" && name != s.Name {
					s, err = b.Build(ctx, name, s.Rules)
					if err != nil {
						return err
					}
				}
			default:
				return fmt.Errorf("one of --rules or --preset is required")
			}

			eng, err := newEngine()
			if err != nil {
				return err
			}
			if err := eng.CreateOrReplaceSuite(ctx, s); err != nil {
				return err
			}

			ser, err := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			if err != nil {
				return err
			}
			defer closeWriter(ser)

			return ser.Serialize(ctx, s)
		},
	}
}

func suiteListCmd() *cli.Command {
	return &cli.Command{
		Name:                  "list",
		EnableShellCompletion: true,
		Usage:                 "List stored validation suites",
		Flags:                 []cli.Flag{outputFlag, formatFlag},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			eng, err := newEngine()
			if err != nil {
				return err
			}

			suites, err := eng.Store().ListSuites(ctx)
			if err != nil {
				return err
			}

			ser, err := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			if err != nil {
				return err
			}
			defer closeWriter(ser)

			return ser.Serialize(ctx, suites)
		},
	}
}

func suiteGetCmd() *cli.Command {
	return &cli.Command{
		Name:                  "get",
		EnableShellCompletion: true,
		Usage:                 "Print a stored validation suite",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "name",
				Aliases:  []string{"n"},
				Required: true,
				Usage:    "Name of the suite to fetch",
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

			s, err := eng.Store().GetSuite(ctx, cmd.String("name"))
			if err != nil {
				return err
			}

			ser, err := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			if err != nil {
				return err
			}
			defer closeWriter(ser)

			return ser.Serialize(ctx, s)
		},
	}
}

func suiteDeleteCmd() *cli.Command {
	return &cli.Command{
		Name:                  "delete",
		EnableShellCompletion: true,
		Usage:                 "Delete a stored validation suite",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "name",
				Aliases:  []string{"n"},
				Required: true,
				Usage:    "Name of the suite to delete",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			eng, err := newEngine()
			if err != nil {
				return err
			}

			name := cmd.String("name")
			if err := eng.Store().DeleteSuite(ctx, name); err != nil {
				return err
			}

			fmt.Printf("Suite %q deleted\n", name)
			return nil
		},
	}
}

func suitePresetsCmd() *cli.Command {
	return &cli.Command{
		Name:                  "presets",
		EnableShellCompletion: true,
		Usage:                 "List the embedded preset suites",
		Action: func(ctx context.Context, _ *cli.Command) error {
			names, err := suite.PresetNames(ctx)
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		},
	}
}
