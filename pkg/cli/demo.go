/*
Copyright © 2026 The Tablevet Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tablevet/tablevet/pkg/renderer"
	"github.com/tablevet/tablevet/pkg/report"
	"github.com/tablevet/tablevet/pkg/suite"
)

const demoPresetName = "nba_player_stats"

// Sample data for the demo: one clean file and one seeded with violations
// (points out of range, a missing player name, a negative assist count and
// a run of bad dates with excessive minutes).
const (
	demoGoodCSV = `player_id,player_name,team,points,assists,rebounds,game_date,minutes_played
1,LeBron James,LAL,28,8,7,2024-03-15,36
2,Stephen Curry,GSW,31,6,5,2024-03-15,34
3,Nikola Jokic,DEN,26,12,11,2024-03-15,35
4,Jayson Tatum,BOS,30,5,8,2024-03-15,37
5,Luka Doncic,DAL,33,9,9,2024-03-15,38
`

	demoBadCSV = `player_id,player_name,team,points,assists,rebounds,game_date,minutes_played
6,James Harden,LAC,150,10,6,2024-03-15,36
7,,PHX,22,4,5,2024-03-15,33
8,Devin Booker,PHX,27,-2,4,2024-03-15,35
9,Anthony Davis,LAL,24,3,12,03/15/2024,55
`
)

func demoCmd() *cli.Command {
	return &cli.Command{
		Name:                  "demo",
		EnableShellCompletion: true,
		Usage:                 "Run an end-to-end demo on bundled sample data",
		Description: `Runs the whole tablevet workflow on bundled NBA player statistics:

  1. Writes a good and a bad sample CSV into the demo directory
  2. Creates the nba_player_stats suite from the embedded preset
  3. Validates both files and prints the console summaries
  4. Builds the data docs site and prints where to find it

The bad file is expected to fail validation; the demo still exits zero
because a completed run is a success regardless of the verdict.

# Examples

  tablevet demo
  tablevet demo --dir /tmp/tablevet-demo`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "dir",
				Value: "tablevet-demo",
				Usage: "Directory for the generated sample CSV files",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir := cmd.String("dir")
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("failed to create demo directory %q: %w", dir, err)
			}

			goodPath := filepath.Join(dir, "good_data.csv")
			badPath := filepath.Join(dir, "bad_data.csv")
			if err := os.WriteFile(goodPath, []byte(demoGoodCSV), 0o644); err != nil {
				return fmt.Errorf("failed to write %q: %w", goodPath, err)
			}
			if err := os.WriteFile(badPath, []byte(demoBadCSV), 0o644); err != nil {
				return fmt.Errorf("failed to write %q: %w", badPath, err)
			}

			eng, err := newEngine()
			if err != nil {
				return err
			}

			p, err := suite.Preset(ctx, demoPresetName)
			if err != nil {
				return err
			}
			if err := eng.CreateOrReplaceSuite(ctx, p); err != nil {
				return err
			}
			fmt.Printf("Suite %q created with %d rules\n\n", p.Name, len(p.Rules))

			console := renderer.NewConsoleRenderer()

			printDemoBanner("DEMO 1: Validating good data")
			goodRep, err := eng.Validate(ctx, p.Name, goodPath)
			if err != nil {
				return err
			}
			goodDoc, err := console.Render(ctx, goodRep)
			if err != nil {
				return err
			}
			fmt.Println(goodDoc.Text)

			printDemoBanner("DEMO 2: Validating bad data")
			badRep, err := eng.Validate(ctx, p.Name, badPath)
			if err != nil {
				return err
			}
			badDoc, err := console.Render(ctx, badRep)
			if err != nil {
				return err
			}
			fmt.Println(badDoc.Text)

			printDemoBanner("VALIDATION SUMMARY")
			fmt.Printf("Good data: %s\n", demoVerdict(goodRep))
			fmt.Printf("Bad data:  %s\n", demoVerdict(badRep))

			siteDoc, err := eng.BuildDataDocs(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("\nData docs built: %s\n", siteDoc.Summary())
			fmt.Printf("Open %s\n", filepath.Join(eng.DocsDir(), "index.html"))
			return nil
		},
	}
}

func printDemoBanner(title string) {
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println(title)
	fmt.Println(strings.Repeat("=", 60))
}

func demoVerdict(rep *report.Report) string {
	if rep.Success {
		return "PASSED"
	}
	return "FAILED"
}
