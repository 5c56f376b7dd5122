/*
Copyright © 2026 The Tablevet Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/tablevet/tablevet/pkg/report"
	"github.com/tablevet/tablevet/pkg/serializer"
	"github.com/tablevet/tablevet/pkg/store"
)

func TestReportCmd_CommandStructure(t *testing.T) {
	cmd := reportCmd()

	if cmd.Name != "report" {
		t.Errorf("Name = %v, want report", cmd.Name)
	}

	subNames := make(map[string]bool)
	for _, sub := range cmd.Commands {
		subNames[sub.Name] = true
	}
	for _, name := range []string{"list", "get"} {
		if !subNames[name] {
			t.Errorf("expected subcommand %q to be defined", name)
		}
	}

	getCmd := reportGetCmd()
	found := false
	for _, flag := range getCmd.Flags {
		if hasName(flag, "run-id") {
			found = true
			break
		}
	}
	if !found {
		t.Error("required flag \"run-id\" not found on report get")
	}
}

func TestReportListAndGet_EndToEnd(t *testing.T) {
	t.Setenv(store.EnvRoot, t.TempDir())
	dir := t.TempDir()
	ctx := context.Background()

	seedDemoSuite(t, dir)

	csvPath := filepath.Join(dir, "games.csv")
	writeTestFile(t, csvPath, demoGoodCSV)

	args := []string{"tablevet", "validate",
		"--suite", "nba_player_stats",
		"--data", csvPath,
		"--output", filepath.Join(dir, "run.yaml"),
	}
	if err := rootCmd().Run(ctx, args); err != nil {
		t.Fatalf("validate failed: %v", err)
	}

	listPath := filepath.Join(dir, "reports.yaml")
	args = []string{"tablevet", "report", "list",
		"--suite", "nba_player_stats",
		"--output", listPath,
	}
	if err := rootCmd().Run(ctx, args); err != nil {
		t.Fatalf("report list failed: %v", err)
	}

	listed, err := serializer.FromFile[[]*report.Report](listPath)
	if err != nil {
		t.Fatalf("failed to read report list: %v", err)
	}
	if len(*listed) != 1 {
		t.Fatalf("got %d reports, want 1", len(*listed))
	}
	runID := (*listed)[0].RunID
	if runID == "" {
		t.Fatal("listed report has no run ID")
	}

	getPath := filepath.Join(dir, "fetched.yaml")
	args = []string{"tablevet", "report", "get", "--run-id", runID, "--output", getPath}
	if err := rootCmd().Run(ctx, args); err != nil {
		t.Fatalf("report get failed: %v", err)
	}

	fetched, err := serializer.FromFile[report.Report](getPath)
	if err != nil {
		t.Fatalf("failed to read fetched report: %v", err)
	}
	if fetched.RunID != runID {
		t.Errorf("RunID = %v, want %v", fetched.RunID, runID)
	}
	if fetched.SuiteName != "nba_player_stats" {
		t.Errorf("SuiteName = %v, want nba_player_stats", fetched.SuiteName)
	}

	args = []string{"tablevet", "report", "get", "--run-id", "does-not-exist",
		"--output", filepath.Join(dir, "missing.yaml")}
	if err := rootCmd().Run(ctx, args); err == nil {
		t.Fatal("expected error for unknown run ID")
	}
}
