/*
Copyright © 2026 The Tablevet Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tablevet/tablevet/pkg/rule"
	"github.com/tablevet/tablevet/pkg/serializer"
	"github.com/tablevet/tablevet/pkg/store"
	"github.com/tablevet/tablevet/pkg/suite"
)

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestSuiteCmd_CommandStructure(t *testing.T) {
	cmd := suiteCmd()

	if cmd.Name != "suite" {
		t.Errorf("Name = %v, want suite", cmd.Name)
	}
	if cmd.Usage == "" {
		t.Error("Usage should not be empty")
	}

	subNames := make(map[string]bool)
	for _, sub := range cmd.Commands {
		subNames[sub.Name] = true
	}
	for _, name := range []string{"create", "list", "get", "delete", "presets"} {
		if !subNames[name] {
			t.Errorf("expected subcommand %q to be defined", name)
		}
	}
}

func TestSuiteCreateCmd_CommandStructure(t *testing.T) {
	cmd := suiteCreateCmd()

	if cmd.Name != "create" {
		t.Errorf("Name = %v, want create", cmd.Name)
	}
	if cmd.Description == "" {
		t.Error("Description should not be empty")
	}

	requiredFlags := []string{"name", "rules", "preset", "set", "output", "format"}
	for _, flagName := range requiredFlags {
		found := false
		for _, flag := range cmd.Flags {
			if hasName(flag, flagName) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("required flag %q not found", flagName)
		}
	}

	if cmd.Action == nil {
		t.Error("Action should not be nil")
	}
}

func TestSuiteCreate_FlagValidation(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		errMsg string
	}{
		{
			name:   "rules and preset together",
			args:   []string{"tablevet", "suite", "create", "--rules", "x.yaml", "--preset", "nba_player_stats"},
			errMsg: "mutually exclusive",
		},
		{
			name:   "neither rules nor preset",
			args:   []string{"tablevet", "suite", "create", "--name", "player_stats"},
			errMsg: "one of --rules or --preset",
		},
		{
			name:   "malformed set flag",
			args:   []string{"tablevet", "suite", "create", "--preset", "nba_player_stats", "--set", "points-max-120"},
			errMsg: "invalid --set flag",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(store.EnvRoot, t.TempDir())

			err := rootCmd().Run(context.Background(), tt.args)
			if err == nil {
				t.Fatal("expected error but got nil")
			}
			if !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("error = %v, want error containing %q", err, tt.errMsg)
			}
		})
	}
}

func TestSuiteLifecycle_EndToEnd(t *testing.T) {
	t.Setenv(store.EnvRoot, t.TempDir())
	outDir := t.TempDir()
	ctx := context.Background()

	suitePath := filepath.Join(outDir, "suite.yaml")
	args := []string{"tablevet", "suite", "create",
		"--preset", "nba_player_stats",
		"--set", "points:max=120",
		"--output", suitePath,
	}
	if err := rootCmd().Run(ctx, args); err != nil {
		t.Fatalf("suite create failed: %v", err)
	}

	created, err := serializer.FromFile[suite.Suite](suitePath)
	if err != nil {
		t.Fatalf("failed to read created suite: %v", err)
	}
	if created.Name != "nba_player_stats" {
		t.Errorf("Name = %v, want nba_player_stats", created.Name)
	}

	var pointsMax *float64
	for _, r := range created.Rules {
		if r.Kind == rule.KindValuesBetween && r.Column == "points" {
			pointsMax = r.Max
		}
	}
	if pointsMax == nil || *pointsMax != 120 {
		t.Errorf("points max = %v, want 120", pointsMax)
	}

	getPath := filepath.Join(outDir, "fetched.yaml")
	args = []string{"tablevet", "suite", "get", "--name", "nba_player_stats", "--output", getPath}
	if err := rootCmd().Run(ctx, args); err != nil {
		t.Fatalf("suite get failed: %v", err)
	}

	fetched, err := serializer.FromFile[suite.Suite](getPath)
	if err != nil {
		t.Fatalf("failed to read fetched suite: %v", err)
	}
	if len(fetched.Rules) != len(created.Rules) {
		t.Errorf("fetched %d rules, want %d", len(fetched.Rules), len(created.Rules))
	}

	args = []string{"tablevet", "suite", "delete", "--name", "nba_player_stats"}
	if err := rootCmd().Run(ctx, args); err != nil {
		t.Fatalf("suite delete failed: %v", err)
	}

	args = []string{"tablevet", "suite", "get", "--name", "nba_player_stats",
		"--output", filepath.Join(outDir, "gone.yaml")}
	if err := rootCmd().Run(ctx, args); err == nil {
		t.Fatal("expected error fetching deleted suite")
	}
}

func TestSuiteCreate_FromRulesFile(t *testing.T) {
	t.Setenv(store.EnvRoot, t.TempDir())
	dir := t.TempDir()
	ctx := context.Background()

	rulesDoc := `kind: ValidationSuite
apiVersion: validationsuite.tablevet.io/v1
name: player_stats
rules:
  - kind: not_null
    column: player_name
  - kind: values_between
    column: points
    min: 0
    max: 100
`
	rulesPath := filepath.Join(dir, "rules.yaml")
	writeTestFile(t, rulesPath, rulesDoc)

	outPath := filepath.Join(dir, "created.yaml")
	args := []string{"tablevet", "suite", "create", "--rules", rulesPath, "--output", outPath}
	if err := rootCmd().Run(ctx, args); err != nil {
		t.Fatalf("suite create failed: %v", err)
	}

	created, err := serializer.FromFile[suite.Suite](outPath)
	if err != nil {
		t.Fatalf("failed to read created suite: %v", err)
	}
	if created.Name != "player_stats" {
		t.Errorf("Name = %v, want player_stats (taken from the rules document)", created.Name)
	}
	if len(created.Rules) != 2 {
		t.Errorf("got %d rules, want 2", len(created.Rules))
	}
}

func TestSuiteCreate_RootFlag(t *testing.T) {
	t.Setenv(store.EnvRoot, t.TempDir())
	root := t.TempDir()
	outDir := t.TempDir()
	ctx := context.Background()

	args := []string{"tablevet", "--root", root, "suite", "create",
		"--preset", "nba_player_stats",
		"--output", filepath.Join(outDir, "suite.yaml")}
	if err := rootCmd().Run(ctx, args); err != nil {
		t.Fatalf("suite create failed: %v", err)
	}

	suitePath := filepath.Join(root, "suites", "nba_player_stats.yaml")
	if _, err := os.Stat(suitePath); err != nil {
		t.Errorf("expected suite stored under --root: %v", err)
	}
}
