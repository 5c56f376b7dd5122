/*
Copyright © 2026 The Tablevet Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/tablevet/tablevet/pkg/store"
)

func TestDemoCmd_CommandStructure(t *testing.T) {
	cmd := demoCmd()

	if cmd.Name != "demo" {
		t.Errorf("Name = %v, want demo", cmd.Name)
	}
	if cmd.Description == "" {
		t.Error("Description should not be empty")
	}

	found := false
	for _, flag := range cmd.Flags {
		if hasName(flag, "dir") {
			found = true
			break
		}
	}
	if !found {
		t.Error("required flag \"dir\" not found")
	}
}

func TestDemoCmd_EndToEnd(t *testing.T) {
	root := t.TempDir()
	t.Setenv(store.EnvRoot, root)
	demoDir := filepath.Join(t.TempDir(), "demo")
	ctx := context.Background()

	args := []string{"tablevet", "demo", "--dir", demoDir}
	if err := rootCmd().Run(ctx, args); err != nil {
		t.Fatalf("demo failed: %v", err)
	}

	for _, name := range []string{"good_data.csv", "bad_data.csv"} {
		if _, err := os.Stat(filepath.Join(demoDir, name)); err != nil {
			t.Errorf("expected sample file %s: %v", name, err)
		}
	}

	fs, err := store.NewFilesystemStore(root)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}

	sut, err := fs.GetSuite(ctx, "nba_player_stats")
	if err != nil {
		t.Fatalf("expected the preset suite to be stored: %v", err)
	}
	if len(sut.Rules) == 0 {
		t.Error("stored suite has no rules")
	}

	reports, err := fs.ListReports(ctx)
	if err != nil {
		t.Fatalf("failed to list reports: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("got %d reports, want 2", len(reports))
	}

	verdicts := map[bool]int{}
	for _, rep := range reports {
		verdicts[rep.Success]++
	}
	if verdicts[true] != 1 || verdicts[false] != 1 {
		t.Errorf("want one passed and one failed run, got %d passed / %d failed",
			verdicts[true], verdicts[false])
	}

	indexPath := filepath.Join(root, "data_docs", "index.html")
	if _, err := os.Stat(indexPath); err != nil {
		t.Errorf("expected site index at %s: %v", indexPath, err)
	}
}
