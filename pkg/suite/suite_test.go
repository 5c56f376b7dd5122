package suite_test

import (
	"reflect"
	"strings"
	"testing"

	tverrors "github.com/tablevet/tablevet/pkg/errors"
	"github.com/tablevet/tablevet/pkg/rule"
	"github.com/tablevet/tablevet/pkg/suite"
)

func TestSuiteValidate(t *testing.T) {
	tests := []struct {
		name    string
		suite   suite.Suite
		wantErr string
	}{
		{
			name: "valid suite",
			suite: suite.Suite{
				Name: "player_stats",
				Rules: []rule.Rule{
					rule.ColumnExists("points"),
					rule.NotNull("points"),
				},
			},
		},
		{
			name:    "empty name",
			suite:   suite.Suite{Rules: []rule.Rule{rule.NotNull("a")}},
			wantErr: "name cannot be empty",
		},
		{
			name: "uppercase name",
			suite: suite.Suite{
				Name:  "PlayerStats",
				Rules: []rule.Rule{rule.NotNull("a")},
			},
			wantErr: "invalid suite name",
		},
		{
			name: "path traversal name",
			suite: suite.Suite{
				Name:  "../escape",
				Rules: []rule.Rule{rule.NotNull("a")},
			},
			wantErr: "invalid suite name",
		},
		{
			name:    "no rules",
			suite:   suite.Suite{Name: "empty"},
			wantErr: "has no rules",
		},
		{
			name: "invalid rule reports position",
			suite: suite.Suite{
				Name: "broken",
				Rules: []rule.Rule{
					rule.NotNull("a"),
					{Kind: rule.KindValuesBetween, Column: "b"},
				},
			},
			wantErr: `suite "broken" rule 1`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.suite.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want contains %q", err, tt.wantErr)
			}
			if !tverrors.IsCode(err, tverrors.ErrCodeInvalidInput) {
				t.Errorf("Validate() error code = %v, want INVALID_INPUT", tverrors.CodeOf(err))
			}
		})
	}
}

func TestSuiteColumns(t *testing.T) {
	s := suite.Suite{
		Name: "stats",
		Rules: []rule.Rule{
			rule.ColumnExists("points"),
			rule.ColumnExists("assists"),
			rule.NotNull("points"),
			rule.ValuesBetween("assists", 0, 30),
		},
	}

	got := s.Columns()
	want := []string{"points", "assists"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Columns() = %v, want %v", got, want)
	}
}

func TestSuiteClone(t *testing.T) {
	original := suite.Suite{
		Name: "stats",
		Rules: []rule.Rule{
			rule.ValuesBetween("points", 0, 100),
		},
	}
	original.Set("ValidationSuite")

	clone := original.Clone()

	// Mutating the clone must not touch the original.
	*clone.Rules[0].Max = 120
	clone.Metadata["extra"] = "added"
	clone.Rules = append(clone.Rules, rule.NotNull("points"))

	if *original.Rules[0].Max != 100 {
		t.Errorf("clone mutation changed original max to %v", *original.Rules[0].Max)
	}
	if _, exists := original.Metadata["extra"]; exists {
		t.Error("clone mutation changed original metadata")
	}
	if len(original.Rules) != 1 {
		t.Errorf("clone append changed original rule count to %d", len(original.Rules))
	}
}
