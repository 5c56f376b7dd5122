package report

import (
	"testing"

	"github.com/tablevet/tablevet/pkg/rule"
)

func TestNew(t *testing.T) {
	r := New("nba_player_stats")

	if r == nil {
		t.Fatal("New() returned nil")
		return
	}

	if r.SuiteName != "nba_player_stats" {
		t.Errorf("SuiteName = %q, want nba_player_stats", r.SuiteName)
	}
	if r.Kind != "ValidationReport" {
		t.Errorf("Kind = %q, want ValidationReport", r.Kind)
	}
	if r.APIVersion != "validationreport.tablevet.io/v1" {
		t.Errorf("APIVersion = %q, want validationreport.tablevet.io/v1", r.APIVersion)
	}
	if r.Outcomes == nil {
		t.Error("Outcomes should be initialized")
	}
	if r.Success {
		t.Error("Success should be false initially")
	}
}

func TestReport_Append(t *testing.T) {
	r := New("stats")

	r.Append(RuleOutcome{Rule: rule.NotNull("a"), Success: true})
	r.Append(RuleOutcome{Rule: rule.NotNull("b"), Success: false, Violations: 3})
	r.Append(RuleOutcome{Rule: rule.NotNull("c"), Errored: true, Message: "column missing"})

	if len(r.Outcomes) != 3 {
		t.Errorf("len(Outcomes) = %d, want 3", len(r.Outcomes))
	}
	if r.Summary.Passed != 1 {
		t.Errorf("Passed = %d, want 1", r.Summary.Passed)
	}
	if r.Summary.Failed != 1 {
		t.Errorf("Failed = %d, want 1", r.Summary.Failed)
	}
	if r.Summary.Errored != 1 {
		t.Errorf("Errored = %d, want 1", r.Summary.Errored)
	}
}

func TestReport_Finalize(t *testing.T) {
	tests := []struct {
		name        string
		outcomes    []RuleOutcome
		wantSuccess bool
		wantStatus  Status
	}{
		{
			name: "all passed",
			outcomes: []RuleOutcome{
				{Success: true},
				{Success: true},
			},
			wantSuccess: true,
			wantStatus:  StatusPass,
		},
		{
			name: "one failed",
			outcomes: []RuleOutcome{
				{Success: true},
				{Success: false},
			},
			wantSuccess: false,
			wantStatus:  StatusFail,
		},
		{
			name: "errored counts as failure",
			outcomes: []RuleOutcome{
				{Success: true},
				{Errored: true},
			},
			wantSuccess: false,
			wantStatus:  StatusFail,
		},
		{
			name:        "no outcomes",
			outcomes:    nil,
			wantSuccess: true,
			wantStatus:  StatusPass,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New("stats")
			for _, o := range tt.outcomes {
				r.Append(o)
			}
			r.Finalize()

			if r.Success != tt.wantSuccess {
				t.Errorf("Success = %v, want %v", r.Success, tt.wantSuccess)
			}
			if r.Summary.Status != tt.wantStatus {
				t.Errorf("Status = %v, want %v", r.Summary.Status, tt.wantStatus)
			}
			if r.Summary.Total != len(tt.outcomes) {
				t.Errorf("Total = %d, want %d", r.Summary.Total, len(tt.outcomes))
			}
		})
	}
}

func TestReport_SuccessMatchesOutcomes(t *testing.T) {
	r := New("stats")
	r.Append(RuleOutcome{Success: true})
	r.Append(RuleOutcome{Success: false})
	r.Append(RuleOutcome{Success: true})
	r.Finalize()

	all := true
	for _, o := range r.Outcomes {
		all = all && o.Success
	}
	if r.Success != all {
		t.Errorf("Success = %v, want AND over outcomes = %v", r.Success, all)
	}
}

func TestReport_FailedOutcomes(t *testing.T) {
	r := New("stats")
	r.Append(RuleOutcome{Rule: rule.NotNull("a"), Success: true})
	r.Append(RuleOutcome{Rule: rule.NotNull("b"), Success: false})
	r.Append(RuleOutcome{Rule: rule.NotNull("c"), Errored: true})

	failed := r.FailedOutcomes()
	if len(failed) != 2 {
		t.Fatalf("len(FailedOutcomes()) = %d, want 2", len(failed))
	}
	if failed[0].Rule.Column != "b" || failed[1].Rule.Column != "c" {
		t.Errorf("failed outcomes out of order: %q, %q", failed[0].Rule.Column, failed[1].Rule.Column)
	}
}
