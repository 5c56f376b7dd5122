// Package report defines the outcome documents produced by evaluation runs.
package report

import (
	"time"

	"github.com/tablevet/tablevet/pkg/header"
	"github.com/tablevet/tablevet/pkg/rule"
)

// Status is the overall result of a validation run.
type Status string

const (
	// StatusPass means every rule outcome succeeded.
	StatusPass Status = "pass"
	// StatusFail means at least one rule failed or could not be evaluated.
	StatusFail Status = "fail"
)

// RuleOutcome is the result of evaluating one rule. Outcomes appear in the
// report in suite declaration order.
type RuleOutcome struct {
	// Rule is the rule that was evaluated, echoed back in full so reports
	// are self-contained.
	Rule rule.Rule `json:"rule" yaml:"rule"`

	// Success is true when the rule held within its threshold.
	Success bool `json:"success" yaml:"success"`

	// Errored is true when the rule could not be evaluated at all, e.g.
	// its column is missing from the input. Errored implies !Success.
	Errored bool `json:"errored,omitempty" yaml:"errored,omitempty"`

	// Message carries failure or error detail for humans.
	Message string `json:"message,omitempty" yaml:"message,omitempty"`

	// Observed is the number of values the rule inspected (non-null values
	// for row-level rules, 0 for schema-level rules).
	Observed int64 `json:"observed" yaml:"observed"`

	// Violations is the number of inspected values that broke the rule.
	Violations int64 `json:"violations" yaml:"violations"`

	// ViolationFraction is Violations/Observed, 0 when nothing was observed.
	ViolationFraction float64 `json:"violationFraction" yaml:"violationFraction"`

	// Examples holds up to the first few violating values, as raw cell text.
	Examples []string `json:"examples,omitempty" yaml:"examples,omitempty"`
}

// Summary aggregates outcome counts for a run.
type Summary struct {
	Passed  int    `json:"passed" yaml:"passed"`
	Failed  int    `json:"failed" yaml:"failed"`
	Errored int    `json:"errored" yaml:"errored"`
	Total   int    `json:"total" yaml:"total"`
	Status  Status `json:"status" yaml:"status"`
}

// Report is the persisted result of evaluating one suite against one input.
type Report struct {
	header.Header `json:",inline" yaml:",inline"`

	// SuiteName names the evaluated suite.
	SuiteName string `json:"suiteName" yaml:"suiteName"`

	// RunID uniquely identifies this run; reports are stored under it.
	RunID string `json:"runID,omitempty" yaml:"runID,omitempty"`

	// Source is the location reference of the evaluated input.
	Source string `json:"source,omitempty" yaml:"source,omitempty"`

	// RowCount is the number of data rows the evaluator consumed.
	RowCount int64 `json:"rowCount" yaml:"rowCount"`

	// EvaluatedAt is when the run happened, UTC.
	EvaluatedAt time.Time `json:"evaluatedAt" yaml:"evaluatedAt"`

	// Success is the logical AND over all outcomes.
	Success bool `json:"success" yaml:"success"`

	Summary  Summary       `json:"summary" yaml:"summary"`
	Outcomes []RuleOutcome `json:"outcomes" yaml:"outcomes"`
}

// New creates a report for the named suite with its resource header stamped.
func New(suiteName string) *Report {
	r := &Report{
		SuiteName: suiteName,
		Outcomes:  make([]RuleOutcome, 0),
	}
	r.Set(header.KindValidationReport)
	return r
}

// Append records one outcome and updates the running summary counts.
func (r *Report) Append(outcome RuleOutcome) {
	r.Outcomes = append(r.Outcomes, outcome)

	switch {
	case outcome.Errored:
		r.Summary.Errored++
	case outcome.Success:
		r.Summary.Passed++
	default:
		r.Summary.Failed++
	}
}

// Finalize computes the overall result from the appended outcomes. Errored
// outcomes count against success the same way failed ones do.
func (r *Report) Finalize() {
	r.Summary.Total = len(r.Outcomes)
	r.Success = r.Summary.Failed == 0 && r.Summary.Errored == 0

	if r.Success {
		r.Summary.Status = StatusPass
	} else {
		r.Summary.Status = StatusFail
	}
}

// FailedOutcomes returns the outcomes that did not succeed, in report order.
func (r *Report) FailedOutcomes() []RuleOutcome {
	failed := make([]RuleOutcome, 0)
	for _, o := range r.Outcomes {
		if !o.Success {
			failed = append(failed, o)
		}
	}
	return failed
}

// Clone returns a deep copy so stored reports cannot be mutated through
// previously returned pointers.
func (r *Report) Clone() *Report {
	clone := *r

	if len(r.Metadata) > 0 {
		clone.Metadata = make(map[string]string, len(r.Metadata))
		for k, v := range r.Metadata {
			clone.Metadata[k] = v
		}
	}

	clone.Outcomes = make([]RuleOutcome, len(r.Outcomes))
	for i, o := range r.Outcomes {
		cloned := o
		cloned.Rule = o.Rule.Clone()
		if len(o.Examples) > 0 {
			cloned.Examples = make([]string, len(o.Examples))
			copy(cloned.Examples, o.Examples)
		}
		clone.Outcomes[i] = cloned
	}

	return &clone
}
