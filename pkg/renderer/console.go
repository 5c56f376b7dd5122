package renderer

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/tablevet/tablevet/pkg/report"
)

// ConsoleRenderer renders a report as a plain-text terminal summary.
type ConsoleRenderer struct {
	printer *message.Printer
}

// NewConsoleRenderer returns a ConsoleRenderer with English number grouping.
func NewConsoleRenderer() *ConsoleRenderer {
	return &ConsoleRenderer{
		printer: message.NewPrinter(language.English),
	}
}

// Render produces the console document for rep: the overall result, the
// summary counters and one block per failed rule with its violation counts
// and sample values.
func (r *ConsoleRenderer) Render(_ context.Context, rep *report.Report) (*Document, error) {
	if rep == nil {
		return nil, fmt.Errorf("report cannot be nil")
	}

	var b strings.Builder

	status := "PASSED"
	if !rep.Success {
		status = "FAILED"
	}

	fmt.Fprintf(&b, "Validation Result: %s\n", status)
	fmt.Fprintf(&b, "Suite: %s\n", rep.SuiteName)
	if rep.Source != "" {
		fmt.Fprintf(&b, "Source: %s\n", rep.Source)
	}
	if rep.RunID != "" {
		fmt.Fprintf(&b, "Run ID: %s\n", rep.RunID)
	}
	fmt.Fprintf(&b, "Rows: %s\n", r.printer.Sprintf("%d", rep.RowCount))
	fmt.Fprintf(&b, "Rules: %d total, %d passed, %d failed, %d errored\n",
		rep.Summary.Total, rep.Summary.Passed, rep.Summary.Failed, rep.Summary.Errored)

	if failed := rep.FailedOutcomes(); len(failed) > 0 {
		fmt.Fprintf(&b, "\nFailed Rules:\n")
		for _, out := range failed {
			fmt.Fprintf(&b, "\n%s on column %q\n", out.Rule.Kind, out.Rule.Column)
			if out.Errored {
				fmt.Fprintf(&b, "  error: %s\n", out.Message)
				continue
			}
			fmt.Fprintf(&b, "  rule: %s\n", out.Rule.Describe())
			fmt.Fprintf(&b, "  violations: %s of %s values (%.2f%%)\n",
				r.printer.Sprintf("%d", out.Violations),
				r.printer.Sprintf("%d", out.Observed),
				out.ViolationFraction*100)
			if len(out.Examples) > 0 {
				fmt.Fprintf(&b, "  samples: %s\n", strings.Join(out.Examples, ", "))
			}
		}
	}

	doc := NewDocument(KindConsole)
	doc.Text = b.String()
	doc.GeneratedAt = rep.EvaluatedAt
	doc.MarkSuccess()
	return doc, nil
}

var _ Renderer = (*ConsoleRenderer)(nil)
