/*
Copyright © 2026 The Tablevet Authors
SPDX-License-Identifier: Apache-2.0
*/

package evaluator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"k8s.io/utils/clock"

	tverrors "github.com/tablevet/tablevet/pkg/errors"
	"github.com/tablevet/tablevet/pkg/report"
	"github.com/tablevet/tablevet/pkg/rowsource"
	"github.com/tablevet/tablevet/pkg/rule"
	"github.com/tablevet/tablevet/pkg/suite"
)

// DefaultMaxExamples bounds how many violating values each outcome records.
const DefaultMaxExamples = 5

// Evaluator runs suites against row sources in a single streaming pass.
type Evaluator struct {
	// MaxExamples caps the violating values captured per rule outcome.
	MaxExamples int

	// Clock stamps EvaluatedAt; injectable for deterministic tests.
	Clock clock.PassiveClock
}

// Option is a functional option for configuring Evaluator instances.
type Option func(*Evaluator)

// WithMaxExamples returns an Option that caps per-rule violation examples.
func WithMaxExamples(n int) Option {
	return func(e *Evaluator) {
		e.MaxExamples = n
	}
}

// WithClock returns an Option that sets the evaluation timestamp source.
func WithClock(c clock.PassiveClock) Option {
	return func(e *Evaluator) {
		e.Clock = c
	}
}

// New creates a new Evaluator with the provided options.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{
		MaxExamples: DefaultMaxExamples,
		Clock:       clock.RealClock{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate streams src once and checks every rule of s against it.
//
// Data defects never abort the run: a failing or unevaluable rule becomes a
// failing outcome and the remaining rules still run to completion. The
// returned error is reserved for infrastructure problems, e.g. the source
// turning unreadable mid-stream or ctx being cancelled.
func (e *Evaluator) Evaluate(ctx context.Context, s *suite.Suite, src rowsource.Source) (*report.Report, error) {
	start := time.Now()

	if s == nil {
		return nil, fmt.Errorf("suite cannot be nil")
	}
	if src == nil {
		return nil, fmt.Errorf("source cannot be nil")
	}

	schema := src.Schema()

	// Resolve every rule to either a pre-computed outcome or a streaming
	// checker before touching any rows.
	outcomes := make([]report.RuleOutcome, len(s.Rules))
	checkers := make([]*rowChecker, len(s.Rules))

	for i, r := range s.Rules {
		if err := r.Validate(); err != nil {
			outcomes[i] = erroredOutcome(r, err.Error())
			continue
		}

		if r.Kind == rule.KindColumnExists {
			outcomes[i] = existsOutcome(r, schema)
			continue
		}

		column, ok := schema.Index(r.Column)
		if !ok {
			outcomes[i] = erroredOutcome(r, missingColumnMessage(r.Column, schema))
			continue
		}

		checker, err := newRowChecker(r, column, e.MaxExamples)
		if err != nil {
			outcomes[i] = erroredOutcome(r, err.Error())
			continue
		}
		checkers[i] = checker
	}

	rows, err := e.stream(ctx, src, checkers)
	if err != nil {
		evaluationTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	rep := report.New(s.Name)
	rep.RowCount = rows
	rep.EvaluatedAt = e.Clock.Now().UTC()
	rep.Metadata["created-at"] = rep.EvaluatedAt.Format(time.RFC3339)

	for i := range outcomes {
		if checkers[i] != nil {
			outcomes[i] = checkers[i].outcome()
		}
		rep.Append(outcomes[i])
		ruleOutcomeTotal.WithLabelValues(string(outcomes[i].Rule.Kind), outcomeLabel(outcomes[i])).Inc()
	}
	rep.Finalize()

	evaluationDuration.Observe(time.Since(start).Seconds())
	evaluationRowsTotal.Add(float64(rows))
	evaluationTotal.WithLabelValues(string(rep.Summary.Status)).Inc()

	slog.Debug("evaluation completed",
		"suite", s.Name,
		"rows", rows,
		"passed", rep.Summary.Passed,
		"failed", rep.Summary.Failed,
		"errored", rep.Summary.Errored,
		"status", rep.Summary.Status,
		"duration", time.Since(start))

	return rep, nil
}

// stream consumes the source to exhaustion, feeding every record to every
// active checker. The context is checked between rows so cancellation cannot
// be starved by a large input.
func (e *Evaluator) stream(ctx context.Context, src rowsource.Source, checkers []*rowChecker) (int64, error) {
	var rows int64

	for {
		select {
		case <-ctx.Done():
			return rows, ctx.Err()
		default:
		}

		rec, err := src.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return rows, nil
			}
			return rows, tverrors.Wrap(tverrors.ErrCodeIOFailure, "reading input rows", err)
		}

		rows++
		for _, c := range checkers {
			if c == nil {
				continue
			}
			c.observe(rec)
		}
	}
}

func outcomeLabel(o report.RuleOutcome) string {
	switch {
	case o.Errored:
		return "errored"
	case o.Success:
		return "passed"
	default:
		return "failed"
	}
}
