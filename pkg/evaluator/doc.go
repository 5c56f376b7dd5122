/*
Copyright © 2026 The Tablevet Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package evaluator runs validation suites against streaming row sources.
//
// # Overview
//
// The evaluator checks every rule of a suite against a tabular input in one
// streaming pass. Row-level rules keep running counters (observed values,
// violations, bounded examples) instead of materializing the input, so
// memory stays constant in the row count. Schema-level rules are resolved
// once against the source's header-derived schema.
//
// # Rule Semantics
//
// Per kind:
//   - column_exists: succeeds iff the column appears in the input schema
//   - column_type: every non-null value must have the declared lexical type
//   - not_null: no cell in the column may be null
//   - values_between: every non-null value must be numeric and in [min, max]
//   - matches_regex: non-null cell text must fully match the pattern
//
// Row-level rules honor a "mostly" threshold: the rule holds when the
// fraction of passing observations is >= mostly (default 1.0). Inputs with
// no observations pass vacuously.
//
// # Failure Isolation
//
// Data defects never abort a run. A rule that fails, targets a missing
// column, or cannot be evaluated at all becomes a failing outcome, and the
// remaining rules still run to completion. Missing-column messages carry a
// nearest-name suggestion when one is plausible. The returned error is
// reserved for infrastructure problems: an unreadable source or a cancelled
// context.
//
// # Determinism
//
// The same suite and the same row sequence always produce the same report.
// Checkers are independent (no shared state between rules), outcomes keep
// suite declaration order, and examples record the first violations in row
// order.
//
// # Usage
//
//	e := evaluator.New(evaluator.WithMaxExamples(5))
//	rep, err := e.Evaluate(ctx, s, src)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Status: %s\n", rep.Summary.Status)
//	for _, o := range rep.FailedOutcomes() {
//	    fmt.Printf("  %s: %s\n", o.Rule.Describe(), o.Message)
//	}
package evaluator
