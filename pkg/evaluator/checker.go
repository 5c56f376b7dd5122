/*
Copyright © 2026 The Tablevet Authors
SPDX-License-Identifier: Apache-2.0
*/

package evaluator

import (
	"fmt"
	"regexp"

	"github.com/tablevet/tablevet/pkg/record"
	"github.com/tablevet/tablevet/pkg/report"
	"github.com/tablevet/tablevet/pkg/rule"
)

// rowChecker accumulates counters for one row-level rule across the input
// stream. Checkers never see each other's state, so rule outcomes stay
// independent of evaluation order.
type rowChecker struct {
	rule        rule.Rule
	column      int
	maxExamples int

	observed   int64
	violations int64
	examples   []string

	// pattern is set for matches_regex rules only, compiled anchored.
	pattern *regexp.Regexp
}

func newRowChecker(r rule.Rule, column, maxExamples int) (*rowChecker, error) {
	c := &rowChecker{
		rule:        r,
		column:      column,
		maxExamples: maxExamples,
	}

	if r.Kind == rule.KindMatchesRegex {
		p, err := r.CompilePattern()
		if err != nil {
			return nil, err
		}
		c.pattern = p
	}

	return c, nil
}

// observe inspects the checker's column in one record. Null cells count as
// observations only for not_null rules; every other kind skips them.
func (c *rowChecker) observe(rec record.Record) {
	v := rec.At(c.column)

	if c.rule.Kind == rule.KindNotNull {
		c.observed++
		if v.IsNull() {
			c.violate(v)
		}
		return
	}

	if v.IsNull() {
		return
	}
	c.observed++

	if !c.check(v) {
		c.violate(v)
	}
}

func (c *rowChecker) check(v record.Value) bool {
	switch c.rule.Kind {
	case rule.KindColumnType:
		return typeMatches(v, c.rule.Type)

	case rule.KindValuesBetween:
		f, ok := v.Float()
		if !ok {
			return false
		}
		return f >= *c.rule.Min && f <= *c.rule.Max

	case rule.KindMatchesRegex:
		return c.pattern.MatchString(v.Raw())
	}
	return true
}

func (c *rowChecker) violate(v record.Value) {
	c.violations++
	if len(c.examples) < c.maxExamples {
		c.examples = append(c.examples, v.String())
	}
}

// outcome folds the counters into a RuleOutcome. A rule holds when the
// fraction of passing observations meets its threshold; an input with no
// observations passes vacuously.
func (c *rowChecker) outcome() report.RuleOutcome {
	o := report.RuleOutcome{
		Rule:       c.rule,
		Observed:   c.observed,
		Violations: c.violations,
		Examples:   c.examples,
	}

	if c.observed == 0 {
		o.Success = true
		return o
	}

	o.ViolationFraction = float64(c.violations) / float64(c.observed)
	passing := 1 - o.ViolationFraction
	o.Success = passing >= c.rule.Threshold()

	if !o.Success {
		o.Message = fmt.Sprintf("%s: %d of %d values violate (%.1f%%)",
			c.rule.Describe(), c.violations, c.observed, o.ViolationFraction*100)
	}

	return o
}

// typeMatches applies the lexical typing rules: string accepts any non-null
// cell, float accepts integer-formed values, integer and boolean are strict.
func typeMatches(v record.Value, t rule.ValueType) bool {
	switch t {
	case rule.TypeString:
		return true
	case rule.TypeInteger:
		return v.Kind() == record.KindInteger
	case rule.TypeFloat:
		return v.Kind() == record.KindInteger || v.Kind() == record.KindFloat
	case rule.TypeBoolean:
		return v.Kind() == record.KindBool
	}
	return false
}

// existsOutcome resolves a column_exists rule against the input schema.
// A missing column is this rule's reported condition, not an evaluation
// error.
func existsOutcome(r rule.Rule, schema record.Schema) report.RuleOutcome {
	o := report.RuleOutcome{Rule: r}

	if schema.Has(r.Column) {
		o.Success = true
		return o
	}

	o.Message = missingColumnMessage(r.Column, schema)
	return o
}

// erroredOutcome marks a rule that could not be evaluated at all. The run
// continues; the error is data about the data.
func erroredOutcome(r rule.Rule, message string) report.RuleOutcome {
	return report.RuleOutcome{
		Rule:    r,
		Errored: true,
		Message: message,
	}
}

func missingColumnMessage(column string, schema record.Schema) string {
	msg := fmt.Sprintf("column %q not found in input", column)
	if suggestion := schema.Suggest(column); suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", suggestion)
	}
	return msg
}
