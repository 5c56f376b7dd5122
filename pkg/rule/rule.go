// Package rule defines the closed set of declarative column checks a suite
// is built from. A Rule is immutable once constructed; its serialized form
// is the interchange contract for suite definitions.
package rule

import (
	"fmt"
	"regexp"

	tverrors "github.com/tablevet/tablevet/pkg/errors"
)

// Kind identifies one of the supported rule variants.
type Kind string

const (
	// KindColumnExists checks the column is present in the input schema.
	KindColumnExists Kind = "column_exists"
	// KindColumnType checks every non-null value has the declared type.
	KindColumnType Kind = "column_type"
	// KindNotNull checks no value in the column is null/missing.
	KindNotNull Kind = "not_null"
	// KindValuesBetween checks every non-null value lies in [min, max].
	KindValuesBetween Kind = "values_between"
	// KindMatchesRegex checks non-null values fully match a pattern.
	KindMatchesRegex Kind = "matches_regex"
)

// IsUnknown reports whether k is not one of the supported rule kinds.
func (k Kind) IsUnknown() bool {
	switch k {
	case KindColumnExists, KindColumnType, KindNotNull, KindValuesBetween, KindMatchesRegex:
		return false
	}
	return true
}

// Kinds returns the names of all supported rule kinds.
func Kinds() []string {
	return []string{
		string(KindColumnExists),
		string(KindColumnType),
		string(KindNotNull),
		string(KindValuesBetween),
		string(KindMatchesRegex),
	}
}

// ValueType is the type tag checked by column_type rules.
type ValueType string

const (
	TypeInteger ValueType = "integer"
	TypeFloat   ValueType = "float"
	TypeString  ValueType = "string"
	TypeBoolean ValueType = "boolean"
)

// IsUnknown reports whether t is not one of the supported type tags.
func (t ValueType) IsUnknown() bool {
	switch t {
	case TypeInteger, TypeFloat, TypeString, TypeBoolean:
		return false
	}
	return true
}

// Rule is a single declarative check over one column. Only the parameters
// of the rule's kind are set; the rest stay zero and are omitted from the
// serialized form.
type Rule struct {
	Kind   Kind   `json:"kind" yaml:"kind"`
	Column string `json:"column" yaml:"column"`

	// Type is the expected value type (column_type only).
	Type ValueType `json:"type,omitempty" yaml:"type,omitempty"`

	// Min and Max are the inclusive bounds (values_between only).
	Min *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max *float64 `json:"max,omitempty" yaml:"max,omitempty"`

	// Pattern is the regular expression (matches_regex only). Matching is
	// anchored: the whole cell text must match.
	Pattern string `json:"pattern,omitempty" yaml:"pattern,omitempty"`

	// Mostly is the minimum fraction of non-null values that must satisfy
	// the check, in [0, 1]. Unset means 1.0 (every value). Not applicable
	// to column_exists.
	Mostly *float64 `json:"mostly,omitempty" yaml:"mostly,omitempty"`
}

// ColumnExists returns a rule checking that column is present in the schema.
func ColumnExists(column string) Rule {
	return Rule{Kind: KindColumnExists, Column: column}
}

// ColumnType returns a rule checking every non-null value in column has the
// given type.
func ColumnType(column string, t ValueType) Rule {
	return Rule{Kind: KindColumnType, Column: column, Type: t}
}

// NotNull returns a rule checking no value in column is null.
func NotNull(column string) Rule {
	return Rule{Kind: KindNotNull, Column: column}
}

// ValuesBetween returns a rule checking every non-null value in column lies
// in [min, max].
func ValuesBetween(column string, min, max float64) Rule {
	return Rule{Kind: KindValuesBetween, Column: column, Min: &min, Max: &max}
}

// MatchesRegex returns a rule checking at least mostly of the non-null
// values in column fully match pattern.
func MatchesRegex(column, pattern string, mostly float64) Rule {
	return Rule{Kind: KindMatchesRegex, Column: column, Pattern: pattern, Mostly: &mostly}
}

// Threshold returns the rule's mostly value, defaulting to 1.0.
func (r Rule) Threshold() float64 {
	if r.Mostly == nil {
		return 1.0
	}
	return *r.Mostly
}

// Clone returns a copy with its own parameter pointers, so callers can
// adjust bounds or thresholds without affecting the original.
func (r Rule) Clone() Rule {
	clone := r
	if r.Min != nil {
		min := *r.Min
		clone.Min = &min
	}
	if r.Max != nil {
		max := *r.Max
		clone.Max = &max
	}
	if r.Mostly != nil {
		mostly := *r.Mostly
		clone.Mostly = &mostly
	}
	return clone
}

// Validate checks the rule's parameters. Violations are INVALID_INPUT
// structured errors raised when a suite is defined, never during evaluation.
func (r Rule) Validate() error {
	if r.Kind.IsUnknown() {
		return tverrors.Newf(tverrors.ErrCodeInvalidInput, "unknown rule kind %q", string(r.Kind))
	}
	if r.Column == "" {
		return tverrors.Newf(tverrors.ErrCodeInvalidInput, "%s rule requires a column", r.Kind)
	}

	if r.Mostly != nil {
		if r.Kind == KindColumnExists {
			return tverrors.New(tverrors.ErrCodeInvalidInput, "column_exists does not accept mostly")
		}
		if *r.Mostly < 0 || *r.Mostly > 1 {
			return tverrors.Newf(tverrors.ErrCodeInvalidInput, "mostly must be within [0, 1], got %v", *r.Mostly)
		}
	}

	switch r.Kind {
	case KindColumnType:
		if r.Type.IsUnknown() {
			return tverrors.Newf(tverrors.ErrCodeInvalidInput, "column_type on %q: unknown type %q", r.Column, string(r.Type))
		}
	case KindValuesBetween:
		if r.Min == nil || r.Max == nil {
			return tverrors.Newf(tverrors.ErrCodeInvalidInput, "values_between on %q requires min and max", r.Column)
		}
		if *r.Min > *r.Max {
			return tverrors.Newf(tverrors.ErrCodeInvalidInput, "values_between on %q: min %v exceeds max %v", r.Column, *r.Min, *r.Max)
		}
	case KindMatchesRegex:
		if r.Pattern == "" {
			return tverrors.Newf(tverrors.ErrCodeInvalidInput, "matches_regex on %q requires a pattern", r.Column)
		}
		if _, err := r.CompilePattern(); err != nil {
			return tverrors.Wrap(tverrors.ErrCodeInvalidInput,
				fmt.Sprintf("matches_regex on %q: invalid pattern", r.Column), err)
		}
	}

	return nil
}

// CompilePattern compiles the rule's pattern anchored to the full cell text.
func (r Rule) CompilePattern() (*regexp.Regexp, error) {
	return regexp.Compile(`\A(?:` + r.Pattern + `)\z`)
}

// Describe returns a short human-readable description of the rule.
func (r Rule) Describe() string {
	switch r.Kind {
	case KindColumnExists:
		return fmt.Sprintf("column %q exists", r.Column)
	case KindColumnType:
		return fmt.Sprintf("column %q values are of type %s", r.Column, r.Type)
	case KindNotNull:
		return fmt.Sprintf("column %q values are not null", r.Column)
	case KindValuesBetween:
		min, max := 0.0, 0.0
		if r.Min != nil {
			min = *r.Min
		}
		if r.Max != nil {
			max = *r.Max
		}
		return fmt.Sprintf("column %q values are between %v and %v", r.Column, min, max)
	case KindMatchesRegex:
		if r.Threshold() < 1.0 {
			return fmt.Sprintf("column %q values match %q (mostly %.2f)", r.Column, r.Pattern, r.Threshold())
		}
		return fmt.Sprintf("column %q values match %q", r.Column, r.Pattern)
	default:
		return fmt.Sprintf("unknown rule %q on column %q", string(r.Kind), r.Column)
	}
}
