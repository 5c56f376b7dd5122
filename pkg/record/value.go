// Package record models one row of tabular input as an ordered mapping from
// column names to typed scalar values, plus the schema derived from the
// input header.
package record

import (
	"math"
	"strconv"
	"strings"
)

// Kind is the lexical type of a cell value.
type Kind int

const (
	KindNull Kind = iota
	KindInteger
	KindFloat
	KindBool
	KindString
)

// String returns the type tag used in rule definitions and diagnostics.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindBool:
		return "boolean"
	default:
		return "string"
	}
}

// Value is one typed cell. The original raw text is always retained so
// diagnostics and pattern rules see exactly what the input contained.
type Value struct {
	kind Kind
	raw  string
	i    int64
	f    float64
	b    bool
}

// Parse classifies raw cell text. An empty cell is null. Otherwise the
// text (ignoring surrounding whitespace) is an integer if it is all digits
// with an optional sign, a float if strconv accepts it as a finite number,
// a boolean if it is "true" or "false" in any case, and a string otherwise.
func Parse(raw string) Value {
	if raw == "" {
		return Value{kind: KindNull}
	}

	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Value{kind: KindString, raw: raw}
	}

	if isIntegerForm(trimmed) {
		if i, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
			return Value{kind: KindInteger, raw: raw, i: i, f: float64(i)}
		}
		// Digits beyond int64 range still carry a numeric value
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return Value{kind: KindFloat, raw: raw, f: f}
		}
	}

	if f, err := strconv.ParseFloat(trimmed, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return Value{kind: KindFloat, raw: raw, f: f}
	}

	if strings.EqualFold(trimmed, "true") {
		return Value{kind: KindBool, raw: raw, b: true}
	}
	if strings.EqualFold(trimmed, "false") {
		return Value{kind: KindBool, raw: raw, b: false}
	}

	return Value{kind: KindString, raw: raw}
}

func isIntegerForm(s string) bool {
	if s == "" {
		return false
	}
	start := 0
	if s[0] == '+' || s[0] == '-' {
		start = 1
	}
	if start == len(s) {
		return false
	}
	for i := start; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Null returns the null value.
func Null() Value {
	return Value{kind: KindNull}
}

// Int returns an integer value.
func Int(i int64) Value {
	return Value{kind: KindInteger, raw: strconv.FormatInt(i, 10), i: i, f: float64(i)}
}

// Float returns a float value.
func Float(f float64) Value {
	return Value{kind: KindFloat, raw: strconv.FormatFloat(f, 'g', -1, 64), f: f}
}

// Str returns a string value.
func Str(s string) Value {
	return Value{kind: KindString, raw: s}
}

// Bool returns a boolean value.
func Bool(b bool) Value {
	return Value{kind: KindBool, raw: strconv.FormatBool(b), b: b}
}

// Kind returns the lexical type of the value.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether the cell was empty.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// Raw returns the original cell text.
func (v Value) Raw() string {
	return v.raw
}

// Int returns the integer value and whether the value is an integer.
func (v Value) Int() (int64, bool) {
	return v.i, v.kind == KindInteger
}

// Float returns the numeric value and whether the value is numeric
// (integer or float).
func (v Value) Float() (float64, bool) {
	return v.f, v.kind == KindInteger || v.kind == KindFloat
}

// Bool returns the boolean value and whether the value is a boolean.
func (v Value) Bool() (bool, bool) {
	return v.b, v.kind == KindBool
}

// String returns the raw text for non-null values and "<null>" otherwise.
func (v Value) String() string {
	if v.kind == KindNull {
		return "<null>"
	}
	return v.raw
}
