package suite

import (
	"strconv"
	"strings"

	tverrors "github.com/tablevet/tablevet/pkg/errors"
	"github.com/tablevet/tablevet/pkg/rule"
)

// ParseRuleOverrides parses --set style flags of the form
// "column:param=value" into a column -> param -> value map. The value may
// itself contain '=' characters; only the first ':' and '=' are structural.
func ParseRuleOverrides(flags []string) (map[string]map[string]string, error) {
	overrides := make(map[string]map[string]string)

	for _, flag := range flags {
		column, rest, ok := strings.Cut(flag, ":")
		if !ok || column == "" {
			return nil, tverrors.Newf(tverrors.ErrCodeInvalidInput,
				"invalid override %q: expected column:param=value", flag)
		}

		param, value, ok := strings.Cut(rest, "=")
		if !ok || param == "" {
			return nil, tverrors.Newf(tverrors.ErrCodeInvalidInput,
				"invalid override %q: expected column:param=value", flag)
		}
		if value == "" {
			return nil, tverrors.Newf(tverrors.ErrCodeInvalidInput,
				"invalid override %q: value cannot be empty", flag)
		}

		if overrides[column] == nil {
			overrides[column] = make(map[string]string)
		}
		overrides[column][param] = value
	}

	return overrides, nil
}

// ApplyOverrides rewrites rule parameters in place. Each override targets
// the rules on its column that accept the parameter:
//
//   - min, max   -> values_between rules
//   - pattern    -> matches_regex rules
//   - type       -> column_type rules
//   - mostly     -> every rule kind except column_exists
//
// An override that matches no rule is an error, so typos surface instead of
// silently doing nothing. Callers should re-validate the suite afterwards.
func ApplyOverrides(s *Suite, overrides map[string]map[string]string) error {
	for column, params := range overrides {
		if !suiteHasColumn(s, column) {
			return tverrors.Newf(tverrors.ErrCodeInvalidInput,
				"suite %q has no rules on column %q", s.Name, column)
		}

		for param, value := range params {
			applied, err := applyOverride(s, column, param, value)
			if err != nil {
				return err
			}
			if !applied {
				return tverrors.Newf(tverrors.ErrCodeInvalidInput,
					"no rule on column %q accepts parameter %q", column, param)
			}
		}
	}
	return nil
}

func suiteHasColumn(s *Suite, column string) bool {
	for _, r := range s.Rules {
		if r.Column == column {
			return true
		}
	}
	return false
}

func applyOverride(s *Suite, column, param, value string) (bool, error) {
	applied := false

	for i := range s.Rules {
		r := &s.Rules[i]
		if r.Column != column {
			continue
		}

		switch param {
		case "min":
			if r.Kind != rule.KindValuesBetween {
				continue
			}
			f, err := parseOverrideFloat(column, param, value)
			if err != nil {
				return false, err
			}
			r.Min = &f

		case "max":
			if r.Kind != rule.KindValuesBetween {
				continue
			}
			f, err := parseOverrideFloat(column, param, value)
			if err != nil {
				return false, err
			}
			r.Max = &f

		case "pattern":
			if r.Kind != rule.KindMatchesRegex {
				continue
			}
			r.Pattern = value

		case "type":
			if r.Kind != rule.KindColumnType {
				continue
			}
			r.Type = rule.ValueType(value)

		case "mostly":
			if r.Kind == rule.KindColumnExists {
				continue
			}
			f, err := parseOverrideFloat(column, param, value)
			if err != nil {
				return false, err
			}
			r.Mostly = &f

		default:
			return false, tverrors.Newf(tverrors.ErrCodeInvalidInput,
				"unknown rule parameter %q: supported parameters are min, max, pattern, type, mostly", param)
		}

		applied = true
	}

	return applied, nil
}

func parseOverrideFloat(column, param, value string) (float64, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, tverrors.Newf(tverrors.ErrCodeInvalidInput,
			"override %s:%s: %q is not a number", column, param, value)
	}
	return f, nil
}
