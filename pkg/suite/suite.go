package suite

import (
	"fmt"
	"regexp"

	tverrors "github.com/tablevet/tablevet/pkg/errors"
	"github.com/tablevet/tablevet/pkg/header"
	"github.com/tablevet/tablevet/pkg/rule"
)

// Suite is a named, ordered list of rules. The serialized form carries a
// resource header so persisted suites are self-describing.
type Suite struct {
	header.Header `json:",inline" yaml:",inline"`

	Name  string      `json:"name" yaml:"name"`
	Rules []rule.Rule `json:"rules" yaml:"rules"`
}

// Suite names double as store keys and file names, so the charset is
// restricted up front.
var namePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,62}$`)

// ValidateName checks that name is usable as a suite identifier.
func ValidateName(name string) error {
	if name == "" {
		return tverrors.New(tverrors.ErrCodeInvalidInput, "suite name cannot be empty")
	}
	if !namePattern.MatchString(name) {
		return tverrors.Newf(tverrors.ErrCodeInvalidInput,
			"invalid suite name %q: use lowercase letters, digits, '-' and '_', starting with a letter or digit", name)
	}
	return nil
}

// Validate checks the suite name and every rule. The first invalid rule
// stops validation; its position is included for diagnostics.
func (s *Suite) Validate() error {
	if err := ValidateName(s.Name); err != nil {
		return err
	}
	if len(s.Rules) == 0 {
		return tverrors.Newf(tverrors.ErrCodeInvalidInput, "suite %q has no rules", s.Name)
	}
	for i, r := range s.Rules {
		if err := r.Validate(); err != nil {
			return tverrors.Wrap(tverrors.ErrCodeInvalidInput,
				fmt.Sprintf("suite %q rule %d", s.Name, i), err)
		}
	}
	return nil
}

// Columns returns the distinct columns referenced by the suite's rules, in
// first-reference order.
func (s *Suite) Columns() []string {
	seen := make(map[string]struct{}, len(s.Rules))
	columns := make([]string, 0, len(s.Rules))
	for _, r := range s.Rules {
		if _, ok := seen[r.Column]; ok {
			continue
		}
		seen[r.Column] = struct{}{}
		columns = append(columns, r.Column)
	}
	return columns
}

// Clone returns a deep copy so callers can mutate rules without touching
// shared suite payloads.
func (s *Suite) Clone() *Suite {
	clone := &Suite{
		Header: header.Header{
			Kind:       s.Kind,
			APIVersion: s.APIVersion,
		},
		Name:  s.Name,
		Rules: cloneRules(s.Rules),
	}
	if len(s.Metadata) > 0 {
		clone.Metadata = make(map[string]string, len(s.Metadata))
		for k, v := range s.Metadata {
			clone.Metadata[k] = v
		}
	}
	return clone
}

// cloneRules copies the rule slice including pointer-held parameters.
func cloneRules(rules []rule.Rule) []rule.Rule {
	if len(rules) == 0 {
		return nil
	}
	cloned := make([]rule.Rule, len(rules))
	for i, r := range rules {
		cloned[i] = r.Clone()
	}
	return cloned
}
