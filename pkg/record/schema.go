package record

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Schema is the ordered column-name set derived from a tabular input's
// header row. It is shared by every Record produced from the same input.
type Schema struct {
	columns []string
	index   map[string]int
}

// NewSchema builds a schema from header columns, preserving order. If a
// column name repeats, the first occurrence wins.
func NewSchema(columns []string) Schema {
	s := Schema{
		columns: make([]string, 0, len(columns)),
		index:   make(map[string]int, len(columns)),
	}
	for _, col := range columns {
		if _, dup := s.index[col]; dup {
			continue
		}
		s.index[col] = len(s.columns)
		s.columns = append(s.columns, col)
	}
	return s
}

// Columns returns the column names in input order.
func (s Schema) Columns() []string {
	return s.columns
}

// Len returns the number of columns.
func (s Schema) Len() int {
	return len(s.columns)
}

// Has reports whether the schema contains the column.
func (s Schema) Has(column string) bool {
	_, ok := s.index[column]
	return ok
}

// Index returns the position of the column and whether it exists.
func (s Schema) Index(column string) (int, bool) {
	i, ok := s.index[column]
	return i, ok
}

// suggestionMaxDistance caps how far a name can be from an existing column
// and still be offered as a did-you-mean candidate.
const suggestionMaxDistance = 3

// Suggest returns the schema column nearest to name by edit distance, or
// "" when nothing is close enough to be a plausible typo.
func (s Schema) Suggest(name string) string {
	best := ""
	bestDist := suggestionMaxDistance + 1
	for _, col := range s.columns {
		d := levenshtein.ComputeDistance(name, col)
		if d < bestDist {
			best = col
			bestDist = d
		}
	}
	if bestDist > suggestionMaxDistance {
		return ""
	}
	return best
}

// Omit returns a schema without the columns matching any of the wildcard
// patterns, along with the original positions of the kept columns so row
// values can be projected to match.
// Supported patterns:
//   - "prefix*" matches names starting with "prefix"
//   - "*suffix" matches names ending with "suffix"
//   - "*contains*" matches names containing "contains"
//   - "exact" matches names exactly
func (s Schema) Omit(patterns []string) (Schema, []int) {
	kept := make([]string, 0, len(s.columns))
	positions := make([]int, 0, len(s.columns))

	for i, col := range s.columns {
		omit := false
		for _, pattern := range patterns {
			if matchesPattern(col, pattern) {
				omit = true
				break
			}
		}
		if !omit {
			kept = append(kept, col)
			positions = append(positions, i)
		}
	}

	return NewSchema(kept), positions
}

// matchesPattern checks if a name matches a wildcard pattern.
func matchesPattern(name, pattern string) bool {
	// No wildcard - exact match
	if !strings.Contains(pattern, "*") {
		return name == pattern
	}

	// *contains* - contains match
	if strings.HasPrefix(pattern, "*") && strings.HasSuffix(pattern, "*") {
		substr := strings.Trim(pattern, "*")
		return strings.Contains(name, substr)
	}

	// *suffix - ends with match
	if strings.HasPrefix(pattern, "*") {
		suffix := strings.TrimPrefix(pattern, "*")
		return strings.HasSuffix(name, suffix)
	}

	// prefix* - starts with match
	if strings.HasSuffix(pattern, "*") {
		prefix := strings.TrimSuffix(pattern, "*")
		return strings.HasPrefix(name, prefix)
	}

	return false
}
