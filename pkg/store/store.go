// Package store persists validation suites and reports. The filesystem
// implementation is the default; the in-memory one backs tests and
// ephemeral servers.
package store

import (
	"context"
	"sort"

	"github.com/agnivade/levenshtein"

	"github.com/tablevet/tablevet/pkg/report"
	"github.com/tablevet/tablevet/pkg/suite"
)

// Store persists suites by name and reports by run ID.
//
// SaveSuite replaces any existing suite of the same name in full; a failed
// save must leave the prior state untouched. Lookups of absent keys return
// NOT_FOUND structured errors.
type Store interface {
	SaveSuite(ctx context.Context, s *suite.Suite) error
	GetSuite(ctx context.Context, name string) (*suite.Suite, error)
	ListSuites(ctx context.Context) ([]*suite.Suite, error)
	DeleteSuite(ctx context.Context, name string) error

	SaveReport(ctx context.Context, r *report.Report) error
	GetReport(ctx context.Context, runID string) (*report.Report, error)
	ListReports(ctx context.Context) ([]*report.Report, error)
}

// suiteSuggestionMaxDistance caps how far a requested suite name can be
// from a stored one and still be offered as a did-you-mean candidate.
const suiteSuggestionMaxDistance = 5

// nearestSuite returns the stored suite name closest to name by edit
// distance, or "" when nothing is plausibly a typo. Candidates are scanned
// in sorted order so ties resolve deterministically.
func nearestSuite(names []string, name string) string {
	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.Strings(sorted)

	best := ""
	bestDist := suiteSuggestionMaxDistance + 1
	for _, candidate := range sorted {
		d := levenshtein.ComputeDistance(name, candidate)
		if d < bestDist {
			best = candidate
			bestDist = d
		}
	}
	if bestDist > suiteSuggestionMaxDistance {
		return ""
	}
	return best
}

// sortSuites orders suites by name for stable listings.
func sortSuites(suites []*suite.Suite) {
	sort.Slice(suites, func(i, j int) bool {
		return suites[i].Name < suites[j].Name
	})
}

// sortReports orders reports newest first, breaking timestamp ties by run
// ID for stable listings.
func sortReports(reports []*report.Report) {
	sort.Slice(reports, func(i, j int) bool {
		if !reports[i].EvaluatedAt.Equal(reports[j].EvaluatedAt) {
			return reports[i].EvaluatedAt.After(reports[j].EvaluatedAt)
		}
		return reports[i].RunID < reports[j].RunID
	})
}
