package store

import (
	"context"
	"sync"

	tverrors "github.com/tablevet/tablevet/pkg/errors"
	"github.com/tablevet/tablevet/pkg/report"
	"github.com/tablevet/tablevet/pkg/suite"
)

// MemoryStore implements Store with an in-process map. Thread-safe; values
// are deep-copied on the way in and out so callers can never mutate stored
// state through retained pointers.
type MemoryStore struct {
	mu      sync.RWMutex
	suites  map[string]*suite.Suite
	reports map[string]*report.Report
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		suites:  make(map[string]*suite.Suite),
		reports: make(map[string]*report.Report),
	}
}

// SaveSuite implements Store.
func (m *MemoryStore) SaveSuite(_ context.Context, s *suite.Suite) error {
	if err := s.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.suites[s.Name] = s.Clone()
	return nil
}

// GetSuite implements Store.
func (m *MemoryStore) GetSuite(_ context.Context, name string) (*suite.Suite, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.suites[name]
	if !ok {
		err := tverrors.Newf(tverrors.ErrCodeNotFound, "suite %q not found", name)
		if suggestion := nearestSuite(m.suiteNamesLocked(), name); suggestion != "" {
			err = err.WithDetail("suggestion", suggestion)
		}
		return nil, err
	}
	return s.Clone(), nil
}

// ListSuites implements Store.
func (m *MemoryStore) ListSuites(_ context.Context) ([]*suite.Suite, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	suites := make([]*suite.Suite, 0, len(m.suites))
	for _, s := range m.suites {
		suites = append(suites, s.Clone())
	}
	sortSuites(suites)
	return suites, nil
}

// DeleteSuite implements Store.
func (m *MemoryStore) DeleteSuite(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.suites[name]; !ok {
		err := tverrors.Newf(tverrors.ErrCodeNotFound, "suite %q not found", name)
		if suggestion := nearestSuite(m.suiteNamesLocked(), name); suggestion != "" {
			err = err.WithDetail("suggestion", suggestion)
		}
		return err
	}
	delete(m.suites, name)
	return nil
}

// SaveReport implements Store.
func (m *MemoryStore) SaveReport(_ context.Context, r *report.Report) error {
	if err := validateRunID(r.RunID); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports[r.RunID] = r.Clone()
	return nil
}

// GetReport implements Store.
func (m *MemoryStore) GetReport(_ context.Context, runID string) (*report.Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.reports[runID]
	if !ok {
		return nil, tverrors.Newf(tverrors.ErrCodeNotFound, "report %q not found", runID)
	}
	return r.Clone(), nil
}

// ListReports implements Store.
func (m *MemoryStore) ListReports(_ context.Context) ([]*report.Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	reports := make([]*report.Report, 0, len(m.reports))
	for _, r := range m.reports {
		reports = append(reports, r.Clone())
	}
	sortReports(reports)
	return reports, nil
}

func (m *MemoryStore) suiteNamesLocked() []string {
	names := make([]string, 0, len(m.suites))
	for name := range m.suites {
		names = append(names, name)
	}
	return names
}

var _ Store = (*MemoryStore)(nil)
var _ Store = (*FilesystemStore)(nil)
