package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	tverrors "github.com/tablevet/tablevet/pkg/errors"
	"github.com/tablevet/tablevet/pkg/header"
	"github.com/tablevet/tablevet/pkg/report"
	"github.com/tablevet/tablevet/pkg/suite"
)

const (
	suitesDir  = "suites"
	reportsDir = "reports"

	// EnvRoot overrides the default store root directory.
	EnvRoot = "TABLEVET_ROOT"

	defaultRootDir = ".tablevet"
)

// Run IDs become file names, so the charset is restricted the same way
// suite names are.
var runIDPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_-]{0,64}$`)

// DefaultRoot resolves the store root: $TABLEVET_ROOT if set, otherwise
// .tablevet under the user's home directory, falling back to the working
// directory when no home is known.
func DefaultRoot() string {
	if root := os.Getenv(EnvRoot); root != "" {
		return root
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return defaultRootDir
	}
	return filepath.Join(home, defaultRootDir)
}

// FilesystemStore keeps suites under <root>/suites/<name>.yaml and reports
// under <root>/reports/<runID>.yaml. Saves write a temp file in the target
// directory and rename it into place, so replacement is atomic and a failed
// save never corrupts prior state.
type FilesystemStore struct {
	root string
}

// NewFilesystemStore creates the store layout under root if needed.
func NewFilesystemStore(root string) (*FilesystemStore, error) {
	for _, dir := range []string{root, filepath.Join(root, suitesDir), filepath.Join(root, reportsDir)} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, tverrors.Wrap(tverrors.ErrCodeIOFailure,
				fmt.Sprintf("cannot create store directory %q", dir), err)
		}
	}
	return &FilesystemStore{root: root}, nil
}

// Root returns the store's base directory.
func (s *FilesystemStore) Root() string {
	return s.root
}

// SaveSuite implements Store.
func (s *FilesystemStore) SaveSuite(_ context.Context, sut *suite.Suite) error {
	if err := sut.Validate(); err != nil {
		return err
	}
	path := filepath.Join(s.root, suitesDir, sut.Name+".yaml")
	return writeDocAtomic(path, sut)
}

// GetSuite implements Store.
func (s *FilesystemStore) GetSuite(ctx context.Context, name string) (*suite.Suite, error) {
	if err := suite.ValidateName(name); err != nil {
		return nil, err
	}

	path := filepath.Join(s.root, suitesDir, name+".yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, s.suiteNotFound(ctx, name)
		}
		return nil, tverrors.Wrap(tverrors.ErrCodeIOFailure,
			fmt.Sprintf("cannot read suite %q", name), err)
	}

	var sut suite.Suite
	if err := yaml.Unmarshal(data, &sut); err != nil {
		return nil, tverrors.Wrap(tverrors.ErrCodeIOFailure,
			fmt.Sprintf("cannot parse stored suite %q", name), err)
	}
	if err := sut.VerifyKind(header.KindValidationSuite); err != nil {
		return nil, tverrors.Wrap(tverrors.ErrCodeInvalidInput,
			fmt.Sprintf("stored suite %q", name), err)
	}
	return &sut, nil
}

// ListSuites implements Store.
func (s *FilesystemStore) ListSuites(ctx context.Context) ([]*suite.Suite, error) {
	names, err := s.suiteNames()
	if err != nil {
		return nil, err
	}

	suites := make([]*suite.Suite, 0, len(names))
	for _, name := range names {
		sut, err := s.GetSuite(ctx, name)
		if err != nil {
			return nil, err
		}
		suites = append(suites, sut)
	}
	sortSuites(suites)
	return suites, nil
}

// DeleteSuite implements Store.
func (s *FilesystemStore) DeleteSuite(ctx context.Context, name string) error {
	if err := suite.ValidateName(name); err != nil {
		return err
	}

	path := filepath.Join(s.root, suitesDir, name+".yaml")
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return s.suiteNotFound(ctx, name)
		}
		return tverrors.Wrap(tverrors.ErrCodeIOFailure,
			fmt.Sprintf("cannot delete suite %q", name), err)
	}
	return nil
}

// SaveReport implements Store.
func (s *FilesystemStore) SaveReport(_ context.Context, r *report.Report) error {
	if err := validateRunID(r.RunID); err != nil {
		return err
	}
	path := filepath.Join(s.root, reportsDir, r.RunID+".yaml")
	return writeDocAtomic(path, r)
}

// GetReport implements Store.
func (s *FilesystemStore) GetReport(_ context.Context, runID string) (*report.Report, error) {
	if err := validateRunID(runID); err != nil {
		return nil, err
	}

	path := filepath.Join(s.root, reportsDir, runID+".yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, tverrors.Newf(tverrors.ErrCodeNotFound, "report %q not found", runID)
		}
		return nil, tverrors.Wrap(tverrors.ErrCodeIOFailure,
			fmt.Sprintf("cannot read report %q", runID), err)
	}

	var r report.Report
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, tverrors.Wrap(tverrors.ErrCodeIOFailure,
			fmt.Sprintf("cannot parse stored report %q", runID), err)
	}
	if err := r.VerifyKind(header.KindValidationReport); err != nil {
		return nil, tverrors.Wrap(tverrors.ErrCodeInvalidInput,
			fmt.Sprintf("stored report %q", runID), err)
	}
	return &r, nil
}

// ListReports implements Store.
func (s *FilesystemStore) ListReports(ctx context.Context) ([]*report.Report, error) {
	entries, err := os.ReadDir(filepath.Join(s.root, reportsDir))
	if err != nil {
		return nil, tverrors.Wrap(tverrors.ErrCodeIOFailure, "cannot list reports", err)
	}

	reports := make([]*report.Report, 0, len(entries))
	for _, entry := range entries {
		runID, ok := docName(entry.Name())
		if !ok {
			continue
		}
		r, err := s.GetReport(ctx, runID)
		if err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}
	sortReports(reports)
	return reports, nil
}

func (s *FilesystemStore) suiteNames() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.root, suitesDir))
	if err != nil {
		return nil, tverrors.Wrap(tverrors.ErrCodeIOFailure, "cannot list suites", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if name, ok := docName(entry.Name()); ok {
			names = append(names, name)
		}
	}
	return names, nil
}

func (s *FilesystemStore) suiteNotFound(_ context.Context, name string) error {
	err := tverrors.Newf(tverrors.ErrCodeNotFound, "suite %q not found", name)
	if names, listErr := s.suiteNames(); listErr == nil {
		if suggestion := nearestSuite(names, name); suggestion != "" {
			err = err.WithDetail("suggestion", suggestion)
		}
	}
	return err
}

// docName strips the .yaml extension from a store file name. Temp files and
// foreign files are skipped.
func docName(filename string) (string, bool) {
	if strings.HasPrefix(filename, ".") || !strings.HasSuffix(filename, ".yaml") {
		return "", false
	}
	return strings.TrimSuffix(filename, ".yaml"), true
}

func validateRunID(runID string) error {
	if runID == "" {
		return tverrors.New(tverrors.ErrCodeInvalidInput, "report run ID cannot be empty")
	}
	if !runIDPattern.MatchString(runID) {
		return tverrors.Newf(tverrors.ErrCodeInvalidInput, "invalid report run ID %q", runID)
	}
	return nil
}

// writeDocAtomic marshals doc to YAML and renames a temp file into place.
// The temp file lives in the target directory so the rename stays on one
// filesystem.
func writeDocAtomic(path string, doc any) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return tverrors.Wrap(tverrors.ErrCodeIOFailure,
			fmt.Sprintf("cannot serialize %q", filepath.Base(path)), err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return tverrors.Wrap(tverrors.ErrCodeIOFailure,
			fmt.Sprintf("cannot create temp file in %q", dir), err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return tverrors.Wrap(tverrors.ErrCodeIOFailure,
			fmt.Sprintf("cannot write %q", filepath.Base(path)), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return tverrors.Wrap(tverrors.ErrCodeIOFailure,
			fmt.Sprintf("cannot write %q", filepath.Base(path)), err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return tverrors.Wrap(tverrors.ErrCodeIOFailure,
			fmt.Sprintf("cannot set permissions on %q", filepath.Base(path)), err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return tverrors.Wrap(tverrors.ErrCodeIOFailure,
			fmt.Sprintf("cannot replace %q", filepath.Base(path)), err)
	}
	return nil
}
