package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"k8s.io/utils/clock"

	"github.com/tablevet/tablevet/pkg/evaluator"
	"github.com/tablevet/tablevet/pkg/renderer"
	"github.com/tablevet/tablevet/pkg/report"
	"github.com/tablevet/tablevet/pkg/rowsource"
	"github.com/tablevet/tablevet/pkg/store"
	"github.com/tablevet/tablevet/pkg/suite"
)

// Opener opens a row source for a data reference.
type Opener func(ctx context.Context, ref string, opts ...rowsource.Option) (rowsource.Source, error)

// Option configures an Engine.
type Option func(*Engine)

// WithStore replaces the default filesystem store.
func WithStore(s store.Store) Option {
	return func(e *Engine) {
		e.store = s
	}
}

// WithSiteRenderer replaces the default data-docs renderer.
func WithSiteRenderer(r *renderer.SiteRenderer) Option {
	return func(e *Engine) {
		e.site = r
	}
}

// WithClock replaces the wall clock used for report timestamps.
func WithClock(c clock.PassiveClock) Option {
	return func(e *Engine) {
		e.clock = c
	}
}

// WithMaxExamples caps the number of example violations kept per rule.
func WithMaxExamples(n int) Option {
	return func(e *Engine) {
		e.maxExamples = n
	}
}

// WithOpener replaces how data references are opened.
func WithOpener(open Opener) Option {
	return func(e *Engine) {
		e.open = open
	}
}

// Engine owns the validation context: the store, the data-docs renderer and
// the evaluator configuration. Callers borrow these through the engine
// rather than constructing their own.
type Engine struct {
	store       store.Store
	site        *renderer.SiteRenderer
	clock       clock.PassiveClock
	maxExamples int
	open        Opener
}

// New creates an Engine. Without options it persists to the default
// filesystem root and renders data docs next to it.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		clock:       clock.RealClock{},
		maxExamples: evaluator.DefaultMaxExamples,
		open:        rowsource.Open,
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.store == nil {
		fs, err := store.NewFilesystemStore(store.DefaultRoot())
		if err != nil {
			return nil, err
		}
		e.store = fs
		if e.site == nil {
			e.site = renderer.NewSiteRenderer(fs.Root())
		}
	}
	if e.site == nil {
		e.site = renderer.NewSiteRenderer(store.DefaultRoot())
	}

	return e, nil
}

// Store returns the engine's document store.
func (e *Engine) Store() store.Store {
	return e.store
}

// DocsDir returns the directory the data-docs site is generated into.
func (e *Engine) DocsDir() string {
	return e.site.SiteDir()
}

// CreateOrReplaceSuite validates and persists the suite, replacing any
// existing suite of the same name in full.
func (e *Engine) CreateOrReplaceSuite(ctx context.Context, s *suite.Suite) error {
	if s == nil {
		return fmt.Errorf("suite cannot be nil")
	}

	if err := e.store.SaveSuite(ctx, s); err != nil {
		return err
	}

	slog.Info("suite saved",
		"suite", s.Name,
		"rules", len(s.Rules),
	)
	return nil
}

// Validate runs the named suite against one data reference: load the suite,
// open the source, evaluate, persist the report. A report that fails its
// rules is still a successful run; only infrastructure failures (unknown
// suite, unreadable source, failed save) surface as errors.
func (e *Engine) Validate(ctx context.Context, suiteName, dataRef string) (*report.Report, error) {
	start := time.Now()
	rep, err := e.validate(ctx, suiteName, dataRef)
	e.observeRun(start, suiteName, dataRef, rep, err)
	return rep, err
}

// ValidateSource runs the named suite against an already open source, for
// callers that hold the data as a stream rather than a file reference (the
// API server's upload endpoint). The caller retains ownership of src and
// closes it.
func (e *Engine) ValidateSource(ctx context.Context, suiteName, sourceRef string, src rowsource.Source) (*report.Report, error) {
	start := time.Now()
	rep, err := e.validateSource(ctx, suiteName, sourceRef, src)
	e.observeRun(start, suiteName, sourceRef, rep, err)
	return rep, err
}

func (e *Engine) validate(ctx context.Context, suiteName, dataRef string) (*report.Report, error) {
	s, err := e.store.GetSuite(ctx, suiteName)
	if err != nil {
		return nil, err
	}

	src, err := e.open(ctx, dataRef)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := src.Close(); cerr != nil {
			slog.Warn("failed to close row source", "data", dataRef, "error", cerr)
		}
	}()

	return e.evaluateAndStore(ctx, s, dataRef, src)
}

func (e *Engine) validateSource(ctx context.Context, suiteName, sourceRef string, src rowsource.Source) (*report.Report, error) {
	s, err := e.store.GetSuite(ctx, suiteName)
	if err != nil {
		return nil, err
	}
	return e.evaluateAndStore(ctx, s, sourceRef, src)
}

func (e *Engine) evaluateAndStore(ctx context.Context, s *suite.Suite, sourceRef string, src rowsource.Source) (*report.Report, error) {
	ev := evaluator.New(
		evaluator.WithMaxExamples(e.maxExamples),
		evaluator.WithClock(e.clock),
	)
	rep, err := ev.Evaluate(ctx, s, src)
	if err != nil {
		return nil, err
	}

	rep.RunID = uuid.NewString()
	rep.Source = sourceRef

	if err := e.store.SaveReport(ctx, rep); err != nil {
		return nil, err
	}
	return rep, nil
}

func (e *Engine) observeRun(start time.Time, suiteName, sourceRef string, rep *report.Report, err error) {
	validationRunDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		validationRunTotal.WithLabelValues("error").Inc()
		return
	}
	validationRunTotal.WithLabelValues(string(rep.Summary.Status)).Inc()

	slog.Info("validation run complete",
		"suite", suiteName,
		"data", sourceRef,
		"run_id", rep.RunID,
		"rows", rep.RowCount,
		"status", rep.Summary.Status,
		"duration", time.Since(start).Round(time.Millisecond),
	)
}

// RunResult pairs one data reference with its run outcome. Exactly one of
// Report and Err is set.
type RunResult struct {
	DataRef string
	Report  *report.Report
	Err     error
}

// ValidateAll runs the named suite against every data reference in
// parallel. Runs are isolated: one run's infrastructure failure never
// aborts its siblings. Results are returned in input order.
func (e *Engine) ValidateAll(ctx context.Context, suiteName string, dataRefs []string) []RunResult {
	results := make([]RunResult, len(dataRefs))

	g, ctx := errgroup.WithContext(ctx)
	for i, ref := range dataRefs {
		i, ref := i, ref // per-iteration copies; required while go.mod targets go < 1.22
		g.Go(func() error {
			rep, err := e.Validate(ctx, suiteName, ref)
			results[i] = RunResult{DataRef: ref, Report: rep, Err: err}
			// Failures travel in the result, never through the group.
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// BuildDataDocs renders the data-docs site from every stored report and
// returns the site document.
func (e *Engine) BuildDataDocs(ctx context.Context) (*renderer.Document, error) {
	start := time.Now()

	reports, err := e.store.ListReports(ctx)
	if err != nil {
		return nil, err
	}

	doc, err := e.site.Build(ctx, reports)
	docsBuildDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return doc, err
	}
	return doc, nil
}
