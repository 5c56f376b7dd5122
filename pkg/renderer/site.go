package renderer

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"k8s.io/utils/clock"

	tverrors "github.com/tablevet/tablevet/pkg/errors"
	"github.com/tablevet/tablevet/pkg/report"
)

const (
	// SiteDirName is the directory the data-docs site is generated into,
	// relative to the renderer's root.
	SiteDirName = "data_docs"

	runsDirName   = "runs"
	staticDirName = "static"
)

// SiteOption configures a SiteRenderer.
type SiteOption func(*SiteRenderer)

// WithSiteClock replaces the wall clock used for page timestamps.
func WithSiteClock(c clock.PassiveClock) SiteOption {
	return func(r *SiteRenderer) {
		r.clock = c
	}
}

// SiteRenderer writes a static HTML data-docs site for validation reports:
// one page per run, an index listing all runs newest first, and a stylesheet.
type SiteRenderer struct {
	root    string
	clock   clock.PassiveClock
	printer *message.Printer
}

// NewSiteRenderer returns a renderer generating the site under root/data_docs.
func NewSiteRenderer(root string, opts ...SiteOption) *SiteRenderer {
	r := &SiteRenderer{
		root:    root,
		clock:   clock.RealClock{},
		printer: message.NewPrinter(language.English),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SiteDir returns the directory the site is generated into.
func (r *SiteRenderer) SiteDir() string {
	return filepath.Join(r.root, SiteDirName)
}

// IndexPath returns the path of the generated index page.
func (r *SiteRenderer) IndexPath() string {
	return filepath.Join(r.SiteDir(), "index.html")
}

// Render writes the run page for a single report. The index is left alone;
// use Build to regenerate the whole site.
func (r *SiteRenderer) Render(ctx context.Context, rep *report.Report) (*Document, error) {
	if rep == nil {
		return nil, fmt.Errorf("report cannot be nil")
	}

	doc := NewDocument(KindSite)
	doc.GeneratedAt = r.clock.Now().UTC()
	doc.Path = r.SiteDir()

	if err := r.createSiteDirs(); err != nil {
		return doc, err
	}

	writer := newFileWriter(doc)
	templates := newTemplateRenderer(getTemplate)

	if err := ctx.Err(); err != nil {
		return doc, err
	}
	if err := r.writeRunPage(rep, doc.GeneratedAt, templates, writer); err != nil {
		return doc, err
	}

	doc.MarkSuccess()
	return doc, nil
}

// Build regenerates the complete site for the given reports.
func (r *SiteRenderer) Build(ctx context.Context, reports []*report.Report) (*Document, error) {
	start := time.Now()
	doc := NewDocument(KindSite)
	doc.GeneratedAt = r.clock.Now().UTC()
	doc.Path = r.SiteDir()

	slog.Debug("building data docs site",
		"dir", doc.Path,
		"reports", len(reports),
	)

	if err := r.createSiteDirs(); err != nil {
		return doc, err
	}

	writer := newFileWriter(doc)
	templates := newTemplateRenderer(getTemplate)

	sorted := make([]*report.Report, len(reports))
	copy(sorted, reports)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].EvaluatedAt.Equal(sorted[j].EvaluatedAt) {
			return sorted[i].EvaluatedAt.After(sorted[j].EvaluatedAt)
		}
		return sorted[i].RunID < sorted[j].RunID
	})

	for _, rep := range sorted {
		if err := ctx.Err(); err != nil {
			return doc, err
		}
		if err := r.writeRunPage(rep, doc.GeneratedAt, templates, writer); err != nil {
			return doc, err
		}
	}

	if err := r.writeIndex(sorted, doc.GeneratedAt, templates, writer); err != nil {
		return doc, err
	}
	if err := r.writeStylesheet(writer); err != nil {
		return doc, err
	}
	if err := r.writeChecksums(doc, writer); err != nil {
		return doc, err
	}

	doc.Duration = time.Since(start)
	doc.MarkSuccess()

	slog.Info("data docs site generated",
		"files", len(doc.Files),
		"size_bytes", doc.Size,
		"duration", doc.Duration.Round(time.Millisecond),
	)

	return doc, nil
}

func (r *SiteRenderer) createSiteDirs() error {
	dirs := []string{
		r.SiteDir(),
		filepath.Join(r.SiteDir(), runsDirName),
		filepath.Join(r.SiteDir(), staticDirName),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return tverrors.Wrap(tverrors.ErrCodeIOFailure,
				fmt.Sprintf("cannot create site directory %q", dir), err)
		}
	}
	return nil
}

func (r *SiteRenderer) writeRunPage(rep *report.Report, generatedAt time.Time,
	templates *templateRenderer, writer *fileWriter) error {

	content, err := templates.Render("run.html", r.runPageData(rep, generatedAt))
	if err != nil {
		return tverrors.Wrap(tverrors.ErrCodeInternal, "failed to render run page", err)
	}

	path := filepath.Join(r.SiteDir(), runsDirName, runPageName(rep))
	if err := writer.WriteFileString(path, content, 0o644); err != nil {
		return tverrors.Wrap(tverrors.ErrCodeIOFailure, "failed to write run page", err)
	}
	return nil
}

func (r *SiteRenderer) writeIndex(reports []*report.Report, generatedAt time.Time,
	templates *templateRenderer, writer *fileWriter) error {

	content, err := templates.Render("index.html", r.indexData(reports, generatedAt))
	if err != nil {
		return tverrors.Wrap(tverrors.ErrCodeInternal, "failed to render index page", err)
	}

	if err := writer.WriteFileString(r.IndexPath(), content, 0o644); err != nil {
		return tverrors.Wrap(tverrors.ErrCodeIOFailure, "failed to write index page", err)
	}
	return nil
}

func (r *SiteRenderer) writeStylesheet(writer *fileWriter) error {
	path := filepath.Join(r.SiteDir(), staticDirName, "style.css")
	if err := writer.WriteFileString(path, stylesheet, 0o644); err != nil {
		return tverrors.Wrap(tverrors.ErrCodeIOFailure, "failed to write stylesheet", err)
	}
	return nil
}

// writeChecksums generates a checksums file over everything written so far.
func (r *SiteRenderer) writeChecksums(doc *Document, writer *fileWriter) error {
	var content bytes.Buffer
	fmt.Fprintf(&content, "# Data Docs Checksums (SHA256)\n")
	fmt.Fprintf(&content, "# Generated: %s\n\n", doc.GeneratedAt.Format(time.RFC3339))

	for _, file := range doc.Files {
		data, err := os.ReadFile(file)
		if err != nil {
			return tverrors.Wrap(tverrors.ErrCodeIOFailure,
				fmt.Sprintf("cannot read %q for checksum", file), err)
		}

		relPath, err := filepath.Rel(r.SiteDir(), file)
		if err != nil {
			relPath = filepath.Base(file)
		}

		fmt.Fprintf(&content, "%s  %s\n", ComputeChecksum(data), relPath)
	}

	path := filepath.Join(r.SiteDir(), "checksums.txt")
	if err := writer.WriteFileString(path, content.String(), 0o644); err != nil {
		return tverrors.Wrap(tverrors.ErrCodeIOFailure, "failed to write checksums file", err)
	}
	return nil
}

func (r *SiteRenderer) runPageData(rep *report.Report, generatedAt time.Time) map[string]any {
	outcomes := make([]map[string]any, 0, len(rep.Outcomes))
	for _, out := range rep.Outcomes {
		outcomes = append(outcomes, map[string]any{
			"Kind":       string(out.Rule.Kind),
			"Column":     out.Rule.Column,
			"Rule":       out.Rule.Describe(),
			"Status":     outcomeStatus(out),
			"Observed":   r.printer.Sprintf("%d", out.Observed),
			"Violations": r.printer.Sprintf("%d", out.Violations),
			"Percent":    fmt.Sprintf("%.2f%%", out.ViolationFraction*100),
			"Samples":    strings.Join(out.Examples, ", "),
			"Message":    out.Message,
		})
	}

	return map[string]any{
		"SuiteName":   rep.SuiteName,
		"RunID":       rep.RunID,
		"Source":      rep.Source,
		"Status":      reportStatus(rep),
		"Rows":        r.printer.Sprintf("%d", rep.RowCount),
		"EvaluatedAt": rep.EvaluatedAt.Format(time.RFC3339),
		"Passed":      rep.Summary.Passed,
		"Failed":      rep.Summary.Failed,
		"Errored":     rep.Summary.Errored,
		"Total":       rep.Summary.Total,
		"Outcomes":    outcomes,
		"GeneratedAt": generatedAt.Format(time.RFC3339),
	}
}

func (r *SiteRenderer) indexData(reports []*report.Report, generatedAt time.Time) map[string]any {
	runs := make([]map[string]any, 0, len(reports))
	for _, rep := range reports {
		runs = append(runs, map[string]any{
			"RunID":       rep.RunID,
			"Suite":       rep.SuiteName,
			"Source":      rep.Source,
			"EvaluatedAt": rep.EvaluatedAt.Format(time.RFC3339),
			"Rows":        r.printer.Sprintf("%d", rep.RowCount),
			"Rules":       fmt.Sprintf("%d/%d", rep.Summary.Passed, rep.Summary.Total),
			"Status":      reportStatus(rep),
			"Page":        runsDirName + "/" + runPageName(rep),
		})
	}

	return map[string]any{
		"Runs":        runs,
		"GeneratedAt": generatedAt.Format(time.RFC3339),
	}
}

// runPageName names the HTML page for a report. Reports saved without a run
// ID collapse onto a single page.
func runPageName(rep *report.Report) string {
	if rep.RunID == "" {
		return "latest.html"
	}
	return rep.RunID + ".html"
}

func reportStatus(rep *report.Report) string {
	if rep.Success {
		return "passed"
	}
	return "failed"
}

func outcomeStatus(out report.RuleOutcome) string {
	switch {
	case out.Errored:
		return "errored"
	case out.Success:
		return "passed"
	default:
		return "failed"
	}
}

var _ Renderer = (*SiteRenderer)(nil)
