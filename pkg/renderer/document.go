package renderer

import (
	"fmt"
	"time"
)

const (
	// KindConsole is a plain-text summary for terminal output.
	KindConsole Kind = "console"

	// KindSite is a static HTML site written to disk.
	KindSite Kind = "site"
)

// Kind identifies the form of a rendered document.
type Kind string

// Document is the output of a render pass. Console documents carry their
// content in Text; site documents list the files written under Path.
type Document struct {
	Kind        Kind
	Text        string
	Path        string
	Files       []string
	Size        int64
	Errors      []string
	Success     bool
	Duration    time.Duration
	GeneratedAt time.Time
}

// NewDocument creates an empty document of the given kind.
func NewDocument(kind Kind) *Document {
	return &Document{
		Kind:   kind,
		Files:  []string{},
		Errors: []string{},
	}
}

// AddFile records a written file and its size.
func (d *Document) AddFile(path string, size int64) {
	d.Files = append(d.Files, path)
	d.Size += size
}

// AddError records a non-fatal rendering error. Nil errors are ignored.
func (d *Document) AddError(err error) {
	if err == nil {
		return
	}
	d.Errors = append(d.Errors, err.Error())
}

// MarkSuccess marks the document as completely rendered.
func (d *Document) MarkSuccess() {
	d.Success = true
}

// HasErrors reports whether any rendering errors were recorded.
func (d *Document) HasErrors() bool {
	return len(d.Errors) > 0
}

// Summary returns a one-line account of the render pass.
func (d *Document) Summary() string {
	if d.Kind == KindConsole {
		return fmt.Sprintf("console summary, %s", formatBytes(int64(len(d.Text))))
	}
	return fmt.Sprintf("%d files, %s in %s",
		len(d.Files), formatBytes(d.Size), d.Duration.Round(time.Millisecond))
}

// formatBytes renders a byte count in human-readable units.
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
