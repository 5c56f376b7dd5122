package renderer

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"html/template"
	"log/slog"
	"os"

	"github.com/tablevet/tablevet/pkg/report"
)

// Renderer renders a validation report into a document.
type Renderer interface {
	Render(ctx context.Context, rep *report.Report) (*Document, error)
}

// templateRenderer resolves and executes named HTML templates.
type templateRenderer struct {
	// templateGetter retrieves template content by name.
	templateGetter func(name string) (string, bool)
}

func newTemplateRenderer(getter func(name string) (string, bool)) *templateRenderer {
	return &templateRenderer{
		templateGetter: getter,
	}
}

// Render renders a template with the given data.
func (r *templateRenderer) Render(name string, data map[string]any) (string, error) {
	tmplContent, ok := r.templateGetter(name)
	if !ok {
		return "", fmt.Errorf("template %s not found", name)
	}

	tmpl, err := template.New(name).Parse(tmplContent)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}

	return buf.String(), nil
}

// fileWriter writes site files and tracks them on the document.
type fileWriter struct {
	doc *Document
}

func newFileWriter(doc *Document) *fileWriter {
	return &fileWriter{
		doc: doc,
	}
}

// WriteFile writes content to a file with the specified permissions and
// records it on the document.
func (w *fileWriter) WriteFile(path string, content []byte, perm os.FileMode) error {
	if err := os.WriteFile(path, content, perm); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}

	w.doc.AddFile(path, int64(len(content)))

	slog.Debug("file written",
		"path", path,
		"size_bytes", len(content),
	)

	return nil
}

// WriteFileString writes string content to a file with the specified permissions.
func (w *fileWriter) WriteFileString(path, content string, perm os.FileMode) error {
	return w.WriteFile(path, []byte(content), perm)
}

// ComputeChecksum computes the SHA256 checksum of the given content.
func ComputeChecksum(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}
