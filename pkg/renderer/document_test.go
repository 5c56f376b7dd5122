package renderer

import (
	"strings"
	"testing"
	"time"
)

func TestNewDocument(t *testing.T) {
	doc := NewDocument(KindSite)

	if doc == nil {
		t.Fatal("NewDocument() returned nil")
		return
	}

	if doc.Kind != KindSite {
		t.Errorf("Kind = %v, want %v", doc.Kind, KindSite)
	}

	if doc.Files == nil {
		t.Error("Files should be initialized")
	}

	if doc.Errors == nil {
		t.Error("Errors should be initialized")
	}

	if doc.Success {
		t.Error("Success should be false initially")
	}
}

func TestDocument_AddFile(t *testing.T) {
	doc := NewDocument(KindSite)

	doc.AddFile("/site/index.html", 100)
	doc.AddFile("/site/runs/run-1.html", 200)

	if len(doc.Files) != 2 {
		t.Errorf("len(Files) = %d, want 2", len(doc.Files))
	}

	if doc.Size != 300 {
		t.Errorf("Size = %d, want 300", doc.Size)
	}

	if doc.Files[0] != "/site/index.html" {
		t.Errorf("Files[0] = %s, want /site/index.html", doc.Files[0])
	}
}

func TestDocument_AddError(t *testing.T) {
	doc := NewDocument(KindSite)

	doc.AddError(nil)

	if len(doc.Errors) != 0 {
		t.Errorf("len(Errors) = %d, want 0", len(doc.Errors))
	}

	doc.AddError(testError{msg: "render failed"})

	if len(doc.Errors) != 1 {
		t.Errorf("len(Errors) = %d, want 1", len(doc.Errors))
	}

	if doc.Errors[0] != "render failed" {
		t.Errorf("Errors[0] = %s, want 'render failed'", doc.Errors[0])
	}

	if !doc.HasErrors() {
		t.Error("HasErrors() should be true")
	}
}

func TestDocument_MarkSuccess(t *testing.T) {
	doc := NewDocument(KindConsole)

	if doc.Success {
		t.Error("Success should be false initially")
	}

	doc.MarkSuccess()

	if !doc.Success {
		t.Error("Success should be true after MarkSuccess()")
	}
}

func TestDocument_Summary(t *testing.T) {
	doc := NewDocument(KindSite)
	doc.AddFile("a.html", 1024*1024*5)
	doc.AddFile("b.html", 0)
	doc.AddFile("c.css", 0)
	doc.Duration = 2500 * time.Millisecond

	summary := doc.Summary()

	if !strings.Contains(summary, "3 files") {
		t.Errorf("Summary missing file count: %s", summary)
	}

	if !strings.Contains(summary, "5.0 MB") {
		t.Errorf("Summary missing size: %s", summary)
	}

	if !strings.Contains(summary, "2.5s") {
		t.Errorf("Summary missing duration: %s", summary)
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		name  string
		bytes int64
		want  string
	}{
		{"bytes", 100, "100 B"},
		{"kilobytes", 1024, "1.0 KB"},
		{"megabytes", 1024 * 1024, "1.0 MB"},
		{"gigabytes", 1024 * 1024 * 1024, "1.0 GB"},
		{"mixed", 1536, "1.5 KB"},
		{"large", 5 * 1024 * 1024, "5.0 MB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatBytes(tt.bytes)
			if got != tt.want {
				t.Errorf("formatBytes(%d) = %s, want %s", tt.bytes, got, tt.want)
			}
		})
	}
}

// testError is a simple error type for testing
type testError struct {
	msg string
}

func (e testError) Error() string {
	return e.msg
}
