package rowsource

import (
	"io"
	"strings"
	"testing"
)

func TestBOMSkippingReader(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"with BOM", "\xEF\xBB\xBFhello", "hello"},
		{"without BOM", "hello", "hello"},
		{"BOM only", "\xEF\xBB\xBF", ""},
		{"empty", "", ""},
		{"shorter than BOM", "ab", "ab"},
		{"BOM bytes mid-stream kept", "ab\xEF\xBB\xBFcd", "ab\xEF\xBB\xBFcd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newBOMSkippingReader(strings.NewReader(tt.input))
			got, err := io.ReadAll(r)
			if err != nil {
				t.Fatalf("ReadAll: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCountingReader(t *testing.T) {
	input := "0123456789"
	c := newCountingReader(strings.NewReader(input))

	buf := make([]byte, 4)
	n, err := c.Read(buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if n != 4 {
		t.Fatalf("Read returned %d bytes, want 4", n)
	}
	if got := c.BytesRead(); got != 4 {
		t.Errorf("BytesRead() = %d after first read, want 4", got)
	}

	if _, err := io.ReadAll(c); err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if got := c.BytesRead(); got != int64(len(input)) {
		t.Errorf("BytesRead() = %d after drain, want %d", got, len(input))
	}
}
