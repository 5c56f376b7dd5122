package serializer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"sort"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// Format identifies an output serialization format.
type Format string

const (
	// FormatJSON emits indented JSON.
	FormatJSON Format = "json"
	// FormatYAML emits YAML.
	FormatYAML Format = "yaml"
	// FormatTable emits a flattened two-column FIELD/VALUE table.
	FormatTable Format = "table"
)

// IsUnknown reports whether f is not one of the supported formats.
func (f Format) IsUnknown() bool {
	switch f {
	case FormatJSON, FormatYAML, FormatTable:
		return false
	}
	return true
}

// SupportedFormats returns the names of all supported output formats.
func SupportedFormats() []string {
	return []string{string(FormatJSON), string(FormatYAML), string(FormatTable)}
}

// Writer serializes values to a destination in a fixed format.
type Writer interface {
	Serialize(ctx context.Context, data any) error
}

// Closer is implemented by writers holding a resource that must be released.
// Close is safe to call more than once.
type Closer interface {
	Close() error
}

type writer struct {
	format Format
	out    io.Writer
	file   *os.File
	closed bool
}

// NewWriter returns a Writer emitting the given format to out. Unknown
// formats fall back to JSON so callers always get usable output.
func NewWriter(format Format, out io.Writer) Writer {
	if format.IsUnknown() {
		format = FormatJSON
	}
	if out == nil {
		out = os.Stdout
	}
	return &writer{format: format, out: out}
}

// NewStdoutWriter returns a Writer emitting the given format to stdout.
func NewStdoutWriter(format Format) Writer {
	return NewWriter(format, os.Stdout)
}

// NewFileWriterOrStdout returns a Writer for the given path. An empty,
// whitespace-only or "-" path selects stdout. URI-style paths are rejected:
// the writer only targets local files. File-backed writers implement Closer.
func NewFileWriterOrStdout(format Format, path string) (Writer, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" || trimmed == StdoutURI {
		return NewStdoutWriter(format), nil
	}

	if scheme, ok := uriScheme(trimmed); ok {
		return nil, fmt.Errorf("unsupported output URI scheme %q: only local file paths and %q are accepted", scheme, StdoutURI)
	}

	f, err := os.Create(trimmed)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file %q: %w", trimmed, err)
	}

	if format.IsUnknown() {
		format = FormatJSON
	}
	return &writer{format: format, out: f, file: f}, nil
}

// uriScheme reports whether the path looks like a URI ("scheme://...").
func uriScheme(path string) (string, bool) {
	idx := strings.Index(path, "://")
	if idx <= 0 {
		return "", false
	}
	return path[:idx], true
}

// Serialize writes data to the writer's destination in its format.
func (w *writer) Serialize(ctx context.Context, data any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	switch w.format {
	case FormatYAML:
		return w.serializeYAML(data)
	case FormatTable:
		return w.serializeTable(data)
	default:
		return w.serializeJSON(data)
	}
}

// Close releases the underlying file, if any. Stdout-backed writers are a
// no-op. Safe to call multiple times.
func (w *writer) Close() error {
	if w.file == nil || w.closed {
		return nil
	}
	w.closed = true
	return w.file.Close()
}

func (w *writer) serializeJSON(data any) error {
	j, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize to json: %w", err)
	}
	_, err = fmt.Fprintln(w.out, string(j))
	return err
}

func (w *writer) serializeYAML(data any) error {
	y, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to serialize to yaml: %w", err)
	}
	_, err = w.out.Write(y)
	return err
}

func (w *writer) serializeTable(data any) error {
	rows := flatten("", reflect.ValueOf(data))

	tw := tabwriter.NewWriter(w.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FIELD\tVALUE")
	if len(rows) == 0 {
		fmt.Fprintln(tw, "<empty>\t")
	}
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%s\n", row.key, row.value)
	}
	return tw.Flush()
}

type tableRow struct {
	key   string
	value string
}

// flatten walks v producing dotted/indexed leaf keys: struct fields become
// "Parent.Field", slice elements "[i]", map entries sorted by key.
func flatten(prefix string, v reflect.Value) []tableRow {
	if !v.IsValid() {
		return leafRow(prefix, "<nil>")
	}

	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return leafRow(prefix, "<nil>")
		}
		return flatten(prefix, v.Elem())

	case reflect.Struct:
		var rows []tableRow
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}
			rows = append(rows, flatten(joinKey(prefix, field.Name), v.Field(i))...)
		}
		return rows

	case reflect.Slice, reflect.Array:
		var rows []tableRow
		for i := 0; i < v.Len(); i++ {
			rows = append(rows, flatten(fmt.Sprintf("%s[%d]", prefix, i), v.Index(i))...)
		}
		return rows

	case reflect.Map:
		keys := make([]string, 0, v.Len())
		byKey := make(map[string]reflect.Value, v.Len())
		for _, k := range v.MapKeys() {
			ks := fmt.Sprintf("%v", k.Interface())
			keys = append(keys, ks)
			byKey[ks] = v.MapIndex(k)
		}
		sort.Strings(keys)
		var rows []tableRow
		for _, k := range keys {
			rows = append(rows, flatten(joinKey(prefix, k), byKey[k])...)
		}
		return rows

	default:
		return leafRow(prefix, fmt.Sprintf("%v", v.Interface()))
	}
}

func leafRow(key, value string) []tableRow {
	if key == "" {
		key = "<root>"
	}
	return []tableRow{{key: key, value: value}}
}

func joinKey(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}
