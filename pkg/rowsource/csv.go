package rowsource

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	tverrors "github.com/tablevet/tablevet/pkg/errors"
	"github.com/tablevet/tablevet/pkg/record"
	"github.com/tablevet/tablevet/pkg/serializer"
)

// Option configures a CSV source.
type Option func(*options)

type options struct {
	comma       rune
	omitColumns []string
}

// WithComma sets the field delimiter (default ',').
func WithComma(c rune) Option {
	return func(o *options) {
		o.comma = c
	}
}

// WithOmitColumns drops columns matching the wildcard patterns from the
// schema and every record.
func WithOmitColumns(patterns []string) Option {
	return func(o *options) {
		o.omitColumns = append(o.omitColumns, patterns...)
	}
}

// CSVSource streams records from CSV input. The header row is consumed at
// construction time to derive the schema; rows are parsed lazily one call
// at a time, so inputs of any size evaluate in constant memory.
type CSVSource struct {
	rc       io.Closer
	counting *countingReader
	reader   *csv.Reader

	schema    record.Schema
	projected bool
	raw       record.Schema
	positions []int

	rows int64
}

// Open resolves ref to a CSV source. Supported refs: a local file path,
// "-" for stdin, or an http(s) URL. Open implements Opener.
func Open(ctx context.Context, ref string, opts ...Option) (Source, error) {
	trimmed := strings.TrimSpace(ref)

	var (
		rc  io.ReadCloser
		err error
	)
	switch {
	case trimmed == serializer.StdoutURI:
		rc = io.NopCloser(os.Stdin)

	case strings.HasPrefix(trimmed, serializer.HTTPScheme), strings.HasPrefix(trimmed, serializer.HTTPSScheme):
		rc, err = openURL(ctx, trimmed)
		if err != nil {
			return nil, err
		}

	default:
		f, ferr := os.Open(trimmed)
		if ferr != nil {
			return nil, tverrors.Wrap(tverrors.ErrCodeIOFailure,
				fmt.Sprintf("cannot open data file %q", trimmed), ferr)
		}
		rc = f
	}

	src, err := New(rc, opts...)
	if err != nil {
		rc.Close()
		return nil, err
	}
	src.rc = rc
	return src, nil
}

func openURL(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, tverrors.Wrap(tverrors.ErrCodeIOFailure,
			fmt.Sprintf("cannot build request for %q", url), err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, tverrors.Wrap(tverrors.ErrCodeIOFailure,
			fmt.Sprintf("cannot fetch data from %q", url), err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, tverrors.Newf(tverrors.ErrCodeIOFailure,
			"cannot fetch data from %q: unexpected status %d", url, resp.StatusCode)
	}
	return resp.Body, nil
}

// New builds a CSVSource over r and consumes the header row. An input with
// no header row is a SCHEMA_UNAVAILABLE error; the schema of the records
// never changes afterwards.
func New(r io.Reader, opts ...Option) (*CSVSource, error) {
	o := &options{comma: ','}
	for _, opt := range opts {
		opt(o)
	}

	counting := newCountingReader(r)
	cr := csv.NewReader(newBOMSkippingReader(counting))
	cr.Comma = o.comma
	cr.FieldsPerRecord = -1 // rows are padded/truncated to the header
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, tverrors.New(tverrors.ErrCodeSchemaUnavailable, "input has no header row")
		}
		return nil, tverrors.Wrap(tverrors.ErrCodeSchemaUnavailable, "cannot read header row", err)
	}

	columns := make([]string, len(header))
	copy(columns, header)
	schema := record.NewSchema(columns)

	src := &CSVSource{
		counting: counting,
		reader:   cr,
		schema:   schema,
		raw:      schema,
	}

	if len(o.omitColumns) > 0 {
		target, positions := schema.Omit(o.omitColumns)
		src.schema = target
		src.projected = true
		src.positions = positions
	}

	return src, nil
}

// Schema implements Source.
func (s *CSVSource) Schema() record.Schema {
	return s.schema
}

// Next implements Source. Read failures mid-stream are IO_FAILURE errors.
func (s *CSVSource) Next() (record.Record, error) {
	row, err := s.reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return record.Record{}, io.EOF
		}
		return record.Record{}, tverrors.Wrap(tverrors.ErrCodeIOFailure,
			fmt.Sprintf("cannot read row %d", s.rows+1), err)
	}

	values := make([]record.Value, len(row))
	for i, cell := range row {
		values[i] = record.Parse(cell)
	}

	rec := record.New(s.raw, values)
	if s.projected {
		rec = rec.Project(s.schema, s.positions)
	}

	s.rows++
	return rec, nil
}

// Close implements Source. Safe for sources built over plain readers.
func (s *CSVSource) Close() error {
	if s.rc == nil {
		return nil
	}
	return s.rc.Close()
}

// RowsRead returns the number of data rows parsed so far.
func (s *CSVSource) RowsRead() int64 {
	return s.rows
}

// BytesRead returns the number of input bytes consumed so far.
func (s *CSVSource) BytesRead() int64 {
	return s.counting.BytesRead()
}
