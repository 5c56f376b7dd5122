package rowsource

import (
	"context"
	"io"

	"github.com/tablevet/tablevet/pkg/record"
)

// Source yields the records of one tabular input in order. Implementations
// must return io.EOF from Next after the last record and be safe to Close
// on every exit path, including after errors.
type Source interface {
	// Schema returns the column set derived from the input's header.
	Schema() record.Schema

	// Next returns the next record, or io.EOF when the input is exhausted.
	Next() (record.Record, error)

	Close() error
}

// Opener resolves a location reference into a Source. The engine depends on
// this type so tests can inject in-memory inputs.
type Opener func(ctx context.Context, ref string, opts ...Option) (Source, error)

// MemorySource is an in-memory Source for tests and pre-parsed inputs.
type MemorySource struct {
	schema record.Schema
	rows   []record.Record
	pos    int
	closed bool
}

// NewMemorySource builds a source over pre-parsed rows. Each row is padded
// or truncated to the schema.
func NewMemorySource(schema record.Schema, rows [][]record.Value) *MemorySource {
	records := make([]record.Record, len(rows))
	for i, row := range rows {
		records[i] = record.New(schema, row)
	}
	return &MemorySource{schema: schema, rows: records}
}

// Schema implements Source.
func (m *MemorySource) Schema() record.Schema {
	return m.schema
}

// Next implements Source.
func (m *MemorySource) Next() (record.Record, error) {
	if m.pos >= len(m.rows) {
		return record.Record{}, io.EOF
	}
	r := m.rows[m.pos]
	m.pos++
	return r, nil
}

// Close implements Source.
func (m *MemorySource) Close() error {
	m.closed = true
	return nil
}

// Closed reports whether Close was called; used by tests asserting the
// engine releases sources on every path.
func (m *MemorySource) Closed() bool {
	return m.closed
}
