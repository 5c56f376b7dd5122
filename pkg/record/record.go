package record

// Record is one input row: the schema's columns paired with this row's
// values. Records share their schema, so per-row allocation is limited to
// the value slice.
type Record struct {
	schema Schema
	values []Value
}

// New builds a record over schema. Rows shorter than the schema are padded
// with nulls; extra values are dropped.
func New(schema Schema, values []Value) Record {
	if len(values) < schema.Len() {
		padded := make([]Value, schema.Len())
		copy(padded, values)
		values = padded
	} else if len(values) > schema.Len() {
		values = values[:schema.Len()]
	}
	return Record{schema: schema, values: values}
}

// Schema returns the schema the record was produced under.
func (r Record) Schema() Schema {
	return r.schema
}

// Value returns the value in the named column and whether the column exists.
func (r Record) Value(column string) (Value, bool) {
	i, ok := r.schema.Index(column)
	if !ok {
		return Value{}, false
	}
	return r.values[i], true
}

// At returns the value at the given column position.
func (r Record) At(i int) Value {
	return r.values[i]
}

// Len returns the number of columns.
func (r Record) Len() int {
	return len(r.values)
}

// Project returns a record over the target schema keeping only the values
// at the given original positions. Used together with Schema.Omit.
func (r Record) Project(target Schema, positions []int) Record {
	values := make([]Value, len(positions))
	for i, pos := range positions {
		values[i] = r.values[pos]
	}
	return Record{schema: target, values: values}
}
