package trial

import (
	"movelab/domain/core"
)

// Record maps column name to a typed cell value
type Record map[string]Value

// Clone copies the record
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Frame is an ordered, in-memory table of trial records. Once a frame is
// published to downstream consumers it is treated as immutable: all
// transformations build a new frame.
type Frame struct {
	columns []string
	records []Record
}

// NewFrame builds a frame from a column list and records
func NewFrame(columns []string, records []Record) *Frame {
	return &Frame{
		columns: append([]string{}, columns...),
		records: records,
	}
}

// Len returns the number of records
func (f *Frame) Len() int {
	return len(f.records)
}

// IsEmpty reports whether the frame holds no records
func (f *Frame) IsEmpty() bool {
	return len(f.records) == 0
}

// Columns returns the column names in dataset order
func (f *Frame) Columns() []string {
	return append([]string{}, f.columns...)
}

// HasColumn reports whether a column exists
func (f *Frame) HasColumn(name string) bool {
	for _, c := range f.columns {
		if c == name {
			return true
		}
	}
	return false
}

// Record returns the record at index i
func (f *Frame) Record(i int) Record {
	return f.records[i]
}

// Value returns the cell at (row, column); missing when the column is absent
func (f *Frame) Value(i int, col string) Value {
	v, ok := f.records[i][col]
	if !ok {
		return NewMissingValue()
	}
	return v
}

// Column returns every value in a column, in record order
func (f *Frame) Column(name string) []Value {
	out := make([]Value, len(f.records))
	for i := range f.records {
		out[i] = f.Value(i, name)
	}
	return out
}

// Floats returns the numeric values of a column with missing and
// non-coercible cells skipped. Use it for column statistics, not for
// paired observations.
func (f *Frame) Floats(name string) []float64 {
	out := make([]float64, 0, len(f.records))
	for i := range f.records {
		if v, ok := f.Value(i, name).Float(); ok {
			out = append(out, v)
		}
	}
	return out
}

// PairedFloats returns row-aligned numeric values for two columns,
// dropping rows where either cell is not numeric.
func (f *Frame) PairedFloats(xCol, yCol string) (xs, ys []float64, err error) {
	if !f.HasColumn(xCol) {
		return nil, nil, core.NewColumnNotFoundError(xCol)
	}
	if !f.HasColumn(yCol) {
		return nil, nil, core.NewColumnNotFoundError(yCol)
	}
	for i := range f.records {
		x, okX := f.Value(i, xCol).Float()
		y, okY := f.Value(i, yCol).Float()
		if !okX || !okY {
			continue
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}
	return xs, ys, nil
}

// MissingRatio returns the fraction of missing cells in a column
func (f *Frame) MissingRatio(name string) float64 {
	if len(f.records) == 0 {
		return 0
	}
	missing := 0
	for i := range f.records {
		if f.Value(i, name).IsMissing() {
			missing++
		}
	}
	return float64(missing) / float64(len(f.records))
}

// DistinctStrings returns the distinct string renderings of a column in
// first-occurrence order. Partitioning follows dataset order, not a sort.
func (f *Frame) DistinctStrings(name string) []string {
	seen := make(map[string]bool)
	var out []string
	for i := range f.records {
		v := f.Value(i, name)
		if v.IsMissing() {
			continue
		}
		s := v.String()
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// Filter returns a new frame holding the records the predicate keeps.
// Records are shared, not copied; treat them as read-only.
func (f *Frame) Filter(keep func(Record) bool) *Frame {
	var kept []Record
	for _, rec := range f.records {
		if keep(rec) {
			kept = append(kept, rec)
		}
	}
	return NewFrame(f.columns, kept)
}

// CloneRecords deep-copies the record set for transformation steps
func (f *Frame) CloneRecords() []Record {
	out := make([]Record, len(f.records))
	for i, rec := range f.records {
		out[i] = rec.Clone()
	}
	return out
}
