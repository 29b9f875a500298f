// Package table provides the ordered-column numeric table that pipeline
// stages exchange, plus its CSV and XLSX serialization.
package table

import (
	"github.com/rotisserie/eris"
)

// ErrSourceNotFound indicates a required input artifact is missing. Callers
// report it and exit cleanly rather than treating it as a crash.
var ErrSourceNotFound = eris.New("source not found")

// ErrInvalidConfiguration indicates a caller-supplied parameter (particle
// count, column name, join key) is invalid.
var ErrInvalidConfiguration = eris.New("invalid configuration")

// Table is an in-memory numeric table with a fixed, ordered set of columns.
// Row order is preserved across all operations.
type Table struct {
	cols  []string
	index map[string]int
	rows  [][]float64
}

// New creates an empty table with the given column order.
func New(cols ...string) *Table {
	index := make(map[string]int, len(cols))
	for i, c := range cols {
		index[c] = i
	}
	return &Table{
		cols:  append([]string(nil), cols...),
		index: index,
	}
}

// Columns returns the column names in order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.cols...)
}

// Shape returns (rows, cols).
func (t *Table) Shape() (int, int) {
	return len(t.rows), len(t.cols)
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int { return len(t.rows) }

// HasColumn reports whether the table has a column with the given name.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// ColumnIndex returns the position of the named column.
func (t *Table) ColumnIndex(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// AppendRow adds a row. The number of values must match the column count.
func (t *Table) AppendRow(vals ...float64) error {
	if len(vals) != len(t.cols) {
		return eris.Wrapf(ErrInvalidConfiguration, "table: row has %d values, want %d", len(vals), len(t.cols))
	}
	t.rows = append(t.rows, append([]float64(nil), vals...))
	return nil
}

// Row returns the i-th row. The returned slice is the table's backing
// storage; callers must not modify it.
func (t *Table) Row(i int) []float64 {
	return t.rows[i]
}

// Value returns the value at (row, column name).
func (t *Table) Value(row int, name string) (float64, error) {
	i, ok := t.index[name]
	if !ok {
		return 0, eris.Wrapf(ErrInvalidConfiguration, "table: unknown column %q", name)
	}
	return t.rows[row][i], nil
}

// Column returns a copy of the named column's values.
func (t *Table) Column(name string) ([]float64, error) {
	i, ok := t.index[name]
	if !ok {
		return nil, eris.Wrapf(ErrInvalidConfiguration, "table: unknown column %q", name)
	}
	out := make([]float64, len(t.rows))
	for r, row := range t.rows {
		out[r] = row[i]
	}
	return out, nil
}

// AddColumn appends a derived column. The value count must match the row
// count and the name must be new.
func (t *Table) AddColumn(name string, vals []float64) error {
	if _, exists := t.index[name]; exists {
		return eris.Wrapf(ErrInvalidConfiguration, "table: column %q already exists", name)
	}
	if len(vals) != len(t.rows) {
		return eris.Wrapf(ErrInvalidConfiguration, "table: column %q has %d values, want %d", name, len(vals), len(t.rows))
	}
	t.index[name] = len(t.cols)
	t.cols = append(t.cols, name)
	for r := range t.rows {
		t.rows[r] = append(t.rows[r], vals[r])
	}
	return nil
}

// AppendTable appends all rows of other. Column names and order must match.
func (t *Table) AppendTable(other *Table) error {
	if len(other.cols) != len(t.cols) {
		return eris.Wrapf(ErrInvalidConfiguration, "table: append with %d columns, want %d", len(other.cols), len(t.cols))
	}
	for i, c := range t.cols {
		if other.cols[i] != c {
			return eris.Wrapf(ErrInvalidConfiguration, "table: append column %d is %q, want %q", i, other.cols[i], c)
		}
	}
	for _, row := range other.rows {
		t.rows = append(t.rows, append([]float64(nil), row...))
	}
	return nil
}
