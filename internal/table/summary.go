package table

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ColumnStats holds the per-column summary reported after each stage.
type ColumnStats struct {
	Name string
	Min  float64
	Max  float64
	Mean float64
}

// Summary computes min/max/mean for every column. Returns nil for an empty
// table.
func (t *Table) Summary() []ColumnStats {
	if len(t.rows) == 0 {
		return nil
	}
	out := make([]ColumnStats, 0, len(t.cols))
	vals := make([]float64, len(t.rows))
	for i, name := range t.cols {
		for r, row := range t.rows {
			vals[r] = row[i]
		}
		out = append(out, ColumnStats{
			Name: name,
			Min:  floats.Min(vals),
			Max:  floats.Max(vals),
			Mean: stat.Mean(vals, nil),
		})
	}
	return out
}
