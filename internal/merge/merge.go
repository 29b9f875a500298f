// Package merge joins the cleaned thermo table with structural features
// into the final dataset.
package merge

import (
	"io/fs"
	"os"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/h204812/meltpoint/internal/structural"
	"github.com/h204812/meltpoint/internal/table"
)

// LoadThermo re-reads the persisted cleaned thermo table. The merge stage
// never takes an in-memory handoff from extraction, so it stays runnable on
// its own; a missing artifact surfaces as table.ErrSourceNotFound.
func LoadThermo(path string) (*table.Table, error) {
	t, err := table.ReadCSV(path)
	if err != nil {
		return nil, eris.Wrap(err, "merge: load thermo")
	}
	return t, nil
}

// LoadStructural reads and parses the structural counts file.
func LoadStructural(path string, cols []string) (*table.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if eris.Is(err, fs.ErrNotExist) {
			return nil, eris.Wrapf(table.ErrSourceNotFound, "merge: structural source %s", path)
		}
		return nil, eris.Wrapf(err, "merge: read %s", path)
	}
	t, err := structural.Parse(string(data), cols)
	if err != nil {
		return nil, eris.Wrapf(err, "merge: parse %s", path)
	}
	return t, nil
}

// Join inner-joins left and right on leftKey == rightKey, carrying the
// named right-side columns into the output. Rows without a match on either
// side are dropped, never null-filled; the right key column itself is not
// carried. Output columns are the left table's columns in order followed by
// the carried columns.
//
// Duplicate right-side keys keep their first occurrence, mirroring the
// KeepFirst dedup policy on the left side.
func Join(left, right *table.Table, leftKey, rightKey string, carry ...string) (*table.Table, error) {
	li, ok := left.ColumnIndex(leftKey)
	if !ok {
		return nil, eris.Wrapf(table.ErrInvalidConfiguration, "merge: unknown left join key %q", leftKey)
	}
	ri, ok := right.ColumnIndex(rightKey)
	if !ok {
		return nil, eris.Wrapf(table.ErrInvalidConfiguration, "merge: unknown right join key %q", rightKey)
	}
	carryIdx := make([]int, len(carry))
	for i, name := range carry {
		ci, ok := right.ColumnIndex(name)
		if !ok {
			return nil, eris.Wrapf(table.ErrInvalidConfiguration, "merge: unknown carry column %q", name)
		}
		carryIdx[i] = ci
	}

	rightByKey := make(map[float64]int, right.NumRows())
	for i := 0; i < right.NumRows(); i++ {
		k := right.Row(i)[ri]
		if _, seen := rightByKey[k]; !seen {
			rightByKey[k] = i
		}
	}

	out := table.New(append(left.Columns(), carry...)...)
	dropped := 0
	row := make([]float64, 0, len(left.Columns())+len(carry))
	for i := 0; i < left.NumRows(); i++ {
		lrow := left.Row(i)
		rIdx, match := rightByKey[lrow[li]]
		if !match {
			dropped++
			continue
		}
		row = row[:0]
		row = append(row, lrow...)
		for _, ci := range carryIdx {
			row = append(row, right.Row(rIdx)[ci])
		}
		if err := out.AppendRow(row...); err != nil {
			return nil, err
		}
	}

	if dropped > 0 {
		zap.L().Debug("join dropped unmatched rows",
			zap.Int("dropped", dropped),
			zap.Int("kept", out.NumRows()))
	}
	return out, nil
}
