package table

import (
	"encoding/csv"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rotisserie/eris"
)

// FormatValue renders a cell for serialization. Integer-valued fields (step
// counters, phase counts) round-trip without a decimal point; everything
// else keeps full float64 precision.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteCSV persists the table with a header row. The parent directory is
// created if needed. Writing happens only after the caller has finished all
// validation; a failed stage never leaves a partial artifact behind.
func (t *Table) WriteCSV(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return eris.Wrapf(err, "table: create directory %s", dir)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "table: create %s", path)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(t.cols); err != nil {
		return eris.Wrapf(err, "table: write header to %s", path)
	}
	record := make([]string, len(t.cols))
	for _, row := range t.rows {
		for i, v := range row {
			record[i] = FormatValue(v)
		}
		if err := w.Write(record); err != nil {
			return eris.Wrapf(err, "table: write row to %s", path)
		}
	}

	w.Flush()
	return eris.Wrapf(w.Error(), "table: flush %s", path)
}

// ReadCSV loads a table previously written by WriteCSV. A missing file maps
// to ErrSourceNotFound so each stage stays independently runnable.
func ReadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if eris.Is(err, fs.ErrNotExist) {
			return nil, eris.Wrapf(ErrSourceNotFound, "table: %s", path)
		}
		return nil, eris.Wrapf(err, "table: open %s", path)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, eris.Wrapf(err, "table: read %s", path)
	}
	if len(records) == 0 {
		return nil, eris.Wrapf(ErrSourceNotFound, "table: %s is empty", path)
	}

	t := New(records[0]...)
	vals := make([]float64, len(records[0]))
	for n, record := range records[1:] {
		if len(record) != len(records[0]) {
			return nil, eris.Wrapf(ErrInvalidConfiguration, "table: %s row %d has %d fields, want %d", path, n+1, len(record), len(records[0]))
		}
		for i, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, eris.Wrapf(err, "table: %s row %d: non-numeric field %q", path, n+1, field)
			}
			vals[i] = v
		}
		if err := t.AppendRow(vals...); err != nil {
			return nil, err
		}
	}
	return t, nil
}
