// Package structural parses OVITO common-neighbor-analysis phase counts and
// derives the solid-fraction feature.
package structural

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/h204812/meltpoint/internal/table"
)

// ErrSchemaMismatch means a data row violated the positional six-column
// schema. Fatal: continuing would silently mis-assign phase counts.
var ErrSchemaMismatch = eris.New("structural: row does not match the expected schema")

// Columns is the positional structural schema. The file's own header labels
// are discarded as a format artifact; the caller is responsible for knowing
// the true column order.
var Columns = []string{"N_bcc", "N_fcc", "N_hcp", "N_other", "Frame", "Timestep"}

// Derived column names.
const (
	ColSolidCount    = "N_solid"
	ColSolidFraction = "Fraction_Solid"
)

// headerMarker is the comment character OVITO prefixes to the header line.
const headerMarker = "#"

// Parse reads structural source text. The first non-blank line is the
// header; exactly one leading marker character is stripped from it if
// present, and its labels are compared against the expected schema as a
// sanity check (warn only, parsing stays positional). Remaining non-blank
// lines must each hold one numeric value per schema column.
func Parse(text string, cols []string) (*table.Table, error) {
	if len(cols) == 0 {
		cols = Columns
	}

	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	t := table.New(cols...)
	vals := make([]float64, len(cols))
	headerSeen := false
	for n, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if !headerSeen {
			headerSeen = true
			checkHeader(strings.TrimPrefix(line, headerMarker), cols)
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != len(cols) {
			return nil, eris.Wrapf(ErrSchemaMismatch, "line %d has %d fields, want %d", n+1, len(fields), len(cols))
		}
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, eris.Wrapf(ErrSchemaMismatch, "line %d: non-numeric field %q", n+1, f)
			}
			vals[i] = v
		}
		if err := t.AppendRow(vals...); err != nil {
			return nil, err
		}
	}

	if !headerSeen {
		return nil, eris.Wrap(ErrSchemaMismatch, "structural: empty source")
	}
	return t, nil
}

// checkHeader warns when the file's declared labels disagree with the
// expected schema. Columns are still assigned by position; a hard failure
// here would reject files the pipeline has always accepted.
func checkHeader(header string, cols []string) {
	labels := strings.Fields(header)
	mismatch := len(labels) != len(cols)
	if !mismatch {
		for i, l := range labels {
			if !strings.EqualFold(l, cols[i]) {
				mismatch = true
				break
			}
		}
	}
	if mismatch {
		zap.L().Warn("structural header labels differ from expected schema; assigning columns by position",
			zap.Strings("declared", labels),
			zap.Strings("expected", cols))
	}
}

// DeriveSolidFraction adds N_solid (bcc+fcc+hcp) and Fraction_Solid
// (N_solid/atoms). Atoms classified "other" count as liquid.
func DeriveSolidFraction(t *table.Table, atoms int) error {
	if atoms <= 0 {
		return eris.Wrapf(table.ErrInvalidConfiguration, "structural: atom count must be positive, got %d", atoms)
	}

	var counts [3][]float64
	for i, name := range []string{"N_bcc", "N_fcc", "N_hcp"} {
		c, err := t.Column(name)
		if err != nil {
			return eris.Wrap(err, "structural: derive solid fraction")
		}
		counts[i] = c
	}

	n := float64(atoms)
	solid := make([]float64, t.NumRows())
	frac := make([]float64, t.NumRows())
	for i := range solid {
		solid[i] = counts[0][i] + counts[1][i] + counts[2][i]
		frac[i] = solid[i] / n
	}

	if err := t.AddColumn(ColSolidCount, solid); err != nil {
		return err
	}
	return t.AddColumn(ColSolidFraction, frac)
}
