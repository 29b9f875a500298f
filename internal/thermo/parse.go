package thermo

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/h204812/meltpoint/internal/table"
)

// ParseBlock tokenizes raw block rows on whitespace and coerces them to the
// positional schema. Any arity or numeric-coercion failure is fatal.
func ParseBlock(raw []string, cols []string) (*table.Table, error) {
	t := table.New(cols...)
	vals := make([]float64, len(cols))
	for n, line := range raw {
		fields := strings.Fields(line)
		if len(fields) != len(cols) {
			return nil, eris.Wrapf(ErrMalformedRow, "row %d has %d fields, want %d", n+1, len(fields), len(cols))
		}
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, eris.Wrapf(ErrMalformedRow, "row %d: non-numeric field %q", n+1, f)
			}
			vals[i] = v
		}
		if err := t.AppendRow(vals...); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Concat joins block tables preserving block and row order.
func Concat(blocks []*table.Table) (*table.Table, error) {
	if len(blocks) == 0 {
		return nil, ErrNoExtractableData
	}
	out := table.New(blocks[0].Columns()...)
	for _, b := range blocks {
		if err := out.AppendTable(b); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Dedup removes rows whose key value was already seen, keeping the first
// occurrence. KeepFirst is a policy, not an accident of ordering: blocks
// are discovered in file order, and the earlier, pre-restart row is treated
// as canonical when a new block renumbers from an overlapping checkpoint.
// Dedup is idempotent.
func Dedup(t *table.Table, key string) (*table.Table, error) {
	ki, ok := t.ColumnIndex(key)
	if !ok {
		return nil, eris.Wrapf(table.ErrInvalidConfiguration, "thermo: unknown dedup key %q", key)
	}
	out := table.New(t.Columns()...)
	seen := make(map[float64]bool, t.NumRows())
	for i := 0; i < t.NumRows(); i++ {
		row := t.Row(i)
		if seen[row[ki]] {
			continue
		}
		seen[row[ki]] = true
		if err := out.AppendRow(row...); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Extract runs the whole stage: locate headers, slice and parse each block,
// concatenate, deduplicate by step, and derive per-atom columns. It returns
// the cleaned thermo table; persisting it is the caller's final step.
func Extract(text string, opts Options) (*table.Table, error) {
	opts = opts.withDefaults()
	lines := splitLines(text)

	headers, err := LocateHeaders(lines, opts.HeaderKeyword)
	if err != nil {
		return nil, err
	}

	var blocks []*table.Table
	for _, h := range headers {
		raw := ExtractBlock(lines, h+1)
		if len(raw) == 0 {
			continue
		}
		blk, err := ParseBlock(raw, opts.Columns)
		if err != nil {
			return nil, eris.Wrapf(err, "block after header at line %d", h+1)
		}
		blocks = append(blocks, blk)
	}
	if len(blocks) == 0 {
		return nil, ErrNoExtractableData
	}
	zap.L().Debug("thermo blocks extracted",
		zap.Int("headers", len(headers)),
		zap.Int("blocks", len(blocks)))

	t, err := Concat(blocks)
	if err != nil {
		return nil, err
	}
	t, err = Dedup(t, opts.Columns[0])
	if err != nil {
		return nil, err
	}
	if err := DerivePerAtom(t, opts.Atoms); err != nil {
		return nil, err
	}
	return t, nil
}
