// Package thermo extracts thermodynamic data blocks from raw LAMMPS log
// output and normalizes them into a single cleaned table.
//
// A LAMMPS log interleaves free-form commentary, per-run performance
// reports, and one thermo block per run stage. Each block starts at a
// header line ("Step Temp PotEng ...") and runs until the first line that
// is blank or does not lead with a non-negative integer. Blocks from
// consecutive run stages overlap at restart checkpoints, so step values
// repeat across block boundaries and must be deduplicated.
package thermo

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

var (
	// ErrNoHeaderFound means the log contains no thermo header lines at
	// all: the wrong file, not a formatting problem.
	ErrNoHeaderFound = eris.New("thermo: no header lines found")

	// ErrNoExtractableData means header lines exist but every block was
	// empty: the right file in a format the scanner cannot use.
	ErrNoExtractableData = eris.New("thermo: header lines present but no numeric data rows")

	// ErrMalformedRow means a row inside a block violated the positional
	// schema. Fatal for the whole file, since it indicates the block
	// boundary logic misfired.
	ErrMalformedRow = eris.New("thermo: malformed data row")
)

// Columns is the positional thermo block schema. Fields are assigned by
// position, never by the header's own labels.
var Columns = []string{"Step", "Temp", "PotEng", "TotEng", "Press", "Density"}

// DefaultHeaderKeyword is the token that opens a thermo block header line.
const DefaultHeaderKeyword = "Step"

// Derived per-atom column names.
const (
	ColPEPerAtom = "PE_per_atom"
	ColEPerAtom  = "E_per_atom"
)

// Options configures an extraction run. Zero fields fall back to the
// standard LAMMPS thermo layout; Atoms has no default and must be positive.
type Options struct {
	HeaderKeyword string
	Columns       []string
	Atoms         int
}

func (o Options) withDefaults() Options {
	if o.HeaderKeyword == "" {
		o.HeaderKeyword = DefaultHeaderKeyword
	}
	if len(o.Columns) == 0 {
		o.Columns = Columns
	}
	return o
}

// scanState is the block scanner's position within the log. The stopping
// condition lives entirely in the seeking/in-block transition rules below.
type scanState int

const (
	stateSeeking scanState = iota // outside any block, waiting for a header
	stateInBlock                  // accumulating numeric rows after a header
)

// isHeaderLine reports whether the trimmed line opens a thermo block.
func isHeaderLine(line, keyword string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), keyword)
}

// isDataLine reports whether a line is a block data row: non-empty after
// trimming, with a first whitespace-delimited token that parses as a
// non-negative integer. Everything else (blank lines, performance reports,
// the next header) terminates a block.
func isDataLine(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	_, err := strconv.ParseUint(fields[0], 10, 64)
	return err == nil
}

// LocateHeaders returns the indices of all header lines. An empty result is
// a hard stop: no data can be extracted from a log without headers.
func LocateHeaders(lines []string, keyword string) ([]int, error) {
	var idx []int
	for i, line := range lines {
		if isHeaderLine(line, keyword) {
			idx = append(idx, i)
		}
	}
	if len(idx) == 0 {
		return nil, ErrNoHeaderFound
	}
	return idx, nil
}

// ExtractBlock accumulates the maximal contiguous run of data rows starting
// at start (the line after a header). Zero accumulated rows is legal; empty
// blocks are skipped by the caller.
func ExtractBlock(lines []string, start int) []string {
	state := stateInBlock
	var rows []string
	for i := start; i < len(lines) && state == stateInBlock; i++ {
		if isDataLine(lines[i]) {
			rows = append(rows, strings.TrimSpace(lines[i]))
		} else {
			state = stateSeeking
		}
	}
	return rows
}

func splitLines(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}
