package main

import (
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/h204812/meltpoint/internal/model"
	"github.com/h204812/meltpoint/internal/table"
	"github.com/h204812/meltpoint/internal/thermo"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract and clean thermo blocks from a raw LAMMPS log",
	Long: `Scans a raw LAMMPS log for thermo data blocks, concatenates them into a
single table, removes duplicate steps left behind by restart overlaps, adds
per-atom energy columns, and writes the cleaned table as CSV.

The cleaned table is the input to the merge stage.

Examples:
  # Defaults from config (output/thermo_data.dat -> output/cleaned_thermo_data.csv)
  meltpoint extract

  # Explicit paths
  meltpoint extract --input run3/log.lammps --output run3/cleaned.csv`,
	RunE: runExtract,
}

func init() {
	f := extractCmd.Flags()
	f.String("input", "", "raw log file (default from config)")
	f.String("output", "", "cleaned table destination (default from config)")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	if err := cfg.Validate(); err != nil {
		return err
	}
	log := zap.L().With(zap.String("command", "extract"))

	input := flagOr(cmd, "input", cfg.Paths.RawLog)
	output := flagOr(cmd, "output", cfg.Paths.CleanedThermo)
	started := time.Now()

	fail := func(err error) error {
		recordRun(ctx, &model.Run{
			Stage:     model.StageExtract,
			Inputs:    []string{input},
			Status:    model.RunStatusFailed,
			Error:     err.Error(),
			StartedAt: started,
			Duration:  time.Since(started),
		})
		return err
	}

	log.Info("reading raw log", zap.String("path", input))
	data, err := os.ReadFile(input)
	if err != nil {
		if eris.Is(err, fs.ErrNotExist) {
			return fail(eris.Wrapf(table.ErrSourceNotFound, "extract: raw log %s", input))
		}
		return fail(eris.Wrapf(err, "extract: read %s", input))
	}

	tbl, err := thermo.Extract(string(data), thermo.Options{
		HeaderKeyword: cfg.Sim.HeaderKeyword,
		Columns:       cfg.Sim.ThermoColumns,
		Atoms:         cfg.Sim.Atoms,
	})
	if err != nil {
		return fail(eris.Wrapf(err, "extract: %s", input))
	}

	// Persisting is the last step; no artifact exists unless everything
	// above succeeded.
	if err := tbl.WriteCSV(output); err != nil {
		return fail(err)
	}

	rows, cols := tbl.Shape()
	logSummary(log, tbl)
	log.Info("cleaned thermo table written",
		zap.String("path", output),
		zap.Int("rows", rows),
		zap.Int("cols", cols))
	fmt.Printf("Cleaned thermo table saved to %s. Shape: (%d, %d)\n", output, rows, cols)

	recordRun(ctx, &model.Run{
		Stage:     model.StageExtract,
		Inputs:    []string{input},
		Output:    output,
		Rows:      rows,
		Cols:      cols,
		Status:    model.RunStatusComplete,
		StartedAt: started,
		Duration:  time.Since(started),
	})
	return nil
}

// flagOr returns the flag value, or def when the flag was not set.
func flagOr(cmd *cobra.Command, name, def string) string {
	v, _ := cmd.Flags().GetString(name)
	if v == "" {
		return def
	}
	return v
}

// logSummary logs per-column min/max/mean for operator visibility.
func logSummary(log *zap.Logger, t *table.Table) {
	for _, s := range t.Summary() {
		log.Debug("column summary",
			zap.String("column", s.Name),
			zap.Float64("min", s.Min),
			zap.Float64("max", s.Max),
			zap.Float64("mean", s.Mean))
	}
}
