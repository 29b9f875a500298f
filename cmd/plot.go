package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/h204812/meltpoint/internal/merge"
	"github.com/h204812/meltpoint/internal/plotting"
)

var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Render melting curves from the cleaned thermo table",
	Long: `Plots potential energy per atom, density, and pressure against
temperature for the heating phase (rows at or after --min-step) as three
stacked panels.

Examples:
  meltpoint plot
  meltpoint plot --input run3/cleaned.csv --output run3/curves.png --min-step 0`,
	RunE: runPlot,
}

func init() {
	f := plotCmd.Flags()
	f.String("input", "", "cleaned thermo table (default from config)")
	f.String("output", "", "PNG destination (default from config)")
	f.Int("min-step", -1, "keep rows with Step >= this value (default from config)")

	rootCmd.AddCommand(plotCmd)
}

func runPlot(cmd *cobra.Command, _ []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	log := zap.L().With(zap.String("command", "plot"))

	input := flagOr(cmd, "input", cfg.Paths.CleanedThermo)
	output := flagOr(cmd, "output", cfg.Paths.Plot)
	minStep, _ := cmd.Flags().GetInt("min-step")
	if minStep < 0 {
		minStep = cfg.Plot.MinStep
	}

	tbl, err := merge.LoadThermo(input)
	if err != nil {
		return err
	}

	if err := plotting.RenderMeltingCurves(tbl, plotting.Options{MinStep: float64(minStep)}, output); err != nil {
		return err
	}

	log.Info("melting curves rendered",
		zap.String("path", output),
		zap.Int("min_step", minStep))
	fmt.Printf("Melting curve figure saved to %s\n", output)
	return nil
}
