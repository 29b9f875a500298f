package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/h204812/meltpoint/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "meltpoint",
	Short: "Melting-point simulation data pipeline",
	Long:  "Extracts thermo blocks from raw LAMMPS logs, joins them with OVITO structural phase counts, and emits the combined per-step dataset.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
