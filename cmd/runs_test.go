package main

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/h204812/meltpoint/internal/model"
)

func TestFormatRunsList(t *testing.T) {
	started := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	runs := []model.Run{
		{
			ID:        "7c9e6679-7425-40de-944b-e07fc1f90ae7",
			Stage:     model.StageExtract,
			Status:    model.RunStatusComplete,
			Rows:      101,
			Cols:      8,
			Output:    "output/cleaned_thermo_data.csv",
			StartedAt: started,
			Duration:  420 * time.Millisecond,
		},
		{
			ID:        "16fd2706-8baf-433b-82eb-8c7fada847da",
			Stage:     model.StageMerge,
			Status:    model.RunStatusFailed,
			Error:     "merge: load structural data",
			StartedAt: started.Add(time.Minute),
			Duration:  3 * time.Millisecond,
		},
	}

	var sb strings.Builder
	formatRunsList(&sb, runs)
	out := sb.String()

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)

	assert.Contains(t, lines[0], "ID")
	assert.Contains(t, lines[0], "SHAPE")

	assert.Contains(t, lines[1], "7c9e6679")
	assert.NotContains(t, lines[1], "7c9e6679-7425")
	assert.Contains(t, lines[1], "extract")
	assert.Contains(t, lines[1], "101x8")
	assert.Contains(t, lines[1], "2026-03-14 09:26")
	assert.Contains(t, lines[1], "420ms")
	assert.Contains(t, lines[1], "output/cleaned_thermo_data.csv")

	// Failed runs show no shape.
	assert.Contains(t, lines[2], "failed")
	assert.NotContains(t, lines[2], "0x0")
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "7c9e6679", shortID("7c9e6679-7425-40de-944b-e07fc1f90ae7"))
	assert.Equal(t, "noDashes", shortID("noDashes"))
	assert.Equal(t, "", shortID(""))
}

func TestFlagOr(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().String("input", "", "")

	assert.Equal(t, "output/thermo_data.dat", flagOr(cmd, "input", "output/thermo_data.dat"))

	require.NoError(t, cmd.Flags().Set("input", "logs/run7.lammps"))
	assert.Equal(t, "logs/run7.lammps", flagOr(cmd, "input", "output/thermo_data.dat"))
}
