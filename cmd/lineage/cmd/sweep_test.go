package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brewersproject/lineage/internal/export"
)

func TestSweepCommandStructure(t *testing.T) {
	assert.NotNil(t, sweepCmd)
	assert.Equal(t, "sweep", sweepCmd.Use)
	assert.NotEmpty(t, sweepCmd.Short)
	assert.NotEmpty(t, sweepCmd.Long)
	assert.NotNil(t, sweepCmd.RunE)

	top := sweepCmd.Flags().Lookup("top")
	require.NotNil(t, top)
	assert.Equal(t, "0", top.DefValue)
}

func TestRunSweep(t *testing.T) {
	out := withTestInput(t)

	origTop := sweepTop
	defer func() { sweepTop = origTop }()
	sweepTop = 2

	var buf bytes.Buffer
	setOutputWriter(&buf)
	defer resetOutputWriter()

	require.NoError(t, runSweep(sweepCmd, nil))

	output := buf.String()
	assert.Contains(t, output, "No year -- skipping Ann Webb (5)")
	assert.Contains(t, output, "=== Sweep Complete ===")
	assert.Contains(t, output, "Seeds: 4")
	assert.Contains(t, output, "Skipped (no year): 1")
	assert.Contains(t, output, "Lineages exported: 2")
	assert.Contains(t, output, "Deepest lineage: 3 generations")
	assert.Contains(t, output, "Top 2 lineages")
	assert.Contains(t, output, "Ridgway_1598")
	assert.Contains(t, output, "Hale_1623")
	assert.NotContains(t, output, "Pynder_1648")

	_, err := os.Stat(filepath.Join(out, "apprentice_report.csv"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(out, "Ridgway_1598", "nodes.csv"))
	assert.NoError(t, err)
}

func TestRunSweep_MissingInput(t *testing.T) {
	withTestInput(t)
	inputPath = filepath.Join(t.TempDir(), "nope.csv")

	err := runSweep(sweepCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open input")
}

func TestRenderTopTable(t *testing.T) {
	rows := []export.SummaryRow{
		{Year: "1598", Last: "Ridgway", First: "John", Apprentices: 4, Generations: 3, ApprenticeNumber: "1"},
		{Year: "1648", Last: "Pynder", First: "Richard", Apprentices: 2, Generations: 1, ApprenticeNumber: "3"},
	}

	out := renderTopTable(rows)
	assert.Contains(t, out, "Apprentices")
	assert.Contains(t, out, "John Ridgway")
	assert.Contains(t, out, "Ridgway_1598")
	assert.NotContains(t, out, "Pynder_1648", "shallow lineages have no directory")
}
