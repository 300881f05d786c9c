package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brewersproject/lineage/internal/graph"
	"github.com/brewersproject/lineage/internal/records"
)

func TestTraceCommandStructure(t *testing.T) {
	assert.NotNil(t, traceCmd)
	assert.Equal(t, "trace", traceCmd.Use)
	assert.NotEmpty(t, traceCmd.Short)
	assert.NotEmpty(t, traceCmd.Long)
	assert.NotNil(t, traceCmd.RunE)

	seed := traceCmd.Flags().Lookup("seed")
	require.NotNil(t, seed)
	assert.Equal(t, "s", seed.Shorthand)
	assert.Contains(t, seed.Annotations, "cobra_annotation_bash_completion_one_required_flag")
}

func TestRunTrace(t *testing.T) {
	withTestInput(t)

	orig := traceSeed
	defer func() { traceSeed = orig }()
	traceSeed = "2"

	var buf bytes.Buffer
	setOutputWriter(&buf)
	defer resetOutputWriter()

	require.NoError(t, runTrace(traceCmd, nil))

	output := buf.String()
	assert.Contains(t, output, "Lineage: William Hale (1623)")
	assert.Contains(t, output, "└── Richard Pynder (1648)")
	assert.Contains(t, output, "    └── Edward Cole (1673)")
	assert.Contains(t, output, "Total apprentices: 3")
	assert.Contains(t, output, "Hale_1623")
}

func TestRunTrace_SeedWithoutYear(t *testing.T) {
	withTestInput(t)

	orig := traceSeed
	defer func() { traceSeed = orig }()
	traceSeed = "5"

	var buf bytes.Buffer
	setOutputWriter(&buf)
	defer resetOutputWriter()

	require.NoError(t, runTrace(traceCmd, nil))
	assert.Contains(t, buf.String(), "No year -- skipping Ann Webb")
}

func TestRunTrace_UnknownSeed(t *testing.T) {
	withTestInput(t)

	orig := traceSeed
	defer func() { traceSeed = orig }()
	traceSeed = "404"

	err := runTrace(traceCmd, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, records.ErrNotFound)
}

func TestRenderTree_Branches(t *testing.T) {
	rec := func(number, first, last, birth, master, masterBirth, year string) *records.Record {
		return &records.Record{
			Number: number, First: first, Last: last, Name: first + " " + last,
			AppBirth: birth, MasterName: master, MasterBirth: masterBirth, Year: year,
		}
	}
	recs := []*records.Record{
		rec("1", "John", "Ridgway", "1580", "", "", "1598"),
		rec("2", "William", "Hale", "1605", "John Ridgway", "1580", "1623"),
		rec("3", "Ann", "Cole", "1607", "John Ridgway", "1580", "1625"),
	}
	l, err := graph.NewBuilder(recs, nil).Build(recs[0])
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(renderTree(l, 0), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "John Ridgway (1598)"))
	assert.True(t, strings.HasPrefix(lines[1], "├── William Hale (1623)"))
	assert.True(t, strings.HasPrefix(lines[2], "└── Ann Cole (1625)"))
	assert.Contains(t, lines[0], "seed")
	assert.Contains(t, lines[1], "gen 1 score")
}

func TestTruncateLabel(t *testing.T) {
	assert.Equal(t, "William Hale (1623)", truncateLabel("William Hale (1623)", 0))
	assert.Equal(t, "William Hale (1623)", truncateLabel("William Hale (1623)", 40))

	short := truncateLabel("William Hale (1623)", 10)
	assert.LessOrEqual(t, runewidth.StringWidth(short), 10)
	assert.True(t, strings.HasPrefix(short, "William"))
}
