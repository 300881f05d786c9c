package cmd

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brewersproject/lineage/internal/similarity"
)

func TestScoreCommandStructure(t *testing.T) {
	assert.NotNil(t, scoreCmd)
	assert.Equal(t, "score", scoreCmd.Use)
	assert.NotNil(t, scoreCmd.RunE)

	for _, name := range []string{"apprentice", "apprentice-birth", "master", "master-birth"} {
		f := scoreCmd.Flags().Lookup(name)
		require.NotNil(t, f, name)
		assert.Contains(t, f.Annotations, "cobra_annotation_bash_completion_one_required_flag", name)
	}
}

func setScoreFlags(t *testing.T, apprentice string, apprenticeBirth int, master string, masterBirth int) {
	t.Helper()
	a, ab, m, mb := scoreApprenticeName, scoreApprenticeBirth, scoreMasterName, scoreMasterBirth
	t.Cleanup(func() {
		scoreApprenticeName, scoreApprenticeBirth, scoreMasterName, scoreMasterBirth = a, ab, m, mb
	})
	scoreApprenticeName, scoreApprenticeBirth = apprentice, apprenticeBirth
	scoreMasterName, scoreMasterBirth = master, masterBirth
}

func TestRunScore(t *testing.T) {
	tests := []struct {
		name         string
		apprentice   string
		aBirth       int
		master       string
		mBirth       int
		wantInOutput []string
	}{
		{
			name:       "match",
			apprentice: "John Ridgway", aBirth: 1600,
			master: "Jon Ridgway", mBirth: 1605,
			wantInOutput: []string{"Match:", "yes", "0.7868 at 1600.69"},
		},
		{
			name:       "birth gap",
			apprentice: "John Ridgway", aBirth: 1500,
			master: "John Ridgway", mBirth: 1650,
			wantInOutput: []string{"no", "birth_gap", "not reached", "150"},
		},
		{
			name:       "names too far apart",
			apprentice: "John Ridgway", aBirth: 1600,
			master: "Joan Ridgeway", mBirth: 1600,
			wantInOutput: []string{"edit_distance", "not reached"},
		},
		{
			name:       "weak overlap",
			apprentice: "John Ridgway", aBirth: 1600,
			master: "John Ridgway", mBirth: 1610,
			wantInOutput: []string{"overlap", "0.383"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setScoreFlags(t, tt.apprentice, tt.aBirth, tt.master, tt.mBirth)

			var buf bytes.Buffer
			setOutputWriter(&buf)
			defer resetOutputWriter()

			require.NoError(t, runScore(scoreCmd, nil))
			for _, want := range tt.wantInOutput {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}

func TestRenderGateTable_CurvesNeverMeet(t *testing.T) {
	res := similarity.Result{Score: math.NaN(), EditDistance: 0, Reason: similarity.ReasonOverlap}
	out := renderGateTable(1600, 1690, res)
	assert.Contains(t, out, "curves never meet")
	assert.Contains(t, out, "90")
}
