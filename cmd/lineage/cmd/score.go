package cmd

import (
	"fmt"
	"math"
	"strconv"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/brewersproject/lineage/internal/similarity"
)

var (
	scoreApprenticeName  string
	scoreApprenticeBirth int
	scoreMasterName      string
	scoreMasterBirth     int
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Compare an apprentice identity with a master identity",
	Long: `Score runs the identity comparison used by the lineage builder and prints
the verdict of each gate:

  1. Birth gap:      |apprentice - master| must be below 100 years
  2. Edit distance:  names must differ by at most one edit
  3. Overlap:        the birth-year curves must meet above 0.4

The apprentice is the established person; the master is the later record's
master being identified with them.

Example:
  lineage score --apprentice "John Ridgway" --apprentice-birth 1600 \
                --master "Jon Ridgway" --master-birth 1605`,
	RunE: runScore,
}

func init() {
	scoreCmd.Flags().StringVar(&scoreApprenticeName, "apprentice", "",
		"Apprentice full name (required)")
	scoreCmd.Flags().IntVar(&scoreApprenticeBirth, "apprentice-birth", 0,
		"Apprentice birth year (required)")
	scoreCmd.Flags().StringVar(&scoreMasterName, "master", "",
		"Master full name (required)")
	scoreCmd.Flags().IntVar(&scoreMasterBirth, "master-birth", 0,
		"Master birth year (required)")

	for _, name := range []string{"apprentice", "apprentice-birth", "master", "master-birth"} {
		scoreCmd.MarkFlagRequired(name)
	}

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, args []string) error {
	res := similarity.NewScorer().Resolve(scoreApprenticeBirth, scoreMasterBirth, scoreApprenticeName, scoreMasterName)

	printHeader("%s (%d) vs %s (%d)", scoreApprenticeName, scoreApprenticeBirth, scoreMasterName, scoreMasterBirth)
	fmt.Fprintln(outputWriter, renderGateTable(scoreApprenticeBirth, scoreMasterBirth, res))

	if res.Match {
		fmt.Fprintf(outputWriter, "Match: %s\n", color.Green.Sprint("yes"))
	} else {
		fmt.Fprintf(outputWriter, "Match: %s (%s)\n", color.Red.Sprint("no"), res.Reason)
	}
	return nil
}

// renderGateTable lists each gate with its measured value. Gates after the
// rejecting one are shown as not reached.
func renderGateTable(apprenticeBirth, masterBirth int, res similarity.Result) string {
	gap := apprenticeBirth - masterBirth
	if gap < 0 {
		gap = -gap
	}

	gates := []struct {
		name      string
		reason    similarity.Reason
		value     string
		threshold string
	}{
		{"birth gap", similarity.ReasonBirthGap, strconv.Itoa(gap),
			fmt.Sprintf("< %d", similarity.BirthGapLimit)},
		{"edit distance", similarity.ReasonEditDistance, "-",
			fmt.Sprintf("< %d", similarity.EditThreshold)},
		{"overlap", similarity.ReasonOverlap, "-",
			fmt.Sprintf("> %.1f", similarity.ScoreThreshold)},
	}
	if res.EditDistance >= 0 {
		gates[1].value = strconv.Itoa(res.EditDistance)
	}
	if !math.IsNaN(res.Score) {
		gates[2].value = fmt.Sprintf("%.4f at %.2f", res.Score, res.BestYear)
	} else if res.Reason == similarity.ReasonOverlap {
		gates[2].value = "curves never meet"
	}

	rows := make([][]string, 0, len(gates))
	reached := true
	for _, g := range gates {
		status := color.Gray.Sprint("not reached")
		if reached {
			status = verdict(res.Reason != g.reason)
			if res.Reason == g.reason {
				reached = false
			}
		}
		rows = append(rows, []string{g.name, g.value, g.threshold, status})
	}

	return renderTable(
		[]string{"Gate", "Value", "Threshold", "Verdict"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignLeft, alignLeft},
	)
}
