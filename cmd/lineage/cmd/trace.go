package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gookit/color"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/brewersproject/lineage/internal/export"
	"github.com/brewersproject/lineage/internal/graph"
	"github.com/brewersproject/lineage/internal/logger"
	"github.com/brewersproject/lineage/internal/records"
)

var (
	traceSeed      string
	traceLabelSize int
)

var traceCmd = &cobra.Command{
	Use:   "trace",
	Short: "Show the lineage of a single seed",
	Long: `Trace builds the lineage of one record, chosen by apprentice_number, and
prints it as a tree without writing any files.

The output shows:
  - Every apprentice with its generation and match score
  - Apprentice counts per generation
  - Whether a sweep would export the lineage, and to which directory

Example:
  lineage trace --input csv/all_records.csv --seed 10234`,
	RunE: runTrace,
}

func init() {
	traceCmd.Flags().StringVarP(&traceSeed, "seed", "s", "",
		"apprentice_number of the seed record (required)")
	traceCmd.MarkFlagRequired("seed")

	traceCmd.Flags().IntVar(&traceLabelSize, "label-width", 48,
		"Truncate labels wider than this many columns")

	rootCmd.AddCommand(traceCmd)
}

func runTrace(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Sync()

	recs, err := records.Load(cfg.Input.Path)
	if err != nil {
		return err
	}

	seed, err := records.Find(recs, traceSeed)
	if err != nil {
		return err
	}

	builder := graph.NewBuilder(recs, nil)
	builder.SetLogger(log.WithSeed(seed.Number))

	l, err := builder.Build(seed)
	if errors.Is(err, graph.ErrSeedWithoutYear) {
		printNotice("No year -- skipping %s (%s)", seed.Name, seed.Number)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to build lineage: %w", err)
	}

	printHeader("Lineage: %s", seed.Label())
	fmt.Fprintln(outputWriter)
	fmt.Fprint(outputWriter, renderTree(l, traceLabelSize))
	fmt.Fprintln(outputWriter)
	printLineageSummary(l)
	return nil
}

// renderTree draws the lineage depth-first from the root, children in
// discovery order. Annotations are aligned after the widest label.
func renderTree(l *graph.Lineage, labelWidth int) string {
	root := l.Root()
	if root == nil {
		return ""
	}

	type line struct {
		text string
		node *graph.Node
	}
	var lines []line

	var walk func(id int, prefix string, last bool, top bool)
	walk = func(id int, prefix string, last bool, top bool) {
		n := l.GetNode(id)
		label := truncateLabel(n.Label, labelWidth)

		branch, childPrefix := "", ""
		if !top {
			branch = "├── "
			childPrefix = prefix + "│   "
			if last {
				branch = "└── "
				childPrefix = prefix + "    "
			}
		}
		lines = append(lines, line{text: prefix + branch + label, node: n})

		children := l.GetChildren(id)
		for i, child := range children {
			walk(child, childPrefix, i == len(children)-1, false)
		}
	}
	walk(root.ID, "", true, true)

	width := 0
	for _, ln := range lines {
		if w := runewidth.StringWidth(ln.text); w > width {
			width = w
		}
	}

	var sb strings.Builder
	for _, ln := range lines {
		sb.WriteString(runewidth.FillRight(ln.text, width))
		sb.WriteString("  ")
		sb.WriteString(color.Cyan.Sprint(annotate(l, ln.node)))
		sb.WriteString("\n")
	}
	return sb.String()
}

func annotate(l *graph.Lineage, n *graph.Node) string {
	edge := l.GetEdge(n.ID)
	if edge == nil {
		return fmt.Sprintf("[#%s gen %d seed]", n.ApprenticeID, n.Generation)
	}
	return fmt.Sprintf("[#%s gen %d score %.3f]", n.ApprenticeID, n.Generation, edge.Score)
}

func truncateLabel(label string, width int) string {
	if width <= 0 {
		return label
	}
	return runewidth.Truncate(label, width, "…")
}

func printLineageSummary(l *graph.Lineage) {
	printSection("Summary")
	fmt.Fprintf(outputWriter, "  Total apprentices: %d\n", l.Total())
	fmt.Fprintf(outputWriter, "  Generation:        %d\n", l.MaxGeneration())
	for gen, count := range l.GenerationCounts() {
		fmt.Fprintf(outputWriter, "    gen %d: %d\n", gen, count)
	}
	fmt.Fprintf(outputWriter, "  Comparisons:       %d\n", l.Stats.Comparisons)
	if l.Stats.Unparseable > 0 {
		fmt.Fprintf(outputWriter, "  Unparseable years: %d\n", l.Stats.Unparseable)
	}

	if l.Exportable() {
		fmt.Fprintf(outputWriter, "  Export:            %s\n", color.Green.Sprint(export.DirName(l.Seed)))
	} else {
		fmt.Fprintf(outputWriter, "  Export:            %s\n",
			color.Yellow.Sprintf("skipped (generation < %d)", graph.MinExportGeneration))
	}
}
