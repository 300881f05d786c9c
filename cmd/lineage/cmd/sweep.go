package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/brewersproject/lineage/internal/export"
	"github.com/brewersproject/lineage/internal/graph"
	"github.com/brewersproject/lineage/internal/lock"
	"github.com/brewersproject/lineage/internal/logger"
	"github.com/brewersproject/lineage/internal/records"
	"github.com/brewersproject/lineage/internal/sweep"
)

var sweepTop int

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Build and export the lineage of every record",
	Long: `Sweep treats every record of the input as the founder of a lineage and
grows it breadth-first through later records whose master matches.

For each seed with an indenture year:
  1. The lineage is built generation by generation
  2. A row is added to the summary report
  3. Lineages of generation 2 or deeper are written to <output>/<Last>_<Year>/
     as nodes.csv, edges.csv and report.txt

Seeds sharing a last name and year share a directory; the later seed wins.

Example:
  lineage sweep --input csv/all_records.csv --output everyone --top 10`,
	RunE: runSweep,
}

func init() {
	sweepCmd.Flags().IntVar(&sweepTop, "top", 0,
		"Print the N largest lineages after the sweep")

	rootCmd.AddCommand(sweepCmd)
}

func runSweep(cmd *cobra.Command, args []string) error {
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
	log.Infow("Loaded records",
		"input", cfg.Input.Path,
		"records", len(recs),
	)

	sw, err := sweep.NewSweeper(cfg, recs)
	if err != nil {
		return fmt.Errorf("failed to create sweeper: %w", err)
	}
	sw.SetLogger(log)
	sw.OnSkip(func(r *records.Record) {
		printNotice("No year -- skipping %s (%s)", r.Name, r.Number)
	})

	ctx, cancel := sweep.SetupSignalHandler(func(sig os.Signal) {
		log.Warnw("Received shutdown signal - finishing current seed...", "signal", sig.String())
	})
	defer cancel()

	result, err := sw.Run(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			log.Warn("Sweep cancelled by user")
			return nil
		}
		if errors.Is(err, lock.ErrLocked) {
			return fmt.Errorf("%w (use --no-lock to override)", err)
		}
		return fmt.Errorf("sweep failed: %w", err)
	}

	printSweepResult(result)
	if sweepTop > 0 {
		fmt.Fprintln(outputWriter)
		printSection(fmt.Sprintf("Top %d lineages", sweepTop))
		fmt.Fprintln(outputWriter, renderTopTable(result.Summary.Top(sweepTop)))
	}
	return nil
}

func printSweepResult(result *sweep.Result) {
	fmt.Fprintf(outputWriter, "\n=== Sweep Complete ===\n")
	fmt.Fprintf(outputWriter, "Run: %s\n", result.RunID)
	fmt.Fprintf(outputWriter, "Duration: %s\n", result.Duration)
	fmt.Fprintf(outputWriter, "Seeds: %d\n", result.Seeds)
	fmt.Fprintf(outputWriter, "Skipped (no year): %d\n", result.Skipped)
	fmt.Fprintf(outputWriter, "Lineages exported: %d\n", result.Exported)
	fmt.Fprintf(outputWriter, "Directories written: %d\n", result.Registry.Len())
	fmt.Fprintf(outputWriter, "Deepest lineage: %d generations\n", result.MaxGeneration)
	fmt.Fprintf(outputWriter, "Report: %s\n", result.ReportPath)

	if collisions := result.Registry.Collisions(); len(collisions) > 0 {
		fmt.Fprintf(outputWriter, "\nShared directories (later seed kept):\n")
		for _, e := range collisions {
			fmt.Fprintf(outputWriter, "  - %s: seed %s replaced %v\n", e.Dir, e.ApprenticeNumber, e.Overwritten)
		}
	}
}

func renderTopTable(rows []export.SummaryRow) string {
	headers := []string{"#", "Seed", "Name", "Year", "Apprentices", "Generations", "Directory"}
	aligns := []columnAlignment{alignRight, alignRight, alignLeft, alignLeft, alignRight, alignRight, alignLeft}

	body := make([][]string, 0, len(rows))
	for i, r := range rows {
		dir := "-"
		if r.Generations >= graph.MinExportGeneration {
			dir = r.Last + "_" + r.Year
		}
		body = append(body, []string{
			strconv.Itoa(i + 1),
			r.ApprenticeNumber,
			r.First + " " + r.Last,
			r.Year,
			strconv.Itoa(r.Apprentices),
			strconv.Itoa(r.Generations),
			dir,
		})
	}
	return renderTable(headers, body, aligns)
}
