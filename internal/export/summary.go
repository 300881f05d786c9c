package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/brewersproject/lineage/internal/graph"
)

// SummaryHeaders is the header row of the summary report.
var SummaryHeaders = []string{"year", "last", "first", "apprentices", "generations"}

// SummaryRow is one seed's line in the summary report.
type SummaryRow struct {
	Year        string
	Last        string
	First       string
	Apprentices int
	Generations int

	ApprenticeNumber string // not written; identifies the seed in console output
}

// Summary accumulates one row per traversed seed, in sweep order.
type Summary struct {
	rows []SummaryRow
}

// NewSummary creates an empty summary.
func NewSummary() *Summary {
	return &Summary{}
}

// Add appends the row for l and returns it.
func (s *Summary) Add(l *graph.Lineage) SummaryRow {
	row := SummaryRow{
		Year:             l.Seed.Year,
		Last:             l.Seed.Last,
		First:            l.Seed.First,
		Apprentices:      l.Total(),
		Generations:      l.MaxGeneration(),
		ApprenticeNumber: l.Seed.Number,
	}
	s.rows = append(s.rows, row)
	return row
}

// Rows returns the accumulated rows.
func (s *Summary) Rows() []SummaryRow {
	return s.rows
}

// Len returns the number of rows.
func (s *Summary) Len() int {
	return len(s.rows)
}

// Top returns up to n rows ordered by apprentices, then generations, both
// descending. Ties keep sweep order.
func (s *Summary) Top(n int) []SummaryRow {
	sorted := make([]SummaryRow, len(s.rows))
	copy(sorted, s.rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Apprentices != sorted[j].Apprentices {
			return sorted[i].Apprentices > sorted[j].Apprentices
		}
		return sorted[i].Generations > sorted[j].Generations
	})
	if n >= 0 && n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

// WriteCSV writes the header and every row.
func (s *Summary) WriteCSV(w io.Writer) error {
	cw := newCSVWriter(w)
	if err := cw.Write(SummaryHeaders); err != nil {
		return err
	}
	for _, r := range s.rows {
		record := []string{
			r.Year,
			r.Last,
			r.First,
			strconv.Itoa(r.Apprentices),
			strconv.Itoa(r.Generations),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile writes the report to path, creating parent directories.
func (s *Summary) WriteFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report %q: %w", path, err)
	}
	if err := s.WriteCSV(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write report %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close report %q: %w", path, err)
	}
	return nil
}
