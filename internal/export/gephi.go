// Package export writes lineage graphs as Gephi node and edge tables and
// accumulates the sweep's summary report.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/brewersproject/lineage/internal/graph"
	"github.com/brewersproject/lineage/internal/records"
)

// Gephi table headers.
var (
	NodeHeaders = []string{"Id", "Label", "Apprentice_Id", "Year", "Generation"}
	EdgeHeaders = []string{"Id", "Source", "Target", "Weight", "Type"}
)

// File names inside a lineage directory.
const (
	NodesFile  = "nodes.csv"
	EdgesFile  = "edges.csv"
	ReportFile = "report.txt"
)

// DirName returns the output directory name of a seed, "<last>_<year>".
// Seeds sharing a last name and year share a directory.
func DirName(seed *records.Record) string {
	return seed.Last + "_" + seed.Year
}

func newCSVWriter(w io.Writer) *csv.Writer {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	return cw
}

// WriteNodes writes the node table.
func WriteNodes(w io.Writer, l *graph.Lineage) error {
	cw := newCSVWriter(w)
	if err := cw.Write(NodeHeaders); err != nil {
		return err
	}
	for _, n := range l.Nodes {
		row := []string{
			strconv.Itoa(n.ID),
			n.Label,
			n.ApprenticeID,
			n.Year,
			strconv.Itoa(n.Generation),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteEdges writes the edge table.
func WriteEdges(w io.Writer, l *graph.Lineage) error {
	cw := newCSVWriter(w)
	if err := cw.Write(EdgeHeaders); err != nil {
		return err
	}
	for _, e := range l.Edges {
		row := []string{
			strconv.Itoa(e.ID),
			strconv.Itoa(e.Source),
			strconv.Itoa(e.Target),
			strconv.Itoa(e.Weight),
			e.Type,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteReport writes the two-line text report.
func WriteReport(w io.Writer, l *graph.Lineage) error {
	_, err := fmt.Fprintf(w, "---- Total apprentices: %d\n---- Generation: %d\n", l.Total(), l.MaxGeneration())
	return err
}

// WriteLineage creates root/<DirName> and writes the node table, edge table
// and report into it, replacing earlier files. It returns the directory path.
func WriteLineage(root string, l *graph.Lineage) (string, error) {
	dir := filepath.Join(root, DirName(l.Seed))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory %q: %w", dir, err)
	}

	files := []struct {
		name  string
		write func(io.Writer, *graph.Lineage) error
	}{
		{NodesFile, WriteNodes},
		{EdgesFile, WriteEdges},
		{ReportFile, WriteReport},
	}
	for _, f := range files {
		if err := writeFile(filepath.Join(dir, f.name), l, f.write); err != nil {
			return "", err
		}
	}
	return dir, nil
}

func writeFile(path string, l *graph.Lineage, write func(io.Writer, *graph.Lineage) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %q: %w", path, err)
	}
	if err := write(f, l); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %q: %w", path, err)
	}
	return nil
}
