package export

import (
	"fmt"

	"github.com/elliotchance/orderedmap/v2"

	"github.com/brewersproject/lineage/internal/graph"
)

// Entry describes what currently sits in one output directory.
type Entry struct {
	Dir              string // directory name, "<last>_<year>"
	Path             string // full path written
	ApprenticeNumber string // seed whose files are on disk now
	Total            int
	MaxGeneration    int

	// Overwritten lists earlier seeds whose files were replaced, oldest first.
	Overwritten []string
}

// Registry tracks exported directories in the order they were first written.
type Registry struct {
	entries *orderedmap.OrderedMap[string, *Entry]
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: orderedmap.NewOrderedMap[string, *Entry]()}
}

// Record notes that l was written to path. When another seed already wrote the
// same directory, the entry is replaced in place, keeping its position, and
// the earlier seed is appended to Overwritten.
func (r *Registry) Record(path string, l *graph.Lineage) *Entry {
	dir := DirName(l.Seed)
	entry := &Entry{
		Dir:              dir,
		Path:             path,
		ApprenticeNumber: l.Seed.Number,
		Total:            l.Total(),
		MaxGeneration:    l.MaxGeneration(),
	}

	if old, ok := r.entries.Get(dir); ok {
		entry.Overwritten = append(append([]string{}, old.Overwritten...), old.ApprenticeNumber)
	}
	r.entries.Set(dir, entry)
	return entry
}

// Get returns the entry for a directory name.
func (r *Registry) Get(dir string) (*Entry, bool) {
	return r.entries.Get(dir)
}

// Len returns the number of distinct directories written.
func (r *Registry) Len() int {
	return r.entries.Len()
}

// Entries returns all entries in first-write order.
func (r *Registry) Entries() []*Entry {
	out := make([]*Entry, 0, r.entries.Len())
	for el := r.entries.Front(); el != nil; el = el.Next() {
		out = append(out, el.Value)
	}
	return out
}

// Collisions returns the entries whose directory was written more than once.
func (r *Registry) Collisions() []*Entry {
	var out []*Entry
	for el := r.entries.Front(); el != nil; el = el.Next() {
		if len(el.Value.Overwritten) > 0 {
			out = append(out, el.Value)
		}
	}
	return out
}

// Exporter writes exportable lineages under a root directory.
type Exporter struct {
	root     string
	registry *Registry
}

// NewExporter creates an exporter rooted at dir.
func NewExporter(dir string) *Exporter {
	return &Exporter{root: dir, registry: NewRegistry()}
}

// Registry returns the directories written so far.
func (e *Exporter) Registry() *Registry {
	return e.registry
}

// Export writes l when it reaches graph.MinExportGeneration. It returns the
// registry entry, or nil when the lineage is too shallow.
func (e *Exporter) Export(l *graph.Lineage) (*Entry, error) {
	if !l.Exportable() {
		return nil, nil
	}
	path, err := WriteLineage(e.root, l)
	if err != nil {
		return nil, fmt.Errorf("export of seed %s (%s %s) failed: %w",
			l.Seed.Number, l.Seed.Last, l.Seed.Year, err)
	}
	return e.registry.Record(path, l), nil
}
