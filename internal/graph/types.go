// Package graph builds apprenticeship lineage graphs: starting from one seed
// indenture, it follows apprentices who later took apprentices of their own.
package graph

import "github.com/brewersproject/lineage/internal/records"

// Gephi edge attributes, identical for every edge.
const (
	EdgeWeight = 1
	EdgeType   = "Directed"
)

// MinExportGeneration is the depth a lineage needs before its graph is exported.
const MinExportGeneration = 2

// Node is an apprentice within one lineage.
type Node struct {
	ID           int    // 1-based, discovery order
	Label        string // "First Last (year)"
	ApprenticeID string // apprentice_number of the record
	Year         string // indenture year as recorded
	Generation   int    // master-to-apprentice hops from the seed

	Record *records.Record
}

// Edge means Source was later the master of Target.
type Edge struct {
	ID     int
	Source int // node id of the master
	Target int // node id of the apprentice
	Weight int
	Type   string

	Score    float64 // identity similarity that linked the two records
	BestYear float64 // birth year both records agree on best
}

// TraversalStats describes the work one traversal performed.
type TraversalStats struct {
	Expanded    int // frontier records dequeued
	Comparisons int // candidates handed to the resolver
	Unparseable int // records skipped because a birth year was missing or not an integer
}

// Lineage is the graph grown from one seed.
type Lineage struct {
	Seed  *records.Record
	Nodes []Node
	Edges []Edge
	Stats TraversalStats

	children map[int][]int // node id -> child node ids
}

func newLineage(seed *records.Record) *Lineage {
	return &Lineage{
		Seed:     seed,
		children: make(map[int][]int),
	}
}

func (l *Lineage) addNode(rec *records.Record, generation int) int {
	id := len(l.Nodes) + 1
	l.Nodes = append(l.Nodes, Node{
		ID:           id,
		Label:        rec.Label(),
		ApprenticeID: rec.Number,
		Year:         rec.Year,
		Generation:   generation,
		Record:       rec,
	})
	return id
}

func (l *Lineage) addEdge(source, target int, score, bestYear float64) {
	l.Edges = append(l.Edges, Edge{
		ID:       len(l.Edges) + 1,
		Source:   source,
		Target:   target,
		Weight:   EdgeWeight,
		Type:     EdgeType,
		Score:    score,
		BestYear: bestYear,
	})
	l.children[source] = append(l.children[source], target)
}

// Total returns the number of apprentices in the lineage, seed included.
func (l *Lineage) Total() int {
	return len(l.Nodes)
}

// MaxGeneration returns the deepest generation reached; 0 for a lone seed.
func (l *Lineage) MaxGeneration() int {
	deepest := 0
	for _, n := range l.Nodes {
		if n.Generation > deepest {
			deepest = n.Generation
		}
	}
	return deepest
}

// Exportable reports whether the lineage is deep enough to be written out.
func (l *Lineage) Exportable() bool {
	return l.MaxGeneration() >= MinExportGeneration
}

// Root returns the seed node.
func (l *Lineage) Root() *Node {
	if len(l.Nodes) == 0 {
		return nil
	}
	return &l.Nodes[0]
}

// GetNode returns the node with the given id, or nil if not found.
func (l *Lineage) GetNode(id int) *Node {
	if id < 1 || id > len(l.Nodes) {
		return nil
	}
	return &l.Nodes[id-1]
}

// GetChildren returns the ids of the apprentices taken by node id, in discovery order.
func (l *Lineage) GetChildren(id int) []int {
	return l.children[id]
}

// GetEdge returns the edge into target, or nil for the seed.
func (l *Lineage) GetEdge(target int) *Edge {
	for i := range l.Edges {
		if l.Edges[i].Target == target {
			return &l.Edges[i]
		}
	}
	return nil
}

// GenerationCounts returns how many nodes sit at each generation, index = generation.
func (l *Lineage) GenerationCounts() []int {
	counts := make([]int, l.MaxGeneration()+1)
	for _, n := range l.Nodes {
		counts[n.Generation]++
	}
	return counts
}
