package graph

import (
	"errors"
	"fmt"

	"github.com/brewersproject/lineage/internal/logger"
	"github.com/brewersproject/lineage/internal/records"
	"github.com/brewersproject/lineage/internal/similarity"
)

// ErrSeedWithoutYear is returned for a seed whose indenture year is missing.
// Such a seed produces no lineage and no report row.
var ErrSeedWithoutYear = errors.New("seed has no indenture year")

// Resolver decides whether an established apprentice identity and a later
// record's master identity are the same person.
type Resolver interface {
	Resolve(apprenticeBirth, masterBirth int, apprenticeName, masterName string) similarity.Result
}

// annotation is the per-traversal state of a record that became a node.
type annotation struct {
	nodeID     int
	generation int
}

// Builder grows lineage graphs over a fixed, read-only set of records.
type Builder struct {
	records  []*records.Record
	resolver Resolver
	logger   *logger.Logger
}

// NewBuilder creates a builder over recs. If resolver is nil a fresh
// similarity.Scorer is used.
func NewBuilder(recs []*records.Record, resolver Resolver) *Builder {
	if resolver == nil {
		resolver = similarity.NewScorer()
	}
	return &Builder{
		records:  recs,
		resolver: resolver,
		logger:   logger.NewNop(),
	}
}

// SetLogger replaces the builder's logger.
func (b *Builder) SetLogger(l *logger.Logger) {
	if l != nil {
		b.logger = l
	}
}

// Records returns the record set the builder scans.
func (b *Builder) Records() []*records.Record {
	return b.records
}

// Build performs a breadth-first expansion from seed. Each dequeued record is
// compared against every record in the set; a record whose master matches the
// dequeued apprentice becomes that apprentice's child one generation deeper.
//
// A record becomes a node at most once per traversal: the first master it
// matches claims it. Annotations are kept in the traversal, so the shared
// records are never modified.
func (b *Builder) Build(seed *records.Record) (*Lineage, error) {
	if seed == nil {
		return nil, fmt.Errorf("seed record is nil")
	}
	if !seed.HasYear() {
		return nil, fmt.Errorf("%w: %s", ErrSeedWithoutYear, seed.Label())
	}

	lineage := newLineage(seed)
	visited := make(map[*records.Record]annotation)

	visited[seed] = annotation{nodeID: lineage.addNode(seed, 0), generation: 0}

	frontier := NewFrontier()
	frontier.Enqueue(seed)

	for !frontier.IsEmpty() {
		current, _ := frontier.Dequeue()
		lineage.Stats.Expanded++

		// Without a name and birth year the apprentice cannot be recognized as
		// anyone's master.
		if !current.HasApprenticeIdentity() {
			continue
		}
		currentBirth, err := current.ApprenticeBirthYear()
		if err != nil {
			lineage.Stats.Unparseable++
			b.logger.Debugw("Skipping expansion of record with unparseable birth year",
				"apprentice_number", current.Number,
				"error", err,
			)
			continue
		}

		parent := visited[current]
		for _, candidate := range b.records {
			if candidate == current {
				continue
			}
			if !candidate.HasApprenticeIdentity() {
				continue
			}
			if _, seen := visited[candidate]; seen {
				continue
			}

			masterBirth, err := candidate.MasterBirthYear()
			if err != nil {
				lineage.Stats.Unparseable++
				if !errors.Is(err, records.ErrEmptyField) {
					b.logger.Debugw("Skipping candidate with unparseable master birth year",
						"apprentice_number", candidate.Number,
						"error", err,
					)
				}
				continue
			}

			lineage.Stats.Comparisons++
			res := b.resolver.Resolve(currentBirth, masterBirth, current.Name, candidate.MasterName)
			if !res.Match {
				continue
			}

			child := annotation{
				nodeID:     lineage.addNode(candidate, parent.generation+1),
				generation: parent.generation + 1,
			}
			visited[candidate] = child
			lineage.addEdge(parent.nodeID, child.nodeID, res.Score, res.BestYear)
			frontier.Enqueue(candidate)

			b.logger.Debugw("Linked apprentice to master",
				"master", current.Number,
				"apprentice", candidate.Number,
				"generation", child.generation,
				"score", res.Score,
			)
		}
	}

	return lineage, nil
}
