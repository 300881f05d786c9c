// Package similarity decides whether two loosely recorded historical identities
// denote the same person.
//
// An identity is a full name and an estimated birth year. The established
// person is always in the apprentice role (the birth year comes from an
// indenture and is precise), the candidate is in the master role (a master's
// age is far more uncertain). The decision runs three gates, cheapest first:
//
//  1. birth years must be less than BirthGapLimit apart
//  2. names must be within EditThreshold-1 edits of each other
//  3. the two birth-year curves must nearly intersect at a point whose mean
//     value exceeds ScoreThreshold
package similarity

import "math"

const (
	// ApprenticeStdDev is the spread of an apprentice's estimated birth year.
	ApprenticeStdDev = 1.0

	// MasterStdDev is the spread of a master's estimated birth year.
	MasterStdDev = 6.2

	// MasterAverageAge is the mean age at mastery the spread was calibrated with.
	MasterAverageAge = 42.4

	// DeltaThreshold is how close the two curves must come at a grid point.
	DeltaThreshold = 0.006

	// Window pads the search interval on both sides, in years.
	Window = 10

	// BirthGapLimit is the birth-year difference at which identities are rejected.
	BirthGapLimit = 100

	// EditThreshold is the smallest name edit distance that rejects.
	EditThreshold = 2

	// ScoreThreshold is the overlap score a match must exceed.
	ScoreThreshold = 0.4

	gridScale = 100
)

// Reason names the gate that rejected a comparison.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonBirthGap
	ReasonEditDistance
	ReasonOverlap
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonBirthGap:
		return "birth_gap"
	case ReasonEditDistance:
		return "edit_distance"
	case ReasonOverlap:
		return "overlap"
	default:
		return "unknown"
	}
}

// Result is the outcome of one identity comparison.
type Result struct {
	Match        bool
	Score        float64 // mean curve value at BestYear; NaN when no gate 3 result
	BestYear     float64
	EditDistance int // -1 when gate 2 was not reached
	Reason       Reason
}

type yearPair struct {
	apprentice int
	master     int
}

type overlapResult struct {
	score    float64
	bestYear float64
	found    bool
}

// Scorer resolves identities and memoizes the overlap gate per birth-year pair.
// A Scorer is not safe for concurrent use.
type Scorer struct {
	cache  map[yearPair]overlapResult
	hits   int
	misses int
}

// NewScorer creates a Scorer with an empty overlap cache.
func NewScorer() *Scorer {
	return &Scorer{cache: make(map[yearPair]overlapResult)}
}

// Resolve decides whether the established apprentice identity and a later
// record's master identity are the same person.
func (s *Scorer) Resolve(apprenticeBirth, masterBirth int, apprenticeName, masterName string) Result {
	res := Result{Score: math.NaN(), EditDistance: -1}

	if !BirthYearsPlausible(apprenticeBirth, masterBirth) {
		res.Reason = ReasonBirthGap
		return res
	}

	res.EditDistance = EditDistance(masterName, apprenticeName)
	if res.EditDistance >= EditThreshold {
		res.Reason = ReasonEditDistance
		return res
	}

	ov := s.overlap(apprenticeBirth, masterBirth)
	if !ov.found {
		res.Reason = ReasonOverlap
		return res
	}
	res.Score = ov.score
	res.BestYear = ov.bestYear
	if ov.score <= ScoreThreshold {
		res.Reason = ReasonOverlap
		return res
	}

	res.Match = true
	return res
}

// CacheStats returns overlap cache hits and misses since creation.
func (s *Scorer) CacheStats() (hits, misses int) {
	return s.hits, s.misses
}

func (s *Scorer) overlap(apprenticeBirth, masterBirth int) overlapResult {
	key := yearPair{apprentice: apprenticeBirth, master: masterBirth}
	if ov, ok := s.cache[key]; ok {
		s.hits++
		return ov
	}
	s.misses++

	score, best, found := Overlap(apprenticeBirth, masterBirth)
	ov := overlapResult{score: score, bestYear: best, found: found}
	s.cache[key] = ov
	return ov
}

// BirthYearsPlausible is the first gate.
func BirthYearsPlausible(a, b int) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < BirthGapLimit
}
