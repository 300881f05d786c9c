// Package sweep runs the lineage builder from every record of the input and
// writes the per-seed graphs and the summary report.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/brewersproject/lineage/internal/config"
	"github.com/brewersproject/lineage/internal/export"
	"github.com/brewersproject/lineage/internal/graph"
	"github.com/brewersproject/lineage/internal/lock"
	"github.com/brewersproject/lineage/internal/logger"
	"github.com/brewersproject/lineage/internal/records"
	"github.com/brewersproject/lineage/internal/similarity"
)

// Result contains statistics and outputs of a sweep.
type Result struct {
	RunID         string
	StartedAt     time.Time
	CompletedAt   time.Time
	Duration      time.Duration
	Seeds         int // seeds traversed, one summary row each
	Skipped       int // seeds without an indenture year
	Exported      int // lineages deep enough to be written
	MaxGeneration int // deepest lineage seen
	ReportPath    string
	CacheHits     int
	CacheMisses   int

	Summary  *export.Summary
	Registry *export.Registry
}

// SkipFunc is called for each seed skipped for lack of an indenture year.
type SkipFunc func(rec *records.Record)

// Sweeper coordinates one pass over all records.
type Sweeper struct {
	config  *config.Config
	records []*records.Record
	logger  *logger.Logger
	onSkip  SkipFunc
}

// NewSweeper creates a sweeper over recs using the output settings of cfg.
func NewSweeper(cfg *config.Config, recs []*records.Record) (*Sweeper, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	if cfg.Output.Dir == "" {
		return nil, fmt.Errorf("output directory is not set")
	}

	return &Sweeper{
		config:  cfg,
		records: recs,
		logger:  logger.NewDefault(),
	}, nil
}

// SetLogger replaces the sweeper's logger.
func (s *Sweeper) SetLogger(l *logger.Logger) {
	if l != nil {
		s.logger = l
	}
}

// OnSkip registers a callback for seeds without a year.
func (s *Sweeper) OnSkip(fn SkipFunc) {
	s.onSkip = fn
}

// Run traverses from every record in input order. Each seed with a year adds
// one summary row; lineages reaching graph.MinExportGeneration are written to
// their own directory. The summary report is written once every seed is done.
//
// Cancellation is checked between seeds. A cancelled sweep returns the partial
// result and ctx.Err() without writing the report.
func (s *Sweeper) Run(ctx context.Context) (*Result, error) {
	if ctx == nil {
		return nil, fmt.Errorf("context is nil")
	}

	result := &Result{
		RunID:      uuid.NewString(),
		StartedAt:  time.Now(),
		ReportPath: s.config.Output.ReportPath(),
	}
	log := s.logger.WithRun(result.RunID)

	if s.config.Output.Lock {
		outputLock := lock.NewOutputLock(s.config.Output.Dir)
		if err := outputLock.Acquire(); err != nil {
			return nil, err
		}
		defer func() {
			if err := outputLock.Release(); err != nil {
				log.Warnw("Failed to release output lock", "error", err)
			}
		}()
	}

	log.Infow("Starting sweep",
		"records", len(s.records),
		"output_dir", s.config.Output.Dir,
		"report", result.ReportPath,
	)

	scorer := similarity.NewScorer()
	builder := graph.NewBuilder(s.records, scorer)
	builder.SetLogger(log)

	exporter := export.NewExporter(s.config.Output.Dir)
	summary := export.NewSummary()
	result.Summary = summary
	result.Registry = exporter.Registry()

	interval := s.config.Sweep.ProgressInterval

	for i, seed := range s.records {
		select {
		case <-ctx.Done():
			log.Warnw("Context cancelled - stopping sweep",
				"seeds_done", i,
			)
			s.finish(result, scorer)
			return result, ctx.Err()
		default:
		}

		if interval > 0 && i > 0 && i%interval == 0 {
			log.Infow("Sweep progress",
				"row", i,
				"of", len(s.records),
				"exported", result.Exported,
			)
		}

		lineage, err := builder.Build(seed)
		if errors.Is(err, graph.ErrSeedWithoutYear) {
			result.Skipped++
			log.Infow("No year -- skipping",
				"apprentice_number", seed.Number,
				"name", seed.Name,
			)
			if s.onSkip != nil {
				s.onSkip(seed)
			}
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("traversal from seed %s failed: %w", seed.Number, err)
		}

		row := summary.Add(lineage)
		result.Seeds++
		if row.Generations > result.MaxGeneration {
			result.MaxGeneration = row.Generations
		}

		entry, err := exporter.Export(lineage)
		if err != nil {
			return nil, err
		}
		if entry == nil {
			continue
		}
		result.Exported++

		seedLog := log.WithSeed(seed.Number)
		seedLog.Debugw("Exported lineage",
			"dir", entry.Dir,
			"apprentices", entry.Total,
			"generations", entry.MaxGeneration,
		)
		if n := len(entry.Overwritten); n > 0 {
			seedLog.Warnw("Lineage directory overwritten by later seed",
				"dir", entry.Dir,
				"previous_seed", entry.Overwritten[n-1],
			)
		}
	}

	if err := summary.WriteFile(result.ReportPath); err != nil {
		return nil, err
	}

	s.finish(result, scorer)

	log.Infow("Sweep completed",
		"duration", result.Duration,
		"seeds", result.Seeds,
		"skipped", result.Skipped,
		"exported", result.Exported,
		"directories", result.Registry.Len(),
		"max_generation", result.MaxGeneration,
		"cache_hits", result.CacheHits,
		"cache_misses", result.CacheMisses,
	)

	return result, nil
}

func (s *Sweeper) finish(result *Result, scorer *similarity.Scorer) {
	result.CompletedAt = time.Now()
	result.Duration = result.CompletedAt.Sub(result.StartedAt)
	result.CacheHits, result.CacheMisses = scorer.CacheStats()
}
