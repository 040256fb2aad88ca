// Package batch analyzes many profiles concurrently with a bounded pool.
package batch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/andresuchdata/wcanalyzer/internal/domain"
	"github.com/andresuchdata/wcanalyzer/internal/ingest"
)

const defaultWorkers = 4

// Analyzer computes one profile.
type Analyzer interface {
	Analyze(ctx context.Context, session string, profile domain.InputProfile) (*domain.Analysis, error)
}

// Job is one profile to analyze and where it came from.
type Job struct {
	Source  string
	Profile domain.InputProfile
}

type Config struct {
	Workers int
	Session string
}

type Runner struct {
	analyzer Analyzer
	cfg      Config
}

func NewRunner(analyzer Analyzer, cfg Config) *Runner {
	if cfg.Workers <= 0 {
		cfg.Workers = defaultWorkers
	}
	return &Runner{analyzer: analyzer, cfg: cfg}
}

// JobsFromFiles expands files into jobs. Files holding several profiles
// produce one job per profile, sourced as "name#n".
func JobsFromFiles(files []string) ([]Job, []domain.BatchResult) {
	var (
		jobs     []Job
		failures []domain.BatchResult
	)
	for _, f := range files {
		profiles, err := ingest.LoadFile(f)
		if err != nil {
			failures = append(failures, domain.BatchResult{Source: filepath.Base(f), Error: err.Error()})
			continue
		}
		for i, p := range profiles {
			source := filepath.Base(f)
			if len(profiles) > 1 {
				source = fmt.Sprintf("%s#%d", source, i+1)
			}
			jobs = append(jobs, Job{Source: source, Profile: p})
		}
	}
	return jobs, failures
}

// Run analyzes every job. Per-job failures are reported in the results, in
// job order; only context cancellation aborts the run.
func (r *Runner) Run(ctx context.Context, jobs []Job) ([]domain.BatchResult, error) {
	start := time.Now()
	results := make([]domain.BatchResult, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Workers)

	for i, job := range jobs {
		if err := gctx.Err(); err != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			results[i].Source = job.Source
			analysis, err := r.analyzer.Analyze(gctx, r.cfg.Session, job.Profile)
			if err != nil {
				log.Warn().Err(err).Str("source", job.Source).Msg("batch: analysis failed")
				results[i].Error = err.Error()
				return nil
			}
			results[i].Analysis = analysis
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch aborted: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("batch aborted: %w", err)
	}

	failed := 0
	for _, res := range results {
		if res.Error != "" {
			failed++
		}
	}
	log.Info().
		Int("jobs", len(jobs)).
		Int("failed", failed).
		Int("workers", r.cfg.Workers).
		Dur("elapsed", time.Since(start)).
		Msg("batch completed")

	return results, nil
}

// RunFiles loads the files and runs every profile in them. Unreadable files
// are reported first.
func (r *Runner) RunFiles(ctx context.Context, files []string) ([]domain.BatchResult, error) {
	jobs, failures := JobsFromFiles(files)
	results, err := r.Run(ctx, jobs)
	if err != nil {
		return nil, err
	}
	return append(failures, results...), nil
}
