package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/docsite/internal/parser"
	"github.com/dgallion1/docsite/internal/search"
	"github.com/dgallion1/docsite/internal/site"
)

// SiteBuilder is the part of site.Builder the worker drives.
type SiteBuilder interface {
	Load() (*parser.Source, error)
	CompileSource(src *parser.Source) (*site.Site, error)
	Write(s *site.Site) error
}

// Worker runs build jobs one at a time.
type Worker struct {
	builder SiteBuilder
	engine  *search.Engine
	stats   *BuildStats
	log     *slog.Logger
	notify  func(JobSnapshot, *site.Site)

	// Hash of the source behind the last published build. Only the
	// worker goroutine touches it.
	lastHash string
}

func NewWorker(builder SiteBuilder, engine *search.Engine, stats *BuildStats, log *slog.Logger) *Worker {
	return &Worker{
		builder: builder,
		engine:  engine,
		stats:   stats,
		log:     log,
	}
}

// Process runs the full build for a job: load the source, render the site,
// write it out, then publish the new search index.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "trigger", job.Trigger)
	start := time.Now()

	// Phase 1: Load
	job.SetStatus(StatusLoading, "loading")
	src, err := w.load(ctx, job, log)
	if err != nil {
		w.fail(job, log, "loading", err)
		return
	}

	hash := ContentHashHex(src.Markdown)
	job.SetContentHash(hash)
	if !job.Force && hash == w.lastHash {
		log.Info("source unchanged, skipping build")
		job.SetStatus(StatusUnchanged, "done")
		return
	}

	// Phase 2: Render
	job.SetStatus(StatusRendering, "rendering")
	s, err := w.builder.CompileSource(src)
	if err != nil {
		w.fail(job, log, "rendering", err)
		return
	}

	// Phase 3: Write
	job.SetStatus(StatusWriting, "writing")
	if err := w.builder.Write(s); err != nil {
		w.fail(job, log, "writing", err)
		return
	}

	// Phase 4: Publish. Readers switch to the new index in one step.
	w.engine.Rebuild(s.Sections)
	w.lastHash = hash

	elapsed := time.Since(start)
	w.stats.Record(elapsed.Milliseconds())
	job.SetResult(s.Title, len(s.Headings), len(s.Sections), s.FileNames(), elapsed)
	job.SetStatus(StatusCompleted, "done")
	log.Info("build complete",
		"headings", len(s.Headings),
		"sections", len(s.Sections),
		"duration_ms", elapsed.Milliseconds(),
	)

	if w.notify != nil {
		w.notify(job.Snapshot(), s)
	}
}

// load reads the source, retrying transient failures with backoff.
func (w *Worker) load(ctx context.Context, job *Job, log *slog.Logger) (*parser.Source, error) {
	var lastErr error
	for attempt := range MaxRetries {
		job.IncrAttempts()
		src, err := w.builder.Load()
		lastErr = classify(err)
		if lastErr == nil {
			return src, nil
		}
		if !IsRetryable(lastErr) {
			return nil, lastErr
		}
		log.Warn("retryable load error", "attempt", attempt, "error", lastErr)
		select {
		case <-time.After(Backoff(attempt)):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return nil, fmt.Errorf("giving up after %d attempts: %w", MaxRetries, lastErr)
}

func (w *Worker) fail(job *Job, log *slog.Logger, phase string, err error) {
	log.Error("build failed", "phase", phase, "error", err)
	w.stats.RecordFailure()
	job.AddError(fmt.Sprintf("%s: %s", phase, err))
	job.SetStatus(StatusFailed, phase)
}
