// Package scheduler runs snapshot exports on a fixed interval.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"briefing/internal/exporter"
)

// Exporter is the interface for writing one snapshot.
type Exporter interface {
	Export(ctx context.Context) (exporter.Report, error)
}

// Scheduler periodically exports the live backend into a snapshot store.
type Scheduler struct {
	exp  Exporter
	log  *slog.Logger
	tick time.Duration
	runs int
}

// New creates a Scheduler with a 15-minute interval.
func New(exp Exporter, log *slog.Logger) *Scheduler {
	return &Scheduler{
		exp:  exp,
		log:  log,
		tick: 15 * time.Minute,
	}
}

// SetTickInterval overrides the default 15-minute export interval.
func (s *Scheduler) SetTickInterval(d time.Duration) {
	s.tick = d
}

// Run exports immediately and then on every tick, blocking until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	s.exportOnce(ctx)

	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.exportOnce(ctx)
		}
	}
}

// exportOnce runs a single export. Failures are logged; the next tick retries.
func (s *Scheduler) exportOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	s.runs++

	start := time.Now()
	report, err := s.exp.Export(ctx)
	if err != nil {
		s.log.Error("export snapshot", "run", s.runs, "error", err)
		return
	}
	s.log.Info("export finished",
		"run", s.runs,
		"articles", report.Articles,
		"quarantined", report.Quarantined,
		"elapsed", time.Since(start),
	)
}
