// Package scheduler periodically drives the probe set through the
// command harness and hands results to a writer.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/probekit/agentperf/internal/perf"
)

// ErrUnknownProbe is returned by TriggerImmediate when no probe has
// the requested name.
var ErrUnknownProbe = errors.New("unknown probe")

// ResultWriter persists probe results.
type ResultWriter interface {
	WriteResult(ctx context.Context, result *perf.Result, executedAt time.Time) error
}

// Scheduler runs every probe once per interval. Each run builds a
// fresh command; commands are never reused between cycles.
type Scheduler struct {
	probes    []perf.Probe
	tracker   *perf.Tracker
	logger    *slog.Logger
	interval  time.Duration
	semaphore chan struct{}

	mu           sync.Mutex
	resultWriter ResultWriter
}

// New creates a Scheduler. maxConcurrent caps how many probes run at
// once within a cycle.
func New(probes []perf.Probe, tracker *perf.Tracker, interval time.Duration, maxConcurrent int, logger *slog.Logger) *Scheduler {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &Scheduler{
		probes:    probes,
		tracker:   tracker,
		logger:    logger,
		interval:  interval,
		semaphore: make(chan struct{}, maxConcurrent),
	}
}

// SetResultWriter sets the writer for persisting results.
func (s *Scheduler) SetResultWriter(w ResultWriter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resultWriter = w
}

// Run executes one cycle immediately, then one per interval, until ctx
// is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.runCycle(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runCycle(ctx)
		}
	}
}

// TriggerImmediate runs the named probe once, synchronously, and
// returns its result.
func (s *Scheduler) TriggerImmediate(ctx context.Context, name string) (*perf.Result, error) {
	for _, p := range s.probes {
		if p.Name() == name {
			return s.runProbe(ctx, p)
		}
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownProbe, name)
}

func (s *Scheduler) runCycle(ctx context.Context) {
	started := time.Now()
	var wg sync.WaitGroup
	for _, p := range s.probes {
		wg.Add(1)
		go func(p perf.Probe) {
			defer wg.Done()
			s.runProbe(ctx, p)
		}(p)
	}
	wg.Wait()
	s.logger.Debug("probe cycle complete", "probes", len(s.probes), "duration_ms", time.Since(started).Milliseconds())
}

func (s *Scheduler) runProbe(ctx context.Context, p perf.Probe) (*perf.Result, error) {
	// Acquire semaphore
	select {
	case s.semaphore <- struct{}{}:
		defer func() { <-s.semaphore }()
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	cmd := perf.NewCommand(p, s.tracker, s.logger)
	cmd.Run(ctx)
	executedAt := time.Now()
	result := cmd.Result()

	s.mu.Lock()
	writer := s.resultWriter
	s.mu.Unlock()

	if writer != nil {
		if err := writer.WriteResult(ctx, result, executedAt); err != nil {
			s.logger.Error("failed to write result", "probe", p.Name(), "error", err)
		}
	}
	return result, nil
}
