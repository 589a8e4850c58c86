// Package refresh periodically recomputes the default projection so requests
// arriving after an upstream sync are served from the memo.
package refresh

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
)

// Warmer recomputes and caches a projection.
type Warmer interface {
	Warm(ctx context.Context) error
}

// Scheduler runs a Warmer on a cron schedule. Runs never overlap; a tick that
// fires while the previous run is still busy is skipped.
type Scheduler struct {
	cron    *cron.Cron
	warmer  Warmer
	timeout time.Duration

	runs     atomic.Int64
	failures atomic.Int64
}

// New parses spec (standard five-field cron or a descriptor such as
// "@every 5m") and returns a stopped scheduler.
func New(spec string, w Warmer, timeout time.Duration) (*Scheduler, error) {
	s := &Scheduler{
		cron: cron.New(
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
		warmer:  w,
		timeout: timeout,
	}
	if _, err := s.cron.AddFunc(spec, s.run); err != nil {
		return nil, fmt.Errorf("invalid refresh schedule %q: %w", spec, err)
	}
	return s, nil
}

// logger routes cron's own messages through slog.
var logger cron.Logger = slogLogger{}

type slogLogger struct{}

func (slogLogger) Info(msg string, keysAndValues ...any) {
	slog.Debug("cron: "+msg, keysAndValues...)
}

func (slogLogger) Error(err error, msg string, keysAndValues ...any) {
	slog.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}

func (s *Scheduler) run() {
	ctx := context.Background()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	s.runs.Add(1)
	if err := s.warmer.Warm(ctx); err != nil {
		s.failures.Add(1)
		slog.Warn("Projection refresh failed", "error", err)
		return
	}
	slog.Debug("Projection refreshed", "duration_ms", time.Since(start).Milliseconds())
}

// Start runs the scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	slog.Info("Projection refresh scheduled", "next", s.Next())
}

// Stop halts scheduling and waits for a running refresh to finish or ctx to end.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}

// Next returns the time of the next scheduled refresh.
func (s *Scheduler) Next() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

// Runs returns how many refreshes have started.
func (s *Scheduler) Runs() int64 { return s.runs.Load() }

// Failures returns how many refreshes returned an error.
func (s *Scheduler) Failures() int64 { return s.failures.Load() }
