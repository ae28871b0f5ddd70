// Package scheduler runs a periodic task with an explicit start/stop
// lifecycle, so tests can drive single ticks deterministically instead of
// waiting on a timer.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Task is one unit of scheduled work. Errors are reported, never fatal.
type Task func(ctx context.Context) error

// Scheduler invokes a task on a fixed period.
type Scheduler struct {
	mu       sync.Mutex
	name     string
	interval time.Duration
	task     Task
	logger   *slog.Logger

	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// New creates a scheduler for the given task. It does not start it.
func New(name string, interval time.Duration, task Task, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		name:     name,
		interval: interval,
		task:     task,
		logger:   logger,
	}
}

// Start launches the periodic loop. Calling Start on a running scheduler is
// a no-op.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	s.running = true
	s.logger.Info("scheduler started", "name", s.name, "interval", s.interval)
	go s.loop(ctx)
}

// Stop halts the loop and waits for an in-flight tick to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	cancel, done := s.cancel, s.done
	s.mu.Unlock()

	cancel()
	<-done
	s.logger.Info("scheduler stopped", "name", s.name)
}

// Tick runs the task once, synchronously. Used by tests and the loop alike.
func (s *Scheduler) Tick(ctx context.Context) {
	if err := s.task(ctx); err != nil {
		s.logger.Error("scheduled task failed", "name", s.name, "error", err)
	}
}

func (s *Scheduler) loop(ctx context.Context) {
	defer close(s.done)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}
