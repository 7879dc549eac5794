// Package scheduler drives the two background collection jobs on independent
// fixed intervals. Each job runs in its own goroutine, so a slow or failed
// run of one never delays the other; within a job, runs are serialized by the
// ticker loop itself.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pzwatch/go-pizza-index/internal/metrics"
)

// Job is one scheduled collection function. Errors are logged by the
// scheduler and never stop future triggers.
type Job struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error
}

type Scheduler struct {
	jobs    []Job
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	running atomic.Bool
}

func New(jobs ...Job) *Scheduler {
	return &Scheduler{
		jobs: jobs,
	}
}

// Start launches one goroutine per job. Each job runs once immediately, then
// on every tick. Calling Start on a running scheduler is a no-op.
func (s *Scheduler) Start(ctx context.Context) {
	if !s.running.CompareAndSwap(false, true) {
		return
	}

	ctx, s.cancel = context.WithCancel(ctx)

	for _, job := range s.jobs {
		s.wg.Add(1)
		go s.runJob(ctx, job)
	}
}

func (s *Scheduler) runJob(ctx context.Context, job Job) {
	defer s.wg.Done()
	slog.Info("starting scheduled job", "job", job.Name, "interval", job.Interval)

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	s.invoke(ctx, job)

	for {
		select {
		case <-ctx.Done():
			slog.Info("scheduled job shutting down", "job", job.Name)
			return
		case <-ticker.C:
			s.invoke(ctx, job)
		}
	}
}

// invoke runs the job once and contains its failure: the error is logged and
// counted, never re-raised, so the loop always reaches the next trigger.
func (s *Scheduler) invoke(ctx context.Context, job Job) {
	slog.Debug("running scheduled job", "job", job.Name)

	if err := job.Run(ctx); err != nil {
		slog.Error("scheduled job failed", "job", job.Name, "error", err)
		metrics.CollectRuns.WithLabelValues(job.Name, "error").Inc()
		return
	}

	metrics.CollectRuns.WithLabelValues(job.Name, "ok").Inc()
	metrics.LastCollect.WithLabelValues(job.Name).SetToCurrentTime()
}

// Stop cancels future triggers and waits for in-flight runs to return.
func (s *Scheduler) Stop() {
	if !s.running.CompareAndSwap(true, false) {
		return
	}

	s.cancel()
	s.wg.Wait()
	slog.Info("scheduler stopped")
}

func (s *Scheduler) IsRunning() bool {
	return s.running.Load()
}
