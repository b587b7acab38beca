package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"pet-pulse/internal/pipeline"

	"github.com/robfig/cron/v3"
)

// RunFunc performs one full pipeline run.
type RunFunc func(ctx context.Context) error

// PipelineWorker triggers RunFunc on a cron schedule. Runs never overlap:
// a tick that fires while the previous run is still going is skipped.
type PipelineWorker struct {
	Run        RunFunc
	Schedule   string         // 5-field cron expression or @every/@daily
	Location   *time.Location // nil means UTC
	RunOnStart bool
	Timeout    time.Duration // per run, 0 means 30m
}

func (w *PipelineWorker) Start(ctx context.Context) error {
	if w.Run == nil {
		return errors.New("pipeline-worker: no run func")
	}
	loc := w.Location
	if loc == nil {
		loc = time.UTC
	}
	logger := cronLogger{}
	c := cron.New(
		cron.WithLocation(loc),
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)
	if _, err := c.AddFunc(w.Schedule, func() { w.runOnce(ctx) }); err != nil {
		return fmt.Errorf("pipeline-worker: schedule %q: %w", w.Schedule, err)
	}

	if w.RunOnStart {
		w.runOnce(ctx)
	}

	c.Start()
	slog.Info("pipeline-worker: scheduled", "schedule", w.Schedule, "location", loc.String(), "next", nextRun(c))
	<-ctx.Done()
	<-c.Stop().Done()
	slog.Info("pipeline-worker: stopped")
	return nil
}

func (w *PipelineWorker) runOnce(parent context.Context) {
	if parent.Err() != nil {
		return
	}
	timeout := w.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Minute
	}
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	start := time.Now()
	err := w.Run(ctx)
	switch {
	case err == nil:
		slog.Info("pipeline-worker: run complete", "duration", time.Since(start).Round(time.Millisecond))
	case errors.Is(err, pipeline.ErrTooFewItems), errors.Is(err, pipeline.ErrTooFewSources):
		slog.Warn("pipeline-worker: run skipped", "reason", err)
	default:
		slog.Error("pipeline-worker: run failed", "error", err)
	}
}

func nextRun(c *cron.Cron) time.Time {
	entries := c.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

// cronLogger routes cron's internal logging through slog.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	slog.Debug("cron: "+msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	slog.Error("cron: "+msg, append([]interface{}{"error", err}, keysAndValues...)...)
}
