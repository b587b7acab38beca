package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"pet-pulse/internal/pipeline"
)

func TestPipelineWorkerRunsOnStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var calls int32
	w := &PipelineWorker{
		Schedule:   "0 7 * * *",
		RunOnStart: true,
		Run: func(ctx context.Context) error {
			atomic.AddInt32(&calls, 1)
			cancel()
			return pipeline.ErrTooFewItems
		},
	}
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Start: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not stop after cancel")
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("calls = %d, want 1", got)
	}
}

func TestPipelineWorkerRejectsBadSchedule(t *testing.T) {
	w := &PipelineWorker{Schedule: "not a schedule", Run: func(context.Context) error { return nil }}
	if err := w.Start(context.Background()); err == nil {
		t.Fatal("expected schedule error")
	}
	w = &PipelineWorker{Schedule: "@daily"}
	if err := w.Start(context.Background()); err == nil {
		t.Fatal("expected missing run func error")
	}
}

type fakeWorker struct {
	err     error
	started int32
}

func (f *fakeWorker) Start(ctx context.Context) error {
	atomic.AddInt32(&f.started, 1)
	if f.err != nil {
		return f.err
	}
	<-ctx.Done()
	return nil
}

func TestManagerReportsWorkerError(t *testing.T) {
	boom := errors.New("boom")
	a, b := &fakeWorker{}, &fakeWorker{err: boom}
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := NewManager(a, b).Start(ctx)
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	if a.started != 1 || b.started != 1 {
		t.Errorf("started a=%d b=%d", a.started, b.started)
	}
}
