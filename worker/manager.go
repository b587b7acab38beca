package worker

import (
	"context"
	"log/slog"
	"sync"
)

// Worker is a long-running task that returns when ctx is cancelled.
type Worker interface {
	Start(ctx context.Context) error
}

// Manager starts and supervises a set of workers.
type Manager struct {
	workers []Worker
}

func NewManager(ws ...Worker) *Manager {
	return &Manager{workers: ws}
}

// Start runs every worker until ctx is done. A worker that fails stops the
// others, and its error is returned once all of them have exited.
func (m *Manager) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
	)
	for _, w := range m.workers {
		wg.Add(1)
		go func(w Worker) {
			defer wg.Done()
			if err := w.Start(ctx); err != nil {
				once.Do(func() {
					firstErr = err
					slog.Error("manager: worker failed, stopping the rest", "error", err)
					cancel()
				})
			}
		}(w)
	}
	wg.Wait()
	return firstErr
}
