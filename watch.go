package charts

import (
	"context"
	"sync"
	"time"
)

// Watcher polls the width of a container and reports its changes.
type Watcher struct {
	Interval time.Duration
	Width    func() float64
	OnResize func(float64)

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// Start begins polling in the background until ctx is done or Stop is
// called. Starting a running watcher has no effect.
func (w *Watcher) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.cancel != nil {
		return
	}
	interval := w.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	ctx, w.cancel = context.WithCancel(ctx)
	w.done = make(chan struct{})
	go w.run(ctx, interval, w.done)
}

// Stop cancels polling and waits for it to end. OnResize is never called
// once Stop has returned.
func (w *Watcher) Stop() {
	w.mu.Lock()
	cancel, done := w.cancel, w.done
	w.cancel, w.done = nil, nil
	w.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (w *Watcher) run(ctx context.Context, interval time.Duration, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := w.Width()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		width := w.Width()
		if width == last || ctx.Err() != nil {
			continue
		}
		last = width
		if w.OnResize != nil {
			w.OnResize(width)
		}
	}
}
