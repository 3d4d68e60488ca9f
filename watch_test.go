package charts

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWatcher(t *testing.T) {
	var (
		width   atomic.Int64
		resized atomic.Int64
		calls   atomic.Int32
	)
	width.Store(100)
	w := Watcher{
		Interval: time.Millisecond,
		Width: func() float64 {
			return float64(width.Load())
		},
		OnResize: func(f float64) {
			resized.Store(int64(f))
			calls.Add(1)
		},
	}
	w.Start(context.Background())
	w.Start(context.Background())

	width.Store(250)
	assert.Eventually(t, func() bool {
		return resized.Load() == 250
	}, time.Second, time.Millisecond)

	w.Stop()
	n := calls.Load()
	width.Store(500)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, n, calls.Load())
	assert.Equal(t, int64(250), resized.Load())

	w.Stop()
}

func TestWatcherContext(t *testing.T) {
	var calls atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	w := Watcher{
		Interval: time.Millisecond,
		Width: func() float64 {
			return float64(time.Now().UnixNano())
		},
		OnResize: func(float64) {
			calls.Add(1)
		},
	}
	w.Start(ctx)
	assert.Eventually(t, func() bool {
		return calls.Load() > 0
	}, time.Second, time.Millisecond)
	cancel()
	w.Stop()

	n := calls.Load()
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, n, calls.Load())
}
