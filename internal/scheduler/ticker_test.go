package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoll_RunsImmediatelyAndPerTick(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	tk := NewManualTicker()

	done := make(chan struct{})
	go func() {
		defer close(done)
		Poll(ctx, tk, func(ctx context.Context) { calls.Add(1) })
	}()

	require.Eventually(t, func() bool { return calls.Load() == 1 },
		time.Second, 5*time.Millisecond, "first run fires without a tick")

	tk.Tick()
	tk.Tick()
	require.Eventually(t, func() bool { return calls.Load() == 3 },
		time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("poll loop did not stop on cancel")
	}
}

func TestPoll_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls int
	done := make(chan struct{})
	go func() {
		defer close(done)
		Poll(ctx, NewManualTicker(), func(ctx context.Context) { calls++ })
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("poll loop did not stop")
	}
	// the immediate run still happens before the cancel is observed
	assert.Equal(t, 1, calls)
}

func TestNewTickerDelivers(t *testing.T) {
	tk := NewTicker(time.Millisecond)
	defer tk.Stop()

	select {
	case <-tk.C():
	case <-time.After(time.Second):
		t.Fatal("no tick from real ticker")
	}
}
