// Package scheduler abstracts the interval timers behind the portal's
// pseudo-realtime sync so polling loops can be unit-tested without real
// timers.
package scheduler

import (
	"context"
	"time"
)

// Ticker is the subset of time.Ticker the polling loops need.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// Factory creates a Ticker for the given interval. Production code uses
// NewTicker; tests inject a ManualTicker.
type Factory func(d time.Duration) Ticker

type realTicker struct {
	t *time.Ticker
}

func (r *realTicker) C() <-chan time.Time { return r.t.C }
func (r *realTicker) Stop()               { r.t.Stop() }

// NewTicker wraps time.NewTicker.
func NewTicker(d time.Duration) Ticker {
	return &realTicker{t: time.NewTicker(d)}
}

// ManualTicker is a hand-cranked Ticker for tests.
type ManualTicker struct {
	ch chan time.Time
}

func NewManualTicker() *ManualTicker {
	return &ManualTicker{ch: make(chan time.Time)}
}

func (m *ManualTicker) C() <-chan time.Time { return m.ch }
func (m *ManualTicker) Stop()               {}

// Tick fires one tick and blocks until the loop has received it.
func (m *ManualTicker) Tick() { m.ch <- time.Now() }

// Poll runs fn once immediately, then again on every tick, until ctx is
// cancelled. The ticker is stopped on exit. Ticks are not delivered
// concurrently: a slow fn delays the next round rather than overlapping it.
func Poll(ctx context.Context, t Ticker, fn func(ctx context.Context)) {
	defer t.Stop()

	fn(ctx)

	for {
		select {
		case <-t.C():
			fn(ctx)
		case <-ctx.Done():
			return
		}
	}
}
