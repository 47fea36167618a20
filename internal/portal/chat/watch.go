package chat

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/campusdesk/internal/logging"
	"github.com/dmitrijs2005/campusdesk/internal/portal/cache"
	"github.com/dmitrijs2005/campusdesk/internal/portal/models"
	"github.com/dmitrijs2005/campusdesk/internal/scheduler"
)

// Watcher propagates cross-session messages: on every tick it rescans all
// message buckets, flattens them and hands the full set to every subscriber.
// This is an O(total messages) rescan per tick with no incremental diff,
// which is acceptable at portal scale.
type Watcher struct {
	cache    cache.Store
	log      logging.Logger
	ticker   scheduler.Factory
	interval time.Duration

	mu     sync.Mutex
	nextID int
	subs   map[int]func([]models.ChatMessage)
}

func NewWatcher(c cache.Store, log logging.Logger, opts ...WatcherOption) *Watcher {
	w := &Watcher{
		cache:    c,
		log:      log.With("module", "chat_watcher"),
		ticker:   scheduler.NewTicker,
		interval: 2 * time.Second,
		subs:     make(map[int]func([]models.ChatMessage)),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

type WatcherOption func(*Watcher)

func WithWatchInterval(d time.Duration) WatcherOption {
	return func(w *Watcher) { w.interval = d }
}

func WithWatchTickerFactory(f scheduler.Factory) WatcherOption {
	return func(w *Watcher) { w.ticker = f }
}

// Subscribe registers fn and returns an unsubscribe func. fn is invoked from
// the watcher goroutine with the full flattened message set.
func (w *Watcher) Subscribe(fn func([]models.ChatMessage)) func() {
	w.mu.Lock()
	defer w.mu.Unlock()

	id := w.nextID
	w.nextID++
	w.subs[id] = fn

	return func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		delete(w.subs, id)
	}
}

// Run blocks, rescanning on every tick until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) {
	scheduler.Poll(ctx, w.ticker(w.interval), w.scan)
}

func (w *Watcher) scan(ctx context.Context) {
	all := w.Snapshot(ctx)

	w.mu.Lock()
	subs := make([]func([]models.ChatMessage), 0, len(w.subs))
	for _, fn := range w.subs {
		subs = append(subs, fn)
	}
	w.mu.Unlock()

	for _, fn := range subs {
		fn(all)
	}
}

// Snapshot flattens every direct and group bucket into one slice.
func (w *Watcher) Snapshot(ctx context.Context) []models.ChatMessage {
	var all []models.ChatMessage

	for _, prefix := range []string{cache.PrefixDirectMessages, cache.PrefixGroupMessages} {
		keys, err := w.cache.Keys(ctx, prefix)
		if err != nil {
			w.log.Warn(ctx, "bucket scan failed", "prefix", prefix, "error", err)
			continue
		}
		for _, key := range keys {
			var bucket []models.ChatMessage
			cache.GetJSON(ctx, w.cache, w.log, key, &bucket)
			all = append(all, bucket...)
		}
	}
	return all
}
