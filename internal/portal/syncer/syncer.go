// Package syncer owns the merged in-memory state of events and announcements
// and reconciles it with the remote store on a fixed poll. It is the closest
// thing the portal has to a core algorithm: best-effort, lossy, last-write-
// wins by id, with no ordering or durability guarantees beyond the cache
// write-through.
package syncer

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/campusdesk/internal/logging"
	"github.com/dmitrijs2005/campusdesk/internal/portal/cache"
	"github.com/dmitrijs2005/campusdesk/internal/portal/models"
	"github.com/dmitrijs2005/campusdesk/internal/portal/remote"
	"github.com/dmitrijs2005/campusdesk/internal/scheduler"
)

// Syncer reconciles events and announcements. Construct with New, call
// Start once to load cached state, then Run to begin the poll loops.
type Syncer struct {
	cache  cache.Store
	remote remote.Client
	log    logging.Logger
	ticker scheduler.Factory

	eventInterval        time.Duration
	announcementInterval time.Duration

	// mu guards the in-memory snapshots only. It deliberately does not
	// serialize a refresh against a concurrent user mutation; the
	// change-detection gate on write-through is the only lost-update guard,
	// matching the original's semantics.
	mu            sync.Mutex
	events        []models.Event
	announcements []models.Announcement
}

// Option tweaks a Syncer.
type Option func(*Syncer)

// WithIntervals overrides the default 30s refresh intervals.
func WithIntervals(events, announcements time.Duration) Option {
	return func(s *Syncer) {
		s.eventInterval = events
		s.announcementInterval = announcements
	}
}

// WithTickerFactory injects a ticker factory (tests pass manual tickers).
func WithTickerFactory(f scheduler.Factory) Option {
	return func(s *Syncer) { s.ticker = f }
}

func New(c cache.Store, r remote.Client, log logging.Logger, opts ...Option) *Syncer {
	s := &Syncer{
		cache:                c,
		remote:               r,
		log:                  log.With("module", "syncer"),
		ticker:               scheduler.NewTicker,
		eventInterval:        30 * time.Second,
		announcementInterval: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start loads the cached collections into memory. Malformed cache entries
// fall back to empty collections.
func (s *Syncer) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var events []models.Event
	cache.GetJSON(ctx, s.cache, s.log, cache.KeyEvents, &events)
	s.events = events

	var anns []models.Announcement
	cache.GetJSON(ctx, s.cache, s.log, cache.KeyAnnouncements, &anns)
	s.announcements = anns
}

// Run starts the refresh loops and blocks until ctx is cancelled. Admin
// sessions skip the loops entirely: the admin console is the producer of
// admin-origin records, not a consumer of the merged view.
func (s *Syncer) Run(ctx context.Context, isAdmin bool) {
	if isAdmin {
		s.log.Info(ctx, "admin session, background refresh disabled")
		<-ctx.Done()
		return
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		scheduler.Poll(ctx, s.ticker(s.eventInterval), s.RefreshEvents)
	}()
	go func() {
		defer wg.Done()
		scheduler.Poll(ctx, s.ticker(s.announcementInterval), s.RefreshAnnouncements)
	}()
	wg.Wait()
}

// Events returns a copy of the current merged event state.
func (s *Syncer) Events() []models.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Event, len(s.events))
	copy(out, s.events)
	return out
}

// Announcements returns a copy of the current merged announcement state.
func (s *Syncer) Announcements() []models.Announcement {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Announcement, len(s.announcements))
	copy(out, s.announcements)
	return out
}

// RefreshEvents fetches the remote snapshot and merges it. On remote failure
// the previous state is kept untouched; the next poll retries.
func (s *Syncer) RefreshEvents(ctx context.Context) {
	remoteEvents, err := s.remote.FetchEvents(ctx)
	if err != nil {
		s.log.Warn(ctx, "event refresh failed, keeping cached state", "error", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	merged, changed := MergeEvents(s.events, remoteEvents)
	if !changed {
		s.log.Debug(ctx, "events unchanged")
		return
	}

	s.events = merged
	if err := cache.SetJSON(ctx, s.cache, cache.KeyEvents, merged); err != nil {
		s.log.Error(ctx, "failed to cache events", "error", err)
	}
	s.log.Debug(ctx, "events merged", "count", len(merged))
}

// RefreshAnnouncements fetches the remote snapshot and runs the three-way
// merge. On remote failure the remote side is treated as empty, which still
// drops orphans and keeps local-only records.
func (s *Syncer) RefreshAnnouncements(ctx context.Context) {
	remoteAnns, err := s.remote.FetchAnnouncements(ctx)
	if err != nil {
		s.log.Warn(ctx, "announcement refresh failed, merging local only", "error", err)
		remoteAnns = nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var local []models.Announcement
	cache.GetJSON(ctx, s.cache, s.log, cache.KeyAnnouncements, &local)

	merged, changed := MergeAnnouncements(s.announcements, remoteAnns, local, EventIDSet(s.events))
	if !changed {
		s.announcements = merged // read flags may still have been carried over
		s.log.Debug(ctx, "announcements unchanged")
		return
	}

	s.announcements = merged
	if err := cache.SetJSON(ctx, s.cache, cache.KeyAnnouncements, merged); err != nil {
		s.log.Error(ctx, "failed to cache announcements", "error", err)
	}
	s.log.Debug(ctx, "announcements merged", "count", len(merged))
}

// AddEvent appends an event to the in-memory state and writes through to the
// cache (local-first; the caller decides whether to push it remotely).
func (s *Syncer) AddEvent(ctx context.Context, e models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = append(s.events, e)
	return cache.SetJSON(ctx, s.cache, cache.KeyEvents, s.events)
}

// RemoveEvent drops an event by id from memory and cache.
func (s *Syncer) RemoveEvent(ctx context.Context, eventID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.events[:0]
	for _, e := range s.events {
		if e.ID != eventID {
			kept = append(kept, e)
		}
	}
	s.events = kept
	return cache.SetJSON(ctx, s.cache, cache.KeyEvents, s.events)
}

// AddAnnouncement appends a local announcement and writes through.
func (s *Syncer) AddAnnouncement(ctx context.Context, a models.Announcement) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.announcements = append(s.announcements, a)
	return cache.SetJSON(ctx, s.cache, cache.KeyAnnouncements, s.announcements)
}

// MarkAnnouncementRead flips the client-local read flag for one id.
func (s *Syncer) MarkAnnouncementRead(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.announcements {
		if s.announcements[i].ID == id {
			s.announcements[i].Read = true
		}
	}
	return cache.SetJSON(ctx, s.cache, cache.KeyAnnouncements, s.announcements)
}

// UnreadCount reports how many announcements are still unread.
func (s *Syncer) UnreadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, a := range s.announcements {
		if !a.Read {
			n++
		}
	}
	return n
}
