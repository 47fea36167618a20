package syncer

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/dmitrijs2005/campusdesk/internal/logging"
	"github.com/dmitrijs2005/campusdesk/internal/portal/cache"
	"github.com/dmitrijs2005/campusdesk/internal/portal/models"
	"github.com/dmitrijs2005/campusdesk/internal/portal/remote"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

// fakeRemote stubs just the calls the syncer makes. Anything else panics via
// the embedded nil interface.
type fakeRemote struct {
	remote.Client
	events    []models.Event
	eventsErr error
	anns      []models.Announcement
	annsErr   error
}

func (f *fakeRemote) FetchEvents(ctx context.Context) ([]models.Event, error) {
	return f.events, f.eventsErr
}

func (f *fakeRemote) FetchAnnouncements(ctx context.Context) ([]models.Announcement, error) {
	return f.anns, f.annsErr
}

// countingStore wraps a Store and counts writes so tests can assert on the
// change-detection gate.
type countingStore struct {
	cache.Store
	sets map[string]int
}

func (c *countingStore) Set(ctx context.Context, key string, value []byte) error {
	c.sets[key]++
	return c.Store.Set(ctx, key, value)
}

func setupSyncer(t *testing.T, f *fakeRemote) (*Syncer, *countingStore) {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(`CREATE TABLE kv (key TEXT PRIMARY KEY, value BLOB NOT NULL, updated_at TEXT NOT NULL)`)
	require.NoError(t, err)

	store := &countingStore{Store: cache.NewSQLiteStore(db), sets: map[string]int{}}
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	s := New(store, f, log)
	s.Start(context.Background())
	return s, store
}

func TestRefreshEvents_WritesThroughOnChange(t *testing.T) {
	ctx := context.Background()
	f := &fakeRemote{events: []models.Event{adminEvent("a1", "exam")}}
	s, store := setupSyncer(t, f)

	require.NoError(t, s.AddEvent(ctx, userEvent("u1", "mine")))
	writesBefore := store.sets[cache.KeyEvents]

	s.RefreshEvents(ctx)

	assert.Equal(t, writesBefore+1, store.sets[cache.KeyEvents])
	assert.ElementsMatch(t, []string{"u1", "a1"}, func() []string {
		var ids []string
		for _, e := range s.Events() {
			ids = append(ids, e.ID)
		}
		return ids
	}())

	// identical snapshot: the equality gate must suppress the write
	s.RefreshEvents(ctx)
	assert.Equal(t, writesBefore+1, store.sets[cache.KeyEvents])
}

func TestRefreshEvents_RemoteFailureKeepsState(t *testing.T) {
	ctx := context.Background()
	f := &fakeRemote{events: []models.Event{adminEvent("a1", "exam")}}
	s, store := setupSyncer(t, f)

	s.RefreshEvents(ctx)
	require.Len(t, s.Events(), 1)
	writes := store.sets[cache.KeyEvents]

	f.eventsErr = errors.New("connection refused")
	s.RefreshEvents(ctx)

	assert.Len(t, s.Events(), 1, "previous state kept on failure")
	assert.Equal(t, writes, store.sets[cache.KeyEvents])
}

func TestRefresh_RemoteEventDeletionCascades(t *testing.T) {
	ctx := context.Background()
	f := &fakeRemote{
		events: []models.Event{adminEvent("ev-9", "talk")},
		anns: []models.Announcement{
			ann(models.AnnouncementIDForEvent("ev-9"), "talk", "2025-05-01T10:00:00Z"),
		},
	}
	s, _ := setupSyncer(t, f)

	s.RefreshEvents(ctx)
	s.RefreshAnnouncements(ctx)
	require.Len(t, s.Events(), 1)
	require.Len(t, s.Announcements(), 1)

	// ev-9 deleted on remote: the next event poll drops it, and the
	// announcement poll after that orphan-filters its announcement even
	// though the remote still returns it.
	f.events = nil
	s.RefreshEvents(ctx)
	assert.Empty(t, s.Events())

	s.RefreshAnnouncements(ctx)
	assert.Empty(t, s.Announcements())
}

func TestRefreshAnnouncements_ReadFlagSurvivesPolls(t *testing.T) {
	ctx := context.Background()
	f := &fakeRemote{anns: []models.Announcement{ann("a1", "one", "2025-05-01T10:00:00Z")}}
	s, store := setupSyncer(t, f)

	s.RefreshAnnouncements(ctx)
	require.NoError(t, s.MarkAnnouncementRead(ctx, "a1"))
	writes := store.sets[cache.KeyAnnouncements]

	s.RefreshAnnouncements(ctx)

	anns := s.Announcements()
	require.Len(t, anns, 1)
	assert.True(t, anns[0].Read)
	assert.Equal(t, writes, store.sets[cache.KeyAnnouncements], "no content diff: no rewrite")
	assert.Zero(t, s.UnreadCount())
}

func TestStart_LoadsCachedState(t *testing.T) {
	ctx := context.Background()
	f := &fakeRemote{}
	s, store := setupSyncer(t, f)

	require.NoError(t, s.AddEvent(ctx, userEvent("u1", "mine")))

	// a fresh syncer over the same store picks the events up again
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	s2 := New(store, f, log)
	s2.Start(ctx)
	assert.Len(t, s2.Events(), 1)
}
