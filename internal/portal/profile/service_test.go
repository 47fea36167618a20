package profile

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/dmitrijs2005/campusdesk/internal/common"
	"github.com/dmitrijs2005/campusdesk/internal/logging"
	"github.com/dmitrijs2005/campusdesk/internal/portal/cache"
	"github.com/dmitrijs2005/campusdesk/internal/portal/models"
	"github.com/dmitrijs2005/campusdesk/internal/portal/remote"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

type fakeProfileRemote struct {
	remote.Client
	profile *models.Profile
	err     error
	fetches int
	upserts int
}

func (f *fakeProfileRemote) FetchProfile(ctx context.Context, studentID string) (*models.Profile, error) {
	f.fetches++
	return f.profile, f.err
}

func (f *fakeProfileRemote) UpsertProfile(ctx context.Context, p *models.Profile) error {
	f.upserts++
	return f.err
}

func setupProfile(t *testing.T, f *fakeProfileRemote) *Service {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(`CREATE TABLE kv (key TEXT PRIMARY KEY, value BLOB NOT NULL, updated_at TEXT NOT NULL)`)
	require.NoError(t, err)

	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return NewService(cache.NewSQLiteStore(db), f, log)
}

func TestGet_FetchThroughThenCached(t *testing.T) {
	ctx := context.Background()
	f := &fakeProfileRemote{profile: &models.Profile{StudentID: "s1", Name: "Asha"}}
	s := setupProfile(t, f)

	p := s.Get(ctx, "s1")
	assert.Equal(t, "Asha", p.Name)
	assert.Equal(t, 1, f.fetches)

	// second read is served from the cache
	p = s.Get(ctx, "s1")
	assert.Equal(t, "Asha", p.Name)
	assert.Equal(t, 1, f.fetches)
}

func TestGet_StubOnRemoteFailure(t *testing.T) {
	ctx := context.Background()
	f := &fakeProfileRemote{err: common.ErrRemoteUnavailable}
	s := setupProfile(t, f)

	p := s.Get(ctx, "s1")
	assert.Equal(t, "s1", p.StudentID)
	assert.Empty(t, p.Name)

	// the stub is not cached: recovery is retried on the next read
	f.err = nil
	f.profile = &models.Profile{StudentID: "s1", Name: "Asha"}
	assert.Equal(t, "Asha", s.Get(ctx, "s1").Name)
}

func TestUpdate_LocalFirst(t *testing.T) {
	ctx := context.Background()
	f := &fakeProfileRemote{err: common.ErrRemoteUnavailable}
	s := setupProfile(t, f)

	require.NoError(t, s.Update(ctx, models.Profile{StudentID: "s1", Name: "Asha"}))
	assert.Equal(t, 1, f.upserts)
	assert.Equal(t, "Asha", s.Get(ctx, "s1").Name)
}

func TestNotify_CapsFeed(t *testing.T) {
	ctx := context.Background()
	s := setupProfile(t, &fakeProfileRemote{})

	for i := 0; i < maxNotifications+5; i++ {
		require.NoError(t, s.Notify(ctx, fmt.Sprintf("n%d", i), "body"))
	}

	list := s.Notifications(ctx)
	require.Len(t, list, maxNotifications)
	// oldest entries were trimmed
	assert.Equal(t, "n5", list[0].Title)
	assert.Equal(t, fmt.Sprintf("n%d", maxNotifications+4), list[len(list)-1].Title)
}

func TestRecordActivity_CapsFeed(t *testing.T) {
	ctx := context.Background()
	s := setupProfile(t, &fakeProfileRemote{})

	for i := 0; i < maxActivity+3; i++ {
		require.NoError(t, s.RecordActivity(ctx, "created note", fmt.Sprintf("note-%d", i)))
	}

	list := s.RecentActivity(ctx)
	require.Len(t, list, maxActivity)
	assert.Equal(t, "note-3", list[0].Subject)
}
