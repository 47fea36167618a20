package chat

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/campusdesk/internal/common"
	"github.com/dmitrijs2005/campusdesk/internal/logging"
	"github.com/dmitrijs2005/campusdesk/internal/portal/cache"
	"github.com/dmitrijs2005/campusdesk/internal/portal/models"
	"github.com/dmitrijs2005/campusdesk/internal/scheduler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupStore(t *testing.T) (*LocalStore, cache.Store) {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(`CREATE TABLE kv (key TEXT PRIMARY KEY, value BLOB NOT NULL, updated_at TEXT NOT NULL)`)
	require.NoError(t, err)

	store := cache.NewSQLiteStore(db)
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return NewLocalStore(store, log), store
}

func direct(from, to, content string) models.ChatMessage {
	return models.ChatMessage{SenderID: from, RecipientID: to, Content: content, Type: models.MessageTypeText}
}

func TestPairBucketKey_Symmetric(t *testing.T) {
	assert.Equal(t, PairBucketKey("alice", "bob"), PairBucketKey("bob", "alice"))
	assert.Equal(t, "messages_alice_bob", PairBucketKey("bob", "alice"))
}

func TestSendMessage_AppendOnlyOrder(t *testing.T) {
	ctx := context.Background()
	s, _ := setupStore(t)

	m1, err := s.SendMessage(ctx, direct("alice", "bob", "hi"))
	require.NoError(t, err)
	m2, err := s.SendMessage(ctx, direct("bob", "alice", "hey"))
	require.NoError(t, err)

	assert.NotEmpty(t, m1.ID)
	assert.NotEqual(t, m1.ID, m2.ID)

	// both directions land in the same bucket, in send order
	bucket, err := s.GetMessages(ctx, "bob", "alice")
	require.NoError(t, err)
	require.Len(t, bucket, 2)
	assert.Equal(t, "hi", bucket[0].Content)
	assert.Equal(t, "hey", bucket[1].Content)
}

func TestSendMessage_RejectsBadAddressing(t *testing.T) {
	ctx := context.Background()
	s, _ := setupStore(t)

	_, err := s.SendMessage(ctx, models.ChatMessage{SenderID: "alice", Content: "no recipient"})
	assert.Error(t, err)

	_, err = s.SendGroupMessage(ctx, models.ChatMessage{SenderID: "alice", RecipientID: "bob", GroupID: "g1"})
	assert.Error(t, err)
}

func TestGroupLifecycle(t *testing.T) {
	ctx := context.Background()
	s, _ := setupStore(t)

	g, err := s.CreateGroup(ctx, models.Group{
		Name:    "study group",
		Members: []models.GroupMember{{ID: "alice", Role: models.GroupRoleAdmin}},
	})
	require.NoError(t, err)
	require.NotEmpty(t, g.ID)

	require.NoError(t, s.AddMember(ctx, g.ID, models.GroupMember{ID: "bob", Role: models.GroupRoleMember}))
	// duplicate add is silently ignored
	require.NoError(t, s.AddMember(ctx, g.ID, models.GroupMember{ID: "bob", Role: models.GroupRoleMember}))
	assert.ErrorIs(t, s.AddMember(ctx, "nope", models.GroupMember{ID: "eve"}), common.ErrorNotFound)

	groups, err := s.Groups(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Len(t, groups[0].Members, 2)

	_, err = s.SendGroupMessage(ctx, models.ChatMessage{SenderID: "alice", GroupID: g.ID, Content: "welcome", Type: models.MessageTypeText})
	require.NoError(t, err)
	msgs, err := s.GetGroupMessages(ctx, g.ID)
	require.NoError(t, err)
	assert.Len(t, msgs, 1)
}

func TestConversations(t *testing.T) {
	ctx := context.Background()
	s, _ := setupStore(t)

	pairs, groups, err := s.Conversations(ctx)
	require.NoError(t, err)
	assert.Empty(t, pairs)
	assert.Empty(t, groups)

	_, err = s.SendMessage(ctx, direct("alice", "bob", "hello"))
	require.NoError(t, err)
	_, err = s.SendMessage(ctx, direct("carol", "alice", "hello"))
	require.NoError(t, err)
	_, err = s.SendGroupMessage(ctx, models.ChatMessage{SenderID: "alice", GroupID: "g1", Content: "x", Type: models.MessageTypeText})
	require.NoError(t, err)

	pairs, groups, err = s.Conversations(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"alice_bob", "alice_carol"}, pairs)
	assert.Equal(t, []string{"g1"}, groups)
}

func TestUnreadCountAndMarkRead(t *testing.T) {
	ctx := context.Background()
	s, _ := setupStore(t)

	_, err := s.SendMessage(ctx, direct("alice", "bob", "one"))
	require.NoError(t, err)
	_, err = s.SendMessage(ctx, direct("alice", "bob", "two"))
	require.NoError(t, err)
	_, err = s.SendMessage(ctx, direct("carol", "bob", "three"))
	require.NoError(t, err)

	n, err := s.UnreadCount(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	// alice has nothing addressed to her
	n, err = s.UnreadCount(ctx, "alice")
	require.NoError(t, err)
	assert.Zero(t, n)

	require.NoError(t, s.MarkConversationRead(ctx, "bob", "alice"))

	n, err = s.UnreadCount(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, 1, n, "carol's message is still unread")

	// marking an empty conversation is a no-op
	require.NoError(t, s.MarkConversationRead(ctx, "bob", "nobody"))
}

func TestWatcher_DeliversSnapshotsToSubscribers(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s, store := setupStore(t)
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	tk := scheduler.NewManualTicker()
	w := NewWatcher(store, log, WithWatchTickerFactory(func(time.Duration) scheduler.Ticker { return tk }))

	var mu sync.Mutex
	var seen [][]models.ChatMessage
	unsubscribe := w.Subscribe(func(msgs []models.ChatMessage) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, msgs)
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		w.Run(ctx)
	}()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) == 1
	}, time.Second, 5*time.Millisecond, "initial scan fires immediately")

	_, err := s.SendMessage(ctx, direct("alice", "bob", "ping"))
	require.NoError(t, err)
	_, err = s.SendGroupMessage(ctx, models.ChatMessage{SenderID: "alice", GroupID: "g1", Content: "pong", Type: models.MessageTypeText})
	require.NoError(t, err)

	tk.Tick()
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) == 2
	}, time.Second, 5*time.Millisecond)

	mu.Lock()
	assert.Empty(t, seen[0])
	assert.Len(t, seen[1], 2, "direct and group buckets are both flattened")
	mu.Unlock()

	unsubscribe()
	tk.Tick()
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) == 2
	}, 100*time.Millisecond, 5*time.Millisecond, "unsubscribed callback is not invoked")

	cancel()
	<-done
}
