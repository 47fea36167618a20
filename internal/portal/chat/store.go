// Package chat maintains per-pair and per-group message logs and group
// membership. The local store is the system of record (cache buckets); a
// remote-backed variant follows the identical contract with best-effort
// mirroring. Messages are append-only and ordered by bucket append order
// only.
package chat

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/campusdesk/internal/portal/cache"
	"github.com/dmitrijs2005/campusdesk/internal/portal/models"
)

// Store is the messaging contract shared by the local and remote variants.
type Store interface {
	// SendMessage appends a direct message, assigning id and timestamp.
	SendMessage(ctx context.Context, m models.ChatMessage) (models.ChatMessage, error)
	// SendGroupMessage appends a message to a group bucket.
	SendGroupMessage(ctx context.Context, m models.ChatMessage) (models.ChatMessage, error)
	// GetMessages returns the full pair bucket, in append order.
	GetMessages(ctx context.Context, userA, userB string) ([]models.ChatMessage, error)
	// GetGroupMessages returns the full group bucket, in append order.
	GetGroupMessages(ctx context.Context, groupID string) ([]models.ChatMessage, error)

	// Conversations lists existing conversation identifiers, direct pairs
	// and group ids separately.
	Conversations(ctx context.Context) (direct, groups []string, err error)

	CreateGroup(ctx context.Context, g models.Group) (models.Group, error)
	Groups(ctx context.Context) ([]models.Group, error)
	AddMember(ctx context.Context, groupID string, m models.GroupMember) error

	// UnreadCount counts messages addressed to userID not yet marked read.
	UnreadCount(ctx context.Context, userID string) (int, error)
	// MarkConversationRead flags every message addressed to userID in the
	// pair bucket as read (full bucket rewrite).
	MarkConversationRead(ctx context.Context, userID, otherID string) error
}

// PairBucketKey builds the cache key of a direct conversation. The two ids
// are sorted so both participants address the same bucket.
func PairBucketKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return cache.PrefixDirectMessages + a + "_" + b
}

// GroupBucketKey builds the cache key of a group conversation.
func GroupBucketKey(groupID string) string {
	return cache.PrefixGroupMessages + groupID
}

// ConversationFromKey recovers a conversation identifier from a bucket key.
// It returns the pair part ("<a>_<b>") or the group id, and whether the key
// was a group bucket.
func ConversationFromKey(key string) (conversation string, group bool, ok bool) {
	if strings.HasPrefix(key, cache.PrefixGroupMessages) {
		return strings.TrimPrefix(key, cache.PrefixGroupMessages), true, true
	}
	if strings.HasPrefix(key, cache.PrefixDirectMessages) {
		return strings.TrimPrefix(key, cache.PrefixDirectMessages), false, true
	}
	return "", false, false
}
