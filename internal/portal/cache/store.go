// Package cache is the portal's durable local key-value store. Collections
// are stored as JSON blobs under well-known keys, mirroring the browser
// client's localStorage layout, but backed by SQLite so state survives
// process restarts.
package cache

import "context"

// Well-known cache keys. Chat buckets and per-student profiles extend these
// with dynamic suffixes.
const (
	KeyIsLoggedIn       = "isLoggedIn"
	KeyIsAdmin          = "isAdmin"
	KeyUserName         = "userName"
	KeyCurrentStudentID = "currentStudentId"
	KeySessionToken     = "sessionToken"
	KeyTheme            = "theme"

	KeyNotes          = "notes"
	KeyEvents         = "events"
	KeyAnnouncements  = "announcements"
	KeyNotifications  = "notifications"
	KeyRecentActivity = "recentActivity"
	KeyFiles          = "bits_dashboard_files"
	KeyChatGroups     = "chat_groups"

	// KeyUserProfilePrefix + <studentId> holds one cached profile.
	KeyUserProfilePrefix = "userProfile_"
	// PrefixDirectMessages + <a>_<b> (ids sorted) holds one pair bucket.
	PrefixDirectMessages = "messages_"
	// PrefixGroupMessages + <groupId> holds one group bucket.
	PrefixGroupMessages = "group_messages_"
)

// Store is the raw key-value surface. Get returns (nil, nil) for a missing
// key; typed access goes through GetJSON/SetJSON which never surface decode
// errors to callers.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// SetMany upserts several keys, atomically where the backend allows it.
	SetMany(ctx context.Context, values map[string][]byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context, prefix string) ([]string, error)
}
