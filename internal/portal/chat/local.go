package chat

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/campusdesk/internal/common"
	"github.com/dmitrijs2005/campusdesk/internal/logging"
	"github.com/dmitrijs2005/campusdesk/internal/portal/cache"
	"github.com/dmitrijs2005/campusdesk/internal/portal/models"
	"github.com/google/uuid"
)

// LocalStore keeps every conversation in the cache. Sends only fail on a
// storage write error.
type LocalStore struct {
	cache cache.Store
	log   logging.Logger
}

func NewLocalStore(c cache.Store, log logging.Logger) *LocalStore {
	return &LocalStore{cache: c, log: log.With("module", "chat")}
}

func (s *LocalStore) appendToBucket(ctx context.Context, key string, m models.ChatMessage) (models.ChatMessage, error) {
	m.ID = common.TimestampedID("msg")
	m.Timestamp = time.Now().UTC().Format(time.RFC3339)

	var bucket []models.ChatMessage
	cache.GetJSON(ctx, s.cache, s.log, key, &bucket)
	bucket = append(bucket, m)

	if err := cache.SetJSON(ctx, s.cache, key, bucket); err != nil {
		return models.ChatMessage{}, err
	}
	return m, nil
}

// replaceBucket overwrites a conversation bucket wholesale. The remote
// variant uses it to persist a merged bucket.
func (s *LocalStore) replaceBucket(ctx context.Context, key string, bucket []models.ChatMessage) error {
	return cache.SetJSON(ctx, s.cache, key, bucket)
}

func (s *LocalStore) SendMessage(ctx context.Context, m models.ChatMessage) (models.ChatMessage, error) {
	if m.RecipientID == "" || m.GroupID != "" {
		return models.ChatMessage{}, errors.New("direct message requires recipientId and no groupId")
	}
	return s.appendToBucket(ctx, PairBucketKey(m.SenderID, m.RecipientID), m)
}

func (s *LocalStore) SendGroupMessage(ctx context.Context, m models.ChatMessage) (models.ChatMessage, error) {
	if m.GroupID == "" || m.RecipientID != "" {
		return models.ChatMessage{}, errors.New("group message requires groupId and no recipientId")
	}
	return s.appendToBucket(ctx, GroupBucketKey(m.GroupID), m)
}

func (s *LocalStore) GetMessages(ctx context.Context, userA, userB string) ([]models.ChatMessage, error) {
	var bucket []models.ChatMessage
	cache.GetJSON(ctx, s.cache, s.log, PairBucketKey(userA, userB), &bucket)
	return bucket, nil
}

func (s *LocalStore) GetGroupMessages(ctx context.Context, groupID string) ([]models.ChatMessage, error) {
	var bucket []models.ChatMessage
	cache.GetJSON(ctx, s.cache, s.log, GroupBucketKey(groupID), &bucket)
	return bucket, nil
}

func (s *LocalStore) CreateGroup(ctx context.Context, g models.Group) (models.Group, error) {
	g.ID = uuid.NewString()
	g.CreatedAt = time.Now().UTC().Format(time.RFC3339)

	var groups []models.Group
	cache.GetJSON(ctx, s.cache, s.log, cache.KeyChatGroups, &groups)
	groups = append(groups, g)

	if err := cache.SetJSON(ctx, s.cache, cache.KeyChatGroups, groups); err != nil {
		return models.Group{}, err
	}
	return g, nil
}

func (s *LocalStore) Groups(ctx context.Context) ([]models.Group, error) {
	var groups []models.Group
	cache.GetJSON(ctx, s.cache, s.log, cache.KeyChatGroups, &groups)
	return groups, nil
}

func (s *LocalStore) AddMember(ctx context.Context, groupID string, m models.GroupMember) error {
	var groups []models.Group
	cache.GetJSON(ctx, s.cache, s.log, cache.KeyChatGroups, &groups)

	for i := range groups {
		if groups[i].ID != groupID {
			continue
		}
		if groups[i].HasMember(m.ID) {
			return nil
		}
		groups[i].Members = append(groups[i].Members, m)
		return cache.SetJSON(ctx, s.cache, cache.KeyChatGroups, groups)
	}
	return common.ErrorNotFound
}

// Conversations lists the existing bucket identifiers: pair parts
// ("<a>_<b>") for direct conversations and group ids for group ones.
func (s *LocalStore) Conversations(ctx context.Context) (direct, groups []string, err error) {
	for _, prefix := range []string{cache.PrefixDirectMessages, cache.PrefixGroupMessages} {
		keys, err := s.cache.Keys(ctx, prefix)
		if err != nil {
			return nil, nil, err
		}
		for _, key := range keys {
			conv, group, ok := ConversationFromKey(key)
			if !ok {
				continue
			}
			if group {
				groups = append(groups, conv)
			} else {
				direct = append(direct, conv)
			}
		}
	}
	return direct, groups, nil
}

// UnreadCount is computed at read time by scanning every direct bucket for
// messages addressed to userID that are not yet marked read.
func (s *LocalStore) UnreadCount(ctx context.Context, userID string) (int, error) {
	keys, err := s.cache.Keys(ctx, cache.PrefixDirectMessages)
	if err != nil {
		return 0, err
	}

	n := 0
	for _, key := range keys {
		var bucket []models.ChatMessage
		cache.GetJSON(ctx, s.cache, s.log, key, &bucket)
		for _, m := range bucket {
			if m.RecipientID == userID && !m.Read {
				n++
			}
		}
	}
	return n, nil
}

// MarkConversationRead rewrites the whole pair bucket with read flags set for
// messages addressed to userID.
func (s *LocalStore) MarkConversationRead(ctx context.Context, userID, otherID string) error {
	key := PairBucketKey(userID, otherID)

	var bucket []models.ChatMessage
	if !cache.GetJSON(ctx, s.cache, s.log, key, &bucket) {
		return nil
	}

	dirty := false
	for i := range bucket {
		if bucket[i].RecipientID == userID && !bucket[i].Read {
			bucket[i].Read = true
			dirty = true
		}
	}
	if !dirty {
		return nil
	}
	return cache.SetJSON(ctx, s.cache, key, bucket)
}
