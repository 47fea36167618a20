package chat

import (
	"context"

	"github.com/dmitrijs2005/campusdesk/internal/logging"
	"github.com/dmitrijs2005/campusdesk/internal/portal/models"
	"github.com/dmitrijs2005/campusdesk/internal/portal/remote"
)

// RemoteStore mirrors the local store's contract against the hosted backend.
// Sends land locally first, then push remotely best-effort; reads merge the
// remote bucket over the local one by id, local-only messages kept. Group
// membership stays purely local.
type RemoteStore struct {
	local  *LocalStore
	remote remote.Client
	log    logging.Logger
}

func NewRemoteStore(local *LocalStore, r remote.Client, log logging.Logger) *RemoteStore {
	return &RemoteStore{local: local, remote: r, log: log.With("module", "chat_remote")}
}

func (s *RemoteStore) SendMessage(ctx context.Context, m models.ChatMessage) (models.ChatMessage, error) {
	sent, err := s.local.SendMessage(ctx, m)
	if err != nil {
		return models.ChatMessage{}, err
	}
	conv := PairBucketKey(sent.SenderID, sent.RecipientID)
	if err := s.remote.PushMessage(ctx, conv, &sent); err != nil {
		s.log.Warn(ctx, "message kept local only", "id", sent.ID, "error", err)
	}
	return sent, nil
}

func (s *RemoteStore) SendGroupMessage(ctx context.Context, m models.ChatMessage) (models.ChatMessage, error) {
	sent, err := s.local.SendGroupMessage(ctx, m)
	if err != nil {
		return models.ChatMessage{}, err
	}
	if err := s.remote.PushMessage(ctx, GroupBucketKey(sent.GroupID), &sent); err != nil {
		s.log.Warn(ctx, "group message kept local only", "id", sent.ID, "error", err)
	}
	return sent, nil
}

// mergeBuckets dedupes by id with the remote record winning, preserving the
// local read flag, and keeps local-only messages at the tail.
func mergeBuckets(local, remote []models.ChatMessage) []models.ChatMessage {
	localRead := make(map[string]bool, len(local))
	seen := make(map[string]struct{}, len(remote))

	for _, m := range local {
		localRead[m.ID] = m.Read
	}

	merged := make([]models.ChatMessage, 0, len(remote)+len(local))
	for _, m := range remote {
		if read, ok := localRead[m.ID]; ok && read {
			m.Read = true
		}
		seen[m.ID] = struct{}{}
		merged = append(merged, m)
	}
	for _, m := range local {
		if _, dup := seen[m.ID]; !dup {
			merged = append(merged, m)
		}
	}
	return merged
}

func (s *RemoteStore) GetMessages(ctx context.Context, userA, userB string) ([]models.ChatMessage, error) {
	local, _ := s.local.GetMessages(ctx, userA, userB)

	conv := PairBucketKey(userA, userB)
	remoteBucket, err := s.remote.FetchMessages(ctx, conv)
	if err != nil {
		s.log.Warn(ctx, "serving cached conversation", "conversation", conv, "error", err)
		return local, nil
	}

	merged := mergeBuckets(local, remoteBucket)
	if err := s.local.replaceBucket(ctx, conv, merged); err != nil {
		return nil, err
	}
	return merged, nil
}

func (s *RemoteStore) GetGroupMessages(ctx context.Context, groupID string) ([]models.ChatMessage, error) {
	local, _ := s.local.GetGroupMessages(ctx, groupID)

	key := GroupBucketKey(groupID)
	remoteBucket, err := s.remote.FetchMessages(ctx, key)
	if err != nil {
		s.log.Warn(ctx, "serving cached group conversation", "group", groupID, "error", err)
		return local, nil
	}

	merged := mergeBuckets(local, remoteBucket)
	if err := s.local.replaceBucket(ctx, key, merged); err != nil {
		return nil, err
	}
	return merged, nil
}

func (s *RemoteStore) Conversations(ctx context.Context) (direct, groups []string, err error) {
	return s.local.Conversations(ctx)
}

func (s *RemoteStore) CreateGroup(ctx context.Context, g models.Group) (models.Group, error) {
	return s.local.CreateGroup(ctx, g)
}

func (s *RemoteStore) Groups(ctx context.Context) ([]models.Group, error) {
	return s.local.Groups(ctx)
}

func (s *RemoteStore) AddMember(ctx context.Context, groupID string, m models.GroupMember) error {
	return s.local.AddMember(ctx, groupID, m)
}

func (s *RemoteStore) UnreadCount(ctx context.Context, userID string) (int, error) {
	return s.local.UnreadCount(ctx, userID)
}

func (s *RemoteStore) MarkConversationRead(ctx context.Context, userID, otherID string) error {
	return s.local.MarkConversationRead(ctx, userID, otherID)
}
