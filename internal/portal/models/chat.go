package models

// MessageType classifies a chat message.
type MessageType string

const (
	MessageTypeText   MessageType = "text"
	MessageTypeFile   MessageType = "file"
	MessageTypeSystem MessageType = "system"
)

// ChatMessage is one entry in a conversation bucket. Exactly one of
// RecipientID and GroupID is set. Ordering is bucket append order only.
type ChatMessage struct {
	ID          string      `json:"id"`
	SenderID    string      `json:"senderId"`
	SenderName  string      `json:"senderName"`
	RecipientID string      `json:"recipientId,omitempty"`
	GroupID     string      `json:"groupId,omitempty"`
	Content     string      `json:"content"`
	Type        MessageType `json:"type"`
	File        *FileRef    `json:"file,omitempty"`
	Timestamp   string      `json:"timestamp"`
	Read        bool        `json:"read"`
}
