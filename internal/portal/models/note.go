package models

import "strings"

// Note is a student's note. A note belongs to exactly one student and is only
// ever mutated from that student's session.
type Note struct {
	ID           string    `json:"id"`
	Title        string    `json:"title" validate:"required"`
	Content      string    `json:"content"`
	Course       string    `json:"course" validate:"required"`
	Tags         string    `json:"tags,omitempty"` // comma-delimited
	CreatedAt    string    `json:"createdAt"`
	LastModified string    `json:"lastModified"`
	Favorite     bool      `json:"favorite"`
	Attachments  []FileRef `json:"attachments,omitempty"`
}

// TagList splits the comma-delimited Tags field, trimming whitespace and
// dropping empties.
func (n Note) TagList() []string {
	if n.Tags == "" {
		return nil
	}
	parts := strings.Split(n.Tags, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
