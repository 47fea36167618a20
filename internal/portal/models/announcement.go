package models

import (
	"strings"
	"time"
)

// Priority grades an announcement.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// eventAnnouncementPrefix is the id prefix of announcements derived from
// calendar events.
const eventAnnouncementPrefix = "event-announcement-"

// Announcement is a portal-wide notice. The Read flag is client-local only;
// the remote store never carries it and merges must preserve it.
type Announcement struct {
	ID       string   `json:"id"`
	Title    string   `json:"title" validate:"required"`
	Content  string   `json:"content" validate:"required"`
	Time     string   `json:"time,omitempty"` // display string, not parsed
	Priority Priority `json:"priority"`
	Category string   `json:"category,omitempty"`
	Read     bool     `json:"read"`
	// CreatedAt orders announcements (descending). A record missing it
	// sorts as the zero time, i.e. to the tail.
	CreatedAt string `json:"createdAt,omitempty"`
}

// CreatedAtTime parses CreatedAt as RFC 3339, returning the zero time when
// the field is absent or malformed so ordering stays deterministic.
func (a Announcement) CreatedAtTime() time.Time {
	t, err := time.Parse(time.RFC3339, a.CreatedAt)
	if err != nil {
		return time.Time{}
	}
	return t
}

// AnnouncementIDForEvent derives the announcement id tied to an event.
func AnnouncementIDForEvent(eventID string) string {
	return eventAnnouncementPrefix + eventID
}

// EventIDFromAnnouncement returns the source event id of an event-derived
// announcement, or ("", false) for ordinary announcements.
func EventIDFromAnnouncement(announcementID string) (string, bool) {
	if !strings.HasPrefix(announcementID, eventAnnouncementPrefix) {
		return "", false
	}
	return strings.TrimPrefix(announcementID, eventAnnouncementPrefix), true
}
