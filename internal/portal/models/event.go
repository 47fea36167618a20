// Package models defines the portal's domain records. All records are plain
// JSON documents; no referential integrity is enforced beyond the client-side
// orphan filtering done by the syncer.
package models

// EventType classifies a calendar event.
type EventType string

const (
	EventTypeDeadline      EventType = "deadline"
	EventTypeAssignment    EventType = "assignment"
	EventTypePresentation  EventType = "presentation"
	EventTypeMeeting       EventType = "meeting"
	EventTypeClass         EventType = "class"
	EventTypeExam          EventType = "exam"
	EventTypeHoliday       EventType = "holiday"
	EventTypeViva          EventType = "viva"
	EventTypeLabAssessment EventType = "lab_assessment"
)

// EventTypes lists every valid event type, in display order.
var EventTypes = []EventType{
	EventTypeDeadline, EventTypeAssignment, EventTypePresentation,
	EventTypeMeeting, EventTypeClass, EventTypeExam,
	EventTypeHoliday, EventTypeViva, EventTypeLabAssessment,
}

// CreatedByAdmin marks an event as admin-origin. Admin-origin events are
// remotely authoritative: every merge replaces them wholesale with the
// remote snapshot, while user events survive untouched.
const CreatedByAdmin = "admin"

// Event is a calendar entry.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title" validate:"required"`
	Date        string    `json:"date" validate:"required,datetime=2006-01-02"`
	Time        string    `json:"time" validate:"required,datetime=15:04"`
	Type        EventType `json:"type" validate:"required"`
	Description string    `json:"description,omitempty"`
	Course      string    `json:"course,omitempty"`
	Location    string    `json:"location,omitempty"`
	// CreatedBy distinguishes admin-origin events ("admin") from
	// user-origin ones (empty or anything else).
	CreatedBy string `json:"createdBy,omitempty"`
}

// IsAdminOrigin reports whether the event is remotely authoritative.
func (e Event) IsAdminOrigin() bool {
	return e.CreatedBy == CreatedByAdmin
}
