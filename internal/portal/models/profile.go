package models

// Profile is the student's cached profile record.
type Profile struct {
	StudentID string `json:"studentId"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	Course    string `json:"course,omitempty"`
	Semester  string `json:"semester,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// Notification is a local in-app notification entry.
type Notification struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Body      string `json:"body,omitempty"`
	CreatedAt string `json:"createdAt"`
	Read      bool   `json:"read"`
}

// ActivityEntry is one line of the dashboard's recent-activity feed.
type ActivityEntry struct {
	ID        string `json:"id"`
	Action    string `json:"action"`
	Subject   string `json:"subject,omitempty"`
	CreatedAt string `json:"createdAt"`
}

// Quiz is an admin-managed quiz record, passed through to the remote store.
type Quiz struct {
	ID        string `json:"id"`
	Title     string `json:"title" validate:"required"`
	Course    string `json:"course" validate:"required"`
	DueDate   string `json:"dueDate,omitempty"`
	Questions int    `json:"questions,omitempty"`
	CreatedAt string `json:"createdAt"`
}

// CourseMaterial is an admin-uploaded document registered with the remote
// store after its bytes land in object storage.
type CourseMaterial struct {
	ID         string `json:"id"`
	Course     string `json:"course" validate:"required"`
	Title      string `json:"title" validate:"required"`
	FileName   string `json:"fileName"`
	URL        string `json:"url"`
	Size       int64  `json:"size"`
	UploadedAt string `json:"uploadedAt"`
}
