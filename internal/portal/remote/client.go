// Package remote is the thin REST client for the hosted backend. Every call
// authenticates with the project's static anonymous key; there is no per-user
// token refresh. Failures carry common.ErrRemoteUnavailable so callers can
// degrade to cache-only operation with errors.Is.
package remote

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/campusdesk/internal/portal/models"
)

// Client is the remote surface consumed by the syncer and the services.
type Client interface {
	FetchProfile(ctx context.Context, studentID string) (*models.Profile, error)
	UpsertProfile(ctx context.Context, p *models.Profile) error

	FetchNotes(ctx context.Context, studentID string) ([]models.Note, error)
	UpsertNote(ctx context.Context, studentID string, n *models.Note) error
	DeleteNote(ctx context.Context, studentID, noteID string) error

	FetchEvents(ctx context.Context) ([]models.Event, error)
	UpsertEvent(ctx context.Context, e *models.Event) error
	DeleteEvent(ctx context.Context, eventID string) error

	FetchAnnouncements(ctx context.Context) ([]models.Announcement, error)
	UpsertAnnouncement(ctx context.Context, a *models.Announcement) error
	DeleteAnnouncement(ctx context.Context, announcementID string) error

	FetchMessages(ctx context.Context, conversation string) ([]models.ChatMessage, error)
	PushMessage(ctx context.Context, conversation string, m *models.ChatMessage) error

	RegisterMaterial(ctx context.Context, m *models.CourseMaterial) error

	FetchQuizzes(ctx context.Context) ([]models.Quiz, error)
	UpsertQuiz(ctx context.Context, q *models.Quiz) error
	DeleteQuiz(ctx context.Context, quizID string) error
}

// HTTPClient implements Client against a fixed base URL.
type HTTPClient struct {
	baseURL string
	anonKey string
	http    *http.Client
}

// NewHTTPClient builds a client for the given base URL and anonymous key.
// If hc is nil, http.DefaultClient is used. No request timeout is set here;
// callers bound requests through their context.
func NewHTTPClient(baseURL, anonKey string, hc *http.Client) *HTTPClient {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &HTTPClient{baseURL: baseURL, anonKey: anonKey, http: hc}
}
