package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/campusdesk/internal/common"
	"github.com/dmitrijs2005/campusdesk/internal/portal/models"
)

// doJSON issues one request and decodes a JSON response into out (if out is
// non-nil). Network errors and non-2xx statuses both collapse into
// common.ErrRemoteUnavailable; there is no retry, the next scheduled poll is
// the de facto retry.
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.anonKey)
	req.Header.Set("apikey", c.anonKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", common.ErrRemoteUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: %s %s: status %d: %s", common.ErrRemoteUnavailable, method, path, resp.StatusCode, string(b))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s %s: decode: %v", common.ErrRemoteUnavailable, method, path, err)
	}
	return nil
}

func (c *HTTPClient) FetchProfile(ctx context.Context, studentID string) (*models.Profile, error) {
	var p models.Profile
	q := url.Values{"studentId": {studentID}}
	if err := c.doJSON(ctx, http.MethodGet, "/profiles", q, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) UpsertProfile(ctx context.Context, p *models.Profile) error {
	return c.doJSON(ctx, http.MethodPost, "/profiles", nil, p, nil)
}

func (c *HTTPClient) FetchNotes(ctx context.Context, studentID string) ([]models.Note, error) {
	var notes []models.Note
	q := url.Values{"studentId": {studentID}}
	if err := c.doJSON(ctx, http.MethodGet, "/notes", q, nil, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

func (c *HTTPClient) UpsertNote(ctx context.Context, studentID string, n *models.Note) error {
	q := url.Values{"studentId": {studentID}}
	return c.doJSON(ctx, http.MethodPost, "/notes", q, n, nil)
}

func (c *HTTPClient) DeleteNote(ctx context.Context, studentID, noteID string) error {
	q := url.Values{"studentId": {studentID}}
	return c.doJSON(ctx, http.MethodDelete, "/notes/"+noteID, q, nil, nil)
}

func (c *HTTPClient) FetchEvents(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	if err := c.doJSON(ctx, http.MethodGet, "/events", nil, nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (c *HTTPClient) UpsertEvent(ctx context.Context, e *models.Event) error {
	return c.doJSON(ctx, http.MethodPost, "/events", nil, e, nil)
}

func (c *HTTPClient) DeleteEvent(ctx context.Context, eventID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/events/"+eventID, nil, nil, nil)
}

func (c *HTTPClient) FetchAnnouncements(ctx context.Context) ([]models.Announcement, error) {
	var anns []models.Announcement
	if err := c.doJSON(ctx, http.MethodGet, "/announcements", nil, nil, &anns); err != nil {
		return nil, err
	}
	return anns, nil
}

func (c *HTTPClient) UpsertAnnouncement(ctx context.Context, a *models.Announcement) error {
	return c.doJSON(ctx, http.MethodPost, "/announcements", nil, a, nil)
}

func (c *HTTPClient) DeleteAnnouncement(ctx context.Context, announcementID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/announcements/"+announcementID, nil, nil, nil)
}

func (c *HTTPClient) FetchMessages(ctx context.Context, conversation string) ([]models.ChatMessage, error) {
	var msgs []models.ChatMessage
	q := url.Values{"conversation": {conversation}}
	if err := c.doJSON(ctx, http.MethodGet, "/messages", q, nil, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

func (c *HTTPClient) PushMessage(ctx context.Context, conversation string, m *models.ChatMessage) error {
	q := url.Values{"conversation": {conversation}}
	return c.doJSON(ctx, http.MethodPost, "/messages", q, m, nil)
}

func (c *HTTPClient) RegisterMaterial(ctx context.Context, m *models.CourseMaterial) error {
	return c.doJSON(ctx, http.MethodPost, "/materials", nil, m, nil)
}

func (c *HTTPClient) FetchQuizzes(ctx context.Context) ([]models.Quiz, error) {
	var quizzes []models.Quiz
	if err := c.doJSON(ctx, http.MethodGet, "/quizzes", nil, nil, &quizzes); err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (c *HTTPClient) UpsertQuiz(ctx context.Context, q *models.Quiz) error {
	return c.doJSON(ctx, http.MethodPost, "/quizzes", nil, q, nil)
}

func (c *HTTPClient) DeleteQuiz(ctx context.Context, quizID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/quizzes/"+quizID, nil, nil, nil)
}
