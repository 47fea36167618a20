// Package events creates calendar events and their derived announcements.
// User events are local-first and never pushed; admin events go straight to
// the remote store, which is authoritative for them.
package events

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/campusdesk/internal/common"
	"github.com/dmitrijs2005/campusdesk/internal/logging"
	"github.com/dmitrijs2005/campusdesk/internal/portal/models"
	"github.com/dmitrijs2005/campusdesk/internal/portal/remote"
	"github.com/dmitrijs2005/campusdesk/internal/portal/syncer"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type Service struct {
	sync     *syncer.Syncer
	remote   remote.Client
	log      logging.Logger
	validate *validator.Validate
}

func NewService(sy *syncer.Syncer, r remote.Client, log logging.Logger) *Service {
	return &Service{
		sync:     sy,
		remote:   r,
		log:      log.With("module", "events"),
		validate: validator.New(),
	}
}

// List returns the current merged event state.
func (s *Service) List(ctx context.Context) []models.Event {
	return s.sync.Events()
}

// CreateUserEvent stores a personal event. User events never leave the
// device: merges ignore them and there is nothing to push.
func (s *Service) CreateUserEvent(ctx context.Context, e models.Event) (models.Event, error) {
	if err := s.validate.Struct(e); err != nil {
		return models.Event{}, fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}

	e.ID = uuid.NewString()
	e.CreatedBy = "" // user-origin

	if err := s.sync.AddEvent(ctx, e); err != nil {
		return models.Event{}, err
	}
	return e, nil
}

// DeleteUserEvent removes a user-origin event. Admin-origin events cannot be
// deleted here; the remote store owns them.
func (s *Service) DeleteUserEvent(ctx context.Context, eventID string) error {
	for _, e := range s.sync.Events() {
		if e.ID == eventID {
			if e.IsAdminOrigin() {
				return common.ErrNotAdmin
			}
			return s.sync.RemoveEvent(ctx, eventID)
		}
	}
	return common.ErrorNotFound
}

// CreateAdminEvent pushes an admin-origin event to the remote store and, when
// announce is set, publishes the derived announcement alongside it. This is a
// user-initiated action, so remote failure is surfaced, not swallowed.
func (s *Service) CreateAdminEvent(ctx context.Context, e models.Event, announce bool) (models.Event, error) {
	if err := s.validate.Struct(e); err != nil {
		return models.Event{}, fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}

	e.ID = uuid.NewString()
	e.CreatedBy = models.CreatedByAdmin

	if err := s.remote.UpsertEvent(ctx, &e); err != nil {
		return models.Event{}, err
	}

	if announce {
		a := models.Announcement{
			ID:        models.AnnouncementIDForEvent(e.ID),
			Title:     e.Title,
			Content:   fmt.Sprintf("%s on %s at %s", e.Title, e.Date, e.Time),
			Priority:  models.PriorityMedium,
			Category:  string(e.Type),
			CreatedAt: time.Now().UTC().Format(time.RFC3339),
		}
		if err := s.remote.UpsertAnnouncement(ctx, &a); err != nil {
			// The event is already live; the derived announcement will be
			// orphan-filtered consistent either way.
			s.log.Warn(ctx, "derived announcement not published", "event", e.ID, "error", err)
		}
	}

	return e, nil
}

// DeleteAdminEvent removes an admin event and its derived announcement from
// the remote store. Student sessions converge on the next poll: the event
// disappears from the merge, and the announcement is orphan-filtered.
func (s *Service) DeleteAdminEvent(ctx context.Context, eventID string) error {
	if err := s.remote.DeleteEvent(ctx, eventID); err != nil {
		return err
	}
	if err := s.remote.DeleteAnnouncement(ctx, models.AnnouncementIDForEvent(eventID)); err != nil {
		s.log.Warn(ctx, "derived announcement not deleted", "event", eventID, "error", err)
	}
	return s.sync.RemoveEvent(ctx, eventID)
}

// CreateAnnouncement publishes a standalone admin announcement.
func (s *Service) CreateAnnouncement(ctx context.Context, a models.Announcement) (models.Announcement, error) {
	if err := s.validate.Struct(a); err != nil {
		return models.Announcement{}, fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}

	a.ID = uuid.NewString()
	a.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	if a.Priority == "" {
		a.Priority = models.PriorityMedium
	}

	if err := s.remote.UpsertAnnouncement(ctx, &a); err != nil {
		// Keep it locally; the next merge treats it as local-only.
		s.log.Warn(ctx, "announcement kept local only", "id", a.ID, "error", err)
		if err := s.sync.AddAnnouncement(ctx, a); err != nil {
			return models.Announcement{}, err
		}
	}
	return a, nil
}
