// Package profile caches per-student profiles and feeds the dashboard's
// notification and recent-activity lists.
package profile

import (
	"context"
	"time"

	"github.com/dmitrijs2005/campusdesk/internal/common"
	"github.com/dmitrijs2005/campusdesk/internal/logging"
	"github.com/dmitrijs2005/campusdesk/internal/portal/cache"
	"github.com/dmitrijs2005/campusdesk/internal/portal/models"
	"github.com/dmitrijs2005/campusdesk/internal/portal/remote"
)

// feed caps keep the dashboard lists bounded.
const (
	maxNotifications = 50
	maxActivity      = 20
)

type Service struct {
	cache  cache.Store
	remote remote.Client
	log    logging.Logger
}

func NewService(c cache.Store, r remote.Client, log logging.Logger) *Service {
	return &Service{cache: c, remote: r, log: log.With("module", "profile")}
}

// Get returns the student's profile, fetching through to the remote store on
// a cache miss. A remote failure on a miss returns a stub profile so the
// dashboard still renders.
func (s *Service) Get(ctx context.Context, studentID string) *models.Profile {
	key := cache.KeyUserProfilePrefix + studentID

	var p models.Profile
	if cache.GetJSON(ctx, s.cache, s.log, key, &p) {
		return &p
	}

	fetched, err := s.remote.FetchProfile(ctx, studentID)
	if err != nil {
		s.log.Warn(ctx, "profile fetch failed, using stub", "studentId", studentID, "error", err)
		return &models.Profile{StudentID: studentID}
	}

	if err := cache.SetJSON(ctx, s.cache, key, fetched); err != nil {
		s.log.Error(ctx, "failed to cache profile", "error", err)
	}
	return fetched
}

// Update persists the profile locally and pushes it best-effort.
func (s *Service) Update(ctx context.Context, p models.Profile) error {
	key := cache.KeyUserProfilePrefix + p.StudentID
	if err := cache.SetJSON(ctx, s.cache, key, p); err != nil {
		return err
	}
	if err := s.remote.UpsertProfile(ctx, &p); err != nil {
		s.log.Warn(ctx, "profile kept local only", "studentId", p.StudentID, "error", err)
	}
	return nil
}

// Notify appends an in-app notification, trimming the oldest past the cap.
func (s *Service) Notify(ctx context.Context, title, body string) error {
	var list []models.Notification
	cache.GetJSON(ctx, s.cache, s.log, cache.KeyNotifications, &list)

	list = append(list, models.Notification{
		ID:        common.TimestampedID("ntf"),
		Title:     title,
		Body:      body,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	})
	if len(list) > maxNotifications {
		list = list[len(list)-maxNotifications:]
	}
	return cache.SetJSON(ctx, s.cache, cache.KeyNotifications, list)
}

// Notifications returns the notification feed, newest last.
func (s *Service) Notifications(ctx context.Context) []models.Notification {
	var list []models.Notification
	cache.GetJSON(ctx, s.cache, s.log, cache.KeyNotifications, &list)
	return list
}

// RecordActivity appends a recent-activity entry, trimming past the cap.
func (s *Service) RecordActivity(ctx context.Context, action, subject string) error {
	var list []models.ActivityEntry
	cache.GetJSON(ctx, s.cache, s.log, cache.KeyRecentActivity, &list)

	list = append(list, models.ActivityEntry{
		ID:        common.TimestampedID("act"),
		Action:    action,
		Subject:   subject,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	})
	if len(list) > maxActivity {
		list = list[len(list)-maxActivity:]
	}
	return cache.SetJSON(ctx, s.cache, cache.KeyRecentActivity, list)
}

// RecentActivity returns the activity feed, newest last.
func (s *Service) RecentActivity(ctx context.Context) []models.ActivityEntry {
	var list []models.ActivityEntry
	cache.GetJSON(ctx, s.cache, s.log, cache.KeyRecentActivity, &list)
	return list
}
