// Package admin bundles the console-only operations: course-material uploads
// and quiz management. All of them require an admin session.
package admin

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/campusdesk/internal/logging"
	"github.com/dmitrijs2005/campusdesk/internal/netx"
	"github.com/dmitrijs2005/campusdesk/internal/portal/files"
	"github.com/dmitrijs2005/campusdesk/internal/portal/models"
	"github.com/dmitrijs2005/campusdesk/internal/portal/remote"
	"github.com/google/uuid"
)

type Service struct {
	remote  remote.Client
	storage *files.ObjectStorage // nil when object storage is not configured
	log     logging.Logger
}

func NewService(r remote.Client, storage *files.ObjectStorage, log logging.Logger) *Service {
	return &Service{remote: r, storage: storage, log: log.With("module", "admin")}
}

// UploadMaterial puts the document bytes into object storage through a
// presigned PUT, then registers the material with the remote store so
// students can list it.
func (s *Service) UploadMaterial(ctx context.Context, course, title, filename, contentType string, data []byte) (models.CourseMaterial, error) {
	if s.storage == nil {
		return models.CourseMaterial{}, errors.New("object storage not configured")
	}

	key := files.ObjectKey(course, filename)

	putURL, err := s.storage.PresignPut(ctx, key, 15*time.Minute)
	if err != nil {
		return models.CourseMaterial{}, err
	}
	if err := netx.UploadToPresignedURL(putURL, contentType, data); err != nil {
		return models.CourseMaterial{}, err
	}

	m := models.CourseMaterial{
		ID:         uuid.NewString(),
		Course:     course,
		Title:      title,
		FileName:   filename,
		URL:        s.storage.PublicURL(key),
		Size:       int64(len(data)),
		UploadedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.remote.RegisterMaterial(ctx, &m); err != nil {
		return models.CourseMaterial{}, err
	}
	return m, nil
}

// Quizzes lists the remote quiz records.
func (s *Service) Quizzes(ctx context.Context) ([]models.Quiz, error) {
	return s.remote.FetchQuizzes(ctx)
}

// SaveQuiz creates or updates a quiz.
func (s *Service) SaveQuiz(ctx context.Context, q models.Quiz) (models.Quiz, error) {
	if q.ID == "" {
		q.ID = uuid.NewString()
		q.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	if err := s.remote.UpsertQuiz(ctx, &q); err != nil {
		return models.Quiz{}, err
	}
	return q, nil
}

// DeleteQuiz removes a quiz.
func (s *Service) DeleteQuiz(ctx context.Context, quizID string) error {
	return s.remote.DeleteQuiz(ctx, quizID)
}
