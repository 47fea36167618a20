package admin

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/dmitrijs2005/campusdesk/internal/logging"
	"github.com/dmitrijs2005/campusdesk/internal/portal/models"
	"github.com/dmitrijs2005/campusdesk/internal/portal/remote"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAdminRemote struct {
	remote.Client
	quizzes []models.Quiz
	deleted []string
}

func (f *fakeAdminRemote) FetchQuizzes(ctx context.Context) ([]models.Quiz, error) {
	return f.quizzes, nil
}

func (f *fakeAdminRemote) UpsertQuiz(ctx context.Context, q *models.Quiz) error {
	f.quizzes = append(f.quizzes, *q)
	return nil
}

func (f *fakeAdminRemote) DeleteQuiz(ctx context.Context, quizID string) error {
	f.deleted = append(f.deleted, quizID)
	return nil
}

func newTestService(f *fakeAdminRemote) *Service {
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return NewService(f, nil, log)
}

func TestUploadMaterial_RequiresObjectStorage(t *testing.T) {
	s := newTestService(&fakeAdminRemote{})

	_, err := s.UploadMaterial(context.Background(), "CS301", "Week 1", "w1.pdf", "application/pdf", []byte("x"))
	assert.ErrorContains(t, err, "object storage not configured")
}

func TestSaveQuiz_AssignsIDOnCreate(t *testing.T) {
	ctx := context.Background()
	f := &fakeAdminRemote{}
	s := newTestService(f)

	q, err := s.SaveQuiz(ctx, models.Quiz{Title: "DSA quiz 1", Course: "CS201"})
	require.NoError(t, err)
	assert.NotEmpty(t, q.ID)
	assert.NotEmpty(t, q.CreatedAt)
	require.Len(t, f.quizzes, 1)

	// updates keep the existing id and createdAt
	q.Title = "DSA quiz 1 (revised)"
	updated, err := s.SaveQuiz(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, q.ID, updated.ID)
	assert.Equal(t, q.CreatedAt, updated.CreatedAt)

	quizzes, err := s.Quizzes(ctx)
	require.NoError(t, err)
	assert.Len(t, quizzes, 2)
}

func TestDeleteQuiz(t *testing.T) {
	f := &fakeAdminRemote{}
	s := newTestService(f)

	require.NoError(t, s.DeleteQuiz(context.Background(), "q1"))
	assert.Equal(t, []string{"q1"}, f.deleted)
}
