// Package notes implements local-first CRUD for a student's notes: every
// mutation lands in the cache immediately, then pushes to the remote store
// best-effort. A remote failure is logged and forgotten; the note is already
// safe locally.
package notes

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/campusdesk/internal/common"
	"github.com/dmitrijs2005/campusdesk/internal/logging"
	"github.com/dmitrijs2005/campusdesk/internal/portal/cache"
	"github.com/dmitrijs2005/campusdesk/internal/portal/models"
	"github.com/dmitrijs2005/campusdesk/internal/portal/remote"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type Service struct {
	cache    cache.Store
	remote   remote.Client
	log      logging.Logger
	validate *validator.Validate
}

func NewService(c cache.Store, r remote.Client, log logging.Logger) *Service {
	return &Service{
		cache:    c,
		remote:   r,
		log:      log.With("module", "notes"),
		validate: validator.New(),
	}
}

func (s *Service) load(ctx context.Context) []models.Note {
	var notes []models.Note
	cache.GetJSON(ctx, s.cache, s.log, cache.KeyNotes, &notes)
	return notes
}

func (s *Service) store(ctx context.Context, notes []models.Note) error {
	return cache.SetJSON(ctx, s.cache, cache.KeyNotes, notes)
}

// List returns all cached notes.
func (s *Service) List(ctx context.Context) []models.Note {
	return s.load(ctx)
}

// Get returns one note by id.
func (s *Service) Get(ctx context.Context, id string) (*models.Note, error) {
	for _, n := range s.load(ctx) {
		if n.ID == id {
			return &n, nil
		}
	}
	return nil, common.ErrorNotFound
}

// Create validates and stores a new note, then pushes it best-effort.
func (s *Service) Create(ctx context.Context, studentID string, n models.Note) (models.Note, error) {
	if err := s.validate.Struct(n); err != nil {
		return models.Note{}, fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	n.ID = uuid.NewString()
	n.CreatedAt = now
	n.LastModified = now

	notes := append(s.load(ctx), n)
	if err := s.store(ctx, notes); err != nil {
		return models.Note{}, err
	}

	s.push(ctx, studentID, &n)
	return n, nil
}

// Update replaces an existing note by id, bumping lastModified.
func (s *Service) Update(ctx context.Context, studentID string, n models.Note) error {
	if err := s.validate.Struct(n); err != nil {
		return fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}

	notes := s.load(ctx)
	for i := range notes {
		if notes[i].ID != n.ID {
			continue
		}
		n.CreatedAt = notes[i].CreatedAt
		n.LastModified = time.Now().UTC().Format(time.RFC3339)
		notes[i] = n
		if err := s.store(ctx, notes); err != nil {
			return err
		}
		s.push(ctx, studentID, &n)
		return nil
	}
	return common.ErrorNotFound
}

// ToggleFavorite flips the favorite flag. Favorite is treated like any other
// field: local write first, best-effort push after.
func (s *Service) ToggleFavorite(ctx context.Context, studentID, id string) error {
	notes := s.load(ctx)
	for i := range notes {
		if notes[i].ID != id {
			continue
		}
		notes[i].Favorite = !notes[i].Favorite
		notes[i].LastModified = time.Now().UTC().Format(time.RFC3339)
		if err := s.store(ctx, notes); err != nil {
			return err
		}
		s.push(ctx, studentID, &notes[i])
		return nil
	}
	return common.ErrorNotFound
}

// AttachFile appends a file reference to a note.
func (s *Service) AttachFile(ctx context.Context, studentID, noteID string, ref models.FileRef) error {
	notes := s.load(ctx)
	for i := range notes {
		if notes[i].ID != noteID {
			continue
		}
		notes[i].Attachments = append(notes[i].Attachments, ref)
		notes[i].LastModified = time.Now().UTC().Format(time.RFC3339)
		if err := s.store(ctx, notes); err != nil {
			return err
		}
		s.push(ctx, studentID, &notes[i])
		return nil
	}
	return common.ErrorNotFound
}

// Delete removes a note locally and best-effort remotely.
func (s *Service) Delete(ctx context.Context, studentID, id string) error {
	notes := s.load(ctx)
	kept := notes[:0]
	for _, n := range notes {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	if len(kept) == len(notes) {
		return common.ErrorNotFound
	}
	if err := s.store(ctx, kept); err != nil {
		return err
	}
	if err := s.remote.DeleteNote(ctx, studentID, id); err != nil {
		s.log.Warn(ctx, "remote note delete failed", "id", id, "error", err)
	}
	return nil
}

// Hydrate fills an empty local collection from the remote store. Once the
// student has local notes, local wins and Hydrate does nothing; notes are
// single-owner so there is nothing to reconcile.
func (s *Service) Hydrate(ctx context.Context, studentID string) {
	if len(s.load(ctx)) > 0 {
		return
	}
	remoteNotes, err := s.remote.FetchNotes(ctx, studentID)
	if err != nil {
		s.log.Warn(ctx, "note hydrate failed", "error", err)
		return
	}
	if len(remoteNotes) == 0 {
		return
	}
	if err := s.store(ctx, remoteNotes); err != nil {
		s.log.Error(ctx, "failed to cache hydrated notes", "error", err)
	}
}

func (s *Service) push(ctx context.Context, studentID string, n *models.Note) {
	if err := s.remote.UpsertNote(ctx, studentID, n); err != nil {
		s.log.Warn(ctx, "note kept local only", "id", n.ID, "error", err)
	}
}
