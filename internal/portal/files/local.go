// Package files stores note attachments. Small files live in the local cache
// as base64 data URLs under a fixed quota; larger or shared files go to
// S3-compatible object storage.
package files

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/campusdesk/internal/common"
	"github.com/dmitrijs2005/campusdesk/internal/logging"
	"github.com/dmitrijs2005/campusdesk/internal/portal/cache"
	"github.com/dmitrijs2005/campusdesk/internal/portal/models"
)

// DefaultQuota is the hard cap on total locally stored file bytes.
const DefaultQuota = 50 * 1024 * 1024

// LocalStore keeps file blobs in the cache as data URLs.
type LocalStore struct {
	cache cache.Store
	log   logging.Logger
	quota int64
}

func NewLocalStore(c cache.Store, log logging.Logger, quota int64) *LocalStore {
	if quota <= 0 {
		quota = DefaultQuota
	}
	return &LocalStore{cache: c, log: log.With("module", "files"), quota: quota}
}

func (s *LocalStore) load(ctx context.Context) []models.FileRef {
	var refs []models.FileRef
	cache.GetJSON(ctx, s.cache, s.log, cache.KeyFiles, &refs)
	return refs
}

// TotalSize sums the sizes of all locally stored files.
func (s *LocalStore) TotalSize(ctx context.Context) int64 {
	var total int64
	for _, f := range s.load(ctx) {
		total += f.Size
	}
	return total
}

// Save stores a file blob for a note. The quota check runs before anything
// is written: a file that would push total stored bytes over the quota fails
// with common.ErrQuotaExceeded and leaves the collection untouched.
func (s *LocalStore) Save(ctx context.Context, noteID, name, mimeType string, data []byte) (models.FileRef, error) {
	size := int64(len(data))

	refs := s.load(ctx)
	var total int64
	for _, f := range refs {
		total += f.Size
	}
	if total+size > s.quota {
		return models.FileRef{}, fmt.Errorf("%w: %d + %d bytes exceeds %d",
			common.ErrQuotaExceeded, total, size, s.quota)
	}

	ref := models.FileRef{
		ID:         common.TimestampedID("local"),
		Name:       name,
		Type:       mimeType,
		Size:       size,
		URL:        "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data),
		UploadDate: time.Now().UTC().Format(time.RFC3339),
		NoteID:     noteID,
	}

	refs = append(refs, ref)
	if err := cache.SetJSON(ctx, s.cache, cache.KeyFiles, refs); err != nil {
		return models.FileRef{}, err
	}
	return ref, nil
}

// Get returns the stored ref and its decoded bytes.
func (s *LocalStore) Get(ctx context.Context, id string) (models.FileRef, []byte, error) {
	for _, f := range s.load(ctx) {
		if f.ID != id {
			continue
		}
		idx := strings.Index(f.URL, ";base64,")
		if idx < 0 {
			return f, nil, fmt.Errorf("file %s has no data payload", id)
		}
		data, err := base64.StdEncoding.DecodeString(f.URL[idx+len(";base64,"):])
		if err != nil {
			return f, nil, fmt.Errorf("failed to decode file %s: %w", id, err)
		}
		return f, data, nil
	}
	return models.FileRef{}, nil, common.ErrorNotFound
}

// List returns the refs attached to a note (all notes when noteID is empty).
func (s *LocalStore) List(ctx context.Context, noteID string) []models.FileRef {
	refs := s.load(ctx)
	if noteID == "" {
		return refs
	}
	out := refs[:0:0]
	for _, f := range refs {
		if f.NoteID == noteID {
			out = append(out, f)
		}
	}
	return out
}

// Delete removes one file by id. Deleting an unknown id is a no-op.
func (s *LocalStore) Delete(ctx context.Context, id string) error {
	refs := s.load(ctx)
	kept := refs[:0]
	for _, f := range refs {
		if f.ID != id {
			kept = append(kept, f)
		}
	}
	if len(kept) == len(refs) {
		return nil
	}
	return cache.SetJSON(ctx, s.cache, cache.KeyFiles, kept)
}
