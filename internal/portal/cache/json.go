package cache

import (
	"context"
	"encoding/json"

	"github.com/dmitrijs2005/campusdesk/internal/logging"
)

// GetJSON decodes the collection stored under key into out. A missing key or
// malformed stored JSON leaves out untouched and returns false; decode
// failures are logged, never propagated, so every read site degrades to its
// empty default.
func GetJSON(ctx context.Context, s Store, log logging.Logger, key string, out any) bool {
	raw, err := s.Get(ctx, key)
	if err != nil {
		log.Warn(ctx, "cache read failed", "key", key, "error", err)
		return false
	}
	if raw == nil {
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		log.Warn(ctx, "discarding malformed cache entry", "key", key, "error", err)
		return false
	}
	return true
}

// SetJSON serializes v and writes it under key. Unlike reads, write failures
// are surfaced: the caller decides whether the user should see them.
func SetJSON(ctx context.Context, s Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.Set(ctx, key, raw)
}
