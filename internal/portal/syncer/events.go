package syncer

import (
	"reflect"

	"github.com/dmitrijs2005/campusdesk/internal/portal/models"
)

// MergeEvents reconciles the previous event state with a freshly fetched
// remote snapshot. User-origin events (CreatedBy != "admin") always survive
// unmodified; admin-origin events are replaced wholesale by the remote
// snapshot, which is the sole source of truth for them. There is no id-level
// merge across admin events.
//
// The returned changed flag is a whole-collection equality check gating the
// cache write-through.
func MergeEvents(prev, remote []models.Event) (merged []models.Event, changed bool) {
	merged = make([]models.Event, 0, len(prev)+len(remote))

	for _, e := range prev {
		if !e.IsAdminOrigin() {
			merged = append(merged, e)
		}
	}
	for _, e := range remote {
		if e.IsAdminOrigin() {
			merged = append(merged, e)
		}
	}

	return merged, !reflect.DeepEqual(prev, merged)
}

// EventIDSet collects event ids for the announcement orphan filter.
func EventIDSet(events []models.Event) map[string]struct{} {
	ids := make(map[string]struct{}, len(events))
	for _, e := range events {
		ids[e.ID] = struct{}{}
	}
	return ids
}
