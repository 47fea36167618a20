package syncer

import (
	"sort"

	"github.com/dmitrijs2005/campusdesk/internal/portal/models"
)

// MergeAnnouncements performs the three-way announcement merge:
//
//  1. Event-derived announcements whose source event id is not in eventIDs
//     are dropped, from the remote AND the local side (client-side orphan
//     filtering; the backend has no foreign keys, and the local slice is the
//     previous merge's write-through, so a deleted event's announcement would
//     otherwise re-enter through the cache forever).
//  2. Local announcements whose id already appears in the filtered remote set
//     are dropped; remote wins on id collision.
//  3. The result is remote ++ unique-local, sorted descending by createdAt.
//     A missing or malformed createdAt sorts as the zero time, so such
//     records land at the tail deterministically. The sort is stable.
//  4. Read flags are client-local: each merged record keeps the Read value of
//     the matching record in prev, defaulting to false for new ids.
//
// The changed flag is a targeted change-detection pass against prev, not a
// blind deep compare: it trips when an id appeared or disappeared, the count
// changed, or any of title/content/priority/category differs for a shared
// id. Read-flag differences alone never trip it, so an in-flight read toggle
// is not clobbered by a no-op write-through.
func MergeAnnouncements(prev, remote, local []models.Announcement, eventIDs map[string]struct{}) (merged []models.Announcement, changed bool) {
	orphaned := func(a models.Announcement) bool {
		eventID, ok := models.EventIDFromAnnouncement(a.ID)
		if !ok {
			return false
		}
		_, exists := eventIDs[eventID]
		return !exists
	}

	filtered := make([]models.Announcement, 0, len(remote))
	for _, a := range remote {
		if orphaned(a) {
			continue // source event is gone
		}
		filtered = append(filtered, a)
	}

	remoteIDs := make(map[string]struct{}, len(filtered))
	for _, a := range filtered {
		remoteIDs[a.ID] = struct{}{}
	}

	merged = filtered
	for _, a := range local {
		if orphaned(a) {
			continue
		}
		if _, dup := remoteIDs[a.ID]; !dup {
			merged = append(merged, a)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].CreatedAtTime().After(merged[j].CreatedAtTime())
	})

	prevByID := make(map[string]models.Announcement, len(prev))
	for _, a := range prev {
		prevByID[a.ID] = a
	}
	for i := range merged {
		if old, ok := prevByID[merged[i].ID]; ok {
			merged[i].Read = old.Read
		} else {
			merged[i].Read = false
		}
	}

	return merged, announcementsChanged(prev, merged)
}

// announcementsChanged implements the targeted change-detection pass.
func announcementsChanged(prev, next []models.Announcement) bool {
	if len(prev) != len(next) {
		return true
	}

	prevByID := make(map[string]models.Announcement, len(prev))
	for _, a := range prev {
		prevByID[a.ID] = a
	}

	for _, a := range next {
		old, ok := prevByID[a.ID]
		if !ok {
			return true // new id appeared
		}
		if old.Title != a.Title || old.Content != a.Content ||
			old.Priority != a.Priority || old.Category != a.Category {
			return true
		}
		delete(prevByID, a.ID)
	}

	// anything left in prevByID disappeared
	return len(prevByID) > 0
}
