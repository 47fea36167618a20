package syncer

import (
	"testing"

	"github.com/dmitrijs2005/campusdesk/internal/portal/models"
	"github.com/stretchr/testify/assert"
)

func userEvent(id, title string) models.Event {
	return models.Event{ID: id, Title: title, Date: "2025-05-01", Time: "10:00", Type: models.EventTypeClass}
}

func adminEvent(id, title string) models.Event {
	e := userEvent(id, title)
	e.CreatedBy = models.CreatedByAdmin
	return e
}

func TestMergeEvents_UserEventsSurviveUnmodified(t *testing.T) {
	prev := []models.Event{
		userEvent("u1", "my study group"),
		adminEvent("a1", "midterm"),
		userEvent("u2", "gym"),
	}
	remote := []models.Event{adminEvent("a2", "viva")}

	merged, changed := MergeEvents(prev, remote)

	assert.True(t, changed)
	assert.Equal(t, []models.Event{
		userEvent("u1", "my study group"),
		userEvent("u2", "gym"),
		adminEvent("a2", "viva"),
	}, merged)
}

func TestMergeEvents_RemoteIsAuthoritativeForAdmin(t *testing.T) {
	// ev-9 deleted on remote: it must disappear from the merged state.
	prev := []models.Event{adminEvent("ev-9", "cancelled talk"), userEvent("u1", "mine")}
	remote := []models.Event{}

	merged, changed := MergeEvents(prev, remote)

	assert.True(t, changed)
	assert.Equal(t, []models.Event{userEvent("u1", "mine")}, merged)
}

func TestMergeEvents_NonAdminRemoteRecordsIgnored(t *testing.T) {
	prev := []models.Event{userEvent("u1", "mine")}
	remote := []models.Event{userEvent("x1", "someone else's"), adminEvent("a1", "exam")}

	merged, _ := MergeEvents(prev, remote)

	assert.Equal(t, []models.Event{userEvent("u1", "mine"), adminEvent("a1", "exam")}, merged)
}

func TestMergeEvents_UnchangedSnapshotNotFlagged(t *testing.T) {
	prev := []models.Event{userEvent("u1", "mine"), adminEvent("a1", "exam")}
	remote := []models.Event{adminEvent("a1", "exam")}

	merged, changed := MergeEvents(prev, remote)

	assert.False(t, changed)
	assert.Equal(t, prev, merged)
}

func TestEventIDSet(t *testing.T) {
	ids := EventIDSet([]models.Event{userEvent("a", ""), adminEvent("b", "")})
	assert.Contains(t, ids, "a")
	assert.Contains(t, ids, "b")
	assert.Len(t, ids, 2)
}
