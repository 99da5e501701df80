package timegrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiffIdempotent(t *testing.T) {
	original := []ScheduleBlock{
		block("a", 0, "10:00", "11:00"),
		block("b", 2, "14:00", "15:30"),
	}
	diff := Diff(original, original)
	assert.True(t, diff.Empty())
}

func TestDiffCompleteness(t *testing.T) {
	a := block("a", 0, "10:00", "11:00")
	b := block("b", 1, "12:00", "13:00")
	c := block("c", 2, "14:00", "15:00")

	aMoved := a
	aMoved.DayOfWeek = 3
	aMoved.StartTime = "16:00"
	aMoved.EndTime = "17:00"

	d := block(NewDraftID(), 4, "18:00", "19:00")
	d.Draft = true

	diff := Diff([]ScheduleBlock{a, b, c}, []ScheduleBlock{aMoved, c, d})

	require.Len(t, diff.Added, 1)
	assert.Equal(t, d.ID, diff.Added[0].ID)
	require.Len(t, diff.Deleted, 1)
	assert.Equal(t, "b", diff.Deleted[0].ID)
	require.Len(t, diff.Updated, 1)
	assert.Equal(t, "a", diff.Updated[0].ID)
	assert.Equal(t, 3, diff.Updated[0].DayOfWeek)
}

func TestDiffDetectsDescriptiveFieldChange(t *testing.T) {
	before := block("a", 0, "10:00", "11:00")
	after := before
	after.Room = "302"

	diff := Diff([]ScheduleBlock{before}, []ScheduleBlock{after})
	require.Len(t, diff.Updated, 1)
	assert.Empty(t, diff.Added)
	assert.Empty(t, diff.Deleted)
}

func TestDiffDraftNeverMatchesOriginal(t *testing.T) {
	// Even a pathological original row sharing a draft-shaped id must
	// not swallow the new block.
	id := NewDraftID()
	original := []ScheduleBlock{{ID: id, DayOfWeek: 0, StartTime: "10:00", EndTime: "11:00"}}
	edited := []ScheduleBlock{{ID: id, DayOfWeek: 0, StartTime: "10:00", EndTime: "11:00"}}

	diff := Diff(original, edited)
	require.Len(t, diff.Added, 1)
	require.Len(t, diff.Deleted, 1)
}

func TestDiffEditedOnlyPersistedIDIsAdded(t *testing.T) {
	// A persisted-looking id unknown to the original still counts as added.
	diff := Diff(nil, []ScheduleBlock{block("brand-new", 0, "10:00", "11:00")})
	require.Len(t, diff.Added, 1)
	assert.Empty(t, diff.Updated)
}

func TestNewDraftIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewDraftID()
		assert.True(t, IsDraftID(id))
		assert.False(t, seen[id])
		seen[id] = true
	}
	assert.False(t, IsDraftID("a7f3c2"))
}
