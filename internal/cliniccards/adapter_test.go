package cliniccards

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smilecare/booking-api/internal/schedule"
)

func TestScheduleEntries(t *testing.T) {
	spaces := []ScheduleSpace{
		{
			Type:               "Anonymous shift",
			SpaceStart:         "2025-10-17 09:00:00",
			SpaceEnd:           "2025-10-17 12:00:00",
			ScheduleCabinetsID: "cab1",
		},
		{
			Type:       "Clean-up",
			SpaceStart: "2025-10-17 10:00:00",
			SpaceEnd:   "2025-10-17 10:30:00",
			CabinetID:  "cab1",
		},
	}
	entries := ScheduleEntries(spaces, "2025-10-17")
	require.Len(t, entries, 2)
	assert.Equal(t, schedule.ScheduleEntry{RoomID: "cab1", Label: "Anonymous shift", Start: 540, End: 720}, entries[0])
	assert.Equal(t, schedule.ScheduleEntry{RoomID: "cab1", Label: "Clean-up", Start: 600, End: 630}, entries[1])
}

func TestScheduleEntries_NeighboringDays(t *testing.T) {
	spaces := []ScheduleSpace{
		// Overnight shift started the previous evening.
		{Type: "Anonymous shift", SpaceStart: "2025-10-16 22:00:00", SpaceEnd: "2025-10-17 08:00:00", CabinetID: "cab1"},
	}
	entries := ScheduleEntries(spaces, "2025-10-17")
	require.Len(t, entries, 1)
	assert.Equal(t, -120, entries[0].Start)
	assert.Equal(t, 480, entries[0].End)
}

func TestScheduleEntries_DropsUnparseable(t *testing.T) {
	spaces := []ScheduleSpace{
		{Type: "Anonymous shift", SpaceStart: "garbage", SpaceEnd: "2025-10-17 12:00:00", CabinetID: "cab1"},
	}
	assert.Empty(t, ScheduleEntries(spaces, "2025-10-17"))
	assert.Nil(t, ScheduleEntries(spaces, "not-a-date"))
}

func TestVisitEntries_CombinedTimestamps(t *testing.T) {
	visits := []Visit{
		{CabinetID: "cab1", DoctorID: "doc1", VisitStart: "2025-10-17 09:15:00", VisitEnd: "2025-10-17 10:00:00"},
	}
	entries := VisitEntries(visits)
	require.Len(t, entries, 1)
	assert.Equal(t, schedule.VisitEntry{RoomID: "cab1", ProviderID: "doc1", Start: 555, End: 600}, entries[0])
}

func TestVisitEntries_SplitFields(t *testing.T) {
	visits := []Visit{
		{CabinetID: "cab2", DoctorID: "doc2", TimeStart: "14:00", TimeEnd: "14:45"},
	}
	entries := VisitEntries(visits)
	require.Len(t, entries, 1)
	assert.Equal(t, schedule.VisitEntry{RoomID: "cab2", ProviderID: "doc2", Start: 840, End: 885}, entries[0])
}

func TestVisitEntries_MissingEndStaysZero(t *testing.T) {
	visits := []Visit{
		{CabinetID: "cab1", DoctorID: "doc1", TimeStart: "09:00"},
	}
	entries := VisitEntries(visits)
	require.Len(t, entries, 1)
	assert.Equal(t, 540, entries[0].Start)
	assert.Zero(t, entries[0].End)
}

func TestVisitEntries_CombinedPreferredOverSplit(t *testing.T) {
	visits := []Visit{
		{CabinetID: "cab1", DoctorID: "doc1", VisitStart: "2025-10-17 11:00:00", TimeStart: "09:00"},
	}
	entries := VisitEntries(visits)
	require.Len(t, entries, 1)
	assert.Equal(t, 660, entries[0].Start)
}

func TestVisitEntries_DropsVisitsWithoutStart(t *testing.T) {
	visits := []Visit{
		{CabinetID: "cab1", DoctorID: "doc1"},
		{CabinetID: "cab1", DoctorID: "doc1", TimeStart: "bogus"},
	}
	assert.Empty(t, VisitEntries(visits))
}
