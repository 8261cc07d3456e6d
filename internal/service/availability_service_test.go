package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reservasalas/internal/booking"
	"reservasalas/internal/db"
)

var scl = time.FixedZone("CLST", -3*3600)

func testInventory() ([]db.Room, []db.TimeSlot) {
	rooms := []db.Room{
		{ID: 1, Name: "Sala A", Capacity: 6},
		{ID: 2, Name: "Sala B", Capacity: 10, Floor: 2},
	}
	slots := []db.TimeSlot{
		{ID: "10:00-11:00", Label: "10:00 - 11:00", StartTime: "10:00", EndTime: "11:00"},
		{ID: "11:00-12:00", Label: "11:00 - 12:00", StartTime: "11:00", EndTime: "12:00"},
	}
	return rooms, slots
}

func TestBuildDailyAvailabilityEmitsFullMatrix(t *testing.T) {
	rooms, slots := testInventory()
	resp, err := BuildDailyAvailability("2025-12-01", scl, rooms, slots, nil)
	require.NoError(t, err)

	assert.Len(t, resp.Rooms, 2)
	assert.Len(t, resp.Slots, 2)
	require.Len(t, resp.Availability, len(rooms)*len(slots))
	for _, entry := range resp.Availability {
		assert.True(t, entry.Available, "empty day should be fully free")
	}
}

func TestBuildDailyAvailabilityMarksOccupiedSlot(t *testing.T) {
	rooms, slots := testInventory()
	reserved := []db.Reservation{
		{
			ID:        "r1",
			RoomID:    1,
			StartTime: time.Date(2025, 12, 1, 10, 0, 0, 0, scl),
			EndTime:   time.Date(2025, 12, 1, 11, 0, 0, 0, scl),
			Status:    statusActive,
		},
	}
	resp, err := BuildDailyAvailability("2025-12-01", scl, rooms, slots, reserved)
	require.NoError(t, err)

	snap := booking.Snapshot{
		Date:         "2025-12-01",
		Rooms:        resp.Rooms,
		Slots:        resp.Slots,
		Availability: resp.Availability,
	}
	assert.False(t, snap.IsAvailable("1", "10:00-11:00"))
	assert.True(t, snap.IsAvailable("1", "11:00-12:00"))
	assert.True(t, snap.IsAvailable("2", "10:00-11:00"))
}

func TestBuildDailyAvailabilityBackToBackIsNotOverlap(t *testing.T) {
	rooms, slots := testInventory()
	// Ends exactly when the next slot starts; half-open windows must not collide.
	reserved := []db.Reservation{
		{
			ID:        "r1",
			RoomID:    1,
			StartTime: time.Date(2025, 12, 1, 9, 0, 0, 0, scl),
			EndTime:   time.Date(2025, 12, 1, 10, 0, 0, 0, scl),
			Status:    statusActive,
		},
	}
	resp, err := BuildDailyAvailability("2025-12-01", scl, rooms, slots, reserved)
	require.NoError(t, err)

	snap := booking.Snapshot{Availability: resp.Availability}
	assert.True(t, snap.IsAvailable("1", "10:00-11:00"))
}

func TestBuildDailyAvailabilityRejectsBadSlotClock(t *testing.T) {
	rooms := []db.Room{{ID: 1, Name: "Sala A"}}
	slots := []db.TimeSlot{{ID: "x", StartTime: "25:99", EndTime: "26:00"}}
	_, err := BuildDailyAvailability("2025-12-01", scl, rooms, slots, nil)
	assert.Error(t, err)
}
