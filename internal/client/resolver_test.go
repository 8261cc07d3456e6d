package client

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reservasalas/internal/booking"
)

func snapshotFor(date string) *booking.Snapshot {
	return &booking.Snapshot{
		Date:  date,
		Rooms: []booking.Room{{ID: "1", Name: "Sala A"}},
		Slots: []booking.TimeSlot{{ID: "10:00-11:00", Start: "10:00", End: "11:00"}},
		Availability: []booking.Entry{
			{RoomID: "1", SlotID: "10:00-11:00", Available: true},
		},
	}
}

func TestLoadLatestDateWins(t *testing.T) {
	firstStarted := make(chan struct{})
	release := make(chan struct{})

	fetch := func(ctx context.Context, date string) (*booking.Snapshot, error) {
		if date == "2025-12-01" {
			close(firstStarted)
			<-release
		}
		return snapshotFor(date), nil
	}
	r := NewResolver(fetch)

	var wg sync.WaitGroup
	wg.Add(1)
	var staleSnap *booking.Snapshot
	var staleErr error
	go func() {
		defer wg.Done()
		staleSnap, staleErr = r.Load(context.Background(), "2025-12-01")
	}()

	<-firstStarted
	snap, err := r.Load(context.Background(), "2025-12-02")
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, "2025-12-02", snap.Date)

	close(release)
	wg.Wait()

	// The superseded fetch is discarded, not surfaced as data or error.
	assert.Nil(t, staleSnap)
	assert.NoError(t, staleErr)

	assert.True(t, r.IsAvailable("2025-12-02", "1", "10:00-11:00"))
	assert.False(t, r.IsAvailable("2025-12-01", "1", "10:00-11:00"))
}

func TestLoadCancellationIsNotAnError(t *testing.T) {
	started := make(chan struct{})
	fetch := func(ctx context.Context, date string) (*booking.Snapshot, error) {
		if date == "2025-12-01" {
			close(started)
			<-ctx.Done()
			return nil, ctx.Err()
		}
		return snapshotFor(date), nil
	}
	r := NewResolver(fetch)

	var wg sync.WaitGroup
	wg.Add(1)
	var gotSnap *booking.Snapshot
	var gotErr error
	go func() {
		defer wg.Done()
		gotSnap, gotErr = r.Load(context.Background(), "2025-12-01")
	}()

	<-started
	_, err := r.Load(context.Background(), "2025-12-02")
	require.NoError(t, err)
	wg.Wait()

	assert.Nil(t, gotSnap)
	assert.NoError(t, gotErr)
	assert.Equal(t, "2025-12-02", r.Snapshot().Date)
}

func TestCloseCancelsInFlightFetch(t *testing.T) {
	started := make(chan struct{})
	fetch := func(ctx context.Context, date string) (*booking.Snapshot, error) {
		close(started)
		<-ctx.Done()
		return nil, ctx.Err()
	}
	r := NewResolver(fetch)

	var wg sync.WaitGroup
	wg.Add(1)
	var gotSnap *booking.Snapshot
	var gotErr error
	go func() {
		defer wg.Done()
		gotSnap, gotErr = r.Load(context.Background(), "2025-12-01")
	}()

	<-started
	r.Close()
	wg.Wait()

	assert.Nil(t, gotSnap)
	assert.NoError(t, gotErr)
	assert.Nil(t, r.Snapshot())
	assert.False(t, r.IsAvailable("2025-12-01", "1", "10:00-11:00"))
}

func TestIsAvailableFailsClosedBeforeAnyLoad(t *testing.T) {
	r := NewResolver(func(ctx context.Context, date string) (*booking.Snapshot, error) {
		return snapshotFor(date), nil
	})
	assert.False(t, r.IsAvailable("2025-12-01", "1", "10:00-11:00"))
	assert.Nil(t, r.Snapshot())
}
