package client

import (
	"context"
	"errors"
	"sync"

	"reservasalas/internal/booking"
)

// FetchFunc loads the availability snapshot for one date.
type FetchFunc func(ctx context.Context, date string) (*booking.Snapshot, error)

// Resolver serializes availability lookups for a UI that switches dates
// faster than the network answers. Only the most recent date wins: a fetch
// that returns after a newer date was requested is discarded silently.
type Resolver struct {
	fetch FetchFunc

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
	date   string
	snap   *booking.Snapshot
	err    error
}

func NewResolver(fetch FetchFunc) *Resolver {
	return &Resolver{fetch: fetch}
}

// Load fetches the snapshot for date and makes it the current one. If a
// newer Load starts before this one finishes, the result is dropped and
// Load returns (nil, nil). Cancellation of a superseded fetch is not an
// error either.
func (r *Resolver) Load(ctx context.Context, date string) (*booking.Snapshot, error) {
	r.mu.Lock()
	r.seq++
	seq := r.seq
	if r.cancel != nil {
		r.cancel()
	}
	fetchCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.mu.Unlock()

	snap, err := r.fetch(fetchCtx, date)

	r.mu.Lock()
	defer r.mu.Unlock()
	if seq != r.seq {
		// A newer date was requested while we were in flight.
		return nil, nil
	}
	if err != nil && errors.Is(err, context.Canceled) {
		return nil, nil
	}
	r.date = date
	r.snap = snap
	r.err = err
	return snap, err
}

// Close cancels any in-flight fetch and discards its result. The resolver
// stays usable; a later Load starts fresh.
func (r *Resolver) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
}

// Snapshot returns the snapshot of the most recently completed Load, or
// nil when none has finished yet.
func (r *Resolver) Snapshot() *booking.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snap
}

// IsAvailable answers against the current snapshot only. A different date,
// a pending fetch, or a failed fetch all read as unavailable.
func (r *Resolver) IsAvailable(date, roomID, slotID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.snap == nil || r.err != nil || r.date != date {
		return false
	}
	return r.snap.IsAvailable(roomID, slotID)
}
