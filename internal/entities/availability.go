package entities

import "reservasalas/internal/booking"

// DailyAvailabilityResponse is the full dataset for one calendar date. The
// matrix is emitted complete: every (room, slot) pair gets an explicit entry,
// so clients that treat missing entries as unavailable read the same answer.
type DailyAvailabilityResponse struct {
	Rooms        []booking.Room     `json:"rooms"`
	Slots        []booking.TimeSlot `json:"slots"`
	Availability []booking.Entry    `json:"availability"`
}
