package entities

import (
	"time"

	"reservasalas/internal/booking"
)

type CreateReservationResponse struct {
	ID string `json:"id"`
}

// ReservationDetail is the per-reservation view returned by the listing and
// update endpoints.
type ReservationDetail struct {
	ID          string       `json:"id"`
	Room        booking.Room `json:"room"`
	StartAt     time.Time    `json:"startAt"`
	EndAt       time.Time    `json:"endAt"`
	Status      string       `json:"status"`
	HolderEmail string       `json:"holderEmail,omitempty"`
}

// MyReservationsResponse splits the caller's reservations around the wall
// clock: current is the active reservation covering now, or null.
type MyReservationsResponse struct {
	Current *ReservationDetail  `json:"current"`
	Future  []ReservationDetail `json:"future"`
	Past    []ReservationDetail `json:"past"`
}
