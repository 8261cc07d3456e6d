package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"reservasalas/internal/db"
)

// ReservationRow is a reservation joined with its room, as needed by the
// detail views.
type ReservationRow struct {
	db.Reservation
	RoomName      string
	RoomCapacity  int
	RoomFloor     int
	RoomEquipment []string
}

type ReservationRepository struct {
	DB *sql.DB
}

func NewReservationRepository(database *sql.DB) *ReservationRepository {
	return &ReservationRepository{DB: database}
}

func (r *ReservationRepository) CreateReservation(res *db.Reservation) error {
	query := `
		INSERT INTO reservations
		(id, room_id, user_id, holder_email, start_time, end_time, status, add_to_google_calendar)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`
	return r.DB.QueryRow(query,
		res.ID,
		res.RoomID,
		res.UserID,
		res.HolderEmail,
		res.StartTime,
		res.EndTime,
		res.Status,
		res.AddToGoogleCalendar,
	).Scan(&res.CreatedAt, &res.UpdatedAt)
}

func (r *ReservationRepository) GetReservationByID(id string) (*db.Reservation, error) {
	var res db.Reservation
	query := `
		SELECT id, room_id, user_id, holder_email, start_time, end_time, status, add_to_google_calendar, created_at, updated_at
		FROM reservations WHERE id = $1`
	err := r.DB.QueryRow(query, id).Scan(
		&res.ID, &res.RoomID, &res.UserID, &res.HolderEmail, &res.StartTime, &res.EndTime,
		&res.Status, &res.AddToGoogleCalendar, &res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("reservation '%s' not found: %w", id, err)
		}
		return nil, fmt.Errorf("error querying reservation: %w", err)
	}
	return &res, nil
}

func (r *ReservationRepository) CancelReservation(id string) error {
	_, err := r.DB.Exec(`UPDATE reservations SET status = 'cancelled', updated_at = now() WHERE id = $1`, id)
	return err
}

func (r *ReservationRepository) UpdateReservation(res *db.Reservation) error {
	query := `
		UPDATE reservations
		SET room_id = $1, start_time = $2, end_time = $3, add_to_google_calendar = $4, updated_at = now()
		WHERE id = $5
		RETURNING updated_at`
	return r.DB.QueryRow(query, res.RoomID, res.StartTime, res.EndTime, res.AddToGoogleCalendar, res.ID).
		Scan(&res.UpdatedAt)
}

// ActiveReservationsBetween returns active reservations overlapping the
// [from, to) range, for availability assembly.
func (r *ReservationRepository) ActiveReservationsBetween(from, to time.Time) ([]db.Reservation, error) {
	query := `
		SELECT id, room_id, user_id, holder_email, start_time, end_time, status, add_to_google_calendar, created_at, updated_at
		FROM reservations
		WHERE status = 'active' AND start_time < $2 AND end_time > $1
		ORDER BY start_time`
	rows, err := r.DB.Query(query, from, to)
	if err != nil {
		return nil, fmt.Errorf("error querying reservations for range: %w", err)
	}
	defer rows.Close()

	var out []db.Reservation
	for rows.Next() {
		var res db.Reservation
		if err := rows.Scan(&res.ID, &res.RoomID, &res.UserID, &res.HolderEmail, &res.StartTime, &res.EndTime,
			&res.Status, &res.AddToGoogleCalendar, &res.CreatedAt, &res.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// HasConflict reports whether an active reservation for the room overlaps
// [start, end). excludeID skips one reservation, used when editing so a
// reservation does not conflict with itself.
func (r *ReservationRepository) HasConflict(roomID int, start, end time.Time, excludeID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM reservations
			WHERE room_id = $1
			  AND status = 'active'
			  AND start_time < $3
			  AND end_time > $2
			  AND ($4 = '' OR id::text <> $4)
		)`
	var exists bool
	if err := r.DB.QueryRow(query, roomID, start, end, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking conflicts: %w", err)
	}
	return exists, nil
}

func (r *ReservationRepository) ListByHolder(email string) ([]ReservationRow, error) {
	query := `
		SELECT r.id, r.room_id, r.user_id, r.holder_email, r.start_time, r.end_time, r.status,
		       r.add_to_google_calendar, r.created_at, r.updated_at,
		       s.name, s.capacity, s.floor, s.equipment
		FROM reservations r
		JOIN rooms s ON s.id = r.room_id
		WHERE r.holder_email = $1
		ORDER BY r.start_time`
	return r.queryRows(query, email)
}

func (r *ReservationRepository) ListByRoom(roomID int) ([]ReservationRow, error) {
	query := `
		SELECT r.id, r.room_id, r.user_id, r.holder_email, r.start_time, r.end_time, r.status,
		       r.add_to_google_calendar, r.created_at, r.updated_at,
		       s.name, s.capacity, s.floor, s.equipment
		FROM reservations r
		JOIN rooms s ON s.id = r.room_id
		WHERE r.room_id = $1
		ORDER BY r.start_time DESC`
	return r.queryRows(query, roomID)
}

func (r *ReservationRepository) GetRowByID(id string) (*ReservationRow, error) {
	query := `
		SELECT r.id, r.room_id, r.user_id, r.holder_email, r.start_time, r.end_time, r.status,
		       r.add_to_google_calendar, r.created_at, r.updated_at,
		       s.name, s.capacity, s.floor, s.equipment
		FROM reservations r
		JOIN rooms s ON s.id = r.room_id
		WHERE r.id = $1`
	rows, err := r.queryRows(query, id)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("reservation '%s' not found", id)
	}
	return &rows[0], nil
}

func (r *ReservationRepository) queryRows(query string, args ...interface{}) ([]ReservationRow, error) {
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying reservations: %w", err)
	}
	defer rows.Close()

	var out []ReservationRow
	for rows.Next() {
		var row ReservationRow
		if err := rows.Scan(&row.ID, &row.RoomID, &row.UserID, &row.HolderEmail, &row.StartTime, &row.EndTime,
			&row.Status, &row.AddToGoogleCalendar, &row.CreatedAt, &row.UpdatedAt,
			&row.RoomName, &row.RoomCapacity, &row.RoomFloor, pq.Array(&row.RoomEquipment)); err != nil {
			return nil, fmt.Errorf("error scanning reservation row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
