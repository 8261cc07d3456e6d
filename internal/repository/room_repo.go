package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"reservasalas/internal/db"
)

type RoomRepository struct {
	DB *sql.DB
}

func NewRoomRepository(database *sql.DB) *RoomRepository {
	return &RoomRepository{DB: database}
}

func (r *RoomRepository) ListRooms() ([]db.Room, error) {
	rows, err := r.DB.Query(`SELECT id, name, capacity, floor, equipment, created_at FROM rooms ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []db.Room
	for rows.Next() {
		var room db.Room
		if err := rows.Scan(&room.ID, &room.Name, &room.Capacity, &room.Floor, pq.Array(&room.Equipment), &room.CreatedAt); err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}

func (r *RoomRepository) GetRoom(id int) (*db.Room, error) {
	var room db.Room
	err := r.DB.QueryRow(`SELECT id, name, capacity, floor, equipment, created_at FROM rooms WHERE id = $1`, id).
		Scan(&room.ID, &room.Name, &room.Capacity, &room.Floor, pq.Array(&room.Equipment), &room.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("room %d not found: %w", id, err)
		}
		return nil, fmt.Errorf("error querying room: %w", err)
	}
	return &room, nil
}

func (r *RoomRepository) CreateRoom(room *db.Room) error {
	query := `
		INSERT INTO rooms (name, capacity, floor, equipment)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`
	return r.DB.QueryRow(query, room.Name, room.Capacity, room.Floor, pq.Array(room.Equipment)).
		Scan(&room.ID, &room.CreatedAt)
}

func (r *RoomRepository) UpdateRoom(room *db.Room) error {
	res, err := r.DB.Exec(`
		UPDATE rooms SET name = $1, capacity = $2, floor = $3, equipment = $4
		WHERE id = $5`,
		room.Name, room.Capacity, room.Floor, pq.Array(room.Equipment), room.ID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("room %d not found", room.ID)
	}
	return err
}

func (r *RoomRepository) DeleteRoom(id int) error {
	_, err := r.DB.Exec(`DELETE FROM rooms WHERE id = $1`, id)
	return err
}

func (r *RoomRepository) ListTimeSlots() ([]db.TimeSlot, error) {
	rows, err := r.DB.Query(`SELECT id, label, start_time, end_time FROM time_slots ORDER BY start_time`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slots []db.TimeSlot
	for rows.Next() {
		var s db.TimeSlot
		if err := rows.Scan(&s.ID, &s.Label, &s.StartTime, &s.EndTime); err != nil {
			return nil, err
		}
		slots = append(slots, s)
	}
	return slots, rows.Err()
}
