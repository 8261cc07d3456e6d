package service

import (
	"strconv"

	"reservasalas/internal/booking"
	"reservasalas/internal/db"
	apperrors "reservasalas/internal/errors"
)

// RoomInventory is the room CRUD surface the admin panel uses.
type RoomInventory interface {
	ListRooms() ([]db.Room, error)
	GetRoom(id int) (*db.Room, error)
	CreateRoom(room *db.Room) error
	UpdateRoom(room *db.Room) error
	DeleteRoom(id int) error
}

// AdminService covers the room-inventory side of the admin panel.
type AdminService struct {
	roomRepo RoomInventory
}

func NewAdminService(roomRepo RoomInventory) *AdminService {
	return &AdminService{roomRepo: roomRepo}
}

func (s *AdminService) ListRooms() ([]booking.Room, error) {
	rooms, err := s.roomRepo.ListRooms()
	if err != nil {
		return nil, err
	}
	out := make([]booking.Room, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, roomToWire(r))
	}
	return out, nil
}

func (s *AdminService) CreateRoom(name string, capacity, floor int, equipment []string) (booking.Room, error) {
	if name == "" {
		return booking.Room{}, apperrors.ErrBadRequest("el nombre de la sala es obligatorio")
	}
	if capacity <= 0 {
		return booking.Room{}, apperrors.ErrBadRequest("la capacidad debe ser positiva")
	}
	room := &db.Room{Name: name, Capacity: capacity, Floor: floor, Equipment: equipment}
	if err := s.roomRepo.CreateRoom(room); err != nil {
		return booking.Room{}, err
	}
	return roomToWire(*room), nil
}

// RoomUpdate carries a partial room update. A nil field means "leave it as
// is", so zero values like floor 0 stay settable.
type RoomUpdate struct {
	Name      *string
	Capacity  *int
	Floor     *int
	Equipment []string
}

func (s *AdminService) UpdateRoom(id int, upd RoomUpdate) (booking.Room, error) {
	existing, err := s.roomRepo.GetRoom(id)
	if err != nil {
		return booking.Room{}, apperrors.ErrNotFound("la sala no existe")
	}
	if upd.Name != nil {
		if *upd.Name == "" {
			return booking.Room{}, apperrors.ErrBadRequest("el nombre de la sala es obligatorio")
		}
		existing.Name = *upd.Name
	}
	if upd.Capacity != nil {
		if *upd.Capacity <= 0 {
			return booking.Room{}, apperrors.ErrBadRequest("la capacidad debe ser positiva")
		}
		existing.Capacity = *upd.Capacity
	}
	if upd.Floor != nil {
		existing.Floor = *upd.Floor
	}
	if upd.Equipment != nil {
		existing.Equipment = upd.Equipment
	}
	if err := s.roomRepo.UpdateRoom(existing); err != nil {
		return booking.Room{}, err
	}
	return roomToWire(*existing), nil
}

func (s *AdminService) DeleteRoom(id int) error {
	return s.roomRepo.DeleteRoom(id)
}

func roomToWire(r db.Room) booking.Room {
	return booking.Room{
		ID:        strconv.Itoa(r.ID),
		Name:      r.Name,
		Capacity:  r.Capacity,
		Floor:     r.Floor,
		Equipment: r.Equipment,
	}
}
