package service

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"reservasalas/internal/booking"
	"reservasalas/internal/cache"
	"reservasalas/internal/db"
	"reservasalas/internal/entities"
	"reservasalas/internal/repository"
)

type AvailabilityService struct {
	roomRepo *repository.RoomRepository
	resRepo  *repository.ReservationRepository
	cache    *cache.AvailabilityCache
	loc      *time.Location
}

func NewAvailabilityService(roomRepo *repository.RoomRepository, resRepo *repository.ReservationRepository, c *cache.AvailabilityCache, loc *time.Location) *AvailabilityService {
	return &AvailabilityService{roomRepo: roomRepo, resRepo: resRepo, cache: c, loc: loc}
}

// DailyAvailability returns the full snapshot for one calendar date. An empty
// inventory is a legitimate empty day, not an error.
func (s *AvailabilityService) DailyAvailability(ctx context.Context, date string) (entities.DailyAvailabilityResponse, error) {
	dayStart, err := time.ParseInLocation("2006-01-02", date, s.loc)
	if err != nil {
		return entities.DailyAvailabilityResponse{}, fmt.Errorf("invalid date %q: %w", date, err)
	}

	if cached, ok := s.cache.Get(ctx, date); ok {
		return cached, nil
	}

	rooms, err := s.roomRepo.ListRooms()
	if err != nil {
		return entities.DailyAvailabilityResponse{}, fmt.Errorf("error listing rooms: %w", err)
	}
	slots, err := s.roomRepo.ListTimeSlots()
	if err != nil {
		return entities.DailyAvailabilityResponse{}, fmt.Errorf("error listing time slots: %w", err)
	}
	dayEnd := dayStart.AddDate(0, 0, 1)
	reserved, err := s.resRepo.ActiveReservationsBetween(dayStart, dayEnd)
	if err != nil {
		return entities.DailyAvailabilityResponse{}, fmt.Errorf("error listing reservations: %w", err)
	}

	resp, err := BuildDailyAvailability(date, s.loc, rooms, slots, reserved)
	if err != nil {
		return entities.DailyAvailabilityResponse{}, err
	}
	s.cache.Set(ctx, date, resp)
	return resp, nil
}

// BuildDailyAvailability assembles the (room, slot) matrix for one date from
// the room inventory, the fixed slot grid and the active reservations of that
// day. Every pair gets an explicit entry; clients read a missing entry as
// unavailable, so the complete matrix keeps both readings in agreement.
func BuildDailyAvailability(date string, loc *time.Location, rooms []db.Room, slots []db.TimeSlot, reserved []db.Reservation) (entities.DailyAvailabilityResponse, error) {
	resp := entities.DailyAvailabilityResponse{
		Rooms:        make([]booking.Room, 0, len(rooms)),
		Slots:        make([]booking.TimeSlot, 0, len(slots)),
		Availability: make([]booking.Entry, 0, len(rooms)*len(slots)),
	}

	for _, room := range rooms {
		resp.Rooms = append(resp.Rooms, booking.Room{
			ID:        strconv.Itoa(room.ID),
			Name:      room.Name,
			Capacity:  room.Capacity,
			Floor:     room.Floor,
			Equipment: room.Equipment,
		})
	}

	type window struct{ start, end time.Time }
	slotWindows := make([]window, 0, len(slots))
	for _, slot := range slots {
		start, err := time.ParseInLocation("2006-01-02 15:04", date+" "+slot.StartTime, loc)
		if err != nil {
			return resp, fmt.Errorf("slot %s has bad start %q: %w", slot.ID, slot.StartTime, err)
		}
		end, err := time.ParseInLocation("2006-01-02 15:04", date+" "+slot.EndTime, loc)
		if err != nil {
			return resp, fmt.Errorf("slot %s has bad end %q: %w", slot.ID, slot.EndTime, err)
		}
		slotWindows = append(slotWindows, window{start: start, end: end})
		resp.Slots = append(resp.Slots, booking.TimeSlot{
			ID:    slot.ID,
			Label: slot.Label,
			Start: slot.StartTime,
			End:   slot.EndTime,
		})
	}

	for _, room := range rooms {
		for i, slot := range slots {
			free := true
			for _, res := range reserved {
				if res.RoomID != room.ID {
					continue
				}
				// Half-open overlap on [start, end).
				if res.StartTime.Before(slotWindows[i].end) && slotWindows[i].start.Before(res.EndTime) {
					free = false
					break
				}
			}
			resp.Availability = append(resp.Availability, booking.Entry{
				RoomID:    strconv.Itoa(room.ID),
				SlotID:    slot.ID,
				Available: free,
			})
		}
	}

	if len(reserved) > 0 {
		log.Printf("availability %s: %d rooms, %d slots, %d reservations considered", date, len(rooms), len(slots), len(reserved))
	}
	return resp, nil
}
