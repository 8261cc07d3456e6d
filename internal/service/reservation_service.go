package service

import (
	"context"
	"log"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"reservasalas/internal/booking"
	"reservasalas/internal/cache"
	"reservasalas/internal/db"
	"reservasalas/internal/entities"
	apperrors "reservasalas/internal/errors"
	"reservasalas/internal/repository"
)

const (
	statusActive    = "active"
	statusCancelled = "cancelled"
	statusFinished  = "finished"
)

// ReservationStore is the reservation persistence surface the service uses.
type ReservationStore interface {
	CreateReservation(res *db.Reservation) error
	GetReservationByID(id string) (*db.Reservation, error)
	CancelReservation(id string) error
	UpdateReservation(res *db.Reservation) error
	HasConflict(roomID int, start, end time.Time, excludeID string) (bool, error)
	ListByHolder(email string) ([]repository.ReservationRow, error)
	ListByRoom(roomID int) ([]repository.ReservationRow, error)
	GetRowByID(id string) (*repository.ReservationRow, error)
}

// RoomStore is the slice of the room repository the reservation flow needs.
type RoomStore interface {
	GetRoom(id int) (*db.Room, error)
	ListTimeSlots() ([]db.TimeSlot, error)
}

type ReservationService struct {
	Repo     ReservationStore
	roomRepo RoomStore
	userRepo repository.UserRepository
	notifier *NotifyService
	cache    *cache.AvailabilityCache
	loc      *time.Location
}

func NewReservationService(repo ReservationStore, roomRepo RoomStore,
	userRepo repository.UserRepository, notifier *NotifyService, c *cache.AvailabilityCache, loc *time.Location) *ReservationService {
	return &ReservationService{
		Repo:     repo,
		roomRepo: roomRepo,
		userRepo: userRepo,
		notifier: notifier,
		cache:    c,
		loc:      loc,
	}
}

// CreateReservation books a room for the acting user and returns the new
// reservation id.
func (s *ReservationService) CreateReservation(ctx context.Context, user *db.User, req booking.Request) (string, error) {
	roomID, start, end, err := s.validateRequest(req)
	if err != nil {
		return "", err
	}
	if err := s.checkConflict(roomID, start, end, ""); err != nil {
		return "", err
	}

	uid := user.ID
	res := &db.Reservation{
		ID:                  uuid.NewString(),
		RoomID:              roomID,
		UserID:              &uid,
		HolderEmail:         user.Email,
		StartTime:           start,
		EndTime:             end,
		Status:              statusActive,
		AddToGoogleCalendar: req.AddToGoogleCalendar,
	}
	if err := s.Repo.CreateReservation(res); err != nil {
		log.Printf("Error creating reservation in repository: %v", err)
		return "", err
	}

	s.cache.Invalidate(ctx, booking.FormatDate(start.In(s.loc)))
	s.notifyFor(res, user.Nombre, "confirmada")
	return res.ID, nil
}

// CreateOnBehalf books a room for someone else. Only administrators may call
// it; the acting user's role is checked here, not read from ambient state.
// The calendar flag does not exist on this path.
func (s *ReservationService) CreateOnBehalf(ctx context.Context, actor *db.User, req booking.OnBehalfRequest) error {
	if actor.Rol != booking.RoleAdmin {
		return apperrors.ErrForbidden("solo un administrador puede reservar a nombre de otra persona")
	}
	if req.OthersEmail == "" {
		return apperrors.ErrBadRequest("othersEmail es obligatorio")
	}
	roomID, start, end, err := s.validateRequest(booking.Request{RoomID: req.RoomID, StartAt: req.StartAt, EndAt: req.EndAt})
	if err != nil {
		return err
	}
	if err := s.checkConflict(roomID, start, end, ""); err != nil {
		return err
	}

	res := &db.Reservation{
		ID:          uuid.NewString(),
		RoomID:      roomID,
		HolderEmail: req.OthersEmail,
		StartTime:   start,
		EndTime:     end,
		Status:      statusActive,
	}
	// Attribute the reservation to an existing account when there is one.
	holderName := req.OthersEmail
	if holder, err := s.userRepo.GetByEmail(req.OthersEmail); err == nil && holder != nil {
		id := holder.ID
		res.UserID = &id
		holderName = holder.Nombre
	}
	if err := s.Repo.CreateReservation(res); err != nil {
		log.Printf("Error creating on-behalf reservation: %v", err)
		return err
	}

	s.cache.Invalidate(ctx, booking.FormatDate(start.In(s.loc)))
	s.notifyFor(res, holderName, "confirmada")
	return nil
}

// CancelReservation cancels a future reservation owned by the actor, or any
// reservation when the actor is an administrator.
func (s *ReservationService) CancelReservation(ctx context.Context, actor *db.User, id string) error {
	res, err := s.Repo.GetReservationByID(id)
	if err != nil {
		return apperrors.ErrNotFound("reserva no encontrada")
	}
	if err := authorize(actor, res); err != nil {
		return err
	}
	if res.Status != statusActive {
		return apperrors.ErrConflict("la reserva ya no está activa")
	}
	if res.StartTime.Before(time.Now()) {
		return apperrors.ErrBadRequest("solo se pueden cancelar reservas futuras")
	}
	if err := s.Repo.CancelReservation(id); err != nil {
		return err
	}

	s.cache.Invalidate(ctx, booking.FormatDate(res.StartTime.In(s.loc)))
	s.notifyFor(res, res.HolderEmail, "cancelada")
	return nil
}

// UpdateReservation moves an existing reservation to a new room and/or time.
// The conflict check excludes the reservation itself, so keeping the original
// room and date never collides with its own occupancy.
func (s *ReservationService) UpdateReservation(ctx context.Context, actor *db.User, id string, req booking.Request) (entities.ReservationDetail, error) {
	res, err := s.Repo.GetReservationByID(id)
	if err != nil {
		return entities.ReservationDetail{}, apperrors.ErrNotFound("reserva no encontrada")
	}
	if err := authorize(actor, res); err != nil {
		return entities.ReservationDetail{}, err
	}
	if res.Status != statusActive {
		return entities.ReservationDetail{}, apperrors.ErrConflict("la reserva ya no está activa")
	}
	roomID, start, end, err := s.validateRequest(req)
	if err != nil {
		return entities.ReservationDetail{}, err
	}
	if err := s.checkConflict(roomID, start, end, id); err != nil {
		return entities.ReservationDetail{}, err
	}

	oldDate := booking.FormatDate(res.StartTime.In(s.loc))
	res.RoomID = roomID
	res.StartTime = start
	res.EndTime = end
	res.AddToGoogleCalendar = req.AddToGoogleCalendar
	if err := s.Repo.UpdateReservation(res); err != nil {
		return entities.ReservationDetail{}, err
	}

	s.cache.Invalidate(ctx, oldDate, booking.FormatDate(start.In(s.loc)))
	s.notifyFor(res, res.HolderEmail, "modificada")

	row, err := s.Repo.GetRowByID(id)
	if err != nil {
		return entities.ReservationDetail{}, err
	}
	return detailFromRow(*row), nil
}

// MyReservations returns the actor's reservations split around the wall clock.
func (s *ReservationService) MyReservations(ctx context.Context, actor *db.User) (entities.MyReservationsResponse, error) {
	rows, err := s.Repo.ListByHolder(actor.Email)
	if err != nil {
		return entities.MyReservationsResponse{}, err
	}
	return splitReservations(time.Now(), rows), nil
}

// ReservationsByRoom lists who holds a given room, for the admin panel.
func (s *ReservationService) ReservationsByRoom(ctx context.Context, roomID int) ([]entities.ReservationDetail, error) {
	rows, err := s.Repo.ListByRoom(roomID)
	if err != nil {
		return nil, err
	}
	details := make([]entities.ReservationDetail, 0, len(rows))
	for _, row := range rows {
		details = append(details, detailFromRow(row))
	}
	return details, nil
}

func (s *ReservationService) validateRequest(req booking.Request) (int, time.Time, time.Time, error) {
	var zero time.Time
	roomID, err := strconv.Atoi(req.RoomID)
	if err != nil {
		return 0, zero, zero, apperrors.ErrBadRequest("roomId inválido")
	}
	if _, err := s.roomRepo.GetRoom(roomID); err != nil {
		return 0, zero, zero, apperrors.ErrNotFound("la sala no existe")
	}
	start := req.StartAt.In(s.loc)
	end := req.EndAt.In(s.loc)
	if !end.After(start) {
		return 0, zero, zero, apperrors.ErrBadRequest("el término debe ser posterior al inicio")
	}
	slots, err := s.roomRepo.ListTimeSlots()
	if err != nil {
		return 0, zero, zero, err
	}
	if !slotAligned(slots, start, end) {
		return 0, zero, zero, apperrors.ErrBadRequest("el horario no corresponde a un bloque horario válido")
	}
	window := booking.Compute(time.Now().In(s.loc), booking.DefaultBusinessDays)
	if !window.Contains(booking.FormatDate(start)) {
		return 0, zero, zero, apperrors.ErrBadRequest("la fecha está fuera del rango permitido de reserva")
	}
	return roomID, start, end, nil
}

// slotAligned reports whether [start, end) is exactly one block of the slot
// grid, on a single calendar day.
func slotAligned(slots []db.TimeSlot, start, end time.Time) bool {
	if booking.FormatDate(start) != booking.FormatDate(end) {
		return false
	}
	startClock := start.Format("15:04")
	endClock := end.Format("15:04")
	for _, slot := range slots {
		if slot.StartTime == startClock && slot.EndTime == endClock {
			return true
		}
	}
	return false
}

func (s *ReservationService) checkConflict(roomID int, start, end time.Time, excludeID string) error {
	conflict, err := s.Repo.HasConflict(roomID, start, end, excludeID)
	if err != nil {
		return err
	}
	if conflict {
		return apperrors.ErrConflict("la sala ya no está disponible en ese horario")
	}
	return nil
}

func (s *ReservationService) notifyFor(res *db.Reservation, holderName, status string) {
	if s.notifier == nil {
		return
	}
	room, err := s.roomRepo.GetRoom(res.RoomID)
	roomName := ""
	if err == nil {
		roomName = room.Name
	}
	detail := entities.ReservationDetail{
		ID:          res.ID,
		Room:        booking.Room{ID: strconv.Itoa(res.RoomID), Name: roomName},
		StartAt:     res.StartTime,
		EndAt:       res.EndTime,
		Status:      res.Status,
		HolderEmail: res.HolderEmail,
	}
	s.notifier.SendReservationEmail(detail, holderName, status)
}

func authorize(actor *db.User, res *db.Reservation) error {
	if actor.Rol == booking.RoleAdmin || res.HolderEmail == actor.Email {
		return nil
	}
	return apperrors.ErrForbidden("la reserva pertenece a otra persona")
}

// splitReservations partitions rows into the current booking (active and
// covering now), upcoming ones and everything else.
func splitReservations(now time.Time, rows []repository.ReservationRow) entities.MyReservationsResponse {
	resp := entities.MyReservationsResponse{
		Future: []entities.ReservationDetail{},
		Past:   []entities.ReservationDetail{},
	}
	for _, row := range rows {
		detail := detailFromRow(row)
		switch {
		case row.Status == statusActive && !row.StartTime.After(now) && row.EndTime.After(now):
			d := detail
			resp.Current = &d
		case row.Status == statusActive && row.StartTime.After(now):
			resp.Future = append(resp.Future, detail)
		default:
			resp.Past = append(resp.Past, detail)
		}
	}
	sort.Slice(resp.Future, func(i, j int) bool { return resp.Future[i].StartAt.Before(resp.Future[j].StartAt) })
	sort.Slice(resp.Past, func(i, j int) bool { return resp.Past[i].StartAt.After(resp.Past[j].StartAt) })
	return resp
}

func detailFromRow(row repository.ReservationRow) entities.ReservationDetail {
	return entities.ReservationDetail{
		ID: row.ID,
		Room: booking.Room{
			ID:        strconv.Itoa(row.RoomID),
			Name:      row.RoomName,
			Capacity:  row.RoomCapacity,
			Floor:     row.RoomFloor,
			Equipment: row.RoomEquipment,
		},
		StartAt:     row.StartTime,
		EndAt:       row.EndTime,
		Status:      row.Status,
		HolderEmail: row.HolderEmail,
	}
}
