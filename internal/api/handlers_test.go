package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reservasalas/internal/auth"
	"reservasalas/internal/booking"
	"reservasalas/internal/db"
	"reservasalas/internal/entities"
	apperrors "reservasalas/internal/errors"
	"reservasalas/internal/service"
)

type fakeAvailability struct {
	resp entities.DailyAvailabilityResponse
	err  error
	date string
}

func (f *fakeAvailability) DailyAvailability(ctx context.Context, date string) (entities.DailyAvailabilityResponse, error) {
	f.date = date
	return f.resp, f.err
}

func TestGetAvailability(t *testing.T) {
	fake := &fakeAvailability{
		resp: entities.DailyAvailabilityResponse{
			Rooms: []booking.Room{{ID: "1", Name: "Sala A"}},
			Slots: []booking.TimeSlot{{ID: "10:00-11:00", Start: "10:00", End: "11:00"}},
			Availability: []booking.Entry{
				{RoomID: "1", SlotID: "10:00-11:00", Available: true},
			},
		},
	}
	h := NewAvailabilityHandler(fake)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/availability?date=2025-12-01", nil)
	rec := httptest.NewRecorder()
	h.GetAvailability(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2025-12-01", fake.date)

	var snap booking.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.True(t, snap.IsAvailable("1", "10:00-11:00"))
}

func TestGetAvailabilityRejectsBadDate(t *testing.T) {
	h := NewAvailabilityHandler(&fakeAvailability{})
	for _, raw := range []string{"", "01-12-2025", "2025-12-1", "mañana"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/availability?date="+raw, nil)
		rec := httptest.NewRecorder()
		h.GetAvailability(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "date=%q", raw)
	}
}

func TestGetAvailabilityServiceErrorIsOpaque(t *testing.T) {
	h := NewAvailabilityHandler(&fakeAvailability{err: assert.AnError})
	req := httptest.NewRequest(http.MethodGet, "/api/v1/availability?date=2025-12-01", nil)
	rec := httptest.NewRecorder()
	h.GetAvailability(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "error interno del servidor")
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
}

type fakeReservations struct {
	createID  string
	createErr error
	lastReq   booking.Request
	lastUser  *db.User
	onBehalf  booking.OnBehalfRequest
	cancelled string
	cancelErr error
	updatedID string
	detail    entities.ReservationDetail
	mine      entities.MyReservationsResponse
	byRoom    []entities.ReservationDetail
	roomID    int
}

func (f *fakeReservations) CreateReservation(ctx context.Context, user *db.User, req booking.Request) (string, error) {
	f.lastUser, f.lastReq = user, req
	return f.createID, f.createErr
}

func (f *fakeReservations) CreateOnBehalf(ctx context.Context, actor *db.User, req booking.OnBehalfRequest) error {
	f.lastUser, f.onBehalf = actor, req
	return f.createErr
}

func (f *fakeReservations) CancelReservation(ctx context.Context, actor *db.User, id string) error {
	f.cancelled = id
	return f.cancelErr
}

func (f *fakeReservations) UpdateReservation(ctx context.Context, actor *db.User, id string, req booking.Request) (entities.ReservationDetail, error) {
	f.updatedID = id
	f.lastUser, f.lastReq = actor, req
	return f.detail, f.createErr
}

func (f *fakeReservations) MyReservations(ctx context.Context, actor *db.User) (entities.MyReservationsResponse, error) {
	return f.mine, nil
}

func (f *fakeReservations) ReservationsByRoom(ctx context.Context, roomID int) ([]entities.ReservationDetail, error) {
	f.roomID = roomID
	return f.byRoom, nil
}

func authedRequest(method, target, body string, user *db.User) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	return req.WithContext(auth.ContextWithUser(req.Context(), user))
}

func TestCreateReservationReturnsCreated(t *testing.T) {
	fake := &fakeReservations{createID: "abc-123"}
	h := NewReservationHandler(fake)

	body := `{"roomId":"1","startAt":"2025-12-01T10:00:00-03:00","endAt":"2025-12-01T11:00:00-03:00","addToGoogleCalendar":true}`
	req := authedRequest(http.MethodPost, "/api/v1/reservations", body, &db.User{ID: 7, Email: "ana@uni.cl", Rol: booking.RoleUser})
	rec := httptest.NewRecorder()
	h.CreateReservation(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":"abc-123"`)
	assert.True(t, fake.lastReq.AddToGoogleCalendar)
	assert.Equal(t, 7, fake.lastUser.ID)
}

func TestCreateReservationConflict(t *testing.T) {
	fake := &fakeReservations{createErr: apperrors.ErrConflict("la sala ya no está disponible en ese horario")}
	h := NewReservationHandler(fake)

	body := `{"roomId":"1","startAt":"2025-12-01T10:00:00-03:00","endAt":"2025-12-01T11:00:00-03:00"}`
	req := authedRequest(http.MethodPost, "/api/v1/reservations", body, &db.User{ID: 7, Rol: booking.RoleUser})
	rec := httptest.NewRecorder()
	h.CreateReservation(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "la sala ya no está disponible")
}

func TestCreateOnBehalfNoContent(t *testing.T) {
	fake := &fakeReservations{}
	h := NewReservationHandler(fake)

	body := `{"roomId":"1","startAt":"2025-12-01T10:00:00-03:00","endAt":"2025-12-01T11:00:00-03:00","othersEmail":"invitado@uni.cl"}`
	req := authedRequest(http.MethodPost, "/api/v1/reservations/on-behalf", body, &db.User{ID: 1, Rol: booking.RoleAdmin})
	rec := httptest.NewRecorder()
	h.CreateOnBehalf(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "invitado@uni.cl", fake.onBehalf.OthersEmail)
}

func TestUpdateReservationHandler(t *testing.T) {
	fake := &fakeReservations{detail: entities.ReservationDetail{
		ID:      "abc-123",
		Room:    booking.Room{ID: "2", Name: "Sala B"},
		StartAt: time.Date(2025, 12, 2, 11, 0, 0, 0, time.UTC),
		EndAt:   time.Date(2025, 12, 2, 12, 0, 0, 0, time.UTC),
		Status:  "active",
	}}
	h := NewReservationHandler(fake)

	body := `{"roomId":"2","startAt":"2025-12-02T11:00:00-03:00","endAt":"2025-12-02T12:00:00-03:00","addToGoogleCalendar":false}`
	req := authedRequest(http.MethodPut, "/api/v1/reservations/abc-123", body, &db.User{ID: 7, Email: "ana@uni.cl", Rol: booking.RoleUser})
	req = mux.SetURLVars(req, map[string]string{"id": "abc-123"})
	rec := httptest.NewRecorder()
	h.UpdateReservation(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "abc-123", fake.updatedID)
	assert.Equal(t, "2", fake.lastReq.RoomID)
	assert.Contains(t, rec.Body.String(), "Sala B")
}

func TestUpdateReservationHandlerConflict(t *testing.T) {
	fake := &fakeReservations{createErr: apperrors.ErrConflict("la sala ya no está disponible en ese horario")}
	h := NewReservationHandler(fake)

	body := `{"roomId":"2","startAt":"2025-12-02T11:00:00-03:00","endAt":"2025-12-02T12:00:00-03:00"}`
	req := authedRequest(http.MethodPut, "/api/v1/reservations/abc-123", body, &db.User{ID: 7, Rol: booking.RoleUser})
	req = mux.SetURLVars(req, map[string]string{"id": "abc-123"})
	rec := httptest.NewRecorder()
	h.UpdateReservation(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCancelReservationPassesID(t *testing.T) {
	fake := &fakeReservations{}
	h := NewReservationHandler(fake)

	req := authedRequest(http.MethodDelete, "/api/v1/reservations/abc-123", "", &db.User{ID: 7, Rol: booking.RoleUser})
	req = mux.SetURLVars(req, map[string]string{"id": "abc-123"})
	rec := httptest.NewRecorder()
	h.CancelReservation(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "abc-123", fake.cancelled)
}

func TestListByRoom(t *testing.T) {
	fake := &fakeReservations{byRoom: []entities.ReservationDetail{{
		ID:      "abc-123",
		Room:    booking.Room{ID: "3", Name: "Sala C"},
		StartAt: time.Date(2025, 12, 1, 10, 0, 0, 0, time.UTC),
		EndAt:   time.Date(2025, 12, 1, 11, 0, 0, 0, time.UTC),
		Status:  "active",
	}}}
	h := NewReservationHandler(fake)

	req := authedRequest(http.MethodGet, "/api/v1/room/3", "", &db.User{ID: 1, Rol: booking.RoleAdmin})
	req = mux.SetURLVars(req, map[string]string{"roomId": "3"})
	rec := httptest.NewRecorder()
	h.ListByRoom(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, fake.roomID)
	assert.Contains(t, rec.Body.String(), "Sala C")

	req = authedRequest(http.MethodGet, "/api/v1/room/x", "", &db.User{ID: 1, Rol: booking.RoleAdmin})
	req = mux.SetURLVars(req, map[string]string{"roomId": "x"})
	rec = httptest.NewRecorder()
	h.ListByRoom(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

var _ service.AuthService = (*stubAuth)(nil)

type stubAuth struct {
	token string
	user  *db.User
	err   error
}

func (s *stubAuth) Login(email, password string) (string, *db.User, error) {
	return s.token, s.user, s.err
}

func (s *stubAuth) CreateUser(email, nombre, password, rol string) error { return nil }

func TestLoginSetsCookie(t *testing.T) {
	h := NewAuthHandler(&stubAuth{
		token: "signed-token",
		user:  &db.User{ID: 7, Email: "ana@uni.cl", Nombre: "Ana", Rol: booking.RoleUser},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"email":"ana@uni.cl","password":"secreto"}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, auth.SessionCookieName, cookies[0].Name)
	assert.Equal(t, "signed-token", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.Contains(t, rec.Body.String(), `"rol":"USER"`)
}

func TestLoginBadCredentials(t *testing.T) {
	h := NewAuthHandler(&stubAuth{err: assert.AnError})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"email":"ana@uni.cl","password":"mala"}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
