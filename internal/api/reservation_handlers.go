package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"reservasalas/internal/auth"
	"reservasalas/internal/booking"
	"reservasalas/internal/db"
	"reservasalas/internal/entities"
)

// ReservationProvider is the reservation service surface the handlers use.
type ReservationProvider interface {
	CreateReservation(ctx context.Context, user *db.User, req booking.Request) (string, error)
	CreateOnBehalf(ctx context.Context, actor *db.User, req booking.OnBehalfRequest) error
	CancelReservation(ctx context.Context, actor *db.User, id string) error
	UpdateReservation(ctx context.Context, actor *db.User, id string, req booking.Request) (entities.ReservationDetail, error)
	MyReservations(ctx context.Context, actor *db.User) (entities.MyReservationsResponse, error)
	ReservationsByRoom(ctx context.Context, roomID int) ([]entities.ReservationDetail, error)
}

type ReservationHandler struct {
	Service ReservationProvider
}

func NewReservationHandler(svc ReservationProvider) *ReservationHandler {
	return &ReservationHandler{Service: svc}
}

func (h *ReservationHandler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "sesión no válida")
		return
	}
	var req booking.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "cuerpo de la solicitud inválido")
		return
	}
	id, err := h.Service.CreateReservation(r.Context(), user, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, entities.CreateReservationResponse{ID: id})
}

func (h *ReservationHandler) CreateOnBehalf(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "sesión no válida")
		return
	}
	var req booking.OnBehalfRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "cuerpo de la solicitud inválido")
		return
	}
	if err := h.Service.CreateOnBehalf(r.Context(), user, req); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ReservationHandler) CancelReservation(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "sesión no válida")
		return
	}
	id := mux.Vars(r)["id"]
	if err := h.Service.CancelReservation(r.Context(), user, id); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ReservationHandler) UpdateReservation(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "sesión no válida")
		return
	}
	id := mux.Vars(r)["id"]
	var req booking.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "cuerpo de la solicitud inválido")
		return
	}
	detail, err := h.Service.UpdateReservation(r.Context(), user, id, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, detail)
}

func (h *ReservationHandler) MyReservations(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "sesión no válida")
		return
	}
	resp, err := h.Service.MyReservations(r.Context(), user)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// ListByRoom answers the admin question "who has this room booked".
func (h *ReservationHandler) ListByRoom(w http.ResponseWriter, r *http.Request) {
	roomID, err := strconv.Atoi(mux.Vars(r)["roomId"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "roomId inválido")
		return
	}
	details, err := h.Service.ReservationsByRoom(r.Context(), roomID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, details)
}
