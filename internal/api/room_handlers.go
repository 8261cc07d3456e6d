package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"reservasalas/internal/service"
)

type RoomHandler struct {
	Service *service.AdminService
}

func NewRoomHandler(svc *service.AdminService) *RoomHandler {
	return &RoomHandler{Service: svc}
}

type roomPayload struct {
	Name      string   `json:"name"`
	Capacity  int      `json:"capacity"`
	Floor     int      `json:"floor"`
	Equipment []string `json:"equipment"`
}

// roomUpdatePayload uses pointers so an absent field and an explicit zero
// (e.g. floor 0, the ground floor) are distinguishable.
type roomUpdatePayload struct {
	Name      *string  `json:"name"`
	Capacity  *int     `json:"capacity"`
	Floor     *int     `json:"floor"`
	Equipment []string `json:"equipment"`
}

func (h *RoomHandler) ListRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.Service.ListRooms()
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rooms)
}

func (h *RoomHandler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req roomPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "cuerpo de la solicitud inválido")
		return
	}
	room, err := h.Service.CreateRoom(req.Name, req.Capacity, req.Floor, req.Equipment)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, room)
}

func (h *RoomHandler) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "id inválido")
		return
	}
	var req roomUpdatePayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "cuerpo de la solicitud inválido")
		return
	}
	room, err := h.Service.UpdateRoom(id, service.RoomUpdate{
		Name:      req.Name,
		Capacity:  req.Capacity,
		Floor:     req.Floor,
		Equipment: req.Equipment,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, room)
}

func (h *RoomHandler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "id inválido")
		return
	}
	if err := h.Service.DeleteRoom(id); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
