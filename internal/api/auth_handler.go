package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"reservasalas/internal/auth"
	"reservasalas/internal/entities"
	"reservasalas/internal/service"
)

type AuthHandler struct {
	service service.AuthService
}

func NewAuthHandler(svc service.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "cuerpo de la solicitud inválido")
		return
	}

	token, user, err := h.service.Login(req.Email, req.Password)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "credenciales inválidas")
		return
	}

	auth.SetSessionCookie(w, token)
	respondJSON(w, http.StatusOK, entities.UserResponse{
		ID:     strconv.Itoa(user.ID),
		Email:  user.Email,
		Nombre: user.Nombre,
		Rol:    user.Rol,
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// Me is the opaque "am I logged in" signal the frontend polls.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "sesión no válida")
		return
	}
	respondJSON(w, http.StatusOK, entities.UserResponse{
		ID:     strconv.Itoa(user.ID),
		Email:  user.Email,
		Nombre: user.Nombre,
		Rol:    user.Rol,
	})
}
