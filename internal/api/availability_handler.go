package api

import (
	"context"
	"net/http"
	"regexp"

	"reservasalas/internal/entities"
)

// AvailabilityProvider is what the handler needs from the availability
// service.
type AvailabilityProvider interface {
	DailyAvailability(ctx context.Context, date string) (entities.DailyAvailabilityResponse, error)
}

type AvailabilityHandler struct {
	Service AvailabilityProvider
}

func NewAvailabilityHandler(svc AvailabilityProvider) *AvailabilityHandler {
	return &AvailabilityHandler{Service: svc}
}

var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

func (h *AvailabilityHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if !dateRe.MatchString(date) {
		respondError(w, http.StatusBadRequest, "el parámetro date debe tener formato YYYY-MM-DD")
		return
	}
	resp, err := h.Service.DailyAvailability(r.Context(), date)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}
