package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	apperrors "reservasalas/internal/errors"
)

func respondJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			log.Printf("error encoding response: %v", err)
		}
	}
}

func respondError(w http.ResponseWriter, code int, msg string) {
	respondJSON(w, code, map[string]string{"error": msg})
}

// respondServiceError maps service errors onto the wire: typed HTTP errors
// keep their status, anything else becomes an opaque 500.
func respondServiceError(w http.ResponseWriter, err error) {
	var httpErr *apperrors.HTTPError
	if errors.As(err, &httpErr) {
		respondError(w, httpErr.Code, httpErr.Message)
		return
	}
	log.Printf("internal error: %v", err)
	respondError(w, http.StatusInternalServerError, "error interno del servidor")
}
