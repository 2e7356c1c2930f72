package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"congestion-server/api/places"
	"congestion-server/congestion"
	"congestion-server/models"
	services "congestion-server/service"
)

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Println("Error encoding response:", err)
	}
}

func writeBadRequest(w http.ResponseWriter, detail string) {
	writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Detail: detail})
}

// writeError maps service errors onto status codes. Unreadable event payloads carry the raw
// upstream text in the error field.
func writeError(w http.ResponseWriter, err error) {
	var malformed *congestion.MalformedPayloadError
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Detail: err.Error()})
	case errors.Is(err, places.ErrNotFound):
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Detail: "station location not found", Error: err.Error()})
	case errors.As(err, &malformed):
		log.Printf("Unreadable event facts payload: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Detail: "could not read event information", Error: malformed.Raw})
	default:
		log.Println("Internal error:", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Detail: "internal server error", Error: err.Error()})
	}
}
