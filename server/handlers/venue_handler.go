package handlers

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"congestion-server/config"
	"congestion-server/models"
)

const (
	LAT_QUERY_ARG    = "lat"
	LON_QUERY_ARG    = "lon"
	RADIUS_QUERY_ARG = "radius"
)

// NearbyVenuesFinder reads venues indexed by earlier station searches.
type NearbyVenuesFinder interface {
	GetVenuesNearby(ctx context.Context, lat, lon, radius float64) ([]models.Venue, error)
}

type VenueHandler struct {
	venues NearbyVenuesFinder
}

func NewVenueHandler(venues NearbyVenuesFinder) *VenueHandler {
	return &VenueHandler{venues: venues}
}

// GetVenuesNearby handles GET /v1/venues/nearby
func (h *VenueHandler) GetVenuesNearby(w http.ResponseWriter, r *http.Request) {
	// 1) Parse query args
	lat, lon, radius, ok := h.parseArgs(r.URL.Query(), w)
	if !ok {
		return // error already written
	}

	// 2) Load geo-indexed venues
	venues, err := h.venues.GetVenuesNearby(r.Context(), lat, lon, radius)
	if err != nil {
		log.Println("Error loading nearby venues:", err)
		writeError(w, err)
		return
	}

	// 3) Write JSON
	writeJSON(w, http.StatusOK, venues)
}

func (h *VenueHandler) parseArgs(vals url.Values, w http.ResponseWriter) (lat, lon, radius float64, ok bool) {
	var err error

	lat, err = parseArgFloat64(vals, LAT_QUERY_ARG)
	if err != nil || lat < -90 || lat > 90 {
		writeBadRequest(w, "Invalid argument "+LAT_QUERY_ARG)
		return
	}
	lon, err = parseArgFloat64(vals, LON_QUERY_ARG)
	if err != nil || lon < -180 || lon > 180 {
		writeBadRequest(w, "Invalid argument "+LON_QUERY_ARG)
		return
	}
	radius = float64(config.DEFAULT_SEARCH_RADIUS_METERS)
	if vals.Get(RADIUS_QUERY_ARG) != "" {
		radius, err = parseArgFloat64(vals, RADIUS_QUERY_ARG)
		if err != nil || radius <= 0 {
			writeBadRequest(w, "Invalid argument "+RADIUS_QUERY_ARG)
			return
		}
	}
	ok = true
	return
}

func parseArgFloat64(vals url.Values, name string) (float64, error) {
	s := vals.Get(name)
	return strconv.ParseFloat(s, 64)
}

// Ping handles GET /ping
func (h *VenueHandler) Ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "pong"})
}
