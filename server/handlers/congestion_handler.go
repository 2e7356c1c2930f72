package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"congestion-server/config"
	"congestion-server/models"
	"congestion-server/util"
)

const (
	STATION_ID_QUERY_ARG = "station_id"
	STATION_QUERY_ARG    = "station"
	DATE_QUERY_ARG       = "date"
	MIN_SCALE_QUERY_ARG  = "min_scale"
	VENUES_BODY_ARG      = "venues"
)

// CongestionAnalyzer is the part of the congestion service the handlers need.
type CongestionAnalyzer interface {
	Analyze(ctx context.Context, stationID, stationName, date string, minScale int) (*models.CongestionResponse, error)
	ComputeCongestionTimeline(ctx context.Context, stationID, stationName, date string, venues []models.Venue, minScale int) (*models.CongestionResponse, error)
}

type CongestionHandler struct {
	service CongestionAnalyzer
}

func NewCongestionHandler(service CongestionAnalyzer) *CongestionHandler {
	return &CongestionHandler{service: service}
}

type congestionQuery struct {
	stationID   string
	stationName string
	date        string
	minScale    int
}

// GetCongestion handles GET /v1/congestion
func (h *CongestionHandler) GetCongestion(w http.ResponseWriter, r *http.Request) {
	q, ok := parseCongestionQuery(r.URL.Query(), w)
	if !ok {
		return
	}

	resp, err := h.service.Analyze(r.Context(), q.stationID, q.stationName, q.date, q.minScale)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// PostTimeline handles POST /v1/congestion/timeline for callers that already know the venues.
func (h *CongestionHandler) PostTimeline(w http.ResponseWriter, r *http.Request) {
	var req models.TimelineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if req.Venues == nil {
		writeBadRequest(w, "Missing argument "+VENUES_BODY_ARG)
		return
	}

	minScale := config.DEFAULT_MIN_SCALE
	if req.MinScale != nil {
		if !validScale(*req.MinScale) {
			writeBadRequest(w, scaleRangeDetail())
			return
		}
		minScale = *req.MinScale
	}

	resp, err := h.service.ComputeCongestionTimeline(r.Context(), req.StationID, req.StationName, req.Date, req.Venues, minScale)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetChart handles GET /v1/congestion/chart
func (h *CongestionHandler) GetChart(w http.ResponseWriter, r *http.Request) {
	q, ok := parseCongestionQuery(r.URL.Query(), w)
	if !ok {
		return
	}

	resp, err := h.service.Analyze(r.Context(), q.stationID, q.stationName, q.date, q.minScale)
	if err != nil {
		writeError(w, err)
		return
	}

	var page bytes.Buffer
	if err := util.RenderTimelineChart(&page, resp); err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := page.WriteTo(w); err != nil {
		log.Println("Error writing chart:", err)
	}
}

func parseCongestionQuery(vals url.Values, w http.ResponseWriter) (congestionQuery, bool) {
	q := congestionQuery{
		stationID:   strings.TrimSpace(vals.Get(STATION_ID_QUERY_ARG)),
		stationName: strings.TrimSpace(vals.Get(STATION_QUERY_ARG)),
		date:        strings.TrimSpace(vals.Get(DATE_QUERY_ARG)),
		minScale:    config.DEFAULT_MIN_SCALE,
	}
	if q.stationName == "" {
		writeBadRequest(w, "Missing argument "+STATION_QUERY_ARG)
		return q, false
	}
	if q.date == "" {
		writeBadRequest(w, "Missing argument "+DATE_QUERY_ARG)
		return q, false
	}
	if raw := vals.Get(MIN_SCALE_QUERY_ARG); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || !validScale(v) {
			writeBadRequest(w, scaleRangeDetail())
			return q, false
		}
		q.minScale = v
	}
	return q, true
}

func validScale(v int) bool {
	return v >= config.MIN_SCALE && v <= config.MAX_SCALE
}

func scaleRangeDetail() string {
	return fmt.Sprintf("Invalid argument %s, expected %d-%d", MIN_SCALE_QUERY_ARG, config.MIN_SCALE, config.MAX_SCALE)
}
