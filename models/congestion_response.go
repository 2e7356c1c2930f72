package models

// CongestionResponse is the payload returned to the presentation layer.
type CongestionResponse struct {
	StationID   string              `json:"station_id"`
	StationName string              `json:"station_name"`
	Date        string              `json:"date"`
	Coordinates *Coordinates        `json:"coordinates,omitempty"`
	ImageURL    string              `json:"image_url,omitempty"`
	Ridership   RidershipProfile    `json:"ridership"`
	Venues      []VenueScoredEvents `json:"venues"`
	Timeline    []TimelineGroup     `json:"timeline"`
}

// TimelineRequest is the body of POST /v1/congestion/timeline.
type TimelineRequest struct {
	StationID   string  `json:"station_id"`
	StationName string  `json:"station"`
	Date        string  `json:"date"`
	Venues      []Venue `json:"venues"`
	MinScale    *int    `json:"min_scale,omitempty"`
}

// ErrorResponse separates the user-facing message from diagnostic detail.
type ErrorResponse struct {
	Detail string `json:"detail"`
	Error  string `json:"error,omitempty"`
}
