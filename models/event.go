package models

// CongestionWindow is an hour range during which an event adds foot traffic at the station.
// EndHour <= StartHour is tolerated and contributes no throughput.
type CongestionWindow struct {
	StartHour int    `json:"start_hour"`
	EndHour   int    `json:"end_hour"`
	Label     string `json:"label"`
}

type Event struct {
	VenueID             string             `json:"venue_id,omitempty"`
	Name                *string            `json:"event_name"`
	EstimatedAttendance int                `json:"estimated_attendance"`
	CongestionWindows   []CongestionWindow `json:"congestion_windows"`
}

// DisplayName returns the event name or an empty string when the upstream omitted it.
func (e Event) DisplayName() string {
	if e.Name == nil {
		return ""
	}
	return *e.Name
}

// ScoredEvent is an Event with its 1-10 congestion scale attached.
type ScoredEvent struct {
	Event
	Scale              int     `json:"scale"`
	Reason             string  `json:"reason"`
	WeightedThroughput float64 `json:"weighted_throughput"`
}

// VenueEvents groups normalized events under the venue name the upstream keyed them by.
type VenueEvents struct {
	VenueName string  `json:"venue_name"`
	VenueID   string  `json:"venue_id,omitempty"`
	Events    []Event `json:"events"`
}

type VenueScoredEvents struct {
	VenueName string        `json:"venue_name"`
	VenueID   string        `json:"venue_id,omitempty"`
	Events    []ScoredEvent `json:"events"`
}
