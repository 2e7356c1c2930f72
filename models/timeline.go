package models

type TimelineMember struct {
	VenueName string `json:"venue_name"`
	EventName string `json:"event_name"`
	Scale     int    `json:"scale"`
}

// TimelineGroup is one or more events sharing an identical (start, end, label) window.
type TimelineGroup struct {
	StartHour   int              `json:"start_hour"`
	EndHour     int              `json:"end_hour"`
	Label       string           `json:"label"`
	TotalScale  int              `json:"total_scale"`
	MemberCount int              `json:"member_count"`
	Members     []TimelineMember `json:"member_events"`
}
