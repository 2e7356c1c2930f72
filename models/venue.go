package models

// Venue is a facility near a station that may host events.
type Venue struct {
	ID       string  `json:"venue_id"`
	Name     string  `json:"venue_name"`
	Address  string  `json:"venue_address"`
	Category string  `json:"venue_category"`
	Lat      float64 `json:"venue_lat"`
	Lon      float64 `json:"venue_lon"`
}

// Coordinates is a resolved station location.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}
