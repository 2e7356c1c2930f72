package models

import "fmt"

// SurveyRecord is one year's one-direction passenger figure for a station.
type SurveyRecord struct {
	Year       int `json:"year" yaml:"year"`
	Passengers int `json:"passengers" yaml:"passengers"`
}

// RidershipProfile is the baseline boarding+alighting volume of a station.
type RidershipProfile struct {
	StationID       string `json:"station_id"`
	DailyPassengers int    `json:"daily_passengers"`
	SurveyYear      int    `json:"survey_year,omitempty"`
	IsDefault       bool   `json:"is_default"`
}

// TimeBand is the share of daily passengers passing through during [StartHour, EndHour).
type TimeBand struct {
	StartHour int     `json:"start_hour" yaml:"start_hour"`
	EndHour   int     `json:"end_hour" yaml:"end_hour"`
	Ratio     float64 `json:"ratio" yaml:"ratio"`
}

func (b TimeBand) Duration() int {
	return b.EndHour - b.StartHour
}

type TimeWeightTable struct {
	Bands []TimeBand `json:"bands" yaml:"bands"`
}

// Validate checks that the bands, taken in order, partition [0,24) without gaps or overlaps.
func (t TimeWeightTable) Validate() error {
	if len(t.Bands) == 0 {
		return fmt.Errorf("time weight table has no bands")
	}
	next := 0
	for i, b := range t.Bands {
		if b.StartHour != next {
			return fmt.Errorf("band %d starts at %d, expected %d", i, b.StartHour, next)
		}
		if b.EndHour <= b.StartHour {
			return fmt.Errorf("band %d is empty (%d-%d)", i, b.StartHour, b.EndHour)
		}
		if b.Ratio < 0 {
			return fmt.Errorf("band %d has negative ratio %v", i, b.Ratio)
		}
		next = b.EndHour
	}
	if next != 24 {
		return fmt.Errorf("bands end at %d, expected 24", next)
	}
	return nil
}
