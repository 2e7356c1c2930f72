package congestion

import (
	"congestion-server/config"
	"congestion-server/models"
)

// DefaultTimeWeightTable models how peaked a typical commuter station is over the day.
// Ratios do not sum to 1.
func DefaultTimeWeightTable() models.TimeWeightTable {
	return models.TimeWeightTable{
		Bands: []models.TimeBand{
			{StartHour: 0, EndHour: 7, Ratio: 0.01},
			{StartHour: 7, EndHour: 10, Ratio: 0.12},
			{StartHour: 10, EndHour: 17, Ratio: 0.05},
			{StartHour: 17, EndHour: 20, Ratio: 0.12},
			{StartHour: 20, EndHour: 24, Ratio: 0.05},
		},
	}
}

// DefaultProfile is the fallback used when a station has no survey row.
func DefaultProfile(stationID string) models.RidershipProfile {
	return models.RidershipProfile{
		StationID:       stationID,
		DailyPassengers: config.DEFAULT_DAILY_PASSENGERS,
		IsDefault:       true,
	}
}

// LookupProfile picks the most recent survey year for the station and doubles it, since
// the survey counts one direction only. Equal years resolve to the last record seen.
func LookupProfile(survey map[string][]models.SurveyRecord, stationID string) models.RidershipProfile {
	records := survey[stationID]
	if len(records) == 0 {
		return DefaultProfile(stationID)
	}

	latest := records[0]
	for _, r := range records[1:] {
		if r.Year >= latest.Year {
			latest = r
		}
	}

	passengers := latest.Passengers
	if passengers < 0 {
		passengers = 0
	}
	return models.RidershipProfile{
		StationID:       stationID,
		DailyPassengers: passengers * 2,
		SurveyYear:      latest.Year,
	}
}
