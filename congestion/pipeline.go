package congestion

import (
	"strings"

	"congestion-server/models"
)

// ComputeTimeline scores every normalized event against the station profile and aggregates
// the result. It has no side effects and may be re-run on the same inputs.
func ComputeTimeline(
	venueEvents []models.VenueEvents,
	profile models.RidershipProfile,
	table models.TimeWeightTable,
	minScale int,
) ([]models.VenueScoredEvents, []models.TimelineGroup) {
	scored := make([]models.VenueScoredEvents, 0, len(venueEvents))
	for _, ve := range venueEvents {
		events := make([]models.ScoredEvent, 0, len(ve.Events))
		for _, e := range ve.Events {
			events = append(events, Score(e, profile, table))
		}
		scored = append(scored, models.VenueScoredEvents{
			VenueName: ve.VenueName,
			VenueID:   ve.VenueID,
			Events:    events,
		})
	}
	return scored, Aggregate(scored, minScale)
}

// AttachVenueIDs cross-references upstream facility names against the candidate venues and
// stamps the matching venue ID on each event. Exact normalized matches win over containment.
func AttachVenueIDs(venueEvents []models.VenueEvents, venues []models.Venue) []models.VenueEvents {
	out := make([]models.VenueEvents, 0, len(venueEvents))
	for _, ve := range venueEvents {
		id := matchVenueID(ve.VenueName, venues)
		events := make([]models.Event, len(ve.Events))
		for i, e := range ve.Events {
			if e.VenueID == "" {
				e.VenueID = id
			}
			events[i] = e
		}
		out = append(out, models.VenueEvents{VenueName: ve.VenueName, VenueID: id, Events: events})
	}
	return out
}

func matchVenueID(name string, venues []models.Venue) string {
	key := models.NormalizeVenueName(name)
	if key == "" {
		return ""
	}
	for _, v := range venues {
		if models.NormalizeVenueName(v.Name) == key {
			return v.ID
		}
	}
	for _, v := range venues {
		candidate := models.NormalizeVenueName(v.Name)
		if candidate != "" && (strings.Contains(candidate, key) || strings.Contains(key, candidate)) {
			return v.ID
		}
	}
	return ""
}
