package congestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"congestion-server/config"
	"congestion-server/models"
)

func scoredEvent(name string, scale int, windows ...models.CongestionWindow) models.ScoredEvent {
	return models.ScoredEvent{
		Event: models.Event{Name: strPtr(name), CongestionWindows: windows},
		Scale: scale,
	}
}

func TestAggregate_Empty(t *testing.T) {
	got := Aggregate(nil, config.DEFAULT_MIN_SCALE)

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestAggregate_MergesIdenticalWindowsWithSaturation(t *testing.T) {
	w := models.CongestionWindow{StartHour: 19, EndHour: 21, Label: "開場前"}
	scored := []models.VenueScoredEvents{
		{VenueName: "A", Events: []models.ScoredEvent{scoredEvent("a", 6, w)}},
		{VenueName: "B", Events: []models.ScoredEvent{scoredEvent("b", 6, w)}},
	}

	got := Aggregate(scored, config.DEFAULT_MIN_SCALE)

	require.Len(t, got, 1)
	assert.Equal(t, 10, got[0].TotalScale)
	assert.Equal(t, 2, got[0].MemberCount)
	assert.Equal(t, []models.TimelineMember{
		{VenueName: "A", EventName: "a", Scale: 6},
		{VenueName: "B", EventName: "b", Scale: 6},
	}, got[0].Members)
}

func TestAggregate_ManyMembersStayWithinScale(t *testing.T) {
	w := models.CongestionWindow{StartHour: 18, EndHour: 20, Label: "退場"}
	var venue models.VenueScoredEvents
	for i := 0; i < 12; i++ {
		venue.Events = append(venue.Events, scoredEvent("e", 8, w))
	}

	got := Aggregate([]models.VenueScoredEvents{venue}, config.DEFAULT_MIN_SCALE)

	require.Len(t, got, 1)
	assert.Equal(t, 10, got[0].TotalScale)
	assert.Equal(t, 12, got[0].MemberCount)
}

func TestAggregate_FiltersBelowThreshold(t *testing.T) {
	scored := []models.VenueScoredEvents{{VenueName: "A", Events: []models.ScoredEvent{
		scoredEvent("quiet", 3, models.CongestionWindow{StartHour: 9, EndHour: 10}),
		scoredEvent("none", 1),
		scoredEvent("busy", 5, models.CongestionWindow{StartHour: 12, EndHour: 13}),
	}}}

	got := Aggregate(scored, config.DEFAULT_MIN_SCALE)

	require.Len(t, got, 1)
	assert.Equal(t, "busy", got[0].Members[0].EventName)
	assert.Empty(t, Aggregate(scored, 6))
}

func TestAggregate_SortsByStartHourStably(t *testing.T) {
	scored := []models.VenueScoredEvents{
		{VenueName: "A", Events: []models.ScoredEvent{
			scoredEvent("late", 8, models.CongestionWindow{StartHour: 21, EndHour: 22, Label: "終演後"}),
			scoredEvent("first17", 8, models.CongestionWindow{StartHour: 17, EndHour: 19, Label: "開場前"}),
		}},
		{VenueName: "B", Events: []models.ScoredEvent{
			scoredEvent("second17", 5, models.CongestionWindow{StartHour: 17, EndHour: 18, Label: "開場前"}),
			scoredEvent("morning", 10, models.CongestionWindow{StartHour: 8, EndHour: 9, Label: "入場"}),
		}},
	}

	got := Aggregate(scored, config.DEFAULT_MIN_SCALE)

	require.Len(t, got, 4)
	var names []string
	for _, g := range got {
		names = append(names, g.Members[0].EventName)
	}
	assert.Equal(t, []string{"morning", "first17", "second17", "late"}, names)
}

func TestAggregate_MergesOnlyAdjacentEntries(t *testing.T) {
	l := models.CongestionWindow{StartHour: 17, EndHour: 19, Label: "L"}
	m := models.CongestionWindow{StartHour: 17, EndHour: 20, Label: "M"}
	scored := []models.VenueScoredEvents{
		{VenueName: "A", Events: []models.ScoredEvent{scoredEvent("a", 5, l)}},
		{VenueName: "B", Events: []models.ScoredEvent{scoredEvent("b", 5, m)}},
		{VenueName: "C", Events: []models.ScoredEvent{scoredEvent("c", 5, l)}},
	}

	got := Aggregate(scored, config.DEFAULT_MIN_SCALE)

	require.Len(t, got, 3)
	assert.Equal(t, "L", got[0].Label)
	assert.Equal(t, "M", got[1].Label)
	assert.Equal(t, "L", got[2].Label)
	for _, g := range got {
		assert.Equal(t, 1, g.MemberCount)
		assert.Equal(t, 5, g.TotalScale)
	}
}

func TestAggregate_EventWithSeveralWindows(t *testing.T) {
	scored := []models.VenueScoredEvents{{VenueName: "A", Events: []models.ScoredEvent{
		scoredEvent("show", 8,
			models.CongestionWindow{StartHour: 21, EndHour: 22, Label: "終演後"},
			models.CongestionWindow{StartHour: 17, EndHour: 18, Label: "開場前"}),
	}}}

	got := Aggregate(scored, config.DEFAULT_MIN_SCALE)

	require.Len(t, got, 2)
	assert.Equal(t, 17, got[0].StartHour)
	assert.Equal(t, 21, got[1].StartHour)
}

func TestAggregate_Idempotent(t *testing.T) {
	w := models.CongestionWindow{StartHour: 19, EndHour: 21, Label: "開場前"}
	scored := []models.VenueScoredEvents{
		{VenueName: "A", Events: []models.ScoredEvent{scoredEvent("a", 6, w), scoredEvent("x", 9, models.CongestionWindow{StartHour: 7, EndHour: 9})}},
		{VenueName: "B", Events: []models.ScoredEvent{scoredEvent("b", 7, w)}},
	}

	assert.Equal(t, Aggregate(scored, 5), Aggregate(scored, 5))
}

func TestComputeTimeline_ZeroAttendanceNeverSurfaces(t *testing.T) {
	venueEvents := []models.VenueEvents{{VenueName: "A", VenueID: "v1", Events: []models.Event{{}}}}

	scored, timeline := ComputeTimeline(venueEvents, measured(25000), DefaultTimeWeightTable(), config.DEFAULT_MIN_SCALE)

	require.Len(t, scored, 1)
	assert.Equal(t, "v1", scored[0].VenueID)
	assert.Equal(t, 1, scored[0].Events[0].Scale)
	assert.Empty(t, timeline)
}

func TestComputeTimeline_EndToEnd(t *testing.T) {
	raw := `[{"facility_name": "アリーナ", "events": [{"event_name": "ライブ", "estimated_attendance": 5000,
		"congestion_windows": [{"start_hour": 17, "end_hour": 19, "label": "開場前"}]}]}]`
	venueEvents, err := NormalizeEvents([]byte(raw))
	require.NoError(t, err)

	scored, timeline := ComputeTimeline(venueEvents, measured(25000), DefaultTimeWeightTable(), config.DEFAULT_MIN_SCALE)

	require.Len(t, scored, 1)
	assert.Equal(t, 10, scored[0].Events[0].Scale)
	require.Len(t, timeline, 1)
	assert.Equal(t, models.TimelineGroup{
		StartHour: 17, EndHour: 19, Label: "開場前", TotalScale: 10, MemberCount: 1,
		Members: []models.TimelineMember{{VenueName: "アリーナ", EventName: "ライブ", Scale: 10}},
	}, timeline[0])
}
