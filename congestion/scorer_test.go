package congestion

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"congestion-server/models"
)

func strPtr(s string) *string { return &s }

func measured(daily int) models.RidershipProfile {
	return models.RidershipProfile{StationID: "S1", DailyPassengers: daily}
}

func TestWindowThroughput_FullDayEqualsDailyPassengers(t *testing.T) {
	table := models.TimeWeightTable{Bands: []models.TimeBand{
		{StartHour: 0, EndHour: 6, Ratio: 0.1},
		{StartHour: 6, EndHour: 12, Ratio: 0.4},
		{StartHour: 12, EndHour: 18, Ratio: 0.3},
		{StartHour: 18, EndHour: 24, Ratio: 0.2},
	}}
	for _, daily := range []int{0, 1, 25000, 123457, 3000000} {
		got := WindowThroughput(models.CongestionWindow{StartHour: 0, EndHour: 24}, measured(daily), table)
		assert.InDelta(t, float64(daily), got, 1e-6, "daily=%d", daily)
	}
}

func TestWindowThroughput_InvertedOrEmptyWindowIsZero(t *testing.T) {
	table := DefaultTimeWeightTable()
	assert.Zero(t, WindowThroughput(models.CongestionWindow{StartHour: 19, EndHour: 17}, measured(25000), table))
	assert.Zero(t, WindowThroughput(models.CongestionWindow{StartHour: 18, EndHour: 18}, measured(25000), table))
}

func TestWindowThroughput_SpansBands(t *testing.T) {
	// 16-18: 1h of 10-17 (1250/7) + 1h of 17-20 (3000/3)
	got := WindowThroughput(models.CongestionWindow{StartHour: 16, EndHour: 18}, measured(25000), DefaultTimeWeightTable())
	assert.InDelta(t, 1250.0/7+1000, got, 1e-6)
}

func TestScore_EveningWindowExample(t *testing.T) {
	event := models.Event{
		Name:                strPtr("ライブ"),
		EstimatedAttendance: 5000,
		CongestionWindows:   []models.CongestionWindow{{StartHour: 17, EndHour: 19, Label: "開場前"}},
	}

	scored := Score(event, measured(25000), DefaultTimeWeightTable())

	assert.InDelta(t, 2000.0, scored.WeightedThroughput, 1e-6)
	assert.Equal(t, 10, scored.Scale)
	assert.Contains(t, scored.Reason, "5000人")
	assert.Contains(t, scored.Reason, "約2000人")
	assert.NotContains(t, scored.Reason, defaultProfileNote)
}

func TestScore_ScalePolicy(t *testing.T) {
	daytime := []models.CongestionWindow{{StartHour: 10, EndHour: 17, Label: "日中"}} // 1250 passengers
	tests := []struct {
		name       string
		attendance int
		windows    []models.CongestionWindow
		want       int
	}{
		{"no windows no attendance", 0, nil, 1},
		{"no windows small attendance", 100, nil, 3},
		{"no windows over ten thousand", 20000, nil, 8},
		{"no windows over fifty thousand", 60000, nil, 10},
		{"ratio below five percent", 50, daytime, 3},
		{"ratio above five percent", 100, daytime, 5},
		{"ratio above twenty percent", 300, daytime, 8},
		{"ratio above half", 700, daytime, 10},
		{"inverted window only", 5000, []models.CongestionWindow{{StartHour: 19, EndHour: 17}}, 3},
		{"zero attendance with window", 0, daytime, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := models.Event{EstimatedAttendance: tt.attendance, CongestionWindows: tt.windows}
			scored := Score(event, measured(25000), DefaultTimeWeightTable())
			assert.Equal(t, tt.want, scored.Scale)
			assert.NotEmpty(t, scored.Reason)
		})
	}
}

func TestScore_UsesBusiestWindow(t *testing.T) {
	event := models.Event{
		EstimatedAttendance: 1000,
		CongestionWindows: []models.CongestionWindow{
			{StartHour: 10, EndHour: 11, Label: "入場"},
			{StartHour: 17, EndHour: 20, Label: "退場"},
		},
	}

	scored := Score(event, measured(25000), DefaultTimeWeightTable())

	assert.InDelta(t, 3000.0, scored.WeightedThroughput, 1e-6)
	assert.Equal(t, 8, scored.Scale)
}

func TestScore_MonotonicInAttendance(t *testing.T) {
	windows := []models.CongestionWindow{{StartHour: 17, EndHour: 21, Label: "終演後"}}
	prev := 0
	for attendance := 0; attendance <= 70000; attendance += 250 {
		scored := Score(models.Event{EstimatedAttendance: attendance, CongestionWindows: windows}, measured(400000), DefaultTimeWeightTable())
		assert.GreaterOrEqual(t, scored.Scale, prev, "attendance=%d", attendance)
		assert.GreaterOrEqual(t, scored.Scale, 1)
		assert.LessOrEqual(t, scored.Scale, 10)
		prev = scored.Scale
	}
}

func TestScore_DefaultProfileIsFlaggedInReason(t *testing.T) {
	event := models.Event{}

	scored := Score(event, DefaultProfile("unknown"), DefaultTimeWeightTable())

	assert.Equal(t, 1, scored.Scale)
	assert.Contains(t, scored.Reason, defaultProfileNote)
}

func TestScore_ReasonDoesNotAffectScale(t *testing.T) {
	event := models.Event{EstimatedAttendance: 5000, CongestionWindows: []models.CongestionWindow{{StartHour: 17, EndHour: 19}}}

	a := Score(event, measured(25000), DefaultTimeWeightTable())
	b := Score(event, models.RidershipProfile{DailyPassengers: 25000, IsDefault: true}, DefaultTimeWeightTable())

	assert.Equal(t, a.Scale, b.Scale)
	assert.NotEqual(t, a.Reason, b.Reason)
}
