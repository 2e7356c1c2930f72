package congestion

import (
	"fmt"
	"math"

	"congestion-server/config"
	"congestion-server/models"
)

const defaultProfileNote = "（乗降客数は推定値）"

// WindowThroughput is the number of station passengers expected during the window,
// prorated from every time band the window overlaps.
func WindowThroughput(w models.CongestionWindow, profile models.RidershipProfile, table models.TimeWeightTable) float64 {
	if w.EndHour <= w.StartHour {
		return 0
	}

	total := 0.0
	for _, band := range table.Bands {
		duration := band.Duration()
		if duration <= 0 {
			continue
		}
		overlap := min(w.EndHour, band.EndHour) - max(w.StartHour, band.StartHour)
		if overlap <= 0 {
			continue
		}
		perHour := float64(profile.DailyPassengers) * band.Ratio / float64(duration)
		total += float64(overlap) * perHour
	}
	return total
}

// Score converts one event into a 1-10 congestion scale. The busiest window decides.
func Score(event models.Event, profile models.RidershipProfile, table models.TimeWeightTable) models.ScoredEvent {
	throughput := 0.0
	for _, w := range event.CongestionWindows {
		if t := WindowThroughput(w, profile, table); t > throughput {
			throughput = t
		}
	}

	attendance := event.EstimatedAttendance
	if attendance < 0 {
		attendance = 0
	}

	ratio := 0.0
	if throughput > 0 {
		ratio = float64(attendance) / throughput
	}

	return models.ScoredEvent{
		Event:              event,
		Scale:              scaleFor(attendance, ratio),
		Reason:             reasonFor(attendance, throughput, profile),
		WeightedThroughput: throughput,
	}
}

func scaleFor(attendance int, ratio float64) int {
	switch {
	case ratio > 0.5 || attendance > 50000:
		return config.MAX_SCALE
	case ratio > 0.2 || attendance > 10000:
		return 8
	case ratio > 0.05:
		return 5
	case attendance > 0:
		return 3
	default:
		return config.MIN_SCALE
	}
}

func reasonFor(attendance int, throughput float64, profile models.RidershipProfile) string {
	reason := fmt.Sprintf("予想来場者数 %d人 / 該当時間帯の駅利用者数 約%d人", attendance, int64(math.Round(throughput)))
	if profile.IsDefault {
		reason += defaultProfileNote
	}
	return reason
}
