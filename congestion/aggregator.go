package congestion

import (
	"sort"

	"congestion-server/config"
	"congestion-server/models"
)

type windowEntry struct {
	window    models.CongestionWindow
	venueName string
	eventName string
	scale     int
}

// Aggregate flattens every scored event window into a start-hour ordered timeline.
// Entries below minScale are dropped. Only consecutive entries sharing the exact
// (start, end, label) key are merged; identical keys separated by another entry stay apart.
func Aggregate(scored []models.VenueScoredEvents, minScale int) []models.TimelineGroup {
	var entries []windowEntry
	for _, venue := range scored {
		for _, event := range venue.Events {
			if event.Scale < minScale {
				continue
			}
			for _, w := range event.CongestionWindows {
				entries = append(entries, windowEntry{
					window:    w,
					venueName: venue.VenueName,
					eventName: event.DisplayName(),
					scale:     event.Scale,
				})
			}
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].window.StartHour < entries[j].window.StartHour
	})

	groups := []models.TimelineGroup{}
	for _, e := range entries {
		member := models.TimelineMember{VenueName: e.venueName, EventName: e.eventName, Scale: e.scale}
		if n := len(groups); n > 0 && sameWindow(groups[n-1], e.window) {
			last := &groups[n-1]
			last.TotalScale = min(config.MAX_SCALE, last.TotalScale+e.scale)
			last.MemberCount++
			last.Members = append(last.Members, member)
			continue
		}
		groups = append(groups, models.TimelineGroup{
			StartHour:   e.window.StartHour,
			EndHour:     e.window.EndHour,
			Label:       e.window.Label,
			TotalScale:  min(config.MAX_SCALE, e.scale),
			MemberCount: 1,
			Members:     []models.TimelineMember{member},
		})
	}
	return groups
}

func sameWindow(g models.TimelineGroup, w models.CongestionWindow) bool {
	return g.StartHour == w.StartHour && g.EndHour == w.EndHour && g.Label == w.Label
}
