package util

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"congestion-server/config"
	"congestion-server/models"
)

// TimelineAxisLabels returns one x-axis label per timeline group, e.g. "17-20 終演後".
func TimelineAxisLabels(timeline []models.TimelineGroup) []string {
	labels := make([]string, 0, len(timeline))
	for _, g := range timeline {
		label := fmt.Sprintf("%d-%d", g.StartHour, g.EndHour)
		if g.Label != "" {
			label += " " + g.Label
		}
		labels = append(labels, label)
	}
	return labels
}

// RenderTimelineChart renders the congestion timeline of resp as an HTML bar chart.
func RenderTimelineChart(w io.Writer, resp *models.CongestionResponse) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Station Congestion",
			Width:     "900px",
			Height:    "500px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("%s %s", resp.StationName, resp.Date),
			Subtitle: fmt.Sprintf("daily passengers: %d", resp.Ridership.DailyPassengers),
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "scale",
			Min:  0,
			Max:  config.MAX_SCALE,
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	data := make([]opts.BarData, 0, len(resp.Timeline))
	for _, g := range resp.Timeline {
		data = append(data, opts.BarData{
			Name:  fmt.Sprintf("%d events", g.MemberCount),
			Value: g.TotalScale,
		})
	}

	bar.SetXAxis(TimelineAxisLabels(resp.Timeline)).
		AddSeries("congestion", data,
			charts.WithLabelOpts(opts.Label{
				Show:     opts.Bool(true),
				Position: "top",
			}),
		)

	if err := bar.Render(w); err != nil {
		return fmt.Errorf("failed to render timeline chart: %w", err)
	}
	return nil
}
