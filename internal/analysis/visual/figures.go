package visual

import (
	"fmt"

	"marketlog/internal/config"
	"marketlog/internal/dataset"
)

// ComparisonFigure plots every scaled series on one chart, capped at
// maxPoints, using the metric's configured color when there is one. With
// smoothing > 1 each series gets a dashed moving-average overlay.
func ComparisonFigure(scaled []dataset.Scaled, metrics []config.MetricSpec, maxPoints, smoothing int) Figure {
	fig := Figure{Title: "Market data", Subtitle: "order of magnitude scaling"}
	if len(scaled) > 0 && scaled[0].Mode == dataset.ModeMinMax {
		fig.Subtitle = "min-max normalized"
	}
	for _, s := range scaled {
		var color string
		if spec, ok := config.FindMetric(metrics, s.Name); ok {
			color = spec.Color
		}
		values := dataset.Truncate(s.Values, maxPoints)
		fig.Lines = append(fig.Lines, Line{Name: s.Label(), Values: values, Color: color})
		if smoothing > 1 {
			fig.Lines = append(fig.Lines, Line{
				Name:   fmt.Sprintf("%s SMA%d", s.Label(), smoothing),
				Values: dataset.Smooth(values, smoothing),
				Color:  color,
				Dashed: true,
			})
		}
	}
	return fig
}

// MemoryFigures returns the two memory-mode charts: every column of the
// long table colored by metric name, then the page ratio and tree depth
// overlays.
func MemoryFigures(lt *dataset.LongTable, structural []dataset.Series) []Figure {
	layout := Figure{Title: "Market state per step", Subtitle: fmt.Sprintf("%d steps, %d metrics", lt.Steps, len(lt.Columns))}
	for _, s := range lt.Series() {
		layout.Lines = append(layout.Lines, Line{Name: s.Name, Values: s.Values})
	}
	overlays := Figure{Title: "Positions book memory", Subtitle: "page fill ratios and tree depths"}
	for _, s := range structural {
		overlays.Lines = append(overlays.Lines, Line{Name: s.Name, Values: s.Values})
	}
	return []Figure{layout, overlays}
}
