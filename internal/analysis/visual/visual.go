package visual

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// Line is one plotted series. An empty Color lets the theme pick one.
type Line struct {
	Name   string
	Values []float64
	Color  string
	Dashed bool
}

// Figure is one chart of the page.
type Figure struct {
	Title    string
	Subtitle string
	Lines    []Line
}

// Style holds the settings shared by every figure of a page.
type Style struct {
	LegendFontSize int
	Width          int
	Height         int
}

const (
	colorBackground    = "#060c1b"
	colorTextPrimary   = "#eceff4"
	colorTextSecondary = "#9ca3af"

	defaultLegendFontSize = 15
	defaultWidthPx        = 1600
	defaultHeightPx       = 700
)

func (s Style) withDefaults() Style {
	if s.LegendFontSize <= 0 {
		s.LegendFontSize = defaultLegendFontSize
	}
	if s.Width <= 0 {
		s.Width = defaultWidthPx
	}
	if s.Height <= 0 {
		s.Height = defaultHeightPx
	}
	return s
}

// BuildPage renders figures as one HTML page. Figures without lines are skipped.
func BuildPage(figs []Figure, style Style) ([]byte, error) {
	style = style.withDefaults()
	page := components.NewPage()
	page.SetLayout(components.PageFlexLayout)
	for _, fig := range figs {
		if len(fig.Lines) == 0 {
			continue
		}
		page.AddCharts(buildLineChart(fig, style))
	}
	if len(page.Charts) == 0 {
		return nil, fmt.Errorf("no figures to render")
	}
	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func buildLineChart(fig Figure, style Style) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme:           types.ThemeWesteros,
			Width:           fmt.Sprintf("%dpx", style.Width),
			Height:          fmt.Sprintf("%dpx", style.Height),
			BackgroundColor: colorBackground,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:         fig.Title,
			Subtitle:      fig.Subtitle,
			Left:          "left",
			TitleStyle:    &opts.TextStyle{Color: colorTextPrimary, FontSize: 18},
			SubtitleStyle: &opts.TextStyle{Color: colorTextSecondary},
		}),
		charts.WithLegendOpts(opts.Legend{
			Show:      opts.Bool(true),
			Top:       "40",
			TextStyle: &opts.TextStyle{Color: colorTextPrimary, FontSize: style.LegendFontSize},
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider", XAxisIndex: []int{0}}),
		charts.WithXAxisOpts(opts.XAxis{
			Type:      "category",
			Name:      "step",
			AxisLabel: &opts.AxisLabel{Color: colorTextSecondary},
			SplitLine: &opts.SplitLine{Show: opts.Bool(false)},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Scale:     opts.Bool(true),
			AxisLabel: &opts.AxisLabel{Color: colorTextSecondary},
			SplitLine: &opts.SplitLine{Show: opts.Bool(true), LineStyle: &opts.LineStyle{Color: colorTextSecondary, Opacity: opts.Float(0.2)}},
		}),
	)

	length := 0
	for _, l := range fig.Lines {
		if len(l.Values) > length {
			length = len(l.Values)
		}
	}
	line.SetXAxis(stepAxis(length))
	for _, l := range fig.Lines {
		line.AddSeries(l.Name, toLineData(l.Values, length), seriesOptions(l)...)
	}
	return line
}

func seriesOptions(l Line) []charts.SeriesOpts {
	lineStyle := opts.LineStyle{Width: 2}
	if l.Dashed {
		lineStyle.Type = "dashed"
	}
	out := []charts.SeriesOpts{
		charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
	}
	if l.Color != "" {
		lineStyle.Color = l.Color
		out = append(out, charts.WithItemStyleOpts(opts.ItemStyle{Color: l.Color}))
	}
	return append(out, charts.WithLineStyleOpts(lineStyle))
}

func stepAxis(n int) []string {
	x := make([]string, n)
	for i := range x {
		x[i] = strconv.Itoa(i)
	}
	return x
}

// toLineData pads series shorter than length with gaps; NaN and Inf are gaps too.
func toLineData(series []float64, length int) []opts.LineData {
	line := make([]opts.LineData, length)
	for i := range line {
		if i >= len(series) || math.IsNaN(series[i]) || math.IsInf(series[i], 0) {
			line[i] = opts.LineData{Value: nil}
			continue
		}
		line[i] = opts.LineData{Value: series[i]}
	}
	return line
}
