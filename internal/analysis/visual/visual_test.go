package visual

import (
	"math"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketlog/internal/config"
	"marketlog/internal/dataset"
)

func TestBuildPageRendersSeries(t *testing.T) {
	figs := []Figure{
		{Title: "first", Lines: []Line{
			{Name: "market_price x1e0", Values: []float64{1, 2, 3}, Color: "#008080"},
			{Name: "oracle_price x1e0", Values: []float64{1, math.NaN()}},
		}},
		{Title: "empty"},
	}
	html, err := BuildPage(figs, Style{LegendFontSize: 15})
	require.NoError(t, err)

	page := string(html)
	assert.Contains(t, page, "market_price x1e0")
	assert.Contains(t, page, "oracle_price x1e0")
	assert.Contains(t, page, "#008080")
}

func TestBuildPageWithoutFigures(t *testing.T) {
	_, err := BuildPage([]Figure{{Title: "nothing"}}, Style{})
	assert.Error(t, err)
}

func TestLineChartLegendAndSeries(t *testing.T) {
	fig := Figure{Title: "t", Lines: []Line{{Name: "a", Values: []float64{1}}, {Name: "b", Values: []float64{1, 2}}}}
	chart := buildLineChart(fig, Style{LegendFontSize: 21}.withDefaults())

	require.NotNil(t, chart.Legend.TextStyle)
	assert.Equal(t, 21, chart.Legend.TextStyle.FontSize)
	require.Len(t, chart.MultiSeries, 2)
	assert.Equal(t, "a", chart.MultiSeries[0].Name)
	assert.Equal(t, "b", chart.MultiSeries[1].Name)
}

func TestToLineData(t *testing.T) {
	data := toLineData([]float64{1, math.NaN(), math.Inf(1)}, 4)
	require.Len(t, data, 4)
	assert.Equal(t, 1.0, data[0].Value)
	assert.Nil(t, data[1].Value)
	assert.Nil(t, data[2].Value)
	assert.Nil(t, data[3].Value)
}

func TestComparisonFigure(t *testing.T) {
	scaled := []dataset.Scaled{
		{Name: "market_price", Values: []float64{1, 2, 3, 4}, Exponent: 2, Mode: dataset.ModeMagnitude},
		{Name: "total_collateral", Values: []float64{4, 3, 2, 1}, Mode: dataset.ModeMagnitude},
	}
	fig := ComparisonFigure(scaled, config.DefaultMetrics(), 3, 0)
	require.Len(t, fig.Lines, 2)
	assert.Equal(t, "market_price x1e2", fig.Lines[0].Name)
	assert.Equal(t, "#008080", fig.Lines[0].Color)
	assert.Equal(t, []float64{1, 2, 3}, fig.Lines[0].Values)
	assert.Empty(t, fig.Lines[1].Color)
	assert.Equal(t, "order of magnitude scaling", fig.Subtitle)

	smoothed := ComparisonFigure(scaled[:1], config.DefaultMetrics(), 0, 2)
	require.Len(t, smoothed.Lines, 2)
	assert.True(t, smoothed.Lines[1].Dashed)
	assert.Equal(t, "market_price x1e2 SMA2", smoothed.Lines[1].Name)
	assert.Len(t, smoothed.Lines[1].Values, 4)

	minmax := ComparisonFigure([]dataset.Scaled{{Name: "x", Values: []float64{0, 1}, Mode: dataset.ModeMinMax}}, nil, 0, 0)
	assert.Equal(t, "x normalized", minmax.Lines[0].Name)
	assert.Equal(t, "min-max normalized", minmax.Subtitle)
}

func TestMemoryFigures(t *testing.T) {
	lt := &dataset.LongTable{
		Columns: []string{"a", "b"},
		Steps:   2,
		Rows: []dataset.Row{
			{Step: 0, Metric: "a", Value: 1}, {Step: 0, Metric: "b", Value: 2},
			{Step: 1, Metric: "a", Value: 3}, {Step: 1, Metric: "b", Value: 4},
		},
	}
	structural := []dataset.Series{{Name: "longs_depths", Values: []float64{1, 2}}}
	figs := MemoryFigures(lt, structural)
	require.Len(t, figs, 2)
	require.Len(t, figs[0].Lines, 2)
	assert.Equal(t, []float64{1, 3}, figs[0].Lines[0].Values)
	assert.Equal(t, "longs_depths", figs[1].Lines[0].Name)
}

func TestChartPath(t *testing.T) {
	now := time.Date(2026, 10, 15, 9, 8, 7, 0, time.UTC)
	assert.Equal(t, filepath.Join("log", "graph_15-10-2026_09-08-07.html"), ChartPath("log", "", now, "html"))
	assert.Equal(t, filepath.Join("log", "run_15-10-2026_09-08-07.png"), ChartPath("log", "run", now, "png"))
}

func TestWriteHTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "charts", "page.html")
	require.NoError(t, WriteHTML(path, []byte("<html></html>")))
	assert.FileExists(t, path)
}

func TestOpenInBrowserWithoutOpener(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("opener lookup is PATH based on linux only")
	}
	path := filepath.Join(t.TempDir(), "page.html")
	require.NoError(t, WriteHTML(path, []byte("<html></html>")))
	t.Setenv("PATH", t.TempDir())

	err := OpenInBrowser(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, exec.ErrNotFound)
	assert.Contains(t, err.Error(), path)
}
