package config

import "strings"

// Config carries everything one analysis run needs.
type Config struct {
	App     AppConfig     `yaml:"app"`
	Input   InputConfig   `yaml:"input"`
	Plot    PlotConfig    `yaml:"plot"`
	Display DisplayConfig `yaml:"display"`
	Metrics []MetricSpec  `yaml:"metrics"`
}

type AppConfig struct {
	LogLevel     string `yaml:"log_level"`
	LogPath      string `yaml:"log_path"`
	LogMaxSizeMB int    `yaml:"log_max_size_mb"`
}

// InputConfig locates the engine log and where the filtered copy goes.
type InputConfig struct {
	LogPath        string `yaml:"log_path"`
	OutputDir      string `yaml:"output_dir"`
	FilteredPrefix string `yaml:"filtered_prefix"`
}

// PlotConfig selects the rendering mode. PlotMemory wins over Transform;
// with both false the series are scaled by order of magnitude.
type PlotConfig struct {
	Transform       bool `yaml:"transform"`
	PlotMemory      bool `yaml:"plot_memory"`
	MaxPoints       int  `yaml:"max_points"`
	LegendFontSize  int  `yaml:"legend_font_size"`
	SmoothingWindow int  `yaml:"smoothing_window"`
	Width           int  `yaml:"width"`
	Height          int  `yaml:"height"`
}

type DisplayConfig struct {
	OpenBrowser bool   `yaml:"open_browser"`
	SavePNG     bool   `yaml:"save_png"`
	ChartPrefix string `yaml:"chart_prefix"`
}

// MetricSpec is one row of the tracked metric table. MinOffset and MaxOffset
// are only read in min-max mode; MaxOffset divides the series maximum.
type MetricSpec struct {
	Name      string  `yaml:"name"`
	Color     string  `yaml:"color"`
	MinOffset float64 `yaml:"min_offset"`
	MaxOffset float64 `yaml:"max_offset"`
}

// Metric looks up a tracked metric by name.
func (c *Config) Metric(name string) (MetricSpec, bool) {
	if c == nil {
		return MetricSpec{}, false
	}
	return FindMetric(c.Metrics, name)
}

func FindMetric(specs []MetricSpec, name string) (MetricSpec, bool) {
	name = strings.TrimSpace(name)
	for _, m := range specs {
		if m.Name == name {
			return m, true
		}
	}
	return MetricSpec{}, false
}

// MetricNames returns the tracked metric names in table order.
func (c *Config) MetricNames() []string {
	out := make([]string, 0, len(c.Metrics))
	for _, m := range c.Metrics {
		out = append(out, m.Name)
	}
	return out
}

// keySet tracks which config paths were set explicitly in the file.
type keySet map[string]struct{}

func (k keySet) mark(path string) {
	path = strings.ToLower(strings.TrimSpace(path))
	if path == "" {
		return
	}
	k[path] = struct{}{}
}

func (k keySet) isSet(path string) bool {
	if len(k) == 0 {
		return false
	}
	path = strings.ToLower(strings.TrimSpace(path))
	if path == "" {
		return false
	}
	_, ok := k[path]
	return ok
}

type fieldDefault struct {
	key   string
	need  func() bool
	apply func()
}
