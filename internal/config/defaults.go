package config

import (
	"fmt"
	"strings"
)

const (
	defaultAppLogLevel     = "info"
	defaultAppLogMaxSizeMB = 50
	defaultInputLogPath    = "../log/output.log"
	defaultOutputDir       = "../log"
	defaultFilteredPrefix  = "formatted_output"
	defaultMaxPoints       = 1000
	defaultLegendFontSize  = 15
	defaultChartWidth      = 1600
	defaultChartHeight     = 700
	defaultChartPrefix     = "graph"
)

// defaultMetrics mirrors the table the simulation harness was tuned with.
// Order matters: it is the legend order and the extraction order.
var defaultMetrics = []MetricSpec{
	{Name: "total_collateral", MinOffset: 0, MaxOffset: 1},
	{Name: "total_fee_balance", MinOffset: 0, MaxOffset: 1},
	{Name: "rebalancing_funds", Color: "#99cc99", MinOffset: 0, MaxOffset: 0.5},
	{Name: "v_coin_amount", MinOffset: 0, MaxOffset: 1},
	{Name: "v_pc_amount", MinOffset: 0, MaxOffset: 1},
	{Name: "open_shorts_v_coin", MinOffset: 0, MaxOffset: 1},
	{Name: "open_longs_v_coin", MinOffset: 0, MaxOffset: 1},
	{Name: "insurance_fund", Color: "#808080", MinOffset: 0.2, MaxOffset: 1.2},
	{Name: "market_price", Color: "#008080", MinOffset: 0.5, MaxOffset: 1.5},
	{Name: "oracle_price", Color: "#99cc99", MinOffset: 0.5, MaxOffset: 1.5},
	{Name: "equilibrium_price", Color: "#ff8000", MinOffset: 0.5, MaxOffset: 1},
}

// DefaultMetrics returns a copy of the built-in metric table.
func DefaultMetrics() []MetricSpec {
	return append([]MetricSpec(nil), defaultMetrics...)
}

// Default returns a fully defaulted config, used when no file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults(keySet{})
	return cfg
}

func (c *Config) applyDefaults(keys keySet) {
	c.App.applyDefaults(keys)
	c.Input.applyDefaults(keys)
	c.Plot.applyDefaults(keys)
	c.Display.applyDefaults(keys)
	if !keys.isSet("metrics") && len(c.Metrics) == 0 {
		c.Metrics = DefaultMetrics()
	}
	for i := range c.Metrics {
		c.Metrics[i].Name = strings.TrimSpace(c.Metrics[i].Name)
		c.Metrics[i].Color = strings.TrimSpace(c.Metrics[i].Color)
		if c.Metrics[i].MaxOffset == 0 && !keys.isSet(fmt.Sprintf("metrics.%d.max_offset", i)) {
			c.Metrics[i].MaxOffset = 1
		}
	}
}

func (a *AppConfig) applyDefaults(keys keySet) {
	applyFieldDefaults(keys,
		stringFieldDefault("app.log_level", &a.LogLevel, defaultAppLogLevel),
		intFieldDefault("app.log_max_size_mb", &a.LogMaxSizeMB, defaultAppLogMaxSizeMB),
	)
}

func (in *InputConfig) applyDefaults(keys keySet) {
	applyFieldDefaults(keys,
		stringFieldDefault("input.log_path", &in.LogPath, defaultInputLogPath),
		stringFieldDefault("input.output_dir", &in.OutputDir, defaultOutputDir),
		stringFieldDefault("input.filtered_prefix", &in.FilteredPrefix, defaultFilteredPrefix),
	)
}

func (p *PlotConfig) applyDefaults(keys keySet) {
	applyFieldDefaults(keys,
		boolFieldDefault("plot.plot_memory", &p.PlotMemory, true),
		intFieldDefault("plot.max_points", &p.MaxPoints, defaultMaxPoints),
		intFieldDefault("plot.legend_font_size", &p.LegendFontSize, defaultLegendFontSize),
		intFieldDefault("plot.width", &p.Width, defaultChartWidth),
		intFieldDefault("plot.height", &p.Height, defaultChartHeight),
	)
}

func (d *DisplayConfig) applyDefaults(keys keySet) {
	applyFieldDefaults(keys,
		boolFieldDefault("display.open_browser", &d.OpenBrowser, true),
		stringFieldDefault("display.chart_prefix", &d.ChartPrefix, defaultChartPrefix),
	)
}

func applyFieldDefaults(keys keySet, defs ...fieldDefault) {
	for _, def := range defs {
		if def.apply == nil {
			continue
		}
		if def.key != "" && keys.isSet(def.key) {
			continue
		}
		if def.need != nil && !def.need() {
			continue
		}
		def.apply()
	}
}

func stringFieldDefault(key string, target *string, def string) fieldDefault {
	return fieldDefault{
		key: key,
		need: func() bool {
			return target != nil && strings.TrimSpace(*target) == ""
		},
		apply: func() {
			if target != nil {
				*target = def
			}
		},
	}
}

func intFieldDefault(key string, target *int, def int) fieldDefault {
	return fieldDefault{
		key:   key,
		need:  func() bool { return target != nil && *target <= 0 },
		apply: func() { *target = def },
	}
}

func boolFieldDefault(key string, target *bool, def bool) fieldDefault {
	return fieldDefault{
		key:  key,
		need: func() bool { return target != nil },
		apply: func() {
			if target != nil {
				*target = def
			}
		},
	}
}
