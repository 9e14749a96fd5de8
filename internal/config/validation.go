package config

import (
	"fmt"
	"math"
	"strings"
)

// validate performs basic sanity checks on a defaulted config.
func validate(c *Config) error {
	if err := c.Input.validate(); err != nil {
		return err
	}
	if err := c.Plot.validate(); err != nil {
		return err
	}
	return validateMetrics(c.Metrics)
}

func (in InputConfig) validate() error {
	if strings.TrimSpace(in.LogPath) == "" {
		return fmt.Errorf("input.log_path cannot be empty")
	}
	if strings.TrimSpace(in.OutputDir) == "" {
		return fmt.Errorf("input.output_dir cannot be empty")
	}
	if strings.ContainsAny(in.FilteredPrefix, `/\`) {
		return fmt.Errorf("input.filtered_prefix must not contain path separators")
	}
	return nil
}

func (p PlotConfig) validate() error {
	if p.MaxPoints < 0 {
		return fmt.Errorf("plot.max_points must be >= 0")
	}
	if p.LegendFontSize <= 0 {
		return fmt.Errorf("plot.legend_font_size must be > 0")
	}
	if p.SmoothingWindow < 0 {
		return fmt.Errorf("plot.smoothing_window must be >= 0")
	}
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("plot.width and plot.height must be > 0")
	}
	return nil
}

func validateMetrics(specs []MetricSpec) error {
	if len(specs) == 0 {
		return fmt.Errorf("metrics requires at least one entry")
	}
	seen := make(map[string]bool, len(specs))
	for i, m := range specs {
		if m.Name == "" {
			return fmt.Errorf("metrics[%d] missing name", i)
		}
		if seen[m.Name] {
			return fmt.Errorf("metrics contains duplicate name: %s", m.Name)
		}
		seen[m.Name] = true
		if math.IsNaN(m.MinOffset) || math.IsInf(m.MinOffset, 0) {
			return fmt.Errorf("metrics.%s min_offset must be finite", m.Name)
		}
		if m.MaxOffset == 0 || math.IsNaN(m.MaxOffset) || math.IsInf(m.MaxOffset, 0) {
			return fmt.Errorf("metrics.%s max_offset must be finite and non-zero", m.Name)
		}
		if m.Color != "" && !strings.HasPrefix(m.Color, "#") {
			return fmt.Errorf("metrics.%s color must be a #rrggbb value", m.Name)
		}
	}
	return nil
}
