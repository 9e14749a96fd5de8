package app

import (
	"fmt"
	"strings"
	"time"
)

// Report describes what a run read and produced.
type Report struct {
	RunID       string
	Input       string
	FilteredLog string
	Scanned     int
	Matched     int
	Points      int
	Mode        string
	Metrics     []string
	Exponents   map[string]int
	ChartHTML   string
	ChartPNG    string
	Elapsed     time.Duration
}

// Summary renders the report as a short multi-line block.
func (r *Report) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "run %s (%s mode)\n", r.RunID, r.Mode)
	fmt.Fprintf(&b, "  input:    %s (%d lines, %d tagged, %d data points)\n", r.Input, r.Scanned, r.Matched, r.Points)
	fmt.Fprintf(&b, "  filtered: %s\n", r.FilteredLog)
	fmt.Fprintf(&b, "  metrics:  %s\n", formatMetrics(r.Metrics, r.Exponents))
	fmt.Fprintf(&b, "  charts:   %s\n", r.ChartHTML)
	if r.ChartPNG != "" {
		fmt.Fprintf(&b, "  png:      %s\n", r.ChartPNG)
	}
	return b.String()
}

func formatMetrics(names []string, exps map[string]int) string {
	if len(names) == 0 {
		return "-"
	}
	parts := make([]string, len(names))
	for i, n := range names {
		if exp, ok := exps[n]; ok {
			parts[i] = fmt.Sprintf("%s(x1e%d)", n, exp)
		} else {
			parts[i] = n
		}
	}
	return strings.Join(parts, ", ")
}
