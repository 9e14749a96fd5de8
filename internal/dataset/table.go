// Package dataset turns decoded data points into per-metric series and
// rescales them for side-by-side plotting.
package dataset

import (
	"marketlog/internal/config"
	"marketlog/internal/logger"
	"marketlog/internal/logparse"
)

// Series is one metric's values across all data points, in log order.
type Series struct {
	Name   string
	Values []float64
}

// Max returns the largest value; NaN values are skipped.
func (s Series) Max() float64 {
	m, _ := bounds(s.Values)
	return m.max
}

// Min returns the smallest value; NaN values are skipped.
func (s Series) Min() float64 {
	m, _ := bounds(s.Values)
	return m.min
}

// Table holds the extracted series; every series has Len values.
type Table struct {
	Series []Series
	Len    int
}

// Names returns the selected metric names in table order.
func (t *Table) Names() []string {
	out := make([]string, len(t.Series))
	for i, s := range t.Series {
		out[i] = s.Name
	}
	return out
}

// Lookup finds a series by metric name.
func (t *Table) Lookup(name string) (Series, bool) {
	for _, s := range t.Series {
		if s.Name == name {
			return s, true
		}
	}
	return Series{}, false
}

// Extract builds one series per configured metric, in configured order.
// Metrics are discovered from the first data point; a metric that only
// shows up in later records is reported instead of being dropped, and a
// selected metric missing from any record is an error.
func Extract(points []logparse.DataPoint, metrics []config.MetricSpec) (*Table, error) {
	if len(points) == 0 {
		return nil, ErrNoDataPoints
	}
	first := points[0]
	t := &Table{Len: len(points)}
	for _, m := range metrics {
		if !first.Has(m.Name) {
			if idx := firstIndexWith(points, m.Name); idx > 0 {
				return nil, &MissingMetricError{Metric: m.Name, Index: 0}
			}
			logger.Debugf("metric %s not present in log, skipped", m.Name)
			continue
		}
		values := make([]float64, len(points))
		for i, p := range points {
			v, ok := p.Scalar(m.Name)
			if !ok {
				return nil, &MissingMetricError{Metric: m.Name, Index: i}
			}
			values[i] = v
		}
		t.Series = append(t.Series, Series{Name: m.Name, Values: values})
	}
	return t, nil
}

func firstIndexWith(points []logparse.DataPoint, name string) int {
	for i, p := range points {
		if p.Has(name) {
			return i
		}
	}
	return -1
}

// Truncate keeps at most n leading values; n <= 0 keeps everything.
func Truncate(values []float64, n int) []float64 {
	if n <= 0 || len(values) <= n {
		return values
	}
	return values[:n]
}
