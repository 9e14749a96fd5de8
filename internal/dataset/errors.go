package dataset

import (
	"errors"
	"fmt"
)

// ErrNoDataPoints is returned when there is nothing to tabulate.
var ErrNoDataPoints = errors.New("no market data points")

// MissingMetricError reports a metric that is absent or non-numeric in the
// data point at Index.
type MissingMetricError struct {
	Metric string
	Index  int
}

func (e *MissingMetricError) Error() string {
	return fmt.Sprintf("metric %q missing or non-numeric in data point %d", e.Metric, e.Index)
}

// ZeroRangeError reports a min-max rescale whose target range collapses.
type ZeroRangeError struct {
	Metric string
	Min    float64
	Max    float64
}

func (e *ZeroRangeError) Error() string {
	return fmt.Sprintf("metric %q has a degenerate range [%g, %g]", e.Metric, e.Min, e.Max)
}

// ShapeError reports a nested field whose length differs from the first record.
type ShapeError struct {
	Field string
	Index int
	Want  int
	Got   int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s in data point %d has length %d, want %d", e.Field, e.Index, e.Got, e.Want)
}
