package dataset

import (
	"math"

	talib "github.com/markcheno/go-talib"
)

// Smooth returns the simple moving average of values over window points.
// The warm-up region has no average and is filled with NaN.
func Smooth(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 1 {
		copy(out, values)
		return out
	}
	if window > len(values) {
		for i := range out {
			out[i] = math.NaN()
		}
		return out
	}
	sma := talib.Sma(values, window)
	copy(out, sma)
	for i := 0; i < window-1; i++ {
		out[i] = math.NaN()
	}
	return out
}
