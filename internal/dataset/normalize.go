package dataset

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"marketlog/internal/config"
)

const (
	MetricMarketPrice = "market_price"
	MetricOraclePrice = "oracle_price"
)

// Mode names the rescaling applied to a series.
type Mode string

const (
	ModeMagnitude Mode = "magnitude"
	ModeMinMax    Mode = "minmax"
)

// Scaled is a rescaled series ready for plotting.
type Scaled struct {
	Name     string
	Values   []float64
	Exponent int
	Mode     Mode
}

// Label is the legend text for the series.
func (s Scaled) Label() string {
	if s.Mode == ModeMinMax {
		return s.Name + " normalized"
	}
	return fmt.Sprintf("%s x1e%d", s.Name, s.Exponent)
}

// Normalize applies min-max rescaling when cfg.Plot.Transform is set and
// order-of-magnitude scaling otherwise.
func Normalize(t *Table, cfg *config.Config) ([]Scaled, error) {
	if cfg.Plot.Transform {
		return NormalizeMinMax(t, cfg.Metrics)
	}
	return NormalizeMagnitude(t), nil
}

// NormalizeMinMax maps each series linearly so that its minimum lands on
// the metric's MinOffset and max/MaxOffset lands on 1:
//
//	out = (1-minOffset) * (v-min) / |max/maxOffset - min| + minOffset
//
// market_price borrows oracle_price's range so both share one scale.
func NormalizeMinMax(t *Table, specs []config.MetricSpec) ([]Scaled, error) {
	ranges := make([]valueRange, len(t.Series))
	for i, s := range t.Series {
		ranges[i], _ = bounds(s.Values)
	}
	if mi, oi := t.index(MetricMarketPrice), t.index(MetricOraclePrice); mi >= 0 && oi >= 0 {
		ranges[mi] = ranges[oi]
	}

	out := make([]Scaled, 0, len(t.Series))
	for i, s := range t.Series {
		spec, ok := config.FindMetric(specs, s.Name)
		if !ok || spec.MaxOffset == 0 {
			spec.MaxOffset = 1
		}
		lo, hi := ranges[i].min, ranges[i].max
		denom := math.Abs(hi/spec.MaxOffset - lo)
		if denom == 0 || math.IsNaN(denom) || math.IsInf(denom, 0) {
			return nil, &ZeroRangeError{Metric: s.Name, Min: lo, Max: hi}
		}
		values := make([]float64, len(s.Values))
		for j, v := range s.Values {
			values[j] = (1-spec.MinOffset)*(v-lo)/denom + spec.MinOffset
		}
		out = append(out, Scaled{Name: s.Name, Values: values, Mode: ModeMinMax})
	}
	return out, nil
}

// NormalizeMagnitude multiplies each series by 10^e, where e is the integer
// nearest to log10(globalMax/seriesMax). A series whose maximum is zero, or
// whose ratio to the global maximum is not positive, is left unscaled.
func NormalizeMagnitude(t *Table) []Scaled {
	maxima := make([]float64, len(t.Series))
	globalMax := math.Inf(-1)
	for i, s := range t.Series {
		maxima[i] = s.Max()
		if maxima[i] > globalMax {
			globalMax = maxima[i]
		}
	}
	out := make([]Scaled, 0, len(t.Series))
	for i, s := range t.Series {
		exp := MagnitudeExponent(globalMax, maxima[i])
		values := make([]float64, len(s.Values))
		for j, v := range s.Values {
			values[j] = shiftPow10(v, exp)
		}
		out = append(out, Scaled{Name: s.Name, Values: values, Exponent: exp, Mode: ModeMagnitude})
	}
	return out
}

// MagnitudeExponent returns round(log10(globalMax/localMax)), or 0 when
// that is undefined.
func MagnitudeExponent(globalMax, localMax float64) int {
	if localMax == 0 {
		return 0
	}
	ratio := globalMax / localMax
	if !(ratio > 0) || math.IsInf(ratio, 0) {
		return 0
	}
	return int(math.Round(math.Log10(ratio)))
}

func shiftPow10(v float64, exp int) float64 {
	if exp == 0 {
		return v
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v * math.Pow10(exp)
	}
	f, _ := decimal.NewFromFloat(v).Shift(int32(exp)).Float64()
	return f
}

func (t *Table) index(name string) int {
	for i, s := range t.Series {
		if s.Name == name {
			return i
		}
	}
	return -1
}

type valueRange struct {
	min, max float64
}

// bounds returns the range of the non-NaN values and how many there were.
func bounds(values []float64) (valueRange, int) {
	r := valueRange{min: math.Inf(1), max: math.Inf(-1)}
	n := 0
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		n++
		r.min = math.Min(r.min, v)
		r.max = math.Max(r.max, v)
	}
	if n == 0 {
		return valueRange{}, 0
	}
	return r, n
}
