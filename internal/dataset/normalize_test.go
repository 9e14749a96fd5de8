package dataset

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketlog/internal/config"
)

func table(series ...Series) *Table {
	t := &Table{Series: series}
	if len(series) > 0 {
		t.Len = len(series[0].Values)
	}
	return t
}

func TestMinMaxMapsMinimumToMinOffset(t *testing.T) {
	metrics := config.DefaultMetrics()
	tbl := table(
		Series{Name: "total_collateral", Values: []float64{5, 10, 20}},
		Series{Name: "rebalancing_funds", Values: []float64{-4, 0, 12}},
		Series{Name: "insurance_fund", Values: []float64{1e6, 3e6, 2e6}},
		Series{Name: "equilibrium_price", Values: []float64{80, 120, 95}},
	)
	scaled, err := NormalizeMinMax(tbl, metrics)
	require.NoError(t, err)
	require.Len(t, scaled, 4)

	for i, s := range scaled {
		spec, ok := config.FindMetric(metrics, s.Name)
		require.True(t, ok)
		lo := math.Inf(1)
		for _, v := range s.Values {
			lo = math.Min(lo, v)
		}
		assert.InDelta(t, spec.MinOffset, lo, 1e-12, s.Name)
		assert.Equal(t, ModeMinMax, s.Mode)
		assert.Equal(t, s.Name+" normalized", s.Label())
		assert.Len(t, s.Values, len(tbl.Series[i].Values))
	}

	// max/maxOffset maps to 1 when the series is otherwise unscaled
	assert.InDelta(t, 1.0, scaled[0].Values[2], 1e-12)
}

func TestMinMaxMarketPriceUsesOracleRange(t *testing.T) {
	metrics := config.DefaultMetrics()
	tbl := table(
		Series{Name: MetricMarketPrice, Values: []float64{90, 110}},
		Series{Name: MetricOraclePrice, Values: []float64{100, 200}},
	)
	scaled, err := NormalizeMinMax(tbl, metrics)
	require.NoError(t, err)

	// oracle range [100, 200], max offset 1.5, min offset 0.5
	denom := math.Abs(200/1.5 - 100)
	want := func(v float64) float64 { return 0.5*(v-100)/denom + 0.5 }
	assert.InDelta(t, want(90), scaled[0].Values[0], 1e-12)
	assert.InDelta(t, want(110), scaled[0].Values[1], 1e-12)
	assert.NotEqual(t, 0.5, scaled[0].Values[0], "market price must not use its own minimum")
	assert.InDelta(t, 0.5, scaled[1].Values[0], 1e-12)
}

func TestMinMaxZeroRange(t *testing.T) {
	tbl := table(Series{Name: "total_collateral", Values: []float64{3, 3}})
	_, err := NormalizeMinMax(tbl, config.DefaultMetrics())
	var ze *ZeroRangeError
	require.True(t, errors.As(err, &ze))
	assert.Equal(t, "total_collateral", ze.Metric)
	assert.Equal(t, 3.0, ze.Min)
}

func TestMinMaxUnknownMetricDefaults(t *testing.T) {
	tbl := table(Series{Name: "custom", Values: []float64{2, 4}})
	scaled, err := NormalizeMinMax(tbl, nil)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1}, scaled[0].Values)
}

func TestMagnitudeScaling(t *testing.T) {
	tbl := table(
		Series{Name: "v_pc_amount", Values: []float64{5e8, 1e9}},
		Series{Name: "market_price", Values: []float64{99.5, 123}},
		Series{Name: "equilibrium_price", Values: []float64{0.01, 0.05}},
		Series{Name: "insurance_fund", Values: []float64{0, 0}},
	)
	scaled := NormalizeMagnitude(tbl)
	require.Len(t, scaled, 4)

	globalMax := 1e9
	for i, s := range scaled {
		raw := tbl.Series[i]
		if raw.Max() != 0 {
			ratio := math.Log10(globalMax / raw.Max())
			assert.LessOrEqual(t, math.Abs(ratio-float64(s.Exponent)), 0.5, s.Name)
		}
		for j, v := range s.Values {
			want := raw.Values[j] * math.Pow10(s.Exponent)
			if want == 0 {
				assert.Equal(t, 0.0, v)
				continue
			}
			assert.InEpsilon(t, want, v, 1e-12, s.Name)
		}
		assert.Equal(t, ModeMagnitude, s.Mode)
	}
	assert.Equal(t, 0, scaled[0].Exponent)
	assert.Equal(t, 7, scaled[1].Exponent)
	assert.Equal(t, 10, scaled[2].Exponent)
	assert.Equal(t, 0, scaled[3].Exponent, "zero maximum keeps scale factor 1")
	assert.Equal(t, []float64{0, 0}, scaled[3].Values)
}

func TestMagnitudeExponent(t *testing.T) {
	assert.Equal(t, 0, MagnitudeExponent(150, 0))
	assert.Equal(t, 1, MagnitudeExponent(150, 20))
	assert.Equal(t, 0, MagnitudeExponent(150, -5))
	assert.Equal(t, 0, MagnitudeExponent(math.Inf(1), 3))
	assert.Equal(t, -2, MagnitudeExponent(1, 100))
}

func TestNormalizeDispatch(t *testing.T) {
	cfg := config.Default()
	tbl := table(Series{Name: "total_collateral", Values: []float64{1, 2}})

	scaled, err := Normalize(tbl, cfg)
	require.NoError(t, err)
	assert.Equal(t, ModeMagnitude, scaled[0].Mode)

	cfg.Plot.Transform = true
	scaled, err = Normalize(tbl, cfg)
	require.NoError(t, err)
	assert.Equal(t, ModeMinMax, scaled[0].Mode)
}

func TestSmooth(t *testing.T) {
	got := Smooth([]float64{1, 2, 3, 4}, 2)
	require.Len(t, got, 4)
	assert.True(t, math.IsNaN(got[0]))
	assert.InDelta(t, 1.5, got[1], 1e-12)
	assert.InDelta(t, 2.5, got[2], 1e-12)
	assert.InDelta(t, 3.5, got[3], 1e-12)

	assert.Equal(t, []float64{1, 2}, Smooth([]float64{1, 2}, 1))
	for _, v := range Smooth([]float64{1, 2}, 5) {
		assert.True(t, math.IsNaN(v))
	}
}
