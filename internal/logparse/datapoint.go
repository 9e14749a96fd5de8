package logparse

import (
	"math"
	"slices"
)

// Structural field names of a data point.
const (
	FieldGCListLengths  = "gc_list_lengths"
	FieldPageFullRatios = "page_full_ratios"
	FieldLongsDepths    = "longs_depths"
	FieldShortsDepths   = "shorts_depths"
)

// Layout is the typed view of the per-instance memory fields: one entry per
// positions book instance, and for page ratios one inner entry per page.
type Layout struct {
	GCListLengths  []float64   `mapstructure:"gc_list_lengths"`
	PageFullRatios [][]float64 `mapstructure:"page_full_ratios"`
	LongsDepths    []float64   `mapstructure:"longs_depths"`
	ShortsDepths   []float64   `mapstructure:"shorts_depths"`
}

// DataPoint is one decoded market data record. Values keep the payload's
// key order; numbers are float64, nested sequences are []any.
type DataPoint struct {
	Layout Layout

	keys   []string
	values map[string]any
}

// Keys returns the payload keys in the order they were logged.
func (d DataPoint) Keys() []string {
	return slices.Clone(d.keys)
}

func (d DataPoint) Has(name string) bool {
	_, ok := d.values[name]
	return ok
}

// Value returns the raw decoded value for name.
func (d DataPoint) Value(name string) (any, bool) {
	v, ok := d.values[name]
	return v, ok
}

// Scalar returns name's value when it is a number.
func (d DataPoint) Scalar(name string) (float64, bool) {
	v, ok := d.values[name].(float64)
	return v, ok
}

// Equal compares two records key by key; NaN equals NaN.
func (d DataPoint) Equal(other DataPoint) bool {
	if !slices.Equal(d.keys, other.keys) {
		return false
	}
	for _, k := range d.keys {
		if !valuesEqual(d.values[k], other.values[k]) {
			return false
		}
	}
	return true
}

func valuesEqual(a, b any) bool {
	switch av := a.(type) {
	case float64:
		bv, ok := b.(float64)
		if !ok {
			return false
		}
		return av == bv || (math.IsNaN(av) && math.IsNaN(bv))
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !valuesEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			if !valuesEqual(v, bv[k]) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}
