package dataset

import (
	"fmt"

	"marketlog/internal/logparse"
)

// Row is one (time step, metric, value) triple of a long-form table.
type Row struct {
	Step   int
	Metric string
	Value  float64
}

// LongTable is the memory-mode table in long form. Rows are ordered by step,
// then by column.
type LongTable struct {
	Columns []string
	Rows    []Row
	Steps   int
}

// Series regroups the rows into one series per column.
func (lt *LongTable) Series() []Series {
	idx := make(map[string]int, len(lt.Columns))
	out := make([]Series, len(lt.Columns))
	for i, name := range lt.Columns {
		idx[name] = i
		out[i] = Series{Name: name, Values: make([]float64, 0, lt.Steps)}
	}
	for _, r := range lt.Rows {
		i := idx[r.Metric]
		out[i].Values = append(out[i].Values, r.Value)
	}
	return out
}

type column struct {
	name string
	get  func(logparse.DataPoint) (float64, bool)
}

// BuildMemoryTable lays every numeric field of each record side by side.
// Per-instance fields are reduced to their first instance, and the first
// instance's page ratios become one page_<k>_full_ratio column per page.
func BuildMemoryTable(points []logparse.DataPoint) (*LongTable, error) {
	if len(points) == 0 {
		return nil, ErrNoDataPoints
	}
	if err := ValidateShapes(points); err != nil {
		return nil, err
	}
	first := points[0]
	var cols []column
	for _, key := range first.Keys() {
		switch key {
		case logparse.FieldGCListLengths:
			cols = append(cols, firstInstance(key, func(l logparse.Layout) []float64 { return l.GCListLengths }))
		case logparse.FieldLongsDepths:
			cols = append(cols, firstInstance(key, func(l logparse.Layout) []float64 { return l.LongsDepths }))
		case logparse.FieldShortsDepths:
			cols = append(cols, firstInstance(key, func(l logparse.Layout) []float64 { return l.ShortsDepths }))
		case logparse.FieldPageFullRatios:
		default:
			if _, ok := first.Scalar(key); ok {
				name := key
				cols = append(cols, column{name: name, get: func(p logparse.DataPoint) (float64, bool) {
					return p.Scalar(name)
				}})
			}
		}
	}
	for k := range first.Layout.PageFullRatios[0] {
		page := k
		cols = append(cols, column{
			name: fmt.Sprintf("page_%d_full_ratio", page),
			get: func(p logparse.DataPoint) (float64, bool) {
				return p.Layout.PageFullRatios[0][page], true
			},
		})
	}

	lt := &LongTable{Steps: len(points), Columns: make([]string, len(cols))}
	for i, c := range cols {
		lt.Columns[i] = c.name
	}
	lt.Rows = make([]Row, 0, len(points)*len(cols))
	for step, p := range points {
		for _, c := range cols {
			v, ok := c.get(p)
			if !ok {
				return nil, &MissingMetricError{Metric: c.name, Index: step}
			}
			lt.Rows = append(lt.Rows, Row{Step: step, Metric: c.name, Value: v})
		}
	}
	return lt, nil
}

func firstInstance(name string, field func(logparse.Layout) []float64) column {
	return column{name: name, get: func(p logparse.DataPoint) (float64, bool) {
		return field(p.Layout)[0], true
	}}
}

// BuildStructuralSeries returns the overlays of the second memory figure:
// one series per page of the first instance, then long and short tree
// depths per instance. At most limit points are kept (limit <= 0: all).
func BuildStructuralSeries(points []logparse.DataPoint, limit int) ([]Series, error) {
	if len(points) == 0 {
		return nil, ErrNoDataPoints
	}
	if err := ValidateShapes(points); err != nil {
		return nil, err
	}
	n := len(points)
	if limit > 0 && limit < n {
		n = limit
	}
	window := points[:n]
	first := window[0].Layout

	var out []Series
	for k := range first.PageFullRatios[0] {
		values := make([]float64, n)
		for i, p := range window {
			values[i] = p.Layout.PageFullRatios[0][k]
		}
		out = append(out, Series{Name: fmt.Sprintf("page_full_ratios for page %d", k), Values: values})
	}
	out = append(out, perInstance(logparse.FieldLongsDepths, window, func(l logparse.Layout) []float64 { return l.LongsDepths })...)
	out = append(out, perInstance(logparse.FieldShortsDepths, window, func(l logparse.Layout) []float64 { return l.ShortsDepths })...)
	return out, nil
}

func perInstance(name string, window []logparse.DataPoint, field func(logparse.Layout) []float64) []Series {
	instances := len(field(window[0].Layout))
	out := make([]Series, 0, instances)
	for j := 0; j < instances; j++ {
		label := name
		if instances > 1 {
			label = fmt.Sprintf("%s instance %d", name, j)
		}
		values := make([]float64, len(window))
		for i, p := range window {
			values[i] = field(p.Layout)[j]
		}
		out = append(out, Series{Name: label, Values: values})
	}
	return out
}

// ValidateShapes checks that the first record carries every per-instance
// field with at least one instance, and that later records keep its shape.
func ValidateShapes(points []logparse.DataPoint) error {
	if len(points) == 0 {
		return ErrNoDataPoints
	}
	first := points[0]
	for _, name := range []string{
		logparse.FieldGCListLengths,
		logparse.FieldPageFullRatios,
		logparse.FieldLongsDepths,
		logparse.FieldShortsDepths,
	} {
		if !first.Has(name) {
			return &MissingMetricError{Metric: name, Index: 0}
		}
		if layoutLen(first.Layout, name) == 0 {
			return &ShapeError{Field: name, Index: 0, Want: 1, Got: 0}
		}
	}
	ref := first.Layout
	for i := 1; i < len(points); i++ {
		l := points[i].Layout
		checks := []struct {
			field     string
			want, got int
		}{
			{logparse.FieldGCListLengths, len(ref.GCListLengths), len(l.GCListLengths)},
			{logparse.FieldPageFullRatios, len(ref.PageFullRatios), len(l.PageFullRatios)},
			{logparse.FieldLongsDepths, len(ref.LongsDepths), len(l.LongsDepths)},
			{logparse.FieldShortsDepths, len(ref.ShortsDepths), len(l.ShortsDepths)},
		}
		for _, c := range checks {
			if c.want != c.got {
				return &ShapeError{Field: c.field, Index: i, Want: c.want, Got: c.got}
			}
		}
		for j := range ref.PageFullRatios {
			if want, got := len(ref.PageFullRatios[j]), len(l.PageFullRatios[j]); want != got {
				return &ShapeError{Field: fmt.Sprintf("%s[%d]", logparse.FieldPageFullRatios, j), Index: i, Want: want, Got: got}
			}
		}
	}
	return nil
}

func layoutLen(l logparse.Layout, name string) int {
	switch name {
	case logparse.FieldGCListLengths:
		return len(l.GCListLengths)
	case logparse.FieldPageFullRatios:
		return len(l.PageFullRatios)
	case logparse.FieldLongsDepths:
		return len(l.LongsDepths)
	case logparse.FieldShortsDepths:
		return len(l.ShortsDepths)
	}
	return 0
}
