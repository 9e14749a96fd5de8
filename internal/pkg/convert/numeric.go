// Package convert provides type conversion utilities.
package convert

import (
	"encoding/json"
	"math"
	"strings"
)

// Number reports v as a float64 when it already is a number. Strings are
// only accepted for the non-finite spellings a debug printer emits
// (NaN, inf, -inf).
func Number(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int8:
		return float64(t), true
	case int16:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint8:
		return float64(t), true
	case uint16:
		return float64(t), true
	case uint32:
		return float64(t), true
	case uint64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		return nonFinite(t)
	default:
		return 0, false
	}
}

func nonFinite(s string) (float64, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "nan", ".nan":
		return math.NaN(), true
	case "inf", "+inf", ".inf", "+.inf", "infinity":
		return math.Inf(1), true
	case "-inf", "-.inf", "-infinity":
		return math.Inf(-1), true
	default:
		return 0, false
	}
}
