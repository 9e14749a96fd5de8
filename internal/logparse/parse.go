package logparse

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"marketlog/internal/pkg/convert"
)

var errNotDataPoint = errors.New("line has no market data point tag")

// Payload extracts the structured part of a data point line: everything
// after the tag, with the nested struct names removed.
func Payload(line string) (string, bool) {
	idx := strings.Index(line, string(TagMarketDataPoint))
	if idx < 0 {
		return "", false
	}
	rest := line[idx+len(TagMarketDataPoint):]
	for _, noise := range payloadNoise {
		rest = strings.ReplaceAll(rest, noise, "")
	}
	return strings.TrimSpace(rest), true
}

// ParsePayload decodes a data point line into a DataPoint. The payload must
// be a flow mapping whose known fields match the data point schema.
func ParsePayload(line string) (DataPoint, error) {
	payload, ok := Payload(line)
	if !ok {
		return DataPoint{}, &ParseError{Payload: strings.TrimSpace(line), Err: errNotDataPoint}
	}
	dp, err := decodePayload(payload)
	if err != nil {
		return DataPoint{}, &ParseError{Payload: payload, Err: err}
	}
	return dp, nil
}

func decodePayload(payload string) (DataPoint, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(payload), &doc); err != nil {
		return DataPoint{}, fmt.Errorf("decode payload: %w", err)
	}
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return DataPoint{}, fmt.Errorf("payload is not a mapping")
	}

	dp := DataPoint{
		keys:   make([]string, 0, len(root.Content)/2),
		values: make(map[string]any, len(root.Content)/2),
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		key := root.Content[i].Value
		if _, dup := dp.values[key]; dup {
			return DataPoint{}, fmt.Errorf("duplicate key %q", key)
		}
		var raw any
		if err := root.Content[i+1].Decode(&raw); err != nil {
			return DataPoint{}, fmt.Errorf("decode %s: %w", key, err)
		}
		dp.keys = append(dp.keys, key)
		dp.values[key] = coerce(raw)
	}

	if err := validateSchema(dp.values); err != nil {
		return DataPoint{}, fmt.Errorf("schema: %w", err)
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "mapstructure",
		Result:  &dp.Layout,
	})
	if err != nil {
		return DataPoint{}, err
	}
	if err := dec.Decode(dp.values); err != nil {
		return DataPoint{}, fmt.Errorf("decode layout: %w", err)
	}
	return dp, nil
}

// coerce normalizes decoded YAML into float64 numbers, []any and
// map[string]any so that schema validation and comparisons see one shape.
func coerce(v any) any {
	if f, ok := convert.Number(v); ok {
		return f
	}
	switch t := v.(type) {
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = coerce(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = coerce(item)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[fmt.Sprint(k)] = coerce(item)
		}
		return out
	default:
		return v
	}
}
