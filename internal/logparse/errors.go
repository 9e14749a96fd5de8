package logparse

import (
	"fmt"

	"marketlog/internal/pkg/text"
)

// ParseError reports a data point line whose payload could not be decoded
// or does not match the data point schema.
type ParseError struct {
	Line    int
	Payload string
	Err     error
}

func (e *ParseError) Error() string {
	payload := text.Truncate(e.Payload, 120)
	if e.Line > 0 {
		return fmt.Sprintf("data point on line %d: %v (payload %q)", e.Line, e.Err, payload)
	}
	return fmt.Sprintf("data point: %v (payload %q)", e.Err, payload)
}

func (e *ParseError) Unwrap() error { return e.Err }
