// Package logparse filters a simulation engine log down to its tagged lines
// and decodes the market data point records it carries.
package logparse

import "strings"

// Tag is a substring that marks a log line as worth keeping.
type Tag string

const (
	TagMarketDataPoint   Tag = "INFO - MarketDataPoint"
	TagProgramDebug      Tag = "DEBUG - Program"
	TagTxError           Tag = "DEBUG - tx error:"
	TagTreeDump          Tag = "INFO - Tree:"
	TagInitialConditions Tag = "INFO - Initial Conditions:"
	TagSeed              Tag = "INFO - Seed for this run:"
)

// Tags lists every recognized tag. The data point tag is checked first.
var Tags = []Tag{
	TagMarketDataPoint,
	TagProgramDebug,
	TagTxError,
	TagTreeDump,
	TagInitialConditions,
	TagSeed,
}

// payloadNoise are struct names the engine's debug printer leaves inside
// nested values; they are dropped before decoding.
var payloadNoise = []string{"Instance", "PageInfo"}

// Classify returns the first recognized tag contained in line.
func Classify(line string) (Tag, bool) {
	for _, tag := range Tags {
		if strings.Contains(line, string(tag)) {
			return tag, true
		}
	}
	return "", false
}
