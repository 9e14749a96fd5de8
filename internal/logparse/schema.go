package logparse

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema/datapoint.schema.json
var dataPointSchemaJSON []byte

var (
	schemaOnce     sync.Once
	schemaCompiled *jsonschema.Schema
	schemaErr      error
)

func dataPointSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("datapoint.schema.json", bytes.NewReader(dataPointSchemaJSON)); err != nil {
			schemaErr = fmt.Errorf("load data point schema: %w", err)
			return
		}
		schemaCompiled, schemaErr = compiler.Compile("datapoint.schema.json")
	})
	return schemaCompiled, schemaErr
}

// validateSchema checks a coerced payload (float64 numbers, []any, map[string]any)
// against the embedded data point schema.
func validateSchema(values map[string]any) error {
	schema, err := dataPointSchema()
	if err != nil {
		return err
	}
	return schema.Validate(values)
}
