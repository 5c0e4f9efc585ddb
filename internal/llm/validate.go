package llm

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// schemaCache holds compiled schemas keyed by *Schema. Schemas are
// package-level values, so the pointer identifies the definition even
// when two of them share a Name.
var schemaCache sync.Map // map[*Schema]*jsonschema.Schema

// ValidateJSON validates raw JSON against schema using the same compiled
// schema cache as provider responses. It is used for free-text responses
// that are parsed after the fact.
func ValidateJSON(schema *Schema, raw json.RawMessage) error {
	return validateResponse(schema, raw)
}

// validateResponse checks raw against schema. A nil schema accepts
// anything; every failure is an *ErrInvalidResponse carrying raw.
func validateResponse(schema *Schema, raw json.RawMessage) error {
	if schema == nil {
		return nil
	}

	invalid := func(format string, args ...any) error {
		return &ErrInvalidResponse{Content: raw, Err: fmt.Errorf(format, args...)}
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return invalid("invalid JSON: %w", err)
	}
	compiled, err := getCompiledSchema(schema)
	if err != nil {
		return invalid("compile schema %q: %w", schema.Name, err)
	}
	if err := compiled.Validate(parsed); err != nil {
		return invalid("does not match %s: %w", schema.Name, err)
	}
	return nil
}

func getCompiledSchema(schema *Schema) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(schema); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The compiler wants plain JSON values ([]any, float64), so Go
	// literals such as OptionsPerQuestion go through a JSON round trip.
	defBytes, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s.json", schema.Name)
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}

	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	actual, _ := schemaCache.LoadOrStore(schema, compiled)
	return actual.(*jsonschema.Schema), nil
}
