// Package config collects the reader's numeric limits into one overridable
// place, validated against an embedded JSON Schema when loaded from a file,
// the way the teacher's schema-backed configuration types validate ahead of
// use rather than failing deep inside unrelated code.
package config

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Limits bounds the reader's resource usage. The zero value is not valid;
// use Default or LoadLimits.
type Limits struct {
	// MaxTokenLen bounds a plain token's length, in codepoints.
	MaxTokenLen uint32
	// MaxStringLen bounds a string payload's length, in codepoints.
	MaxStringLen uint32
	// MaxCurlyDepth bounds how deeply curly-string braces may nest.
	MaxCurlyDepth uint32
	// MaxArrayElems bounds the element count of a single array.
	MaxArrayElems uint32
	// MaxArrayDepth bounds how many arrays may be open at once.
	MaxArrayDepth uint32
	// MaxGroupDepth bounds how deeply parentheses may nest within one
	// array (or at the top level).
	MaxGroupDepth uint32
}

// Default returns the reference implementation's own limits: string and
// token length capped at 65535, array-stack depth at 1024, and curly
// nesting, array element count, and group nesting at the largest value a
// signed 32-bit counter can hold.
func Default() Limits {
	return Limits{
		MaxTokenLen:   65535,
		MaxStringLen:  65535,
		MaxCurlyDepth: math.MaxInt32,
		MaxArrayElems: math.MaxInt32,
		MaxArrayDepth: 1024,
		MaxGroupDepth: math.MaxInt32,
	}
}

const limitsSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "maxTokenLen":   {"type": "integer", "minimum": 1},
    "maxStringLen":  {"type": "integer", "minimum": 1},
    "maxCurlyDepth": {"type": "integer", "minimum": 1},
    "maxArrayElems": {"type": "integer", "minimum": 1},
    "maxArrayDepth": {"type": "integer", "minimum": 1},
    "maxGroupDepth": {"type": "integer", "minimum": 1}
  }
}`

var limitsSchema = mustCompileSchema()

func mustCompileSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("limits.json", strings.NewReader(limitsSchemaJSON)); err != nil {
		panic(fmt.Sprintf("config: invalid embedded schema: %v", err))
	}
	return compiler.MustCompile("limits.json")
}

type overrides struct {
	MaxTokenLen   *uint32 `json:"maxTokenLen"`
	MaxStringLen  *uint32 `json:"maxStringLen"`
	MaxCurlyDepth *uint32 `json:"maxCurlyDepth"`
	MaxArrayElems *uint32 `json:"maxArrayElems"`
	MaxArrayDepth *uint32 `json:"maxArrayDepth"`
	MaxGroupDepth *uint32 `json:"maxGroupDepth"`
}

// LoadLimits validates data (a JSON document of limit overrides) against
// the embedded schema, then applies whichever fields it sets on top of
// Default.
func LoadLimits(data []byte) (Limits, error) {
	var generic interface{}
	if err := json.Unmarshal(data, &generic); err != nil {
		return Limits{}, fmt.Errorf("config: invalid JSON: %w", err)
	}
	if err := limitsSchema.Validate(generic); err != nil {
		return Limits{}, fmt.Errorf("config: limits document rejected: %w", err)
	}
	var o overrides
	if err := json.Unmarshal(data, &o); err != nil {
		return Limits{}, fmt.Errorf("config: invalid JSON: %w", err)
	}
	limits := Default()
	if o.MaxTokenLen != nil {
		limits.MaxTokenLen = *o.MaxTokenLen
	}
	if o.MaxStringLen != nil {
		limits.MaxStringLen = *o.MaxStringLen
	}
	if o.MaxCurlyDepth != nil {
		limits.MaxCurlyDepth = *o.MaxCurlyDepth
	}
	if o.MaxArrayElems != nil {
		limits.MaxArrayElems = *o.MaxArrayElems
	}
	if o.MaxArrayDepth != nil {
		limits.MaxArrayDepth = *o.MaxArrayDepth
	}
	if o.MaxGroupDepth != nil {
		limits.MaxGroupDepth = *o.MaxGroupDepth
	}
	return limits, nil
}
