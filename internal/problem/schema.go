package problem

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "schema://problem.json"

// Schema is the JSON schema for problem files accepted by `problem add --file`.
var Schema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"title": map[string]any{
			"type":      "string",
			"minLength": 1,
		},
		"description": map[string]any{
			"type":      "string",
			"minLength": 1,
		},
		"difficulty": map[string]any{
			"type": "string",
			"enum": []any{"Easy", "Medium", "Hard"},
		},
	},
	"required":             []any{"title", "description", "difficulty"},
	"additionalProperties": false,
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// AddResource wants a decoded JSON value, not Go literals.
		defBytes, err := json.Marshal(Schema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		var def any
		if err := json.Unmarshal(defBytes, &def); err != nil {
			compileErr = fmt.Errorf("parse schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
	})
	return compiled, compileErr
}

// Decode parses a problem from JSON, checking it against Schema first.
func Decode(raw []byte) (Problem, error) {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return Problem{}, fmt.Errorf("invalid JSON: %w", err)
	}

	sch, err := compiledSchema()
	if err != nil {
		return Problem{}, fmt.Errorf("compile problem schema: %w", err)
	}
	if err := sch.Validate(parsed); err != nil {
		return Problem{}, fmt.Errorf("schema validation failed: %w", err)
	}

	var p Problem
	if err := json.Unmarshal(raw, &p); err != nil {
		return Problem{}, fmt.Errorf("decode problem: %w", err)
	}
	return New(p.Title, p.Description, p.Difficulty)
}
