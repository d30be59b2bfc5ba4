package question

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// bankSchemaDef is the JSON Schema every imported bank document must
// satisfy before any question reaches the engine.
var bankSchemaDef = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"questions": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":   map[string]any{"type": "string", "minLength": 1},
					"type": map[string]any{"enum": []any{"reading_comprehension", "text_completion", "sentence_equivalence"}},
					"skills": map[string]any{
						"type":     "array",
						"items":    map[string]any{"type": "string"},
						"minItems": 1,
					},
					"difficulty": map[string]any{"type": "integer", "minimum": 1, "maximum": 5},
					"stem":       map[string]any{"type": "string"},
					"options": map[string]any{
						"type": "array",
						"items": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"id":      map[string]any{"type": "string", "minLength": 1},
								"text":    map[string]any{"type": "string"},
								"correct": map[string]any{"type": "boolean"},
							},
							"required": []any{"id", "correct"},
						},
						"minItems": 2,
					},
				},
				"required": []any{"id", "type", "skills", "difficulty", "options"},
			},
		},
		"passages": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":   map[string]any{"type": "string", "minLength": 1},
					"text": map[string]any{"type": "string"},
				},
				"required": []any{"id"},
			},
		},
	},
	"required": []any{"questions"},
}

var (
	bankSchemaOnce sync.Once
	bankSchema     *jsonschema.Schema
	bankSchemaErr  error
)

func compiledBankSchema() (*jsonschema.Schema, error) {
	bankSchemaOnce.Do(func() {
		// The jsonschema compiler wants a parsed JSON value, so round-trip
		// the definition through encoding/json.
		b, err := json.Marshal(bankSchemaDef)
		if err != nil {
			bankSchemaErr = err
			return
		}
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(b))
		if err != nil {
			bankSchemaErr = err
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("bank.json", doc); err != nil {
			bankSchemaErr = err
			return
		}
		bankSchema, bankSchemaErr = c.Compile("bank.json")
	})
	return bankSchema, bankSchemaErr
}

// ValidateBankDocument checks a raw bank document against the schema.
func ValidateBankDocument(raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	schema, err := compiledBankSchema()
	if err != nil {
		return fmt.Errorf("compile bank schema: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return fmt.Errorf("bank document rejected: %w", err)
	}
	return nil
}
