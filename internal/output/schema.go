package output

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// recordSchema mirrors ProcessingRecord. Every record is checked against it
// before being persisted, so a malformed record can never reach disk.
func recordSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []any{"id", "extracted_fields", "confidence_score", "processed_at", "status"},
		"properties": map[string]any{
			"id": map[string]any{"type": "string", "minLength": 36, "maxLength": 36},
			"extracted_fields": map[string]any{
				"type":                 "object",
				"additionalProperties": map[string]any{"type": "string"},
			},
			"confidence_score": map[string]any{"type": "number", "minimum": 0, "maximum": 100},
			"processed_at":     map[string]any{"type": "string"},
			"status":           map[string]any{"enum": []any{"success", "partial"}},
		},
	}
}

// ValidateRecordJSON validates serialized record bytes against the record schema.
func ValidateRecordJSON(data []byte) error {
	return validateJSONAgainstSchema(recordSchema(), data)
}

// validateJSONAgainstSchema validates "data" against "schemaMap".
func validateJSONAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
