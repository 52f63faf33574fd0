package llm

// BuildFieldSchema returns a JSON-Schema (draft 2020-12 subset) as a generic
// map. It is sent to the inference service as the expected response shape and
// used locally to validate what comes back. All four fields are optional:
// absence is propagated, never defaulted.
func BuildFieldSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"date":     map[string]any{"type": "string", "pattern": `^\d{4}-\d{2}-\d{2}$`},
			"merchant": map[string]any{"type": "string", "minLength": 1, "maxLength": 200},
			"amount":   map[string]any{"type": "string", "pattern": `^\d+(\.\d{1,2})?$`},
			"category": map[string]any{"type": "string", "minLength": 1},
		},
		"required": []string{},
	}
}
