package llm

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// SanitizeFieldJSON normalizes a raw inference response so it can validate
// against the field schema:
//   - strips markdown code fences some models wrap around JSON
//   - drops nulls, empty strings, and unknown keys
//   - coerces numeric amounts to 2-decimal strings
//   - trims the remaining string values
//
// It fails closed: undecodable input returns an error, never a partial doc.
func SanitizeFieldJSON(raw []byte) ([]byte, []string, error) {
	content := strings.TrimSpace(string(raw))
	if strings.Contains(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	}

	var m map[string]any
	if err := json.Unmarshal([]byte(content), &m); err != nil {
		return nil, nil, fmt.Errorf("sanitize: decode: %w", err)
	}

	dropped := make([]string, 0, 4)

	// amount may come back as a JSON number; keep it as decimal text
	if v, ok := m["amount"]; ok {
		switch t := v.(type) {
		case float64:
			m["amount"] = fmt.Sprintf("%.2f", t)
		case string:
			s := strings.TrimSpace(strings.TrimPrefix(t, "$"))
			if s == "" || strings.EqualFold(s, "null") {
				delete(m, "amount")
				dropped = append(dropped, "amount(empty)")
			} else if f, err := strconv.ParseFloat(s, 64); err == nil {
				m["amount"] = fmt.Sprintf("%.2f", f)
			} else {
				delete(m, "amount")
				dropped = append(dropped, "amount(unparsable)")
			}
		case nil:
			delete(m, "amount")
			dropped = append(dropped, "amount(null)")
		default:
			delete(m, "amount")
			dropped = append(dropped, "amount(type)")
		}
	}

	allowed := map[string]struct{}{
		"date": {}, "merchant": {}, "amount": {}, "category": {},
	}
	for k, v := range m {
		if _, ok := allowed[k]; !ok {
			delete(m, k)
			dropped = append(dropped, k+"(unknown)")
			continue
		}
		switch t := v.(type) {
		case nil:
			delete(m, k)
			dropped = append(dropped, k+"(null)")
		case string:
			s := strings.TrimSpace(t)
			if s == "" || strings.EqualFold(s, "null") {
				delete(m, k)
				dropped = append(dropped, k+"(empty)")
			} else {
				m[k] = s
			}
		}
	}

	out, err := json.Marshal(m)
	if err != nil {
		return nil, dropped, fmt.Errorf("sanitize: encode: %w", err)
	}
	return out, dropped, nil
}

// ParseFieldSet sanitizes, validates, and decodes a raw inference response.
func ParseFieldSet(raw []byte) (FieldSet, error) {
	cleaned, _, err := SanitizeFieldJSON(raw)
	if err != nil {
		return FieldSet{}, err
	}
	if err := ValidateJSONAgainstSchema(BuildFieldSchema(), cleaned); err != nil {
		return FieldSet{}, err
	}
	var fs FieldSet
	if err := json.Unmarshal(cleaned, &fs); err != nil {
		return FieldSet{}, fmt.Errorf("unmarshal fields: %w", err)
	}
	return fs, nil
}
