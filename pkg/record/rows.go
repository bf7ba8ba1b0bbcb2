package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DecodeRows parses a JSON or YAML document holding an array of flat objects
// into string maps. Scalar values are coerced to strings: numbers keep their
// literal text, booleans become "1"/"0" and null becomes "". source only
// labels error messages.
func DecodeRows(data []byte, source string) ([]map[string]string, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("record: document %s is empty", source)
	}

	var raw []map[string]any
	if err := decodeJSON(data, &raw); err != nil {
		raw = nil
		if yamlErr := yaml.Unmarshal(data, &raw); yamlErr != nil {
			return nil, fmt.Errorf("record: parse %s: invalid JSON (%w) or YAML (%v)", source, err, yamlErr)
		}
	}

	rows := make([]map[string]string, 0, len(raw))
	for i, entry := range raw {
		row := make(map[string]string, len(entry))
		for key, value := range entry {
			str, err := stringify(value)
			if err != nil {
				return nil, fmt.Errorf("record: %s row %d key %q: %w", source, i, key, err)
			}
			row[key] = str
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// DecodeSet parses a JSON or YAML array of response records.
func DecodeSet(data []byte, source string) ([]Record, error) {
	rows, err := DecodeRows(data, source)
	if err != nil {
		return nil, err
	}
	out := make([]Record, len(rows))
	for i, row := range rows {
		out[i] = Record(row)
	}
	return out, nil
}

func decodeJSON(data []byte, out any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(out)
}

func stringify(value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	case bool:
		if v {
			return "1", nil
		}
		return "0", nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case map[string]any, []any:
		return "", fmt.Errorf("nested values are not supported")
	default:
		return strings.TrimSpace(fmt.Sprint(v)), nil
	}
}
