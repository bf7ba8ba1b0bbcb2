// Package record holds the raw response records consumed by the decoder. A
// Record is one survey instance (or event) keyed by field name; multi-choice
// answers use composite keys of the form <field_name>___<choice_key>.
package record

import "strings"

// CheckboxSeparator joins a field name and a choice key in composite keys.
const CheckboxSeparator = "___"

// Record maps response keys to raw string values. It is never mutated by the
// decoder.
type Record map[string]string

// Get returns the raw value for key and whether it was present. A nil Record
// behaves like an empty one.
func (r Record) Get(key string) (string, bool) {
	if r == nil {
		return "", false
	}
	value, ok := r[key]
	return value, ok
}

// Value returns the raw value for key or the empty string.
func (r Record) Value(key string) string {
	value, _ := r.Get(key)
	return value
}

// Checked reports whether the composite checkbox key for fieldName and
// choiceKey holds "1".
func (r Record) Checked(fieldName, choiceKey string) bool {
	return r.Value(CheckboxKey(fieldName, choiceKey)) == "1"
}

// Clone returns a shallow copy safe for the caller to mutate.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// CheckboxKey builds the composite key <fieldName>___<choiceKey>.
func CheckboxKey(fieldName, choiceKey string) string {
	return fieldName + CheckboxSeparator + choiceKey
}

// SplitCheckboxKey reverses CheckboxKey. ok is false for plain keys.
func SplitCheckboxKey(key string) (fieldName, choiceKey string, ok bool) {
	idx := strings.LastIndex(key, CheckboxSeparator)
	if idx <= 0 || idx+len(CheckboxSeparator) >= len(key) {
		return "", "", false
	}
	return key[:idx], key[idx+len(CheckboxSeparator):], true
}
