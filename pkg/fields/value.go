package fields

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Kind identifies the shape held by a Value.
type Kind uint8

const (
	KindAbsent Kind = iota
	KindBool
	KindString
	KindList
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return "unknown"
	}
}

// Value is the decoded answer of one field: absent, a boolean, a string, an
// ordered list of strings, or an ordered mapping from label to Value. The
// zero Value is absent. Values are immutable; accessors return copies.
type Value struct {
	kind    Kind
	b       bool
	s       string
	list    []string
	entries []Entry
}

// Entry is one label/value pair of a map Value.
type Entry struct {
	Key   string
	Value Value
}

// Absent returns the value of a field with no answer.
func Absent() Value { return Value{} }

// BoolValue wraps a boolean.
func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }

// StringValue wraps a string.
func StringValue(s string) Value { return Value{kind: KindString, s: s} }

// ListValue wraps an ordered list. A call without items yields an empty,
// non-absent list.
func ListValue(items ...string) Value {
	return Value{kind: KindList, list: append([]string{}, items...)}
}

// MapValue wraps ordered entries.
func MapValue(entries ...Entry) Value {
	return Value{kind: KindMap, entries: append([]Entry{}, entries...)}
}

// Kind returns the value's shape.
func (v Value) Kind() Kind { return v.kind }

// IsAbsent reports whether the field had no answer.
func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

// AsBool returns the boolean and whether v holds one.
func (v Value) AsBool() (bool, bool) {
	return v.b, v.kind == KindBool
}

// AsString returns the string and whether v holds one.
func (v Value) AsString() (string, bool) {
	return v.s, v.kind == KindString
}

// AsList returns a copy of the list and whether v holds one.
func (v Value) AsList() ([]string, bool) {
	if v.kind != KindList {
		return nil, false
	}
	return append([]string{}, v.list...), true
}

// AsMap returns a copy of the entries and whether v holds a map.
func (v Value) AsMap() ([]Entry, bool) {
	if v.kind != KindMap {
		return nil, false
	}
	return append([]Entry{}, v.entries...), true
}

// Lookup finds the entry for key in a map Value.
func (v Value) Lookup(key string) (Value, bool) {
	for _, entry := range v.entries {
		if entry.Key == key {
			return entry.Value, true
		}
	}
	return Value{}, false
}

// Equal reports deep equality, including entry order.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindAbsent:
		return true
	case KindBool:
		return v.b == other.b
	case KindString:
		return v.s == other.s
	case KindList:
		if len(v.list) != len(other.list) {
			return false
		}
		for i := range v.list {
			if v.list[i] != other.list[i] {
				return false
			}
		}
		return true
	case KindMap:
		if len(v.entries) != len(other.entries) {
			return false
		}
		for i := range v.entries {
			if v.entries[i].Key != other.entries[i].Key || !v.entries[i].Value.Equal(other.entries[i].Value) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Interface converts v to plain Go values: nil, bool, string, []string or
// map[string]any. Map order is lost; use MarshalJSON to keep it.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindString:
		return v.s
	case KindList:
		return append([]string{}, v.list...)
	case KindMap:
		out := make(map[string]any, len(v.entries))
		for _, entry := range v.entries {
			out[entry.Key] = entry.Value.Interface()
		}
		return out
	default:
		return nil
	}
}

// String renders v for humans. Absent renders as the empty string.
func (v Value) String() string {
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindString:
		return v.s
	case KindList:
		return strings.Join(v.list, ", ")
	case KindMap:
		parts := make([]string, 0, len(v.entries))
		for _, entry := range v.entries {
			parts = append(parts, entry.Key+": "+entry.Value.String())
		}
		return strings.Join(parts, "; ")
	default:
		return ""
	}
}

// MarshalJSON encodes v; maps become objects with keys in entry order.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindBool:
		return json.Marshal(v.b)
	case KindString:
		return json.Marshal(v.s)
	case KindList:
		return json.Marshal(append([]string{}, v.list...))
	case KindMap:
		var buf bytes.Buffer
		buf.WriteByte('{')
		for i, entry := range v.entries {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(entry.Key)
			if err != nil {
				return nil, err
			}
			buf.Write(key)
			buf.WriteByte(':')
			val, err := entry.Value.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(val)
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil
	default:
		return []byte("null"), nil
	}
}
