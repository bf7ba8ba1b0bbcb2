package dictionary

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingFieldName reports a definition without a field_name.
	ErrMissingFieldName = errors.New("dictionary: field name is required")
	// ErrDuplicateField reports two definitions sharing a field_name.
	ErrDuplicateField = errors.New("dictionary: duplicate field name")
)

// Dictionary is an ordered, name-unique collection of FieldDefinition. The
// order is the instrument display order. A Dictionary is read-only after New
// returns, so it can be shared between goroutines.
type Dictionary struct {
	definitions []FieldDefinition
	index       map[string]int
}

// New validates the definitions and builds a Dictionary. Names are trimmed
// before the uniqueness check.
func New(definitions ...FieldDefinition) (*Dictionary, error) {
	d := &Dictionary{
		definitions: make([]FieldDefinition, 0, len(definitions)),
		index:       make(map[string]int, len(definitions)),
	}
	for pos, def := range definitions {
		def.Name = strings.TrimSpace(def.Name)
		if def.Name == "" {
			return nil, fmt.Errorf("%w (entry %d)", ErrMissingFieldName, pos)
		}
		if _, exists := d.index[def.Name]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateField, def.Name)
		}
		def.Extra = cloneStringMap(def.Extra)
		d.index[def.Name] = len(d.definitions)
		d.definitions = append(d.definitions, def)
	}
	return d, nil
}

// MustNew panics when New fails. Intended for fixtures and init-time wiring.
func MustNew(definitions ...FieldDefinition) *Dictionary {
	d, err := New(definitions...)
	if err != nil {
		panic(err)
	}
	return d
}

// Len returns the number of definitions.
func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return len(d.definitions)
}

// Definitions returns a copy of the definitions in declaration order.
func (d *Dictionary) Definitions() []FieldDefinition {
	if d == nil {
		return nil
	}
	return append([]FieldDefinition(nil), d.definitions...)
}

// Lookup finds a definition by field name.
func (d *Dictionary) Lookup(name string) (FieldDefinition, bool) {
	if d == nil {
		return FieldDefinition{}, false
	}
	idx, ok := d.index[name]
	if !ok {
		return FieldDefinition{}, false
	}
	return d.definitions[idx], true
}

// Index returns the declaration position of name, or -1.
func (d *Dictionary) Index(name string) int {
	if d == nil {
		return -1
	}
	if idx, ok := d.index[name]; ok {
		return idx
	}
	return -1
}

// Names lists field names in declaration order.
func (d *Dictionary) Names() []string {
	if d == nil {
		return nil
	}
	names := make([]string, len(d.definitions))
	for i, def := range d.definitions {
		names[i] = def.Name
	}
	return names
}

// Forms lists the distinct instrument (form_name) values in first-seen order.
func (d *Dictionary) Forms() []string {
	if d == nil {
		return nil
	}
	seen := make(map[string]struct{})
	var out []string
	for _, def := range d.definitions {
		if def.FormName == "" {
			continue
		}
		if _, ok := seen[def.FormName]; ok {
			continue
		}
		seen[def.FormName] = struct{}{}
		out = append(out, def.FormName)
	}
	return out
}

// Subset returns a dictionary holding only the definitions belonging to the
// named instrument, preserving order.
func (d *Dictionary) Subset(formName string) *Dictionary {
	if d == nil {
		return MustNew()
	}
	var defs []FieldDefinition
	for _, def := range d.definitions {
		if def.FormName == formName {
			defs = append(defs, def)
		}
	}
	// names are already unique, New cannot fail here
	return MustNew(defs...)
}

func cloneStringMap(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
