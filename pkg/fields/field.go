package fields

import (
	"github.com/botandrose/red-cap/pkg/dictionary"
	"github.com/botandrose/red-cap/pkg/record"
)

// Field binds one FieldDefinition to a decode Variant. Associated fields are
// sibling references owned by the Form that built them; they are set once by
// Associate and read-only afterwards, so a Field is safe for concurrent
// Decode calls.
type Field struct {
	def        dictionary.FieldDefinition
	variant    Variant
	choices    Choices
	malformed  []string
	associated []*Field
}

// New builds an unassociated Field. An invalid variant decodes as Text.
func New(def dictionary.FieldDefinition, variant Variant) *Field {
	if !variant.Valid() {
		variant = VariantText
	}
	choices, malformed := parseChoices(def.Choices)
	return &Field{
		def:       def,
		variant:   variant,
		choices:   choices,
		malformed: malformed,
	}
}

// WithVariant returns a copy of f decoding as variant, keeping the definition
// and the associated-field wiring.
func (f *Field) WithVariant(variant Variant) *Field {
	if !variant.Valid() || variant == f.variant {
		return f
	}
	clone := *f
	clone.variant = variant
	return &clone
}

// Name returns the field name.
func (f *Field) Name() string { return f.def.Name }

// Definition returns the underlying dictionary entry.
func (f *Field) Definition() dictionary.FieldDefinition { return f.def }

// Variant returns the decode behaviour.
func (f *Field) Variant() Variant { return f.variant }

// Type returns the declared field_type string, which can differ from
// Variant().String() for aliases and fallbacks.
func (f *Field) Type() string { return f.def.Type }

// Label returns the field label without markup.
func (f *Field) Label() string { return f.def.PlainLabel() }

// BranchingLogic returns the raw display condition.
func (f *Field) BranchingLogic() string { return f.def.BranchingLogic }

// Choices returns the parsed option list. Non-choice fields normally have
// none, but the list is parsed from the definition regardless of variant.
func (f *Field) Choices() Choices { return f.choices }

// MalformedChoices lists the raw pairs skipped while parsing choices.
func (f *Field) MalformedChoices() []string {
	return append([]string(nil), f.malformed...)
}

// AssociatedFields returns the fields whose branching logic targets one of
// f's choices, in dictionary order.
func (f *Field) AssociatedFields() []*Field {
	return append([]*Field(nil), f.associated...)
}

// AssociatedFor returns the associated fields shown when choice key is
// selected.
func (f *Field) AssociatedFor(key string) []*Field {
	want := CanonicalBranchingLogic(f.def.Name, key)
	var out []*Field
	for _, other := range f.associated {
		if normalizeLogic(other.def.BranchingLogic) == want {
			out = append(out, other)
		}
	}
	return out
}

// Decode turns the raw record into a typed Value. Missing keys decode to
// Absent; Decode never fails and never mutates the record.
func (f *Field) Decode(r record.Record, opts ...Option) Value {
	options := NewOptions(opts...)
	target := f
	if variant, ok := options.Variant(); ok {
		target = f.WithVariant(variant)
	}
	return target.decode(r, options)
}

func (f *Field) raw(r record.Record) (string, bool) {
	return r.Get(f.def.Name)
}

func (f *Field) selected(r record.Record) []Choice {
	var out []Choice
	for _, choice := range f.choices.items {
		if r.Checked(f.def.Name, choice.Key) {
			out = append(out, choice)
		}
	}
	return out
}

func (f *Field) otherTextField(key string) *Field {
	for _, candidate := range f.AssociatedFor(key) {
		if candidate.variant.TextLike() {
			return candidate
		}
	}
	return nil
}

func (f *Field) radioField(key string) *Field {
	for _, candidate := range f.AssociatedFor(key) {
		if candidate.variant.SingleChoice() {
			return candidate
		}
	}
	return nil
}

func (f *Field) checkboxFields(key string) []*Field {
	var out []*Field
	for _, candidate := range f.AssociatedFor(key) {
		if candidate.variant.MultiChoice() {
			out = append(out, candidate)
		}
	}
	return out
}
