package fields

import (
	"slices"

	"github.com/botandrose/red-cap/pkg/record"
)

// OtherChoiceKey is the choice key conventionally used for "Other" in
// checkbox-with-checkboxes fields. Detection stays structural; the key only
// decides precedence when it carries both kinds of associated fields.
const OtherChoiceKey = "501"

// decode dispatches on the variant. stack holds the names of fields being
// decoded further up so self-referencing branching logic cannot recurse.
func (f *Field) decode(r record.Record, options Options, stack ...string) Value {
	switch f.variant {
	case VariantFile:
		return f.decodeFile(r)
	case VariantYesno:
		return f.decodeYesno(r, options)
	case VariantRadioButtons:
		return f.decodeRadio(r)
	case VariantCheckboxes:
		return f.decodeCheckboxes(r)
	case VariantCheckboxesWithOther:
		return f.decodeCheckboxesWithOther(r, append(stack, f.def.Name))
	case VariantCheckboxesWithRadioButtonsOrOther:
		return f.decodeCheckboxesWithRadio(r, append(stack, f.def.Name))
	case VariantCheckboxesWithCheckboxesOrOther:
		return f.decodeCheckboxesWithCheckboxes(r, append(stack, f.def.Name))
	default:
		return f.decodeText(r)
	}
}

func (f *Field) decodeNested(r record.Record, stack []string) Value {
	if slices.Contains(stack, f.def.Name) {
		return Absent()
	}
	return f.decode(r, Options{}, stack...)
}

func (f *Field) decodeText(r record.Record) Value {
	raw, ok := f.raw(r)
	if !ok {
		return Absent()
	}
	return StringValue(raw)
}

func (f *Field) decodeFile(r record.Record) Value {
	raw, ok := f.raw(r)
	if !ok || raw == "" {
		return Absent()
	}
	return StringValue(f.def.Name)
}

func (f *Field) decodeYesno(r record.Record, options Options) Value {
	raw, ok := f.raw(r)
	if !ok {
		return Absent()
	}
	if raw == "" {
		if def, has := options.Default(); has {
			return def
		}
	}
	return BoolValue(raw == "1")
}

func (f *Field) decodeRadio(r record.Record) Value {
	raw, ok := f.raw(r)
	if !ok {
		return Absent()
	}
	label, found := f.choices.Label(raw)
	if !found {
		return Absent()
	}
	return StringValue(label)
}

func (f *Field) decodeCheckboxes(r record.Record) Value {
	selected := f.selected(r)
	labels := make([]string, 0, len(selected))
	for _, choice := range selected {
		labels = append(labels, choice.Label)
	}
	return ListValue(labels...)
}

func (f *Field) decodeCheckboxesWithOther(r record.Record, stack []string) Value {
	selected := f.selected(r)
	labels := make([]string, 0, len(selected))
	for _, choice := range selected {
		if other := f.otherTextField(choice.Key); other != nil {
			text := other.decodeNested(r, stack)
			labels = append(labels, choice.Label+": "+text.String())
			continue
		}
		labels = append(labels, choice.Label)
	}
	return ListValue(labels...)
}

func (f *Field) decodeCheckboxesWithRadio(r record.Record, stack []string) Value {
	selected := f.selected(r)
	entries := make([]Entry, 0, len(selected))
	for _, choice := range selected {
		value := Absent()
		if other := f.otherTextField(choice.Key); other != nil {
			value = other.decodeNested(r, stack)
		} else if radio := f.radioField(choice.Key); radio != nil {
			value = radio.decodeNested(r, stack)
		}
		entries = append(entries, Entry{Key: choice.Label, Value: value})
	}
	return MapValue(entries...)
}

func (f *Field) decodeCheckboxesWithCheckboxes(r record.Record, stack []string) Value {
	selected := f.selected(r)
	entries := make([]Entry, 0, len(selected))
	for _, choice := range selected {
		other := f.otherTextField(choice.Key)
		subFields := f.checkboxFields(choice.Key)

		items := []string{}
		switch {
		case other != nil && (choice.Key == OtherChoiceKey || len(subFields) == 0):
			if text, ok := other.decodeNested(r, stack).AsString(); ok {
				items = append(items, text)
			}
		default:
			for _, sub := range subFields {
				items = append(items, flatten(sub.decodeNested(r, stack))...)
			}
		}
		entries = append(entries, Entry{Key: choice.Label, Value: ListValue(items...)})
	}
	return MapValue(entries...)
}

// flatten reduces a nested checkbox answer to its labels. Map answers
// contribute their keys.
func flatten(v Value) []string {
	switch v.Kind() {
	case KindList:
		items, _ := v.AsList()
		return items
	case KindMap:
		entries, _ := v.AsMap()
		out := make([]string, 0, len(entries))
		for _, entry := range entries {
			out = append(out, entry.Key)
		}
		return out
	case KindString:
		s, _ := v.AsString()
		return []string{s}
	default:
		return nil
	}
}
