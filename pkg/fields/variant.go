package fields

// Variant selects the decode behaviour of a Field. The set is closed: adding a
// field type means adding a constant here, a registry entry and a decode arm.
type Variant int

const (
	VariantText Variant = iota
	VariantNotes
	VariantDescriptive
	VariantDropdown
	VariantSql
	VariantFile
	VariantYesno
	VariantRadioButtons
	VariantCheckboxes
	VariantCheckboxesWithOther
	VariantCheckboxesWithRadioButtonsOrOther
	VariantCheckboxesWithCheckboxesOrOther
)

var variantNames = [...]string{
	VariantText:                              "text",
	VariantNotes:                             "notes",
	VariantDescriptive:                       "descriptive",
	VariantDropdown:                          "dropdown",
	VariantSql:                               "sql",
	VariantFile:                              "file",
	VariantYesno:                             "yesno",
	VariantRadioButtons:                      "radio_buttons",
	VariantCheckboxes:                        "checkboxes",
	VariantCheckboxesWithOther:               "checkboxes_with_other",
	VariantCheckboxesWithRadioButtonsOrOther: "checkboxes_with_radio_buttons_or_other",
	VariantCheckboxesWithCheckboxesOrOther:   "checkboxes_with_checkboxes_or_other",
}

// Variants lists every variant in declaration order.
func Variants() []Variant {
	out := make([]Variant, len(variantNames))
	for i := range variantNames {
		out[i] = Variant(i)
	}
	return out
}

// Valid reports whether v is one of the declared variants.
func (v Variant) Valid() bool {
	return v >= 0 && int(v) < len(variantNames)
}

// String returns the canonical snake_case type name.
func (v Variant) String() string {
	if !v.Valid() {
		return "unknown"
	}
	return variantNames[v]
}

// TextLike reports whether the variant holds free text. Only text-like
// fields qualify as the "other, please specify" companion of a choice.
func (v Variant) TextLike() bool {
	return v == VariantText || v == VariantNotes
}

// SingleChoice reports whether the variant decodes one label from a choice
// list.
func (v Variant) SingleChoice() bool {
	return v == VariantRadioButtons
}

// MultiChoice reports whether the variant reads composite checkbox keys.
func (v Variant) MultiChoice() bool {
	switch v {
	case VariantCheckboxes,
		VariantCheckboxesWithOther,
		VariantCheckboxesWithRadioButtonsOrOther,
		VariantCheckboxesWithCheckboxesOrOther:
		return true
	default:
		return false
	}
}

// ChoiceBased reports whether decoding consults the parsed choice list.
func (v Variant) ChoiceBased() bool {
	return v.SingleChoice() || v.MultiChoice()
}
