package dictionary

import "strings"

var knownAttributes = map[string]struct{}{
	AttrFieldName:       {},
	AttrFormName:        {},
	AttrSectionHeader:   {},
	AttrFieldType:       {},
	AttrFieldLabel:      {},
	AttrChoices:         {},
	AttrFieldNote:       {},
	AttrValidationType:  {},
	AttrValidationMin:   {},
	AttrValidationMax:   {},
	AttrIdentifier:      {},
	AttrBranchingLogic:  {},
	AttrRequiredField:   {},
	AttrCustomAlignment: {},
	AttrQuestionNumber:  {},
	AttrMatrixGroupName: {},
	AttrMatrixRanking:   {},
	AttrFieldAnnotation: {},
}

// DefinitionFromAttributes maps one metadata export row onto a
// FieldDefinition. Keys outside the known attribute set are kept in Extra.
func DefinitionFromAttributes(attrs map[string]string) FieldDefinition {
	def := FieldDefinition{
		Name:            strings.TrimSpace(attrs[AttrFieldName]),
		FormName:        attrs[AttrFormName],
		SectionHeader:   attrs[AttrSectionHeader],
		Type:            strings.TrimSpace(attrs[AttrFieldType]),
		Label:           attrs[AttrFieldLabel],
		Choices:         attrs[AttrChoices],
		Note:            attrs[AttrFieldNote],
		BranchingLogic:  attrs[AttrBranchingLogic],
		CustomAlignment: attrs[AttrCustomAlignment],
		QuestionNumber:  attrs[AttrQuestionNumber],
		MatrixGroupName: attrs[AttrMatrixGroupName],
		Annotation:      attrs[AttrFieldAnnotation],
		Identifier:      parseFlag(attrs[AttrIdentifier]),
		Required:        parseFlag(attrs[AttrRequiredField]),
		MatrixRanking:   parseFlag(attrs[AttrMatrixRanking]),
		Validation: Validation{
			Type: attrs[AttrValidationType],
			Min:  attrs[AttrValidationMin],
			Max:  attrs[AttrValidationMax],
		},
	}
	for key, value := range attrs {
		if _, known := knownAttributes[key]; known {
			continue
		}
		if def.Extra == nil {
			def.Extra = make(map[string]string)
		}
		def.Extra[key] = value
	}
	return def
}

// FromAttributes builds a Dictionary from an ordered metadata export.
func FromAttributes(rows []map[string]string) (*Dictionary, error) {
	defs := make([]FieldDefinition, 0, len(rows))
	for _, row := range rows {
		defs = append(defs, DefinitionFromAttributes(row))
	}
	return New(defs...)
}

// Attributes renders the definition back into the export's string map form.
// Empty attributes are omitted; flags render as "y".
func (f FieldDefinition) Attributes() map[string]string {
	out := make(map[string]string, len(knownAttributes)+len(f.Extra))
	for k, v := range f.Extra {
		out[k] = v
	}
	set := func(key, value string) {
		if value != "" {
			out[key] = value
		}
	}
	set(AttrFieldName, f.Name)
	set(AttrFormName, f.FormName)
	set(AttrSectionHeader, f.SectionHeader)
	set(AttrFieldType, f.Type)
	set(AttrFieldLabel, f.Label)
	set(AttrChoices, f.Choices)
	set(AttrFieldNote, f.Note)
	set(AttrValidationType, f.Validation.Type)
	set(AttrValidationMin, f.Validation.Min)
	set(AttrValidationMax, f.Validation.Max)
	set(AttrIdentifier, formatFlag(f.Identifier))
	set(AttrBranchingLogic, f.BranchingLogic)
	set(AttrRequiredField, formatFlag(f.Required))
	set(AttrCustomAlignment, f.CustomAlignment)
	set(AttrQuestionNumber, f.QuestionNumber)
	set(AttrMatrixGroupName, f.MatrixGroupName)
	set(AttrMatrixRanking, formatFlag(f.MatrixRanking))
	set(AttrFieldAnnotation, f.Annotation)
	return out
}

func parseFlag(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "y", "yes", "1", "true":
		return true
	default:
		return false
	}
}

func formatFlag(v bool) string {
	if v {
		return "y"
	}
	return ""
}
