package dictionary

// Attribute keys used by the metadata export. They double as the keys
// accepted by FromAttributes and emitted by FieldDefinition.Attributes.
const (
	AttrFieldName       = "field_name"
	AttrFormName        = "form_name"
	AttrSectionHeader   = "section_header"
	AttrFieldType       = "field_type"
	AttrFieldLabel      = "field_label"
	AttrChoices         = "select_choices_or_calculations"
	AttrFieldNote       = "field_note"
	AttrValidationType  = "text_validation_type_or_show_slider_number"
	AttrValidationMin   = "text_validation_min"
	AttrValidationMax   = "text_validation_max"
	AttrIdentifier      = "identifier"
	AttrBranchingLogic  = "branching_logic"
	AttrRequiredField   = "required_field"
	AttrCustomAlignment = "custom_alignment"
	AttrQuestionNumber  = "question_number"
	AttrMatrixGroupName = "matrix_group_name"
	AttrMatrixRanking   = "matrix_ranking"
	AttrFieldAnnotation = "field_annotation"
)

// Validation captures the text validation descriptor of a field. Min and Max
// are kept verbatim because the platform allows dates, times and numbers.
type Validation struct {
	Type string `json:"type,omitempty" yaml:"type,omitempty"`
	Min  string `json:"min,omitempty" yaml:"min,omitempty"`
	Max  string `json:"max,omitempty" yaml:"max,omitempty"`
}

// IsZero reports whether no validation was declared.
func (v Validation) IsZero() bool {
	return v.Type == "" && v.Min == "" && v.Max == ""
}

// FieldDefinition is one entry of the data dictionary. Choices holds the raw
// select_choices_or_calculations value: a pipe-delimited "key, label" list
// for choice fields or a calculation expression for calc fields.
type FieldDefinition struct {
	Name            string            `json:"field_name" yaml:"field_name"`
	FormName        string            `json:"form_name,omitempty" yaml:"form_name,omitempty"`
	SectionHeader   string            `json:"section_header,omitempty" yaml:"section_header,omitempty"`
	Type            string            `json:"field_type" yaml:"field_type"`
	Label           string            `json:"field_label,omitempty" yaml:"field_label,omitempty"`
	Choices         string            `json:"select_choices_or_calculations,omitempty" yaml:"select_choices_or_calculations,omitempty"`
	Note            string            `json:"field_note,omitempty" yaml:"field_note,omitempty"`
	Validation      Validation        `json:"validation,omitempty" yaml:"validation,omitempty"`
	Identifier      bool              `json:"identifier,omitempty" yaml:"identifier,omitempty"`
	BranchingLogic  string            `json:"branching_logic,omitempty" yaml:"branching_logic,omitempty"`
	Required        bool              `json:"required_field,omitempty" yaml:"required_field,omitempty"`
	CustomAlignment string            `json:"custom_alignment,omitempty" yaml:"custom_alignment,omitempty"`
	QuestionNumber  string            `json:"question_number,omitempty" yaml:"question_number,omitempty"`
	MatrixGroupName string            `json:"matrix_group_name,omitempty" yaml:"matrix_group_name,omitempty"`
	MatrixRanking   bool              `json:"matrix_ranking,omitempty" yaml:"matrix_ranking,omitempty"`
	Annotation      string            `json:"field_annotation,omitempty" yaml:"field_annotation,omitempty"`
	Extra           map[string]string `json:"extra,omitempty" yaml:"extra,omitempty"`
}
