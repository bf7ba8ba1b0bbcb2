package fields_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/botandrose/red-cap/pkg/dictionary"
	"github.com/botandrose/red-cap/pkg/fields"
	"github.com/botandrose/red-cap/pkg/record"
)

func associated(t *testing.T, list ...*fields.Field) map[string]*fields.Field {
	t.Helper()
	fields.Associate(list)
	out := make(map[string]*fields.Field, len(list))
	for _, f := range list {
		out[f.Name()] = f
	}
	return out
}

func names(list []*fields.Field) []string {
	var out []string
	for _, f := range list {
		out = append(out, f.Name())
	}
	return out
}

func TestAssociateIgnoresDeclarationOrder(t *testing.T) {
	t.Parallel()

	other := fields.New(dictionary.FieldDefinition{
		Name:           "hobbies_other",
		Type:           "text",
		BranchingLogic: `[hobbies(3)]="1"`,
	}, fields.VariantText)
	hobbies := fields.New(dictionary.FieldDefinition{
		Name:    "hobbies",
		Type:    "checkboxes_with_other",
		Choices: "1,Reading | 2,Sports | 3,Other",
	}, fields.VariantCheckboxesWithOther)

	byName := associated(t, other, hobbies)

	if diff := cmp.Diff([]string{"hobbies_other"}, names(byName["hobbies"].AssociatedFields())); diff != "" {
		t.Fatalf("associated mismatch (-want +got):\n%s", diff)
	}
	if len(byName["hobbies_other"].AssociatedFields()) != 0 {
		t.Fatalf("text field should not own associations")
	}
	if diff := cmp.Diff([]string{"hobbies_other"}, names(byName["hobbies"].AssociatedFor("3"))); diff != "" {
		t.Fatalf("AssociatedFor mismatch (-want +got):\n%s", diff)
	}
	if len(byName["hobbies"].AssociatedFor("1")) != 0 {
		t.Fatalf("choice 1 should have no associated fields")
	}
}

func TestAssociateRequiresCanonicalLogic(t *testing.T) {
	t.Parallel()

	owner := fields.New(dictionary.FieldDefinition{Name: "q", Choices: "1,A | 2,B"}, fields.VariantCheckboxes)

	tests := []struct {
		name  string
		logic string
		want  bool
	}{
		{name: "canonical", logic: `[q(1)]="1"`, want: true},
		{name: "surrounding whitespace", logic: "  [q(2)]=\"1\"\n", want: true},
		{name: "undeclared key", logic: `[q(9)]="1"`},
		{name: "compound", logic: `[q(1)]="1" and [q(2)]="1"`},
		{name: "unchecked", logic: `[q(1)]="0"`},
		{name: "inner spacing", logic: `[q(1)] = "1"`},
		{name: "other field", logic: `[p(1)]="1"`},
		{name: "empty", logic: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidate := fields.New(dictionary.FieldDefinition{Name: "c", BranchingLogic: tt.logic}, fields.VariantText)
			fields.Associate([]*fields.Field{owner, candidate})
			got := len(owner.AssociatedFields()) == 1
			if got != tt.want {
				t.Fatalf("associated = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAssociateIsIdempotent(t *testing.T) {
	t.Parallel()

	owner := fields.New(dictionary.FieldDefinition{Name: "q", Choices: "1,A"}, fields.VariantCheckboxesWithOther)
	text := fields.New(dictionary.FieldDefinition{Name: "q_other", BranchingLogic: `[q(1)]="1"`}, fields.VariantText)
	list := []*fields.Field{owner, text}

	fields.Associate(list)
	first := names(owner.AssociatedFields())
	fields.Associate(list)
	second := names(owner.AssociatedFields())

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("association changed (-first +second):\n%s", diff)
	}
}

func TestCheckboxesWithOtherDecode(t *testing.T) {
	t.Parallel()

	byName := associated(t,
		fields.New(dictionary.FieldDefinition{
			Name:    "hobbies",
			Type:    "checkboxes_with_other",
			Choices: "1,Reading | 2,Sports | 3,Other",
		}, fields.VariantCheckboxesWithOther),
		fields.New(dictionary.FieldDefinition{
			Name:           "hobbies_other",
			Type:           "text",
			BranchingLogic: `[hobbies(3)]="1"`,
		}, fields.VariantText),
	)

	r := record.Record{
		"hobbies___1":   "1",
		"hobbies___2":   "0",
		"hobbies___3":   "1",
		"hobbies_other": "Custom hobby",
	}

	got := byName["hobbies"].Decode(r)
	if diff := cmp.Diff(fields.ListValue("Reading", "Other: Custom hobby"), got); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}

	delete(r, "hobbies_other")
	got = byName["hobbies"].Decode(r)
	if diff := cmp.Diff(fields.ListValue("Reading", "Other: "), got); diff != "" {
		t.Fatalf("missing text mismatch (-want +got):\n%s", diff)
	}
}

func TestFallbackCompanionRendersAsOther(t *testing.T) {
	t.Parallel()

	variant, ok := fields.NewRegistry().Lookup("calc")
	if ok {
		t.Fatalf("calc should not be a registered type")
	}
	byName := associated(t,
		fields.New(dictionary.FieldDefinition{
			Name:    "hobbies",
			Type:    "checkboxes_with_other",
			Choices: "1,Reading | 2,Sports | 3,Other",
		}, fields.VariantCheckboxesWithOther),
		fields.New(dictionary.FieldDefinition{
			Name:           "hobby_count",
			Type:           "calc",
			BranchingLogic: `[hobbies(3)]="1"`,
		}, variant),
	)

	got := byName["hobbies"].Decode(record.Record{"hobbies___3": "1", "hobby_count": "2"})
	if diff := cmp.Diff(fields.ListValue("Other: 2"), got); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckboxesWithRadioButtonsOrOtherDecode(t *testing.T) {
	t.Parallel()

	byName := associated(t,
		fields.New(dictionary.FieldDefinition{
			Name:    "symptoms",
			Choices: "1,Headache | 2,Fever | 3,Other",
		}, fields.VariantCheckboxesWithRadioButtonsOrOther),
		fields.New(dictionary.FieldDefinition{
			Name:           "headache_severity",
			Choices:        "1,Mild | 2,Moderate | 3,Severe",
			BranchingLogic: `[symptoms(1)]="1"`,
		}, fields.VariantRadioButtons),
		fields.New(dictionary.FieldDefinition{
			Name:           "symptoms_other",
			BranchingLogic: `[symptoms(3)]="1"`,
		}, fields.VariantText),
	)

	r := record.Record{
		"symptoms___1":      "1",
		"symptoms___2":      "1",
		"symptoms___3":      "1",
		"headache_severity": "2",
		"symptoms_other":    "Dizziness",
	}

	want := fields.MapValue(
		fields.Entry{Key: "Headache", Value: fields.StringValue("Moderate")},
		fields.Entry{Key: "Fever", Value: fields.Absent()},
		fields.Entry{Key: "Other", Value: fields.StringValue("Dizziness")},
	)
	got := byName["symptoms"].Decode(r)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}

	encoded, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if diff := cmp.Diff(`{"Headache":"Moderate","Fever":null,"Other":"Dizziness"}`, string(encoded)); diff != "" {
		t.Fatalf("json mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckboxesWithCheckboxesOrOtherDecode(t *testing.T) {
	t.Parallel()

	byName := associated(t,
		fields.New(dictionary.FieldDefinition{
			Name:    "activities",
			Choices: "1,Outdoor | 2,Indoor | 501,Other",
		}, fields.VariantCheckboxesWithCheckboxesOrOther),
		fields.New(dictionary.FieldDefinition{
			Name:           "outdoor_types",
			Choices:        "1,Hiking | 2,Cycling | 3,Swimming",
			BranchingLogic: `[activities(1)]="1"`,
		}, fields.VariantCheckboxes),
		fields.New(dictionary.FieldDefinition{
			Name:           "indoor_other",
			BranchingLogic: `[activities(2)]="1"`,
		}, fields.VariantText),
		fields.New(dictionary.FieldDefinition{
			Name:           "activities_other",
			BranchingLogic: `[activities(501)]="1"`,
		}, fields.VariantText),
	)

	r := record.Record{
		"activities___1":    "1",
		"activities___2":    "1",
		"activities___501":  "1",
		"outdoor_types___1": "1",
		"outdoor_types___3": "1",
		"indoor_other":      "Chess",
		"activities_other":  "Gardening",
	}

	want := fields.MapValue(
		fields.Entry{Key: "Outdoor", Value: fields.ListValue("Hiking", "Swimming")},
		fields.Entry{Key: "Indoor", Value: fields.ListValue("Chess")},
		fields.Entry{Key: "Other", Value: fields.ListValue("Gardening")},
	)
	if diff := cmp.Diff(want, byName["activities"].Decode(r)); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}

	delete(r, "activities_other")
	r["activities___1"] = "0"
	r["activities___2"] = "0"
	want = fields.MapValue(fields.Entry{Key: "Other", Value: fields.ListValue()})
	if diff := cmp.Diff(want, byName["activities"].Decode(r)); diff != "" {
		t.Fatalf("missing other mismatch (-want +got):\n%s", diff)
	}
}

func TestSelfReferencingLogicDoesNotRecurse(t *testing.T) {
	t.Parallel()

	loop := fields.New(dictionary.FieldDefinition{
		Name:           "loop",
		Choices:        "1,Again",
		BranchingLogic: `[loop(1)]="1"`,
	}, fields.VariantCheckboxesWithCheckboxesOrOther)
	fields.Associate([]*fields.Field{loop})

	got := loop.Decode(record.Record{"loop___1": "1"})
	want := fields.MapValue(fields.Entry{Key: "Again", Value: fields.ListValue()})
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}
}
