package testsupport

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/botandrose/red-cap/pkg/dictionary"
	"github.com/botandrose/red-cap/pkg/record"
)

// SurveyDefinitions returns a small intake survey exercising every decode
// variant, an unknown field type, and each kind of associated field.
func SurveyDefinitions() []dictionary.FieldDefinition {
	return []dictionary.FieldDefinition{
		{Name: "record_id", FormName: "intake", Type: "text", Label: "Record ID", Identifier: true},
		{Name: "name", FormName: "intake", Type: "text", Label: "<b>Full</b> name", Required: true},
		{Name: "comments", FormName: "intake", Type: "notes", Label: "Comments"},
		{Name: "intro", FormName: "intake", Type: "descriptive", Label: "<p>Please answer honestly.</p>"},
		{Name: "consent", FormName: "intake", Type: "yesno", Label: "Do you consent?"},
		{Name: "gender", FormName: "intake", Type: "radio", Label: "Gender", Choices: "1,Male | 2,Female | 3,Other"},
		{Name: "conditions", FormName: "intake", Type: "checkboxes", Label: "Conditions", Choices: "1,Diabetes | 2,Hypertension | 3,Heart Disease"},
		{Name: "hobbies", FormName: "intake", Type: "checkboxes_with_other", Label: "Hobbies", Choices: "1,Reading | 2,Sports | 3,Other"},
		{Name: "hobbies_other", FormName: "intake", Type: "text", Label: "Other hobby", BranchingLogic: `[hobbies(3)]="1"`},
		{Name: "symptoms", FormName: "followup", Type: "checkboxes_with_radio_buttons_or_other", Label: "Symptoms", Choices: "1,Headache | 2,Fever | 3,Other"},
		{Name: "headache_severity", FormName: "followup", Type: "radio_buttons", Label: "Headache severity", Choices: "1,Mild | 2,Moderate | 3,Severe", BranchingLogic: `[symptoms(1)]="1"`},
		{Name: "symptoms_other", FormName: "followup", Type: "text", Label: "Other symptom", BranchingLogic: `[symptoms(3)]="1"`},
		{Name: "activities", FormName: "followup", Type: "checkboxes_with_checkboxes_or_other", Label: "Activities", Choices: "1,Outdoor | 2,Indoor | 501,Other"},
		{Name: "outdoor_types", FormName: "followup", Type: "checkboxes", Label: "Outdoor activities", Choices: "1,Hiking | 2,Cycling | 3,Swimming", BranchingLogic: `[activities(1)]="1"`},
		{Name: "activities_other", FormName: "followup", Type: "text", Label: "Other activity", BranchingLogic: `[activities(501)]="1"`},
		{Name: "document", FormName: "followup", Type: "file", Label: "Supporting document"},
		{Name: "bmi", FormName: "followup", Type: "calc", Label: "BMI", Choices: "[weight]/([height]*[height])"},
	}
}

// SurveyDictionary builds the survey dictionary.
func SurveyDictionary() *dictionary.Dictionary {
	return dictionary.MustNew(SurveyDefinitions()...)
}

// SurveyRecord returns a response to the survey.
func SurveyRecord() record.Record {
	return record.Record{
		"record_id":         "1",
		"name":              "John Doe",
		"comments":          "",
		"consent":           "1",
		"gender":            "1",
		"conditions___1":    "1",
		"conditions___2":    "0",
		"conditions___3":    "1",
		"hobbies___1":       "1",
		"hobbies___2":       "0",
		"hobbies___3":       "1",
		"hobbies_other":     "Custom hobby",
		"symptoms___1":      "1",
		"symptoms___2":      "1",
		"symptoms___3":      "0",
		"headache_severity": "2",
		"symptoms_other":    "",
		"activities___1":    "1",
		"activities___2":    "0",
		"activities___501":  "1",
		"outdoor_types___1": "1",
		"outdoor_types___2": "0",
		"outdoor_types___3": "1",
		"activities_other":  "Gardening",
		"document":          "scan.pdf",
		"bmi":               "22.4",
	}
}

// LoadDictionary parses a metadata export fixture.
func LoadDictionary(t *testing.T, path string) *dictionary.Dictionary {
	t.Helper()

	dict, err := LoadDictionaryFromPath(path)
	if err != nil {
		t.Fatalf("load dictionary: %v", err)
	}
	return dict
}

// LoadDictionaryFromPath returns a Dictionary without requiring testing.T.
func LoadDictionaryFromPath(path string) (*dictionary.Dictionary, error) {
	if path == "" {
		return nil, errors.New("testsupport: dictionary path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: read dictionary: %w", err)
	}
	return dictionary.Parse(data, path)
}

// LoadRecords parses a record export fixture.
func LoadRecords(t *testing.T, path string) []record.Record {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read records: %v", err)
	}
	records, err := record.DecodeSet(data, path)
	if err != nil {
		t.Fatalf("decode records: %v", err)
	}
	return records
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
