package form_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/botandrose/red-cap/pkg/dictionary"
	"github.com/botandrose/red-cap/pkg/fields"
	"github.com/botandrose/red-cap/pkg/form"
	"github.com/botandrose/red-cap/pkg/logging"
	"github.com/botandrose/red-cap/pkg/metrics"
	"github.com/botandrose/red-cap/pkg/record"
	"github.com/botandrose/red-cap/pkg/testsupport"
)

func TestFieldsFollowDictionaryOrder(t *testing.T) {
	t.Parallel()

	defs := testsupport.SurveyDefinitions()
	f := form.New(testsupport.SurveyDictionary())

	built := f.Fields()
	if len(built) != len(defs) {
		t.Fatalf("fields = %d, want %d", len(built), len(defs))
	}
	for i, field := range built {
		if field.Name() != defs[i].Name {
			t.Fatalf("field %d = %q, want %q", i, field.Name(), defs[i].Name)
		}
	}

	again := f.Fields()
	for i := range built {
		if built[i] != again[i] {
			t.Fatalf("field %d rebuilt between calls", i)
		}
	}
}

func TestNilDictionaryBuildsEmptyForm(t *testing.T) {
	t.Parallel()

	f := form.New(nil)
	if len(f.Fields()) != 0 {
		t.Fatalf("expected no fields")
	}
	result, err := f.Decode(record.Record{"x": "1"})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(result) != 0 {
		t.Fatalf("expected empty result, got %v", result.Names())
	}
}

func TestUnknownTypeFallsBackWithDiagnostic(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	f := form.New(
		dictionary.MustNew(
			dictionary.FieldDefinition{Name: "bmi", Type: "calc"},
			dictionary.FieldDefinition{Name: "mystery", Type: "unknown_type"},
			dictionary.FieldDefinition{Name: "name", Type: "text"},
		),
		form.WithLogger(logging.NewZapAdapter(zap.New(core))),
		form.WithMetrics(m),
	)

	f.Fields()
	f.Fields()

	for _, field := range f.Fields() {
		if field.Variant() != fields.VariantText {
			t.Fatalf("%s decodes as %s, want text", field.Name(), field.Variant())
		}
	}

	warnings := logs.FilterLevelExact(zapcore.WarnLevel).All()
	var got []string
	for _, entry := range warnings {
		got = append(got, entry.Message)
	}
	want := []string{
		"Unimplemented field type: calc. Falling back to Text.",
		"Unimplemented field type: unknown_type. Falling back to Text.",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("warnings mismatch (-want +got):\n%s", diff)
	}
	if name := warnings[1].ContextMap()["field_name"]; name != "mystery" {
		t.Fatalf("field_name = %v, want mystery", name)
	}
	if count := testutil.ToFloat64(m.TypeFallbacks.WithLabelValues("calc")); count != 1 {
		t.Fatalf("fallback counter = %v, want 1", count)
	}

	value, err := f.Get(record.Record{"mystery": "42"}, "mystery")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if diff := cmp.Diff(fields.StringValue("42"), value); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}
}

func TestMalformedChoicesAreLoggedAndSkipped(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	f := form.New(
		dictionary.MustNew(dictionary.FieldDefinition{Name: "q", Type: "radio", Choices: "1,Yes | broken | 2,No"}),
		form.WithLogger(logging.NewZapAdapter(zap.New(core))),
	)

	value, err := f.Get(record.Record{"q": "2"}, "q")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if diff := cmp.Diff(fields.StringValue("No"), value); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}

	entries := logs.FilterMessage("skipping malformed choice").All()
	if len(entries) != 1 {
		t.Fatalf("expected one malformed choice diagnostic, got %d", len(entries))
	}
	if pair := entries[0].ContextMap()["pair"]; pair != "broken" {
		t.Fatalf("pair = %v, want broken", pair)
	}
}

func TestGetUnknownFieldFails(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	f := form.New(testsupport.SurveyDictionary(), form.WithMetrics(m))

	_, err := f.Get(testsupport.SurveyRecord(), "nope")
	if !errors.Is(err, form.ErrFieldNotFound) {
		t.Fatalf("expected ErrFieldNotFound, got %v", err)
	}
	var notFound *form.FieldNotFoundError
	if !errors.As(err, &notFound) || notFound.Name != "nope" {
		t.Fatalf("expected FieldNotFoundError for nope, got %v", err)
	}
	if count := testutil.ToFloat64(m.FieldsNotFound); count != 1 {
		t.Fatalf("not found counter = %v, want 1", count)
	}

	value, err := f.Get(record.Record{}, "name")
	if err != nil {
		t.Fatalf("existing field without answer must not fail: %v", err)
	}
	if !value.IsAbsent() {
		t.Fatalf("expected absent, got %v", value)
	}
}

func TestGetTypeOverrideKeepsWiring(t *testing.T) {
	t.Parallel()

	f := form.New(testsupport.SurveyDictionary(), form.WithLogger(logging.NewTestLogger(t)))
	r := testsupport.SurveyRecord()

	plain, err := f.Get(r, "hobbies", fields.As(fields.VariantCheckboxes))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if diff := cmp.Diff(fields.ListValue("Reading", "Other"), plain); diff != "" {
		t.Fatalf("override mismatch (-want +got):\n%s", diff)
	}

	asMap, err := f.Get(r, "hobbies", fields.As(fields.VariantCheckboxesWithRadioButtonsOrOther))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	want := fields.MapValue(
		fields.Entry{Key: "Reading", Value: fields.Absent()},
		fields.Entry{Key: "Other", Value: fields.StringValue("Custom hobby")},
	)
	if diff := cmp.Diff(want, asMap); diff != "" {
		t.Fatalf("override mismatch (-want +got):\n%s", diff)
	}

	declared, err := f.Get(r, "hobbies")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if diff := cmp.Diff(fields.ListValue("Reading", "Other: Custom hobby"), declared); diff != "" {
		t.Fatalf("declared mismatch (-want +got):\n%s", diff)
	}
}

func TestYesnoDefaultThroughForm(t *testing.T) {
	t.Parallel()

	f := form.New(testsupport.SurveyDictionary())
	value, err := f.Get(record.Record{"consent": ""}, "consent", fields.WithDefault(fields.BoolValue(true)))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if diff := cmp.Diff(fields.BoolValue(true), value); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeWholeRecord(t *testing.T) {
	t.Parallel()

	f := form.New(testsupport.SurveyDictionary(), form.WithLogger(logging.NewTestLogger(t)))
	result, err := f.Bind(testsupport.SurveyRecord()).Decode()
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	want := form.Result{
		{Key: "record_id", Value: fields.StringValue("1")},
		{Key: "name", Value: fields.StringValue("John Doe")},
		{Key: "comments", Value: fields.StringValue("")},
		{Key: "intro", Value: fields.Absent()},
		{Key: "consent", Value: fields.BoolValue(true)},
		{Key: "gender", Value: fields.StringValue("Male")},
		{Key: "conditions", Value: fields.ListValue("Diabetes", "Heart Disease")},
		{Key: "hobbies", Value: fields.ListValue("Reading", "Other: Custom hobby")},
		{Key: "hobbies_other", Value: fields.StringValue("Custom hobby")},
		{Key: "symptoms", Value: fields.MapValue(
			fields.Entry{Key: "Headache", Value: fields.StringValue("Moderate")},
			fields.Entry{Key: "Fever", Value: fields.Absent()},
		)},
		{Key: "headache_severity", Value: fields.StringValue("Moderate")},
		{Key: "symptoms_other", Value: fields.StringValue("")},
		{Key: "activities", Value: fields.MapValue(
			fields.Entry{Key: "Outdoor", Value: fields.ListValue("Hiking", "Swimming")},
			fields.Entry{Key: "Other", Value: fields.ListValue("Gardening")},
		)},
		{Key: "outdoor_types", Value: fields.ListValue("Hiking", "Swimming")},
		{Key: "activities_other", Value: fields.StringValue("Gardening")},
		{Key: "document", Value: fields.StringValue("document")},
		{Key: "bmi", Value: fields.StringValue("22.4")},
	}
	if diff := cmp.Diff(want, result); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeSelectedNames(t *testing.T) {
	t.Parallel()

	f := form.New(testsupport.SurveyDictionary())
	r := testsupport.SurveyRecord()

	result, err := f.Decode(r, "gender", "consent")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	encoded, err := result.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if diff := cmp.Diff(`{"gender":"Male","consent":true}`, string(encoded)); diff != "" {
		t.Fatalf("json mismatch (-want +got):\n%s", diff)
	}
	if value, ok := result.Get("consent"); !ok || !value.Equal(fields.BoolValue(true)) {
		t.Fatalf("Get(consent) = %v, %v", value, ok)
	}

	if _, err := f.Decode(r, "gender", "missing"); !errors.Is(err, form.ErrFieldNotFound) {
		t.Fatalf("expected ErrFieldNotFound, got %v", err)
	}
}

func TestGetIsIdempotentAndConcurrent(t *testing.T) {
	t.Parallel()

	f := form.New(testsupport.SurveyDictionary(), form.WithLogger(logging.NewTestLogger(t)))
	r := testsupport.SurveyRecord()
	before := r.Clone()

	first, err := f.Get(r, "activities")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	var wg sync.WaitGroup
	results := make([]fields.Value, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = f.Get(r, "activities")
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		if diff := cmp.Diff(first, got); diff != "" {
			t.Fatalf("call %d differs (-first +got):\n%s", i, diff)
		}
	}
	if diff := cmp.Diff(before, r); diff != "" {
		t.Fatalf("record mutated (-before +after):\n%s", diff)
	}
}

func TestAssociationIndependentOfOrder(t *testing.T) {
	t.Parallel()

	defs := testsupport.SurveyDefinitions()
	reversed := make([]dictionary.FieldDefinition, len(defs))
	for i, def := range defs {
		reversed[len(defs)-1-i] = def
	}

	f := form.New(dictionary.MustNew(reversed...))
	value, err := f.Get(testsupport.SurveyRecord(), "hobbies")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if diff := cmp.Diff(fields.ListValue("Reading", "Other: Custom hobby"), value); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}

	owner, err := f.Field("hobbies")
	if err != nil {
		t.Fatalf("Field: %v", err)
	}
	other, err := f.Field("hobbies_other")
	if err != nil {
		t.Fatalf("Field: %v", err)
	}
	if len(other.AssociatedFields()) != 0 {
		t.Fatalf("association must not be reflexive")
	}
	if got := owner.AssociatedFor("3"); len(got) != 1 || got[0] != other {
		t.Fatalf("hobbies_other not associated with hobbies(3)")
	}
}
