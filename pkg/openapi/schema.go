package openapi

import (
	"context"
	"errors"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/botandrose/red-cap/pkg/fields"
	"github.com/botandrose/red-cap/pkg/form"
)

// RecordSchemaName is the component name of the whole-record schema.
const RecordSchemaName = "Record"

// FieldSchema describes the decoded value of one field. Every schema is
// nullable because a missing answer decodes to null.
func FieldSchema(field *fields.Field) *openapi3.Schema {
	var schema *openapi3.Schema
	labels := choiceLabels(field)

	switch field.Variant() {
	case fields.VariantYesno:
		schema = openapi3.NewBoolSchema()
	case fields.VariantFile:
		schema = openapi3.NewStringSchema()
		schema.Description = "Field name when a file is attached."
	case fields.VariantRadioButtons:
		schema = openapi3.NewStringSchema()
		if len(labels) > 0 {
			schema = schema.WithEnum(labels...)
		}
	case fields.VariantCheckboxes:
		items := openapi3.NewStringSchema()
		if len(labels) > 0 {
			items = items.WithEnum(labels...)
		}
		schema = openapi3.NewArraySchema().WithItems(items)
	case fields.VariantCheckboxesWithOther:
		schema = openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema())
	case fields.VariantCheckboxesWithRadioButtonsOrOther:
		schema = openapi3.NewObjectSchema()
		for _, choice := range field.Choices().Items() {
			schema = schema.WithProperty(choice.Label, openapi3.NewStringSchema().WithNullable())
		}
	case fields.VariantCheckboxesWithCheckboxesOrOther:
		schema = openapi3.NewObjectSchema()
		for _, choice := range field.Choices().Items() {
			schema = schema.WithProperty(choice.Label, openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema()))
		}
	default:
		schema = openapi3.NewStringSchema()
	}

	schema.Title = field.Label()
	return schema.WithNullable()
}

// RecordSchema describes the object produced by Form.Decode.
func RecordSchema(f *form.Form) *openapi3.Schema {
	return objectSchema(f.Fields())
}

// InstrumentSchema describes the fields of one instrument (form_name).
func InstrumentSchema(f *form.Form, formName string) *openapi3.Schema {
	var subset []*fields.Field
	for _, field := range f.Fields() {
		if field.Definition().FormName == formName {
			subset = append(subset, field)
		}
	}
	return objectSchema(subset)
}

func objectSchema(list []*fields.Field) *openapi3.Schema {
	schema := openapi3.NewObjectSchema()
	for _, field := range list {
		schema = schema.WithProperty(field.Name(), FieldSchema(field))
	}
	return schema
}

// Document wraps the record schema, plus one schema per instrument, in an
// OpenAPI document. The document has no paths.
func Document(ctx context.Context, f *form.Form, title, version string) (*openapi3.T, error) {
	if f == nil {
		return nil, errors.New("openapi: form is required")
	}
	if title == "" {
		title = "REDCap records"
	}
	if version == "" {
		version = "1.0.0"
	}

	schemas := openapi3.Schemas{
		RecordSchemaName: openapi3.NewSchemaRef("", RecordSchema(f)),
	}
	for _, name := range f.Dictionary().Forms() {
		if name == "" || name == RecordSchemaName {
			continue
		}
		schemas[name] = openapi3.NewSchemaRef("", InstrumentSchema(f, name))
	}

	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:   title,
			Version: version,
		},
		Paths:      openapi3.NewPaths(),
		Components: &openapi3.Components{Schemas: schemas},
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("openapi: validate document: %w", err)
	}
	return doc, nil
}

func choiceLabels(field *fields.Field) []any {
	items := field.Choices().Items()
	if len(items) == 0 {
		return nil
	}
	out := make([]any, len(items))
	for i, choice := range items {
		out[i] = choice.Label
	}
	return out
}
