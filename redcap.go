// Package redcap decodes REDCap survey records into typed values using the
// project's data dictionary.
//
// The usual flow loads a metadata export, builds a Form, and asks it for
// values:
//
//	loader := redcap.NewLoader()
//	f, err := redcap.LoadForm(ctx, loader, dictionary.SourceFromFile("metadata.json"))
//	value, err := f.Get(record, "gender")
package redcap

import (
	"context"
	"errors"
	"fmt"

	internalLoader "github.com/botandrose/red-cap/internal/loader"
	"github.com/botandrose/red-cap/pkg/dictionary"
	"github.com/botandrose/red-cap/pkg/fields"
	"github.com/botandrose/red-cap/pkg/form"
	"github.com/botandrose/red-cap/pkg/record"
)

type (
	Form            = form.Form
	Dictionary      = dictionary.Dictionary
	FieldDefinition = dictionary.FieldDefinition
	Record          = record.Record
	Value           = fields.Value
	Variant         = fields.Variant
)

// ErrFieldNotFound is returned by Form.Get for names missing from the
// dictionary.
var ErrFieldNotFound = form.ErrFieldNotFound

// NewLoader constructs a loader using the internal implementation while keeping
// the concrete type hidden from consumers.
func NewLoader(options ...dictionary.LoaderOption) dictionary.Loader {
	cfg := dictionary.NewLoaderOptions(options...)
	return internalLoader.New(cfg)
}

// NewForm builds a Form over dict.
func NewForm(dict *dictionary.Dictionary, options ...form.Option) *form.Form {
	return form.New(dict, options...)
}

// LoadForm loads a metadata export from src and builds a Form over it.
func LoadForm(ctx context.Context, loader dictionary.Loader, src dictionary.Source, options ...form.Option) (*form.Form, error) {
	if ctx == nil {
		return nil, errors.New("redcap: context is required")
	}
	if loader == nil {
		loader = NewLoader()
	}
	doc, err := loader.Load(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("redcap: load dictionary: %w", err)
	}
	dict, err := doc.Dictionary()
	if err != nil {
		return nil, fmt.Errorf("redcap: parse dictionary: %w", err)
	}
	return form.New(dict, options...), nil
}

// LoadRecords loads a record export from src.
func LoadRecords(ctx context.Context, loader dictionary.Loader, src dictionary.Source) ([]record.Record, error) {
	if ctx == nil {
		return nil, errors.New("redcap: context is required")
	}
	if loader == nil {
		loader = NewLoader()
	}
	doc, err := loader.Load(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("redcap: load records: %w", err)
	}
	records, err := doc.Records()
	if err != nil {
		return nil, fmt.Errorf("redcap: parse records: %w", err)
	}
	return records, nil
}
