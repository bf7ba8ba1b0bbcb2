// Package form builds decodable fields from a data dictionary and answers
// lookups against response records.
package form

import (
	"sync"
	"time"

	"github.com/botandrose/red-cap/pkg/dictionary"
	"github.com/botandrose/red-cap/pkg/fields"
	"github.com/botandrose/red-cap/pkg/logging"
	"github.com/botandrose/red-cap/pkg/metrics"
	"github.com/botandrose/red-cap/pkg/record"
)

// Form decodes response records against one dictionary. The field list is
// built lazily on first use, exactly once, after which a Form is safe for
// concurrent use.
type Form struct {
	dict     *dictionary.Dictionary
	registry *fields.Registry
	logger   logging.Logger
	metrics  metrics.Recorder

	once   sync.Once
	fields []*fields.Field
	index  map[string]*fields.Field
}

// New constructs a Form over dict. A nil dictionary behaves as an empty one.
func New(dict *dictionary.Dictionary, options ...Option) *Form {
	if dict == nil {
		dict = dictionary.MustNew()
	}
	f := &Form{
		dict:     dict,
		registry: fields.NewRegistry(),
		logger:   logging.NewNoOpLogger(),
		metrics:  metrics.Nop{},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	return f
}

// Dictionary returns the dictionary the Form was built from.
func (f *Form) Dictionary() *dictionary.Dictionary { return f.dict }

// Fields returns the built fields in dictionary order.
func (f *Form) Fields() []*fields.Field {
	f.once.Do(f.build)
	return append([]*fields.Field(nil), f.fields...)
}

// Field returns the built field named name.
func (f *Form) Field(name string) (*fields.Field, error) {
	f.once.Do(f.build)
	field, ok := f.index[name]
	if !ok {
		f.metrics.FieldNotFound()
		f.logger.Debug("field not found", map[string]any{"field_name": name})
		return nil, &FieldNotFoundError{Name: name}
	}
	return field, nil
}

// Get decodes the field named name from r. Pass fields.As to decode with a
// different variant and fields.WithDefault to supply a fallback for blank
// yes/no answers.
func (f *Form) Get(r record.Record, name string, opts ...fields.Option) (fields.Value, error) {
	field, err := f.Field(name)
	if err != nil {
		return fields.Absent(), err
	}
	variant := field.Variant()
	if override, ok := fields.NewOptions(opts...).Variant(); ok {
		variant = override
	}
	f.metrics.FieldDecoded(variant.String())
	return field.Decode(r, opts...), nil
}

// Decode decodes several fields of r at once. Without names every field is
// decoded in dictionary order; otherwise the requested names are decoded in
// the order given. An unknown name aborts with a FieldNotFoundError.
func (f *Form) Decode(r record.Record, names ...string) (Result, error) {
	start := time.Now()
	defer func() { f.metrics.RecordDecoded(time.Since(start)) }()

	if len(names) == 0 {
		all := f.Fields()
		names = make([]string, len(all))
		for i, field := range all {
			names[i] = field.Name()
		}
	}

	result := make(Result, 0, len(names))
	for _, name := range names {
		value, err := f.Get(r, name)
		if err != nil {
			return nil, err
		}
		result = append(result, fields.Entry{Key: name, Value: value})
	}
	return result, nil
}

// Bind returns a view of the Form answering lookups from r.
func (f *Form) Bind(r record.Record) *Response {
	return &Response{form: f, record: r}
}

func (f *Form) build() {
	defs := f.dict.Definitions()
	built := make([]*fields.Field, 0, len(defs))
	index := make(map[string]*fields.Field, len(defs))

	for _, def := range defs {
		variant, ok := f.registry.Lookup(def.Type)
		if !ok {
			f.logger.Warn(fields.FallbackMessage(def.Type), map[string]any{
				"field_name": def.Name,
				"field_type": def.Type,
			})
			f.metrics.TypeFallback(def.Type)
		}
		field := fields.New(def, variant)
		for _, pair := range field.MalformedChoices() {
			f.logger.Debug("skipping malformed choice", map[string]any{
				"field_name": def.Name,
				"pair":       pair,
			})
		}
		built = append(built, field)
		index[def.Name] = field
	}

	fields.Associate(built)
	f.fields = built
	f.index = index
}
