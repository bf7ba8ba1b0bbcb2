package form

import (
	"github.com/botandrose/red-cap/pkg/fields"
	"github.com/botandrose/red-cap/pkg/record"
)

// Response is a Form bound to a single record.
type Response struct {
	form   *Form
	record record.Record
}

// Form returns the bound form.
func (r *Response) Form() *Form { return r.form }

// Record returns the bound record.
func (r *Response) Record() record.Record { return r.record }

// Get decodes name from the bound record.
func (r *Response) Get(name string, opts ...fields.Option) (fields.Value, error) {
	return r.form.Get(r.record, name, opts...)
}

// Decode decodes names, or every field, from the bound record.
func (r *Response) Decode(names ...string) (Result, error) {
	return r.form.Decode(r.record, names...)
}

// Result is an ordered set of decoded values keyed by field name.
type Result []fields.Entry

// Names returns the field names in result order.
func (r Result) Names() []string {
	out := make([]string, len(r))
	for i, entry := range r {
		out[i] = entry.Key
	}
	return out
}

// Get returns the value decoded for name.
func (r Result) Get(name string) (fields.Value, bool) {
	for _, entry := range r {
		if entry.Key == name {
			return entry.Value, true
		}
	}
	return fields.Absent(), false
}

// Value returns the result as a single ordered map Value.
func (r Result) Value() fields.Value {
	return fields.MapValue(r...)
}

// MarshalJSON encodes the result as an object in result order.
func (r Result) MarshalJSON() ([]byte, error) {
	return r.Value().MarshalJSON()
}
