package fields

// Options are scoped to a single decode call and never stored on a Field.
type Options struct {
	defaultValue Value
	hasDefault   bool
	variant      Variant
	hasVariant   bool
}

// Option mutates Options for one decode call.
type Option func(*Options)

// WithDefault supplies the value a yes/no field decodes to when its raw
// answer is the empty string.
func WithDefault(v Value) Option {
	return func(o *Options) {
		o.defaultValue = v
		o.hasDefault = true
	}
}

// As decodes the field with the given variant instead of its declared type.
// The definition and associated-field wiring stay the same.
func As(v Variant) Option {
	return func(o *Options) {
		if !v.Valid() {
			return
		}
		o.variant = v
		o.hasVariant = true
	}
}

// NewOptions applies opts in order.
func NewOptions(opts ...Option) Options {
	var o Options
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&o)
	}
	return o
}

// Default returns the configured default and whether one was set.
func (o Options) Default() (Value, bool) {
	return o.defaultValue, o.hasDefault
}

// Variant returns the type override and whether one was set.
func (o Options) Variant() (Variant, bool) {
	return o.variant, o.hasVariant
}
