package form

import (
	"github.com/botandrose/red-cap/pkg/fields"
	"github.com/botandrose/red-cap/pkg/logging"
	"github.com/botandrose/red-cap/pkg/metrics"
)

// Option customises a Form.
type Option func(*Form)

// WithRegistry replaces the built-in field type registry.
func WithRegistry(registry *fields.Registry) Option {
	return func(f *Form) {
		if registry != nil {
			f.registry = registry
		}
	}
}

// WithLogger routes build and lookup diagnostics to logger.
func WithLogger(logger logging.Logger) Option {
	return func(f *Form) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithMetrics records decode events on recorder.
func WithMetrics(recorder metrics.Recorder) Option {
	return func(f *Form) {
		if recorder != nil {
			f.metrics = recorder
		}
	}
}
