// Package metrics exposes Prometheus counters for form building and record
// decoding. Collectors are registered on the caller's registerer so several
// forms, or tests, never fight over the default registry.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "redcap"

// Recorder receives decode events. Implementations must be safe for
// concurrent use.
type Recorder interface {
	FieldDecoded(variant string)
	TypeFallback(typeName string)
	FieldNotFound()
	RecordDecoded(elapsed time.Duration)
}

// Metrics is the Prometheus-backed Recorder.
type Metrics struct {
	FieldsDecoded  *prometheus.CounterVec
	TypeFallbacks  *prometheus.CounterVec
	FieldsNotFound prometheus.Counter
	DecodeDuration prometheus.Histogram
}

// New registers the decode collectors on reg. A nil reg creates a private
// registry.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)
	return &Metrics{
		FieldsDecoded: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "fields_decoded_total",
				Help:      "Total number of field values decoded, by variant",
			},
			[]string{"variant"},
		),
		TypeFallbacks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "type_fallbacks_total",
				Help:      "Total number of fields whose declared type fell back to text",
			},
			[]string{"field_type"},
		),
		FieldsNotFound: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "field_not_found_total",
				Help:      "Total number of lookups for names absent from the dictionary",
			},
		),
		DecodeDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "record_decode_duration_seconds",
				Help:      "Duration of whole-record decodes in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
			},
		),
	}
}

func (m *Metrics) FieldDecoded(variant string) {
	m.FieldsDecoded.WithLabelValues(variant).Inc()
}

func (m *Metrics) TypeFallback(typeName string) {
	m.TypeFallbacks.WithLabelValues(typeName).Inc()
}

func (m *Metrics) FieldNotFound() {
	m.FieldsNotFound.Inc()
}

func (m *Metrics) RecordDecoded(elapsed time.Duration) {
	m.DecodeDuration.Observe(elapsed.Seconds())
}

// Nop discards every event.
type Nop struct{}

func (Nop) FieldDecoded(string)         {}
func (Nop) TypeFallback(string)         {}
func (Nop) FieldNotFound()              {}
func (Nop) RecordDecoded(time.Duration) {}

var (
	_ Recorder = (*Metrics)(nil)
	_ Recorder = Nop{}
)
