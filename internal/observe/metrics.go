// Package observe provides observability primitives for the phonomatch
// tool: OpenTelemetry metrics, tracing helpers, structured logging, and
// HTTP middleware that ties them together.
//
// Metrics are recorded through the OpenTelemetry Metrics API. A Prometheus
// exporter bridge is available via [InitProvider] so that metrics can be
// scraped via the standard /metrics endpoint. A package-level default
// [Metrics] instance ([DefaultMetrics]) is provided for convenience; tests
// should use [NewMetrics] with a custom [metric.MeterProvider] to avoid
// cross-test pollution.
package observe

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name used for all phonomatch metrics.
const meterName = "github.com/MrWong99/phonomatch"

// Metrics holds all OpenTelemetry metric instruments for the tool.
// All fields are safe for concurrent use — the underlying OTel types handle
// their own synchronisation.
type Metrics struct {
	// BuildDuration tracks how long building the matcher index takes,
	// including pronouncing every target.
	BuildDuration metric.Float64Histogram

	// QueryDuration tracks per-query matching latency.
	QueryDuration metric.Float64Histogram

	// Queries counts answered queries. Use with attributes:
	//   attribute.String("kind", ...), attribute.String("status", ...)
	Queries metric.Int64Counter

	// PronounceErrors counts phrases the pronouncer rejected. Use with
	// attribute: attribute.String("stage", "build"|"query").
	PronounceErrors metric.Int64Counter

	// IndexSize tracks the number of targets in the live matcher index.
	IndexSize metric.Int64UpDownCounter

	// HTTPRequestDuration tracks HTTP request processing time on the
	// metrics endpoint. Use with attributes:
	//   attribute.String("method", ...), attribute.String("path", ...)
	HTTPRequestDuration metric.Float64Histogram
}

// latencyBuckets defines histogram bucket boundaries (in seconds) sized for
// in-memory matching latencies.
var latencyBuckets = []float64{
	0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 1,
}

// NewMetrics creates a fully initialised [Metrics] struct using the given
// [metric.MeterProvider]. Returns an error if any instrument creation fails.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.BuildDuration, err = m.Float64Histogram("phonomatch.index.build.duration",
		metric.WithDescription("Time to build the matcher index over the target list."),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}
	if met.QueryDuration, err = m.Float64Histogram("phonomatch.query.duration",
		metric.WithDescription("Per-query matching latency."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.Queries, err = m.Int64Counter("phonomatch.queries",
		metric.WithDescription("Total answered queries by matcher kind and status."),
	); err != nil {
		return nil, err
	}
	if met.PronounceErrors, err = m.Int64Counter("phonomatch.pronounce.errors",
		metric.WithDescription("Total phrases rejected by the pronouncer by stage."),
	); err != nil {
		return nil, err
	}
	if met.IndexSize, err = m.Int64UpDownCounter("phonomatch.index.size",
		metric.WithDescription("Number of targets in the live matcher index."),
	); err != nil {
		return nil, err
	}
	if met.HTTPRequestDuration, err = m.Float64Histogram("phonomatch.http.request.duration",
		metric.WithDescription("HTTP request latency by method and path."),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}

	return met, nil
}

// defaultMetrics is the lazily-initialised package-level Metrics instance.
var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns the package-level [Metrics] instance, creating it on
// first call using [otel.GetMeterProvider]. Subsequent calls return the same
// pointer. Panics if instrument creation fails (should not happen with the
// global provider).
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error
		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observe: failed to create default metrics: " + err.Error())
		}
	})
	return defaultMetrics
}

// Attr is a convenience alias for [attribute.String] to reduce verbosity at
// call sites.
func Attr(key, value string) attribute.KeyValue {
	return attribute.String(key, value)
}

// RecordQuery records one answered query: the counter increment with the
// standard attribute set plus the latency observation.
func (m *Metrics) RecordQuery(ctx context.Context, kind, status string, seconds float64) {
	attrs := metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.String("status", status),
	)
	m.Queries.Add(ctx, 1, attrs)
	m.QueryDuration.Record(ctx, seconds, attrs)
}

// RecordPronounceError records a phrase the pronouncer rejected at the
// given stage ("build" or "query").
func (m *Metrics) RecordPronounceError(ctx context.Context, stage string) {
	m.PronounceErrors.Add(ctx, 1,
		metric.WithAttributes(attribute.String("stage", stage)),
	)
}
