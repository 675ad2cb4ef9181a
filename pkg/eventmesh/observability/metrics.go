package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records eventmesh metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordExecution records one Execute call with its duration and
	// whether it ended on the error-conversion path.
	RecordExecution(ctx context.Context, source, eventType string, duration time.Duration, failed bool)

	// RecordOutbound records the events produced by one Execute call
	// and the execution units stamped onto them.
	RecordOutbound(ctx context.Context, source string, count int, units float64)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	executions     metric.Int64Counter
	latency        metric.Float64Histogram
	failures       metric.Int64Counter
	outboundEvents metric.Int64Counter
	executionUnits metric.Float64Histogram
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("eventmesh")

	executions, err := meter.Int64Counter("eventmesh.executions",
		metric.WithDescription("Number of Execute calls"),
	)
	if err != nil {
		return nil, err
	}

	latency, err := meter.Float64Histogram("eventmesh.execute.latency_ms",
		metric.WithDescription("Execute call latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	failures, err := meter.Int64Counter("eventmesh.failures",
		metric.WithDescription("Number of Execute calls converted to system-error events"),
	)
	if err != nil {
		return nil, err
	}

	outboundEvents, err := meter.Int64Counter("eventmesh.outbound_events",
		metric.WithDescription("Number of outbound events synthesized"),
	)
	if err != nil {
		return nil, err
	}

	executionUnits, err := meter.Float64Histogram("eventmesh.execution_units",
		metric.WithDescription("Execution units stamped onto outbound events"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		executions:     executions,
		latency:        latency,
		failures:       failures,
		outboundEvents: outboundEvents,
		executionUnits: executionUnits,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordExecution records one Execute call.
func (m *otelMetrics) RecordExecution(ctx context.Context, source, eventType string, duration time.Duration, failed bool) {
	attrs := []attribute.KeyValue{
		attribute.String("source", source),
		attribute.String("event_type", eventType),
	}

	m.executions.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.latency.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))

	if failed {
		m.failures.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

// RecordOutbound records the events produced by one Execute call.
func (m *otelMetrics) RecordOutbound(ctx context.Context, source string, count int, units float64) {
	attrs := []attribute.KeyValue{
		attribute.String("source", source),
	}
	m.outboundEvents.Add(ctx, int64(count), metric.WithAttributes(attrs...))
	m.executionUnits.Record(ctx, units, metric.WithAttributes(attrs...))
}
