package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/randalmurphal/eventmesh/pkg/eventmesh/event"
)

// NoopMetrics is a MetricsRecorder that does nothing.
// Use when metrics are disabled to avoid overhead.
type NoopMetrics struct{}

// Compile-time interface check.
var _ MetricsRecorder = NoopMetrics{}

// RecordExecution does nothing.
func (NoopMetrics) RecordExecution(_ context.Context, _, _ string, _ time.Duration, _ bool) {}

// RecordOutbound does nothing.
func (NoopMetrics) RecordOutbound(_ context.Context, _ string, _ int, _ float64) {}

// NoopSpanManager is a SpanManager that does nothing.
// Use when tracing is disabled to avoid overhead.
type NoopSpanManager struct{}

// Compile-time interface check.
var _ SpanManager = NoopSpanManager{}

// noopSpan is a span that does nothing.
// We use the OTel noop package for a proper no-op span implementation.
var noopSpan = noop.Span{}

// StartExecuteSpan returns the context unchanged and a no-op span.
func (NoopSpanManager) StartExecuteSpan(ctx context.Context, _, _ string, _ *event.Event) (context.Context, trace.Span) {
	return ctx, noopSpan
}

// Headers returns empty trace headers.
func (NoopSpanManager) Headers(_ context.Context) event.TraceHeaders {
	return event.TraceHeaders{}
}

// EndSpanWithError does nothing.
func (NoopSpanManager) EndSpanWithError(_ trace.Span, _ error) {}
