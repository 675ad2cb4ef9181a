package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/randalmurphal/eventmesh/pkg/eventmesh/event"
)

// Tracer is the eventmesh tracer instance.
// Uses the global OTel tracer provider.
var tracer = otel.Tracer("eventmesh")

// propagator parses and renders W3C traceparent/tracestate headers.
var propagator = propagation.TraceContext{}

// SpanManager handles the span lifecycle around one Execute call.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
//
// A span starts exactly once per Execute and ends exactly once, on
// every exit path. When the calling context has no active span and the
// inbound event carries trace headers, the span is created as a child
// of that remote context; otherwise it is a child of the local span or
// a new root.
type SpanManager interface {
	// StartExecuteSpan starts the span for one handler execution.
	// Status is set to Ok optimistically; EndSpanWithError overwrites
	// it on the failure path.
	StartExecuteSpan(ctx context.Context, component, source string, evt *event.Event) (context.Context, trace.Span)

	// Headers renders the active span context as outbound trace
	// headers. Outbound events carry the span of this execution, never
	// the headers the inbound event arrived with.
	Headers(ctx context.Context) event.TraceHeaders

	// EndSpanWithError completes a span, optionally recording an error.
	EndSpanWithError(span trace.Span, err error)
}

// otelSpanManager implements SpanManager using OpenTelemetry.
type otelSpanManager struct{}

// NewSpanManager returns a SpanManager that uses OpenTelemetry.
//
// The span manager uses the global OTel tracer provider. Configure the
// provider before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetTracerProvider(yourProvider)
func NewSpanManager() SpanManager {
	return &otelSpanManager{}
}

// StartExecuteSpan starts the span for one handler execution.
func (m *otelSpanManager) StartExecuteSpan(ctx context.Context, component, source string, evt *event.Event) (context.Context, trace.Span) {
	if !trace.SpanContextFromContext(ctx).IsValid() && evt.TraceParent != "" {
		carrier := propagation.MapCarrier{"traceparent": evt.TraceParent}
		if evt.TraceState != "" {
			carrier.Set("tracestate", evt.TraceState)
		}
		ctx = propagator.Extract(ctx, carrier)
	}

	ctx, span := tracer.Start(ctx, "eventmesh."+component+".execute",
		trace.WithAttributes(
			attribute.String("handler.source", source),
			attribute.String("event.id", evt.ID),
			attribute.String("event.type", evt.Type),
			attribute.String("event.subject", evt.Subject),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
	span.SetStatus(codes.Ok, "")
	return ctx, span
}

// Headers renders the active span context as outbound trace headers.
func (m *otelSpanManager) Headers(ctx context.Context) event.TraceHeaders {
	carrier := propagation.MapCarrier{}
	propagator.Inject(ctx, carrier)
	return event.TraceHeaders{
		TraceParent: carrier.Get("traceparent"),
		TraceState:  carrier.Get("tracestate"),
	}
}

// EndSpanWithError completes a span, optionally recording an error.
func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
