package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/randalmurphal/eventmesh/pkg/eventmesh/event"
)

// setupTracingTest creates a test tracer provider with an in-memory span recorder.
func setupTracingTest(t *testing.T) (*tracetest.InMemoryExporter, func()) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
	)

	// Save the original provider
	originalProvider := otel.GetTracerProvider()

	// Set test provider
	otel.SetTracerProvider(tp)

	// Update the package-level tracer
	tracer = otel.Tracer("eventmesh")

	cleanup := func() {
		otel.SetTracerProvider(originalProvider)
		tracer = otel.Tracer("eventmesh")
		if err := tp.Shutdown(context.Background()); err != nil {
			t.Logf("Error shutting down tracer provider: %v", err)
		}
	}

	return exporter, cleanup
}

func sampleEvent() *event.Event {
	return &event.Event{
		ID:      "evt-1",
		Type:    "com.pay.charge",
		Source:  "caller.x",
		Subject: "s1",
	}
}

func TestStartExecuteSpan(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	t.Run("creates span with attributes", func(t *testing.T) {
		exporter.Reset()
		m := NewSpanManager()

		ctx, span := m.StartExecuteSpan(context.Background(), "router", "payment.service", sampleEvent())
		require.NotNil(t, span)
		require.NotNil(t, ctx)
		span.End()

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)
		assert.Equal(t, "eventmesh.router.execute", spans[0].Name)

		attrs := make(map[string]string)
		for _, kv := range spans[0].Attributes {
			attrs[string(kv.Key)] = kv.Value.AsString()
		}
		assert.Equal(t, "payment.service", attrs["handler.source"])
		assert.Equal(t, "com.pay.charge", attrs["event.type"])
		assert.Equal(t, "s1", attrs["event.subject"])
	})

	t.Run("joins remote context from inbound headers", func(t *testing.T) {
		exporter.Reset()
		m := NewSpanManager()

		evt := sampleEvent()
		evt.TraceParent = "00-0af7651916cd43dd8448eb211c80319c-b7ad6b7169203331-01"

		_, span := m.StartExecuteSpan(context.Background(), "handler", "payment.service", evt)
		span.End()

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)
		assert.Equal(t, "0af7651916cd43dd8448eb211c80319c", spans[0].SpanContext.TraceID().String())
		assert.Equal(t, "b7ad6b7169203331", spans[0].Parent.SpanID().String())
	})

	t.Run("local span wins over inbound headers", func(t *testing.T) {
		exporter.Reset()
		m := NewSpanManager()

		parentCtx, parent := m.StartExecuteSpan(context.Background(), "router", "payment.service", sampleEvent())

		evt := sampleEvent()
		evt.TraceParent = "00-0af7651916cd43dd8448eb211c80319c-b7ad6b7169203331-01"
		_, child := m.StartExecuteSpan(parentCtx, "handler", "payment.service", evt)
		child.End()
		parent.End()

		spans := exporter.GetSpans()
		require.Len(t, spans, 2)
		assert.Equal(t, spans[1].SpanContext.TraceID(), spans[0].SpanContext.TraceID())
		assert.NotEqual(t, "0af7651916cd43dd8448eb211c80319c", spans[0].SpanContext.TraceID().String())
	})

	t.Run("status is ok optimistically", func(t *testing.T) {
		exporter.Reset()
		m := NewSpanManager()

		_, span := m.StartExecuteSpan(context.Background(), "handler", "payment.service", sampleEvent())
		span.End()

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)
		assert.Equal(t, codes.Ok, spans[0].Status.Code)
	})
}

func TestHeaders(t *testing.T) {
	_, cleanup := setupTracingTest(t)
	defer cleanup()

	m := NewSpanManager()

	t.Run("renders active span context", func(t *testing.T) {
		ctx, span := m.StartExecuteSpan(context.Background(), "handler", "payment.service", sampleEvent())
		defer span.End()

		hdr := m.Headers(ctx)
		assert.NotEmpty(t, hdr.TraceParent)
		assert.Contains(t, hdr.TraceParent, span.SpanContext().TraceID().String())
	})

	t.Run("empty without active span", func(t *testing.T) {
		hdr := m.Headers(context.Background())
		assert.Empty(t, hdr.TraceParent)
	})
}

func TestEndSpanWithError(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	m := NewSpanManager()

	t.Run("success keeps ok status", func(t *testing.T) {
		exporter.Reset()
		_, span := m.StartExecuteSpan(context.Background(), "handler", "payment.service", sampleEvent())
		m.EndSpanWithError(span, nil)

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)
		assert.Equal(t, codes.Ok, spans[0].Status.Code)
	})

	t.Run("failure overwrites to error", func(t *testing.T) {
		exporter.Reset()
		_, span := m.StartExecuteSpan(context.Background(), "handler", "payment.service", sampleEvent())
		m.EndSpanWithError(span, errors.New("validation failed"))

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)
		assert.Equal(t, codes.Error, spans[0].Status.Code)
		assert.Equal(t, "validation failed", spans[0].Status.Description)
		require.Len(t, spans[0].Events, 1) // RecordError event
	})

	t.Run("nil span is a no-op", func(t *testing.T) {
		m.EndSpanWithError(nil, errors.New("ignored"))
	})
}
