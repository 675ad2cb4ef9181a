package eventmesh

import (
	"context"
	"runtime/debug"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/randalmurphal/eventmesh/pkg/eventmesh/contract"
	"github.com/randalmurphal/eventmesh/pkg/eventmesh/event"
)

// OpenInput is what an open handler function receives. Unlike the
// contract-bound Input it also exposes the active span, since open
// handlers have no contract layer to annotate it for them.
type OpenInput struct {
	Event  *event.Event
	Source string
	Span   trace.Span
}

// OpenHandlerFunc is the user logic of an open handler.
type OpenHandlerFunc func(ctx context.Context, in OpenInput) ([]event.Output, error)

// OpenHandlerConfig configures NewOpenHandler.
type OpenHandlerConfig struct {
	// Source is the handler's identifier; inbound events must be
	// addressed to it.
	Source string

	// ExecutionUnits is the default cost stamped onto outbound events.
	ExecutionUnits float64

	// Handler is the user logic.
	Handler OpenHandlerFunc
}

// OpenHandler accepts any event type without schema validation, trading
// contract safety for flexibility. The only inbound check is
// addressing: the event's `to` must equal this handler's source.
type OpenHandler struct {
	source string
	units  float64
	fn     OpenHandlerFunc
	opts   options
}

// Compile-time interface check.
var _ Handler = (*OpenHandler)(nil)

// NewOpenHandler builds an open handler. An invalid source identifier
// or missing user logic is a ConfigurationError.
func NewOpenHandler(cfg OpenHandlerConfig, opts ...Option) (*OpenHandler, error) {
	if !validSource(cfg.Source) {
		return nil, &ConfigurationError{Component: "open handler", Err: ErrInvalidSource}
	}
	if cfg.Handler == nil {
		return nil, &ConfigurationError{Component: "open handler", Err: ErrNilHandlerFunc}
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &OpenHandler{
		source: cfg.Source,
		units:  cfg.ExecutionUnits,
		fn:     cfg.Handler,
		opts:   o,
	}, nil
}

// Source returns the handler's source identifier.
func (h *OpenHandler) Source() string {
	return h.source
}

// Accepts returns nil: an open handler accepts all event types.
func (h *OpenHandler) Accepts() []string {
	return nil
}

// ErrorSchema describes this handler's system-error event:
// sys.<source>.error with the standard error schema.
func (h *OpenHandler) ErrorSchema() contract.Descriptor {
	return contract.StandardError(h.source)
}

// Execute implements Handler. The destination check runs before user
// logic; no schema validation is performed in either direction.
func (h *OpenHandler) Execute(ctx context.Context, evt *event.Event) []*event.Event {
	start := time.Now()
	ctx, span := h.opts.spans.StartExecuteSpan(ctx, "handler", h.source, evt)
	hdr := h.opts.spans.Headers(ctx)

	events, err := h.run(ctx, evt, hdr, span)
	if err != nil {
		events = []*event.Event{
			event.ConvertError(err, hdr, h.ErrorSchema().Type, h.source, evt, h.units),
		}
	}

	h.opts.spans.EndSpanWithError(span, err)
	h.opts.observe(ctx, h.source, evt, events, err, start, h.units)
	return events
}

func (h *OpenHandler) run(ctx context.Context, evt *event.Event, hdr event.TraceHeaders, span trace.Span) (events []*event.Event, err error) {
	defer func() {
		if r := recover(); r != nil {
			events = nil
			err = &PanicError{Source: h.source, Value: r, Stack: string(debug.Stack())}
		}
	}()

	if evt.To == nil || *evt.To != h.source {
		return nil, &RoutingError{Source: h.source, EventType: evt.Type, Err: ErrDestinationMismatch}
	}

	outputs, uerr := h.fn(ctx, OpenInput{Event: evt, Source: h.source, Span: span})
	if uerr != nil {
		return nil, &HandlerExecutionError{Source: h.source, Err: uerr}
	}

	events, serr := event.Synthesize(event.SynthesisInput{
		Outputs:        outputs,
		Headers:        hdr,
		Source:         h.source,
		Inbound:        evt,
		DefaultUnits:   h.units,
		FallbackDomain: h.opts.domain,
	})
	if serr != nil {
		return nil, &HandlerExecutionError{Source: h.source, Err: serr}
	}
	return events, nil
}
