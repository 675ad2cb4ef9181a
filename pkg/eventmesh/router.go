package eventmesh

import (
	"context"
	"runtime/debug"
	"sort"
	"time"

	"github.com/randalmurphal/eventmesh/pkg/eventmesh/contract"
	"github.com/randalmurphal/eventmesh/pkg/eventmesh/event"
)

// RouterConfig configures NewRouter.
type RouterConfig struct {
	// Source is the router's identifier; inbound events must be
	// addressed to it.
	Source string

	// ExecutionUnits is the router's own cost, added to every event a
	// delegated handler returns.
	ExecutionUnits float64

	// Handlers are the dispatch targets. Each handler's Accepts()
	// populates the type registry; at most one handler may accept all
	// types, and it becomes the fallback when no typed handler matches.
	Handlers []Handler
}

// Router dispatches events to the handler registered for their type.
// It implements Handler itself, so routers compose.
type Router struct {
	source   string
	units    float64
	registry map[string]Handler
	fallback Handler
	opts     options
}

// Compile-time interface check.
var _ Handler = (*Router)(nil)

// NewRouter builds a router over the given handlers. Construction fails
// with a ConfigurationError on an invalid source, two handlers
// declaring the same accepted type, or two wildcard handlers. The
// registry is immutable after construction, so concurrent Execute calls
// share it without locking.
func NewRouter(cfg RouterConfig, opts ...Option) (*Router, error) {
	if !validSource(cfg.Source) {
		return nil, &ConfigurationError{Component: "router", Err: ErrInvalidSource}
	}

	registry := make(map[string]Handler, len(cfg.Handlers))
	var fallback Handler
	for _, h := range cfg.Handlers {
		types := h.Accepts()
		if len(types) == 0 {
			if fallback != nil {
				return nil, &ConfigurationError{Component: "router", Err: ErrDuplicateWildcard}
			}
			fallback = h
			continue
		}
		for _, t := range types {
			if _, dup := registry[t]; dup {
				return nil, &ConfigurationError{Component: "router", Err: ErrDuplicateType}
			}
			registry[t] = h
		}
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Router{
		source:   cfg.Source,
		units:    cfg.ExecutionUnits,
		registry: registry,
		fallback: fallback,
		opts:     o,
	}, nil
}

// Source returns the router's source identifier.
func (r *Router) Source() string {
	return r.source
}

// Accepts returns the registered event types, sorted. A router with a
// wildcard handler still reports only its typed registrations.
func (r *Router) Accepts() []string {
	types := make([]string, 0, len(r.registry))
	for t := range r.registry {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// ErrorSchema describes this router's system-error event:
// sys.<source>.error with the standard error schema.
func (r *Router) ErrorSchema() contract.Descriptor {
	return contract.StandardError(r.source)
}

// Execute implements Handler. Events returned by the delegated handler
// are re-stamped: their source becomes the router's own, their trace
// headers reflect the router's span rather than the inner handler's,
// and the router's cost is added to their execution-unit totals.
func (r *Router) Execute(ctx context.Context, evt *event.Event) []*event.Event {
	start := time.Now()
	ctx, span := r.opts.spans.StartExecuteSpan(ctx, "router", r.source, evt)
	hdr := r.opts.spans.Headers(ctx)

	events, err := r.dispatch(ctx, evt, hdr)
	if err != nil {
		events = []*event.Event{
			event.ConvertError(err, hdr, r.ErrorSchema().Type, r.source, evt, r.units),
		}
	}

	r.opts.spans.EndSpanWithError(span, err)
	r.opts.observe(ctx, r.source, evt, events, err, start, r.units)
	return events
}

func (r *Router) dispatch(ctx context.Context, evt *event.Event, hdr event.TraceHeaders) (events []*event.Event, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			events = nil
			err = &PanicError{Source: r.source, Value: rec, Stack: string(debug.Stack())}
		}
	}()

	if evt.To == nil || *evt.To != r.source {
		return nil, &RoutingError{Source: r.source, EventType: evt.Type, Err: ErrDestinationMismatch}
	}

	handler := r.registry[evt.Type]
	if handler == nil {
		handler = r.fallback
	}
	if handler == nil {
		return nil, &RoutingError{Source: r.source, EventType: evt.Type, Err: ErrNoHandler}
	}

	inner := handler.Execute(ctx, evt)
	events = make([]*event.Event, len(inner))
	for i, e := range inner {
		events[i] = event.Restamp(e, r.source, hdr, r.units)
	}
	return events, nil
}
