package eventmesh

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/Masterminds/semver/v3"

	"github.com/randalmurphal/eventmesh/pkg/eventmesh/contract"
	"github.com/randalmurphal/eventmesh/pkg/eventmesh/event"
	"github.com/randalmurphal/eventmesh/pkg/eventmesh/observability"
)

// Input is what a contract-bound handler function receives: the inbound
// event and the source identifier its outputs will be stamped with.
type Input struct {
	Event  *event.Event
	Source string
}

// HandlerFunc is the user logic bound to one contract version.
// Returning an empty slice (or nil) yields zero outbound events.
type HandlerFunc func(ctx context.Context, in Input) ([]event.Output, error)

// ContractHandlerConfig configures NewContractHandler.
type ContractHandlerConfig struct {
	// Contract declares the accepted type and the per-version schemas.
	Contract *contract.Contract

	// ExecutionUnits is the default cost stamped onto outbound events.
	ExecutionUnits float64

	// Handlers maps every declared contract version to its logic.
	// Construction fails when a declared version has no function.
	Handlers map[string]HandlerFunc

	// Source overrides the handler's source identifier.
	// Defaults to the contract's accepted type.
	Source string
}

// ContractHandler binds a versioned accept/emit contract to user logic.
// Inbound payloads are validated against the addressed version's accept
// schema before the matching version's function runs; outputs are
// validated against that version's emit schemas during synthesis.
type ContractHandler struct {
	contract *contract.Contract
	source   string
	units    float64
	handlers map[string]HandlerFunc
	domain   *string
	opts     options
}

// Compile-time interface check.
var _ Handler = (*ContractHandler)(nil)

// NewContractHandler builds a contract-bound handler. All defects are
// ConfigurationErrors: a missing contract, an invalid source, or a
// declared version without a handler function.
func NewContractHandler(cfg ContractHandlerConfig, opts ...Option) (*ContractHandler, error) {
	if cfg.Contract == nil {
		return nil, &ConfigurationError{Component: "contract handler", Err: ErrNilContract}
	}

	source := cfg.Source
	if source == "" {
		source = cfg.Contract.Type()
	}
	if !validSource(source) {
		return nil, &ConfigurationError{Component: "contract handler", Err: ErrInvalidSource}
	}

	// Normalize handler keys so "1.0" and "1.0.0" address the same version.
	handlers := make(map[string]HandlerFunc, len(cfg.Handlers))
	for name, fn := range cfg.Handlers {
		key := name
		if sv, err := semver.NewVersion(name); err == nil {
			key = sv.String()
		}
		handlers[key] = fn
	}

	declared := cfg.Contract.Versions()
	for _, v := range declared {
		if handlers[v] == nil {
			return nil, &ConfigurationError{Component: "contract handler", Err: ErrMissingVersionHandler}
		}
	}
	if len(handlers) != len(declared) {
		return nil, &ConfigurationError{Component: "contract handler", Err: ErrUnknownVersionHandler}
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	domain := o.domain
	if domain == nil {
		domain = cfg.Contract.Domain()
	}

	return &ContractHandler{
		contract: cfg.Contract,
		source:   source,
		units:    cfg.ExecutionUnits,
		handlers: handlers,
		domain:   domain,
		opts:     o,
	}, nil
}

// Source returns the handler's source identifier.
func (h *ContractHandler) Source() string {
	return h.source
}

// Accepts returns the contract's accepted event type.
func (h *ContractHandler) Accepts() []string {
	return []string{h.contract.Type()}
}

// ErrorSchema describes this handler's system-error event:
// sys.<accepted-type>.error with the contract's error schema.
func (h *ContractHandler) ErrorSchema() contract.Descriptor {
	return h.contract.SystemError()
}

// Execute implements Handler. The span covers the whole call and ends
// on every exit path; a failure anywhere - validation, version
// resolution, user logic, synthesis, panic - is converted into one
// system-error event addressed to the inbound event's source.
func (h *ContractHandler) Execute(ctx context.Context, evt *event.Event) []*event.Event {
	start := time.Now()
	ctx, span := h.opts.spans.StartExecuteSpan(ctx, "handler", h.source, evt)
	hdr := h.opts.spans.Headers(ctx)

	events, err := h.run(ctx, evt, hdr)
	if err != nil {
		events = []*event.Event{
			event.ConvertError(err, hdr, h.ErrorSchema().Type, h.source, evt, h.units),
		}
	}

	h.opts.spans.EndSpanWithError(span, err)
	h.opts.observe(ctx, h.source, evt, events, err, start, h.units)
	return events
}

func (h *ContractHandler) run(ctx context.Context, evt *event.Event, hdr event.TraceHeaders) (events []*event.Event, err error) {
	defer func() {
		if r := recover(); r != nil {
			events = nil
			err = &PanicError{Source: h.source, Value: r, Stack: string(debug.Stack())}
		}
	}()

	if evt.Type != h.contract.Type() {
		return nil, &RoutingError{Source: h.source, EventType: evt.Type, Err: ErrTypeMismatch}
	}

	ver, ok := h.contract.Resolve(evt.DataSchema)
	if !ok {
		// Unresolvable dataschema is a diagnostic, never a failure.
		ver, _ = h.contract.Version(contract.Latest)
		observability.LogVersionFallback(h.opts.logger, h.source, evt.DataSchema, ver.Version())
	}

	if verr := ver.ValidateAccept(evt.Data); verr != nil {
		return nil, &ValidationError{EventType: evt.Type, Version: ver.Version(), Err: verr}
	}

	outputs, uerr := h.handlers[ver.Version()](ctx, Input{Event: evt, Source: h.source})
	if uerr != nil {
		return nil, &HandlerExecutionError{Source: h.source, Err: uerr}
	}

	events, serr := event.Synthesize(event.SynthesisInput{
		Outputs:        outputs,
		Headers:        hdr,
		Source:         h.source,
		Inbound:        evt,
		DefaultUnits:   h.units,
		FallbackDomain: h.domain,
		Validator:      ver,
	})
	if serr != nil {
		return nil, &HandlerExecutionError{Source: h.source, Err: serr}
	}
	return events, nil
}
