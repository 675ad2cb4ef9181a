package event

import (
	"github.com/google/uuid"
)

// Event is the immutable envelope dispatched through handlers and routers.
// Once constructed it is never modified - transformations such as the
// router's source re-stamping copy the envelope and replace only the
// fields they own.
//
// Field names follow the wire format: lowercase, no separators.
type Event struct {
	// ID uniquely identifies this event.
	ID string `json:"id"`

	// Type names the event (e.g. "com.pay.charge", "evt.pay.charge.done").
	Type string `json:"type"`

	// Source identifies the producer that emitted this event.
	Source string `json:"source"`

	// To is the intended recipient, nil when unaddressed.
	To *string `json:"to,omitempty"`

	// Subject is the conversation/causality identifier. It is copied
	// unchanged onto every event derived from one inbound event.
	Subject string `json:"subject"`

	// Data is the payload.
	Data any `json:"data"`

	// DataSchema is the schema URI for Data, including a trailing
	// semantic version segment (e.g. ".../com.pay.charge/1.2.0").
	DataSchema string `json:"dataschema,omitempty"`

	// TraceParent and TraceState carry W3C Trace Context headers for the
	// span that was active when this event was produced. Each hop
	// re-stamps them; they are never forwarded from the inbound event.
	TraceParent string `json:"traceparent,omitempty"`
	TraceState  string `json:"tracestate,omitempty"`

	// ExecutionUnits is the cost accumulated while producing this event.
	// It grows additively as the event passes through nested routers.
	ExecutionUnits float64 `json:"executionunits,omitempty"`

	// RedirectTo overrides the reply destination for events derived from
	// this one. System-error events ignore it and always target Source.
	RedirectTo *string `json:"redirectto,omitempty"`

	// AccessControl is an opaque access-control declaration carried
	// through unchanged.
	AccessControl any `json:"accesscontrol,omitempty"`

	// Domain is the optional routing namespace this event belongs to.
	Domain *string `json:"domain,omitempty"`

	// Extensions holds additional attributes passed through from the
	// handler output record.
	Extensions map[string]any `json:"extensions,omitempty"`
}

// TraceHeaders are the W3C Trace Context headers stamped onto outbound
// events. They describe the span active during the current execution.
type TraceHeaders struct {
	TraceParent string
	TraceState  string
}

// NewID returns a fresh event identifier.
func NewID() string {
	return uuid.New().String()
}

// Restamp returns a copy of evt with its source, trace headers, and
// execution-unit total replaced. Routers use it to re-address events
// returned by an inner handler: the source becomes the router's own,
// the trace headers reflect the router's active span, and addedUnits is
// added to the accumulated cost. All other fields carry forward.
func Restamp(evt *Event, source string, hdr TraceHeaders, addedUnits float64) *Event {
	out := *evt
	out.Source = source
	out.TraceParent = hdr.TraceParent
	out.TraceState = hdr.TraceState
	out.ExecutionUnits = evt.ExecutionUnits + addedUnits
	return &out
}
