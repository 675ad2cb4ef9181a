// Package event defines the immutable event envelope shared by every
// handler and router in eventmesh, plus the two utilities that produce
// outbound events: the output synthesizer and the error converter.
//
// Events are addressed messages. A handler never mutates the event it
// receives; every transformation builds a fresh envelope that carries
// unrelated fields forward unchanged. The synthesizer turns a handler's
// logical output records into fully-addressed events (destination
// resolution, subject propagation, trace-header stamping, execution-unit
// accounting, domain expansion). The error converter turns any failure
// into exactly one system-error event addressed back to the sender of
// the inbound event.
//
// Design influences:
//   - CloudEvents (self-describing envelope, dataschema, extensions)
//   - W3C Trace Context (traceparent/tracestate re-stamped per hop)
package event
