/*
Package eventmesh dispatches self-describing, immutable event envelopes
to handler logic selected by event type. It is built for
choreography-style event-driven services: a producer sends one event,
the consumer returns the events it produced - including, on any
failure, a single system-error event instead of an error crossing the
call boundary.

# Overview

Three units implement the Handler interface:

  - ContractHandler binds a versioned accept/emit contract to user
    logic. Inbound payloads are validated against the addressed
    version's JSON schema before user logic runs; outputs are validated
    against the version's emit schemas.
  - OpenHandler accepts any event type with no schema validation,
    checking only that the event is addressed to it.
  - Router holds an immutable type-to-handler registry and delegates by
    event type, re-stamping source and trace headers and adding its own
    execution cost to each returned event.

Only construction returns errors (ConfigurationError). Execute never
does: validation failures, routing failures, user-logic errors, and
panics all come back as one sys.<type>.error event addressed to the
inbound event's source.

# Basic Usage

	charge, err := contract.New(contract.Definition{
	    Type: "com.pay.charge",
	    Versions: map[string]contract.VersionDefinition{
	        "1.0.0": {
	            Accepts: `{"type":"object","required":["amount"]}`,
	            Emits: map[string]string{
	                "evt.pay.charge.done": `{"type":"object"}`,
	            },
	        },
	    },
	})
	if err != nil {
	    log.Fatal(err)
	}

	handler, err := eventmesh.NewContractHandler(eventmesh.ContractHandlerConfig{
	    Contract:       charge,
	    ExecutionUnits: 1,
	    Handlers: map[string]eventmesh.HandlerFunc{
	        "1.0.0": func(ctx context.Context, in eventmesh.Input) ([]event.Output, error) {
	            return []event.Output{{
	                Type: "evt.pay.charge.done",
	                Data: map[string]any{"ok": true},
	            }}, nil
	        },
	    },
	})
	if err != nil {
	    log.Fatal(err)
	}

	router, err := eventmesh.NewRouter(eventmesh.RouterConfig{
	    Source:         "payment.service",
	    ExecutionUnits: 1,
	    Handlers:       []eventmesh.Handler{handler},
	})
	if err != nil {
	    log.Fatal(err)
	}

	results := router.Execute(ctx, inbound)

# Concurrency

An Execute call is a self-contained unit of work. The only state shared
across calls is the handler registry, which is read-only after
construction; hosts achieve concurrency by issuing concurrent Execute
calls. There is no internal timeout or cancellation - wrap Execute with
a context deadline externally if a stalled handler must be abandoned.

# Observability

Each Execute call owns one tracing span, created as a child of the
remote context carried in the inbound event's traceparent/tracestate
headers when present, and released exactly once on every exit path.
Outbound events carry the headers of this span, never the inbound
ones. Structured logging (slog), OTel metrics, and an optional dispatch
journal are wired through construction options.
*/
package eventmesh
