package event

import "fmt"

// EmitValidator checks an outbound event type and payload against the
// emitting handler's contract. A nil validator skips validation (the
// open-handler path).
type EmitValidator interface {
	// ValidateEmit returns an error when eventType is not declared for
	// emission or data fails the declared schema.
	ValidateEmit(eventType string, data any) error
}

// SynthesisInput carries everything the synthesizer needs to turn a
// handler's output records into addressed events.
type SynthesisInput struct {
	// Outputs are the handler's logical output records, in order.
	Outputs []Output

	// Headers are the trace headers of the span active during this
	// execution.
	Headers TraceHeaders

	// Source is the emitting handler's source identifier.
	Source string

	// Inbound is the event that triggered this execution.
	Inbound *Event

	// DefaultUnits is the cost assigned when a record carries no
	// override.
	DefaultUnits float64

	// FallbackDomain is the handler's configured domain, used when a
	// DomainInherit reference cannot resolve from the inbound event.
	FallbackDomain *string

	// Validator validates outbound type/payload pairs; nil skips.
	Validator EmitValidator
}

// Synthesize turns output records into fully-addressed outbound events.
//
// For each record it resolves the destination (record To, then inbound
// RedirectTo, then inbound Source), copies the inbound subject, stamps
// the handler source, the trace headers, and the cost, and passes
// extension attributes through. A record with a domain list expands into
// one event per resolved domain value; duplicate resolved values are
// dropped, keeping the first occurrence. Record order and per-record
// domain order are preserved.
func Synthesize(in SynthesisInput) ([]*Event, error) {
	events := make([]*Event, 0, len(in.Outputs))

	for _, out := range in.Outputs {
		if in.Validator != nil {
			if err := in.Validator.ValidateEmit(out.Type, out.Data); err != nil {
				return nil, fmt.Errorf("synthesize %s: %w", out.Type, err)
			}
		}

		units := in.DefaultUnits
		if out.ExecutionUnits != nil {
			units = *out.ExecutionUnits
		}

		domains := out.Domains
		if len(domains) == 0 {
			domains = []DomainRef{DomainNone}
		}

		seen := make(map[string]bool, len(domains))
		for _, ref := range domains {
			domain := ref.resolve(in.Inbound.Domain, in.FallbackDomain)
			key := "\x00" // undomained sentinel, distinct from any value
			if domain != nil {
				key = *domain
			}
			if seen[key] {
				continue
			}
			seen[key] = true

			events = append(events, &Event{
				ID:             NewID(),
				Type:           out.Type,
				Source:         in.Source,
				To:             resolveDestination(out.To, in.Inbound),
				Subject:        in.Inbound.Subject,
				Data:           out.Data,
				TraceParent:    in.Headers.TraceParent,
				TraceState:     in.Headers.TraceState,
				ExecutionUnits: units,
				Domain:         domain,
				Extensions:     out.Extensions,
			})
		}
	}

	return events, nil
}

// resolveDestination applies the reply chain: explicit per-output To,
// then the inbound event's RedirectTo, then the inbound event's Source.
func resolveDestination(to *string, inbound *Event) *string {
	if to != nil {
		v := *to
		return &v
	}
	if inbound.RedirectTo != nil {
		v := *inbound.RedirectTo
		return &v
	}
	v := inbound.Source
	return &v
}
