package event

// Output is a handler's logical output record. It names what happened
// and carries the payload; it is not yet an addressed event. The output
// synthesizer resolves destination, subject, source, cost, and domain to
// produce the outbound Event(s).
type Output struct {
	// Type is the outbound event type. For contract-bound handlers it
	// must be one of the types the contract declares for emission.
	Type string

	// Data is the outbound payload.
	Data any

	// To overrides the destination resolution chain when set.
	To *string

	// Domains expands this record into one event per resolved domain
	// value. Nil is equivalent to []DomainRef{DomainNone}: exactly one
	// undomained event.
	Domains []DomainRef

	// ExecutionUnits overrides the handler's default cost when set.
	ExecutionUnits *float64

	// Extensions are copied onto the outbound event unchanged.
	Extensions map[string]any
}

type domainKind int

const (
	domainInherit domainKind = iota
	domainNone
	domainValue
)

// DomainRef is a three-valued reference to a routing domain. A record's
// domain list may mix concrete values, DomainNone (explicitly
// undomained), and DomainInherit (resolve via the fallback chain
// inbound event domain, then handler fallback domain, then none).
type DomainRef struct {
	kind  domainKind
	value string
}

// DomainInherit resolves through the fallback chain.
var DomainInherit = DomainRef{kind: domainInherit}

// DomainNone resolves to an undomained event.
var DomainNone = DomainRef{kind: domainNone}

// DomainValue returns a reference to the concrete domain v.
func DomainValue(v string) DomainRef {
	return DomainRef{kind: domainValue, value: v}
}

// resolve maps the reference to a concrete domain pointer, nil meaning
// undomained. fallback is the handler's configured fallback domain.
func (d DomainRef) resolve(inbound *string, fallback *string) *string {
	switch d.kind {
	case domainValue:
		v := d.value
		return &v
	case domainNone:
		return nil
	default:
		if inbound != nil {
			v := *inbound
			return &v
		}
		if fallback != nil {
			v := *fallback
			return &v
		}
		return nil
	}
}
