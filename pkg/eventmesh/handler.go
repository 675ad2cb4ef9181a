package eventmesh

import (
	"context"
	"regexp"

	"github.com/randalmurphal/eventmesh/pkg/eventmesh/contract"
	"github.com/randalmurphal/eventmesh/pkg/eventmesh/event"
)

// Handler is the uniform shape every dispatchable unit implements:
// contract-bound handlers, open handlers, and routers themselves, which
// lets routers compose.
//
// Execute never returns an error. Every per-event failure is converted
// into a single system-error event inside the returned slice; only
// construction can fail.
type Handler interface {
	// Execute dispatches one inbound event and returns the outbound
	// events, in order. A failed execution returns exactly one
	// system-error event addressed to the inbound event's source.
	Execute(ctx context.Context, evt *event.Event) []*event.Event

	// ErrorSchema describes the system-error event this handler emits.
	ErrorSchema() contract.Descriptor

	// Accepts returns the event types this handler processes.
	// An empty slice means the handler accepts all event types.
	Accepts() []string
}

// sourcePattern is the required shape of a source identifier:
// lowercase alphanumeric segments joined by dots.
var sourcePattern = regexp.MustCompile(`^[a-z0-9]+(\.[a-z0-9]+)*$`)

// validSource reports whether s is a well-formed source identifier.
func validSource(s string) bool {
	return sourcePattern.MatchString(s)
}
