// Package journal records dispatch outcomes for diagnostics.
//
// A journal is an optional, append-only record of Execute calls: one
// entry per dispatch with the inbound event's identity, the outcome,
// and the number of outbound events. It carries no delivery semantics -
// entries are never replayed, and append failures never fail a
// dispatch.
//
// Two stores ship with the package: MemoryStore for tests and
// single-run inspection, and SQLiteStore for durable single-process
// diagnostics.
package journal

import (
	"context"
	"errors"
	"time"
)

// Outcome values for an entry.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// ErrStoreClosed indicates an operation on a closed store.
var ErrStoreClosed = errors.New("journal store is closed")

// Entry is one recorded dispatch.
type Entry struct {
	// EventID and EventType identify the inbound event.
	EventID   string
	EventType string

	// Source is the executing component's source identifier.
	Source string

	// Outcome is OutcomeOK or OutcomeError.
	Outcome string

	// Detail holds the converted error's message on the error path.
	Detail string

	// Outbound is the number of events the dispatch returned.
	Outbound int

	// Recorded is when the entry was appended, in UTC.
	Recorded time.Time
}

// Store persists dispatch entries.
type Store interface {
	// Append records one dispatch. It must not block on anything the
	// dispatch path depends on.
	Append(ctx context.Context, entry Entry) error

	// ByEvent returns the entries recorded for one inbound event ID,
	// oldest first.
	ByEvent(ctx context.Context, eventID string) ([]Entry, error)

	// Close releases the store's resources.
	Close() error
}
