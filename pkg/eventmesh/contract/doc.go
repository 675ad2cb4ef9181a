// Package contract declares what a handler accepts and what it may
// emit, per semantic version.
//
// A Contract binds one accepted event type to a set of versions; each
// version carries a JSON schema for the accepted payload and a map of
// emit-type to emit schema. A Versioned view pins the contract to one
// concrete version, or to the sentinels Latest (highest declared
// version) and Any (validation skipped - used when constructing
// system-error events, where the accepted type's version cannot be
// assumed).
//
// Schemas are compiled at construction time with
// github.com/santhosh-tekuri/jsonschema; versions are parsed and
// ordered with github.com/Masterminds/semver. Contracts are immutable
// after New returns.
package contract
