package eventmesh

import (
	"errors"
	"fmt"
)

// Sentinel errors for construction-time configuration failures.
var (
	// ErrNilContract indicates a contract handler built without a contract.
	ErrNilContract = errors.New("contract is required")

	// ErrNilHandlerFunc indicates an open handler built without user logic.
	ErrNilHandlerFunc = errors.New("handler function is required")

	// ErrInvalidSource indicates a source identifier that does not match
	// the lowercase-alphanumeric-with-dot format.
	ErrInvalidSource = errors.New("invalid source identifier")

	// ErrMissingVersionHandler indicates a declared contract version with
	// no corresponding handler function.
	ErrMissingVersionHandler = errors.New("no handler function for contract version")

	// ErrUnknownVersionHandler indicates a handler function keyed by a
	// version the contract does not declare.
	ErrUnknownVersionHandler = errors.New("handler function for undeclared contract version")

	// ErrDuplicateType indicates two handlers in one router declaring the
	// same accepted event type.
	ErrDuplicateType = errors.New("duplicate accepted event type")

	// ErrDuplicateWildcard indicates two handlers in one router accepting
	// all event types.
	ErrDuplicateWildcard = errors.New("duplicate wildcard handler")
)

// Sentinel errors for per-event routing failures.
var (
	// ErrDestinationMismatch indicates an inbound event addressed to a
	// different destination than the executing component.
	ErrDestinationMismatch = errors.New("event not addressed to this destination")

	// ErrNoHandler indicates no handler is registered for the inbound
	// event's type.
	ErrNoHandler = errors.New("no handler registered for event type")

	// ErrTypeMismatch indicates an inbound event whose type differs from
	// the contract's accepted type.
	ErrTypeMismatch = errors.New("event type does not match contract")
)

// ConfigurationError reports a fatal construction-time failure: a
// misconfigured handler or router must not be used. It is the only
// error class that crosses the caller boundary; every per-event failure
// is returned as a system-error event instead.
type ConfigurationError struct {
	// Component identifies what was being constructed ("router",
	// "contract handler", "open handler").
	Component string
	// Err is the underlying configuration defect.
	Err error
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configure %s: %v", e.Component, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// ValidationError reports an inbound payload that failed the addressed
// contract version's accept schema. User logic is never invoked.
type ValidationError struct {
	// EventType is the inbound event's type.
	EventType string
	// Version is the contract version validated against.
	Version string
	// Err is the schema violation.
	Err error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validate %s against version %s: %v", e.EventType, e.Version, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ErrorName returns the taxonomy name carried in system-error events.
func (e *ValidationError) ErrorName() string {
	return "ValidationError"
}

// RoutingError reports a destination mismatch or a missing handler.
type RoutingError struct {
	// Source is the component that rejected the event.
	Source string
	// EventType is the inbound event's type.
	EventType string
	// Err is the routing defect.
	Err error
}

// Error implements the error interface.
func (e *RoutingError) Error() string {
	return fmt.Sprintf("route %s at %s: %v", e.EventType, e.Source, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *RoutingError) Unwrap() error {
	return e.Err
}

// ErrorName returns the taxonomy name carried in system-error events.
func (e *RoutingError) ErrorName() string {
	return "RoutingError"
}

// HandlerExecutionError wraps a failure raised by user logic or by
// synthesis of its outputs.
type HandlerExecutionError struct {
	// Source is the handler whose logic failed.
	Source string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *HandlerExecutionError) Error() string {
	return fmt.Sprintf("handler %s: %v", e.Source, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *HandlerExecutionError) Unwrap() error {
	return e.Err
}

// ErrorName returns the taxonomy name carried in system-error events.
func (e *HandlerExecutionError) ErrorName() string {
	return "HandlerExecutionError"
}

// PanicError captures a panic raised by user logic.
// It includes the stack trace at the point of recovery.
type PanicError struct {
	// Source is the handler that panicked.
	Source string
	// Value is the value passed to panic().
	Value any
	// Stack is the full stack trace at the point of panic.
	Stack string
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("handler %s panicked: %v", e.Source, e.Value)
}

// ErrorName returns the taxonomy name carried in system-error events.
func (e *PanicError) ErrorName() string {
	return "PanicError"
}

// ErrorStack returns the captured stack trace.
func (e *PanicError) ErrorStack() string {
	return e.Stack
}
