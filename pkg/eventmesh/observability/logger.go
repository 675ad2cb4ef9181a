// Package observability provides the ambient observability features of
// eventmesh: structured logging, metrics, and distributed tracing.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry, with W3C trace-context extraction
//     from inbound events and injection onto outbound events
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
)

// EnrichLogger adds eventmesh context to a logger.
// Returns a new logger with source, event_id, and event_type fields.
func EnrichLogger(logger *slog.Logger, source, eventID, eventType string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("source", source),
		slog.String("event_id", eventID),
		slog.String("event_type", eventType),
	)
}

// LogDispatch logs a completed dispatch.
func LogDispatch(logger *slog.Logger, source, eventType string, outbound int) {
	if logger == nil {
		return
	}
	logger.Debug("event dispatched",
		slog.String("source", source),
		slog.String("event_type", eventType),
		slog.Int("outbound_events", outbound),
	)
}

// LogVersionFallback logs that a dataschema did not resolve to a
// declared contract version and the latest version was used instead.
func LogVersionFallback(logger *slog.Logger, source, dataschema, version string) {
	if logger == nil {
		return
	}
	logger.Warn("dataschema version unresolvable, using latest",
		slog.String("source", source),
		slog.String("dataschema", dataschema),
		slog.String("version", version),
	)
}

// LogExecutionError logs a failure that was converted to a
// system-error event.
func LogExecutionError(logger *slog.Logger, source, eventType string, err error) {
	if logger == nil {
		return
	}
	logger.Error("execution failed",
		slog.String("source", source),
		slog.String("event_type", eventType),
		slog.String("error", err.Error()),
	)
}

// LogJournalError logs a journal append failure (non-fatal).
func LogJournalError(logger *slog.Logger, source string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("journal append failed",
		slog.String("source", source),
		slog.String("error", err.Error()),
	)
}
