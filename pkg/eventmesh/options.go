package eventmesh

import (
	"context"
	"log/slog"
	"time"

	"github.com/randalmurphal/eventmesh/pkg/eventmesh/event"
	"github.com/randalmurphal/eventmesh/pkg/eventmesh/journal"
	"github.com/randalmurphal/eventmesh/pkg/eventmesh/observability"
)

// options holds the ambient collaborators shared by all handler kinds.
type options struct {
	logger  *slog.Logger
	spans   observability.SpanManager
	metrics observability.MetricsRecorder
	journal journal.Store
	domain  *string
}

// defaultOptions returns the default collaborator set. The span manager
// and metrics recorder use the global OTel providers, which are no-ops
// until the host configures them.
func defaultOptions() options {
	return options{
		spans:   observability.NewSpanManager(),
		metrics: observability.NewMetricsRecorder(),
	}
}

// Option configures a handler or router at construction time.
type Option func(*options)

// WithLogger sets the structured logger. Nil disables logging.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithSpanManager replaces the span manager, e.g. with
// observability.NoopSpanManager{} to disable tracing.
func WithSpanManager(spans observability.SpanManager) Option {
	return func(o *options) {
		if spans != nil {
			o.spans = spans
		}
	}
}

// WithMetrics replaces the metrics recorder.
func WithMetrics(metrics observability.MetricsRecorder) Option {
	return func(o *options) {
		if metrics != nil {
			o.metrics = metrics
		}
	}
}

// WithJournal records one entry per Execute call in the given store.
// Append failures are logged and never fail the dispatch.
func WithJournal(store journal.Store) Option {
	return func(o *options) {
		o.journal = store
	}
}

// WithDomain sets the fallback routing domain used when an output
// record inherits its domain and the inbound event carries none. For
// contract handlers this overrides the contract's default domain.
func WithDomain(domain string) Option {
	return func(o *options) {
		d := domain
		o.domain = &d
	}
}

// observe records the outcome of one Execute call: structured log,
// metrics, and the optional journal entry.
func (o *options) observe(ctx context.Context, source string, evt *event.Event, events []*event.Event, err error, start time.Time, units float64) {
	if err != nil {
		observability.LogExecutionError(o.logger, source, evt.Type, err)
	} else {
		observability.LogDispatch(o.logger, source, evt.Type, len(events))
	}

	o.metrics.RecordExecution(ctx, source, evt.Type, time.Since(start), err != nil)
	o.metrics.RecordOutbound(ctx, source, len(events), units)

	if o.journal != nil {
		entry := journal.Entry{
			EventID:   evt.ID,
			EventType: evt.Type,
			Source:    source,
			Outcome:   journal.OutcomeOK,
			Outbound:  len(events),
			Recorded:  time.Now().UTC(),
		}
		if err != nil {
			entry.Outcome = journal.OutcomeError
			entry.Detail = err.Error()
		}
		if jerr := o.journal.Append(ctx, entry); jerr != nil {
			observability.LogJournalError(o.logger, source, jerr)
		}
	}
}
