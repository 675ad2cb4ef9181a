package event

import "errors"

// ErrorData is the payload of a system-error event.
type ErrorData struct {
	ErrorName    string `json:"errorName"`
	ErrorMessage string `json:"errorMessage"`
	ErrorStack   string `json:"errorStack"`
}

// namedError is implemented by errors that know their taxonomy name
// (ValidationError, RoutingError, ...). Errors without a name report
// "Error".
type namedError interface {
	ErrorName() string
}

// stackedError is implemented by errors that captured a stack trace at
// the failure point (panics).
type stackedError interface {
	ErrorStack() string
}

// ConvertError produces exactly one system-error event for a failed
// execution. The event is addressed to the inbound event's Source - the
// redirect chain never applies to failures, the original sender always
// learns about them. ConvertError itself never fails.
func ConvertError(err error, hdr TraceHeaders, errorType, source string, inbound *Event, units float64) *Event {
	data := ErrorData{
		ErrorName:    "Error",
		ErrorMessage: err.Error(),
	}
	var named namedError
	if errors.As(err, &named) {
		data.ErrorName = named.ErrorName()
	}
	var stacked stackedError
	if errors.As(err, &stacked) {
		data.ErrorStack = stacked.ErrorStack()
	}

	to := inbound.Source
	return &Event{
		ID:             NewID(),
		Type:           errorType,
		Source:         source,
		To:             &to,
		Subject:        inbound.Subject,
		Data:           data,
		TraceParent:    hdr.TraceParent,
		TraceState:     hdr.TraceState,
		ExecutionUnits: units,
	}
}
