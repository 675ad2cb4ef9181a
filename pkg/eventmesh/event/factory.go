package event

import "errors"

// ErrTypeRequired indicates a record with no event type.
var ErrTypeRequired = errors.New("event type is required")

// ErrSourceRequired indicates a record with no source.
var ErrSourceRequired = errors.New("event source is required")

// New validates a plain record and returns it as an immutable Event.
// The record's Type and Data are checked against the validator when one
// is supplied (a versioned contract satisfies EmitValidator); a missing
// ID is filled in. Producers use this to build well-formed inbound
// events without hand-rolling the envelope.
func New(rec Event, v EmitValidator) (*Event, error) {
	if rec.Type == "" {
		return nil, ErrTypeRequired
	}
	if rec.Source == "" {
		return nil, ErrSourceRequired
	}
	if v != nil {
		if err := v.ValidateEmit(rec.Type, rec.Data); err != nil {
			return nil, err
		}
	}

	out := rec
	if out.ID == "" {
		out.ID = NewID()
	}
	return &out, nil
}
