package eventmesh_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/eventmesh/pkg/eventmesh/contract"
	"github.com/randalmurphal/eventmesh/pkg/eventmesh/event"
)

func strPtr(s string) *string {
	return &s
}

const chargeAcceptSchema = `{
	"type": "object",
	"properties": {"amount": {"type": "number"}},
	"required": ["amount"]
}`

const chargeDoneSchema = `{
	"type": "object",
	"properties": {"ok": {"type": "boolean"}},
	"required": ["ok"]
}`

// newChargeContract declares com.pay.charge at 1.0.0 and 2.0.0, both
// emitting evt.pay.charge.done.
func newChargeContract(t *testing.T) *contract.Contract {
	t.Helper()
	c, err := contract.New(contract.Definition{
		Type: "com.pay.charge",
		Versions: map[string]contract.VersionDefinition{
			"1.0.0": {
				Accepts: chargeAcceptSchema,
				Emits:   map[string]string{"evt.pay.charge.done": chargeDoneSchema},
			},
			"2.0.0": {
				Accepts: chargeAcceptSchema,
				Emits:   map[string]string{"evt.pay.charge.done": chargeDoneSchema},
			},
		},
	})
	require.NoError(t, err)
	return c
}

// newChargeEvent builds a well-formed inbound charge event addressed to
// the given recipient.
func newChargeEvent(to string) *event.Event {
	evt := &event.Event{
		ID:      event.NewID(),
		Type:    "com.pay.charge",
		Source:  "caller.x",
		Subject: "s1",
		Data:    map[string]any{"amount": 10.0},
	}
	if to != "" {
		evt.To = &to
	}
	return evt
}

// errorData extracts the system-error payload from an event.
func errorData(t *testing.T, evt *event.Event) event.ErrorData {
	t.Helper()
	data, ok := evt.Data.(event.ErrorData)
	require.True(t, ok, "event %s does not carry ErrorData", evt.Type)
	return data
}
