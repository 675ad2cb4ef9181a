package event_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/eventmesh/pkg/eventmesh/event"
)

// namedTestError carries a taxonomy name and a stack.
type namedTestError struct {
	msg   string
	stack string
}

func (e *namedTestError) Error() string      { return e.msg }
func (e *namedTestError) ErrorName() string  { return "ValidationError" }
func (e *namedTestError) ErrorStack() string { return e.stack }

// TestConvertError verifies the shape of a converted failure.
func TestConvertError(t *testing.T) {
	inbound := inboundEvent()
	inbound.RedirectTo = strPtr("somewhere.else")

	evt := event.ConvertError(
		&namedTestError{msg: "bad payload", stack: "stacktrace"},
		event.TraceHeaders{TraceParent: "00-aa-bb-01"},
		"sys.com.pay.charge.error",
		"payment.service",
		inbound,
		3,
	)

	assert.Equal(t, "sys.com.pay.charge.error", evt.Type)
	assert.Equal(t, "payment.service", evt.Source)
	assert.Equal(t, "s1", evt.Subject)
	assert.Equal(t, 3.0, evt.ExecutionUnits)
	assert.Equal(t, "00-aa-bb-01", evt.TraceParent)
	assert.NotEmpty(t, evt.ID)

	// Error events bypass the redirect chain and always target the
	// inbound event's source.
	require.NotNil(t, evt.To)
	assert.Equal(t, "caller.x", *evt.To)

	data, ok := evt.Data.(event.ErrorData)
	require.True(t, ok)
	assert.Equal(t, "ValidationError", data.ErrorName)
	assert.Equal(t, "bad payload", data.ErrorMessage)
	assert.Equal(t, "stacktrace", data.ErrorStack)
}

// TestConvertErrorPlain verifies defaults for errors without a taxonomy
// name or stack.
func TestConvertErrorPlain(t *testing.T) {
	evt := event.ConvertError(
		errors.New("boom"),
		event.TraceHeaders{},
		"sys.payment.service.error",
		"payment.service",
		inboundEvent(),
		1,
	)

	data, ok := evt.Data.(event.ErrorData)
	require.True(t, ok)
	assert.Equal(t, "Error", data.ErrorName)
	assert.Equal(t, "boom", data.ErrorMessage)
	assert.Empty(t, data.ErrorStack)
}

// TestConvertErrorWrapped verifies the taxonomy name survives wrapping.
func TestConvertErrorWrapped(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", &namedTestError{msg: "inner"})
	evt := event.ConvertError(wrapped, event.TraceHeaders{}, "sys.x.error", "x", inboundEvent(), 0)

	data, ok := evt.Data.(event.ErrorData)
	require.True(t, ok)
	assert.Equal(t, "ValidationError", data.ErrorName)
	assert.Equal(t, "outer: inner", data.ErrorMessage)
}
