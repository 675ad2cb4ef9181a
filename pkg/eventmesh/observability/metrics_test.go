package observability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// setupMetricsTest creates a test meter provider with a manual reader.
func setupMetricsTest(t *testing.T) *sdkmetric.ManualReader {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	original := otel.GetMeterProvider()
	otel.SetMeterProvider(mp)
	t.Cleanup(func() {
		otel.SetMeterProvider(original)
		_ = mp.Shutdown(context.Background())
	})

	return reader
}

// collect reads the current metric data keyed by instrument name.
func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := make(map[string]metricdata.Metrics)
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func counterValue(t *testing.T, m metricdata.Metrics) int64 {
	t.Helper()
	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok, "expected int64 sum data for %s", m.Name)
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

func TestRecordExecution(t *testing.T) {
	reader := setupMetricsTest(t)

	m, err := newOtelMetrics()
	require.NoError(t, err)

	m.RecordExecution(context.Background(), "payment.service", "com.pay.charge", 12*time.Millisecond, false)
	m.RecordExecution(context.Background(), "payment.service", "com.pay.charge", 3*time.Millisecond, true)

	metrics := collect(t, reader)

	executions, ok := metrics["eventmesh.executions"]
	require.True(t, ok)
	assert.Equal(t, int64(2), counterValue(t, executions))

	failures, ok := metrics["eventmesh.failures"]
	require.True(t, ok)
	assert.Equal(t, int64(1), counterValue(t, failures))

	latency, ok := metrics["eventmesh.execute.latency_ms"]
	require.True(t, ok)
	hist, ok := latency.Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, hist.DataPoints, 1)
	assert.Equal(t, uint64(2), hist.DataPoints[0].Count)
}

func TestRecordOutbound(t *testing.T) {
	reader := setupMetricsTest(t)

	m, err := newOtelMetrics()
	require.NoError(t, err)

	m.RecordOutbound(context.Background(), "payment.service", 3, 2.5)
	m.RecordOutbound(context.Background(), "payment.service", 1, 1.0)

	metrics := collect(t, reader)

	outbound, ok := metrics["eventmesh.outbound_events"]
	require.True(t, ok)
	assert.Equal(t, int64(4), counterValue(t, outbound))

	units, ok := metrics["eventmesh.execution_units"]
	require.True(t, ok)
	hist, ok := units.Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, hist.DataPoints, 1)
	assert.Equal(t, uint64(2), hist.DataPoints[0].Count)
	assert.Equal(t, 3.5, hist.DataPoints[0].Sum)
}

func TestNewMetricsRecorder(t *testing.T) {
	setupMetricsTest(t)

	// Never returns nil, regardless of provider state.
	recorder := NewMetricsRecorder()
	require.NotNil(t, recorder)

	recorder.RecordExecution(context.Background(), "payment.service", "com.pay.charge", time.Millisecond, false)
	recorder.RecordOutbound(context.Background(), "payment.service", 1, 1.0)
}
