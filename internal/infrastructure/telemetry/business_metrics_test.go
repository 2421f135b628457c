package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newTestMetrics(t *testing.T) (*BusinessMetrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	bm, err := NewBusinessMetrics(provider.Meter("test"))
	require.NoError(t, err)
	return bm, reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := make(map[string]metricdata.Metrics)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func TestNewBusinessMetrics_NilMeter(t *testing.T) {
	_, err := NewBusinessMetrics(nil)
	assert.ErrorIs(t, err, ErrMeterNil)
}

func TestBusinessMetrics_Payments(t *testing.T) {
	bm, reader := newTestMetrics(t)
	ctx := context.Background()

	bm.RecordPayment(ctx, "PIX", decimal.RequireFromString("40"))
	bm.RecordPayment(ctx, "PIX", decimal.RequireFromString("60.50"))
	bm.RecordPayment(ctx, "CASH", decimal.RequireFromString("10"))

	metrics := collect(t, reader)

	count, ok := metrics["printdesk.payments.recorded"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	byMethod := map[string]int64{}
	for _, dp := range count.DataPoints {
		method, _ := dp.Attributes.Value(AttrPaymentMethod)
		byMethod[method.AsString()] = dp.Value
	}
	assert.Equal(t, map[string]int64{"PIX": 2, "CASH": 1}, byMethod)

	amount, ok := metrics["printdesk.payments.amount"].Data.(metricdata.Sum[float64])
	require.True(t, ok)
	var total float64
	for _, dp := range amount.DataPoints {
		total += dp.Value
	}
	assert.InDelta(t, 110.5, total, 0.001)
}

func TestBusinessMetrics_OrdersAndConversions(t *testing.T) {
	bm, reader := newTestMetrics(t)
	ctx := context.Background()

	bm.RecordOrderCreated(ctx, "quote", decimal.RequireFromString("100"))
	bm.RecordQuoteConverted(ctx)
	bm.RecordOrderCreated(ctx, "direct", decimal.RequireFromString("25"))

	metrics := collect(t, reader)

	orders := metrics["printdesk.orders.created"].Data.(metricdata.Sum[int64])
	assert.Len(t, orders.DataPoints, 2)

	converted := metrics["printdesk.quotes.converted"].Data.(metricdata.Sum[int64])
	require.Len(t, converted.DataPoints, 1)
	assert.Equal(t, int64(1), converted.DataPoints[0].Value)
}

func TestBusinessMetrics_DocumentDuration(t *testing.T) {
	bm, reader := newTestMetrics(t)

	bm.RecordDocumentRendered(context.Background(), "quote", 750*time.Millisecond)

	hist, ok := collect(t, reader)["printdesk.documents.render_duration"].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, hist.DataPoints, 1)
	assert.Equal(t, uint64(1), hist.DataPoints[0].Count)
	assert.InDelta(t, 0.75, hist.DataPoints[0].Sum, 0.0001)
	assert.Equal(t, DocumentDurationBuckets, hist.DataPoints[0].Bounds)
}
