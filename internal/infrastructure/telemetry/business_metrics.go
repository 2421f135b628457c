package telemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ErrMeterNil is returned when no meter is supplied
var ErrMeterNil = errors.New("telemetry: meter is nil")

// Attribute keys used by the business instruments
var (
	AttrOrderSource   = attribute.Key("order_source")
	AttrPaymentMethod = attribute.Key("payment_method")
	AttrDocumentType  = attribute.Key("document_type")
)

// DocumentDurationBuckets are the render time boundaries in seconds
var DocumentDurationBuckets = []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30}

// BusinessMetrics counts the shop's business events: orders, conversions,
// payments and rendered documents.
type BusinessMetrics struct {
	ordersCreated    metric.Int64Counter
	orderAmount      metric.Float64Counter
	quotesConverted  metric.Int64Counter
	paymentsRecorded metric.Int64Counter
	paymentAmount    metric.Float64Counter
	documentDuration metric.Float64Histogram
}

// NewBusinessMetrics registers the instruments on meter
func NewBusinessMetrics(meter metric.Meter) (*BusinessMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	bm := &BusinessMetrics{}
	var err error

	if bm.ordersCreated, err = meter.Int64Counter("printdesk.orders.created",
		metric.WithDescription("Orders created, direct or converted from a quote"),
		metric.WithUnit("{order}")); err != nil {
		return nil, fmt.Errorf("failed to create orders counter: %w", err)
	}
	if bm.orderAmount, err = meter.Float64Counter("printdesk.orders.amount",
		metric.WithDescription("Sum of the totals of created orders"),
		metric.WithUnit("BRL")); err != nil {
		return nil, fmt.Errorf("failed to create order amount counter: %w", err)
	}
	if bm.quotesConverted, err = meter.Int64Counter("printdesk.quotes.converted",
		metric.WithDescription("Quotes converted into orders"),
		metric.WithUnit("{quote}")); err != nil {
		return nil, fmt.Errorf("failed to create conversions counter: %w", err)
	}
	if bm.paymentsRecorded, err = meter.Int64Counter("printdesk.payments.recorded",
		metric.WithDescription("Payments recorded against orders"),
		metric.WithUnit("{payment}")); err != nil {
		return nil, fmt.Errorf("failed to create payments counter: %w", err)
	}
	if bm.paymentAmount, err = meter.Float64Counter("printdesk.payments.amount",
		metric.WithDescription("Sum of recorded payment amounts"),
		metric.WithUnit("BRL")); err != nil {
		return nil, fmt.Errorf("failed to create payment amount counter: %w", err)
	}
	if bm.documentDuration, err = meter.Float64Histogram("printdesk.documents.render_duration",
		metric.WithDescription("Time to render a PDF document"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(DocumentDurationBuckets...)); err != nil {
		return nil, fmt.Errorf("failed to create document histogram: %w", err)
	}

	return bm, nil
}

// RecordOrderCreated counts an order and adds its total
func (bm *BusinessMetrics) RecordOrderCreated(ctx context.Context, source string, total decimal.Decimal) {
	attrs := metric.WithAttributes(AttrOrderSource.String(source))
	bm.ordersCreated.Add(ctx, 1, attrs)
	bm.orderAmount.Add(ctx, total.InexactFloat64(), attrs)
}

// RecordQuoteConverted counts a quote conversion
func (bm *BusinessMetrics) RecordQuoteConverted(ctx context.Context) {
	bm.quotesConverted.Add(ctx, 1)
}

// RecordPayment counts a payment and adds its amount per method
func (bm *BusinessMetrics) RecordPayment(ctx context.Context, method string, amount decimal.Decimal) {
	attrs := metric.WithAttributes(AttrPaymentMethod.String(method))
	bm.paymentsRecorded.Add(ctx, 1, attrs)
	bm.paymentAmount.Add(ctx, amount.InexactFloat64(), attrs)
}

// RecordDocumentRendered observes the time taken to produce a PDF
func (bm *BusinessMetrics) RecordDocumentRendered(ctx context.Context, docType string, duration time.Duration) {
	bm.documentDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(AttrDocumentType.String(docType)))
}
