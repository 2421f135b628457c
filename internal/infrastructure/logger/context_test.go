package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func contextWithSpan() (context.Context, trace.SpanContext) {
	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f, 0x10},
		SpanID:     trace.SpanID{0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f, 0x10, 0x11},
		TraceFlags: trace.FlagsSampled,
	})
	return trace.ContextWithSpanContext(context.Background(), sc), sc
}

func TestWithContext_FromContext(t *testing.T) {
	log := zap.NewExample()
	ctx := WithContext(context.Background(), log)

	assert.Same(t, log, FromContext(ctx))
}

func TestFromContext_Missing(t *testing.T) {
	log := FromContext(context.Background())

	assert.NotNil(t, log)
	assert.NotPanics(t, func() { log.Info("discarded") })
}

func TestWithRequestID(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)

	ctx, log := WithRequestID(context.Background(), zap.New(core), "req-42")
	log.Info("hello")

	assert.Equal(t, "req-42", GetRequestID(ctx))
	assert.Equal(t, "req-42", recorded.All()[0].ContextMap()["request_id"])
	assert.Same(t, log, FromContext(ctx))
}

func TestWithUser(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)

	ctx, log := WithUser(context.Background(), zap.New(core), "7d1c", "balcao")
	log.Info("Quote converted")

	assert.Equal(t, "7d1c", GetUserID(ctx))
	assert.Equal(t, "balcao", GetUsername(ctx))
	fields := recorded.All()[0].ContextMap()
	assert.Equal(t, "7d1c", fields["user_id"])
	assert.Equal(t, "balcao", fields["username"])
}

func TestGetters_EmptyContext(t *testing.T) {
	ctx := context.Background()

	assert.Empty(t, GetRequestID(ctx))
	assert.Empty(t, GetUserID(ctx))
	assert.Empty(t, GetUsername(ctx))
	assert.Empty(t, GetTraceID(ctx))
}

func TestGetTraceID_WithSpan(t *testing.T) {
	ctx, sc := contextWithSpan()

	assert.Equal(t, sc.TraceID().String(), GetTraceID(ctx))
}

func TestWithTraceContext_NoSpan(t *testing.T) {
	base := zap.NewNop()

	assert.Same(t, base, WithTraceContext(context.Background(), base))
}

func TestWithTraceContext_WithSpan(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	ctx, sc := contextWithSpan()

	WithTraceContext(ctx, zap.New(core)).Info("traced")

	fields := recorded.All()[0].ContextMap()
	assert.Equal(t, sc.TraceID().String(), fields["trace_id"])
	assert.Equal(t, sc.SpanID().String(), fields["span_id"])
}

func TestL_CombinesContextLoggerAndTrace(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	ctx, sc := contextWithSpan()
	ctx, _ = WithRequestID(ctx, zap.New(core), "req-7")

	L(ctx).Info("Payment recorded")

	fields := recorded.All()[0].ContextMap()
	assert.Equal(t, "req-7", fields["request_id"])
	assert.Equal(t, sc.TraceID().String(), fields["trace_id"])
}

func TestL_WithoutLogger(t *testing.T) {
	assert.NotPanics(t, func() { L(context.Background()).Warn("nobody listens") })
}
