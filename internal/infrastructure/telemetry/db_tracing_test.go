package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type tracedRow struct {
	ID   int
	Name string
}

func openTracedDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&tracedRow{}))
	return db
}

func TestRegisterDBTracing_Disabled(t *testing.T) {
	db := openTracedDB(t)
	require.NoError(t, RegisterDBTracing(db, DBTracingConfig{}, zap.NewNop()))
	assert.Nil(t, db.Callback().Query().Get("telemetry:slow_query:after_query"))
}

func TestRegisterDBTracing_RecordsSpans(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	db := openTracedDB(t)
	require.NoError(t, RegisterDBTracing(db, DBTracingConfig{Enabled: true}, zap.NewNop()))

	require.NoError(t, db.Create(&tracedRow{ID: 1, Name: "banner"}).Error)
	var got tracedRow
	require.NoError(t, db.First(&got, 1).Error)

	assert.GreaterOrEqual(t, len(exporter.GetSpans()), 2)
}

func TestRegisterDBTracing_FlagsSlowQueries(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	db := openTracedDB(t)

	// every query is slower than 1ns
	require.NoError(t, RegisterDBTracing(db, DBTracingConfig{Enabled: true, SlowQueryThresh: 1}, zap.New(core)))

	var rows []tracedRow
	require.NoError(t, db.Find(&rows).Error)

	require.NotZero(t, logs.FilterMessage("Slow query").Len())
}
