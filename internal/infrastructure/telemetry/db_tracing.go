package telemetry

import (
	"fmt"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	dbStartKey              = "telemetry:db_start"
	defaultSlowQueryThresh  = 200 * time.Millisecond
	slowQueryCallbackPrefix = "telemetry:slow_query"
)

// DBTracingConfig controls the gorm instrumentation
type DBTracingConfig struct {
	Enabled         bool
	LogFullSQL      bool // include bound values in db.statement
	SlowQueryThresh time.Duration
}

// RegisterDBTracing installs the otelgorm plugin and a slow query marker.
// Queries slower than the threshold get db.slow_query=true on their span
// and a warning in the log.
func RegisterDBTracing(db *gorm.DB, cfg DBTracingConfig, logger *zap.Logger) error {
	if !cfg.Enabled {
		return nil
	}

	opts := []otelgorm.Option{otelgorm.WithDBName(db.Dialector.Name())}
	if !cfg.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return fmt.Errorf("failed to register otelgorm: %w", err)
	}

	thresh := cfg.SlowQueryThresh
	if thresh <= 0 {
		thresh = defaultSlowQueryThresh
	}

	before := func(tx *gorm.DB) {
		tx.InstanceSet(dbStartKey, time.Now())
	}
	after := func(tx *gorm.DB) {
		v, ok := tx.InstanceGet(dbStartKey)
		if !ok {
			return
		}
		elapsed := time.Since(v.(time.Time))
		if elapsed < thresh {
			return
		}
		trace.SpanFromContext(tx.Statement.Context).SetAttributes(
			attribute.Bool("db.slow_query", true),
			attribute.Int64("db.duration_ms", elapsed.Milliseconds()),
		)
		logger.Warn("Slow query",
			zap.String("table", tx.Statement.Table),
			zap.Duration("elapsed", elapsed),
			zap.Int64("rows", tx.RowsAffected),
		)
	}

	cb := db.Callback()
	for _, err := range []error{
		cb.Create().Before("gorm:create").Register(slowQueryCallbackPrefix+":before_create", before),
		cb.Create().After("gorm:create").Register(slowQueryCallbackPrefix+":after_create", after),
		cb.Query().Before("gorm:query").Register(slowQueryCallbackPrefix+":before_query", before),
		cb.Query().After("gorm:query").Register(slowQueryCallbackPrefix+":after_query", after),
		cb.Update().Before("gorm:update").Register(slowQueryCallbackPrefix+":before_update", before),
		cb.Update().After("gorm:update").Register(slowQueryCallbackPrefix+":after_update", after),
		cb.Delete().Before("gorm:delete").Register(slowQueryCallbackPrefix+":before_delete", before),
		cb.Delete().After("gorm:delete").Register(slowQueryCallbackPrefix+":after_delete", after),
		cb.Row().Before("gorm:row").Register(slowQueryCallbackPrefix+":before_row", before),
		cb.Row().After("gorm:row").Register(slowQueryCallbackPrefix+":after_row", after),
		cb.Raw().Before("gorm:raw").Register(slowQueryCallbackPrefix+":before_raw", before),
		cb.Raw().After("gorm:raw").Register(slowQueryCallbackPrefix+":after_raw", after),
	} {
		if err != nil {
			return fmt.Errorf("failed to register slow query callback: %w", err)
		}
	}

	logger.Info("Database tracing enabled",
		zap.Bool("log_full_sql", cfg.LogFullSQL),
		zap.Duration("slow_query_threshold", thresh),
	)
	return nil
}
