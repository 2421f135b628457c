package logger

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

const defaultSlowQuery = 200 * time.Millisecond

// GormConfig selects what the SQL log shows. Level takes the zap level
// names plus "silent".
type GormConfig struct {
	Level         string
	SlowThreshold time.Duration
	LogFullSQL    bool
}

var gormLevels = map[string]gormlogger.LogLevel{
	"silent": gormlogger.Silent,
	"error":  gormlogger.Error,
	"warn":   gormlogger.Warn,
	"info":   gormlogger.Info,
	"debug":  gormlogger.Info,
}

// GormLevel maps a level name, falling back to warn
func GormLevel(name string) gormlogger.LogLevel {
	if level, ok := gormLevels[name]; ok {
		return level
	}
	return gormlogger.Warn
}

// GormLogger sends gorm's SQL log to zap under the "gorm" name, tagged with
// the request and trace ids found in the statement context. Record not
// found is never logged; repositories map it to domain errors.
type GormLogger struct {
	base    *zap.Logger
	level   gormlogger.LogLevel
	slow    time.Duration
	fullSQL bool
}

var _ gormlogger.Interface = (*GormLogger)(nil)

func NewGormLogger(base *zap.Logger, cfg GormConfig) *GormLogger {
	slow := cfg.SlowThreshold
	if slow == 0 {
		slow = defaultSlowQuery
	}
	return &GormLogger{
		base:    base.Named("gorm"),
		level:   GormLevel(cfg.Level),
		slow:    slow,
		fullSQL: cfg.LogFullSQL,
	}
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	copied := *l
	copied.level = level
	return &copied
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...any) {
	l.printf(ctx, gormlogger.Info, msg, data)
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...any) {
	l.printf(ctx, gormlogger.Warn, msg, data)
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...any) {
	l.printf(ctx, gormlogger.Error, msg, data)
}

func (l *GormLogger) printf(ctx context.Context, at gormlogger.LogLevel, msg string, data []any) {
	if l.level < at {
		return
	}
	sugar := l.scoped(ctx).Sugar()
	switch at {
	case gormlogger.Error:
		sugar.Errorf(msg, data...)
	case gormlogger.Warn:
		sugar.Warnf(msg, data...)
	default:
		sugar.Infof(msg, data...)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level == gormlogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	failed := err != nil && !errors.Is(err, gormlogger.ErrRecordNotFound)
	slow := l.slow > 0 && elapsed > l.slow

	switch {
	case failed && l.level >= gormlogger.Error:
		sql, rows := fc()
		l.scoped(ctx).Error("SQL error", zap.String("sql", sql), zap.Int64("rows", rows),
			zap.Duration("elapsed", elapsed), zap.Error(err))
	case !failed && slow && l.level >= gormlogger.Warn:
		sql, rows := fc()
		l.scoped(ctx).Warn("Slow SQL", zap.String("sql", sql), zap.Int64("rows", rows),
			zap.Duration("elapsed", elapsed), zap.Duration("threshold", l.slow))
	case err == nil && l.level >= gormlogger.Info:
		sql, rows := fc()
		fields := []zap.Field{zap.Int64("rows", rows), zap.Duration("elapsed", elapsed)}
		if l.fullSQL {
			fields = append(fields, zap.String("sql", sql))
		}
		l.scoped(ctx).Debug("SQL query", fields...)
	}
}

func (l *GormLogger) scoped(ctx context.Context) *zap.Logger {
	if ctx == nil {
		return l.base
	}
	log := WithTraceContext(ctx, l.base)
	if id := GetRequestID(ctx); id != "" {
		log = log.With(zap.String("request_id", id))
	}
	return log
}
