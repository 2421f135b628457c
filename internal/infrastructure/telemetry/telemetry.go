// Package telemetry wires OpenTelemetry traces, metrics and logs, plus
// Pyroscope continuous profiling, for the PrintDesk server.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/printdesk/backend/internal/infrastructure/config"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
	"go.uber.org/zap"
)

const (
	serviceVersion  = "1.0.0"
	shutdownTimeout = 10 * time.Second
)

// Config holds the exporter settings shared by every signal
type Config struct {
	Enabled           bool
	CollectorEndpoint string
	SamplingRatio     float64
	ServiceName       string
	Insecure          bool
	MetricsEnabled    bool
	MetricsInterval   time.Duration
	LogsEnabled       bool
	ProfilingEnabled  bool
	PyroscopeEndpoint string
}

// FromConfig builds the telemetry settings from the application configuration
func FromConfig(cfg config.TelemetryConfig) Config {
	return Config{
		Enabled:           cfg.Enabled,
		CollectorEndpoint: cfg.CollectorEndpoint,
		SamplingRatio:     cfg.SamplingRatio,
		ServiceName:       cfg.ServiceName,
		Insecure:          cfg.Insecure,
		MetricsEnabled:    cfg.Enabled && cfg.MetricsEnabled,
		MetricsInterval:   cfg.MetricsInterval,
		LogsEnabled:       cfg.Enabled && cfg.LogsEnabled,
		ProfilingEnabled:  cfg.ProfilingEnabled,
		PyroscopeEndpoint: cfg.PyroscopeEndpoint,
	}
}

// Telemetry owns the providers started for the process
type Telemetry struct {
	Tracer   *TracerProvider
	Meter    *MeterProvider
	Logs     *LoggerProvider
	Profiler *Profiler
}

// Setup starts every enabled signal. Disabled signals get no-op providers,
// so callers never need to nil-check.
func Setup(ctx context.Context, cfg Config, logger *zap.Logger) (*Telemetry, error) {
	t := &Telemetry{}
	var err error

	if t.Tracer, err = NewTracerProvider(ctx, cfg, logger); err != nil {
		return nil, err
	}
	if t.Meter, err = NewMeterProvider(ctx, cfg, logger); err != nil {
		_ = t.Tracer.Shutdown(ctx)
		return nil, err
	}
	if t.Logs, err = NewLoggerProvider(ctx, cfg, logger); err != nil {
		_ = t.Meter.Shutdown(ctx)
		_ = t.Tracer.Shutdown(ctx)
		return nil, err
	}
	if t.Profiler, err = NewProfiler(cfg, logger); err != nil {
		_ = t.Logs.Shutdown(ctx)
		_ = t.Meter.Shutdown(ctx)
		_ = t.Tracer.Shutdown(ctx)
		return nil, err
	}

	// span profiles need a running profiler
	if t.Profiler.IsRunning() {
		t.Tracer.EnableSpanProfiles()
	}

	return t, nil
}

// Shutdown flushes and stops every provider, in reverse start order
func (t *Telemetry) Shutdown(ctx context.Context) error {
	return errors.Join(
		t.Profiler.Stop(),
		t.Logs.Shutdown(ctx),
		t.Meter.Shutdown(ctx),
		t.Tracer.Shutdown(ctx),
	)
}

func newResource(serviceName string) (*resource.Resource, error) {
	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}
	return res, nil
}
