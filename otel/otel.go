package otel

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/octabyte/skillswap-client/utils/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.uber.org/zap"
)

// OtelConfig holds the configuration for OpenTelemetry
type OtelConfig struct {
	Enabled        bool              // Enable/disable OpenTelemetry
	Endpoint       string            // OTLP endpoint, host:port or URL
	ServiceName    string            // Reported service.name
	ServiceVersion string            // Reported service.version, defaults to "dev"
	Headers        map[string]string // Exporter headers (e.g. {"authorization": "key"})
	Environment    string            // deployment.environment
	SampleRate     float64           // Trace sampling ratio, 0.0 to 1.0
}

// InitOpenTelemetry installs global trace and metric providers exporting over
// OTLP/HTTP. The returned function flushes and stops both.
func InitOpenTelemetry(ctx context.Context, cfg OtelConfig) (func(), error) {
	if !cfg.Enabled {
		return func() {}, nil
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	res, err := newResource(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	tracerShutdown, err := setupTracing(ctx, res, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to setup tracing: %w", err)
	}

	metricsShutdown, err := setupMetrics(ctx, res, cfg)
	if err != nil {
		_ = tracerShutdown(ctx)
		return nil, fmt.Errorf("failed to setup metrics: %w", err)
	}

	shutdown := func() {
		if err := tracerShutdown(context.Background()); err != nil {
			logger.LogWarn("error shutting down tracer provider", zap.Error(err))
		}
		if err := metricsShutdown(context.Background()); err != nil {
			logger.LogWarn("error shutting down meter provider", zap.Error(err))
		}
	}

	return shutdown, nil
}

func validateConfig(cfg OtelConfig) error {
	if cfg.ServiceName == "" {
		return fmt.Errorf("ServiceName is required")
	}
	if cfg.Endpoint == "" {
		return fmt.Errorf("Endpoint is required")
	}
	if cfg.SampleRate < 0.0 || cfg.SampleRate > 1.0 {
		return fmt.Errorf("SampleRate must be between 0.0 and 1.0, got %f", cfg.SampleRate)
	}
	return nil
}

func newResource(cfg OtelConfig) (*resource.Resource, error) {
	hostName, _ := os.Hostname()

	version := cfg.ServiceVersion
	if version == "" {
		version = "dev"
	}

	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(version),
		semconv.DeploymentEnvironment(cfg.Environment),
		semconv.HostName(hostName),
	), nil
}

// endpoint strips any scheme from the configured endpoint and reports
// whether the exporter should skip TLS.
func endpoint(raw string) (string, bool) {
	switch {
	case strings.HasPrefix(raw, "https://"):
		return strings.TrimPrefix(raw, "https://"), false
	case strings.HasPrefix(raw, "http://"):
		return strings.TrimPrefix(raw, "http://"), true
	default:
		return raw, true
	}
}

func setupTracing(ctx context.Context, res *resource.Resource, cfg OtelConfig) (func(context.Context) error, error) {
	host, insecure := endpoint(cfg.Endpoint)
	exporterOpts := []otlptracehttp.Option{
		otlptracehttp.WithEndpoint(host),
	}
	if len(cfg.Headers) > 0 {
		exporterOpts = append(exporterOpts, otlptracehttp.WithHeaders(cfg.Headers))
	}
	if insecure {
		exporterOpts = append(exporterOpts, otlptracehttp.WithInsecure())
	}

	traceExporter, err := otlptracehttp.New(ctx, exporterOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	traceProvider := trace.NewTracerProvider(
		trace.WithBatcher(traceExporter),
		trace.WithResource(res),
		trace.WithSampler(trace.ParentBased(trace.TraceIDRatioBased(cfg.SampleRate))),
	)

	otel.SetTracerProvider(traceProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return traceProvider.Shutdown, nil
}

func setupMetrics(ctx context.Context, res *resource.Resource, cfg OtelConfig) (func(context.Context) error, error) {
	host, insecure := endpoint(cfg.Endpoint)
	exporterOpts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(host),
	}
	if len(cfg.Headers) > 0 {
		exporterOpts = append(exporterOpts, otlpmetrichttp.WithHeaders(cfg.Headers))
	}
	if insecure {
		exporterOpts = append(exporterOpts, otlpmetrichttp.WithInsecure())
	}

	metricExporter, err := otlpmetrichttp.New(ctx, exporterOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create metric exporter: %w", err)
	}

	meterProvider := metric.NewMeterProvider(
		metric.WithReader(metric.NewPeriodicReader(metricExporter)),
		metric.WithResource(res),
	)

	otel.SetMeterProvider(meterProvider)

	return meterProvider.Shutdown, nil
}
