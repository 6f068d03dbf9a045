package tracing

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/nextlevelbuilder/toolgate/internal/config"
)

// Settings is the subset of config.TelemetryConfig the provider needs.
type Settings = config.TelemetryConfig

// Init configures the global trace provider from cfg. When cfg is nil or
// cfg.Enabled is false, it leaves the global provider as it is (otel's
// default no-op provider unless another was installed) and returns a
// no-op shutdown func. Callers should always defer the returned shutdown.
func Init(ctx context.Context, cfg *Settings) (shutdown func(context.Context) error, err error) {
	noop := func(context.Context) error { return nil }
	if cfg == nil || !cfg.Enabled {
		otel.SetTracerProvider(otel.GetTracerProvider())
		return noop, nil
	}

	exp, err := newExporter(ctx, cfg)
	if err != nil {
		return noop, fmt.Errorf("tracing: building exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceNameKey.String(serviceName(cfg))),
	)
	if err != nil {
		return noop, fmt.Errorf("tracing: building resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	return tp.Shutdown, nil
}

func serviceName(cfg *Settings) string {
	if cfg.ServiceName != "" {
		return cfg.ServiceName
	}
	return "toolgate"
}

func newExporter(ctx context.Context, cfg *Settings) (sdktrace.SpanExporter, error) {
	switch cfg.Protocol {
	case "http", "otlphttp":
		opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(cfg.Endpoint)}
		if cfg.Insecure {
			opts = append(opts, otlptracehttp.WithInsecure())
		}
		return otlptracehttp.New(ctx, opts...)
	default:
		opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.Endpoint)}
		if cfg.Insecure {
			opts = append(opts, otlptracegrpc.WithInsecure())
		}
		client := otlptracegrpc.NewClient(opts...)
		return otlptrace.New(ctx, client)
	}
}
