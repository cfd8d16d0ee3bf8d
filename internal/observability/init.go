package observability

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/metric"
	noopmetric "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"
)

// scopeName names the tracer and meter instrumentation scope.
const scopeName = "checkstyle"

// Providers holds the initialized observability providers.
type Providers struct {
	// Tracer is the named tracer for creating spans.
	Tracer trace.Tracer

	// Meter is the named meter for creating instruments.
	Meter metric.Meter

	// Logger is the context-aware structured logger.
	Logger *slog.Logger

	// Shutdown flushes all pending telemetry and releases resources.
	// Must be called before process exit.
	Shutdown func(ctx context.Context) error
}

// Init assembles tracing, metrics, and logging for one process. Without an
// OTLP endpoint the tracer and meter fall back to no-op implementations with
// zero export overhead; the structured logger always writes.
func Init(cfg Config) (Providers, error) {
	ctx := context.Background()

	res, err := newResource(ctx, cfg)
	if err != nil {
		return Providers{}, err
	}

	var closers closerStack

	tp, err := newTracerProvider(ctx, cfg, res, &closers)
	if err != nil {
		return Providers{}, err
	}

	mp, err := newMeterProvider(ctx, cfg, res, &closers)
	if err != nil {
		return Providers{}, errors.Join(err, closers.close(ctx))
	}

	otel.SetTracerProvider(tp)
	otel.SetMeterProvider(mp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return Providers{
		Tracer: tp.Tracer(scopeName),
		Meter:  mp.Meter(scopeName),
		Logger: newLogger(cfg, os.Stderr),
		Shutdown: func(shutdownCtx context.Context) error {
			deadlineCtx, cancel := context.WithTimeout(shutdownCtx, cfg.shutdownTimeout())
			defer cancel()

			return closers.close(deadlineCtx)
		},
	}, nil
}

// closerStack collects provider shutdown hooks so they can be released in
// reverse registration order.
type closerStack struct {
	hooks []func(context.Context) error
}

func (cs *closerStack) push(hook func(context.Context) error) {
	cs.hooks = append(cs.hooks, hook)
}

// close runs every hook newest-first and joins their errors. The stack is
// drained, so calling close again is a no-op.
func (cs *closerStack) close(ctx context.Context) error {
	var errs []error

	for idx := len(cs.hooks) - 1; idx >= 0; idx-- {
		if err := cs.hooks[idx](ctx); err != nil {
			errs = append(errs, err)
		}
	}

	cs.hooks = nil

	return errors.Join(errs...)
}

// newResource describes this process to the telemetry backend.
func newResource(ctx context.Context, cfg Config) (*resource.Resource, error) {
	attrs := []attribute.KeyValue{semconv.ServiceName(cfg.ServiceName)}

	if cfg.ServiceVersion != "" {
		attrs = append(attrs, semconv.ServiceVersion(cfg.ServiceVersion))
	}

	if cfg.Environment != "" {
		attrs = append(attrs, semconv.DeploymentEnvironment(cfg.Environment))
	}

	if cfg.Mode != "" {
		attrs = append(attrs, attribute.String("app.mode", string(cfg.Mode)))
	}

	res, err := resource.New(ctx, resource.WithAttributes(attrs...))
	if err != nil {
		return nil, fmt.Errorf("assemble otel resource: %w", err)
	}

	return res, nil
}

func newTracerProvider(
	ctx context.Context, cfg Config, res *resource.Resource, closers *closerStack,
) (trace.TracerProvider, error) {
	if cfg.OTLPEndpoint == "" {
		return nooptrace.NewTracerProvider(), nil
	}

	exporter, err := otlptracegrpc.New(ctx, cfg.traceExporterOptions()...)
	if err != nil {
		return nil, fmt.Errorf("connect trace exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(cfg.sampler()),
	)
	closers.push(tp.Shutdown)

	return tp, nil
}

func newMeterProvider(
	ctx context.Context, cfg Config, res *resource.Resource, closers *closerStack,
) (metric.MeterProvider, error) {
	if cfg.OTLPEndpoint == "" {
		return noopmetric.NewMeterProvider(), nil
	}

	exporter, err := otlpmetricgrpc.New(ctx, cfg.metricExporterOptions()...)
	if err != nil {
		return nil, fmt.Errorf("connect metric exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter)),
		sdkmetric.WithResource(res),
	)
	closers.push(mp.Shutdown)

	return mp, nil
}

// ParseOTLPHeaders parses the "key=value,key=value" form used by
// OTEL_EXPORTER_OTLP_HEADERS. Malformed pairs and empty keys are skipped;
// nil is returned when nothing usable remains.
func ParseOTLPHeaders(raw string) map[string]string {
	headers := map[string]string{}

	for pair := range strings.SplitSeq(raw, ",") {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}

		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}

		headers[key] = strings.TrimSpace(value)
	}

	if len(headers) == 0 {
		return nil
	}

	return headers
}
