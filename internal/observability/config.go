// Package observability provides OpenTelemetry-based tracing, metrics, and
// structured logging for all checkstyle application modes (CLI, LSP, MCP).
package observability

import (
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// AppMode identifies the application execution mode.
type AppMode string

const (
	// ModeCLI is the CLI command execution mode.
	ModeCLI AppMode = "cli"
	// ModeLSP is the LSP stdio server mode.
	ModeLSP AppMode = "lsp"
	// ModeMCP is the MCP stdio server mode.
	ModeMCP AppMode = "mcp"
)

const (
	// defaultServiceName is the default OTel service name.
	defaultServiceName = "checkstyle"

	// defaultShutdownTimeout bounds the final telemetry flush.
	defaultShutdownTimeout = 5 * time.Second
)

// Config holds all observability configuration.
type Config struct {
	// ServiceName is the OTel resource service name.
	ServiceName string

	// ServiceVersion is the semantic version of the running binary.
	ServiceVersion string

	// Environment is the deployment environment (e.g. "production", "dev").
	Environment string

	// Mode identifies how the binary was launched.
	Mode AppMode

	// OTLPEndpoint is the OTLP gRPC collector address (e.g. "localhost:4317").
	// Empty disables export; providers become no-op.
	OTLPEndpoint string

	// OTLPHeaders are additional gRPC metadata headers for the OTLP exporter.
	OTLPHeaders map[string]string

	// OTLPInsecure disables TLS for the OTLP gRPC connection.
	OTLPInsecure bool

	// SampleRatio is the trace sampling ratio (0.0 to 1.0). Zero uses
	// parent-based sampling with an always-on root.
	SampleRatio float64

	// LogLevel controls the minimum slog severity.
	LogLevel slog.Level

	// LogJSON enables JSON-formatted log output.
	LogJSON bool

	// ShutdownTimeoutSec is the maximum seconds to wait for flush on shutdown.
	ShutdownTimeoutSec int
}

// DefaultConfig returns a Config with sensible defaults for zero-config startup.
func DefaultConfig() Config {
	return Config{
		ServiceName: defaultServiceName,
		Mode:        ModeCLI,
		LogLevel:    slog.LevelInfo,
	}
}

// shutdownTimeout converts the configured flush budget to a duration,
// substituting the default when unset or nonsensical.
func (c Config) shutdownTimeout() time.Duration {
	if c.ShutdownTimeoutSec <= 0 {
		return defaultShutdownTimeout
	}

	return time.Duration(c.ShutdownTimeoutSec) * time.Second
}

// traceExporterOptions translates the OTLP connection settings into dial
// options for the trace exporter.
func (c Config) traceExporterOptions() []otlptracegrpc.Option {
	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(c.OTLPEndpoint)}

	if c.OTLPInsecure {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}

	if len(c.OTLPHeaders) > 0 {
		opts = append(opts, otlptracegrpc.WithHeaders(c.OTLPHeaders))
	}

	return opts
}

// metricExporterOptions translates the OTLP connection settings into dial
// options for the metric exporter.
func (c Config) metricExporterOptions() []otlpmetricgrpc.Option {
	opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithEndpoint(c.OTLPEndpoint)}

	if c.OTLPInsecure {
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}

	if len(c.OTLPHeaders) > 0 {
		opts = append(opts, otlpmetricgrpc.WithHeaders(c.OTLPHeaders))
	}

	return opts
}

// sampler picks the trace sampler: ratio-based when a ratio is configured,
// always-on otherwise. Both respect the parent decision on child spans.
func (c Config) sampler() sdktrace.Sampler {
	if c.SampleRatio > 0 {
		return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(c.SampleRatio))
	}

	return sdktrace.ParentBased(sdktrace.AlwaysSample())
}
