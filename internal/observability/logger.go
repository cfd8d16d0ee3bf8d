package observability

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

const (
	logKeyTraceID = "trace_id"
	logKeySpanID  = "span_id"
	logKeyService = "service"
	logKeyEnv     = "env"
	logKeyMode    = "mode"
)

// SpanContextHandler decorates every record with the active span identity so
// log lines can be joined to traces. Fixed service attributes are attached up
// front, which keeps them at the record root even under WithGroup.
type SpanContextHandler struct {
	next slog.Handler
}

// NewSpanContextHandler wraps next with span-identity injection and the fixed
// service attributes derived from cfg.
func NewSpanContextHandler(next slog.Handler, cfg Config) *SpanContextHandler {
	fixed := []slog.Attr{
		slog.String(logKeyService, cfg.ServiceName),
		slog.String(logKeyMode, string(cfg.Mode)),
	}

	if cfg.Environment != "" {
		fixed = append(fixed, slog.String(logKeyEnv, cfg.Environment))
	}

	return &SpanContextHandler{next: next.WithAttrs(fixed)}
}

// Enabled defers the level decision to the wrapped handler.
func (h *SpanContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

// Handle stamps trace_id and span_id onto the record when ctx carries a valid
// span, then forwards it.
func (h *SpanContextHandler) Handle(ctx context.Context, rec slog.Record) error {
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		rec.AddAttrs(
			slog.String(logKeyTraceID, sc.TraceID().String()),
			slog.String(logKeySpanID, sc.SpanID().String()),
		)
	}

	if err := h.next.Handle(ctx, rec); err != nil {
		return fmt.Errorf("emit log record: %w", err)
	}

	return nil
}

// WithAttrs forwards to the wrapped handler, preserving span injection.
func (h *SpanContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &SpanContextHandler{next: h.next.WithAttrs(attrs)}
}

// WithGroup forwards to the wrapped handler, preserving span injection.
func (h *SpanContextHandler) WithGroup(name string) slog.Handler {
	return &SpanContextHandler{next: h.next.WithGroup(name)}
}

// newLogger builds the process logger: text or JSON per cfg, wrapped so every
// record carries span identity when a trace is active.
func newLogger(cfg Config, out io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}

	var base slog.Handler = slog.NewTextHandler(out, opts)
	if cfg.LogJSON {
		base = slog.NewJSONHandler(out, opts)
	}

	return slog.New(NewSpanContextHandler(base, cfg))
}
