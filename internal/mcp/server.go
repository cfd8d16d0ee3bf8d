// Package mcp implements a Model Context Protocol server exposing checkstyle
// as MCP tools over stdio transport.
package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/ningg/checkstyle/internal/observability"
)

// serverName is the MCP server implementation name.
const serverName = "checkstyle"

// serverVersion is the fallback version when the CLI does not supply one.
const serverVersion = "dev"

// ServerDeps holds injectable dependencies for the MCP server.
// Zero-value fields use production defaults.
type ServerDeps struct {
	// Logger is an optional structured logger. Nil uses slog default.
	Logger *slog.Logger

	// Metrics is an optional RED metrics recorder. Nil disables per-tool metrics.
	Metrics *observability.REDMetrics

	// Tracer is an optional OTel tracer for per-tool-call spans. Nil disables tracing.
	Tracer trace.Tracer

	// Version overrides the version reported to clients.
	Version string
}

// Server wraps the MCP SDK server with checkstyle tool registrations.
type Server struct {
	inner   *mcpsdk.Server
	mu      sync.RWMutex
	tools   []string
	metrics *observability.REDMetrics
	tracer  trace.Tracer
}

// toolFunc is the generic handler shape the MCP SDK dispatches to.
type toolFunc[Input any] func(context.Context, *mcpsdk.CallToolRequest, Input) (*mcpsdk.CallToolResult, ToolOutput, error)

// NewServer creates a new MCP server with all checkstyle tools registered.
func NewServer(deps ServerDeps) *Server {
	opts := &mcpsdk.ServerOptions{}
	if deps.Logger != nil {
		opts.Logger = deps.Logger
	}

	version := deps.Version
	if version == "" {
		version = serverVersion
	}

	srv := &Server{
		inner: mcpsdk.NewServer(
			&mcpsdk.Implementation{Name: serverName, Version: version},
			opts,
		),
		metrics: deps.Metrics,
		tracer:  deps.Tracer,
	}

	register(srv, ToolNameCheck, checkToolDescription, handleCheck)
	register(srv, ToolNameRules, rulesToolDescription, handleRules)
	register(srv, ToolNameParse, parseToolDescription, handleParse)

	return srv
}

// register adds one tool to the server, wrapped with instrumentation.
// A free function because methods cannot introduce type parameters.
func register[Input any](srv *Server, name, description string, handler toolFunc[Input]) {
	mcpsdk.AddTool(srv.inner,
		&mcpsdk.Tool{Name: name, Description: description},
		instrument(srv, name, handler),
	)

	srv.mu.Lock()
	srv.tools = append(srv.tools, name)
	srv.mu.Unlock()
}

// ListToolNames returns the sorted names of all registered tools.
func (s *Server) ListToolNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, len(s.tools))
	copy(names, s.tools)
	sort.Strings(names)

	return names
}

// Run starts the MCP server on stdio transport. It blocks until the context
// is canceled or the connection closes.
func (s *Server) Run(ctx context.Context) error {
	return s.RunWithTransport(ctx, &mcpsdk.StdioTransport{})
}

// RunWithTransport starts the MCP server on the given transport. It blocks
// until the context is canceled or the connection closes.
func (s *Server) RunWithTransport(ctx context.Context, transport mcpsdk.Transport) error {
	err := s.inner.Run(ctx, transport)
	if err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}

	return nil
}

// mcpSpanPrefix namespaces tool operations in spans and metrics.
const mcpSpanPrefix = "mcp."

// instrument wraps a tool handler with a per-call span and RED metrics.
// A nil tracer or metrics recorder on the server disables that layer.
// When the span is sampled, its trace_id is appended to the response content
// so clients can quote it in bug reports.
func instrument[Input any](srv *Server, toolName string, handler toolFunc[Input]) toolFunc[Input] {
	op := mcpSpanPrefix + toolName

	return func(ctx context.Context, req *mcpsdk.CallToolRequest, input Input) (*mcpsdk.CallToolResult, ToolOutput, error) {
		start := time.Now()

		var span trace.Span
		if srv.tracer != nil {
			ctx, span = srv.tracer.Start(ctx, op,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(attribute.String("mcp.tool", toolName)),
			)
			defer span.End()
		}

		if srv.metrics != nil {
			decInflight := srv.metrics.TrackInflight(ctx, op)
			defer decInflight()
		}

		result, output, err := handler(ctx, req, input)

		if srv.metrics != nil {
			status := "ok"
			if err != nil || (result != nil && result.IsError) {
				status = "error"
			}

			srv.metrics.RecordRequest(ctx, op, status, time.Since(start))
		}

		if span != nil && result != nil {
			if sc := span.SpanContext(); sc.IsSampled() {
				result.Content = append(result.Content, &mcpsdk.TextContent{
					Text: "trace_id=" + sc.TraceID().String(),
				})
			}
		}

		return result, output, err
	}
}

// Tool description constants.
const (
	checkToolDescription = "Run checkstyle checks over inline Java source code. " +
		"Returns violations with positions, messages, and the reporting check name. " +
		"Accepts an optional list of check names to restrict the run."

	rulesToolDescription = "List the available checks with their descriptions " +
		"and configurable properties."

	parseToolDescription = "Parse Java source code into a declaration syntax tree. " +
		"Returns a JSON representation of the tree structure."
)
