// Package lsp provides a Language Server Protocol server that surfaces
// checkstyle violations as diagnostics while Java files are edited.
package lsp

import (
	"context"
	"log/slog"
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/ningg/checkstyle/pkg/checks"
	"github.com/ningg/checkstyle/pkg/engine"
	"github.com/ningg/checkstyle/pkg/safeconv"
)

const (
	serverName = "checkstyle-lsp"

	// diagnosticSource labels published diagnostics in the client UI.
	diagnosticSource = "checkstyle"
)

// Server implements the checkstyle LSP server. Every edit to an open
// document is re-checked in memory and the resulting violations are pushed
// to the client as diagnostics.
type Server struct {
	store   *DocumentStore
	engine  *engine.Engine
	log     *slog.Logger
	version string
	handler protocol.Handler
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger used for request handling.
func WithLogger(log *slog.Logger) Option {
	return func(srv *Server) { srv.log = log }
}

// WithMaxDocuments bounds the number of tracked open documents.
func WithMaxDocuments(maxDocuments int) Option {
	return func(srv *Server) { srv.store = NewDocumentStore(maxDocuments) }
}

// WithVersion sets the version reported to the client during initialize.
func WithVersion(version string) Option {
	return func(srv *Server) { srv.version = version }
}

// NewServer creates a checkstyle LSP server backed by the given engine.
func NewServer(eng *engine.Engine, opts ...Option) *Server {
	srv := &Server{
		store:   NewDocumentStore(DefaultMaxDocuments),
		engine:  eng,
		log:     slog.Default(),
		version: "dev",
	}

	for _, opt := range opts {
		opt(srv)
	}

	srv.handler = protocol.Handler{
		Initialize:            srv.initialize,
		Initialized:           srv.initialized,
		Shutdown:              srv.shutdown,
		SetTrace:              srv.setTrace,
		TextDocumentDidOpen:   srv.didOpen,
		TextDocumentDidChange: srv.didChange,
		TextDocumentDidSave:   srv.didSave,
		TextDocumentDidClose:  srv.didClose,
	}

	return srv
}

// Run serves LSP over stdio until the client disconnects.
func (srv *Server) Run() error {
	return server.NewServer(&srv.handler, serverName, false).RunStdio()
}

func (srv *Server) initialize(_ *glsp.Context, _ *protocol.InitializeParams) (any, error) {
	capabilities := srv.handler.CreateServerCapabilities()

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    serverName,
			Version: &srv.version,
		},
	}, nil
}

func (srv *Server) initialized(_ *glsp.Context, _ *protocol.InitializedParams) error {
	return nil
}

func (srv *Server) shutdown(_ *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)

	return nil
}

func (srv *Server) setTrace(_ *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)

	return nil
}

func (srv *Server) didOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	uri := params.TextDocument.URI

	srv.store.Set(uri, params.TextDocument.Text)
	srv.publishDiagnostics(ctx, uri)

	return nil
}

func (srv *Server) didChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI

	if len(params.ContentChanges) > 0 {
		if change, changeOK := params.ContentChanges[0].(map[string]any); changeOK {
			if text, textOK := change["text"].(string); textOK {
				srv.store.Set(uri, text)
				srv.publishDiagnostics(ctx, uri)
			}
		}
	}

	return nil
}

func (srv *Server) didSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	uri := params.TextDocument.URI

	if _, ok := srv.store.Get(uri); ok {
		srv.publishDiagnostics(ctx, uri)
	}

	return nil
}

func (srv *Server) didClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI
	srv.store.Delete(uri)

	// Clear stale diagnostics for the closed document.
	ctx.Notify("textDocument/publishDiagnostics", &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: []protocol.Diagnostic{},
	})

	return nil
}

func (srv *Server) publishDiagnostics(ctx *glsp.Context, uri string) {
	content, ok := srv.store.Get(uri)
	if !ok {
		return
	}

	ctx.Notify("textDocument/publishDiagnostics", &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: srv.diagnose(uri, content),
	})
}

// diagnose re-checks one document in memory. A parse failure is reported as
// a single error diagnostic at the top of the file instead of failing the
// request.
func (srv *Server) diagnose(uri, content string) []protocol.Diagnostic {
	result, err := srv.engine.CheckSource(context.Background(), uriToPath(uri), []byte(content))
	if err != nil {
		srv.log.Debug("check failed", "uri", uri, "error", err)

		return []protocol.Diagnostic{errorDiagnostic(err)}
	}

	return toDiagnostics(result.Violations)
}

// toDiagnostics converts violations to LSP diagnostics. Violation positions
// are 1-based while the protocol wants 0-based lines and characters.
func toDiagnostics(violations []checks.Violation) []protocol.Diagnostic {
	diagnostics := make([]protocol.Diagnostic, 0, len(violations))

	for _, violation := range violations {
		severity := protocol.DiagnosticSeverityWarning
		source := diagnosticSource
		code := protocol.IntegerOrString{Value: violation.Check}
		start := documentPosition(violation.Pos.Line, violation.Pos.Col)

		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range:    protocol.Range{Start: start, End: start},
			Severity: &severity,
			Code:     &code,
			Source:   &source,
			Message:  violation.Message(),
		})
	}

	return diagnostics
}

// errorDiagnostic reports a failed check as an error pinned to the start of
// the document.
func errorDiagnostic(err error) protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityError
	source := diagnosticSource

	return protocol.Diagnostic{
		Severity: &severity,
		Source:   &source,
		Message:  err.Error(),
	}
}

func documentPosition(line, col int) protocol.Position {
	if line < 1 {
		line = 1
	}

	if col < 1 {
		col = 1
	}

	return protocol.Position{
		Line:      safeconv.MustIntToUint32(line - 1),
		Character: safeconv.MustIntToUint32(col - 1),
	}
}

// uriToPath strips the file scheme so engine results and logs carry a plain
// path. Anything without the scheme passes through unchanged.
func uriToPath(uri string) string {
	return strings.TrimPrefix(uri, "file://")
}
