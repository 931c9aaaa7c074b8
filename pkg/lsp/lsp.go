// Package lsp is a language server for structure files. Every time a
// document is opened, changed or saved it is parsed again and the
// outcome is published as diagnostics. Hovering anywhere shows the
// counts for the structure.
package lsp

import (
	"net/url"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"
)

const (
	lsName             = "molstruct"
	publishDiagnostics = "textDocument/publishDiagnostics"
)

var log = commonlog.GetLogger("molstruct.lsp")

// Server keeps the last report for each open document.
type Server struct {
	handler protocol.Handler
	server  *server.Server
	version string

	mu      sync.Mutex
	reports map[protocol.DocumentUri]*Report
}

// New makes a server. It does nothing until RunStdio.
func New(version string) *Server {
	ls := &Server{
		version: version,
		reports: make(map[protocol.DocumentUri]*Report),
	}
	ls.handler = protocol.Handler{
		Initialize:            ls.initialize,
		Initialized:           ls.initialized,
		Shutdown:              ls.shutdown,
		SetTrace:              ls.setTrace,
		TextDocumentDidOpen:   ls.textDocumentDidOpen,
		TextDocumentDidChange: ls.textDocumentDidChange,
		TextDocumentDidClose:  ls.textDocumentDidClose,
		TextDocumentDidSave:   ls.textDocumentDidSave,
		TextDocumentHover:     ls.textDocumentHover,
	}
	ls.server = server.NewServer(&ls.handler, lsName, false)
	return ls
}

// RunStdio serves on standard input and output until the client goes.
func (ls *Server) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := ls.handler.CreateServerCapabilities()
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save:      &protocol.SaveOptions{IncludeText: boolPtr(true)},
	}
	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Infof("client initialized")
	return nil
}

func (ls *Server) shutdown(ctx *glsp.Context) error {
	return nil
}

func (ls *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

// Update parses a document again and remembers the report.
func (ls *Server) Update(uri protocol.DocumentUri, text string) *Report {
	r := Analyse(text, uriToPath(string(uri)))
	ls.mu.Lock()
	ls.reports[uri] = r
	ls.mu.Unlock()
	if r.Err != nil {
		log.Infof("%s: %s", uri, r.Err)
	} else {
		log.Debugf("%s: %d atoms", uri, r.Stats.NAtom)
	}
	return r
}

func (ls *Server) publish(ctx *glsp.Context, uri protocol.DocumentUri, d []protocol.Diagnostic) {
	ctx.Notify(publishDiagnostics, protocol.PublishDiagnosticsParams{URI: uri, Diagnostics: d})
}

func (ls *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	uri := params.TextDocument.URI
	ls.publish(ctx, uri, ls.Update(uri, params.TextDocument.Text).Diagnostics())
	return nil
}

func (ls *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	uri := params.TextDocument.URI
	change := params.ContentChanges[len(params.ContentChanges)-1]
	if whole, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
		ls.publish(ctx, uri, ls.Update(uri, whole.Text).Diagnostics())
	}
	return nil
}

func (ls *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text == nil {
		return nil
	}
	uri := params.TextDocument.URI
	ls.publish(ctx, uri, ls.Update(uri, *params.Text).Diagnostics())
	return nil
}

func (ls *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI
	ls.mu.Lock()
	delete(ls.reports, uri)
	ls.mu.Unlock()
	ls.publish(ctx, uri, []protocol.Diagnostic{})
	return nil
}

// Report is the last report for uri, nil if the document is not open.
func (ls *Server) Report(uri protocol.DocumentUri) *Report {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return ls.reports[uri]
}

func (ls *Server) textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	if r := ls.Report(params.TextDocument.URI); r != nil {
		return r.Hover(), nil
	}
	return nil, nil
}

// uriToPath only has to be good enough to give us an extension.
func uriToPath(uri string) string {
	if strings.HasPrefix(uri, "file://") {
		if u, err := url.Parse(uri); err == nil {
			return filepath.Clean(u.Path)
		}
	}
	return uri
}

func boolPtr(b bool) *bool { return &b }

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind { return &k }
