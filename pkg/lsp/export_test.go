package lsp

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

var UriToPath = uriToPath

func (ls *Server) DidOpen(ctx *glsp.Context, uri protocol.DocumentUri, text string) error {
	return ls.textDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, Text: text},
	})
}

func (ls *Server) DidChange(ctx *glsp.Context, uri protocol.DocumentUri, text string) error {
	return ls.textDocumentDidChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument:   protocol.VersionedTextDocumentIdentifier{TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri}},
		ContentChanges: []any{protocol.TextDocumentContentChangeEventWhole{Text: text}},
	})
}

func (ls *Server) DidClose(ctx *glsp.Context, uri protocol.DocumentUri) error {
	return ls.textDocumentDidClose(ctx, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
}

func (ls *Server) Hover(ctx *glsp.Context, uri protocol.DocumentUri) (*protocol.Hover, error) {
	return ls.textDocumentHover(ctx, &protocol.HoverParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: uri},
		},
	})
}
