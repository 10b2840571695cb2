package lsp

import (
	"context"
	"encoding/json"
	"sort"
	"strings"

	lsp "github.com/sourcegraph/go-lsp"
	"github.com/sourcegraph/jsonrpc2"

	"src.simple-lang.dev/pkg/diag"
	"src.simple-lang.dev/pkg/parse"
	"src.simple-lang.dev/pkg/token"
)

var (
	errMethodNotFound = &jsonrpc2.Error{
		Code: jsonrpc2.CodeMethodNotFound, Message: "method not found"}
	errInvalidParams = &jsonrpc2.Error{
		Code: jsonrpc2.CodeInvalidParams, Message: "invalid params"}
)

// Names of the output statements. They are scanned as identifiers, not
// reserved words.
var builtins = []string{"write", "writeln"}

type server struct {
	content map[lsp.DocumentURI]string
}

func newServer() *server {
	return &server{make(map[lsp.DocumentURI]string)}
}

func handler(s *server) jsonrpc2.Handler {
	return routingHandler(map[string]method{
		"initialize":              s.initialize,
		"textDocument/didOpen":    s.didOpen,
		"textDocument/didChange":  s.didChange,
		"textDocument/didClose":   s.didClose,
		"textDocument/completion": s.completion,

		// Required by the protocol.
		"initialized": noop,
		// Sent by clients even when the server doesn't advertise support.
		"workspace/didChangeWatchedFiles": noop,
	})
}

type method func(context.Context, jsonrpc2.JSONRPC2, json.RawMessage) (any, error)

func noop(_ context.Context, _ jsonrpc2.JSONRPC2, _ json.RawMessage) (any, error) {
	return nil, nil
}

func routingHandler(methods map[string]method) jsonrpc2.Handler {
	return jsonrpc2.HandlerWithError(func(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (any, error) {
		fn, ok := methods[req.Method]
		if !ok {
			logger.Println("unknown method:", req.Method)
			return nil, errMethodNotFound
		}
		var params json.RawMessage
		if req.Params != nil {
			params = *req.Params
		}
		return fn(ctx, conn, params)
	})
}

// Handler implementations. These are all called synchronously.

func (s *server) initialize(_ context.Context, _ jsonrpc2.JSONRPC2, _ json.RawMessage) (any, error) {
	return &lsp.InitializeResult{
		Capabilities: lsp.ServerCapabilities{
			TextDocumentSync: &lsp.TextDocumentSyncOptionsOrKind{
				Options: &lsp.TextDocumentSyncOptions{
					OpenClose: true,
					Change:    lsp.TDSKFull,
				},
			},
			CompletionProvider: &lsp.CompletionOptions{},
		},
	}, nil
}

func (s *server) didOpen(ctx context.Context, conn jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.DidOpenTextDocumentParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}

	uri, content := params.TextDocument.URI, params.TextDocument.Text
	s.content[uri] = content
	go publishDiagnostics(ctx, conn, uri, content)
	return nil, nil
}

func (s *server) didChange(ctx context.Context, conn jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.DidChangeTextDocumentParams
	if json.Unmarshal(rawParams, &params) != nil || len(params.ContentChanges) == 0 {
		return nil, errInvalidParams
	}

	// ContentChanges includes full text since the server only advertises
	// support for that; see the initialize method.
	uri, content := params.TextDocument.URI, params.ContentChanges[0].Text
	s.content[uri] = content
	go publishDiagnostics(ctx, conn, uri, content)
	return nil, nil
}

func (s *server) didClose(_ context.Context, _ jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.DidCloseTextDocumentParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}
	delete(s.content, params.TextDocument.URI)
	return nil, nil
}

// Completes the word before the cursor with reserved words, the names of the
// output statements and the variables of the document.
func (s *server) completion(_ context.Context, _ jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.CompletionParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}

	content := s.content[params.TextDocument.URI]
	dot := offsetOf(content, params.Position)
	start := wordStart(content, dot)
	prefix := strings.ToLower(content[start:dot])
	replace := rangeOf(content, diag.Ranging{From: start, To: dot})

	items := []lsp.CompletionItem{}
	add := func(label string, kind lsp.CompletionItemKind) {
		if strings.HasPrefix(strings.ToLower(label), prefix) {
			items = append(items, lsp.CompletionItem{
				Label:    label,
				Kind:     kind,
				TextEdit: &lsp.TextEdit{Range: replace, NewText: label},
			})
		}
	}
	for _, word := range token.ReservedWords() {
		add(strings.ToLower(word), lsp.CIKKeyword)
	}
	for _, name := range builtins {
		add(name, lsp.CIKFunction)
	}
	for _, name := range variables(content, start) {
		add(name, lsp.CIKVariable)
	}
	return items, nil
}

// Returns the names in the symbol table of the document, excluding the
// program name and the word being completed.
func variables(content string, wordAt int) []string {
	tree, _ := parse.Parse(parse.Source{Code: content}, nil, parse.Config{})
	var names []string
	seen := make(map[string]bool)
	parse.Walk(tree.Root, func(n *parse.Node) bool {
		if n.Kind != parse.VARIABLE || n.From == wordAt || n.Entry == nil {
			return true
		}
		key := strings.ToLower(n.Entry.Name)
		if !seen[key] {
			seen[key] = true
			names = append(names, n.Entry.Name)
		}
		return true
	})
	sort.Strings(names)
	return names
}

func wordStart(s string, dot int) int {
	i := dot
	for i > 0 && isWordByte(s[i-1]) {
		i--
	}
	return i
}

func isWordByte(b byte) bool {
	return b == '_' || '0' <= b && b <= '9' || 'a' <= b && b <= 'z' || 'A' <= b && b <= 'Z'
}

func publishDiagnostics(ctx context.Context, conn jsonrpc2.JSONRPC2, uri lsp.DocumentURI, content string) {
	conn.Notify(ctx, "textDocument/publishDiagnostics",
		lsp.PublishDiagnosticsParams{URI: uri, Diagnostics: diagnostics(uri, content)})
}

func diagnostics(uri lsp.DocumentURI, content string) []lsp.Diagnostic {
	_, err := parse.Parse(parse.Source{Name: string(uri), Code: content}, nil, parse.Config{})
	if err == nil {
		return []lsp.Diagnostic{}
	}

	entries := parse.UnpackErrors(err)
	diags := make([]lsp.Diagnostic, len(entries))
	for i, err := range entries {
		severity := lsp.Error
		if err.Type == parse.SemanticError {
			severity = lsp.Warning
		}
		diags[i] = lsp.Diagnostic{
			Range:    rangeOf(content, err),
			Severity: severity,
			Source:   err.Type,
			Message:  err.Message,
		}
	}
	return diags
}
