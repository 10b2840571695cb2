package lsp

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	lsp "github.com/sourcegraph/go-lsp"
	"github.com/sourcegraph/jsonrpc2"

	"src.simple-lang.dev/pkg/testutil"
)

type clientFixture struct {
	conn  *jsonrpc2.Conn
	diags chan lsp.PublishDiagnosticsParams
}

func setup(t *testing.T) *clientFixture {
	t.Helper()
	serverSide, clientSide := net.Pipe()
	ctx := context.Background()
	serverConn := jsonrpc2.NewConn(ctx,
		jsonrpc2.NewBufferedStream(serverSide, jsonrpc2.VSCodeObjectCodec{}),
		handler(newServer()))
	f := &clientFixture{diags: make(chan lsp.PublishDiagnosticsParams, 10)}
	f.conn = jsonrpc2.NewConn(ctx,
		jsonrpc2.NewBufferedStream(clientSide, jsonrpc2.VSCodeObjectCodec{}),
		jsonrpc2.HandlerWithError(f.handle))
	t.Cleanup(func() {
		f.conn.Close()
		serverConn.Close()
	})
	return f
}

func (f *clientFixture) handle(_ context.Context, _ *jsonrpc2.Conn, req *jsonrpc2.Request) (any, error) {
	if req.Method == "textDocument/publishDiagnostics" && req.Params != nil {
		var params lsp.PublishDiagnosticsParams
		if err := json.Unmarshal(*req.Params, &params); err == nil {
			f.diags <- params
		}
	}
	return nil, nil
}

func (f *clientFixture) open(t *testing.T, uri lsp.DocumentURI, text string) {
	t.Helper()
	err := f.conn.Notify(context.Background(), "textDocument/didOpen",
		lsp.DidOpenTextDocumentParams{TextDocument: lsp.TextDocumentItem{URI: uri, Text: text}})
	if err != nil {
		t.Fatal(err)
	}
}

func (f *clientFixture) nextDiagnostics(t *testing.T) lsp.PublishDiagnosticsParams {
	t.Helper()
	select {
	case params := <-f.diags:
		return params
	case <-time.After(testutil.Scaled(2 * time.Second)):
		t.Fatal("timed out waiting for diagnostics")
		return lsp.PublishDiagnosticsParams{}
	}
}

func TestInitialize(t *testing.T) {
	f := setup(t)
	var result lsp.InitializeResult
	err := f.conn.Call(context.Background(), "initialize", lsp.InitializeParams{}, &result)
	if err != nil {
		t.Fatal(err)
	}
	if result.Capabilities.CompletionProvider == nil {
		t.Errorf("completion not advertised")
	}
	sync := result.Capabilities.TextDocumentSync
	if sync == nil || sync.Options == nil || sync.Options.Change != lsp.TDSKFull {
		t.Errorf("full text sync not advertised: %+v", sync)
	}
}

var diagnosticsTests = []struct {
	name string
	text string
	want []lsp.Diagnostic
}{
	{
		name: "no errors",
		text: "program p; begin x := 1 end.",
		want: []lsp.Diagnostic{},
	},
	{
		name: "syntax error",
		text: "program p;\nbegin\n  x := 1 +* 2\nend.\n",
		want: []lsp.Diagnostic{{
			Range:    lsp.Range{Start: lsp.Position{Line: 2, Character: 10}, End: lsp.Position{Line: 2, Character: 11}},
			Severity: lsp.Error,
			Source:   "syntax error",
			Message:  "Unexpected token",
		}},
	},
	{
		name: "undeclared identifier",
		text: "program p;\nbegin\n  x := y\nend.\n",
		want: []lsp.Diagnostic{{
			Range:    lsp.Range{Start: lsp.Position{Line: 2, Character: 7}, End: lsp.Position{Line: 2, Character: 8}},
			Severity: lsp.Warning,
			Source:   "semantic error",
			Message:  "Undeclared identifier",
		}},
	},
}

func TestDiagnostics(t *testing.T) {
	for _, test := range diagnosticsTests {
		t.Run(test.name, func(t *testing.T) {
			f := setup(t)
			f.open(t, "file:///a.simple", test.text)
			params := f.nextDiagnostics(t)
			if params.URI != "file:///a.simple" {
				t.Errorf("got URI %q", params.URI)
			}
			if diff := cmp.Diff(test.want, params.Diagnostics); diff != "" {
				t.Errorf("diagnostics (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDidChange(t *testing.T) {
	f := setup(t)
	f.open(t, "file:///a.simple", "program p; begin x := end.")
	if got := f.nextDiagnostics(t).Diagnostics; len(got) == 0 {
		t.Errorf("got no diagnostics for a broken document")
	}
	err := f.conn.Notify(context.Background(), "textDocument/didChange",
		lsp.DidChangeTextDocumentParams{
			TextDocument: lsp.VersionedTextDocumentIdentifier{
				TextDocumentIdentifier: lsp.TextDocumentIdentifier{URI: "file:///a.simple"}},
			ContentChanges: []lsp.TextDocumentContentChangeEvent{{Text: "program p; begin x := 1 end."}},
		})
	if err != nil {
		t.Fatal(err)
	}
	if got := f.nextDiagnostics(t).Diagnostics; len(got) != 0 {
		t.Errorf("got diagnostics %v for a fixed document", got)
	}
}

func TestCompletion(t *testing.T) {
	f := setup(t)
	f.open(t, "file:///a.simple", "program p;\nbegin\n  count := 1;\n  co\nend.\n")
	f.nextDiagnostics(t)

	var items []lsp.CompletionItem
	err := f.conn.Call(context.Background(), "textDocument/completion",
		lsp.CompletionParams{TextDocumentPositionParams: lsp.TextDocumentPositionParams{
			TextDocument: lsp.TextDocumentIdentifier{URI: "file:///a.simple"},
			Position:     lsp.Position{Line: 3, Character: 4},
		}}, &items)
	if err != nil {
		t.Fatal(err)
	}
	replace := lsp.Range{Start: lsp.Position{Line: 3, Character: 2}, End: lsp.Position{Line: 3, Character: 4}}
	want := []lsp.CompletionItem{
		{Label: "const", Kind: lsp.CIKKeyword, TextEdit: &lsp.TextEdit{Range: replace, NewText: "const"}},
		{Label: "count", Kind: lsp.CIKVariable, TextEdit: &lsp.TextEdit{Range: replace, NewText: "count"}},
	}
	if diff := cmp.Diff(want, items); diff != "" {
		t.Errorf("completion items (-want +got):\n%s", diff)
	}
}

func TestCompletion_OutputStatements(t *testing.T) {
	f := setup(t)
	f.open(t, "file:///a.simple", "program p;\nbegin\n  wr\nend.\n")
	f.nextDiagnostics(t)

	var items []lsp.CompletionItem
	err := f.conn.Call(context.Background(), "textDocument/completion",
		lsp.CompletionParams{TextDocumentPositionParams: lsp.TextDocumentPositionParams{
			TextDocument: lsp.TextDocumentIdentifier{URI: "file:///a.simple"},
			Position:     lsp.Position{Line: 2, Character: 4},
		}}, &items)
	if err != nil {
		t.Fatal(err)
	}
	var labels []string
	for _, item := range items {
		labels = append(labels, item.Label)
	}
	if want := []string{"write", "writeln"}; !cmp.Equal(labels, want) {
		t.Errorf("got labels %v, want %v", labels, want)
	}
}

func TestUnknownMethod(t *testing.T) {
	f := setup(t)
	err := f.conn.Call(context.Background(), "textDocument/hover", nil, nil)
	var rpcErr *jsonrpc2.Error
	if !errors.As(err, &rpcErr) || rpcErr.Code != jsonrpc2.CodeMethodNotFound {
		t.Errorf("got error %v, want method not found", err)
	}
}

func TestPositions(t *testing.T) {
	s := "a\nβ𝄞c\nd"
	tests := []struct {
		idx int
		pos lsp.Position
	}{
		{0, lsp.Position{Line: 0, Character: 0}},
		{2, lsp.Position{Line: 1, Character: 0}},
		// β is one UTF-16 unit, 𝄞 is two.
		{4, lsp.Position{Line: 1, Character: 1}},
		{8, lsp.Position{Line: 1, Character: 3}},
		{10, lsp.Position{Line: 2, Character: 0}},
	}
	for _, test := range tests {
		if got := positionOf(s, test.idx); got != test.pos {
			t.Errorf("positionOf(%d) = %v, want %v", test.idx, got, test.pos)
		}
		if got := offsetOf(s, test.pos); got != test.idx {
			t.Errorf("offsetOf(%v) = %d, want %d", test.pos, got, test.idx)
		}
	}
}

func TestPositions_CRLF(t *testing.T) {
	// The \n of \r\n does not start another line.
	if got, want := positionOf("a\r\nb", 3), (lsp.Position{Line: 1, Character: 0}); got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}
