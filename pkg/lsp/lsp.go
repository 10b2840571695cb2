// Package lsp implements a language server for Simple.
package lsp

import (
	"context"
	"os"

	"github.com/sourcegraph/jsonrpc2"

	"src.simple-lang.dev/pkg/errutil"
	"src.simple-lang.dev/pkg/logutil"
	"src.simple-lang.dev/pkg/prog"
)

var logger = logutil.GetLogger("[lsp] ")

// Program is the LSP subprogram.
type Program struct{}

// Run runs the language server on stdin and stdout until the client
// disconnects.
func (Program) Run(fds [3]*os.File, f *prog.Flags, args []string) error {
	if !f.LSP {
		return prog.ErrNotSuitable
	}
	if len(args) > 0 {
		return prog.BadUsage("-lsp takes no arguments")
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	conn := jsonrpc2.NewConn(ctx,
		jsonrpc2.NewBufferedStream(transport{fds[0], fds[1]}, jsonrpc2.VSCodeObjectCodec{}),
		handler(newServer()))
	<-conn.DisconnectNotify()
	logger.Println("client disconnected")
	return nil
}

type transport struct{ in, out *os.File }

func (c transport) Read(p []byte) (int, error)  { return c.in.Read(p) }
func (c transport) Write(p []byte) (int, error) { return c.out.Write(p) }

func (c transport) Close() error {
	return errutil.Multi(c.in.Close(), c.out.Close())
}
