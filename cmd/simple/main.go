// Simple scans, parses and executes programs written in Simple, a small
// Pascal-like teaching language. It also runs a language server for editors,
// and keeps a history of executed programs when given a database.
package main

import (
	"os"

	"src.simple-lang.dev/pkg/buildinfo"
	"src.simple-lang.dev/pkg/driver"
	"src.simple-lang.dev/pkg/lsp"
	"src.simple-lang.dev/pkg/prog"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args,
		prog.Composite(
			buildinfo.Program{}, lsp.Program{},
			driver.HistoryProgram{}, driver.Program{})))
}
