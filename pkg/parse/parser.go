// Package parse implements the parser of Simple.
//
// The parser is a recursive descent parser with one token of lookahead. It
// builds a tree of *Node and keeps going after errors: a syntax error skips
// tokens until one that can follow a statement, so that one malformed
// statement does not produce errors in the statements after it.
package parse

import (
	"fmt"
	"io"
	"strings"

	"src.simple-lang.dev/pkg/diag"
	"src.simple-lang.dev/pkg/logutil"
	"src.simple-lang.dev/pkg/scan"
	"src.simple-lang.dev/pkg/symtab"
	"src.simple-lang.dev/pkg/token"
)

var logger = logutil.GetLogger("[parse] ")

// Source is the source of a program.
type Source struct {
	// Name of the source, usually the file name.
	Name string
	Code string
}

// Tree is a parsed program.
type Tree struct {
	Root   *Node
	Source Source
	// The symbol table holding the variables of the program.
	Symtab *symtab.Symtab
}

// Config keeps configuration options when parsing.
type Config struct {
	// Destination of error reports, written as soon as an error is found. If
	// nil, errors are only collected.
	ErrorWriter io.Writer
}

// Error is a parse error. Its Type is one of SyntaxError, SemanticError and
// TokenError.
type Error = diag.Error

// Types of parse errors.
const (
	SyntaxError   = "syntax error"
	SemanticError = "semantic error"
	TokenError    = "token error"
)

// Parse parses a whole program. The symbol table may be nil, in which case a
// new one is used. The tree is returned even when there are errors; the
// returned error then contains all of them and can be unpacked with
// UnpackErrors.
func Parse(src Source, tab *symtab.Symtab, cfg Config) (*Tree, error) {
	if tab == nil {
		tab = symtab.New()
	}
	ps := NewParser(src, tab, cfg)
	root := ps.ParseProgram()
	return &Tree{root, src, tab}, diag.PackErrors(ps.errors)
}

// UnpackErrors returns the parse errors contained in an error returned by
// Parse.
func UnpackErrors(err error) []*Error {
	return diag.UnpackErrors(err)
}

// Parser parses one program.
type Parser struct {
	src     Source
	scanner *scan.Scanner
	tab     *symtab.Symtab
	errw    io.Writer

	tok token.Token
	// End of the last consumed token.
	lastEnd int
	errors  []*Error
}

// NewParser creates a new Parser.
func NewParser(src Source, tab *symtab.Symtab, cfg Config) *Parser {
	return &Parser{src: src, scanner: scan.New(src.Code), tab: tab, errw: cfg.ErrorWriter}
}

// ErrorCount returns the number of errors found so far.
func (ps *Parser) ErrorCount() int { return len(ps.errors) }

// Errors returns the errors found so far.
func (ps *Parser) Errors() []*Error { return ps.errors }

// ParseProgram parses a program:
//
//	PROGRAM name ; compound-statement .
//
// A semicolon is accepted in place of, or before, the final period.
func (ps *Parser) ParseProgram() *Node {
	ps.advance()
	prog := ps.newNode(PROGRAM)

	if ps.tok.Kind == token.PROGRAM {
		ps.advance()
	} else {
		ps.syntaxError("Expecting PROGRAM")
	}

	if ps.tok.Kind == token.IDENTIFIER {
		prog.Text = ps.tok.Text
		prog.Entry = ps.tab.Enter(ps.tok.Text)
		ps.advance()
	} else {
		ps.syntaxError("Expecting program name")
	}

	if ps.tok.Kind == token.SEMICOLON {
		ps.advance()
	} else {
		ps.syntaxError("Missing ;")
	}

	if ps.tok.Kind == token.BEGIN {
		prog.Adopt(ps.parseCompoundStatement())
	} else {
		ps.syntaxError("Expecting BEGIN")
	}

	sawSemicolon := false
	if ps.tok.Kind == token.SEMICOLON {
		sawSemicolon = true
		ps.advance()
	}
	if ps.tok.Kind == token.PERIOD {
		ps.advance()
	} else if !sawSemicolon {
		ps.syntaxError("Expecting .")
	}

	logger.Printf("parsed %s with %d errors", ps.src.Name, len(ps.errors))
	return ps.finish(prog)
}

// Token handling.

func (ps *Parser) advance() {
	ps.lastEnd = ps.tok.To
	ps.tok = ps.scanner.Next()
	if ps.tok.Kind == token.ERROR {
		ps.report(TokenError, ps.tok.Err)
	}
}

func (ps *Parser) newNode(k Kind) *Node {
	return &Node{Kind: k, Line: ps.tok.Line, Ranging: diag.PointRanging(ps.tok.From)}
}

// Sets the end of the node's range to the end of the last consumed token.
func (ps *Parser) finish(n *Node) *Node {
	if ps.lastEnd > n.From {
		n.To = ps.lastEnd
	}
	return n
}

// Error handling.

// Records an error at the current token. The reported line is that of the
// token where the error was found, not the start of the enclosing statement.
func (ps *Parser) report(typ, msg string) {
	err := &Error{
		Type:    typ,
		Message: msg,
		Context: *diag.NewContext(ps.src.Name, ps.src.Code, ps.tok),
	}
	ps.errors = append(ps.errors, err)
	if ps.errw != nil {
		fmt.Fprintf(ps.errw, "%s at line %d: %s at '%s'\n",
			strings.ToUpper(typ), ps.tok.Line, msg, ps.tok.Text)
	}
}

// Reports a syntax error and skips to a token that can follow a statement.
func (ps *Parser) syntaxError(msg string) {
	ps.report(SyntaxError, msg)
	for !token.StatementFollowers.Has(ps.tok.Kind) {
		ps.advance()
	}
}

// Reports a syntax error without skipping.
func (ps *Parser) syntaxErrorHere(msg string) {
	ps.report(SyntaxError, msg)
}

func (ps *Parser) semanticError(msg string) {
	ps.report(SemanticError, msg)
}

// Returns whether any error has been reported since the error count was n.
func (ps *Parser) failedSince(n int) bool { return len(ps.errors) > n }
