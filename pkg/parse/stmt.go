package parse

import (
	"strings"

	"src.simple-lang.dev/pkg/token"
)

// statement = assignment | write | writeln | compound | repeat | if | while
//
//	| for | case | empty
//
// It returns nil for an empty statement and after an error that left
// nothing to build.
func (ps *Parser) parseStatement() *Node {
	switch ps.tok.Kind {
	case token.IDENTIFIER:
		switch strings.ToLower(ps.tok.Text) {
		case "write":
			return ps.parseWriteStatement()
		case "writeln":
			return ps.parseWritelnStatement()
		default:
			return ps.parseAssignmentStatement()
		}
	case token.BEGIN:
		return ps.parseCompoundStatement()
	case token.REPEAT:
		return ps.parseRepeatStatement()
	case token.IF:
		return ps.parseIfStatement()
	case token.WHILE:
		return ps.parseWhileStatement()
	case token.FOR:
		return ps.parseForStatement()
	case token.CASE:
		return ps.parseCaseStatement()
	case token.SEMICOLON:
		// Empty statement.
		return nil
	default:
		ps.syntaxError("Unexpected token")
		return nil
	}
}

// Parses the statement of an IF, WHILE, FOR or CASE branch. An empty
// statement, including one directly followed by ELSE or END, becomes an empty
// COMPOUND, so that the parent always has the same number of children.
func (ps *Parser) parseBranch() *Node {
	if token.StatementFollowers.Has(ps.tok.Kind) {
		return ps.newNode(COMPOUND)
	}
	if stmt := ps.parseStatement(); stmt != nil {
		return stmt
	}
	return ps.newNode(COMPOUND)
}

// compound = BEGIN statement-list END
func (ps *Parser) parseCompoundStatement() *Node {
	n := ps.newNode(COMPOUND)
	ps.advance()
	ps.parseStatementList(n, token.END)
	if ps.tok.Kind == token.END {
		ps.advance()
	} else {
		ps.syntaxError("Expecting END")
	}
	return ps.finish(n)
}

// statement-list = statement { ;+ statement }
//
// The list ends at the terminal token or at the end of input, neither of
// which is consumed.
func (ps *Parser) parseStatementList(parent *Node, terminal token.Kind) {
	for ps.tok.Kind != terminal && ps.tok.Kind != token.EOF {
		start := ps.tok.From
		parent.Adopt(ps.parseStatement())

		switch {
		case ps.tok.Kind == token.SEMICOLON:
			for ps.tok.Kind == token.SEMICOLON {
				ps.advance()
			}
		case token.StatementStarters.Has(ps.tok.Kind):
			// Already at the next statement; no need to skip.
			ps.syntaxErrorHere("Missing ;")
		case ps.tok.From == start && ps.tok.Kind != terminal && ps.tok.Kind != token.EOF:
			// A statement follower that cannot be used here, like a stray
			// THEN. Error recovery stops before it, so drop it to make
			// progress.
			ps.advance()
		}
	}
}

// Consumes a token of kind k. If the current token is something else, it
// reports a syntax error, and still consumes a token of kind k if error
// recovery stops at one. It returns whether a token of kind k was consumed.
func (ps *Parser) expect(k token.Kind, msg string) bool {
	if ps.tok.Kind != k {
		ps.syntaxError(msg)
		if ps.tok.Kind != k {
			return false
		}
	}
	ps.advance()
	return true
}

// assignment = variable := expression
func (ps *Parser) parseAssignmentStatement() *Node {
	n := ps.newNode(ASSIGN)
	n.Adopt(ps.parseTarget())
	if ps.tok.Kind == token.COLON_EQUALS {
		ps.advance()
	} else {
		ps.syntaxError("Missing :=")
		n.Adopt(ps.newNode(UNKNOWN))
		return ps.finish(n)
	}
	n.Adopt(ps.parseExpression())
	return ps.finish(n)
}

// Parses the variable on the left-hand side of an assignment. Assignment is
// the only place where variables are entered into the symbol table.
func (ps *Parser) parseTarget() *Node {
	n := ps.newNode(VARIABLE)
	n.Text = ps.tok.Text
	n.Entry = ps.tab.Enter(ps.tok.Text)
	ps.advance()
	return ps.finish(n)
}

// repeat = REPEAT statement-list UNTIL expression
func (ps *Parser) parseRepeatStatement() *Node {
	n := ps.newNode(LOOP)
	ps.advance()
	ps.parseStatementList(n, token.UNTIL)
	if ps.tok.Kind != token.UNTIL {
		ps.syntaxError("Expecting UNTIL")
		return ps.finish(n)
	}
	test := ps.newNode(TEST)
	ps.advance()
	test.Adopt(ps.parseExpression())
	n.Adopt(ps.finish(test))
	return ps.finish(n)
}

// if = IF expression THEN statement [ ELSE statement ]
//
// Since the then-branch is a single statement, an ELSE right after it belongs
// to the nearest IF.
func (ps *Parser) parseIfStatement() *Node {
	n := ps.newNode(IF)
	ps.advance()
	n.Adopt(ps.parseExpression())
	if !ps.expect(token.THEN, "Expecting THEN") {
		return ps.finish(n)
	}
	n.Adopt(ps.parseBranch())
	if ps.tok.Kind == token.ELSE {
		ps.advance()
		n.Adopt(ps.parseBranch())
	}
	return ps.finish(n)
}

// while = WHILE expression DO statement
func (ps *Parser) parseWhileStatement() *Node {
	n := ps.newNode(WHILE)
	ps.advance()
	n.Adopt(ps.parseExpression())
	if !ps.expect(token.DO, "Expecting DO") {
		return ps.finish(n)
	}
	n.Adopt(ps.parseBranch())
	return ps.finish(n)
}

// for = FOR assignment ( TO | DOWNTO ) expression DO statement
func (ps *Parser) parseForStatement() *Node {
	n := ps.newNode(FOR)
	ps.advance()
	if ps.tok.Kind != token.IDENTIFIER {
		ps.syntaxError("Expecting control variable")
		return ps.finish(n)
	}
	n.Adopt(ps.parseAssignmentStatement())

	if ps.tok.Kind != token.TO && ps.tok.Kind != token.DOWNTO {
		ps.syntaxError("Expecting TO or DOWNTO")
	}
	switch ps.tok.Kind {
	case token.TO, token.DOWNTO:
		n.Descending = ps.tok.Kind == token.DOWNTO
		ps.advance()
		n.Adopt(ps.parseExpression())
	case token.DO:
		// Recovered at DO; keep the body.
		n.Adopt(ps.newNode(UNKNOWN))
	default:
		return ps.finish(n)
	}

	if !ps.expect(token.DO, "Expecting DO") {
		return ps.finish(n)
	}
	n.Adopt(ps.parseBranch())
	return ps.finish(n)
}

// case = CASE expression OF { branch ;+ } END
//
// The semicolon after the last branch may be omitted.
func (ps *Parser) parseCaseStatement() *Node {
	n := ps.newNode(SELECT)
	ps.advance()
	n.Adopt(ps.parseExpression())
	if !ps.expect(token.OF, "Expecting OF") {
		return ps.finish(n)
	}

	for ps.tok.Kind != token.END && ps.tok.Kind != token.EOF {
		start := ps.tok.From
		n.Adopt(ps.parseSelectBranch())
		switch {
		case ps.tok.Kind == token.SEMICOLON:
			for ps.tok.Kind == token.SEMICOLON {
				ps.advance()
			}
		case ps.tok.Kind == token.END:
		default:
			ps.syntaxError("Missing ;")
			if ps.tok.From == start && ps.tok.Kind != token.END && ps.tok.Kind != token.EOF {
				ps.advance()
			}
		}
	}

	if ps.tok.Kind == token.END {
		ps.advance()
	} else {
		ps.syntaxError("Expecting END")
	}
	return ps.finish(n)
}

// branch = constant { , constant } : statement
func (ps *Parser) parseSelectBranch() *Node {
	n := ps.newNode(SELECT_BRANCH)
	errors := ps.ErrorCount()

	consts := ps.newNode(SELECT_CONSTANTS)
	consts.Adopt(ps.parseConstant())
	for ps.tok.Kind == token.COMMA && !ps.failedSince(errors) {
		ps.advance()
		consts.Adopt(ps.parseConstant())
	}
	n.Adopt(ps.finish(consts))
	if ps.failedSince(errors) {
		return ps.finish(n)
	}

	if ps.tok.Kind != token.COLON {
		ps.syntaxError("Expecting :")
		return ps.finish(n)
	}
	ps.advance()
	n.Adopt(ps.parseBranch())
	return ps.finish(n)
}

// write = WRITE ( value [ : width [ : places ] ] )
func (ps *Parser) parseWriteStatement() *Node {
	n := ps.newNode(WRITE)
	ps.advance()
	ps.parseWriteArguments(n)
	return ps.finish(n)
}

// writeln = WRITELN [ ( value [ : width [ : places ] ] ) ]
func (ps *Parser) parseWritelnStatement() *Node {
	n := ps.newNode(WRITELN)
	ps.advance()
	if ps.tok.Kind == token.LPAREN {
		ps.parseWriteArguments(n)
	}
	return ps.finish(n)
}

func (ps *Parser) parseWriteArguments(n *Node) {
	if ps.tok.Kind != token.LPAREN {
		ps.syntaxError("Missing left parenthesis")
		return
	}
	ps.advance()

	switch ps.tok.Kind {
	case token.IDENTIFIER:
		n.Adopt(ps.parseVariable())
	case token.INTEGER, token.REAL, token.CHARACTER, token.STRING, token.MINUS:
		n.Adopt(ps.parseConstant())
	default:
		ps.syntaxError("Invalid WRITE or WRITELN statement")
		return
	}

	if ps.tok.Kind == token.COLON {
		ps.advance()
		width := ps.parseSignedInteger("Invalid field width")
		if width == nil {
			return
		}
		n.Adopt(width)
		if ps.tok.Kind == token.COLON {
			ps.advance()
			places := ps.parseSignedInteger("Invalid count of decimal places")
			if places == nil {
				return
			}
			n.Adopt(places)
		}
	}

	if ps.tok.Kind == token.RPAREN {
		ps.advance()
	} else {
		ps.syntaxError("Missing right parenthesis")
	}
}
