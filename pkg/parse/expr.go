package parse

import (
	"src.simple-lang.dev/pkg/diag"
	"src.simple-lang.dev/pkg/token"
)

var relationalKinds = map[token.Kind]Kind{
	token.EQUALS:         EQ,
	token.NOT_EQUALS:     NEQ,
	token.LESS_THAN:      LT,
	token.GREATER_THAN:   GT,
	token.LESS_EQUALS:    LEQ,
	token.GREATER_EQUALS: GEQ,
	token.COLON_EQUALS:   CEQ,
}

var simpleExpressionKinds = map[token.Kind]Kind{
	token.PLUS:  ADD,
	token.MINUS: SUBTRACT,
	token.DIV:   INTDIV,
	token.OR:    OR,
}

var termKinds = map[token.Kind]Kind{
	token.STAR:  MULTIPLY,
	token.SLASH: DIVIDE,
	token.AND:   AND,
}

// expression = simple-expression [ relational-operator simple-expression ]
//
// Relational operators do not chain.
func (ps *Parser) parseExpression() *Node {
	left := ps.parseSimpleExpression()
	if !token.RelationalOperators.Has(ps.tok.Kind) {
		return left
	}
	op := ps.newNode(relationalKinds[ps.tok.Kind])
	ps.advance()
	return ps.binary(op, left, ps.parseSimpleExpression())
}

// simple-expression = term { ( + | - | DIV | OR ) term }
func (ps *Parser) parseSimpleExpression() *Node {
	n := ps.parseTerm()
	for token.SimpleExpressionOperators.Has(ps.tok.Kind) {
		op := ps.newNode(simpleExpressionKinds[ps.tok.Kind])
		ps.advance()
		n = ps.binary(op, n, ps.parseTerm())
	}
	return n
}

// term = factor { ( * | / | AND ) factor }
func (ps *Parser) parseTerm() *Node {
	n := ps.parseFactor()
	for token.TermOperators.Has(ps.tok.Kind) {
		op := ps.newNode(termKinds[ps.tok.Kind])
		ps.advance()
		n = ps.binary(op, n, ps.parseFactor())
	}
	return n
}

// Makes op a binary node of left and right. The node starts where the left
// operand starts.
func (ps *Parser) binary(op, left, right *Node) *Node {
	op.Adopt(left)
	op.Adopt(right)
	op.Line = left.Line
	op.Ranging = diag.Span(left, right)
	return op
}

// factor = variable | number | - number | string | ( expression ) | NOT factor
func (ps *Parser) parseFactor() *Node {
	switch ps.tok.Kind {
	case token.IDENTIFIER:
		return ps.parseVariable()
	case token.INTEGER, token.REAL, token.CHARACTER, token.STRING, token.MINUS:
		return ps.parseConstant()
	case token.NOT:
		n := ps.newNode(NOT)
		ps.advance()
		n.Adopt(ps.parseFactor())
		return ps.finish(n)
	case token.LPAREN:
		ps.advance()
		errors := ps.ErrorCount()
		n := ps.parseExpression()
		// After an error inside the parentheses, recovery has already
		// skipped past any ")".
		if ps.tok.Kind == token.RPAREN {
			ps.advance()
		} else if !ps.failedSince(errors) {
			ps.syntaxError("Expecting )")
		}
		return n
	default:
		n := ps.newNode(UNKNOWN)
		ps.syntaxError("Unexpected token")
		return n
	}
}

// Parses a variable used as a value. Using a variable that has never been
// assigned is a semantic error.
func (ps *Parser) parseVariable() *Node {
	n := ps.newNode(VARIABLE)
	n.Text = ps.tok.Text
	n.Entry = ps.tab.Lookup(ps.tok.Text)
	if n.Entry == nil {
		ps.semanticError("Undeclared identifier")
	}
	ps.advance()
	return ps.finish(n)
}

// constant = [ - ] ( integer | real ) | character | string
//
// A failed constant is an UNKNOWN node.
func (ps *Parser) parseConstant() *Node {
	n := ps.newNode(UNKNOWN)
	negative := false
	if ps.tok.Kind == token.MINUS {
		negative = true
		ps.advance()
	}
	switch ps.tok.Kind {
	case token.INTEGER:
		n.Kind = INTEGER_CONSTANT
	case token.REAL:
		n.Kind = REAL_CONSTANT
	case token.CHARACTER, token.STRING:
		if !negative {
			n.Kind = STRING_CONSTANT
			break
		}
		fallthrough
	default:
		if negative {
			ps.syntaxError("Expecting a number after -")
		} else {
			ps.syntaxError("Unexpected or no constant")
		}
		return ps.finish(n)
	}
	n.Value = ps.tok.Value
	if negative {
		n.Value = n.Value.Negate()
	}
	ps.advance()
	return ps.finish(n)
}

// Parses an optionally negated integer constant, used for the width and
// places of WRITE and WRITELN. It reports msg and returns nil if the tokens
// do not form one.
func (ps *Parser) parseSignedInteger(msg string) *Node {
	n := ps.newNode(INTEGER_CONSTANT)
	negative := false
	if ps.tok.Kind == token.MINUS {
		negative = true
		ps.advance()
	}
	if ps.tok.Kind != token.INTEGER {
		ps.syntaxError(msg)
		return nil
	}
	n.Value = ps.tok.Value
	if negative {
		n.Value = n.Value.Negate()
	}
	ps.advance()
	return ps.finish(n)
}
