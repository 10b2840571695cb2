// Package scan implements the lexical scanner of Simple.
//
// The scanner turns source text into a stream of tokens. It never fails:
// malformed lexemes become tokens of kind ERROR carrying a message, and the
// end of the input is signaled by EOF tokens, returned repeatedly.
package scan

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"src.simple-lang.dev/pkg/diag"
	"src.simple-lang.dev/pkg/token"
	"src.simple-lang.dev/pkg/vals"
)

// Scanner produces tokens from a source text.
//
// NOTE: The source is assumed to be valid UTF-8.
type Scanner struct {
	src  string
	pos  int
	line int
}

// New creates a Scanner for the given source text.
func New(src string) *Scanner {
	return &Scanner{src: src, line: 1}
}

const eof rune = -1

func (s *Scanner) peek() rune {
	if s.pos == len(s.src) {
		return eof
	}
	r, _ := utf8.DecodeRuneInString(s.src[s.pos:])
	return r
}

// Returns the rune after the next one.
func (s *Scanner) peek2() rune {
	if s.pos == len(s.src) {
		return eof
	}
	_, n := utf8.DecodeRuneInString(s.src[s.pos:])
	if s.pos+n == len(s.src) {
		return eof
	}
	r, _ := utf8.DecodeRuneInString(s.src[s.pos+n:])
	return r
}

func (s *Scanner) next() rune {
	if s.pos == len(s.src) {
		return eof
	}
	r, n := utf8.DecodeRuneInString(s.src[s.pos:])
	s.pos += n
	if r == '\n' {
		s.line++
	}
	return r
}

// Next returns the next token.
func (s *Scanner) Next() token.Token {
	if tok, ok := s.skipBlanks(); !ok {
		return tok
	}
	begin, line := s.pos, s.line
	r := s.peek()
	var tok token.Token
	switch {
	case r == eof:
		tok = token.Token{Kind: token.EOF}
	case unicode.IsLetter(r):
		tok = s.word()
	case isDigit(r):
		tok = s.number()
	case r == '\'':
		tok = s.characterOrString()
	default:
		tok = s.specialSymbol()
	}
	tok.Line = line
	tok.Ranging = diag.Ranging{From: begin, To: s.pos}
	if tok.Kind != token.EOF && tok.Kind != token.CHARACTER && tok.Kind != token.STRING {
		tok.Text = s.src[begin:s.pos]
	}
	return tok
}

// Skips whitespaces and comments. If a comment is not closed, it returns an
// ERROR token and false.
func (s *Scanner) skipBlanks() (token.Token, bool) {
	for {
		r := s.peek()
		switch {
		case unicode.IsSpace(r):
			s.next()
		case r == '{':
			begin, line := s.pos, s.line
			for r != '}' {
				if r == eof {
					return token.Token{
						Kind: token.ERROR, Line: line, Text: s.src[begin:s.pos],
						Err: "Comment not closed", Ranging: diag.Ranging{From: begin, To: s.pos},
					}, false
				}
				r = s.next()
			}
		default:
			return token.Token{}, true
		}
	}
}

func isDigit(r rune) bool { return '0' <= r && r <= '9' }

func (s *Scanner) word() token.Token {
	begin := s.pos
	for r := s.peek(); unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'; r = s.peek() {
		s.next()
	}
	return token.Token{Kind: token.LookupWord(s.src[begin:s.pos])}
}

func (s *Scanner) number() token.Token {
	begin := s.pos
	points := 0
	for r := s.peek(); isDigit(r) || r == '.'; r = s.peek() {
		if r == '.' {
			if s.peek2() == '.' {
				// A ".." after the digits, as in "1..5".
				break
			}
			points++
		}
		s.next()
	}
	text := s.src[begin:s.pos]
	switch points {
	case 0:
		if i, err := strconv.ParseInt(text, 10, 64); err == nil {
			return token.Token{Kind: token.INTEGER, Value: vals.Int(i)}
		}
	case 1:
		if f, err := strconv.ParseFloat(strings.TrimSuffix(text, "."), 64); err == nil {
			return token.Token{Kind: token.REAL, Value: vals.Float(f)}
		}
	}
	return token.Token{Kind: token.ERROR, Err: "Invalid number"}
}

func (s *Scanner) characterOrString() token.Token {
	begin := s.pos
	s.next() // the leading '
	var sb strings.Builder
	for {
		r := s.next()
		if r == eof {
			return token.Token{Kind: token.ERROR, Text: s.src[begin:s.pos], Err: "String not closed"}
		}
		if r == '\'' {
			if s.peek() != '\'' {
				break
			}
			// A doubled '' stands for one '.
			s.next()
		}
		sb.WriteRune(r)
	}
	value := sb.String()
	kind := token.STRING
	if utf8.RuneCountInString(value) == 1 {
		kind = token.CHARACTER
	}
	return token.Token{Kind: kind, Text: "'" + value + "'", Value: vals.String(value)}
}

var singleSymbols = map[rune]token.Kind{
	',': token.COMMA, ';': token.SEMICOLON, '+': token.PLUS, '-': token.MINUS,
	'*': token.STAR, '/': token.SLASH, '=': token.EQUALS, '(': token.LPAREN,
	')': token.RPAREN, '[': token.LBRACKET, ']': token.RBRACKET, '^': token.CARAT,
}

func (s *Scanner) specialSymbol() token.Token {
	r := s.next()
	if kind, ok := singleSymbols[r]; ok {
		return token.Token{Kind: kind}
	}
	kind := token.ERROR
	switch r {
	case ':':
		kind = s.either('=', token.COLON_EQUALS, token.COLON)
	case '<':
		switch s.peek() {
		case '=':
			s.next()
			kind = token.LESS_EQUALS
		case '>':
			s.next()
			kind = token.NOT_EQUALS
		default:
			kind = token.LESS_THAN
		}
	case '>':
		kind = s.either('=', token.GREATER_EQUALS, token.GREATER_THAN)
	case '.':
		kind = s.either('.', token.DOT_DOT, token.PERIOD)
	}
	if kind == token.ERROR {
		return token.Token{Kind: token.ERROR, Err: "Invalid token"}
	}
	return token.Token{Kind: kind}
}

// Consumes the next rune and returns yes if it is r, or returns no otherwise.
func (s *Scanner) either(r rune, yes, no token.Kind) token.Kind {
	if s.peek() == r {
		s.next()
		return yes
	}
	return no
}

// All scans all tokens of src, up to and excluding the first EOF token.
func All(src string) []token.Token {
	s := New(src)
	var toks []token.Token
	for tok := s.Next(); tok.Kind != token.EOF; tok = s.Next() {
		toks = append(toks, tok)
	}
	return toks
}
