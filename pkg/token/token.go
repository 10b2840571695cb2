// Package token defines the lexical tokens of Simple.
package token

import (
	"fmt"
	"strings"

	"src.simple-lang.dev/pkg/diag"
	"src.simple-lang.dev/pkg/vals"
)

// Kind is the kind of a token.
type Kind uint8

// Reserved words. Only some of them are used by the grammar; the rest are
// reserved so that they cannot be used as identifiers.
const (
	AND Kind = iota
	ARRAY
	BEGIN
	CASE
	CONST
	DIV
	DO
	DOWNTO
	ELSE
	END
	FILE
	FOR
	FUNCTION
	GOTO
	IF
	IN
	LABEL
	MOD
	NIL
	NOT
	OF
	OR
	PACKED
	PROCEDURE
	PROGRAM
	RECORD
	REPEAT
	SET
	THEN
	TO
	TYPE
	UNTIL
	VAR
	WHILE
	WITH

	// Special symbols.
	PERIOD
	COMMA
	COLON
	COLON_EQUALS
	SEMICOLON
	PLUS
	MINUS
	STAR
	SLASH
	LPAREN
	RPAREN
	EQUALS
	NOT_EQUALS
	LESS_THAN
	LESS_EQUALS
	GREATER_THAN
	GREATER_EQUALS
	DOT_DOT
	QUOTE
	LBRACKET
	RBRACKET
	CARAT

	IDENTIFIER
	INTEGER
	REAL
	CHARACTER
	STRING
	EOF
	ERROR

	numKinds
)

var kindNames = [numKinds]string{
	AND: "AND", ARRAY: "ARRAY", BEGIN: "BEGIN", CASE: "CASE", CONST: "CONST",
	DIV: "DIV", DO: "DO", DOWNTO: "DOWNTO", ELSE: "ELSE", END: "END",
	FILE: "FILE", FOR: "FOR", FUNCTION: "FUNCTION", GOTO: "GOTO", IF: "IF",
	IN: "IN", LABEL: "LABEL", MOD: "MOD", NIL: "NIL", NOT: "NOT",
	OF: "OF", OR: "OR", PACKED: "PACKED", PROCEDURE: "PROCEDURE", PROGRAM: "PROGRAM",
	RECORD: "RECORD", REPEAT: "REPEAT", SET: "SET", THEN: "THEN", TO: "TO",
	TYPE: "TYPE", UNTIL: "UNTIL", VAR: "VAR", WHILE: "WHILE", WITH: "WITH",

	PERIOD: "PERIOD", COMMA: "COMMA", COLON: "COLON", COLON_EQUALS: "COLON_EQUALS",
	SEMICOLON: "SEMICOLON", PLUS: "PLUS", MINUS: "MINUS", STAR: "STAR",
	SLASH: "SLASH", LPAREN: "LPAREN", RPAREN: "RPAREN", EQUALS: "EQUALS",
	NOT_EQUALS: "NOT_EQUALS", LESS_THAN: "LESS_THAN", LESS_EQUALS: "LESS_EQUALS",
	GREATER_THAN: "GREATER_THAN", GREATER_EQUALS: "GREATER_EQUALS",
	DOT_DOT: "DOT_DOT", QUOTE: "QUOTE", LBRACKET: "LBRACKET", RBRACKET: "RBRACKET",
	CARAT: "CARAT",

	IDENTIFIER: "IDENTIFIER", INTEGER: "INTEGER", REAL: "REAL",
	CHARACTER: "CHARACTER", STRING: "STRING", EOF: "END_OF_FILE", ERROR: "ERROR",
}

func (k Kind) String() string {
	if k < numKinds {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// IsReserved reports whether k is the kind of a reserved word.
func (k Kind) IsReserved() bool { return k <= WITH }

var reservedWords = func() map[string]Kind {
	m := make(map[string]Kind)
	for k := AND; k <= WITH; k++ {
		m[kindNames[k]] = k
	}
	return m
}()

// LookupWord returns the kind of a word: a reserved word kind if the word,
// compared case-insensitively, is reserved, or IDENTIFIER otherwise.
func LookupWord(word string) Kind {
	if k, ok := reservedWords[strings.ToUpper(word)]; ok {
		return k
	}
	return IDENTIFIER
}

// ReservedWords returns all reserved words in upper case, in the order of
// their kinds.
func ReservedWords() []string {
	return append([]string(nil), kindNames[AND:WITH+1]...)
}

// Token is a lexical token.
type Token struct {
	Kind Kind
	// 1-based line number of the first character of the token.
	Line int
	// The token as written, with the doubled quote of a string collapsed.
	Text string
	// The literal value of INTEGER, REAL, CHARACTER and STRING tokens.
	Value vals.Value
	// The error message of an ERROR token.
	Err string
	diag.Ranging
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q (line %d)", t.Kind, t.Text, t.Line)
}
