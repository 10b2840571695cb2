package token

// Set is an immutable set of token kinds.
type Set struct {
	bits [2]uint64
}

// NewSet returns a Set containing the given kinds.
func NewSet(kinds ...Kind) Set {
	var s Set
	for _, k := range kinds {
		s.bits[k/64] |= 1 << (k % 64)
	}
	return s
}

// Has reports whether the set contains k.
func (s Set) Has(k Kind) bool {
	return s.bits[k/64]&(1<<(k%64)) != 0
}

// Classification tables used by the parser.
var (
	// Tokens that can start a statement.
	StatementStarters = NewSet(BEGIN, IDENTIFIER, REPEAT, IF, WHILE, FOR, CASE)
	// Tokens that can immediately follow a statement. Syntax error recovery
	// skips to one of these.
	StatementFollowers = NewSet(SEMICOLON, END, UNTIL, EOF,
		THEN, ELSE, DO, TO, DOWNTO, OF)
	// Relational operators. COLON_EQUALS is accepted in relational position
	// as an equality test.
	RelationalOperators = NewSet(EQUALS, NOT_EQUALS, LESS_THAN, GREATER_THAN,
		LESS_EQUALS, GREATER_EQUALS, COLON_EQUALS)
	// Operators of simple expressions.
	SimpleExpressionOperators = NewSet(PLUS, MINUS, DIV, OR)
	// Operators of terms.
	TermOperators = NewSet(STAR, SLASH, AND)
)
