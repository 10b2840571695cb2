package token

import (
	"testing"

	"src.simple-lang.dev/pkg/tt"
)

func TestLookupWord(t *testing.T) {
	tt.Test(t, tt.Fn("LookupWord", LookupWord),
		tt.Args("begin").Rets(BEGIN),
		tt.Args("BeGiN").Rets(BEGIN),
		tt.Args("downto").Rets(DOWNTO),
		tt.Args("with").Rets(WITH),
		tt.Args("writeln").Rets(IDENTIFIER),
		tt.Args("x1").Rets(IDENTIFIER),
	)
}

func TestKindString(t *testing.T) {
	tt.Test(t, tt.Fn("Kind.String", Kind.String),
		tt.Args(PROGRAM).Rets("PROGRAM"),
		tt.Args(COLON_EQUALS).Rets("COLON_EQUALS"),
		tt.Args(EOF).Rets("END_OF_FILE"),
		tt.Args(numKinds).Rets("Kind(64)"),
	)
}

func TestKindNamesComplete(t *testing.T) {
	for k := Kind(0); k < numKinds; k++ {
		if kindNames[k] == "" {
			t.Errorf("kind %d has no name", k)
		}
	}
}

func TestReservedWords(t *testing.T) {
	words := ReservedWords()
	if len(words) != 35 {
		t.Errorf("got %d reserved words, want 35", len(words))
	}
	for _, w := range words {
		if k := LookupWord(w); !k.IsReserved() {
			t.Errorf("LookupWord(%q) -> %v, not reserved", w, k)
		}
	}
}

func TestSet(t *testing.T) {
	s := NewSet(AND, ERROR, SEMICOLON)
	for _, k := range []Kind{AND, ERROR, SEMICOLON} {
		if !s.Has(k) {
			t.Errorf("set does not have %v", k)
		}
	}
	if s.Has(OR) || s.Has(EOF) {
		t.Errorf("set has kinds not added")
	}
}

func TestStatementFollowers(t *testing.T) {
	for _, k := range []Kind{SEMICOLON, END, UNTIL, EOF, THEN, ELSE, DO, TO, DOWNTO, OF} {
		if !StatementFollowers.Has(k) {
			t.Errorf("%v is not a statement follower", k)
		}
	}
	if StatementFollowers.Has(IDENTIFIER) {
		t.Errorf("IDENTIFIER is a statement follower")
	}
}
