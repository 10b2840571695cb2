package parse

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"src.simple-lang.dev/pkg/symtab"
)

type errorSummary struct {
	Type    string
	Message string
	Culprit string
}

func summarize(errs []*Error) []errorSummary {
	var s []errorSummary
	for _, err := range errs {
		s = append(s, errorSummary{err.Type, err.Message, err.Context.Culprit()})
	}
	return s
}

var errorTests = []struct {
	name       string
	code       string
	wantErrors []errorSummary
	// Statements parsed despite the errors.
	want string
}{
	{
		name:       "one malformed statement",
		code:       "i := 1;\nj := * 2;\nk := 3;\nwriteln(k)",
		wantErrors: []errorSummary{{SyntaxError, "Unexpected token", "*"}},
		want:       "(ASSIGN i 1) (ASSIGN j (UNKNOWN)) (ASSIGN k 3) (WRITELN k)",
	},
	{
		name:       "missing semicolon",
		code:       "x := 1 y := 2",
		wantErrors: []errorSummary{{SyntaxError, "Missing ;", "y"}},
		want:       "(ASSIGN x 1) (ASSIGN y 2)",
	},
	{
		name:       "missing :=",
		code:       "x 5; y := 1",
		wantErrors: []errorSummary{{SyntaxError, "Missing :=", "5"}},
		want:       "(ASSIGN x (UNKNOWN)) (ASSIGN y 1)",
	},
	{
		name: "undeclared identifier",
		code: "x := zz + 1; y := zz",
		wantErrors: []errorSummary{
			{SemanticError, "Undeclared identifier", "zz"},
			{SemanticError, "Undeclared identifier", "zz"},
		},
		want: "(ASSIGN x (ADD zz 1)) (ASSIGN y zz)",
	},
	{
		name: "invalid character",
		code: "x := 1 # 2; y := 1",
		wantErrors: []errorSummary{
			{TokenError, "Invalid token", "#"},
			{SyntaxError, "Unexpected token", "#"},
		},
		want: "(ASSIGN x 1) (ASSIGN y 1)",
	},
	{
		name:       "misplaced statement follower",
		code:       "then x := 1",
		wantErrors: []errorSummary{{SyntaxError, "Unexpected token", "then"}},
		want:       "(ASSIGN x 1)",
	},
	{
		name:       "missing THEN",
		code:       "if x = 1 y := 2; x := 3",
		wantErrors: []errorSummary{{SyntaxError, "Expecting THEN", "y"}},
		want:       "(IF (EQ x 1)) (ASSIGN x 3)",
	},
	{
		name:       "missing DO",
		code:       "while x < 1 x := 2; y := 3",
		wantErrors: []errorSummary{{SyntaxError, "Expecting DO", "x"}},
		want:       "(WHILE (LT x 1)) (ASSIGN y 3)",
	},
	{
		name:       "missing TO",
		code:       "for i := 1 do x := 2; y := 3",
		wantErrors: []errorSummary{{SyntaxError, "Expecting TO or DOWNTO", "do"}},
		want:       "(FOR (ASSIGN i 1) (UNKNOWN) (ASSIGN x 2)) (ASSIGN y 3)",
	},
	{
		name:       "missing THEN resumes at THEN",
		code:       "if x = 1 y then y := 2",
		wantErrors: []errorSummary{{SyntaxError, "Expecting THEN", "y"}},
		want:       "(IF (EQ x 1) (ASSIGN y 2))",
	},
	{
		name:       "bad case constant",
		code:       "case x of +: y := 1; 2: y := 2 end",
		wantErrors: []errorSummary{{SyntaxError, "Unexpected or no constant", "+"}},
		want: "(SELECT x (SELECT_BRANCH (SELECT_CONSTANTS (UNKNOWN))) " +
			"(SELECT_BRANCH (SELECT_CONSTANTS 2) (ASSIGN y 2)))",
	},
	{
		name:       "negated string",
		code:       "x := -'a'; y := 1",
		wantErrors: []errorSummary{{SyntaxError, "Expecting a number after -", "'a'"}},
		want:       "(ASSIGN x (UNKNOWN)) (ASSIGN y 1)",
	},
	{
		name:       "bad field width",
		code:       "write(x:y); y := 1",
		wantErrors: []errorSummary{{SyntaxError, "Invalid field width", "y"}},
		want:       "(WRITE x) (ASSIGN y 1)",
	},
	{
		name:       "write without parenthesis",
		code:       "write x; y := 1",
		wantErrors: []errorSummary{{SyntaxError, "Missing left parenthesis", "x"}},
		want:       "(WRITE) (ASSIGN y 1)",
	},
	{
		name:       "unclosed parenthesis",
		code:       "x := (1 + 2; y := 1",
		wantErrors: []errorSummary{{SyntaxError, "Expecting )", ";"}},
		want:       "(ASSIGN x (ADD 1 2)) (ASSIGN y 1)",
	},
	{
		name:       "error inside parentheses",
		code:       "y := (2 + ; x := 1",
		wantErrors: []errorSummary{{SyntaxError, "Unexpected token", ";"}},
		want:       "(ASSIGN y (ADD 2 (UNKNOWN))) (ASSIGN x 1)",
	},
	{
		name:       "error inside nested parentheses",
		code:       "y := ((1 +)); x := 1",
		wantErrors: []errorSummary{{SyntaxError, "Unexpected token", ")"}},
		want:       "(ASSIGN y (ADD 1 (UNKNOWN))) (ASSIGN x 1)",
	},
}

func TestParse_Errors(t *testing.T) {
	for _, test := range errorTests {
		t.Run(test.name, func(t *testing.T) {
			tree, errs := parseStatements(test.code)
			if diff := cmp.Diff(test.wantErrors, summarize(errs)); diff != "" {
				t.Errorf("errors (-want +got):\n%s", diff)
			}
			if got := statements(tree); got != test.want {
				t.Errorf("got  %s\nwant %s", got, test.want)
			}
		})
	}
}

func TestParse_IncompleteProgram(t *testing.T) {
	_, err := Parse(Source{Name: "test", Code: "program p; begin x := 1"}, nil, Config{})
	want := []errorSummary{
		{SyntaxError, "Expecting END", ""},
		{SyntaxError, "Expecting .", ""},
	}
	if diff := cmp.Diff(want, summarize(UnpackErrors(err))); diff != "" {
		t.Errorf("errors (-want +got):\n%s", diff)
	}
}

func TestParse_MissingHeader(t *testing.T) {
	_, err := Parse(Source{Name: "test", Code: "begin x := 1 end."}, nil, Config{})
	errs := UnpackErrors(err)
	if len(errs) == 0 || errs[0].Message != "Expecting PROGRAM" {
		t.Errorf("got errors %v, want the first to be about PROGRAM", errs)
	}
}

func TestParse_ReportsErrorsAsFound(t *testing.T) {
	var sb strings.Builder
	tab := symtab.New()
	src := Source{Name: "test", Code: "program p;\nbegin\ni := 1;\nj := * 2;\nk := zz\nend.\n"}
	ps := NewParser(src, tab, Config{ErrorWriter: &sb})
	ps.ParseProgram()

	wantReport := "SYNTAX ERROR at line 4: Unexpected token at '*'\n" +
		"SEMANTIC ERROR at line 5: Undeclared identifier at 'zz'\n"
	if got := sb.String(); got != wantReport {
		t.Errorf("got report:\n%s\nwant:\n%s", got, wantReport)
	}
	if ps.ErrorCount() != 2 || len(ps.Errors()) != 2 {
		t.Fatalf("got %d errors, want 2", ps.ErrorCount())
	}
	if got, want := ps.Errors()[0].Error(), "syntax error: test:4:6: Unexpected token at '*'"; got != want {
		t.Errorf("Error() -> %q, want %q", got, want)
	}
}
