package parse

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"src.simple-lang.dev/pkg/diag"
	"src.simple-lang.dev/pkg/symtab"
	"src.simple-lang.dev/pkg/testutil"
)

// Variables known to programs parsed by parseStatements.
var knownVariables = []string{"b", "c", "i", "j", "k", "s", "x", "y"}

// Parses statements wrapped in a program, with the variables in
// knownVariables already entered. The program header takes two lines, so the
// statements start on line 3.
func parseStatements(code string) (*Tree, []*Error) {
	tab := symtab.New()
	for _, name := range knownVariables {
		tab.Enter(name)
	}
	src := Source{Name: "test", Code: "program p;\nbegin\n" + code + "\nend.\n"}
	tree, err := Parse(src, tab, Config{})
	return tree, UnpackErrors(err)
}

// Renders the statements of the main compound statement as S-expressions.
func statements(tree *Tree) string {
	compound := tree.Root.Child(0)
	parts := make([]string, len(compound.Children))
	for i, stmt := range compound.Children {
		parts[i] = sexp(stmt)
	}
	return strings.Join(parts, " ")
}

func sexp(n *Node) string {
	switch n.Kind {
	case VARIABLE:
		return n.Text
	case INTEGER_CONSTANT, REAL_CONSTANT, STRING_CONSTANT:
		return n.Value.Repr()
	}
	head := n.Kind.String()
	if n.Kind == PROGRAM {
		head += " " + n.Text
	}
	if n.Descending {
		head += ":downto"
	}
	parts := []string{head}
	for _, ch := range n.Children {
		parts = append(parts, sexp(ch))
	}
	return "(" + strings.Join(parts, " ") + ")"
}

var statementTests = []struct {
	name string
	code string
	want string
}{
	{
		name: "assignment",
		code: "x := 1",
		want: "(ASSIGN x 1)",
	},
	{
		name: "assignment enters a new variable",
		code: "newvar := 1; x := newvar",
		want: "(ASSIGN newvar 1) (ASSIGN x newvar)",
	},
	{
		name: "multiplicative operators bind tighter",
		code: "x := 1 + 2 * 3",
		want: "(ASSIGN x (ADD 1 (MULTIPLY 2 3)))",
	},
	{
		name: "operators are left-associative",
		code: "x := 1 - 2 - 3; y := 8 / 4 / 2",
		want: "(ASSIGN x (SUBTRACT (SUBTRACT 1 2) 3)) (ASSIGN y (DIVIDE (DIVIDE 8 4) 2))",
	},
	{
		name: "DIV has the precedence of addition",
		code: "x := 6 div 2 * 3",
		want: "(ASSIGN x (INTDIV 6 (MULTIPLY 2 3)))",
	},
	{
		name: "parentheses",
		code: "x := (1 + 2) * 3",
		want: "(ASSIGN x (MULTIPLY (ADD 1 2) 3))",
	},
	{
		name: "relational operators",
		code: "b := x = 1; b := x <> 1; b := x < 1; b := x > 1; b := x <= 1; b := x >= y + 1",
		want: "(ASSIGN b (EQ x 1)) (ASSIGN b (NEQ x 1)) (ASSIGN b (LT x 1)) " +
			"(ASSIGN b (GT x 1)) (ASSIGN b (LEQ x 1)) (ASSIGN b (GEQ x (ADD y 1)))",
	},
	{
		name: "AND binds tighter than OR",
		code: "b := (x < 1) or (y > 2) and c",
		want: "(ASSIGN b (OR (LT x 1) (AND (GT y 2) c)))",
	},
	{
		name: "NOT applies to a factor",
		code: "b := not c; b := not (x = 1) and c",
		want: "(ASSIGN b (NOT c)) (ASSIGN b (AND (NOT (EQ x 1)) c))",
	},
	{
		name: "negative and real literals",
		code: "x := -5; y := -2.5 * 1.0",
		want: "(ASSIGN x -5) (ASSIGN y (MULTIPLY -2.5 1.0))",
	},
	{
		name: "string and character literals",
		code: "s := 'it''s'; c := 'c'",
		want: "(ASSIGN s 'it''s') (ASSIGN c 'c')",
	},
	{
		name: "compound statements and extra semicolons",
		code: "begin x := 1;; y := 2; end;; begin end",
		want: "(COMPOUND (ASSIGN x 1) (ASSIGN y 2)) (COMPOUND)",
	},
	{
		name: "if",
		code: "if x = 1 then y := 2",
		want: "(IF (EQ x 1) (ASSIGN y 2))",
	},
	{
		name: "if-else",
		code: "if x = 1 then y := 2 else y := 3",
		want: "(IF (EQ x 1) (ASSIGN y 2) (ASSIGN y 3))",
	},
	{
		name: "else binds to the nearest if",
		code: "if i = j then if i <= j then k := 11 else k := 12",
		want: "(IF (EQ i j) (IF (LEQ i j) (ASSIGN k 11) (ASSIGN k 12)))",
	},
	{
		name: "empty branch",
		code: "if c then else x := 1",
		want: "(IF c (COMPOUND) (ASSIGN x 1))",
	},
	{
		name: ":= in a condition is an equality test",
		code: "if x := 1 then y := 2",
		want: "(IF (CEQ x 1) (ASSIGN y 2))",
	},
	{
		name: "while",
		code: "while i < 10 do i := i + 1",
		want: "(WHILE (LT i 10) (ASSIGN i (ADD i 1)))",
	},
	{
		name: "repeat",
		code: "repeat i := i + 1; j := i until i > 3",
		want: "(LOOP (ASSIGN i (ADD i 1)) (ASSIGN j i) (TEST (GT i 3)))",
	},
	{
		name: "for to",
		code: "for i := 1 to 10 do writeln(i)",
		want: "(FOR (ASSIGN i 1) 10 (WRITELN i))",
	},
	{
		name: "for downto",
		code: "for i := j + 1 downto 1 do begin writeln(i) end",
		want: "(FOR:downto (ASSIGN i (ADD j 1)) 1 (COMPOUND (WRITELN i)))",
	},
	{
		name: "case",
		code: "case x of 1, -2: y := 1; 3: begin y := 3 end; 'a', 'bc': ; end",
		want: "(SELECT x " +
			"(SELECT_BRANCH (SELECT_CONSTANTS 1 -2) (ASSIGN y 1)) " +
			"(SELECT_BRANCH (SELECT_CONSTANTS 3) (COMPOUND (ASSIGN y 3))) " +
			"(SELECT_BRANCH (SELECT_CONSTANTS 'a' 'bc') (COMPOUND)))",
	},
	{
		name: "last case branch without semicolon",
		code: "case x of 1: y := 1; 2.5: y := 2 end",
		want: "(SELECT x " +
			"(SELECT_BRANCH (SELECT_CONSTANTS 1) (ASSIGN y 1)) " +
			"(SELECT_BRANCH (SELECT_CONSTANTS 2.5) (ASSIGN y 2)))",
	},
	{
		name: "write",
		code: "write(x); write('hi'); write(x:5); write(x:-5); write(x:5:2); write(-3:4)",
		want: "(WRITE x) (WRITE 'hi') (WRITE x 5) (WRITE x -5) (WRITE x 5 2) (WRITE -3 4)",
	},
	{
		name: "writeln",
		code: "writeln; writeln(x:10:-1); WriteLn('done')",
		want: "(WRITELN) (WRITELN x 10 -1) (WRITELN 'done')",
	},
}

func TestParse_Statements(t *testing.T) {
	for _, test := range statementTests {
		t.Run(test.name, func(t *testing.T) {
			tree, errs := parseStatements(test.code)
			if len(errs) > 0 {
				t.Fatalf("got errors: %v", errs)
			}
			if got := statements(tree); got != test.want {
				t.Errorf("got  %s\nwant %s", got, test.want)
			}
		})
	}
}

func TestParse_Program(t *testing.T) {
	tests := []struct {
		name string
		code string
	}{
		{"minimal", "program p; begin end."},
		{"case-insensitive reserved words", "PROGRAM p; Begin END."},
		{"comments", "{ header } program p; { body } begin end. { trailer"},
		{"semicolon instead of period", "program p; begin end;"},
		{"semicolon before period", "program p; begin end;."},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			tree, err := Parse(Source{Name: "test", Code: test.code}, nil, Config{})
			if test.name == "comments" {
				// The unclosed trailing comment is a token error.
				if errs := UnpackErrors(err); len(errs) != 1 || errs[0].Type != TokenError {
					t.Fatalf("got errors %v, want one token error", errs)
				}
			} else if err != nil {
				t.Fatalf("got error: %v", err)
			}
			if got := sexp(tree.Root); got != "(PROGRAM p (COMPOUND))" {
				t.Errorf("got %s", got)
			}
			if tree.Symtab.Lookup("P") == nil {
				t.Errorf("program name not entered into the symbol table")
			}
		})
	}
}

func TestParse_UsesGivenSymtab(t *testing.T) {
	tab := symtab.New()
	tree, err := Parse(Source{Name: "test", Code: "program p; begin Count := 1 end."}, tab, Config{})
	if err != nil {
		t.Fatal(err)
	}
	if tree.Symtab != tab {
		t.Errorf("tree.Symtab is not the given table")
	}
	entry := tab.Lookup("count")
	if entry == nil {
		t.Fatalf("variable not entered")
	}
	if got := tree.Root.Child(0).Child(0).Child(0).Entry; got != entry {
		t.Errorf("VARIABLE node refers to %v, want %v", got, entry)
	}
}

func TestParse_IsDeterministic(t *testing.T) {
	code := testutil.Dedent(`
		program loops;
		begin
		  i := 1; j := 10;
		  while i < j do begin
		    if i = 5 then writeln('five') else write(i:3);
		    i := i + 1
		  end;
		  repeat j := j - 1 until j <= i;
		  case j of 1, 2: writeln('small'); 5: writeln('five') end
		end.
	`)
	dump := func() string {
		tree, err := Parse(Source{Name: "test", Code: code}, nil, Config{})
		if err != nil {
			t.Fatal(err)
		}
		var sb strings.Builder
		PPrint(&sb, tree.Root)
		return sb.String()
	}
	if first, second := dump(), dump(); first != second {
		t.Errorf("parses differ:\n%s", cmp.Diff(first, second))
	}
}

func TestParse_Ranges(t *testing.T) {
	tree, err := Parse(Source{Name: "test", Code: "program p; begin x := 1 + 2 end."}, nil, Config{})
	if err != nil {
		t.Fatal(err)
	}
	assign := tree.Root.Child(0).Child(0)
	if want := (diag.Ranging{From: 17, To: 27}); assign.Ranging != want {
		t.Errorf("ASSIGN range %v, want %v", assign.Ranging, want)
	}
	if want := (diag.Ranging{From: 22, To: 27}); assign.Child(1).Ranging != want {
		t.Errorf("ADD range %v, want %v", assign.Child(1).Ranging, want)
	}
	if want := (diag.Ranging{From: 0, To: 32}); tree.Root.Ranging != want {
		t.Errorf("PROGRAM range %v, want %v", tree.Root.Ranging, want)
	}
}

func TestParse_LineNumbers(t *testing.T) {
	tree, err := Parse(Source{Name: "test", Code: "program p;\nbegin\n  x := 1;\n\n  if x = 1\n    then y := 2\nend.\n"}, nil, Config{})
	if err != nil {
		t.Fatal(err)
	}
	compound := tree.Root.Child(0)
	if got := []int{compound.Line, compound.Child(0).Line, compound.Child(1).Line, compound.Child(1).Child(1).Line}; !cmp.Equal(got, []int{2, 3, 5, 6}) {
		t.Errorf("line numbers %v, want [2 3 5 6]", got)
	}
}

func TestKind_IsBinary(t *testing.T) {
	binaries := map[Kind]bool{
		ADD: true, SUBTRACT: true, MULTIPLY: true, DIVIDE: true, INTDIV: true,
		EQ: true, NEQ: true, LT: true, GT: true, LEQ: true, GEQ: true, CEQ: true,
		AND: true, OR: true,
	}
	for k := Kind(0); k < numKinds; k++ {
		if got := k.IsBinary(); got != binaries[k] {
			t.Errorf("%s.IsBinary() -> %v, want %v", k, got, binaries[k])
		}
	}
}
