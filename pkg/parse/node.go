package parse

import (
	"fmt"

	"src.simple-lang.dev/pkg/diag"
	"src.simple-lang.dev/pkg/symtab"
	"src.simple-lang.dev/pkg/vals"
)

// Kind is the kind of a parse tree node.
type Kind uint8

// Node kinds.
const (
	PROGRAM Kind = iota
	COMPOUND
	ASSIGN
	// REPEAT ... UNTIL loop. The last child is always a TEST.
	LOOP
	TEST
	WRITE
	WRITELN

	ADD
	SUBTRACT
	MULTIPLY
	DIVIDE
	INTDIV
	EQ
	NEQ
	LT
	GT
	LEQ
	GEQ
	// Equality test written with ":=".
	CEQ
	AND
	OR
	NOT

	VARIABLE
	INTEGER_CONSTANT
	REAL_CONSTANT
	STRING_CONSTANT

	IF
	WHILE
	FOR
	SELECT
	SELECT_BRANCH
	SELECT_CONSTANTS

	// Placeholder for a factor or constant that failed to parse. It only
	// appears in trees built with errors.
	UNKNOWN

	numKinds
)

var kindNames = [numKinds]string{
	PROGRAM: "PROGRAM", COMPOUND: "COMPOUND", ASSIGN: "ASSIGN", LOOP: "LOOP",
	TEST: "TEST", WRITE: "WRITE", WRITELN: "WRITELN",
	ADD: "ADD", SUBTRACT: "SUBTRACT", MULTIPLY: "MULTIPLY", DIVIDE: "DIVIDE",
	INTDIV: "INTDIV", EQ: "EQ", NEQ: "NEQ", LT: "LT", GT: "GT", LEQ: "LEQ",
	GEQ: "GEQ", CEQ: "CEQ", AND: "AND", OR: "OR", NOT: "NOT",
	VARIABLE: "VARIABLE", INTEGER_CONSTANT: "INTEGER_CONSTANT",
	REAL_CONSTANT: "REAL_CONSTANT", STRING_CONSTANT: "STRING_CONSTANT",
	IF: "IF", WHILE: "WHILE", FOR: "FOR", SELECT: "SELECT",
	SELECT_BRANCH: "SELECT_BRANCH", SELECT_CONSTANTS: "SELECT_CONSTANTS",
	UNKNOWN: "UNKNOWN",
}

func (k Kind) String() string {
	if k < numKinds {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// IsStatement reports whether nodes of kind k are statements.
func (k Kind) IsStatement() bool {
	switch k {
	case COMPOUND, ASSIGN, LOOP, WRITE, WRITELN, IF, WHILE, FOR, SELECT:
		return true
	}
	return false
}

// IsBinary reports whether nodes of kind k are binary operators.
func (k Kind) IsBinary() bool { return ADD <= k && k <= OR }

// Node is a node in the parse tree.
//
// A node owns its children exclusively. The children are ordered, and the
// order is significant:
//
//   - ASSIGN: the variable, then the expression.
//   - IF: the condition, the then-branch and an optional else-branch.
//   - WHILE: the condition and the body.
//   - FOR: the initial assignment, the limit and the body.
//   - LOOP: the body statements followed by a single TEST, whose only child
//     is the condition.
//   - SELECT: the selector followed by SELECT_BRANCH nodes, each of which
//     has a SELECT_CONSTANTS child and a statement.
//   - Binary operators: the left operand, then the right operand.
//   - WRITE and WRITELN: the value, an optional width and optional places.
type Node struct {
	Kind Kind
	// 1-based line number of the first token of the node.
	Line int
	// Name of the program or variable.
	Text string
	// Symbol table entry of a variable. This is nil for a variable that was
	// used before being assigned.
	Entry *symtab.Entry
	// Value of a constant.
	Value vals.Value
	// Whether a FOR loop counts down.
	Descending bool
	Children   []*Node
	diag.Ranging
}

// Adopt appends a child to the node. A nil child is ignored.
func (n *Node) Adopt(child *Node) {
	if child != nil {
		n.Children = append(n.Children, child)
	}
}

// Child returns the i-th child, or nil if there is no such child.
func (n *Node) Child(i int) *Node {
	if i < len(n.Children) {
		return n.Children[i]
	}
	return nil
}

// Walk calls f on n and all its descendants in depth-first pre-order, stopping
// at nodes for which f returns false.
func Walk(n *Node, f func(*Node) bool) {
	if !f(n) {
		return
	}
	for _, ch := range n.Children {
		Walk(ch, f)
	}
}
