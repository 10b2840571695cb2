package eval

import (
	"fmt"

	"src.simple-lang.dev/pkg/parse"
	"src.simple-lang.dev/pkg/vals"
)

var arithOps = map[parse.Kind]vals.ArithOp{
	parse.ADD:      vals.Add,
	parse.SUBTRACT: vals.Sub,
	parse.MULTIPLY: vals.Mul,
	parse.DIVIDE:   vals.Div,
	parse.INTDIV:   vals.IntDiv,
}

// Evaluates an expression.
func (ex *Executor) eval(n *parse.Node) (vals.Value, error) {
	if n.Kind.IsBinary() {
		return ex.evalBinary(n)
	}
	switch n.Kind {
	case parse.INTEGER_CONSTANT, parse.REAL_CONSTANT, parse.STRING_CONSTANT:
		return n.Value, nil
	case parse.VARIABLE:
		v, ok := n.Entry.Value()
		if !ok {
			return vals.Value{}, ex.errorf(n, fmt.Errorf("%w: %s", ErrNoValue, n.Text))
		}
		return v, nil
	case parse.NOT:
		operand, err := ex.eval(n.Child(0))
		if err != nil {
			return vals.Value{}, err
		}
		v, err := vals.Not(operand)
		if err != nil {
			return vals.Value{}, ex.errorf(n, err)
		}
		return v, nil
	case parse.PROGRAM, parse.COMPOUND, parse.ASSIGN, parse.LOOP, parse.TEST,
		parse.WRITE, parse.WRITELN, parse.IF, parse.WHILE, parse.FOR,
		parse.SELECT, parse.SELECT_BRANCH, parse.SELECT_CONSTANTS:
		panic(fmt.Sprintf("eval: %s node evaluated as an expression", n.Kind))
	case parse.UNKNOWN:
		panic("eval: UNKNOWN node in tree; the program was not parsed cleanly")
	}
	panic(fmt.Sprintf("eval: unhandled node kind %s", n.Kind))
}

// Evaluates a binary operator. Both operands are always evaluated, including
// for AND and OR.
func (ex *Executor) evalBinary(n *parse.Node) (vals.Value, error) {
	left, err := ex.eval(n.Child(0))
	if err != nil {
		return vals.Value{}, err
	}
	right, err := ex.eval(n.Child(1))
	if err != nil {
		return vals.Value{}, err
	}
	v, err := binary(n.Kind, left, right)
	if err != nil {
		return vals.Value{}, ex.errorf(n, err)
	}
	return v, nil
}

func binary(k parse.Kind, left, right vals.Value) (vals.Value, error) {
	if op, ok := arithOps[k]; ok {
		return vals.Arith(op, left, right)
	}
	switch k {
	case parse.AND:
		return vals.And(left, right)
	case parse.OR:
		return vals.Or(left, right)
	}
	c, err := vals.Compare(left, right)
	if err != nil {
		return vals.Value{}, err
	}
	switch k {
	case parse.EQ, parse.CEQ:
		return vals.Bool(c == 0), nil
	case parse.NEQ:
		return vals.Bool(c != 0), nil
	case parse.LT:
		return vals.Bool(c < 0), nil
	case parse.GT:
		return vals.Bool(c > 0), nil
	case parse.LEQ:
		return vals.Bool(c <= 0), nil
	case parse.GEQ:
		return vals.Bool(c >= 0), nil
	}
	panic(fmt.Sprintf("eval: %s is not a binary operator", k))
}
