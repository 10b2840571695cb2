package vals

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrDivideByZero is returned by Arith for "/" and DIV by zero.
var ErrDivideByZero = errors.New("division by zero")

// ErrOverflow is returned by Arith when an integer result does not fit in 64
// bits.
var ErrOverflow = errors.New("integer overflow")

// OpError is returned when an operator is applied to operands of unsupported
// kinds.
type OpError struct {
	Op    string
	Left  Kind
	Right Kind
	// Unary is set for errors from operators that take one operand; Right is
	// unused.
	Unary bool
}

func (e *OpError) Error() string {
	if e.Unary {
		return fmt.Sprintf("invalid operand for %s: %s", e.Op, e.Left)
	}
	return fmt.Sprintf("invalid operands for %s: %s and %s", e.Op, e.Left, e.Right)
}

// ArithOp is an arithmetic operator.
type ArithOp uint8

// Arithmetic operators.
const (
	Add ArithOp = iota
	Sub
	Mul
	Div
	IntDiv
)

var arithOpNames = [...]string{Add: "+", Sub: "-", Mul: "*", Div: "/", IntDiv: "DIV"}

func (op ArithOp) String() string { return arithOpNames[op] }

// Arith applies an arithmetic operator. Two integers yield an integer for +, -,
// * and DIV; "/" always yields a real; an integer mixed with a real is promoted
// to real first. DIV only accepts integers.
func Arith(op ArithOp, a, b Value) (Value, error) {
	if !a.IsNumber() || !b.IsNumber() {
		return Value{}, &OpError{Op: op.String(), Left: a.kind, Right: b.kind}
	}
	bothInt := a.kind == Integer && b.kind == Integer
	switch op {
	case IntDiv:
		if !bothInt {
			return Value{}, &OpError{Op: op.String(), Left: a.kind, Right: b.kind}
		}
		if b.i == 0 {
			return Value{}, ErrDivideByZero
		}
		if a.i == math.MinInt64 && b.i == -1 {
			return Value{}, ErrOverflow
		}
		return Int(a.i / b.i), nil
	case Div:
		if b.Float() == 0 {
			return Value{}, ErrDivideByZero
		}
		return Float(a.Float() / b.Float()), nil
	}
	if bothInt {
		r, ok := intArith(op, a.i, b.i)
		if !ok {
			return Value{}, ErrOverflow
		}
		return Int(r), nil
	} else {
		switch op {
		case Add:
			return Float(a.Float() + b.Float()), nil
		case Sub:
			return Float(a.Float() - b.Float()), nil
		case Mul:
			return Float(a.Float() * b.Float()), nil
		}
	}
	panic("unreachable")
}

// Applies +, - or * to two integers. The second return value is false if
// the result overflows.
func intArith(op ArithOp, a, b int64) (int64, bool) {
	switch op {
	case Add:
		r := a + b
		return r, (a^r)&(b^r) >= 0
	case Sub:
		r := a - b
		return r, (a^b)&(a^r) >= 0
	case Mul:
		if a == 0 || b == 0 {
			return 0, true
		}
		r := a * b
		if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) || r/b != a {
			return r, false
		}
		return r, true
	}
	panic("unreachable")
}

// Compare compares two values, returning -1, 0 or 1. Numbers compare under
// promotion, texts lexically and booleans with false before true. Values of
// other combinations of kinds cannot be compared.
func Compare(a, b Value) (int, error) {
	switch {
	case a.kind == Integer && b.kind == Integer:
		return cmpOrdered(a.i, b.i), nil
	case a.IsNumber() && b.IsNumber():
		return cmpOrdered(a.Float(), b.Float()), nil
	case a.kind == Text && b.kind == Text:
		return strings.Compare(a.s, b.s), nil
	case a.kind == Boolean && b.kind == Boolean:
		return cmpOrdered(boolToInt(a.b), boolToInt(b.b)), nil
	}
	return 0, &OpError{Op: "comparison", Left: a.kind, Right: b.kind}
}

// Equal reports whether two values are equal under the rules of Compare.
// Values that cannot be compared are not equal.
func Equal(a, b Value) bool {
	c, err := Compare(a, b)
	return err == nil && c == 0
}

// Not negates a boolean.
func Not(v Value) (Value, error) {
	if v.kind != Boolean {
		return Value{}, &OpError{Op: "NOT", Left: v.kind, Unary: true}
	}
	return Bool(!v.b), nil
}

// And computes the logical conjunction of two booleans.
func And(a, b Value) (Value, error) {
	if a.kind != Boolean || b.kind != Boolean {
		return Value{}, &OpError{Op: "AND", Left: a.kind, Right: b.kind}
	}
	return Bool(a.b && b.b), nil
}

// Or computes the logical disjunction of two booleans.
func Or(a, b Value) (Value, error) {
	if a.kind != Boolean || b.kind != Boolean {
		return Value{}, &OpError{Op: "OR", Left: a.kind, Right: b.kind}
	}
	return Bool(a.b || b.b), nil
}

func cmpOrdered[T int64 | float64 | int](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
