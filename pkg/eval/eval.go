// Package eval implements the executor of Simple.
//
// The executor walks the parse tree built by the parse package, evaluating
// expressions to vals.Value and storing variables in their symbol table
// entries. The tree must have been parsed without errors.
package eval

import (
	"errors"
	"fmt"
	"io"

	"src.simple-lang.dev/pkg/diag"
	"src.simple-lang.dev/pkg/logutil"
	"src.simple-lang.dev/pkg/parse"
	"src.simple-lang.dev/pkg/vals"
)

var logger = logutil.GetLogger("[eval] ")

// Errors returned as the reason of exceptions.
var (
	ErrNotBoolean = errors.New("condition is not a boolean")
	ErrNoValue    = errors.New("variable has no value")
	ErrFieldSize  = errors.New("field width or decimal places out of range")
)

// Limits on the field width and decimal places of WRITE and WRITELN.
const (
	MaxFieldWidth = 1 << 16
	MaxPlaces     = 1 << 10
)

// Executor executes programs.
type Executor struct {
	out io.Writer
	src parse.Source
}

// New creates an Executor that writes program output to out.
func New(out io.Writer) *Executor {
	return &Executor{out: out}
}

// Execute executes a parsed program. It stops at the first runtime error,
// which is returned as an *Exception.
//
// Execute panics if the tree contains nodes that cannot appear in a tree
// parsed without errors.
func (ex *Executor) Execute(tree *parse.Tree) error {
	ex.src = tree.Source
	logger.Printf("executing %s", tree.Source.Name)
	err := ex.exec(tree.Root)
	if err != nil {
		logger.Printf("%s stopped: %v", tree.Source.Name, err)
	}
	return err
}

func (ex *Executor) errorf(n *parse.Node, reason error) error {
	return &Exception{reason, diag.NewContext(ex.src.Name, ex.src.Code, n)}
}

// Executes a statement.
func (ex *Executor) exec(n *parse.Node) error {
	switch n.Kind {
	case parse.PROGRAM:
		return ex.exec(n.Child(0))
	case parse.COMPOUND:
		return ex.execAll(n.Children)
	case parse.ASSIGN:
		return ex.execAssign(n)
	case parse.LOOP:
		return ex.execLoop(n)
	case parse.IF:
		return ex.execIf(n)
	case parse.WHILE:
		return ex.execWhile(n)
	case parse.FOR:
		return ex.execFor(n)
	case parse.SELECT:
		return ex.execSelect(n)
	case parse.WRITE, parse.WRITELN:
		return ex.execWrite(n)
	case parse.TEST, parse.SELECT_BRANCH, parse.SELECT_CONSTANTS,
		parse.ADD, parse.SUBTRACT, parse.MULTIPLY, parse.DIVIDE, parse.INTDIV,
		parse.EQ, parse.NEQ, parse.LT, parse.GT, parse.LEQ, parse.GEQ, parse.CEQ,
		parse.AND, parse.OR, parse.NOT,
		parse.VARIABLE, parse.INTEGER_CONSTANT, parse.REAL_CONSTANT, parse.STRING_CONSTANT:
		panic(fmt.Sprintf("eval: %s node executed as a statement", n.Kind))
	case parse.UNKNOWN:
		panic("eval: UNKNOWN node in tree; the program was not parsed cleanly")
	}
	panic(fmt.Sprintf("eval: unhandled node kind %s", n.Kind))
}

func (ex *Executor) execAll(stmts []*parse.Node) error {
	for _, stmt := range stmts {
		if err := ex.exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (ex *Executor) execAssign(n *parse.Node) error {
	v, err := ex.eval(n.Child(1))
	if err != nil {
		return err
	}
	n.Child(0).Entry.SetValue(v)
	return nil
}

func (ex *Executor) execIf(n *parse.Node) error {
	cond, err := ex.condition(n.Child(0))
	if err != nil {
		return err
	}
	if cond {
		return ex.exec(n.Child(1))
	} else if elseBranch := n.Child(2); elseBranch != nil {
		return ex.exec(elseBranch)
	}
	return nil
}

func (ex *Executor) execWhile(n *parse.Node) error {
	for {
		cond, err := ex.condition(n.Child(0))
		if err != nil || !cond {
			return err
		}
		if err := ex.exec(n.Child(1)); err != nil {
			return err
		}
	}
}

// Executes a REPEAT loop. The body runs at least once, and the loop ends when
// the TEST condition is true.
func (ex *Executor) execLoop(n *parse.Node) error {
	body, test := n.Children[:len(n.Children)-1], n.Children[len(n.Children)-1]
	if test.Kind != parse.TEST {
		panic("eval: LOOP node without a trailing TEST")
	}
	for {
		if err := ex.execAll(body); err != nil {
			return err
		}
		done, err := ex.condition(test.Child(0))
		if err != nil || done {
			return err
		}
	}
}

// Executes a FOR loop. The limit is evaluated before each iteration, and the
// control variable is stepped by 1 from its current value after each
// iteration, so the body can change both.
func (ex *Executor) execFor(n *parse.Node) error {
	init, limit, body := n.Child(0), n.Child(1), n.Child(2)
	if err := ex.exec(init); err != nil {
		return err
	}
	control := init.Child(0)
	step := vals.Add
	if n.Descending {
		step = vals.Sub
	}
	for {
		current, err := ex.eval(control)
		if err != nil {
			return err
		}
		bound, err := ex.eval(limit)
		if err != nil {
			return err
		}
		c, err := vals.Compare(current, bound)
		if err != nil {
			return ex.errorf(n, err)
		}
		if (!n.Descending && c > 0) || (n.Descending && c < 0) {
			return nil
		}
		if err := ex.exec(body); err != nil {
			return err
		}
		current, err = ex.eval(control)
		if err != nil {
			return err
		}
		next, err := vals.Arith(step, current, vals.Int(1))
		if err != nil {
			return ex.errorf(control, err)
		}
		control.Entry.SetValue(next)
	}
}

// Executes a CASE statement: the first branch with a constant equal to the
// selector is executed. If there is none, nothing happens.
func (ex *Executor) execSelect(n *parse.Node) error {
	selector, err := ex.eval(n.Child(0))
	if err != nil {
		return err
	}
	for _, branch := range n.Children[1:] {
		for _, constant := range branch.Child(0).Children {
			v, err := ex.eval(constant)
			if err != nil {
				return err
			}
			if vals.Equal(selector, v) {
				return ex.exec(branch.Child(1))
			}
		}
	}
	return nil
}

func (ex *Executor) execWrite(n *parse.Node) error {
	var s string
	if len(n.Children) > 0 {
		v, err := ex.eval(n.Child(0))
		if err != nil {
			return err
		}
		width, places := 0, vals.NoPlaces
		if w := n.Child(1); w != nil {
			i := w.Value.Int()
			if i < -MaxFieldWidth || i > MaxFieldWidth {
				return ex.errorf(w, fmt.Errorf("%w: width %d", ErrFieldSize, i))
			}
			width = int(i)
		}
		if p := n.Child(2); p != nil {
			i := p.Value.Int()
			if i > MaxPlaces {
				return ex.errorf(p, fmt.Errorf("%w: %d places", ErrFieldSize, i))
			}
			places = int(i)
		}
		s = vals.Format(v, width, places)
	}
	if n.Kind == parse.WRITELN {
		s += "\n"
	}
	if _, err := io.WriteString(ex.out, s); err != nil {
		return ex.errorf(n, err)
	}
	return nil
}

// Evaluates an expression that must yield a boolean.
func (ex *Executor) condition(n *parse.Node) (bool, error) {
	v, err := ex.eval(n)
	if err != nil {
		return false, err
	}
	if v.Kind() != vals.Boolean {
		return false, ex.errorf(n, fmt.Errorf("%w: %s", ErrNotBoolean, v.Repr()))
	}
	return v.Bool(), nil
}
