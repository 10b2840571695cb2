// Package vals contains the values manipulated by Simple programs.
//
// A Value is a tagged variant: an integer, a real, a text or a boolean.
// Literal values carried by tokens and parse tree nodes use the same type, so
// that the executor can store them without conversion.
package vals

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind is the tag of a Value.
type Kind uint8

// Possible values of Kind. The zero Value has kind Invalid, which is used as
// "no value".
const (
	Invalid Kind = iota
	Integer
	Real
	Text
	Boolean
)

var kindNames = [...]string{
	Invalid: "invalid", Integer: "integer", Real: "real",
	Text: "text", Boolean: "boolean",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Value is a runtime or literal value.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
	b    bool
}

// Int returns an integer Value.
func Int(i int64) Value { return Value{kind: Integer, i: i} }

// Float returns a real Value.
func Float(f float64) Value { return Value{kind: Real, f: f} }

// String returns a text Value.
func String(s string) Value { return Value{kind: Text, s: s} }

// Bool returns a boolean Value.
func Bool(b bool) Value { return Value{kind: Boolean, b: b} }

// Kind returns the tag of the value.
func (v Value) Kind() Kind { return v.kind }

// IsValid reports whether v holds a value.
func (v Value) IsValid() bool { return v.kind != Invalid }

// IsNumber reports whether v is an integer or a real.
func (v Value) IsNumber() bool { return v.kind == Integer || v.kind == Real }

// Int returns the integer held by v. It panics if v is not an integer.
func (v Value) Int() int64 {
	v.mustBe(Integer)
	return v.i
}

// Float returns the number held by v as a float64, promoting integers. It
// panics if v is not a number.
func (v Value) Float() float64 {
	switch v.kind {
	case Integer:
		return float64(v.i)
	case Real:
		return v.f
	}
	panic("vals: Float called on " + v.kind.String() + " value")
}

// Text returns the text held by v. It panics if v is not a text.
func (v Value) Text() string {
	v.mustBe(Text)
	return v.s
}

// Bool returns the boolean held by v. It panics if v is not a boolean.
func (v Value) Bool() bool {
	v.mustBe(Boolean)
	return v.b
}

func (v Value) mustBe(k Kind) {
	if v.kind != k {
		panic("vals: " + k.String() + " expected, got " + v.kind.String())
	}
}

// Negate returns -v for a number. It panics if v is not a number.
func (v Value) Negate() Value {
	switch v.kind {
	case Integer:
		return Int(-v.i)
	case Real:
		return Float(-v.f)
	}
	panic("vals: Negate called on " + v.kind.String() + " value")
}

// String returns the natural representation of the value, which is also what
// write prints when no format is given.
func (v Value) String() string {
	switch v.kind {
	case Integer:
		return strconv.FormatInt(v.i, 10)
	case Real:
		return formatFloat64(v.f)
	case Text:
		return v.s
	case Boolean:
		return strconv.FormatBool(v.b)
	}
	return ""
}

// Repr returns a representation of the value that identifies its kind, for
// use in parse tree dumps and error messages. Texts are quoted the way they
// are written in source code.
func (v Value) Repr() string {
	switch v.kind {
	case Text:
		return "'" + strings.ReplaceAll(v.s, "'", "''") + "'"
	case Invalid:
		return "<none>"
	}
	return v.String()
}

// Native returns the value as a Go value: int64, float64, string or bool. It
// returns nil for the zero Value.
func (v Value) Native() any {
	switch v.kind {
	case Integer:
		return v.i
	case Real:
		return v.f
	case Text:
		return v.s
	case Boolean:
		return v.b
	}
	return nil
}

// GoString makes %#v print the same as Repr, which makes test failures easier
// to read.
func (v Value) GoString() string { return v.kind.String() + "(" + v.Repr() + ")" }

// Go's 'g' format uses scientific notation too aggressively. Use the 'f'
// format unless the number is very large or very small, and always show a
// decimal point so that reals can be told apart from integers.
func formatFloat64(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	noPoint := !strings.ContainsRune(s, '.')
	if (noPoint && len(s) > 14 && s[len(s)-1] == '0') ||
		strings.HasPrefix(strings.TrimPrefix(s, "-"), "0.0000") {
		return strconv.FormatFloat(f, 'e', -1, 64)
	} else if noPoint && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return s + ".0"
	}
	return s
}
