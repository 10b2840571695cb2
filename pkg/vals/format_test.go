package vals

import (
	"testing"

	"src.simple-lang.dev/pkg/tt"
)

func TestFormat(t *testing.T) {
	tt.Test(t, tt.Fn("Format", Format),
		// Natural representation.
		tt.Args(Int(1), 0, NoPlaces).Rets("1"),
		tt.Args(Float(1.5), 0, NoPlaces).Rets("1.5"),
		tt.Args(String("hi"), 0, NoPlaces).Rets("hi"),
		// Width right-justifies.
		tt.Args(Int(1), 3, NoPlaces).Rets("  1"),
		tt.Args(String("ab"), 5, NoPlaces).Rets("   ab"),
		// Negative width left-justifies.
		tt.Args(Int(1), -3, NoPlaces).Rets("1  "),
		// Width smaller than the text does not truncate.
		tt.Args(Int(12345), 3, NoPlaces).Rets("12345"),
		// Decimal places.
		tt.Args(Int(-5), 5, 2).Rets("-5.00"),
		tt.Args(Float(3.14159), 8, 3).Rets("   3.142"),
		tt.Args(Float(2.5), -6, 1).Rets("2.5   "),
		tt.Args(Float(2.75), 0, 0).Rets("3"),
		// Places do not apply to texts and booleans.
		tt.Args(Bool(false), 6, 2).Rets(" false"),
		// Negative places are ignored.
		tt.Args(Float(1.25), 0, -2).Rets("1.25"),
		// Width counts runes.
		tt.Args(String("é"), 3, NoPlaces).Rets("  é"),
	)
}
