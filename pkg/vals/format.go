package vals

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// NoPlaces can be passed to Format as the places argument to request the
// natural representation.
const NoPlaces = -1

// Format renders a value for write and writeln.
//
// When places is non-negative and v is a number, the number is rendered with
// exactly that many digits after the decimal point, integers being promoted
// to real. Otherwise the natural representation is used.
//
// The result is then padded with spaces to at least |width| columns: on the
// left (right-justified) for a positive width, on the right (left-justified)
// for a negative width.
func Format(v Value, width, places int) string {
	var s string
	if places >= 0 && v.IsNumber() {
		s = strconv.FormatFloat(v.Float(), 'f', places, 64)
	} else {
		s = v.String()
	}
	return pad(s, width)
}

func pad(s string, width int) string {
	left := width >= 0
	if !left {
		width = -width
	}
	n := width - utf8.RuneCountInString(s)
	if n <= 0 {
		return s
	}
	if left {
		return strings.Repeat(" ", n) + s
	}
	return s + strings.Repeat(" ", n)
}
