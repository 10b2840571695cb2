package testutil

import (
	"regexp"
	"strings"
)

var (
	whitespaceOnly    = regexp.MustCompile("(?m)^[ \t]+$")
	leadingWhitespace = regexp.MustCompile("(?m)(^[ \t]*)(?:[^ \t\n])")
)

// Dedent removes any common leading whitespace from every line in text. An
// initial newline is removed.
//
// This lets multi-line raw strings, typically source programs and expected
// output, be indented along with the test code.
func Dedent(text string) string {
	if strings.HasPrefix(text, "\n") {
		text = text[1:]
	}
	text = whitespaceOnly.ReplaceAllString(text, "")

	margin := ""
	for i, indent := range leadingWhitespace.FindAllStringSubmatch(text, -1) {
		switch {
		case i == 0:
			margin = indent[1]
		case strings.HasPrefix(indent[1], margin):
			// Deeper than the current margin; no change.
		case strings.HasPrefix(margin, indent[1]):
			margin = indent[1]
		default:
			// No common whitespace at all.
			return text
		}
	}
	if margin == "" {
		return text
	}
	return regexp.MustCompile("(?m)^"+margin).ReplaceAllString(text, "")
}
