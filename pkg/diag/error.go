package diag

import (
	"fmt"
	"strings"
)

// Error represents an error with context that can be showed.
type Error struct {
	// Type describes the kind of the error, like "syntax error".
	Type    string
	Message string
	Context Context
}

// Error returns a plain text representation of the error, in the form of
// "type: name:line:col: message at 'culprit'".
func (e *Error) Error() string {
	s := fmt.Sprintf("%s: %s: %s", e.Type, e.Context.Describe(), e.Message)
	if culprit := e.Context.Culprit(); culprit != "" {
		s += fmt.Sprintf(" at '%s'", culprit)
	}
	return s
}

// Range returns the range of the error.
func (e *Error) Range() Ranging {
	return e.Context.Range()
}

// Show shows the error, with the type capitalized and the source excerpt on
// the following line.
func (e *Error) Show(indent string) string {
	header := fmt.Sprintf("%s: %s%s%s\n", title(e.Type), messageStart, e.Message, messageEnd)
	return header + indent + "  " + e.Context.Show(indent+"  ")
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// MultiError packs multiple errors with context into one error.
type MultiError struct {
	Errors []*Error
}

func (me *MultiError) Error() string {
	switch len(me.Errors) {
	case 0:
		return "no error"
	case 1:
		return me.Errors[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "multiple errors: ")
	for i, e := range me.Errors {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(e.Error())
	}
	return sb.String()
}

// Show shows all the errors, one after another.
func (me *MultiError) Show(indent string) string {
	var sb strings.Builder
	for i, e := range me.Errors {
		if i > 0 {
			sb.WriteString("\n" + indent)
		}
		sb.WriteString(e.Show(indent))
	}
	return sb.String()
}

// PackErrors returns nil if errs is empty, the sole error if it has one
// element, and a *MultiError otherwise.
func PackErrors(errs []*Error) error {
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	default:
		return &MultiError{append([]*Error(nil), errs...)}
	}
}

// UnpackErrors returns the constituent errors of an error returned by
// PackErrors. It returns nil for any other error.
func UnpackErrors(err error) []*Error {
	switch err := err.(type) {
	case *Error:
		return []*Error{err}
	case *MultiError:
		return append([]*Error(nil), err.Errors...)
	default:
		return nil
	}
}
