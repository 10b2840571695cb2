// Package errutil contains utilities for working with errors.
package errutil

import "strings"

// Multi combines errors into one. Nil errors are dropped; it returns nil if
// nothing remains and the sole error if one does. Errors returned by Multi
// are flattened, and the result supports errors.Is and errors.As through
// its Unwrap method.
func Multi(errs ...error) error {
	var all multiError
	for _, err := range errs {
		switch err := err.(type) {
		case nil:
		case multiError:
			all = append(all, err...)
		default:
			all = append(all, err)
		}
	}
	switch len(all) {
	case 0:
		return nil
	case 1:
		return all[0]
	}
	return all
}

type multiError []error

func (me multiError) Error() string {
	msgs := make([]string, len(me))
	for i, err := range me {
		msgs[i] = err.Error()
	}
	return "multiple errors: " + strings.Join(msgs, "; ")
}

func (me multiError) Unwrap() []error { return me }
