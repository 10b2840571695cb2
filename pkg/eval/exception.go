package eval

import (
	"fmt"

	"src.simple-lang.dev/pkg/diag"
)

// Exception is a runtime error, with the context of the node being executed
// when it happened.
type Exception struct {
	reason  error
	context *diag.Context
}

// Reason returns the reason of err if it is an *Exception. Otherwise it
// returns err itself.
func Reason(err error) error {
	if exc, ok := err.(*Exception); ok {
		return exc.reason
	}
	return err
}

// Reason returns the cause of the exception.
func (exc *Exception) Reason() error { return exc.reason }

// Context returns where the exception happened.
func (exc *Exception) Context() *diag.Context { return exc.context }

// Unwrap supports errors.Is and errors.As.
func (exc *Exception) Unwrap() error { return exc.reason }

// Range returns the range of the node that caused the exception.
func (exc *Exception) Range() diag.Ranging { return exc.context.Range() }

// Error returns "runtime error: name:line:col: reason".
func (exc *Exception) Error() string {
	return fmt.Sprintf("runtime error: %s: %s", exc.context.Describe(), exc.reason)
}

// Show shows the exception, with the source excerpt on the following line.
func (exc *Exception) Show(indent string) string {
	return (&diag.Error{Type: "runtime error", Message: exc.reason.Error(), Context: *exc.context}).Show(indent)
}
