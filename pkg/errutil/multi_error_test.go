package errutil

import (
	"errors"
	"os"
	"testing"
)

var (
	errA = errors.New("a")
	errB = errors.New("b")
	errC = errors.New("c")
)

func TestMulti(t *testing.T) {
	if err := Multi(); err != nil {
		t.Errorf("Multi() = %v, want nil", err)
	}
	if err := Multi(nil, nil); err != nil {
		t.Errorf("Multi(nil, nil) = %v, want nil", err)
	}
	if err := Multi(nil, errA); err != errA {
		t.Errorf("Multi(nil, errA) = %v, want errA", err)
	}

	err := Multi(Multi(errA, nil, errB), errC)
	if got, want := err.Error(), "multiple errors: a; b; c"; got != want {
		t.Errorf("got message %q, want %q", got, want)
	}
	for _, e := range []error{errA, errB, errC} {
		if !errors.Is(err, e) {
			t.Errorf("errors.Is(%v, %v) is false", err, e)
		}
	}
	var pathErr *os.PathError
	if !errors.As(Multi(errA, &os.PathError{Op: "open"}), &pathErr) || pathErr.Op != "open" {
		t.Errorf("errors.As found the wrong error")
	}
}
