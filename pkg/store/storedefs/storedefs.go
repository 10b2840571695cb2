// Package storedefs contains definitions of the store API.
//
// It is a separate package so that packages that only depend on the store API
// does not need to depend on the concrete implementation.
package storedefs

import (
	"errors"
	"time"
)

// ErrNoMatchingRun is the error returned when a run is queried by a sequence
// number that does not exist.
var ErrNoMatchingRun = errors.New("no matching run")

// Store is an interface satisfied by the storage service.
type Store interface {
	NextRunSeq() (int, error)
	AddRun(run Run) (int, error)
	DelRun(seq int) error
	Run(seq int) (Run, error)
	RunsWithSeq(from, upto int) ([]Run, error)
}

// Status of a run.
const (
	StatusOK           = "ok"
	StatusParseError   = "parse-error"
	StatusRuntimeError = "runtime-error"
)

// Run is an entry in the run history: one attempt to execute a program.
type Run struct {
	// Sequence number, assigned by the store.
	Seq int `json:"-"`
	// Unique ID, assigned by the store if empty.
	ID string `json:"id"`
	// Name of the program, as written after PROGRAM.
	Program string `json:"program"`
	// Path of the source file.
	File string `json:"file"`
	// One of StatusOK, StatusParseError and StatusRuntimeError.
	Status string `json:"status"`
	// Error messages; at most one for a runtime error.
	Errors []string `json:"errors,omitempty"`
	// Final values of the variables, keyed by name.
	Variables map[string]string `json:"variables,omitempty"`
	Time      time.Time         `json:"time"`
}
