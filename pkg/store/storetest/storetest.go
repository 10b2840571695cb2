// Package storetest keeps test suites against storedefs.Store.
package storetest

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"src.simple-lang.dev/pkg/store/storedefs"
)

var (
	runs = []storedefs.Run{
		{Program: "hello", File: "hello.simple", Status: storedefs.StatusOK,
			Variables: map[string]string{"x": "42", "s": "'hi'"}},
		{Program: "broken", File: "broken.simple", Status: storedefs.StatusParseError,
			Errors: []string{"syntax error: broken.simple:3:6: Unexpected token at '*'"}},
		{ID: "fixed-id", Program: "crash", File: "crash.simple", Status: storedefs.StatusRuntimeError,
			Errors: []string{"runtime error: crash.simple:4:6: division by zero"},
			Time:   time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)},
	}
	// IDs and times that are filled in by the store are not compared.
	ignoreFilled = cmpopts.IgnoreFields(storedefs.Run{}, "ID", "Time")
)

func matchErr(e1, e2 error) bool {
	return (e1 == nil && e2 == nil) || (e1 != nil && e2 != nil && e1.Error() == e2.Error())
}

// TestRuns tests the run history functionality of a Store.
func TestRuns(t *testing.T, store storedefs.Store) {
	startSeq, err := store.NextRunSeq()
	if startSeq != 1 || err != nil {
		t.Errorf("store.NextRunSeq() -> %v, %v, want %v, nil", startSeq, err, 1)
	}

	// AddRun
	for i, run := range runs {
		wantSeq := startSeq + i
		seq, err := store.AddRun(run)
		if seq != wantSeq || err != nil {
			t.Errorf("store.AddRun(%v) -> %v, %v, want %v, nil", run, seq, err, wantSeq)
		}
	}

	endSeq, err := store.NextRunSeq()
	wantEndSeq := startSeq + len(runs)
	if endSeq != wantEndSeq || err != nil {
		t.Errorf("store.NextRunSeq() -> %v, %v, want %v, nil", endSeq, err, wantEndSeq)
	}

	// Run
	for i, want := range runs {
		seq := i + startSeq
		want.Seq = seq
		got, err := store.Run(seq)
		if err != nil {
			t.Errorf("store.Run(%v) -> error %v", seq, err)
		}
		if diff := cmp.Diff(want, got, ignoreFilled); diff != "" {
			t.Errorf("store.Run(%v) (-want +got):\n%s", seq, diff)
		}
		if got.ID == "" || got.Time.IsZero() {
			t.Errorf("store.Run(%v) has no ID or time: %v", seq, got)
		}
	}
	if got, _ := store.Run(startSeq + 2); got.ID != "fixed-id" || !got.Time.Equal(runs[2].Time) {
		t.Errorf("given ID and time not kept: %v", got)
	}
	if a, b := mustRun(t, store, startSeq), mustRun(t, store, startSeq+1); a.ID == b.ID {
		t.Errorf("two runs got the same ID %s", a.ID)
	}

	// RunsWithSeq
	got, err := store.RunsWithSeq(startSeq+1, endSeq)
	if err != nil {
		t.Errorf("store.RunsWithSeq -> error %v", err)
	}
	if len(got) != 2 || got[0].Seq != startSeq+1 || got[1].Program != "crash" {
		t.Errorf("store.RunsWithSeq(%v, %v) -> %v", startSeq+1, endSeq, got)
	}

	// DelRun
	if err := store.DelRun(startSeq); err != nil {
		t.Errorf("store.DelRun(%v) -> %v", startSeq, err)
	}
	if _, err := store.Run(startSeq); !matchErr(err, storedefs.ErrNoMatchingRun) {
		t.Errorf("store.Run after DelRun -> error %v, want %v", err, storedefs.ErrNoMatchingRun)
	}
	if got, _ := store.RunsWithSeq(0, endSeq); len(got) != 2 {
		t.Errorf("store.RunsWithSeq after DelRun -> %d runs, want 2", len(got))
	}
}

func mustRun(t *testing.T, store storedefs.Store, seq int) storedefs.Run {
	t.Helper()
	run, err := store.Run(seq)
	if err != nil {
		t.Fatal(err)
	}
	return run
}
