package store

import (
	"path/filepath"

	"src.simple-lang.dev/pkg/testutil"
)

// MustTempStore returns a Store backed by a file in a temporary directory.
// The Store is closed and the directory removed when the test finishes.
func MustTempStore(t testutil.TempDirer) DBStore {
	st, err := NewStore(filepath.Join(t.TempDir(), "simple.test.db"))
	if err != nil {
		panic(err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}
