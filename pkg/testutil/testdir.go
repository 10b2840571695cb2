package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// TempDir returns a temporary directory for testing that has all symlinks
// resolved. The directory is removed when the test finishes.
func TempDir(t testing.TB) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("resolve temp dir: %v", err)
	}
	return dir
}

// Chdir changes into a directory, and restores the original working directory
// when the test finishes. It returns the directory for easier chaining.
func Chdir(t testing.TB, dir string) string {
	t.Helper()
	oldWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(oldWd); err != nil {
			t.Errorf("restore working directory: %v", err)
		}
	})
	return dir
}

// InTempDir is equivalent to Chdir(t, TempDir(t)).
func InTempDir(t testing.TB) string {
	return Chdir(t, TempDir(t))
}

// Dir describes the layout of a directory. The keys of the map represent
// filenames. Each value is either a string (for the content of a regular
// file) or a Dir (for the content of a subdirectory).
type Dir map[string]any

// ApplyDir creates the given filesystem layout in the current directory.
func ApplyDir(t testing.TB, dir Dir) {
	t.Helper()
	applyDir(t, dir, "")
}

func applyDir(t testing.TB, dir Dir, prefix string) {
	for name, file := range dir {
		path := filepath.Join(prefix, name)
		switch file := file.(type) {
		case string:
			if err := os.WriteFile(path, []byte(file), 0600); err != nil {
				t.Fatalf("write %s: %v", path, err)
			}
		case Dir:
			if err := os.MkdirAll(path, 0700); err != nil {
				t.Fatalf("mkdir %s: %v", path, err)
			}
			applyDir(t, file, path)
		default:
			panic("file is neither string nor Dir")
		}
	}
}
