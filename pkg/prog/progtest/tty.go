//go:build !windows

package progtest

import (
	"io"
	"os"
	"testing"

	"github.com/creack/pty"

	"src.simple-lang.dev/pkg/must"
	"src.simple-lang.dev/pkg/prog"
)

// RunWithTTYStderr is like Run, but connects stderr to a pseudo terminal. It
// returns what the program wrote to the terminal in place of stderr. The test
// is skipped if no pseudo terminal can be opened.
//
// The terminal translates "\n" to "\r\n".
func RunWithTTYStderr(t *testing.T, p prog.Program, args ...string) (stdout, stderr string, exitCode int) {
	t.Helper()
	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skip("cannot open pty:", err)
	}
	defer ptmx.Close()

	r0, w0 := must.Pipe()
	w0.Close()
	defer r0.Close()
	w1, get1 := capturedOutput()

	terminal := make(chan string, 1)
	go func() {
		// Reading from the master side fails with EIO once the tty is closed
		// and drained; what was read so far is still returned.
		b, _ := io.ReadAll(ptmx)
		terminal <- string(b)
	}()

	exitCode = prog.Run([3]*os.File{r0, w1, tty}, append([]string{"simple"}, args...), p)
	tty.Close()
	return get1(), <-terminal, exitCode
}
