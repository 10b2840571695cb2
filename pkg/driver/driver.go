// Package driver implements the modes of the simple command that work on a
// source file: -scan, -parse and -execute.
package driver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"src.simple-lang.dev/pkg/diag"
	"src.simple-lang.dev/pkg/env"
	"src.simple-lang.dev/pkg/errutil"
	"src.simple-lang.dev/pkg/eval"
	"src.simple-lang.dev/pkg/logutil"
	"src.simple-lang.dev/pkg/parse"
	"src.simple-lang.dev/pkg/prog"
	"src.simple-lang.dev/pkg/scan"
	"src.simple-lang.dev/pkg/store"
	"src.simple-lang.dev/pkg/store/storedefs"
	"src.simple-lang.dev/pkg/sys"
	"src.simple-lang.dev/pkg/token"
)

var logger = logutil.GetLogger("[driver] ")

// Program is the subprogram for -scan, -parse and -execute. It should be the
// last one in a composite program, since it reports bad usage instead of
// declining to run.
type Program struct{}

// Run runs the program.
func (Program) Run(fds [3]*os.File, f *prog.Flags, args []string) error {
	modes := 0
	for _, on := range []bool{f.Scan, f.Parse, f.Execute} {
		if on {
			modes++
		}
	}
	if modes != 1 {
		return prog.BadUsage("exactly one of -scan, -parse and -execute is required")
	}
	if len(args) != 1 {
		return prog.BadUsage("exactly one source file is required")
	}
	useColor(fds[2], f.Color)

	src, err := readSource(args[0])
	if err != nil {
		return err
	}
	switch {
	case f.Scan:
		return scanFile(fds, f, src)
	case f.Parse:
		return parseFile(fds, f, src)
	default:
		return executeFile(fds, f, src)
	}
}

func useColor(w *os.File, color string) {
	switch color {
	case "always":
		diag.UseANSI(true)
	case "never":
		diag.UseANSI(false)
	default:
		diag.UseANSI(os.Getenv(env.NO_COLOR) == "" && sys.IsFileATTY(w))
	}
}

var errSourceNotUTF8 = errors.New("source is not UTF-8")

func readSource(fname string) (parse.Source, error) {
	bytes, err := os.ReadFile(fname)
	if err != nil {
		return parse.Source{}, fmt.Errorf("cannot read source file %q: %w", fname, err)
	}
	if !utf8.Valid(bytes) {
		return parse.Source{}, fmt.Errorf("cannot read source file %q: %w", fname, errSourceNotUTF8)
	}
	return parse.Source{Name: filepath.ToSlash(fname), Code: string(bytes)}, nil
}

type tokenInJSON struct {
	Kind  string `json:"kind"`
	Text  string `json:"text"`
	Line  int    `json:"line"`
	Value any    `json:"value,omitempty"`
	Error string `json:"error,omitempty"`
}

func scanFile(fds [3]*os.File, f *prog.Flags, src parse.Source) error {
	tokens := scan.All(src.Code)
	if f.JSON {
		enc := json.NewEncoder(fds[1])
		for _, t := range tokens {
			if t.Kind == token.EOF {
				break
			}
			enc.Encode(tokenInJSON{t.Kind.String(), t.Text, t.Line, t.Value.Native(), t.Err})
		}
		return nil
	}
	fmt.Fprint(fds[1], "Tokens:\n\n")
	for _, t := range tokens {
		if t.Kind == token.EOF {
			break
		}
		fmt.Fprintf(fds[1], "%12s : %s\n", t.Kind, t.Text)
	}
	return nil
}

// Parses the source. Unless JSON output is requested, errors are reported on
// stdout as they are found, followed by the error count.
func parseSource(fds [3]*os.File, f *prog.Flags, src parse.Source) (*parse.Tree, error) {
	cfg := parse.Config{}
	if !f.JSON {
		cfg.ErrorWriter = fds[1]
	}
	tree, err := parse.Parse(src, nil, cfg)
	if err != nil {
		if f.JSON {
			fmt.Fprintf(fds[1], "%s\n", errorsToJSON(err))
		} else {
			fmt.Fprintf(fds[1], "\nThere were %d syntax errors.\n", len(parse.UnpackErrors(err)))
		}
	}
	return tree, err
}

func parseFile(fds [3]*os.File, f *prog.Flags, src parse.Source) error {
	tree, err := parseSource(fds, f, src)
	if err != nil {
		return prog.Exit(2)
	}
	if err := dumpTree(fds[1], tree.Root, f.Format); err != nil {
		return err
	}
	return nil
}

func dumpTree(w io.Writer, root *parse.Node, format string) error {
	switch format {
	case "json":
		b, err := json.MarshalIndent(root, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\n", b)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(root); err != nil {
			return err
		}
		return enc.Close()
	default:
		fmt.Fprint(w, "Parse tree:\n\n")
		parse.PPrint(w, root)
	}
	return nil
}

func executeFile(fds [3]*os.File, f *prog.Flags, src parse.Source) (err error) {
	var st store.DBStore
	if f.DB != "" {
		st, err = store.NewStore(f.DB)
		if err != nil {
			return fmt.Errorf("cannot open run history: %w", err)
		}
		defer func() { err = errutil.Multi(err, st.Close()) }()
	}

	tree, err := parseSource(fds, f, src)
	if err != nil {
		record(st, tree, storedefs.StatusParseError, err)
		return prog.Exit(2)
	}
	err = eval.New(fds[1]).Execute(tree)
	if err != nil {
		diag.ShowError(fds[2], err)
		record(st, tree, storedefs.StatusRuntimeError, err)
		return prog.Exit(2)
	}
	record(st, tree, storedefs.StatusOK, nil)
	return nil
}

// Records a run in the store, if there is one. Failing to record does not
// fail the run.
func record(st storedefs.Store, tree *parse.Tree, status string, err error) {
	if st == nil {
		return
	}
	run := storedefs.Run{
		Program:   tree.Root.Text,
		File:      tree.Source.Name,
		Status:    status,
		Variables: make(map[string]string),
	}
	switch {
	case status == storedefs.StatusParseError:
		for _, e := range parse.UnpackErrors(err) {
			run.Errors = append(run.Errors, e.Error())
		}
	case err != nil:
		run.Errors = []string{err.Error()}
	}
	for _, entry := range tree.Symtab.Entries() {
		if v, ok := entry.Value(); ok {
			run.Variables[entry.Name] = v.Repr()
		}
	}
	if _, err := st.AddRun(run); err != nil {
		logger.Println("cannot record run:", err)
	}
}
