// Package prog provides the entry point to the simple command. Programs that
// implement its modes are combined with Composite and run with Run.
package prog

// This package parses the flags, loads the configuration and sets up logging,
// and calls the appropriate "subprogram": the buildinfo program, the history
// program, the language server, or the program that scans, parses and
// executes source files.

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime/pprof"

	"src.simple-lang.dev/pkg/config"
	"src.simple-lang.dev/pkg/diag"
	"src.simple-lang.dev/pkg/env"
	"src.simple-lang.dev/pkg/logutil"
)

var logger = logutil.GetLogger("[prog] ")

// Flags keeps command-line flags, merged with the configuration file.
type Flags struct {
	Log, CPUProfile, Config string

	Help, Version, BuildInfo, JSON bool

	Scan, Parse, Execute bool
	// Format of parse tree dumps.
	Format string
	// When to style error messages.
	Color string

	History, LSP bool

	DB string
}

func newFlagSet(f *Flags) *flag.FlagSet {
	fs := flag.NewFlagSet("simple", flag.ContinueOnError)
	// Error and usage will be printed explicitly.
	fs.SetOutput(io.Discard)

	fs.StringVar(&f.Log, "log", "", "a file to write debug log to")
	fs.StringVar(&f.CPUProfile, "cpuprofile", "", "write cpu profile to file")
	fs.StringVar(&f.Config, "config", "", "a configuration file in TOML or YAML; defaults to $SIMPLE_CONFIG")

	fs.BoolVar(&f.Help, "help", false, "show usage help and quit")
	fs.BoolVar(&f.Version, "version", false, "show version and quit")
	fs.BoolVar(&f.BuildInfo, "buildinfo", false, "show build info and quit")
	fs.BoolVar(&f.JSON, "json", false, "show output in JSON. Useful with -buildinfo, -scan, -parse and -history")

	fs.BoolVar(&f.Scan, "scan", false, "print the tokens of the source file")
	fs.BoolVar(&f.Parse, "parse", false, "print the parse tree of the source file")
	fs.BoolVar(&f.Execute, "execute", false, "execute the source file")
	fs.StringVar(&f.Format, "format", "text", "format of parse trees: text, json or yaml")
	fs.StringVar(&f.Color, "color", "auto", "style error messages: auto, always or never")

	fs.BoolVar(&f.History, "history", false, "list the runs recorded in the database")
	fs.BoolVar(&f.LSP, "lsp", false, "run a language server on stdin and stdout")
	fs.StringVar(&f.DB, "db", "", "path to the run history database")

	return fs
}

func usage(out io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(out, "Usage: simple -{scan, parse, execute} sourceFileName")
	fmt.Fprintln(out, "Supported flags:")
	fs.SetOutput(out)
	fs.PrintDefaults()
}

// Run parses command-line flags and runs the first applicable subprogram. It
// returns the exit status of the program.
func Run(fds [3]*os.File, args []string, p Program) int {
	f := &Flags{}
	fs := newFlagSet(f)
	err := fs.Parse(args[1:])
	if err != nil {
		if err == flag.ErrHelp {
			// (*flag.FlagSet).Parse returns ErrHelp when -h or -help was
			// requested but *not* defined. -help is defined, but not -h; so
			// this means that -h has been requested. Handle this by printing
			// the same message as an undefined flag.
			fmt.Fprintln(fds[2], "flag provided but not defined: -h")
		} else {
			fmt.Fprintln(fds[2], err)
		}
		usage(fds[2], fs)
		return 2
	}

	if f.Config == "" {
		f.Config = os.Getenv(env.SIMPLE_CONFIG)
	}
	if f.Config != "" {
		cfg, err := config.Load(f.Config)
		if err != nil {
			fmt.Fprintln(fds[2], err)
			return 2
		}
		applyConfig(f, fs, cfg)
	}
	if err := (&config.Config{TreeFormat: f.Format, Color: f.Color}).Validate(); err != nil {
		fmt.Fprintln(fds[2], err)
		usage(fds[2], fs)
		return 2
	}

	// Handle flags common to all subprograms.
	if f.CPUProfile != "" {
		f, err := os.Create(f.CPUProfile)
		if err != nil {
			diag.Complainf(fds[2], "Warning: cannot create CPU profile: %v", err)
			fmt.Fprintln(fds[2], "Continuing without CPU profiling.")
		} else {
			pprof.StartCPUProfile(f)
			defer pprof.StopCPUProfile()
		}
	}

	if f.Log != "" {
		err = logutil.SetOutputFile(f.Log)
		if err != nil {
			fmt.Fprintln(fds[2], err)
		}
		defer logutil.SetOutput(io.Discard)
	}
	logger.Printf("args: %q", args[1:])

	if f.Help {
		usage(fds[1], fs)
		return 0
	}

	err = p.Run(fds, f, fs.Args())
	if err == nil {
		return 0
	}
	if msg := err.Error(); msg != "" {
		fmt.Fprintln(fds[2], msg)
	}
	switch err := err.(type) {
	case badUsageError:
		usage(fds[2], fs)
	case exitError:
		return err.exit
	}
	return 2
}

// Copies the settings of the configuration file into flags that were not
// given on the command line.
func applyConfig(f *Flags, fs *flag.FlagSet, cfg *config.Config) {
	set := make(map[string]bool)
	fs.Visit(func(fl *flag.Flag) { set[fl.Name] = true })
	if !set["format"] {
		f.Format = cfg.TreeFormat
	}
	if !set["color"] {
		f.Color = cfg.Color
	}
	if !set["db"] {
		f.DB = cfg.DB
	}
	if !set["log"] {
		f.Log = cfg.Log
	}
}

// Composite returns a Program that tries each of the given programs,
// terminating at the first one that doesn't return NotSuitable().
func Composite(programs ...Program) Program {
	return compositeProgram(programs)
}

type compositeProgram []Program

func (cp compositeProgram) Run(fds [3]*os.File, f *Flags, args []string) error {
	for _, p := range cp {
		err := p.Run(fds, f, args)
		if err != ErrNotSuitable {
			return err
		}
	}
	// If we have reached here, all subprograms have returned ErrNotSuitable
	return ErrNotSuitable
}

// ErrNotSuitable is a special error that may be returned by Program.Run, to
// signify that this Program should not be run. It is useful when a Program is
// used in Composite.
var ErrNotSuitable = errors.New("internal error: no suitable subprogram")

// BadUsage returns a special error that may be returned by Program.Run. It
// causes the main function to print out a message, the usage information and
// exit with 2.
func BadUsage(msg string) error { return badUsageError{msg} }

type badUsageError struct{ msg string }

func (e badUsageError) Error() string { return e.msg }

// Exit returns a special error that may be returned by Program.Run. It causes
// the main function to exit with the given code without printing any error
// messages. Exit(0) returns nil.
func Exit(exit int) error {
	if exit == 0 {
		return nil
	}
	return exitError{exit}
}

type exitError struct{ exit int }

func (e exitError) Error() string { return "" }

// Program represents a subprogram.
type Program interface {
	// Run runs the subprogram.
	Run(fds [3]*os.File, f *Flags, args []string) error
}
