package driver

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"src.simple-lang.dev/pkg/prog"
	"src.simple-lang.dev/pkg/store"
	"src.simple-lang.dev/pkg/store/storedefs"
)

// HistoryProgram is the subprogram for -history. It lists the runs recorded
// by -execute in the database given by -db or the configuration file.
type HistoryProgram struct{}

type runInJSON struct {
	Seq int `json:"seq"`
	storedefs.Run
}

// Run runs the program.
func (HistoryProgram) Run(fds [3]*os.File, f *prog.Flags, args []string) error {
	if !f.History {
		return prog.ErrNotSuitable
	}
	if len(args) > 0 {
		return prog.BadUsage("-history takes no arguments")
	}
	if f.DB == "" {
		return prog.BadUsage("-history requires -db or a db setting in the config file")
	}
	st, err := store.NewStore(f.DB)
	if err != nil {
		return fmt.Errorf("cannot open run history: %w", err)
	}
	defer st.Close()

	upto, err := st.NextRunSeq()
	if err != nil {
		return err
	}
	runs, err := st.RunsWithSeq(0, upto)
	if err != nil {
		return err
	}
	if f.JSON {
		enc := json.NewEncoder(fds[1])
		for _, run := range runs {
			enc.Encode(runInJSON{run.Seq, run})
		}
		return nil
	}
	for _, run := range runs {
		fmt.Fprintf(fds[1], "%4d  %s  %-13s %s (%s)\n", run.Seq,
			run.Time.Format("2006-01-02 15:04:05"), run.Status, run.Program, run.File)
		for _, e := range run.Errors {
			fmt.Fprintf(fds[1], "      %s\n", strings.ReplaceAll(e, "\n", "\n      "))
		}
	}
	return nil
}
