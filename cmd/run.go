package cmd

import (
	"bytes"
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"muster/internal/testreg"
	"muster/internal/testreport"
	"muster/internal/testrun"
	"muster/internal/teststatus"
	"muster/pkg/logging"
)

var (
	runQuiet        bool
	runFailed       bool
	runPattern      string
	runWorkers      int
	runMinPerThread int
	runTimeout      time.Duration
)

func newRunCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "run [category]",
		Short: "Run all tests, a single category, or tests matching a pattern",
		Long: `run schedules every test in the registry (or, given an argument, every
test under the named category) and blocks until the run completes.

Use --pattern for a path.Match glob over test paths instead of a whole
category, and --failed to re-run only the tests that failed last time.
--workers, --min-per-thread and --timeout override the corresponding
fields of the loaded --config file for this invocation only.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runRun,
	}
	c.Flags().BoolVarP(&runQuiet, "quiet", "q", false, "suppress the progress spinner")
	c.Flags().BoolVar(&runFailed, "failed", false, "re-run only tests that failed on the previous run")
	c.Flags().StringVar(&runPattern, "pattern", "", "path.Match glob over test paths, instead of a category")
	c.Flags().IntVar(&runWorkers, "workers", 0, "override MaxWorkers from the config file (0 keeps the config value)")
	c.Flags().IntVar(&runMinPerThread, "min-per-thread", 0, "override MinTestsPerThread from the config file (0 keeps the config value)")
	c.Flags().DurationVar(&runTimeout, "timeout", 0, "override DefaultTimeout from the config file (0 keeps the config value)")
	return c
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	opts := cfg.Options()
	if runWorkers != 0 {
		opts.MaxWorkers = runWorkers
	}
	if runMinPerThread != 0 {
		opts.MinTestsPerThread = runMinPerThread
	}
	if runTimeout != 0 {
		opts.DefaultTimeout = runTimeout
	}

	reg := testreg.Default()
	store := teststatus.NewStore()
	scheduler := testrun.NewScheduler(store)

	lastRun, err := loadLastRun()
	if err != nil {
		return err
	}

	var s *spinner.Spinner
	if !runQuiet {
		s = spinner.New(spinner.CharSets[14], 100*time.Millisecond)
		s.Suffix = " Running tests..."
		s.Start()
		defer s.Stop()
	}

	var runErr error
	switch {
	case runFailed:
		runErr = scheduler.RunFailed(reg, lastRun, opts)
	case runPattern != "":
		defs := reg.Find(runPattern)
		runErr = scheduler.Run(defs, opts)
	case len(args) == 1:
		node, ok := reg.Category(args[0])
		if !ok {
			return fmt.Errorf("gotestd: unknown category %q", args[0])
		}
		runErr = scheduler.RunCategory(node, opts)
	default:
		runErr = scheduler.RunAll(reg, opts)
	}
	if runErr != nil {
		return runErr
	}

	scheduler.Join()
	if s != nil {
		s.Stop()
	}

	if err := persistLastRun(lastRun, store); err != nil {
		logging.Warn("cmd", "could not persist run results: %s", err)
	}

	// Report only the tests this invocation ran: store holds a result for
	// exactly those, keyed by the same path-derived ID a Row carries.
	ran := store.Snapshot()
	var rows []testreport.Row
	for _, row := range testreport.Rows(reg, store, scheduler) {
		if _, ok := ran[row.Path]; ok {
			rows = append(rows, row)
		}
	}
	var buf bytes.Buffer
	testreport.RenderTable(rows, &buf)
	fmt.Fprint(cmd.OutOrStdout(), buf.String())

	failed := countFailed(rows)
	if failed > 0 {
		logging.Warn("cmd", "%d test(s) failed", failed)
		return &TestsFailedError{Failed: failed}
	}
	return nil
}

// persistLastRun merges this invocation's freshly recorded results on top
// of the previously persisted ones (tests this run didn't touch keep their
// prior recorded status) and writes the merge back to disk, so a later
// invocation's --failed has something to consult.
func persistLastRun(lastRun, store *teststatus.Store) error {
	merged := lastRun.Snapshot()
	for id, r := range store.Snapshot() {
		merged[id] = r
	}
	combined := teststatus.NewStore()
	combined.Restore(merged)
	return saveLastRun(combined)
}

func countFailed(rows []testreport.Row) int {
	n := 0
	for _, r := range rows {
		if r.Status == teststatus.Failed {
			n++
		}
	}
	return n
}
