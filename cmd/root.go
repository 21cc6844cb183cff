// Package cmd wires the gotestd command tree: run, list, and status.
package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"muster/internal/testconfig"
)

// Exit codes for the gotestd CLI.
const (
	ExitCodeSuccess       = 0
	ExitCodeError         = 1
	ExitCodeConfigInvalid = 2
	ExitCodeTestsFailed   = 3
)

// rootCmd is the entry point when gotestd is called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "gotestd",
	Short: "Declare, schedule, and run parametric unit tests",
	Long: `gotestd runs the tests registered by internal/testgen against the
process-wide registry, scheduling them across Exclusive, Privileged, and Any
concurrency classes.`,
	SilenceUsage: true,
}

// SetVersion sets the version reported by --version. Called from main with
// the build-time version string.
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute is the CLI entry point, called from main.main.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "gotestd version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitCodeFor(err))
	}
}

// exitCodeFor maps an error returned from a command's RunE to a process
// exit code, the way the teacher's getExitCode maps auth errors.
func exitCodeFor(err error) int {
	var invalid testconfig.ValidationErrors
	if errors.As(err, &invalid) {
		return ExitCodeConfigInvalid
	}

	var failed *TestsFailedError
	if errors.As(err, &failed) {
		return ExitCodeTestsFailed
	}

	return ExitCodeError
}

// TestsFailedError is returned by run when the scheduler completes but at
// least one scheduled test did not pass - distinct from a general error so
// the CLI can report a dedicated exit code for "ran fine, something failed".
type TestsFailedError struct {
	Failed int
}

func (e *TestsFailedError) Error() string {
	if e.Failed == 1 {
		return "1 test failed"
	}
	return "tests failed"
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "path to gotestd.yaml (default: $HOME/.config/gotestd/gotestd.yaml)")

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newVersionCmd())
}
